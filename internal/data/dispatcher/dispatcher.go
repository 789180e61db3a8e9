package dispatcher

import (
	"github.com/quickvc/commit-control/internal/backend"
	"github.com/quickvc/commit-control/internal/state"
)

// Result reports which parts of the store a handled event touched, so the
// UI knows what to refresh.
type Result struct {
	CommitsUpdated bool
	UpdatesChanged bool
	Failed         bool
}

// Dispatcher applies poller events and reload results to the state store.
type Dispatcher struct {
	store *state.Store
}

func New(store *state.Store) *Dispatcher {
	return &Dispatcher{store: store}
}

// HandlePoll publishes a has-updates transition, or records the fault.
func (d *Dispatcher) HandlePoll(evt backend.PollEvent) Result {
	if evt.Err != nil {
		d.store.SetLastError(evt.Err.Error())
		return Result{Failed: true}
	}
	d.store.SetHasUpdates(evt.HasUpdates)
	return Result{UpdatesChanged: true}
}

// HandleReload replaces the commit list and last comment wholesale, or
// records the fault while leaving the held list untouched.
func (d *Dispatcher) HandleReload(res backend.Result) Result {
	if res.Err != nil {
		d.store.SetLastError(res.Err.Error())
		return Result{Failed: true}
	}
	d.store.SetCommits(res.Commits)
	d.store.SetLastComment(res.LastComment)
	d.store.SetLastError("")
	return Result{CommitsUpdated: true}
}
