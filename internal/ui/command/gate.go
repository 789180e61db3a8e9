package command

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/quickvc/commit-control/internal/action"
	"github.com/quickvc/commit-control/internal/logging/events"
	"github.com/quickvc/commit-control/internal/state"
)

// Gate admits action invocations. An action that is unavailable, or whose
// previous invocation has not finished, is a silent no-op: nil command, a
// trace entry, nothing else. Busy tracking is per action name and is
// released when the action's Result reaches the update loop.
type Gate struct {
	store *state.Store
	busy  map[string]bool
}

func NewGate(store *state.Store) *Gate {
	return &Gate{store: store, busy: make(map[string]bool)}
}

// Execute runs build on the caller's goroutine (the update loop) when the
// action is admitted, marking it busy, and wraps the produced command with
// result tracing. build runs the synchronous part of an action — state
// writes such as consuming the pending comment happen before any
// asynchronous work starts.
func (g *Gate) Execute(name string, build func() tea.Cmd) tea.Cmd {
	if !action.Available(name, g.store) {
		events.Command.Disabled(name)
		return nil
	}
	if g.busy[name] {
		events.Command.Busy(name)
		return nil
	}
	events.Command.Queue(name)
	cmd := build()
	if cmd == nil {
		return nil
	}
	g.busy[name] = true
	return func() tea.Msg {
		msg := cmd()
		events.Command.Result(name, fmt.Sprintf("%T", msg))
		return msg
	}
}

// Finish releases the busy flag once the action's result has been observed.
func (g *Gate) Finish(name string) {
	delete(g.busy, name)
}

// Busy reports whether an invocation of the named action is still running.
func (g *Gate) Busy(name string) bool {
	return g.busy[name]
}
