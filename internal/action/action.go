package action

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/quickvc/commit-control/internal/backend"
	"github.com/quickvc/commit-control/internal/logging/events"
	"github.com/quickvc/commit-control/internal/state"
	"github.com/quickvc/commit-control/internal/vcs"
)

// Action names. These key the gate's busy tracking and the trace log.
const (
	New           = "new"
	Update        = "update"
	Refresh       = "refresh"
	Reset         = "reset"
	SetFolder     = "set-folder"
	ResetToCommit = "reset-to-commit"
)

// Context carries the collaborators an action body needs. Enqueue feeds the
// reload queue, Nudge wakes the update poller.
type Context struct {
	Backend vcs.Backend
	Store   *state.Store
	Enqueue func(backend.Request)
	Nudge   func()
}

// Result communicates the outcome of an executed action back to the update
// loop.
type Result struct {
	Action string
	Info   string
	Err    error
}

// Available reports whether the named action may currently run: "new" needs
// a pending comment, "update" a last comment; everything else is always
// available. An unavailable action invokes as a silent no-op, mirroring a
// disabled button rather than a validation failure.
func Available(name string, store *state.Store) bool {
	switch name {
	case New:
		return store.NewComment() != ""
	case Update:
		return store.LastComment() != ""
	default:
		return true
	}
}

// consumeComment clears the pending comment and returns what it held. Every
// action that consumes the comment clears it at invocation time, before the
// backend call is issued, so the hygiene invariant holds on failure too.
func consumeComment(store *state.Store) string {
	comment := store.NewComment()
	store.SetNewComment("")
	return comment
}

func reloadRequest(store *state.Store, reason string) backend.Request {
	return backend.Request{
		Limit:   store.Limit(),
		ShowAll: store.ShowAll(),
		Folder:  store.WorkFolder(),
		Reason:  reason,
	}
}

// NewAction creates a commit from the pending comment.
func NewAction(ctx Context) tea.Cmd {
	comment := consumeComment(ctx.Store)
	folder := ctx.Store.WorkFolder()
	req := reloadRequest(ctx.Store, "action:new")
	return func() tea.Msg {
		err := ctx.Backend.New(comment, folder)
		ctx.Enqueue(req)
		ctx.Nudge()
		if err != nil {
			return Result{Action: New, Err: err}
		}
		return Result{Action: New, Info: fmt.Sprintf("Created commit %q", comment)}
	}
}

// UpdateAction amends the most recent commit. The pending comment wins when
// present; otherwise the last comment is reused unchanged.
func UpdateAction(ctx Context) tea.Cmd {
	comment := consumeComment(ctx.Store)
	if comment == "" {
		comment = ctx.Store.LastComment()
	}
	folder := ctx.Store.WorkFolder()
	req := reloadRequest(ctx.Store, "action:update")
	return func() tea.Msg {
		err := ctx.Backend.Update(comment, folder)
		ctx.Enqueue(req)
		ctx.Nudge()
		if err != nil {
			return Result{Action: Update, Err: err}
		}
		return Result{Action: Update, Info: fmt.Sprintf("Updated commit %q", comment)}
	}
}

// RefreshAction forces an immediate reload without touching the backend
// state.
func RefreshAction(ctx Context) tea.Cmd {
	req := reloadRequest(ctx.Store, "action:refresh")
	return func() tea.Msg {
		ctx.Enqueue(req)
		return Result{Action: Refresh}
	}
}

// ResetAction discards pending changes in the working folder.
func ResetAction(ctx Context) tea.Cmd {
	consumeComment(ctx.Store)
	folder := ctx.Store.WorkFolder()
	req := reloadRequest(ctx.Store, "action:reset")
	return func() tea.Msg {
		err := ctx.Backend.Reset(folder)
		ctx.Enqueue(req)
		ctx.Nudge()
		if err != nil {
			return Result{Action: Reset, Err: err}
		}
		return Result{Action: Reset, Info: "Discarded pending changes"}
	}
}

// SetFolderAction retargets every subsequent backend call at folder and
// reloads immediately.
func SetFolderAction(ctx Context, folder string) tea.Cmd {
	ctx.Store.SetWorkFolder(folder)
	req := reloadRequest(ctx.Store, "action:set-folder")
	return func() tea.Msg {
		ctx.Enqueue(req)
		ctx.Nudge()
		return Result{Action: SetFolder, Info: fmt.Sprintf("Folder set to %s", folder)}
	}
}

// ResetToCommitAction resets the working folder to the given historical
// commit. Callers must have obtained an affirmative confirmation first.
func ResetToCommitAction(ctx Context, commit vcs.Commit) tea.Cmd {
	consumeComment(ctx.Store)
	folder := ctx.Store.WorkFolder()
	req := reloadRequest(ctx.Store, "action:reset-to-commit")
	events.Action.Submit(ResetToCommit, commit.ID)
	return func() tea.Msg {
		err := ctx.Backend.ResetToCommit(commit.ID, folder)
		ctx.Enqueue(req)
		ctx.Nudge()
		if err != nil {
			return Result{Action: ResetToCommit, Err: err}
		}
		return Result{Action: ResetToCommit, Info: fmt.Sprintf("Reset to %s", commit.ShortID())}
	}
}
