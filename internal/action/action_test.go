package action

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/quickvc/commit-control/internal/backend"
	"github.com/quickvc/commit-control/internal/state"
	"github.com/quickvc/commit-control/internal/testutil"
	"github.com/quickvc/commit-control/internal/vcs"
)

type actionEnv struct {
	backend  *testutil.Backend
	store    *state.Store
	enqueued []backend.Request
	nudges   int
}

func newActionEnv(comments ...string) *actionEnv {
	env := &actionEnv{
		backend: testutil.NewBackend(comments...),
		store:   state.New("/work"),
	}
	return env
}

func (e *actionEnv) ctx() Context {
	return Context{
		Backend: e.backend,
		Store:   e.store,
		Enqueue: func(req backend.Request) { e.enqueued = append(e.enqueued, req) },
		Nudge:   func() { e.nudges++ },
	}
}

func run(t *testing.T, cmd tea.Cmd) Result {
	t.Helper()
	if cmd == nil {
		t.Fatalf("expected a command")
	}
	msg := cmd()
	res, ok := msg.(Result)
	if !ok {
		t.Fatalf("expected Result, got %T", msg)
	}
	return res
}

func TestAvailable(t *testing.T) {
	store := state.New("/work")
	if Available(New, store) {
		t.Fatalf("new must be unavailable without a pending comment")
	}
	if Available(Update, store) {
		t.Fatalf("update must be unavailable without a last comment")
	}
	if !Available(Refresh, store) || !Available(Reset, store) {
		t.Fatalf("refresh and reset are always available")
	}
	store.SetNewComment("pending")
	store.SetLastComment("prior")
	if !Available(New, store) || !Available(Update, store) {
		t.Fatalf("expected new and update available")
	}
}

func TestNewActionCreatesCommitAndClearsComment(t *testing.T) {
	env := newActionEnv("existing")
	env.store.SetNewComment("fresh work")

	cmd := NewAction(env.ctx())
	if got := env.store.NewComment(); got != "" {
		t.Fatalf("comment must clear at invocation, got %q", got)
	}
	res := run(t, cmd)
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	head, _ := env.backend.Head()
	if head.Comment != "fresh work" {
		t.Fatalf("expected new head commit, got %q", head.Comment)
	}
	if len(env.enqueued) != 1 || env.nudges != 1 {
		t.Fatalf("expected reload+nudge, got %d/%d", len(env.enqueued), env.nudges)
	}
}

func TestNewActionClearsCommentEvenOnFailure(t *testing.T) {
	env := newActionEnv("existing")
	env.store.SetNewComment("doomed")
	env.backend.SetFailNext(true)

	cmd := NewAction(env.ctx())
	if env.store.NewComment() != "" {
		t.Fatalf("comment must clear before the backend call")
	}
	res := run(t, cmd)
	if res.Err == nil {
		t.Fatalf("expected failure surfaced")
	}
	if len(env.enqueued) != 1 {
		t.Fatalf("reload must still follow a failed action")
	}
}

func TestUpdateActionPrefersPendingComment(t *testing.T) {
	env := newActionEnv("original")
	env.store.SetLastComment("original")
	env.store.SetNewComment("reworded")

	res := run(t, UpdateAction(env.ctx()))
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	head, _ := env.backend.Head()
	if head.Comment != "reworded" {
		t.Fatalf("expected amended comment, got %q", head.Comment)
	}
	if env.store.NewComment() != "" {
		t.Fatalf("pending comment must be consumed")
	}
}

func TestUpdateActionReusesLastCommentWhenNonePending(t *testing.T) {
	env := newActionEnv("original")
	env.store.SetLastComment("original")

	res := run(t, UpdateAction(env.ctx()))
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	head, _ := env.backend.Head()
	if head.Comment != "original" {
		t.Fatalf("expected comment reused, got %q", head.Comment)
	}
}

func TestRefreshActionOnlyEnqueues(t *testing.T) {
	env := newActionEnv("one")
	res := run(t, RefreshAction(env.ctx()))
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if len(env.backend.Calls()) != 0 {
		t.Fatalf("refresh must not touch the backend directly")
	}
	if len(env.enqueued) != 1 {
		t.Fatalf("expected one reload request")
	}
	if env.enqueued[0].Reason != "action:refresh" {
		t.Fatalf("unexpected reason %q", env.enqueued[0].Reason)
	}
}

func TestResetActionDiscardsPendingChanges(t *testing.T) {
	env := newActionEnv("one")
	env.backend.SetDirty(true)
	res := run(t, ResetAction(env.ctx()))
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	ops := env.backend.CallOps()
	if len(ops) != 1 || ops[0] != "reset" {
		t.Fatalf("expected a single reset call, got %v", ops)
	}
}

func TestSetFolderActionRetargetsStoreBeforeReload(t *testing.T) {
	env := newActionEnv("one")
	cmd := SetFolderAction(env.ctx(), "/elsewhere")
	if env.store.WorkFolder() != "/elsewhere" {
		t.Fatalf("folder must change at invocation")
	}
	res := run(t, cmd)
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if env.enqueued[0].Folder != "/elsewhere" {
		t.Fatalf("reload must target the new folder, got %q", env.enqueued[0].Folder)
	}
}

func TestResetToCommitActionTargetsGivenCommit(t *testing.T) {
	env := newActionEnv("one", "two", "three")
	commits, _ := env.backend.Commits(0, true, "/work")
	target := commits[2]

	res := run(t, ResetToCommitAction(env.ctx(), target))
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	calls := env.backend.Calls()
	if calls[len(calls)-1].ID != target.ID {
		t.Fatalf("expected reset to %s, got %s", target.ID, calls[len(calls)-1].ID)
	}
	head, _ := env.backend.Head()
	if head.Comment != "one" {
		t.Fatalf("expected history truncated to oldest commit, got %q", head.Comment)
	}
}

func TestResetToCommitActionSurfacesUnknownCommit(t *testing.T) {
	env := newActionEnv("one")
	res := run(t, ResetToCommitAction(env.ctx(), vcs.Commit{ID: "missing"}))
	if res.Err == nil {
		t.Fatalf("expected error for unknown commit")
	}
	if len(env.enqueued) != 1 {
		t.Fatalf("reload must still follow the failed reset")
	}
}
