package dispatcher

import (
	"errors"
	"testing"

	"github.com/quickvc/commit-control/internal/backend"
	"github.com/quickvc/commit-control/internal/state"
	"github.com/quickvc/commit-control/internal/vcs"
)

func TestHandlePollPublishesTransition(t *testing.T) {
	store := state.New("/work")
	d := New(store)

	res := d.HandlePoll(backend.PollEvent{HasUpdates: true})
	if !res.UpdatesChanged || res.Failed {
		t.Fatalf("unexpected result %+v", res)
	}
	if !store.HasUpdates() {
		t.Fatalf("expected hasUpdates true")
	}
}

func TestHandlePollRecordsFault(t *testing.T) {
	store := state.New("/work")
	d := New(store)

	res := d.HandlePoll(backend.PollEvent{Err: errors.New("down")})
	if !res.Failed {
		t.Fatalf("expected failure result")
	}
	if store.LastError() != "down" {
		t.Fatalf("expected last error recorded, got %q", store.LastError())
	}
	if store.HasUpdates() {
		t.Fatalf("fault must not flip hasUpdates")
	}
}

func TestHandleReloadReplacesListAndComment(t *testing.T) {
	store := state.New("/work")
	store.SetLastError("stale")
	d := New(store)

	res := d.HandleReload(backend.Result{
		Commits:     []vcs.Commit{{ID: "aaa", Comment: "first"}},
		LastComment: "first",
	})
	if !res.CommitsUpdated {
		t.Fatalf("unexpected result %+v", res)
	}
	if len(store.Commits()) != 1 || store.LastComment() != "first" {
		t.Fatalf("store not updated: %+v %q", store.Commits(), store.LastComment())
	}
	if store.LastError() != "" {
		t.Fatalf("expected error cleared on success")
	}
}

func TestHandleReloadFaultKeepsHeldList(t *testing.T) {
	store := state.New("/work")
	store.SetCommits([]vcs.Commit{{ID: "aaa", Comment: "kept"}})
	d := New(store)

	res := d.HandleReload(backend.Result{Err: errors.New("offline")})
	if !res.Failed {
		t.Fatalf("expected failure result")
	}
	if len(store.Commits()) != 1 {
		t.Fatalf("fault must leave the held list untouched")
	}
	if store.LastError() != "offline" {
		t.Fatalf("expected fault surfaced, got %q", store.LastError())
	}
}
