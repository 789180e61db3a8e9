package command

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/quickvc/commit-control/internal/action"
	"github.com/quickvc/commit-control/internal/state"
)

func noopCmd() tea.Msg { return nil }

func TestExecuteRunsAvailableAction(t *testing.T) {
	store := state.New("/work")
	store.SetNewComment("hello")
	g := NewGate(store)

	built := false
	cmd := g.Execute(action.New, func() tea.Cmd {
		built = true
		return noopCmd
	})
	if !built {
		t.Fatalf("expected builder to run")
	}
	if cmd == nil {
		t.Fatalf("expected a command")
	}
	if !g.Busy(action.New) {
		t.Fatalf("expected action marked busy")
	}
}

func TestExecuteDropsUnavailableAction(t *testing.T) {
	store := state.New("/work")
	g := NewGate(store)

	cmd := g.Execute(action.New, func() tea.Cmd {
		t.Fatalf("builder must not run for unavailable action")
		return nil
	})
	if cmd != nil {
		t.Fatalf("expected nil command")
	}
	if g.Busy(action.New) {
		t.Fatalf("unavailable action must not go busy")
	}
}

func TestExecuteDropsBusyAction(t *testing.T) {
	store := state.New("/work")
	g := NewGate(store)

	if cmd := g.Execute(action.Refresh, func() tea.Cmd { return noopCmd }); cmd == nil {
		t.Fatalf("expected first invocation admitted")
	}
	ran := false
	cmd := g.Execute(action.Refresh, func() tea.Cmd {
		ran = true
		return noopCmd
	})
	if cmd != nil || ran {
		t.Fatalf("expected second invocation dropped while busy")
	}
}

func TestFinishReleasesBusyFlag(t *testing.T) {
	store := state.New("/work")
	g := NewGate(store)

	g.Execute(action.Refresh, func() tea.Cmd { return noopCmd })
	g.Finish(action.Refresh)
	if g.Busy(action.Refresh) {
		t.Fatalf("expected busy flag released")
	}
	if cmd := g.Execute(action.Refresh, func() tea.Cmd { return noopCmd }); cmd == nil {
		t.Fatalf("expected re-invocation admitted after Finish")
	}
}

func TestBusyTrackingIsPerAction(t *testing.T) {
	store := state.New("/work")
	store.SetLastComment("prior")
	g := NewGate(store)

	g.Execute(action.Refresh, func() tea.Cmd { return noopCmd })
	if cmd := g.Execute(action.Update, func() tea.Cmd { return noopCmd }); cmd == nil {
		t.Fatalf("expected a different action to be admitted")
	}
}

func TestExecuteWithNilCommandDoesNotGoBusy(t *testing.T) {
	store := state.New("/work")
	g := NewGate(store)

	if cmd := g.Execute(action.Refresh, func() tea.Cmd { return nil }); cmd != nil {
		t.Fatalf("expected nil command passthrough")
	}
	if g.Busy(action.Refresh) {
		t.Fatalf("nil command must not mark busy")
	}
}
