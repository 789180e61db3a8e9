package action

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/quickvc/commit-control/internal/vcs"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestConfirmShowsCommitIdentity(t *testing.T) {
	c := NewConfirm(vcs.Commit{ID: "abcdef0123456789", Comment: "risky change"})
	if !strings.Contains(c.Header(), "abcdef01") {
		t.Fatalf("header must show the short identifier: %q", c.Header())
	}
	if c.Body() != "risky change" {
		t.Fatalf("body must show the comment, got %q", c.Body())
	}
}

func TestConfirmBodyPlaceholder(t *testing.T) {
	c := NewConfirm(vcs.Commit{ID: "abc"})
	if c.Body() != "(no comment)" {
		t.Fatalf("expected placeholder body, got %q", c.Body())
	}
}

func TestConfirmOutcomes(t *testing.T) {
	cases := []struct {
		key  string
		want Outcome
	}{
		{"y", OutcomeConfirmed},
		{"Y", OutcomeConfirmed},
		{"enter", OutcomeConfirmed},
		{"n", OutcomeAborted},
		{"N", OutcomeAborted},
		{"esc", OutcomeAborted},
		{"q", OutcomeAborted},
		{"z", OutcomePending},
	}
	for _, tc := range cases {
		c := NewConfirm(vcs.Commit{ID: "abc"})
		if got := c.Update(key(tc.key)); got != tc.want {
			t.Fatalf("key %q: expected %v, got %v", tc.key, tc.want, got)
		}
	}
}
