package action

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/quickvc/commit-control/internal/logging/events"
	"github.com/quickvc/commit-control/internal/vcs"
)

// Outcome is the terminal state of a confirmation prompt.
type Outcome int

const (
	OutcomePending Outcome = iota
	OutcomeConfirmed
	OutcomeAborted
)

// Confirm is the modal asking the user to approve a reset to a historical
// commit. The header shows the commit identifier, the body its comment.
// Aborting is a normal branch, not an error: nothing is called, nothing
// changes.
type Confirm struct {
	commit vcs.Commit
}

func NewConfirm(commit vcs.Commit) *Confirm {
	events.Action.Prompt(ResetToCommit)
	return &Confirm{commit: commit}
}

func (c *Confirm) Commit() vcs.Commit { return c.commit }

func (c *Confirm) Header() string {
	return fmt.Sprintf("Reset to commit %s?", c.commit.ShortID())
}

func (c *Confirm) Body() string {
	if c.commit.Comment == "" {
		return "(no comment)"
	}
	return c.commit.Comment
}

func (c *Confirm) Help() string {
	return "y/enter confirm  n/esc abort"
}

// Update resolves key presses into an outcome. Anything other than the
// confirm/abort keys leaves the prompt pending.
func (c *Confirm) Update(msg tea.Msg) Outcome {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return OutcomePending
	}
	switch key.String() {
	case "y", "Y", "enter":
		return OutcomeConfirmed
	case "n", "N", "esc", "q":
		events.Action.Cancel(ResetToCommit, "abort")
		return OutcomeAborted
	}
	return OutcomePending
}
