package action

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/quickvc/commit-control/internal/logging/events"
)

// CommentForm edits the pending comment for the next created commit.
// Submitting an empty value clears the comment, which in turn disables the
// "new" action.
type CommentForm struct {
	input textinput.Model
}

func NewCommentForm(initial string) *CommentForm {
	ti := textinput.New()
	ti.Placeholder = "comment for the next commit"
	ti.CharLimit = 200
	ti.Focus()
	if initial != "" {
		ti.SetValue(initial)
	}
	events.Action.Prompt("comment")
	return &CommentForm{input: ti}
}

func (f *CommentForm) Value() string     { return strings.TrimSpace(f.input.Value()) }
func (f *CommentForm) InputView() string { return f.input.View() }
func (f *CommentForm) Title() string     { return "Commit Comment" }
func (f *CommentForm) Help() string      { return "Press Enter to set. Esc to cancel." }

// Update feeds a message to the form. submitted reports an accepted value,
// cancelled an abandoned form; at most one of them is true.
func (f *CommentForm) Update(msg tea.Msg) (cmd tea.Cmd, submitted, cancelled bool) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEsc:
			events.Action.Cancel("comment", "escape")
			return nil, false, true
		case tea.KeyEnter:
			events.Action.Submit("comment", f.Value())
			return nil, true, false
		}
	}
	updated, cmd := f.input.Update(msg)
	f.input = updated
	return cmd, false, false
}

// FolderForm picks the working folder. The chosen path must be an existing
// directory; a missing path keeps the form open with an error. Esc returns
// no path (cancelled).
type FolderForm struct {
	input textinput.Model
	err   string
}

func NewFolderForm(current string) *FolderForm {
	ti := textinput.New()
	ti.Placeholder = "/path/to/working/folder"
	ti.CharLimit = 512
	ti.Focus()
	if current != "" {
		ti.SetValue(current)
	}
	events.Action.Prompt("folder")
	return &FolderForm{input: ti}
}

func (f *FolderForm) Value() string     { return strings.TrimSpace(f.input.Value()) }
func (f *FolderForm) InputView() string { return f.input.View() }
func (f *FolderForm) Error() string     { return f.err }
func (f *FolderForm) Title() string     { return "Working Folder" }
func (f *FolderForm) Help() string      { return "Press Enter to switch. Esc to cancel." }

func (f *FolderForm) Update(msg tea.Msg) (cmd tea.Cmd, submitted, cancelled bool) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEsc:
			events.Action.Cancel("folder", "escape")
			return nil, false, true
		case tea.KeyEnter:
			if err := validateFolder(f.Value()); err != "" {
				f.err = err
				return nil, false, false
			}
			f.err = ""
			events.Action.Submit("folder", f.Value())
			return nil, true, false
		}
	}
	updated, cmd := f.input.Update(msg)
	f.input = updated
	return cmd, false, false
}

func validateFolder(path string) string {
	if path == "" {
		return "Folder path required"
	}
	if !filepath.IsAbs(path) {
		return "Folder path must be absolute"
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Sprintf("Cannot access %s", path)
	}
	if !info.IsDir() {
		return fmt.Sprintf("%s is not a directory", path)
	}
	return ""
}
