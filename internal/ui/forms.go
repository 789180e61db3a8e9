package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/quickvc/commit-control/internal/action"
)

// formOwnsMsg reports whether a message belongs to the active form rather
// than the model's handler table. Pipeline results and resizes keep flowing
// while a form is open.
func formOwnsMsg(msg tea.Msg) bool {
	switch msg.(type) {
	case tea.WindowSizeMsg, action.Result,
		pollEventMsg, pollDoneMsg, reloadResultMsg, reloadDoneMsg,
		previewLoadedMsg:
		return false
	}
	return true
}

func (m *Model) handleCommentForm(msg tea.Msg) (bool, tea.Cmd) {
	if m.commentForm == nil || !formOwnsMsg(msg) {
		return false, nil
	}
	cmd, submitted, cancelled := m.commentForm.Update(msg)
	switch {
	case submitted:
		value := m.commentForm.Value()
		m.store.SetNewComment(value)
		if value == "" {
			m.setInfo("Comment cleared")
		} else {
			m.setInfo("Comment set")
		}
		m.commentForm = nil
		m.setMode(ModeList)
	case cancelled:
		m.commentForm = nil
		m.setMode(ModeList)
	}
	return true, cmd
}

func (m *Model) handleFolderForm(msg tea.Msg) (bool, tea.Cmd) {
	if m.folderForm == nil || !formOwnsMsg(msg) {
		return false, nil
	}
	cmd, submitted, cancelled := m.folderForm.Update(msg)
	switch {
	case submitted:
		folder := m.folderForm.Value()
		m.folderForm = nil
		m.setMode(ModeList)
		return true, m.switchFolder(folder)
	case cancelled:
		m.folderForm = nil
		m.setMode(ModeList)
	}
	return true, cmd
}

// switchFolder retargets the store, the filesystem watcher and the reload
// pipeline at the new working folder.
func (m *Model) switchFolder(folder string) tea.Cmd {
	cmd := m.runAction(action.SetFolder, func(ctx action.Context) tea.Cmd {
		return action.SetFolderAction(ctx, folder)
	})
	if cmd == nil {
		return nil
	}
	if m.watcher != nil {
		if err := m.watcher.SetFolder(folder); err != nil {
			m.errMsg = err.Error()
		}
	}
	m.loading = true
	return cmd
}

func (m *Model) handleConfirm(msg tea.Msg) (bool, tea.Cmd) {
	if m.confirm == nil || !formOwnsMsg(msg) {
		return false, nil
	}
	switch m.confirm.Update(msg) {
	case action.OutcomeConfirmed:
		commit := m.confirm.Commit()
		m.confirm = nil
		m.setMode(ModeList)
		return true, m.runAction(action.ResetToCommit, func(ctx action.Context) tea.Cmd {
			return action.ResetToCommitAction(ctx, commit)
		})
	case action.OutcomeAborted:
		m.confirm = nil
		m.setMode(ModeList)
	}
	return true, nil
}
