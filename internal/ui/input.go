package ui

import (
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quickvc/commit-control/internal/action"
	"github.com/quickvc/commit-control/internal/logging/events"
)

func (m *Model) updateFilterCursorModel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.filterCursor, cmd = m.filterCursor.Update(msg)
	return cmd
}

func (m *Model) noteFilterCursorChange(before int) {
	if before != m.list.FilterCursorPos() {
		m.filterCursorDirty = true
	}
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch m.mode {
	case ModeList:
		return m.handleListKey(keyMsg)
	case ModeFilter:
		return m.handleFilterKey(keyMsg)
	default:
		return nil
	}
}

func (m *Model) handleListKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c", "q":
		return tea.Quit
	case "up", "k":
		return m.moveCursor(func() bool { return m.list.MoveCursorUp() })
	case "down", "j":
		return m.moveCursor(func() bool { return m.list.MoveCursorDown() })
	case "pgup":
		return m.moveCursor(func() bool { return m.list.MoveCursorPageUp(m.maxVisibleItems()) })
	case "pgdown":
		return m.moveCursor(func() bool { return m.list.MoveCursorPageDown(m.maxVisibleItems()) })
	case "home", "g":
		return m.moveCursor(func() bool { return m.list.MoveCursorHome() })
	case "end", "G":
		return m.moveCursor(func() bool { return m.list.MoveCursorEnd() })
	case "/":
		m.setMode(ModeFilter)
		return nil
	case "esc":
		if m.list.Filter != "" {
			m.clearFilter()
			return m.ensurePreview()
		}
		return tea.Quit
	case "c":
		m.commentForm = action.NewCommentForm(m.store.NewComment())
		m.setMode(ModeComment)
		return nil
	case "f":
		m.folderForm = action.NewFolderForm(m.store.WorkFolder())
		m.setMode(ModeFolder)
		return nil
	case "n":
		return m.runAction(action.New, action.NewAction)
	case "u":
		return m.runAction(action.Update, action.UpdateAction)
	case "r":
		return m.runAction(action.Refresh, action.RefreshAction)
	case "R":
		return m.runAction(action.Reset, action.ResetAction)
	case "a":
		m.store.SetShowAll(!m.store.ShowAll())
		return nil
	case "+", "=":
		m.store.SetLimit(m.store.Limit() + limitStep)
		return nil
	case "-":
		m.store.SetLimit(m.store.Limit() - limitStep)
		return nil
	case "enter", "x":
		return m.startResetToCommit()
	}
	return nil
}

const limitStep = 5

func (m *Model) moveCursor(move func() bool) tea.Cmd {
	if !move() {
		return nil
	}
	if item, ok := m.list.CurrentItem(); ok {
		events.UI.Cursor(m.list.Cursor, item.ID)
	}
	m.syncSelection()
	m.syncViewport()
	return m.ensurePreview()
}

// startResetToCommit opens the confirmation prompt for the commit under the
// selection. A selection that no longer resolves against the list is
// reported, not acted on.
func (m *Model) startResetToCommit() tea.Cmd {
	m.syncSelection()
	commit, ok := m.store.SelectedCommit()
	if !ok {
		m.errMsg = "No commit selected"
		m.forceClearInfo()
		return nil
	}
	if m.gate.Busy(action.ResetToCommit) {
		return nil
	}
	m.confirm = action.NewConfirm(commit)
	m.setMode(ModeConfirm)
	return nil
}

func (m *Model) handleFilterKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		return tea.Quit
	case "esc":
		m.clearFilter()
		m.setMode(ModeList)
		return m.ensurePreview()
	case "enter":
		m.setMode(ModeList)
		return nil
	case "up":
		return m.moveCursor(func() bool { return m.list.MoveCursorUp() })
	case "down":
		return m.moveCursor(func() bool { return m.list.MoveCursorDown() })
	case "ctrl+u":
		if m.list.Filter == "" {
			return nil
		}
		m.clearFilter()
		return m.ensurePreview()
	case "ctrl+w":
		before := m.list.FilterCursorPos()
		if !m.list.DeleteFilterWordBackward() {
			return nil
		}
		m.noteFilterCursorChange(before)
		m.afterFilterEdit()
		events.Filter.WordBackspace(m.list.Filter)
		return m.ensurePreview()
	case "ctrl+a":
		before := m.list.FilterCursorPos()
		if m.list.MoveFilterCursorStart() {
			m.noteFilterCursorChange(before)
			events.Filter.Cursor(m.list.FilterCursor)
		}
		return nil
	case "ctrl+e":
		before := m.list.FilterCursorPos()
		if m.list.MoveFilterCursorEnd() {
			m.noteFilterCursorChange(before)
			events.Filter.Cursor(m.list.FilterCursor)
		}
		return nil
	case "alt+b":
		before := m.list.FilterCursorPos()
		if m.list.MoveFilterCursorWordBackward() {
			m.noteFilterCursorChange(before)
			events.Filter.Cursor(m.list.FilterCursor)
		}
		return nil
	case "alt+f":
		before := m.list.FilterCursorPos()
		if m.list.MoveFilterCursorWordForward() {
			m.noteFilterCursorChange(before)
			events.Filter.Cursor(m.list.FilterCursor)
		}
		return nil
	}
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		before := m.list.FilterCursorPos()
		if !m.list.DeleteFilterRuneBackward() {
			return nil
		}
		m.noteFilterCursorChange(before)
		m.afterFilterEdit()
		events.Filter.Backspace(m.list.Filter)
		return m.ensurePreview()
	case tea.KeyLeft:
		before := m.list.FilterCursorPos()
		if m.list.MoveFilterCursorRuneBackward() {
			m.noteFilterCursorChange(before)
			events.Filter.Cursor(m.list.FilterCursor)
		}
		return nil
	case tea.KeyRight:
		before := m.list.FilterCursorPos()
		if m.list.MoveFilterCursorRuneForward() {
			m.noteFilterCursorChange(before)
			events.Filter.Cursor(m.list.FilterCursor)
		}
		return nil
	case tea.KeySpace:
		return m.appendToFilter(" ")
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return nil
		}
		for _, r := range msg.Runes {
			if unicode.IsControl(r) {
				return nil
			}
		}
		return m.appendToFilter(string(msg.Runes))
	}
	return nil
}

func (m *Model) appendToFilter(text string) tea.Cmd {
	before := m.list.FilterCursorPos()
	if !m.list.InsertFilterText(text) {
		return nil
	}
	m.noteFilterCursorChange(before)
	m.afterFilterEdit()
	events.Filter.Append(m.list.Filter)
	return m.ensurePreview()
}

func (m *Model) clearFilter() {
	before := m.list.FilterCursorPos()
	m.list.SetFilter("", 0)
	m.noteFilterCursorChange(before)
	m.afterFilterEdit()
	events.Filter.Cleared()
}

// afterFilterEdit re-aligns the derived state every filter change touches:
// the store selection now points at the item under the (possibly moved)
// cursor, and the viewport follows it.
func (m *Model) afterFilterEdit() {
	m.forceClearInfo()
	m.errMsg = ""
	m.syncSelection()
	m.syncViewport()
}

func (m *Model) filterPrompt() (string, *lipgloss.Style) {
	render := func(style *lipgloss.Style, value string) string {
		if style == nil || value == "" {
			return value
		}
		return style.Render(value)
	}
	if styles.Cursor != nil {
		m.filterCursor.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		m.filterCursor.TextStyle = styles.Filter.Copy()
	} else {
		m.filterCursor.TextStyle = lipgloss.Style{}
	}
	prompt := "» "
	if styles.FilterPrompt != nil {
		prompt = styles.FilterPrompt.Render(prompt)
	}
	text := m.list.Filter
	if m.mode != ModeFilter && text == "" {
		return prompt + render(styles.FilterPlaceholder, "(/ to search)"), nil
	}
	if text == "" {
		placeholder := "(type to search)"
		runes := []rune(placeholder)
		var caretRune string
		var rest string
		if len(runes) > 0 {
			caretRune = string(runes[0])
			rest = string(runes[1:])
		}
		if styles.FilterPlaceholder != nil {
			m.filterCursor.TextStyle = styles.FilterPlaceholder.Copy()
		}
		caret := m.renderFilterCursor(caretRune)
		return prompt + caret + render(styles.FilterPlaceholder, rest), nil
	}
	runes := []rune(text)
	pos := m.list.FilterCursorPos()
	if pos < 0 {
		pos = 0
	}
	if pos > len(runes) {
		pos = len(runes)
	}
	if m.mode != ModeFilter {
		return prompt + render(styles.Filter, text), nil
	}
	before := render(styles.Filter, string(runes[:pos]))
	var caretRune string
	if pos < len(runes) {
		caretRune = string(runes[pos])
	} else {
		caretRune = " "
	}
	caret := m.renderFilterCursor(caretRune)
	var after string
	if pos < len(runes) {
		after = render(styles.Filter, string(runes[pos+1:]))
	}
	return prompt + before + caret + after, nil
}

func (m *Model) renderFilterCursor(char string) string {
	if char == "" {
		char = " "
	}
	m.filterCursor.SetChar(char)

	base := m.filterCursor.TextStyle.Copy()
	base = base.Inline(true)

	if m.filterCursor.Blink {
		return base.Render(char)
	}

	if styles.Cursor != nil {
		cursorStyle := styles.Cursor.Copy().Inline(true)
		base = base.Inherit(cursorStyle).Blink(false)
		return base.Render(char)
	}

	return base.Reverse(true).Render(char)
}
