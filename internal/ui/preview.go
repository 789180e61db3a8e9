package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type previewData struct {
	target       string
	label        string
	lines        []string
	err          string
	loading      bool
	seq          int
	scrollOffset int  // position within lines; clamped by renderPreviewPanel
	rawANSI      bool // lines contain ANSI escapes from the backend
}

type previewLoadedMsg struct {
	target  string
	seq     int
	lines   []string
	err     error
	rawANSI bool
}

// ensurePreview schedules a fetch of the selected commit's detail when the
// backend supports previews. Stale responses are dropped by sequence
// number, so a fast-moving cursor never shows the wrong commit.
func (m *Model) ensurePreview() tea.Cmd {
	if m.previewer == nil {
		return nil
	}
	item, ok := m.list.CurrentItem()
	if !ok {
		m.preview = nil
		return nil
	}
	if m.preview != nil && m.preview.target == item.ID && !m.preview.loading {
		return nil
	}
	m.previewSeq++
	seq := m.previewSeq
	m.preview = &previewData{
		target:  item.ID,
		label:   shortLabel(item.ID),
		loading: true,
		seq:     seq,
	}
	previewer := m.previewer
	folder := m.store.WorkFolder()
	target := item.ID
	return func() tea.Msg {
		detail, err := previewer.Show(target, folder)
		var lines []string
		if err == nil {
			lines = strings.Split(strings.TrimRight(detail, "\n"), "\n")
		}
		return previewLoadedMsg{
			target:  target,
			seq:     seq,
			lines:   lines,
			err:     err,
			rawANSI: true,
		}
	}
}

func (m *Model) handlePreviewLoadedMsg(msg tea.Msg) tea.Cmd {
	update, ok := msg.(previewLoadedMsg)
	if !ok {
		return nil
	}
	data := m.preview
	if data == nil || data.seq != update.seq || data.target != update.target {
		return nil
	}
	data.loading = false
	data.rawANSI = update.rawANSI
	if update.err != nil {
		data.err = update.err.Error()
		data.lines = nil
		data.scrollOffset = 0
	} else {
		data.err = ""
		data.lines = update.lines
		data.scrollOffset = 0
	}
	m.syncViewport()
	return nil
}

func (m *Model) activePreview() *previewData {
	return m.preview
}

func shortLabel(id string) string {
	const width = 8
	runes := []rune(id)
	if len(runes) <= width {
		return id
	}
	return string(runes[:width])
}
