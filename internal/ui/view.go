package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"
)

const (
	previewMaxDisplayLines = 20  // used by inline (vertical) preview only
	previewPanelMinWidth   = 40  // minimum cols for the preview panel; below this no split
	previewPanelFraction   = 0.6 // fraction of total width given to the preview panel
)

// previewBorder styles used when drawing the preview box.
var (
	previewBorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	previewScrollStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	raw           bool // text contains ANSI escapes; skip style wrapping, use ANSI-aware truncation
}

// hasSidePreview reports whether the list should be rendered with the
// preview panel on the right rather than inline below the items.
func (m *Model) hasSidePreview() bool {
	if m.previewer == nil {
		return false
	}
	return m.previewPanelWidth() > 0
}

// previewPanelWidth returns the width in columns for the right-hand preview
// panel. Returns 0 when the terminal is too narrow to split.
func (m *Model) previewPanelWidth() int {
	if m.width <= 0 {
		return 0
	}
	w := int(float64(m.width) * previewPanelFraction)
	if w < previewPanelMinWidth {
		return 0
	}
	return w
}

// listColumnWidth returns the width available for the left-hand list column.
func (m *Model) listColumnWidth() int {
	return m.width - m.previewPanelWidth()
}

// View implements tea.Model.
func (m *Model) View() string {
	switch m.mode {
	case ModeComment:
		if m.commentForm != nil {
			return m.viewCommentForm()
		}
	case ModeFolder:
		if m.folderForm != nil {
			return m.viewFolderForm()
		}
	case ModeConfirm:
		if m.confirm != nil {
			return m.viewConfirm()
		}
	}
	if m.hasSidePreview() {
		return m.viewSideBySide()
	}
	return m.viewVertical()
}

func (m *Model) header() string {
	folder := m.store.WorkFolder()
	if folder == "" {
		return "commit-control"
	}
	return "commit-control — " + folder
}

// statusLine summarises the store fields the list itself does not show:
// the fetch bound, the pending-updates indicator and the queued comment.
func (m *Model) statusLine() string {
	parts := make([]string, 0, 4)
	if m.store.ShowAll() {
		parts = append(parts, "all commits")
	} else {
		parts = append(parts, fmt.Sprintf("latest %d", m.store.Limit()))
	}
	if m.store.HasUpdates() {
		parts = append(parts, "● pending changes")
	}
	if comment := m.store.NewComment(); comment != "" {
		parts = append(parts, fmt.Sprintf("next: %q", comment))
	} else if last := m.store.LastComment(); last != "" {
		parts = append(parts, fmt.Sprintf("last: %q", last))
	}
	return strings.Join(parts, "   ")
}

func (m *Model) statusStyledLine() styledLine {
	if m.store.HasUpdates() {
		return styledLine{text: m.statusLine(), style: styles.Updates}
	}
	return styledLine{text: m.statusLine(), style: styles.Status}
}

func (m *Model) listLines(width int) []styledLine {
	lines := make([]styledLine, 0, 16)
	m.syncViewport()
	start := 0
	displayItems := m.list.Items
	if maxItems := m.maxVisibleItems(); maxItems > 0 && len(displayItems) > maxItems {
		start = m.list.ViewportOffset
		if start < 0 {
			start = 0
		}
		if start+maxItems > len(displayItems) {
			start = len(displayItems) - maxItems
			if start < 0 {
				start = 0
			}
			m.list.ViewportOffset = start
		}
		displayItems = displayItems[start : start+maxItems]
	}
	switch {
	case m.loading && len(m.list.Full) == 0:
		lines = append(lines, styledLine{text: "Loading commits…", style: styles.Loading})
	case len(m.list.Items) == 0:
		msg := "(no commits)"
		if m.list.Filter != "" {
			msg = fmt.Sprintf("No matches for %q", m.list.Filter)
		}
		lines = append(lines, styledLine{text: msg, style: styles.Info})
	default:
		for i, item := range displayItems {
			idx := start + i
			lines = append(lines, m.buildItemLine(item.Label, idx, width))
		}
	}
	return lines
}

// viewVertical is the single-column layout with an optional inline preview
// block below the list (used when the terminal is too narrow for
// side-by-side, or when the backend has no preview support).
func (m *Model) viewVertical() string {
	lines := make([]styledLine, 0, 16)
	lines = append(lines, styledLine{text: m.header(), style: styles.Header})
	lines = append(lines, m.statusStyledLine())
	lines = append(lines, m.listLines(m.width)...)
	if preview := m.activePreview(); shouldRenderPreview(preview) {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: previewTitleText(preview), style: styles.PreviewTitle})
		if preview.err != "" {
			lines = append(lines, styledLine{text: preview.err, style: styles.Error})
		} else {
			for _, line := range previewDisplayLines(preview) {
				if preview.rawANSI {
					lines = append(lines, styledLine{text: line, raw: true})
				} else {
					lines = append(lines, styledLine{text: line, style: styles.PreviewBody})
				}
			}
		}
	}
	if info := m.currentInfo(); info != "" {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: info, style: styles.Info})
	}
	if m.showFooter {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: footerText, style: styles.Footer})
	}
	lines = limitHeight(lines, m.height-2, m.width)
	lines = applyWidth(lines, m.width)
	lines = append(lines, m.bottomBar(m.width)...)
	return renderLines(lines)
}

// viewSideBySide renders the list on the left and a preview panel on the
// right.
func (m *Model) viewSideBySide() string {
	listW := m.listColumnWidth()
	prevW := m.previewPanelWidth()

	// Bottom bar: status/error line + filter prompt. These span the full
	// terminal width beneath both columns.
	const bottomBarRows = 2

	contentLines := make([]styledLine, 0, 16)
	contentLines = append(contentLines, styledLine{text: m.header(), style: styles.Header})
	contentLines = append(contentLines, m.statusStyledLine())
	contentLines = append(contentLines, m.listLines(listW)...)
	if info := m.currentInfo(); info != "" {
		contentLines = append(contentLines, styledLine{})
		contentLines = append(contentLines, styledLine{text: info, style: styles.Info})
	}
	if m.showFooter {
		contentLines = append(contentLines, styledLine{})
		contentLines = append(contentLines, styledLine{text: footerText, style: styles.Footer})
	}

	panelH := m.height - bottomBarRows
	if panelH < 1 {
		panelH = 1
	}
	if len(contentLines) > panelH {
		contentLines = contentLines[:panelH]
	}
	for len(contentLines) < panelH {
		contentLines = append(contentLines, styledLine{})
	}

	contentLines = applyWidth(contentLines, listW)
	leftStr := renderLines(contentLines)

	// Pad/truncate every rendered row to exactly listW visible columns so
	// JoinHorizontal keeps the preview panel flush to the right edge
	// regardless of content length or cursor-blink state.
	leftRows := strings.Split(leftStr, "\n")
	for i, row := range leftRows {
		w := ansi.StringWidth(row)
		if w > listW {
			leftRows[i] = truncate.StringWithTail(row, uint(listW-1), "…")
		} else if w < listW {
			leftRows[i] = row + strings.Repeat(" ", listW-w)
		}
	}
	leftStr = strings.Join(leftRows, "\n")

	rightStr := m.renderPreviewPanel(m.activePreview(), prevW, panelH)

	topSection := lipgloss.JoinHorizontal(lipgloss.Top, leftStr, rightStr)

	bottomLines := m.bottomBar(m.width)
	bottomStr := renderLines(bottomLines)

	return topSection + "\n" + bottomStr
}

const footerText = "↑/↓ move  enter reset-to  n new  u update  r refresh  c comment  f folder  a all  / search  q quit"

func (m *Model) bottomBar(width int) []styledLine {
	var statusLine styledLine
	if m.errMsg != "" {
		statusLine = styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: styles.Error}
	}
	promptText, _ := m.filterPrompt()
	bottomLines := []styledLine{
		statusLine,
		{text: promptText},
	}
	return applyWidth(bottomLines, width)
}

// buildItemLine constructs a single styledLine for a list row. width is the
// target column width; when > 0 the text is padded so that the selected
// row's background spans the full container.
func (m *Model) buildItemLine(label string, idx, width int) styledLine {
	indicator := "▌"
	lineStyle := styles.Item
	indicatorStyle := styles.ItemIndicator
	if idx == m.list.Cursor {
		indicatorStyle = styles.SelectedItemIndicator
		lineStyle = styles.SelectedItem
	}
	fullText := indicator + " " + label
	if width > 0 {
		if pad := width - len([]rune(fullText)); pad > 0 {
			fullText += strings.Repeat(" ", pad)
		}
	}
	return styledLine{
		text:          fullText,
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1, // just the ▌ character
	}
}

// renderPreviewPanel builds the bordered preview box as a string with
// exactly height rows and totalWidth columns.
func (m *Model) renderPreviewPanel(preview *previewData, totalWidth, height int) string {
	const (
		tlc = "╭"
		trc = "╮"
		blc = "╰"
		brc = "╯"
		hz  = "─"
		vt  = "│"
	)

	innerW := totalWidth - 2
	innerH := height - 2
	if innerW < 1 {
		innerW = 1
	}
	if innerH < 1 {
		innerH = 1
	}

	titleLabel := "Commit"
	scrollInfo := ""
	var contentLines []string
	var errLine string

	if preview != nil {
		if lbl := strings.TrimSpace(preview.label); lbl != "" {
			titleLabel = "Commit " + lbl
		}
		if preview.err != "" {
			errLine = preview.err
		} else if len(preview.lines) > 0 {
			maxOffset := len(preview.lines) - innerH
			if maxOffset < 0 {
				maxOffset = 0
			}
			if preview.scrollOffset > maxOffset {
				preview.scrollOffset = maxOffset
			}
			if preview.scrollOffset < 0 {
				preview.scrollOffset = 0
			}
			end := preview.scrollOffset + innerH
			if end > len(preview.lines) {
				end = len(preview.lines)
			}
			contentLines = preview.lines[preview.scrollOffset:end]
			lastVisible := preview.scrollOffset + len(contentLines)
			scrollInfo = fmt.Sprintf(" %d/%d ", lastVisible, len(preview.lines))
		} else if preview.loading {
			contentLines = []string{"Loading…"}
		}
	} else {
		contentLines = []string{"(no commit selected)"}
	}

	// Build top border: ╭─ title ──────────── scrollInfo ─╮
	titleSeg := " " + titleLabel + " "
	scrollSeg := scrollInfo
	dashes := totalWidth - 4 - len([]rune(titleSeg)) - len([]rune(scrollSeg))
	if dashes < 0 {
		scrollSeg = ""
		dashes = totalWidth - 4 - len([]rune(titleSeg))
	}
	if dashes < 0 {
		titleSeg = " … "
		dashes = totalWidth - 4 - len([]rune(titleSeg))
	}
	if dashes < 0 {
		dashes = 0
	}
	topLine := previewBorderStyle.Render(tlc+hz) +
		styles.PreviewTitle.Render(titleSeg) +
		previewBorderStyle.Render(strings.Repeat(hz, dashes)) +
		previewScrollStyle.Render(scrollSeg) +
		previewBorderStyle.Render(hz+trc)

	bottomLine := previewBorderStyle.Render(blc + strings.Repeat(hz, innerW) + brc)

	bodyStyle := styles.PreviewBody
	rawANSI := preview != nil && preview.rawANSI
	if errLine != "" {
		bodyStyle = styles.Error
		contentLines = []string{errLine}
		rawANSI = false
	}

	rows := make([]string, 0, height)
	rows = append(rows, topLine)
	for i := 0; i < innerH; i++ {
		var content string
		if i < len(contentLines) {
			content = contentLines[i]
		}
		w := ansi.StringWidth(content)
		if w > innerW {
			content = truncate.StringWithTail(content, uint(innerW-1), "…")
			w = ansi.StringWidth(content)
		}
		if w < innerW {
			content = content + strings.Repeat(" ", innerW-w)
		}
		var styledContent string
		if rawANSI {
			styledContent = content
		} else if bodyStyle != nil {
			styledContent = bodyStyle.Render(content)
		} else {
			styledContent = content
		}
		rows = append(rows, previewBorderStyle.Render(vt)+styledContent+previewBorderStyle.Render(vt))
	}
	rows = append(rows, bottomLine)
	return strings.Join(rows, "\n")
}

// handleMouseMsg handles mouse wheel events to scroll the preview panel.
func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(tea.MouseMsg)
	if !ok {
		return nil
	}
	if !m.hasSidePreview() {
		return nil
	}
	preview := m.activePreview()
	if preview == nil || preview.loading {
		return nil
	}
	innerH := m.height - 2
	if innerH < 1 {
		innerH = 1
	}
	switch ev.Button {
	case tea.MouseButtonWheelUp:
		preview.scrollOffset -= 3
		if preview.scrollOffset < 0 {
			preview.scrollOffset = 0
		}
	case tea.MouseButtonWheelDown:
		maxOffset := len(preview.lines) - innerH
		if maxOffset < 0 {
			maxOffset = 0
		}
		preview.scrollOffset += 3
		if preview.scrollOffset > maxOffset {
			preview.scrollOffset = maxOffset
		}
	}
	return nil
}

func (m *Model) viewCommentForm() string {
	return m.viewForm(m.commentForm.Title(), m.commentForm.InputView(), "", m.commentForm.Help())
}

func (m *Model) viewFolderForm() string {
	return m.viewForm(m.folderForm.Title(), m.folderForm.InputView(), m.folderForm.Error(), m.folderForm.Help())
}

func (m *Model) viewForm(title, input, errText, help string) string {
	lines := []styledLine{
		{text: m.header(), style: styles.Header},
		{},
		{text: title, style: styles.FormTitle},
		{text: input, raw: true},
	}
	if errText != "" {
		lines = append(lines, styledLine{text: errText, style: styles.FormError})
	}
	lines = append(lines, styledLine{}, styledLine{text: help, style: styles.FormHelp})
	lines = limitHeight(lines, m.height, m.width)
	lines = applyWidth(lines, m.width)
	return renderLines(lines)
}

func (m *Model) viewConfirm() string {
	lines := []styledLine{
		{text: m.header(), style: styles.Header},
		{},
		{text: m.confirm.Header(), style: styles.FormTitle},
		{text: m.confirm.Body(), style: styles.Info},
		{},
		{text: m.confirm.Help(), style: styles.FormHelp},
	}
	lines = limitHeight(lines, m.height, m.width)
	lines = applyWidth(lines, m.width)
	return renderLines(lines)
}

func shouldRenderPreview(data *previewData) bool {
	if data == nil {
		return false
	}
	if data.err != "" {
		return true
	}
	if len(data.lines) > 0 {
		return true
	}
	return data.loading
}

func previewTitleText(data *previewData) string {
	label := strings.TrimSpace(data.label)
	if label == "" {
		label = strings.TrimSpace(data.target)
	}
	if label == "" {
		label = "(unknown)"
	}
	status := ""
	if data.loading && data.err == "" {
		status = " (loading…)"
	}
	return fmt.Sprintf("Commit %s%s", label, status)
}

func previewDisplayLines(data *previewData) []string {
	lines := data.lines
	if len(lines) == 0 {
		if data.loading {
			return []string{"Loading preview…"}
		}
		return []string{}
	}
	if previewMaxDisplayLines > 0 && len(lines) > previewMaxDisplayLines {
		return lines[:previewMaxDisplayLines]
	}
	return lines
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.syncViewport()
	return nil
}

func (m *Model) maxVisibleItems() int {
	if m.height <= 0 {
		return -1
	}
	used := 2 // bottom bar: error/status + filter prompt
	used += 2 // header + status line
	if info := m.currentInfo(); info != "" {
		used += 2
	}
	if m.showFooter {
		used += 2
	}
	// In side-by-side mode the full height is available for the left column;
	// no preview rows need to be reserved.
	if !m.hasSidePreview() && m.previewer != nil {
		if preview := m.activePreview(); shouldRenderPreview(preview) {
			used += 2 // blank separator + title line
			if preview.err != "" {
				used++
			} else {
				used += len(previewDisplayLines(preview))
			}
		} else {
			used += 3 // blank + title + "Loading preview…"
		}
	}
	remain := m.height - used
	if remain < 1 {
		return 1
	}
	return remain
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			w := ansi.StringWidth(text)
			if w > width {
				text = truncate.StringWithTail(text, uint(width-1), "…")
			}
		} else {
			text = truncateText(text, width)
		}
		result[i] = styledLine{
			text:          text,
			style:         line.style,
			prefixStyle:   line.prefixStyle,
			highlightFrom: line.highlightFrom,
			raw:           line.raw,
		}
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			// Text already contains ANSI escapes; pass through as-is.
			out[i] = text
			continue
		}
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
