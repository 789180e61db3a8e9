package ui

import (
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/quickvc/commit-control/internal/action"
	"github.com/quickvc/commit-control/internal/backend"
	"github.com/quickvc/commit-control/internal/data/dispatcher"
	"github.com/quickvc/commit-control/internal/logging/events"
	"github.com/quickvc/commit-control/internal/state"
	"github.com/quickvc/commit-control/internal/theme"
	"github.com/quickvc/commit-control/internal/ui/command"
	uistate "github.com/quickvc/commit-control/internal/ui/state"
	"github.com/quickvc/commit-control/internal/vcs"
)

// Mode selects which input surface owns the keyboard.
type Mode int

const (
	ModeList Mode = iota
	ModeFilter
	ModeComment
	ModeFolder
	ModeConfirm
)

func (m Mode) String() string {
	switch m {
	case ModeList:
		return "list"
	case ModeFilter:
		return "filter"
	case ModeComment:
		return "comment"
	case ModeFolder:
		return "folder"
	case ModeConfirm:
		return "confirm"
	default:
		return "unknown"
	}
}

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Model implements the Bubble Tea model for the commit list UI. All state
// writes triggered by input or by pipeline results happen here, on the
// update loop; the store fans the writes out to its subscribers.
type Model struct {
	store      *state.Store
	dispatcher *dispatcher.Dispatcher
	gate       *command.Gate
	actions    action.Context
	poller     *backend.Poller
	reloader   *backend.Reloader
	watcher    *backend.FolderWatcher
	previewer  vcs.Previewer

	list *uistate.List
	mode Mode

	loading     bool
	errMsg      string
	infoMsg     string
	infoExpire  time.Time
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	verbose     bool

	commentForm *action.CommentForm
	folderForm  *action.FolderForm
	confirm     *action.Confirm

	filterCursor      cursor.Model
	filterCursorDirty bool

	preview    *previewData
	previewSeq int

	handlers map[reflect.Type]msgHandler
}

// Options configures NewModel. Zero width/height track the terminal.
type Options struct {
	Width      int
	Height     int
	ShowFooter bool
	Verbose    bool
}

// NewModel wires the UI over the store and the background pipelines. The
// poller and reloader channels are bridged into messages by Init.
func NewModel(store *state.Store, be vcs.Backend, poller *backend.Poller, reloader *backend.Reloader, watcher *backend.FolderWatcher, opts Options) *Model {
	m := &Model{
		store:      store,
		dispatcher: dispatcher.New(store),
		gate:       command.NewGate(store),
		poller:     poller,
		reloader:   reloader,
		watcher:    watcher,
		list:       uistate.NewList(nil),
		mode:       ModeList,
		loading:    true,
		showFooter: opts.ShowFooter,
		verbose:    opts.Verbose,
	}
	m.actions = action.Context{
		Backend: be,
		Store:   store,
		Enqueue: reloader.Enqueue,
		Nudge:   poller.Nudge,
	}
	if p, ok := be.(vcs.Previewer); ok {
		m.previewer = p
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		c.TextStyle = styles.Filter.Copy()
	}
	c.SetChar(" ")
	m.filterCursor = c
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		waitForPollEvent(m.poller),
		waitForReloadResult(m.reloader),
	}
	if cmd := m.filterCursor.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateFilterCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handled, cmd := m.handleActiveForm(msg); handled {
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, m.finishUpdate(cmds)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, m.finishUpdate(cmds)
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) handleActiveForm(msg tea.Msg) (bool, tea.Cmd) {
	switch m.mode {
	case ModeComment:
		return m.handleCommentForm(msg)
	case ModeFolder:
		return m.handleFolderForm(msg)
	case ModeConfirm:
		return m.handleConfirm(msg)
	default:
		return false, nil
	}
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(action.Result{}):     m.handleActionResultMsg,
		reflect.TypeOf(pollEventMsg{}):      m.handlePollEventMsg,
		reflect.TypeOf(pollDoneMsg{}):       m.handlePollDoneMsg,
		reflect.TypeOf(reloadResultMsg{}):   m.handleReloadResultMsg,
		reflect.TypeOf(reloadDoneMsg{}):     m.handleReloadDoneMsg,
		reflect.TypeOf(previewLoadedMsg{}):  m.handlePreviewLoadedMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.filterCursorDirty {
		m.filterCursorDirty = false
		m.filterCursor.Blink = false
		if cmd := m.filterCursor.BlinkCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) setMode(mode Mode) {
	if m.mode == mode {
		return
	}
	m.mode = mode
	events.UI.Mode(mode.String())
}

func (m *Model) handleActionResultMsg(msg tea.Msg) tea.Cmd {
	res, ok := msg.(action.Result)
	if !ok {
		return nil
	}
	m.gate.Finish(res.Action)
	if res.Err != nil {
		events.Action.Error(res.Err)
		m.errMsg = res.Err.Error()
		m.forceClearInfo()
		return nil
	}
	m.errMsg = ""
	if res.Info != "" {
		events.Action.Success(res.Info)
		m.setInfo(res.Info)
	}
	return nil
}

// runAction routes an action body through the gate. The builder runs
// synchronously when admitted, so store writes it performs (consuming the
// pending comment, retargeting the folder) land before the asynchronous
// part starts.
func (m *Model) runAction(name string, build func(action.Context) tea.Cmd) tea.Cmd {
	return m.gate.Execute(name, func() tea.Cmd {
		return build(m.actions)
	})
}

func (m *Model) syncViewport() {
	m.list.EnsureCursorVisible(m.maxVisibleItems())
}

// syncSelection points the store's selection at the item under the cursor,
// or clears it when the filtered view is empty.
func (m *Model) syncSelection() {
	item, ok := m.list.CurrentItem()
	if !ok {
		if m.store.Selection() != "" {
			m.store.SetSelection("")
		}
		return
	}
	if m.store.Selection() != item.ID {
		m.store.SetSelection(item.ID)
	}
}

// refreshItems rebuilds the list from the store's commit list, keeping the
// cursor on the selected commit when it survived the replacement.
func (m *Model) refreshItems() {
	selected := m.store.Selection()
	items := action.CommitItems(m.store.Commits())
	m.list.UpdateItems(items)
	if idx := m.list.IndexOf(selected); idx >= 0 {
		m.list.Cursor = idx
	} else if len(m.list.Items) > 0 {
		// The selection vanished with the replacement (or nothing was
		// selected yet); the cursor restarts at the top.
		m.list.Cursor = 0
	}
	m.syncSelection()
	m.syncViewport()
}
