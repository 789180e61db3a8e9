package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/quickvc/commit-control/internal/backend"
)

// The poller and reloader publish on plain channels; these commands bridge
// them into the update loop one message at a time, re-arming after each
// delivery the way Bubble Tea expects.

func waitForPollEvent(p *backend.Poller) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-p.Events()
		if !ok {
			return pollDoneMsg{}
		}
		return pollEventMsg{event: evt}
	}
}

func waitForReloadResult(r *backend.Reloader) tea.Cmd {
	return func() tea.Msg {
		res, ok := <-r.Results()
		if !ok {
			return reloadDoneMsg{}
		}
		return reloadResultMsg{result: res}
	}
}

type pollEventMsg struct {
	event backend.PollEvent
}

type pollDoneMsg struct{}

type reloadResultMsg struct {
	result backend.Result
}

type reloadDoneMsg struct{}

func (m *Model) handlePollEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(pollEventMsg)
	if !ok {
		return nil
	}
	res := m.dispatcher.HandlePoll(eventMsg.event)
	if res.Failed {
		m.errMsg = m.store.LastError()
	} else if m.errMsg != "" && m.store.LastError() == "" {
		m.errMsg = ""
	}
	if m.poller == nil {
		return nil
	}
	return waitForPollEvent(m.poller)
}

func (m *Model) handlePollDoneMsg(tea.Msg) tea.Cmd {
	m.poller = nil
	return nil
}

func (m *Model) handleReloadResultMsg(msg tea.Msg) tea.Cmd {
	resultMsg, ok := msg.(reloadResultMsg)
	if !ok {
		return nil
	}
	m.loading = false
	res := m.dispatcher.HandleReload(resultMsg.result)
	var previewCmd tea.Cmd
	if res.CommitsUpdated {
		m.errMsg = ""
		m.refreshItems()
		previewCmd = m.ensurePreview()
	}
	if res.Failed {
		m.errMsg = m.store.LastError()
	}
	if m.reloader == nil {
		return previewCmd
	}
	waitCmd := waitForReloadResult(m.reloader)
	if previewCmd != nil {
		return tea.Batch(previewCmd, waitCmd)
	}
	return waitCmd
}

func (m *Model) handleReloadDoneMsg(tea.Msg) tea.Cmd {
	m.reloader = nil
	return nil
}
