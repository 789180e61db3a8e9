// Package ui contains the Bubble Tea program that fronts the commit list.
// The Model type focuses on message orchestration, while dedicated helpers
// own input, rendering, previews and form hosting.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages.
//   - Update forwards messages to the active form first (comment, folder,
//     or the reset confirmation). When no form is active, the message is
//     routed through a typed handler registry so each tea.Msg is handled by
//     a focused function.
//   - The background pipelines (the update poller and the reload worker)
//     publish on plain channels; internal/ui/backend.go bridges those
//     channels into messages and re-arms after every delivery.
//
// State ownership:
//   - The authoritative view state lives in internal/state.Store. Every
//     write triggered by input happens on the update loop; pipeline results
//     are applied through internal/data/dispatcher.
//   - Presentation state (filtering, cursor, viewport) lives in
//     internal/ui/state.List and never leaks into the store, except for the
//     selection, which the model mirrors into the store so actions resolve
//     it by identifier.
//   - Action invocations pass through internal/ui/command.Gate, which
//     drops unavailable and still-running actions.
package ui
