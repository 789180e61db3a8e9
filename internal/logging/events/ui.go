package events

import "github.com/quickvc/commit-control/internal/logging"

type UITracer struct{}

type FilterTracer struct{}

type ActionTracer struct{}

type CommandTracer struct{}

var (
	UI      = UITracer{}
	Filter  = FilterTracer{}
	Action  = ActionTracer{}
	Command = CommandTracer{}
)

func (UITracer) Cursor(index int, id string) {
	logging.Trace("list.cursor", map[string]interface{}{"index": index, "id": id})
}

func (UITracer) Mode(mode string) {
	logging.Trace("ui.mode", map[string]interface{}{"mode": mode})
}

func (ActionTracer) Prompt(action string) {
	logging.Trace("action.prompt", map[string]interface{}{"action": action})
}

func (ActionTracer) Submit(action, value string) {
	logging.Trace("action.submit", map[string]interface{}{"action": action, "value": value})
}

func (ActionTracer) Cancel(action, reason string) {
	logging.Trace("action.cancel", map[string]interface{}{"action": action, "reason": reason})
}

func (ActionTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", map[string]interface{}{"error": err.Error()})
}

func (ActionTracer) Success(info string) {
	logging.Trace("action.success", map[string]interface{}{"info": info})
}

func (FilterTracer) Cleared() {
	logging.Trace("filter.clear", nil)
}

func (FilterTracer) Append(filter string) {
	logging.Trace("filter.append", map[string]interface{}{"filter": filter})
}

func (FilterTracer) Backspace(filter string) {
	logging.Trace("filter.backspace", map[string]interface{}{"filter": filter})
}

func (FilterTracer) WordBackspace(filter string) {
	logging.Trace("filter.word-backspace", map[string]interface{}{"filter": filter})
}

func (FilterTracer) Cursor(pos int) {
	logging.Trace("filter.cursor", map[string]interface{}{"cursor": pos})
}

func (CommandTracer) Queue(action string) {
	logging.Trace("command.queue", map[string]interface{}{"action": action})
}

func (CommandTracer) Disabled(action string) {
	logging.Trace("command.disabled", map[string]interface{}{"action": action})
}

func (CommandTracer) Busy(action string) {
	logging.Trace("command.busy", map[string]interface{}{"action": action})
}

func (CommandTracer) Result(action, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"action": action, "msg": msgType})
}
