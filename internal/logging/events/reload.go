package events

import "github.com/quickvc/commit-control/internal/logging"

type ReloadTracer struct{}

var Reload = ReloadTracer{}

func (ReloadTracer) Enqueue(reason string, limit int, showAll bool) {
	logging.Trace("reload.enqueue", map[string]interface{}{"reason": reason, "limit": limit, "showAll": showAll})
}

func (ReloadTracer) Settled(limit int, showAll bool) {
	logging.Trace("reload.settled", map[string]interface{}{"limit": limit, "showAll": showAll})
}

func (ReloadTracer) Duplicate(limit int, showAll bool) {
	logging.Trace("reload.duplicate", map[string]interface{}{"limit": limit, "showAll": showAll})
}

func (ReloadTracer) Start(id, reason string, limit int, showAll bool, folder string) {
	logging.Trace("reload.start", map[string]interface{}{
		"id":      id,
		"reason":  reason,
		"limit":   limit,
		"showAll": showAll,
		"folder":  folder,
	})
}

func (ReloadTracer) Done(id string, commits int) {
	logging.Trace("reload.done", map[string]interface{}{"id": id, "commits": commits})
}

func (ReloadTracer) Error(id string, err error) {
	if err == nil {
		return
	}
	logging.Trace("reload.error", map[string]interface{}{"id": id, "error": err.Error()})
}
