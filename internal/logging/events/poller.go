package events

import "github.com/quickvc/commit-control/internal/logging"

type PollerTracer struct{}

var Poller = PollerTracer{}

func (PollerTracer) Tick(id, folder string) {
	logging.Trace("poller.tick", map[string]interface{}{"id": id, "folder": folder})
}

func (PollerTracer) Publish(id string, hasUpdates bool) {
	logging.Trace("poller.publish", map[string]interface{}{"id": id, "hasUpdates": hasUpdates})
}

func (PollerTracer) Error(id string, err error) {
	if err == nil {
		return
	}
	logging.Trace("poller.error", map[string]interface{}{"id": id, "error": err.Error()})
}

func (PollerTracer) WatchError(err error) {
	if err == nil {
		return
	}
	logging.Trace("poller.watch-error", map[string]interface{}{"error": err.Error()})
}
