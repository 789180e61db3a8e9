package events

import "github.com/quickvc/commit-control/internal/logging"

type VCSTracer struct{}

var VCS = VCSTracer{}

func (VCSTracer) Exec(args []string, folder string) {
	logging.Trace("vcs.exec", map[string]interface{}{"args": args, "folder": folder})
}

func (VCSTracer) Error(args []string, detail string) {
	logging.Trace("vcs.error", map[string]interface{}{"args": args, "detail": detail})
}
