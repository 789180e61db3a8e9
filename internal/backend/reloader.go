package backend

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/quickvc/commit-control/internal/logging/events"
	"github.com/quickvc/commit-control/internal/vcs"
)

// Request describes one reload of the commit list. Reason is carried into
// trace logs only.
type Request struct {
	Limit   int
	ShowAll bool
	Folder  string
	Reason  string
}

// Result carries a completed reload back to the update loop. On success
// Commits replaces the held list wholesale and LastComment the held comment.
type Result struct {
	Request     Request
	Commits     []vcs.Commit
	LastComment string
	Err         error
}

// Reloader drains a FIFO request queue on a single goroutine: reloads are
// never run concurrently with each other, never merged and never cancelled.
// A request arriving mid-reload simply queues behind it.
type Reloader struct {
	backend vcs.Backend

	ctx    context.Context
	cancel context.CancelFunc

	queue   chan Request
	results chan Result
	wg      sync.WaitGroup
}

// NewReloader starts the reload worker.
func NewReloader(b vcs.Backend) *Reloader {
	ctx, cancel := context.WithCancel(context.Background())
	r := &Reloader{
		backend: b,
		ctx:     ctx,
		cancel:  cancel,
		queue:   make(chan Request, 32),
		results: make(chan Result, 16),
	}
	r.wg.Add(1)
	go r.loop()
	go func() {
		r.wg.Wait()
		close(r.results)
	}()
	return r
}

// Enqueue appends a reload request to the queue. Used both by the debounced
// pipeline and by actions that need an immediate reload after mutating the
// backend.
func (r *Reloader) Enqueue(req Request) {
	select {
	case <-r.ctx.Done():
	case r.queue <- req:
		events.Reload.Enqueue(req.Reason, req.Limit, req.ShowAll)
	}
}

// Results returns the channel of completed reloads.
func (r *Reloader) Results() <-chan Result {
	return r.results
}

// Stop cancels the worker. A reload already in flight completes first.
func (r *Reloader) Stop() {
	r.cancel()
}

// Wait blocks until the worker has exited and the results channel is closed.
func (r *Reloader) Wait() {
	r.wg.Wait()
}

func (r *Reloader) loop() {
	defer r.wg.Done()
	for {
		select {
		case <-r.ctx.Done():
			return
		case req := <-r.queue:
			if !r.emit(r.reload(req)) {
				return
			}
		}
	}
}

func (r *Reloader) reload(req Request) Result {
	id := uuid.NewString()
	events.Reload.Start(id, req.Reason, req.Limit, req.ShowAll, req.Folder)
	commits, err := r.backend.Commits(req.Limit, req.ShowAll, req.Folder)
	if err != nil {
		events.Reload.Error(id, err)
		return Result{Request: req, Err: err}
	}
	lastComment, err := r.backend.LastComment(req.Folder)
	if err != nil {
		events.Reload.Error(id, err)
		return Result{Request: req, Err: err}
	}
	events.Reload.Done(id, len(commits))
	return Result{Request: req, Commits: commits, LastComment: lastComment}
}

func (r *Reloader) emit(res Result) bool {
	select {
	case <-r.ctx.Done():
		return false
	case r.results <- res:
		return true
	}
}
