package backend

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/quickvc/commit-control/internal/logging/events"
	"github.com/quickvc/commit-control/internal/vcs"
)

// PollEvent reports the outcome of one has-updates check.
type PollEvent struct {
	HasUpdates bool
	Err        error
}

// Poller asks the backend for pending updates at a fixed interval and
// publishes only transitions. Checks run on a single goroutine, so a tick
// never overlaps the previous check; a slow backend simply delays the next
// one. The working folder is re-read before every check so a folder switch
// takes effect on the following tick.
type Poller struct {
	backend  vcs.Backend
	folder   func() string
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	events chan PollEvent
	nudge  chan struct{}
	wg     sync.WaitGroup
}

// NewPoller starts the polling loop. The first answer is always published;
// afterwards only changes are.
func NewPoller(b vcs.Backend, folder func() string, interval time.Duration) *Poller {
	ctx, cancel := context.WithCancel(context.Background())
	p := &Poller{
		backend:  b,
		folder:   folder,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan PollEvent, 16),
		nudge:    make(chan struct{}, 1),
	}
	p.wg.Add(1)
	go p.loop()
	go func() {
		p.wg.Wait()
		close(p.events)
	}()
	return p
}

// Events returns the channel of published poll events.
func (p *Poller) Events() <-chan PollEvent {
	return p.events
}

// Nudge schedules an out-of-band check without waiting for the next tick.
// Safe to call from any goroutine; redundant nudges collapse.
func (p *Poller) Nudge() {
	select {
	case p.nudge <- struct{}{}:
	default:
	}
}

// Stop cancels the poller. A check already in flight completes first; use
// Wait when a clean drain is required.
func (p *Poller) Stop() {
	p.cancel()
}

// Wait blocks until the polling goroutine has exited and the events channel
// is closed.
func (p *Poller) Wait() {
	p.wg.Wait()
}

func (p *Poller) loop() {
	defer p.wg.Done()

	var last bool
	published := false

	check := func() bool {
		tick := uuid.NewString()
		folder := p.folder()
		events.Poller.Tick(tick, folder)
		hasUpdates, err := p.backend.HasUpdates(folder)
		if err != nil {
			// Faults are surfaced but do not count as a value: the next
			// successful answer is still compared against the last one.
			events.Poller.Error(tick, err)
			return p.emit(PollEvent{Err: err})
		}
		if published && hasUpdates == last {
			return true
		}
		last = hasUpdates
		published = true
		events.Poller.Publish(tick, hasUpdates)
		return p.emit(PollEvent{HasUpdates: hasUpdates})
	}

	if !check() {
		return
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.ctx.Done():
			return
		case <-ticker.C:
			if !check() {
				return
			}
		case <-p.nudge:
			if !check() {
				return
			}
		}
	}
}

func (p *Poller) emit(evt PollEvent) bool {
	select {
	case <-p.ctx.Done():
		return false
	case p.events <- evt:
		return true
	}
}
