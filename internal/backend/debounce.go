package backend

import (
	"time"

	"github.com/quickvc/commit-control/internal/logging/events"
	"github.com/quickvc/commit-control/internal/state"
)

// Debouncer suppresses bursts of reload requests: a value is held until no
// further value arrives for the settle window, then handed to the sink.
// Only the last value of a burst survives, and a settled value identical to
// the previously emitted one is dropped.
type Debouncer struct {
	settle time.Duration
	sink   func(Request)

	in   chan Request
	done chan struct{}
}

// NewDebouncer starts the debounce loop feeding sink.
func NewDebouncer(settle time.Duration, sink func(Request)) *Debouncer {
	d := &Debouncer{
		settle: settle,
		sink:   sink,
		in:     make(chan Request, 16),
		done:   make(chan struct{}),
	}
	go d.loop()
	return d
}

// Set replaces the pending value and restarts the settle window.
func (d *Debouncer) Set(req Request) {
	select {
	case d.in <- req:
	case <-d.done:
	}
}

// Watch drains a store subscription, turning every change into a fresh
// snapshot of the observed pair. The snapshot callback reads the store, so
// the debouncer always settles on the latest combined value.
func (d *Debouncer) Watch(changes <-chan state.Change, snapshot func() Request) {
	go func() {
		for range changes {
			d.Set(snapshot())
		}
	}()
}

// Stop terminates the debounce loop. A pending value is discarded.
func (d *Debouncer) Stop() {
	close(d.done)
}

func (d *Debouncer) loop() {
	var pending Request
	var last Request
	havePending := false
	haveLast := false

	timer := time.NewTimer(d.settle)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-d.done:
			return
		case req := <-d.in:
			pending = req
			havePending = true
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(d.settle)
		case <-timer.C:
			if !havePending {
				continue
			}
			havePending = false
			if haveLast && pending == last {
				events.Reload.Duplicate(pending.Limit, pending.ShowAll)
				continue
			}
			last = pending
			haveLast = true
			events.Reload.Settled(pending.Limit, pending.ShowAll)
			d.sink(pending)
		}
	}
}
