package backend

import (
	"sync"
	"testing"
	"time"

	"github.com/quickvc/commit-control/internal/state"
)

type requestRecorder struct {
	mu   sync.Mutex
	got  []Request
	wake chan struct{}
}

func newRequestRecorder() *requestRecorder {
	return &requestRecorder{wake: make(chan struct{}, 16)}
}

func (r *requestRecorder) sink(req Request) {
	r.mu.Lock()
	r.got = append(r.got, req)
	r.mu.Unlock()
	r.wake <- struct{}{}
}

func (r *requestRecorder) requests() []Request {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Request(nil), r.got...)
}

func (r *requestRecorder) waitFor(t *testing.T, n int) {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		r.mu.Lock()
		count := len(r.got)
		r.mu.Unlock()
		if count >= n {
			return
		}
		select {
		case <-r.wake:
		case <-timeout:
			t.Fatalf("timed out waiting for %d requests, have %d", n, count)
		}
	}
}

func TestDebouncerEmitsLastValueOfBurst(t *testing.T) {
	rec := newRequestRecorder()
	d := NewDebouncer(20*time.Millisecond, rec.sink)
	defer d.Stop()

	for limit := 10; limit <= 50; limit += 10 {
		d.Set(Request{Limit: limit, Folder: "/work"})
	}
	rec.waitFor(t, 1)

	got := rec.requests()
	if len(got) != 1 {
		t.Fatalf("expected 1 settled request, got %d", len(got))
	}
	if got[0].Limit != 50 {
		t.Fatalf("expected last value 50, got %d", got[0].Limit)
	}
}

func TestDebouncerRestartsWindowOnEveryValue(t *testing.T) {
	rec := newRequestRecorder()
	d := NewDebouncer(50*time.Millisecond, rec.sink)
	defer d.Stop()

	// Keep feeding values faster than the settle window; nothing may
	// emit while the burst is alive.
	for i := 0; i < 5; i++ {
		d.Set(Request{Limit: i, Folder: "/work"})
		time.Sleep(10 * time.Millisecond)
	}
	if got := rec.requests(); len(got) != 0 {
		t.Fatalf("expected no emission mid-burst, got %d", len(got))
	}
	rec.waitFor(t, 1)
	if got := rec.requests(); got[0].Limit != 4 {
		t.Fatalf("expected final value 4, got %d", got[0].Limit)
	}
}

func TestDebouncerDropsSettledDuplicate(t *testing.T) {
	rec := newRequestRecorder()
	d := NewDebouncer(10*time.Millisecond, rec.sink)
	defer d.Stop()

	req := Request{Limit: 25, ShowAll: false, Folder: "/work"}
	d.Set(req)
	rec.waitFor(t, 1)

	// Same settled value again: suppressed.
	d.Set(req)
	time.Sleep(50 * time.Millisecond)
	if got := rec.requests(); len(got) != 1 {
		t.Fatalf("expected duplicate suppressed, got %d emissions", len(got))
	}

	// A different value still flows.
	d.Set(Request{Limit: 30, Folder: "/work"})
	rec.waitFor(t, 2)
	if got := rec.requests(); got[1].Limit != 30 {
		t.Fatalf("expected 30, got %d", got[1].Limit)
	}
}

func TestDebouncerRoundTripSuppressed(t *testing.T) {
	rec := newRequestRecorder()
	d := NewDebouncer(30*time.Millisecond, rec.sink)
	defer d.Stop()

	base := Request{Limit: 25, Folder: "/work"}
	d.Set(base)
	rec.waitFor(t, 1)

	// Change away and back within one settle window: the burst settles on
	// the original value, which equals the last emission, so nothing runs.
	d.Set(Request{Limit: 40, Folder: "/work"})
	d.Set(base)
	time.Sleep(100 * time.Millisecond)
	if got := rec.requests(); len(got) != 1 {
		t.Fatalf("expected round trip suppressed, got %d emissions", len(got))
	}
}

func TestDebouncerWatchSnapshotsTheStore(t *testing.T) {
	store := state.New("/work")
	rec := newRequestRecorder()
	d := NewDebouncer(20*time.Millisecond, rec.sink)
	defer d.Stop()

	d.Watch(store.Subscribe(state.FieldLimit, state.FieldShowAll), func() Request {
		return Request{
			Limit:   store.Limit(),
			ShowAll: store.ShowAll(),
			Folder:  store.WorkFolder(),
			Reason:  "settings",
		}
	})

	store.SetLimit(10)
	store.SetShowAll(true)
	rec.waitFor(t, 1)

	got := rec.requests()
	last := got[len(got)-1]
	if last.Limit != 10 || !last.ShowAll {
		t.Fatalf("expected combined snapshot {10 true}, got %+v", last)
	}
}
