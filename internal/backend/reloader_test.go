package backend

import (
	"testing"
	"time"

	"github.com/quickvc/commit-control/internal/testutil"
)

func collectResults(t *testing.T, r *Reloader, want int) []Result {
	t.Helper()
	results := make([]Result, 0, want)
	timeout := time.After(5 * time.Second)
	for len(results) < want {
		select {
		case res, ok := <-r.Results():
			if !ok {
				t.Fatalf("results channel closed after %d results", len(results))
			}
			results = append(results, res)
		case <-timeout:
			t.Fatalf("timed out after %d of %d results", len(results), want)
		}
	}
	return results
}

func TestReloaderFetchesCommitsAndLastComment(t *testing.T) {
	be := testutil.NewBackend("first", "second", "third")
	r := NewReloader(be)
	defer r.Stop()

	r.Enqueue(Request{Limit: 2, Folder: "/work", Reason: "test"})
	res := collectResults(t, r, 1)[0]

	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if len(res.Commits) != 2 {
		t.Fatalf("expected 2 commits, got %d", len(res.Commits))
	}
	if res.Commits[0].Comment != "third" {
		t.Fatalf("expected newest first, got %q", res.Commits[0].Comment)
	}
	if res.LastComment != "third" {
		t.Fatalf("expected last comment third, got %q", res.LastComment)
	}
	if res.Request.Reason != "test" {
		t.Fatalf("expected request echoed back, got %+v", res.Request)
	}
}

func TestReloaderShowAllIgnoresLimit(t *testing.T) {
	be := testutil.NewBackend("a", "b", "c", "d")
	r := NewReloader(be)
	defer r.Stop()

	r.Enqueue(Request{Limit: 1, ShowAll: true, Folder: "/work"})
	res := collectResults(t, r, 1)[0]
	if len(res.Commits) != 4 {
		t.Fatalf("expected full history, got %d commits", len(res.Commits))
	}
}

func TestReloaderRunsRequestsInOrderWithoutOverlap(t *testing.T) {
	be := testutil.NewBackend("only")
	gate := make(chan struct{})
	be.Gate = gate
	r := NewReloader(be)
	defer r.Stop()

	// Three requests while the first fetch is held in flight; they must
	// complete one by one, in submission order.
	r.Enqueue(Request{Limit: 1, Folder: "/work", Reason: "r1"})
	r.Enqueue(Request{Limit: 2, Folder: "/work", Reason: "r2"})
	r.Enqueue(Request{Limit: 3, Folder: "/work", Reason: "r3"})

	// Each reload makes two backend calls (commits + last comment).
	for i := 0; i < 6; i++ {
		gate <- struct{}{}
	}
	results := collectResults(t, r, 3)
	for i, want := range []string{"r1", "r2", "r3"} {
		if results[i].Request.Reason != want {
			t.Fatalf("result %d: expected %s, got %s", i, want, results[i].Request.Reason)
		}
	}
}

func TestReloaderReportsFaultWithoutStopping(t *testing.T) {
	be := testutil.NewBackend("first")
	r := NewReloader(be)
	defer r.Stop()

	be.SetFailNext(true)
	r.Enqueue(Request{Limit: 5, Folder: "/work", Reason: "fails"})
	r.Enqueue(Request{Limit: 5, Folder: "/work", Reason: "recovers"})

	results := collectResults(t, r, 2)
	if results[0].Err == nil {
		t.Fatalf("expected first reload to fail")
	}
	if results[1].Err != nil {
		t.Fatalf("expected second reload to succeed, got %v", results[1].Err)
	}
	if len(results[1].Commits) != 1 {
		t.Fatalf("expected 1 commit, got %d", len(results[1].Commits))
	}
}
