package testutil

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/quickvc/commit-control/internal/vcs"
)

// Call records one backend invocation for assertion in tests.
type Call struct {
	Op      string
	Comment string
	ID      string
	Folder  string
	Limit   int
	ShowAll bool
}

// Backend is an in-memory vcs.Backend with a call log. Commits are stored
// newest first, mirroring the fetch order of the real backend; identifiers
// are UUIDs. Failures and has-updates answers are scriptable.
type Backend struct {
	mu sync.Mutex

	commits []vcs.Commit
	dirty   bool
	calls   []Call

	// UpdatesScript, when non-empty, feeds HasUpdates answers in order;
	// the last entry repeats once exhausted.
	UpdatesScript []bool
	updatesIdx    int

	// FailNext makes the next mutating or fetching call fail with an
	// UnavailableError.
	FailNext bool

	// Gate, when non-nil, is received from at the start of every call so
	// tests can hold a call in flight.
	Gate chan struct{}
}

func NewBackend(comments ...string) *Backend {
	b := &Backend{}
	for i := len(comments) - 1; i >= 0; i-- {
		b.commits = append(b.commits, vcs.Commit{ID: uuid.NewString(), Comment: comments[i]})
	}
	b.renumber()
	return b
}

func (b *Backend) renumber() {
	for i := range b.commits {
		b.commits[i].Position = i
	}
}

func (b *Backend) enter(call Call) error {
	if b.Gate != nil {
		<-b.Gate
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, call)
	if b.FailNext {
		b.FailNext = false
		return &vcs.UnavailableError{Op: call.Op, Err: fmt.Errorf("scripted failure")}
	}
	return nil
}

// Calls returns a copy of the call log.
func (b *Backend) Calls() []Call {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Call(nil), b.calls...)
}

// CallOps returns just the operation names, in invocation order.
func (b *Backend) CallOps() []string {
	calls := b.Calls()
	ops := make([]string, len(calls))
	for i, c := range calls {
		ops[i] = c.Op
	}
	return ops
}

// SetFailNext scripts a failure for the next call.
func (b *Backend) SetFailNext(fail bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.FailNext = fail
}

// SetDirty marks the working folder as having pending updates.
func (b *Backend) SetDirty(dirty bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.dirty = dirty
}

// Head returns the most recent commit.
func (b *Backend) Head() (vcs.Commit, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.commits) == 0 {
		return vcs.Commit{}, false
	}
	return b.commits[0], true
}

func (b *Backend) HasUpdates(folder string) (bool, error) {
	if err := b.enter(Call{Op: "has-updates", Folder: folder}); err != nil {
		return false, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.UpdatesScript) > 0 {
		answer := b.UpdatesScript[b.updatesIdx]
		if b.updatesIdx < len(b.UpdatesScript)-1 {
			b.updatesIdx++
		}
		return answer, nil
	}
	return b.dirty, nil
}

func (b *Backend) New(comment, folder string) error {
	if err := b.enter(Call{Op: "new", Comment: comment, Folder: folder}); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.commits = append([]vcs.Commit{{ID: uuid.NewString(), Comment: comment}}, b.commits...)
	b.renumber()
	b.dirty = false
	return nil
}

func (b *Backend) Update(comment, folder string) error {
	if err := b.enter(Call{Op: "update", Comment: comment, Folder: folder}); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.commits) == 0 {
		return &vcs.UnavailableError{Op: "update", Err: fmt.Errorf("no commits")}
	}
	b.commits[0] = vcs.Commit{ID: uuid.NewString(), Comment: comment}
	b.renumber()
	b.dirty = false
	return nil
}

func (b *Backend) Reset(folder string) error {
	if err := b.enter(Call{Op: "reset", Folder: folder}); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.dirty = false
	return nil
}

func (b *Backend) ResetToCommit(id, folder string) error {
	if err := b.enter(Call{Op: "reset-to-commit", ID: id, Folder: folder}); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, c := range b.commits {
		if c.ID == id {
			b.commits = b.commits[i:]
			b.renumber()
			b.dirty = false
			return nil
		}
	}
	return &vcs.UnavailableError{Op: "reset-to-commit", Err: fmt.Errorf("unknown commit %s", id)}
}

func (b *Backend) Commits(limit int, showAll bool, folder string) ([]vcs.Commit, error) {
	if err := b.enter(Call{Op: "commits", Folder: folder, Limit: limit, ShowAll: showAll}); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	commits := b.commits
	if !showAll && limit > 0 && len(commits) > limit {
		commits = commits[:limit]
	}
	return append([]vcs.Commit(nil), commits...), nil
}

func (b *Backend) LastComment(folder string) (string, error) {
	if err := b.enter(Call{Op: "last-comment", Folder: folder}); err != nil {
		return "", err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.commits) == 0 {
		return "", nil
	}
	return b.commits[0].Comment, nil
}
