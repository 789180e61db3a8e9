package state

import (
	"sync"

	"github.com/quickvc/commit-control/internal/vcs"
)

// Field identifies a single view-state field for subscriptions.
type Field int

const (
	FieldLimit Field = iota
	FieldShowAll
	FieldNewComment
	FieldLastComment
	FieldSelection
	FieldWorkFolder
	FieldHasUpdates
	FieldCommits
	FieldLastError
)

// DefaultLimit is the number of commits requested when nothing else is
// configured.
const DefaultLimit = 25

// Change is delivered to subscribers after a field write. Value carries the
// new field value; for FieldCommits it is a defensive copy of the list.
type Change struct {
	Field Field
	Value interface{}
}

type subscriber struct {
	fields map[Field]struct{}
	ch     chan Change
}

func (s *subscriber) wants(f Field) bool {
	if len(s.fields) == 0 {
		return true
	}
	_, ok := s.fields[f]
	return ok
}

// Store owns the mutable view state. Writes update the held value
// synchronously and enqueue a Change for every matching subscriber in write
// order, so per-field delivery is FIFO. All UI-visible writes happen on the
// program's update loop; the mutex covers the poller and reload goroutines
// publishing through the dispatcher.
type Store struct {
	mu          sync.Mutex
	limit       int
	showAll     bool
	newComment  string
	lastComment string
	selectedID  string
	workFolder  string
	hasUpdates  bool
	commits     []vcs.Commit
	lastError   string
	subs        []*subscriber
}

// New creates a store with the default field values, targeting folder.
func New(folder string) *Store {
	return &Store{limit: DefaultLimit, workFolder: folder}
}

// Subscribe registers interest in the given fields (all fields when none are
// given). The returned channel is buffered; subscribers are expected to keep
// draining it for the life of the process.
func (s *Store) Subscribe(fields ...Field) <-chan Change {
	sub := &subscriber{ch: make(chan Change, 64)}
	if len(fields) > 0 {
		sub.fields = make(map[Field]struct{}, len(fields))
		for _, f := range fields {
			sub.fields[f] = struct{}{}
		}
	}
	s.mu.Lock()
	s.subs = append(s.subs, sub)
	s.mu.Unlock()
	return sub.ch
}

func (s *Store) publish(f Field, value interface{}) {
	for _, sub := range s.subs {
		if sub.wants(f) {
			sub.ch <- Change{Field: f, Value: value}
		}
	}
}

func (s *Store) Limit() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.limit
}

// SetLimit stores a new commit count bound. Values below one are clamped.
func (s *Store) SetLimit(limit int) {
	if limit < 1 {
		limit = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.limit = limit
	s.publish(FieldLimit, limit)
}

func (s *Store) ShowAll() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.showAll
}

func (s *Store) SetShowAll(showAll bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.showAll = showAll
	s.publish(FieldShowAll, showAll)
}

func (s *Store) NewComment() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.newComment
}

func (s *Store) SetNewComment(comment string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.newComment = comment
	s.publish(FieldNewComment, comment)
}

func (s *Store) LastComment() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastComment
}

func (s *Store) SetLastComment(comment string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastComment = comment
	s.publish(FieldLastComment, comment)
}

// Selection returns the selected commit identifier, empty when none.
func (s *Store) Selection() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedID
}

// SelectedCommit resolves the selection against the current list.
func (s *Store) SelectedCommit() (vcs.Commit, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selectedID == "" {
		return vcs.Commit{}, false
	}
	for _, c := range s.commits {
		if c.ID == s.selectedID {
			return c, true
		}
	}
	return vcs.Commit{}, false
}

func (s *Store) SetSelection(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedID = id
	s.publish(FieldSelection, id)
}

func (s *Store) WorkFolder() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.workFolder
}

func (s *Store) SetWorkFolder(folder string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workFolder = folder
	s.publish(FieldWorkFolder, folder)
}

func (s *Store) HasUpdates() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasUpdates
}

func (s *Store) SetHasUpdates(hasUpdates bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hasUpdates = hasUpdates
	s.publish(FieldHasUpdates, hasUpdates)
}

func (s *Store) Commits() []vcs.Commit {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneCommits(s.commits)
}

// SetCommits replaces the commit list wholesale and re-resolves the
// selection by identifier: kept when still listed, cleared otherwise.
func (s *Store) SetCommits(commits []vcs.Commit) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commits = cloneCommits(commits)
	s.publish(FieldCommits, cloneCommits(commits))
	if s.selectedID == "" {
		return
	}
	for _, c := range s.commits {
		if c.ID == s.selectedID {
			return
		}
	}
	s.selectedID = ""
	s.publish(FieldSelection, "")
}

func (s *Store) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

func (s *Store) SetLastError(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = message
	s.publish(FieldLastError, message)
}

func cloneCommits(commits []vcs.Commit) []vcs.Commit {
	if len(commits) == 0 {
		return nil
	}
	dup := make([]vcs.Commit, len(commits))
	copy(dup, commits)
	return dup
}
