package vcs

import "fmt"

// Commit is an immutable snapshot record fetched from the backend. ID is an
// opaque unique identifier: the git backend yields full hashes, the in-memory
// test backend yields UUIDs. Position reflects fetch order.
type Commit struct {
	ID       string
	Comment  string
	Position int
}

// ShortID returns a display-friendly prefix of the commit identifier.
func (c Commit) ShortID() string {
	const width = 8
	runes := []rune(c.ID)
	if len(runes) <= width {
		return c.ID
	}
	return string(runes[:width])
}

// Backend is the version-control collaborator. Every call targets the
// supplied working folder; implementations capture nothing between calls.
type Backend interface {
	HasUpdates(folder string) (bool, error)
	New(comment, folder string) error
	Update(comment, folder string) error
	Reset(folder string) error
	ResetToCommit(id, folder string) error
	Commits(limit int, showAll bool, folder string) ([]Commit, error)
	LastComment(folder string) (string, error)
}

// Previewer is an optional backend extension used by the preview panel.
type Previewer interface {
	Show(id, folder string) (string, error)
}

// UnavailableError wraps a failed backend call. Pipelines treat it as a
// transient fault: it surfaces on the status line and never stops the
// poller or future reload attempts.
type UnavailableError struct {
	Op  string
	Err error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("backend unavailable (%s): %v", e.Op, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }
