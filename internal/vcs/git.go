package vcs

import (
	"bytes"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/quickvc/commit-control/internal/logging/events"
)

// logFieldSeparator keeps hash and subject apart in git log output without
// colliding with characters a comment may contain.
const logFieldSeparator = "\x1f"

// Git drives the git executable against a working folder.
type Git struct{}

// NewGit returns the default git-backed implementation of Backend.
func NewGit() *Git {
	return &Git{}
}

func (g *Git) HasUpdates(folder string) (bool, error) {
	out, err := g.run(folder, "status", "--porcelain")
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(out) != "", nil
}

func (g *Git) New(comment, folder string) error {
	if _, err := g.run(folder, "add", "-A"); err != nil {
		return err
	}
	_, err := g.run(folder, "commit", "-m", comment)
	return err
}

func (g *Git) Update(comment, folder string) error {
	if _, err := g.run(folder, "add", "-A"); err != nil {
		return err
	}
	_, err := g.run(folder, "commit", "--amend", "-m", comment)
	return err
}

func (g *Git) Reset(folder string) error {
	_, err := g.run(folder, "reset", "--hard", "HEAD")
	return err
}

func (g *Git) ResetToCommit(id, folder string) error {
	if strings.TrimSpace(id) == "" {
		return &UnavailableError{Op: "reset", Err: fmt.Errorf("empty commit id")}
	}
	_, err := g.run(folder, "reset", "--hard", id)
	return err
}

func (g *Git) Commits(limit int, showAll bool, folder string) ([]Commit, error) {
	if !g.hasHead(folder) {
		return nil, nil
	}
	args := []string{"log", "--pretty=format:%H" + logFieldSeparator + "%s"}
	if !showAll {
		if limit < 1 {
			limit = 1
		}
		args = append(args, "-n", strconv.Itoa(limit))
	}
	out, err := g.run(folder, args...)
	if err != nil {
		return nil, err
	}
	return parseLog(out), nil
}

func (g *Git) LastComment(folder string) (string, error) {
	if !g.hasHead(folder) {
		return "", nil
	}
	out, err := g.run(folder, "log", "-1", "--pretty=%s")
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n"), nil
}

// Show returns a human-readable rendering of a single commit for the
// preview panel. Output may contain ANSI colour sequences.
func (g *Git) Show(id, folder string) (string, error) {
	return g.run(folder, "show", "--stat", "--color=always", "--pretty=medium", id)
}

// hasHead reports whether the repository has any commit yet. An unborn
// branch is a normal state (empty list, empty last comment), not a fault.
func (g *Git) hasHead(folder string) bool {
	_, err := g.run(folder, "rev-parse", "--verify", "HEAD")
	return err == nil
}

func (g *Git) run(folder string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = folder
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	events.VCS.Exec(args, folder)
	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = err.Error()
		}
		events.VCS.Error(args, detail)
		return "", &UnavailableError{Op: "git " + args[0], Err: fmt.Errorf("%s", detail)}
	}
	return stdout.String(), nil
}

func parseLog(out string) []Commit {
	lines := strings.Split(out, "\n")
	commits := make([]Commit, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		id, comment, found := strings.Cut(line, logFieldSeparator)
		if !found {
			continue
		}
		commits = append(commits, Commit{ID: id, Comment: comment, Position: len(commits)})
	}
	return commits
}
