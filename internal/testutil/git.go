package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// RequireGit skips the test when no git binary is on the PATH.
func RequireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
}

// GitRepo creates a throwaway git repository with one commit per comment,
// oldest first, and returns its path.
func GitRepo(t *testing.T, comments ...string) string {
	t.Helper()
	RequireGit(t)
	dir := t.TempDir()
	runGit(t, dir, "init")
	runGit(t, dir, "config", "user.email", "test@example.com")
	runGit(t, dir, "config", "user.name", "test")
	for i, comment := range comments {
		name := filepath.Join(dir, "file.txt")
		if err := os.WriteFile(name, []byte(comment+"\n"), 0o644); err != nil {
			t.Fatalf("write fixture file: %v", err)
		}
		runGit(t, dir, "add", "-A")
		runGit(t, dir, "commit", "-m", comment)
		_ = i
	}
	return dir
}

// Touch modifies a file in the repository so it reports pending updates.
func Touch(t *testing.T, dir string) {
	t.Helper()
	name := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(name, []byte("modified\n"), 0o644); err != nil {
		t.Fatalf("touch fixture file: %v", err)
	}
}

func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_DATE=2024-01-01T00:00:00Z",
		"GIT_COMMITTER_DATE=2024-01-01T00:00:00Z",
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v: %v\n%s", args, err, out)
	}
}
