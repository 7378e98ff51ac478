// Package testutil provides git repository fixtures for tests.
package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// SetupTestRepo creates a temporary git repository with one commit on
// master. Returns the path to the repository. The repository is
// cleaned up when the test ends.
func SetupTestRepo(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()

	if err := runGit(t, dir, "init", "-b", "master"); err != nil {
		t.Fatalf("git init failed: %v", err)
	}
	if err := runGit(t, dir, "config", "user.email", "test@test.com"); err != nil {
		t.Fatalf("git config email failed: %v", err)
	}
	if err := runGit(t, dir, "config", "user.name", "Test User"); err != nil {
		t.Fatalf("git config name failed: %v", err)
	}

	readme := filepath.Join(dir, "README.md")
	if err := os.WriteFile(readme, []byte("# Test Repository\n"), 0o644); err != nil {
		t.Fatalf("failed to create README: %v", err)
	}
	if err := runGit(t, dir, "add", "."); err != nil {
		t.Fatalf("git add failed: %v", err)
	}
	if err := runGit(t, dir, "commit", "-m", "Initial commit"); err != nil {
		t.Fatalf("git commit failed: %v", err)
	}

	return dir
}

// SetupRemote adds a bare repository as the "origin" remote of repoDir
// and pushes master plus the named extra branches to it, so the
// repository sees origin/master, origin/<branch>... as remote-tracking
// branches. Extra branches are created from master when they do not
// exist locally, and master is checked out again afterwards.
func SetupRemote(t *testing.T, repoDir string, branches ...string) {
	t.Helper()

	bare := t.TempDir()
	if err := runGit(t, bare, "init", "--bare", "-b", "master"); err != nil {
		t.Fatalf("git init --bare failed: %v", err)
	}

	if err := runGit(t, repoDir, "remote", "add", "origin", bare); err != nil {
		t.Fatalf("git remote add failed: %v", err)
	}

	for _, branch := range branches {
		if branchExists(repoDir, branch) {
			continue
		}
		if err := runGit(t, repoDir, "branch", branch, "master"); err != nil {
			t.Fatalf("git branch %s failed: %v", branch, err)
		}
	}

	args := append([]string{"push", "origin", "master"}, branches...)
	if err := runGit(t, repoDir, args...); err != nil {
		t.Fatalf("git push failed: %v", err)
	}
}

// AddRemote adds an additional remote pointing at a fresh bare
// repository, without pushing anything to it.
func AddRemote(t *testing.T, repoDir, name string) {
	t.Helper()

	bare := t.TempDir()
	if err := runGit(t, bare, "init", "--bare", "-b", "master"); err != nil {
		t.Fatalf("git init --bare failed: %v", err)
	}
	if err := runGit(t, repoDir, "remote", "add", name, bare); err != nil {
		t.Fatalf("git remote add %s failed: %v", name, err)
	}
}

// CreateBranch creates and checks out a new branch in the test repo.
func CreateBranch(t *testing.T, repoDir, branch string) {
	t.Helper()

	if err := runGit(t, repoDir, "checkout", "-b", branch); err != nil {
		t.Fatalf("git checkout -b %s failed: %v", branch, err)
	}
}

// SwitchBranch switches to an existing branch.
func SwitchBranch(t *testing.T, repoDir, branch string) {
	t.Helper()

	if err := runGit(t, repoDir, "checkout", branch); err != nil {
		t.Fatalf("git checkout %s failed: %v", branch, err)
	}
}

// CommitFile creates or updates a file and commits it.
func CommitFile(t *testing.T, repoDir, path, content, message string) {
	t.Helper()

	fullPath := filepath.Join(repoDir, path)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
	if err := runGit(t, repoDir, "add", path); err != nil {
		t.Fatalf("git add %s failed: %v", path, err)
	}
	if err := runGit(t, repoDir, "commit", "-m", message); err != nil {
		t.Fatalf("git commit failed: %v", err)
	}
}

// WriteFile creates or updates a file without committing it, leaving
// the working tree dirty.
func WriteFile(t *testing.T, repoDir, path, content string) {
	t.Helper()

	fullPath := filepath.Join(repoDir, path)
	if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
}

// GetCurrentBranch returns the current branch name.
func GetCurrentBranch(t *testing.T, repoDir string) string {
	t.Helper()

	cmd := exec.Command("git", "branch", "--show-current")
	cmd.Dir = repoDir

	output, err := cmd.Output()
	if err != nil {
		t.Fatalf("git branch --show-current failed: %v", err)
	}
	return strings.TrimSpace(string(output))
}

// GetHeadSHA returns the current HEAD SHA.
func GetHeadSHA(t *testing.T, repoDir string) string {
	t.Helper()

	cmd := exec.Command("git", "rev-parse", "HEAD")
	cmd.Dir = repoDir

	output, err := cmd.Output()
	if err != nil {
		t.Fatalf("git rev-parse HEAD failed: %v", err)
	}
	return strings.TrimSpace(string(output))
}

// branchExists reports whether a local branch exists in repoDir.
func branchExists(repoDir, branch string) bool {
	cmd := exec.Command("git", "rev-parse", "--verify", "refs/heads/"+branch)
	cmd.Dir = repoDir
	return cmd.Run() == nil
}

// runGit runs a git command in the specified directory.
func runGit(t *testing.T, dir string, args ...string) error {
	t.Helper()

	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME=Test User",
		"GIT_AUTHOR_EMAIL=test@test.com",
		"GIT_COMMITTER_NAME=Test User",
		"GIT_COMMITTER_EMAIL=test@test.com",
	)

	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Logf("git %v output: %s", args, output)
		return err
	}
	return nil
}
