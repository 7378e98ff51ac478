package git

import (
	"errors"
	"strings"
	"testing"

	"github.com/randalmurphal/redbranch/testutil"
)

func TestNewContext_NotARepo(t *testing.T) {
	_, err := NewContext(t.TempDir())
	if !errors.Is(err, ErrNotGitRepo) {
		t.Errorf("error = %v, want ErrNotGitRepo", err)
	}
}

func TestNewContext_ResolvesRoot(t *testing.T) {
	dir := testutil.SetupTestRepo(t)

	ctx, err := NewContext(dir)
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}
	if ctx.RepoPath() == "" {
		t.Error("RepoPath should not be empty")
	}
}

func TestContext_CurrentBranch(t *testing.T) {
	dir := testutil.SetupTestRepo(t)
	ctx, err := NewContext(dir)
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}

	branch, err := ctx.CurrentBranch()
	if err != nil {
		t.Fatalf("CurrentBranch: %v", err)
	}
	if branch != "master" {
		t.Errorf("branch = %q, want master", branch)
	}
}

func TestContext_HeadRef(t *testing.T) {
	dir := testutil.SetupTestRepo(t)
	testutil.CreateBranch(t, dir, "rd-42-abc-8.1-do-stuff")

	ctx, err := NewContext(dir)
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}

	ref, err := ctx.HeadRef()
	if err != nil {
		t.Fatalf("HeadRef: %v", err)
	}
	if ref != "refs/heads/rd-42-abc-8.1-do-stuff" {
		t.Errorf("ref = %q", ref)
	}
	if !strings.HasSuffix(ref, "rd-42-abc-8.1-do-stuff") {
		t.Errorf("ref %q should end with the branch name", ref)
	}
}

func TestContext_Remotes(t *testing.T) {
	dir := testutil.SetupTestRepo(t)
	ctx, err := NewContext(dir)
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}

	remotes, err := ctx.Remotes()
	if err != nil {
		t.Fatalf("Remotes: %v", err)
	}
	if len(remotes) != 0 {
		t.Errorf("fresh repo should have no remotes, got %v", remotes)
	}

	testutil.SetupRemote(t, dir)

	remotes, err = ctx.Remotes()
	if err != nil {
		t.Fatalf("Remotes: %v", err)
	}
	if len(remotes) != 1 || remotes[0] != "origin" {
		t.Errorf("remotes = %v, want [origin]", remotes)
	}
}

func TestContext_RemoteBranches(t *testing.T) {
	dir := testutil.SetupTestRepo(t)
	testutil.SetupRemote(t, dir, "wab-8.1", "rd-7-abc-8.1-parent")

	ctx, err := NewContext(dir)
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}

	branches, err := ctx.RemoteBranches()
	if err != nil {
		t.Fatalf("RemoteBranches: %v", err)
	}

	want := map[string]bool{
		"origin/master":              true,
		"origin/wab-8.1":             true,
		"origin/rd-7-abc-8.1-parent": true,
	}
	if len(branches) != len(want) {
		t.Fatalf("branches = %v, want %v", branches, want)
	}
	for _, b := range branches {
		if !want[b] {
			t.Errorf("unexpected branch %q", b)
		}
	}
}

func TestContext_CreateBranchAt(t *testing.T) {
	dir := testutil.SetupTestRepo(t)
	testutil.SetupRemote(t, dir)

	ctx, err := NewContext(dir)
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}

	if err := ctx.CreateBranchAt("rd-42-abc-8.1-do-stuff", "origin/master"); err != nil {
		t.Fatalf("CreateBranchAt: %v", err)
	}
	if !ctx.BranchExists("rd-42-abc-8.1-do-stuff") {
		t.Error("branch should exist after CreateBranchAt")
	}

	// HEAD must not have moved.
	if got := testutil.GetCurrentBranch(t, dir); got != "master" {
		t.Errorf("current branch = %q, want master", got)
	}

	// Existing branches are never overwritten.
	err = ctx.CreateBranchAt("rd-42-abc-8.1-do-stuff", "origin/master")
	if !errors.Is(err, ErrBranchExists) {
		t.Errorf("error = %v, want ErrBranchExists", err)
	}
}

func TestContext_Checkout(t *testing.T) {
	dir := testutil.SetupTestRepo(t)
	testutil.SetupRemote(t, dir)

	ctx, err := NewContext(dir)
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}

	if err := ctx.CreateBranchAt("rd-42-abc-8.1-do-stuff", "origin/master"); err != nil {
		t.Fatalf("CreateBranchAt: %v", err)
	}
	if err := ctx.Checkout("rd-42-abc-8.1-do-stuff"); err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	if got := testutil.GetCurrentBranch(t, dir); got != "rd-42-abc-8.1-do-stuff" {
		t.Errorf("current branch = %q", got)
	}
}

func TestContext_RevParse(t *testing.T) {
	dir := testutil.SetupTestRepo(t)
	testutil.SetupRemote(t, dir)

	ctx, err := NewContext(dir)
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}

	sha, err := ctx.RevParse("origin/master")
	if err != nil {
		t.Fatalf("RevParse: %v", err)
	}
	if sha != testutil.GetHeadSHA(t, dir) {
		t.Errorf("sha = %q, want HEAD sha", sha)
	}

	if _, err := ctx.RevParse("origin/does-not-exist"); err == nil {
		t.Error("expected error for unknown ref")
	}
}

func TestContext_ChangedFiles(t *testing.T) {
	dir := testutil.SetupTestRepo(t)
	ctx, err := NewContext(dir)
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}

	n, err := ctx.ChangedFiles()
	if err != nil {
		t.Fatalf("ChangedFiles: %v", err)
	}
	if n != 0 {
		t.Errorf("clean repo: changed files = %d, want 0", n)
	}

	testutil.WriteFile(t, dir, "dirty.txt", "uncommitted\n")

	n, err = ctx.ChangedFiles()
	if err != nil {
		t.Fatalf("ChangedFiles: %v", err)
	}
	if n != 1 {
		t.Errorf("changed files = %d, want 1", n)
	}

	clean, err := ctx.IsClean()
	if err != nil {
		t.Fatalf("IsClean: %v", err)
	}
	if clean {
		t.Error("repo with untracked file should not be clean")
	}
}
