package git

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Context manages git operations for a repository.
type Context struct {
	repoPath string        // Path to the repository root
	runner   CommandRunner // Command runner (defaults to ExecRunner)
}

// Option configures Context.
type Option func(*Context)

// WithRunner sets a custom command runner for git operations.
// This is primarily used for testing to inject mock command execution.
func WithRunner(runner CommandRunner) Option {
	return func(g *Context) {
		g.runner = runner
	}
}

// NewContext creates a git context for the repository containing path.
// It resolves the repository root the way `git rev-parse` does, so any
// subdirectory of a working tree is accepted.
func NewContext(path string, opts ...Option) (*Context, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}

	g := &Context{
		repoPath: absPath,
		runner:   NewExecRunner(),
	}

	for _, opt := range opts {
		opt(g)
	}

	root, err := g.runGit("rev-parse", "--show-toplevel")
	if err != nil {
		return nil, ErrNotGitRepo
	}
	if root != "" {
		g.repoPath = root
	}

	return g, nil
}

// RepoPath returns the path to the repository root.
func (g *Context) RepoPath() string {
	return g.repoPath
}

// CurrentBranch returns the current branch name.
func (g *Context) CurrentBranch() (string, error) {
	branch, err := g.runGit("rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", &Error{Op: "get current branch", Err: err}
	}
	return branch, nil
}

// HeadRef returns the full symbolic reference HEAD points at,
// e.g. "refs/heads/master". Returns ErrDetachedHead when HEAD does not
// point at a branch.
func (g *Context) HeadRef() (string, error) {
	ref, err := g.runGit("symbolic-ref", "-q", "HEAD")
	if err != nil {
		return "", ErrDetachedHead
	}
	return ref, nil
}

// Remotes returns the names of the configured remotes.
func (g *Context) Remotes() ([]string, error) {
	out, err := g.runGit("remote")
	if err != nil {
		return nil, &Error{Op: "list remotes", Err: err}
	}
	if out == "" {
		return nil, nil
	}
	return strings.Split(out, "\n"), nil
}

// RemoteBranches returns the remote-tracking branch names visible in
// the repository, in "remote/branch" form. The symbolic <remote>/HEAD
// entries are filtered out.
func (g *Context) RemoteBranches() ([]string, error) {
	out, err := g.runGit("for-each-ref", "--format=%(refname:short)", "refs/remotes")
	if err != nil {
		return nil, &Error{Op: "list remote branches", Err: err}
	}
	if out == "" {
		return nil, nil
	}

	var branches []string
	for _, line := range strings.Split(out, "\n") {
		if strings.HasSuffix(line, "/HEAD") {
			continue
		}
		branches = append(branches, line)
	}
	return branches, nil
}

// RevParse resolves a ref name to a commit SHA.
func (g *Context) RevParse(ref string) (string, error) {
	sha, err := g.runGit("rev-parse", "--verify", ref+"^{commit}")
	if err != nil {
		return "", &Error{Op: "resolve " + ref, Err: err}
	}
	return sha, nil
}

// CreateBranchAt creates a new branch pointing at startPoint without
// switching to it. An existing branch is never overwritten.
func (g *Context) CreateBranchAt(name, startPoint string) error {
	if _, err := g.runGit("branch", name, startPoint); err != nil {
		if strings.Contains(err.Error(), "already exists") {
			return ErrBranchExists
		}
		return &Error{Op: "create branch", Err: err}
	}
	return nil
}

// Checkout switches the working tree and HEAD to the specified ref.
func (g *Context) Checkout(ref string) error {
	if _, err := g.runGit("checkout", ref); err != nil {
		return &Error{Op: "checkout", Err: err}
	}
	return nil
}

// BranchExists checks if a local branch exists.
func (g *Context) BranchExists(name string) bool {
	_, err := g.runGit("rev-parse", "--verify", "refs/heads/"+name)
	return err == nil
}

// ChangedFiles returns the number of files with uncommitted changes in
// the working tree.
func (g *Context) ChangedFiles() (int, error) {
	out, err := g.runGit("status", "--porcelain")
	if err != nil {
		return 0, &Error{Op: "status", Err: err}
	}
	if out == "" {
		return 0, nil
	}
	return len(strings.Split(out, "\n")), nil
}

// IsClean returns true if the working tree has no uncommitted changes.
func (g *Context) IsClean() (bool, error) {
	n, err := g.ChangedFiles()
	if err != nil {
		return false, err
	}
	return n == 0, nil
}

// runGit executes a git command and returns stdout.
func (g *Context) runGit(args ...string) (string, error) {
	return g.runner.Run(g.repoPath, "git", args...)
}
