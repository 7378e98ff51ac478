package redbranch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/randalmurphal/redbranch/branch"
	"github.com/randalmurphal/redbranch/git"
	"github.com/randalmurphal/redbranch/redmine"
)

// TicketFetcher fetches tickets from the issue tracker.
// *redmine.Client implements it.
type TicketFetcher interface {
	GetTicket(ctx context.Context, id int) (*redmine.Ticket, error)
	TicketURL(id int) string
}

// Repo is the set of git operations the workflow needs.
// *git.Context implements it.
type Repo interface {
	RepoPath() string
	HeadRef() (string, error)
	Remotes() ([]string, error)
	RemoteBranches() ([]string, error)
	RevParse(ref string) (string, error)
	CreateBranchAt(name, startPoint string) error
	Checkout(ref string) error
	ChangedFiles() (int, error)
}

// Workflow fetches a ticket and creates its branch.
type Workflow struct {
	Tracker TicketFetcher
	Repo    Repo

	// Choose decides between base branch candidates when the ticket
	// has a parent branch. Nil picks the default (index 0).
	Choose Chooser

	// Out receives user-facing progress messages. Nil means stdout.
	Out io.Writer

	// Remote selects the remote to branch from. Empty requires the
	// repository to have exactly one remote.
	Remote string

	// Verbose enables extra diagnostics.
	Verbose bool

	// DryRun stops before any repository mutation.
	DryRun bool
}

// Run executes the full flow for a ticket: fetch, derive the branch
// name, resolve the base branch, then create and check out the new
// branch. The no-op outcomes (already on the branch, a branch for the
// ticket exists) return nil after reporting.
func (w *Workflow) Run(ctx context.Context, ticketID int) error {
	out := w.Out
	if out == nil {
		out = os.Stdout
	}

	fmt.Fprintf(out, "Requesting %s...\n", w.Tracker.TicketURL(ticketID))

	ticket, err := w.Tracker.GetTicket(ctx, ticketID)
	if err != nil {
		return fmt.Errorf("fetch ticket #%d: %w", ticketID, err)
	}
	issue := ticket.Issue

	name, err := branch.ForIssue(branch.Issue{
		ID:           issue.ID,
		Subject:      issue.Subject,
		AssigneeName: issue.AssignedTo.Name,
		Version:      issue.FixedVersion.Name,
	})
	if err != nil {
		return err
	}

	version, err := branch.TargetVersion(issue.FixedVersion.Name)
	if err != nil {
		return err
	}

	if w.Verbose {
		fmt.Fprintf(out, "Repository at %s\n", w.Repo.RepoPath())
	}
	if n, statErr := w.Repo.ChangedFiles(); statErr == nil {
		fmt.Fprintf(out, "Files changed in working tree: %d\n", n)
	}

	remote, err := w.selectRemote()
	if err != nil {
		return err
	}

	headRef, err := w.Repo.HeadRef()
	if err != nil {
		if !errors.Is(err, git.ErrDetachedHead) {
			return err
		}
		headRef = "" // detached HEAD never matches the derived name
	}

	remoteBranches, err := w.Repo.RemoteBranches()
	if err != nil {
		return err
	}

	parentID := 0
	if issue.HasParent() {
		parentID = issue.Parent.ID
	}

	res, err := ResolveBase(ResolveInput{
		Branch:         name,
		TicketID:       issue.ID,
		ParentID:       parentID,
		TargetVersion:  version,
		HeadRef:        headRef,
		Remote:         remote,
		RemoteBranches: remoteBranches,
	}, w.Choose)
	if err != nil {
		return err
	}

	for _, note := range res.Notes {
		fmt.Fprintln(out, note)
	}

	switch res.Action {
	case ActionAlreadyOnBranch:
		fmt.Fprintf(out, "Already on branch %s\n", res.Branch)
		return nil

	case ActionBranchExists:
		fmt.Fprintf(out, "Branch %s already exists for ticket #%d (would have created %s)\n",
			res.Existing, issue.ID, res.Branch)
		return nil
	}

	if w.DryRun {
		fmt.Fprintf(out, "Dry run: would create branch %s from %s\n", res.Branch, res.Base)
		return nil
	}

	if !slices.Contains(remoteBranches, res.Base) {
		return fmt.Errorf("%w: %s", ErrBaseBranchNotFound, res.Base)
	}

	commit, err := w.Repo.RevParse(res.Base)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Creating branch %s from %s\n", res.Branch, res.Base)

	if err := w.Repo.CreateBranchAt(res.Branch, commit); err != nil {
		return err
	}
	if err := w.Repo.Checkout(res.Branch); err != nil {
		return err
	}

	fmt.Fprintf(out, "Switched to branch %s\n", res.Branch)
	return nil
}

// selectRemote picks the remote to branch from: the explicitly
// configured one when set, otherwise the repository's single remote.
func (w *Workflow) selectRemote() (string, error) {
	remotes, err := w.Repo.Remotes()
	if err != nil {
		return "", err
	}

	if w.Remote != "" {
		if slices.Contains(remotes, w.Remote) {
			return w.Remote, nil
		}
		return "", &RemoteError{Remotes: remotes, Requested: w.Remote, Err: ErrRemoteNotFound}
	}

	switch len(remotes) {
	case 0:
		return "", &RemoteError{Err: ErrNoRemote}
	case 1:
		return remotes[0], nil
	default:
		return "", &RemoteError{Remotes: remotes, Err: ErrAmbiguousRemote}
	}
}
