package redbranch

import (
	"fmt"
	"strconv"
	"strings"
)

// MaintenancePrefix is the naming prefix of long-lived release-line
// branches, e.g. "wab-8.1" for the 8.1 maintenance branch.
const MaintenancePrefix = "wab-"

// DefaultBaseBranch is the branch new work starts from when no
// maintenance or parent branch applies.
const DefaultBaseBranch = "master"

// Chooser picks one of options and returns its index. Index 0 is the
// default choice. Interactive runs use prompt.Select; tests and
// non-interactive runs use a chooser that returns 0.
type Chooser func(title string, options []string) (int, error)

// Action describes what the resolver decided to do.
type Action int

// Resolver outcomes.
const (
	// ActionCreate means a new branch should be created from Base.
	ActionCreate Action = iota

	// ActionAlreadyOnBranch means HEAD already points at the desired
	// branch and nothing needs to happen.
	ActionAlreadyOnBranch

	// ActionBranchExists means a remote branch for this ticket already
	// exists and no new branch should be created.
	ActionBranchExists
)

// Resolution is the resolver's decision for a ticket.
type Resolution struct {
	Action   Action
	Branch   string   // Derived branch name for the ticket
	Base     string   // Remote branch to create from (ActionCreate only)
	Existing string   // Matching remote branch (ActionBranchExists only)
	Notes    []string // Informational messages for the user
}

// ResolveInput carries everything base resolution needs: the derived
// branch name and ticket relationships, plus a snapshot of the
// repository's refs.
type ResolveInput struct {
	Branch         string   // Derived branch name
	TicketID       int      // Ticket the branch is for
	ParentID       int      // Parent ticket id, 0 when the ticket has none
	TargetVersion  string   // major.minor prefix of the fixed version
	HeadRef        string   // Full ref HEAD points at, "" when detached
	Remote         string   // Remote name, e.g. "origin"
	RemoteBranches []string // Remote-tracking branch names ("origin/...")
}

// ResolveBase decides which remote branch a ticket's branch should be
// created from, or that no branch needs to be created at all.
//
// Precedence for the base: the wab-<version> maintenance branch when
// one exists, otherwise the parent ticket's branch (user's choice,
// defaulting to master) when one exists, otherwise <remote>/master.
func ResolveBase(in ResolveInput, choose Chooser) (*Resolution, error) {
	res := &Resolution{Action: ActionCreate, Branch: in.Branch}

	if in.HeadRef != "" && strings.HasSuffix(in.HeadRef, in.Branch) {
		res.Action = ActionAlreadyOnBranch
		return res, nil
	}

	// TODO: substring matching lets ticket 1 claim rd-12-... branches;
	// match on exact -<id>- segments instead.
	ticketID := strconv.Itoa(in.TicketID)
	for _, b := range in.RemoteBranches {
		if strings.Contains(b, ticketID) {
			res.Action = ActionBranchExists
			res.Existing = b
			return res, nil
		}
	}

	res.Base = in.Remote + "/" + DefaultBaseBranch

	maintenance := in.Remote + "/" + MaintenancePrefix + in.TargetVersion
	for _, b := range in.RemoteBranches {
		if b == maintenance {
			res.Base = maintenance
			res.Notes = append(res.Notes,
				fmt.Sprintf("Using maintenance branch %s", maintenance))
			return res, nil
		}
	}

	if in.ParentID == 0 {
		res.Notes = append(res.Notes, "This ticket has no parent")
		return res, nil
	}

	parentID := strconv.Itoa(in.ParentID)
	var parentBranch string
	for _, b := range in.RemoteBranches {
		if strings.Contains(b, parentID) {
			parentBranch = b
			break
		}
	}

	if parentBranch == "" {
		res.Notes = append(res.Notes, fmt.Sprintf(
			"This ticket has parent #%d but no branch for it exists", in.ParentID))
		return res, nil
	}

	if choose == nil {
		choose = func(string, []string) (int, error) { return 0, nil }
	}

	options := []string{res.Base, parentBranch}
	selected, err := choose(
		"This ticket has a parent, which branch should the new branch be based on?",
		options)
	if err != nil {
		return nil, err
	}
	if selected < 0 || selected >= len(options) {
		return nil, fmt.Errorf("selection %d out of range", selected)
	}

	res.Base = options[selected]
	return res, nil
}
