// Package redbranch creates git branches for Redmine tickets following
// the team naming convention.
//
// The package is organized into subpackages by domain:
//
//   - redmine: Redmine REST API client and ticket models
//   - branch: branch name derivation from ticket data
//   - git: git repository operations via an injectable command runner
//   - config: hierarchical configuration (defaults, file, env, flags)
//   - credential: API key storage in the system keyring
//   - prompt: interactive base-branch selection
//   - testutil: git repository fixtures for tests
//
// The root package ties them together: Workflow fetches a ticket,
// derives the branch name, resolves which remote branch to start from,
// and creates and checks out the new branch.
//
//	tracker, _ := redmine.NewClient(&redmine.Config{URL: url, APIKey: key})
//	repo, _ := git.NewContext(".")
//	wf := &redbranch.Workflow{Tracker: tracker, Repo: repo, Choose: prompt.Select}
//	err := wf.Run(ctx, 26968)
package redbranch
