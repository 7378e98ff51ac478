// Package git provides the repository operations redbranch needs:
// reading remotes and remote-tracking branches, resolving refs, and
// creating/checking out branches.
//
// Commands are executed through the CommandRunner interface so tests
// can script git behavior without a real repository.
package git
