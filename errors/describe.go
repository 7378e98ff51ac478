package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/randalmurphal/redbranch"
	"github.com/randalmurphal/redbranch/branch"
	"github.com/randalmurphal/redbranch/git"
	"github.com/randalmurphal/redbranch/redmine"
)

// Describe maps an internal error to a CLIError with a user-facing
// message and a suggestion. Errors it does not recognize come back
// unchanged. serverURL is the Redmine base URL, used in connection
// diagnostics.
func Describe(err error, serverURL string) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, redmine.ErrConfigAPIKeyRequired):
		return &CLIError{
			Err:        err,
			Message:    "No Redmine API key is configured.",
			Suggestion: "Run 'redbranch auth login' to store your key, or set REDBRANCH_API_KEY.",
		}

	case errors.Is(err, redmine.ErrConfigURLRequired):
		return &CLIError{
			Err:        err,
			Message:    "No Redmine URL is configured.",
			Suggestion: "Run 'redbranch config set url https://redmine.example.com'.",
		}

	case redmine.IsUnauthorized(err):
		return &CLIError{
			Err:        err,
			Message:    "Redmine rejected the API key.",
			Suggestion: "Check your key on the Redmine account page, then run 'redbranch auth login' again.",
		}

	case errors.Is(err, redmine.ErrForbidden):
		return &CLIError{
			Err:        err,
			Message:    "Your API key does not have access to this ticket.",
			Suggestion: "Ask the project manager to add you to the ticket's project.",
		}

	case redmine.IsNotFound(err):
		return &CLIError{
			Err:        err,
			Message:    "The ticket does not exist on " + serverURL + ".",
			Suggestion: "Check the ticket number.",
		}

	case errors.Is(err, redmine.ErrRateLimited):
		return &CLIError{
			Err:        err,
			Message:    "Redmine is rate limiting requests.",
			Suggestion: "Wait a moment and try again.",
		}

	case errors.Is(err, git.ErrNotGitRepo):
		return &CLIError{
			Err:        err,
			Message:    "This command must be run from within a git repository.",
			Suggestion: "Change to the repository you want the branch created in.",
		}
	}

	var parseErr *redmine.ParseError
	if errors.As(err, &parseErr) {
		return &CLIError{
			Err:        err,
			Message:    fmt.Sprintf("Unexpected response from %s.", serverURL),
			Details:    excerpt(parseErr.Body),
			Suggestion: "Check that the URL points at a Redmine instance, not a login page or proxy.",
		}
	}

	var nameErr *branch.NameError
	if errors.As(err, &nameErr) {
		return &CLIError{
			Err:        err,
			Message:    fmt.Sprintf("Cannot build a branch name: %s.", nameErr.Reason),
			Details:    fmt.Sprintf("%s is %q", nameErr.Field, nameErr.Value),
			Suggestion: "Fix the ticket's " + nameErr.Field + " field in Redmine and retry.",
		}
	}

	var remoteErr *redbranch.RemoteError
	if errors.As(err, &remoteErr) {
		switch {
		case errors.Is(err, redbranch.ErrNoRemote):
			return &CLIError{
				Err:        err,
				Message:    "The repository has no git remote.",
				Suggestion: "Add one with 'git remote add origin <url>'.",
			}
		case errors.Is(err, redbranch.ErrAmbiguousRemote):
			return &CLIError{
				Err:        err,
				Message:    fmt.Sprintf("The repository has several remotes: %s.", strings.Join(remoteErr.Remotes, ", ")),
				Suggestion: "Pick one with --remote or 'redbranch config set remote <name>'.",
			}
		case errors.Is(err, redbranch.ErrRemoteNotFound):
			return &CLIError{
				Err:        err,
				Message:    fmt.Sprintf("Remote %q does not exist (configured: %s).", remoteErr.Requested, strings.Join(remoteErr.Remotes, ", ")),
				Suggestion: "Check --remote or the configured remote name.",
			}
		}
	}

	if msg, suggestion, ok := connectionProblem(err, serverURL); ok {
		return &CLIError{
			Err:        err,
			Message:    msg,
			Details:    err.Error(),
			Suggestion: suggestion,
		}
	}

	return err
}

// connectionProblem recognizes transport-level failures from their
// error text, the only signal net/http leaves us with.
func connectionProblem(err error, serverURL string) (message, suggestion string, ok bool) {
	errStr := strings.ToLower(err.Error())

	switch {
	case strings.Contains(errStr, "certificate") ||
		strings.Contains(errStr, "x509") ||
		strings.Contains(errStr, "tls"):
		return fmt.Sprintf("TLS error connecting to %s.", serverURL),
			"If the server uses a self-signed certificate, run 'redbranch config set insecure true'.",
			true

	case strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded"):
		return fmt.Sprintf("Connection to %s timed out.", serverURL),
			"The server may be overloaded or unreachable. Try again in a moment.",
			true

	case strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "network is unreachable") ||
		strings.Contains(errStr, "dial tcp"):
		return fmt.Sprintf("Cannot connect to %s.", serverURL),
			"Check the URL and your network connection (VPN?).",
			true
	}

	return "", "", false
}

// excerpt shortens a response body for display.
func excerpt(body string) string {
	body = strings.TrimSpace(body)
	if len(body) > 200 {
		return body[:200] + "..."
	}
	return body
}
