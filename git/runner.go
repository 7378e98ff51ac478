package git

import (
	"bytes"
	"os/exec"
	"strings"
)

// CommandRunner executes external commands. The default implementation
// shells out; tests inject a mock to script git behavior.
type CommandRunner interface {
	// Run executes the command in dir and returns trimmed stdout.
	Run(dir, command string, args ...string) (string, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// NewExecRunner returns the default command runner.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run implements CommandRunner.
func (r *ExecRunner) Run(dir, command string, args ...string) (string, error) {
	cmd := exec.Command(command, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		output := strings.TrimSpace(stderr.String())
		if output == "" {
			output = strings.TrimSpace(stdout.String())
		}
		return "", &CommandError{
			Command: command,
			Args:    args,
			Output:  output,
			Err:     err,
		}
	}

	return strings.TrimSpace(stdout.String()), nil
}

// CommandError wraps a failed command with its captured output.
type CommandError struct {
	Command string   // Command that was run
	Args    []string // Arguments passed to the command
	Output  string   // Combined stderr/stdout output
	Err     error    // Underlying exec error
}

func (e *CommandError) Error() string {
	if e.Output != "" {
		return e.Output
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Command + " failed"
}

func (e *CommandError) Unwrap() error {
	return e.Err
}
