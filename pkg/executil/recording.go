package executil

import (
	"context"
	"strings"
	"sync"
)

// RecordedCommand captures a command that was executed.
type RecordedCommand struct {
	Dir  string
	Cmd  string
	Args []string
}

// RecordingExecutor captures commands for testing. Configure Outputs and
// Errors to control return values; keys are matched as prefixes of the
// full command line, so keep them unambiguous.
type RecordingExecutor struct {
	mu       sync.Mutex
	Commands []RecordedCommand

	// Outputs maps a command-line prefix (e.g. "git diff --name-status")
	// to the stdout to return.
	Outputs map[string][]byte

	// Errors maps a command-line prefix to the error to return.
	Errors map[string]error
}

// RunDir records the command and returns the configured output/error.
func (e *RecordingExecutor) RunDir(_ context.Context, dir, cmd string, args ...string) ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.Commands = append(e.Commands, RecordedCommand{
		Dir:  dir,
		Cmd:  cmd,
		Args: args,
	})

	line := strings.Join(append([]string{cmd}, args...), " ")

	var out []byte
	var err error
	for prefix, o := range e.Outputs {
		if strings.HasPrefix(line, prefix) {
			out = o
			break
		}
	}
	for prefix, e2 := range e.Errors {
		if strings.HasPrefix(line, prefix) {
			err = e2
			break
		}
	}

	return out, err
}

// Reset clears recorded commands.
func (e *RecordingExecutor) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Commands = nil
}
