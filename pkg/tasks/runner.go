package tasks

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/arthur-debert/dotman/pkg/errors"
	"github.com/arthur-debert/dotman/pkg/logging"
	"github.com/rs/zerolog"
)

// DefaultCommandTimeout bounds a single external command.
const DefaultCommandTimeout = 30 * time.Minute

// Command is an external process invocation.
type Command struct {
	Path string
	Args []string
	Env  []string
	Dir  string
}

// String renders the command line for logs and reports.
func (c Command) String() string {
	return strings.TrimSpace(c.Path + " " + strings.Join(c.Args, " "))
}

// Runner executes external commands. A failing command returns an error
// carrying ErrCommandFailed.
type Runner interface {
	Run(ctx context.Context, cmd Command) error
}

// ExecRunner runs commands with os/exec, streaming their output.
type ExecRunner struct {
	Stdout  io.Writer
	Stderr  io.Writer
	Timeout time.Duration

	logger zerolog.Logger
}

// NewExecRunner returns a runner writing to the process stdout and stderr.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Timeout: DefaultCommandTimeout,
		logger:  logging.GetLogger("tasks.runner"),
	}
}

func (r *ExecRunner) Run(ctx context.Context, c Command) error {
	if c.Path == "" {
		return errors.New(errors.ErrConfigInvalid, "command has no program")
	}
	logging.LogCommand(r.logger, c.Path, c.Args)

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	cmd.Dir = c.Dir
	if len(c.Env) > 0 {
		cmd.Env = c.Env
	}

	// keep the tail of stderr for the error message while still streaming it
	var stderr bytes.Buffer
	cmd.Stdout = r.Stdout
	cmd.Stderr = &stderr
	if r.Stderr != nil {
		cmd.Stderr = io.MultiWriter(r.Stderr, &stderr)
	}

	start := time.Now()
	err := cmd.Run()
	r.logger.Debug().
		Str("command", c.String()).
		Dur("duration", time.Since(start)).
		Bool("ok", err == nil).
		Msg("command finished")
	if err == nil {
		return nil
	}

	cerr := errors.Wrapf(err, errors.ErrCommandFailed, "command failed: %s", c.String()).
		WithDetail("command", c.String())
	if exitErr, ok := err.(*exec.ExitError); ok {
		cerr.WithDetail("exit_code", exitErr.ExitCode())
	}
	if tail := lastLine(stderr.String()); tail != "" {
		cerr.WithDetail("stderr", tail)
	}
	return cerr
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}

// RecordingRunner records commands instead of running them. Fail, when
// set, decides which commands fail.
type RecordingRunner struct {
	Fail func(cmd Command) bool

	mu       sync.Mutex
	commands []Command
}

func (r *RecordingRunner) Run(_ context.Context, c Command) error {
	r.mu.Lock()
	r.commands = append(r.commands, c)
	r.mu.Unlock()

	if r.Fail != nil && r.Fail(c) {
		return errors.Newf(errors.ErrCommandFailed, "command failed: %s", c.String()).
			WithDetail("command", c.String())
	}
	return nil
}

// Commands returns the recorded commands in order.
func (r *RecordingRunner) Commands() []Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Command, len(r.commands))
	copy(out, r.commands)
	return out
}
