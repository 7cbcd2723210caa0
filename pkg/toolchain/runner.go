package toolchain

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/orderkit/pkg/errors"
	"github.com/matzehuels/orderkit/pkg/observability"
)

// Runner executes one external tool invocation and waits for it to finish.
// This is the single seam through which every child process is launched, so
// tests can substitute a fake and assert on the exact invocations.
type Runner interface {
	Run(ctx context.Context, argv []string) error
}

// ExecRunner runs argv as a child process.
//
// Each invocation is traced before launch. The child's stdout passes through
// (the external tools print their own progress); stderr passes through as
// well but is also captured so a failure can report what the tool said.
// Exit status is always inspected: a non-zero status becomes a TOOL_FAILED
// error carrying the full command line, a failure to start becomes
// TOOL_NOT_FOUND.
type ExecRunner struct {
	Logger *log.Logger

	// Stdout and Stderr receive the child's output. They default to the
	// process's own streams.
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecRunner creates an ExecRunner logging through logger.
func NewExecRunner(logger *log.Logger) *ExecRunner {
	if logger == nil {
		logger = log.Default()
	}
	return &ExecRunner{Logger: logger}
}

// Run launches argv[0] with the remaining arguments and waits for it.
func (r *ExecRunner) Run(ctx context.Context, argv []string) error {
	if len(argv) == 0 {
		return errors.New(errors.ErrCodeInternal, "empty command line")
	}

	// Pre-invocation trace: the only progress indicator if the tool hangs.
	r.Logger.Info("call process", "cmd", strings.Join(argv, " "))
	observability.Tool().OnToolStart(ctx, argv)

	stdout := r.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := r.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	var errBuf bytes.Buffer
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdout = stdout
	cmd.Stderr = io.MultiWriter(stderr, &errBuf)

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	if err == nil {
		observability.Tool().OnToolExit(ctx, argv, 0, elapsed, nil)
		r.Logger.Debug("process finished", "cmd", argv[0], "duration", elapsed.Round(time.Millisecond))
		return nil
	}

	// Cancellation outranks the exit status: CommandContext kills the child,
	// so any ExitError here only reflects our own signal.
	if ctx.Err() != nil {
		observability.Tool().OnToolExit(ctx, argv, -1, elapsed, err)
		return ctx.Err()
	}

	if exitErr, ok := err.(*exec.ExitError); ok {
		code := exitErr.ExitCode()
		observability.Tool().OnToolExit(ctx, argv, code, elapsed, err)
		tfe := &errors.ToolFailedError{
			Argv:     argv,
			ExitCode: code,
			Stderr:   errBuf.String(),
		}
		return errors.Wrap(errors.ErrCodeToolFailed, tfe, "run %s", argv[0])
	}

	// The process never started: missing binary or not executable.
	observability.Tool().OnToolExit(ctx, argv, -1, elapsed, err)
	return errors.Wrap(errors.ErrCodeToolNotFound, err, "start %s", argv[0])
}

// RecordingRunner implements Runner for tests. It records every invocation
// and never launches a process.
type RecordingRunner struct {
	// Calls holds the argv of each invocation in order.
	Calls [][]string

	// OnRun, if set, is consulted for each invocation and may create the
	// destination files a real tool would produce, or return an error.
	OnRun func(argv []string) error
}

// Run records argv and delegates to OnRun.
func (r *RecordingRunner) Run(ctx context.Context, argv []string) error {
	r.Calls = append(r.Calls, append([]string(nil), argv...))
	if r.OnRun != nil {
		return r.OnRun(argv)
	}
	return nil
}

// Ensure both runners satisfy Runner.
var (
	_ Runner = (*ExecRunner)(nil)
	_ Runner = (*RecordingRunner)(nil)
)
