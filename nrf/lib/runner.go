package lib

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"
)

// Request describes one external command invocation.
type Request struct {
	Name    string
	Args    []string
	Dir     string
	Timeout time.Duration
}

// Result is the outcome of a command invocation. Every failure mode (nonzero
// exit, spawn failure, timeout) is encoded here rather than returned as an
// error, so handlers have a single success/failure branch.
type Result struct {
	OK       bool
	ExitCode int
	Stdout   string
	Stderr   string
}

// exitUnknown is the exit code reported when the process never produced one
// (spawn failure or timeout).
const exitUnknown = -1

// Runner executes external commands. The interface exists so handlers can be
// tested against a fake without spawning processes.
type Runner interface {
	Run(ctx context.Context, req Request) Result
}

// CommandRunner runs commands with the resolved toolchain environment.
type CommandRunner struct {
	Env *Environment
}

// NewCommandRunner returns a Runner bound to the given environment.
func NewCommandRunner(env *Environment) *CommandRunner {
	return &CommandRunner{Env: env}
}

// Run executes the request, blocking until the command exits or the timeout
// elapses. On timeout the child is killed and the result reports a failure.
func (r *CommandRunner) Run(ctx context.Context, req Request) Result {
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, req.Name, req.Args...)
	cmd.Dir = req.Dir
	if r.Env != nil {
		cmd.Env = r.Env.ProcessEnv()
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	if ctx.Err() == context.DeadlineExceeded {
		return Result{
			OK:       false,
			ExitCode: exitUnknown,
			Stdout:   stdout.String(),
			Stderr:   "Timeout",
		}
	}

	if err != nil {
		code := exitUnknown
		errText := stderr.String()
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.ExitCode()
		} else if errText == "" {
			// The process never started; there is no captured stderr to show.
			errText = err.Error()
		}
		return Result{
			OK:       false,
			ExitCode: code,
			Stdout:   stdout.String(),
			Stderr:   errText,
		}
	}

	return Result{
		OK:       true,
		ExitCode: 0,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}
}
