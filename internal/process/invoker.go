package process

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/kk-code-lab/rtab/internal/logging"
)

var execLog = logging.ForComponent(logging.CompExec)

// commandBuilder is overridden in tests.
var commandBuilder = exec.Command

var openTTY = func() (*os.File, error) {
	return os.OpenFile("/dev/tty", os.O_RDWR, 0)
}

// Mode selects how a child is run.
type Mode int

const (
	// Foreground runs the child on the terminal and waits for it.
	Foreground Mode = iota
	// Detached starts the child and returns without waiting.
	Detached
)

func (m Mode) String() string {
	if m == Detached {
		return "detached"
	}
	return "foreground"
}

// Request describes one invocation.
type Request struct {
	// Dir is the working directory, normally the tab's current directory.
	Dir  string
	Argv []string
	Mode Mode
}

// Outcome reports what happened to a started child.
type Outcome struct {
	Argv []string
	Mode Mode
	PID  int
	// ExitCode is only meaningful for Foreground runs; -1 means the child
	// was terminated by a signal.
	ExitCode int
}

// ExitErr returns a *ExitError for a non-zero foreground exit, else nil.
func (o Outcome) ExitErr() error {
	if o.Mode != Foreground || o.ExitCode == 0 {
		return nil
	}
	return &ExitError{Argv: o.Argv, Code: o.ExitCode}
}

// SpawnError means the program could not be located or started.
type SpawnError struct {
	Program string
	Err     error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("cannot run %s: %v", e.Program, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// ExitError describes a child that ran but exited non-zero. It is
// informational: the invocation itself succeeded.
type ExitError struct {
	Argv []string
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s: exit status %d", strings.Join(e.Argv, " "), e.Code)
}

// Invoker starts child processes. It never touches the terminal mode; the
// caller brackets Run with a terminal.Session.
type Invoker struct {
	// Foreground children use these streams; nil means the null device.
	// Ignored when UseTTY is set and the controlling terminal can be opened.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// UseTTY attaches foreground children to /dev/tty, falling back to the
	// process's own standard streams.
	UseTTY bool
}

// NewInvoker returns an invoker that hands foreground children the
// controlling terminal.
func NewInvoker() *Invoker {
	return &Invoker{UseTTY: true}
}

// Run starts req.Argv. A program that cannot be started yields *SpawnError;
// a non-zero exit is reported in Outcome, not as an error.
func (inv *Invoker) Run(req Request) (Outcome, error) {
	out := Outcome{Argv: req.Argv, Mode: req.Mode}
	if len(req.Argv) == 0 {
		return out, &TemplateError{Reason: "empty command"}
	}

	cmd := commandBuilder(req.Argv[0], req.Argv[1:]...)
	cmd.Dir = req.Dir

	if req.Mode == Detached {
		return inv.startDetached(cmd, out)
	}
	return inv.runForeground(cmd, out)
}

func (inv *Invoker) runForeground(cmd *exec.Cmd, out Outcome) (Outcome, error) {
	closeStreams := inv.attachStreams(cmd)
	defer closeStreams()

	if err := cmd.Start(); err != nil {
		execLog.Warn("spawn_failed", "argv", out.Argv, "error", err)
		return out, &SpawnError{Program: out.Argv[0], Err: err}
	}
	out.PID = cmd.Process.Pid
	execLog.Info("started", "argv", out.Argv, "pid", out.PID, "mode", out.Mode.String())

	err := cmd.Wait()
	var exitErr *exec.ExitError
	switch {
	case errors.As(err, &exitErr):
		out.ExitCode = exitErr.ExitCode()
	case err != nil:
		return out, fmt.Errorf("wait for %s: %w", out.Argv[0], err)
	}
	execLog.Info("finished", "pid", out.PID, "exit_code", out.ExitCode)
	return out, nil
}

// startDetached sends all of the child's streams to the null device so it
// can never block on a pipe nobody reads, and reaps it in the background.
func (inv *Invoker) startDetached(cmd *exec.Cmd, out Outcome) (Outcome, error) {
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil

	if err := cmd.Start(); err != nil {
		execLog.Warn("spawn_failed", "argv", out.Argv, "error", err)
		return out, &SpawnError{Program: out.Argv[0], Err: err}
	}
	out.PID = cmd.Process.Pid
	execLog.Info("started", "argv", out.Argv, "pid", out.PID, "mode", out.Mode.String())

	go func(pid int) {
		err := cmd.Wait()
		execLog.Debug("detached_exited", "pid", pid, "error", err)
	}(out.PID)
	return out, nil
}

func (inv *Invoker) attachStreams(cmd *exec.Cmd) func() {
	if inv.UseTTY {
		if runtime.GOOS != "windows" {
			if tty, err := openTTY(); err == nil {
				cmd.Stdin = tty
				cmd.Stdout = tty
				cmd.Stderr = tty
				return func() { _ = tty.Close() }
			}
		}
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		return func() {}
	}

	cmd.Stdin = inv.Stdin
	cmd.Stdout = inv.Stdout
	cmd.Stderr = inv.Stderr
	return func() {}
}
