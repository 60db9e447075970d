// Package terminal tracks who owns the terminal: the application's
// full-screen interface or a child process.
package terminal

import (
	"errors"
	"fmt"

	"github.com/kk-code-lab/rtab/internal/logging"
)

var termLog = logging.ForComponent(logging.CompTerm)

// Mode is the terminal ownership state.
type Mode int

const (
	// ModeInteractive means the application draws and reads input.
	ModeInteractive Mode = iota
	// ModeReleased means a child process owns the terminal.
	ModeReleased
)

func (m Mode) String() string {
	if m == ModeReleased {
		return "released"
	}
	return "interactive"
}

// Screen is the part of tcell.Screen the session drives.
type Screen interface {
	Suspend() error
	Resume() error
	Sync()
}

// RestoreError means the application could not take the terminal back.
// The display can no longer be trusted; the session must end.
type RestoreError struct {
	Err error
	// Cause is the error of the work done while released, if any.
	Cause error
}

func (e *RestoreError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to restore terminal: %v (after: %v)", e.Err, e.Cause)
	}
	return fmt.Sprintf("failed to restore terminal: %v", e.Err)
}

func (e *RestoreError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Err, e.Cause}
	}
	return []error{e.Err}
}

// Session owns the single terminal of the process.
type Session struct {
	screen Screen
	mode   Mode
}

// NewSession wraps an initialized screen. The session starts interactive.
func NewSession(screen Screen) *Session {
	return &Session{screen: screen, mode: ModeInteractive}
}

// Mode reports the current ownership state.
func (s *Session) Mode() Mode { return s.mode }

// Release tears down the application's display and input mode. If the
// screen refuses, the session stays interactive and the error is returned.
func (s *Session) Release() error {
	if s.mode == ModeReleased {
		return nil
	}
	if err := s.screen.Suspend(); err != nil {
		termLog.Warn("suspend_failed", "error", err)
		return fmt.Errorf("failed to suspend screen: %w", err)
	}
	s.mode = ModeReleased
	termLog.Debug("released")
	return nil
}

// Restore reinitializes the application's display. A failure is returned as
// *RestoreError and leaves the session released.
func (s *Session) Restore() error {
	if s.mode == ModeInteractive {
		return nil
	}
	if err := s.screen.Resume(); err != nil {
		termLog.Error("resume_failed", "error", err)
		return &RestoreError{Err: err}
	}
	s.screen.Sync()
	s.mode = ModeInteractive
	termLog.Debug("restored")
	return nil
}

// Do runs fn with the terminal released and restores it afterwards, also
// when fn returns an error or panics. fn's error is returned unchanged
// unless the restore fails, in which case a *RestoreError carrying both is
// returned. fn is not called when the release fails.
func (s *Session) Do(fn func() error) (err error) {
	if err := s.Release(); err != nil {
		return err
	}
	defer func() {
		restoreErr := s.Restore()
		var re *RestoreError
		if errors.As(restoreErr, &re) {
			re.Cause = err
			err = re
		}
	}()
	return fn()
}
