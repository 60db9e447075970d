//go:build !windows

package app

import (
	"os"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/rtab/internal/terminal"
)

// contSignals are the signals that mean the process was continued after a
// stop.
func contSignals() []os.Signal {
	return []os.Signal{syscall.SIGCONT}
}

func (app *Application) suspendToShell() {
	if err := app.session.Release(); err != nil {
		app.messages.PushError(err.Error())
		return
	}
	// Stop only this process, not the whole group.
	_ = syscall.Kill(syscall.Getpid(), syscall.SIGTSTP)
}

func (app *Application) resumeAfterStop() bool {
	if app.session.Mode() == terminal.ModeInteractive {
		// Stopped from outside; the screen only needs a repaint.
		app.screen.Sync()
		return true
	}
	if err := app.session.Restore(); err != nil {
		appLog.Error("resume_failed", "error", err)
		app.fatalErr = err
		app.shouldQuit = true
		return false
	}
	_ = app.screen.PostEvent(tcell.NewEventInterrupt("resume"))
	app.updatePreviewLimits()
	return true
}

func flushPendingInput() {}
