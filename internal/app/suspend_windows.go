//go:build windows

package app

import (
	"os"

	"golang.org/x/sys/windows"
)

// Windows has no SIGTSTP/SIGCONT job control.
func contSignals() []os.Signal { return nil }

func (app *Application) suspendToShell() {}

func (app *Application) resumeAfterStop() bool { return false }

// flushPendingInput drops keystrokes typed while a foreground child owned
// the console so they do not replay as commands.
func flushPendingInput() {
	handle, err := windows.GetStdHandle(windows.STD_INPUT_HANDLE)
	if err == nil {
		err = windows.FlushConsoleInputBuffer(handle)
	}
	if err != nil {
		appLog.Debug("flush_console_input_failed", "error", err)
	}
}
