package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kk-code-lab/rtab/internal/logging"
	"github.com/kk-code-lab/rtab/internal/preview"
	"github.com/kk-code-lab/rtab/internal/process"
	"github.com/kk-code-lab/rtab/internal/tab"
	"github.com/kk-code-lab/rtab/internal/terminal"
)

var appLog = logging.ForComponent(logging.CompApp)

// Runner executes an expanded command. *process.Invoker satisfies it.
type Runner interface {
	Run(req process.Request) (process.Outcome, error)
}

// Controller owns the release, run, restore, reload and re-preview sequence
// for external commands, and the preview refresh shared with navigation.
type Controller struct {
	session  *terminal.Session
	runner   Runner
	tabs     *tab.Context
	selector *preview.Selector
	pane     preview.Pane
	messages *MessageQueue

	// afterForeground runs once the terminal is back, e.g. to drop
	// keystrokes typed into the child.
	afterForeground func()
}

// NewController wires the collaborators together.
func NewController(session *terminal.Session, runner Runner, tabs *tab.Context, selector *preview.Selector, pane preview.Pane, messages *MessageQueue) *Controller {
	return &Controller{
		session:  session,
		runner:   runner,
		tabs:     tabs,
		selector: selector,
		pane:     pane,
		messages: messages,
	}
}

// RunExternal expands tmpl against the active tab and runs it with the
// terminal released. The returned message is also queued. The error is
// non-nil only when the terminal could not be restored, which is fatal.
func (c *Controller) RunExternal(tmpl process.Template, spawn bool) (Message, error) {
	if err := tmpl.Validate(); err != nil {
		msg := errorMessage(err.Error())
		c.messages.Push(msg)
		return msg, nil
	}

	t := c.tabs.Active()
	if t == nil {
		msg := errorMessage("no open tab")
		c.messages.Push(msg)
		return msg, nil
	}

	var sel process.Selection
	if l, err := t.Current(); err == nil {
		sel = l
	}
	argv := process.Expand(tmpl, sel)
	req := process.Request{Dir: t.Cwd(), Argv: argv, Mode: process.Foreground}
	if spawn {
		req.Mode = process.Detached
	}

	var (
		outcome process.Outcome
		runErr  error
	)
	err := c.session.Do(func() error {
		outcome, runErr = c.runner.Run(req)
		return nil
	})

	var restoreErr *terminal.RestoreError
	if errors.As(err, &restoreErr) {
		appLog.Error("terminal_restore_failed", "argv", argv, "error", err)
		return Message{}, err
	}
	if err != nil {
		// Release failed; nothing ran.
		runErr = err
	}
	if !spawn && c.afterForeground != nil {
		c.afterForeground()
	}

	c.SoftReload(t)

	msg := outcomeMessage(argv, spawn, outcome, runErr)
	c.messages.Push(msg)
	return msg, nil
}

func outcomeMessage(argv []string, spawn bool, outcome process.Outcome, runErr error) Message {
	if runErr != nil {
		reason := runErr
		var spawnErr *process.SpawnError
		if errors.As(runErr, &spawnErr) {
			reason = spawnErr.Err
		}
		return errorMessage(fmt.Sprintf("Failed: %s: %v", argv[0], reason))
	}

	line := strings.Join(argv, " ")
	if spawn {
		return infoMessage("Spawned: " + line)
	}
	if outcome.ExitCode < 0 {
		return infoMessage(fmt.Sprintf("Finished: %s (killed by signal)", line))
	}
	if outcome.ExitCode != 0 {
		return infoMessage(fmt.Sprintf("Finished: %s (exit status %d)", line, outcome.ExitCode))
	}
	return infoMessage("Finished: " + line)
}

// RefreshPreview re-renders the preview pane for t's cursor entry.
func (c *Controller) RefreshPreview(t *tab.Tab) {
	if t == nil {
		c.pane.Clear()
		return
	}
	c.selector.Render(t.CurrentEntry(), t.Cache(), t.SortConfig(), c.pane)
}

// SoftReload rebuilds t's current directory from disk, puts the cursor back
// on the entry it was on (or the same row when that entry is gone), and
// refreshes the preview of the active tab. Selections are dropped with the
// old listing. A failure is queued as a message.
func (c *Controller) SoftReload(t *tab.Tab) {
	var cursorName string
	cursorIdx := 0
	if l, ok := t.Cache().Lookup(t.Cwd()); ok {
		cursorName, _ = l.CursorName()
		cursorIdx = l.Cursor()
	}

	t.Cache().Invalidate(t.Cwd())
	l, err := t.Current()
	switch {
	case err != nil:
		appLog.Warn("reload_failed", "path", t.Cwd(), "error", err)
		c.messages.PushError(err.Error())
	case cursorName != "":
		if idx := l.IndexOf(cursorName); idx >= 0 {
			l.SetCursor(idx)
		} else {
			l.SetCursor(cursorIdx)
		}
	}

	if t == c.tabs.Active() {
		c.RefreshPreview(t)
	}
}
