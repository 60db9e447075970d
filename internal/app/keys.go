package app

import (
	"errors"
	"os"

	"github.com/kk-code-lab/rtab/internal/config"
	"github.com/kk-code-lab/rtab/internal/tab"
	inputui "github.com/kk-code-lab/rtab/internal/ui/input"
)

func (app *Application) handleAction(action inputui.Action) bool {
	switch action.Kind {
	case inputui.ActNone:
		return false
	case inputui.ActQuit:
		app.shouldQuit = true
		return false
	case inputui.ActSuspend:
		app.suspendToShell()
		app.resumeAfterStop()
		return true
	case inputui.ActToggleHelp:
		app.setHelp(!app.showHelp)
		return true
	case inputui.ActHideHelp:
		app.setHelp(false)
		return true
	case inputui.ActResize:
		return true
	case inputui.ActCommand:
		cmd, ok := app.commands[action.Key]
		if !ok {
			return false
		}
		return app.runCommand(cmd)
	case inputui.ActNewTab:
		return app.newTab()
	case inputui.ActCloseTab:
		if !app.tabs.CloseActive() {
			app.shouldQuit = true
			return false
		}
		app.afterTabSwitch()
		return true
	case inputui.ActNextTab:
		app.tabs.Next()
		app.afterTabSwitch()
		return true
	case inputui.ActPrevTab:
		app.tabs.Prev()
		app.afterTabSwitch()
		return true
	case inputui.ActTogglePreview:
		app.selector.Enabled = !app.selector.Enabled
		app.controller.RefreshPreview(app.tabs.Active())
		return true
	}

	t := app.tabs.Active()
	if t == nil {
		return false
	}
	return app.handleTabAction(t, action)
}

// handleTabAction applies navigation and selection to the active tab.
func (app *Application) handleTabAction(t *tab.Tab, action inputui.Action) bool {
	switch action.Kind {
	case inputui.ActEnter:
		err := t.Enter()
		if errors.Is(err, tab.ErrNotDirectory) {
			if cmd, ok := app.commands[[]rune(openerKey)[0]]; ok && t.CurrentEntry() != nil {
				return app.runCommand(cmd)
			}
			return false
		}
		app.afterDirectoryChange(t, err)
		return true
	case inputui.ActParent:
		app.afterDirectoryChange(t, t.Parent())
		return true
	case inputui.ActHome:
		home, err := os.UserHomeDir()
		if err == nil {
			err = t.ChangeDirectory(home)
		}
		app.afterDirectoryChange(t, err)
		return true
	case inputui.ActReload:
		app.controller.SoftReload(t)
		return true
	case inputui.ActToggleHidden:
		if t.ToggleHidden() {
			app.messages.PushInfo("Showing hidden files")
		} else {
			app.messages.PushInfo("Hiding hidden files")
		}
		app.controller.RefreshPreview(t)
		return true
	}

	l, err := t.Current()
	if err != nil {
		return false
	}
	switch action.Kind {
	case inputui.ActUp:
		l.MoveCursor(-1)
	case inputui.ActDown:
		l.MoveCursor(1)
	case inputui.ActPageUp:
		l.MoveCursor(-app.bodyHeight())
	case inputui.ActPageDown:
		l.MoveCursor(app.bodyHeight())
	case inputui.ActTop:
		l.SetCursor(0)
	case inputui.ActBottom:
		l.SetCursor(l.Len() - 1)
	case inputui.ActToggleSelect:
		l.ToggleSelected(l.Cursor())
		l.MoveCursor(1)
	case inputui.ActClearSelection:
		l.ClearSelection()
		return true
	default:
		return false
	}
	app.controller.RefreshPreview(t)
	return true
}

func (app *Application) afterDirectoryChange(t *tab.Tab, err error) {
	if err != nil {
		appLog.Debug("change_directory_failed", "cwd", t.Cwd(), "error", err)
		app.messages.PushError(err.Error())
	}
	app.watchActive()
	app.controller.RefreshPreview(t)
}

func (app *Application) newTab() bool {
	cur := app.tabs.Active()
	if cur == nil {
		return false
	}
	app.tabs.Add(cur.Cwd(), cur.SortConfig())
	app.afterTabSwitch()
	return true
}

func (app *Application) afterTabSwitch() {
	app.watchActive()
	app.controller.RefreshPreview(app.tabs.Active())
}

func (app *Application) setHelp(visible bool) {
	app.showHelp = visible
	app.input.SetHelpVisible(visible)
}

// runCommand hands the terminal to cmd. A restore failure ends the loop.
func (app *Application) runCommand(cmd config.Command) bool {
	if _, err := app.controller.RunExternal(cmd.Template, cmd.Spawn); err != nil {
		app.fatalErr = err
		app.shouldQuit = true
		return false
	}
	app.updatePreviewLimits()
	return true
}
