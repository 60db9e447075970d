package app

import (
	"os"
	"os/signal"
	"path/filepath"

	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/rtab/internal/listing"
)

// Run drives the event loop until the user quits. The returned error is
// non-nil only when the terminal could not be restored after a child
// process, in which case the caller must not draw again.
func (app *Application) Run() error {
	events := app.pumpEvents()

	var continued chan os.Signal
	if sigs := contSignals(); len(sigs) > 0 {
		continued = make(chan os.Signal, 1)
		signal.Notify(continued, sigs...)
		defer signal.Stop(continued)
	}

	dirty := true
	for !app.shouldQuit {
		if dirty {
			app.render()
		}

		select {
		case ev, ok := <-events:
			if !ok {
				app.shouldQuit = true
				continue
			}
			dirty = app.handleEvent(ev)
		case action := <-app.actionCh:
			dirty = app.handleAction(action)
		case <-continued:
			dirty = app.resumeAfterStop()
		}
		if app.processActions() {
			dirty = true
		}
	}
	return app.fatalErr
}

// pumpEvents forwards screen events until the screen is finalized.
func (app *Application) pumpEvents() <-chan tcell.Event {
	events := make(chan tcell.Event)
	go func() {
		for {
			ev := app.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()
	return events
}

func (app *Application) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		// Any key dismisses the oldest message.
		app.messages.Pop()
		if !app.input.ProcessEvent(ev) {
			app.shouldQuit = true
		}
	case *tcell.EventResize:
		app.screen.Sync()
		app.updatePreviewLimits()
		app.controller.RefreshPreview(app.tabs.Active())
	case *tcell.EventInterrupt:
		if changed, ok := ev.Data().(dirChanged); ok {
			app.reloadWatched(changed.Dir)
		}
	default:
		return false
	}
	return true
}

func (app *Application) processActions() bool {
	changed := false
	for {
		select {
		case action := <-app.actionCh:
			if app.handleAction(action) {
				changed = true
			}
		default:
			return changed
		}
	}
}

// reloadWatched soft-reloads every tab showing dir.
func (app *Application) reloadWatched(dir string) {
	want := listing.Canonical(dir)
	for _, t := range app.tabs.Tabs() {
		if listing.Canonical(t.Cwd()) == want {
			app.controller.SoftReload(t)
		}
	}
}

func tabLabel(cwd string) string {
	base := filepath.Base(cwd)
	if base == "." || base == string(filepath.Separator) || base == "" {
		return cwd
	}
	return base
}
