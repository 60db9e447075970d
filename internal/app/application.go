package app

import (
	"fmt"
	"os"
	"sort"

	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/rtab/internal/config"
	"github.com/kk-code-lab/rtab/internal/listing"
	"github.com/kk-code-lab/rtab/internal/preview"
	"github.com/kk-code-lab/rtab/internal/process"
	"github.com/kk-code-lab/rtab/internal/tab"
	"github.com/kk-code-lab/rtab/internal/terminal"
	inputui "github.com/kk-code-lab/rtab/internal/ui/input"
	renderui "github.com/kk-code-lab/rtab/internal/ui/render"
)

// Application represents the running app.
type Application struct {
	screen     tcell.Screen
	session    *terminal.Session
	tabs       *tab.Context
	controller *Controller
	selector   *preview.Selector
	pane       *renderui.PreviewPane
	messages   *MessageQueue
	renderer   *renderui.Renderer
	input      *inputui.InputHandler
	actionCh   chan inputui.Action
	watcher    *dirWatcher

	opts     *config.Options
	commands map[rune]config.Command
	hints    []renderui.KeyHint
	home     string

	showHelp   bool
	shouldQuit bool
	fatalErr   error
}

// NewApplication opens the terminal and a first tab at startDir (the
// working directory when empty).
func NewApplication(opts *config.Options, startDir string) (*Application, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	app, err := newApplication(screen, opts, startDir, process.NewInvoker())
	if err != nil {
		screen.Fini()
		return nil, err
	}
	app.controller.afterForeground = flushPendingInput

	if opts.WatchDirectories {
		w, err := newDirWatcher(app.postDirChanged)
		if err != nil {
			appLog.Warn("watcher_unavailable", "error", err)
		} else {
			app.watcher = w
			app.watchActive()
		}
	}
	return app, nil
}

func newApplication(screen tcell.Screen, opts *config.Options, startDir string, runner Runner, cacheOpts ...listing.Option) (*Application, error) {
	if opts == nil {
		opts = config.Default()
	}
	if startDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		startDir = cwd
	}

	tabs := tab.NewContext(cacheOpts...)
	first := tabs.Add(startDir, opts.SortConfig())
	if _, err := first.Current(); err != nil {
		return nil, err
	}

	var content preview.ContentPreviewer = preview.TextPreviewer{}
	if len(opts.PreviewCommand) > 0 {
		content = preview.CommandPreviewer{Argv: opts.PreviewCommand}
	}
	selector := preview.NewSelector(content, preview.Limits{MaxBytes: opts.MaxPreviewSize})
	selector.Enabled = opts.ShowPreview

	pane := renderui.NewPreviewPane()
	messages := &MessageQueue{}
	session := terminal.NewSession(screen)
	commands, hints := buildCommands(defaultCommands(), opts.Commands)

	keys := make([]rune, 0, len(commands))
	for k := range commands {
		keys = append(keys, k)
	}
	actionCh := make(chan inputui.Action, 16)

	home, _ := os.UserHomeDir()
	app := &Application{
		screen:     screen,
		session:    session,
		tabs:       tabs,
		controller: NewController(session, runner, tabs, selector, pane, messages),
		selector:   selector,
		pane:       pane,
		messages:   messages,
		renderer:   renderui.NewRenderer(screen),
		input:      inputui.NewInputHandler(actionCh, keys),
		actionCh:   actionCh,
		opts:       opts,
		commands:   commands,
		hints:      hints,
		home:       home,
	}
	app.updatePreviewLimits()
	app.controller.RefreshPreview(first)
	return app, nil
}

// buildCommands merges configured bindings over the defaults. Keys taken by
// built-in actions are skipped.
func buildCommands(defaults, configured []config.Command) (map[rune]config.Command, []renderui.KeyHint) {
	commands := make(map[rune]config.Command)
	for _, set := range [][]config.Command{defaults, configured} {
		for _, cmd := range set {
			key := []rune(cmd.Key)
			if len(key) != 1 {
				continue
			}
			if inputui.IsBuiltin(key[0]) {
				appLog.Warn("command_key_reserved", "key", cmd.Key, "command", cmd.Template.String())
				continue
			}
			commands[key[0]] = cmd
		}
	}

	keys := make([]rune, 0, len(commands))
	for k := range commands {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	hints := make([]renderui.KeyHint, 0, len(keys))
	for _, k := range keys {
		cmd := commands[k]
		desc := cmd.Template.String()
		if cmd.Spawn {
			desc += " &"
		}
		hints = append(hints, renderui.KeyHint{Keys: string(k), Desc: desc})
	}
	return commands, hints
}

// Close cleans up resources.
func (app *Application) Close() error {
	if app.watcher != nil {
		app.watcher.Close()
	}
	for app.tabs.CloseActive() {
	}
	app.screen.Fini()
	return nil
}

func (app *Application) postDirChanged(dir string) {
	_ = app.screen.PostEvent(tcell.NewEventInterrupt(dirChanged{Dir: dir}))
}

func (app *Application) watchActive() {
	if app.watcher == nil {
		return
	}
	if t := app.tabs.Active(); t != nil {
		app.watcher.Watch(t.Cwd())
	}
}

// bodyHeight is the number of listing rows between header and status.
func (app *Application) bodyHeight() int {
	_, h := app.screen.Size()
	if h < 4 {
		return 1
	}
	return h - 3
}

func (app *Application) updatePreviewLimits() {
	app.selector.Limits.MaxLines = app.bodyHeight()
}

func (app *Application) buildView() *renderui.View {
	view := &renderui.View{
		Home:            app.home,
		TildeInTitlebar: app.opts.TildeInTitlebar,
		ActiveTab:       app.tabs.ActiveIndex(),
		Preview:         app.pane,
		ShowPreview:     app.selector.Enabled,
		ColumnRatio:     app.opts.ColumnRatio,
		ScrollOffset:    app.opts.ScrollOffset,
		Hints:           app.hints,
		ShowHelp:        app.showHelp,
	}
	for i, t := range app.tabs.Tabs() {
		view.TabLabels = append(view.TabLabels, fmt.Sprintf("%d:%s", i+1, tabLabel(t.Cwd())))
	}

	if msg, ok := app.messages.Front(); ok {
		view.Message = msg.Text
		view.MessageError = msg.Kind == MessageError
	}

	t := app.tabs.Active()
	if t == nil {
		return view
	}
	view.Cwd = t.Cwd()
	if parent, err := t.ParentListing(); err == nil {
		view.Parent = parent
	}
	if cur, err := t.Current(); err == nil {
		view.Current = cur
	} else {
		view.CurrentErr = err.Error()
	}
	return view
}

func (app *Application) render() {
	app.renderer.Render(app.buildView())
}

// ReportError queues msg for the status line, e.g. a config problem found
// before the first frame.
func (app *Application) ReportError(msg string) {
	app.messages.PushError(msg)
}
