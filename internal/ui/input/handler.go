// Package input turns tcell key events into browser actions.
package input

import (
	"github.com/gdamore/tcell/v2"
)

// Kind identifies a browser action.
type Kind int

const (
	ActNone Kind = iota
	ActQuit
	ActUp
	ActDown
	ActPageUp
	ActPageDown
	ActTop
	ActBottom
	ActEnter
	ActParent
	ActHome
	ActToggleSelect
	ActClearSelection
	ActToggleHidden
	ActTogglePreview
	ActReload
	ActNewTab
	ActCloseTab
	ActNextTab
	ActPrevTab
	ActToggleHelp
	ActHideHelp
	ActSuspend
	ActResize
	// ActCommand runs the external command bound to Key.
	ActCommand
)

// Action is one decoded user intent.
type Action struct {
	Kind Kind
	Key  rune
}

// InputHandler converts tcell events to Actions
type InputHandler struct {
	actionChan  chan Action
	commandKeys map[rune]struct{}
	helpVisible bool
}

// NewInputHandler creates a new input handler. commandKeys are the runes
// bound to external commands; built-in keys win over them.
func NewInputHandler(actionChan chan Action, commandKeys []rune) *InputHandler {
	keys := make(map[rune]struct{}, len(commandKeys))
	for _, k := range commandKeys {
		keys[k] = struct{}{}
	}
	return &InputHandler{
		actionChan:  actionChan,
		commandKeys: keys,
	}
}

// SetHelpVisible tells the handler whether the help overlay is up.
func (ih *InputHandler) SetHelpVisible(visible bool) {
	ih.helpVisible = visible
}

// ProcessEvent converts a tcell event into an Action. It returns false when
// the event asks to quit.
func (ih *InputHandler) ProcessEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return ih.processKeyEvent(ev)
	case *tcell.EventResize:
		ih.emit(ActResize)
		return true
	default:
		return true
	}
}

func (ih *InputHandler) emit(kind Kind) {
	ih.actionChan <- Action{Kind: kind}
}

// processKeyEvent handles keyboard input
func (ih *InputHandler) processKeyEvent(ev *tcell.EventKey) bool {
	if ih.helpVisible {
		switch ev.Key() {
		case tcell.KeyCtrlC:
			ih.emit(ActQuit)
			return false
		case tcell.KeyEscape:
			ih.emit(ActHideHelp)
		case tcell.KeyRune:
			switch ev.Rune() {
			case '?', 'q':
				ih.emit(ActHideHelp)
			}
		}
		return true
	}

	switch ev.Key() {
	case tcell.KeyCtrlC:
		ih.emit(ActQuit)
		return false
	case tcell.KeyCtrlZ:
		ih.emit(ActSuspend)
	case tcell.KeyEscape:
		ih.emit(ActClearSelection)
	case tcell.KeyUp:
		ih.emit(ActUp)
	case tcell.KeyDown:
		ih.emit(ActDown)
	case tcell.KeyPgUp:
		ih.emit(ActPageUp)
	case tcell.KeyPgDn:
		ih.emit(ActPageDown)
	case tcell.KeyHome:
		ih.emit(ActTop)
	case tcell.KeyEnd:
		ih.emit(ActBottom)
	case tcell.KeyEnter, tcell.KeyRight:
		ih.emit(ActEnter)
	case tcell.KeyLeft, tcell.KeyBackspace, tcell.KeyBackspace2:
		ih.emit(ActParent)
	case tcell.KeyTab:
		ih.emit(ActNextTab)
	case tcell.KeyBacktab:
		ih.emit(ActPrevTab)
	case tcell.KeyRune:
		return ih.processRune(ev.Rune())
	}
	return true
}

func (ih *InputHandler) processRune(r rune) bool {
	switch r {
	case 'q':
		ih.emit(ActQuit)
		return false
	case 'k':
		ih.emit(ActUp)
	case 'j':
		ih.emit(ActDown)
	case 'g':
		ih.emit(ActTop)
	case 'G':
		ih.emit(ActBottom)
	case 'l':
		ih.emit(ActEnter)
	case 'h':
		ih.emit(ActParent)
	case '~':
		ih.emit(ActHome)
	case ' ':
		ih.emit(ActToggleSelect)
	case '.':
		ih.emit(ActToggleHidden)
	case 'p':
		ih.emit(ActTogglePreview)
	case 'r':
		ih.emit(ActReload)
	case 't':
		ih.emit(ActNewTab)
	case 'W':
		ih.emit(ActCloseTab)
	case '?':
		ih.emit(ActToggleHelp)
	default:
		if _, ok := ih.commandKeys[r]; ok {
			ih.actionChan <- Action{Kind: ActCommand, Key: r}
		}
	}
	return true
}

// IsBuiltin reports whether r is taken by a built-in action.
func IsBuiltin(r rune) bool {
	switch r {
	case 'q', 'k', 'j', 'g', 'G', 'l', 'h', '~', ' ', '.', 'p', 'r', 't', 'W', '?':
		return true
	}
	return false
}
