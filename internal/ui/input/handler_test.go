package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func expectAction(t *testing.T, ch chan Action, want Action) {
	t.Helper()
	select {
	case got := <-ch:
		if got != want {
			t.Fatalf("expected %+v, got %+v", want, got)
		}
	default:
		t.Fatalf("expected %+v to be emitted", want)
	}
}

func expectNoAction(t *testing.T, ch chan Action) {
	t.Helper()
	select {
	case got := <-ch:
		t.Fatalf("unexpected action %+v", got)
	default:
	}
}

func TestNavigationKeys(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want Kind
	}{
		{"arrow up", tcell.NewEventKey(tcell.KeyUp, 0, 0), ActUp},
		{"j", tcell.NewEventKey(tcell.KeyRune, 'j', 0), ActDown},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, 0), ActEnter},
		{"left", tcell.NewEventKey(tcell.KeyLeft, 0, 0), ActParent},
		{"space", tcell.NewEventKey(tcell.KeyRune, ' ', 0), ActToggleSelect},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, 0), ActClearSelection},
		{"tab", tcell.NewEventKey(tcell.KeyTab, 0, 0), ActNextTab},
		{"hidden", tcell.NewEventKey(tcell.KeyRune, '.', 0), ActToggleHidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ch := make(chan Action, 1)
			handler := NewInputHandler(ch, nil)
			if !handler.ProcessEvent(tt.ev) {
				t.Fatalf("navigation key should not quit")
			}
			expectAction(t, ch, Action{Kind: tt.want})
		})
	}
}

func TestQuitReturnsFalse(t *testing.T) {
	ch := make(chan Action, 1)
	handler := NewInputHandler(ch, nil)

	if handler.ProcessEvent(tcell.NewEventKey(tcell.KeyRune, 'q', 0)) {
		t.Fatalf("q should stop the loop")
	}
	expectAction(t, ch, Action{Kind: ActQuit})
}

func TestCommandKeysEmitCommandAction(t *testing.T) {
	ch := make(chan Action, 1)
	handler := NewInputHandler(ch, []rune{'e', 'x'})

	handler.ProcessEvent(tcell.NewEventKey(tcell.KeyRune, 'x', 0))
	expectAction(t, ch, Action{Kind: ActCommand, Key: 'x'})

	handler.ProcessEvent(tcell.NewEventKey(tcell.KeyRune, 'z', 0))
	expectNoAction(t, ch)
}

func TestBuiltinsWinOverCommandKeys(t *testing.T) {
	ch := make(chan Action, 1)
	handler := NewInputHandler(ch, []rune{'j'})

	handler.ProcessEvent(tcell.NewEventKey(tcell.KeyRune, 'j', 0))
	expectAction(t, ch, Action{Kind: ActDown})
	if !IsBuiltin('j') || IsBuiltin('e') {
		t.Fatalf("IsBuiltin mismatch")
	}
}

func TestHelpVisibleSwallowsKeys(t *testing.T) {
	ch := make(chan Action, 1)
	handler := NewInputHandler(ch, []rune{'e'})
	handler.SetHelpVisible(true)

	handler.ProcessEvent(tcell.NewEventKey(tcell.KeyRune, 'e', 0))
	expectNoAction(t, ch)

	handler.ProcessEvent(tcell.NewEventKey(tcell.KeyRune, '?', 0))
	expectAction(t, ch, Action{Kind: ActHideHelp})

	if handler.ProcessEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, 0)) {
		t.Fatalf("ctrl-c should quit even with help open")
	}
	expectAction(t, ch, Action{Kind: ActQuit})
}
