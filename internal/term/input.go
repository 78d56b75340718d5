package term

import (
	"github.com/gdamore/tcell/v2"
	"github.com/hailam/boardtouch/internal/scene"
)

// Pointer turns tcell mouse reports into scene events. Terminals report
// button state, not transitions, so a click is a button that is down now
// and was up in the previous report.
type Pointer struct {
	x, y    int
	seen    bool
	buttons tcell.ButtonMask
}

// Translate returns the scene events for one mouse report. Positions are
// cell centres so a click lands inside the cell the user sees.
func (p *Pointer) Translate(ev *tcell.EventMouse) []scene.Event {
	x, y := ev.Position()
	fx, fy := float64(x)+0.5, float64(y)+0.5

	var events []scene.Event
	if !p.seen || x != p.x || y != p.y {
		events = append(events, scene.Event{Kind: scene.PointerMove, X: fx, Y: fy})
	}
	p.x, p.y, p.seen = x, y, true

	buttons := ev.Buttons()
	pressed := buttons &^ p.buttons
	p.buttons = buttons

	if pressed&tcell.Button1 != 0 {
		events = append(events, scene.Event{Kind: scene.PrimaryClick, X: fx, Y: fy})
	}
	// Button2 is the right button on most terminals, Button3 the middle.
	if pressed&(tcell.Button2|tcell.Button3) != 0 {
		events = append(events, scene.Event{Kind: scene.SecondaryClick, X: fx, Y: fy})
	}
	return events
}

// Action is a keyboard command.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionFlip
	ActionReset
	ActionMute
	ActionMaterial1
	ActionMaterial2
	ActionMaterial3
	ActionMaterial4
)

// KeyAction maps a key press to its command.
func KeyAction(ev *tcell.EventKey) Action {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit
	case tcell.KeyRune:
	default:
		return ActionNone
	}

	switch ev.Rune() {
	case 'q', 'Q':
		return ActionQuit
	case 'f', 'F':
		return ActionFlip
	case 'n', 'N':
		return ActionReset
	case 'm', 'M':
		return ActionMute
	case '1':
		return ActionMaterial1
	case '2':
		return ActionMaterial2
	case '3':
		return ActionMaterial3
	case '4':
		return ActionMaterial4
	}
	return ActionNone
}
