package control

import "github.com/hailam/boardtouch/internal/board"

// Listener observes selection transitions. Frontends use it for sound cues,
// status text and logging. Callbacks run synchronously inside Session.Tick.
type Listener interface {
	Selected(sq board.Square, rec board.Record)
	Deselected(sq board.Square)
	Moved(from, to board.Square, rec board.Record)
	Captured(sq board.Square, victim board.Record)
	// Blocked reports a move onto a piece of the mover's own side.
	Blocked(from, to board.Square)
}

// NopListener ignores every event. Embed it to implement only some callbacks.
type NopListener struct{}

func (NopListener) Selected(board.Square, board.Record) {}
func (NopListener) Deselected(board.Square) {}
func (NopListener) Moved(board.Square, board.Square, board.Record) {}
func (NopListener) Captured(board.Square, board.Record) {}
func (NopListener) Blocked(board.Square, board.Square) {}

// Listeners fans events out to several listeners in order.
type Listeners []Listener

func (ls Listeners) Selected(sq board.Square, rec board.Record) {
	for _, l := range ls {
		l.Selected(sq, rec)
	}
}

func (ls Listeners) Deselected(sq board.Square) {
	for _, l := range ls {
		l.Deselected(sq)
	}
}

func (ls Listeners) Moved(from, to board.Square, rec board.Record) {
	for _, l := range ls {
		l.Moved(from, to, rec)
	}
}

func (ls Listeners) Captured(sq board.Square, victim board.Record) {
	for _, l := range ls {
		l.Captured(sq, victim)
	}
}

func (ls Listeners) Blocked(from, to board.Square) {
	for _, l := range ls {
		l.Blocked(from, to)
	}
}
