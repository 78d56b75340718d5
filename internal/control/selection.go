package control

import (
	"log"

	"github.com/hailam/boardtouch/internal/board"
	"github.com/hailam/boardtouch/internal/scene"
)

// Selection is the two-state click controller: Idle, or Selected on one
// square. Clicks never fail; rejected actions fall back to Idle.
type Selection struct {
	env      *env
	hover    *Hover
	listener Listener

	selected board.Square
	piece    board.Handle
}

func newSelection(e *env, hover *Hover) *Selection {
	return &Selection{
		env:      e,
		hover:    hover,
		listener: NopListener{},
		selected: board.NoSquare,
	}
}

// Selected returns the selected square, or NoSquare when Idle.
func (s *Selection) Selected() board.Square {
	return s.selected
}

// Handle returns the visual of the selected piece, or NoHandle when Idle.
func (s *Selection) Handle() board.Handle {
	return s.piece
}

// IsIdle reports whether nothing is selected.
func (s *Selection) IsIdle() bool {
	return s.selected == board.NoSquare
}

// classify turns a ray into the click target. A piece hit on a square the
// board considers empty counts as a square hit.
func (s *Selection) classify(hits []scene.Hit) (scene.HitKind, board.Square, bool) {
	h, ok := scene.FirstRelevant(hits)
	if !ok {
		return 0, board.NoSquare, false
	}
	if h.Kind == scene.HitPiece && s.env.board.Get(h.Square).IsEmpty() {
		return scene.HitSquare, h.Square, true
	}
	return h.Kind, h.Square, true
}

// Click handles a primary click whose ray produced hits.
func (s *Selection) Click(hits []scene.Hit) {
	kind, sq, ok := s.classify(hits)
	if !ok {
		s.Deselect()
		return
	}

	if s.IsIdle() {
		if kind == scene.HitPiece {
			s.selectSquare(sq)
		}
		return
	}

	switch kind {
	case scene.HitPiece:
		if sq != s.selected {
			s.selectSquare(sq)
		}
	case scene.HitSquare:
		s.moveTo(sq)
	}
}

// Deselect returns to Idle. It is a no-op when already Idle.
func (s *Selection) Deselect() {
	if s.IsIdle() {
		return
	}
	from := s.selected
	s.toIdle()
	s.listener.Deselected(from)
}

func (s *Selection) selectSquare(sq board.Square) {
	if s.piece != board.NoHandle {
		s.env.host.Remove(s.piece, CatPieceSelected)
	}

	rec := s.env.board.Get(sq)
	s.selected = sq
	s.piece = rec.Visual
	if rec.Visual != board.NoHandle {
		s.env.host.Attach(rec.Visual, CatPieceSelected, &PieceSelected{
			env:   s.env,
			sel:   s,
			piece: rec.Visual,
			quad:  s.env.render.SquareVisual(sq),
		})
	}
	s.hover.Activate()
	s.listener.Selected(sq, rec)
}

func (s *Selection) moveTo(target board.Square) {
	from := s.selected
	b := s.env.board

	switch {
	case target == from:
		s.toIdle()
		s.listener.Deselected(from)
		return
	case b.IsSameSide(from, target):
		s.toIdle()
		s.listener.Blocked(from, target)
		return
	}

	mover := b.Get(from)
	victim := b.Get(target)

	// Restore the origin square before the board changes under it.
	s.toIdle()

	captured := b.Move(from, target)
	b.SetTurn(mover.Side.Other())
	log.Printf("[MOVE] %v %v %v-%v", mover.Side, mover.Kind, from, target)

	if captured != board.NoHandle {
		s.env.host.Attach(captured, CatPieceCaptured, &PieceCaptured{env: s.env, piece: captured})
		s.listener.Captured(target, victim)
	}
	s.env.render.RepositionVisual(mover.Visual, target)
	s.listener.Moved(from, target, mover)
}

// toIdle drops the selection lifecycle and silences hover.
func (s *Selection) toIdle() {
	if s.piece != board.NoHandle {
		s.env.host.Remove(s.piece, CatPieceSelected)
	}
	s.selected = board.NoSquare
	s.piece = board.NoHandle
	s.hover.Deactivate()
}

// reset forgets the selection without callbacks. Used before a reload, when
// the host is cleared separately.
func (s *Selection) reset() {
	s.selected = board.NoSquare
	s.piece = board.NoHandle
	s.hover.Deactivate()
}
