package control

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/hailam/boardtouch/internal/board"
	"github.com/hailam/boardtouch/internal/lifecycle"
	"github.com/hailam/boardtouch/internal/scene"
)

// Session owns one board and everything that reacts to the pointer on it.
// Frontends feed it events once per frame through Tick.
type Session struct {
	env   *env
	hits  HitTester
	sel   *Selection
	hover *Hover

	position string // last successfully loaded position string

	pointerX, pointerY float64
	pointerSeen        bool
}

// NewSession returns a session with an empty board. Call Load to place pieces.
func NewSession(r Renderer, hits HitTester, cfg Config) *Session {
	e := &env{
		board:  board.New(),
		render: r,
		host:   lifecycle.NewHost[board.Handle](),
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(cfg.seed())),
	}
	hover := newHover(e, hits)
	return &Session{
		env:   e,
		hits:  hits,
		sel:   newSelection(e, hover),
		hover: hover,
	}
}

// SetListener replaces the transition listener. nil restores the no-op one.
func (s *Session) SetListener(l Listener) {
	if l == nil {
		l = NopListener{}
	}
	s.sel.listener = l
}

// Load parses description and redraws the whole board from it in square
// order. On a parse error nothing changes.
func (s *Session) Load(description string) error {
	layout, err := board.Parse(description)
	if err != nil {
		return fmt.Errorf("load position: %w", err)
	}

	s.sel.reset()
	s.env.host.Clear()
	s.env.render.Clear()
	s.env.board.Load(layout)
	s.env.board.Each(func(sq board.Square, rec board.Record) {
		if rec.IsEmpty() {
			return
		}
		s.env.board.SetVisual(sq, s.env.render.AttachVisual(sq, rec.Kind, rec.Side))
	})
	s.position = description

	log.Printf("Loaded position %s (%d pieces)", s.env.board.FEN(), s.env.board.Occupied())
	return nil
}

// Reset reloads the last loaded position.
func (s *Session) Reset() error {
	if s.position == "" {
		return s.Load(board.StartPosition)
	}
	return s.Load(s.position)
}

// Tick advances one frame: clicks first, then the lifecycles, then hover.
func (s *Session) Tick(dt float64, events []scene.Event) {
	for _, ev := range events {
		s.pointerX, s.pointerY = ev.X, ev.Y
		s.pointerSeen = true

		switch ev.Kind {
		case scene.PrimaryClick:
			s.sel.Click(s.hits.CastRay(ev.X, ev.Y))
		case scene.SecondaryClick:
			s.sel.Deselect()
		}
	}

	s.env.host.Tick(dt)

	if s.pointerSeen {
		s.hover.Update(s.pointerX, s.pointerY)
	}
}

// Flip starts turning the view to the other side. It returns false while a
// flip is already running.
func (s *Session) Flip() bool {
	if s.env.host.Has(scene.ViewHandle, CatViewFlip) {
		return false
	}
	s.env.host.Attach(scene.ViewHandle, CatViewFlip, &ViewFlip{env: s.env})
	return true
}

// Flipping reports whether a view flip is in progress.
func (s *Session) Flipping() bool {
	return s.env.host.Has(scene.ViewHandle, CatViewFlip)
}

// Board returns the board. Callers must not mutate it.
func (s *Session) Board() *board.Board {
	return s.env.board
}

// Selected returns the selected square, or NoSquare.
func (s *Session) Selected() board.Square {
	return s.sel.Selected()
}

// Position returns the last loaded position string.
func (s *Session) Position() string {
	return s.position
}

// Animations returns the number of live lifecycle instances.
func (s *Session) Animations() int {
	return s.env.host.Len()
}

// HoverActive reports whether the hover highlight is tracking the pointer.
func (s *Session) HoverActive() bool {
	return s.hover.Active()
}
