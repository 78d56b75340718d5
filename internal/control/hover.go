package control

import (
	"github.com/hailam/boardtouch/internal/board"
	"github.com/hailam/boardtouch/internal/lifecycle"
	"github.com/hailam/boardtouch/internal/scene"
)

// Hover lights the square under the pointer while a piece is selected.
type Hover struct {
	env    *env
	hits   HitTester
	active bool
}

func newHover(e *env, hits HitTester) *Hover {
	return &Hover{env: e, hits: hits}
}

// Activate turns hover tracking on.
func (h *Hover) Activate() { h.active = true }

// Deactivate turns hover tracking off. Lit squares fade on their own once
// nothing touches them.
func (h *Hover) Deactivate() { h.active = false }

// Active reports whether hover tracking is on.
func (h *Hover) Active() bool { return h.active }

// Update casts the pointer and lights or extends the hover on the square
// under it. Pieces, the frame and squares already marked selected are skipped.
func (h *Hover) Update(x, y float64) {
	if !h.active {
		return
	}
	hit, ok := scene.FirstRelevant(h.hits.CastRay(x, y))
	if !ok || hit.Kind != scene.HitSquare {
		return
	}

	quad := h.env.render.SquareVisual(hit.Square)
	if quad == board.NoHandle || h.env.host.Has(quad, CatSquareSelected) {
		return
	}

	if b, ok := h.env.host.Get(quad, CatSquareHover); ok && h.env.host.StageOf(quad, CatSquareHover) != lifecycle.StageDetach {
		b.(*SquareHover).Touch()
		return
	}
	h.env.host.Attach(quad, CatSquareHover, &SquareHover{env: h.env, quad: quad})
}
