// Package control implements the pointer-driven interaction layer: the
// selection state machine, the hover highlight and the animated behaviors
// they attach, bundled in a Session that owns the board.
package control

import (
	"image/color"

	"github.com/hailam/boardtouch/internal/board"
	"github.com/hailam/boardtouch/internal/scene"
)

// Renderer is the presentation the controllers drive. All methods take
// handles issued by AttachVisual or SquareVisual; unknown handles are ignored.
type Renderer interface {
	AttachVisual(sq board.Square, kind board.Kind, side board.Side) board.Handle
	DetachVisual(h board.Handle)
	RepositionVisual(h board.Handle, sq board.Square)
	SquareVisual(sq board.Square) board.Handle

	Color(h board.Handle) color.RGBA
	// RestingColor is the quad's colour under the current palette.
	RestingColor(h board.Handle) color.RGBA
	SetColor(h board.Handle, c color.RGBA)
	SetMaterial(h board.Handle, m scene.Material)
	SetDissolve(h board.Handle, cut float64)

	Rotate(h board.Handle, dx, dy, dz float64)
	ResetRotation(h board.Handle)
	Translate(h board.Handle, dx, dy, dz float64)

	Flipped() bool
	SetFlipped(f bool)

	// Clear drops every piece visual and restores all square colours.
	Clear()
}

// HitTester resolves a screen point to what lies under it, nearest first.
type HitTester interface {
	CastRay(x, y float64) []scene.Hit
}

var _ Renderer = (*scene.Scene)(nil)
var _ HitTester = (*scene.Scene)(nil)
