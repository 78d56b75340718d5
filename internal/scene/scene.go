// Package scene is the retained render model shared by the frontends: one
// coloured quad per square, one visual per piece, and the view orientation.
// Frontends draw from it and cast pointer rays into it; the controllers only
// mutate it.
package scene

import (
	"image/color"
	"math"
	"sort"

	"github.com/hailam/boardtouch/internal/board"
)

// Material selects how a piece visual is shaded.
type Material uint8

const (
	Opaque Material = iota
	// Transparent visuals fade with their dissolve cutoff and are never picked.
	Transparent
)

// Vec3 is a vector in square units. Y points up, away from the board.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v+o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Visual is a piece as the scene sees it.
type Visual struct {
	Handle   board.Handle
	Kind     board.Kind
	Side     board.Side
	Square   board.Square
	Offset   Vec3 // displacement from the square centre
	Rotation Vec3 // radians about each axis
	Material Material
	Dissolve float64 // 0 = solid, 1 = gone
}

// Handle layout: quads take 1-64 (square+1), the view takes ViewHandle,
// pieces are numbered from firstPieceHandle upwards and never reused.
const (
	ViewHandle       board.Handle = 65
	firstPieceHandle board.Handle = 128
)

// QuadHandle returns the handle of the quad under sq.
func QuadHandle(sq board.Square) board.Handle {
	if !sq.IsValid() {
		return board.NoHandle
	}
	return board.Handle(sq) + 1
}

func quadSquare(h board.Handle) (board.Square, bool) {
	if h < 1 || h > board.SquareCount {
		return board.NoSquare, false
	}
	return board.Square(h - 1), true
}

// Palette holds the resting colours of the squares.
type Palette struct {
	Light color.RGBA
	Dark  color.RGBA
}

// DefaultPalette matches the tan and brown board of the GUI.
func DefaultPalette() Palette {
	return Palette{
		Light: color.RGBA{240, 217, 181, 255},
		Dark:  color.RGBA{181, 136, 99, 255},
	}
}

// Scene is not safe for concurrent use.
type Scene struct {
	geom    Geometry
	palette Palette

	quads   [board.SquareCount]color.RGBA
	visuals map[board.Handle]*Visual
	next    board.Handle

	flipped  bool
	viewSpin float64 // in-progress view rotation on top of the resting angle
}

// New returns an empty scene with every quad at its resting colour.
func New(geom Geometry, palette Palette) *Scene {
	s := &Scene{
		geom:    geom,
		palette: palette,
		visuals: make(map[board.Handle]*Visual),
		next:    firstPieceHandle,
	}
	s.resetQuads()
	return s
}

func (s *Scene) resetQuads() {
	for sq := range s.quads {
		s.quads[sq] = s.BaseColor(board.Square(sq))
	}
}

// BaseColor returns the resting colour of sq.
func (s *Scene) BaseColor(sq board.Square) color.RGBA {
	if sq.IsLight() {
		return s.palette.Light
	}
	return s.palette.Dark
}

// SetPalette changes the resting colours. Quads that currently show their
// old resting colour follow; highlighted quads keep their highlight.
func (s *Scene) SetPalette(p Palette) {
	old := s.palette
	s.palette = p
	for sq := range s.quads {
		light := board.Square(sq).IsLight()
		if light && s.quads[sq] == old.Light || !light && s.quads[sq] == old.Dark {
			s.quads[sq] = s.BaseColor(board.Square(sq))
		}
	}
}

// AttachVisual adds a piece visual on sq and returns its handle.
func (s *Scene) AttachVisual(sq board.Square, kind board.Kind, side board.Side) board.Handle {
	h := s.next
	s.next++
	s.visuals[h] = &Visual{
		Handle: h,
		Kind:   kind,
		Side:   side,
		Square: sq,
	}
	return h
}

// DetachVisual removes a piece visual. Unknown handles are ignored.
func (s *Scene) DetachVisual(h board.Handle) {
	delete(s.visuals, h)
}

// RepositionVisual places the visual on sq, dropping any offset.
func (s *Scene) RepositionVisual(h board.Handle, sq board.Square) {
	if v, ok := s.visuals[h]; ok {
		v.Square = sq
		v.Offset = Vec3{}
	}
}

// SquareVisual returns the quad handle under sq.
func (s *Scene) SquareVisual(sq board.Square) board.Handle {
	return QuadHandle(sq)
}

// Color returns the current colour of a quad.
func (s *Scene) Color(h board.Handle) color.RGBA {
	if sq, ok := quadSquare(h); ok {
		return s.quads[sq]
	}
	return color.RGBA{}
}

// RestingColor returns the resting colour of a quad under the current
// palette.
func (s *Scene) RestingColor(h board.Handle) color.RGBA {
	if sq, ok := quadSquare(h); ok {
		return s.BaseColor(sq)
	}
	return color.RGBA{}
}

// SetColor sets the colour of a quad.
func (s *Scene) SetColor(h board.Handle, c color.RGBA) {
	if sq, ok := quadSquare(h); ok {
		s.quads[sq] = c
	}
}

// SetMaterial switches the shading of a piece visual.
func (s *Scene) SetMaterial(h board.Handle, m Material) {
	if v, ok := s.visuals[h]; ok {
		v.Material = m
	}
}

// SetDissolve sets the dissolve cutoff of a piece visual, clamped to [0, 1].
func (s *Scene) SetDissolve(h board.Handle, cut float64) {
	if v, ok := s.visuals[h]; ok {
		v.Dissolve = math.Max(0, math.Min(1, cut))
	}
}

// Rotate adds to the rotation of a piece visual. On ViewHandle only the
// vertical component is used and turns the whole board.
func (s *Scene) Rotate(h board.Handle, dx, dy, dz float64) {
	if h == ViewHandle {
		s.viewSpin += dy
		return
	}
	if v, ok := s.visuals[h]; ok {
		v.Rotation = v.Rotation.Add(Vec3{dx, dy, dz})
	}
}

// ResetRotation puts a visual (or the view) back to its resting orientation.
func (s *Scene) ResetRotation(h board.Handle) {
	if h == ViewHandle {
		s.viewSpin = 0
		return
	}
	if v, ok := s.visuals[h]; ok {
		v.Rotation = Vec3{}
	}
}

// Translate moves a piece visual by the given offset.
func (s *Scene) Translate(h board.Handle, dx, dy, dz float64) {
	if v, ok := s.visuals[h]; ok {
		v.Offset = v.Offset.Add(Vec3{dx, dy, dz})
	}
}

// Flipped reports whether the view rests with Black at the bottom.
func (s *Scene) Flipped() bool {
	return s.flipped
}

// SetFlipped sets the resting view orientation and ends any view spin.
func (s *Scene) SetFlipped(f bool) {
	s.flipped = f
	s.viewSpin = 0
}

// ViewAngle returns the current board rotation in radians.
func (s *Scene) ViewAngle() float64 {
	a := s.viewSpin
	if s.flipped {
		a += math.Pi
	}
	return a
}

// Clear removes every piece visual and restores all quad colours.
// The view orientation is kept.
func (s *Scene) Clear() {
	for h := range s.visuals {
		delete(s.visuals, h)
	}
	s.resetQuads()
}

// Visual returns a copy of the visual with handle h.
func (s *Scene) Visual(h board.Handle) (Visual, bool) {
	v, ok := s.visuals[h]
	if !ok {
		return Visual{}, false
	}
	return *v, true
}

// Visuals returns copies of all piece visuals in draw order: lower pieces
// first, then by handle.
func (s *Scene) Visuals() []Visual {
	out := make([]Visual, 0, len(s.visuals))
	for _, v := range s.visuals {
		out = append(out, *v)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Offset.Y != out[j].Offset.Y {
			return out[i].Offset.Y < out[j].Offset.Y
		}
		return out[i].Handle < out[j].Handle
	})
	return out
}

// VisualCount returns the number of piece visuals.
func (s *Scene) VisualCount() int {
	return len(s.visuals)
}

// Geometry returns the layout the scene is projected with.
func (s *Scene) Geometry() Geometry {
	return s.geom
}

// SetGeometry changes the projection, e.g. after a window resize.
func (s *Scene) SetGeometry(g Geometry) {
	s.geom = g
}
