package control

import (
	"image/color"
	"math/rand"

	"github.com/hailam/boardtouch/internal/board"
	"github.com/hailam/boardtouch/internal/lifecycle"
	"github.com/hailam/boardtouch/internal/scene"
)

// Lifecycle categories. Targets are visual handles.
const (
	CatPieceSelected lifecycle.Category = iota
	CatSquareSelected
	CatSquareHover
	CatPieceCaptured
	CatViewFlip
)

// env is what the behaviors and controllers share.
type env struct {
	board  *board.Board
	render Renderer
	host   *lifecycle.Host[board.Handle]
	cfg    Config
	rng    *rand.Rand
}

// PieceSelected spins the selected piece and keeps its square lit.
type PieceSelected struct {
	env   *env
	sel   *Selection
	piece board.Handle
	quad  board.Handle
}

func (b *PieceSelected) Init(dt float64) {
	b.env.host.Attach(b.quad, CatSquareSelected, &SquareSelected{env: b.env, quad: b.quad})
}

func (b *PieceSelected) Process(dt float64) bool {
	if b.sel.Handle() != b.piece {
		return true
	}
	b.env.render.Rotate(b.piece, 0, b.env.cfg.SpinRate*dt, 0)
	return false
}

// Detach drops the square highlight right away so its colour is back before
// another square records its own.
func (b *PieceSelected) Detach() {
	b.env.host.Remove(b.quad, CatSquareSelected)
	b.env.render.ResetRotation(b.piece)
}

// highlight remembers what a quad showed before a behavior recoloured it.
// A quad that was resting goes back to the palette in force at restore time,
// so a palette change during the highlight is not undone.
type highlight struct {
	original color.RGBA
	resting  bool
}

func (h *highlight) save(r Renderer, quad board.Handle) {
	h.original = r.Color(quad)
	h.resting = h.original == r.RestingColor(quad)
}

func (h *highlight) restore(r Renderer, quad board.Handle) {
	if h.resting {
		r.SetColor(quad, r.RestingColor(quad))
		return
	}
	r.SetColor(quad, h.original)
}

// SquareSelected holds the selected colour on a square.
type SquareSelected struct {
	env  *env
	quad board.Handle
	prev highlight
}

func (b *SquareSelected) Init(dt float64) {
	// A hover highlight must restore first or its colour would be recorded.
	b.env.host.Remove(b.quad, CatSquareHover)
	b.prev.save(b.env.render, b.quad)
	b.env.render.SetColor(b.quad, b.env.cfg.SelectedColor)
}

func (b *SquareSelected) Process(dt float64) bool {
	b.env.host.Remove(b.quad, CatSquareHover)
	return false
}

func (b *SquareSelected) Detach() {
	b.prev.restore(b.env.render, b.quad)
}

// SquareHover lights a square for as long as the hover controller keeps
// touching it. An untouched tick ends it.
type SquareHover struct {
	env     *env
	quad    board.Handle
	prev    highlight
	touched bool
}

// Touch extends the highlight by one tick.
func (b *SquareHover) Touch() {
	b.touched = true
}

func (b *SquareHover) Init(dt float64) {
	b.prev.save(b.env.render, b.quad)
	b.env.render.SetColor(b.quad, b.env.cfg.HoverColor)
}

func (b *SquareHover) Process(dt float64) bool {
	if !b.touched {
		return true
	}
	b.touched = false
	return false
}

func (b *SquareHover) Detach() {
	b.prev.restore(b.env.render, b.quad)
}

// PieceCaptured floats a taken piece up while it tumbles and dissolves,
// then removes it from the scene.
type PieceCaptured struct {
	env    *env
	piece  board.Handle
	spin   scene.Vec3
	cutoff float64
}

func (b *PieceCaptured) Init(dt float64) {
	b.env.render.SetMaterial(b.piece, scene.Transparent)
	b.spin = scene.Vec3{
		X: b.tumble(),
		Y: b.tumble(),
		Z: b.tumble(),
	}
}

// tumble returns a small random spin rate in (-2, 2) rad/s.
func (b *PieceCaptured) tumble() float64 {
	return float64(b.env.rng.Intn(5)) * (b.env.rng.Float64() - 0.5)
}

func (b *PieceCaptured) Process(dt float64) bool {
	r := b.env.render
	r.Translate(b.piece, 0, b.env.cfg.RiseSpeed*dt, 0)
	r.Rotate(b.piece, b.spin.X*dt, b.spin.Y*dt, b.spin.Z*dt)
	b.cutoff += b.env.cfg.DissolveRate * dt
	r.SetDissolve(b.piece, b.cutoff)
	return b.cutoff >= 1
}

func (b *PieceCaptured) Detach() {
	b.env.render.DetachVisual(b.piece)
}

// ViewFlip turns the board half a revolution and leaves it resting on the
// other side.
type ViewFlip struct {
	env    *env
	from   bool
	turned float64
	done   bool
}

func (b *ViewFlip) Init(dt float64) {
	b.from = b.env.render.Flipped()
}

func (b *ViewFlip) Process(dt float64) bool {
	step := b.env.cfg.FlipRate * dt
	if b.turned+step >= halfTurn {
		b.env.render.SetFlipped(!b.from)
		b.done = true
		return true
	}
	b.env.render.Rotate(scene.ViewHandle, 0, step, 0)
	b.turned += step
	return false
}

// Detach snaps to the target side when the turn was cut short.
func (b *ViewFlip) Detach() {
	if !b.done {
		b.env.render.SetFlipped(!b.from)
	}
}
