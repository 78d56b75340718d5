package ui

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hailam/boardtouch/internal/board"
	"github.com/hailam/boardtouch/internal/scene"
)

// whitePixel is the source texture for solid triangles.
var whitePixel *ebiten.Image

func solidSource() *ebiten.Image {
	if whitePixel == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whitePixel = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whitePixel
}

// Renderer draws a scene: frame, square quads, coordinates and pieces.
type Renderer struct {
	scene   *scene.Scene
	sprites *SpriteManager
	theme   *Theme
	scale   float64 // HiDPI scale factor

	vertices []ebiten.Vertex
	indices  []uint16
}

// NewRenderer creates a renderer for sc using theme.
func NewRenderer(sc *scene.Scene, theme *Theme) *Renderer {
	return &Renderer{
		scene:   sc,
		sprites: NewSpriteManager(SquareSize, theme),
		theme:   theme,
		scale:   1.0,
	}
}

// SetScale sets the HiDPI scale factor for rendering.
func (r *Renderer) SetScale(scale float64) {
	r.scale = scale
}

// SetTheme switches sprites and the board palette to theme. Highlighted
// squares keep their highlight.
func (r *Renderer) SetTheme(theme *Theme) {
	r.theme = theme
	r.sprites.SetTheme(theme)
	r.scene.SetPalette(theme.Board)
}

// Theme returns the current theme.
func (r *Renderer) Theme() *Theme {
	return r.theme
}

// DrawBoard draws the frame, every square quad in its current colour, and
// the coordinate labels, all turned with the view.
func (r *Renderer) DrawBoard(screen *ebiten.Image) {
	m := r.scene.Geometry().Margin
	r.fillQuad(screen, -m, -m, 8+2*m, 8+2*m, r.theme.Frame)

	for sq := board.Square(0); sq < board.SquareCount; sq++ {
		u, v := float64(sq.File()), float64(7-sq.Rank())
		r.fillQuad(screen, u, v, 1, 1, r.scene.Color(scene.QuadHandle(sq)))
	}

	r.drawCoordinates(screen)
}

// fillQuad fills the board-unit rectangle (u, v, w, h) projected through
// the current view.
func (r *Renderer) fillQuad(screen *ebiten.Image, u, v, w, h float64, c color.RGBA) {
	corners := [4][2]float64{{u, v}, {u + w, v}, {u + w, v + h}, {u, v + h}}
	cr, cg, cb, ca := float32(c.R)/255, float32(c.G)/255, float32(c.B)/255, float32(c.A)/255

	r.vertices = r.vertices[:0]
	for _, p := range corners {
		x, y := r.scene.Project(p[0], p[1])
		r.vertices = append(r.vertices, ebiten.Vertex{
			DstX: float32(x * r.scale), DstY: float32(y * r.scale),
			SrcX: 1, SrcY: 1,
			ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca,
		})
	}
	r.indices = append(r.indices[:0], 0, 1, 2, 0, 2, 3)
	screen.DrawTriangles(r.vertices, r.indices, solidSource(), &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

// drawCoordinates labels files below and ranks left of the board as the
// viewer sees it, following the view while it turns.
func (r *Renderer) drawCoordinates(screen *ebiten.Image) {
	face := GetFaceWithSize(coordFontSize * r.scale)
	if face == nil {
		return
	}
	m := r.scene.Geometry().Margin

	label := func(s string, u, v float64) {
		x, y := r.scene.Project(u, v)
		w, h := MeasureText(s, face)
		op := &text.DrawOptions{}
		op.GeoM.Translate(x*r.scale-w/2, y*r.scale-h/2)
		op.ColorScale.ScaleWithColor(r.theme.Coords)
		text.Draw(screen, s, face, op)
	}

	// Labels sit on the edge that is currently nearest the viewer.
	flipped := r.scene.Flipped()
	for i := 0; i < 8; i++ {
		file := string(rune('a' + i))
		rank := string(rune('1' + i))
		if flipped {
			label(file, float64(i)+0.5, -m/2)
			label(rank, 8+m/2, float64(7-i)+0.5)
		} else {
			label(file, float64(i)+0.5, 8+m/2)
			label(rank, -m/2, float64(7-i)+0.5)
		}
	}
}

// DrawPieces draws every piece visual, lowest first. Shake offsets from
// feedback animations are applied per square.
func (r *Renderer) DrawPieces(screen *ebiten.Image, anims *AnimationManager) {
	for _, v := range r.scene.Visuals() {
		r.drawVisual(screen, v, anims)
	}
}

// drawVisual maps the visual's 3D pose onto the sprite: spin about the
// vertical axis narrows it, tilt about X shortens it, Z turns it in plane,
// lift raises it and dissolve fades it.
func (r *Renderer) drawVisual(screen *ebiten.Image, v scene.Visual, anims *AnimationManager) {
	sprite := r.sprites.Sprite(v.Kind, v.Side)
	if sprite == nil || v.Dissolve >= 1 {
		return
	}

	cx, cy := r.scene.VisualCentre(v)
	if anims != nil {
		dx, dy := anims.ShakeOffset(v.Square)
		cx += dx
		cy += dy
	}

	half := float64(sprite.Bounds().Dx()) / 2
	sx := math.Cos(v.Rotation.Y)
	sy := math.Cos(v.Rotation.X)
	if math.Abs(sx) < 0.05 {
		sx = math.Copysign(0.05, sx)
	}
	if math.Abs(sy) < 0.05 {
		sy = math.Copysign(0.05, sy)
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-half, -half)
	op.GeoM.Scale(sx, sy)
	op.GeoM.Rotate(v.Rotation.Z)
	// Scale down from render resolution to display size
	s := r.scale / r.sprites.RenderScale()
	op.GeoM.Scale(s, s)
	op.GeoM.Translate(cx*r.scale, cy*r.scale)
	op.ColorScale.ScaleAlpha(float32(1 - v.Dissolve))
	// Use linear filtering for smooth scaling
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(sprite, op)
}

// SquareRect returns the screen rectangle of sq in the resting view, for
// overlays. During a flip the rectangle is only approximate.
func (r *Renderer) SquareRect(sq board.Square) (x, y, size float32) {
	cx, cy := r.scene.SquareCentre(sq)
	g := r.scene.Geometry()
	return float32((cx - g.SquareW/2) * r.scale), float32((cy - g.SquareH/2) * r.scale), float32(g.SquareW * r.scale)
}
