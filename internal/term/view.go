package term

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/hailam/boardtouch/internal/board"
	"github.com/hailam/boardtouch/internal/scene"
)

// Board layout in terminal cells. A square is SquareW columns by SquareH
// rows, which is close to square on a typical terminal font.
const (
	SquareW = 7
	SquareH = 3
	BoardX  = 4
	BoardY  = 2
	// PanelX is the first column of the status panel.
	PanelX = BoardX + 8*SquareW + 5
)

// Geometry returns the scene geometry for the terminal board. The frame is
// one row tall, so its width is a third of a square.
func Geometry() scene.Geometry {
	g := scene.DefaultGeometry(SquareW)
	g.SquareH = SquareH
	g.OriginX, g.OriginY = BoardX, BoardY
	g.Margin = 1.0 / 3
	return g
}

// Solid glyphs are the resting face; outline glyphs show while a piece is
// turned past edge-on.
var (
	solidGlyphs   = [...]rune{' ', '♟', '♞', '♝', '♜', '♛', '♚'}
	outlineGlyphs = [...]rune{' ', '♙', '♘', '♗', '♖', '♕', '♔'}
)

// Glyph returns the rune for kind, showing the back face when flipped over.
func Glyph(kind board.Kind, back bool) rune {
	if int(kind) >= len(solidGlyphs) {
		return '?'
	}
	if back {
		return outlineGlyphs[kind]
	}
	return solidGlyphs[kind]
}

// View draws a scene onto a tcell screen.
type View struct {
	scene *scene.Scene
	theme Theme
}

// NewView returns a view of sc using theme.
func NewView(sc *scene.Scene, theme Theme) *View {
	return &View{scene: sc, theme: theme}
}

// SetTheme changes the board and piece colours.
func (v *View) SetTheme(t Theme) {
	v.theme = t
	v.scene.SetPalette(t.Board)
}

// Theme returns the active theme.
func (v *View) Theme() Theme {
	return v.theme
}

// cellBackground returns the colour under the centre of cell (x, y):
// the square quad, the frame, or nothing.
func (v *View) cellBackground(x, y int) (color.RGBA, bool) {
	cx, cy := float64(x)+0.5, float64(y)+0.5
	if sq := v.scene.SquareAt(cx, cy); sq != board.NoSquare {
		return v.scene.Color(scene.QuadHandle(sq)), true
	}
	for _, h := range v.scene.CastRay(cx, cy) {
		if h.Kind == scene.HitFrame {
			r, g, b := v.theme.Frame.RGB()
			return color.RGBA{uint8(r), uint8(g), uint8(b), 255}, true
		}
	}
	return color.RGBA{}, false
}

// DrawBoard fills every cell the board or its frame covers, rotated with
// the view, and labels the edges.
func (v *View) DrawBoard(s tcell.Screen) {
	w, h := s.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			bg, ok := v.cellBackground(x, y)
			if !ok {
				continue
			}
			s.SetContent(x, y, ' ', nil, tcell.StyleDefault.Background(rgb(bg)))
		}
	}
	v.drawCoordinates(s)
}

func (v *View) drawCoordinates(s tcell.Screen) {
	m := v.scene.Geometry().Margin
	flipped := v.scene.Flipped()

	label := func(r rune, u, w float64) {
		x, y := v.scene.Project(u, w)
		cx, cy := int(math.Floor(x)), int(math.Floor(y))
		bg, ok := v.cellBackground(cx, cy)
		if !ok {
			return
		}
		s.SetContent(cx, cy, r, nil, tcell.StyleDefault.Background(rgb(bg)).Foreground(v.theme.Coords))
	}

	for i := 0; i < 8; i++ {
		file, rank := rune('a'+i), rune('1'+i)
		if flipped {
			label(file, float64(i)+0.5, -m/2)
			label(rank, 8+m/2, float64(7-i)+0.5)
		} else {
			label(file, float64(i)+0.5, 8+m/2)
			label(rank, -m/2, float64(7-i)+0.5)
		}
	}
}

// DrawPieces draws every visual as a glyph at its centre cell. Dissolving
// pieces fade into the cell behind them; pieces spun past edge-on show
// their outline glyph.
func (v *View) DrawPieces(s tcell.Screen) {
	for _, vis := range v.scene.Visuals() {
		if vis.Dissolve >= 1 {
			continue
		}
		x, y := v.scene.VisualCentre(vis)
		cx, cy := int(math.Floor(x)), int(math.Floor(y))

		style := tcell.StyleDefault
		fg := v.theme.PieceColor(vis.Side)
		if bg, ok := v.cellBackground(cx, cy); ok {
			style = style.Background(rgb(bg))
			fg = fade(fg, bg, vis.Dissolve)
		}
		back := math.Cos(vis.Rotation.Y) < 0 || math.Cos(vis.Rotation.X) < 0
		s.SetContent(cx, cy, Glyph(vis.Kind, back), nil, style.Foreground(fg).Bold(true))
	}
}

// fade blends fg towards bg by t (0 keeps fg).
func fade(fg tcell.Color, bg color.RGBA, t float64) tcell.Color {
	if t <= 0 {
		return fg
	}
	t = min(t, 1)
	r, g, b := fg.RGB()
	mix := func(a int32, c uint8) int32 {
		return int32(math.Round(float64(a) + (float64(c)-float64(a))*t))
	}
	return tcell.NewRGBColor(mix(r, bg.R), mix(g, bg.G), mix(b, bg.B))
}

// Status is what the panel shows beside the board.
type Status struct {
	Turn       board.Side
	Castling   string
	Selected   string
	Pieces     int
	Animations int
	Material   string
	Sound      bool
	Message    string
	Alert      bool
	Position   string
}

// DrawPanel writes the status lines and key help to the right of the board.
func (v *View) DrawPanel(s tcell.Screen, st Status) {
	text := tcell.StyleDefault.Foreground(v.theme.Text)
	muted := tcell.StyleDefault.Foreground(v.theme.Muted)

	y := BoardY
	row := func(label, value string) {
		drawText(s, PanelX, y, muted, label)
		drawText(s, PanelX+11, y, text, value)
		y++
	}

	drawText(s, PanelX, y, text.Bold(true), "Board Touch")
	y += 2
	row("To move", st.Turn.String())
	row("Castling", st.Castling)
	row("Selected", st.Selected)
	row("Pieces", fmt.Sprint(st.Pieces))
	if st.Animations > 0 {
		row("Animating", fmt.Sprint(st.Animations))
	} else {
		row("Animating", "-")
	}
	row("Pieces set", st.Material)
	if st.Sound {
		row("Sound", "on")
	} else {
		row("Sound", "off")
	}

	y++
	if st.Message != "" {
		style := text
		if st.Alert {
			style = style.Foreground(tcell.ColorRed)
		}
		drawText(s, PanelX, y, style, st.Message)
	}
	y += 2

	placement, rest, _ := strings.Cut(st.Position, " ")
	if ranks := strings.Split(placement, "/"); len(ranks) == 8 {
		drawText(s, PanelX, y, text, strings.Join(ranks[:4], "/")+"/")
		drawText(s, PanelX, y+1, text, strings.Join(ranks[4:], "/"))
	}
	drawText(s, PanelX, y+2, muted, rest)
	y += 4

	for _, help := range []string{
		"click  select / move",
		"right  release",
		"f flip   n reset",
		"1-4 pieces   m mute",
		"q quit",
	} {
		drawText(s, PanelX, y, muted, help)
		y++
	}
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}
