package term

import (
	"image/color"

	"github.com/gdamore/tcell/v2"
	"github.com/hailam/boardtouch/internal/board"
	"github.com/hailam/boardtouch/internal/scene"
	"github.com/hailam/boardtouch/internal/storage"
)

// Theme colours the terminal board for one material set.
type Theme struct {
	Board  scene.Palette
	Pieces [2]tcell.Color
	Frame  tcell.Color
	Coords tcell.Color
	Text   tcell.Color
	Muted  tcell.Color
}

var themes = [storage.MaterialSetCount]Theme{
	storage.MaterialClassic: {
		Board: scene.Palette{
			Light: color.RGBA{240, 217, 181, 255},
			Dark:  color.RGBA{181, 136, 99, 255},
		},
		Pieces: [2]tcell.Color{tcell.NewRGBColor(255, 255, 255), tcell.NewRGBColor(0, 0, 0)},
		Frame:  tcell.NewRGBColor(92, 64, 44),
		Coords: tcell.NewRGBColor(230, 210, 180),
	},
	storage.MaterialMarble: {
		Board: scene.Palette{
			Light: color.RGBA{222, 227, 230, 255},
			Dark:  color.RGBA{140, 162, 173, 255},
		},
		Pieces: [2]tcell.Color{tcell.NewRGBColor(250, 250, 245), tcell.NewRGBColor(40, 52, 64)},
		Frame:  tcell.NewRGBColor(70, 82, 92),
		Coords: tcell.NewRGBColor(210, 218, 224),
	},
	storage.MaterialWood: {
		Board: scene.Palette{
			Light: color.RGBA{227, 193, 111, 255},
			Dark:  color.RGBA{184, 139, 74, 255},
		},
		Pieces: [2]tcell.Color{tcell.NewRGBColor(255, 240, 210), tcell.NewRGBColor(74, 40, 16)},
		Frame:  tcell.NewRGBColor(110, 70, 36),
		Coords: tcell.NewRGBColor(245, 225, 190),
	},
	storage.MaterialNeon: {
		Board: scene.Palette{
			Light: color.RGBA{52, 56, 84, 255},
			Dark:  color.RGBA{28, 30, 52, 255},
		},
		Pieces: [2]tcell.Color{tcell.NewRGBColor(80, 255, 230), tcell.NewRGBColor(255, 80, 200)},
		Frame:  tcell.NewRGBColor(16, 16, 30),
		Coords: tcell.NewRGBColor(120, 130, 200),
	},
}

// ThemeFor returns the theme for m; unknown sets fall back to Classic.
func ThemeFor(m storage.MaterialSet) Theme {
	if !m.Valid() {
		m = storage.MaterialClassic
	}
	t := themes[m]
	t.Text = tcell.ColorWhite
	t.Muted = tcell.ColorGray
	return t
}

// PieceColor returns the glyph colour for side.
func (t Theme) PieceColor(side board.Side) tcell.Color {
	if side > board.Black {
		return t.Text
	}
	return t.Pieces[side]
}

// rgb converts a scene colour to a terminal colour.
func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
