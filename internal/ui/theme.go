package ui

import (
	"image/color"

	"github.com/hailam/boardtouch/internal/board"
	"github.com/hailam/boardtouch/internal/scene"
	"github.com/hailam/boardtouch/internal/storage"
)

// PieceColors fill the SVG piece templates. Values are SVG colour strings.
type PieceColors struct {
	Fill   string
	Stroke string
	Detail string
}

// Theme is one material set: piece colours for both sides plus the board
// it sits on.
type Theme struct {
	Name       string
	Pieces     [2]PieceColors // indexed by board.Side
	Board      scene.Palette
	Frame      color.RGBA
	Coords     color.RGBA
	Background color.RGBA
}

var themes = [storage.MaterialSetCount]Theme{
	storage.MaterialClassic: {
		Name: "Classic",
		Pieces: [2]PieceColors{
			{Fill: "#ffffff", Stroke: "#000000", Detail: "#000000"},
			{Fill: "#1e1e1e", Stroke: "#000000", Detail: "#e6e6e6"},
		},
		Board:      scene.DefaultPalette(),
		Frame:      color.RGBA{120, 84, 56, 255},
		Coords:     color.RGBA{240, 217, 181, 255},
		Background: color.RGBA{40, 44, 52, 255},
	},
	storage.MaterialMarble: {
		Name: "Marble",
		Pieces: [2]PieceColors{
			{Fill: "#f4f1ea", Stroke: "#6d6a64", Detail: "#9a958c"},
			{Fill: "#3b3f46", Stroke: "#15171a", Detail: "#b7bcc4"},
		},
		Board: scene.Palette{
			Light: color.RGBA{226, 226, 222, 255},
			Dark:  color.RGBA{140, 146, 152, 255},
		},
		Frame:      color.RGBA{88, 92, 98, 255},
		Coords:     color.RGBA{226, 226, 222, 255},
		Background: color.RGBA{36, 38, 42, 255},
	},
	storage.MaterialWood: {
		Name: "Wood",
		Pieces: [2]PieceColors{
			{Fill: "#e8c594", Stroke: "#5a3a1a", Detail: "#8b5a2b"},
			{Fill: "#6b3e1f", Stroke: "#2a160a", Detail: "#d9a66b"},
		},
		Board: scene.Palette{
			Light: color.RGBA{222, 184, 135, 255},
			Dark:  color.RGBA{139, 90, 43, 255},
		},
		Frame:      color.RGBA{92, 58, 30, 255},
		Coords:     color.RGBA{222, 184, 135, 255},
		Background: color.RGBA{44, 36, 30, 255},
	},
	storage.MaterialNeon: {
		Name: "Neon",
		Pieces: [2]PieceColors{
			{Fill: "#0b0f1a", Stroke: "#39ff14", Detail: "#39ff14"},
			{Fill: "#0b0f1a", Stroke: "#ff2bd6", Detail: "#ff2bd6"},
		},
		Board: scene.Palette{
			Light: color.RGBA{40, 48, 72, 255},
			Dark:  color.RGBA{20, 24, 40, 255},
		},
		Frame:      color.RGBA{12, 14, 24, 255},
		Coords:     color.RGBA{0, 229, 255, 255},
		Background: color.RGBA{8, 8, 14, 255},
	},
}

// ThemeFor returns the theme of a material set. Unknown sets get Classic.
func ThemeFor(m storage.MaterialSet) *Theme {
	if !m.Valid() {
		m = storage.MaterialClassic
	}
	return &themes[m]
}

// colorsFor returns the piece colours of side under t.
func (t *Theme) colorsFor(side board.Side) PieceColors {
	if side == board.Black {
		return t.Pieces[1]
	}
	return t.Pieces[0]
}
