// Package ui implements the interactive board frontend using Ebitengine.
package ui

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	"log"
	"strings"
	"text/template"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hailam/boardtouch/internal/board"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

//go:embed assets/pieces/*.svg
var pieceAssets embed.FS

// Piece SVGs are templates over PieceColors so one file serves every
// material set and both sides.
var pieceTemplates = template.Must(template.ParseFS(pieceAssets, "assets/pieces/*.svg"))

type spriteKey struct {
	kind board.Kind
	side board.Side
}

// SpriteManager rasterises piece sprites for the current theme.
type SpriteManager struct {
	pieces      map[spriteKey]*ebiten.Image
	size        int     // Display size (e.g., 72)
	renderScale float64 // Render at higher resolution for quality (e.g., 3.0)
}

// NewSpriteManager creates a sprite manager and renders the pieces of theme.
func NewSpriteManager(size int, theme *Theme) *SpriteManager {
	sm := &SpriteManager{
		pieces:      make(map[spriteKey]*ebiten.Image),
		size:        size,
		renderScale: 3.0, // Render at 3x resolution for sharp scaling
	}
	sm.SetTheme(theme)
	return sm
}

// SetTheme re-renders every sprite with the theme's piece colours.
func (sm *SpriteManager) SetTheme(theme *Theme) {
	renderSize := int(float64(sm.size) * sm.renderScale)

	for kind := board.Pawn; kind <= board.King; kind++ {
		for _, side := range []board.Side{board.White, board.Black} {
			rgba, err := rasterizePiece(kind, theme.colorsFor(side), renderSize)
			if err != nil {
				log.Printf("Failed to render %v %v: %v", side, kind, err)
				continue
			}
			key := spriteKey{kind, side}
			if old := sm.pieces[key]; old != nil {
				old.Deallocate()
			}
			sm.pieces[key] = ebiten.NewImageFromImage(rgba)
		}
	}
}

// rasterizePiece fills the kind's template with colors and draws it at
// size x size pixels.
func rasterizePiece(kind board.Kind, colors PieceColors, size int) (*image.RGBA, error) {
	var svg bytes.Buffer
	name := strings.ToLower(kind.String()) + ".svg"
	if err := pieceTemplates.ExecuteTemplate(&svg, name, colors); err != nil {
		return nil, fmt.Errorf("template %s: %w", name, err)
	}

	icon, err := oksvg.ReadIconStream(&svg)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	icon.SetTarget(0, 0, float64(size), float64(size))

	rgba := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, rgba, rgba.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, 1.0)
	return rgba, nil
}

// Sprite returns the sprite of a piece, or nil.
func (sm *SpriteManager) Sprite(kind board.Kind, side board.Side) *ebiten.Image {
	return sm.pieces[spriteKey{kind, side}]
}

// RenderScale is the ratio of sprite pixels to display pixels.
func (sm *SpriteManager) RenderScale() float64 {
	return sm.renderScale
}

// Size returns the display size of piece sprites.
func (sm *SpriteManager) Size() int {
	return sm.size
}
