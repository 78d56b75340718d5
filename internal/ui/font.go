package ui

import (
	"bytes"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	defaultFontSize = 14.0
	titleFontSize   = 16.0
	coordFontSize   = 12.0
)

var (
	regularSource *text.GoTextFaceSource
	boldSource    *text.GoTextFaceSource

	// Faces are requested every frame at the current UI scale; keep one per
	// size in quarter points.
	sizedFaces = map[int]*text.GoTextFace{}
)

func init() {
	var err error
	if regularSource, err = text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF)); err != nil {
		log.Printf("Failed to load regular font: %v", err)
	}
	if boldSource, err = text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF)); err != nil {
		log.Printf("Failed to load bold font: %v", err)
	}
}

// GetBoldFace returns the title face at its unscaled size, or nil when the
// font failed to load.
func GetBoldFace() *text.GoTextFace {
	if boldSource == nil {
		return nil
	}
	return &text.GoTextFace{Source: boldSource, Size: titleFontSize}
}

// GetFaceWithSize returns the regular face at size pixels.
func GetFaceWithSize(size float64) *text.GoTextFace {
	if regularSource == nil {
		return nil
	}
	key := int(math.Round(size * 4))
	if f, ok := sizedFaces[key]; ok {
		return f
	}
	f := &text.GoTextFace{Source: regularSource, Size: float64(key) / 4}
	sizedFaces[key] = f
	return f
}

// MeasureText returns the width and height of s in face.
func MeasureText(s string, face *text.GoTextFace) (width, height float64) {
	if face == nil {
		return 0, 0
	}
	return text.Measure(s, face, 0)
}
