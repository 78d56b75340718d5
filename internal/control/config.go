package control

import (
	"image/color"
	"math"
	"time"
)

// Config holds the tunable rates and highlight colours. Rates are per second.
type Config struct {
	SpinRate     float64 // selected piece, rad/s
	RiseSpeed    float64 // captured piece, squares/s
	DissolveRate float64 // captured piece, cutoff/s
	FlipRate     float64 // view flip, rad/s

	SelectedColor color.RGBA
	HoverColor    color.RGBA

	// Seed feeds the capture tumble. Zero picks a time-based seed.
	Seed int64
}

// DefaultConfig returns the rates and colours used by both frontends.
func DefaultConfig() Config {
	return Config{
		SpinRate:      1,
		RiseSpeed:     2,
		DissolveRate:  0.5,
		FlipRate:      3,
		SelectedColor: color.RGBA{90, 190, 90, 255},  // Green
		HoverColor:    color.RGBA{247, 247, 105, 255}, // Yellow
	}
}

func (c Config) seed() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}

// halfTurn is the view rotation of a flip.
const halfTurn = math.Pi
