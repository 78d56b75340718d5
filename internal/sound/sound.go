// Package sound synthesises the short cues played on board transitions.
// It only produces beep streamers: the window frontend renders them to PCM
// and the player subpackage sends them to the speaker.
package sound

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Cue names a board transition that has a sound.
type Cue int

const (
	Select Cue = iota
	Deselect
	Move
	Capture
	Blocked
	Flip
)

func (c Cue) String() string {
	switch c {
	case Select:
		return "select"
	case Deselect:
		return "deselect"
	case Move:
		return "move"
	case Capture:
		return "capture"
	case Blocked:
		return "blocked"
	case Flip:
		return "flip"
	default:
		return "unknown"
	}
}

// Shape is the oscillator waveform of a tone.
type Shape int

const (
	Sine Shape = iota
	Square
)

// tone is a single decaying note whose pitch slides linearly from one
// frequency to another over its length.
type tone struct {
	from, to float64
	shape    Shape
	rate     beep.SampleRate
	length   int
	position int
	phase    float64
}

// Tone returns a finite streamer playing one note of the given length.
func Tone(rate beep.SampleRate, from, to float64, d time.Duration, shape Shape) beep.Streamer {
	return &tone{from: from, to: to, shape: shape, rate: rate, length: rate.N(d)}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.position >= t.length {
			return i, i > 0
		}
		progress := float64(t.position) / float64(t.length)
		freq := t.from + (t.to-t.from)*progress

		var v float64
		switch t.shape {
		case Square:
			v = 0.5
			if t.phase >= 0.5 {
				v = -0.5
			}
		default:
			v = math.Sin(2 * math.Pi * t.phase)
		}
		// Linear decay keeps the tail from clicking.
		v *= 1 - progress

		samples[i][0] = v
		samples[i][1] = v

		t.phase += freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.position++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// Streamer builds the streamer for cue at the given volume (0-1).
// A volume of 0 or less yields a silent stream of the same length.
func Streamer(cue Cue, rate beep.SampleRate, volume float64) beep.Streamer {
	var s beep.Streamer
	switch cue {
	case Select:
		s = Tone(rate, 880, 880, 45*time.Millisecond, Sine)
	case Deselect:
		s = Tone(rate, 660, 660, 40*time.Millisecond, Sine)
	case Move:
		s = Tone(rate, 520, 380, 70*time.Millisecond, Sine)
	case Capture:
		s = beep.Seq(
			Tone(rate, 320, 320, 60*time.Millisecond, Square),
			Tone(rate, 240, 180, 90*time.Millisecond, Square),
		)
	case Blocked:
		s = Tone(rate, 140, 120, 150*time.Millisecond, Square)
	case Flip:
		s = Tone(rate, 300, 900, 250*time.Millisecond, Sine)
	default:
		return beep.Silence(0)
	}
	return withVolume(s, volume)
}

// Length returns how long cue plays.
func Length(cue Cue) time.Duration {
	switch cue {
	case Select:
		return 45 * time.Millisecond
	case Deselect:
		return 40 * time.Millisecond
	case Move:
		return 70 * time.Millisecond
	case Capture:
		return 150 * time.Millisecond
	case Blocked:
		return 150 * time.Millisecond
	case Flip:
		return 250 * time.Millisecond
	default:
		return 0
	}
}

func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	if vol >= 1 {
		return s
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
