// Package player plays sound cues through the system speaker.
package player

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/hailam/boardtouch/internal/sound"
)

const sampleRate = beep.SampleRate(44100)

// Player plays cues on the speaker. The zero value is not usable; call New.
type Player struct {
	mu          sync.Mutex
	enabled     bool
	volume      float64
	initialized bool
}

// New returns a player. The speaker is opened on the first audible cue so
// a muted run never touches the audio device.
func New(enabled bool) *Player {
	return &Player{enabled: enabled, volume: 0.5}
}

func (p *Player) init() error {
	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	p.initialized = true
	return nil
}

// Play starts cue and returns immediately. Errors opening the speaker
// disable the player.
func (p *Player) Play(cue sound.Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.enabled {
		return
	}
	if err := p.init(); err != nil {
		p.enabled = false
		return
	}
	speaker.Play(sound.Streamer(cue, sampleRate, p.volume))
}

// SetEnabled turns playback on or off.
func (p *Player) SetEnabled(enabled bool) {
	p.mu.Lock()
	p.enabled = enabled
	p.mu.Unlock()
}

// Enabled reports whether cues are played.
func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled
}

// SetVolume sets the cue volume, clamped to 0-1.
func (p *Player) SetVolume(v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = max(0, min(1, v))
}

// Close stops anything still playing.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.initialized {
		speaker.Clear()
	}
}
