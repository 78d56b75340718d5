package ui

import (
	"math"

	"github.com/gopxl/beep"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hailam/boardtouch/internal/sound"
)

const sampleRate = 44100

var cues = []sound.Cue{sound.Select, sound.Deselect, sound.Move, sound.Capture, sound.Blocked, sound.Flip}

// AudioManager plays the board cues through Ebitengine's audio context.
type AudioManager struct {
	context *audio.Context
	pcm     map[sound.Cue][]byte
	enabled bool
	volume  float64
}

// NewAudioManager renders every cue up front.
func NewAudioManager(enabled bool) *AudioManager {
	am := &AudioManager{
		context: audio.NewContext(sampleRate),
		pcm:     make(map[sound.Cue][]byte, len(cues)),
		enabled: enabled,
		volume:  0.5,
	}
	for _, c := range cues {
		am.pcm[c] = renderPCM(sound.Streamer(c, beep.SampleRate(sampleRate), 1))
	}
	return am
}

// renderPCM drains s into 16-bit little-endian stereo PCM.
func renderPCM(s beep.Streamer) []byte {
	var data []byte
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for _, frame := range buf[:n] {
			for _, v := range frame {
				val := int16(math.Max(-1, math.Min(1, v)) * 32767)
				data = append(data, byte(val), byte(val>>8))
			}
		}
		if !ok {
			return data
		}
	}
}

// Play starts cue. Each call gets its own player so cues can overlap.
func (am *AudioManager) Play(cue sound.Cue) {
	if !am.enabled {
		return
	}
	data, ok := am.pcm[cue]
	if !ok {
		return
	}
	player := am.context.NewPlayerFromBytes(data)
	player.SetVolume(am.volume)
	player.Play()
}

// SetEnabled enables or disables audio.
func (am *AudioManager) SetEnabled(enabled bool) {
	am.enabled = enabled
}

// SetVolume sets the audio volume (0.0 to 1.0).
func (am *AudioManager) SetVolume(volume float64) {
	am.volume = math.Max(0, math.Min(1, volume))
}

// IsEnabled returns whether audio is enabled.
func (am *AudioManager) IsEnabled() bool {
	return am.enabled
}
