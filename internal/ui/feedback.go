package ui

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/hailam/boardtouch/internal/board"
	"github.com/hailam/boardtouch/internal/control"
	"github.com/hailam/boardtouch/internal/sound"
	"github.com/hailam/boardtouch/internal/storage"
)

// ToastType represents the type of toast notification.
type ToastType int

const (
	ToastInfo ToastType = iota
	ToastWarning
	ToastSuccess
)

// Toast represents a notification message.
type Toast struct {
	Message   string
	Type      ToastType
	StartTime time.Time
	Duration  time.Duration
}

// ToastManager manages toast notifications.
type ToastManager struct {
	toasts   []*Toast
	maxStack int
}

// NewToastManager creates a new toast manager.
func NewToastManager() *ToastManager {
	return &ToastManager{maxStack: 3}
}

// Show displays a new toast notification, dropping the oldest past maxStack.
func (tm *ToastManager) Show(message string, toastType ToastType, duration time.Duration) {
	tm.toasts = append(tm.toasts, &Toast{
		Message:   message,
		Type:      toastType,
		StartTime: time.Now(),
		Duration:  duration,
	})
	if len(tm.toasts) > tm.maxStack {
		tm.toasts = tm.toasts[1:]
	}
}

// Update removes expired toasts.
func (tm *ToastManager) Update() {
	now := time.Now()
	active := tm.toasts[:0]
	for _, t := range tm.toasts {
		if now.Sub(t.StartTime) < t.Duration {
			active = append(active, t)
		}
	}
	tm.toasts = active
}

// toastColors returns background and text colours at the given opacity.
func toastColors(t ToastType, alpha float64) (bg, fg color.RGBA) {
	a := func(v float64) uint8 { return uint8(v * alpha) }
	switch t {
	case ToastWarning:
		return color.RGBA{180, 140, 20, a(220)}, color.RGBA{40, 30, 0, a(255)}
	case ToastSuccess:
		return color.RGBA{50, 150, 50, a(220)}, color.RGBA{255, 255, 255, a(255)}
	default:
		return color.RGBA{50, 100, 150, a(220)}, color.RGBA{255, 255, 255, a(255)}
	}
}

// Draw renders the active toasts stacked over the top of the board.
func (tm *ToastManager) Draw(screen *ebiten.Image) {
	face := GetFaceWithSize(defaultFontSize * UIScale)
	if face == nil {
		return
	}

	y := 50.0 * UIScale
	for _, t := range tm.toasts {
		elapsed := time.Since(t.StartTime).Seconds()
		duration := t.Duration.Seconds()

		// Fade in/out
		alpha := 1.0
		fadeTime := 0.2
		if elapsed < fadeTime {
			alpha = elapsed / fadeTime
		} else if elapsed > duration-fadeTime {
			alpha = (duration - elapsed) / fadeTime
		}
		alpha = math.Max(0, math.Min(1, alpha))
		bgColor, textColor := toastColors(t.Type, alpha)

		w, h := MeasureText(t.Message, face)
		padding := 12.0 * UIScale
		boxW := w + padding*2
		boxH := h + padding*2
		x := float64(BoardSize)*UIScale/2 - boxW/2

		vector.DrawFilledRect(screen, float32(x), float32(y), float32(boxW), float32(boxH), bgColor, false)

		op := &text.DrawOptions{}
		op.GeoM.Translate(x+padding, y+padding)
		op.ColorScale.ScaleWithColor(textColor)
		text.Draw(screen, t.Message, face, op)

		y += boxH + 8*UIScale
	}
}

// ShakeAnimation jiggles the piece on a square.
type ShakeAnimation struct {
	Square    board.Square
	StartTime time.Time
	Duration  time.Duration
	Intensity float64
}

// FlashAnimation tints a square and fades out.
type FlashAnimation struct {
	Square    board.Square
	StartTime time.Time
	Duration  time.Duration
	Color     color.RGBA
}

// AnimationManager runs wall-clock feedback effects. They are cosmetic
// and sit outside the board lifecycles.
type AnimationManager struct {
	shakes  []*ShakeAnimation
	flashes []*FlashAnimation
}

// NewAnimationManager creates a new animation manager.
func NewAnimationManager() *AnimationManager {
	return &AnimationManager{}
}

// StartShake begins a shake animation on a square.
func (am *AnimationManager) StartShake(sq board.Square) {
	am.shakes = append(am.shakes, &ShakeAnimation{
		Square:    sq,
		StartTime: time.Now(),
		Duration:  300 * time.Millisecond,
		Intensity: 8.0,
	})
}

// StartFlash begins a flash animation on a square.
func (am *AnimationManager) StartFlash(sq board.Square, c color.RGBA) {
	am.flashes = append(am.flashes, &FlashAnimation{
		Square:    sq,
		StartTime: time.Now(),
		Duration:  400 * time.Millisecond,
		Color:     c,
	})
}

// Update removes expired animations.
func (am *AnimationManager) Update() {
	now := time.Now()

	shakes := am.shakes[:0]
	for _, s := range am.shakes {
		if now.Sub(s.StartTime) < s.Duration {
			shakes = append(shakes, s)
		}
	}
	am.shakes = shakes

	flashes := am.flashes[:0]
	for _, f := range am.flashes {
		if now.Sub(f.StartTime) < f.Duration {
			flashes = append(flashes, f)
		}
	}
	am.flashes = flashes
}

// Clear drops every running effect.
func (am *AnimationManager) Clear() {
	am.shakes = am.shakes[:0]
	am.flashes = am.flashes[:0]
}

// ShakeOffset returns the current shake displacement for a square in
// logical pixels.
func (am *AnimationManager) ShakeOffset(sq board.Square) (float64, float64) {
	for _, s := range am.shakes {
		if s.Square != sq {
			continue
		}
		progress := time.Since(s.StartTime).Seconds() / s.Duration.Seconds()
		if progress >= 1.0 {
			return 0, 0
		}
		// Damped sine wave oscillation
		amplitude := s.Intensity * math.Exp(-5*progress)
		return amplitude * math.Sin(40*progress), 0
	}
	return 0, 0
}

// DrawFlashes renders all active flash overlays.
func (am *AnimationManager) DrawFlashes(screen *ebiten.Image, renderer *Renderer) {
	for _, f := range am.flashes {
		progress := time.Since(f.StartTime).Seconds() / f.Duration.Seconds()
		if progress >= 1.0 {
			continue
		}
		c := f.Color
		c.A = uint8(float64(f.Color.A) * (1.0 - progress))

		x, y, size := renderer.SquareRect(f.Square)
		vector.DrawFilledRect(screen, x, y, size, size, c, false)
	}
}

// FeedbackManager turns board transitions into sound, toasts and effects,
// and tallies them for the session statistics.
type FeedbackManager struct {
	toasts     *ToastManager
	animations *AnimationManager
	audio      *AudioManager

	summary    storage.SessionSummary
	lastAction string
}

var _ control.Listener = (*FeedbackManager)(nil)

// NewFeedbackManager creates a new feedback manager.
func NewFeedbackManager(audio *AudioManager) *FeedbackManager {
	return &FeedbackManager{
		toasts:     NewToastManager(),
		animations: NewAnimationManager(),
		audio:      audio,
	}
}

// Update updates all feedback systems.
func (fm *FeedbackManager) Update() {
	fm.toasts.Update()
	fm.animations.Update()
}

// Draw renders all feedback overlays.
func (fm *FeedbackManager) Draw(screen *ebiten.Image, renderer *Renderer) {
	fm.animations.DrawFlashes(screen, renderer)
	fm.toasts.Draw(screen)
}

// Animations returns the animation manager for renderer integration.
func (fm *FeedbackManager) Animations() *AnimationManager {
	return fm.animations
}

// Audio returns the audio manager for settings access.
func (fm *FeedbackManager) Audio() *AudioManager {
	return fm.audio
}

// Toast shows an informational message.
func (fm *FeedbackManager) Toast(message string) {
	fm.toasts.Show(message, ToastInfo, 2*time.Second)
}

// LastAction describes the most recent board transition.
func (fm *FeedbackManager) LastAction() string {
	return fm.lastAction
}

// Summary returns the counts gathered so far.
func (fm *FeedbackManager) Summary() storage.SessionSummary {
	return fm.summary
}

// Selected implements control.Listener.
func (fm *FeedbackManager) Selected(sq board.Square, rec board.Record) {
	fm.lastAction = fmt.Sprintf("Selected %v %v on %v", rec.Side, rec.Kind, sq)
	fm.audio.Play(sound.Select)
}

// Deselected implements control.Listener.
func (fm *FeedbackManager) Deselected(sq board.Square) {
	fm.lastAction = fmt.Sprintf("Released %v", sq)
	fm.audio.Play(sound.Deselect)
}

// Moved implements control.Listener.
func (fm *FeedbackManager) Moved(from, to board.Square, rec board.Record) {
	fm.summary.Moves++
	fm.lastAction = fmt.Sprintf("%v %v %v-%v", rec.Side, rec.Kind, from, to)
	fm.audio.Play(sound.Move)
}

// Captured implements control.Listener.
func (fm *FeedbackManager) Captured(sq board.Square, victim board.Record) {
	fm.summary.Captures++
	fm.lastAction = fmt.Sprintf("Captured %v %v on %v", victim.Side, victim.Kind, sq)
	fm.audio.Play(sound.Capture)
}

// Blocked implements control.Listener.
func (fm *FeedbackManager) Blocked(from, to board.Square) {
	fm.summary.Blocked++
	fm.lastAction = fmt.Sprintf("%v-%v blocked", from, to)
	fm.toasts.Show("Square occupied by your own piece", ToastWarning, 2*time.Second)
	fm.animations.StartShake(from)
	fm.animations.StartFlash(to, color.RGBA{255, 80, 80, 150})
	fm.audio.Play(sound.Blocked)
}
