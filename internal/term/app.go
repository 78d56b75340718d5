// Package term is the terminal frontend: the same board session as the
// window frontend, drawn with tcell and driven by terminal mouse reports.
package term

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/hailam/boardtouch/internal/board"
	"github.com/hailam/boardtouch/internal/control"
	"github.com/hailam/boardtouch/internal/scene"
	"github.com/hailam/boardtouch/internal/sound"
	"github.com/hailam/boardtouch/internal/storage"
)

// FrameInterval is the tick period of Run.
const FrameInterval = 16 * time.Millisecond

// messageTTL is how long a status message stays up, in seconds.
const messageTTL = 3.0

// Sounder plays cues. Implementations must not block.
type Sounder interface {
	Play(sound.Cue)
	SetEnabled(bool)
}

// PreferenceStore persists preferences. *storage.Storage satisfies it.
type PreferenceStore interface {
	SavePreferences(*storage.Preferences) error
}

// Config wires an App. Prefs is required; Store and Sound may be nil.
type Config struct {
	// Position overrides the stored start position when non-empty.
	Position string
	Prefs    *storage.Preferences
	Store    PreferenceStore
	Sound    Sounder
}

// App owns the terminal session. It is driven from a single goroutine.
type App struct {
	screen  tcell.Screen
	scene   *scene.Scene
	session *control.Session
	view    *View
	pointer Pointer

	prefs *storage.Preferences
	store PreferenceStore
	sound Sounder

	pending []scene.Event
	message string
	alert   bool
	ttl     float64
	summary storage.SessionSummary
}

var _ control.Listener = (*App)(nil)

// New builds the app on an initialised screen and loads the start position.
// A bad explicit position is an error; a bad stored one falls back to the
// standard start.
func New(screen tcell.Screen, cfg Config) (*App, error) {
	if cfg.Prefs == nil {
		cfg.Prefs = storage.DefaultPreferences()
	}
	theme := ThemeFor(cfg.Prefs.MaterialSet)

	a := &App{
		screen: screen,
		scene:  scene.New(Geometry(), theme.Board),
		prefs:  cfg.Prefs,
		store:  cfg.Store,
		sound:  cfg.Sound,
	}
	a.scene.SetFlipped(a.prefs.Flipped)
	a.view = NewView(a.scene, theme)
	a.session = control.NewSession(a.scene, a.scene, control.DefaultConfig())
	a.session.SetListener(a)
	if a.sound != nil {
		a.sound.SetEnabled(a.prefs.SoundEnabled)
	}

	switch {
	case cfg.Position != "":
		if err := a.session.Load(cfg.Position); err != nil {
			return nil, err
		}
		a.prefs.StartPosition = cfg.Position
		a.savePreferences()
	case a.prefs.StartPosition != "":
		if err := a.session.Load(a.prefs.StartPosition); err != nil {
			log.Printf("Warning: Stored start position rejected: %v", err)
			if err := a.session.Load(board.StartPosition); err != nil {
				return nil, err
			}
		}
	default:
		if err := a.session.Load(board.StartPosition); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// Session returns the board session.
func (a *App) Session() *control.Session {
	return a.session
}

// Scene returns the render model.
func (a *App) Scene() *scene.Scene {
	return a.scene
}

// Summary returns what happened on the board so far.
func (a *App) Summary() storage.SessionSummary {
	return a.summary
}

// Message returns the current status message.
func (a *App) Message() string {
	return a.message
}

// HandleEvent queues pointer input and runs key commands. It reports
// whether the app should quit.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventMouse:
		a.pending = append(a.pending, a.pointer.Translate(ev)...)
	case *tcell.EventKey:
		return a.runAction(KeyAction(ev))
	case *tcell.EventResize:
		a.screen.Sync()
	}
	return false
}

func (a *App) runAction(act Action) bool {
	switch act {
	case ActionQuit:
		return true
	case ActionFlip:
		a.Flip()
	case ActionReset:
		a.Reset()
	case ActionMute:
		a.SetSoundEnabled(!a.prefs.SoundEnabled)
	case ActionMaterial1, ActionMaterial2, ActionMaterial3, ActionMaterial4:
		a.SetMaterialSet(storage.MaterialSet(act - ActionMaterial1))
	}
	return false
}

// Step feeds the queued pointer events to the session and advances it by
// dt seconds.
func (a *App) Step(dt float64) {
	events := a.pending
	a.pending = nil
	a.session.Tick(dt, events)

	if a.ttl > 0 {
		a.ttl -= dt
		if a.ttl <= 0 {
			a.message, a.alert = "", false
		}
	}
}

// Draw renders one frame.
func (a *App) Draw() {
	a.screen.Clear()
	a.view.DrawBoard(a.screen)
	a.view.DrawPieces(a.screen)
	a.view.DrawPanel(a.screen, a.status())
	a.screen.Show()
}

func (a *App) status() Status {
	b := a.session.Board()
	castling := "-"
	if f := strings.Fields(b.FEN()); len(f) > 2 {
		castling = f[2]
	}
	selected := "none"
	if sq := a.session.Selected(); sq != board.NoSquare {
		selected = fmt.Sprintf("%v %v", sq, b.Get(sq).Kind)
	}
	return Status{
		Turn:       b.Turn(),
		Castling:   castling,
		Selected:   selected,
		Pieces:     b.Occupied(),
		Animations: a.session.Animations(),
		Material:   a.prefs.MaterialSet.String(),
		Sound:      a.prefs.SoundEnabled,
		Message:    a.message,
		Alert:      a.alert,
		Position:   b.FEN(),
	}
}

// Run polls the screen and ticks at FrameInterval until the user quits or
// ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(FrameInterval)
	defer ticker.Stop()

	last := time.Now()
	a.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if a.HandleEvent(ev) {
				return nil
			}
		case now := <-ticker.C:
			a.Step(now.Sub(last).Seconds())
			last = now
			a.Draw()
		}
	}
}

// Flip turns the view towards the other side and remembers the new side.
func (a *App) Flip() {
	if !a.session.Flip() {
		return
	}
	a.prefs.Flipped = !a.scene.Flipped()
	a.savePreferences()
	a.play(sound.Flip)
}

// Reset reloads the start position.
func (a *App) Reset() {
	if err := a.session.Reset(); err != nil {
		log.Printf("Warning: Failed to reset: %v", err)
		return
	}
	a.say("Position reset", false)
}

// SetMaterialSet re-colours the board and pieces.
func (a *App) SetMaterialSet(m storage.MaterialSet) {
	if !m.Valid() || m == a.prefs.MaterialSet {
		return
	}
	a.prefs.MaterialSet = m
	a.view.SetTheme(ThemeFor(m))
	a.savePreferences()
	a.say(m.String()+" pieces", false)
}

// SetSoundEnabled turns cues on or off.
func (a *App) SetSoundEnabled(enabled bool) {
	a.prefs.SoundEnabled = enabled
	if a.sound != nil {
		a.sound.SetEnabled(enabled)
	}
	a.savePreferences()
	if enabled {
		a.say("Sound on", false)
	} else {
		a.say("Sound off", false)
	}
}

func (a *App) savePreferences() {
	if a.store == nil {
		return
	}
	if err := a.store.SavePreferences(a.prefs); err != nil {
		log.Printf("Warning: Failed to save preferences: %v", err)
	}
}

func (a *App) say(msg string, alert bool) {
	a.message, a.alert, a.ttl = msg, alert, messageTTL
}

func (a *App) play(c sound.Cue) {
	if a.sound != nil {
		a.sound.Play(c)
	}
}

// Selected implements control.Listener.
func (a *App) Selected(sq board.Square, rec board.Record) {
	a.say(fmt.Sprintf("%v %v on %v", rec.Side, rec.Kind, sq), false)
	a.play(sound.Select)
}

// Deselected implements control.Listener.
func (a *App) Deselected(sq board.Square) {
	a.say(fmt.Sprintf("Released %v", sq), false)
	a.play(sound.Deselect)
}

// Moved implements control.Listener.
func (a *App) Moved(from, to board.Square, rec board.Record) {
	a.summary.Moves++
	a.say(fmt.Sprintf("%v %v-%v", rec.Kind, from, to), false)
	a.play(sound.Move)
}

// Captured implements control.Listener.
func (a *App) Captured(sq board.Square, victim board.Record) {
	a.summary.Captures++
	a.say(fmt.Sprintf("%v %v taken on %v", victim.Side, victim.Kind, sq), false)
	a.play(sound.Capture)
}

// Blocked implements control.Listener.
func (a *App) Blocked(from, to board.Square) {
	a.summary.Blocked++
	a.say(fmt.Sprintf("%v cannot reach %v", from, to), true)
	a.play(sound.Blocked)
}
