package ui

import (
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hailam/boardtouch/internal/board"
	"github.com/hailam/boardtouch/internal/control"
	"github.com/hailam/boardtouch/internal/scene"
	"github.com/hailam/boardtouch/internal/sound"
	"github.com/hailam/boardtouch/internal/storage"
)

// UI Constants
const (
	ScreenWidth  = 960
	ScreenHeight = 640
	BoardSize    = 640
	BoardFrame   = 32
	SquareSize   = (BoardSize - 2*BoardFrame) / 8
	PanelWidth   = ScreenWidth - BoardSize
)

// UIScale is the global HiDPI scale factor for all UI drawing.
// Set by Game.Layout() and used by widgets and the panel.
var UIScale float64 = 1.0

// Options are the command-line overrides, layered over the stored
// preferences.
type Options struct {
	Position string // start position; empty uses the stored one or the standard start
	DataDir  string // preference store root; empty uses the platform data dir
	Mute     bool
	Material storage.MaterialSet // negative keeps the stored set
}

// Game implements ebiten.Game interface.
type Game struct {
	scene   *scene.Scene
	session *control.Session

	// Storage
	storage *storage.Storage
	prefs   *storage.Preferences

	// Components
	renderer *Renderer
	input    *InputHandler
	panel    *Panel
	feedback *FeedbackManager

	started time.Time

	// HiDPI scaling
	scale float64
}

// boardGeometry places the squares inside the frame, in logical pixels.
func boardGeometry() scene.Geometry {
	g := scene.DefaultGeometry(SquareSize)
	g.OriginX, g.OriginY = BoardFrame, BoardFrame
	g.Margin = float64(BoardFrame) / SquareSize
	return g
}

// NewGame creates the board window state. A position that fails to parse
// is returned as an error; storage problems only disable persistence.
func NewGame(opts Options) (*Game, error) {
	g := &Game{
		input:   NewInputHandler(),
		started: time.Now(),
		scale:   1.0,
	}

	// Initialize storage
	var err error
	g.storage, err = storage.NewStorageAt(opts.DataDir)
	if err != nil {
		log.Printf("Warning: Failed to initialize storage: %v", err)
		g.storage = nil
	}
	g.loadPreferences(opts)

	theme := ThemeFor(g.prefs.MaterialSet)
	g.scene = scene.New(boardGeometry(), theme.Board)
	g.scene.SetFlipped(g.prefs.Flipped)
	g.renderer = NewRenderer(g.scene, theme)

	g.feedback = NewFeedbackManager(NewAudioManager(g.prefs.SoundEnabled))
	g.session = control.NewSession(g.scene, g.scene, control.DefaultConfig())
	g.session.SetListener(g.feedback)

	if opts.Position != "" {
		if err := g.session.Load(opts.Position); err != nil {
			if g.storage != nil {
				g.storage.Close()
			}
			return nil, err
		}
	} else if g.prefs.StartPosition == "" {
		if err := g.session.Load(board.StartPosition); err != nil {
			return nil, err
		}
	} else if err := g.session.Load(g.prefs.StartPosition); err != nil {
		log.Printf("Warning: Stored start position rejected: %v", err)
		if err := g.session.Load(board.StartPosition); err != nil {
			return nil, err
		}
	}

	g.panel = NewPanel(g)

	if opts.Position != "" {
		g.prefs.StartPosition = opts.Position
		g.savePreferences()
	}
	g.checkFirstLaunch()

	return g, nil
}

// loadPreferences loads stored preferences and layers the options on top.
func (g *Game) loadPreferences(opts Options) {
	g.prefs = storage.DefaultPreferences()
	if g.storage != nil {
		prefs, err := g.storage.LoadPreferences()
		if err != nil {
			log.Printf("Warning: Failed to load preferences: %v", err)
		} else {
			g.prefs = prefs
		}
	}

	if opts.Mute {
		g.prefs.SoundEnabled = false
	}
	if opts.Material.Valid() {
		g.prefs.MaterialSet = opts.Material
	}
}

// savePreferences saves current preferences to storage.
func (g *Game) savePreferences() {
	if g.storage == nil {
		return
	}
	if err := g.storage.SavePreferences(g.prefs); err != nil {
		log.Printf("Warning: Failed to save preferences: %v", err)
	}
}

// checkFirstLaunch shows the controls once.
func (g *Game) checkFirstLaunch() {
	if g.storage == nil {
		return
	}

	isFirst, err := g.storage.IsFirstLaunch()
	if err != nil {
		log.Printf("Warning: Failed to check first launch: %v", err)
		return
	}
	if !isFirst {
		return
	}

	g.feedback.toasts.Show("Click a piece, then a square. Right-click releases.", ToastInfo, 6*time.Second)
	g.feedback.toasts.Show("F flips, N resets, 1-4 change pieces, M mutes", ToastInfo, 6*time.Second)
	if err := g.storage.MarkFirstLaunchComplete(); err != nil {
		log.Printf("Warning: Failed to mark first launch complete: %v", err)
	}
}

// Update advances one frame: panel, keys, then the board session.
func (g *Game) Update() error {
	g.input.Update()
	g.feedback.Update()

	panelHandled := g.panel.HandleInput(g.input)
	g.handleKeys()

	mx, my := g.input.MousePosition()
	clickable := !panelHandled && !g.panel.Contains(mx, my)
	g.session.Tick(1/float64(ebiten.TPS()), g.input.BoardEvents(clickable))

	g.updateCursor()
	return nil
}

// handleKeys maps the keyboard shortcuts onto panel actions.
func (g *Game) handleKeys() {
	switch {
	case IsKeyJustPressed(ebiten.KeyF):
		g.FlipAction()
	case IsKeyJustPressed(ebiten.KeyN):
		g.ResetAction()
	case IsKeyJustPressed(ebiten.KeyM):
		g.SetSoundEnabled(!g.SoundEnabled())
	}

	keys := []ebiten.Key{ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4}
	for i, k := range keys {
		if IsKeyJustPressed(k) {
			g.SetMaterialSet(storage.MaterialSet(i))
		}
	}
}

// updateCursor sets the cursor shape based on what's being hovered.
func (g *Game) updateCursor() {
	if g.panel.AnyButtonHovered() {
		ebiten.SetCursorShape(ebiten.CursorShapePointer)
	} else {
		ebiten.SetCursorShape(ebiten.CursorShapeDefault)
	}
}

// Draw renders the game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.SetScale(g.scale)

	screen.Fill(g.renderer.Theme().Background)

	g.renderer.DrawBoard(screen)
	g.renderer.DrawPieces(screen, g.feedback.Animations())
	g.feedback.Draw(screen, g.renderer)
	g.panel.Draw(screen)
}

// Layout returns the game's screen dimensions.
// Width is dynamic based on panel collapsed state.
// Uses device scale factor for crisp rendering on HiDPI displays.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.scale = ebiten.Monitor().DeviceScaleFactor()
	if g.scale < 1.0 {
		g.scale = 1.0
	}
	UIScale = g.scale

	if g.panel != nil && g.panel.Collapsed() {
		return int(float64(BoardSize+CollapsedWidth) * g.scale), int(float64(ScreenHeight) * g.scale)
	}
	return int(float64(ScreenWidth) * g.scale), int(float64(ScreenHeight) * g.scale)
}

// ResetAction redraws the configured start position.
func (g *Game) ResetAction() {
	if err := g.session.Reset(); err != nil {
		log.Printf("Warning: Failed to reset: %v", err)
		return
	}
	g.feedback.Animations().Clear()
	g.feedback.Toast("Position reset")
}

// FlipAction turns the board towards the other side.
func (g *Game) FlipAction() {
	if !g.session.Flip() {
		return
	}
	// The flip lands on the opposite of the current resting view.
	g.prefs.Flipped = !g.scene.Flipped()
	g.savePreferences()
	g.feedback.Audio().Play(sound.Flip)
}

// SetMaterialSet re-skins pieces and board and remembers the choice.
func (g *Game) SetMaterialSet(m storage.MaterialSet) {
	if !m.Valid() || m == g.prefs.MaterialSet {
		return
	}
	g.prefs.MaterialSet = m
	g.renderer.SetTheme(ThemeFor(m))
	g.savePreferences()
	g.feedback.Toast(m.String() + " pieces")
}

// MaterialSet returns the active material set.
func (g *Game) MaterialSet() storage.MaterialSet {
	return g.prefs.MaterialSet
}

// SetSoundEnabled toggles sound effects and remembers the choice.
func (g *Game) SetSoundEnabled(enabled bool) {
	g.prefs.SoundEnabled = enabled
	g.feedback.Audio().SetEnabled(enabled)
	g.savePreferences()
}

// SoundEnabled reports whether sound effects play.
func (g *Game) SoundEnabled() bool {
	return g.prefs.SoundEnabled
}

// Close records the session and releases storage.
func (g *Game) Close() {
	if g.storage == nil {
		return
	}
	sum := g.feedback.Summary()
	sum.Duration = time.Since(g.started)
	if err := g.storage.RecordSession(sum); err != nil {
		log.Printf("Warning: Failed to record session: %v", err)
	}
	g.storage.Close()
	g.storage = nil
}
