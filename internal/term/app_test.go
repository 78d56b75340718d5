package term

import (
	"errors"
	"math"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/hailam/boardtouch/internal/board"
	"github.com/hailam/boardtouch/internal/sound"
	"github.com/hailam/boardtouch/internal/storage"
)

const frame = 0.05

type fakeSound struct {
	cues    []sound.Cue
	enabled bool
}

func (f *fakeSound) Play(c sound.Cue)  { f.cues = append(f.cues, c) }
func (f *fakeSound) SetEnabled(b bool) { f.enabled = b }

func (f *fakeSound) last() (sound.Cue, bool) {
	if len(f.cues) == 0 {
		return 0, false
	}
	return f.cues[len(f.cues)-1], true
}

type fakeStore struct {
	saved []storage.Preferences
}

func (f *fakeStore) SavePreferences(p *storage.Preferences) error {
	f.saved = append(f.saved, *p)
	return nil
}

type fixture struct {
	t      *testing.T
	screen tcell.SimulationScreen
	app    *App
	sound  *fakeSound
	store  *fakeStore
}

func newFixture(t *testing.T, position string) *fixture {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(100, 32)

	f := &fixture{t: t, screen: screen, sound: &fakeSound{}, store: &fakeStore{}}
	app, err := New(screen, Config{
		Position: position,
		Prefs:    storage.DefaultPreferences(),
		Store:    f.store,
		Sound:    f.sound,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	f.app = app
	return f
}

// centre returns the cell holding the glyph of a piece resting on sq.
func (f *fixture) centre(sq board.Square) (int, int) {
	x, y := f.app.Scene().SquareCentre(sq)
	return int(math.Floor(x)), int(math.Floor(y))
}

// corner returns the top-left cell of sq, outside the piece pick radius.
func (f *fixture) corner(sq board.Square) (int, int) {
	x, y := f.centre(sq)
	return x - SquareW/2, y - SquareH/2
}

func (f *fixture) click(x, y int) {
	f.press(x, y, tcell.Button1)
}

func (f *fixture) press(x, y int, button tcell.ButtonMask) {
	f.app.HandleEvent(tcell.NewEventMouse(x, y, button, tcell.ModNone))
	f.app.HandleEvent(tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone))
	f.app.Step(frame)
}

func (f *fixture) key(r rune) bool {
	return f.app.HandleEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
}

func sq(t *testing.T, name string) board.Square {
	t.Helper()
	s, err := board.ParseSquare(name)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestClickMovesKnight(t *testing.T) {
	f := newFixture(t, "")
	g1, f3 := sq(t, "g1"), sq(t, "f3")

	f.click(f.centre(g1))
	if got := f.app.Session().Selected(); got != g1 {
		t.Fatalf("Selected() = %v, want g1", got)
	}
	f.click(f.corner(f3))

	b := f.app.Session().Board()
	if rec := b.Get(f3); rec.Kind != board.Knight || rec.Side != board.White {
		t.Errorf("f3 = %v %v, want White Knight", rec.Side, rec.Kind)
	}
	if !b.Get(g1).IsEmpty() {
		t.Error("g1 still occupied")
	}
	if b.Turn() != board.Black {
		t.Errorf("Turn() = %v, want Black", b.Turn())
	}
	if got := f.app.Summary().Moves; got != 1 {
		t.Errorf("Summary().Moves = %d, want 1", got)
	}
	if c, _ := f.sound.last(); c != sound.Move {
		t.Errorf("last cue = %v, want move", c)
	}
}

func TestRightClickReleases(t *testing.T) {
	f := newFixture(t, "")
	e2 := sq(t, "e2")

	f.click(f.centre(e2))
	x, y := f.centre(e2)
	f.press(x, y, tcell.Button2)

	if got := f.app.Session().Selected(); got != board.NoSquare {
		t.Errorf("Selected() = %v, want none", got)
	}
	if c, _ := f.sound.last(); c != sound.Deselect {
		t.Errorf("last cue = %v, want deselect", c)
	}
}

func TestSameSideTargetIsBlocked(t *testing.T) {
	f := newFixture(t, "")
	e2, d2 := sq(t, "e2"), sq(t, "d2")

	f.click(f.centre(e2))
	f.click(f.corner(d2))

	if got := f.app.Summary().Blocked; got != 1 {
		t.Errorf("Summary().Blocked = %d, want 1", got)
	}
	if got := f.app.Session().Selected(); got != board.NoSquare {
		t.Errorf("Selected() = %v, want none", got)
	}
	if f.app.Message() == "" || !f.app.alert {
		t.Errorf("message %q alert %v, want an alert", f.app.Message(), f.app.alert)
	}
	if c, _ := f.sound.last(); c != sound.Blocked {
		t.Errorf("last cue = %v, want blocked", c)
	}
}

func TestCaptureCountsAndDissolves(t *testing.T) {
	f := newFixture(t, "4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1")
	e4, d5 := sq(t, "e4"), sq(t, "d5")

	f.click(f.centre(e4))
	f.click(f.corner(d5))

	if got := f.app.Summary().Captures; got != 1 {
		t.Errorf("Summary().Captures = %d, want 1", got)
	}
	if rec := f.app.Session().Board().Get(d5); rec.Side != board.White {
		t.Errorf("d5 side = %v, want White", rec.Side)
	}
	// Victim visual still on screen until its dissolve finishes.
	if got := f.app.Scene().VisualCount(); got != 4 {
		t.Errorf("VisualCount() = %d right after capture, want 4", got)
	}
	for i := 0; i < 200 && f.app.Session().Animations() > 0; i++ {
		f.app.Step(frame)
	}
	if got := f.app.Scene().VisualCount(); got != 3 {
		t.Errorf("VisualCount() = %d after dissolve, want 3", got)
	}
}

func TestKeys(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want Action
	}{
		{"quit q", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), ActionQuit},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), ActionQuit},
		{"flip", tcell.NewEventKey(tcell.KeyRune, 'F', tcell.ModNone), ActionFlip},
		{"reset", tcell.NewEventKey(tcell.KeyRune, 'n', tcell.ModNone), ActionReset},
		{"mute", tcell.NewEventKey(tcell.KeyRune, 'm', tcell.ModNone), ActionMute},
		{"material 1", tcell.NewEventKey(tcell.KeyRune, '1', tcell.ModNone), ActionMaterial1},
		{"material 4", tcell.NewEventKey(tcell.KeyRune, '4', tcell.ModNone), ActionMaterial4},
		{"unbound", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), ActionNone},
		{"arrow", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), ActionNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KeyAction(tt.ev); got != tt.want {
				t.Errorf("KeyAction() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestQuitKeyStops(t *testing.T) {
	f := newFixture(t, "")
	if f.key('f') {
		t.Error("flip key reported quit")
	}
	if !f.key('q') {
		t.Error("q did not report quit")
	}
}

func TestMaterialKeySavesPreference(t *testing.T) {
	f := newFixture(t, "")
	f.key('3')

	if len(f.store.saved) == 0 {
		t.Fatal("preferences not saved")
	}
	if got := f.store.saved[len(f.store.saved)-1].MaterialSet; got != storage.MaterialWood {
		t.Errorf("saved material = %v, want Wood", got)
	}
	if got := f.app.view.Theme().Board; got != ThemeFor(storage.MaterialWood).Board {
		t.Errorf("board palette = %v, want the Wood palette", got)
	}
}

func TestMuteKeyToggles(t *testing.T) {
	f := newFixture(t, "")
	f.key('m')
	if f.sound.enabled {
		t.Error("sound still enabled after mute")
	}
	f.key('m')
	if !f.sound.enabled {
		t.Error("sound not re-enabled")
	}
}

func TestFlipKey(t *testing.T) {
	f := newFixture(t, "")
	f.key('f')

	if !f.app.Session().Flipping() {
		t.Fatal("no flip running")
	}
	if c, _ := f.sound.last(); c != sound.Flip {
		t.Errorf("last cue = %v, want flip", c)
	}
	for i := 0; i < 200 && f.app.Session().Flipping(); i++ {
		f.app.Step(frame)
	}
	if !f.app.Scene().Flipped() {
		t.Error("scene not flipped after the flip finished")
	}
	if !f.store.saved[len(f.store.saved)-1].Flipped {
		t.Error("flipped preference not saved")
	}
}

func TestExplicitPositionErrors(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	defer screen.Fini()

	_, err := New(screen, Config{Position: "rnbqkbnr/pppppppp/9 w"})
	if !errors.Is(err, board.ErrMalformedPosition) {
		t.Errorf("New() error = %v, want ErrMalformedPosition", err)
	}
}

func TestStoredPositionFallsBack(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	defer screen.Fini()

	prefs := storage.DefaultPreferences()
	prefs.StartPosition = "not a position"
	app, err := New(screen, Config{Prefs: prefs})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if got := app.Session().Board().Occupied(); got != 32 {
		t.Errorf("Occupied() = %d, want 32", got)
	}
}

func TestDrawShowsPieces(t *testing.T) {
	f := newFixture(t, "")
	f.app.Draw()

	tests := []struct {
		square string
		want   rune
	}{
		{"g1", Glyph(board.Knight, false)},
		{"e8", Glyph(board.King, false)},
		{"a2", Glyph(board.Pawn, false)},
	}
	for _, tt := range tests {
		t.Run(tt.square, func(t *testing.T) {
			x, y := f.centre(sq(t, tt.square))
			if r, _, _, _ := f.screen.GetContent(x, y); r != tt.want {
				t.Errorf("cell (%d, %d) = %q, want %q", x, y, r, tt.want)
			}
		})
	}

	x, y := f.centre(sq(t, "e4"))
	if r, _, _, _ := f.screen.GetContent(x, y); r != ' ' {
		t.Errorf("empty e4 shows %q", r)
	}
}
