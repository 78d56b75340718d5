package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hailam/boardtouch/internal/scene"
)

// InputHandler manages mouse and keyboard input.
type InputHandler struct {
	mouseX, mouseY   int // Logical coordinates (unscaled)
	fx, fy           float64
	moved            bool
	leftPressed      bool
	leftJustPressed  bool
	rightJustPressed bool
}

// NewInputHandler creates a new input handler.
func NewInputHandler() *InputHandler {
	return &InputHandler{mouseX: -1, mouseY: -1}
}

// Update updates the input state. Call this once per frame.
func (ih *InputHandler) Update() {
	// Get raw cursor position (in scaled space)
	rawX, rawY := ebiten.CursorPosition()

	// Convert to logical coordinates by dividing by scale
	scale := UIScale
	if scale < 1.0 {
		scale = 1.0
	}
	fx, fy := float64(rawX)/scale, float64(rawY)/scale
	ih.moved = fx != ih.fx || fy != ih.fy
	ih.fx, ih.fy = fx, fy
	ih.mouseX, ih.mouseY = int(fx), int(fy)

	ih.leftJustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	ih.leftPressed = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	ih.rightJustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight)
}

// BoardEvents converts this frame's pointer activity into scene events.
// Clicks are only reported when clickable is true, so a click consumed by
// the panel never reaches the board.
func (ih *InputHandler) BoardEvents(clickable bool) []scene.Event {
	var events []scene.Event
	if ih.moved {
		events = append(events, scene.Event{Kind: scene.PointerMove, X: ih.fx, Y: ih.fy})
	}
	if !clickable {
		return events
	}
	if ih.leftJustPressed {
		events = append(events, scene.Event{Kind: scene.PrimaryClick, X: ih.fx, Y: ih.fy})
	}
	if ih.rightJustPressed {
		events = append(events, scene.Event{Kind: scene.SecondaryClick, X: ih.fx, Y: ih.fy})
	}
	return events
}

// MousePosition returns the current mouse position in logical coordinates.
func (ih *InputHandler) MousePosition() (int, int) {
	return ih.mouseX, ih.mouseY
}

// IsLeftJustPressed returns true if the left mouse button was just pressed.
func (ih *InputHandler) IsLeftJustPressed() bool {
	return ih.leftJustPressed
}

// IsLeftPressed returns true if the left mouse button is currently pressed.
func (ih *InputHandler) IsLeftPressed() bool {
	return ih.leftPressed
}

// IsInBounds returns true if the mouse is within the given rectangle.
func (ih *InputHandler) IsInBounds(x, y, w, h int) bool {
	return ih.mouseX >= x && ih.mouseX < x+w && ih.mouseY >= y && ih.mouseY < y+h
}

// IsKeyJustPressed returns true if the specified key was just pressed.
func IsKeyJustPressed(key ebiten.Key) bool {
	return inpututil.IsKeyJustPressed(key)
}
