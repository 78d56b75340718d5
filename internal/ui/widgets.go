package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Widget colors (uses colors from panel.go: buttonBg, accentColor, textPrimary, textSecondary)
var (
	widgetBg      = color.RGBA{48, 52, 58, 255}
	widgetBorder  = color.RGBA{68, 72, 78, 255}
	widgetHoverBg = color.RGBA{65, 70, 78, 255}
	checkboxCheck = color.RGBA{76, 175, 120, 255}
	hoverText     = color.RGBA{240, 240, 245, 255}
)

// scaleF converts a logical length to screen pixels.
func scaleF(v int) float32 {
	return float32(float64(v) * UIScale)
}

// Button represents a clickable UI element.
type Button struct {
	X, Y, W, H int
	Label      string
	Primary    bool
	OnClick    func()
	hovered    bool
	pressed    bool
}

// Update tracks hover and press state and fires OnClick. It reports whether
// the click was consumed.
func (b *Button) Update(input *InputHandler) bool {
	b.hovered = input.IsInBounds(b.X, b.Y, b.W, b.H)
	b.pressed = input.IsLeftPressed() && b.hovered

	if input.IsLeftJustPressed() && b.hovered && b.OnClick != nil {
		b.OnClick()
		return true
	}
	return false
}

// Draw renders the button.
func (b *Button) Draw(screen *ebiten.Image) {
	var bgColor, borderC, textC color.RGBA
	if b.Primary {
		bgColor, borderC, textC = accentColor, color.RGBA{56, 155, 100, 255}, textPrimary
		if b.pressed {
			bgColor = accentPressed
		} else if b.hovered {
			bgColor = accentHover
			borderC = color.RGBA{116, 215, 160, 255} // Lighter border on hover
		}
	} else {
		bgColor, borderC, textC = buttonBg, buttonBorder, textSecondary
		if b.pressed {
			bgColor = buttonPressedBg
		} else if b.hovered {
			bgColor = buttonHoverBg
			borderC = accentColor // Green border on hover
		}
	}

	vector.DrawFilledRect(screen, scaleF(b.X), scaleF(b.Y), scaleF(b.W), scaleF(b.H), bgColor, false)
	vector.StrokeRect(screen, scaleF(b.X), scaleF(b.Y), scaleF(b.W), scaleF(b.H), float32(UIScale), borderC, false)
	drawTextCentered(screen, b.Label, b.X+b.W/2, b.Y+b.H/2, textC)
}

// Checkbox is a toggleable checkbox widget.
type Checkbox struct {
	X, Y     int
	Label    string
	Checked  bool
	OnToggle func(checked bool)
	hovered  bool
}

// Update handles checkbox input.
func (cb *Checkbox) Update(input *InputHandler) bool {
	cb.hovered = input.IsInBounds(cb.X, cb.Y, 200, 24)

	if input.IsLeftJustPressed() && cb.hovered {
		cb.Checked = !cb.Checked
		if cb.OnToggle != nil {
			cb.OnToggle(cb.Checked)
		}
		return true
	}
	return false
}

// Draw renders the checkbox.
func (cb *Checkbox) Draw(screen *ebiten.Image) {
	boxX, boxY, boxSize := scaleF(cb.X), scaleF(cb.Y), scaleF(20)

	bgColor := widgetBg
	if cb.hovered {
		bgColor = widgetHoverBg
	}
	vector.DrawFilledRect(screen, boxX, boxY, boxSize, boxSize, bgColor, false)

	// Border - accent on hover
	borderC := widgetBorder
	if cb.hovered {
		borderC = accentColor
	} else if cb.Checked {
		borderC = checkboxCheck
	}
	vector.StrokeRect(screen, boxX, boxY, boxSize, boxSize, scaleF(2), borderC, false)

	if cb.Checked {
		// Draw a simple checkmark using lines
		vector.StrokeLine(screen, boxX+scaleF(4), boxY+scaleF(10), boxX+scaleF(8), boxY+scaleF(14), scaleF(2), checkboxCheck, false)
		vector.StrokeLine(screen, boxX+scaleF(8), boxY+scaleF(14), boxX+scaleF(16), boxY+scaleF(6), scaleF(2), checkboxCheck, false)
	}

	textColor := textSecondary
	if cb.Checked {
		textColor = textPrimary
	} else if cb.hovered {
		textColor = hoverText
	}
	drawTextMiddle(screen, cb.Label, cb.X+30, cb.Y+10, textColor)
}

// ButtonGroup is a horizontal group of toggle buttons.
type ButtonGroup struct {
	X, Y     int
	Options  []string
	Selected int
	ButtonW  int
	ButtonH  int
	OnSelect func(i int)
	hovered  int
	pressed  int
}

// NewButtonGroup creates a new button group.
func NewButtonGroup(x, y int, options []string, selected int, buttonW, buttonH int) *ButtonGroup {
	return &ButtonGroup{
		X:        x,
		Y:        y,
		Options:  options,
		Selected: selected,
		ButtonW:  buttonW,
		ButtonH:  buttonH,
		hovered:  -1,
		pressed:  -1,
	}
}

// Update handles button group input.
func (bg *ButtonGroup) Update(input *InputHandler) bool {
	bg.hovered = -1
	bg.pressed = -1

	for i := range bg.Options {
		btnX := bg.X + i*bg.ButtonW
		if !input.IsInBounds(btnX, bg.Y, bg.ButtonW, bg.ButtonH) {
			continue
		}
		bg.hovered = i
		if input.IsLeftPressed() {
			bg.pressed = i
		}
		if input.IsLeftJustPressed() {
			bg.Selected = i
			if bg.OnSelect != nil {
				bg.OnSelect(i)
			}
			return true
		}
	}
	return false
}

// Draw renders the button group.
func (bg *ButtonGroup) Draw(screen *ebiten.Image) {
	for i, label := range bg.Options {
		btnX := bg.X + i*bg.ButtonW
		isSelected := i == bg.Selected
		isHovered := i == bg.hovered

		bgColor := tabInactiveBg
		if isSelected {
			bgColor = tabActiveBg
		} else if i == bg.pressed {
			bgColor = buttonPressedBg
		} else if isHovered {
			bgColor = tabHoverBg
		}
		vector.DrawFilledRect(screen, scaleF(btnX), scaleF(bg.Y), scaleF(bg.ButtonW), scaleF(bg.ButtonH), bgColor, false)

		// Border - accent on hover, match bg on selected
		bordC := buttonBorder
		if isSelected {
			bordC = tabActiveBg
		} else if isHovered {
			bordC = accentColor
		}
		vector.StrokeRect(screen, scaleF(btnX), scaleF(bg.Y), scaleF(bg.ButtonW), scaleF(bg.ButtonH), float32(UIScale), bordC, false)

		textColor := textSecondary
		if isSelected {
			textColor = textPrimary
		}
		drawTextCentered(screen, label, btnX+bg.ButtonW/2, bg.Y+bg.ButtonH/2, textColor)
	}
}

// AnyHovered returns true if any option is hovered.
func (bg *ButtonGroup) AnyHovered() bool {
	return bg.hovered >= 0
}

// DrawDivider draws a horizontal divider line.
func DrawDivider(screen *ebiten.Image, x, y, w int) {
	vector.DrawFilledRect(screen, scaleF(x), scaleF(y), scaleF(w), float32(UIScale), dividerColor, false)
}

// DrawSectionHeader draws a section header with label.
func DrawSectionHeader(screen *ebiten.Image, label string, x, y int) {
	drawText(screen, label, x, y, textMuted)
}

// Text drawing helpers. Coordinates are logical.

func drawText(screen *ebiten.Image, s string, x, y int, c color.Color) {
	face := GetFaceWithSize(defaultFontSize * UIScale)
	if face == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(scaleF(x)), float64(scaleF(y)))
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, face, op)
}

// drawTextMiddle draws s starting at x, vertically centred on y.
func drawTextMiddle(screen *ebiten.Image, s string, x, y int, c color.Color) {
	face := GetFaceWithSize(defaultFontSize * UIScale)
	if face == nil {
		return
	}
	_, h := MeasureText(s, face)
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(scaleF(x)), float64(scaleF(y))-h/2)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, face, op)
}

func drawTextCentered(screen *ebiten.Image, s string, centerX, centerY int, c color.Color) {
	face := GetFaceWithSize(defaultFontSize * UIScale)
	if face == nil {
		return
	}
	w, h := MeasureText(s, face)
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(scaleF(centerX))-w/2, float64(scaleF(centerY))-h/2)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, face, op)
}
