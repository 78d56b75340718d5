package ui

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/hailam/boardtouch/internal/board"
	"github.com/hailam/boardtouch/internal/storage"
)

// Panel dimensions
const (
	PanelPadding    = 20
	SectionSpacing  = 24
	ButtonHeight    = 40
	TabHeight       = 30
	CollapsedWidth  = 20
	CollapseButtonW = 16
	CollapseButtonH = 48
	SectionLabelH   = 20
	LineHeight      = 22
)

// Panel colors
var (
	panelBg         = color.RGBA{38, 40, 45, 255}    // Dark background
	sectionBg       = color.RGBA{48, 52, 58, 255}    // Slightly lighter section
	tabActiveBg     = color.RGBA{76, 132, 96, 255}   // Green for active tab
	tabInactiveBg   = color.RGBA{50, 54, 60, 255}    // Darker gray for inactive
	tabHoverBg      = color.RGBA{65, 70, 78, 255}    // Visible hover state
	buttonBg        = color.RGBA{50, 54, 60, 255}    // Button background (darker)
	buttonHoverBg   = color.RGBA{65, 70, 78, 255}    // Button hover (brighter)
	buttonPressedBg = color.RGBA{40, 44, 50, 255}    // Button pressed (darker)
	buttonBorder    = color.RGBA{70, 75, 82, 255}    // Subtle button border
	accentColor     = color.RGBA{76, 175, 120, 255}  // Green accent
	accentHover     = color.RGBA{96, 195, 140, 255}  // Lighter green on hover
	accentPressed   = color.RGBA{56, 155, 100, 255}  // Darker green on press
	textPrimary     = color.RGBA{240, 240, 245, 255} // Primary text
	textSecondary   = color.RGBA{160, 165, 175, 255} // Secondary text
	textMuted       = color.RGBA{120, 125, 135, 255} // Muted text
	dividerColor    = color.RGBA{60, 65, 72, 255}    // Divider line
	statusActive    = color.RGBA{100, 180, 255, 255} // Blue while animating
)

// Panel is the side panel: actions, material choice and board status.
type Panel struct {
	game      *Game
	collapsed bool

	collapseBtn *Button
	resetBtn    *Button
	flipBtn     *Button
	soundBox    *Checkbox
	materials   *ButtonGroup
}

// NewPanel creates a new panel for the given game.
func NewPanel(g *Game) *Panel {
	p := &Panel{game: g}
	p.createButtons()
	return p
}

// createButtons lays out the panel widgets for the current collapse state.
func (p *Panel) createButtons() {
	// Collapse/expand button - integrated tab at panel edge
	tabY := (ScreenHeight - CollapseButtonH) / 2
	collapseX := BoardSize
	if p.collapsed {
		collapseX = BoardSize + 2
	}
	p.collapseBtn = &Button{
		X: collapseX, Y: tabY,
		W: CollapseButtonW, H: CollapseButtonH,
		OnClick: p.toggleCollapse,
	}

	contentX := BoardSize + PanelPadding
	contentW := PanelWidth - PanelPadding*2

	resetY := PanelPadding + 28
	p.resetBtn = &Button{
		X: contentX, Y: resetY,
		W: contentW, H: ButtonHeight,
		Label:   "Reset Position",
		Primary: true,
		OnClick: p.game.ResetAction,
	}

	flipY := resetY + ButtonHeight + 8
	p.flipBtn = &Button{
		X: contentX, Y: flipY,
		W: contentW, H: ButtonHeight - 6,
		Label:   "Flip Board",
		OnClick: p.game.FlipAction,
	}

	soundY := flipY + ButtonHeight - 6 + 12
	p.soundBox = &Checkbox{
		X: contentX, Y: soundY,
		Label:    "Sound",
		Checked:  p.game.SoundEnabled(),
		OnToggle: p.game.SetSoundEnabled,
	}

	labels := make([]string, storage.MaterialSetCount)
	for i := range labels {
		labels[i] = storage.MaterialSet(i).String()
	}
	materialsY := soundY + 24 + SectionSpacing + SectionLabelH
	p.materials = NewButtonGroup(contentX, materialsY, labels, int(p.game.MaterialSet()),
		contentW/storage.MaterialSetCount, TabHeight)
	p.materials.OnSelect = func(i int) { p.game.SetMaterialSet(storage.MaterialSet(i)) }
}

// HandleInput processes input for the panel. Returns true if input was handled.
func (p *Panel) HandleInput(input *InputHandler) bool {
	if p.collapseBtn.Update(input) {
		return true
	}
	if p.collapsed {
		return false
	}

	p.soundBox.Checked = p.game.SoundEnabled()
	p.materials.Selected = int(p.game.MaterialSet())

	handled := p.resetBtn.Update(input)
	handled = p.flipBtn.Update(input) || handled
	handled = p.soundBox.Update(input) || handled
	handled = p.materials.Update(input) || handled
	return handled
}

// AnyButtonHovered returns true if any button in the panel is hovered.
func (p *Panel) AnyButtonHovered() bool {
	if p.collapseBtn.hovered {
		return true
	}
	if p.collapsed {
		return false
	}
	return p.resetBtn.hovered || p.flipBtn.hovered || p.soundBox.hovered || p.materials.AnyHovered()
}

// Contains reports whether a logical point lies on the panel.
func (p *Panel) Contains(x, y int) bool {
	if p.collapsed {
		return x >= BoardSize && x < BoardSize+CollapsedWidth
	}
	return x >= BoardSize
}

// Draw renders the panel.
func (p *Panel) Draw(screen *ebiten.Image) {
	panelX := scaleF(BoardSize)

	if p.collapsed {
		// Draw collapsed state - just a thin bar with expand button
		vector.DrawFilledRect(screen, panelX, 0, scaleF(CollapsedWidth), scaleF(ScreenHeight), panelBg, false)
		p.drawCollapseButton(screen, true)
		return
	}

	vector.DrawFilledRect(screen, panelX, 0, scaleF(PanelWidth), scaleF(ScreenHeight), panelBg, false)
	p.drawCollapseButton(screen, false)

	p.drawTitle(screen)
	p.resetBtn.Draw(screen)
	p.flipBtn.Draw(screen)
	p.soundBox.Draw(screen)

	x := BoardSize + PanelPadding
	DrawSectionHeader(screen, "Pieces", x, p.materials.Y-SectionLabelH)
	p.materials.Draw(screen)

	statusY := p.materials.Y + p.materials.ButtonH + SectionSpacing
	DrawSectionHeader(screen, "Board", x, statusY)
	p.drawBoardStatus(screen, statusY+SectionLabelH+4)

	p.drawPositionBar(screen)
}

func (p *Panel) drawTitle(screen *ebiten.Image) {
	face := GetBoldFace()
	if face == nil {
		return
	}
	title := &text.GoTextFace{Source: face.Source, Size: titleFontSize * UIScale}
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(scaleF(BoardSize+PanelPadding)), float64(scaleF(PanelPadding)))
	op.ColorScale.ScaleWithColor(textPrimary)
	text.Draw(screen, "Board Touch", title, op)
}

func (p *Panel) drawCollapseButton(screen *ebiten.Image, expand bool) {
	btn := p.collapseBtn

	// Use panel background color to blend in as integrated tab
	bgColor := panelBg
	if btn.hovered {
		bgColor = sectionBg
	}
	vector.DrawFilledRect(screen, scaleF(btn.X), scaleF(btn.Y), scaleF(btn.W), scaleF(btn.H), bgColor, false)

	arrow := "‹"
	if expand {
		arrow = "›"
	}
	textC := textMuted
	if btn.hovered {
		textC = textPrimary
	}
	drawTextCentered(screen, arrow, btn.X+btn.W/2, btn.Y+btn.H/2, textC)
}

// drawBoardStatus lists side to move, castling rights, selection, piece
// count and the last transition.
func (p *Panel) drawBoardStatus(screen *ebiten.Image, y int) {
	x := BoardSize + PanelPadding
	b := p.game.session.Board()

	row := func(label, value string, c color.Color) {
		drawText(screen, label, x, y, textSecondary)
		drawText(screen, value, x+100, y, c)
		y += LineHeight
	}

	row("To move", b.Turn().String(), textPrimary)
	row("Castling", castlingSummary(b), textPrimary)

	selected := "none"
	if sq := p.game.session.Selected(); sq != board.NoSquare {
		rec := b.Get(sq)
		selected = fmt.Sprintf("%v %v", sq, rec.Kind)
	}
	row("Selected", selected, textPrimary)
	row("Pieces", fmt.Sprintf("%d", b.Occupied()), textPrimary)

	if n := p.game.session.Animations(); n > 0 {
		row("Animating", fmt.Sprintf("%d", n), statusActive)
	} else {
		row("Animating", "-", textMuted)
	}

	if last := p.game.feedback.LastAction(); last != "" {
		y += 6
		drawText(screen, last, x, y, textSecondary)
	}
}

// castlingSummary renders the remaining castling rights as "KQkq".
func castlingSummary(b *board.Board) string {
	fields := strings.Fields(b.FEN())
	if len(fields) < 3 {
		return "-"
	}
	return fields[2]
}

// drawPositionBar shows the current arrangement as a position string,
// the placement split over two lines so it fits the panel.
func (p *Panel) drawPositionBar(screen *ebiten.Image) {
	statusY := ScreenHeight - 3*LineHeight - 16
	x := BoardSize + PanelPadding

	DrawDivider(screen, x, statusY-10, PanelWidth-PanelPadding*2)

	fen := p.game.session.Board().FEN()
	placement, rest, _ := strings.Cut(fen, " ")
	ranks := strings.Split(placement, "/")
	if len(ranks) == 8 {
		drawText(screen, strings.Join(ranks[:4], "/")+"/", x, statusY, textPrimary)
		drawText(screen, strings.Join(ranks[4:], "/"), x, statusY+LineHeight, textPrimary)
	}
	drawText(screen, rest, x, statusY+2*LineHeight, textMuted)
}

// Collapsed returns whether the panel is collapsed.
func (p *Panel) Collapsed() bool {
	return p.collapsed
}

// toggleCollapse toggles the panel collapsed state and resizes the window.
func (p *Panel) toggleCollapse() {
	p.collapsed = !p.collapsed
	p.createButtons()

	// Resize window to match new layout
	if p.collapsed {
		ebiten.SetWindowSize(BoardSize+CollapsedWidth, ScreenHeight)
	} else {
		ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
	}
}
