package ui

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/hailam/gridchess/internal/board"
)

// Panel dimensions
const (
	PanelPadding   = 20
	SectionSpacing = 28
	ButtonHeight   = 36
	RowHeight      = 20
)

// Panel colors
var (
	panelBg        = color.RGBA{38, 40, 45, 255}
	buttonBg       = color.RGBA{50, 54, 60, 255}
	buttonHoverBg  = color.RGBA{65, 70, 78, 255}
	buttonBorder   = color.RGBA{70, 75, 82, 255}
	accentColor    = color.RGBA{76, 175, 120, 255}
	textPrimary    = color.RGBA{240, 240, 245, 255}
	textSecondary  = color.RGBA{160, 165, 175, 255}
	textMuted      = color.RGBA{120, 125, 135, 255}
	dividerColor   = color.RGBA{60, 65, 72, 255}
	moveRowAlt     = color.RGBA{44, 48, 54, 255}
	statusCheck    = color.RGBA{255, 120, 100, 255}
	statusGameOver = color.RGBA{255, 200, 80, 255}
)

// Button represents a clickable panel element.
type Button struct {
	X, Y, W, H int
	Label      string
	OnClick    func()
	hovered    bool
	pressed    bool
}

func (b *Button) contains(mx, my int) bool {
	return mx >= b.X && mx < b.X+b.W && my >= b.Y && my < b.Y+b.H
}

// Panel is the side panel with game controls, scores and move history.
type Panel struct {
	game    *Game
	buttons []*Button

	scrollY int
}

// NewPanel creates the panel for g.
func NewPanel(g *Game) *Panel {
	p := &Panel{game: g}

	x := BoardSize + PanelPadding
	w := (PanelWidth - PanelPadding*2 - 16) / 3
	y := PanelPadding
	p.buttons = []*Button{
		{X: x, Y: y, W: w, H: ButtonHeight, Label: "New", OnClick: g.NewGameAction},
		{X: x + w + 8, Y: y, W: w, H: ButtonHeight, Label: "Shuffle", OnClick: g.ShuffleGameAction},
		{X: x + 2*(w+8), Y: y, W: w, H: ButtonHeight, Label: "Flip", OnClick: g.FlipAction},
	}
	return p
}

// HandleInput processes panel input. It reports whether the input was used.
func (p *Panel) HandleInput(input *InputHandler) bool {
	mx, my := input.MousePosition()

	_, wheelY := ebiten.Wheel()
	if wheelY != 0 && mx >= BoardSize {
		p.scrollY = max(0, p.scrollY-int(wheelY))
	}

	for _, btn := range p.buttons {
		btn.hovered = btn.contains(mx, my)
		btn.pressed = input.IsLeftPressed() && btn.hovered
	}
	if !input.IsLeftJustPressed() {
		return false
	}
	for _, btn := range p.buttons {
		if btn.hovered {
			btn.OnClick()
			return true
		}
	}
	return false
}

// AnyButtonHovered reports whether the pointer is over a button.
func (p *Panel) AnyButtonHovered() bool {
	for _, btn := range p.buttons {
		if btn.hovered {
			return true
		}
	}
	return false
}

// Draw renders the panel.
func (p *Panel) Draw(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, sc(BoardSize), 0, sc(PanelWidth), sc(ScreenHeight), panelBg, false)

	for _, btn := range p.buttons {
		p.drawButton(screen, btn)
	}

	x := BoardSize + PanelPadding
	y := PanelPadding + ButtonHeight + SectionSpacing

	g, err := p.game.reg.Current()
	if err != nil {
		drawText(screen, "No game", face(true, titleFontSize), x, y, textPrimary)
		return
	}

	// Status
	statusText, statusColor := fmt.Sprintf("%s to move", g.Board.Turn()), color.Color(textPrimary)
	switch {
	case g.Board.Finished():
		statusText, statusColor = fmt.Sprintf("%s wins", g.Winner()), statusGameOver
		if g.Winner() == board.NoColor {
			statusText = "Game over"
		}
	case g.Board.InCheck(g.Board.Turn()):
		statusText, statusColor = fmt.Sprintf("%s to move (check)", g.Board.Turn()), statusCheck
	}
	drawText(screen, statusText, face(true, titleFontSize), x, y, statusColor)
	y += SectionSpacing

	drawText(screen, fmt.Sprintf("Game %d of %d  %s", p.game.reg.CurrentIndex()+1, p.game.reg.Count(), g.Mode),
		face(false, defaultFontSize), x, y, textSecondary)
	y += SectionSpacing

	// Scores and captures
	for _, c := range []board.Color{board.White, board.Black} {
		taken := strings.Join(g.Board.Captured(c), " ")
		drawText(screen, fmt.Sprintf("%s  %d", c, g.Board.Score(c)), face(false, defaultFontSize), x, y, textPrimary)
		drawText(screen, taken, face(false, labelFontSize), x+110, y+2, textMuted)
		y += RowHeight
	}
	y += 8
	vector.DrawFilledRect(screen, sc(x), sc(y), sc(PanelWidth-PanelPadding*2), sc(1), dividerColor, false)
	y += 12

	p.drawHistory(screen, x, y)
}

func (p *Panel) drawHistory(screen *ebiten.Image, x, startY int) {
	lines := p.game.reg.History()
	if len(lines) == 0 {
		drawText(screen, "No moves yet", face(false, defaultFontSize), x, startY, textMuted)
		return
	}

	visible := (ScreenHeight - startY - PanelPadding) / RowHeight
	p.scrollY = min(p.scrollY, max(0, len(lines)-visible))
	end := len(lines) - p.scrollY
	start := max(0, end-visible)

	f := face(false, defaultFontSize)
	y := startY
	for i := start; i < end; i++ {
		if i%2 == 1 {
			vector.DrawFilledRect(screen, sc(x-4), sc(y-2), sc(PanelWidth-PanelPadding*2+8), sc(RowHeight), moveRowAlt, false)
		}
		drawText(screen, fmt.Sprintf("%3d. %s", i+1, lines[i]), f, x, y, textPrimary)
		y += RowHeight
	}
}

func (p *Panel) drawButton(screen *ebiten.Image, btn *Button) {
	bg := buttonBg
	switch {
	case btn.pressed:
		bg = accentColor
	case btn.hovered:
		bg = buttonHoverBg
	}
	vector.DrawFilledRect(screen, sc(btn.X), sc(btn.Y), sc(btn.W), sc(btn.H), bg, false)
	vector.StrokeRect(screen, sc(btn.X), sc(btn.Y), sc(btn.W), sc(btn.H), float32(UIScale), buttonBorder, false)
	drawTextCentered(screen, btn.Label, face(false, defaultFontSize), btn.X+btn.W/2, btn.Y+btn.H/2, textPrimary)
}

// sc scales a logical length to device pixels.
func sc(v int) float32 {
	return float32(float64(v) * UIScale)
}
