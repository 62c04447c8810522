package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hailam/gridchess/internal/board"
)

var (
	lightSquare  = lipgloss.NewStyle().Background(lipgloss.Color("180")).Foreground(lipgloss.Color("16"))
	darkSquare   = lipgloss.NewStyle().Background(lipgloss.Color("94")).Foreground(lipgloss.Color("16"))
	cursorSquare = lipgloss.NewStyle().Background(lipgloss.Color("33")).Foreground(lipgloss.Color("231"))
	selectSquare = lipgloss.NewStyle().Background(lipgloss.Color("70")).Foreground(lipgloss.Color("16"))
	targetSquare = lipgloss.NewStyle().Background(lipgloss.Color("150")).Foreground(lipgloss.Color("16"))
	checkSquare  = lipgloss.NewStyle().Background(lipgloss.Color("160")).Foreground(lipgloss.Color("231"))
	whitePiece   = lipgloss.NewStyle().Bold(true)
)

// boardView carries what the board renderer highlights.
type boardView struct {
	cursor   board.Coord
	selected *board.Coord
	targets  []board.Coord
	flipped  bool
}

// RenderBoard renders the position in a fixed-width grid with rank labels on
// the left and file letters underneath. White's pieces are upper-case.
func RenderBoard(b *board.Board, v boardView) string {
	n := b.Length()
	targets := make(map[board.Coord]bool, len(v.targets))
	for _, t := range v.targets {
		targets[t] = true
	}

	var sb strings.Builder
	for row := 0; row < n; row++ {
		y := n - 1 - row
		if v.flipped {
			y = row
		}
		sb.WriteString(lipgloss.NewStyle().Width(3).Render(board.C(0, y).String()[1:]))

		for col := 0; col < n; col++ {
			x := col
			if v.flipped {
				x = n - 1 - col
			}
			c := board.C(x, y)
			sb.WriteString(cell(b, c, v, targets[c]))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("   ")
	for col := 0; col < n; col++ {
		x := col
		if v.flipped {
			x = n - 1 - col
		}
		sb.WriteString(" " + string(rune('a'+x)) + " ")
	}
	sb.WriteString("\n")
	return sb.String()
}

// cell returns a fixed-width 3-char cell.
func cell(b *board.Board, c board.Coord, v boardView, isTarget bool) string {
	p := b.PieceAt(c)

	text := " . "
	if !p.IsNone() {
		text = " " + p.String() + " "
	}

	style := lightSquare
	if (c.X+c.Y)%2 == 0 {
		style = darkSquare
	}
	switch {
	case c == v.cursor:
		style = cursorSquare
	case v.selected != nil && c == *v.selected:
		style = selectSquare
	case p.Type == board.King && !p.IsNone() && b.InCheck(p.Color):
		style = checkSquare
	case isTarget:
		style = targetSquare
	}
	if p.Color == board.White {
		style = style.Inherit(whitePiece)
	}
	return style.Render(text)
}
