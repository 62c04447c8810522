package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/hailam/gridchess/internal/board"
)

// Theme defines the color scheme for the board.
type Theme struct {
	LightSquare    color.RGBA
	DarkSquare     color.RGBA
	SelectedSquare color.RGBA
	LegalMoveColor color.RGBA
	LastMoveColor  color.RGBA
	CheckColor     color.RGBA
	MateColor      color.RGBA
	Background     color.RGBA
	LabelColor     color.RGBA
}

// DefaultTheme returns the default color theme.
func DefaultTheme() *Theme {
	return &Theme{
		LightSquare:    color.RGBA{240, 217, 181, 255}, // Tan
		DarkSquare:     color.RGBA{181, 136, 99, 255},  // Brown
		SelectedSquare: color.RGBA{247, 247, 105, 180},
		LegalMoveColor: color.RGBA{130, 151, 105, 200},
		LastMoveColor:  color.RGBA{180, 190, 100, 90},
		CheckColor:     color.RGBA{255, 100, 100, 180},
		MateColor:      color.RGBA{200, 30, 30, 220},
		Background:     color.RGBA{40, 44, 52, 255},
		LabelColor:     color.RGBA{90, 70, 50, 255},
	}
}

// Renderer draws a board of any side length into a fixed pixel square.
type Renderer struct {
	sprites   *SpriteManager
	theme     *Theme
	boardSize int // logical pixels
	length    int // squares per side
	flipped   bool
	scale     float64
}

// NewRenderer creates a renderer for a boardSize×boardSize pixel area.
func NewRenderer(boardSize int) *Renderer {
	return &Renderer{
		theme:     DefaultTheme(),
		boardSize: boardSize,
		length:    board.DefaultLength,
		scale:     1.0,
	}
}

// SetScale sets the HiDPI scale factor for rendering.
func (r *Renderer) SetScale(scale float64) {
	r.scale = scale
}

// SetFlipped draws rank 0 at the top when on.
func (r *Renderer) SetFlipped(on bool) {
	r.flipped = on
}

// Flipped reports whether the board is drawn from the second player's side.
func (r *Renderer) Flipped() bool {
	return r.flipped
}

// Theme returns the current theme.
func (r *Renderer) Theme() *Theme {
	return r.theme
}

// SquareSize returns the logical size of one square for the current board.
func (r *Renderer) SquareSize() int {
	return r.boardSize / r.length
}

// prepare sizes the renderer for b, rebuilding sprites when the device
// square size changes.
func (r *Renderer) prepare(b *board.Board) {
	r.length = b.Length()
	px := int(float64(r.SquareSize()) * r.scale)
	if r.sprites == nil || r.sprites.Size() != px {
		r.sprites = NewSpriteManager(px)
	}
}

func (r *Renderer) s(v int) float32 {
	return float32(float64(v) * r.scale)
}

// SquareToScreen returns the logical top-left corner of c.
func (r *Renderer) SquareToScreen(c board.Coord) (int, int) {
	sq := r.SquareSize()
	col, row := c.X, r.length-1-c.Y
	if r.flipped {
		col, row = r.length-1-c.X, c.Y
	}
	return col * sq, row * sq
}

// DrawBoard draws the squares and the file and rank labels.
func (r *Renderer) DrawBoard(screen *ebiten.Image, b *board.Board) {
	r.prepare(b)
	sq := r.SquareSize()
	for y := 0; y < r.length; y++ {
		for x := 0; x < r.length; x++ {
			c := board.C(x, y)
			fill := r.theme.LightSquare
			if (x+y)%2 == 0 {
				fill = r.theme.DarkSquare
			}
			px, py := r.SquareToScreen(c)
			vector.DrawFilledRect(screen, r.s(px), r.s(py), r.s(sq), r.s(sq), fill, false)
		}
	}

	f := face(false, labelFontSize)
	for i := 0; i < r.length; i++ {
		fx, _ := r.SquareToScreen(board.C(i, 0))
		_, ry := r.SquareToScreen(board.C(0, i))
		bottom := r.boardSize - 14
		drawText(screen, string(rune('a'+i)), f, fx+sq-10, bottom, r.theme.LabelColor)
		drawText(screen, board.C(0, i).String()[1:], f, 3, ry+2, r.theme.LabelColor)
	}
}

// DrawHighlights marks the last move, the selected square and its targets.
func (r *Renderer) DrawHighlights(screen *ebiten.Image, selected *board.Coord, targets []board.Coord, last *board.Move) {
	if last != nil {
		r.highlightSquare(screen, last.From, r.theme.LastMoveColor)
		r.highlightSquare(screen, last.To, r.theme.LastMoveColor)
	}
	if selected != nil {
		r.highlightSquare(screen, *selected, r.theme.SelectedSquare)
	}
	for _, t := range targets {
		r.drawLegalMoveIndicator(screen, t)
	}
}

// DrawChecks highlights every king in check, and mated kings more strongly.
func (r *Renderer) DrawChecks(screen *ebiten.Image, b *board.Board) {
	for _, c := range b.KingsInCheck() {
		fill := r.theme.CheckColor
		if b.InCheckmate(c) {
			fill = r.theme.MateColor
		}
		for _, k := range kingSquares(b, c) {
			r.highlightSquare(screen, k, fill)
		}
	}
}

func kingSquares(b *board.Board, c board.Color) []board.Coord {
	var out []board.Coord
	n := b.Length()
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			if b.PieceAt(board.C(x, y)).Is(board.King, c) {
				out = append(out, board.C(x, y))
			}
		}
	}
	return out
}

func (r *Renderer) highlightSquare(screen *ebiten.Image, c board.Coord, fill color.RGBA) {
	x, y := r.SquareToScreen(c)
	sq := r.SquareSize()
	vector.DrawFilledRect(screen, r.s(x), r.s(y), r.s(sq), r.s(sq), fill, false)
}

func (r *Renderer) drawLegalMoveIndicator(screen *ebiten.Image, c board.Coord) {
	x, y := r.SquareToScreen(c)
	sq := r.SquareSize()
	cx := r.s(x) + r.s(sq)/2
	cy := r.s(y) + r.s(sq)/2
	vector.DrawFilledCircle(screen, cx, cy, r.s(sq)*0.15, r.theme.LegalMoveColor, false)
}

// DrawPieces draws every piece on b.
func (r *Renderer) DrawPieces(screen *ebiten.Image, b *board.Board) {
	n := b.Length()
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			c := board.C(x, y)
			p := b.PieceAt(c)
			if p.IsNone() {
				continue
			}
			px, py := r.SquareToScreen(c)
			r.sprites.DrawPieceAt(screen, p, float64(r.s(px)), float64(r.s(py)))
		}
	}
}
