package board

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// DefaultLength is the side length of a standard board.
const DefaultLength = 8

// DefaultPlayers is the number of players turns cycle through by default.
const DefaultPlayers = 2

var (
	ErrBoardSize   = errors.New("unsupported board size")
	ErrPlayers     = errors.New("unsupported number of players")
	ErrNoPiece     = errors.New("no piece on origin square")
	ErrWrongTurn   = errors.New("not the mover's turn")
	ErrIllegalMove = errors.New("illegal move")
)

// Board owns an N×N grid of squares plus turn, check and capture state.
// A Board is not safe for concurrent use: legality probes mutate it
// temporarily and restore it before returning.
type Board struct {
	length  int
	squares [][]Square // [x][y]

	turn    int
	players int

	kingsInCheck     ColorSet
	kingsInCheckmate ColorSet
	finished         bool

	captured [MaxPlayers][]string // names of pieces captured by each color
	score    [MaxPlayers]int

	strictCastling bool

	usedFiles map[int]struct{} // shuffle mode bookkeeping
	rng       *rand.Rand
}

// New creates an empty 8×8 board for two players.
func New() *Board {
	b, _ := NewSized(DefaultLength)
	return b
}

// NewSized creates an empty board with the given side length. The starting
// layouts still assume a length of at least 8.
func NewSized(length int) (*Board, error) {
	if length < 1 || length > 26 {
		return nil, fmt.Errorf("%w: %d", ErrBoardSize, length)
	}
	b := &Board{
		length:    length,
		players:   DefaultPlayers,
		usedFiles: make(map[int]struct{}, 16),
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	b.Reset()
	return b, nil
}

// NewGame returns a standard 8×8 board with pieces in their starting squares.
func NewGame() *Board {
	b := New()
	_ = b.AddPieces()
	return b
}

// Reset recreates every square empty and clears turn, scores, captures and
// check state.
func (b *Board) Reset() {
	b.squares = make([][]Square, b.length)
	for x := range b.squares {
		b.squares[x] = make([]Square, b.length)
		for y := range b.squares[x] {
			b.squares[x][y] = newSquare(Coord{x, y})
		}
	}
	for i := range b.captured {
		b.captured[i] = make([]string, 0, 16)
		b.score[i] = 0
	}
	b.turn = int(White)
	b.kingsInCheck = 0
	b.kingsInCheckmate = 0
	b.finished = false
	clear(b.usedFiles)
}

// Length returns the side length of the board.
func (b *Board) Length() int {
	return b.length
}

// Players returns how many players the turn cycles through.
func (b *Board) Players() int {
	return b.players
}

// SetPlayers changes how many players the turn cycles through. Starting
// layouts only ever populate White and Black.
func (b *Board) SetPlayers(n int) error {
	if n < 2 || n > MaxPlayers {
		return fmt.Errorf("%w: %d", ErrPlayers, n)
	}
	b.players = n
	if b.turn >= n {
		b.turn = int(White)
	}
	return nil
}

// SetStrictCastling makes castling also require an unmoved rook and an
// empty path between king and rook. It is off by default: only the rook's
// type and color are checked, and only the king's two squares must be free.
func (b *Board) SetStrictCastling(on bool) {
	b.strictCastling = on
}

// SetRand replaces the random source used by shuffle mode.
func (b *Board) SetRand(r *rand.Rand) {
	b.rng = r
}

// Turn returns the color to move.
func (b *Board) Turn() Color {
	return Color(b.turn)
}

// SetTurn sets the color to move. It is a setup primitive.
func (b *Board) SetTurn(c Color) {
	if int(c) < b.players {
		b.turn = int(c)
	}
}

func (b *Board) advanceTurn() {
	b.turn++
	if b.turn == b.players {
		b.turn = int(White)
	}
}

// InBounds reports whether c lies on the board.
func (b *Board) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < b.length && c.Y >= 0 && c.Y < b.length
}

// clamp forces c into [0, length-1] on both axes.
func (b *Board) clamp(c Coord) Coord {
	return Coord{Clamp(c.X, 0, b.length-1), Clamp(c.Y, 0, b.length-1)}
}

// Square returns the square at c. Out-of-range coordinates are clamped onto
// the board rather than rejected.
func (b *Board) Square(c Coord) *Square {
	c = b.clamp(c)
	return &b.squares[c.X][c.Y]
}

// sq is the unclamped accessor; callers guarantee c is in bounds.
func (b *Board) sq(c Coord) *Square {
	return &b.squares[c.X][c.Y]
}

// PieceAt returns the occupant of the (clamped) square at c.
func (b *Board) PieceAt(c Coord) Piece {
	return b.Square(c).piece
}

// Place puts p on the square at c and returns the previous occupant. It is a
// setup primitive: derived attack and check state is not refreshed until
// Refresh is called.
func (b *Board) Place(c Coord, p Piece) Piece {
	return b.Square(c).put(p)
}

// Remove empties the square at c and returns what was there.
func (b *Board) Remove(c Coord) Piece {
	return b.Square(c).take()
}

// UnmovedSquares lists the occupied squares whose piece has never moved. The
// result is never nil, so an empty board still round-trips through
// SetUnmoved.
func (b *Board) UnmovedSquares() []Coord {
	out := []Coord{}
	for x := range b.squares {
		for y := range b.squares[x] {
			if p := b.squares[x][y].piece; !p.IsNone() && !p.moved {
				out = append(out, Coord{x, y})
			}
		}
	}
	return out
}

// SetUnmoved marks the pieces on cs unmoved and every other piece moved,
// then refreshes the derived state. FEN only carries castling rights, so
// this restores flags it cannot express.
func (b *Board) SetUnmoved(cs []Coord) {
	unmoved := make(map[Coord]bool, len(cs))
	for _, c := range cs {
		unmoved[c] = true
	}
	for x := range b.squares {
		for y := range b.squares[x] {
			sq := &b.squares[x][y]
			if sq.piece.IsNone() {
				continue
			}
			sq.piece.moved = !unmoved[Coord{x, y}]
		}
	}
	b.Refresh()
}

// Refresh recomputes the attack map and the check and checkmate sets.
func (b *Board) Refresh() {
	b.RecomputeAttacks()
	b.updateCheck()
	b.updateCheckmate()
}

// KingsInCheck returns the colors whose king is in check.
func (b *Board) KingsInCheck() []Color {
	return b.kingsInCheck.Colors()
}

// KingsInCheckmate returns the colors whose king is checkmated.
func (b *Board) KingsInCheckmate() []Color {
	return b.kingsInCheckmate.Colors()
}

// InCheck reports whether c is in the current check set without recomputing it.
func (b *Board) InCheck(c Color) bool {
	return b.kingsInCheck.Has(c)
}

// InCheckmate reports whether c is in the current checkmate set.
func (b *Board) InCheckmate(c Color) bool {
	return b.kingsInCheckmate.Has(c)
}

// Finished reports whether a checkmate has been resolved by EndGame.
// The board does not refuse further moves by itself.
func (b *Board) Finished() bool {
	return b.finished
}

// Score returns the points awarded to c.
func (b *Board) Score(c Color) int {
	if c >= NoColor {
		return 0
	}
	return b.score[c]
}

// Captured returns the names of the pieces captured by c.
func (b *Board) Captured(c Color) []string {
	if c >= NoColor {
		c = NoColor - 1
	}
	out := make([]string, len(b.captured[c]))
	copy(out, b.captured[c])
	return out
}

// EndGame awards a point to the side opposing each checkmated color and
// marks the board finished. It does nothing when no king is checkmated.
func (b *Board) EndGame() {
	if b.kingsInCheckmate.Empty() {
		return
	}
	for _, c := range b.kingsInCheckmate.Colors() {
		if winner := c.Other(); winner != NoColor {
			b.score[winner]++
		}
	}
	b.finished = true
}

// ConvertPos maps a window pixel to a board coordinate for a board drawn
// across width×height pixels with rank 0 at the bottom. With useClamp the
// result is forced onto the board.
func (b *Board) ConvertPos(x, y, width, height int, useClamp bool) Coord {
	squareW := max(width/b.length, 1)
	squareH := max(height/b.length, 1)

	col := floorDiv(x, squareW)
	row := floorDiv(y, squareH)
	if useClamp {
		col = Clamp(col, 0, b.length-1)
		row = Clamp(row, 0, b.length-1)
	}
	return Coord{col, b.length - 1 - row}
}

func floorDiv(a, d int) int {
	q := a / d
	if a%d != 0 && a < 0 {
		q--
	}
	return q
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	cp := *b
	cp.squares = make([][]Square, b.length)
	for x := range b.squares {
		cp.squares[x] = make([]Square, b.length)
		copy(cp.squares[x], b.squares[x])
	}
	for i := range b.captured {
		cp.captured[i] = append(make([]string, 0, len(b.captured[i])), b.captured[i]...)
	}
	cp.usedFiles = make(map[int]struct{}, len(b.usedFiles))
	for f := range b.usedFiles {
		cp.usedFiles[f] = struct{}{}
	}
	return &cp
}

// String returns a visual representation of the board.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	for y := b.length - 1; y >= 0; y-- {
		fmt.Fprintf(&sb, "%2d  ", y+1)
		for x := 0; x < b.length; x++ {
			p := b.squares[x][y].piece
			if p.IsNone() {
				sb.WriteString(". ")
			} else {
				sb.WriteString(p.String() + " ")
			}
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n    ")
	for x := 0; x < b.length; x++ {
		fmt.Fprintf(&sb, "%c ", 'a'+x)
	}
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "Side to move: %s\n", b.Turn())
	if !b.kingsInCheck.Empty() {
		fmt.Fprintf(&sb, "Check: %v\n", b.KingsInCheck())
	}
	if !b.kingsInCheckmate.Empty() {
		fmt.Fprintf(&sb, "Checkmate: %v\n", b.KingsInCheckmate())
	}
	return sb.String()
}
