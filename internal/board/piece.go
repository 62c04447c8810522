package board

import (
	"strings"
	"sync"
)

// Color represents the color of a piece or player.
// Only White and Black are populated by the starting layouts; the remaining
// colors exist so turn cycling can address more than two players.
type Color uint8

const (
	White Color = iota
	Black
	Grey
	Red
	Green
	Blue
	NoColor
)

// MaxPlayers is the number of addressable colors.
const MaxPlayers = int(NoColor)

// Other returns the opposing color in a two-player game.
func (c Color) Other() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	}
	return NoColor
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	case Grey:
		return "Grey"
	case Red:
		return "Red"
	case Green:
		return "Green"
	case Blue:
		return "Blue"
	default:
		return "NoColor"
	}
}

// Letter returns the short color tag used in history lines ("w", "b", ...).
func (c Color) Letter() string {
	if c >= NoColor {
		return "-"
	}
	return strings.ToLower(c.String()[:1])
}

// forward is the pawn direction along the rank axis.
func (c Color) forward() int {
	if c == White {
		return 1
	}
	return -1
}

// ColorSet is a set of colors, one bit per color.
type ColorSet uint8

// Add inserts c into the set.
func (s *ColorSet) Add(c Color) {
	if c < NoColor {
		*s |= 1 << c
	}
}

// Has reports whether c is in the set.
func (s ColorSet) Has(c Color) bool {
	return c < NoColor && s&(1<<c) != 0
}

// Empty reports whether the set has no members.
func (s ColorSet) Empty() bool {
	return s == 0
}

// HasOtherThan reports whether the set contains any color except c.
func (s ColorSet) HasOtherThan(c Color) bool {
	if c >= NoColor {
		return s != 0
	}
	return s&^(1<<c) != 0
}

// Colors returns the members in ascending order.
func (s ColorSet) Colors() []Color {
	var out []Color
	for c := White; c < NoColor; c++ {
		if s.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// PieceType represents the kind of a chess piece.
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPieceType
)

// String returns the piece type name.
func (pt PieceType) String() string {
	switch pt {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "None"
	}
}

// Char returns the upper-case letter for the piece type.
func (pt PieceType) Char() byte {
	chars := []byte{'P', 'N', 'B', 'R', 'Q', 'K', ' '}
	if pt > NoPieceType {
		return ' '
	}
	return chars[pt]
}

// PieceValue is the material value of each piece type.
var PieceValue = [7]int{1, 3, 3, 5, 8, 8, 0}

// Piece is a piece value. The zero value is a white pawn; use NoPiece for
// an empty square.
type Piece struct {
	Type  PieceType
	Color Color
	moved bool
}

// NoPiece marks an empty square.
var NoPiece = Piece{Type: NoPieceType, Color: NoColor}

// NewPiece creates an unmoved piece.
func NewPiece(pt PieceType, c Color) Piece {
	if pt >= NoPieceType || c >= NoColor {
		return NoPiece
	}
	return Piece{Type: pt, Color: c}
}

// IsNone reports whether p is the empty-square sentinel.
func (p Piece) IsNone() bool {
	return p.Type >= NoPieceType
}

// Is reports whether p has the given type and color, ignoring the moved flag.
func (p Piece) Is(pt PieceType, c Color) bool {
	return p.Type == pt && p.Color == c
}

// HasMoved reports whether the piece has been displaced at least once.
func (p Piece) HasMoved() bool {
	return p.moved
}

// Moved returns a copy of p with the moved flag set.
func (p Piece) Moved() Piece {
	p.moved = true
	return p
}

// Value returns the material value of the piece.
func (p Piece) Value() int {
	return PieceValue[min(int(p.Type), int(NoPieceType))]
}

// Name returns the one-letter name used in move history ("N", "Q", ...).
func (p Piece) Name() string {
	if p.IsNone() {
		return ""
	}
	return string(p.Type.Char())
}

// String returns the FEN character: upper-case for White, lower-case otherwise.
func (p Piece) String() string {
	if p.IsNone() {
		return " "
	}
	if p.Color == White {
		return string(p.Type.Char())
	}
	return strings.ToLower(string(p.Type.Char()))
}

// PieceFromChar converts a FEN character to a piece.
func PieceFromChar(c byte) Piece {
	color := White
	if c >= 'a' && c <= 'z' {
		color = Black
		c -= 'a' - 'A'
	}
	switch c {
	case 'P':
		return NewPiece(Pawn, color)
	case 'N':
		return NewPiece(Knight, color)
	case 'B':
		return NewPiece(Bishop, color)
	case 'R':
		return NewPiece(Rook, color)
	case 'Q':
		return NewPiece(Queen, color)
	case 'K':
		return NewPiece(King, color)
	default:
		return NoPiece
	}
}

// offsets holds the move and attack tables of one piece variant.
// For sliding pieces every scaled step up to the board length is listed;
// there is no separate slide primitive.
type offsets struct {
	moves   []Coord
	attacks []Coord
}

type tableKey struct {
	pt     PieceType
	color  Color
	length int
}

var tables sync.Map // tableKey -> *offsets

// tableFor returns the shared offset tables for a piece variant on a board
// of the given length.
func tableFor(pt PieceType, c Color, length int) *offsets {
	key := tableKey{pt, c, length}
	if t, ok := tables.Load(key); ok {
		return t.(*offsets)
	}
	t, _ := tables.LoadOrStore(key, buildTable(pt, c, length))
	return t.(*offsets)
}

func buildTable(pt PieceType, c Color, length int) *offsets {
	t := &offsets{}
	switch pt {
	case Pawn:
		f := c.forward()
		t.moves = []Coord{{0, 2 * f}, {0, f}}
		t.attacks = []Coord{{1, f}, {-1, f}}
		return t
	case Knight:
		t.moves = []Coord{
			{1, 2}, {2, 1}, {1, -2}, {2, -1},
			{-1, -2}, {-2, -1}, {-1, 2}, {-2, 1},
		}
	case Bishop:
		t.moves = bishopRays(length)
	case Rook:
		t.moves = rookRays(length)
	case Queen:
		t.moves = append(rookRays(length), bishopRays(length)...)
	case King:
		for i := -1; i <= 1; i++ {
			for j := -1; j <= 1; j++ {
				if i == 0 && j == 0 {
					continue
				}
				t.moves = append(t.moves, Coord{i, j})
			}
		}
	}
	t.attacks = t.moves
	return t
}

func rookRays(length int) []Coord {
	var out []Coord
	for i := -(length - 1); i < length; i++ {
		if i == 0 {
			continue
		}
		out = append(out, Coord{i, 0})
	}
	for j := -(length - 1); j < length; j++ {
		if j == 0 {
			continue
		}
		out = append(out, Coord{0, j})
	}
	return out
}

func bishopRays(length int) []Coord {
	var out []Coord
	for i := -(length - 1); i < length; i++ {
		if i == 0 {
			continue
		}
		out = append(out, Coord{i, i}, Coord{i, -i})
	}
	return out
}
