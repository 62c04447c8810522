package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN parses a FEN string into a new board. The number of ranks sets
// the board length and every rank must be that wide. Castling rights are
// expressed through the moved flags of kings and rooks; pawns away from their
// home rank are marked moved. The en passant field and the clocks are
// accepted but ignored.
func ParseFEN(fen string) (*Board, error) {
	parts := strings.Fields(fen)
	if len(parts) < 2 {
		return nil, fmt.Errorf("invalid FEN: need at least 2 fields, got %d", len(parts))
	}

	ranks := strings.Split(parts[0], "/")
	b, err := NewSized(len(ranks))
	if err != nil {
		return nil, fmt.Errorf("invalid FEN: %w", err)
	}

	// Parse piece placement (field 0)
	if err := parsePiecePlacement(b, ranks); err != nil {
		return nil, err
	}

	// Parse side to move (field 1)
	switch parts[1] {
	case "w":
		b.turn = int(White)
	case "b":
		b.turn = int(Black)
	default:
		return nil, fmt.Errorf("invalid side to move: %s", parts[1])
	}

	// Parse castling rights (field 2, optional)
	rights := "-"
	if len(parts) > 2 {
		rights = parts[2]
	}
	if err := applyCastlingRights(b, rights); err != nil {
		return nil, err
	}

	markDisplacedPawns(b)
	b.Refresh()
	return b, nil
}

func parsePiecePlacement(b *Board, ranks []string) error {
	for i, row := range ranks {
		y := b.length - 1 - i
		x := 0
		for j := 0; j < len(row); j++ {
			ch := row[j]
			if ch >= '0' && ch <= '9' {
				k := j
				for k < len(row) && row[k] >= '0' && row[k] <= '9' {
					k++
				}
				n, _ := strconv.Atoi(row[j:k])
				x += n
				j = k - 1
				continue
			}
			p := PieceFromChar(ch)
			if p.IsNone() {
				return fmt.Errorf("invalid piece character: %c", ch)
			}
			if x >= b.length {
				return fmt.Errorf("invalid FEN: rank %d is too long", y+1)
			}
			b.sq(Coord{x, y}).put(p)
			x++
		}
		if x != b.length {
			return fmt.Errorf("invalid FEN: rank %d has %d files, want %d", y+1, x, b.length)
		}
	}
	return nil
}

// applyCastlingRights marks kings and rooks that have lost their rights as
// moved. A king keeps its unmoved flag if its color has either right.
func applyCastlingRights(b *Board, rights string) error {
	var has [2][2]bool // [color][0 = queenside, 1 = kingside]
	if rights != "-" {
		for _, ch := range rights {
			switch ch {
			case 'K':
				has[White][1] = true
			case 'Q':
				has[White][0] = true
			case 'k':
				has[Black][1] = true
			case 'q':
				has[Black][0] = true
			default:
				return fmt.Errorf("invalid castling character: %c", ch)
			}
		}
	}

	for _, c := range []Color{White, Black} {
		rank := homeRank(c, b.length)
		corners := [2]Coord{{0, rank}, {b.length - 1, rank}}
		for side, at := range corners {
			if p := b.sq(at).piece; p.Is(Rook, c) && !has[c][side] {
				b.sq(at).put(p.Moved())
			}
		}
		for x := 0; x < b.length; x++ {
			at := Coord{x, rank}
			if p := b.sq(at).piece; p.Is(King, c) && !has[c][0] && !has[c][1] {
				b.sq(at).put(p.Moved())
			}
		}
		// Kings off their home rank have always moved.
		for _, kc := range b.kingSquares() {
			if p := b.sq(kc).piece; p.Color == c && kc.Y != rank {
				b.sq(kc).put(p.Moved())
			}
		}
	}
	return nil
}

func markDisplacedPawns(b *Board) {
	for x := range b.squares {
		for y := range b.squares[x] {
			p := b.squares[x][y].piece
			if p.Type != Pawn || p.IsNone() {
				continue
			}
			start := 1
			if p.Color != White {
				start = b.length - 2
			}
			if y != start {
				b.squares[x][y].put(p.Moved())
			}
		}
	}
}

func homeRank(c Color, length int) int {
	if c == White {
		return 0
	}
	return length - 1
}

// FEN returns the FEN string of the board. Castling rights are derived from
// unmoved kings and corner rooks; en passant is always "-" and the clocks are
// fixed at "0 1".
func (b *Board) FEN() string {
	var sb strings.Builder

	for y := b.length - 1; y >= 0; y-- {
		empty := 0
		for x := 0; x < b.length; x++ {
			p := b.squares[x][y].piece
			if p.IsNone() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(p.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if y > 0 {
			sb.WriteByte('/')
		}
	}

	if b.Turn() == Black {
		sb.WriteString(" b ")
	} else {
		sb.WriteString(" w ")
	}

	rights := b.castlingRights()
	if rights == "" {
		rights = "-"
	}
	sb.WriteString(rights)
	sb.WriteString(" - 0 1")
	return sb.String()
}

func (b *Board) castlingRights() string {
	var sb strings.Builder
	for _, c := range []Color{White, Black} {
		rank := homeRank(c, b.length)
		kingHome := false
		for x := 0; x < b.length; x++ {
			if p := b.sq(Coord{x, rank}).piece; p.Is(King, c) && !p.HasMoved() {
				kingHome = true
				break
			}
		}
		if !kingHome {
			continue
		}
		king, queen := byte('K'), byte('Q')
		if c == Black {
			king, queen = 'k', 'q'
		}
		if p := b.sq(Coord{b.length - 1, rank}).piece; p.Is(Rook, c) && !p.HasMoved() {
			sb.WriteByte(king)
		}
		if p := b.sq(Coord{0, rank}).piece; p.Is(Rook, c) && !p.HasMoved() {
			sb.WriteByte(queen)
		}
	}
	return sb.String()
}
