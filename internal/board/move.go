package board

import "fmt"

// Move records a move that was applied through Play.
type Move struct {
	From     Coord
	To       Coord
	Piece    Piece // the mover, as it stood before moving
	Captured Piece // NoPiece when nothing was taken
	Castle   int   // +2 or -2 for castling, 0 otherwise
	Check    bool  // the opponent was left in check
	Mate     bool  // the opponent was left checkmated
}

// IsCapture reports whether the move took a piece.
func (m Move) IsCapture() bool {
	return !m.Captured.IsNone()
}

// IsCastling reports whether the move was a castle.
func (m Move) IsCastling() bool {
	return m.Castle != 0
}

// String returns the history notation: "0-0", "0-0-0", "Ne4" or "Nxe4".
func (m Move) String() string {
	switch {
	case m.Castle < 0:
		return "0-0-0"
	case m.Castle > 0:
		return "0-0"
	case m.IsCapture():
		return m.Piece.Name() + "x" + m.To.String()
	default:
		return m.Piece.Name() + m.To.String()
	}
}

// UCI returns the move as origin and destination squares, e.g. "e2e4".
func (m Move) UCI() string {
	return m.From.String() + m.To.String()
}

// ApplyMove moves the piece on from to to. It fails without changing
// anything when from is empty, from equals to, or the piece does not belong
// to the side to move. Destination legality is the caller's concern; use
// Play for a validated move. Coordinates are clamped onto the board.
func (b *Board) ApplyMove(from, to Coord) bool {
	from, to = b.clamp(from), b.clamp(to)
	if from == to {
		return false
	}
	p := b.sq(from).piece
	if p.IsNone() || p.Color != b.Turn() {
		return false
	}

	captured := b.sq(to).put(b.sq(from).take().Moved())
	if !captured.IsNone() {
		b.captured[p.Color] = append(b.captured[p.Color], captured.Name())
	}

	b.RecomputeAttacks()
	b.updateCheck()
	b.updateCheckmate()
	b.advanceTurn()
	return true
}

// CastleMove castles the king on kingFrom by direction (+2 or -2 files).
// It trusts that CastlingDestinations already approved the move. The king
// is relocated first, then the rook goes through ApplyMove to the square on
// the far side of the king, so exactly one turn elapses.
func (b *Board) CastleMove(kingFrom Coord, direction int) bool {
	kingFrom = b.clamp(kingFrom)
	king := b.sq(kingFrom).piece
	if king.Type != King || king.Color != b.Turn() {
		return false
	}

	var rookFrom Coord
	switch direction {
	case 2:
		rookFrom = Coord{b.length - 1, kingFrom.Y}
	case -2:
		rookFrom = Coord{0, kingFrom.Y}
	default:
		return false
	}
	kingTo := kingFrom.Add(Coord{direction, 0})
	if !b.InBounds(kingTo) || !b.sq(rookFrom).piece.Is(Rook, king.Color) {
		return false
	}

	b.sq(kingTo).put(b.sq(kingFrom).take().Moved())

	rookDir := -1
	if direction < 0 {
		rookDir = 1
	}
	return b.ApplyMove(rookFrom, kingTo.Add(Coord{rookDir, 0}))
}

// Play validates and applies a move for the side to move. A king moving two
// files is played as a castle.
func (b *Board) Play(from, to Coord) (Move, error) {
	if !b.InBounds(from) || !b.InBounds(to) {
		return Move{}, fmt.Errorf("%w: %s-%s is off the board", ErrIllegalMove, from, to)
	}
	p := b.sq(from).piece
	if p.IsNone() {
		return Move{}, fmt.Errorf("%w: %s", ErrNoPiece, from)
	}
	if p.Color != b.Turn() {
		return Move{}, fmt.Errorf("%w: %s to move, %s on %s", ErrWrongTurn, b.Turn(), p.Color, from)
	}
	if !b.IsLegal(from, to) {
		return Move{}, fmt.Errorf("%w: %s%s", ErrIllegalMove, from, to)
	}

	m := Move{From: from, To: to, Piece: p, Captured: b.sq(to).piece}
	off := to.Sub(from)

	var ok bool
	if p.Type == King && off.Y == 0 && (off.X == 2 || off.X == -2) {
		m.Castle = off.X
		m.Captured = NoPiece
		ok = b.CastleMove(from, off.X)
	} else {
		ok = b.ApplyMove(from, to)
	}
	if !ok {
		return Move{}, fmt.Errorf("%w: %s%s", ErrIllegalMove, from, to)
	}

	if opp := p.Color.Other(); opp != NoColor {
		m.Check = b.kingsInCheck.Has(opp)
		m.Mate = b.kingsInCheckmate.Has(opp)
	}
	return m, nil
}
