package board

// baseMove transfers the occupant of from onto to and recomputes the attack
// map. No turn, score, capture or check bookkeeping happens. It returns the
// piece previously on to.
func (b *Board) baseMove(from, to Coord) Piece {
	captured := b.sq(to).put(b.sq(from).take())
	b.RecomputeAttacks()
	return captured
}

// undoBaseMove reverts baseMove(from, to), restoring captured onto to.
func (b *Board) undoBaseMove(from, to Coord, captured Piece) {
	b.sq(from).put(b.sq(to).take())
	if !captured.IsNone() {
		b.sq(to).put(captured)
	}
	b.RecomputeAttacks()
}

// LegalMoves returns the offsets the piece at origin may move by without
// leaving its own king in check. Each pseudo-legal candidate is applied,
// tested and reverted; the board is unchanged afterwards.
func (b *Board) LegalMoves(origin Coord) []Coord {
	origin = b.clamp(origin)
	p := b.sq(origin).piece
	if p.IsNone() {
		return nil
	}

	savedCheck, savedMate := b.kingsInCheck, b.kingsInCheckmate
	defer func() {
		b.kingsInCheck, b.kingsInCheckmate = savedCheck, savedMate
	}()

	var legal []Coord
	for _, off := range b.MovesFor(origin, p) {
		dest := origin.Add(off)
		captured := b.baseMove(origin, dest)

		if !b.IsCheck(p.Color) && !b.IsCheckmate(p.Color) {
			legal = append(legal, off)
		}

		b.undoBaseMove(origin, dest, captured)
	}
	return legal
}

// LegalDestinations is LegalMoves expressed as absolute coordinates.
func (b *Board) LegalDestinations(origin Coord) []Coord {
	origin = b.clamp(origin)
	offs := b.LegalMoves(origin)
	out := make([]Coord, len(offs))
	for i, off := range offs {
		out[i] = origin.Add(off)
	}
	return out
}

// IsLegal reports whether moving the piece at from to to is legal.
func (b *Board) IsLegal(from, to Coord) bool {
	from = b.clamp(from)
	want := to.Sub(from)
	for _, off := range b.LegalMoves(from) {
		if off == want {
			return true
		}
	}
	return false
}

// HasLegalMoves reports whether any piece of color c has a legal move.
func (b *Board) HasLegalMoves(c Color) bool {
	for x := range b.squares {
		for y := range b.squares[x] {
			p := b.squares[x][y].piece
			if p.IsNone() || p.Color != c {
				continue
			}
			if len(b.LegalMoves(Coord{x, y})) > 0 {
				return true
			}
		}
	}
	return false
}

// GenerateLegalMoves returns every legal move of the side to move. Check and
// Mate are left unset; they are only known once a move is played.
func (b *Board) GenerateLegalMoves() []Move {
	var moves []Move
	turn := b.Turn()
	for x := range b.squares {
		for y := range b.squares[x] {
			p := b.squares[x][y].piece
			if p.IsNone() || p.Color != turn {
				continue
			}
			from := Coord{x, y}
			for _, off := range b.LegalMoves(from) {
				to := from.Add(off)
				m := Move{From: from, To: to, Piece: p, Captured: b.sq(to).piece}
				if p.Type == King && off.Y == 0 && (off.X == 2 || off.X == -2) {
					m.Castle = off.X
				}
				moves = append(moves, m)
			}
		}
	}
	return moves
}
