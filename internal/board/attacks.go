package board

// RecomputeAttacks rebuilds the attacked flag and attacking colors of every
// square from scratch. Kings never contribute: the map answers "would the
// king be exposed here", and a king cannot expose another king that way.
func (b *Board) RecomputeAttacks() {
	for x := range b.squares {
		for y := range b.squares[x] {
			b.squares[x][y].clearAttack()
		}
	}

	for x := range b.squares {
		for y := range b.squares[x] {
			origin := Coord{x, y}
			p := b.squares[x][y].piece
			if p.IsNone() || p.Type == King {
				continue
			}
			for _, off := range b.attackOffsets(origin, p) {
				target := origin.Add(off)
				if b.InBounds(target) {
					b.sq(target).markAttacked(p.Color)
				}
			}
		}
	}
}

// attackOffsets returns the offsets p attacks from origin. Pawns attack both
// forward diagonals unconditionally; every other piece attacks what it
// could move to.
func (b *Board) attackOffsets(origin Coord, p Piece) []Coord {
	if p.Type == Pawn {
		return tableFor(Pawn, p.Color, b.length).attacks
	}
	return b.MovesFor(origin, p)
}

// attacks reports whether the piece at from attacks the square at target.
func (b *Board) attacks(from, target Coord) bool {
	p := b.sq(from).piece
	if p.IsNone() || p.Type == King {
		return false
	}
	want := target.Sub(from)
	for _, off := range b.attackOffsets(from, p) {
		if off == want {
			return true
		}
	}
	return false
}
