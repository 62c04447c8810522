package board

// MovesFor returns the pseudo-legal offsets for piece p standing at origin.
// Pawns use their own routine; every other piece walks its offset table and
// truncates each ray at the first obstruction.
func (b *Board) MovesFor(origin Coord, p Piece) []Coord {
	if p.IsNone() {
		return nil
	}
	if p.Type == Pawn {
		return b.pawnMoves(origin, p)
	}

	table := tableFor(p.Type, p.Color, b.length).moves
	isKing := p.Type == King

	// First pass: collect the offsets that block a direction.
	var blocked []Coord
	for _, off := range table {
		target := origin.Add(off)
		if !b.InBounds(target) {
			blocked = append(blocked, off)
			continue
		}

		sq := b.sq(target)

		// A king may not step onto a square attacked by another color.
		// Same-color entries never block.
		if isKing && sq.attackedByOther(p.Color) {
			blocked = append(blocked, off)
		}

		if sq.HasPiece() {
			if sq.piece.Color == p.Color || p.Type == Pawn {
				blocked = append(blocked, off)
			} else {
				// Capturing stops the slide one square further out.
				blocked = append(blocked, off.Step())
			}
		}
	}

	// Second pass: keep the offsets whose direction was never cut short.
	var out []Coord
	for _, off := range table {
		if !b.InBounds(origin.Add(off)) {
			continue
		}
		cut := false
		for _, blk := range blocked {
			if blk.SameRay(off) {
				cut = true
				break
			}
		}
		if !cut {
			out = append(out, off)
		}
	}

	if isKing {
		out = append(out, b.CastlingDestinations(origin, p)...)
	}
	return out
}

// pawnMoves returns the forward steps and diagonal captures for a pawn.
func (b *Board) pawnMoves(origin Coord, p Piece) []Coord {
	f := p.Color.forward()
	forward := []Coord{{0, f}, {0, 2 * f}}
	if p.HasMoved() {
		forward = forward[:1]
	}

	var out []Coord
	for _, off := range forward {
		target := origin.Add(off)
		if !b.InBounds(target) || b.sq(target).HasPiece() {
			break
		}
		out = append(out, off)
	}

	for _, off := range tableFor(Pawn, p.Color, b.length).attacks {
		target := origin.Add(off)
		if !b.InBounds(target) {
			continue
		}
		occ := b.sq(target).piece
		if !occ.IsNone() && occ.Color != p.Color {
			out = append(out, off)
		}
	}
	return out
}

// CastlingDestinations returns the castling offsets (±2 files) available to
// an unmoved king that is not in check. The corner square on the king's rank
// must hold a rook of the king's color; the rook's own moved flag is only
// consulted when strict castling is enabled. A destination is dropped if it
// or the square the king crosses is occupied or attacked by another color.
// Strict castling also requires every square between king and rook to be
// empty.
func (b *Board) CastlingDestinations(origin Coord, king Piece) []Coord {
	if king.Type != King || king.HasMoved() || b.kingsInCheck.Has(king.Color) {
		return nil
	}
	if !b.InBounds(origin) {
		return nil
	}

	var out []Coord
	for _, side := range []struct {
		rookFile int
		dir      int
	}{{0, -1}, {b.length - 1, 1}} {
		rookAt := Coord{side.rookFile, origin.Y}
		if rookAt == origin {
			continue
		}
		rook := b.sq(rookAt).piece
		if !rook.Is(Rook, king.Color) {
			continue
		}
		if b.strictCastling && rook.HasMoved() {
			continue
		}

		off := Coord{2 * side.dir, 0}
		dest := origin.Add(off)
		if !b.InBounds(dest) {
			continue
		}
		if b.castlingPathClear(origin, rookAt, side.dir, king.Color) {
			out = append(out, off)
		}
	}
	return out
}

// castlingPathClear checks the squares the king crosses and lands on. In
// strict mode every square between king and rook must be empty as well.
func (b *Board) castlingPathClear(origin, rookAt Coord, dir int, c Color) bool {
	for step := 1; step <= 2; step++ {
		sq := b.sq(origin.Add(Coord{dir * step, 0}))
		if sq.HasPiece() || sq.attackedByOther(c) {
			return false
		}
	}
	if !b.strictCastling {
		return true
	}
	for x := origin.X + dir; x != rookAt.X; x += dir {
		if b.sq(Coord{x, origin.Y}).HasPiece() {
			return false
		}
	}
	return true
}
