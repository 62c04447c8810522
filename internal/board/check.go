package board

// kingSquares returns the coordinates of every king on the board.
func (b *Board) kingSquares() []Coord {
	kings := make([]Coord, 0, 2)
	for x := range b.squares {
		for y := range b.squares[x] {
			if b.squares[x][y].piece.Type == King {
				kings = append(kings, Coord{x, y})
			}
		}
	}
	return kings
}

// updateCheck rebuilds the check set from the current attack map.
func (b *Board) updateCheck() {
	b.kingsInCheck = 0
	for _, kc := range b.kingSquares() {
		sq := b.sq(kc)
		if sq.attackers.HasOtherThan(sq.piece.Color) {
			b.kingsInCheck.Add(sq.piece.Color)
		}
	}
}

// IsCheck recomputes the check set and reports whether c is in it.
func (b *Board) IsCheck(c Color) bool {
	b.updateCheck()
	return b.kingsInCheck.Has(c)
}

// updateCheckmate rebuilds the checkmate set. A checked king is mated when
// it has no generated move, or when an adjacent enemy piece giving check is
// protected so the king cannot take it. Other pieces capturing or blocking
// the checker are not considered.
func (b *Board) updateCheckmate() {
	b.updateCheck()

	var mated ColorSet
	for _, kc := range b.kingSquares() {
		king := b.sq(kc).piece
		if !b.sq(kc).attackers.HasOtherThan(king.Color) {
			continue
		}
		if len(b.MovesFor(kc, king)) == 0 || b.adjacentCheckerProtected(kc) {
			mated.Add(king.Color)
		}
	}
	b.kingsInCheckmate = mated
}

// IsCheckmate recomputes the checkmate set and reports whether c is in it.
func (b *Board) IsCheckmate(c Color) bool {
	b.updateCheckmate()
	return b.kingsInCheckmate.Has(c)
}

// adjacentCheckerProtected reports whether an enemy piece next to the king
// at kc gives check and is protected.
func (b *Board) adjacentCheckerProtected(kc Coord) bool {
	king := b.sq(kc).piece
	for _, off := range tableFor(King, king.Color, b.length).moves {
		at := kc.Add(off)
		if !b.InBounds(at) {
			continue
		}
		occ := b.sq(at).piece
		if occ.IsNone() || occ.Color == king.Color {
			continue
		}
		if b.attacks(at, kc) && b.SquareIsProtected(kc, at) {
			return true
		}
	}
	return false
}

// SquareIsProtected reports whether the king at kingAt could not safely
// capture the piece at target: either the king's move generator does not
// offer that square, or moving the king there still leaves its color in
// check. The board is restored before returning.
func (b *Board) SquareIsProtected(kingAt, target Coord) bool {
	if !b.InBounds(kingAt) || !b.InBounds(target) {
		return false
	}
	king := b.sq(kingAt).piece
	if king.Type != King {
		return false
	}

	want := target.Sub(kingAt)
	offered := false
	for _, off := range b.MovesFor(kingAt, king) {
		if off == want {
			offered = true
			break
		}
	}
	if !offered {
		return true
	}

	saved := b.kingsInCheck
	captured := b.baseMove(kingAt, target)
	stillChecked := b.IsCheck(king.Color)
	b.undoBaseMove(kingAt, target, captured)
	b.kingsInCheck = saved

	return stillChecked
}
