package board

// Perft counts the leaf nodes of the legal move tree to the given depth.
func Perft(b *Board, depth int) int64 {
	if depth <= 0 {
		return 1
	}

	moves := b.GenerateLegalMoves()
	if depth == 1 {
		return int64(len(moves))
	}

	var nodes int64
	for _, m := range moves {
		child := b.Clone()
		if m.IsCastling() {
			child.CastleMove(m.From, m.Castle)
		} else {
			child.ApplyMove(m.From, m.To)
		}
		nodes += Perft(child, depth-1)
	}
	return nodes
}
