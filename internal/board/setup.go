package board

import "fmt"

// backRank is the standard piece order from file a to file h.
var backRank = [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// AddPieces clears every square and sets up the standard starting layout.
// The layout occupies files a-h and ranks 1-8 regardless of board length.
func (b *Board) AddPieces() error {
	if b.length < DefaultLength {
		return fmt.Errorf("%w: starting layout needs %d files, board has %d", ErrBoardSize, DefaultLength, b.length)
	}
	b.clearPieces()

	for x := 0; x < DefaultLength; x++ {
		b.sq(Coord{x, 1}).put(NewPiece(Pawn, White))
		b.sq(Coord{x, 6}).put(NewPiece(Pawn, Black))
		b.sq(Coord{x, 0}).put(NewPiece(backRank[x], White))
		b.sq(Coord{x, 7}).put(NewPiece(backRank[x], Black))
	}

	b.turn = int(White)
	b.Refresh()
	return nil
}

// AddShuffledPieces clears every square, puts the pawns on their usual ranks
// and drops every other piece onto a random free file of its back rank.
func (b *Board) AddShuffledPieces() error {
	if b.length < DefaultLength {
		return fmt.Errorf("%w: starting layout needs %d files, board has %d", ErrBoardSize, DefaultLength, b.length)
	}
	b.clearPieces()

	for x := 0; x < DefaultLength; x++ {
		b.sq(Coord{x, 1}).put(NewPiece(Pawn, White))
		b.sq(Coord{x, 6}).put(NewPiece(Pawn, Black))
	}

	for _, side := range []struct {
		color Color
		rank  int
	}{{White, 0}, {Black, DefaultLength - 1}} {
		clear(b.usedFiles)
		b.addSpecificPiece(NewPiece(Rook, side.color), 2, side.rank)
		b.addSpecificPiece(NewPiece(Knight, side.color), 2, side.rank)
		b.addSpecificPiece(NewPiece(Bishop, side.color), 2, side.rank)
		b.addSpecificPiece(NewPiece(Queen, side.color), 1, side.rank)
		b.addSpecificPiece(NewPiece(King, side.color), 1, side.rank)
	}
	clear(b.usedFiles)

	b.turn = int(White)
	b.Refresh()
	return nil
}

// addSpecificPiece places amount copies of p on random unused files of rank.
func (b *Board) addSpecificPiece(p Piece, amount, rank int) {
	for placed := 0; placed < amount; {
		file := b.rng.Intn(DefaultLength)
		if _, used := b.usedFiles[file]; used {
			continue
		}
		b.sq(Coord{file, rank}).put(p)
		b.usedFiles[file] = struct{}{}
		placed++
	}
}

func (b *Board) clearPieces() {
	for x := range b.squares {
		for y := range b.squares[x] {
			b.squares[x][y].take()
			b.squares[x][y].clearAttack()
		}
	}
	b.kingsInCheck = 0
	b.kingsInCheckmate = 0
	b.finished = false
}
