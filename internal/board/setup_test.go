package board

import (
	"errors"
	"math/rand"
	"testing"
)

func TestAddPiecesNeedsEightFiles(t *testing.T) {
	b, err := NewSized(6)
	if err != nil {
		t.Fatal(err)
	}
	if err := b.AddPieces(); !errors.Is(err, ErrBoardSize) {
		t.Errorf("AddPieces on 6x6 error = %v, want ErrBoardSize", err)
	}
	if err := b.AddShuffledPieces(); !errors.Is(err, ErrBoardSize) {
		t.Errorf("AddShuffledPieces on 6x6 error = %v, want ErrBoardSize", err)
	}
}

func TestNewSizedBounds(t *testing.T) {
	for _, n := range []int{0, 27} {
		if _, err := NewSized(n); !errors.Is(err, ErrBoardSize) {
			t.Errorf("NewSized(%d) error = %v, want ErrBoardSize", n, err)
		}
	}
}

func TestAddShuffledPieces(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		b := New()
		b.SetRand(rand.New(rand.NewSource(seed)))
		if err := b.AddShuffledPieces(); err != nil {
			t.Fatal(err)
		}

		for _, side := range []struct {
			color    Color
			backRank int
			pawnRank int
		}{{White, 0, 1}, {Black, 7, 6}} {
			counts := map[PieceType]int{}
			for x := 0; x < 8; x++ {
				p := b.PieceAt(C(x, side.backRank))
				if p.IsNone() || p.Color != side.color {
					t.Fatalf("seed %d: %v empty or wrong color", seed, C(x, side.backRank))
				}
				counts[p.Type]++
				if !b.PieceAt(C(x, side.pawnRank)).Is(Pawn, side.color) {
					t.Errorf("seed %d: no pawn on %v", seed, C(x, side.pawnRank))
				}
			}
			want := map[PieceType]int{Rook: 2, Knight: 2, Bishop: 2, Queen: 1, King: 1}
			for pt, n := range want {
				if counts[pt] != n {
					t.Errorf("seed %d %v: %d %v, want %d", seed, side.color, counts[pt], pt, n)
				}
			}
		}
		if b.Turn() != White {
			t.Errorf("seed %d: turn = %v", seed, b.Turn())
		}
	}
}

func TestShuffleIsReproducible(t *testing.T) {
	a, b := New(), New()
	a.SetRand(rand.New(rand.NewSource(42)))
	b.SetRand(rand.New(rand.NewSource(42)))
	_ = a.AddShuffledPieces()
	_ = b.AddShuffledPieces()
	if a.FEN() != b.FEN() {
		t.Errorf("same seed gave %q and %q", a.FEN(), b.FEN())
	}
}
