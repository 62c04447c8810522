package board

import (
	"strings"
	"testing"
)

func TestConvertPos(t *testing.T) {
	b := New()
	tests := []struct {
		name     string
		x, y     int
		useClamp bool
		want     Coord
	}{
		{"top left", 0, 0, false, C(0, 7)},
		{"bottom right", 799, 799, false, C(7, 0)},
		{"centre of e4", 450, 450, false, C(4, 3)},
		{"left of the board", -50, 150, false, C(-1, 6)},
		{"left of the board clamped", -50, 150, true, C(0, 6)},
		{"past the corner", 900, 900, false, C(9, -2)},
		{"past the corner clamped", 900, 900, true, C(7, 0)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := b.ConvertPos(tc.x, tc.y, 800, 800, tc.useClamp); got != tc.want {
				t.Errorf("ConvertPos(%d, %d) = %v, want %v", tc.x, tc.y, got, tc.want)
			}
		})
	}
}

func TestSquareClampsCoordinates(t *testing.T) {
	b := NewGame()
	if got := b.Square(C(-3, -3)).Coord(); got != C(0, 0) {
		t.Errorf("Square(-3,-3) = %v, want a1", got)
	}
	if got := b.PieceAt(C(20, 0)); !got.Is(Rook, White) {
		t.Errorf("PieceAt(20,0) = %v, want the h1 rook", got)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b := NewGame()
	cp := b.Clone()
	cp.ApplyMove(C(4, 1), C(4, 3))
	if b.PieceAt(C(4, 1)).IsNone() {
		t.Error("move on the clone emptied e2 on the original")
	}
	if b.Turn() != White {
		t.Error("move on the clone advanced the original's turn")
	}
}

func TestCapturedReturnsCopy(t *testing.T) {
	b := mustFEN(t, "4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1")
	b.ApplyMove(C(4, 3), C(3, 4))
	got := b.Captured(White)
	got[0] = "Q"
	if b.Captured(White)[0] != "P" {
		t.Error("Captured exposed internal storage")
	}
}

func TestEndGameWithoutMate(t *testing.T) {
	b := NewGame()
	b.EndGame()
	if b.Finished() {
		t.Error("EndGame finished a game with no checkmate")
	}
}

func TestBoardString(t *testing.T) {
	s := NewGame().String()
	for _, want := range []string{"r n b q k b n r", "a b c d e f g h", "Side to move: White"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() missing %q:\n%s", want, s)
		}
	}
}

func TestHashDistinguishesSideToMove(t *testing.T) {
	w := mustFEN(t, "4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	b := mustFEN(t, "4k3/8/8/8/8/8/8/4K3 b - - 0 1")
	if w.Hash() == b.Hash() {
		t.Error("hash ignores side to move")
	}
}
