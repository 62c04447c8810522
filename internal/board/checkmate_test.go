package board

import (
	"testing"
)

func TestCheckmate(t *testing.T) {
	// Back rank mate: Black king h8 boxed in by its own pawns, White rook a8.
	b, err := ParseFEN("R6k/6pp/8/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatal("Error parsing FEN:", err)
	}

	t.Log("Checkmate position:")
	t.Log(b)

	if !b.InCheck(Black) {
		t.Error("Expected Black in check")
	}
	if !b.IsCheckmate(Black) {
		t.Error("Expected checkmate but got false")
	}
	if b.HasLegalMoves(Black) {
		t.Error("Expected no legal moves for Black")
	}
}

func TestNotCheckmate(t *testing.T) {
	// King CAN escape: Black king on h8 may take the unprotected rook on g8.
	b, err := ParseFEN("6Rk/8/8/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatal("Error parsing FEN:", err)
	}

	t.Log("Not checkmate position (king can capture rook):")
	t.Log(b)

	if !b.IsCheck(Black) {
		t.Error("Expected Black in check")
	}
	if b.IsCheckmate(Black) {
		t.Error("Expected NOT checkmate but got true")
	}
	if !b.IsLegal(C(7, 7), C(6, 7)) {
		t.Error("Expected Kxg8 to be legal")
	}
}

func TestProtectedAdjacentChecker(t *testing.T) {
	// The rook on g8 is protected by the rook on g1 and the bishop covers h7.
	// The king still has g8 in its move list; only the protection test mates.
	b := mustFEN(t, "6Rk/8/8/8/8/3B4/8/K5R1 b - - 0 1")
	g8, h8 := C(6, 7), C(7, 7)

	if !b.SquareIsProtected(h8, g8) {
		t.Error("g8 should be protected")
	}
	if !b.IsCheckmate(Black) {
		t.Error("Expected checkmate with a protected adjacent checker")
	}
	if !b.PieceAt(g8).Is(Rook, White) || !b.PieceAt(h8).Is(King, Black) {
		t.Error("SquareIsProtected left the board modified")
	}
}

func TestRookOnKingFile(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		mate bool
	}{
		{"escape squares exist", "4r2k/8/8/8/8/8/8/4K3 w - - 0 1", false},
		{"escape squares covered", "rr5k/8/8/8/8/8/8/K7 w - - 0 1", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := mustFEN(t, tc.fen)
			if !b.InCheck(White) {
				t.Fatal("Expected White in check")
			}
			if got := b.InCheckmate(White); got != tc.mate {
				t.Errorf("InCheckmate(White) = %v, want %v", got, tc.mate)
			}
		})
	}
}

func TestSquareIsProtectedRejectsBadInput(t *testing.T) {
	b := NewGame()
	if b.SquareIsProtected(C(-1, 0), C(0, 0)) {
		t.Error("out-of-range king square reported protected")
	}
	if b.SquareIsProtected(C(0, 0), C(0, 1)) {
		t.Error("non-king origin reported protected")
	}
}

func TestPlayDeliversMate(t *testing.T) {
	// Scholar's mate.
	b := NewGame()
	moves := []string{"e2e4", "e7e5", "f1c4", "b8c6", "d1h5", "g8f6", "h5f7"}
	var last Move
	for _, s := range moves {
		m, err := b.ParseMove(s)
		if err != nil {
			t.Fatalf("ParseMove(%s): %v", s, err)
		}
		last, err = b.Play(m.From, m.To)
		if err != nil {
			t.Fatalf("Play(%s): %v", s, err)
		}
	}

	if !last.Check || !last.Mate {
		t.Errorf("Qxf7 = %+v, want check and mate", last)
	}
	if got := last.String(); got != "Qxf7" {
		t.Errorf("String() = %q, want Qxf7", got)
	}

	b.EndGame()
	if !b.Finished() {
		t.Error("EndGame did not finish the game")
	}
	if b.Score(White) != 1 || b.Score(Black) != 0 {
		t.Errorf("score = %d-%d, want 1-0", b.Score(White), b.Score(Black))
	}
}
