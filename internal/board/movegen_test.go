package board

import (
	"slices"
	"testing"
)

func mustFEN(t *testing.T, fen string) *Board {
	t.Helper()
	b, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return b
}

func sq(t *testing.T, s string) Coord {
	t.Helper()
	c, err := ParseCoord(s)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func sortCoords(cs []Coord) []Coord {
	out := slices.Clone(cs)
	slices.SortFunc(out, func(a, b Coord) int {
		if a.X != b.X {
			return a.X - b.X
		}
		return a.Y - b.Y
	})
	return out
}

func TestStartingPositionPawn(t *testing.T) {
	b := NewGame()
	got := b.LegalMoves(sq(t, "g2"))
	want := []Coord{C(0, 1), C(0, 2)}
	if !slices.Equal(got, want) {
		t.Errorf("LegalMoves(g2) = %v, want %v", got, want)
	}
}

func TestStartingPositionMoveCount(t *testing.T) {
	b := NewGame()
	if got := len(b.GenerateLegalMoves()); got != 20 {
		t.Errorf("legal moves from start = %d, want 20", got)
	}
	if got := b.LegalDestinations(sq(t, "b1")); !slices.Equal(sortCoords(got), []Coord{sq(t, "a3"), sq(t, "c3")}) {
		t.Errorf("LegalDestinations(b1) = %v, want [a3 c3]", got)
	}
}

func TestMovedPawnHasNoDoubleStep(t *testing.T) {
	b := NewGame()
	if !b.ApplyMove(sq(t, "e2"), sq(t, "e3")) {
		t.Fatal("e2e3 refused")
	}
	b.SetTurn(White)
	got := b.MovesFor(sq(t, "e3"), b.PieceAt(sq(t, "e3")))
	if !slices.Equal(got, []Coord{C(0, 1)}) {
		t.Errorf("MovesFor(e3) = %v, want only a single step", got)
	}
}

func TestPawnBlocked(t *testing.T) {
	b := mustFEN(t, "4k3/8/8/8/8/4n3/4P3/4K3 w - - 0 1")
	if got := b.LegalMoves(sq(t, "e2")); len(got) != 0 {
		t.Errorf("blocked pawn moves = %v, want none", got)
	}
}

func TestPawnCapturesOnlyEnemies(t *testing.T) {
	b := mustFEN(t, "4k3/8/8/8/8/3p1N2/4P3/K7 w - - 0 1")
	got := sortCoords(b.LegalMoves(sq(t, "e2")))
	want := []Coord{C(-1, 1), C(0, 1), C(0, 2)}
	if !slices.Equal(got, want) {
		t.Errorf("LegalMoves(e2) = %v, want %v", got, want)
	}
}

func TestSlidingPieceStopsAtCapture(t *testing.T) {
	b := mustFEN(t, "k7/8/8/3p4/8/8/3R4/K7 w - - 0 1")
	var up []Coord
	for _, off := range b.LegalMoves(sq(t, "d2")) {
		if off.X == 0 && off.Y > 0 {
			up = append(up, off)
		}
	}
	want := []Coord{C(0, 1), C(0, 2), C(0, 3)}
	if !slices.Equal(sortCoords(up), want) {
		t.Errorf("rook moves up the file = %v, want %v", up, want)
	}
}

func TestKnightOnlyCapture(t *testing.T) {
	// Knight on a1: c2 holds a friendly pawn, b3 an enemy pawn.
	b := mustFEN(t, "7k/8/8/8/8/1p6/2P5/N6K w - - 0 1")
	got := b.LegalMoves(sq(t, "a1"))
	if !slices.Equal(got, []Coord{C(1, 2)}) {
		t.Errorf("LegalMoves(a1) = %v, want [(1,2)]", got)
	}
}

func TestKingAvoidsAttackedSquares(t *testing.T) {
	b := mustFEN(t, "3rk3/8/8/8/8/8/8/4K3 w - - 0 1")
	for _, off := range b.LegalMoves(sq(t, "e1")) {
		if off.X == -1 {
			t.Errorf("king offered %v on the rook's file", off)
		}
	}
}

func TestKingsNeverPopulateAttackMap(t *testing.T) {
	b := mustFEN(t, "8/8/8/3k4/8/8/8/4K3 w - - 0 1")
	for x := 0; x < b.Length(); x++ {
		for y := 0; y < b.Length(); y++ {
			if b.Square(C(x, y)).Attacked() {
				t.Fatalf("%v attacked with only kings on the board", C(x, y))
			}
		}
	}

	b = NewGame()
	for _, kc := range b.kingSquares() {
		king := b.PieceAt(kc)
		if b.Square(kc).AttackingColors().Has(king.Color) {
			t.Errorf("king on %v marked as attacked by its own color", kc)
		}
	}
}

func TestPawnAttacksDiagonalsUnconditionally(t *testing.T) {
	b := mustFEN(t, "4k3/8/8/8/8/8/4P3/4K3 w - - 0 1")
	for _, s := range []string{"d3", "f3"} {
		if !b.Square(sq(t, s)).AttackingColors().Has(White) {
			t.Errorf("%s not attacked by the white pawn", s)
		}
	}
	if b.Square(sq(t, "e3")).Attacked() {
		t.Error("e3 marked attacked by a pawn push")
	}
}

func TestLegalMovesNeverLeaveKingInCheck(t *testing.T) {
	fens := []string{
		StartFEN,
		"4k3/4r3/8/8/8/8/4B3/4K3 w - - 0 1",
		"4k3/8/8/8/8/5n2/8/R3K3 w - - 0 1",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	}
	for _, fen := range fens {
		t.Run(fen, func(t *testing.T) {
			b := mustFEN(t, fen)
			for _, m := range b.GenerateLegalMoves() {
				cp := b.Clone()
				cp.baseMove(m.From, m.To)
				if cp.IsCheck(m.Piece.Color) {
					t.Errorf("%s leaves %s in check", m.UCI(), m.Piece.Color)
				}
			}
		})
	}
}

func TestPinnedPieceCannotMove(t *testing.T) {
	b := mustFEN(t, "4k3/4r3/8/8/8/8/4B3/4K3 w - - 0 1")
	if got := b.LegalMoves(sq(t, "e2")); len(got) != 0 {
		t.Errorf("pinned bishop moves = %v, want none", got)
	}
}

func TestLegalMovesRestoresBoard(t *testing.T) {
	b := mustFEN(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	before := b.FEN()
	hash := b.Hash()
	b.GenerateLegalMoves()
	if b.FEN() != before || b.Hash() != hash {
		t.Errorf("board changed by legality probing:\n%s\n%s", before, b.FEN())
	}
}

func TestBaseMoveRoundTrip(t *testing.T) {
	b := mustFEN(t, "4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1")
	from, to := sq(t, "e4"), sq(t, "d5")
	hash := b.Hash()

	captured := b.baseMove(from, to)
	if !captured.Is(Pawn, Black) {
		t.Fatalf("captured = %v, want black pawn", captured)
	}
	b.undoBaseMove(from, to, captured)

	if got := b.PieceAt(from); !got.Is(Pawn, White) {
		t.Errorf("origin holds %v after undo", got)
	}
	if got := b.PieceAt(to); !got.Is(Pawn, Black) {
		t.Errorf("destination holds %v after undo", got)
	}
	if b.Hash() != hash {
		t.Error("hash differs after round trip")
	}
}
