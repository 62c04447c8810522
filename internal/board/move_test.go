package board

import (
	"errors"
	"testing"
)

func TestApplyMove(t *testing.T) {
	tests := []struct {
		name   string
		from   Coord
		to     Coord
		wantOK bool
	}{
		{"white pawn push", C(4, 1), C(4, 3), true},
		{"empty origin", C(4, 3), C(4, 4), false},
		{"black piece on white's turn", C(4, 6), C(4, 4), false},
		{"origin equals destination", C(4, 1), C(4, 1), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := NewGame()
			before := b.Hash()
			got := b.ApplyMove(tc.from, tc.to)
			if got != tc.wantOK {
				t.Fatalf("ApplyMove = %v, want %v", got, tc.wantOK)
			}
			if !got && b.Hash() != before {
				t.Error("refused move changed the board")
			}
			if got && b.Turn() != Black {
				t.Errorf("turn = %v, want Black", b.Turn())
			}
		})
	}
}

func TestApplyMoveSkipsLegality(t *testing.T) {
	// A rook jumping over its own pawn is not legal but ApplyMove does it.
	b := NewGame()
	if !b.ApplyMove(C(0, 0), C(0, 4)) {
		t.Fatal("ApplyMove refused an unvalidated move")
	}
	if !b.PieceAt(C(0, 4)).Is(Rook, White) {
		t.Error("rook not relocated")
	}
}

func TestApplyMoveClampsCoordinates(t *testing.T) {
	b := NewGame()
	// (-5, 1) clamps to a2.
	if !b.ApplyMove(C(-5, 1), C(0, 2)) {
		t.Fatal("clamped move refused")
	}
	if !b.PieceAt(C(0, 2)).Is(Pawn, White) {
		t.Error("a2 pawn not on a3")
	}
}

func TestApplyMoveRecordsCapture(t *testing.T) {
	b := mustFEN(t, "4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1")
	if !b.ApplyMove(C(4, 3), C(3, 4)) {
		t.Fatal("exd5 refused")
	}
	got := b.Captured(White)
	if len(got) != 1 || got[0] != "P" {
		t.Errorf("Captured(White) = %v, want [P]", got)
	}
	if !b.PieceAt(C(3, 4)).HasMoved() {
		t.Error("capturing pawn not marked moved")
	}
}

func TestTurnCycling(t *testing.T) {
	b := NewGame()
	if err := b.SetPlayers(3); err != nil {
		t.Fatal(err)
	}
	b.ApplyMove(C(4, 1), C(4, 2))
	b.ApplyMove(C(4, 6), C(4, 5))
	if b.Turn() != Grey {
		t.Fatalf("turn = %v, want Grey", b.Turn())
	}
	b.SetTurn(Grey)
	if b.ApplyMove(C(3, 1), C(3, 2)) {
		t.Error("Grey moved a White piece")
	}

	if err := b.SetPlayers(1); !errors.Is(err, ErrPlayers) {
		t.Errorf("SetPlayers(1) error = %v, want ErrPlayers", err)
	}
	if err := b.SetPlayers(MaxPlayers + 1); !errors.Is(err, ErrPlayers) {
		t.Errorf("SetPlayers(%d) error = %v, want ErrPlayers", MaxPlayers+1, err)
	}
}

func TestPlayErrors(t *testing.T) {
	tests := []struct {
		name    string
		from    Coord
		to      Coord
		wantErr error
	}{
		{"no piece", C(4, 3), C(4, 4), ErrNoPiece},
		{"wrong turn", C(4, 6), C(4, 4), ErrWrongTurn},
		{"illegal destination", C(4, 1), C(4, 4), ErrIllegalMove},
		{"off the board", C(4, 1), C(4, 9), ErrIllegalMove},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := NewGame()
			_, err := b.Play(tc.from, tc.to)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Play error = %v, want %v", err, tc.wantErr)
			}
			if b.Turn() != White {
				t.Error("failed Play advanced the turn")
			}
		})
	}
}

func TestMoveString(t *testing.T) {
	tests := []struct {
		m    Move
		want string
	}{
		{Move{Piece: NewPiece(Knight, White), To: C(4, 3), Captured: NoPiece}, "Ne4"},
		{Move{Piece: NewPiece(Knight, White), To: C(4, 3), Captured: NewPiece(Pawn, Black)}, "Nxe4"},
		{Move{Piece: NewPiece(King, White), Castle: 2, Captured: NoPiece}, "0-0"},
		{Move{Piece: NewPiece(King, Black), Castle: -2, Captured: NoPiece}, "0-0-0"},
	}
	for _, tc := range tests {
		if got := tc.m.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
	}
}

func TestParseMove(t *testing.T) {
	tests := []struct {
		name    string
		fen     string
		in      string
		from    string
		to      string
		wantErr bool
	}{
		{"coordinate", StartFEN, "e2e4", "e2", "e4", false},
		{"pawn push", StartFEN, "e4", "e2", "e4", false},
		{"knight", StartFEN, "Nf3", "g1", "f3", false},
		{"illegal coordinate", StartFEN, "e2e5", "", "", true},
		{"no such piece move", StartFEN, "Qd4", "", "", true},
		{"capture with file", "4k3/8/8/3p4/2P1P3/8/8/4K3 w - - 0 1", "exd5", "e4", "d5", false},
		{"ambiguous capture", "4k3/8/8/3p4/2P1P3/8/8/4K3 w - - 0 1", "xd5", "", "", true},
		{"rook disambiguation", "4k3/8/8/8/8/8/8/R3K2R w - - 0 1", "Rhf1", "h1", "f1", false},
		{"castle", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "0-0-0", "e1", "c1", false},
		{"castle not available", StartFEN, "O-O", "", "", true},
		{"check marker", "4k3/8/8/8/8/8/8/R3K3 w - - 0 1", "Ra8+", "a1", "a8", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := mustFEN(t, tc.fen)
			m, err := b.ParseMove(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseMove(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if tc.wantErr {
				return
			}
			if m.From != sq(t, tc.from) || m.To != sq(t, tc.to) {
				t.Errorf("ParseMove(%q) = %s, want %s%s", tc.in, m.UCI(), tc.from, tc.to)
			}
		})
	}
}
