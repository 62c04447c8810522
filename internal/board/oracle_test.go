package board

import (
	"testing"

	"github.com/dylhunn/dragontoothmg"
)

// Positions here avoid the rules this engine leaves out (en passant,
// promotion, kings standing next to each other), so a complete move
// generator must agree with it square for square.
func TestLegalMovesAgreeWithDragontooth(t *testing.T) {
	fens := []string{
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1",
		"r1bqkbnr/pppp1ppp/2n5/1B2p3/4P3/5N2/PPPP1PPP/RNBQK2R b - - 3 3",
		"4k3/4r3/8/8/8/8/4B3/4K3 w - - 0 1",
		"4k3/8/8/8/8/5n2/8/R3K3 w - - 0 1",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w - - 0 1",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	}
	for _, fen := range fens {
		t.Run(fen, func(t *testing.T) {
			b := mustFEN(t, fen)
			got := map[[2]uint8]bool{}
			for _, m := range b.GenerateLegalMoves() {
				got[[2]uint8{index(m.From), index(m.To)}] = true
			}

			ref := dragontoothmg.ParseFen(fen)
			want := map[[2]uint8]bool{}
			for _, m := range ref.GenerateLegalMoves() {
				want[[2]uint8{m.From(), m.To()}] = true
			}

			for k := range want {
				if !got[k] {
					t.Errorf("missing %s%s", square(k[0]), square(k[1]))
				}
			}
			for k := range got {
				if !want[k] {
					t.Errorf("extra %s%s", square(k[0]), square(k[1]))
				}
			}
		})
	}
}

func index(c Coord) uint8 {
	return uint8(c.Y*8 + c.X)
}

func square(i uint8) string {
	return C(int(i%8), int(i/8)).String()
}
