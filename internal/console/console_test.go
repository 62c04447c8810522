package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hailam/gridchess/internal/session"
	"github.com/hailam/gridchess/internal/storage"
)

func run(t *testing.T, c *Console, script string) string {
	t.Helper()
	var out bytes.Buffer
	if err := c.Run(strings.NewReader(script), &out); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return out.String()
}

func TestConsoleCommands(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   []string
		absent []string
	}{
		{
			name:   "legal moves of a pawn",
			script: "new\nlegal g2\n",
			want:   []string{"g2: g3 g4"},
		},
		{
			name:   "bare and explicit moves",
			script: "new\ne2e4\nmove e7 e5\nNf3\nhistory\n",
			want:   []string{"played Pe4 (e2e4)", "played Pe5 (e7e5)", "played Nf3 (g1f3)", "Pe4\nPe5\nNf3\n"},
		},
		{
			name:   "illegal move",
			script: "new\ne2e5\n",
			want:   []string{"error: illegal move"},
		},
		{
			name:   "wrong turn",
			script: "new\nmove e7 e5\n",
			want:   []string{"error: not the mover's turn"},
		},
		{
			name:   "no game",
			script: "d\n",
			want:   []string{"error: no such game"},
		},
		{
			name:   "display",
			script: "new\nd\n",
			want:   []string{"Side to move: White", "Fen: rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", "Key: "},
		},
		{
			name:   "castling",
			script: "position fen r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1\ncastle e1 +2\nd\n",
			want:   []string{"played 0-0 (e1g1)", "Fen: r3k2r/8/8/8/8/8/8/R4RK1 b kq - 0 1"},
		},
		{
			name:   "position with moves",
			script: "position startpos moves e2e4 e7e5\nchecks\n",
			want:   []string{"game 0", "check: -", "checkmate: -"},
		},
		{
			name:   "mate and captures",
			script: "new\ne2e4\ne7e5\nf1c4\nb8c6\nd1h5\ng8f6\nh5f7\ncaptures\nchecks\nhistory\na7a6\n",
			want: []string{
				"played Qxf7 (h5f7) mate",
				"White: P (score 1)",
				"checkmate: Black",
				"The color: b got checkmated.",
				"error: game is finished",
			},
		},
		{
			name:   "perft",
			script: "new\nperft 2\n",
			want:   []string{"Nodes: 400"},
		},
		{
			name:   "divide",
			script: "new\ndivide 2\nperft 2\n",
			want:   []string{"a2a3: 20", "g1h3: 20", "Nodes: 400"},
		},
		{
			name:   "games and select",
			script: "new\nshuffle 3\nselect 0\ngames\nend 1\ngames\n",
			want:   []string{"game 1", "shuffle", "* 0", "ended game 1"},
		},
		{
			name:   "quit stops reading",
			script: "new\nquit\nd\n",
			absent: []string{"Side to move"},
		},
		{
			name:   "bad input",
			script: "new\nlegal z\nselect x\ncastle e1 3\nfoo bar baz\n",
			want:   []string{"invalid square", "invalid game number", "castling direction", "unknown command"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := New(session.NewRegistry(nil), nil)
			out := run(t, c, tc.script)
			for _, w := range tc.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
			for _, a := range tc.absent {
				if strings.Contains(out, a) {
					t.Errorf("output unexpectedly contains %q:\n%s", a, out)
				}
			}
		})
	}
}

func TestConsoleSavedGames(t *testing.T) {
	store, err := storage.OpenInMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	c := New(session.NewRegistry(store), store)
	out := run(t, c, "new\ne2e4\ngames\n")
	if !strings.Contains(out, "saved:") || !strings.Contains(out, "1 moves *") {
		t.Errorf("saved games not listed:\n%s", out)
	}

	recs, _ := store.ListGames()
	if len(recs) != 1 {
		t.Fatalf("saved %d games, want 1", len(recs))
	}

	// A second console with a fresh registry resumes the game.
	c2 := New(session.NewRegistry(store), store)
	out = run(t, c2, "resume "+recs[0].ID.String()+"\nd\nresume nope\n")
	if !strings.Contains(out, "Side to move: Black") {
		t.Errorf("resumed game not shown:\n%s", out)
	}
	if !strings.Contains(out, "invalid game id") {
		t.Errorf("bad id not rejected:\n%s", out)
	}
}
