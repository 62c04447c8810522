package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hailam/gridchess/internal/board"
	"github.com/hailam/gridchess/internal/session"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(m Model, keys ...string) Model {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(Model)
	}
	return m
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(Model)
	}
	return m
}

func TestNewModelOpensGame(t *testing.T) {
	reg := session.NewRegistry(nil)
	m := NewModel(reg, nil)
	if reg.Count() != 1 {
		t.Fatalf("Count = %d, want 1", reg.Count())
	}
	if m.cursor != board.C(4, 1) {
		t.Errorf("cursor = %v, want e2", m.cursor)
	}
}

func TestSelectAndPlay(t *testing.T) {
	reg := session.NewRegistry(nil)
	m := NewModel(reg, nil)

	m = send(m, "enter")
	if m.selected == nil || *m.selected != board.C(4, 1) {
		t.Fatalf("selected = %v, want e2", m.selected)
	}
	if len(m.targets) != 2 {
		t.Fatalf("targets = %v, want e3 e4", m.targets)
	}

	m = send(m, "up", "up", "enter")
	if m.selected != nil {
		t.Error("selection kept after playing")
	}
	g, _ := reg.Current()
	if !g.Board.PieceAt(board.C(4, 3)).Is(board.Pawn, board.White) {
		t.Error("pawn did not reach e4")
	}
	if g.Board.Turn() != board.Black {
		t.Errorf("Turn = %v, want Black", g.Board.Turn())
	}
	if last := m.logLines[len(m.logLines)-1]; last != "Pe4 (e2e4)" {
		t.Errorf("last log line = %q", last)
	}
}

func TestSelectingOpponentPieceClears(t *testing.T) {
	m := NewModel(session.NewRegistry(nil), nil)
	m = send(m, "enter")
	for i := 0; i < 5; i++ {
		m = send(m, "up")
	}
	m = send(m, "enter")
	if m.selected != nil {
		t.Errorf("selected black piece on white's turn: %v", *m.selected)
	}
}

func TestCursorStaysOnBoard(t *testing.T) {
	m := NewModel(session.NewRegistry(nil), nil)
	for i := 0; i < 12; i++ {
		m = send(m, "down", "h")
	}
	if m.cursor != board.C(0, 0) {
		t.Errorf("cursor = %v, want a1", m.cursor)
	}
}

func TestFlipReversesCursorKeys(t *testing.T) {
	m := NewModel(session.NewRegistry(nil), nil)
	m = send(m, "f", "up")
	if !m.flipped {
		t.Fatal("board not flipped")
	}
	if m.cursor != board.C(4, 0) {
		t.Errorf("cursor = %v, want e1", m.cursor)
	}
}

func TestCommandInput(t *testing.T) {
	reg := session.NewRegistry(nil)
	m := NewModel(reg, nil)

	m = send(m, "i")
	if m.m != modeInput {
		t.Fatal("i did not open the input")
	}
	m = typeText(m, "Nf3")
	m = send(m, "enter")
	if m.m != modeNormal {
		t.Error("input still open after enter")
	}
	if !strings.Contains(strings.Join(m.logLines, "\n"), "played Nf3 (g1f3)") {
		t.Errorf("log missing move reply:\n%s", strings.Join(m.logLines, "\n"))
	}

	m = send(m, "i")
	m = typeText(m, "quit")
	_, cmd := m.Update(key("enter"))
	if cmd == nil {
		t.Error("quit did not return a command")
	}
}

func TestNewGameKeys(t *testing.T) {
	reg := session.NewRegistry(nil)
	reg.SetSeed(7)
	m := NewModel(reg, nil)
	m = send(m, "n", "s")
	if reg.Count() != 3 {
		t.Fatalf("Count = %d, want 3", reg.Count())
	}
	g, _ := reg.Current()
	if g.Mode != session.Shuffle {
		t.Errorf("Mode = %v, want shuffle", g.Mode)
	}
	send(m, "tab")
	if reg.CurrentIndex() != 0 {
		t.Errorf("CurrentIndex = %d after tab, want 0", reg.CurrentIndex())
	}
}

func TestQuitKey(t *testing.T) {
	m := NewModel(session.NewRegistry(nil), nil)
	if _, cmd := m.Update(key("q")); cmd == nil {
		t.Error("q did not return a command")
	}
}

func TestRenderBoard(t *testing.T) {
	b := board.NewGame()
	out := RenderBoard(b, boardView{cursor: board.C(0, 0)})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 9 {
		t.Fatalf("got %d lines, want 9", len(lines))
	}
	if !strings.HasPrefix(lines[0], "8") || !strings.Contains(lines[0], "r") {
		t.Errorf("top rank = %q", lines[0])
	}
	if !strings.Contains(lines[8], "a") || !strings.Contains(lines[8], "h") {
		t.Errorf("file labels = %q", lines[8])
	}

	flipped := RenderBoard(b, boardView{flipped: true})
	if !strings.HasPrefix(flipped, "1") {
		t.Errorf("flipped board should start at rank 1: %q", flipped[:10])
	}
}

func TestViewShowsStatus(t *testing.T) {
	reg := session.NewRegistry(nil)
	if _, err := reg.NewGameFromFEN("4k3/8/8/8/8/8/8/4K2R b - - 0 1"); err != nil {
		t.Fatal(err)
	}
	m := NewModel(reg, nil)
	if v := m.View(); !strings.Contains(v, "Black to move") || !strings.Contains(v, "game 1/1") {
		t.Errorf("View header wrong:\n%s", v)
	}

	if _, err := reg.NewGameFromFEN("4k3/8/8/8/8/8/8/4R2K b - - 0 1"); err != nil {
		t.Fatal(err)
	}
	if v := m.View(); !strings.Contains(v, "(check)") {
		t.Errorf("check not shown:\n%s", v)
	}
}

func TestInitAndResize(t *testing.T) {
	m := NewModel(session.NewRegistry(nil), nil)
	if cmd := m.Init(); cmd != nil {
		t.Error("Init returned a command")
	}

	next, cmd := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	if cmd != nil {
		t.Error("resize returned a command")
	}
	m = next.(Model)
	if m.width != 120 || m.height != 40 {
		t.Errorf("size = %dx%d, want 120x40", m.width, m.height)
	}
	if m.input.Width != 80 {
		t.Errorf("input width = %d, want 80", m.input.Width)
	}

	next, _ = m.Update(tea.WindowSizeMsg{Width: 20, Height: 10})
	if got := next.(Model).input.Width; got != 30 {
		t.Errorf("input width on a narrow window = %d, want 30", got)
	}
}
