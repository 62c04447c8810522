// Package session keeps the set of open games, the move history shown to
// players and the hand-off to persistent storage.
package session

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/hailam/gridchess/internal/board"
)

var (
	ErrNoGame       = errors.New("no such game")
	ErrGameFinished = errors.New("game is finished")
)

// Mode selects the starting layout of a new game.
type Mode int

const (
	Standard Mode = iota
	Shuffle
)

func (m Mode) String() string {
	if m == Shuffle {
		return "shuffle"
	}
	return "standard"
}

// Game is one board plus the bookkeeping needed to save and resume it.
type Game struct {
	ID       uuid.UUID
	Mode     Mode
	Board    *board.Board
	StartFEN string
	Created  time.Time

	unmoved []board.Coord // pieces unmoved at the start
	moves   []board.Move
	history []string
}

func newGame(mode Mode, b *board.Board) *Game {
	return &Game{
		ID:       uuid.New(),
		Mode:     mode,
		Board:    b,
		StartFEN: b.FEN(),
		Created:  time.Now(),
		unmoved:  b.UnmovedSquares(),
	}
}

// record appends a played move to the game and its history. A mating move
// also adds a line naming the mated color and ends the board.
func (g *Game) record(m board.Move) {
	g.moves = append(g.moves, m)
	g.history = append(g.history, m.String())
	if m.Mate {
		g.history = append(g.history, mateLine(m.Piece.Color.Other()))
		g.Board.EndGame()
	}
}

func mateLine(mated board.Color) string {
	return fmt.Sprintf("The color: %s got checkmated.", mated.Letter())
}

// Moves returns the moves played so far.
func (g *Game) Moves() []board.Move {
	out := make([]board.Move, len(g.moves))
	copy(out, g.moves)
	return out
}

// Winner returns the color that delivered mate, or NoColor.
func (g *Game) Winner() board.Color {
	if !g.Board.Finished() {
		return board.NoColor
	}
	for _, c := range []board.Color{board.White, board.Black} {
		if g.Board.InCheckmate(c) {
			return c.Other()
		}
	}
	return board.NoColor
}

// Record captures the game in its persisted form.
func (g *Game) Record() GameRecord {
	rec := GameRecord{
		ID:       g.ID,
		Mode:     g.Mode,
		StartFEN: g.StartFEN,
		Unmoved:  g.unmoved,
		Created:  g.Created,
		Updated:  time.Now(),
		Steps:    make([]string, len(g.moves)),
		History:  make([]string, len(g.moves)),
	}
	for i, m := range g.moves {
		rec.Steps[i] = m.UCI()
		rec.History[i] = m.String()
	}
	switch g.Winner() {
	case board.White:
		rec.Result = "1-0"
	case board.Black:
		rec.Result = "0-1"
	}
	return rec
}

// replay rebuilds a game from a saved record. Records written before the
// unmoved set was stored fall back to the flags FEN implies.
func replay(rec GameRecord, strictCastling bool) (*Game, error) {
	b, err := board.ParseFEN(rec.StartFEN)
	if err != nil {
		return nil, fmt.Errorf("resume %s: %w", rec.ID, err)
	}
	if rec.Unmoved != nil {
		b.SetUnmoved(rec.Unmoved)
	} else {
		log.Printf("[STORAGE] game %s has no unmoved set, using FEN castling rights", rec.ID)
	}
	b.SetStrictCastling(strictCastling)
	g := &Game{
		ID:       rec.ID,
		Mode:     rec.Mode,
		Board:    b,
		StartFEN: rec.StartFEN,
		Created:  rec.Created,
		unmoved:  b.UnmovedSquares(),
	}
	for i, step := range rec.Steps {
		m, err := b.ParseMove(step)
		if err != nil {
			return nil, fmt.Errorf("resume %s: step %d (%s): %w", rec.ID, i+1, step, err)
		}
		played, err := b.Play(m.From, m.To)
		if err != nil {
			return nil, fmt.Errorf("resume %s: step %d (%s): %w", rec.ID, i+1, step, err)
		}
		g.record(played)
	}
	return g, nil
}
