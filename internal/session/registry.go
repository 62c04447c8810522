package session

import (
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/hailam/gridchess/internal/board"
)

// Registry owns every open game and tracks which one is current. Moves go
// to the current game, and History shows the lines of the current game
// only.
type Registry struct {
	mu sync.Mutex

	games   []*Game
	byID    map[uuid.UUID]*Game
	current int // -1 when no game is open

	store Store

	strictCastling bool
	rng            *rand.Rand
}

// NewRegistry creates an empty registry. store may be nil.
func NewRegistry(store Store) *Registry {
	return &Registry{
		byID:    make(map[uuid.UUID]*Game),
		current: -1,
		store:   store,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SetSeed makes the layouts of subsequent shuffle games reproducible.
func (r *Registry) SetSeed(seed int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rng = rand.New(rand.NewSource(seed))
}

// SetStrictCastling applies to games created or resumed afterwards.
func (r *Registry) SetStrictCastling(on bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.strictCastling = on
}

// NewGame opens a game in the given mode, makes it current and returns its
// index.
func (r *Registry) NewGame(mode Mode) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b := board.New()
	b.SetStrictCastling(r.strictCastling)

	var err error
	if mode == Shuffle {
		b.SetRand(rand.New(rand.NewSource(r.rng.Int63())))
		err = b.AddShuffledPieces()
	} else {
		err = b.AddPieces()
	}
	if err != nil {
		return -1, fmt.Errorf("new %s game: %w", mode, err)
	}

	return r.add(newGame(mode, b)), nil
}

// NewGameFromFEN opens a game from a FEN position and makes it current.
func (r *Registry) NewGameFromFEN(fen string) (int, error) {
	b, err := board.ParseFEN(fen)
	if err != nil {
		return -1, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	b.SetStrictCastling(r.strictCastling)
	return r.add(newGame(Standard, b)), nil
}

func (r *Registry) add(g *Game) int {
	r.games = append(r.games, g)
	r.byID[g.ID] = g
	r.current = len(r.games) - 1
	r.save(g)
	return r.current
}

// Get returns the game at index i.
func (r *Registry) Get(i int) (*Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i < 0 || i >= len(r.games) {
		return nil, fmt.Errorf("%w: index %d", ErrNoGame, i)
	}
	return r.games[i], nil
}

// SetCurrent selects the current game. Out-of-range indices are clamped to
// the open games; it returns the index actually selected, or -1 when no
// game is open.
func (r *Registry) SetCurrent(i int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.games) == 0 {
		r.current = -1
		return -1
	}
	r.current = board.Clamp(i, 0, len(r.games)-1)
	return r.current
}

// Current returns the current game.
func (r *Registry) Current() (*Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.currentLocked()
}

func (r *Registry) currentLocked() (*Game, error) {
	if r.current < 0 {
		return nil, ErrNoGame
	}
	return r.games[r.current], nil
}

// CurrentIndex returns the index of the current game, or -1.
func (r *Registry) CurrentIndex() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// End closes the game at index i. A game closed before checkmate is
// recorded as unfinished.
func (r *Registry) End(i int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i < 0 || i >= len(r.games) {
		return fmt.Errorf("%w: index %d", ErrNoGame, i)
	}

	g := r.games[i]
	if !g.Board.Finished() {
		r.save(g)
		r.recordResult(g, board.NoColor)
	}

	r.games = slices.Delete(r.games, i, i+1)
	delete(r.byID, g.ID)
	switch {
	case r.current == i:
		r.current = -1
	case r.current > i:
		r.current--
	}
	return nil
}

// Count returns the number of open games.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.games)
}

// Games returns the open games in index order.
func (r *Registry) Games() []*Game {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.games)
}

// IDs returns the ids of the open games, sorted.
func (r *Registry) IDs() []string {
	r.mu.Lock()
	keys := maps.Keys(r.byID)
	r.mu.Unlock()

	ids := make([]string, len(keys))
	for i, id := range keys {
		ids[i] = id.String()
	}
	slices.Sort(ids)
	return ids
}

// Move plays from-to on the current game. On checkmate the game is ended,
// its result recorded and a line naming the mated color added to the
// history.
func (r *Registry) Move(from, to board.Coord) (board.Move, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, err := r.currentLocked()
	if err != nil {
		return board.Move{}, err
	}
	return r.play(g, from, to)
}

// MoveString parses s against the current game and plays it.
func (r *Registry) MoveString(s string) (board.Move, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, err := r.currentLocked()
	if err != nil {
		return board.Move{}, err
	}
	if g.Board.Finished() {
		return board.Move{}, ErrGameFinished
	}
	m, err := g.Board.ParseMove(s)
	if err != nil {
		return board.Move{}, err
	}
	return r.play(g, m.From, m.To)
}

func (r *Registry) play(g *Game, from, to board.Coord) (board.Move, error) {
	if g.Board.Finished() {
		return board.Move{}, ErrGameFinished
	}

	m, err := g.Board.Play(from, to)
	if err != nil {
		return board.Move{}, err
	}
	g.record(m)

	if m.Mate {
		log.Printf("[MOVE] %s", mateLine(m.Piece.Color.Other()))
		r.recordResult(g, m.Piece.Color)
	}

	r.save(g)
	return m, nil
}

// History returns the history lines of the current game, or nil when no
// game is open.
func (r *Registry) History() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, err := r.currentLocked()
	if err != nil {
		return nil
	}
	return slices.Clone(g.history)
}

// ResetHistory clears the history lines of the current game. Its moves are
// kept.
func (r *Registry) ResetHistory() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if g, err := r.currentLocked(); err == nil {
		g.history = g.history[:0]
	}
}

// Resume makes the game with the given id current, loading it from the
// store and replaying its moves if it is not already open.
func (r *Registry) Resume(id uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if g, ok := r.byID[id]; ok {
		r.current = slices.Index(r.games, g)
		return r.current, nil
	}
	if r.store == nil {
		return -1, fmt.Errorf("%w: %s", ErrNoGame, id)
	}

	rec, err := r.store.LoadGame(id)
	if err != nil {
		return -1, err
	}
	g, err := replay(rec, r.strictCastling)
	if err != nil {
		return -1, err
	}

	r.games = append(r.games, g)
	r.byID[g.ID] = g
	r.current = len(r.games) - 1
	return r.current, nil
}

func (r *Registry) save(g *Game) {
	if r.store == nil {
		return
	}
	if err := r.store.SaveGame(g.Record()); err != nil {
		log.Printf("[STORAGE] save game %s: %v", g.ID, err)
	}
}

func (r *Registry) recordResult(g *Game, winner board.Color) {
	if r.store == nil {
		return
	}
	res := Result{
		ID:       g.ID,
		Winner:   winner,
		Moves:    len(g.moves),
		Duration: time.Since(g.Created),
	}
	if err := r.store.RecordResult(res); err != nil {
		log.Printf("[STORAGE] record result %s: %v", g.ID, err)
	}
}
