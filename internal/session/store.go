package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/hailam/gridchess/internal/board"
)

// GameRecord is the persisted form of a game.
type GameRecord struct {
	ID       uuid.UUID     `json:"id"`
	Mode     Mode          `json:"mode"`
	StartFEN string        `json:"start_fen"`
	Unmoved  []board.Coord `json:"unmoved"` // pieces unmoved at StartFEN, which FEN cannot always express
	Steps    []string      `json:"steps"`   // coordinate moves, replayed by Resume
	History  []string      `json:"history"` // notation as shown to players
	Result   string        `json:"result"`  // "1-0", "0-1" or empty while unfinished
	Created  time.Time     `json:"created"`
	Updated  time.Time     `json:"updated"`
}

// Result describes how a game left the registry.
type Result struct {
	ID       uuid.UUID
	Winner   board.Color // NoColor for a game abandoned before mate
	Moves    int
	Duration time.Duration
}

// Store persists games and results. A nil Store disables persistence.
type Store interface {
	SaveGame(rec GameRecord) error
	LoadGame(id uuid.UUID) (GameRecord, error)
	RecordResult(res Result) error
}
