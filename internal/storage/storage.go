package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/hailam/gridchess/internal/board"
	"github.com/hailam/gridchess/internal/session"
)

// Storage keys
const (
	keyPreferences = "preferences"
	keyStats       = "stats"
	prefixGame     = "game/"
)

// ErrGameNotFound is returned by LoadGame for an unknown id.
var ErrGameNotFound = errors.New("game not found")

// UserPreferences stores user settings
type UserPreferences struct {
	Username         string    `json:"username"`
	ShuffleByDefault bool      `json:"shuffle_by_default"`
	FlipBoard        bool      `json:"flip_board"`
	StrictCastling   bool      `json:"strict_castling"`
	LastPlayed       time.Time `json:"last_played"`
}

// DefaultPreferences returns default user preferences
func DefaultPreferences() *UserPreferences {
	return &UserPreferences{
		Username:   "Player",
		LastPlayed: time.Now(),
	}
}

// GameStats stores game statistics
type GameStats struct {
	GamesPlayed   int            `json:"games_played"`
	Wins          map[string]int `json:"wins"` // keyed by color name
	Unfinished    int            `json:"unfinished"`
	TotalMoves    int            `json:"total_moves"`
	TotalPlayTime time.Duration  `json:"total_play_time"`
	LongestGame   int            `json:"longest_game"`
}

// NewGameStats returns empty game statistics
func NewGameStats() *GameStats {
	return &GameStats{Wins: make(map[string]int)}
}

// AverageMoves returns the mean number of moves per recorded game.
func (s *GameStats) AverageMoves() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(s.TotalMoves) / float64(s.GamesPlayed)
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db *badger.DB
}

var _ session.Store = (*Storage)(nil)

// NewStorage opens the database in the default data directory.
func NewStorage() (*Storage, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dbDir)
}

// Open opens (or creates) a database in dir.
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", dir, err)
	}

	return &Storage{db: db}, nil
}

// OpenInMemory opens a database that lives only as long as the process.
func OpenInMemory() (*Storage, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open in-memory database: %w", err)
	}

	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SavePreferences saves user preferences
func (s *Storage) SavePreferences(prefs *UserPreferences) error {
	prefs.LastPlayed = time.Now()
	return s.put([]byte(keyPreferences), prefs)
}

// LoadPreferences loads user preferences, returns defaults if not found
func (s *Storage) LoadPreferences() (*UserPreferences, error) {
	prefs := DefaultPreferences()
	_, err := s.get([]byte(keyPreferences), prefs)
	return prefs, err
}

// SaveStats saves game statistics
func (s *Storage) SaveStats(stats *GameStats) error {
	return s.put([]byte(keyStats), stats)
}

// LoadStats loads game statistics, returns empty stats if not found
func (s *Storage) LoadStats() (*GameStats, error) {
	stats := NewGameStats()
	if _, err := s.get([]byte(keyStats), stats); err != nil {
		return stats, err
	}
	if stats.Wins == nil {
		stats.Wins = make(map[string]int)
	}
	return stats, nil
}

// RecordResult records a completed or abandoned game and updates statistics.
func (s *Storage) RecordResult(res session.Result) error {
	stats, err := s.LoadStats()
	if err != nil {
		return err
	}

	stats.GamesPlayed++
	stats.TotalMoves += res.Moves
	stats.TotalPlayTime += res.Duration
	if res.Moves > stats.LongestGame {
		stats.LongestGame = res.Moves
	}

	if res.Winner == board.NoColor {
		stats.Unfinished++
	} else {
		stats.Wins[res.Winner.String()]++
	}

	return s.SaveStats(stats)
}

// SaveGame stores a game record under game/<id>.
func (s *Storage) SaveGame(rec session.GameRecord) error {
	return s.put(gameKey(rec.ID), rec)
}

// LoadGame loads the game record with the given id.
func (s *Storage) LoadGame(id uuid.UUID) (session.GameRecord, error) {
	var rec session.GameRecord
	found, err := s.get(gameKey(id), &rec)
	if err != nil {
		return rec, err
	}
	if !found {
		return rec, fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	return rec, nil
}

// DeleteGame removes a saved game.
func (s *Storage) DeleteGame(id uuid.UUID) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(gameKey(id))
	})
}

// ListGames returns every saved game, most recently updated first.
func (s *Storage) ListGames() ([]session.GameRecord, error) {
	var games []session.GameRecord

	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(prefixGame)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var rec session.GameRecord
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			})
			if err != nil {
				return err
			}
			games = append(games, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(games, func(i, j int) bool {
		return games[i].Updated.After(games[j].Updated)
	})
	return games, nil
}

func gameKey(id uuid.UUID) []byte {
	return []byte(prefixGame + id.String())
}

func (s *Storage) put(key []byte, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
}

// get decodes the value under key into v. A missing key leaves v untouched
// and reports found = false.
func (s *Storage) get(key []byte, v any) (found bool, err error) {
	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return nil // Use defaults
		}
		if err != nil {
			return err
		}
		found = true

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, v)
		})
	})
	return found, err
}
