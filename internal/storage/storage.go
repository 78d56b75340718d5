package storage

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Storage keys
const (
	keyPreferences = "preferences"
	keyStats       = "stats"
	keyFirstLaunch = "first_launch"
)

// MaterialSet selects the piece palette. The frontends bind 1-4 to them.
type MaterialSet int

const (
	MaterialClassic MaterialSet = iota
	MaterialMarble
	MaterialWood
	MaterialNeon
)

// MaterialSetCount is the number of material sets.
const MaterialSetCount = 4

// String returns the material set name.
func (m MaterialSet) String() string {
	switch m {
	case MaterialMarble:
		return "Marble"
	case MaterialWood:
		return "Wood"
	case MaterialNeon:
		return "Neon"
	default:
		return "Classic"
	}
}

// Valid reports whether m names a known set.
func (m MaterialSet) Valid() bool {
	return m >= 0 && m < MaterialSetCount
}

// ParseMaterialSet maps a set name (any case) to its MaterialSet. An empty
// name returns -1, which callers treat as "keep the stored set".
func ParseMaterialSet(name string) (MaterialSet, error) {
	if name == "" {
		return -1, nil
	}
	for m := MaterialSet(0); m < MaterialSetCount; m++ {
		if strings.EqualFold(m.String(), name) {
			return m, nil
		}
	}
	return -1, fmt.Errorf("unknown material set %q", name)
}

// Preferences stores user settings
type Preferences struct {
	MaterialSet   MaterialSet `json:"material_set"`
	Flipped       bool        `json:"flipped"`
	SoundEnabled  bool        `json:"sound_enabled"`
	StartPosition string      `json:"start_position,omitempty"`
	LastPlayed    time.Time   `json:"last_played"`
}

// DefaultPreferences returns default user preferences
func DefaultPreferences() *Preferences {
	return &Preferences{
		MaterialSet:  MaterialClassic,
		SoundEnabled: true,
		LastPlayed:   time.Now(),
	}
}

// Stats counts what happened on the board across sessions.
type Stats struct {
	Sessions      int           `json:"sessions"`
	Moves         int           `json:"moves"`
	Captures      int           `json:"captures"`
	Blocked       int           `json:"blocked"`
	TotalPlayTime time.Duration `json:"total_play_time"`
}

// SessionSummary is what one run contributes to Stats.
type SessionSummary struct {
	Moves    int
	Captures int
	Blocked  int
	Duration time.Duration
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db *badger.DB
}

// NewStorage opens the store in the platform data directory.
func NewStorage() (*Storage, error) {
	return NewStorageAt("")
}

// NewStorageAt opens the store under root (root/db). An empty root selects
// the platform data directory.
func NewStorageAt(root string) (*Storage, error) {
	dbDir, err := GetDatabaseDir(root)
	if err != nil {
		return nil, fmt.Errorf("database dir: %w", err)
	}

	opts := badger.DefaultOptions(dbDir)
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
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

// IsFirstLaunch returns true if this is the first launch
func (s *Storage) IsFirstLaunch() (bool, error) {
	firstLaunch := true

	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(keyFirstLaunch))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		firstLaunch = false
		return nil
	})

	return firstLaunch, err
}

// MarkFirstLaunchComplete marks that the first-launch hint was shown
func (s *Storage) MarkFirstLaunchComplete() error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyFirstLaunch), []byte("done"))
	})
}

// SavePreferences saves user preferences
func (s *Storage) SavePreferences(prefs *Preferences) error {
	prefs.LastPlayed = time.Now()
	return s.put(keyPreferences, prefs)
}

// LoadPreferences loads user preferences, returns defaults if not found
func (s *Storage) LoadPreferences() (*Preferences, error) {
	prefs := DefaultPreferences()
	if err := s.get(keyPreferences, prefs); err != nil {
		return prefs, err
	}
	if !prefs.MaterialSet.Valid() {
		prefs.MaterialSet = MaterialClassic
	}
	return prefs, nil
}

// SaveStats saves usage statistics
func (s *Storage) SaveStats(stats *Stats) error {
	return s.put(keyStats, stats)
}

// LoadStats loads usage statistics, returns empty stats if not found
func (s *Storage) LoadStats() (*Stats, error) {
	stats := &Stats{}
	err := s.get(keyStats, stats)
	return stats, err
}

// RecordSession adds one finished session to the statistics.
func (s *Storage) RecordSession(sum SessionSummary) error {
	stats, err := s.LoadStats()
	if err != nil {
		return err
	}

	stats.Sessions++
	stats.Moves += sum.Moves
	stats.Captures += sum.Captures
	stats.Blocked += sum.Blocked
	stats.TotalPlayTime += sum.Duration

	return s.SaveStats(stats)
}

func (s *Storage) put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// get decodes key into v, leaving v untouched when the key is missing.
func (s *Storage) get(key string, v any) error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, v)
		})
	})
}
