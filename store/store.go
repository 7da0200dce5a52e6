package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Entry is one persisted collection: a namespaced key holding a JSON-encoded
// array or object, stamped with the schema version it was written at.
type Entry struct {
	Key     string `gorm:"primaryKey"`
	Version int    `gorm:"not null;default:1"`
	Value   string `gorm:"type:text"`
}

// TableName specifies the table name for the Entry model.
func (Entry) TableName() string {
	return "store_entries"
}

// MigrateFunc upgrades a persisted value from an older schema version to the
// current one. It receives the stored version and raw JSON and returns the
// upgraded JSON.
type MigrateFunc func(fromVersion int, raw []byte) ([]byte, error)

// Store wraps the database in key-value semantics: each caller owns one key
// and reads/writes the whole value at once. A single mutex serializes all
// read-modify-write cycles; the store is assumed single-writer and collections
// are small, so last-writer-wins is accepted.
type Store struct {
	db         *gorm.DB
	mu         sync.Mutex
	migrations map[string]MigrateFunc
}

// New creates a Store and ensures its backing table exists.
func New(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&Entry{}); err != nil {
		log.Printf("ERROR: [Store] Failed to migrate store table: %v", err)
		return nil, fmt.Errorf("failed to migrate store table: %w", err)
	}
	return &Store{
		db:         db,
		migrations: make(map[string]MigrateFunc),
	}, nil
}

// RegisterMigration installs an upgrade step for a key. Without one, a stored
// version that does not match the current version is reseeded from defaults.
func (s *Store) RegisterMigration(key string, fn MigrateFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.migrations[key] = fn
}

// Load reads the value stored under key into dest. If the key is absent the
// supplied default is persisted and returned. A decode failure or an
// unmigratable version mismatch also falls back to the default; these are
// logged but never surfaced to the caller.
func (s *Store) Load(key string, version int, defaultValue interface{}, dest interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var entry Entry
	err := s.db.First(&entry, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("INFO: [Store] Key '%s' not found, seeding default value (version %d).", key, version)
			return s.reseed(key, version, defaultValue, dest)
		}
		log.Printf("ERROR: [Store] Failed to read key '%s': %v", key, err)
		return fmt.Errorf("failed to read key '%s': %w", key, err)
	}

	raw := []byte(entry.Value)
	if entry.Version != version {
		fn, ok := s.migrations[key]
		if !ok {
			log.Printf("WARN: [Store] Key '%s' stored at version %d, current is %d, and no migration is registered. Reseeding defaults.", key, entry.Version, version)
			return s.reseed(key, version, defaultValue, dest)
		}
		upgraded, migErr := fn(entry.Version, raw)
		if migErr != nil {
			log.Printf("WARN: [Store] Migration of key '%s' from version %d failed: %v. Reseeding defaults.", key, entry.Version, migErr)
			return s.reseed(key, version, defaultValue, dest)
		}
		if err := s.write(key, version, upgraded); err != nil {
			return err
		}
		raw = upgraded
		log.Printf("INFO: [Store] Migrated key '%s' from version %d to %d.", key, entry.Version, version)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		log.Printf("WARN: [Store] Failed to decode key '%s': %v. Reseeding defaults.", key, err)
		return s.reseed(key, version, defaultValue, dest)
	}
	return nil
}

// Save serializes value and writes it under key, replacing any previous value.
func (s *Store) Save(key string, version int, value interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(value)
	if err != nil {
		log.Printf("ERROR: [Store] Failed to encode value for key '%s': %v", key, err)
		return fmt.Errorf("failed to encode value for key '%s': %w", key, err)
	}
	return s.write(key, version, raw)
}

// reseed persists the default value and decodes it into dest. Must be called
// with the mutex held.
func (s *Store) reseed(key string, version int, defaultValue interface{}, dest interface{}) error {
	raw, err := json.Marshal(defaultValue)
	if err != nil {
		log.Printf("ERROR: [Store] Failed to encode default value for key '%s': %v", key, err)
		return fmt.Errorf("failed to encode default value for key '%s': %w", key, err)
	}
	if err := s.write(key, version, raw); err != nil {
		return err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("failed to decode default value for key '%s': %w", key, err)
	}
	return nil
}

// write upserts the raw JSON under key. Must be called with the mutex held.
func (s *Store) write(key string, version int, raw []byte) error {
	entry := Entry{Key: key, Version: version, Value: string(raw)}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"version", "value"}),
	}).Create(&entry).Error
	if err != nil {
		log.Printf("ERROR: [Store] Failed to write key '%s': %v", key, err)
		return fmt.Errorf("failed to write key '%s': %w", key, err)
	}
	return nil
}
