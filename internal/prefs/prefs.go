// Package prefs persists the two user preferences that drive video sorting,
// the preferred server and the preferred quality, in a SQLite database.
package prefs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/samber/lo"
	_ "modernc.org/sqlite"
)

const (
	KeyServer  = "preferred_server"
	KeyQuality = "preferred_quality"

	DefaultServer  = "Voe"
	DefaultQuality = "1080"
)

// ServerList is the server choice list in display order. BurstCloud appears
// twice, as on the site's own settings screen.
var ServerList = []string{
	"YourUpload", "BurstCloud", "Voe", "Mp4Upload", "Doodstream",
	"Upload", "BurstCloud", "Upstream", "StreamTape", "Amazon",
	"Fastream", "Filemoon", "StreamWish", "Okru", "Streamlare",
	"VidGuard",
}

// QualityList holds the selectable quality tokens.
var QualityList = []string{"1080", "720", "480", "360"}

// InvalidValueError is returned when a value is outside a key's closed set.
type InvalidValueError struct {
	Key   string
	Value string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value %q for %s (valid: %v)", e.Value, e.Key, Options(e.Key))
}

// ErrUnknownKey is returned for keys other than KeyServer and KeyQuality.
var ErrUnknownKey = errors.New("unknown preference key")

// Options returns the legal, de-duplicated values for key in display order.
func Options(key string) []string {
	switch key {
	case KeyServer:
		return lo.Uniq(ServerList)
	case KeyQuality:
		return slices.Clone(QualityList)
	default:
		return nil
	}
}

func defaultFor(key string) string {
	switch key {
	case KeyServer:
		return DefaultServer
	case KeyQuality:
		return DefaultQuality
	default:
		return ""
	}
}

// Store is a SQLite-backed preference store.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the preference database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating prefs dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening prefs db: %w", err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	const schema = `CREATE TABLE IF NOT EXISTS preferences (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating prefs schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the stored value for key, or its default when unset.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if Options(key) == nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}

	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM preferences WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return defaultFor(key), nil
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", key, err)
	}
	return value, nil
}

// Set validates value against the key's closed set and stores it.
func (s *Store) Set(ctx context.Context, key, value string) error {
	options := Options(key)
	if options == nil {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	if !slices.Contains(options, value) {
		return &InvalidValueError{Key: key, Value: value}
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO preferences (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value)
	if err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

// Preferred returns the preferred server label and quality token.
func (s *Store) Preferred(ctx context.Context) (server, quality string, err error) {
	server, err = s.Get(ctx, KeyServer)
	if err != nil {
		return "", "", err
	}
	quality, err = s.Get(ctx, KeyQuality)
	if err != nil {
		return "", "", err
	}
	return server, quality, nil
}
