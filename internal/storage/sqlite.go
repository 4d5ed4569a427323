// ABOUTME: SQLite storage implementation using modernc.org/sqlite (pure Go)
// ABOUTME: Provides channel and entry persistence with transactional unread recomputes

package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/harper/currents/internal/models"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements the Store interface using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite storage instance.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	store := &SQLiteStore{db: db}

	// Initialize schema
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates the database tables if they don't exist.
func (s *SQLiteStore) initSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS channels (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT UNIQUE NOT NULL,
			link TEXT UNIQUE NOT NULL,
			unread INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_channels_id ON channels(id);
		CREATE INDEX IF NOT EXISTS idx_channels_link ON channels(link);

		CREATE TABLE IF NOT EXISTS entries (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT UNIQUE NOT NULL,
			channel_id TEXT NOT NULL REFERENCES channels(id) ON DELETE CASCADE,
			external_id TEXT NOT NULL,
			title TEXT NOT NULL,
			link TEXT NOT NULL,
			published_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL,
			read INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL,
			UNIQUE(channel_id, external_id)
		);

		CREATE INDEX IF NOT EXISTS idx_entries_channel_id ON entries(channel_id);
		CREATE INDEX IF NOT EXISTS idx_entries_read ON entries(read);
		CREATE INDEX IF NOT EXISTS idx_entries_published_at ON entries(published_at);
		CREATE INDEX IF NOT EXISTS idx_entries_id ON entries(id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Channel Operations

// CreateChannel stores a new channel.
func (s *SQLiteStore) CreateChannel(ch *models.Channel) error {
	query := `
		INSERT INTO channels (id, link, unread, created_at)
		VALUES (?, ?, ?, ?)
	`
	_, err := s.db.Exec(query, ch.ID, ch.Link, ch.Unread, ch.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert channel: %w", err)
	}
	return nil
}

// GetChannel retrieves a channel by ID.
func (s *SQLiteStore) GetChannel(id string) (*models.Channel, error) {
	query := `
		SELECT id, link, unread, created_at
		FROM channels WHERE id = ?
	`
	return scanChannel(s.db.QueryRow(query, id))
}

// GetChannelByLink finds a channel by its source URL.
func (s *SQLiteStore) GetChannelByLink(link string) (*models.Channel, error) {
	query := `
		SELECT id, link, unread, created_at
		FROM channels WHERE link = ?
	`
	return scanChannel(s.db.QueryRow(query, link))
}

// ListChannels returns all channels, newest first.
func (s *SQLiteStore) ListChannels() ([]*models.Channel, error) {
	query := `
		SELECT id, link, unread, created_at
		FROM channels ORDER BY created_at DESC, rowid DESC
	`
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query channels: %w", err)
	}
	defer rows.Close()

	var channels []*models.Channel
	for rows.Next() {
		var ch models.Channel
		if err := rows.Scan(&ch.ID, &ch.Link, &ch.Unread, &ch.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan channel: %w", err)
		}
		channels = append(channels, &ch)
	}
	return channels, rows.Err()
}

// Entry Operations

// InsertEntries inserts the candidates for one channel, ignoring conflicts
// on (channel_id, external_id), then recomputes the channel's unread count.
// The batch and the recompute share one transaction.
func (s *SQLiteStore) InsertEntries(channelID string, entries []*models.Entry) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin upsert: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO entries (id, channel_id, external_id, title, link, published_at, updated_at, read, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(channel_id, external_id) DO NOTHING
	`
	inserted := 0
	for _, entry := range entries {
		result, err := tx.Exec(query,
			entry.ID, channelID, entry.ExternalID, entry.Title, entry.Link,
			entry.PublishedAt, entry.UpdatedAt, boolToInt(entry.Read), entry.CreatedAt,
		)
		if err != nil {
			return 0, fmt.Errorf("insert entry %s: %w", entry.ExternalID, err)
		}
		rows, _ := result.RowsAffected()
		inserted += int(rows)
	}

	if err := recomputeUnread(tx, channelID); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit upsert: %w", err)
	}
	return inserted, nil
}

// GetEntry retrieves an entry by ID.
func (s *SQLiteStore) GetEntry(id string) (*models.Entry, error) {
	query := `
		SELECT id, channel_id, external_id, title, link, published_at, updated_at, read, created_at
		FROM entries WHERE id = ?
	`
	return scanEntry(s.db.QueryRow(query, id))
}

// ListEntries returns a channel's entries, newest published first.
func (s *SQLiteStore) ListEntries(channelID string) ([]*models.Entry, error) {
	query := `
		SELECT id, channel_id, external_id, title, link, published_at, updated_at, read, created_at
		FROM entries
		WHERE channel_id = ?
		ORDER BY published_at DESC, rowid DESC
	`
	rows, err := s.db.Query(query, channelID)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.Entry
	for rows.Next() {
		entry, err := scanEntryFromRows(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// ToggleEntryRead flips an entry's read flag and recomputes the owning
// channel's unread count in one transaction.
func (s *SQLiteStore) ToggleEntryRead(id string) (*models.Entry, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin toggle: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`UPDATE entries SET read = NOT read WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("toggle entry read: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return nil, ErrEntryNotFound
	}

	query := `
		SELECT id, channel_id, external_id, title, link, published_at, updated_at, read, created_at
		FROM entries WHERE id = ?
	`
	entry, err := scanEntry(tx.QueryRow(query, id))
	if err != nil {
		return nil, err
	}

	if err := recomputeUnread(tx, entry.ChannelID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit toggle: %w", err)
	}
	return entry, nil
}

// MarkChannelRead marks all of a channel's entries read and recomputes the
// unread count.
func (s *SQLiteStore) MarkChannelRead(channelID string) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin mark read: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`UPDATE entries SET read = 1 WHERE channel_id = ? AND read = 0`, channelID)
	if err != nil {
		return 0, fmt.Errorf("mark channel read: %w", err)
	}
	changed, _ := result.RowsAffected()

	if err := recomputeUnread(tx, channelID); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit mark read: %w", err)
	}
	return changed, nil
}

// Aggregate Operations

// RecomputeUnread re-derives a channel's unread count from entry rows and
// persists it.
func (s *SQLiteStore) RecomputeUnread(channelID string) (int, error) {
	if err := recomputeUnread(s.db, channelID); err != nil {
		return 0, err
	}
	return s.CountUnread(channelID)
}

// CountUnread counts a channel's unread entries from ground truth.
func (s *SQLiteStore) CountUnread(channelID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM entries WHERE channel_id = ? AND read = 0`
	if err := s.db.QueryRow(query, channelID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count unread entries: %w", err)
	}
	return count, nil
}

// Helper functions

// execer covers *sql.DB and *sql.Tx so the recompute can run standalone or
// inside the transaction of the mutation that triggered it.
type execer interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
}

// recomputeUnread is always a full recomputation from entry rows, never an
// increment, so it is safe to rerun after any interleaving of mutations.
func recomputeUnread(e execer, channelID string) error {
	query := `
		UPDATE channels
		SET unread = (SELECT COUNT(*) FROM entries WHERE channel_id = ? AND read = 0)
		WHERE id = ?
	`
	result, err := e.Exec(query, channelID, channelID)
	if err != nil {
		return fmt.Errorf("recompute unread: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrChannelNotFound
	}
	return nil
}

func scanChannel(row *sql.Row) (*models.Channel, error) {
	var ch models.Channel
	if err := row.Scan(&ch.ID, &ch.Link, &ch.Unread, &ch.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrChannelNotFound
		}
		return nil, fmt.Errorf("scan channel: %w", err)
	}
	return &ch, nil
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row *sql.Row) (*models.Entry, error) {
	entry, err := scanEntryFields(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	return entry, nil
}

func scanEntryFromRows(rows *sql.Rows) (*models.Entry, error) {
	return scanEntryFields(rows)
}

func scanEntryFields(scanner rowScanner) (*models.Entry, error) {
	var entry models.Entry
	var read int
	if err := scanner.Scan(
		&entry.ID, &entry.ChannelID, &entry.ExternalID, &entry.Title, &entry.Link,
		&entry.PublishedAt, &entry.UpdatedAt, &read, &entry.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan entry: %w", err)
	}
	entry.Read = read != 0
	return &entry, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
