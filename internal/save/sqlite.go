package save

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/napolitain/idle-tycoon/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS saves (
	profile_key TEXT PRIMARY KEY,
	saved_at    TEXT NOT NULL,
	checksum    TEXT NOT NULL,
	payload     BLOB NOT NULL,
	updated_at  TEXT NOT NULL
);
`

type saveRow struct {
	ProfileKey string `db:"profile_key"`
	SavedAt    string `db:"saved_at"`
	Checksum   string `db:"checksum"`
	Payload    []byte `db:"payload"`
	UpdatedAt  string `db:"updated_at"`
}

// SQLiteStore keeps one snapshot per profile key in a SQLite file
type SQLiteStore struct {
	db  *sqlx.DB
	key string
	log *slog.Logger
}

// OpenSQLite opens (or creates) the database at path and migrates it
func OpenSQLite(path, key string, log *slog.Logger) (*SQLiteStore, error) {
	if log == nil {
		log = slog.Default()
	}
	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// SQLite allows a single writer
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db, key: key, log: log}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate %s: %w", path, err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Key returns the profile key this store reads and writes
func (s *SQLiteStore) Key() string {
	return s.key
}

// Save replaces the profile's snapshot
func (s *SQLiteStore) Save(ctx context.Context, snap *models.SaveSnapshot) error {
	payload, err := Encode(snap)
	if err != nil {
		return err
	}
	blob, err := Seal(payload)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO saves (profile_key, saved_at, checksum, payload, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		s.key,
		snap.LastSaveTime.UTC().Format(time.RFC3339Nano),
		blob.Checksum,
		blob.Data,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("write save %s: %w", s.key, err)
	}
	return nil
}

// Load reads the profile's snapshot. It returns ErrNoSave when the profile
// has never been saved and an error wrapping ErrCorrupt when the stored
// blob fails its checksum or is not a snapshot.
func (s *SQLiteStore) Load(ctx context.Context) (*models.SaveSnapshot, error) {
	var row saveRow
	err := s.db.GetContext(ctx, &row, `SELECT * FROM saves WHERE profile_key = ?`, s.key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSave
	}
	if err != nil {
		return nil, fmt.Errorf("read save %s: %w", s.key, err)
	}

	payload, err := Blob{Data: row.Payload, Checksum: row.Checksum}.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, s.key, err)
	}
	return Decode(payload, s.log)
}

// Delete removes the profile's snapshot
func (s *SQLiteStore) Delete(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM saves WHERE profile_key = ?`, s.key)
	return err
}
