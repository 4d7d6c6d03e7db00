package game

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStorage keeps save documents in a SQLite database, one row per slot
type SQLiteStorage struct {
	conn *sqlx.DB
}

// OpenSQLiteStorage opens or creates the database at path
func OpenSQLiteStorage(path string) (*SQLiteStorage, error) {
	conn, err := sqlx.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStorage{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Close closes the database connection
func (s *SQLiteStorage) Close() error {
	return s.conn.Close()
}

func (s *SQLiteStorage) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS saves (
		slot TEXT PRIMARY KEY,
		game_id TEXT NOT NULL,
		stage TEXT NOT NULL,
		saved_at TIMESTAMP NOT NULL,
		version INTEGER NOT NULL,
		document TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_saves_saved_at ON saves(saved_at);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// Save writes the document, replacing whatever the slot held
func (s *SQLiteStorage) Save(ctx context.Context, slot string, save SaveGame) error {
	if err := ValidateSlot(slot); err != nil {
		return err
	}
	doc, err := json.Marshal(save)
	if err != nil {
		return fmt.Errorf("failed to marshal game state: %w", err)
	}

	_, err = s.conn.ExecContext(ctx,
		`INSERT OR REPLACE INTO saves (slot, game_id, stage, saved_at, version, document)
		VALUES (?, ?, ?, ?, ?, ?)`,
		slot, save.ID, string(save.Stage), save.SavedAt.UTC(), save.Version, string(doc))
	if err != nil {
		return fmt.Errorf("save slot %s: %w", slot, err)
	}
	return nil
}

// Load reads a slot's document
func (s *SQLiteStorage) Load(ctx context.Context, slot string) (SaveGame, error) {
	if err := ValidateSlot(slot); err != nil {
		return SaveGame{}, err
	}

	var doc string
	err := s.conn.GetContext(ctx, &doc, "SELECT document FROM saves WHERE slot = ?", slot)
	if errors.Is(err, sql.ErrNoRows) {
		return SaveGame{}, fmt.Errorf("%w: %s", ErrSlotNotFound, slot)
	}
	if err != nil {
		return SaveGame{}, fmt.Errorf("load slot %s: %w", slot, err)
	}

	var save SaveGame
	if err := json.Unmarshal([]byte(doc), &save); err != nil {
		return SaveGame{}, fmt.Errorf("failed to parse game state: %w", err)
	}
	return save, nil
}

// List returns every slot, most recently saved first
func (s *SQLiteStorage) List(ctx context.Context) ([]SlotInfo, error) {
	slots := []SlotInfo{}
	if err := s.conn.SelectContext(ctx, &slots, "SELECT slot, stage, saved_at FROM saves ORDER BY saved_at DESC"); err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	return slots, nil
}

// Delete removes a slot
func (s *SQLiteStorage) Delete(ctx context.Context, slot string) error {
	if err := ValidateSlot(slot); err != nil {
		return err
	}
	res, err := s.conn.ExecContext(ctx, "DELETE FROM saves WHERE slot = ?", slot)
	if err != nil {
		return fmt.Errorf("delete slot %s: %w", slot, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrSlotNotFound, slot)
	}
	return nil
}

// OpenStorage opens the storage the config asks for
func OpenStorage(driver, dsn string) (Storage, error) {
	switch driver {
	case "sqlite3":
		return OpenSQLiteStorage(dsn)
	case "file", "":
		return NewFileStorage(dsn)
	}
	return nil, fmt.Errorf("unknown storage driver %q", driver)
}
