package character

import (
	"context"
	"database/sql"
	_ "embed"
	stderrors "errors"
	"log/slog"
	"path/filepath"
	"strings"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/KirkDiggler/rpg-sheet/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-sheet/internal/errors"
)

//go:embed schema.sql
var schemaSQL string

// SQLiteRepository implements Repository on a single SQLite file
type SQLiteRepository struct {
	db *sql.DB
}

// SQLiteConfig contains configuration for the SQLite character repository.
type SQLiteConfig struct {
	Path string
}

// Validate validates the SQLiteConfig.
func (cfg *SQLiteConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if strings.TrimSpace(cfg.Path) == "" {
		return errors.InvalidArgument("sqlite path cannot be empty")
	}
	return nil
}

// NewSQLite opens the database, applies the schema and returns the store.
// Callers own Close.
func NewSQLite(ctx context.Context, cfg *SQLiteConfig) (*SQLiteRepository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	dsn := filepath.Clean(cfg.Path) +
		"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)&_txlock=immediate"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open sqlite db")
	}
	// One writer at a time keeps read-modify-write transactions serialized
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to ping sqlite db")
	}
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(err, "failed to apply schema")
	}

	slog.DebugContext(ctx, "opened sqlite character store", "path", cfg.Path)

	return &SQLiteRepository{db: db}, nil
}

// Close releases the underlying connection
func (r *SQLiteRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// Create stores a new character
func (r *SQLiteRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if err := validateCreate(input); err != nil {
		return nil, err
	}

	char := input.Character
	data, err := encodeCharacter(char)
	if err != nil {
		return nil, err
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO characters (id, player_id, data, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		char.ID, char.PlayerID, data, char.Created.UnixNano(), char.Updated.UnixNano(),
	)
	if err != nil {
		if isConstraintViolation(err) {
			return nil, errors.AlreadyExistsf("character with ID %s already exists", char.ID)
		}
		return nil, errors.Wrapf(err, "failed to create character")
	}

	return &CreateOutput{Character: char}, nil
}

// Get retrieves a character by ID
func (r *SQLiteRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	char, err := loadRow(ctx, r.db, input.ID)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Character: char}, nil
}

type rowQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func loadRow(ctx context.Context, q rowQuerier, id string) (*dnd5e.Character, error) {
	var data []byte
	err := q.QueryRowContext(ctx, `SELECT data FROM characters WHERE id = ?`, id).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundf("character with ID %s not found", id)
		}
		return nil, errors.Wrapf(err, "failed to get character")
	}
	return decodeCharacter(id, data)
}

// Update runs the read, Mutate and write inside one immediate transaction
func (r *SQLiteRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if err := validateUpdate(input); err != nil {
		return nil, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to start transaction")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	char, err := loadRow(ctx, tx, input.ID)
	if err != nil {
		return nil, err
	}
	if err := mutateCopy(char, input.Mutate); err != nil {
		return nil, err
	}

	data, err := encodeCharacter(char)
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE characters SET player_id = ?, data = ?, updated_at = ? WHERE id = ?`,
		char.PlayerID, data, char.Updated.UnixNano(), char.ID,
	)
	if err != nil {
		if isBusy(err) {
			return nil, errors.Abortedf("character %s is locked by another writer", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to update character")
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.Wrapf(err, "failed to commit character update")
	}

	return &UpdateOutput{Character: char}, nil
}

// Delete removes a character by ID
func (r *SQLiteRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM characters WHERE id = ?`, input.ID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete character")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete character")
	}
	if n == 0 {
		return nil, errors.NotFoundf("character with ID %s not found", input.ID)
	}

	return &DeleteOutput{}, nil
}

// ListByPlayerID returns a player's characters, oldest first
func (r *SQLiteRepository) ListByPlayerID(ctx context.Context, input ListByPlayerIDInput) (*ListByPlayerIDOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, data FROM characters WHERE player_id = ? ORDER BY created_at, id`,
		input.PlayerID,
	)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list characters")
	}
	defer func() {
		_ = rows.Close()
	}()

	characters := make([]*dnd5e.Character, 0)
	for rows.Next() {
		var (
			id   string
			data []byte
		)
		if err := rows.Scan(&id, &data); err != nil {
			return nil, errors.Wrapf(err, "failed to scan character row")
		}
		char, err := decodeCharacter(id, data)
		if err != nil {
			return nil, err
		}
		characters = append(characters, char)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to list characters")
	}

	slog.DebugContext(ctx, "listed characters from sqlite",
		"player_id", input.PlayerID,
		"count", len(characters))

	return &ListByPlayerIDOutput{Characters: characters}, nil
}

func isConstraintViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if !stderrors.As(err, &sqliteErr) {
		return false
	}
	switch sqliteErr.Code() {
	case sqlite3lib.SQLITE_CONSTRAINT, sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
		return true
	}
	return false
}

func isBusy(err error) bool {
	var sqliteErr *msqlite.Error
	if !stderrors.As(err, &sqliteErr) {
		return false
	}
	code := sqliteErr.Code()
	return code == sqlite3lib.SQLITE_BUSY || code == sqlite3lib.SQLITE_LOCKED
}

var _ Repository = (*SQLiteRepository)(nil)
