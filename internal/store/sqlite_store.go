package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"

	"github.com/ppiankov/greenlie/internal/model"

	_ "modernc.org/sqlite"
)

var collections = []string{KeyAnalyses, KeyVotes, KeyCustomVotes, KeyCustomStatements}

// SQLiteStore keeps each collection in its own table of JSON payloads
type SQLiteStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

type payloadRow struct {
	Seq     int64  `db:"seq"`
	Payload string `db:"payload"`
}

// NewSQLiteStore opens (and migrates) the database at path. ":memory:" is accepted.
func NewSQLiteStore(path string, logger *slog.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// single writer keeps sqlite from returning SQLITE_BUSY under concurrent saves
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db, logger: logger}
	if err := s.migrate(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) migrate(ctx context.Context) error {
	for _, table := range collections {
		query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL DEFAULT '',
			payload TEXT NOT NULL
		);`, table)
		if _, err := s.db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to migrate %s: %w", table, err)
		}
	}
	_, err := s.db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_custom_statements_id ON `+KeyCustomStatements+` (id)`)
	if err != nil {
		return fmt.Errorf("failed to index custom statements: %w", err)
	}
	return nil
}

func insertPayload(ctx context.Context, s *SQLiteStore, table, id string, item any) error {
	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", table, err)
	}
	query := fmt.Sprintf(`INSERT INTO %s (id, payload) VALUES (?, ?)`, table)
	if _, err := s.db.ExecContext(ctx, query, id, string(data)); err != nil {
		return fmt.Errorf("failed to insert into %s: %w", table, err)
	}
	return nil
}

// selectPayloads decodes every row of table in append order, skipping rows
// that no longer decode
func selectPayloads[T any](ctx context.Context, s *SQLiteStore, table string) ([]T, error) {
	var rows []payloadRow
	query := fmt.Sprintf(`SELECT seq, payload FROM %s ORDER BY seq`, table)
	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}

	items := make([]T, 0, len(rows))
	for _, row := range rows {
		var item T
		if err := json.Unmarshal([]byte(row.Payload), &item); err != nil {
			s.logger.Warn("skipping malformed row", "table", table, "seq", row.Seq, "error", err)
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// SaveAnalysis appends a completed analysis
func (s *SQLiteStore) SaveAnalysis(ctx context.Context, a model.StoredAnalysis) error {
	return insertPayload(ctx, s, KeyAnalyses, a.ID, a)
}

// ListAnalyses returns all analyses in append order
func (s *SQLiteStore) ListAnalyses(ctx context.Context) ([]model.StoredAnalysis, error) {
	return selectPayloads[model.StoredAnalysis](ctx, s, KeyAnalyses)
}

// SaveVote appends a fact-based vote
func (s *SQLiteStore) SaveVote(ctx context.Context, v model.Vote) error {
	return insertPayload(ctx, s, KeyVotes, v.StatementID, v)
}

// ListVotes returns all fact-based votes
func (s *SQLiteStore) ListVotes(ctx context.Context) ([]model.Vote, error) {
	return selectPayloads[model.Vote](ctx, s, KeyVotes)
}

// SaveCustomVote appends a custom-statement vote
func (s *SQLiteStore) SaveCustomVote(ctx context.Context, v model.Vote) error {
	return insertPayload(ctx, s, KeyCustomVotes, v.StatementID, v)
}

// ListCustomVotes returns all custom-statement votes
func (s *SQLiteStore) ListCustomVotes(ctx context.Context) ([]model.Vote, error) {
	return selectPayloads[model.Vote](ctx, s, KeyCustomVotes)
}

// SaveCustomStatement appends a custom statement
func (s *SQLiteStore) SaveCustomStatement(ctx context.Context, cs model.CustomStatement) error {
	return insertPayload(ctx, s, KeyCustomStatements, cs.ID, cs)
}

// GetCustomStatement finds a custom statement by id
func (s *SQLiteStore) GetCustomStatement(ctx context.Context, id string) (model.CustomStatement, bool, error) {
	var row payloadRow
	err := s.db.GetContext(ctx, &row,
		`SELECT seq, payload FROM `+KeyCustomStatements+` WHERE id = ? ORDER BY seq LIMIT 1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.CustomStatement{}, false, nil
	}
	if err != nil {
		return model.CustomStatement{}, false, fmt.Errorf("failed to query custom statement: %w", err)
	}

	var cs model.CustomStatement
	if err := json.Unmarshal([]byte(row.Payload), &cs); err != nil {
		s.logger.Warn("skipping malformed row", "table", KeyCustomStatements, "seq", row.Seq, "error", err)
		return model.CustomStatement{}, false, nil
	}
	return cs, true, nil
}

// UpdateCustomStatementAnalysis marks the statement analysed in place
func (s *SQLiteStore) UpdateCustomStatementAnalysis(ctx context.Context, id string, result model.CustomAnalysis) (bool, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var row payloadRow
	err = tx.GetContext(ctx, &row,
		`SELECT seq, payload FROM `+KeyCustomStatements+` WHERE id = ? ORDER BY seq LIMIT 1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to query custom statement: %w", err)
	}

	var cs model.CustomStatement
	if err := json.Unmarshal([]byte(row.Payload), &cs); err != nil {
		s.logger.Warn("skipping malformed row", "table", KeyCustomStatements, "seq", row.Seq, "error", err)
		return false, nil
	}
	cs.MarkAnalyzed(result)

	data, err := json.Marshal(cs)
	if err != nil {
		return false, fmt.Errorf("failed to encode custom statement: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE `+KeyCustomStatements+` SET payload = ? WHERE seq = ?`, string(data), row.Seq); err != nil {
		return false, fmt.Errorf("failed to update custom statement: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit: %w", err)
	}
	return true, nil
}

// ListCustomStatements returns all custom statements in submission order
func (s *SQLiteStore) ListCustomStatements(ctx context.Context) ([]model.CustomStatement, error) {
	return selectPayloads[model.CustomStatement](ctx, s, KeyCustomStatements)
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
