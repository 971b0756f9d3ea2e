package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"github.com/lib/pq" // PostgreSQL driver
	"go.uber.org/zap"

	"marketfetch/internal/store"
)

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,62}$`)

// Store inserts records into postgres tables.
type Store struct {
	db     *sql.DB
	logger *zap.Logger
}

var _ store.Store = (*Store)(nil)

// Open connects to dsn and verifies the connection.
func Open(ctx context.Context, dsn string, logger *zap.Logger) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return New(db, logger), nil
}

// New wraps an open connection pool.
func New(db *sql.DB, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{db: db, logger: logger}
}

// Close closes the connection pool.
func (s *Store) Close() error { return s.db.Close() }

func quoteTable(table string) (string, error) {
	if !tableName.MatchString(table) {
		return "", fmt.Errorf("invalid table name %q", table)
	}
	return pq.QuoteIdentifier(table), nil
}

// EnsureTable creates table if it does not exist.
func (s *Store) EnsureTable(ctx context.Context, table string) error {
	q, err := quoteTable(table)
	if err != nil {
		return err
	}
	stmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id UUID PRIMARY KEY,
	symbol TEXT NOT NULL,
	kind TEXT NOT NULL,
	provider TEXT NOT NULL,
	payload JSONB NOT NULL,
	fetched_at TIMESTAMPTZ NOT NULL
)`, q)
	if _, err := s.db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("failed to create table %s: %w", table, err)
	}
	return nil
}

// Save inserts rec into table.
func (s *Store) Save(ctx context.Context, table string, rec store.Record) error {
	q, err := quoteTable(table)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(rec.Payload)
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}
	stmt := fmt.Sprintf(`INSERT INTO %s (id, symbol, kind, provider, payload, fetched_at) VALUES ($1, $2, $3, $4, $5, $6)`, q)
	if _, err := s.db.ExecContext(ctx, stmt, rec.ID, rec.Symbol, rec.Kind, rec.Provider, payload, rec.FetchedAt); err != nil {
		return fmt.Errorf("failed to insert into %s: %w", table, err)
	}
	s.logger.Debug("record stored",
		zap.String("table", table),
		zap.String("symbol", rec.Symbol),
		zap.String("kind", rec.Kind))
	return nil
}
