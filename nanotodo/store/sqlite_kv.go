package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/arthur-debert/nanotodo/nanotodo/storage"
)

//go:embed sql/kv_schema.sql
var kvSchemaSQL string

// SQLiteFile is the database file name inside the data directory.
const SQLiteFile = "nanotodo.db"

// SQLiteKV keeps keys in a single-table SQLite database.
type SQLiteKV struct {
	db       *sql.DB
	builder  *sqlBuilder
	timeFunc func() time.Time
	logger   *slog.Logger
}

var _ storage.KV = (*SQLiteKV)(nil)

// NewSQLiteKV opens (creating if needed) the database at dbPath.
func NewSQLiteKV(dbPath string, logger *slog.Logger) (*SQLiteKV, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Set busy timeout first to help with concurrent access during initialization
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA temp_store = MEMORY",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			// Another process may already hold the database while switching to WAL
			if pragma == "PRAGMA journal_mode = WAL" && strings.Contains(err.Error(), "database is locked") {
				continue
			}
			_ = db.Close()
			return nil, fmt.Errorf("failed to execute %s: %w", pragma, err)
		}
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.Exec(kvSchemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	logger.Debug("opened sqlite backend", "path", dbPath)
	return &SQLiteKV{
		db:       db,
		builder:  newSQLBuilder(),
		timeFunc: time.Now,
		logger:   logger,
	}, nil
}

// NewSQLiteKVInDir opens SQLiteFile inside dir.
func NewSQLiteKVInDir(dir string, logger *slog.Logger) (*SQLiteKV, error) {
	if err := (OSFileSystem{}).MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return NewSQLiteKV(filepath.Join(dir, SQLiteFile), logger)
}

// Get implements storage.KV.Get
func (s *SQLiteKV) Get(ctx context.Context, key string) (string, bool, error) {
	query, args, err := s.builder.buildGet(key)
	if err != nil {
		return "", false, err
	}

	var value string
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read key: %w", err)
	}
	return value, true, nil
}

// Set implements storage.KV.Set
func (s *SQLiteKV) Set(ctx context.Context, key, value string) error {
	query, args, err := s.builder.buildUpsert(key, value, s.timeFunc().UnixMilli())
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to write key: %w", err)
	}
	return nil
}

// Close releases database resources
func (s *SQLiteKV) Close() error {
	return s.db.Close()
}
