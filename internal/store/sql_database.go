// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-mail-sync/internal/config"
	"github.com/MKhiriev/go-mail-sync/internal/logger"
	"github.com/MKhiriev/go-mail-sync/migrations"
)

// Dialect names a database backend. The value doubles as the database/sql
// driver name and the goose dialect.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite3"
	DialectPostgres Dialect = "pgx"
)

// DB is an open database together with its dialect-specific helpers.
type DB struct {
	*sql.DB
	dialect            Dialect
	queries            queries
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// DialectFor picks the backend for dsn: postgres:// and postgresql:// URLs
// select PostgreSQL, anything else is a SQLite path or URI.
func DialectFor(dsn string) Dialect {
	lower := strings.ToLower(dsn)
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return DialectPostgres
	}
	return DialectSQLite
}

// NewConnect opens and pings the database described by cfg.
func NewConnect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, ErrUnsupportedDSN
	}

	switch DialectFor(cfg.DSN) {
	case DialectPostgres:
		return NewConnectPostgres(ctx, cfg, log)
	default:
		return NewConnectSQLite(ctx, cfg, log)
	}
}

func newDB(conn *sql.DB, dialect Dialect, classifier ErrorClassificator, log *logger.Logger) *DB {
	return &DB{
		DB:                 conn,
		dialect:            dialect,
		queries:            newQueries(dialect),
		errorClassificator: classifier,
		logger:             log,
	}
}

// Dialect returns the backend of db.
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// Migrate applies pending schema migrations.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, string(db.dialect))
}

// wrap annotates err with op and marks it ErrRetryable when the backend
// classifies it as transient.
func (db *DB) wrap(op string, sentinel, err error) error {
	if db.errorClassificator != nil && db.errorClassificator.Classify(err) == Retryable {
		return fmt.Errorf("%s: %w: %w: %w", op, sentinel, ErrRetryable, err)
	}
	return fmt.Errorf("%s: %w: %w", op, sentinel, err)
}
