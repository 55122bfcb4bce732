// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Database types accepted by Open
const (
	TypePostgres = "postgres"
	TypeSQLite   = "sqlite"
)

// DetectType determines the database type from a DSN string
func DetectType(dsn string) string {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return TypePostgres
	}
	// file:, :memory: or a plain path
	return TypeSQLite
}

// Open connects to the database and verifies the connection.
// An empty dbType is detected from the DSN.
func Open(dsn, dbType string) (*sqlx.DB, error) {
	if dbType == "" {
		dbType = DetectType(dsn)
	}

	switch dbType {
	case TypePostgres:
		conn, err := sqlx.Connect("postgres", dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		conn.SetMaxOpenConns(25)
		conn.SetMaxIdleConns(25)
		return conn, nil

	case TypeSQLite:
		conn, err := sqlx.Open("sqlite", dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		// Single writer; also keeps :memory: databases alive on one connection
		conn.SetMaxOpenConns(1)

		if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
		if err := conn.Ping(); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}
		return conn, nil

	default:
		return nil, fmt.Errorf("unsupported database type: %s", dbType)
	}
}

// IsSQLite reports whether the connection uses the SQLite driver
func IsSQLite(db *sqlx.DB) bool {
	return db.DriverName() == "sqlite"
}
