package database

import (
	"net/url"
	"strings"

	"labelops/internal/config"
	"labelops/internal/errors"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Open connects to PostgreSQL and verifies the connection
func Open(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	if cfg.URL == "" {
		return nil, errors.ConfigInvalid("DATABASE_URL is required")
	}

	db, err := sqlx.Connect("postgres", WithSSLMode(cfg.URL, cfg.SSLMode))
	if err != nil {
		return nil, errors.DatabaseError("failed to connect to database", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.DatabaseError("failed to ping database", err)
	}

	return db, nil
}

// WithSSLMode adds sslmode to a DSN that does not already specify one.
// Both URL and key=value DSNs are accepted.
func WithSSLMode(dsn, mode string) string {
	if mode == "" || strings.Contains(dsn, "sslmode=") {
		return dsn
	}

	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		u, err := url.Parse(dsn)
		if err != nil {
			return dsn
		}
		q := u.Query()
		q.Set("sslmode", mode)
		u.RawQuery = q.Encode()
		return u.String()
	}

	return strings.TrimSpace(dsn) + " sslmode=" + mode
}
