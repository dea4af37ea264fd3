package kv

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"

	"optica-store/internal/config"
)

// SQL keeps the surface in a single Postgres table. Used when several
// kiosk instances need to share the same session state.
type SQL struct {
	db *sql.DB
}

func NewSQL(db *sql.DB) *SQL {
	return &SQL{db: db}
}

// OpenSQL connects to Postgres using the config fields and verifies
// the connection.
func OpenSQL(cfg *config.Config) (*SQL, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return NewSQL(db), nil
}

func (s *SQL) Get(key string) (string, error) {
	if key == "" {
		return "", ErrInvalidKey
	}

	var value string
	err := s.db.QueryRow(
		`SELECT value FROM kv_entries WHERE key = $1`, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get %q: %w", key, err)
	}
	return value, nil
}

func (s *SQL) Set(key, value string) error {
	if key == "" {
		return ErrInvalidKey
	}

	_, err := s.db.Exec(
		`INSERT INTO kv_entries (key, value) VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

func (s *SQL) Delete(key string) error {
	if key == "" {
		return ErrInvalidKey
	}

	_, err := s.db.Exec(`DELETE FROM kv_entries WHERE key = $1`, key)
	if err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

func (s *SQL) Close() error {
	return s.db.Close()
}
