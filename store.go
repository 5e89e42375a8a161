package main

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"
)

// ResultRow is one scenario optimum stored in Postgres.
type ResultRow struct {
	RunID       string    `json:"runId"`
	Timestamp   time.Time `json:"ts"`
	Mode        string    `json:"mode"`
	Horizon     int       `json:"horizon"`
	Index       int       `json:"index"`
	BlueprintID int       `json:"blueprintId"`
	Optimum     int       `json:"optimum"`
	Calls       int       `json:"calls"`
	TimeMs      int64     `json:"timeMs"`
}

// ResultStore records run results in Postgres. Search state is never stored.
type ResultStore struct {
	db *sql.DB
}

// pgConnString builds a connection string from the PG* environment
// variables when dsn is empty.
func pgConnString(dsn string) string {
	if dsn != "" {
		return dsn
	}
	host := getEnv("PGHOST", "127.0.0.1")
	port := getEnv("PGPORT", "5432")
	user := getEnv("PGUSER", "blueprints")
	dbname := getEnv("PGDATABASE", "blueprints")
	if password := os.Getenv("PGPASSWORD"); password != "" {
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			host, port, user, password, dbname)
	}
	return fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=disable",
		host, port, user, dbname)
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

// OpenResultStore connects to Postgres and creates the results table if needed.
func OpenResultStore(dsn string) (*ResultStore, error) {
	db, err := sql.Open("postgres", pgConnString(dsn))
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}
	s := &ResultStore{db: db}
	if err := s.createTable(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create results table: %w", err)
	}
	return s, nil
}

func (s *ResultStore) createTable() error {
	query := `
		CREATE TABLE IF NOT EXISTS scenario_results (
			run_id       TEXT NOT NULL,
			ts           TIMESTAMPTZ NOT NULL,
			mode         TEXT NOT NULL,
			horizon      INTEGER NOT NULL,
			idx          INTEGER NOT NULL,
			blueprint_id INTEGER NOT NULL,
			optimum      INTEGER NOT NULL,
			calls        BIGINT NOT NULL,
			time_ms      BIGINT NOT NULL,
			PRIMARY KEY (run_id, idx)
		);
		CREATE INDEX IF NOT EXISTS idx_scenario_results_ts ON scenario_results(ts DESC);
	`
	_, err := s.db.Exec(query)
	return err
}

// Record inserts every scenario of r in one transaction.
func (s *ResultStore) Record(r *RunReport) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	query := `
		INSERT INTO scenario_results (run_id, ts, mode, horizon, idx, blueprint_id, optimum, calls, time_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	now := time.Now().UTC()
	for _, sc := range r.Scenarios {
		if _, err := tx.Exec(query, r.RunID, now, string(r.Mode), r.Horizon,
			sc.Index, sc.BlueprintID, sc.Optimum, sc.Stats.Calls, sc.TimeMs); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert blueprint %d: %w", sc.BlueprintID, err)
		}
	}
	return tx.Commit()
}

// Recent returns the last limit rows, newest first.
func (s *ResultStore) Recent(limit int) ([]ResultRow, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `
		SELECT run_id, ts, mode, horizon, idx, blueprint_id, optimum, calls, time_ms
		FROM scenario_results
		ORDER BY ts DESC, idx
		LIMIT $1
	`
	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ResultRow
	for rows.Next() {
		var r ResultRow
		if err := rows.Scan(&r.RunID, &r.Timestamp, &r.Mode, &r.Horizon, &r.Index,
			&r.BlueprintID, &r.Optimum, &r.Calls, &r.TimeMs); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Close closes the database connection.
func (s *ResultStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
