// Package ledger persists study records to postgres. The sensitivity indices
// are stored as a JSON column; the scalar audit fields (hashes, sample count,
// warning count) get their own columns so runs can be filtered in SQL.
package ledger

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"pyrosense/domain/core"
	"pyrosense/domain/study"
	"pyrosense/ports"
)

const schema = `
CREATE TABLE IF NOT EXISTS study_runs (
	run_id        TEXT PRIMARY KEY,
	model_key     TEXT NOT NULL,
	registry_hash TEXT NOT NULL,
	design_hash   TEXT NOT NULL,
	parameters    JSONB NOT NULL,
	base_points   INTEGER NOT NULL,
	warning_count INTEGER NOT NULL,
	results       JSONB NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL,
	runtime_ms    BIGINT NOT NULL
);
CREATE INDEX IF NOT EXISTS study_runs_model_idx ON study_runs (model_key, created_at DESC);
`

type postgresLedger struct {
	db *sqlx.DB
}

// NewPostgresLedger creates a ledger over an open connection.
func NewPostgresLedger(db *sqlx.DB) ports.LedgerPort {
	return &postgresLedger{db: db}
}

// EnsureSchema creates the ledger tables if they do not exist.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating ledger schema: %w", err)
	}
	return nil
}

func (l *postgresLedger) SaveStudy(ctx context.Context, rec *study.Record) error {
	paramsJSON, err := json.Marshal(rec.Parameters)
	if err != nil {
		return fmt.Errorf("marshaling parameters: %w", err)
	}
	resultsJSON, err := json.Marshal(rec.Results)
	if err != nil {
		return fmt.Errorf("marshaling results: %w", err)
	}

	query := `INSERT INTO study_runs (
		run_id, model_key, registry_hash, design_hash, parameters,
		base_points, warning_count, results, created_at, runtime_ms
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err = l.db.ExecContext(ctx, query,
		rec.RunID, rec.Model, rec.RegistryHash, rec.DesignHash, paramsJSON,
		rec.BasePoints, rec.WarningCount, resultsJSON, rec.CreatedAt.Time(), rec.RuntimeMs,
	)
	if err != nil {
		return fmt.Errorf("inserting study %s: %w", rec.RunID, err)
	}
	return nil
}

func (l *postgresLedger) GetStudy(ctx context.Context, runID core.RunID) (*study.Record, error) {
	query := `SELECT
		run_id, model_key, registry_hash, design_hash, parameters,
		base_points, warning_count, results, created_at, runtime_ms
	FROM study_runs WHERE run_id = $1`

	rec, err := l.scanRecord(l.db.QueryRowContext(ctx, query, runID))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("study %s: %w", runID, core.ErrRunNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading study %s: %w", runID, err)
	}
	return rec, nil
}

func (l *postgresLedger) ListStudies(ctx context.Context, limit int) ([]*study.Record, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT
		run_id, model_key, registry_hash, design_hash, parameters,
		base_points, warning_count, results, created_at, runtime_ms
	FROM study_runs ORDER BY created_at DESC LIMIT $1`

	rows, err := l.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing studies: %w", err)
	}
	defer rows.Close()

	var out []*study.Record
	for rows.Next() {
		rec, err := l.scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning study row: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing studies: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (l *postgresLedger) scanRecord(row rowScanner) (*study.Record, error) {
	var rec study.Record
	var paramsJSON, resultsJSON []byte
	var createdAt sql.NullTime

	err := row.Scan(
		&rec.RunID, &rec.Model, &rec.RegistryHash, &rec.DesignHash, &paramsJSON,
		&rec.BasePoints, &rec.WarningCount, &resultsJSON, &createdAt, &rec.RuntimeMs,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(paramsJSON, &rec.Parameters); err != nil {
		return nil, fmt.Errorf("unmarshaling parameters: %w", err)
	}
	if err := json.Unmarshal(resultsJSON, &rec.Results); err != nil {
		return nil, fmt.Errorf("unmarshaling results: %w", err)
	}
	if createdAt.Valid {
		rec.CreatedAt = core.NewTimestamp(createdAt.Time)
	}
	return &rec, nil
}
