package ports

import (
	"context"

	"pyrosense/domain/core"
	"pyrosense/domain/study"
)

// LedgerPort persists study records. Writes are append-only; a study is never
// updated after it has been recorded.
type LedgerPort interface {
	SaveStudy(ctx context.Context, rec *study.Record) error
	GetStudy(ctx context.Context, runID core.RunID) (*study.Record, error)
	ListStudies(ctx context.Context, limit int) ([]*study.Record, error)
}
