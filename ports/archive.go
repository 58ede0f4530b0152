package ports

import (
	"context"

	"pyrosense/domain/core"
)

// ArchivePort is the boundary to the external archival writer. The core only
// hands over named arrays with unit and role metadata; the self-describing
// on-disk layout is the writer's concern.
type ArchivePort interface {
	WriteArrays(ctx context.Context, runID core.RunID, arrays []core.NamedArray) error
}
