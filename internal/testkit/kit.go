// Package testkit provides fixtures for exercising the evaluation harness:
// an in-memory study ledger, an in-memory archive, and toy models with known
// sensitivity structure.
package testkit

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"pyrosense/domain/core"
	"pyrosense/domain/fuel"
	"pyrosense/domain/study"
	"pyrosense/domain/units"
)

// InMemoryLedger is a LedgerPort backed by a map, safe for concurrent use.
type InMemoryLedger struct {
	mu      sync.RWMutex
	records map[core.RunID]*study.Record
	order   []core.RunID
}

// NewInMemoryLedger creates an empty in-memory ledger.
func NewInMemoryLedger() *InMemoryLedger {
	return &InMemoryLedger{records: make(map[core.RunID]*study.Record)}
}

// SaveStudy stores a record. Existing run IDs are rejected: the ledger is
// append-only.
func (l *InMemoryLedger) SaveStudy(_ context.Context, rec *study.Record) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, exists := l.records[rec.RunID]; exists {
		return fmt.Errorf("study %s already recorded", rec.RunID)
	}
	l.records[rec.RunID] = rec
	l.order = append(l.order, rec.RunID)
	return nil
}

// GetStudy returns the record for a run ID.
func (l *InMemoryLedger) GetStudy(_ context.Context, runID core.RunID) (*study.Record, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	rec, ok := l.records[runID]
	if !ok {
		return nil, core.ErrRunNotFound
	}
	return rec, nil
}

// ListStudies returns up to limit records in insertion order.
func (l *InMemoryLedger) ListStudies(_ context.Context, limit int) ([]*study.Record, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	ids := l.order
	if limit > 0 && limit < len(ids) {
		ids = ids[:limit]
	}
	out := make([]*study.Record, 0, len(ids))
	for _, id := range ids {
		out = append(out, l.records[id])
	}
	return out, nil
}

// InMemoryArchive is an ArchivePort capturing every exported array.
type InMemoryArchive struct {
	mu     sync.Mutex
	Arrays map[core.RunID][]core.NamedArray
}

// NewInMemoryArchive creates an empty in-memory archive.
func NewInMemoryArchive() *InMemoryArchive {
	return &InMemoryArchive{Arrays: make(map[core.RunID][]core.NamedArray)}
}

// WriteArrays records the arrays handed over for a run.
func (a *InMemoryArchive) WriteArrays(_ context.Context, runID core.RunID, arrays []core.NamedArray) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Arrays[runID] = append(a.Arrays[runID], arrays...)
	return nil
}

// ArrayNames returns the sorted names archived for a run.
func (a *InMemoryArchive) ArrayNames(runID core.RunID) []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	names := make([]string, 0, len(a.Arrays[runID]))
	for _, arr := range a.Arrays[runID] {
		names = append(names, arr.Name)
	}
	sort.Strings(names)
	return names
}

// GrassCatalog builds a small synthetic grass-fuel catalog with the given
// heights (m); loads grow with height.
func GrassCatalog(heights ...float64) (*fuel.Catalog, error) {
	classes := make([]fuel.Class, 0, len(heights))
	for _, h := range heights {
		classes = append(classes, fuel.Class{
			Properties: map[core.StandardName]units.Quantity{
				"fuel_height": units.Scalar(h, units.Meter),
				"fuel_load":   units.Scalar(0.2+0.3*h, units.KilogramPerSquareMeter),
			},
		})
	}
	return fuel.NewCatalog(classes)
}
