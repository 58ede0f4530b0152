// Package app wires the evaluation core together: it generates the design,
// drives the model evaluation loop, and hands the aligned outputs to the
// sensitivity analyzer.
package app

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"pyrosense/domain/contract"
	"pyrosense/domain/core"
	"pyrosense/domain/study"
	"pyrosense/domain/units"
	"pyrosense/internal"
	"pyrosense/internal/doe"
	"pyrosense/internal/quality"
	"pyrosense/internal/sensitivity"
	"pyrosense/ports"
)

// StudyService runs complete sensitivity studies over one model.
type StudyService struct {
	model   ports.ModelPort
	ledger  ports.LedgerPort  // optional; nil skips persistence
	archive ports.ArchivePort // optional; nil skips array export
	logger  *internal.Logger
	workers int
}

// NewStudyService creates a study service. ledger and archive may be nil.
func NewStudyService(model ports.ModelPort, ledger ports.LedgerPort, archive ports.ArchivePort, logger *internal.Logger) *StudyService {
	return &StudyService{
		model:   model,
		ledger:  ledger,
		archive: archive,
		logger:  logger,
		workers: runtime.NumCPU(),
	}
}

// SetWorkers bounds the evaluation loop's concurrency.
func (s *StudyService) SetWorkers(n int) {
	if n > 0 {
		s.workers = n
	}
}

// StudyRequest defines one sensitivity study.
type StudyRequest struct {
	// Parameters are the environmental dimensions to vary, in design
	// column order.
	Parameters []doe.Parameter

	// BasePoints is the Sobol base point count N; must be a power of two.
	BasePoints int

	// BaseInputs supplies every model input the design does not vary.
	// Values follow the quality pipeline's raw-input conventions.
	BaseInputs map[string]interface{}

	// Categories lists the 1-based fuel classes to evaluate the design
	// for, one output dimension each. Empty means one class-free pass.
	Categories []int

	// RequireOptional extends the pipeline's completeness check to
	// optional inputs.
	RequireOptional bool

	// Analyzer tunes the sensitivity estimation.
	Analyzer sensitivity.Options

	// RunID overrides the generated run identifier.
	RunID core.RunID
}

// StudyResult carries the persisted record plus the full in-memory artifacts
// a caller may want to inspect or export.
type StudyResult struct {
	Record   *study.Record
	Design   *doe.Design
	Outputs  [][]float64 // one aligned vector per requested category
	Warnings []quality.RangeViolation
}

// RunStudy executes the request end to end: design generation, parallel
// model evaluation per design row, and variance decomposition. Row order is
// preserved by index so outputs stay aligned with the sample matrix.
func (s *StudyService) RunStudy(ctx context.Context, req StudyRequest) (*StudyResult, error) {
	start := time.Now()

	design, err := doe.SobolDesign(req.Parameters, req.BasePoints)
	if err != nil {
		return nil, fmt.Errorf("generating design: %w", err)
	}

	categories := req.Categories
	if len(categories) == 0 {
		categories = []int{0}
	}

	runID := req.RunID
	if runID == "" {
		runID = core.RunID(core.NewID())
	}

	outputs := make([][]float64, len(categories))
	var warnings []quality.RangeViolation
	for ci, category := range categories {
		outputs[ci], err = s.evaluateDesign(ctx, design, req, category, &warnings)
		if err != nil {
			return nil, fmt.Errorf("evaluating category %d: %w", category, err)
		}
	}

	s.logger.Info("study %s: evaluated %d rows x %d categories with %d range violations",
		runID, design.Rows(), len(categories), len(warnings))

	analyses, err := sensitivity.AnalyzeAll(design, outputs, req.Analyzer)
	if err != nil {
		return nil, fmt.Errorf("analyzing outputs: %w", err)
	}

	rec := s.assembleRecord(runID, design, categories, analyses, len(warnings), start)
	if s.ledger != nil {
		if err := s.ledger.SaveStudy(ctx, rec); err != nil {
			return nil, fmt.Errorf("recording study: %w", err)
		}
	}
	if s.archive != nil {
		if err := s.archive.WriteArrays(ctx, runID, s.exportArrays(design, categories, outputs, analyses)); err != nil {
			return nil, fmt.Errorf("archiving study arrays: %w", err)
		}
	}

	return &StudyResult{
		Record:   rec,
		Design:   design,
		Outputs:  outputs,
		Warnings: warnings,
	}, nil
}

// evaluateDesign runs the quality pipeline and the model over every design
// row for one fuel category. Rows are independent, so the loop fans out over
// a bounded worker pool; the slot index keeps outputs aligned.
func (s *StudyService) evaluateDesign(ctx context.Context, design *doe.Design, req StudyRequest, category int, warnings *[]quality.RangeViolation) ([]float64, error) {
	rows := design.Rows()
	params := design.Parameters()
	out := make([]float64, rows)
	rowWarnings := make([][]quality.RangeViolation, rows)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i := 0; i < rows; i++ {
		i := i
		g.Go(func() error {
			raw := make(map[string]interface{}, len(req.BaseInputs)+len(params))
			for k, v := range req.BaseInputs {
				raw[k] = v
			}
			for j, p := range params {
				raw[p.Name] = units.Scalar(design.Value(i, j), p.Min.Unit())
			}

			prepared, err := quality.Prepare(raw, s.model.Registry(), quality.Options{
				Category:        category,
				RequireOptional: req.RequireOptional,
				Logger:          s.logger,
			})
			if err != nil {
				return fmt.Errorf("row %d: %w", i, err)
			}
			rowWarnings[i] = prepared.Warnings

			inputs, err := prepared.Scalars()
			if err != nil {
				return fmt.Errorf("row %d: %w", i, err)
			}

			v, err := s.model.Evaluate(gctx, inputs, category)
			if err != nil {
				return fmt.Errorf("row %d: %w", i, err)
			}
			out[i] = v
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, ws := range rowWarnings {
		*warnings = append(*warnings, ws...)
	}
	return out, nil
}

func (s *StudyService) assembleRecord(runID core.RunID, design *doe.Design, categories []int, analyses []*sensitivity.Result, warningCount int, start time.Time) *study.Record {
	names := make([]string, design.Dim())
	for j, p := range design.Parameters() {
		names[j] = p.Name
	}

	results := make([]study.CategoryResult, len(analyses))
	for i, a := range analyses {
		results[i] = study.CategoryResult{
			Category:        categories[i],
			FirstOrder:      a.FirstOrder,
			Total:           a.Total,
			FirstOrderConf:  a.FirstOrderConf,
			TotalConf:       a.TotalConf,
			TotalBelowFirst: a.TotalBelowFirst,
			OutputVariance:  a.OutputVariance,
		}
	}

	return &study.Record{
		RunID:        runID,
		Model:        s.model.Key(),
		RegistryHash: s.model.Registry().Hash(),
		DesignHash:   design.Hash(),
		Parameters:   names,
		BasePoints:   design.BasePoints(),
		WarningCount: warningCount,
		Results:      results,
		CreatedAt:    core.Now(),
		RuntimeMs:    time.Since(start).Milliseconds(),
	}
}

func (s *StudyService) exportArrays(design *doe.Design, categories []int, outputs [][]float64, analyses []*sensitivity.Result) []core.NamedArray {
	outputUnit := "1"
	reg := s.model.Registry()
	if keys := reg.KeysWithRole(contract.RoleOutput); len(keys) > 0 {
		if c, err := reg.ContractFor(keys[0]); err == nil {
			outputUnit = c.Unit.Symbol()
		}
	}

	arrays := design.Arrays()
	for ci, out := range outputs {
		arrays = append(arrays, core.NamedArray{
			Name:   fmt.Sprintf("outputs_category_%d", categories[ci]),
			Unit:   outputUnit,
			Role:   core.RoleModelOutput,
			Values: out,
		})
	}
	for ci, a := range analyses {
		for _, arr := range a.Arrays() {
			arr.Name = fmt.Sprintf("category_%d_%s", categories[ci], arr.Name)
			arrays = append(arrays, arr)
		}
	}
	return arrays
}
