// Package study defines the durable record of one sensitivity study run: the
// provenance (model, registry and design fingerprints) plus the estimated
// indices per evaluated output dimension.
package study

import (
	"pyrosense/domain/core"
)

// CategoryResult holds the sensitivity indices for one output dimension,
// typically one fuel class. Index values are reported raw; see the analyzer
// for why they are never clamped.
type CategoryResult struct {
	// Category is the 1-based fuel class the indices belong to, 0 for
	// class-free studies.
	Category int `json:"category"`

	FirstOrder     []float64 `json:"first_order"`
	Total          []float64 `json:"total"`
	FirstOrderConf []float64 `json:"first_order_conf"`
	TotalConf      []float64 `json:"total_conf"`

	// TotalBelowFirst lists parameter indexes whose total-order index fell
	// below the first-order one, surfaced for downstream presentation.
	TotalBelowFirst []int `json:"total_below_first,omitempty"`

	OutputVariance float64 `json:"output_variance"`
}

// Record is the complete, reproducible description of one study run.
type Record struct {
	RunID        core.RunID        `json:"run_id"`
	Model        core.ModelKey     `json:"model"`
	RegistryHash core.RegistryHash `json:"registry_hash"`
	DesignHash   core.DesignHash   `json:"design_hash"`

	Parameters []string `json:"parameters"`
	BasePoints int      `json:"base_points"`

	// WarningCount is the number of range violations the quality pipeline
	// reported across all evaluated rows.
	WarningCount int `json:"warning_count"`

	Results []CategoryResult `json:"results"`

	CreatedAt core.Timestamp `json:"created_at"`
	RuntimeMs int64          `json:"runtime_ms"`
}
