package ports

import (
	"context"

	"pyrosense/domain/contract"
	"pyrosense/domain/core"
)

// ModelPort is the evaluation contract every fire-behavior model under test
// exposes. Evaluate takes exactly the flattened output of the quality
// pipeline (bare magnitudes keyed by the model's internal keys, already in
// the contract-declared units) and returns one scalar. category is the
// 1-based fuel class the evaluation is for, or 0 when the model is
// class-free.
//
// Implementations must be pure with respect to their inputs: the evaluation
// loop runs rows concurrently.
type ModelPort interface {
	Key() core.ModelKey
	Registry() *contract.Registry
	Evaluate(ctx context.Context, inputs map[string]float64, category int) (float64, error)
}
