// Package sensitivity estimates variance-based global sensitivity indices
// from a Saltelli-augmented Sobol design and the model outputs evaluated over
// it: first-order and total-order indices per parameter, with bootstrap
// confidence half-widths.
package sensitivity

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"pyrosense/domain/core"
	"pyrosense/internal/doe"
)

// Options tunes the estimation.
type Options struct {
	// BootstrapSamples is the number of bootstrap replicates behind the
	// confidence half-widths. Zero means the default of 100.
	BootstrapSamples int

	// Confidence is the two-sided confidence level. Zero means 0.95.
	Confidence float64

	// Seed drives the bootstrap resampling so results are reproducible.
	// Zero means the default seed of 1.
	Seed int64
}

func (o Options) withDefaults() Options {
	if o.BootstrapSamples == 0 {
		o.BootstrapSamples = 100
	}
	if o.Confidence == 0 {
		o.Confidence = 0.95
	}
	if o.Seed == 0 {
		o.Seed = 1
	}
	return o
}

// Result holds the indices for one output dimension. Index values are
// reported raw: estimation noise can push them outside [0,1], and a
// total-order index can fall below its first-order partner. Both findings are
// surfaced, never clamped.
type Result struct {
	// FirstOrder holds S_d per parameter: the output variance fraction
	// attributable to that parameter alone.
	FirstOrder []float64

	// Total holds S_Td per parameter: the variance fraction attributable
	// to the parameter including all its interactions.
	Total []float64

	// FirstOrderConf and TotalConf are the bootstrap confidence
	// half-widths paired with the indices.
	FirstOrderConf []float64
	TotalConf      []float64

	// TotalBelowFirst lists parameter indexes where S_Td < S_d. In the
	// well-behaved case this does not happen; a violation means estimator
	// noise or a genuinely pathological model response.
	TotalBelowFirst []int

	// OutputVariance is the pooled sample variance the indices are
	// normalized by.
	OutputVariance float64
}

// Analyze decomposes the output variance over the design's parameters. The
// outputs must align 1:1 with the design's rows.
func Analyze(design *doe.Design, outputs []float64, opts Options) (*Result, error) {
	if design == nil {
		return nil, fmt.Errorf("%w: no design given", core.ErrOutputMismatch)
	}
	if len(outputs) != design.Rows() {
		return nil, fmt.Errorf("%w: %d outputs for %d design rows",
			core.ErrOutputMismatch, len(outputs), design.Rows())
	}
	opts = opts.withDefaults()

	n := design.BasePoints()
	dims := design.Dim()

	// Split the flat output vector along the design's block labeling.
	fA := make([]float64, n)
	fB := make([]float64, n)
	fAB := make([][]float64, dims)
	fBA := make([][]float64, dims)
	for d := 0; d < dims; d++ {
		fAB[d] = make([]float64, n)
		fBA[d] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		fA[i] = outputs[design.BaseRow(i)]
		fB[i] = outputs[design.ResampledRow(i)]
		for d := 0; d < dims; d++ {
			fAB[d][i] = outputs[design.FirstOrderRow(d, i)]
			fBA[d][i] = outputs[design.TotalOrderRow(d, i)]
		}
	}

	identity := make([]int, n)
	for i := range identity {
		identity[i] = i
	}

	first, total, variance := estimate(fA, fB, fAB, fBA, identity)

	res := &Result{
		FirstOrder:     first,
		Total:          total,
		OutputVariance: variance,
	}
	for d := 0; d < dims; d++ {
		if res.Total[d] < res.FirstOrder[d] {
			res.TotalBelowFirst = append(res.TotalBelowFirst, d)
		}
	}

	var err error
	res.FirstOrderConf, res.TotalConf, err = bootstrapConfidence(fA, fB, fAB, fBA, opts)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// AnalyzeAll runs Analyze once per output dimension (e.g. once per fuel class
// when a model is evaluated per class over the same design).
func AnalyzeAll(design *doe.Design, outputs [][]float64, opts Options) ([]*Result, error) {
	results := make([]*Result, 0, len(outputs))
	for i, out := range outputs {
		r, err := Analyze(design, out, opts)
		if err != nil {
			return nil, fmt.Errorf("output dimension %d: %w", i, err)
		}
		results = append(results, r)
	}
	return results, nil
}

// estimate computes the indices over the base points selected by idx.
// First-order uses the Saltelli cross-product estimator between the resampled
// outputs and the single-dimension swap; total-order uses the Jansen
// difference estimator against the complementary swap.
func estimate(fA, fB []float64, fAB, fBA [][]float64, idx []int) (first, total []float64, variance float64) {
	dims := len(fAB)
	n := len(idx)

	pooled := make([]float64, 0, 2*n)
	for _, i := range idx {
		pooled = append(pooled, fA[i], fB[i])
	}
	variance = stat.Variance(pooled, nil)

	first = make([]float64, dims)
	total = make([]float64, dims)
	if variance == 0 {
		// Constant response: every index is zero by convention.
		return first, total, variance
	}

	for d := 0; d < dims; d++ {
		var sumFirst, sumTotal float64
		for _, i := range idx {
			sumFirst += fB[i] * (fAB[d][i] - fA[i])
			diff := fB[i] - fBA[d][i]
			sumTotal += diff * diff
		}
		first[d] = sumFirst / float64(n) / variance
		total[d] = sumTotal / (2 * float64(n)) / variance
	}
	return first, total, variance
}

// Arrays exports the result as named arrays with role metadata for the
// archival writer. Indices are dimensionless; values are ordered by design
// parameter.
func (r *Result) Arrays() []core.NamedArray {
	arr := func(role core.ArrayRole, name string, values []float64) core.NamedArray {
		return core.NamedArray{Name: name, Unit: "1", Role: role, Values: values}
	}
	return []core.NamedArray{
		arr(core.RoleFirstOrder, "first_order", r.FirstOrder),
		arr(core.RoleTotalOrder, "total_order", r.Total),
		arr(core.RoleConfidence, "first_order_conf", r.FirstOrderConf),
		arr(core.RoleConfidence, "total_order_conf", r.TotalConf),
	}
}
