// Package doe generates low-discrepancy designs of experiments over named,
// unit-tagged parameter ranges. The Saltelli-augmented Sobol design it
// produces feeds both direct model evaluation and the variance decomposition
// in the sensitivity analyzer.
package doe

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"pyrosense/domain/core"
	"pyrosense/domain/units"
)

// Parameter is one named design dimension with a physical [Min, Max] range.
// Min and Max must be scalar quantities of the same physical dimension; the
// design column carries Min's unit.
type Parameter struct {
	Name string
	Min  units.Quantity
	Max  units.Quantity
}

// BlockKind labels which role a design row plays in the variance
// decomposition.
type BlockKind int

const (
	// BlockBase rows are the baseline sample matrix A.
	BlockBase BlockKind = iota
	// BlockResampled rows are the fully resampled matrix B.
	BlockResampled
	// BlockFirstOrder rows are A with one dimension replaced from B (the
	// AB_d matrices feeding first-order estimation).
	BlockFirstOrder
	// BlockTotalOrder rows are B with one dimension held from A (the BA_d
	// matrices feeding total-order estimation).
	BlockTotalOrder
)

func (k BlockKind) String() string {
	switch k {
	case BlockBase:
		return "base"
	case BlockResampled:
		return "resampled"
	case BlockFirstOrder:
		return "first_order"
	case BlockTotalOrder:
		return "total_order"
	}
	return "unknown"
}

// Design is the augmented sample matrix for a Sobol sensitivity study: for D
// parameters and N base points it holds N*(2D+2) rows in fixed block order
// A, B, AB_1..AB_D, BA_1..BA_D. Construction is bit-for-bit deterministic for
// a fixed parameter order and base point count.
type Design struct {
	params []Parameter
	n      int
	m      *mat.Dense
	hash   core.DesignHash
}

// SobolDesign builds the augmented design. numBasePoints must be a positive
// power of two: the balance properties of the underlying sequence, and with
// them the low-discrepancy guarantee the estimators rely on, hold only at
// power-of-two sample counts, so this is a hard precondition rather than a
// recommendation.
func SobolDesign(params []Parameter, numBasePoints int) (*Design, error) {
	if numBasePoints < 1 || numBasePoints&(numBasePoints-1) != 0 {
		return nil, fmt.Errorf("%w: got %d", core.ErrInvalidSampleCount, numBasePoints)
	}
	d := len(params)
	if d == 0 {
		return nil, fmt.Errorf("%w: no parameters given", core.ErrInvalidRange)
	}
	if 2*d > maxSobolDim {
		return nil, fmt.Errorf("design supports at most %d parameters, got %d", maxSobolDim/2, d)
	}

	// Per-parameter affine maps from [0,1) onto [min, max] in Min's unit.
	lo := make([]float64, d)
	span := make([]float64, d)
	for j, p := range params {
		if p.Name == "" {
			return nil, fmt.Errorf("%w: parameter %d has no name", core.ErrInvalidRange, j)
		}
		if !p.Min.IsScalar() || !p.Max.IsScalar() {
			return nil, fmt.Errorf("%w: parameter %q bounds must be scalar", core.ErrInvalidRange, p.Name)
		}
		maxQ, err := p.Max.Convert(p.Min.Unit())
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", p.Name, err)
		}
		lo[j] = p.Min.Value()
		span[j] = maxQ.Value() - lo[j]
		if span[j] <= 0 {
			return nil, fmt.Errorf("%w: parameter %q has max <= min", core.ErrInvalidRange, p.Name)
		}
	}

	// One 2D-dimensional sequence supplies both the baseline block (first D
	// coordinates) and the resampled block (last D coordinates).
	seq, err := newSobolSequence(2 * d)
	if err != nil {
		return nil, err
	}

	n := numBasePoints
	rows := n * (2*d + 2)
	m := mat.NewDense(rows, d, nil)
	point := make([]float64, 2*d)

	for i := 0; i < n; i++ {
		seq.next(point)
		a := point[:d]
		b := point[d:]

		for j := 0; j < d; j++ {
			av := lo[j] + a[j]*span[j]
			bv := lo[j] + b[j]*span[j]

			m.Set(i, j, av)   // A
			m.Set(n+i, j, bv) // B
			for k := 0; k < d; k++ {
				// AB_k: A with column k taken from B.
				if j == k {
					m.Set((2+k)*n+i, j, bv)
				} else {
					m.Set((2+k)*n+i, j, av)
				}
				// BA_k: B with column k taken from A.
				if j == k {
					m.Set((2+d+k)*n+i, j, av)
				} else {
					m.Set((2+d+k)*n+i, j, bv)
				}
			}
		}
	}

	cp := make([]Parameter, d)
	copy(cp, params)
	design := &Design{params: cp, n: n, m: m}
	design.hash = design.computeHash()
	return design, nil
}

// Rows returns the augmented row count, N*(2D+2).
func (d *Design) Rows() int { return d.n * (2*d.Dim() + 2) }

// Dim returns the number of parameters D.
func (d *Design) Dim() int { return len(d.params) }

// BasePoints returns the base point count N.
func (d *Design) BasePoints() int { return d.n }

// Parameters returns the design's parameters in column order.
func (d *Design) Parameters() []Parameter {
	out := make([]Parameter, len(d.params))
	copy(out, d.params)
	return out
}

// Value returns the physical value at a design cell, in the parameter's unit.
func (d *Design) Value(row, col int) float64 { return d.m.At(row, col) }

// Row copies one design point into a fresh slice, ordered by parameter.
func (d *Design) Row(i int) []float64 {
	out := make([]float64, d.Dim())
	mat.Row(out, i, d.m)
	return out
}

// Role reports which block a row belongs to and, for the single-dimension
// blocks, which parameter index it perturbs (-1 otherwise).
func (d *Design) Role(row int) (BlockKind, int) {
	block := row / d.n
	switch {
	case block == 0:
		return BlockBase, -1
	case block == 1:
		return BlockResampled, -1
	case block < 2+d.Dim():
		return BlockFirstOrder, block - 2
	default:
		return BlockTotalOrder, block - 2 - d.Dim()
	}
}

// Row-index helpers used by the analyzer to line outputs up with blocks.

// BaseRow returns the row index of the i-th baseline point.
func (d *Design) BaseRow(i int) int { return i }

// ResampledRow returns the row index of the i-th fully resampled point.
func (d *Design) ResampledRow(i int) int { return d.n + i }

// FirstOrderRow returns the row index of the i-th AB_dim point.
func (d *Design) FirstOrderRow(dim, i int) int { return (2+dim)*d.n + i }

// TotalOrderRow returns the row index of the i-th BA_dim point.
func (d *Design) TotalOrderRow(dim, i int) int { return (2+d.Dim()+dim)*d.n + i }

// Hash returns the design's deterministic fingerprint.
func (d *Design) Hash() core.DesignHash { return d.hash }

func (d *Design) computeHash() core.DesignHash {
	var data string
	data = fmt.Sprintf("n=%d", d.n)
	for _, p := range d.params {
		maxQ, _ := p.Max.Convert(p.Min.Unit())
		data += fmt.Sprintf(";%s:%s:%g:%g", p.Name, p.Min.Unit().Symbol(), p.Min.Value(), maxQ.Value())
	}
	return core.NewDesignHash([]byte(data))
}

// Arrays exports the design columns as named arrays with unit and role
// metadata for the archival writer.
func (d *Design) Arrays() []core.NamedArray {
	out := make([]core.NamedArray, 0, d.Dim())
	for j, p := range d.params {
		col := make([]float64, d.Rows())
		mat.Col(col, j, d.m)
		out = append(out, core.NamedArray{
			Name:   p.Name,
			Unit:   p.Min.Unit().Symbol(),
			Role:   core.RoleDesignColumn,
			Values: col,
		})
	}
	return out
}
