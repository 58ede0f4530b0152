// Package fuelmatch resolves missing fuel descriptions to the nearest class
// of a fuel catalog by weighted, spread-normalized distance over the
// properties the target and the catalog share.
package fuelmatch

import (
	"fmt"
	"math"

	"pyrosense/domain/core"
	"pyrosense/domain/fuel"
	"pyrosense/domain/units"
)

// ClosestClass returns the 1-based index of the catalog class nearest to the
// target properties.
//
// Distance for each class is
//
//	sqrt( sum_k weight[k] * ((class[k] - target[k]) / scale[k])^2 )
//
// over the intersection of the target's keys and the catalog's keys, where
// scale[k] is the property's spread (max-min) across the whole catalog, or
// the target magnitude when the spread is degenerate. The scaling keeps a
// property with large unit magnitudes from dominating the match. Weights
// default to uniform 1. Ties break to the lowest class index.
func ClosestClass(cat *fuel.Catalog, target map[core.StandardName]units.Quantity, weights map[core.StandardName]float64) (int, error) {
	if cat == nil || cat.Len() == 0 {
		return 0, core.ErrEmptyCatalog
	}

	common := commonKeys(cat, target)
	if len(common) == 0 {
		return 0, core.ErrNoCommonProperties
	}

	for name, w := range weights {
		if w <= 0 {
			return 0, fmt.Errorf("weight for %s must be positive, got %g", name, w)
		}
	}

	classes := cat.Classes()

	// Convert each common property onto the catalog's unit for that
	// property and precompute its spread-based scale.
	type axis struct {
		name   core.StandardName
		target float64
		values []float64 // one per class, in the common unit
		scale  float64
		weight float64
	}
	axes := make([]axis, 0, len(common))
	for _, name := range common {
		ref, _ := classes[0].Property(name)
		commonUnit := ref.Unit()

		tq := target[name]
		if !tq.IsScalar() {
			return 0, fmt.Errorf("target property %s is not scalar", name)
		}
		tv, err := tq.Convert(commonUnit)
		if err != nil {
			return 0, fmt.Errorf("target property %s: %w", name, err)
		}

		a := axis{name: name, target: tv.Value(), weight: 1}
		if w, ok := weights[name]; ok {
			a.weight = w
		}

		lo, hi := math.Inf(1), math.Inf(-1)
		a.values = make([]float64, len(classes))
		for i, class := range classes {
			q, _ := class.Property(name)
			if !q.IsScalar() {
				return 0, fmt.Errorf("class %d property %s is not scalar", class.Index, name)
			}
			cv, err := q.Convert(commonUnit)
			if err != nil {
				return 0, fmt.Errorf("class %d property %s: %w", class.Index, name, err)
			}
			v := cv.Value()
			a.values[i] = v
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}

		a.scale = hi - lo
		if a.scale == 0 {
			a.scale = math.Abs(a.target)
		}
		if a.scale == 0 {
			a.scale = 1
		}
		axes = append(axes, a)
	}

	best := 0
	bestDist := math.Inf(1)
	for i := range classes {
		sum := 0.0
		for _, a := range axes {
			d := (a.values[i] - a.target) / a.scale
			sum += a.weight * d * d
		}
		dist := math.Sqrt(sum)
		if dist < bestDist {
			bestDist = dist
			best = classes[i].Index
		}
	}
	return best, nil
}

// commonKeys returns, in catalog property order, the standard names present
// in both the target and the catalog.
func commonKeys(cat *fuel.Catalog, target map[core.StandardName]units.Quantity) []core.StandardName {
	out := make([]core.StandardName, 0, len(target))
	for _, name := range cat.PropertyKeys() {
		if _, ok := target[name]; ok {
			out = append(out, name)
		}
	}
	return out
}
