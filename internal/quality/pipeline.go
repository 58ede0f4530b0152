// Package quality implements the data-quality pipeline that sits between raw
// input mappings and model evaluation: completeness checking against a
// parameter registry, fuel-category projection, unit conversion, range
// validation, and magnitude extraction. No bare number crosses this boundary
// without an explicit, declared unit interpretation.
package quality

import (
	"fmt"

	"pyrosense/domain/contract"
	"pyrosense/domain/core"
	"pyrosense/domain/units"
	"pyrosense/internal"
)

// Options tunes one Prepare call.
type Options struct {
	// Category is the 1-based fuel class used to project class-indexed
	// values down to scalars. Zero means no category was given.
	Category int

	// RequireOptional extends the completeness check to optional inputs:
	// a missing optional input then fails instead of taking its default.
	RequireOptional bool

	// Logger receives range-violation events. Nil is a no-op.
	Logger *internal.Logger
}

// Value is one prepared, unit-stripped magnitude in the shape the contract
// declares: a scalar or a per-class vector.
type Value struct {
	scalar bool
	s      float64
	v      []float64
}

// NewScalar wraps a bare scalar magnitude.
func NewScalar(v float64) Value { return Value{scalar: true, s: v} }

// NewVector wraps a bare vector of magnitudes.
func NewVector(vs []float64) Value {
	cp := make([]float64, len(vs))
	copy(cp, vs)
	return Value{v: cp}
}

// IsScalar reports whether the value is a single magnitude.
func (v Value) IsScalar() bool { return v.scalar }

// Float returns the scalar magnitude.
func (v Value) Float() float64 { return v.s }

// Floats returns the vector magnitudes (a one-element slice for scalars).
func (v Value) Floats() []float64 {
	if v.scalar {
		return []float64{v.s}
	}
	cp := make([]float64, len(v.v))
	copy(cp, v.v)
	return cp
}

// RangeViolation reports a converted magnitude falling outside its contract's
// valid range. Violations are surfaced alongside results, never raised:
// models may tolerate mild extrapolation, but the caller must see it.
type RangeViolation struct {
	Key          string
	StandardName core.StandardName
	Value        float64
	Range        contract.Interval
	Unit         string
}

func (rv RangeViolation) String() string {
	return fmt.Sprintf("%s (%s): value %g %s outside valid range %s",
		rv.Key, rv.StandardName, rv.Value, rv.Unit, rv.Range)
}

// Prepared is the pipeline's output: unit-correct bare magnitudes keyed by
// internal key, plus every range violation encountered.
type Prepared struct {
	Values   map[string]Value
	Warnings []RangeViolation
}

// Scalars flattens the prepared values into the bare scalar mapping the model
// evaluation contract consumes. It fails if any value is still class-indexed.
func (p *Prepared) Scalars() (map[string]float64, error) {
	out := make(map[string]float64, len(p.Values))
	for key, v := range p.Values {
		if !v.IsScalar() {
			return nil, core.NewAmbiguousCategoryError(key)
		}
		out[key] = v.Float()
	}
	return out, nil
}

// Prepare validates, converts, and flattens raw inputs against a registry.
//
// Raw values may be units.Quantity, float64, int, or []float64; bare numerics
// are interpreted as magnitudes already in the contract's declared unit. Each
// contract's value is looked up under its internal key first, then under its
// standard name. Pure function of its inputs; the returned warnings are the
// only reported side channel.
func Prepare(raw map[string]interface{}, reg *contract.Registry, opts Options) (*Prepared, error) {
	prepared := &Prepared{Values: make(map[string]Value, reg.Len())}

	for _, key := range reg.Keys() {
		c, err := reg.ContractFor(key)
		if err != nil {
			return nil, err
		}
		if c.Role == contract.RoleOutput {
			continue
		}

		q, found, err := lookup(raw, c)
		if err != nil {
			return nil, err
		}
		if !found {
			if c.Role == contract.RoleInput || opts.RequireOptional {
				return nil, core.NewMissingInputError(c.StandardName)
			}
			// Missing optional input: silently fill from the declared default.
			q = *c.Default
		}

		q, err = project(q, c, opts.Category)
		if err != nil {
			return nil, err
		}

		converted, err := q.Convert(c.Unit)
		if err != nil {
			return nil, fmt.Errorf("converting %q: %w", c.Key, err)
		}

		for _, mag := range converted.Values() {
			if !c.ValidRange.Contains(mag) {
				rv := RangeViolation{
					Key:          c.Key,
					StandardName: c.StandardName,
					Value:        mag,
					Range:        c.ValidRange,
					Unit:         c.Unit.Symbol(),
				}
				prepared.Warnings = append(prepared.Warnings, rv)
				opts.Logger.Warn("range violation: %s", rv)
			}
		}

		if converted.IsScalar() {
			prepared.Values[c.Key] = NewScalar(converted.Value())
		} else {
			prepared.Values[c.Key] = NewVector(converted.Values())
		}
	}

	return prepared, nil
}

// lookup finds the raw value for a contract under its internal key or its
// standard name, coercing supported bare-numeric forms into Quantities in the
// contract's declared unit.
func lookup(raw map[string]interface{}, c contract.Contract) (units.Quantity, bool, error) {
	v, ok := raw[c.Key]
	if !ok {
		v, ok = raw[c.StandardName.String()]
	}
	if !ok {
		return units.Quantity{}, false, nil
	}

	switch val := v.(type) {
	case units.Quantity:
		return val, true, nil
	case float64:
		return units.Scalar(val, c.Unit), true, nil
	case int:
		return units.Scalar(float64(val), c.Unit), true, nil
	case []float64:
		return units.Vector(val, c.Unit), true, nil
	default:
		return units.Quantity{}, false, fmt.Errorf("input %q has unsupported type %T", c.Key, v)
	}
}

// project selects the fuel-category position of a class-indexed value. A
// class-indexed value meeting a scalar contract without a category is
// ambiguous and fails.
func project(q units.Quantity, c contract.Contract, category int) (units.Quantity, error) {
	if q.IsScalar() {
		return q, nil
	}
	if category > 0 {
		mag, err := q.At(category - 1)
		if err != nil {
			return units.Quantity{}, fmt.Errorf("projecting %q to fuel category %d: %w", c.Key, category, err)
		}
		return units.Scalar(mag, q.Unit()), nil
	}
	if c.Shape == contract.ShapeScalar {
		return units.Quantity{}, core.NewAmbiguousCategoryError(c.Key)
	}
	return q, nil
}
