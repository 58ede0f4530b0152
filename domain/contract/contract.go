// Package contract defines the per-model parameter metadata: the mapping from
// a model's internal variable names onto the shared physical-quantity
// vocabulary, with unit, validity range, and role. A model's registry is built
// once, validated at construction, and read-only afterwards.
package contract

import (
	"fmt"
	"math"

	"pyrosense/domain/core"
	"pyrosense/domain/units"
)

// Role classifies how a model uses a parameter.
type Role string

const (
	RoleInput         Role = "input"
	RoleOptionalInput Role = "optional_input"
	RoleOutput        Role = "output"
)

// Valid reports whether the role is one of the declared values.
func (r Role) Valid() bool {
	switch r {
	case RoleInput, RoleOptionalInput, RoleOutput:
		return true
	}
	return false
}

// Shape declares whether a parameter is a single magnitude or a per-fuel-class
// vector.
type Shape string

const (
	ShapeScalar   Shape = "scalar"
	ShapePerClass Shape = "per_class"
)

// Valid reports whether the shape is one of the declared values.
func (s Shape) Valid() bool {
	return s == ShapeScalar || s == ShapePerClass
}

// Interval is a closed numeric interval in the contract's declared unit.
// Infinite endpoints leave that side open.
type Interval struct {
	Min float64
	Max float64
}

// Unbounded returns the interval covering every finite value.
func Unbounded() Interval {
	return Interval{Min: math.Inf(-1), Max: math.Inf(1)}
}

// Contains reports whether v lies inside the interval.
func (i Interval) Contains(v float64) bool {
	return v >= i.Min && v <= i.Max
}

func (i Interval) String() string {
	return fmt.Sprintf("[%g, %g]", i.Min, i.Max)
}

// Contract describes one model parameter: the model's internal key, the shared
// standard name, the declared unit, physically valid range, role, and shape.
// Contracts are authored once per model and immutable thereafter.
type Contract struct {
	Key          string
	StandardName core.StandardName
	Unit         units.Unit
	ValidRange   Interval
	Role         Role
	Shape        Shape

	// Default fills a missing optional input. Required when Role is
	// optional_input, ignored otherwise.
	Default *units.Quantity
}

// validate checks the contract's internal consistency.
func (c Contract) validate() error {
	if c.Key == "" {
		return core.NewContractError(c.Key, "internal key is empty")
	}
	if c.StandardName == "" {
		return core.NewContractError(c.Key, "standard name is empty")
	}
	if c.Unit.IsZero() {
		return core.NewContractError(c.Key, "unit is not declared")
	}
	if !c.Role.Valid() {
		return core.NewContractError(c.Key, fmt.Sprintf("invalid role %q", c.Role))
	}
	if !c.Shape.Valid() {
		return core.NewContractError(c.Key, fmt.Sprintf("invalid shape %q", c.Shape))
	}
	if c.ValidRange.Min > c.ValidRange.Max {
		return core.NewContractError(c.Key, fmt.Sprintf("range %s has min above max", c.ValidRange))
	}
	if c.Role == RoleOptionalInput {
		if c.Default == nil {
			return core.NewContractError(c.Key, "optional input declares no default")
		}
		if !units.SameDimension(c.Default.Unit(), c.Unit) {
			return core.NewContractError(c.Key, fmt.Sprintf(
				"default unit %s is not convertible to declared unit %s",
				c.Default.Unit(), c.Unit))
		}
	}
	return nil
}
