// Package models holds the built-in fire behavior models the harness ships
// with. Each model publishes its input surface through a contract registry
// and evaluates pure scalar inputs, so studies can fan evaluations out across
// workers without coordination.
package models

import (
	"context"
	"math"

	"pyrosense/domain/contract"
	"pyrosense/domain/core"
	"pyrosense/domain/units"
)

// WindSlope is a simplified empirical surface-spread model: a fuel-dependent
// base rate amplified by midflame wind and upslope terrain and damped by dead
// fuel moisture. The coefficients are illustrative, not calibrated.
type WindSlope struct {
	registry *contract.Registry
}

// NewWindSlope builds the reference model and its registry.
func NewWindSlope() *WindSlope {
	m := &WindSlope{}
	m.registry = contract.MustNewRegistry(m.Key(), []contract.Contract{
		{
			Key:          "wind",
			StandardName: "wind_speed",
			Unit:         units.MeterPerSecond,
			ValidRange:   contract.Interval{Min: 0, Max: 30},
			Role:         contract.RoleInput,
			Shape:        contract.ShapeScalar,
		},
		{
			Key:          "slope",
			StandardName: "slope_angle",
			Unit:         units.Degree,
			ValidRange:   contract.Interval{Min: -45, Max: 45},
			Role:         contract.RoleInput,
			Shape:        contract.ShapeScalar,
		},
		{
			Key:          "load",
			StandardName: "fuel_load",
			Unit:         units.KilogramPerSquareMeter,
			ValidRange:   contract.Interval{Min: 0, Max: 10},
			Role:         contract.RoleInput,
			Shape:        contract.ShapePerClass,
		},
		{
			Key:          "mf",
			StandardName: "fuel_moisture",
			Unit:         units.Percent,
			ValidRange:   contract.Interval{Min: 0, Max: 60},
			Role:         contract.RoleOptionalInput,
			Shape:        contract.ShapeScalar,
			Default:      defaultMoisture(),
		},
		{
			Key:          "ros",
			StandardName: "rate_of_spread",
			Unit:         units.MeterPerSecond,
			ValidRange:   contract.Interval{Min: 0, Max: math.Inf(1)},
			Role:         contract.RoleOutput,
			Shape:        contract.ShapeScalar,
		},
	})
	return m
}

func defaultMoisture() *units.Quantity {
	q := units.Scalar(8, units.Percent)
	return &q
}

func (m *WindSlope) Key() core.ModelKey { return "windslope-v1" }

func (m *WindSlope) Registry() *contract.Registry { return m.registry }

// Evaluate computes the spread rate for one already-prepared input set.
// Inputs arrive keyed by internal key, in contract units, with any per-class
// vector already projected to the requested category.
func (m *WindSlope) Evaluate(_ context.Context, in map[string]float64, _ int) (float64, error) {
	wind := in["wind"]
	slope := in["slope"] * math.Pi / 180
	load := in["load"]
	mf := in["mf"]

	// No fuel, no fire.
	if load <= 0 {
		return 0, nil
	}

	base := 0.03 * math.Sqrt(load)

	windFactor := 1 + 2.5*math.Pow(math.Max(wind, 0), 0.8)

	// Downslope runs get no terrain boost.
	slopeFactor := 1.0
	if t := math.Tan(slope); t > 0 {
		slopeFactor = 1 + 5.3*t*t
	}

	// Linear damping toward the extinction moisture.
	const extinctionMoisture = 40.0
	damping := 1 - mf/extinctionMoisture
	if damping < 0 {
		damping = 0
	}

	return base * windFactor * slopeFactor * damping, nil
}
