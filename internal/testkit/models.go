package testkit

import (
	"context"
	"math"

	"pyrosense/domain/contract"
	"pyrosense/domain/core"
	"pyrosense/domain/units"
)

// LinearModel is a toy model f(w) = gain * w with a single wind input. Its
// first-order and total-order wind indices are both exactly 1.
type LinearModel struct {
	Gain float64
}

func (m *LinearModel) Key() core.ModelKey { return "toy-linear" }

func (m *LinearModel) Registry() *contract.Registry {
	return contract.MustNewRegistry(m.Key(), []contract.Contract{
		{
			Key:          "w",
			StandardName: "wind_speed",
			Unit:         units.MeterPerSecond,
			ValidRange:   contract.Unbounded(),
			Role:         contract.RoleInput,
			Shape:        contract.ShapeScalar,
		},
		{
			Key:          "ros",
			StandardName: "rate_of_spread",
			Unit:         units.MeterPerSecond,
			ValidRange:   contract.Unbounded(),
			Role:         contract.RoleOutput,
			Shape:        contract.ShapeScalar,
		},
	})
}

func (m *LinearModel) Evaluate(_ context.Context, inputs map[string]float64, _ int) (float64, error) {
	gain := m.Gain
	if gain == 0 {
		gain = 2
	}
	return gain * inputs["w"], nil
}

// IshigamiModel is the standard three-parameter benchmark function with
// known analytic sensitivity indices; inputs are angles over [-pi, pi].
type IshigamiModel struct{}

func (m *IshigamiModel) Key() core.ModelKey { return "toy-ishigami" }

func (m *IshigamiModel) Registry() *contract.Registry {
	angle := func(key string, name core.StandardName) contract.Contract {
		return contract.Contract{
			Key:          key,
			StandardName: name,
			Unit:         units.Radian,
			ValidRange:   contract.Interval{Min: -math.Pi, Max: math.Pi},
			Role:         contract.RoleInput,
			Shape:        contract.ShapeScalar,
		}
	}
	return contract.MustNewRegistry(m.Key(), []contract.Contract{
		angle("x1", "angle_one"),
		angle("x2", "angle_two"),
		angle("x3", "angle_three"),
		{
			Key:          "y",
			StandardName: "response",
			Unit:         units.Dimensionless,
			ValidRange:   contract.Unbounded(),
			Role:         contract.RoleOutput,
			Shape:        contract.ShapeScalar,
		},
	})
}

func (m *IshigamiModel) Evaluate(_ context.Context, in map[string]float64, _ int) (float64, error) {
	return math.Sin(in["x1"]) + 7*math.Pow(math.Sin(in["x2"]), 2) +
		0.1*math.Pow(in["x3"], 4)*math.Sin(in["x1"]), nil
}
