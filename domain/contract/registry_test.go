package contract

import (
	"errors"
	"testing"

	"pyrosense/domain/core"
	"pyrosense/domain/units"
)

func testContracts() []Contract {
	dead := units.Scalar(8, units.Percent)
	return []Contract{
		{
			Key:          "wind",
			StandardName: "wind_speed",
			Unit:         units.MeterPerSecond,
			ValidRange:   Unbounded(),
			Role:         RoleInput,
			Shape:        ShapeScalar,
		},
		{
			Key:          "slope",
			StandardName: "slope_angle",
			Unit:         units.Degree,
			ValidRange:   Interval{Min: -90, Max: 90},
			Role:         RoleInput,
			Shape:        ShapeScalar,
		},
		{
			Key:          "mf",
			StandardName: "dead_fuel_moisture",
			Unit:         units.Percent,
			ValidRange:   Interval{Min: 0, Max: 300},
			Role:         RoleOptionalInput,
			Shape:        ShapeScalar,
			Default:      &dead,
		},
		{
			Key:          "ros",
			StandardName: "rate_of_spread",
			Unit:         units.MeterPerSecond,
			ValidRange:   Interval{Min: 0, Max: 50},
			Role:         RoleOutput,
			Shape:        ShapeScalar,
		},
	}
}

func TestNewRegistry_Valid(t *testing.T) {
	r, err := NewRegistry("test-model", testContracts())
	if err != nil {
		t.Fatalf("NewRegistry failed: %v", err)
	}
	if r.Len() != 4 {
		t.Errorf("Len() = %d, want 4", r.Len())
	}
	if r.Model() != "test-model" {
		t.Errorf("Model() = %s, want test-model", r.Model())
	}
	if r.Hash().String() == "" {
		t.Error("registry hash should not be empty")
	}
}

func TestNewRegistry_DuplicateKey(t *testing.T) {
	cs := testContracts()
	cs = append(cs, cs[0])
	_, err := NewRegistry("test-model", cs)
	if !errors.Is(err, core.ErrInvalidContract) {
		t.Fatalf("expected ErrInvalidContract for duplicate key, got %v", err)
	}
}

func TestNewRegistry_MissingDefault(t *testing.T) {
	cs := testContracts()
	cs[2].Default = nil
	_, err := NewRegistry("test-model", cs)
	if !errors.Is(err, core.ErrInvalidContract) {
		t.Fatalf("expected ErrInvalidContract for optional input without default, got %v", err)
	}
}

func TestNewRegistry_DefaultUnitMismatch(t *testing.T) {
	cs := testContracts()
	bad := units.Scalar(8, units.Meter)
	cs[2].Default = &bad
	_, err := NewRegistry("test-model", cs)
	if !errors.Is(err, core.ErrInvalidContract) {
		t.Fatalf("expected ErrInvalidContract for default unit mismatch, got %v", err)
	}
}

func TestNewRegistry_InvertedRange(t *testing.T) {
	cs := testContracts()
	cs[1].ValidRange = Interval{Min: 90, Max: -90}
	_, err := NewRegistry("test-model", cs)
	if !errors.Is(err, core.ErrInvalidContract) {
		t.Fatalf("expected ErrInvalidContract for inverted range, got %v", err)
	}
}

func TestContractFor_UnknownKey(t *testing.T) {
	r := MustNewRegistry("test-model", testContracts())
	_, err := r.ContractFor("no_such_key")
	if !errors.Is(err, core.ErrUnknownParameter) {
		t.Fatalf("expected ErrUnknownParameter, got %v", err)
	}
}

func TestKeysWithRole_Order(t *testing.T) {
	r := MustNewRegistry("test-model", testContracts())

	inputs := r.KeysWithRole(RoleInput)
	if len(inputs) != 2 || inputs[0] != "wind" || inputs[1] != "slope" {
		t.Errorf("KeysWithRole(input) = %v, want [wind slope]", inputs)
	}
	outputs := r.KeysWithRole(RoleOutput)
	if len(outputs) != 1 || outputs[0] != "ros" {
		t.Errorf("KeysWithRole(output) = %v, want [ros]", outputs)
	}
}

func TestRegistryHash_Deterministic(t *testing.T) {
	a := MustNewRegistry("test-model", testContracts())
	b := MustNewRegistry("test-model", testContracts())
	if a.Hash() != b.Hash() {
		t.Error("identical registries should share a hash")
	}

	cs := testContracts()
	cs[1].ValidRange = Interval{Min: -45, Max: 45}
	c := MustNewRegistry("test-model", cs)
	if a.Hash() == c.Hash() {
		t.Error("changing a contract range should change the registry hash")
	}
}

func TestInterval_Contains(t *testing.T) {
	i := Interval{Min: -90, Max: 90}
	for _, v := range []float64{-90, 0, 90} {
		if !i.Contains(v) {
			t.Errorf("Contains(%v) = false, want true", v)
		}
	}
	for _, v := range []float64{-90.1, 100} {
		if i.Contains(v) {
			t.Errorf("Contains(%v) = true, want false", v)
		}
	}
	if !Unbounded().Contains(1e300) {
		t.Error("Unbounded interval should contain any finite value")
	}
}
