package quality

import (
	"errors"
	"math"
	"strings"
	"testing"

	"pyrosense/domain/contract"
	"pyrosense/domain/core"
	"pyrosense/domain/units"
)

func windSlopeRegistry(t *testing.T) *contract.Registry {
	t.Helper()
	moistureDefault := units.Scalar(8, units.Percent)
	reg, err := contract.NewRegistry("wind-slope", []contract.Contract{
		{
			Key:          "wind",
			StandardName: "wind_speed",
			Unit:         units.MeterPerSecond,
			ValidRange:   contract.Unbounded(),
			Role:         contract.RoleInput,
			Shape:        contract.ShapeScalar,
		},
		{
			Key:          "slope",
			StandardName: "slope_angle",
			Unit:         units.Degree,
			ValidRange:   contract.Interval{Min: -90, Max: 90},
			Role:         contract.RoleInput,
			Shape:        contract.ShapeScalar,
		},
		{
			Key:          "mf",
			StandardName: "dead_fuel_moisture",
			Unit:         units.Percent,
			ValidRange:   contract.Interval{Min: 0, Max: 300},
			Role:         contract.RoleOptionalInput,
			Shape:        contract.ShapeScalar,
			Default:      &moistureDefault,
		},
		{
			Key:          "ros",
			StandardName: "rate_of_spread",
			Unit:         units.MeterPerSecond,
			ValidRange:   contract.Interval{Min: 0, Max: 50},
			Role:         contract.RoleOutput,
			Shape:        contract.ShapeScalar,
		},
	})
	if err != nil {
		t.Fatalf("building registry: %v", err)
	}
	return reg
}

func TestPrepare_ConvertsAndFlattens(t *testing.T) {
	reg := windSlopeRegistry(t)
	raw := map[string]interface{}{
		"wind":  units.Scalar(36, units.KilometerPerHour),
		"slope": units.Scalar(0.5, units.Radian),
		"mf":    units.Scalar(12, units.Percent),
	}

	p, err := Prepare(raw, reg, Options{})
	if err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}
	if len(p.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", p.Warnings)
	}

	scalars, err := p.Scalars()
	if err != nil {
		t.Fatalf("Scalars failed: %v", err)
	}
	if math.Abs(scalars["wind"]-10) > 1e-9 {
		t.Errorf("wind = %v, want 10 m/s", scalars["wind"])
	}
	if math.Abs(scalars["slope"]-0.5*180/math.Pi) > 1e-9 {
		t.Errorf("slope = %v, want %v deg", scalars["slope"], 0.5*180/math.Pi)
	}
	if _, ok := scalars["ros"]; ok {
		t.Error("outputs must not appear in prepared inputs")
	}
}

func TestPrepare_LooksUpByStandardName(t *testing.T) {
	reg := windSlopeRegistry(t)
	raw := map[string]interface{}{
		"wind_speed":  3.0,
		"slope_angle": 10.0,
	}
	p, err := Prepare(raw, reg, Options{})
	if err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}
	if got := p.Values["wind"].Float(); got != 3.0 {
		t.Errorf("wind = %v, want 3.0", got)
	}
}

func TestPrepare_MissingInputNamesStandardName(t *testing.T) {
	reg := windSlopeRegistry(t)
	_, err := Prepare(map[string]interface{}{"wind": 3.0}, reg, Options{})
	if !errors.Is(err, core.ErrMissingInput) {
		t.Fatalf("expected ErrMissingInput, got %v", err)
	}
	if !strings.Contains(err.Error(), "slope_angle") {
		t.Errorf("error should name the missing standard name, got %q", err.Error())
	}
}

func TestPrepare_OptionalDefaultFilled(t *testing.T) {
	reg := windSlopeRegistry(t)
	p, err := Prepare(map[string]interface{}{"wind": 3.0, "slope": 0.0}, reg, Options{})
	if err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}
	if got := p.Values["mf"].Float(); got != 8 {
		t.Errorf("mf = %v, want declared default 8", got)
	}
}

func TestPrepare_RequireOptional(t *testing.T) {
	reg := windSlopeRegistry(t)
	_, err := Prepare(map[string]interface{}{"wind": 3.0, "slope": 0.0}, reg, Options{RequireOptional: true})
	if !errors.Is(err, core.ErrMissingInput) {
		t.Fatalf("expected ErrMissingInput for required optional, got %v", err)
	}
}

func TestPrepare_IncompatibleUnitIsFatal(t *testing.T) {
	reg := windSlopeRegistry(t)
	raw := map[string]interface{}{
		"wind":  units.Scalar(3, units.Meter), // length where a speed is expected
		"slope": 0.0,
	}
	_, err := Prepare(raw, reg, Options{})
	if !errors.Is(err, core.ErrIncompatibleUnit) {
		t.Fatalf("expected ErrIncompatibleUnit, got %v", err)
	}
}

func TestPrepare_RangeViolationWarnsButSucceeds(t *testing.T) {
	reg := windSlopeRegistry(t)
	raw := map[string]interface{}{
		"wind":  units.Scalar(3.0, units.MeterPerSecond),
		"slope": units.Scalar(100.0, units.Degree),
	}

	p, err := Prepare(raw, reg, Options{})
	if err != nil {
		t.Fatalf("Prepare must not fail on range violations: %v", err)
	}

	scalars, err := p.Scalars()
	if err != nil {
		t.Fatalf("Scalars failed: %v", err)
	}
	if scalars["wind"] != 3.0 || scalars["slope"] != 100.0 {
		t.Errorf("values = %v, want wind 3.0 and slope 100.0", scalars)
	}

	if len(p.Warnings) != 1 {
		t.Fatalf("warnings = %v, want exactly one", p.Warnings)
	}
	w := p.Warnings[0]
	if w.Key != "slope" || w.Value != 100.0 {
		t.Errorf("warning = %+v, want slope at 100", w)
	}
	if !strings.Contains(w.String(), "slope_angle") {
		t.Errorf("warning text should carry the standard name, got %q", w.String())
	}
}

func TestPrepare_CategoryProjection(t *testing.T) {
	reg := windSlopeRegistry(t)
	raw := map[string]interface{}{
		"wind":  3.0,
		"slope": 0.0,
		"mf":    []float64{4, 8, 16}, // per fuel class
	}

	p, err := Prepare(raw, reg, Options{Category: 3})
	if err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}
	if got := p.Values["mf"].Float(); got != 16 {
		t.Errorf("mf = %v, want class-3 value 16", got)
	}
}

func TestPrepare_AmbiguousCategory(t *testing.T) {
	reg := windSlopeRegistry(t)
	raw := map[string]interface{}{
		"wind":  3.0,
		"slope": 0.0,
		"mf":    []float64{4, 8, 16},
	}
	_, err := Prepare(raw, reg, Options{})
	if !errors.Is(err, core.ErrAmbiguousCategory) {
		t.Fatalf("expected ErrAmbiguousCategory, got %v", err)
	}
}

func TestPrepare_CategoryOutOfRange(t *testing.T) {
	reg := windSlopeRegistry(t)
	raw := map[string]interface{}{
		"wind":  3.0,
		"slope": 0.0,
		"mf":    []float64{4, 8},
	}
	if _, err := Prepare(raw, reg, Options{Category: 5}); err == nil {
		t.Fatal("expected error for category beyond vector length")
	}
}

func TestPrepare_Idempotent(t *testing.T) {
	reg := windSlopeRegistry(t)
	raw := map[string]interface{}{
		"wind":  units.Scalar(18, units.KilometerPerHour),
		"slope": units.Scalar(30, units.Degree),
		"mf":    units.Scalar(6, units.Percent),
	}

	first, err := Prepare(raw, reg, Options{})
	if err != nil {
		t.Fatalf("first Prepare failed: %v", err)
	}

	// Feed the bare output back through: already-converted magnitudes are
	// interpreted in contract units, so nothing should change.
	again := make(map[string]interface{}, len(first.Values))
	for k, v := range first.Values {
		again[k] = v.Float()
	}
	second, err := Prepare(again, reg, Options{})
	if err != nil {
		t.Fatalf("second Prepare failed: %v", err)
	}

	for k, v := range first.Values {
		if got := second.Values[k].Float(); math.Abs(got-v.Float()) > 1e-12 {
			t.Errorf("%s: second pass = %v, first pass = %v", k, got, v.Float())
		}
	}
}
