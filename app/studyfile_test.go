package app

import (
	"strings"
	"testing"

	"pyrosense/domain/units"
)

const sampleStudyYAML = `
base_points: 256
categories: [2]
parameters:
  - name: wind
    min: {value: 0, unit: m/s}
    max: {value: 54, unit: km/h}
  - name: slope
    min: {value: -30, unit: deg}
    max: {value: 30, unit: deg}
base_inputs:
  fuel_load: [0.5, 1.5, 3.0]
  mf: {value: 12, unit: "%"}
analyzer:
  bootstrap_samples: 50
  confidence: 0.9
  seed: 7
`

func TestParseStudyFile(t *testing.T) {
	sf, err := ParseStudyFile(strings.NewReader(sampleStudyYAML))
	if err != nil {
		t.Fatalf("ParseStudyFile: %v", err)
	}

	req, err := sf.Request()
	if err != nil {
		t.Fatalf("Request: %v", err)
	}

	if req.BasePoints != 256 {
		t.Errorf("base points = %d, want 256", req.BasePoints)
	}
	if len(req.Categories) != 1 || req.Categories[0] != 2 {
		t.Errorf("categories = %v, want [2]", req.Categories)
	}
	if len(req.Parameters) != 2 {
		t.Fatalf("got %d parameters, want 2", len(req.Parameters))
	}
	if req.Parameters[0].Name != "wind" {
		t.Errorf("first parameter = %q, want wind", req.Parameters[0].Name)
	}
	if got := req.Parameters[0].Max.Unit(); got != units.KilometerPerHour {
		t.Errorf("wind max unit = %v, want km/h", got)
	}

	load, ok := req.BaseInputs["fuel_load"].([]float64)
	if !ok || len(load) != 3 {
		t.Fatalf("fuel_load = %#v, want a 3-element []float64", req.BaseInputs["fuel_load"])
	}
	mf, ok := req.BaseInputs["mf"].(units.Quantity)
	if !ok {
		t.Fatalf("mf = %#v, want a quantity", req.BaseInputs["mf"])
	}
	if mf.Value() != 12 || mf.Unit() != units.Percent {
		t.Errorf("mf = %v, want 12 %%", mf)
	}

	if req.Analyzer.BootstrapSamples != 50 || req.Analyzer.Confidence != 0.9 || req.Analyzer.Seed != 7 {
		t.Errorf("analyzer options = %+v", req.Analyzer)
	}
}

func TestParseStudyFileRejectsUnknownFields(t *testing.T) {
	_, err := ParseStudyFile(strings.NewReader("base_points: 64\nsamples: 10\n"))
	if err == nil {
		t.Fatal("expected an error for an unknown field")
	}
}

func TestStudyFileRejectsUnknownUnit(t *testing.T) {
	sf, err := ParseStudyFile(strings.NewReader(`
base_points: 64
parameters:
  - name: wind
    min: {value: 0, unit: furlong/fortnight}
    max: {value: 1, unit: furlong/fortnight}
`))
	if err != nil {
		t.Fatalf("ParseStudyFile: %v", err)
	}
	if _, err := sf.Request(); err == nil {
		t.Fatal("expected an error for an unknown unit")
	}
}
