package app

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"pyrosense/domain/units"
	"pyrosense/internal/doe"
	"pyrosense/internal/sensitivity"
)

// StudyFile is the on-disk YAML description of one study.
type StudyFile struct {
	BasePoints      int                    `yaml:"base_points"`
	Categories      []int                  `yaml:"categories"`
	RequireOptional bool                   `yaml:"require_optional"`
	Parameters      []studyParam           `yaml:"parameters"`
	BaseInputs      map[string]interface{} `yaml:"base_inputs"`
	Analyzer        studyAnalyzer          `yaml:"analyzer"`
}

type studyParam struct {
	Name string     `yaml:"name"`
	Min  studyValue `yaml:"min"`
	Max  studyValue `yaml:"max"`
}

type studyValue struct {
	Value float64 `yaml:"value"`
	Unit  string  `yaml:"unit"`
}

type studyAnalyzer struct {
	BootstrapSamples int     `yaml:"bootstrap_samples"`
	Confidence       float64 `yaml:"confidence"`
	Seed             int64   `yaml:"seed"`
}

// ParseStudyFile decodes a study description.
func ParseStudyFile(r io.Reader) (*StudyFile, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var sf StudyFile
	if err := dec.Decode(&sf); err != nil {
		return nil, fmt.Errorf("decoding study file: %w", err)
	}
	return &sf, nil
}

// LoadStudyFile reads a study description from disk.
func LoadStudyFile(path string) (*StudyFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening study file: %w", err)
	}
	defer f.Close()
	return ParseStudyFile(f)
}

// Request converts the file into an executable study request.
func (sf *StudyFile) Request() (StudyRequest, error) {
	params := make([]doe.Parameter, len(sf.Parameters))
	for i, p := range sf.Parameters {
		lo, err := p.Min.quantity()
		if err != nil {
			return StudyRequest{}, fmt.Errorf("parameter %q min: %w", p.Name, err)
		}
		hi, err := p.Max.quantity()
		if err != nil {
			return StudyRequest{}, fmt.Errorf("parameter %q max: %w", p.Name, err)
		}
		params[i] = doe.Parameter{Name: p.Name, Min: lo, Max: hi}
	}

	base := make(map[string]interface{}, len(sf.BaseInputs))
	for k, v := range sf.BaseInputs {
		nv, err := normalizeInput(v)
		if err != nil {
			return StudyRequest{}, fmt.Errorf("base input %q: %w", k, err)
		}
		base[k] = nv
	}

	return StudyRequest{
		Parameters:      params,
		BasePoints:      sf.BasePoints,
		BaseInputs:      base,
		Categories:      sf.Categories,
		RequireOptional: sf.RequireOptional,
		Analyzer: sensitivity.Options{
			BootstrapSamples: sf.Analyzer.BootstrapSamples,
			Confidence:       sf.Analyzer.Confidence,
			Seed:             sf.Analyzer.Seed,
		},
	}, nil
}

func (v studyValue) quantity() (units.Quantity, error) {
	u, err := units.Parse(v.Unit)
	if err != nil {
		return units.Quantity{}, err
	}
	return units.Scalar(v.Value, u), nil
}

// normalizeInput maps the YAML decoder's generic types onto the raw-input
// forms the quality pipeline accepts. A {value, unit} mapping becomes an
// explicit quantity; numbers stay bare and read as contract-unit magnitudes.
func normalizeInput(v interface{}) (interface{}, error) {
	switch val := v.(type) {
	case int, float64:
		return val, nil
	case []interface{}:
		vec := make([]float64, len(val))
		for i, e := range val {
			switch n := e.(type) {
			case float64:
				vec[i] = n
			case int:
				vec[i] = float64(n)
			default:
				return nil, fmt.Errorf("element %d has unsupported type %T", i, e)
			}
		}
		return vec, nil
	case map[string]interface{}:
		var sv studyValue
		b, err := yaml.Marshal(val)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(b, &sv); err != nil {
			return nil, err
		}
		return sv.quantity()
	default:
		return nil, fmt.Errorf("unsupported type %T", v)
	}
}
