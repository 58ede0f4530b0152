package fuelmatch

import (
	"errors"
	"testing"

	"pyrosense/domain/core"
	"pyrosense/domain/fuel"
	"pyrosense/domain/units"
	"pyrosense/internal/testkit"
)

func twoClassCatalog(t *testing.T) *fuel.Catalog {
	t.Helper()
	cat, err := fuel.NewCatalog([]fuel.Class{
		{Properties: map[core.StandardName]units.Quantity{
			"fuel_height": units.Scalar(1.0, units.Meter),
			"fuel_load":   units.Scalar(2.0, units.KilogramPerSquareMeter),
		}},
		{Properties: map[core.StandardName]units.Quantity{
			"fuel_height": units.Scalar(5.0, units.Meter),
			"fuel_load":   units.Scalar(2.0, units.KilogramPerSquareMeter),
		}},
	})
	if err != nil {
		t.Fatalf("building catalog: %v", err)
	}
	return cat
}

func TestClosestClass_NearTarget(t *testing.T) {
	cat := twoClassCatalog(t)
	target := map[core.StandardName]units.Quantity{
		"fuel_height": units.Scalar(1.1, units.Meter),
		"fuel_load":   units.Scalar(2.0, units.KilogramPerSquareMeter),
	}
	idx, err := ClosestClass(cat, target, nil)
	if err != nil {
		t.Fatalf("ClosestClass failed: %v", err)
	}
	if idx != 1 {
		t.Errorf("ClosestClass = %d, want 1", idx)
	}
}

func TestClosestClass_ExactMatchAnyWeights(t *testing.T) {
	cat := twoClassCatalog(t)
	target := map[core.StandardName]units.Quantity{
		"fuel_height": units.Scalar(5.0, units.Meter),
		"fuel_load":   units.Scalar(2.0, units.KilogramPerSquareMeter),
	}
	for _, weights := range []map[core.StandardName]float64{
		nil,
		{"fuel_height": 10, "fuel_load": 0.1},
		{"fuel_height": 0.001},
	} {
		idx, err := ClosestClass(cat, target, weights)
		if err != nil {
			t.Fatalf("ClosestClass failed: %v", err)
		}
		if idx != 2 {
			t.Errorf("weights %v: ClosestClass = %d, want exact-match class 2", weights, idx)
		}
	}
}

func TestClosestClass_UnitConversionBeforeDistance(t *testing.T) {
	cat := twoClassCatalog(t)
	// 1.1 m expressed in feet must still match class 1.
	target := map[core.StandardName]units.Quantity{
		"fuel_height": units.Scalar(1.1/0.3048, units.Foot),
		"fuel_load":   units.Scalar(2.0, units.KilogramPerSquareMeter),
	}
	idx, err := ClosestClass(cat, target, nil)
	if err != nil {
		t.Fatalf("ClosestClass failed: %v", err)
	}
	if idx != 1 {
		t.Errorf("ClosestClass = %d, want 1", idx)
	}
}

func TestClosestClass_TieBreaksToLowestIndex(t *testing.T) {
	cat, err := fuel.NewCatalog([]fuel.Class{
		{Properties: map[core.StandardName]units.Quantity{
			"fuel_height": units.Scalar(1.0, units.Meter),
		}},
		{Properties: map[core.StandardName]units.Quantity{
			"fuel_height": units.Scalar(3.0, units.Meter),
		}},
	})
	if err != nil {
		t.Fatalf("building catalog: %v", err)
	}
	// Equidistant target.
	target := map[core.StandardName]units.Quantity{
		"fuel_height": units.Scalar(2.0, units.Meter),
	}
	idx, err := ClosestClass(cat, target, nil)
	if err != nil {
		t.Fatalf("ClosestClass failed: %v", err)
	}
	if idx != 1 {
		t.Errorf("ClosestClass = %d, want deterministic tie-break to 1", idx)
	}
}

func TestClosestClass_EmptyCatalog(t *testing.T) {
	_, err := ClosestClass(nil, map[core.StandardName]units.Quantity{
		"fuel_height": units.Scalar(1, units.Meter),
	}, nil)
	if !errors.Is(err, core.ErrEmptyCatalog) {
		t.Fatalf("expected ErrEmptyCatalog, got %v", err)
	}
}

func TestClosestClass_NoCommonProperties(t *testing.T) {
	cat := twoClassCatalog(t)
	target := map[core.StandardName]units.Quantity{
		"canopy_cover": units.Scalar(0.5, units.Dimensionless),
	}
	_, err := ClosestClass(cat, target, nil)
	if !errors.Is(err, core.ErrNoCommonProperties) {
		t.Fatalf("expected ErrNoCommonProperties, got %v", err)
	}
}

func TestClosestClass_RejectsNonPositiveWeights(t *testing.T) {
	cat := twoClassCatalog(t)
	target := map[core.StandardName]units.Quantity{
		"fuel_height": units.Scalar(1.1, units.Meter),
	}
	if _, err := ClosestClass(cat, target, map[core.StandardName]float64{"fuel_height": 0}); err == nil {
		t.Fatal("expected error for zero weight")
	}
	if _, err := ClosestClass(cat, target, map[core.StandardName]float64{"fuel_height": -1}); err == nil {
		t.Fatal("expected error for negative weight")
	}
}

func TestClosestClass_SpreadNormalization(t *testing.T) {
	// Loads differ by 0.5 kg/m2 while heights differ by 4 m; with spread
	// normalization the relative displacement decides, not raw magnitude.
	cat, err := fuel.NewCatalog([]fuel.Class{
		{Properties: map[core.StandardName]units.Quantity{
			"fuel_height": units.Scalar(1.0, units.Meter),
			"fuel_load":   units.Scalar(2.0, units.KilogramPerSquareMeter),
		}},
		{Properties: map[core.StandardName]units.Quantity{
			"fuel_height": units.Scalar(5.0, units.Meter),
			"fuel_load":   units.Scalar(2.5, units.KilogramPerSquareMeter),
		}},
	})
	if err != nil {
		t.Fatalf("building catalog: %v", err)
	}
	// Height near class 2, load near class 1: the height displacement is
	// relatively smaller, so class 2 wins despite the absolute scales.
	target := map[core.StandardName]units.Quantity{
		"fuel_height": units.Scalar(4.9, units.Meter),
		"fuel_load":   units.Scalar(2.2, units.KilogramPerSquareMeter),
	}
	idx, err := ClosestClass(cat, target, nil)
	if err != nil {
		t.Fatalf("ClosestClass failed: %v", err)
	}
	if idx != 2 {
		t.Errorf("ClosestClass = %d, want 2", idx)
	}
}

func TestClosestClass_SyntheticGrassCatalog(t *testing.T) {
	cat, err := testkit.GrassCatalog(0.3, 1.0, 2.5)
	if err != nil {
		t.Fatalf("building catalog: %v", err)
	}
	target := map[core.StandardName]units.Quantity{
		"fuel_height": units.Scalar(110, units.Centimeter),
	}
	idx, err := ClosestClass(cat, target, nil)
	if err != nil {
		t.Fatalf("ClosestClass failed: %v", err)
	}
	if idx != 2 {
		t.Errorf("ClosestClass = %d, want 2 for 1.1 m grass", idx)
	}
}

func TestClosestClass_VectorValuedProperty(t *testing.T) {
	cat, err := fuel.NewCatalog([]fuel.Class{
		{Properties: map[core.StandardName]units.Quantity{
			"fuel_height": units.Scalar(1.0, units.Meter),
		}},
	})
	if err != nil {
		t.Fatalf("building catalog: %v", err)
	}

	// A vector target cannot be matched against scalar class properties.
	target := map[core.StandardName]units.Quantity{
		"fuel_height": units.Vector([]float64{1.0, 2.0}, units.Meter),
	}
	if _, err := ClosestClass(cat, target, nil); err == nil {
		t.Fatal("expected error for a vector-valued target property")
	}

	vecCat, err := fuel.NewCatalog([]fuel.Class{
		{Properties: map[core.StandardName]units.Quantity{
			"fuel_height": units.Vector([]float64{1.0, 2.0}, units.Meter),
		}},
	})
	if err != nil {
		t.Fatalf("building catalog: %v", err)
	}
	scalarTarget := map[core.StandardName]units.Quantity{
		"fuel_height": units.Scalar(1.0, units.Meter),
	}
	if _, err := ClosestClass(vecCat, scalarTarget, nil); err == nil {
		t.Fatal("expected error for a vector-valued class property")
	}
}
