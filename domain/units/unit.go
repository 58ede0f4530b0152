// Package units provides the quantity/unit subsystem the evaluation core
// depends on: symbolic units with dimension checking and explicit conversion.
// Conversion across incompatible physical dimensions always fails; it is never
// silently coerced.
package units

import (
	"fmt"
	"math"

	"pyrosense/domain/core"
)

// Dim is a physical dimension vector. Angle is carried as a pseudo-dimension
// so degrees convert to radians but never to lengths or ratios.
type Dim struct {
	Length int8
	Mass   int8
	Time   int8
	Temp   int8
	Angle  int8
}

// Equal reports whether two dimension vectors match exactly.
func (d Dim) Equal(o Dim) bool {
	return d == o
}

// IsDimensionless reports whether all exponents are zero.
func (d Dim) IsDimensionless() bool {
	return d == Dim{}
}

// Unit is a symbolic unit descriptor: a dimension vector plus the affine map
// (scale, offset) onto the coherent SI unit of that dimension. Offset is only
// non-zero for thermometric units.
type Unit struct {
	symbol string
	dim    Dim
	scale  float64
	offset float64
}

// Symbol returns the unit's symbol, e.g. "m/s".
func (u Unit) Symbol() string { return u.symbol }

// Dimension returns the unit's dimension vector.
func (u Unit) Dimension() Dim { return u.dim }

// IsZero reports whether the unit is the zero value (no unit declared).
func (u Unit) IsZero() bool { return u.symbol == "" && u.scale == 0 }

func (u Unit) String() string { return u.symbol }

// SameDimension reports whether two units share a physical dimension and are
// therefore convertible.
func SameDimension(a, b Unit) bool {
	return a.dim.Equal(b.dim)
}

// toSI maps a magnitude in u onto the coherent SI unit of u's dimension.
func (u Unit) toSI(v float64) float64 { return v*u.scale + u.offset }

// fromSI maps an SI magnitude back into u.
func (u Unit) fromSI(v float64) float64 { return (v - u.offset) / u.scale }

func def(symbol string, dim Dim, scale, offset float64) Unit {
	return Unit{symbol: symbol, dim: dim, scale: scale, offset: offset}
}

// Dimension vectors used by the symbol table.
var (
	dimNone     = Dim{}
	dimLength   = Dim{Length: 1}
	dimSpeed    = Dim{Length: 1, Time: -1}
	dimAngle    = Dim{Angle: 1}
	dimMass     = Dim{Mass: 1}
	dimAreaLoad = Dim{Mass: 1, Length: -2}
	dimDensity  = Dim{Mass: 1, Length: -3}
	dimTime     = Dim{Time: 1}
	dimTemp     = Dim{Temp: 1}
	dimInvLen   = Dim{Length: -1}
	dimSpecEner = Dim{Length: 2, Time: -2}
	dimFlux     = Dim{Mass: 1, Time: -3}
)

// Canonical units, exported for direct use in contracts and tests.
var (
	Dimensionless = def("1", dimNone, 1, 0)
	Percent       = def("%", dimNone, 0.01, 0)

	Meter      = def("m", dimLength, 1, 0)
	Kilometer  = def("km", dimLength, 1000, 0)
	Centimeter = def("cm", dimLength, 0.01, 0)
	Foot       = def("ft", dimLength, 0.3048, 0)
	Mile       = def("mi", dimLength, 1609.344, 0)

	MeterPerSecond   = def("m/s", dimSpeed, 1, 0)
	KilometerPerHour = def("km/h", dimSpeed, 1000.0/3600.0, 0)
	MilePerHour      = def("mi/h", dimSpeed, 0.44704, 0)
	FootPerMinute    = def("ft/min", dimSpeed, 0.3048/60.0, 0)

	Radian = def("rad", dimAngle, 1, 0)
	Degree = def("deg", dimAngle, math.Pi/180.0, 0)

	Kilogram = def("kg", dimMass, 1, 0)
	Pound    = def("lb", dimMass, 0.45359237, 0)

	KilogramPerSquareMeter = def("kg/m2", dimAreaLoad, 1, 0)
	TonnePerHectare        = def("t/ha", dimAreaLoad, 0.1, 0)
	PoundPerSquareFoot     = def("lb/ft2", dimAreaLoad, 4.8824276363831, 0)

	KilogramPerCubicMeter = def("kg/m3", dimDensity, 1, 0)
	PoundPerCubicFoot     = def("lb/ft3", dimDensity, 16.018463373960145, 0)

	Second = def("s", dimTime, 1, 0)
	Minute = def("min", dimTime, 60, 0)
	Hour   = def("h", dimTime, 3600, 0)

	Kelvin     = def("K", dimTemp, 1, 0)
	Celsius    = def("degC", dimTemp, 1, 273.15)
	Fahrenheit = def("degF", dimTemp, 5.0/9.0, 255.3722222222222)

	PerMeter                 = def("1/m", dimInvLen, 1, 0)
	PerFoot                  = def("1/ft", dimInvLen, 1.0/0.3048, 0)
	SquareMeterPerCubicMeter = def("m2/m3", dimInvLen, 1, 0)

	JoulePerKilogram     = def("J/kg", dimSpecEner, 1, 0)
	KilojoulePerKilogram = def("kJ/kg", dimSpecEner, 1000, 0)

	WattPerSquareMeter = def("W/m2", dimFlux, 1, 0)
)

var symbolTable = func() map[string]Unit {
	all := []Unit{
		Dimensionless, Percent,
		Meter, Kilometer, Centimeter, Foot, Mile,
		MeterPerSecond, KilometerPerHour, MilePerHour, FootPerMinute,
		Radian, Degree,
		Kilogram, Pound,
		KilogramPerSquareMeter, TonnePerHectare, PoundPerSquareFoot,
		KilogramPerCubicMeter, PoundPerCubicFoot,
		Second, Minute, Hour,
		Kelvin, Celsius, Fahrenheit,
		PerMeter, PerFoot, SquareMeterPerCubicMeter,
		JoulePerKilogram, KilojoulePerKilogram,
		WattPerSquareMeter,
	}
	t := make(map[string]Unit, len(all)+2)
	for _, u := range all {
		t[u.symbol] = u
	}
	// Aliases
	t[""] = Dimensionless
	t["dimensionless"] = Dimensionless
	t["percent"] = Percent
	return t
}()

// Parse resolves a unit symbol against the known symbol table.
func Parse(symbol string) (Unit, error) {
	u, ok := symbolTable[symbol]
	if !ok {
		return Unit{}, fmt.Errorf("%w: %q", core.ErrUnknownUnit, symbol)
	}
	return u, nil
}

// MustParse is Parse for static symbols; it panics on unknown ones.
func MustParse(symbol string) Unit {
	u, err := Parse(symbol)
	if err != nil {
		panic(err)
	}
	return u
}
