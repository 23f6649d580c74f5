// Package units provides the quantity and comparison vocabulary used by
// threshold specifications: a fixed table of astronomy-flavored units
// (magnitudes, angles, times, flux densities), scalar quantities with
// conversion between commensurable units, and the six comparison
// operators.
package units

import (
	"errors"
	"fmt"
	"strconv"
)

// Dimension classifies units; only quantities sharing a dimension are
// commensurable.
type Dimension string

const (
	Dimensionless Dimension = "dimensionless"
	Magnitude     Dimension = "magnitude"
	Angle         Dimension = "angle"
	Duration      Dimension = "time"
	Frequency     Dimension = "frequency"
	FluxDensity   Dimension = "flux density"
	CountDim      Dimension = "count"
	ElectronDim   Dimension = "electron"
	PixelDim      Dimension = "pixel"
)

// Unit is a named measurement unit. Scale converts a value in this unit to
// the dimension's base unit.
type Unit struct {
	Symbol    string
	Dimension Dimension
	Scale     float64
}

// ErrUnknownUnit is returned by ParseUnit for symbols outside the table.
var ErrUnknownUnit = errors.New("unknown unit")

// unitTable maps recognized symbols to units. Base units per dimension:
// dimensionless 1, mag, arcsec, s, Hz, Jy, count, electron, pixel.
var unitTable = map[string]Unit{
	"":        {Symbol: "", Dimension: Dimensionless, Scale: 1},
	"percent": {Symbol: "percent", Dimension: Dimensionless, Scale: 0.01},
	"%":       {Symbol: "%", Dimension: Dimensionless, Scale: 0.01},

	"mag":  {Symbol: "mag", Dimension: Magnitude, Scale: 1},
	"mmag": {Symbol: "mmag", Dimension: Magnitude, Scale: 1e-3},
	"umag": {Symbol: "umag", Dimension: Magnitude, Scale: 1e-6},

	"arcsec":  {Symbol: "arcsec", Dimension: Angle, Scale: 1},
	"marcsec": {Symbol: "marcsec", Dimension: Angle, Scale: 1e-3},
	"mas":     {Symbol: "mas", Dimension: Angle, Scale: 1e-3},
	"uas":     {Symbol: "uas", Dimension: Angle, Scale: 1e-6},
	"arcmin":  {Symbol: "arcmin", Dimension: Angle, Scale: 60},
	"deg":     {Symbol: "deg", Dimension: Angle, Scale: 3600},
	"rad":     {Symbol: "rad", Dimension: Angle, Scale: 206264.80624709636},

	"s":      {Symbol: "s", Dimension: Duration, Scale: 1},
	"ms":     {Symbol: "ms", Dimension: Duration, Scale: 1e-3},
	"us":     {Symbol: "us", Dimension: Duration, Scale: 1e-6},
	"min":    {Symbol: "min", Dimension: Duration, Scale: 60},
	"minute": {Symbol: "minute", Dimension: Duration, Scale: 60},
	"hour":   {Symbol: "hour", Dimension: Duration, Scale: 3600},
	"day":    {Symbol: "day", Dimension: Duration, Scale: 86400},

	"Hz":  {Symbol: "Hz", Dimension: Frequency, Scale: 1},
	"kHz": {Symbol: "kHz", Dimension: Frequency, Scale: 1e3},
	"MHz": {Symbol: "MHz", Dimension: Frequency, Scale: 1e6},

	"Jy":  {Symbol: "Jy", Dimension: FluxDensity, Scale: 1},
	"mJy": {Symbol: "mJy", Dimension: FluxDensity, Scale: 1e-3},
	"uJy": {Symbol: "uJy", Dimension: FluxDensity, Scale: 1e-6},

	"count":    {Symbol: "count", Dimension: CountDim, Scale: 1},
	"ct":       {Symbol: "ct", Dimension: CountDim, Scale: 1},
	"electron": {Symbol: "electron", Dimension: ElectronDim, Scale: 1},
	"pix":      {Symbol: "pix", Dimension: PixelDim, Scale: 1},
	"pixel":    {Symbol: "pixel", Dimension: PixelDim, Scale: 1},
}

// ParseUnit looks up a unit symbol. The empty string is the dimensionless
// unit.
func ParseUnit(symbol string) (Unit, error) {
	u, ok := unitTable[symbol]
	if !ok {
		return Unit{}, fmt.Errorf("%w: %q", ErrUnknownUnit, symbol)
	}
	return u, nil
}

// MustUnit is ParseUnit for statically known symbols; it panics on unknown
// symbols.
func MustUnit(symbol string) Unit {
	u, err := ParseUnit(symbol)
	if err != nil {
		panic(err)
	}
	return u
}

// String returns the unit symbol.
func (u Unit) String() string { return u.Symbol }

// ConversionError reports an attempt to convert between incommensurable
// units.
type ConversionError struct {
	From Unit
	To   Unit
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("cannot convert %q (%s) to %q (%s)",
		e.From.Symbol, e.From.Dimension, e.To.Symbol, e.To.Dimension)
}

// Quantity is a scalar value with a unit.
type Quantity struct {
	Value float64
	Unit  Unit
}

// NewQuantity builds a quantity from a value and a unit symbol.
func NewQuantity(value float64, symbol string) (Quantity, error) {
	u, err := ParseUnit(symbol)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{Value: value, Unit: u}, nil
}

// To converts the quantity to another unit of the same dimension.
func (q Quantity) To(unit Unit) (Quantity, error) {
	if q.Unit.Dimension != unit.Dimension {
		return Quantity{}, &ConversionError{From: q.Unit, To: unit}
	}
	return Quantity{Value: q.Value * q.Unit.Scale / unit.Scale, Unit: unit}, nil
}

// String renders "<value> <symbol>", or just the value for dimensionless
// quantities.
func (q Quantity) String() string {
	v := strconv.FormatFloat(q.Value, 'g', -1, 64)
	if q.Unit.Symbol == "" {
		return v
	}
	return v + " " + q.Unit.Symbol
}
