package units

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Dimension is a physical quantity category sharing one set of convertible symbols.
type Dimension string

const (
	DimensionTorque       Dimension = "torque"
	DimensionSpeed        Dimension = "speed"
	DimensionPower        Dimension = "power"
	DimensionWeight       Dimension = "weight"
	DimensionCurrent      Dimension = "current"
	DimensionResponseTime Dimension = "response_time"
	DimensionBacklash     Dimension = "backlash"
	DimensionInertia      Dimension = "inertia"
)

// Dimensions returns every supported dimension in a stable order.
func Dimensions() []Dimension {
	return []Dimension{
		DimensionTorque,
		DimensionSpeed,
		DimensionPower,
		DimensionWeight,
		DimensionCurrent,
		DimensionResponseTime,
		DimensionBacklash,
		DimensionInertia,
	}
}

// IsValid reports whether d is a supported dimension.
func (d Dimension) IsValid() bool {
	_, ok := factorTable[d]
	return ok
}

// Unit is one row of the conversion table.
type Unit struct {
	Symbol    string
	Dimension Dimension
	// Factor converts one of this unit into the dimension's base unit.
	Factor decimal.Decimal
}

// Base units: Nm, rpm, W, kg, A, s, arcsec, kg-m^2.
var factorTable = map[Dimension]map[string]string{
	DimensionTorque: {
		"Nm":     "1",
		"mNm":    "0.001",
		"lbf-in": "0.1129848290276167",
		"lbf-ft": "1.3558179483314004",
		"oz-in":  "0.00706155181422604",
		"kgf-cm": "0.0980665",
		"kgf-m":  "9.80665",
	},
	DimensionSpeed: {
		"rpm":   "1",
		"rps":   "60",
		"rad/s": "9.549296585513720",
	},
	DimensionPower: {
		"W":  "1",
		"kW": "1000",
		"hp": "745.6998715822702",
	},
	DimensionWeight: {
		"kg":  "1",
		"g":   "0.001",
		"lbs": "0.45359237",
		"oz":  "0.028349523125",
	},
	DimensionCurrent: {
		"A":  "1",
		"mA": "0.001",
	},
	DimensionResponseTime: {
		"s":  "1",
		"ms": "0.001",
	},
	DimensionBacklash: {
		"arcsec": "1",
		"arcmin": "60",
		"deg":    "3600",
	},
	DimensionInertia: {
		"kg-m^2":     "1",
		"kg-cm^2":    "0.0001",
		"g-cm^2":     "0.0000001",
		"lb-in^2":    "0.000292639653",
		"oz-in^2":    "0.0000182899783",
		"lbf-in-s^2": "0.1129848290276167",
		"oz-in-s^2":  "0.00706155181422604",
	},
}

var bySymbol = buildIndex()

func buildIndex() map[string]Unit {
	index := make(map[string]Unit)
	for dimension, symbols := range factorTable {
		for symbol, factor := range symbols {
			if _, dup := index[symbol]; dup {
				panic("units: duplicate symbol " + symbol)
			}
			index[symbol] = Unit{
				Symbol:    symbol,
				Dimension: dimension,
				Factor:    decimal.RequireFromString(factor),
			}
		}
	}
	return index
}

// Lookup resolves a unit symbol.
func Lookup(symbol string) (Unit, error) {
	unit, ok := bySymbol[symbol]
	if !ok {
		return Unit{}, &UnsupportedUnitError{Symbol: symbol}
	}
	return unit, nil
}

// Symbols lists the symbols of a dimension, sorted.
func Symbols(d Dimension) []string {
	symbols := make([]string, 0, len(factorTable[d]))
	for symbol := range factorTable[d] {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols
}

// Supports reports whether symbol belongs to dimension d.
func Supports(d Dimension, symbol string) bool {
	unit, ok := bySymbol[symbol]
	return ok && unit.Dimension == d
}
