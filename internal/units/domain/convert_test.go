package units

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestConvertIdentityIsExact(t *testing.T) {
	values := []string{"0", "1", "-3.25", "123456.789012345678", "0.000000001"}
	for _, raw := range values {
		v := decimal.RequireFromString(raw)
		got, err := Convert(v, "Nm", "Nm")
		if err != nil {
			t.Fatalf("convert %s: %v", raw, err)
		}
		if got.String() != v.String() {
			t.Fatalf("identity changed %s to %s", v, got)
		}
	}
}

func TestConvertIdentitySkipsLookup(t *testing.T) {
	v := decimal.RequireFromString("7.5")
	got, err := Convert(v, "furlong", "furlong")
	if err != nil {
		t.Fatalf("expected identity without lookup, got %v", err)
	}
	if !got.Equal(v) {
		t.Fatalf("expected %s, got %s", v, got)
	}
}

func TestConvertNmToLbfIn(t *testing.T) {
	got, err := Convert(decimal.NewFromInt(10), "Nm", "lbf-in")
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	want := decimal.RequireFromString("88.5075")
	if got.Sub(want).Abs().GreaterThan(decimal.RequireFromString("0.01")) {
		t.Fatalf("expected ~%s, got %s", want, got)
	}
}

func TestConvertRoundTrip(t *testing.T) {
	cases := []struct {
		from, to string
		value    string
	}{
		{"Nm", "oz-in", "2.5"},
		{"rpm", "rad/s", "3000"},
		{"W", "hp", "750"},
		{"kg", "lbs", "1.2"},
		{"A", "mA", "4.2"},
		{"ms", "s", "25"},
		{"arcmin", "arcsec", "3"},
		{"kg-cm^2", "lb-in^2", "0.45"},
	}
	tolerance := decimal.RequireFromString("0.000000001")
	for _, tc := range cases {
		v := decimal.RequireFromString(tc.value)
		there, err := Convert(v, tc.from, tc.to)
		if err != nil {
			t.Fatalf("%s->%s: %v", tc.from, tc.to, err)
		}
		back, err := Convert(there, tc.to, tc.from)
		if err != nil {
			t.Fatalf("%s->%s: %v", tc.to, tc.from, err)
		}
		if back.Sub(v).Abs().GreaterThan(tolerance) {
			t.Fatalf("%s %s->%s->%s drifted to %s", tc.value, tc.from, tc.to, tc.from, back)
		}
	}
}

func TestConvertExactFactors(t *testing.T) {
	got, err := Convert(decimal.NewFromInt(2), "kW", "W")
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if !got.Equal(decimal.NewFromInt(2000)) {
		t.Fatalf("expected 2000, got %s", got)
	}
	got, err = Convert(decimal.NewFromInt(1), "deg", "arcmin")
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if !got.Equal(decimal.NewFromInt(60)) {
		t.Fatalf("expected 60, got %s", got)
	}
}

func TestConvertUnsupportedNamesSymbol(t *testing.T) {
	_, err := Convert(decimal.NewFromInt(1), "Nm", "furlong")
	if !errors.Is(err, ErrUnsupportedUnit) {
		t.Fatalf("expected ErrUnsupportedUnit, got %v", err)
	}
	var unitErr *UnsupportedUnitError
	if !errors.As(err, &unitErr) || unitErr.Symbol != "furlong" {
		t.Fatalf("expected error naming furlong, got %v", err)
	}
}

func TestConvertDimensionMismatch(t *testing.T) {
	_, err := Convert(decimal.NewFromInt(1), "Nm", "rpm")
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestConvertInRejectsForeignSymbol(t *testing.T) {
	_, err := ConvertIn(DimensionTorque, decimal.NewFromInt(1), "kg", "lbs")
	var unitErr *UnsupportedUnitError
	if !errors.As(err, &unitErr) {
		t.Fatalf("expected UnsupportedUnitError, got %v", err)
	}
	if unitErr.Symbol != "kg" || unitErr.Dimension != DimensionTorque {
		t.Fatalf("unexpected error detail: %+v", unitErr)
	}
}

func TestSymbolsAreUniqueAndSorted(t *testing.T) {
	seen := make(map[string]Dimension)
	for _, d := range Dimensions() {
		symbols := Symbols(d)
		if len(symbols) == 0 {
			t.Fatalf("dimension %s has no symbols", d)
		}
		for i, symbol := range symbols {
			if i > 0 && symbols[i-1] > symbol {
				t.Fatalf("symbols of %s not sorted: %v", d, symbols)
			}
			if other, ok := seen[symbol]; ok {
				t.Fatalf("symbol %s in both %s and %s", symbol, other, d)
			}
			seen[symbol] = d
		}
	}
}
