package units

import (
	"errors"
	"testing"
)

func TestLookup(t *testing.T) {
	cases := []struct {
		token     string
		dimension Dimension
		factor    float64
	}{
		{"kg", Mass, 1},
		{"KG", Mass, 1},
		{"Quilo", Mass, 1},
		{"quilos", Mass, 1},
		{"g", Mass, 0.001},
		{"gramas", Mass, 0.001},
		{"l", Volume, 1},
		{"L", Volume, 1},
		{"Litros", Volume, 1},
		{"ml", Volume, 0.001},
		{"un", Count, 1},
		{"unidades", Count, 1},
		{"dz", Count, 12},
		{"dúzia", Count, 12},
		{"duzia", Count, 12},
	}

	for _, tc := range cases {
		e, err := Lookup(tc.token)
		if err != nil {
			t.Errorf("Lookup(%q): erro inesperado %v", tc.token, err)
			continue
		}
		if e.Dimension != tc.dimension {
			t.Errorf("Lookup(%q): dimensão %s, esperava %s", tc.token, e.Dimension, tc.dimension)
		}
		if e.Factor != tc.factor {
			t.Errorf("Lookup(%q): fator %v, esperava %v", tc.token, e.Factor, tc.factor)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	for _, token := range []string{"", "xyz", "polegada", "m2", "kgx"} {
		if _, err := Lookup(token); !errors.Is(err, ErrUnknownUnit) {
			t.Errorf("Lookup(%q): esperava ErrUnknownUnit, veio %v", token, err)
		}
	}
}

func TestBaseUnit(t *testing.T) {
	if Mass.BaseUnit() != "kg" || Volume.BaseUnit() != "L" || Count.BaseUnit() != "un" {
		t.Errorf("unidades base incorretas: %s %s %s",
			Mass.BaseUnit(), Volume.BaseUnit(), Count.BaseUnit())
	}
}

func TestDimensionsNeverCross(t *testing.T) {
	// Massa nunca converte para volume: as dimensões das entradas são fixas.
	for _, token := range []string{"g", "kg", "mg", "gramas"} {
		e, err := Lookup(token)
		if err != nil || e.Dimension != Mass {
			t.Errorf("token %q deveria ser massa", token)
		}
	}
	for _, token := range []string{"ml", "l", "litro"} {
		e, err := Lookup(token)
		if err != nil || e.Dimension != Volume {
			t.Errorf("token %q deveria ser volume", token)
		}
	}
}
