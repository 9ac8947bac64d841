package unitconv

import (
	"math"
	"testing"
)

func TestConvertIdentity(t *testing.T) {
	if got := Convert(3.5, UnitCup, UnitCup); got != 3.5 {
		t.Errorf("expected identity conversion, got %v", got)
	}
}

func TestConvertVolume(t *testing.T) {
	tests := []struct {
		qty      float64
		from, to Unit
		want     float64
	}{
		{3, UnitTsp, UnitTbsp, 1},
		{1, UnitCup, UnitTbsp, 16},
		{2, UnitCup, UnitMl, 473.1764730},
		{8, UnitFlOz, UnitCup, 1},
	}

	for _, tt := range tests {
		got := Convert(tt.qty, tt.from, tt.to)
		if math.Abs(got-tt.want) > 1e-6 {
			t.Errorf("Convert(%v, %s, %s) = %v, want %v", tt.qty, tt.from, tt.to, got, tt.want)
		}
	}
}

func TestConvertWeight(t *testing.T) {
	got := Convert(1, UnitLb, UnitOz)
	if math.Abs(got-16) > 1e-9 {
		t.Errorf("expected 1 lb = 16 oz, got %v", got)
	}

	got = Convert(100, UnitGram, UnitOz)
	if math.Abs(got-3.5273961949) > 1e-6 {
		t.Errorf("expected 100 g ≈ 3.527 oz, got %v", got)
	}
}

func TestConvertUnregisteredPairIsNoOp(t *testing.T) {
	tests := []struct {
		name     string
		from, to Unit
	}{
		{"cross family", UnitCup, UnitGram},
		{"count to weight", UnitSlice, UnitGram},
		{"count to count", UnitSlice, UnitPiece},
		{"unknown unit", Unit("handful"), UnitGram},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Convert(2.5, tt.from, tt.to); got != 2.5 {
				t.Errorf("expected input unchanged, got %v", got)
			}
		})
	}
}

// Round-tripping a conversion must return the original quantity within
// floating rounding for every compatible pair.
func TestConvertRoundTrip(t *testing.T) {
	units := []Unit{UnitTsp, UnitTbsp, UnitCup, UnitMl, UnitFlOz, UnitGram, UnitOz, UnitLb}
	quantities := []float64{0.25, 1, 2.5, 100, 1234.5}

	for _, a := range units {
		for _, b := range units {
			if !Compatible(a, b) {
				continue
			}
			for _, q := range quantities {
				back := Convert(Convert(q, a, b), b, a)
				if math.Abs(back-q) > 1e-9*math.Max(1, q) {
					t.Errorf("round trip %v %s->%s->%s = %v", q, a, b, a, back)
				}
			}
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		word string
		want Unit
		ok   bool
	}{
		{"tablespoons", UnitTbsp, true},
		{"Cups", UnitCup, true},
		{" oz ", UnitOz, true},
		{"glass", UnitCup, true},
		{"handful", "", false},
	}

	for _, tt := range tests {
		got, ok := Parse(tt.word)
		if ok != tt.ok || got != tt.want {
			t.Errorf("Parse(%q) = (%v, %v), want (%v, %v)", tt.word, got, ok, tt.want, tt.ok)
		}
	}
}
