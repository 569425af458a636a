package common

import (
	"image/color"
	"math"
	"testing"
)

func TestWrapMod(t *testing.T) {
	cases := []struct {
		name string
		v, m float64
		want float64
	}{
		{"inside", 1.5, 3, 1.5},
		{"exact_multiple", 6, 3, 0},
		{"above", 7.25, 3, 1.25},
		{"negative", -1, 3, 2},
		{"negative_multiple", -9, 3, 0},
		{"zero_modulus", 5, 0, 5},
		{"negative_modulus", 5, -2, 5},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := WrapMod(c.v, c.m)
			if math.Abs(got-c.want) > 1e-9 {
				t.Fatalf("WrapMod(%v, %v) = %v, want %v", c.v, c.m, got, c.want)
			}
			if c.m > 0 && (got < 0 || got >= c.m) {
				t.Fatalf("WrapMod(%v, %v) = %v outside [0, %v)", c.v, c.m, got, c.m)
			}
		})
	}
}

func TestWrapModTinyNegative(t *testing.T) {
	got := WrapMod(-1e-18, 4)
	if got < 0 || got >= 4 {
		t.Fatalf("expected result in [0, 4), got %v", got)
	}
}

func TestLerpColor(t *testing.T) {
	black := color.NRGBA{A: 255}
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}

	if got := LerpColor(black, white, 0); got != black {
		t.Fatalf("t=0: got %v", got)
	}
	if got := LerpColor(black, white, 1); got != white {
		t.Fatalf("t=1: got %v", got)
	}
	mid := LerpColor(black, white, 0.5)
	if mid.R != 128 || mid.G != 128 || mid.B != 128 || mid.A != 255 {
		t.Fatalf("t=0.5: got %v", mid)
	}
	if got := LerpColor(black, white, 3); got != white {
		t.Fatalf("t clamps to 1, got %v", got)
	}
}
