package common

import (
	"image/color"
	"math"
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// WrapMod reduces v into [0, m). A non-positive m leaves v unchanged.
func WrapMod(v, m float64) float64 {
	if m <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	r := math.Mod(v, m)
	if r < 0 {
		r += m
	}
	// -tiny + m rounds to m
	if r >= m {
		r = 0
	}
	return r
}

func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func LerpColor(a, b color.Color, t float64) color.NRGBA {
	if a == nil {
		a = color.White
	}
	if b == nil {
		b = color.White
	}
	ca := color.NRGBAModel.Convert(a).(color.NRGBA)
	cb := color.NRGBAModel.Convert(b).(color.NRGBA)
	t = math.Max(0, math.Min(1, t))
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(Lerp(float64(x), float64(y), t)))
	}
	return color.NRGBA{
		R: mix(ca.R, cb.R),
		G: mix(ca.G, cb.G),
		B: mix(ca.B, cb.B),
		A: mix(ca.A, cb.A),
	}
}
