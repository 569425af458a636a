package parallax

import "math"

// MapDepth maps a depth order onto the Z axis.
//
// Order 0 maps to base. Positive orders are scaled against |maxOrder| and
// negative orders against |minOrder|, both by the same maxDepth, so the result
// lies in [base-maxDepth, base+maxDepth] and grows with order. A zero bound on
// the relevant side falls back to base.
func MapDepth(order, minOrder, maxOrder int, base, maxDepth float64) float64 {
	switch {
	case order > 0 && maxOrder != 0:
		return base + float64(order)/math.Abs(float64(maxOrder))*maxDepth
	case order < 0 && minOrder != 0:
		return base + float64(order)/math.Abs(float64(minOrder))*maxDepth
	default:
		return base
	}
}

// DepthBounds returns the min and max of orders, always including 0.
func DepthBounds(orders []int) (minOrder, maxOrder int) {
	for _, o := range orders {
		if o > maxOrder {
			maxOrder = o
		}
		if o < minOrder {
			minOrder = o
		}
	}
	return minOrder, maxOrder
}
