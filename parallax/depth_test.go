package parallax

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapDepth(t *testing.T) {
	cases := []struct {
		name     string
		order    int
		min, max int
		want     float64
	}{
		{"zero_order", 0, -3, 4, 1},
		{"max_order", 4, -3, 4, 2},
		{"half_positive", 2, -3, 4, 1.5},
		{"min_order", -3, -3, 4, 0},
		{"zero_max_bound", 2, -3, 0, 1},
		{"zero_min_bound", -2, 0, 4, 1},
		{"all_zero", 5, 0, 0, 1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.InDelta(t, c.want, MapDepth(c.order, c.min, c.max, 1, 1), 1e-9)
		})
	}
}

func TestDepthBounds(t *testing.T) {
	minOrder, maxOrder := DepthBounds([]int{3, 5, 1})
	assert.Equal(t, 0, minOrder, "0 is always part of the bounds")
	assert.Equal(t, 5, maxOrder)

	minOrder, maxOrder = DepthBounds(nil)
	assert.Equal(t, 0, minOrder)
	assert.Equal(t, 0, maxOrder)
}
