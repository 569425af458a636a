package parallax

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsCountTicks(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	c, target := newFollowing(1)
	c.SetMetrics(m)
	l := NewLayer(DefaultLayerConfig(KindComplex))
	obj := newFakeObject(0, 0, 0)
	l.Activate(c, obj)
	for i := 0; i < 3; i++ {
		target.moveTo(float64(i), 0)
		l.Tick(c, obj)
	}
	l.Tick(c, nil)
	c.Rebuild([]int{0, 1})

	assert.Equal(t, 3.0, testutil.ToFloat64(m.Ticks))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SkippedTicks))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RegistryRebuilds))

	m.SetActiveLayers(4)
	assert.Equal(t, 4.0, testutil.ToFloat64(m.ActiveLayers))

	n, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	assert.Equal(t, 8, n)
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ticked()
		m.SkippedTick()
		m.SetActiveLayers(2)
		m.tileCreated()
	})

	unregistered := NewMetrics(nil)
	unregistered.ticked()
	assert.Equal(t, 1.0, testutil.ToFloat64(unregistered.Ticks))
}
