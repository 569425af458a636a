package parallax

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts engine activity. A nil *Metrics records nothing.
type Metrics struct {
	Ticks            prometheus.Counter
	SkippedTicks     prometheus.Counter
	RegistryRebuilds prometheus.Counter
	TilesCreated     prometheus.Counter
	TilesRecycled    prometheus.Counter
	Regenerations    prometheus.Counter
	OffsetSnaps      prometheus.Counter
	ActiveLayers     prometheus.Gauge
}

// NewMetrics builds the collectors and registers them with reg when it is not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "parallax",
			Name:      "layer_ticks_total",
			Help:      "Layer updates applied.",
		}),
		SkippedTicks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "parallax",
			Name:      "layer_ticks_skipped_total",
			Help:      "Layer updates skipped because no coordinator was available.",
		}),
		RegistryRebuilds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "parallax",
			Name:      "registry_rebuilds_total",
			Help:      "Full rescans of the registered layer set.",
		}),
		TilesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "parallax",
			Name:      "tiles_created_total",
			Help:      "Tile instances created.",
		}),
		TilesRecycled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "parallax",
			Name:      "tiles_recycled_total",
			Help:      "Tile instances reused from the free list.",
		}),
		Regenerations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "parallax",
			Name:      "tile_regenerations_total",
			Help:      "Tile set regenerations.",
		}),
		OffsetSnaps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "parallax",
			Name:      "offset_snaps_total",
			Help:      "Accumulated offsets snapped back toward the camera.",
		}),
		ActiveLayers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "parallax",
			Name:      "active_layers",
			Help:      "Layers currently active.",
		}),
	}
	if reg != nil {
		reg.MustRegister(
			m.Ticks,
			m.SkippedTicks,
			m.RegistryRebuilds,
			m.TilesCreated,
			m.TilesRecycled,
			m.Regenerations,
			m.OffsetSnaps,
			m.ActiveLayers,
		)
	}
	return m
}

func (m *Metrics) ticked() {
	if m != nil {
		m.Ticks.Inc()
	}
}

func (m *Metrics) skipped() {
	if m != nil {
		m.SkippedTicks.Inc()
	}
}

func (m *Metrics) registryRebuilt() {
	if m != nil {
		m.RegistryRebuilds.Inc()
	}
}

func (m *Metrics) tileCreated() {
	if m != nil {
		m.TilesCreated.Inc()
	}
}

func (m *Metrics) tileRecycled() {
	if m != nil {
		m.TilesRecycled.Inc()
	}
}

func (m *Metrics) regenerated() {
	if m != nil {
		m.Regenerations.Inc()
	}
}

func (m *Metrics) snapped() {
	if m != nil {
		m.OffsetSnaps.Inc()
	}
}

// SetActiveLayers records the number of active layers.
func (m *Metrics) SetActiveLayers(n int) {
	if m != nil {
		m.ActiveLayers.Set(float64(n))
	}
}

// SkippedTick records a layer update skipped outside the engine, for example
// when a host finds no coordinator.
func (m *Metrics) SkippedTick() {
	m.skipped()
}
