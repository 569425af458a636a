package parallax

import (
	"sync"

	"github.com/jakecoffman/cp"
)

type FollowMode int

const (
	FollowTarget FollowMode = iota
	FollowPosition
)

func (m FollowMode) String() string {
	switch m {
	case FollowTarget:
		return "target"
	case FollowPosition:
		return "position"
	default:
		return "unknown"
	}
}

// Config holds the settings shared by every layer.
type Config struct {
	// ReferenceSpeed multiplies every layer's own speed.
	ReferenceSpeed float64
	// ReferenceZ is the depth assigned to order 0.
	ReferenceZ float64
	// ReferenceZSource, when set and alive, overrides ReferenceZ with its Z.
	ReferenceZSource Target
	// MaxDepth is the Z distance from ReferenceZ reached by the extreme orders.
	MaxDepth float64
	// UseDepth enables Z assignment on layers.
	UseDepth bool
	// Origin is the fixed follow position used before any Follow call.
	Origin cp.Vector
}

func DefaultConfig() Config {
	return Config{
		ReferenceSpeed: 2,
		ReferenceZ:     1,
		MaxDepth:       1,
		UseDepth:       true,
	}
}

// Coordinator tracks the follow reference and the depth range of the
// registered layers. A nil Coordinator means parallax is disabled; all of its
// methods return zero values.
type Coordinator struct {
	mu sync.RWMutex

	cfg    Config
	mode   FollowMode
	target Target
	fixed  cp.Vector

	minOrder int
	maxOrder int
	layers   int
	dirty    bool

	metrics *Metrics
}

func NewCoordinator(cfg Config) *Coordinator {
	return &Coordinator{
		cfg:   cfg,
		mode:  FollowPosition,
		fixed: cfg.Origin,
		dirty: true,
	}
}

func (c *Coordinator) SetMetrics(m *Metrics) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.metrics = m
	c.mu.Unlock()
}

func (c *Coordinator) Metrics() *Metrics {
	if c == nil {
		return nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.metrics
}

// Configure replaces the settings. The follow reference is kept.
func (c *Coordinator) Configure(cfg Config) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.cfg = cfg
	c.dirty = true
	c.mu.Unlock()
}

func (c *Coordinator) Config() Config {
	if c == nil {
		return Config{}
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfg
}

// Follow makes t the follow reference. The switch is immediate.
func (c *Coordinator) Follow(t Target) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.target = t
	c.mode = FollowTarget
	c.mu.Unlock()
}

// FollowPoint makes p the follow reference. The switch is immediate.
func (c *Coordinator) FollowPoint(p cp.Vector) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.fixed = p
	c.mode = FollowPosition
	c.mu.Unlock()
}

func (c *Coordinator) Mode() FollowMode {
	if c == nil {
		return FollowPosition
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.mode
}

func (c *Coordinator) Target() Target {
	if c == nil {
		return nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.target
}

// FollowPosition returns the live target position in target mode, or the last
// fixed point when following a point or when the target is gone.
func (c *Coordinator) FollowPosition() cp.Vector {
	if c == nil {
		return cp.Vector{}
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.mode == FollowTarget && c.target != nil && c.target.Alive() {
		return c.target.Position().XY()
	}
	return c.fixed
}

func (c *Coordinator) ReferenceSpeed() float64 {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfg.ReferenceSpeed
}

func (c *Coordinator) UseDepth() bool {
	if c == nil {
		return false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfg.UseDepth
}

func (c *Coordinator) ReferenceZ() float64 {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.referenceZLocked()
}

func (c *Coordinator) referenceZLocked() float64 {
	if src := c.cfg.ReferenceZSource; src != nil && src.Alive() {
		return src.Position().Z
	}
	return c.cfg.ReferenceZ
}

// Depth maps a depth order to Z using the current registry bounds.
func (c *Coordinator) Depth(order int) float64 {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return MapDepth(order, c.minOrder, c.maxOrder, c.referenceZLocked(), c.cfg.MaxDepth)
}

func (c *Coordinator) DepthBounds() (minOrder, maxOrder int) {
	if c == nil {
		return 0, 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.minOrder, c.maxOrder
}

// LayerCount is the number of layers seen by the last Rebuild.
func (c *Coordinator) LayerCount() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.layers
}

// Invalidate schedules a registry rebuild.
func (c *Coordinator) Invalidate() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.dirty = true
	c.mu.Unlock()
}

func (c *Coordinator) Dirty() bool {
	if c == nil {
		return false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.dirty
}

// Rebuild rescans the full set of registered depth orders and reports whether
// the depth bounds changed.
func (c *Coordinator) Rebuild(orders []int) bool {
	if c == nil {
		return false
	}
	minOrder, maxOrder := DepthBounds(orders)

	c.mu.Lock()
	changed := minOrder != c.minOrder || maxOrder != c.maxOrder
	c.minOrder = minOrder
	c.maxOrder = maxOrder
	c.layers = len(orders)
	c.dirty = false
	m := c.metrics
	c.mu.Unlock()

	m.registryRebuilt()
	return changed
}
