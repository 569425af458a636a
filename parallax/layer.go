package parallax

import (
	"fmt"
	"math"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/parallax/common"
)

type Kind int

const (
	KindHorizontal Kind = iota
	KindComplex
	KindGrid
	KindDepthOnly
)

func (k Kind) String() string {
	switch k {
	case KindHorizontal:
		return "horizontal"
	case KindComplex:
		return "complex"
	case KindGrid:
		return "grid"
	case KindDepthOnly:
		return "depth_only"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "horizontal":
		return KindHorizontal, nil
	case "complex", "angled":
		return KindComplex, nil
	case "grid":
		return KindGrid, nil
	case "depth_only", "depth":
		return KindDepthOnly, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// OffsetMode selects how follow movement turns into layer movement.
type OffsetMode int

const (
	// OffsetMagnitude moves the layer along its direction by the length of
	// the follow delta.
	OffsetMagnitude OffsetMode = iota
	// OffsetProjection moves the layer by the follow delta projected onto its
	// direction. With the default rightward direction this is horizontal-only
	// parallax.
	OffsetProjection
)

func (m OffsetMode) String() string {
	switch m {
	case OffsetMagnitude:
		return "magnitude"
	case OffsetProjection:
		return "projection"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

func ParseOffsetMode(s string) (OffsetMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "magnitude":
		return OffsetMagnitude, nil
	case "projection", "horizontal":
		return OffsetProjection, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownOffsetMode, s)
	}
}

type LayerConfig struct {
	Kind       Kind
	DepthOrder int
	Speed      float64
	// Angle of the movement direction in degrees; 0 is rightward.
	// Horizontal layers always move rightward and ignore it.
	Angle  float64
	Mode   OffsetMode
	Wrap   bool
	Tiling TilingConfig
}

// DefaultLayerConfig returns the settings each kind starts from.
func DefaultLayerConfig(kind Kind) LayerConfig {
	cfg := LayerConfig{Kind: kind}
	switch kind {
	case KindHorizontal:
		cfg.Mode = OffsetProjection
		cfg.Wrap = true
		cfg.Tiling.Mode = TileStrip
	case KindGrid:
		cfg.Mode = OffsetMagnitude
		cfg.Tiling.Mode = TileGrid
	default:
		cfg.Mode = OffsetMagnitude
	}
	return cfg
}

// Direction returns the unit vector for an angle in degrees.
func Direction(angle float64) cp.Vector {
	return cp.ForAngle(angle * math.Pi / 180)
}

type Phase int

const (
	PhaseInactive Phase = iota
	PhaseActivating
	PhaseActive
)

func (p Phase) String() string {
	switch p {
	case PhaseInactive:
		return "inactive"
	case PhaseActivating:
		return "activating"
	case PhaseActive:
		return "active"
	default:
		return "unknown"
	}
}

// Layer accumulates the parallax offset of one layer and writes its position.
type Layer struct {
	cfg       LayerConfig
	direction cp.Vector
	behavior  Behavior

	phase         Phase
	lastFollow    cp.Vector
	offset        cp.Vector
	wrapWidth     float64
	offsetChanged bool
	depthPending  bool
}

func NewLayer(cfg LayerConfig) *Layer {
	l := &Layer{}
	l.apply(cfg)
	return l
}

func (l *Layer) apply(cfg LayerConfig) {
	l.cfg = cfg
	l.direction = Direction(cfg.Angle)
	if cfg.Kind == KindHorizontal {
		l.direction = cp.Vector{X: 1}
	}
	l.behavior = BehaviorFor(cfg.Kind)
}

func (l *Layer) Config() LayerConfig {
	return l.cfg
}

func (l *Layer) Kind() Kind {
	return l.cfg.Kind
}

func (l *Layer) DepthOrder() int {
	return l.cfg.DepthOrder
}

func (l *Layer) Phase() Phase {
	return l.phase
}

func (l *Layer) Offset() cp.Vector {
	return l.offset
}

func (l *Layer) LastFollow() cp.Vector {
	return l.lastFollow
}

func (l *Layer) Direction() cp.Vector {
	return l.direction
}

func (l *Layer) WrapWidth() float64 {
	return l.wrapWidth
}

// SetWrapWidth sets the period used to wrap the horizontal offset.
func (l *Layer) SetWrapWidth(w float64) {
	if w < 0 || !common.IsFinite(w) {
		w = 0
	}
	l.wrapWidth = w
	l.wrapOffset()
}

func (l *Layer) OffsetChanged() bool {
	return l.offsetChanged
}

func (l *Layer) ClearOffsetChanged() {
	l.offsetChanged = false
}

// Reconfigure swaps the configuration. Depth is rewritten on the next tick;
// offset state is kept.
func (l *Layer) Reconfigure(cfg LayerConfig) {
	l.apply(cfg)
	l.depthPending = true
	l.wrapOffset()
}

// Activate moves an inactive layer into the activating phase: Z is assigned,
// the follow position is seeded and the offset starts at zero.
func (l *Layer) Activate(c *Coordinator, obj Positioned) bool {
	if c == nil || obj == nil {
		return false
	}
	l.phase = PhaseActivating
	l.offset = cp.Vector{}
	l.offsetChanged = false
	l.lastFollow = c.FollowPosition()
	l.ApplyDepth(c, obj)
	if l.behavior.Moves() {
		l.emit(obj, l.lastFollow)
	}
	return true
}

// ApplyDepth writes the mapped Z of this layer when the coordinator uses depth.
func (l *Layer) ApplyDepth(c *Coordinator, obj Positioned) {
	l.depthPending = false
	if c == nil || obj == nil || !c.UseDepth() {
		return
	}
	p := obj.Position()
	p.Z = c.Depth(l.cfg.DepthOrder)
	obj.SetPosition(p)
}

// Tick runs one update. It does nothing when c is nil or the layer is
// inactive, and reports whether the layer was updated.
func (l *Layer) Tick(c *Coordinator, obj Positioned) bool {
	if c == nil || obj == nil {
		c.Metrics().skipped()
		return false
	}
	if l.phase == PhaseInactive {
		return false
	}
	if l.depthPending {
		l.ApplyDepth(c, obj)
	}

	follow := c.FollowPosition()
	if l.phase == PhaseActivating {
		l.lastFollow = follow
		l.phase = PhaseActive
		if l.behavior.Moves() {
			l.emit(obj, follow.Add(l.offset))
		}
		c.Metrics().ticked()
		return true
	}

	pos := l.Advance(follow, c.ReferenceSpeed())
	if l.behavior.Moves() {
		l.emit(obj, pos)
	}
	c.Metrics().ticked()
	return true
}

// Advance applies the follow movement since the previous call and returns the
// layer position follow+offset.
func (l *Layer) Advance(follow cp.Vector, referenceSpeed float64) cp.Vector {
	delta := follow.Sub(l.lastFollow)
	l.lastFollow = follow

	if l.behavior.Moves() {
		var amount float64
		switch l.cfg.Mode {
		case OffsetProjection:
			amount = delta.Dot(l.direction)
		default:
			amount = delta.Length()
		}
		step := l.direction.Mult(amount * referenceSpeed * l.cfg.Speed)
		if common.IsFinite(step.X) && common.IsFinite(step.Y) && (step.X != 0 || step.Y != 0) {
			l.offset = l.offset.Add(step)
			l.offsetChanged = true
		}
	}

	l.behavior.AfterAdvance(l)
	return follow.Add(l.offset)
}

// SnapOffset shifts the accumulated offset by delta.
func (l *Layer) SnapOffset(delta cp.Vector) {
	if !common.IsFinite(delta.X) || !common.IsFinite(delta.Y) {
		return
	}
	l.offset = l.offset.Add(delta)
	l.wrapOffset()
}

// Deactivate returns the layer to the inactive phase and discards its state.
func (l *Layer) Deactivate() {
	l.phase = PhaseInactive
	l.offset = cp.Vector{}
	l.lastFollow = cp.Vector{}
	l.offsetChanged = false
}

func (l *Layer) wrapOffset() {
	if l.cfg.Wrap && l.wrapWidth > 0 {
		l.offset.X = common.WrapMod(l.offset.X, l.wrapWidth)
	}
}

func (l *Layer) emit(obj Positioned, pos cp.Vector) {
	cur := obj.Position()
	obj.SetPosition(Vec3{X: pos.X, Y: pos.Y, Z: cur.Z})
}
