package parallax

import (
	"fmt"
	"math"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/parallax/common"
)

type TileMode int

const (
	TileNone TileMode = iota
	// TileStrip repeats the source along +X around the layer, matching the
	// X-only offset wrap.
	TileStrip
	// TileGrid repeats the source on a rotated grid covering the camera.
	TileGrid
)

func (m TileMode) String() string {
	switch m {
	case TileNone:
		return "none"
	case TileStrip:
		return "strip"
	case TileGrid:
		return "grid"
	default:
		return fmt.Sprintf("tile_mode(%d)", int(m))
	}
}

func ParseTileMode(s string) (TileMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return TileNone, nil
	case "strip", "horizontal":
		return TileStrip, nil
	case "grid":
		return TileGrid, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownTileMode, s)
	}
}

type TilingConfig struct {
	Mode              TileMode
	HorizontalSpacing float64
	VerticalSpacing   float64
}

// maxTiles bounds a single regeneration when the source is tiny compared to
// the camera.
const maxTiles = 4096

// FreeTileName marks a tile that may be reused.
const FreeTileName = "<<Free>>"

func TileName(c GridCoord) string {
	return fmt.Sprintf("<<Tile@(%d, %d)>>", c.X, c.Y)
}

type GridCoord struct {
	X, Y int
}

// Tile is one repeated instance of a layer's visual. Local is the tile centre
// relative to the layer centre.
type Tile struct {
	Name    string
	Coord   GridCoord
	Local   cp.Vector
	Visible bool
	// Handle is owned by the InstanceHost.
	Handle any
}

func (t *Tile) Free() bool {
	return t.Name == FreeTileName
}

// InstanceHost creates and updates the visual instances behind tiles.
type InstanceHost interface {
	CreateInstance(t *Tile) error
	UpdateInstance(t *Tile)
	DestroyInstance(t *Tile)
}

// TileSet owns the tiles of a single layer. Tiles are recycled through a free
// list instead of being destroyed between regenerations.
type TileSet struct {
	tiles   []*Tile
	next    int
	host    InstanceHost
	metrics *Metrics
}

func NewTileSet(host InstanceHost, m *Metrics) *TileSet {
	return &TileSet{host: host, metrics: m}
}

func (s *TileSet) Tiles() []*Tile {
	return s.tiles
}

func (s *TileSet) Len() int {
	return len(s.tiles)
}

func (s *TileSet) Visible() []*Tile {
	out := make([]*Tile, 0, len(s.tiles))
	for _, t := range s.tiles {
		if t.Visible {
			out = append(out, t)
		}
	}
	return out
}

func (s *TileSet) releaseAll() {
	for _, t := range s.tiles {
		t.Name = FreeTileName
		t.Visible = false
	}
	s.next = 0
}

func (s *TileSet) acquire(c GridCoord, local cp.Vector) (*Tile, error) {
	for s.next < len(s.tiles) {
		t := s.tiles[s.next]
		s.next++
		if !t.Free() {
			continue
		}
		t.Name = TileName(c)
		t.Coord = c
		t.Local = local
		t.Visible = true
		s.metrics.tileRecycled()
		return t, nil
	}

	t := &Tile{Name: TileName(c), Coord: c, Local: local, Visible: true}
	if s.host != nil {
		if err := s.host.CreateInstance(t); err != nil {
			return nil, fmt.Errorf("create tile %s: %w", t.Name, err)
		}
	}
	s.tiles = append(s.tiles, t)
	s.next = len(s.tiles)
	s.metrics.tileCreated()
	return t, nil
}

func (s *TileSet) flush() {
	if s.host == nil {
		return
	}
	for _, t := range s.tiles {
		s.host.UpdateInstance(t)
	}
}

// Teardown destroys every instance.
func (s *TileSet) Teardown() {
	if s.host != nil {
		for _, t := range s.tiles {
			s.host.DestroyInstance(t)
		}
	}
	s.tiles = nil
	s.next = 0
}

// TileSource is the world size of one tile; a zero size means the layer has
// nothing to repeat.
type TileSource struct {
	Width, Height float64
}

func (s TileSource) Valid() bool {
	return s.Width > 0 && s.Height > 0 && common.IsFinite(s.Width) && common.IsFinite(s.Height)
}

// StripCount is the number of tiles needed on each side of the centre tile
// to cover visibleWidth.
func StripCount(visibleWidth, tileWidth float64) int {
	if tileWidth <= 0 || visibleWidth <= 0 || !common.IsFinite(visibleWidth/tileWidth) {
		return 0
	}
	return int(math.Ceil(visibleWidth/tileWidth)) + 1
}

// Tiler keeps a TileSet covering the camera for one layer.
type Tiler struct {
	cfg     TilingConfig
	set     *TileSet
	metrics *Metrics

	built      bool
	invalid    bool
	lastAspect float64
	lastSize   cp.Vector
	lastCenter cp.Vector
}

func NewTiler(cfg TilingConfig, host InstanceHost, m *Metrics) *Tiler {
	return &Tiler{
		cfg:        cfg,
		set:        NewTileSet(host, m),
		metrics:    m,
		lastAspect: math.NaN(),
	}
}

func (t *Tiler) Config() TilingConfig {
	return t.cfg
}

func (t *Tiler) SetConfig(cfg TilingConfig) {
	t.cfg = cfg
	t.invalid = true
}

func (t *Tiler) Set() *TileSet {
	return t.set
}

func (t *Tiler) Built() bool {
	return t.built
}

// Invalidate forces the next NeedsRegenerate to report true.
func (t *Tiler) Invalidate() {
	t.invalid = true
}

func (t *Tiler) NeedsRegenerate(center cp.Vector, view Viewport, offsetChanged bool) bool {
	if t.cfg.Mode == TileNone {
		return false
	}
	if !t.built || t.invalid {
		return true
	}
	if view != nil && (view.Aspect() != t.lastAspect || viewSize(view.Bounds()) != t.lastSize) {
		return true
	}
	if t.cfg.Mode == TileGrid && (offsetChanged || center != t.lastCenter) {
		return true
	}
	return false
}

// Regenerate rebuilds the tile set around center. For grid tiling it may snap
// the layer offset back by whole grid strides; the applied shift is returned
// so the caller can move the layer by the same amount.
func (t *Tiler) Regenerate(l *Layer, center cp.Vector, src TileSource, view Viewport) (cp.Vector, error) {
	if t.cfg.Mode == TileNone || !src.Valid() || view == nil {
		return cp.Vector{}, nil
	}

	var (
		snap cp.Vector
		err  error
	)
	t.set.releaseAll()
	switch t.cfg.Mode {
	case TileStrip:
		err = t.buildStrip(l, src, view.Bounds())
	case TileGrid:
		snap, err = t.buildGrid(l, center, src, view.Bounds())
	}
	t.set.flush()
	if err != nil {
		return snap, err
	}

	t.built = true
	t.invalid = false
	t.lastAspect = view.Aspect()
	t.lastSize = viewSize(view.Bounds())
	t.lastCenter = center.Add(snap)
	t.metrics.regenerated()
	return snap, nil
}

// Teardown destroys all tiles.
func (t *Tiler) Teardown() {
	t.set.Teardown()
	t.built = false
	t.lastAspect = math.NaN()
	t.lastSize = cp.Vector{}
}

func (t *Tiler) buildStrip(l *Layer, src TileSource, bb cp.BB) error {
	stride := src.Width + t.cfg.HorizontalSpacing
	if stride <= 0 {
		stride = src.Width
	}
	n := StripCount(bb.R-bb.L, stride)
	if 2*n+1 > maxTiles {
		n = (maxTiles - 1) / 2
	}
	for i := -n; i <= n; i++ {
		if _, err := t.set.acquire(GridCoord{X: i}, cp.Vector{X: float64(i) * stride}); err != nil {
			return err
		}
	}
	if l != nil {
		l.SetWrapWidth(stride)
	}
	return nil
}

func (t *Tiler) buildGrid(l *Layer, center cp.Vector, src TileSource, bb cp.BB) (cp.Vector, error) {
	u := cp.Vector{X: 1}
	if l != nil {
		u = l.Direction()
	}
	v := u.Perp()

	sx := src.Width + t.cfg.HorizontalSpacing
	if sx <= 0 {
		sx = src.Width
	}
	sy := src.Height + t.cfg.VerticalSpacing
	if sy <= 0 {
		sy = src.Height
	}
	hw, hh := src.Width/2, src.Height/2

	// The grid is periodic, so moving the layer by whole strides is invisible.
	var snap cp.Vector
	if !bb.ContainsVect(center) {
		d := bbCenter(bb).Sub(center)
		ku := math.Round(d.Dot(u) / sx)
		kv := math.Round(d.Dot(v) / sy)
		snap = u.Mult(ku * sx).Add(v.Mult(kv * sy))
		if snap.X != 0 || snap.Y != 0 {
			if l != nil {
				l.SnapOffset(snap)
			}
			center = center.Add(snap)
			t.metrics.snapped()
		}
	}

	rect := []cp.Vector{
		{X: bb.L, Y: bb.B},
		{X: bb.R, Y: bb.B},
		{X: bb.R, Y: bb.T},
		{X: bb.L, Y: bb.T},
	}
	minV, maxV := projectRange(rect, center, v)

	placed := 0
	place := func(x, y int) error {
		if placed >= maxTiles {
			return nil
		}
		local := u.Mult(float64(x) * sx).Add(v.Mult(float64(y) * sy))
		if _, err := t.set.acquire(GridCoord{X: x, Y: y}, local); err != nil {
			return err
		}
		placed++
		return nil
	}

	row := func(y int) error {
		lo, hi := float64(y)*sy-hh, float64(y)*sy+hh
		region := clipBand(rect, center, v, lo, hi)
		if len(region) == 0 {
			if y == 0 {
				return place(0, 0)
			}
			return nil
		}
		ru0, ru1 := projectRange(region, center, u)
		overlaps := func(x int) bool {
			c := float64(x) * sx
			return c-hw <= ru1 && c+hw >= ru0
		}

		if y == 0 || overlaps(0) {
			if err := place(0, y); err != nil {
				return err
			}
		}
		for x := 1; float64(x)*sx-hw <= ru1 && placed < maxTiles; x++ {
			if overlaps(x) {
				if err := place(x, y); err != nil {
					return err
				}
			}
		}
		for x := -1; float64(x)*sx+hw >= ru0 && placed < maxTiles; x-- {
			if overlaps(x) {
				if err := place(x, y); err != nil {
					return err
				}
			}
		}
		return nil
	}

	if err := row(0); err != nil {
		return snap, err
	}
	for y := 1; float64(y)*sy-hh <= maxV && placed < maxTiles; y++ {
		if err := row(y); err != nil {
			return snap, err
		}
	}
	for y := -1; float64(y)*sy+hh >= minV && placed < maxTiles; y-- {
		if err := row(y); err != nil {
			return snap, err
		}
	}
	return snap, nil
}

func viewSize(bb cp.BB) cp.Vector {
	return cp.Vector{X: bb.R - bb.L, Y: bb.T - bb.B}
}

func bbCenter(bb cp.BB) cp.Vector {
	return cp.Vector{X: (bb.L + bb.R) / 2, Y: (bb.B + bb.T) / 2}
}

func projectRange(poly []cp.Vector, origin, axis cp.Vector) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, p := range poly {
		d := p.Sub(origin).Dot(axis)
		lo = math.Min(lo, d)
		hi = math.Max(hi, d)
	}
	return lo, hi
}

// clipBand clips a convex polygon to origin+axis*[lo, hi].
func clipBand(poly []cp.Vector, origin, axis cp.Vector, lo, hi float64) []cp.Vector {
	poly = clipHalfPlane(poly, func(p cp.Vector) float64 { return p.Sub(origin).Dot(axis) - lo })
	return clipHalfPlane(poly, func(p cp.Vector) float64 { return hi - p.Sub(origin).Dot(axis) })
}

func clipHalfPlane(poly []cp.Vector, dist func(cp.Vector) float64) []cp.Vector {
	if len(poly) == 0 {
		return nil
	}
	out := make([]cp.Vector, 0, len(poly)+2)
	for i := range poly {
		a := poly[i]
		b := poly[(i+1)%len(poly)]
		da, db := dist(a), dist(b)
		if da >= 0 {
			out = append(out, a)
		}
		if (da >= 0) != (db >= 0) {
			f := da / (da - db)
			out = append(out, a.Add(b.Sub(a).Mult(f)))
		}
	}
	return out
}
