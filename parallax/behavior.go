package parallax

// Behavior is the per-kind part of a layer update.
type Behavior interface {
	// Moves reports whether the layer follows the coordinator at all.
	Moves() bool
	// AfterAdvance runs after every offset update.
	AfterAdvance(l *Layer)
}

func BehaviorFor(kind Kind) Behavior {
	switch kind {
	case KindHorizontal:
		return horizontalBehavior{}
	case KindGrid:
		return gridBehavior{}
	case KindDepthOnly:
		return depthOnlyBehavior{}
	default:
		return complexBehavior{}
	}
}

// horizontalBehavior keeps the offset inside one tile period; the tile strip
// itself never moves relative to the layer.
type horizontalBehavior struct{}

func (horizontalBehavior) Moves() bool { return true }

func (horizontalBehavior) AfterAdvance(l *Layer) {
	l.wrapOffset()
}

type complexBehavior struct{}

func (complexBehavior) Moves() bool { return true }

func (complexBehavior) AfterAdvance(l *Layer) {
	l.wrapOffset()
}

// gridBehavior leaves the offset alone; the tiler reads OffsetChanged to
// schedule a regeneration and snaps the offset back when it drifts.
type gridBehavior struct{}

func (gridBehavior) Moves() bool { return true }

func (gridBehavior) AfterAdvance(*Layer) {}

type depthOnlyBehavior struct{}

func (depthOnlyBehavior) Moves() bool { return false }

func (depthOnlyBehavior) AfterAdvance(*Layer) {}
