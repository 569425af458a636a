package ecs

import (
	"fmt"

	"github.com/milk9111/parallax/ecs/component"
)

// Add stores value as e's component of the given kind, replacing any
// previous value.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	if !w.IsAlive(e) {
		return fmt.Errorf("%w: %s", component.ErrEntityNotAlive, e)
	}
	set := setFor(w, kind, true)
	if set == nil {
		return component.ErrInvalidComponentKind
	}
	set.set(e, value)
	return nil
}

func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	if !w.IsAlive(e) {
		return nil, false
	}
	set := setFor(w, kind, false)
	if set == nil {
		return nil, false
	}
	return set.get(e)
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	_, ok := Get(w, e, kind)
	return ok
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if w == nil {
		return false
	}
	set := setFor(w, kind, false)
	if set == nil {
		return false
	}
	return set.remove(e)
}

// ForEach calls fn for every entity holding kind. Entities added during the
// walk are not visited; removed ones are skipped.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	if w == nil {
		return
	}
	set := setFor(w, kind, false)
	if set == nil {
		return
	}
	for _, e := range snapshot(set.entities()) {
		if v, ok := set.get(e); ok && w.IsAlive(e) {
			fn(e, v)
		}
	}
}

func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	if w == nil {
		return
	}
	sa, sb := setFor(w, ka, false), setFor(w, kb, false)
	if sa == nil || sb == nil {
		return
	}
	for _, e := range snapshot(smallest(sa, sb).entities()) {
		a, ok := sa.get(e)
		if !ok {
			continue
		}
		b, ok := sb.get(e)
		if !ok || !w.IsAlive(e) {
			continue
		}
		fn(e, a, b)
	}
}

func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	if w == nil {
		return
	}
	sa, sb, sc := setFor(w, ka, false), setFor(w, kb, false), setFor(w, kc, false)
	if sa == nil || sb == nil || sc == nil {
		return
	}
	for _, e := range snapshot(smallest(sa, sb, sc).entities()) {
		a, ok := sa.get(e)
		if !ok {
			continue
		}
		b, ok := sb.get(e)
		if !ok {
			continue
		}
		c, ok := sc.get(e)
		if !ok || !w.IsAlive(e) {
			continue
		}
		fn(e, a, b, c)
	}
}

func ForEach4[A, B, C, D any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], kd component.ComponentKind[D], fn func(Entity, *A, *B, *C, *D)) {
	if w == nil {
		return
	}
	sa, sb, sc, sd := setFor(w, ka, false), setFor(w, kb, false), setFor(w, kc, false), setFor(w, kd, false)
	if sa == nil || sb == nil || sc == nil || sd == nil {
		return
	}
	for _, e := range snapshot(smallest(sa, sb, sc, sd).entities()) {
		a, ok := sa.get(e)
		if !ok {
			continue
		}
		b, ok := sb.get(e)
		if !ok {
			continue
		}
		c, ok := sc.get(e)
		if !ok {
			continue
		}
		d, ok := sd.get(e)
		if !ok || !w.IsAlive(e) {
			continue
		}
		fn(e, a, b, c, d)
	}
}

func smallest(stores ...store) store {
	best := stores[0]
	for _, s := range stores[1:] {
		if s.len() < best.len() {
			best = s
		}
	}
	return best
}

func snapshot(ents []Entity) []Entity {
	return append([]Entity(nil), ents...)
}
