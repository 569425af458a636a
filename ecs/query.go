package ecs

import (
	"sort"

	"github.com/milk9111/parallax/ecs/component"
)

// Query returns the live entities holding every kind, in id order.
func (w *World) Query(kinds ...component.Kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	stores := make([]store, 0, len(kinds))
	for _, k := range kinds {
		s := w.store(k.ID())
		if s == nil {
			return nil
		}
		stores = append(stores, s)
	}

	base := smallest(stores...)
	out := make([]Entity, 0, base.len())
	for _, e := range base.entities() {
		if !w.IsAlive(e) {
			continue
		}
		all := true
		for _, s := range stores {
			if s != base && !s.has(e) {
				all = false
				break
			}
		}
		if all {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id() < out[j].id() })
	return out
}

// First returns the lowest-id entity holding every kind.
func (w *World) First(kinds ...component.Kind) (Entity, bool) {
	ents := w.Query(kinds...)
	if len(ents) == 0 {
		return 0, false
	}
	return ents[0], true
}

// Count returns how many live entities hold kind.
func (w *World) Count(kind component.Kind) int {
	return len(w.Query(kind))
}
