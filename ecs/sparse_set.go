package ecs

// store is the type-erased view of a sparseSet the world needs for
// destruction and multi-kind queries.
type store interface {
	has(e Entity) bool
	remove(e Entity) bool
	entities() []Entity
	len() int
}

// sparseSet keeps the components of one kind densely packed, indexed by
// entity id.
type sparseSet[T any] struct {
	dense  []Entity
	values []*T
	// sparse holds dense index+1 per entity id; 0 means absent.
	sparse []int
}

func newSparseSet[T any]() *sparseSet[T] {
	return &sparseSet[T]{}
}

func (s *sparseSet[T]) index(e Entity) (int, bool) {
	id := int(e.id())
	if id == 0 || id > len(s.sparse) {
		return 0, false
	}
	i := s.sparse[id-1] - 1
	if i < 0 || s.dense[i] != e {
		return 0, false
	}
	return i, true
}

func (s *sparseSet[T]) has(e Entity) bool {
	_, ok := s.index(e)
	return ok
}

func (s *sparseSet[T]) get(e Entity) (*T, bool) {
	i, ok := s.index(e)
	if !ok {
		return nil, false
	}
	return s.values[i], true
}

func (s *sparseSet[T]) set(e Entity, v *T) {
	if i, ok := s.index(e); ok {
		s.values[i] = v
		return
	}
	id := int(e.id())
	for len(s.sparse) < id {
		s.sparse = append(s.sparse, 0)
	}
	s.dense = append(s.dense, e)
	s.values = append(s.values, v)
	s.sparse[id-1] = len(s.dense)
}

func (s *sparseSet[T]) remove(e Entity) bool {
	i, ok := s.index(e)
	if !ok {
		return false
	}
	last := len(s.dense) - 1
	moved := s.dense[last]
	s.dense[i] = moved
	s.values[i] = s.values[last]
	s.sparse[moved.id()-1] = i + 1

	s.dense = s.dense[:last]
	s.values[last] = nil
	s.values = s.values[:last]
	s.sparse[e.id()-1] = 0
	return true
}

func (s *sparseSet[T]) entities() []Entity {
	return s.dense
}

func (s *sparseSet[T]) len() int {
	return len(s.dense)
}
