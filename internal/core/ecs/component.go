package ecs

// Kind identifies a component table. The set of kinds is closed and declared
// by the game at startup; KindNone is reserved and never registered.
type Kind uint8

const (
	KindNone Kind = 0
	MaxKinds      = 64
)

// table is the type-erased view of a Store the Registry works with.
type table interface {
	Remove(id EntityID) bool
	Has(id EntityID) bool
	Len() int
	attach(id EntityID) bool
}

// Store is a typed component table: a sparse map from entity to a dense,
// insertion-ordered slice of component pointers. Removal swaps the last entry
// into the hole, so order is not stable across removals.
type Store[T any] struct {
	kind  Kind
	name  string
	def   T
	index map[EntityID]int
	ids   []EntityID
	data  []*T
}

func newStore[T any](kind Kind, name string, def T) *Store[T] {
	return &Store[T]{
		kind:  kind,
		name:  name,
		def:   def,
		index: make(map[EntityID]int, 64),
		ids:   make([]EntityID, 0, 64),
		data:  make([]*T, 0, 64),
	}
}

func (s *Store[T]) Kind() Kind   { return s.kind }
func (s *Store[T]) Name() string { return s.name }

// Default returns a copy of the store's default template.
func (s *Store[T]) Default() T { return s.def }

// Set inserts or replaces the component for id.
func (s *Store[T]) Set(id EntityID, c *T) {
	if i, ok := s.index[id]; ok {
		s.data[i] = c
		return
	}
	s.index[id] = len(s.ids)
	s.ids = append(s.ids, id)
	s.data = append(s.data, c)
}

func (s *Store[T]) Get(id EntityID) (*T, bool) {
	i, ok := s.index[id]
	if !ok {
		return nil, false
	}
	return s.data[i], true
}

// Must returns the component for id and panics with *MissingComponentError
// when the entity does not hold it.
func (s *Store[T]) Must(id EntityID) *T {
	i, ok := s.index[id]
	if !ok {
		panic(&MissingComponentError{Kind: s.kind, Name: s.name, Entity: id})
	}
	return s.data[i]
}

func (s *Store[T]) Has(id EntityID) bool {
	_, ok := s.index[id]
	return ok
}

// Remove deletes id's component. Removing an absent entry is a no-op.
func (s *Store[T]) Remove(id EntityID) bool {
	i, ok := s.index[id]
	if !ok {
		return false
	}
	last := len(s.ids) - 1
	if i != last {
		s.ids[i] = s.ids[last]
		s.data[i] = s.data[last]
		s.index[s.ids[i]] = i
	}
	s.ids[last] = None
	s.data[last] = nil
	s.ids = s.ids[:last]
	s.data = s.data[:last]
	delete(s.index, id)
	return true
}

func (s *Store[T]) Len() int {
	return len(s.ids)
}

// Each visits entries in insertion order. Entries appended by fn are visited
// too; fn must not remove entries.
func (s *Store[T]) Each(fn func(EntityID, *T)) {
	for i := 0; i < len(s.ids); i++ {
		fn(s.ids[i], s.data[i])
	}
}

// IDs returns a snapshot of the entity ids currently in the store.
func (s *Store[T]) IDs() []EntityID {
	out := make([]EntityID, len(s.ids))
	copy(out, s.ids)
	return out
}

func (s *Store[T]) attach(id EntityID) bool {
	if s.Has(id) {
		return false
	}
	c := s.def
	s.Set(id, &c)
	return true
}
