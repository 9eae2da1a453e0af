package ecs

// Registry tracks all component stores by kind and name and supports bulk
// cleanup on entity destroy.
type Registry struct {
	tables [MaxKinds]table
	names  [MaxKinds]string
	byName map[string]Kind
	kinds  []Kind
}

func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]Kind, 16),
		kinds:  make([]Kind, 0, 16),
	}
}

// Register creates the typed store for kind with the given default template.
// It fails with *DuplicateComponentError if the kind or the name is taken.
func Register[T any](w *World, kind Kind, name string, def T) (*Store[T], error) {
	s := newStore(kind, name, def)
	if err := w.registry.add(kind, name, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *Registry) add(kind Kind, name string, t table) error {
	if kind == KindNone || int(kind) >= MaxKinds {
		return &UnknownComponentError{Kind: kind, Name: name}
	}
	if r.tables[kind] != nil {
		return &DuplicateComponentError{Kind: kind, Name: r.names[kind]}
	}
	if other, ok := r.byName[name]; ok {
		return &DuplicateComponentError{Kind: other, Name: name}
	}
	r.tables[kind] = t
	r.names[kind] = name
	r.byName[name] = kind
	r.kinds = append(r.kinds, kind)
	return nil
}

func (r *Registry) table(kind Kind) (table, error) {
	if int(kind) >= MaxKinds || r.tables[kind] == nil {
		return nil, &UnknownComponentError{Kind: kind}
	}
	return r.tables[kind], nil
}

// Lookup resolves a component name to its kind.
func (r *Registry) Lookup(name string) (Kind, error) {
	k, ok := r.byName[name]
	if !ok {
		return KindNone, &UnknownComponentError{Name: name}
	}
	return k, nil
}

// Name returns the registered name of kind, or "" if unregistered.
func (r *Registry) Name(kind Kind) string {
	if int(kind) >= MaxKinds {
		return ""
	}
	return r.names[kind]
}

// Kinds returns registered kinds in registration order.
func (r *Registry) Kinds() []Kind {
	out := make([]Kind, len(r.kinds))
	copy(out, r.kinds)
	return out
}

// RemoveAll clears the given entity from every registered component store.
func (r *Registry) RemoveAll(id EntityID) {
	for _, k := range r.kinds {
		r.tables[k].Remove(id)
	}
}
