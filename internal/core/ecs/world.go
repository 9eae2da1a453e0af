package ecs

// World is the top-level ECS container. It owns the entity pool, the component
// registry, and a deferred destruction queue flushed once per tick by the
// removal system. It is not safe for concurrent use; the tick loop is its
// only caller.
type World struct {
	pool         *EntityPool
	registry     *Registry
	destroyQueue []EntityID
}

func NewWorld() *World {
	return &World{
		pool:         NewEntityPool(),
		registry:     NewRegistry(),
		destroyQueue: make([]EntityID, 0, 64),
	}
}

func (w *World) Pool() *EntityPool   { return w.pool }
func (w *World) Registry() *Registry { return w.registry }

// CreateEntity allocates a fresh id and attaches a default-initialized
// instance of every listed kind. Nothing is allocated if any kind is
// unregistered.
func (w *World) CreateEntity(kinds ...Kind) (EntityID, error) {
	tables := make([]table, 0, len(kinds))
	for _, k := range kinds {
		t, err := w.registry.table(k)
		if err != nil {
			return None, err
		}
		tables = append(tables, t)
	}
	id := w.pool.Create()
	for _, t := range tables {
		t.attach(id)
	}
	return id, nil
}

// AddComponents attaches default-initialized components to a live entity.
// Kinds the entity already holds are left untouched.
func (w *World) AddComponents(id EntityID, kinds ...Kind) error {
	tables := make([]table, 0, len(kinds))
	for _, k := range kinds {
		t, err := w.registry.table(k)
		if err != nil {
			return err
		}
		tables = append(tables, t)
	}
	if !w.pool.Alive(id) {
		return ErrEntityNotAlive
	}
	for _, t := range tables {
		t.attach(id)
	}
	return nil
}

// Has reports whether id holds a component of kind. Unregistered kinds
// report false.
func (w *World) Has(id EntityID, kind Kind) bool {
	t, err := w.registry.table(kind)
	if err != nil {
		return false
	}
	return t.Has(id)
}

func (w *World) Alive(id EntityID) bool {
	return w.pool.Alive(id)
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return w.pool.Len()
}

// RemoveEntity deletes id from every component table and releases the id.
// Tables that no longer hold the entity are skipped.
func (w *World) RemoveEntity(id EntityID) {
	w.registry.RemoveAll(id)
	w.pool.Destroy(id)
}

// MarkForDestruction queues an entity for the next FlushDestroyQueue.
func (w *World) MarkForDestruction(id EntityID) {
	w.destroyQueue = append(w.destroyQueue, id)
}

// Pending returns the number of queued destructions.
func (w *World) Pending() int {
	return len(w.destroyQueue)
}

// FlushDestroyQueue destroys all queued entities and clears their components.
// before, if non-nil, runs for each live entity while its components are
// still readable. Duplicate and stale ids are skipped. Returns the number of
// entities destroyed.
func (w *World) FlushDestroyQueue(before func(EntityID)) int {
	n := 0
	for _, id := range w.destroyQueue {
		if !w.pool.Alive(id) {
			continue
		}
		if before != nil {
			before(id)
		}
		w.RemoveEntity(id)
		n++
	}
	w.destroyQueue = w.destroyQueue[:0]
	return n
}
