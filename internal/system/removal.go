package system

import (
	"time"

	"github.com/lanedefense/sim/internal/component"
	"github.com/lanedefense/sim/internal/core/ecs"
	"github.com/lanedefense/sim/internal/core/event"
	coresys "github.com/lanedefense/sim/internal/core/system"
	"github.com/lanedefense/sim/internal/scene"
	"go.uber.org/zap"
)

// RemovalSystem is the single point where entities are destroyed. It
// snapshots every ToRemove entity into the world's destroy queue before
// touching any table, then detaches each visual and purges the entity.
type RemovalSystem struct {
	w     *ecs.World
	t     *component.Tables
	scene scene.Renderer
	bus   *event.Bus
	log   *zap.Logger

	removed uint64
}

func NewRemovalSystem(w *ecs.World, t *component.Tables, r scene.Renderer, bus *event.Bus, log *zap.Logger) *RemovalSystem {
	return &RemovalSystem{w: w, t: t, scene: r, bus: bus, log: log}
}

func (s *RemovalSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *RemovalSystem) Update(_ time.Duration) {
	if s.t.ToRemove.Len() == 0 {
		return
	}
	for _, id := range s.t.ToRemove.IDs() {
		s.w.MarkForDestruction(id)
	}
	n := s.w.FlushDestroyQueue(s.detach)
	s.removed += uint64(n)
	s.log.Debug("entities removed", zap.Int("count", n), zap.Int("alive", s.w.Len()))
}

func (s *RemovalSystem) detach(id ecs.EntityID) {
	if m, ok := s.t.Mesh.Get(id); ok && m.Node != nil {
		s.scene.Detach(m.Node)
	}
	event.Emit(s.bus, event.EntityDestroyed{EntityID: id, Enemy: s.t.Enemy.Has(id)})
}

// Removed returns the total number of entities destroyed so far.
func (s *RemovalSystem) Removed() uint64 { return s.removed }
