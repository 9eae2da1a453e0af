package system

import (
	"time"

	"github.com/lanedefense/sim/internal/component"
	"github.com/lanedefense/sim/internal/core/ecs"
	coresys "github.com/lanedefense/sim/internal/core/system"
)

// FloorY is the height at or below which an explosive self-destructs.
const FloorY = -0.5

// ExplosiveSystem tags explosives and their collision partners for removal.
// Every Explosive entity must also hold a Collider and a Mesh.
type ExplosiveSystem struct {
	w *ecs.World
	t *component.Tables
}

func NewExplosiveSystem(w *ecs.World, t *component.Tables) *ExplosiveSystem {
	return &ExplosiveSystem{w: w, t: t}
}

func (s *ExplosiveSystem) Phase() coresys.Phase { return coresys.PhaseResolve }

func (s *ExplosiveSystem) Update(_ time.Duration) {
	s.t.Explosive.Each(func(id ecs.EntityID, ex *component.Explosive) {
		collided := s.t.Collider.Must(id).Collided
		belowFloor := s.t.Mesh.Must(id).Node.Position().Y <= FloorY

		matched := collided != ecs.None &&
			(ex.Explodes == ecs.KindNone || s.w.Has(collided, ex.Explodes))

		if belowFloor || (matched && ex.Destructible) {
			markForRemoval(s.w, id)
		}
		if matched {
			markForRemoval(s.w, collided)
		}
	})
}

// OnboardSystem cascades removal from a vehicle to whatever it carries.
type OnboardSystem struct {
	w *ecs.World
	t *component.Tables
}

func NewOnboardSystem(w *ecs.World, t *component.Tables) *OnboardSystem {
	return &OnboardSystem{w: w, t: t}
}

func (s *OnboardSystem) Phase() coresys.Phase { return coresys.PhaseResolve }

func (s *OnboardSystem) Update(_ time.Duration) {
	s.t.Vehicle.Each(func(id ecs.EntityID, v *component.Vehicle) {
		if v.Onboard == ecs.None || !s.t.ToRemove.Has(id) {
			return
		}
		markForRemoval(s.w, v.Onboard)
	})
}
