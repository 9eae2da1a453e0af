package system

import (
	"time"

	"github.com/lanedefense/sim/internal/component"
	"github.com/lanedefense/sim/internal/core/ecs"
	"github.com/lanedefense/sim/internal/core/event"
	coresys "github.com/lanedefense/sim/internal/core/system"
	"github.com/lanedefense/sim/internal/factory"
)

// TurretSystem counts down each turret and fires a projectile from the
// turret's world position when the countdown runs out.
type TurretSystem struct {
	t       *component.Tables
	factory *factory.Factory
	bus     *event.Bus
}

func NewTurretSystem(t *component.Tables, f *factory.Factory, bus *event.Bus) *TurretSystem {
	return &TurretSystem{t: t, factory: f, bus: bus}
}

func (s *TurretSystem) Phase() coresys.Phase { return coresys.PhaseGameplay }

func (s *TurretSystem) Update(dt time.Duration) {
	sec := dt.Seconds()
	s.t.Turret.Each(func(id ecs.EntityID, tur *component.Turret) {
		tur.TimeUntilFire -= sec
		if tur.TimeUntilFire > 0 {
			return
		}
		p := s.factory.Projectile()
		origin := s.t.Mesh.Must(id).Node.WorldPosition()
		s.t.Mesh.Must(p).Node.SetPosition(origin)
		tur.TimeUntilFire = 1 / tur.FiringRate
		event.Emit(s.bus, event.ProjectileFired{Turret: id, Projectile: p})
	})
}
