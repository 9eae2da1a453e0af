package system

import (
	"time"

	"github.com/lanedefense/sim/internal/component"
	"github.com/lanedefense/sim/internal/core/ecs"
	coresys "github.com/lanedefense/sim/internal/core/system"
	"github.com/lanedefense/sim/internal/scene"
)

// GravitySystem integrates gravity into velocity. Every Gravity entity must
// also hold a Velocity.
type GravitySystem struct {
	t *component.Tables
}

func NewGravitySystem(t *component.Tables) *GravitySystem {
	return &GravitySystem{t: t}
}

func (s *GravitySystem) Phase() coresys.Phase { return coresys.PhasePhysics }

func (s *GravitySystem) Update(dt time.Duration) {
	sec := dt.Seconds()
	s.t.Gravity.Each(func(id ecs.EntityID, g *component.Gravity) {
		s.t.Velocity.Must(id).Y += g.Force * sec
	})
}

// VelocitySystem moves meshes by their velocity. Entities without a Mesh are
// skipped.
type VelocitySystem struct {
	t *component.Tables
}

func NewVelocitySystem(t *component.Tables) *VelocitySystem {
	return &VelocitySystem{t: t}
}

func (s *VelocitySystem) Phase() coresys.Phase { return coresys.PhasePhysics }

func (s *VelocitySystem) Update(dt time.Duration) {
	sec := dt.Seconds()
	ecs.Each2(s.t.Velocity, s.t.Mesh, func(_ ecs.EntityID, v *component.Velocity, m *component.Mesh) {
		if m.Node == nil {
			return
		}
		m.Node.SetPosition(m.Node.Position().Add(scene.Vec3{X: v.X, Y: v.Y, Z: v.Z}.Scale(sec)))
	})
}
