package system

import (
	"time"

	"github.com/lanedefense/sim/internal/component"
	"github.com/lanedefense/sim/internal/core/ecs"
	coresys "github.com/lanedefense/sim/internal/core/system"
)

// LaneHalfWidth bounds vehicle movement to x in [-LaneHalfWidth, LaneHalfWidth].
const LaneHalfWidth = 2.0

// VehicleSystem bounces vehicles between the lane bounds.
type VehicleSystem struct {
	t *component.Tables
}

func NewVehicleSystem(t *component.Tables) *VehicleSystem {
	return &VehicleSystem{t: t}
}

func (s *VehicleSystem) Phase() coresys.Phase { return coresys.PhaseGameplay }

func (s *VehicleSystem) Update(dt time.Duration) {
	sec := dt.Seconds()
	s.t.Vehicle.Each(func(id ecs.EntityID, v *component.Vehicle) {
		node := s.t.Mesh.Must(id).Node
		pos := node.Position()
		switch {
		case pos.X >= LaneHalfWidth:
			pos.X = LaneHalfWidth
			v.Speed = -v.Speed
		case pos.X <= -LaneHalfWidth:
			pos.X = -LaneHalfWidth
			v.Speed = -v.Speed
		}
		pos.X += v.Speed * sec
		node.SetPosition(pos)
	})
}
