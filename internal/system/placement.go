package system

import (
	"time"

	"github.com/lanedefense/sim/internal/component"
	"github.com/lanedefense/sim/internal/core/ecs"
	"github.com/lanedefense/sim/internal/core/event"
	coresys "github.com/lanedefense/sim/internal/core/system"
	"github.com/lanedefense/sim/internal/factory"
	"github.com/lanedefense/sim/internal/hud"
	"github.com/lanedefense/sim/internal/scene"
	"go.uber.org/zap"
)

// PlacementSystem publishes the build preview every tick and serves build
// requests drained from its channel.
type PlacementSystem struct {
	t        *component.Tables
	hud      HUD
	factory  *factory.Factory
	power    *ResourceSystem
	requests <-chan hud.BuildRequest
	bus      *event.Bus
	log      *zap.Logger

	preview hud.Placement
	placed  int
}

func NewPlacementSystem(t *component.Tables, h HUD, f *factory.Factory, power *ResourceSystem,
	requests <-chan hud.BuildRequest, bus *event.Bus, log *zap.Logger) *PlacementSystem {
	return &PlacementSystem{
		t:        t,
		hud:      h,
		factory:  f,
		power:    power,
		requests: requests,
		bus:      bus,
		log:      log,
	}
}

func (s *PlacementSystem) Phase() coresys.Phase { return coresys.PhaseEconomy }

func (s *PlacementSystem) Update(_ time.Duration) {
	s.updatePlacement()
	for {
		select {
		case req, ok := <-s.requests:
			if !ok {
				s.requests = nil
				return
			}
			s.build(req)
		default:
			return
		}
	}
}

// Preview returns the placement published by the last update.
func (s *PlacementSystem) Preview() hud.Placement { return s.preview }

// Placed returns the number of structures built so far.
func (s *PlacementSystem) Placed() int { return s.placed }

func (s *PlacementSystem) updatePlacement() {
	point, ok := s.hud.PointerGroundIntersection()
	if !ok {
		s.preview = hud.Placement{}
		s.hud.PublishPlacement(s.preview)
		return
	}

	x, z := point.Cell()
	valid := !s.hud.SelectedBuildOption().Disabled
	s.t.Mesh.Each(func(id ecs.EntityID, m *component.Mesh) {
		if !valid || m.Node == nil || s.t.Projectile.Has(id) {
			return
		}
		ex, ez := m.Node.WorldPosition().Cell()
		if ex == x && ez == z {
			valid = false
		}
	})

	s.preview = hud.Placement{Valid: valid, HasCell: true, X: x, Z: z}
	s.hud.PublishPlacement(s.preview)
}

func (s *PlacementSystem) build(req hud.BuildRequest) {
	s.updatePlacement()
	if !s.preview.Valid {
		return
	}
	id, err := s.factory.Build(req.Kind)
	if err != nil {
		s.log.Warn("build request rejected", zap.String("kind", req.Kind), zap.Error(err))
		return
	}
	s.power.Spend(req.Cost)
	s.t.Mesh.Must(id).Node.SetPosition(scene.Vec3{X: float64(s.preview.X), Z: float64(s.preview.Z)})
	s.placed++

	event.Emit(s.bus, event.StructurePlaced{
		EntityID: id,
		Kind:     req.Kind,
		Cost:     req.Cost,
		X:        s.preview.X,
		Z:        s.preview.Z,
	})
}
