package system

import (
	"math/rand"

	"github.com/lanedefense/sim/internal/component"
	"github.com/lanedefense/sim/internal/core/ecs"
	"github.com/lanedefense/sim/internal/core/event"
	coresys "github.com/lanedefense/sim/internal/core/system"
	"github.com/lanedefense/sim/internal/data"
	"github.com/lanedefense/sim/internal/factory"
	"github.com/lanedefense/sim/internal/hud"
	"github.com/lanedefense/sim/internal/scene"
	"go.uber.org/zap"
)

// HUD is the host's heads-up display and pointer.
type HUD interface {
	PublishPower(power float64)
	PublishPlacement(p hud.Placement)
	PointerGroundIntersection() (scene.Vec3, bool)
	SelectedBuildOption() hud.BuildOption
}

// WaveSchedule reports the wave active at an elapsed time in seconds.
type WaveSchedule interface {
	WaveAt(elapsed float64) (data.Wave, bool)
}

// ScheduleEnd is implemented by wave schedules that know when their last
// wave is over. Schedules without it are considered done as soon as a
// started wave ends.
type ScheduleEnd interface {
	Exhausted(elapsed float64) bool
}

// GameState receives the end-of-game signal.
type GameState interface {
	SignalOutcome(o hud.Outcome)
}

// Deps bundles everything the gameplay systems need.
type Deps struct {
	World     *ecs.World
	Tables    *component.Tables
	Scene     scene.Renderer
	Spatial   scene.Spatial
	Factory   *factory.Factory
	HUD       HUD
	Waves     WaveSchedule
	GameState GameState
	Requests  <-chan hud.BuildRequest
	Bus       *event.Bus
	Rand      *rand.Rand
	Log       *zap.Logger

	StartingPower float64
	PerfMode      bool
}

// Set exposes the stateful systems the host reads from.
type Set struct {
	Removal   *RemovalSystem
	Resource  *ResourceSystem
	Placement *PlacementSystem
	Wave      *WaveSystem
	GameOver  *GameOverSystem // nil in perf mode
}

// RegisterAll registers the full pipeline. Within a phase, registration
// order below is execution order.
func RegisterAll(r *coresys.Runner, d *Deps) *Set {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if d.Spatial == nil {
		d.Spatial = scene.AABB{}
	}
	if d.Rand == nil {
		d.Rand = rand.New(rand.NewSource(1))
	}

	set := &Set{}
	r.Register(NewEventDispatchSystem(d.Bus))
	r.Register(NewGravitySystem(d.Tables))
	r.Register(NewVelocitySystem(d.Tables))
	r.Register(NewCollisionSystem(d.Tables, d.Spatial))
	r.Register(NewExplosiveSystem(d.World, d.Tables))
	r.Register(NewOnboardSystem(d.World, d.Tables))
	set.Removal = NewRemovalSystem(d.World, d.Tables, d.Scene, d.Bus, d.Log)
	r.Register(set.Removal)

	set.Resource = NewResourceSystem(d.Tables, d.HUD, d.StartingPower)
	r.Register(set.Resource)
	set.Placement = NewPlacementSystem(d.Tables, d.HUD, d.Factory, set.Resource, d.Requests, d.Bus, d.Log)
	r.Register(set.Placement)

	r.Register(NewTurretSystem(d.Tables, d.Factory, d.Bus))
	r.Register(NewVehicleSystem(d.Tables))
	set.Wave = NewWaveSystem(d.Tables, d.Factory, d.Waves, d.Rand, d.Bus, d.Log)
	r.Register(set.Wave)

	if !d.PerfMode {
		set.GameOver = NewGameOverSystem(d.Tables, d.Spatial, set.Wave, d.GameState, d.Bus, d.Log)
		r.Register(set.GameOver)
	}
	return set
}

// markForRemoval tags id with ToRemove. Dead ids and None are ignored;
// re-tagging is a no-op.
func markForRemoval(w *ecs.World, id ecs.EntityID) {
	if !w.Alive(id) {
		return
	}
	if err := w.AddComponents(id, component.KindToRemove); err != nil {
		panic(err)
	}
}
