package system

import (
	"time"

	"github.com/lanedefense/sim/internal/component"
	"github.com/lanedefense/sim/internal/core/event"
	coresys "github.com/lanedefense/sim/internal/core/system"
	"github.com/lanedefense/sim/internal/hud"
	"github.com/lanedefense/sim/internal/scene"
	"go.uber.org/zap"
)

// BaseVolume is the region enemies must not reach.
var BaseVolume = scene.BoxFromCenterAndSize(scene.Vec3{Z: 6}, scene.Vec3{X: 5, Y: 1, Z: 1})

// GameOverSystem signals a win once no enemies remain and the wave schedule
// is finished, and a loss as soon as an enemy touches the base. Clearing the
// field before the first wave or during a gap between waves is not a win.
// It signals at most once.
type GameOverSystem struct {
	t       *component.Tables
	spatial scene.Spatial
	waves   *WaveSystem
	state   GameState
	bus     *event.Bus
	log     *zap.Logger

	outcome hud.Outcome
}

func NewGameOverSystem(t *component.Tables, spatial scene.Spatial, waves *WaveSystem, state GameState, bus *event.Bus, log *zap.Logger) *GameOverSystem {
	return &GameOverSystem{t: t, spatial: spatial, waves: waves, state: state, bus: bus, log: log}
}

func (s *GameOverSystem) Phase() coresys.Phase { return coresys.PhaseOutcome }

func (s *GameOverSystem) Update(_ time.Duration) {
	if s.outcome != "" {
		return
	}
	if s.t.Enemy.Len() == 0 && s.waves.Finished() {
		s.signal(hud.OutcomeWin)
		return
	}
	for _, id := range s.t.Enemy.IDs() {
		c := s.t.Collider.Must(id)
		box := s.spatial.Bounds(c.Shape, s.t.Mesh.Must(id).Node.WorldPosition())
		if s.spatial.Intersects(box, BaseVolume) {
			s.signal(hud.OutcomeLoss)
			return
		}
	}
}

func (s *GameOverSystem) signal(o hud.Outcome) {
	s.outcome = o
	s.log.Info("game over", zap.String("outcome", string(o)), zap.Float64("elapsed", s.waves.Elapsed()))
	if s.state != nil {
		s.state.SignalOutcome(o)
	}
	event.Emit(s.bus, event.OutcomeSignaled{Outcome: string(o), Elapsed: s.waves.Elapsed()})
}

// Outcome returns the signaled outcome, or "" while the game is running.
func (s *GameOverSystem) Outcome() hud.Outcome { return s.outcome }
