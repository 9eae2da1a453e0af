package system

import (
	"math/rand"
	"time"

	"github.com/lanedefense/sim/internal/component"
	"github.com/lanedefense/sim/internal/core/event"
	coresys "github.com/lanedefense/sim/internal/core/system"
	"github.com/lanedefense/sim/internal/data"
	"github.com/lanedefense/sim/internal/factory"
	"github.com/lanedefense/sim/internal/scene"
	"go.uber.org/zap"
)

const (
	// Enemies spawn in integer lanes -laneSpread..laneSpread.
	laneSpread = 2
	// The first enemy of a lane starts at spawnZ; later ones queue behind it.
	spawnZ   = -5.0
	laneStep = 2.0
)

// WaveSystem tracks elapsed time and spawns a wave's enemies when the
// schedule switches to it.
type WaveSystem struct {
	t        *component.Tables
	factory  *factory.Factory
	schedule WaveSchedule
	rng      *rand.Rand
	bus      *event.Bus
	log      *zap.Logger

	elapsed float64
	current data.Wave
	active  bool
	started int
}

func NewWaveSystem(t *component.Tables, f *factory.Factory, schedule WaveSchedule, rng *rand.Rand, bus *event.Bus, log *zap.Logger) *WaveSystem {
	return &WaveSystem{t: t, factory: f, schedule: schedule, rng: rng, bus: bus, log: log}
}

func (s *WaveSystem) Phase() coresys.Phase { return coresys.PhaseGameplay }

func (s *WaveSystem) Update(dt time.Duration) {
	s.elapsed += dt.Seconds()
	w, ok := s.schedule.WaveAt(s.elapsed)
	if ok == s.active && (!ok || w.Index == s.current.Index) {
		return
	}
	s.current, s.active = w, ok
	if !ok {
		return
	}
	s.spawn(w)
}

func (s *WaveSystem) spawn(w data.Wave) {
	occupied := make(map[int]float64, 2*laneSpread+1)
	for i := 0; i < w.Enemies; i++ {
		id := s.factory.Enemy()
		lane := s.rng.Intn(2*laneSpread+1) - laneSpread
		offset, taken := occupied[lane]
		if taken {
			offset -= laneStep
		}
		occupied[lane] = offset
		s.t.Mesh.Must(id).Node.SetPosition(scene.Vec3{X: float64(lane), Z: offset + spawnZ})
	}
	s.started++
	s.log.Debug("wave started", zap.Int("wave", w.Index), zap.Int("enemies", w.Enemies), zap.Float64("elapsed", s.elapsed))
	event.Emit(s.bus, event.WaveStarted{Index: w.Index, Enemies: w.Enemies, Elapsed: s.elapsed})
}

// Active reports whether a wave is currently running.
func (s *WaveSystem) Active() bool { return s.active }

// Current returns the running wave; ok is false between waves.
func (s *WaveSystem) Current() (data.Wave, bool) { return s.current, s.active }

// Elapsed returns simulated seconds since the first tick.
func (s *WaveSystem) Elapsed() float64 { return s.elapsed }

// Started returns the number of waves spawned so far.
func (s *WaveSystem) Started() int { return s.started }

// Finished reports whether the schedule has run its course: at least one
// wave has started, none is running now, and the schedule (when it can
// tell) has no wave left.
func (s *WaveSystem) Finished() bool {
	if s.started == 0 || s.active {
		return false
	}
	if end, ok := s.schedule.(ScheduleEnd); ok {
		return end.Exhausted(s.elapsed)
	}
	return true
}
