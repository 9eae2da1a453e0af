package system

import (
	"math/rand"
	"testing"
	"time"

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

type waveFunc func(elapsed float64) (data.Wave, bool)

func (f waveFunc) WaveAt(elapsed float64) (data.Wave, bool) { return f(elapsed) }

var noWaves = waveFunc(func(float64) (data.Wave, bool) { return data.Wave{}, false })

type fakeState struct {
	outcomes []hud.Outcome
}

func (s *fakeState) SignalOutcome(o hud.Outcome) { s.outcomes = append(s.outcomes, o) }

type harness struct {
	w        *ecs.World
	t        *component.Tables
	g        *scene.Graph
	f        *factory.Factory
	hud      *hud.Headless
	state    *fakeState
	bus      *event.Bus
	requests chan hud.BuildRequest
	runner   *coresys.Runner
	set      *Set
}

type harnessOpt func(*Deps)

func withWaves(s WaveSchedule) harnessOpt { return func(d *Deps) { d.Waves = s } }
func perfMode() harnessOpt               { return func(d *Deps) { d.PerfMode = true } }

func newHarness(t *testing.T, opts ...harnessOpt) *harness {
	t.Helper()
	w := ecs.NewWorld()
	tables, err := component.Register(w)
	if err != nil {
		t.Fatalf("register components: %v", err)
	}
	g := scene.NewGraph()
	h := &harness{
		w:        w,
		t:        tables,
		g:        g,
		f:        factory.New(w, tables, g),
		hud:      hud.NewHeadless(),
		state:    &fakeState{},
		bus:      event.NewBus(),
		requests: make(chan hud.BuildRequest, 8),
		runner:   coresys.NewRunner(),
	}
	d := &Deps{
		World:         w,
		Tables:        tables,
		Scene:         g,
		Spatial:       scene.AABB{},
		Factory:       h.f,
		HUD:           h.hud,
		Waves:         noWaves,
		GameState:     h.state,
		Requests:      h.requests,
		Bus:           h.bus,
		Rand:          rand.New(rand.NewSource(7)),
		Log:           zap.NewNop(),
		StartingPower: DefaultStartingPower,
	}
	for _, opt := range opts {
		opt(d)
	}
	h.set = RegisterAll(h.runner, d)
	return h
}

func (h *harness) tick(dt time.Duration) { h.runner.Tick(dt) }

func (h *harness) place(id ecs.EntityID, x, y, z float64) {
	h.t.Mesh.Must(id).Node.SetPosition(scene.Vec3{X: x, Y: y, Z: z})
}
