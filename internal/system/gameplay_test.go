package system

import (
	"math"
	"testing"
	"time"

	"github.com/lanedefense/sim/internal/core/event"
	"github.com/lanedefense/sim/internal/data"
	"github.com/lanedefense/sim/internal/hud"
	"github.com/lanedefense/sim/internal/scene"
)

func TestTurretFiresAndResets(t *testing.T) {
	h := newHarness(t)
	turret := h.f.Turret(true, 0.5)
	tur := h.t.Turret.Must(turret)
	if tur.TimeUntilFire != 2 {
		t.Fatalf("fixture timeUntilFire = %v", tur.TimeUntilFire)
	}

	NewTurretSystem(h.t, h.f, h.bus).Update(2 * time.Second)

	if h.t.Projectile.Len() != 1 {
		t.Fatalf("projectiles = %d, want 1", h.t.Projectile.Len())
	}
	if math.Abs(tur.TimeUntilFire-2) > 1e-9 {
		t.Errorf("timeUntilFire = %v, want 2", tur.TimeUntilFire)
	}
}

func TestTurretWaitsForCountdown(t *testing.T) {
	h := newHarness(t)
	h.f.Turret(true, 0.5)

	NewTurretSystem(h.t, h.f, h.bus).Update(time.Second)

	if h.t.Projectile.Len() != 0 {
		t.Errorf("fired early: %d projectiles", h.t.Projectile.Len())
	}
}

func TestOnboardTurretFiresFromWorldPosition(t *testing.T) {
	h := newHarness(t)
	vehicle := h.f.TurretVehicle()
	h.place(vehicle, 1, 0, 3)

	NewTurretSystem(h.t, h.f, h.bus).Update(time.Second)

	ids := h.t.Projectile.IDs()
	if len(ids) != 1 {
		t.Fatalf("projectiles = %d, want 1", len(ids))
	}
	if got := h.t.Mesh.Must(ids[0]).Node.Position(); got != (scene.Vec3{X: 1, Y: 0.5, Z: 3}) {
		t.Errorf("projectile spawned at %+v", got)
	}
}

func TestResourceAccrual(t *testing.T) {
	h := newHarness(t)
	h.f.Collector()
	h.f.Collector()

	sys := NewResourceSystem(h.t, h.hud, 150)
	sys.Update(500 * time.Millisecond)

	if sys.Power() != 170 {
		t.Errorf("power = %v, want 170", sys.Power())
	}
	if h.hud.Power() != 170 {
		t.Errorf("published power = %v", h.hud.Power())
	}
}

func fixedWave(enemies int) WaveSchedule {
	return waveFunc(func(elapsed float64) (data.Wave, bool) {
		if elapsed < 30 {
			return data.Wave{Index: 1, Enemies: enemies}, true
		}
		return data.Wave{}, false
	})
}

func TestWaveSpawnsEnemiesOnce(t *testing.T) {
	h := newHarness(t, withWaves(fixedWave(3)))

	h.tick(10 * time.Millisecond)

	ids := h.t.Enemy.IDs()
	if len(ids) != 3 {
		t.Fatalf("enemies = %d, want 3", len(ids))
	}
	for _, id := range ids {
		if !h.t.Collider.Has(id) || !h.t.Velocity.Has(id) {
			t.Errorf("enemy %s lacks collider or velocity", id)
		}
	}

	h.tick(10 * time.Millisecond)
	if h.t.Enemy.Len() != 3 {
		t.Errorf("wave respawned: %d enemies", h.t.Enemy.Len())
	}
	if !h.set.Wave.Active() || h.set.Wave.Started() != 1 {
		t.Errorf("wave state active=%v started=%d", h.set.Wave.Active(), h.set.Wave.Started())
	}
}

func TestWaveLanesDoNotOverlap(t *testing.T) {
	h := newHarness(t)
	sys := NewWaveSystem(h.t, h.f, fixedWave(12), h.set.Wave.rng, h.bus, h.set.Wave.log)
	sys.Update(time.Millisecond)

	type cell struct{ x, z int }
	seen := map[cell]bool{}
	for _, id := range h.t.Enemy.IDs() {
		pos := h.t.Mesh.Must(id).Node.Position()
		if pos.X < -2 || pos.X > 2 || pos.X != math.Trunc(pos.X) {
			t.Errorf("enemy in invalid lane %v", pos.X)
		}
		if pos.Z > -5 {
			t.Errorf("enemy spawned in front of the line at z=%v", pos.Z)
		}
		c := cell{int(pos.X), int(pos.Z)}
		if seen[c] {
			t.Errorf("two enemies share lane %d at z=%d", c.x, c.z)
		}
		seen[c] = true
	}
}

func TestWaveSwitchSpawnsNextWave(t *testing.T) {
	schedule := waveFunc(func(elapsed float64) (data.Wave, bool) {
		switch {
		case elapsed < 1:
			return data.Wave{Index: 1, Enemies: 1}, true
		case elapsed < 2:
			return data.Wave{}, false
		default:
			return data.Wave{Index: 2, Enemies: 2}, true
		}
	})
	h := newHarness(t, withWaves(schedule), perfMode())
	var started []int
	event.Subscribe(h.bus, func(ev event.WaveStarted) { started = append(started, ev.Index) })

	for i := 0; i < 5; i++ {
		h.tick(500 * time.Millisecond)
	}

	if h.t.Enemy.Len() != 3 {
		t.Errorf("enemies = %d, want 3", h.t.Enemy.Len())
	}
	if len(started) != 2 || started[0] != 1 || started[1] != 2 {
		t.Errorf("wave events %v", started)
	}
}

func TestPlacementWithoutPointer(t *testing.T) {
	h := newHarness(t)
	h.tick(time.Millisecond)
	if p := h.hud.LastPlacement(); p.Valid || p.HasCell {
		t.Errorf("placement = %+v, want invalid without cell", p)
	}
}

func TestPlacementValidation(t *testing.T) {
	cases := []struct {
		name     string
		setup    func(h *harness)
		selected hud.BuildOption
		want     bool
	}{
		{"free cell", func(*harness) {}, hud.BuildOption{Kind: "mine"}, true},
		{"disabled option", func(*harness) {}, hud.BuildOption{Kind: "mine", Disabled: true}, false},
		{"occupied cell", func(h *harness) { h.place(h.f.Collector(), 1.3, 0, 2.8) }, hud.BuildOption{Kind: "mine"}, false},
		{"projectile ignored", func(h *harness) { h.place(h.f.Projectile(), 1, 0, 3) }, hud.BuildOption{Kind: "mine"}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t, perfMode())
			tc.setup(h)
			h.hud.SetPointer(scene.Vec3{X: 0.8, Z: 3.2})
			h.hud.Select(tc.selected)

			h.set.Placement.Update(time.Millisecond)

			p := h.hud.LastPlacement()
			if !p.HasCell || p.X != 1 || p.Z != 3 {
				t.Fatalf("preview cell = %+v", p)
			}
			if p.Valid != tc.want {
				t.Errorf("valid = %v, want %v", p.Valid, tc.want)
			}
		})
	}
}

func TestBuildRequest(t *testing.T) {
	h := newHarness(t, perfMode())
	var placed []event.StructurePlaced
	event.Subscribe(h.bus, func(ev event.StructurePlaced) { placed = append(placed, ev) })

	h.hud.SetPointer(scene.Vec3{X: -1.2, Z: 2.6})
	h.hud.Select(hud.BuildOption{Kind: "collector", Cost: 50})
	h.requests <- hud.BuildRequest{Kind: "collector", Cost: 50}
	h.requests <- hud.BuildRequest{Kind: "collector", Cost: 50}

	h.tick(time.Millisecond)

	if h.t.Collector.Len() != 1 {
		t.Fatalf("collectors = %d, want 1 (second request hits an occupied cell)", h.t.Collector.Len())
	}
	id := h.t.Collector.IDs()[0]
	if got := h.t.Mesh.Must(id).Node.Position(); got != (scene.Vec3{X: -1, Z: 3}) {
		t.Errorf("collector at %+v", got)
	}
	if got := h.set.Resource.Power(); math.Abs(got-100) > 1e-9 {
		t.Errorf("power = %v, want 100", got)
	}
	if h.set.Placement.Placed() != 1 {
		t.Errorf("Placed = %d", h.set.Placement.Placed())
	}

	h.tick(time.Millisecond)
	if len(placed) != 1 || placed[0].EntityID != id || placed[0].X != -1 || placed[0].Z != 3 {
		t.Errorf("placed events %+v", placed)
	}
}

func TestBuildRequestUnknownKind(t *testing.T) {
	h := newHarness(t, perfMode())
	h.hud.SetPointer(scene.Vec3{})
	h.requests <- hud.BuildRequest{Kind: "castle", Cost: 10}

	h.tick(time.Millisecond)

	if h.set.Resource.Power() != DefaultStartingPower {
		t.Errorf("power charged for a failed build: %v", h.set.Resource.Power())
	}
	if h.w.Len() != 0 {
		t.Errorf("entities created: %d", h.w.Len())
	}
}

func TestBuildRequestWithoutPointer(t *testing.T) {
	h := newHarness(t, perfMode())
	h.requests <- hud.BuildRequest{Kind: "mine", Cost: 10}

	h.tick(time.Millisecond)

	if h.w.Len() != 0 {
		t.Errorf("built without a preview: %d entities", h.w.Len())
	}
}

// shortWave runs one empty wave until elapsed reaches end.
func shortWave(end float64) WaveSchedule {
	return waveFunc(func(elapsed float64) (data.Wave, bool) {
		if elapsed < end {
			return data.Wave{Index: 1}, true
		}
		return data.Wave{}, false
	})
}

func TestGameOverWin(t *testing.T) {
	h := newHarness(t, withWaves(shortWave(1)))
	h.tick(500 * time.Millisecond)
	if len(h.state.outcomes) != 0 {
		t.Fatalf("outcome during the wave: %v", h.state.outcomes)
	}

	h.tick(time.Second)
	h.tick(time.Second)
	if len(h.state.outcomes) != 1 || h.state.outcomes[0] != hud.OutcomeWin {
		t.Errorf("outcomes = %v, want one win", h.state.outcomes)
	}
}

func TestGameOverNoWinBeforeFirstWave(t *testing.T) {
	table, err := data.LoadWaveTable("../../data/yaml/waves.yaml")
	if err != nil {
		t.Fatal(err)
	}
	h := newHarness(t, withWaves(table))
	for i := 0; i < 10; i++ {
		h.tick(16 * time.Millisecond)
	}
	if len(h.state.outcomes) != 0 {
		t.Errorf("outcomes before the first wave: %v", h.state.outcomes)
	}

	empty := newHarness(t)
	empty.tick(time.Second)
	if len(empty.state.outcomes) != 0 {
		t.Errorf("outcomes with no schedule: %v", empty.state.outcomes)
	}
}

func TestGameOverNoWinDuringGap(t *testing.T) {
	table, err := data.ParseWaveTable([]byte(`
waves:
  - {start: 0, duration: 1, enemies: 0}
  - {start: 2, duration: 1, enemies: 0}
`))
	if err != nil {
		t.Fatal(err)
	}
	h := newHarness(t, withWaves(table))

	h.tick(500 * time.Millisecond) // 0.5: wave 1
	h.tick(time.Second)            // 1.5: gap, field empty
	if len(h.state.outcomes) != 0 {
		t.Fatalf("win during the gap: %v", h.state.outcomes)
	}
	h.tick(time.Second) // 2.5: wave 2
	h.tick(time.Second) // 3.5: schedule over
	if len(h.state.outcomes) != 1 || h.state.outcomes[0] != hud.OutcomeWin {
		t.Errorf("outcomes = %v, want one win after the last wave", h.state.outcomes)
	}
	if h.set.Wave.Started() != 2 {
		t.Errorf("waves started = %d", h.set.Wave.Started())
	}
}

func TestGameOverWaitsForActiveWave(t *testing.T) {
	h := newHarness(t, withWaves(fixedWave(0)))
	h.tick(time.Millisecond)

	if len(h.state.outcomes) != 0 {
		t.Errorf("outcome signaled during a wave: %v", h.state.outcomes)
	}
}

func TestGameOverLoss(t *testing.T) {
	h := newHarness(t, withWaves(fixedWave(0)))
	first := h.f.Enemy()
	second := h.f.Enemy()
	h.place(first, 0, 0, 4)
	h.place(second, 1, 0, 4.2)

	h.tick(time.Second)

	if len(h.state.outcomes) != 1 || h.state.outcomes[0] != hud.OutcomeLoss {
		t.Fatalf("outcomes = %v, want one loss", h.state.outcomes)
	}
	if h.set.GameOver.Outcome() != hud.OutcomeLoss {
		t.Errorf("Outcome = %q", h.set.GameOver.Outcome())
	}
}

func TestPerfModeDisablesGameOver(t *testing.T) {
	h := newHarness(t, perfMode())
	h.f.PerfGrid()

	for i := 0; i < 12; i++ {
		h.tick(100 * time.Millisecond)
	}

	if h.set.GameOver != nil {
		t.Error("game over system registered in perf mode")
	}
	if len(h.state.outcomes) != 0 {
		t.Errorf("outcomes in perf mode: %v", h.state.outcomes)
	}
	if h.t.Projectile.Len() == 0 {
		t.Error("perf grid turrets never fired")
	}
}

func TestMineStopsEnemyEndToEnd(t *testing.T) {
	h := newHarness(t, withWaves(shortWave(1.5)))
	mine := h.f.Mine()
	enemy := h.f.Enemy()
	h.place(enemy, 0, 0, -3)

	h.tick(time.Second)
	if !h.w.Alive(enemy) || !h.w.Alive(mine) {
		t.Fatal("collision one tick too early")
	}
	h.tick(time.Second)
	if h.w.Alive(enemy) || h.w.Alive(mine) {
		t.Fatal("mine and enemy survived contact")
	}
	if h.w.Len() != 0 {
		t.Errorf("%d entities left", h.w.Len())
	}
	if len(h.state.outcomes) != 1 || h.state.outcomes[0] != hud.OutcomeWin {
		t.Errorf("outcomes = %v", h.state.outcomes)
	}
	if h.t.Collider.Len() != 0 || h.g.Len() != 0 {
		t.Errorf("leftovers: colliders=%d scene=%d", h.t.Collider.Len(), h.g.Len())
	}
}
