package main

import (
	"context"
	"time"

	"github.com/lanedefense/sim/internal/core/event"
	"github.com/lanedefense/sim/internal/hud"
	"github.com/lanedefense/sim/internal/persist"
	"go.uber.org/zap"
)

// outcomeDisplay is implemented by hosts that show the result on screen.
type outcomeDisplay interface {
	ShowOutcome(o hud.Outcome)
}

// gameState receives the game-over signal from the pipeline.
type gameState struct {
	outcome hud.Outcome
	display outcomeDisplay
}

func (s *gameState) SignalOutcome(o hud.Outcome) {
	s.outcome = o
	if s.display != nil {
		s.display.ShowOutcome(o)
	}
}

func (s *gameState) Done() bool { return s.outcome != "" }

// matchStats accumulates per-match statistics from bus events.
type matchStats struct {
	log *zap.Logger

	waves      []persist.WaveRecord
	structures int
	spent      float64
	shots      int
	destroyed  int
	kills      int
}

func newMatchStats(bus *event.Bus, log *zap.Logger) *matchStats {
	m := &matchStats{log: log}
	event.Subscribe(bus, m.onWaveStarted)
	event.Subscribe(bus, m.onStructurePlaced)
	event.Subscribe(bus, m.onProjectileFired)
	event.Subscribe(bus, m.onEntityDestroyed)
	event.Subscribe(bus, m.onOutcome)
	return m
}

func (m *matchStats) onWaveStarted(e event.WaveStarted) {
	m.waves = append(m.waves, persist.WaveRecord{
		Index:   e.Index,
		Enemies: e.Enemies,
		Started: time.Duration(e.Elapsed * float64(time.Second)),
	})
	m.log.Info("wave started",
		zap.Int("wave", e.Index),
		zap.Int("enemies", e.Enemies),
		zap.Float64("elapsed", e.Elapsed))
}

func (m *matchStats) onStructurePlaced(e event.StructurePlaced) {
	m.structures++
	m.spent += e.Cost
	m.log.Debug("structure placed",
		zap.String("kind", e.Kind),
		zap.Int("x", e.X),
		zap.Int("z", e.Z),
		zap.Stringer("entity", e.EntityID))
}

func (m *matchStats) onProjectileFired(event.ProjectileFired) {
	m.shots++
}

func (m *matchStats) onEntityDestroyed(e event.EntityDestroyed) {
	m.destroyed++
	if e.Enemy {
		m.kills++
	}
}

func (m *matchStats) onOutcome(e event.OutcomeSignaled) {
	m.log.Info("match finished",
		zap.String("outcome", e.Outcome),
		zap.Float64("elapsed", e.Elapsed),
		zap.Int("waves", len(m.waves)),
		zap.Int("structures", m.structures),
		zap.Int("enemies_destroyed", m.kills))
}

// result builds the persisted summary. An empty outcome means the run was
// stopped before the game decided.
func (m *matchStats) result(o hud.Outcome, elapsed float64, ticks uint64, power float64, seed int64) persist.MatchResult {
	outcome := string(o)
	if outcome == "" {
		outcome = persist.OutcomeAborted
	}
	return persist.MatchResult{
		Outcome:    outcome,
		Elapsed:    time.Duration(elapsed * float64(time.Second)),
		Ticks:      ticks,
		Power:      power,
		Structures: m.structures,
		Seed:       seed,
		Waves:      m.waves,
	}
}

// matchRecorder is the subset of persist.MatchRepo used at shutdown.
type matchRecorder interface {
	Record(ctx context.Context, m persist.MatchResult) (int64, error)
}

func recordMatch(repo matchRecorder, m persist.MatchResult, log *zap.Logger) {
	if repo == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	id, err := repo.Record(ctx, m)
	if err != nil {
		log.Warn("match history not saved", zap.Error(err))
		return
	}
	log.Info("match history saved", zap.Int64("id", id), zap.String("outcome", m.Outcome))
}
