package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lanedefense/sim/internal/component"
	"github.com/lanedefense/sim/internal/config"
	"github.com/lanedefense/sim/internal/core/ecs"
	"github.com/lanedefense/sim/internal/core/event"
	coresys "github.com/lanedefense/sim/internal/core/system"
	"github.com/lanedefense/sim/internal/factory"
	"github.com/lanedefense/sim/internal/host/term"
	"github.com/lanedefense/sim/internal/hud"
	"github.com/lanedefense/sim/internal/persist"
	"github.com/lanedefense/sim/internal/scene"
	"github.com/lanedefense/sim/internal/system"
	"github.com/pkg/profile"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Main loop ──────────────────────────────────────────────────────

func run() error {
	// 1. Config and logger
	cfg, err := config.Load(config.Path())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	terminal := cfg.Host.Mode == "terminal"

	log, err := newLogger(cfg.Logging, terminal)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	out := startupBanner(terminal, os.Stdout)

	switch cfg.Profile.Mode {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(cfg.Profile.Path), profile.NoShutdownHook, profile.Quiet).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath(cfg.Profile.Path), profile.NoShutdownHook, profile.Quiet).Stop()
	}

	seed := cfg.Game.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	// 2. Match history (optional)
	var recorder matchRecorder
	if cfg.Database.Enabled {
		out.section("Database")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		db, err := persist.Open(ctx, cfg.Database, log)
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer db.Close()
		if err := db.Migrate(ctx); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
		out.ok("match history ready")
		recorder = persist.NewMatchRepo(db)
	}

	// 3. Data
	out.section("Data")
	waves, closeWaves, err := loadWaveSchedule(cfg.Data, log)
	if err != nil {
		return fmt.Errorf("wave schedule: %w", err)
	}
	defer closeWaves()
	out.ok("wave source: %s", cfg.Data.WaveSource)

	catalog, err := loadCatalog(cfg.Data.CatalogPath, factory.Buildable)
	if err != nil {
		return fmt.Errorf("build catalog: %w", err)
	}
	out.stat("Build options", catalog.Count())

	// 4. World, scene and host
	world := ecs.NewWorld()
	tables, err := component.Register(world)
	if err != nil {
		return fmt.Errorf("register components: %w", err)
	}
	graph := scene.NewGraph()
	fac := factory.New(world, tables, graph)
	bus := event.NewBus()
	stats := newMatchStats(bus, log)
	state := &gameState{}

	var (
		h        system.HUD
		requests <-chan hud.BuildRequest
		screen   *term.Host
	)
	if terminal {
		screen, err = term.Open(graph, catalog, log)
		if err != nil {
			return fmt.Errorf("terminal: %w", err)
		}
		defer screen.Close()
		h, requests, state.display = screen, screen.Requests(), screen
	} else {
		h = hud.NewHeadless()
	}

	if cfg.Game.PerfMode {
		grid := fac.PerfGrid()
		log.Info("perf mode", zap.Int("vehicles", len(grid)))
	}

	// 5. Systems
	runner := coresys.NewRunner()
	set := system.RegisterAll(runner, &system.Deps{
		World:         world,
		Tables:        tables,
		Scene:         graph,
		Spatial:       scene.AABB{},
		Factory:       fac,
		HUD:           h,
		Waves:         waves,
		GameState:     state,
		Requests:      requests,
		Bus:           bus,
		Rand:          rand.New(rand.NewSource(seed)),
		Log:           log,
		StartingPower: cfg.Game.StartingPower,
		PerfMode:      cfg.Game.PerfMode,
	})
	log.Info("simulation ready",
		zap.Int("systems", runner.Len()),
		zap.Duration("tick", cfg.Game.TickRate),
		zap.Int64("seed", seed),
		zap.String("host", cfg.Host.Mode),
		zap.String("wave_source", cfg.Data.WaveSource),
		zap.Int("build_options", catalog.Count()))

	finish := func() {
		// Deliver the last tick's events before summarising.
		bus.SwapBuffers()
		bus.DispatchAll()
		recordMatch(recorder, stats.result(state.outcome, set.Wave.Elapsed(), runner.Ticks(), set.Resource.Power(), seed), log)
	}

	// 6. Loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Game.TickRate)
	defer ticker.Stop()

	var deadline <-chan time.Time
	if cfg.Game.MaxDuration > 0 {
		deadline = time.After(cfg.Game.MaxDuration)
	}
	var input <-chan tcell.Event
	if screen != nil {
		input = screen.Events()
	}

	recorded := false
	for {
		select {
		case <-ticker.C:
			if state.Done() {
				// Terminal hosts keep the final frame up until the user quits.
				if screen != nil {
					screen.Draw()
				}
				continue
			}
			runner.Tick(cfg.Game.TickRate)
			if screen != nil {
				screen.Draw()
			}
			if state.Done() && !recorded {
				recorded = true
				finish()
				if screen == nil {
					return nil
				}
			}

		case ev := <-input:
			if !screen.HandleEvent(ev) {
				if !recorded {
					finish()
				}
				log.Info("quit requested")
				return nil
			}

		case <-deadline:
			if !recorded {
				finish()
			}
			log.Info("max duration reached", zap.Duration("max_duration", cfg.Game.MaxDuration))
			return nil

		case sig := <-shutdownCh:
			log.Info("shutdown signal received", zap.String("signal", sig.String()))
			if !recorded {
				finish()
			}
			return nil
		}
	}
}
