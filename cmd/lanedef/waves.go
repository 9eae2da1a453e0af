package main

import (
	"fmt"

	"github.com/lanedefense/sim/internal/config"
	"github.com/lanedefense/sim/internal/data"
	"github.com/lanedefense/sim/internal/scripting"
	"github.com/lanedefense/sim/internal/system"
	"go.uber.org/zap"
)

// loadWaveSchedule opens the configured wave source. The returned close
// func is never nil.
func loadWaveSchedule(cfg config.DataConfig, log *zap.Logger) (system.WaveSchedule, func(), error) {
	switch cfg.WaveSource {
	case "lua":
		engine, err := scripting.NewEngine(cfg.ScriptsDir, log)
		if err != nil {
			return nil, nil, fmt.Errorf("lua wave schedule: %w", err)
		}
		if !engine.Has("wave_at") {
			engine.Close()
			return nil, nil, fmt.Errorf("lua wave schedule: no wave_at function in %s", cfg.ScriptsDir)
		}
		return engine, engine.Close, nil
	case "yaml":
		table, err := data.LoadWaveTable(cfg.WavesPath)
		if err != nil {
			return nil, nil, err
		}
		return table, func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown wave source %q", cfg.WaveSource)
}

// loadCatalog loads the build menu and checks every entry can be built.
func loadCatalog(path string, buildable func(string) bool) (*data.BuildCatalog, error) {
	catalog, err := data.LoadBuildCatalog(path)
	if err != nil {
		return nil, err
	}
	for _, e := range catalog.Entries() {
		if !buildable(e.Kind) {
			return nil, fmt.Errorf("build catalog: %q is not a buildable structure", e.Kind)
		}
	}
	return catalog, nil
}
