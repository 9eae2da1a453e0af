package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lanedefense/sim/internal/data"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM. Single-goroutine access only (the
// tick loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads every script in scriptsDir.
// A missing directory yields an empty engine.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	e := newEngine(log)
	if scriptsDir == "" {
		return e, nil
	}
	if err := e.loadDir(scriptsDir); err != nil {
		e.Close()
		return nil, fmt.Errorf("load scripts: %w", err)
	}
	return e, nil
}

func newEngine(log *zap.Logger) *Engine {
	vm := lua.NewState(lua.Options{SkipOpenLibs: false})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	return &Engine{vm: vm, log: log}
}

// loadDir loads all .lua files in a directory, in name order.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// LoadString runs a chunk of Lua source in the engine's VM.
func (e *Engine) LoadString(src string) error {
	return e.vm.DoString(src)
}

// Has reports whether a global Lua function is defined.
func (e *Engine) Has(name string) bool {
	_, ok := e.vm.GetGlobal(name).(*lua.LFunction)
	return ok
}

// WaveAt calls the Lua wave_at(elapsed) function. The function returns nil
// when no wave is active, or a table {index = n, enemies = n}. Script errors
// are logged and treated as "no wave".
func (e *Engine) WaveAt(elapsed float64) (data.Wave, bool) {
	fn := e.vm.GetGlobal("wave_at")
	if fn == lua.LNil {
		e.log.Error("lua function wave_at not found")
		return data.Wave{}, false
	}

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lua.LNumber(elapsed)); err != nil {
		e.log.Error("lua wave_at error", zap.Error(err))
		return data.Wave{}, false
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	if result == lua.LNil {
		return data.Wave{}, false
	}
	rt, ok := result.(*lua.LTable)
	if !ok {
		e.log.Error("lua wave_at returned non-table", zap.String("type", result.Type().String()))
		return data.Wave{}, false
	}

	w := data.Wave{
		Index:   int(lua.LVAsNumber(rt.RawGetString("index"))),
		Enemies: int(lua.LVAsNumber(rt.RawGetString("enemies"))),
	}
	if w.Index <= 0 {
		e.log.Error("lua wave_at returned wave without positive index", zap.Int("index", w.Index))
		return data.Wave{}, false
	}
	if w.Enemies < 0 {
		w.Enemies = 0
	}
	return w, true
}

// Exhausted reports whether the scripted schedule is over. Scripts declare
// the end with a global schedule_end (seconds); without it the schedule is
// treated as over whenever no wave is running.
func (e *Engine) Exhausted(elapsed float64) bool {
	end, ok := e.vm.GetGlobal("schedule_end").(lua.LNumber)
	if !ok {
		return true
	}
	return elapsed >= float64(end)
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
