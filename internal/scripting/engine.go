package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM for game formulas.
// Single-goroutine access only (game loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads every script under dir/core and
// dir/movement. Missing directories are skipped.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState()
	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	vm.SetGlobal("MAX_RUN_ENERGY", lua.LNumber(100))

	e := &Engine{vm: vm, log: log}
	for _, sub := range []string{"core", "movement"} {
		if err := e.loadDir(filepath.Join(scriptsDir, sub)); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}
	return e, nil
}

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

// RunEnergyContext is the player data the run energy formula sees.
type RunEnergyContext struct {
	Weight  int
	Agility int
}

// RunEnergyRates is the per-step regeneration and drain of run energy.
type RunEnergyRates struct {
	Increment int
	Decrement int
}

// CalcRunEnergyRates calls calc_run_energy_rates(ctx). fallback is returned
// when the function is missing, fails, or returns something other than a
// table. Missing or negative fields keep their fallback value.
func (e *Engine) CalcRunEnergyRates(ctx RunEnergyContext, fallback RunEnergyRates) RunEnergyRates {
	fn := e.vm.GetGlobal("calc_run_energy_rates")
	if fn == lua.LNil {
		return fallback
	}

	t := e.vm.NewTable()
	t.RawSetString("weight", lua.LNumber(ctx.Weight))
	t.RawSetString("agility", lua.LNumber(ctx.Agility))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua calc_run_energy_rates error", zap.Error(err))
		return fallback
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		e.log.Error("lua calc_run_energy_rates returned non-table")
		return fallback
	}

	rates := fallback
	if v, ok := lIntOK(rt, "increment"); ok && v >= 0 {
		rates.Increment = v
	}
	if v, ok := lIntOK(rt, "decrement"); ok && v >= 0 {
		rates.Decrement = v
	}
	return rates
}

// lIntOK reads an integer field from a Lua table, reporting whether it was
// a number.
func lIntOK(t *lua.LTable, key string) (int, bool) {
	n, ok := t.RawGetString(key).(lua.LNumber)
	return int(n), ok
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
