package scripting

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

var fallback = RunEnergyRates{Increment: 1, Decrement: 1}

func writeScript(t *testing.T, dir, name, src string) {
	t.Helper()
	sub := filepath.Join(dir, "movement")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sub, name), []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestRunEnergyRatesFromScript(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "rates.lua", `
function calc_run_energy_rates(ctx)
    return { increment = ctx.agility, decrement = ctx.weight }
end`)
	e, err := NewEngine(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	defer e.Close()

	got := e.CalcRunEnergyRates(RunEnergyContext{Weight: 3, Agility: 7}, fallback)
	if got != (RunEnergyRates{Increment: 7, Decrement: 3}) {
		t.Fatalf("rates = %+v", got)
	}
}

func TestRunEnergyRatesFallback(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want RunEnergyRates
	}{
		{"missing function", `x = 1`, fallback},
		{"runtime error", `function calc_run_energy_rates(ctx) error("boom") end`, fallback},
		{"non-table", `function calc_run_energy_rates(ctx) return 5 end`, fallback},
		{"partial", `function calc_run_energy_rates(ctx) return { decrement = 4 } end`, RunEnergyRates{Increment: 1, Decrement: 4}},
		{"negative", `function calc_run_energy_rates(ctx) return { increment = -2, decrement = 3 } end`, RunEnergyRates{Increment: 1, Decrement: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeScript(t, dir, "rates.lua", tt.src)
			e, err := NewEngine(dir, zap.NewNop())
			if err != nil {
				t.Fatalf("NewEngine: %v", err)
			}
			defer e.Close()
			if got := e.CalcRunEnergyRates(RunEnergyContext{}, fallback); got != tt.want {
				t.Fatalf("rates = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNewEngineReportsSyntaxErrors(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "bad.lua", `function (`)
	if _, err := NewEngine(dir, zap.NewNop()); err == nil {
		t.Fatal("expected load error")
	}
}

func TestShippedRunEnergyScript(t *testing.T) {
	e, err := NewEngine(filepath.Join("..", "..", "scripts"), zap.NewNop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	defer e.Close()

	got := e.CalcRunEnergyRates(RunEnergyContext{Weight: 70, Agility: 25}, fallback)
	if got != (RunEnergyRates{Increment: 3, Decrement: 2}) {
		t.Fatalf("rates = %+v", got)
	}
}

func TestEmptyDirUsesFallback(t *testing.T) {
	e, err := NewEngine(t.TempDir(), zap.NewNop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	defer e.Close()
	if got := e.CalcRunEnergyRates(RunEnergyContext{}, fallback); got != fallback {
		t.Fatalf("rates = %+v", got)
	}
}
