package game

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/sparks/config"
	"github.com/pthm-cable/sparks/sim"
	"github.com/pthm-cable/sparks/ui"
)

func newHeadlessGame(t *testing.T, outputDir string) *Game {
	t.Helper()
	config.MustInit("")
	g, err := NewGameWithOptions(Options{Seed: 1, Headless: true, OutputDir: outputDir})
	if err != nil {
		t.Fatalf("NewGameWithOptions: %v", err)
	}
	t.Cleanup(g.Unload)
	return g
}

func TestHeadlessRunSpawnsAndWritesTelemetry(t *testing.T) {
	dir := t.TempDir()
	g := newHeadlessGame(t, dir)

	ticks := int32(2 * g.collector.WindowDurationTicks())
	for g.Tick() < ticks {
		g.UpdateHeadless()
	}

	if g.Tick() != ticks {
		t.Errorf("Tick() = %d, want %d", g.Tick(), ticks)
	}
	if !g.input.Continuous() {
		t.Error("continuous emitter should be on after the first headless step")
	}
	if g.Store().Count() == 0 {
		t.Error("expected live particles after a headless run")
	}

	for _, name := range []string{"config.yaml", "telemetry.csv", "perf.csv"} {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			t.Errorf("missing %s: %v", name, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", name)
		}
	}
}

func TestFrameDT(t *testing.T) {
	const fixed = float32(1.0 / 60)

	tests := []struct {
		name string
		dt   float32
		want float32
	}{
		{"normal", 0.02, 0.02},
		{"zero falls back", 0, fixed},
		{"negative falls back", -1, fixed},
		{"stall capped", 2, maxFrameDT},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := frameDT(tt.dt, fixed); got != tt.want {
				t.Errorf("frameDT(%v) = %v, want %v", tt.dt, got, tt.want)
			}
		})
	}
}

func TestHighestRateKey(t *testing.T) {
	var down [9]bool
	if got := highestRateKey(down); got != 0 {
		t.Errorf("no keys: got %d, want 0", got)
	}
	down[1], down[6] = true, true
	if got := highestRateKey(down); got != 7 {
		t.Errorf("keys 2 and 7: got %d, want 7", got)
	}
}

func TestMergeHUDActions(t *testing.T) {
	c := mergeHUDActions(sim.Controls{RateKey: 3}, ui.HUDActions{RateKey: 5, Clear: true})
	if c.RateKey != 5 || !c.Reset || c.Toggle {
		t.Errorf("merged = %+v", c)
	}

	c = mergeHUDActions(sim.Controls{RateKey: 3, Toggle: true}, ui.HUDActions{})
	if c.RateKey != 3 || !c.Toggle || c.Reset {
		t.Errorf("merged without actions = %+v", c)
	}
}
