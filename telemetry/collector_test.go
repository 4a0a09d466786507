package telemetry

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCollectorWindowTicks(t *testing.T) {
	c := NewCollector(1.0, 0.005)

	if got := c.WindowDurationTicks(); got != 200 {
		t.Fatalf("WindowDurationTicks = %d, want 200", got)
	}
	if c.ShouldFlush(199) {
		t.Error("ShouldFlush(199) = true, want false")
	}
	if !c.ShouldFlush(200) {
		t.Error("ShouldFlush(200) = false, want true")
	}
}

func TestCollectorWindowTicksAtLeastOne(t *testing.T) {
	c := NewCollector(0.001, 0.1)
	if got := c.WindowDurationTicks(); got != 1 {
		t.Errorf("WindowDurationTicks = %d, want 1", got)
	}
}

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(1.0, 0.005)

	c.RecordTick(500, 0, 0, 1, 0)
	c.RecordTick(500, 120, 1, 0, 1)
	c.Sample(0.25, 0.1)
	c.Sample(0.75, 0.3)

	stats := c.Flush(200, 879, 1, 500)

	if stats.Spawned != 1000 || stats.Expired != 120 || stats.Dropped != 1 {
		t.Errorf("counts = %d/%d/%d, want 1000/120/1", stats.Spawned, stats.Expired, stats.Dropped)
	}
	if stats.ObstaclesAdded != 1 || stats.Clears != 1 {
		t.Errorf("obstacles_added=%d clears=%d, want 1 and 1", stats.ObstaclesAdded, stats.Clears)
	}
	if stats.Particles != 879 || stats.Obstacles != 1 || stats.SpawnRate != 500 {
		t.Errorf("state = %d/%d/%d, want 879/1/500", stats.Particles, stats.Obstacles, stats.SpawnRate)
	}
	if math.Abs(stats.LifeMean-0.5) > 1e-6 {
		t.Errorf("LifeMean = %v, want 0.5", stats.LifeMean)
	}
	if math.Abs(stats.BrightMean-0.2) > 1e-6 {
		t.Errorf("BrightMean = %v, want 0.2", stats.BrightMean)
	}
	if math.Abs(stats.SimTimeSec-1.0) > 1e-6 {
		t.Errorf("SimTimeSec = %v, want 1.0", stats.SimTimeSec)
	}

	// Next window starts empty
	next := c.Flush(400, 0, 0, 500)
	if next.WindowStartTick != 200 {
		t.Errorf("WindowStartTick = %d, want 200", next.WindowStartTick)
	}
	if next.Spawned != 0 || next.LifeMean != 0 {
		t.Errorf("counters not reset: %+v", next)
	}
}

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}
	if om != nil {
		t.Fatal("expected nil manager for empty dir")
	}
	// nil manager methods are no-ops
	if err := om.WriteTelemetry(WindowStats{}); err != nil {
		t.Errorf("WriteTelemetry on nil: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Errorf("Close on nil: %v", err)
	}
}

func TestOutputManagerWritesHeaderOnce(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	for tick := int32(200); tick <= 600; tick += 200 {
		if err := om.WriteTelemetry(WindowStats{WindowEndTick: tick, Particles: 10}); err != nil {
			t.Fatalf("WriteTelemetry: %v", err)
		}
		if err := om.WritePerf(PerfStats{}, tick); err != nil {
			t.Fatalf("WritePerf: %v", err)
		}
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	for _, name := range []string{"telemetry.csv", "perf.csv"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("reading %s: %v", name, err)
		}
		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		if len(lines) != 4 {
			t.Errorf("%s has %d lines, want header + 3 rows", name, len(lines))
		}
		if !strings.HasPrefix(lines[0], "window_end") {
			t.Errorf("%s header = %q, want it to start with window_end", name, lines[0])
		}
	}
}
