package telemetry

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pthm-cable/relief/config"
)

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil {
		t.Fatal(err)
	}
	if om != nil {
		t.Fatal("expected nil manager for empty dir")
	}
	// Nil manager methods are no-ops.
	if err := om.WriteRun(RunRecord{}); err != nil {
		t.Errorf("WriteRun on nil manager: %v", err)
	}
	if err := om.WriteConfig(nil); err != nil {
		t.Errorf("WriteConfig on nil manager: %v", err)
	}
	if om.Dir() != "" || om.Close() != nil {
		t.Error("nil manager should report empty dir and close cleanly")
	}
}

func TestOutputManagerWritesRuns(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	fs := FieldStats{Size: 17, Strategy: "noise", MinHeight: -1, MaxHeight: 1}
	ps := PerfStats{
		AvgRunDuration: 2 * time.Millisecond,
		PhaseAvg:       map[string]time.Duration{PhaseSynthesize: time.Millisecond},
	}
	for seed := uint64(1); seed <= 2; seed++ {
		if err := om.WriteRun(NewRunRecord(seed, "terrain", fs, ps)); err != nil {
			t.Fatal(err)
		}
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}

	file, err := os.Open(filepath.Join(dir, "runs.csv"))
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()
	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header + 2", len(rows))
	}
	if rows[0][0] != "seed" || rows[1][0] != "1" || rows[2][0] != "2" {
		t.Errorf("unexpected seed column: %v %v %v", rows[0][0], rows[1][0], rows[2][0])
	}
}

func TestOutputManagerWriteConfig(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer om.Close()

	cfg, err := config.Defaults()
	if err != nil {
		t.Fatal(err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		t.Fatal(err)
	}

	loaded, err := config.Load(filepath.Join(dir, "config.yaml"))
	if err != nil {
		t.Fatalf("reloading snapshot: %v", err)
	}
	if loaded.Terrain.Size != cfg.Terrain.Size || loaded.Algorithm != cfg.Algorithm {
		t.Errorf("snapshot mismatch: %+v vs %+v", loaded.Terrain, cfg.Terrain)
	}
}
