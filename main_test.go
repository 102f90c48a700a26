package main

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTestConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "relief.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func readRuns(t *testing.T, dir string) [][]string {
	t.Helper()
	file, err := os.Open(filepath.Join(dir, "runs.csv"))
	if err != nil {
		t.Fatalf("opening runs.csv: %v", err)
	}
	defer file.Close()
	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	return rows
}

func TestRunUsesConfiguredOutputDir(t *testing.T) {
	out := filepath.Join(t.TempDir(), "artifacts")
	cfgPath := writeTestConfig(t, t.TempDir(), `
terrain:
  size: 9
output:
  dir: `+out+`
  file_name: demo
  normal_map: false
  height_map: false
`)

	if err := run([]string{"-config", cfgPath, "-seed", "7", "-runs", "2"}); err != nil {
		t.Fatalf("run: %v", err)
	}

	for _, name := range []string{"demo_000.obj", "demo_001.obj", "config.yaml", "runs.csv"} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
	rows := readRuns(t, out)
	if len(rows) != 3 {
		t.Fatalf("runs.csv rows = %d, want header + 2", len(rows))
	}
	if rows[1][0] != "7" || rows[2][0] != "8" {
		t.Errorf("seeds = %s, %s, want 7, 8", rows[1][0], rows[2][0])
	}
}

func TestRunFlagOverridesOutputDir(t *testing.T) {
	out := t.TempDir()
	cfgPath := writeTestConfig(t, t.TempDir(), "terrain:\n  size: 5\n")

	if err := run([]string{"-config", cfgPath, "-output-dir", out, "-seed", "1"}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if rows := readRuns(t, out); len(rows) != 2 {
		t.Errorf("runs.csv rows = %d, want header + 1", len(rows))
	}
}

func TestRunReturnsGenerationError(t *testing.T) {
	out := t.TempDir()
	cfgPath := writeTestConfig(t, t.TempDir(), "terrain:\n  size: 6\n")

	err := run([]string{"-config", cfgPath, "-algorithm", "displacement", "-output-dir", out, "-seed", "3"})
	if err == nil || !strings.Contains(err.Error(), "size") {
		t.Fatalf("expected size error, got %v", err)
	}
	// The snapshot is written and runs.csv closed before run returns.
	if _, err := os.Stat(filepath.Join(out, "config.yaml")); err != nil {
		t.Errorf("missing config snapshot: %v", err)
	}
	if rows := readRuns(t, out); len(rows) != 0 {
		t.Errorf("runs.csv should be empty after a failed run, got %d rows", len(rows))
	}
}

func TestRunRejectsUnknownAlgorithm(t *testing.T) {
	if err := run([]string{"-algorithm", "worley"}); err == nil {
		t.Fatal("expected error for unknown algorithm")
	}
}
