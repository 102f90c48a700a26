package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/relief/config"
)

// RunRecord is one row of runs.csv.
type RunRecord struct {
	Seed     uint64 `csv:"seed"`
	FileName string `csv:"file_name"`

	Size         int     `csv:"size"`
	Strategy     string  `csv:"strategy"`
	MinHeight    float64 `csv:"min_height"`
	MaxHeight    float64 `csv:"max_height"`
	MeanHeight   float64 `csv:"mean_height"`
	StdHeight    float64 `csv:"std_height"`
	MeanSlopeDeg float64 `csv:"mean_slope_deg"`
	MaxSlopeDeg  float64 `csv:"max_slope_deg"`

	// Timings average the collector window at the time of the run.
	RunUS        int64 `csv:"run_us"`
	InitUS       int64 `csv:"init_us"`
	SynthesizeUS int64 `csv:"synthesize_us"`
	NormalsUS    int64 `csv:"normals_us"`
	TexelsUS     int64 `csv:"texels_us"`
	ExportUS     int64 `csv:"export_us"`
}

// NewRunRecord combines field statistics and timings into one row.
func NewRunRecord(seed uint64, fileName string, fs FieldStats, ps PerfStats) RunRecord {
	perf := ps.ToCSV()
	return RunRecord{
		Seed:         seed,
		FileName:     fileName,
		Size:         fs.Size,
		Strategy:     fs.Strategy,
		MinHeight:    fs.MinHeight,
		MaxHeight:    fs.MaxHeight,
		MeanHeight:   fs.MeanHeight,
		StdHeight:    fs.StdHeight,
		MeanSlopeDeg: fs.MeanSlopeDeg,
		MaxSlopeDeg:  fs.MaxSlopeDeg,
		RunUS:        perf.AvgRunUS,
		InitUS:       perf.InitUS,
		SynthesizeUS: perf.SynthesizeUS,
		NormalsUS:    perf.NormalsUS,
		TexelsUS:     perf.TexelsUS,
		ExportUS:     perf.ExportUS,
	}
}

// OutputManager handles structured run output with CSV logging.
type OutputManager struct {
	dir      string
	runsFile *os.File

	// Track if headers have been written
	runsHeaderWritten bool
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	runsPath := filepath.Join(dir, "runs.csv")
	f, err := os.Create(runsPath)
	if err != nil {
		return nil, fmt.Errorf("creating runs.csv: %w", err)
	}

	return &OutputManager{dir: dir, runsFile: f}, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	configPath := filepath.Join(om.dir, "config.yaml")
	return cfg.WriteYAML(configPath)
}

// WriteRun appends a run record to runs.csv.
func (om *OutputManager) WriteRun(r RunRecord) error {
	if om == nil {
		return nil
	}

	records := []RunRecord{r}

	if !om.runsHeaderWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, om.runsFile); err != nil {
			return fmt.Errorf("writing run: %w", err)
		}
		om.runsHeaderWritten = true
	} else {
		// Subsequent writes skip headers
		if err := gocsv.MarshalWithoutHeaders(records, om.runsFile); err != nil {
			return fmt.Errorf("writing run: %w", err)
		}
	}

	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files. Calling it again is a no-op.
func (om *OutputManager) Close() error {
	if om == nil || om.runsFile == nil {
		return nil
	}
	err := om.runsFile.Close()
	om.runsFile = nil
	return err
}
