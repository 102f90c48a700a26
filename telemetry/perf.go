package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for one generation run.
const (
	PhaseInit       = "init"
	PhaseSynthesize = "synthesize"
	PhaseNormals    = "normals"
	PhaseTexels     = "texels"
	PhaseExport     = "export"
)

// phases lists every phase in pipeline order.
var phases = []string{PhaseInit, PhaseSynthesize, PhaseNormals, PhaseTexels, PhaseExport}

// PerfSample holds timing data for a single run.
type PerfSample struct {
	RunDuration time.Duration
	Phases      map[string]time.Duration
}

// PerfCollector tracks generation timings over a rolling window of runs.
type PerfCollector struct {
	windowSize    int
	samples       []PerfSample
	writeIndex    int
	sampleCount   int
	currentPhases map[string]time.Duration
	runStart      time.Time
	phaseStart    time.Time
	lastPhase     string
}

// NewPerfCollector creates a new performance collector.
// windowSize: number of runs to average over.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 16
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]PerfSample, windowSize),
		currentPhases: make(map[string]time.Duration),
	}
}

// StartRun begins timing a new generation run.
func (p *PerfCollector) StartRun() {
	p.runStart = time.Now()
	p.currentPhases = make(map[string]time.Duration)
	p.lastPhase = ""
}

// StartPhase begins timing a specific phase.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	// End previous phase if any
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndRun finishes timing the current run and records the sample.
func (p *PerfCollector) EndRun() {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
		p.lastPhase = ""
	}

	p.samples[p.writeIndex] = PerfSample{
		RunDuration: now.Sub(p.runStart),
		Phases:      p.currentPhases,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	Runs           int
	AvgRunDuration time.Duration

	// Phase breakdown (average durations)
	PhaseAvg map[string]time.Duration
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	if p.sampleCount == 0 {
		return PerfStats{PhaseAvg: make(map[string]time.Duration)}
	}

	var total time.Duration
	phaseSum := make(map[string]time.Duration)

	for _, s := range p.samples[:p.sampleCount] {
		total += s.RunDuration
		for phase, dur := range s.Phases {
			phaseSum[phase] += dur
		}
	}

	phaseAvg := make(map[string]time.Duration, len(phaseSum))
	for phase, sum := range phaseSum {
		phaseAvg[phase] = sum / time.Duration(p.sampleCount)
	}

	return PerfStats{
		Runs:           p.sampleCount,
		AvgRunDuration: total / time.Duration(p.sampleCount),
		PhaseAvg:       phaseAvg,
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("runs", s.Runs),
		slog.Int64("avg_run_us", s.AvgRunDuration.Microseconds()),
	}
	for _, phase := range phases {
		if avg, ok := s.PhaseAvg[phase]; ok {
			attrs = append(attrs, slog.Int64(phase+"_us", avg.Microseconds()))
		}
	}
	return slog.GroupValue(attrs...)
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	slog.Info("perf", "timing", s)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	AvgRunUS     int64 `csv:"avg_run_us"`
	InitUS       int64 `csv:"init_us"`
	SynthesizeUS int64 `csv:"synthesize_us"`
	NormalsUS    int64 `csv:"normals_us"`
	TexelsUS     int64 `csv:"texels_us"`
	ExportUS     int64 `csv:"export_us"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV() PerfStatsCSV {
	return PerfStatsCSV{
		AvgRunUS:     s.AvgRunDuration.Microseconds(),
		InitUS:       s.PhaseAvg[PhaseInit].Microseconds(),
		SynthesizeUS: s.PhaseAvg[PhaseSynthesize].Microseconds(),
		NormalsUS:    s.PhaseAvg[PhaseNormals].Microseconds(),
		TexelsUS:     s.PhaseAvg[PhaseTexels].Microseconds(),
		ExportUS:     s.PhaseAvg[PhaseExport].Microseconds(),
	}
}
