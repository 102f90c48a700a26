// Package config provides configuration loading and access for terrain runs.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"math/rand/v2"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/relief/terrain"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all generation and output parameters.
type Config struct {
	Terrain      TerrainConfig      `yaml:"terrain"`
	Algorithm    string             `yaml:"algorithm"` // "noise" or "displacement"
	Noise        NoiseConfig        `yaml:"noise"`
	Displacement DisplacementConfig `yaml:"displacement"`
	Output       OutputConfig       `yaml:"output"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// TerrainConfig holds grid dimensions.
type TerrainConfig struct {
	Size  int        `yaml:"size"`  // Grid edge length in cells
	Scale [3]float64 `yaml:"scale"` // World extents: x, y half-widths and z height scale
}

// NoiseConfig holds fractal gradient noise parameters.
type NoiseConfig struct {
	Frequency  float64 `yaml:"frequency"`  // Base frequency in cycles per cell
	Amplitude  float64 `yaml:"amplitude"`  // First octave amplitude
	Iterations int     `yaml:"iterations"` // Octave count
}

// DisplacementConfig holds midpoint displacement parameters.
type DisplacementConfig struct {
	Displacement float64 `yaml:"displacement"` // Jitter standard deviation relative to scale z
	Roughness    float64 `yaml:"roughness"`    // Per-pass decay exponent: jitter /= 2^roughness
	Seed         uint64  `yaml:"seed"`         // RNG seed (0 = caller decides)
}

// OutputConfig selects which artifacts are written.
type OutputConfig struct {
	Dir        string `yaml:"dir"`
	FileName   string `yaml:"file_name"` // Base name, extensions are appended
	Mesh       bool   `yaml:"mesh"`
	Normals    bool   `yaml:"normals"` // Emit vn records in the mesh
	Texels     bool   `yaml:"texels"`  // Emit vt records in the mesh
	NormalMap  bool   `yaml:"normal_map"`
	HeightMap  bool   `yaml:"height_map"`
	HeightTIFF bool   `yaml:"height_tiff"` // 16-bit grayscale height map
	CellsCSV   bool   `yaml:"cells_csv"`
	Binary     bool   `yaml:"binary"` // Binary PGM/PPM instead of ASCII
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Scale terrain.Scale
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used. Remote sources
// (anything go-getter understands, e.g. https:// or s3::) are fetched first.
func Load(path string) (*Config, error) {
	cfg, err := Defaults()
	if err != nil {
		return nil, err
	}

	if path != "" {
		if IsRemote(path) {
			local, cleanup, err := Fetch(path)
			if err != nil {
				return nil, err
			}
			defer cleanup()
			path = local
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Defaults returns the embedded default configuration.
func Defaults() (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	cfg.computeDerived()
	return cfg, nil
}

// Validate checks the settings the terrain pipeline cannot recover from.
// Algorithm-specific grid constraints are left to the terrain package.
func (c *Config) Validate() error {
	if c.Terrain.Size < 2 {
		return fmt.Errorf("terrain.size=%d: must be at least 2", c.Terrain.Size)
	}
	switch c.Algorithm {
	case terrain.StrategyNoise:
		if c.Noise.Iterations < 0 {
			return fmt.Errorf("noise.iterations=%d: must be non-negative", c.Noise.Iterations)
		}
		if err := finite("noise.frequency", c.Noise.Frequency); err != nil {
			return err
		}
		if err := finite("noise.amplitude", c.Noise.Amplitude); err != nil {
			return err
		}
	case terrain.StrategyDisplacement:
		if err := finite("displacement.displacement", c.Displacement.Displacement); err != nil {
			return err
		}
		if err := finite("displacement.roughness", c.Displacement.Roughness); err != nil {
			return err
		}
	default:
		return fmt.Errorf("algorithm=%q: must be %q or %q", c.Algorithm, terrain.StrategyNoise, terrain.StrategyDisplacement)
	}
	if c.Output.FileName == "" {
		return fmt.Errorf("output.file_name: must not be empty")
	}
	return nil
}

func finite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%s=%v: must be finite", name, v)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.Scale = terrain.Scale{
		X: c.Terrain.Scale[0],
		Y: c.Terrain.Scale[1],
		Z: c.Terrain.Scale[2],
	}
}

// Strategy returns the height synthesizer selected by Algorithm.
// src seeds the displacement algorithm and is ignored for noise.
func (c *Config) Strategy(src rand.Source) terrain.Strategy {
	if c.Algorithm == terrain.StrategyDisplacement {
		return terrain.Displacement{
			Magnitude: c.Displacement.Displacement,
			Roughness: c.Displacement.Roughness,
			Source:    src,
		}
	}
	return terrain.Noise{
		Frequency: c.Noise.Frequency,
		Amplitude: c.Noise.Amplitude,
		Octaves:   c.Noise.Iterations,
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
