package sim

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Default factory parameters. Times are in simulated minutes.
const (
	DefaultSeed              int64   = 42
	DefaultBottlesPerOrder   int64   = 1000
	DefaultInterarrivalMean  float64 = 15
	DefaultMinProcessingTime float64 = 0.1
)

// StationConfig groups the capacity and processing-time distribution of one station.
type StationConfig struct {
	Capacity int     `yaml:"capacity"` // number of identical parallel servers (must be > 0)
	Mean     float64 `yaml:"mean"`     // mean processing time per batch (minutes)
	StdDev   float64 `yaml:"stddev"`   // standard deviation of processing time (minutes)
}

// FactoryConfig describes a complete bottling line.
// Stations is keyed by the canonical stage name (Stage.String()).
type FactoryConfig struct {
	Seed              int64                    `yaml:"seed"`
	BottlesPerOrder   int64                    `yaml:"bottles_per_order"`
	InterarrivalMean  float64                  `yaml:"interarrival_mean"`
	MinProcessingTime float64                  `yaml:"min_processing_time"`
	Stations          map[string]StationConfig `yaml:"stations"`
}

// DefaultFactoryConfig returns the reference line: one mixer, two fillers,
// two cappers, two labelers and one packaging station.
func DefaultFactoryConfig() FactoryConfig {
	return FactoryConfig{
		Seed:              DefaultSeed,
		BottlesPerOrder:   DefaultBottlesPerOrder,
		InterarrivalMean:  DefaultInterarrivalMean,
		MinProcessingTime: DefaultMinProcessingTime,
		Stations: map[string]StationConfig{
			StageMixing.String():    {Capacity: 1, Mean: 10, StdDev: 2},
			StageFilling.String():   {Capacity: 2, Mean: 8, StdDev: 1},
			StageCapping.String():   {Capacity: 2, Mean: 5, StdDev: 0.5},
			StageLabeling.String():  {Capacity: 2, Mean: 4, StdDev: 0.5},
			StagePackaging.String(): {Capacity: 1, Mean: 12, StdDev: 2},
		},
	}
}

// LoadFactoryConfig reads a YAML file and overlays it on DefaultFactoryConfig.
// Keys absent from the file, including keys of a station entry, keep their defaults.
func LoadFactoryConfig(path string) (FactoryConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FactoryConfig{}, fmt.Errorf("failed to read factory config %s: %w", path, err)
	}
	cfg, err := ParseFactoryConfig(data)
	if err != nil {
		return FactoryConfig{}, fmt.Errorf("failed to parse factory config %s: %w", path, err)
	}
	return cfg, nil
}

// stationFile is one station entry as written in a config file. Absent keys
// stay nil and keep the default value.
type stationFile struct {
	Capacity *int     `yaml:"capacity"`
	Mean     *float64 `yaml:"mean"`
	StdDev   *float64 `yaml:"stddev"`
}

// factoryFile mirrors FactoryConfig with optional fields.
// All top-level keys must be listed to satisfy KnownFields(true) strict parsing.
type factoryFile struct {
	Seed              *int64                 `yaml:"seed"`
	BottlesPerOrder   *int64                 `yaml:"bottles_per_order"`
	InterarrivalMean  *float64               `yaml:"interarrival_mean"`
	MinProcessingTime *float64               `yaml:"min_processing_time"`
	Stations          map[string]stationFile `yaml:"stations"`
}

// ParseFactoryConfig decodes YAML with strict field checking on top of the defaults
// and validates the result. Only keys present in the input override a default,
// including keys inside a station entry. Station names are matched
// case-insensitively and stored under their canonical name. Empty input yields the defaults.
func ParseFactoryConfig(data []byte) (FactoryConfig, error) {
	var file factoryFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return FactoryConfig{}, err
	}

	cfg := DefaultFactoryConfig()
	setIf(&cfg.Seed, file.Seed)
	setIf(&cfg.BottlesPerOrder, file.BottlesPerOrder)
	setIf(&cfg.InterarrivalMean, file.InterarrivalMean)
	setIf(&cfg.MinProcessingTime, file.MinProcessingTime)

	seen := make(map[Stage]string, len(file.Stations))
	for name, entry := range file.Stations {
		stage, err := ParseStage(name)
		if err != nil {
			return FactoryConfig{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		if prev, dup := seen[stage]; dup {
			return FactoryConfig{}, fmt.Errorf("%w: stations %q and %q both configure %s", ErrInvalidConfig, prev, name, stage)
		}
		seen[stage] = name

		sc := cfg.Stations[stage.String()]
		setIf(&sc.Capacity, entry.Capacity)
		setIf(&sc.Mean, entry.Mean)
		setIf(&sc.StdDev, entry.StdDev)
		cfg.Stations[stage.String()] = sc
	}

	if err := cfg.Validate(); err != nil {
		return FactoryConfig{}, err
	}
	return cfg, nil
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// Validate checks every parameter the simulator relies on.
func (c FactoryConfig) Validate() error {
	if c.BottlesPerOrder <= 0 {
		return fmt.Errorf("%w: bottles_per_order must be > 0, got %d", ErrInvalidConfig, c.BottlesPerOrder)
	}
	if !(c.InterarrivalMean > 0) || math.IsInf(c.InterarrivalMean, 0) {
		return fmt.Errorf("%w: interarrival_mean must be a positive finite number, got %v", ErrInvalidConfig, c.InterarrivalMean)
	}
	if !(c.MinProcessingTime > 0) {
		return fmt.Errorf("%w: min_processing_time must be > 0, got %v", ErrInvalidConfig, c.MinProcessingTime)
	}
	for name := range c.Stations {
		stage, err := ParseStage(name)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		if name != stage.String() {
			return fmt.Errorf("%w: station key %q must be written %q", ErrInvalidConfig, name, stage.String())
		}
	}
	for _, stage := range Stages() {
		sc, ok := c.Stations[stage.String()]
		if !ok {
			return fmt.Errorf("%w: station %q is missing", ErrInvalidConfig, stage)
		}
		if sc.Capacity <= 0 {
			return fmt.Errorf("%w: station %q: %w: capacity must be > 0, got %d", ErrInvalidConfig, stage, ErrInvalidCapacity, sc.Capacity)
		}
		if sc.Mean < 0 || math.IsNaN(sc.Mean) {
			return fmt.Errorf("%w: station %q: mean must be >= 0, got %v", ErrInvalidConfig, stage, sc.Mean)
		}
		if sc.StdDev < 0 || math.IsNaN(sc.StdDev) {
			return fmt.Errorf("%w: station %q: stddev must be >= 0, got %v", ErrInvalidConfig, stage, sc.StdDev)
		}
	}
	return nil
}

// Station returns the configuration for the given stage.
// Only meaningful on a validated config.
func (c FactoryConfig) Station(stage Stage) StationConfig {
	return c.Stations[stage.String()]
}

// Clone returns a deep copy, so callers may tweak stations without aliasing the map.
func (c FactoryConfig) Clone() FactoryConfig {
	out := c
	out.Stations = make(map[string]StationConfig, len(c.Stations))
	for k, v := range c.Stations {
		out.Stations[k] = v
	}
	return out
}

// YAML encodes the config as it would appear in a config file.
func (c FactoryConfig) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
