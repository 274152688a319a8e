package scheduler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid scheduler config")

// Algorithm names a scheduling strategy.
type Algorithm string

const (
	AlgorithmGreedy Algorithm = "greedy"
	AlgorithmRandom Algorithm = "random"
)

// ParcelPriority is the parcel attribute driving greedy extraction.
type ParcelPriority string

const (
	PriorityVolume      ParcelPriority = "volume"
	PriorityDestination ParcelPriority = "destination"
)

// Order is the direction of a greedy ordering.
type Order string

const (
	NonDecreasing Order = "non-decreasing"
	NonIncreasing Order = "non-increasing"
)

// Config selects and parameterizes a scheduler.
type Config struct {
	Algorithm      Algorithm      `json:"algorithm" yaml:"algorithm"`
	ParcelPriority ParcelPriority `json:"parcel_priority" yaml:"parcel_priority"`
	ParcelOrder    Order          `json:"parcel_order" yaml:"parcel_order"`
	TruckOrder     Order          `json:"truck_order" yaml:"truck_order"`
	// Seed feeds the random scheduler. 0 seeds from the clock.
	Seed int64 `json:"seed" yaml:"seed"`
	// Verbose turns on per-parcel debug records.
	Verbose bool `json:"verbose" yaml:"verbose"`
}

// DefaultConfig returns a greedy configuration packing the largest parcels
// first onto the emptiest trucks.
func DefaultConfig() Config {
	c := Config{}
	c.SetDefaults()
	return c
}

// SetDefaults fills empty fields.
func (c *Config) SetDefaults() {
	if c.Algorithm == "" {
		c.Algorithm = AlgorithmGreedy
	}
	if c.ParcelPriority == "" {
		c.ParcelPriority = PriorityVolume
	}
	if c.ParcelOrder == "" {
		c.ParcelOrder = NonIncreasing
	}
	if c.TruckOrder == "" {
		c.TruckOrder = NonIncreasing
	}
}

// Validate rejects unknown enumeration values. The greedy fields are checked
// for every algorithm so that a config stays valid when switched.
func (c Config) Validate() error {
	switch c.Algorithm {
	case AlgorithmGreedy, AlgorithmRandom:
	default:
		return fmt.Errorf("%w: unknown algorithm %q", ErrInvalidConfig, c.Algorithm)
	}
	switch c.ParcelPriority {
	case PriorityVolume, PriorityDestination:
	default:
		return fmt.Errorf("%w: unknown parcel_priority %q", ErrInvalidConfig, c.ParcelPriority)
	}
	if !c.ParcelOrder.valid() {
		return fmt.Errorf("%w: unknown parcel_order %q", ErrInvalidConfig, c.ParcelOrder)
	}
	if !c.TruckOrder.valid() {
		return fmt.Errorf("%w: unknown truck_order %q", ErrInvalidConfig, c.TruckOrder)
	}
	return nil
}

func (o Order) valid() bool { return o == NonDecreasing || o == NonIncreasing }

// LoadConfig loads a Config from a JSON or YAML file, applies defaults and
// validates it.
func LoadConfig(path string) (Config, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml", ".json":
	default:
		return Config{}, fmt.Errorf("unsupported config format: %s", ext)
	}
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer func() { _ = f.Close() }()
	return DecodeConfig(f, strings.TrimPrefix(ext, "."))
}

// DecodeConfig reads a Config in the given format ("yaml", "yml" or "json").
func DecodeConfig(r io.Reader, format string) (Config, error) {
	var cfg Config
	switch strings.ToLower(format) {
	case "yaml", "yml":
		if err := yaml.NewDecoder(r).Decode(&cfg); err != nil {
			return cfg, fmt.Errorf("decode yaml: %w", err)
		}
	case "json":
		if err := json.NewDecoder(r).Decode(&cfg); err != nil {
			return cfg, fmt.Errorf("decode json: %w", err)
		}
	default:
		return cfg, fmt.Errorf("unsupported format: %s", format)
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
