// Package config holds the CLI-level run configuration and its
// validation. Grounded on the teacher's cmd/manipulator flag-driven
// configuration pattern, generalized from manipulator-specific flags to
// this engine's PDE/grid/precision knobs, and on the teacher's convention
// of returning a sentinel configuration error rather than panicking on
// bad user input (unlike the numerics packages, which do panic: operator
// input is recoverable, a broken invariant mid-computation is not).
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/itohio/kronsolve/internal/grid"
)

// ErrInvalidConfig is the sentinel wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Precision names the element type of a run. Validate accepts float32 and
// float64, but cmd/kronsolve always computes in float64; a float32 value
// does not select a float32 instantiation.
type Precision string

const (
	Float32 Precision = "float32"
	Float64 Precision = "float64"
)

// Config is the full set of knobs a run is parameterized by. YAML tags
// let a run be parameterized from a config file via Load; when
// cmd/kronsolve loads a file, the file's values are used as they are and
// the other CLI flags are not applied on top.
type Config struct {
	PDEName      string    `yaml:"pde"`
	Level        int       `yaml:"level"`
	Degree       int       `yaml:"degree"`
	CFL          float64   `yaml:"cfl"`
	Steps        int       `yaml:"steps"`
	TEnd         float64   `yaml:"t_end"`
	GridType     grid.Type `yaml:"-"`
	Precision    Precision `yaml:"precision"`
	MemoryBudget int       `yaml:"memory_budget"`
	OutputDir    string    `yaml:"output_dir"`
	Dump         bool      `yaml:"dump"`
	Full         bool      `yaml:"full_grid"`
}

// Load reads a YAML-encoded Config from path. GridType is derived from
// Full after decoding, since grid.Type has no natural YAML scalar
// encoding of its own.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	c.GridType = grid.Sparse
	if c.Full {
		c.GridType = grid.Full
	}
	return c, nil
}

// Validate checks Config for internal consistency, returning an error
// wrapping ErrInvalidConfig describing the first violation found.
func Validate(c Config) error {
	if c.PDEName == "" {
		return fmt.Errorf("%w: PDE name must not be empty", ErrInvalidConfig)
	}
	if c.Level < 0 {
		return fmt.Errorf("%w: level must be non-negative, got %d", ErrInvalidConfig, c.Level)
	}
	if c.Degree <= 0 {
		return fmt.Errorf("%w: degree must be positive, got %d", ErrInvalidConfig, c.Degree)
	}
	if c.CFL <= 0 || c.CFL > 1 {
		return fmt.Errorf("%w: CFL must be in (0, 1], got %v", ErrInvalidConfig, c.CFL)
	}
	if c.Steps <= 0 && c.TEnd <= 0 {
		return fmt.Errorf("%w: at least one of Steps or TEnd must be positive", ErrInvalidConfig)
	}
	if c.GridType != grid.Sparse && c.GridType != grid.Full {
		return fmt.Errorf("%w: unrecognized grid type %v", ErrInvalidConfig, c.GridType)
	}
	if c.Precision != Float32 && c.Precision != Float64 {
		return fmt.Errorf("%w: unrecognized precision %q", ErrInvalidConfig, c.Precision)
	}
	if c.MemoryBudget <= 0 {
		return fmt.Errorf("%w: memory budget must be positive, got %d", ErrInvalidConfig, c.MemoryBudget)
	}
	return nil
}
