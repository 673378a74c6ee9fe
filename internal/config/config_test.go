package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itohio/kronsolve/internal/grid"
)

func validConfig() Config {
	return Config{
		PDEName:      "continuity_1",
		Level:        2,
		Degree:       2,
		CFL:          0.5,
		Steps:        10,
		GridType:     grid.Sparse,
		Precision:    Float64,
		MemoryBudget: 1 << 20,
	}
}

func TestValidateAcceptsGoodConfig(t *testing.T) {
	assert.NoError(t, Validate(validConfig()))
}

func TestValidateRejectsEmptyPDEName(t *testing.T) {
	c := validConfig()
	c.PDEName = ""
	assert.ErrorIs(t, Validate(c), ErrInvalidConfig)
}

func TestValidateRejectsBadCFL(t *testing.T) {
	c := validConfig()
	c.CFL = 1.5
	assert.ErrorIs(t, Validate(c), ErrInvalidConfig)
}

func TestValidateRejectsNoStepsOrTEnd(t *testing.T) {
	c := validConfig()
	c.Steps = 0
	c.TEnd = 0
	assert.ErrorIs(t, Validate(c), ErrInvalidConfig)
}

func TestValidateAcceptsTEndInsteadOfSteps(t *testing.T) {
	c := validConfig()
	c.Steps = 0
	c.TEnd = 1.0
	assert.NoError(t, Validate(c))
}

func TestLoadParsesYAMLAndDerivesGridType(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")
	contents := "pde: continuity_1\nlevel: 2\ndegree: 3\ncfl: 0.4\nsteps: 5\nmemory_budget: 1048576\nprecision: float64\nfull_grid: true\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "continuity_1", c.PDEName)
	assert.Equal(t, 2, c.Level)
	assert.Equal(t, 3, c.Degree)
	assert.Equal(t, grid.Full, c.GridType)
	assert.NoError(t, Validate(c))
}

func TestLoadMissingFileIsError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidateRejectsBadPrecision(t *testing.T) {
	c := validConfig()
	c.Precision = "int8"
	assert.ErrorIs(t, Validate(c), ErrInvalidConfig)
}
