package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAxpy(t *testing.T) {
	y := []float64{1, 1, 1}
	x := []float64{1, 2, 3}
	Axpy[float64](y, x, 1, 1, 3, 2)
	assert.Equal(t, []float64{3, 5, 7}, y)
}

func TestVDot(t *testing.T) {
	x := []float64{1, 2, 3}
	y := []float64{4, 5, 6}
	got := VDot[float64](x, y, 1, 1, 3)
	assert.Equal(t, float64(32), got)
}

func TestScal(t *testing.T) {
	x := []float64{1, 2, 3}
	Scal[float64](x, 1, 3, 2)
	assert.Equal(t, []float64{2, 4, 6}, x)
}

func TestVCopy(t *testing.T) {
	y := make([]float64, 3)
	x := []float64{7, 8, 9}
	VCopy[float64](y, x, 1, 1, 3)
	assert.Equal(t, x, y)
}

func TestIamax(t *testing.T) {
	x := []float64{1, -9, 3, 4}
	assert.Equal(t, 1, Iamax[float64](x, 1, 4))
}
