package timeadvance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/itohio/kronsolve/internal/tensor"
)

func TestStepForwardEulerCombinesOperatorAndSources(t *testing.T) {
	x := tensor.NewVector[float64](2)
	x.Set(0, 1)
	x.Set(1, 2)
	fx := tensor.NewVector[float64](2)

	apply := func(xv, out tensor.VectorView[float64]) {
		for i := 0; i < xv.Size(); i++ {
			out.Set(i, 2*xv.At(i))
		}
	}
	source := func(tt float64, out tensor.VectorView[float64]) {
		for i := 0; i < out.Size(); i++ {
			out.Set(i, 1)
		}
	}

	Step[float64](x.View(), fx.View(), 0, 0.1, apply, []SourceEval[float64]{source})

	// fx = x + dt*(2x + 1)
	assert.InDelta(t, 1+0.1*(2*1+1), fx.At(0), 1e-12)
	assert.InDelta(t, 2+0.1*(2*2+1), fx.At(1), 1e-12)
}

func TestStepPanicsOnNonFiniteResult(t *testing.T) {
	x := tensor.NewVector[float64](1)
	x.Set(0, 1)
	fx := tensor.NewVector[float64](1)
	apply := func(xv, out tensor.VectorView[float64]) {
		out.Set(0, math.Inf(1))
	}
	assert.Panics(t, func() {
		Step[float64](x.View(), fx.View(), 0, 1, apply, nil)
	})
}

func TestDefaultDtPicksMinimumScaledByCFL(t *testing.T) {
	dt := DefaultDt([]float64{1, 1}, []int{1, 2}, 0.5)
	// dims: 1/2=0.5, 1/4=0.25; min=0.25; *0.5 = 0.125.
	assert.InDelta(t, 0.125, dt, 1e-12)
}

func TestDefaultDtPanicsOnInvalidCFL(t *testing.T) {
	assert.Panics(t, func() {
		DefaultDt([]float64{1}, []int{1}, 1.5)
	})
}
