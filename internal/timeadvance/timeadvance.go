// Package timeadvance implements the explicit forward-Euler (and,
// compositionally, higher-order Runge-Kutta) time step: scale sources,
// apply the spatial operator, and combine. Grounded on the teacher's
// fatal-on-NaN numerics convention (panic rather than silent
// continuation, matching pkg/core/math/primitive/la.go's treatment of
// singular matrices as a hard failure).
package timeadvance

import (
	"fmt"
	"math"

	"github.com/itohio/kronsolve/internal/tensor"
)

// OperatorApply computes operator_times_x for the current solution x,
// writing the result into out. Supplied by the caller, since computing it
// requires the full chunk/kronmult/reduce pipeline wired against a
// concrete element table and PDE descriptor.
type OperatorApply[T tensor.Scalar] func(x tensor.VectorView[T], out tensor.VectorView[T])

// SourceEval computes the assembled length-N source vector at time t,
// writing into out. Supplied by the caller, which assembles it from the
// PDE's separable sources (cmd/kronsolve uses engine.AddSource, a
// cell-midpoint evaluation).
type SourceEval[T tensor.Scalar] func(t T, out tensor.VectorView[T])

// Step advances x by dt via forward Euler: fx = x + dt*(operator_times_x +
// sum_s scaled_source_s). fx must be pre-allocated to x's size and
// distinct from x. Panics on a NaN/Inf result: the time step is pure
// numerics, and a detected non-finite value is a fatal assertion failure,
// not a retryable condition.
func Step[T tensor.Scalar](x, fx tensor.VectorView[T], t, dt T, apply OperatorApply[T], sources []SourceEval[T]) {
	if x.Size() != fx.Size() {
		panic("timeadvance: x and fx size mismatch")
	}
	opx := tensor.NewVector[T](x.Size())
	apply(x, opx.View())

	acc := tensor.NewVector[T](x.Size())
	for i := 0; i < x.Size(); i++ {
		acc.Set(i, opx.At(i))
	}
	src := tensor.NewVector[T](x.Size())
	for _, s := range sources {
		for i := 0; i < x.Size(); i++ {
			src.Set(i, 0)
		}
		s(t, src.View())
		for i := 0; i < x.Size(); i++ {
			acc.Set(i, acc.At(i)+src.At(i))
		}
	}

	for i := 0; i < x.Size(); i++ {
		v := x.At(i) + dt*acc.At(i)
		if isNonFinite(v) {
			panic(fmt.Sprintf("timeadvance: non-finite value at index %d", i))
		}
		fx.Set(i, v)
	}
}

func isNonFinite[T tensor.Scalar](v T) bool {
	f := float64(v)
	return math.IsNaN(f) || math.IsInf(f, 0)
}

// DefaultDt returns the suggested default time step: the minimum, across
// dimensions, of dx/2^level scaled by a CFL factor <= 1, where dx is each
// dimension's domain width.
func DefaultDt(domainWidths []float64, levels []int, cfl float64) float64 {
	if len(domainWidths) != len(levels) {
		panic("timeadvance: domainWidths and levels must have equal length")
	}
	if len(domainWidths) == 0 {
		panic("timeadvance: at least one dimension required")
	}
	if cfl <= 0 || cfl > 1 {
		panic("timeadvance: cfl must be in (0, 1]")
	}
	min := math.Inf(1)
	for d := range domainWidths {
		dx := domainWidths[d] / float64(uint(1)<<uint(levels[d]))
		if dx < min {
			min = dx
		}
	}
	return cfl * min
}
