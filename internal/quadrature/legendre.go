// Package quadrature provides the two "external collaborator" numeric
// primitives the PDE descriptor's coefficient assembly consumes:
// Legendre-Gauss quadrature nodes/weights and normalized Legendre
// polynomial evaluation. Grounded on gonum's fixed-quadrature rule
// generator (gonum.org/v1/gonum/integrate/quad), the same ecosystem
// numerics library exercised elsewhere in the retrieved corpus, rather
// than a hand-rolled Golub-Welsch implementation.
package quadrature

import (
	"math"

	"gonum.org/v1/gonum/integrate/quad"

	"github.com/itohio/kronsolve/internal/tensor"
)

// Nodes returns the n Legendre-Gauss quadrature nodes and weights on
// [a, b]. Panics if n <= 0.
func Nodes(n int, a, b float64) (nodes, weights []float64) {
	if n <= 0 {
		panic("quadrature: n must be positive")
	}
	nodes = make([]float64, n)
	weights = make([]float64, n)
	quad.Legendre{}.FixedLocations(nodes, weights, n)

	// quad.Legendre generates on [-1, 1]; rescale to [a, b].
	half := (b - a) / 2
	mid := (a + b) / 2
	for i := range nodes {
		nodes[i] = mid + half*nodes[i]
		weights[i] *= half
	}
	return nodes, weights
}

// Legendre evaluates the normalized Legendre polynomials of degree
// 0..degree-1 (and their derivatives) at each point in x, which is assumed
// to lie in [domainMin, domainMax]. Points are first mapped to the
// canonical [-1, 1] reference interval, matching the original coordinate's
// normalization; points that fall outside [-1, 1] after mapping evaluate
// to zero in both P and P', per the external Legendre contract.
//
// Returns P, Pprime as (len(x) x degree) column-major matrices:
// P[i][k] is sqrt(2k+1) * sqrt(2) * P_k evaluated at x[i]: the
// sqrt(2k+1)-normalized Legendre polynomial scaled by a further sqrt(2), so
// the integral of its square over [-1, 1] is 4 rather than 1.
func Legendre(x []float64, degree int, domainMin, domainMax float64) (p, pPrime *tensor.Matrix[float64]) {
	if degree <= 0 {
		panic("quadrature: degree must be positive")
	}
	n := len(x)
	p = tensor.NewMatrix[float64](n, degree)
	pPrime = tensor.NewMatrix[float64](n, degree)

	half := (domainMax - domainMin) / 2
	mid := (domainMin + domainMax) / 2

	for i, xi := range x {
		ref := (xi - mid) / half
		if ref < -1 || ref > 1 {
			continue // left as zero rows
		}
		vals, derivs := legendreBasis(ref, degree)
		for k := 0; k < degree; k++ {
			scale := math.Sqrt(2 * float64(k) + 1)
			p.Set(i, k, scale*math.Sqrt2*vals[k])
			// d/dx[ref(x)] = 1/half, so P'(x) = P'(ref) * (1/half).
			pPrime.Set(i, k, scale*math.Sqrt2*derivs[k]/half)
		}
	}
	return p, pPrime
}

// legendreBasis evaluates the un-normalized Legendre polynomials P_0..
// P_{degree-1} and their derivatives at t in [-1, 1] via the standard
// three-term recurrence.
func legendreBasis(t float64, degree int) (vals, derivs []float64) {
	vals = make([]float64, degree)
	derivs = make([]float64, degree)
	vals[0] = 1
	derivs[0] = 0
	if degree == 1 {
		return vals, derivs
	}
	vals[1] = t
	derivs[1] = 1
	for k := 2; k < degree; k++ {
		kf := float64(k)
		vals[k] = ((2*kf-1)*t*vals[k-1] - (kf-1)*vals[k-2]) / kf
		derivs[k] = derivs[k-2] + (2*kf-1)*vals[k-1]
	}
	return vals, derivs
}
