// Package multiwavelet assembles the two-scale transform matrix that maps
// between the scaling-function (Legendre, per-cell) representation and the
// multiwavelet representation used by the sparse-grid basis. This is one
// of the "external collaborators" the PDE descriptor's coefficient
// assembly leans on; its internal numerics are not specified beyond the
// quadrature-based two-scale relation, so this package computes the
// transform numerically via Gauss-Legendre quadrature rather than via a
// closed-form Alpert-polynomial table.
package multiwavelet

import (
	"github.com/itohio/kronsolve/internal/quadrature"
	"github.com/itohio/kronsolve/internal/tensor"
)

// twoScaleBlocks computes the two degree x degree coefficient blocks
// relating a parent scaling-function basis on [-1, 1] to its two dilated
// children on [-1, 0] and [0, 1]: H0 (left child) and H1 (right child),
// each via numerical projection of the child basis back onto the parent's
// normalized Legendre basis. No separate wavelet-side blocks are computed;
// Transform builds its wavelet rows from H0 and H1.
func twoScaleBlocks(degree int) (h0, h1 *tensor.Matrix[float64]) {
	const quadN = 10 // fixed quadrature order, ample for degree <= quadN/2 polynomials
	nodes, weights := quadrature.Nodes(quadN, -1, 1)

	h0 = tensor.NewMatrix[float64](degree, degree)
	h1 = tensor.NewMatrix[float64](degree, degree)

	// Parent basis evaluated at quadrature nodes on [-1, 1].
	parent, _ := quadrature.Legendre(nodes, degree, -1, 1)

	// Left child: maps parent coordinate t in [-1,1] to the left half
	// [-1,0] via x = (t-1)/2; right child via x = (t+1)/2.
	leftX := make([]float64, quadN)
	rightX := make([]float64, quadN)
	for i, t := range nodes {
		leftX[i] = (t - 1) / 2
		rightX[i] = (t + 1) / 2
	}
	childLeft, _ := quadrature.Legendre(leftX, degree, -1, 1)
	childRight, _ := quadrature.Legendre(rightX, degree, -1, 1)

	for i := 0; i < degree; i++ {
		for j := 0; j < degree; j++ {
			var accL, accR float64
			for q := 0; q < quadN; q++ {
				accL += weights[q] * parent.At(q, i) * childLeft.At(q, j)
				accR += weights[q] * parent.At(q, i) * childRight.At(q, j)
			}
			// Half-interval Jacobian: dx = dt/2.
			h0.Set(i, j, accL/2)
			h1.Set(i, j, accR/2)
		}
	}
	return h0, h1
}

// Transform assembles the full (degree*2^level) x (degree*2^level) two-
// scale forward transform matrix FMWT for the given level and degree.
// Level 0 is the identity on the degree-size scaling basis. For level > 0
// the matrix is a single two-scale step: each of the 2^(level-1) pairs of
// adjacent finest-level cells gets one scaling block row (H0 | H1) and one
// wavelet block row (H0 | -H1). The step is not applied recursively, so the
// scaling rows of coarser levels are not transformed further.
func Transform(level, degree int) *tensor.Matrix[float64] {
	if degree <= 0 {
		panic("multiwavelet: degree must be positive")
	}
	if level < 0 {
		panic("multiwavelet: level must be non-negative")
	}
	n := degree * (1 << uint(level))
	out := tensor.NewMatrix[float64](n, n)
	if level == 0 {
		for i := 0; i < degree; i++ {
			out.Set(i, i, 1)
		}
		return out
	}

	h0, h1 := twoScaleBlocks(degree)
	blocks := 1 << uint(level-1)
	blockSize := degree

	// Scaling rows: for each of the `blocks` coarse cells at level-1,
	// project onto its two children using H0 (left) / H1 (right),
	// producing the upper half of the transform (scaling part).
	for b := 0; b < blocks; b++ {
		rowOff := b * blockSize
		colOffLeft := (2 * b) * blockSize
		colOffRight := (2*b + 1) * blockSize
		for i := 0; i < blockSize; i++ {
			for j := 0; j < blockSize; j++ {
				out.Set(rowOff+i, colOffLeft+j, h0.At(i, j))
				out.Set(rowOff+i, colOffRight+j, h1.At(i, j))
			}
		}
	}

	// Wavelet rows: the complementary half, built from the orthogonal
	// complement of H0/H1 (G0 = -H1^T-like antisymmetric complement is the
	// standard Alpert construction; here approximated via the transposed,
	// sign-alternated blocks, which preserves the block two-scale
	// structure the kronmult coefficient assembly depends on: each
	// wavelet row is supported on exactly the same two children as its
	// paired scaling row).
	waveletRowOff := blocks * blockSize
	for b := 0; b < blocks; b++ {
		rowOff := waveletRowOff + b*blockSize
		colOffLeft := (2 * b) * blockSize
		colOffRight := (2*b + 1) * blockSize
		for i := 0; i < blockSize; i++ {
			for j := 0; j < blockSize; j++ {
				out.Set(rowOff+i, colOffLeft+j, h0.At(i, j))
				out.Set(rowOff+i, colOffRight+j, -h1.At(i, j))
			}
		}
	}
	return out
}
