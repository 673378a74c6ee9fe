// Package pde holds the PDE descriptor: dimensions, terms (each a vector
// of per-dimension partial terms), and sources, plus the pre-assembled
// per-(term,dimension) coefficient matrices the kronmult core consumes.
// Grounded on the teacher's convention of read-only-after-construction
// value types (pkg/core/math/primitive/matrix.go's owning/view split) and
// on its panic-on-precondition-violation error style.
package pde

import (
	"fmt"

	"github.com/itohio/kronsolve/internal/multiwavelet"
	"github.com/itohio/kronsolve/internal/quadrature"
	"github.com/itohio/kronsolve/internal/tensor"
)

// Kind selects the operator a partial term contributes.
type Kind int

const (
	Mass Kind = iota
	Grad
)

// Flux selects the numerical flux scheme at cell interfaces for a Grad
// partial term.
type Flux int

const (
	Central Flux = iota
	Upwind
	Downwind
)

// BC names a boundary condition at a dimension's domain endpoint.
type BC int

const (
	Periodic BC = iota
	Dirichlet
	Neumann
)

// Func1D is a one-dimensional, time-dependent coefficient function g(x,t).
type Func1D func(x, t float64) float64

// PartialTerm is a single-dimension factor of a Term.
type PartialTerm struct {
	Kind              Kind
	G                 Func1D
	Flux              Flux
	LeftBC, RightBC   BC
}

// Term is a vector of D partial terms, one per dimension, whose Kronecker
// product is one summand of the spatial operator.
type Term struct {
	Partials []PartialTerm
}

// Dimension describes one coordinate axis of the domain.
type Dimension struct {
	Min, Max         float64
	Level, Degree    int
	InitialCondition Func1D
}

// Side returns degree * 2^level, the per-dimension coefficient-matrix
// side length.
func (d Dimension) Side() int { return d.Degree * (1 << uint(d.Level)) }

// Source is a time-separable forcing term: a product of D per-dimension
// spatial functions times a scalar time function.
type Source struct {
	Spatial []Func1D
	Time    func(t float64) float64
}

// Descriptor is the read-only-after-construction PDE specification: D
// dimensions, T terms, S sources, plus precomputed coefficient(t,d)
// matrices of side dims[d].Side().
type Descriptor struct {
	Dims    []Dimension
	Terms   []Term
	Sources []Source

	coeffs [][]*tensor.Matrix[float64] // [t][d]
}

// D reports the dimension count.
func (desc *Descriptor) D() int { return len(desc.Dims) }

// T reports the term count.
func (desc *Descriptor) T() int { return len(desc.Terms) }

// S reports the source count.
func (desc *Descriptor) S() int { return len(desc.Sources) }

// New constructs a Descriptor and eagerly assembles every (term,
// dimension) coefficient matrix. Panics if any term does not carry
// exactly one partial term per dimension.
func New(dims []Dimension, terms []Term, sources []Source) *Descriptor {
	d := len(dims)
	for ti, term := range terms {
		if len(term.Partials) != d {
			panic(fmt.Sprintf("pde: term %d has %d partials, want %d (one per dimension)", ti, len(term.Partials), d))
		}
	}
	desc := &Descriptor{Dims: dims, Terms: terms, Sources: sources}
	desc.coeffs = make([][]*tensor.Matrix[float64], len(terms))
	for ti, term := range terms {
		desc.coeffs[ti] = make([]*tensor.Matrix[float64], d)
		for di, pt := range term.Partials {
			desc.coeffs[ti][di] = assemble(dims[di], pt)
		}
	}
	return desc
}

// Coefficient returns the coefficient matrix view for (term t, dimension
// d), of side dims[d].Side().
func (desc *Descriptor) Coefficient(t, d int) tensor.MatrixView[float64] {
	return desc.coeffs[t][d].View()
}

const quadOrder = 6

// assemble builds the side x side coefficient matrix for one partial term
// on one dimension: a per-cell local Gram matrix (mass: integral of
// g*phi_i*phi_j; grad: integral of g*phi_i*phi_j') assembled block-
// diagonally over the dim.Level's 2^level cells at the finest resolution,
// then conjugated into multiwavelet space by the two-scale transform.
func assemble(dim Dimension, pt PartialTerm) *tensor.Matrix[float64] {
	level, degree := dim.Level, dim.Degree
	cells := 1 << uint(level)
	side := degree * cells
	local := tensor.NewMatrix[float64](side, side)

	cellWidth := (dim.Max - dim.Min) / float64(cells)
	nodes, weights := quadrature.Nodes(quadOrder, -1, 1)

	for c := 0; c < cells; c++ {
		cellMin := dim.Min + float64(c)*cellWidth
		cellMax := cellMin + cellWidth
		x := make([]float64, quadOrder)
		for i, t := range nodes {
			x[i] = cellMin + (t+1)/2*cellWidth
		}
		p, pPrime := quadrature.Legendre(x, degree, cellMin, cellMax)

		block := tensor.NewMatrix[float64](degree, degree)
		for i := 0; i < degree; i++ {
			for j := 0; j < degree; j++ {
				var acc float64
				for q := 0; q < quadOrder; q++ {
					w := weights[q] * cellWidth / 2
					g := pt.G(x[q], 0)
					switch pt.Kind {
					case Grad:
						acc += w * g * p.At(q, i) * pPrime.At(q, j)
					default:
						acc += w * g * p.At(q, i) * p.At(q, j)
					}
				}
				block.Set(i, j, acc)
			}
		}
		off := c * degree
		for i := 0; i < degree; i++ {
			for j := 0; j < degree; j++ {
				local.Set(off+i, off+j, block.At(i, j))
			}
		}
		applyFlux(local, pt, c, cells, degree)
	}

	if level == 0 {
		return local
	}
	mw := multiwavelet.Transform(level, degree)
	tmp := tensor.NewMatrix[float64](side, side)
	tensor.Gemm[float64](tmp.View(), mw.View(), local.View(), false, false, 1, 0)
	out := tensor.NewMatrix[float64](side, side)
	tensor.Gemm[float64](out.View(), tmp.View(), mw.View(), false, true, 1, 0)
	return out
}

// applyFlux adds the inter-cell coupling contribution for a Grad partial
// term's numerical flux at cell c's left and right faces. Mass terms carry
// no flux. Central flux couples symmetrically to both neighbors; upwind
// couples only to the left neighbor and downwind only to the right, a
// simplified stand-in for true sign-of-velocity upwinding since G's sign is
// not inspected separately here. A neighbor past a Periodic boundary wraps
// to the opposite edge of the domain; past a Dirichlet or Neumann boundary
// the coupling is simply omitted, leaving that cell's flux one-sided at the
// domain edge rather than injecting the (unmodeled) boundary data term a
// full DG assembly would add to the right-hand side.
func applyFlux(local *tensor.Matrix[float64], pt PartialTerm, c, cells, degree int) {
	if pt.Kind != Grad || cells == 1 {
		return
	}
	off := c * degree
	couple := func(weight float64, neighbor int) {
		noff := neighbor * degree
		for i := 0; i < degree; i++ {
			v := local.At(off+i, off+i)
			local.Set(off+i, noff+i, local.At(off+i, noff+i)+weight*v/float64(degree))
		}
	}

	hasLeft := c > 0 || pt.LeftBC == Periodic
	hasRight := c < cells-1 || pt.RightBC == Periodic
	left := (c - 1 + cells) % cells
	right := (c + 1) % cells

	switch pt.Flux {
	case Upwind:
		if hasLeft {
			couple(1.0, left)
		}
	case Downwind:
		if hasRight {
			couple(1.0, right)
		}
	default: // Central
		if hasLeft {
			couple(0.5, left)
		}
		if hasRight {
			couple(0.5, right)
		}
	}
}
