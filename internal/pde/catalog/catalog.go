// Package catalog is the PDE factory: given a configuration-level PDE name,
// level, and degree, it builds the corresponding pde.Descriptor. Grounded
// on the teacher's cmd/manipulator pattern of an explicit name-to-behavior
// switch with a sentinel configuration error on an unknown name — there is
// no silent default case.
package catalog

import (
	"errors"
	"fmt"
	"math"

	"github.com/itohio/kronsolve/internal/pde"
)

// ErrPDENotImplemented is returned for a PDE name recognized by the
// catalog but not yet backed by a descriptor builder (the vlasov family).
// Callers must treat this as a configuration error, never as a cue to
// silently substitute another PDE.
var ErrPDENotImplemented = errors.New("catalog: PDE not implemented")

// ErrUnknownPDE is returned for a name the catalog does not recognize at
// all.
var ErrUnknownPDE = errors.New("catalog: unknown PDE name")

// Build constructs the descriptor for the named PDE at the given level and
// degree.
func Build(name string, level, degree int) (*pde.Descriptor, error) {
	switch name {
	case "continuity_1":
		return continuity1(level, degree), nil
	case "continuity_3":
		return continuity3(level, degree), nil
	case "fokkerplanck_1d_4p2":
		return fokkerPlanck1d4p2(level, degree), nil
	case "impurity_3d_A":
		return impurity3dA(level, degree), nil
	case "vlasov_lb_full_f", "vlasov_two_stream", "vlasov_weak_landau":
		return nil, fmt.Errorf("%w: %s", ErrPDENotImplemented, name)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownPDE, name)
	}
}

func uniformDim(level, degree int, min, max float64, ic pde.Func1D) pde.Dimension {
	return pde.Dimension{Min: min, Max: max, Level: level, Degree: degree, InitialCondition: ic}
}

// continuity1 is the forced 1D advection equation u_t + u_x = s(x,t) on x
// in [0,1] with periodic boundaries, where the two separable sources sum to
// s = cos(2*pi*x)*cos(t) - 2*pi*sin(2*pi*x)*sin(t), making
// cos(2*pi*x)*sin(t) the exact solution.
func continuity1(level, degree int) *pde.Descriptor {
	dims := []pde.Dimension{
		uniformDim(level, degree, 0, 1, func(x, t float64) float64 {
			return math.Cos(2*math.Pi*x) * math.Sin(t)
		}),
	}
	terms := []pde.Term{
		{Partials: []pde.PartialTerm{
			{Kind: pde.Grad, G: constOne, Flux: pde.Central, LeftBC: pde.Periodic, RightBC: pde.Periodic},
		}},
	}
	sources := []pde.Source{
		{
			Spatial: []pde.Func1D{func(x, t float64) float64 { return -2 * math.Pi * math.Sin(2*math.Pi*x) }},
			Time:    math.Sin,
		},
		{
			Spatial: []pde.Func1D{func(x, t float64) float64 { return math.Cos(2 * math.Pi * x) }},
			Time:    math.Cos,
		},
	}
	return pde.New(dims, terms, sources)
}

// continuity3 is the 3D analogue of continuity_1: a separable advection
// operator over three periodic dimensions.
func continuity3(level, degree int) *pde.Descriptor {
	dims := make([]pde.Dimension, 3)
	for d := range dims {
		dims[d] = uniformDim(level, degree, 0, 1, nil)
	}
	terms := make([]pde.Term, 3)
	for k := range terms {
		partials := make([]pde.PartialTerm, 3)
		for d := range partials {
			if d == k {
				partials[d] = pde.PartialTerm{Kind: pde.Grad, G: constOne, Flux: pde.Central, LeftBC: pde.Periodic, RightBC: pde.Periodic}
			} else {
				partials[d] = pde.PartialTerm{Kind: pde.Mass, G: constOne}
			}
		}
		terms[k] = pde.Term{Partials: partials}
	}
	return pde.New(dims, terms, nil)
}

// fokkerPlanck1d4p2 is a 1D operator over velocity space [-6, 6] with two
// terms: a drift term (Grad factor with coefficient x, upwind flux,
// Dirichlet at both edges) and a constant-coefficient Grad term (central
// flux, Neumann at both edges). Both are first-derivative factors; no
// second-derivative (diffusion) operator is assembled.
func fokkerPlanck1d4p2(level, degree int) *pde.Descriptor {
	dims := []pde.Dimension{
		uniformDim(level, degree, -6, 6, nil),
	}
	terms := []pde.Term{
		{Partials: []pde.PartialTerm{
			{Kind: pde.Grad, G: func(x, t float64) float64 { return x }, Flux: pde.Upwind, LeftBC: pde.Dirichlet, RightBC: pde.Dirichlet},
		}},
		{Partials: []pde.PartialTerm{
			{Kind: pde.Grad, G: constOne, Flux: pde.Central, LeftBC: pde.Neumann, RightBC: pde.Neumann},
		}},
	}
	return pde.New(dims, terms, nil)
}

// impurity3dA is a 3D impurity-transport operator. The source's exact
// decomposition across (elemc, termR2, s-dimension) in the retrieved
// material is ambiguous; this builder assembles the unambiguous part (a
// separable 3-term, 3-dimension advection operator: term k is a Grad factor
// in dimension k and Mass factors elsewhere, with no diffusion term) and leaves
// the disputed extra source term unimplemented rather than guess at its
// semantics.
func impurity3dA(level, degree int) *pde.Descriptor {
	dims := make([]pde.Dimension, 3)
	bounds := [3][2]float64{{0, 1}, {-6, 6}, {0, 1}}
	for d := range dims {
		dims[d] = uniformDim(level, degree, bounds[d][0], bounds[d][1], nil)
	}
	terms := make([]pde.Term, 3)
	for k := range terms {
		partials := make([]pde.PartialTerm, 3)
		for d := range partials {
			if d == k {
				partials[d] = pde.PartialTerm{Kind: pde.Grad, G: constOne, Flux: pde.Central, LeftBC: pde.Periodic, RightBC: pde.Periodic}
			} else {
				partials[d] = pde.PartialTerm{Kind: pde.Mass, G: constOne}
			}
		}
		terms[k] = pde.Term{Partials: partials}
	}
	return pde.New(dims, terms, nil)
}

func constOne(x, t float64) float64 { return 1 }
