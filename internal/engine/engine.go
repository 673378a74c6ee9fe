// Package engine wires the grid, pde, chunk, kronmult, and reduce
// packages into a single OperatorApply usable by internal/timeadvance.
// Grounded on the teacher's convention of a thin composition layer above
// its primitive packages (cmd/manipulator/main.go composes
// pkg/core/math/primitive types directly rather than through its own
// abstraction); Engine plays the equivalent role for this domain.
package engine

import (
	"runtime"

	"github.com/itohio/kronsolve/internal/chunk"
	"github.com/itohio/kronsolve/internal/grid"
	"github.com/itohio/kronsolve/internal/kronmult"
	"github.com/itohio/kronsolve/internal/pde"
	"github.com/itohio/kronsolve/internal/reduce"
	"github.com/itohio/kronsolve/internal/tensor"
)

// Engine evaluates the spatial operator of a Descriptor over a Table's
// elements: every row element is coupled to every other element (the
// Kronecker-product operator is dense over the hierarchical basis), and
// that coupling set is partitioned into memory-budgeted chunks the way a
// production run would size its batch workspaces. The chunk-level
// maxWorkers knob lives on kronmult.BuildBatches, the operand-assignment
// surface the batcher fans out across; Engine just forwards it.
type Engine struct {
	desc       *pde.Descriptor
	table      *grid.Table
	degree     int
	d          int
	elemSize   int
	rows       []int
	entries    map[int][]chunk.RowCoupling
	ws         chunk.Workspaces
	ones       *tensor.Vector[float64]
	maxWorkers int
}

// New builds an Engine from a descriptor and its element table, sizing
// chunks to the given batch-input and reduction-space memory budgets (in
// elements of float64). Kron_index ranges are grouped back by row, and the
// resulting chunk.Workspaces sizes are kept on the Engine so Apply can
// allocate its reduction-block and reduce-to-ones scratch once per row pass
// instead of per coupling.
func New(desc *pde.Descriptor, table *grid.Table, degree, batchInputLimit, reductionSpaceLimit int) *Engine {
	d := desc.D()
	elemSize := pow(degree, d)
	n := table.Size()

	couplings := make([]chunk.RowCoupling, n)
	for r := 0; r < n; r++ {
		couplings[r] = chunk.RowCoupling{Row: r, ColStart: 0, ColStop: n}
	}
	chunks := chunk.Build(couplings, elemSize, desc.T(), batchInputLimit, reductionSpaceLimit)
	ws := chunk.SizeWorkspaces(chunks, elemSize, desc.T(), d)

	entries := make(map[int][]chunk.RowCoupling, n)
	rows := make([]int, 0, n)
	for _, ch := range chunks {
		for _, rc := range ch.Rows {
			if _, ok := entries[rc.Row]; !ok {
				rows = append(rows, rc.Row)
			}
			entries[rc.Row] = append(entries[rc.Row], rc)
		}
	}

	return &Engine{
		desc:       desc,
		table:      table,
		degree:     degree,
		d:          d,
		elemSize:   elemSize,
		rows:       rows,
		entries:    entries,
		ws:         ws,
		ones:       reduce.Ones[float64](ws.UnitVector),
		maxWorkers: runtime.GOMAXPROCS(0),
	}
}

// Size reports the length of the full state vector: table.Size() *
// degree^D.
func (e *Engine) Size() int { return e.table.Size() * e.elemSize }

// ElemSize reports degree^D, the per-element block length.
func (e *Engine) ElemSize() int { return e.elemSize }

// SetWorkers overrides the worker pool size kronmult.BuildBatches fans a
// row's couplings out across. n <= 0 falls back to runtime.GOMAXPROCS(0).
func (e *Engine) SetWorkers(n int) {
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	e.maxWorkers = n
}

// rowWorkspace holds the reduction-block and partial-result scratch reused
// across every row Apply processes, sized once from the Engine's
// chunk.Workspaces rather than allocated fresh per row or per coupling.
type rowWorkspace struct {
	block   *tensor.Matrix[float64]
	partial *tensor.Vector[float64]
	entries []kronmult.Operands[float64]
}

func (e *Engine) newRowWorkspace() *rowWorkspace {
	width := e.ws.UnitVector
	if width <= 0 {
		width = 1
	}
	return &rowWorkspace{
		block:   tensor.NewMatrix[float64](e.elemSize, width),
		partial: tensor.NewVector[float64](e.elemSize),
		entries: make([]kronmult.Operands[float64], 0, width),
	}
}

// Apply evaluates y = A*x, where A is the Descriptor's term-summed
// Kronecker-product operator over every element coupling. Rows are
// processed sequentially (each row's kron_index range may have been split
// across several chunks during New, but every split belongs to exactly one
// row, so the row loop never revisits a slice of y); the chunk-level
// parallelism the chunk/engine composition schedules work through lives in
// kronmult.BuildBatches, which Apply invokes once per row with
// e.maxWorkers, fanning that row's own couplings out across a bounded
// goroutine pool.
func (e *Engine) Apply(x, y tensor.VectorView[float64]) {
	for i := 0; i < y.Size(); i++ {
		y.Set(i, 0)
	}

	ws := e.newRowWorkspace()
	for _, row := range e.rows {
		e.applyRow(row, x, y, ws)
	}
}

// applyRow processes every kron_index range belonging to one row-element,
// accumulating into y's slice for that row, reusing ws's block/partial
// scratch buffers across calls.
func (e *Engine) applyRow(row int, x, y tensor.VectorView[float64], ws *rowWorkspace) {
	update := y.Sub(row*e.elemSize, (row+1)*e.elemSize)
	rowLevel, rowCell := e.table.Inverse(row)

	for _, rc := range e.entries[row] {
		width := (rc.ColStop - rc.ColStart) * e.desc.T()
		block := ws.block.View().Window(0, e.elemSize, 0, width)
		entries := ws.entries[:0]

		col := 0
		for c := rc.ColStart; c < rc.ColStop; c++ {
			colLevel, colCell := e.table.Inverse(c)
			xCol := x.Sub(c*e.elemSize, (c+1)*e.elemSize)
			for t := 0; t < e.desc.T(); t++ {
				ops := make([]tensor.MatrixView[float64], e.d)
				for dd := 0; dd < e.d; dd++ {
					ri := grid.Idx1D(rowLevel[dd], rowCell[dd])
					ci := grid.Idx1D(colLevel[dd], colCell[dd])
					full := e.desc.Coefficient(t, dd)
					ops[dd] = full.Window(ri*e.degree, (ri+1)*e.degree, ci*e.degree, (ci+1)*e.degree)
				}
				entries = append(entries, kronmult.Operands[float64]{Ops: ops, X: xCol, Y: block.Col(col)})
				col++
			}
		}

		kronmult.BuildBatches[float64](entries, e.degree, e.d, e.maxWorkers)

		reduce.Row[float64](ws.partial.View(), block, e.ones.Sub(0, width))
		for i := 0; i < e.elemSize; i++ {
			update.Set(i, update.At(i)+ws.partial.At(i))
		}
	}
}

// cellMidpoint returns element e's cell midpoint along dimension dd.
func cellMidpoint(desc *pde.Descriptor, table *grid.Table, e, dd int) float64 {
	levels, cells := table.Inverse(e)
	dim := desc.Dims[dd]
	cellCount := 1
	if levels[dd] > 0 {
		cellCount = 1 << uint(levels[dd]-1)
	}
	width := (dim.Max - dim.Min) / float64(cellCount)
	return dim.Min + (float64(cells[dd])+0.5)*width
}

// InitialCondition projects each dimension's InitialCondition (or the
// constant 1 where none is given) onto the degree-0 coefficient of every
// element, evaluated at the element's cell midpoint. This is a coarse
// nodal approximation, not a true multiwavelet L2 projection of the
// initial data; a production solver would quadrature-project each
// element's full degree-length coefficient vector before applying the
// hierarchical surplus transform.
func InitialCondition(desc *pde.Descriptor, table *grid.Table, degree int) *tensor.Vector[float64] {
	d := desc.D()
	elemSize := pow(degree, d)
	x0 := tensor.NewVector[float64](table.Size() * elemSize)

	for e := 0; e < table.Size(); e++ {
		v := 1.0
		for dd := 0; dd < d; dd++ {
			if ic := desc.Dims[dd].InitialCondition; ic != nil {
				v *= ic(cellMidpoint(desc, table, e, dd), 0)
			}
		}
		x0.Set(e*elemSize, v)
	}
	return x0
}

// AddSource adds a separable Source's contribution at time t into the
// degree-0 coefficient of every element's block in out: Source.Time(t)
// times the product of each dimension's spatial function evaluated at the
// element's cell midpoint, the same nodal approximation InitialCondition
// uses.
func AddSource(desc *pde.Descriptor, table *grid.Table, degree int, src pde.Source, t float64, out tensor.VectorView[float64]) {
	d := desc.D()
	elemSize := pow(degree, d)
	timeVal := 1.0
	if src.Time != nil {
		timeVal = src.Time(t)
	}
	for e := 0; e < table.Size(); e++ {
		v := timeVal
		for dd := 0; dd < d && dd < len(src.Spatial); dd++ {
			if f := src.Spatial[dd]; f != nil {
				v *= f(cellMidpoint(desc, table, e, dd), t)
			}
		}
		idx := e * elemSize
		out.Set(idx, out.At(idx)+v)
	}
}

func pow(base, exp int) int {
	r := 1
	for i := 0; i < exp; i++ {
		r *= base
	}
	return r
}
