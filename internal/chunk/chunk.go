// Package chunk partitions the (row-element, connected-element) coupling
// set into memory-budgeted element_chunks, and sizes the per-rank
// workspaces from the resulting chunk statistics. Grounded on the
// teacher's style of small, precondition-panicking value constructors
// (pkg/core/math/primitive/matrix.go), generalized to the spec's greedy
// column-range partitioning since the teacher has no direct counterpart.
package chunk

import "fmt"

// RowCoupling names a contiguous range of connected column-element
// indices [ColStart, ColStop) for a single row-element.
type RowCoupling struct {
	Row               int
	ColStart, ColStop int
}

// Chunk is a mapping from a set of row-elements to, for each, a
// contiguous connected-column range, sized to fit a memory budget.
type Chunk struct {
	Rows []RowCoupling
}

// connected reports the total connected-column count in this chunk.
func (c Chunk) connected() int {
	n := 0
	for _, r := range c.Rows {
		n += r.ColStop - r.ColStart
	}
	return n
}

// Build partitions couplings into chunks such that, per chunk,
// elemSize*(distinct connected columns) <= batchInputLimit and
// elemSize*termCount*(total connected columns) <= reductionSpaceLimit.
// Splits only at a connected-range boundary of the last row in a chunk;
// never splits a single (row, column) coupling. Panics if either budget
// is too small to hold even one column.
func Build(couplings []RowCoupling, elemSize, termCount, batchInputLimit, reductionSpaceLimit int) []Chunk {
	if elemSize <= 0 || termCount <= 0 {
		panic("chunk: elemSize and termCount must be positive")
	}
	maxDistinct := batchInputLimit / elemSize
	maxConnected := reductionSpaceLimit / (elemSize * termCount)
	limit := maxDistinct
	if maxConnected < limit {
		limit = maxConnected
	}
	if limit <= 0 {
		panic(fmt.Sprintf("chunk: memory budget too small for a single column: batchInputLimit=%d reductionSpaceLimit=%d elemSize=%d termCount=%d", batchInputLimit, reductionSpaceLimit, elemSize, termCount))
	}

	var chunks []Chunk
	var cur Chunk
	curCount := 0

	for _, rc := range couplings {
		start := rc.ColStart
		for start < rc.ColStop {
			if curCount >= limit {
				chunks = append(chunks, cur)
				cur = Chunk{}
				curCount = 0
			}
			remaining := limit - curCount
			take := rc.ColStop - start
			if take > remaining {
				take = remaining
			}
			cur.Rows = append(cur.Rows, RowCoupling{Row: rc.Row, ColStart: start, ColStop: start + take})
			curCount += take
			start += take
		}
	}
	if len(cur.Rows) > 0 {
		chunks = append(chunks, cur)
	}
	return chunks
}

// Workspaces are the preallocated per-rank scratch-buffer sizes derived
// from a chunk set's statistics.
type Workspaces struct {
	BatchInput        int
	ReductionSpace    int
	BatchIntermediate int
	UnitVector        int
}

// SizeWorkspaces computes the workspace sizes required to process the
// largest chunk in chunks, for a problem with the given per-element size,
// term count, and dimension count.
func SizeWorkspaces(chunks []Chunk, elemSize, termCount, d int) Workspaces {
	maxConnected := 0
	for _, c := range chunks {
		if n := c.connected(); n > maxConnected {
			maxConnected = n
		}
	}
	reductionSpace := elemSize * termCount * maxConnected
	intermediateFactor := d - 1
	if intermediateFactor > 2 {
		intermediateFactor = 2
	}
	if intermediateFactor < 0 {
		intermediateFactor = 0
	}
	return Workspaces{
		BatchInput:        elemSize * maxConnected,
		ReductionSpace:    reductionSpace,
		BatchIntermediate: reductionSpace * intermediateFactor,
		UnitVector:        termCount * maxConnected,
	}
}
