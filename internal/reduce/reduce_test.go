package reduce

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/itohio/kronsolve/internal/tensor"
)

func TestRowAllOnesReduction(t *testing.T) {
	// T=2, connected=3, elem_size=4: reduction block is (4 x 6) filled
	// with ones; expected reduced value per element is T*connected*1 = 6.
	const elemSize, termCount, connected = 4, 2, 3
	width := termCount * connected

	block := tensor.NewMatrix[float64](elemSize, width)
	for j := 0; j < width; j++ {
		for i := 0; i < elemSize; i++ {
			block.Set(i, j, 1)
		}
	}
	ones := Ones[float64](width)
	update := tensor.NewVector[float64](elemSize)

	Row[float64](update.View(), block.View(), ones.View())

	for i := 0; i < elemSize; i++ {
		assert.Equal(t, float64(6), update.At(i))
	}
}

func TestRowShapeMismatchPanics(t *testing.T) {
	block := tensor.NewMatrix[float64](4, 6)
	ones := Ones[float64](5)
	update := tensor.NewVector[float64](4)
	assert.Panics(t, func() {
		Row[float64](update.View(), block.View(), ones.View())
	})
}

func TestOnesAllOne(t *testing.T) {
	v := Ones[float64](5)
	for i := 0; i < 5; i++ {
		assert.Equal(t, float64(1), v.At(i))
	}
}
