package dump

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itohio/kronsolve/internal/tensor"
)

func TestMatrixRoundTrip(t *testing.T) {
	log := zerolog.Nop()
	m := tensor.NewMatrix[float64](2, 3)
	for j := 0; j < 3; j++ {
		for i := 0; i < 2; i++ {
			m.Set(i, j, float64(i)*3.5+float64(j)*1.25)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, WriteMatrix[float64](&buf, m.View(), log))

	got, err := ReadMatrix[float64](strings.NewReader(buf.String()), log)
	require.NoError(t, err)
	require.Equal(t, m.Rows(), got.Rows())
	require.Equal(t, m.Cols(), got.Cols())
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			assert.InDelta(t, m.At(i, j), got.At(i, j), 1e-10)
		}
	}
}

func TestVectorRoundTrip(t *testing.T) {
	log := zerolog.Nop()
	v := tensor.NewVector[float64](4)
	for i := 0; i < 4; i++ {
		v.Set(i, float64(i)*0.333)
	}
	var buf bytes.Buffer
	require.NoError(t, WriteVector[float64](&buf, v.View(), log))

	got, err := ReadVector[float64](strings.NewReader(buf.String()), log)
	require.NoError(t, err)
	require.Equal(t, v.Size(), got.Size())
	for i := 0; i < v.Size(); i++ {
		assert.InDelta(t, v.At(i), got.At(i), 1e-10)
	}
}

func TestReadMatrixMalformedValue(t *testing.T) {
	log := zerolog.Nop()
	_, err := ReadMatrix[float64](strings.NewReader("1 2 notanumber\n"), log)
	assert.Error(t, err)
}

func TestReadMatrixRaggedRowsError(t *testing.T) {
	log := zerolog.Nop()
	_, err := ReadMatrix[float64](strings.NewReader("1 2 3\n4 5\n"), log)
	assert.Error(t, err)
}
