package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildContinuity1(t *testing.T) {
	desc, err := Build("continuity_1", 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, desc.D())
}

func TestBuildContinuity3(t *testing.T) {
	desc, err := Build("continuity_3", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, desc.D())
	assert.Equal(t, 3, desc.T())
}

func TestBuildUnknownPDEIsError(t *testing.T) {
	_, err := Build("not_a_real_pde", 1, 1)
	assert.ErrorIs(t, err, ErrUnknownPDE)
}

func TestBuildVlasovReturnsNotImplementedNotFallback(t *testing.T) {
	_, err := Build("vlasov_two_stream", 1, 1)
	assert.ErrorIs(t, err, ErrPDENotImplemented)
}

func TestBuildImpurity3dA(t *testing.T) {
	desc, err := Build("impurity_3d_A", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, desc.D())
}
