package screen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShapiroWilkRejectsSmallSamples(t *testing.T) {
	_, _, err := ShapiroWilk([]float64{1, 2})
	assert.ErrorIs(t, err, ErrSampleTooSmall)
}

func TestShapiroWilkRejectsConstantSample(t *testing.T) {
	_, _, err := ShapiroWilk([]float64{5, 5, 5, 5})
	assert.ErrorIs(t, err, ErrZeroRange)
}

// Royston (1995) worked example: male birth weights. The sample is
// right-skewed; the published result is W near 0.83 with p well under 0.05.
func TestShapiroWilkRoystonExample(t *testing.T) {
	sample := []float64{148, 154, 158, 160, 161, 162, 166, 170, 182, 195, 236}

	w, p, err := ShapiroWilk(sample)
	require.NoError(t, err)

	assert.Greater(t, w, 0.7)
	assert.Less(t, w, 0.9)
	assert.Less(t, p, 0.05)
}

func TestShapiroWilkAcceptsNormalLookingSample(t *testing.T) {
	// Symmetric, bell-shaped sample: roughly the normal order statistics
	// of a 20-point draw. W should be close to 1 and p far above 0.05.
	sample := []float64{
		-1.87, -1.40, -1.13, -0.92, -0.74, -0.59, -0.45, -0.31, -0.19, -0.06,
		0.06, 0.19, 0.31, 0.45, 0.59, 0.74, 0.92, 1.13, 1.40, 1.87,
	}

	w, p, err := ShapiroWilk(sample)
	require.NoError(t, err)

	assert.Greater(t, w, 0.95)
	assert.Greater(t, p, 0.05)
}

func TestShapiroWilkFlagsExtremeOutlier(t *testing.T) {
	sample := []float64{1.0, 1.1, 0.9, 1.05, 0.95, 1.02, 0.98, 1.03, 0.97, 25.0}

	w, p, err := ShapiroWilk(sample)
	require.NoError(t, err)

	assert.Less(t, w, 0.6)
	assert.Less(t, p, 0.01)
}

func TestShapiroWilkStatisticBounded(t *testing.T) {
	samples := [][]float64{
		{1, 2, 3},
		{-4, 0, 3, 9},
		{0.1, 0.2, 0.35, 0.7, 1.4, 2.8},
	}

	for _, sample := range samples {
		w, p, err := ShapiroWilk(sample)
		require.NoError(t, err)
		assert.Greater(t, w, 0.0)
		assert.LessOrEqual(t, w, 1.0)
		assert.GreaterOrEqual(t, p, 0.0)
		assert.LessOrEqual(t, p, 1.0)
	}
}
