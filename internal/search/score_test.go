package search

import (
	"testing"

	"reverse-image-search/internal/image"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScore_IdenticalIsZero(t *testing.T) {
	buf := gradient(17, 9, 3)
	for _, useColor := range []bool{true, false} {
		score, err := Score(buf, buf.Clone(), useColor)
		require.NoError(t, err)
		assert.Zero(t, score, "useColor=%v", useColor)
	}
}

func TestScore_Symmetric(t *testing.T) {
	a := gradient(32, 16, 1)
	b := gradient(32, 16, 42)
	for _, useColor := range []bool{true, false} {
		ab, err := Score(a, b, useColor)
		require.NoError(t, err)
		ba, err := Score(b, a, useColor)
		require.NoError(t, err)
		assert.Equal(t, ab, ba, "useColor=%v", useColor)
		assert.Greater(t, ab, 0.0)
	}
}

func TestScore_DividesByPixelsNotChannels(t *testing.T) {
	black := gray(2, 2, 0)
	dim := gray(2, 2, 10)

	colorScore, err := Score(black, dim, true)
	require.NoError(t, err)
	assert.Equal(t, 300.0, colorScore)

	grayScore, err := Score(black, dim, false)
	require.NoError(t, err)
	assert.Equal(t, 100.0, grayScore)
}

func TestScore_GrayUsesLuma(t *testing.T) {
	// Pure red and pure green have different luma, so they differ in gray mode too.
	score, err := Score(solid(4, 4, red), solid(4, 4, green), false)
	require.NoError(t, err)
	assert.Greater(t, score, 0.0)
}

func TestScore_DimensionMismatch(t *testing.T) {
	_, err := Score(gray(4, 4, 0), gray(4, 5, 0), true)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestScore_InvalidImage(t *testing.T) {
	_, err := Score(&image.Buffer{}, gray(1, 1, 0), true)
	assert.ErrorIs(t, err, ErrInvalidImage)

	_, err = Score(gray(1, 1, 0), nil, false)
	assert.ErrorIs(t, err, ErrInvalidImage)
}
