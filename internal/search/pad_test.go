package search

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reverse-image-search/internal/image"
)

var frameGray = color.RGBA{R: 211, G: 211, B: 211, A: 255}

func TestPad_MatchingRatioReturnsInput(t *testing.T) {
	buf := gradient(40, 20, 0)
	out, err := Pad(buf, 2.0, frameGray)
	require.NoError(t, err)
	assert.Same(t, buf, out)
}

func TestPad_WideImageGetsRows(t *testing.T) {
	buf := solid(100, 50, red)
	out, err := Pad(buf, 1.0, frameGray)
	require.NoError(t, err)
	require.Equal(t, 100, out.Width)
	require.Equal(t, 100, out.Height)

	for _, y := range []int{0, 24, 75, 99} {
		assert.Equal(t, frameGray, out.At(50, y), "row %d", y)
	}
	for _, y := range []int{25, 50, 74} {
		assert.Equal(t, red, out.At(0, y), "row %d", y)
		assert.Equal(t, red, out.At(99, y), "row %d", y)
	}
}

func TestPad_TallImageGetsColumns(t *testing.T) {
	buf := solid(50, 100, blue)
	out, err := Pad(buf, 1.0, frameGray)
	require.NoError(t, err)
	require.Equal(t, 100, out.Width)
	require.Equal(t, 100, out.Height)

	for _, x := range []int{0, 24, 75, 99} {
		assert.Equal(t, frameGray, out.At(x, 50), "column %d", x)
	}
	for _, x := range []int{25, 74} {
		assert.Equal(t, blue, out.At(x, 0), "column %d", x)
	}
}

func TestPad_KeepsContentCentered(t *testing.T) {
	buf := gradient(30, 10, 9)
	out, err := Pad(buf, 1.0, frameGray)
	require.NoError(t, err)
	require.Equal(t, 30, out.Height)

	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			require.Equal(t, buf.At(x, y), out.At(x, y+10))
		}
	}
}

func TestPad_TruncatesPadding(t *testing.T) {
	// 10x7: new height int(10/1) = 10, padding int(3/2) = 1 on each side.
	out, err := Pad(gray(10, 7, 50), 1.0, frameGray)
	require.NoError(t, err)
	assert.Equal(t, 10, out.Width)
	assert.Equal(t, 9, out.Height)
}

func TestPad_SquareToWideFrame(t *testing.T) {
	out, err := Pad(gray(50, 50, 0), 2.0, frameGray)
	require.NoError(t, err)
	assert.Equal(t, 50, out.Height)
	assert.Equal(t, 100, out.Width)
	assert.Equal(t, frameGray, out.At(24, 25))
	assert.Equal(t, frameGray, out.At(75, 25))
}

func TestPad_Errors(t *testing.T) {
	_, err := Pad(&image.Buffer{Width: 0, Height: 10}, 1.0, frameGray)
	assert.ErrorIs(t, err, ErrInvalidImage)

	_, err = Pad(gray(4, 4, 0), 0, frameGray)
	assert.ErrorIs(t, err, ErrInvalidRatio)

	_, err = Pad(gray(4, 4, 0), -1.5, frameGray)
	assert.ErrorIs(t, err, ErrInvalidRatio)
}
