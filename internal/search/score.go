package search

import (
	"fmt"

	"reverse-image-search/internal/image"

	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/floats"
)

// Score returns the mean squared error between two equally sized buffers.
// With useColor false both are reduced to luma first. The squared
// differences are summed over all samples and divided by the pixel count
// only, so colour scores are not averaged over channels.
func Score(a, b *image.Buffer, useColor bool) (float64, error) {
	if err := a.Validate(); err != nil {
		return 0, err
	}
	if err := b.Validate(); err != nil {
		return 0, err
	}
	if !a.SameSize(b) {
		return 0, fmt.Errorf("%w: %dx%d vs %dx%d", ErrDimensionMismatch, a.Width, a.Height, b.Width, b.Height)
	}

	sa, err := samples(a, useColor)
	if err != nil {
		return 0, err
	}
	sb, err := samples(b, useColor)
	if err != nil {
		return 0, err
	}

	floats.Sub(sa, sb)
	sum := floats.Dot(sa, sa)
	return sum / float64(a.Width*a.Height), nil
}

// samples returns the buffer's samples as floats, converted to luma when
// colour is not wanted.
func samples(b *image.Buffer, useColor bool) ([]float64, error) {
	pix := b.Pix
	if !useColor {
		gray, err := luma(b)
		if err != nil {
			return nil, err
		}
		pix = gray
	}

	out := make([]float64, len(pix))
	for i, v := range pix {
		out[i] = float64(v)
	}
	return out, nil
}

// luma converts a BGR buffer to one 8-bit gray sample per pixel.
func luma(b *image.Buffer) ([]uint8, error) {
	mat, err := b.ToMat()
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(mat, &gray, gocv.ColorBGRToGray)

	return gray.ToBytes(), nil
}
