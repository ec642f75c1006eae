package search

import (
	goimage "image"
	"math"

	"reverse-image-search/internal/image"

	"gocv.io/x/gocv"
)

// Resizer scales a buffer to an exact size.
type Resizer interface {
	Resize(src *image.Buffer, size goimage.Point) (*image.Buffer, error)
}

// AreaResizer resizes with OpenCV's pixel-area relation, which averages
// source pixels when shrinking and avoids aliasing.
type AreaResizer struct{}

// Resize implements Resizer.
func (AreaResizer) Resize(src *image.Buffer, size goimage.Point) (*image.Buffer, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	if size.X <= 0 || size.Y <= 0 {
		return nil, ErrInvalidImage
	}

	mat, err := src.ToMat()
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	small := gocv.NewMat()
	defer small.Close()
	gocv.Resize(mat, &small, size, 0, 0, gocv.InterpolationArea)

	return image.FromMat(small)
}

// DownscaleTarget returns the comparison shape for a query of the given
// size: targetWidth wide, with the height following the query's aspect
// ratio (rounded, at least one row).
func DownscaleTarget(width, height, targetWidth int) goimage.Point {
	h := int(math.Round(float64(targetWidth) * float64(height) / float64(width)))
	if h < 1 {
		h = 1
	}
	return goimage.Point{X: targetWidth, Y: h}
}
