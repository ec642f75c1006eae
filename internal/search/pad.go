package search

import (
	"fmt"
	"image/color"

	"reverse-image-search/internal/image"

	"gocv.io/x/gocv"
)

// Pad adds solid borders so the buffer's width/height ratio approaches
// targetRatio. Narrow images get columns on both sides, wide images get rows
// on top and bottom. Sizes are truncated, so the result may miss the target
// ratio by a pixel. If the ratio already matches, buf is returned as is.
func Pad(buf *image.Buffer, targetRatio float64, fill color.RGBA) (*image.Buffer, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}
	if targetRatio <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRatio, targetRatio)
	}

	ratio := buf.Ratio()
	if ratio == targetRatio {
		return buf, nil
	}

	var top, left int
	if ratio < targetRatio {
		newWidth := int(float64(buf.Height) * targetRatio)
		left = (newWidth - buf.Width) / 2
	} else {
		newHeight := int(float64(buf.Width) / targetRatio)
		top = (newHeight - buf.Height) / 2
	}

	src, err := buf.ToMat()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	dst := gocv.NewMat()
	defer dst.Close()

	fill.A = 255
	gocv.CopyMakeBorder(src, &dst, top, top, left, left, gocv.BorderConstant, fill)

	return image.FromMat(dst)
}
