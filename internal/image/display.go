package image

import (
	"image"

	"golang.org/x/image/draw"
)

// Fit scales the buffer to exactly width x height for display. The aspect
// ratio is not preserved; pad the buffer to the box ratio first.
func Fit(b *Buffer, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	if b == nil || b.Validate() != nil {
		return dst
	}
	src := b.ToRGBA()
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}
