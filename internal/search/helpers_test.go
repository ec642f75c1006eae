package search

import (
	goimage "image"
	"image/color"

	"reverse-image-search/internal/image"
)

var (
	red   = color.RGBA{R: 255, A: 255}
	green = color.RGBA{G: 255, A: 255}
	blue  = color.RGBA{B: 255, A: 255}
)

func solid(width, height int, c color.RGBA) *image.Buffer {
	buf := image.NewBuffer(width, height)
	buf.Fill(c)
	return buf
}

func gray(width, height int, v uint8) *image.Buffer {
	return solid(width, height, color.RGBA{R: v, G: v, B: v, A: 255})
}

// gradient fills a buffer with a deterministic pattern that differs per channel.
func gradient(width, height, seed int) *image.Buffer {
	buf := image.NewBuffer(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			buf.Set(x, y, color.RGBA{
				R: uint8((x*7 + seed) % 256),
				G: uint8((y*11 + seed*3) % 256),
				B: uint8((x*y + seed*5) % 256),
				A: 255,
			})
		}
	}
	return buf
}

// recordingResizer wraps a Resizer and remembers every requested and produced size.
type recordingResizer struct {
	next      Resizer
	requested []goimage.Point
	produced  []goimage.Point
}

func (r *recordingResizer) Resize(src *image.Buffer, size goimage.Point) (*image.Buffer, error) {
	r.requested = append(r.requested, size)
	out, err := r.next.Resize(src, size)
	if err == nil {
		r.produced = append(r.produced, out.Size())
	}
	return out, err
}

func white() color.RGBA {
	return color.RGBA{R: 255, G: 255, B: 255, A: 255}
}
