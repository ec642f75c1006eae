// Package image provides the pixel buffer shared by the search core and its
// front ends, plus loading and display helpers.
package image

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// Channels is the number of samples per pixel in a Buffer.
const Channels = 3

// ErrInvalidImage is returned for buffers with no area or inconsistent storage.
var ErrInvalidImage = errors.New("invalid image")

// Buffer is an 8-bit, 3-channel image stored row-major with interleaved
// samples in BGR order (the OpenCV convention).
type Buffer struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewBuffer allocates a black buffer of the given size.
func NewBuffer(width, height int) *Buffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Buffer{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*Channels),
	}
}

// Validate reports ErrInvalidImage when the buffer has no area or its
// sample slice does not match its dimensions.
func (b *Buffer) Validate() error {
	if b == nil {
		return fmt.Errorf("%w: nil buffer", ErrInvalidImage)
	}
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidImage, b.Width, b.Height)
	}
	if len(b.Pix) != b.Width*b.Height*Channels {
		return fmt.Errorf("%w: %d samples for %dx%d", ErrInvalidImage, len(b.Pix), b.Width, b.Height)
	}
	return nil
}

// Size returns width and height as a point.
func (b *Buffer) Size() image.Point {
	return image.Point{X: b.Width, Y: b.Height}
}

// SameSize reports whether two buffers have identical dimensions.
func (b *Buffer) SameSize(o *Buffer) bool {
	return b.Width == o.Width && b.Height == o.Height
}

// Ratio returns width/height, or 0 for an empty buffer.
func (b *Buffer) Ratio() float64 {
	if b.Height == 0 {
		return 0
	}
	return float64(b.Width) / float64(b.Height)
}

func (b *Buffer) offset(x, y int) int {
	return (y*b.Width + x) * Channels
}

// At returns the pixel at (x, y). Out-of-range coordinates return black.
func (b *Buffer) At(x, y int) color.RGBA {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return color.RGBA{A: 255}
	}
	i := b.offset(x, y)
	return color.RGBA{R: b.Pix[i+2], G: b.Pix[i+1], B: b.Pix[i], A: 255}
}

// Set writes the pixel at (x, y). Out-of-range coordinates are ignored.
func (b *Buffer) Set(x, y int, c color.RGBA) {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return
	}
	i := b.offset(x, y)
	b.Pix[i] = c.B
	b.Pix[i+1] = c.G
	b.Pix[i+2] = c.R
}

// Fill sets every pixel to c.
func (b *Buffer) Fill(c color.RGBA) {
	for i := 0; i+2 < len(b.Pix); i += Channels {
		b.Pix[i] = c.B
		b.Pix[i+1] = c.G
		b.Pix[i+2] = c.R
	}
}

// Clone returns a deep copy.
func (b *Buffer) Clone() *Buffer {
	pix := make([]uint8, len(b.Pix))
	copy(pix, b.Pix)
	return &Buffer{Width: b.Width, Height: b.Height, Pix: pix}
}

// FromImage converts any image.Image to a Buffer. Alpha is dropped and the
// stored colour kept, so transparent pixels do not turn black.
func FromImage(img image.Image) *Buffer {
	bounds := img.Bounds()
	buf := NewBuffer(bounds.Dx(), bounds.Dy())

	for y := 0; y < buf.Height; y++ {
		row := y * buf.Width * Channels
		for x := 0; x < buf.Width; x++ {
			c := color.NRGBAModel.Convert(img.At(x+bounds.Min.X, y+bounds.Min.Y)).(color.NRGBA)
			i := row + x*Channels
			buf.Pix[i] = c.B
			buf.Pix[i+1] = c.G
			buf.Pix[i+2] = c.R
		}
	}
	return buf
}

// ToRGBA converts the buffer to an opaque *image.RGBA for display or encoding.
func (b *Buffer) ToRGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.Width, b.Height))
	for y := 0; y < b.Height; y++ {
		src := y * b.Width * Channels
		dst := y * img.Stride
		for x := 0; x < b.Width; x++ {
			s := src + x*Channels
			d := dst + x*4
			img.Pix[d+0] = b.Pix[s+2]
			img.Pix[d+1] = b.Pix[s+1]
			img.Pix[d+2] = b.Pix[s+0]
			img.Pix[d+3] = 255
		}
	}
	return img
}

// ToMat copies the buffer into a CV_8UC3 Mat. The caller must Close it.
func (b *Buffer) ToMat() (gocv.Mat, error) {
	if err := b.Validate(); err != nil {
		return gocv.NewMat(), err
	}
	return gocv.NewMatFromBytes(b.Height, b.Width, gocv.MatTypeCV8UC3, b.Pix)
}

// FromMat copies a CV_8UC3 Mat into a new Buffer.
func FromMat(mat gocv.Mat) (*Buffer, error) {
	if mat.Empty() {
		return nil, fmt.Errorf("%w: empty mat", ErrInvalidImage)
	}
	if mat.Type() != gocv.MatTypeCV8UC3 {
		return nil, fmt.Errorf("unsupported mat type %v", mat.Type())
	}
	buf := &Buffer{
		Width:  mat.Cols(),
		Height: mat.Rows(),
		Pix:    mat.ToBytes(),
	}
	if err := buf.Validate(); err != nil {
		return nil, err
	}
	return buf, nil
}
