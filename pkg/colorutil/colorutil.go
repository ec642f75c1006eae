// Package colorutil provides shared color utilities.
package colorutil

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// FrameBackground is the light gray behind the image previews.
var FrameBackground = color.RGBA{R: 211, G: 211, B: 211, A: 255}

// ParseHex parses an opaque "#RRGGBB" color; the leading # is optional.
func ParseHex(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

// Hex formats c as "#RRGGBB", ignoring alpha.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}
