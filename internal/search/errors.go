package search

import (
	"errors"

	"reverse-image-search/internal/image"
)

var (
	// ErrInvalidImage is returned when a buffer has non-positive width or height.
	ErrInvalidImage = image.ErrInvalidImage

	// ErrEmptyCandidateSet is returned when a search is given no candidates.
	ErrEmptyCandidateSet = errors.New("empty candidate set")

	// ErrDimensionMismatch is returned when the scorer gets buffers of different shapes.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrInvalidRatio is returned when Pad gets a non-positive target ratio.
	ErrInvalidRatio = errors.New("invalid target ratio")
)
