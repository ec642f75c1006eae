package search

import (
	"fmt"
	goimage "image"

	"reverse-image-search/internal/image"
)

const (
	// DefaultEarlyExitThreshold stops the scan once a score drops below it.
	DefaultEarlyExitThreshold = 200.0

	// DefaultTargetWidth is the width both images are shrunk to before scoring.
	DefaultTargetWidth = 32
)

// Options controls a search.
type Options struct {
	UseColor           bool    // Compare all three channels instead of luma
	EarlyExitThreshold float64 // Stop once the best score is below this; <= 0 never stops early
	TargetWidth        int     // Downscaled width; height follows the query's ratio
	Resizer            Resizer // nil uses AreaResizer
}

// DefaultOptions returns colour comparison with the standard threshold and width.
func DefaultOptions() Options {
	return Options{
		UseColor:           true,
		EarlyExitThreshold: DefaultEarlyExitThreshold,
		TargetWidth:        DefaultTargetWidth,
		Resizer:            AreaResizer{},
	}
}

// Result describes the best candidate found.
type Result struct {
	Index   int           // Index into the candidate slice
	Score   float64       // Mean squared error of the winner; lower is closer
	Scanned int           // Candidates scored before the scan ended
	Target  goimage.Point // Shape every image was resized to
}

// FindBestMatch returns the candidate closest to query.
//
// Candidates are scored in order and the first one reaching the lowest score
// wins ties. As soon as the best score falls below opts.EarlyExitThreshold the
// remaining candidates are skipped. Every candidate is resized to the query's
// downscaled shape regardless of its own aspect ratio.
func FindBestMatch(query *image.Buffer, candidates []*image.Buffer, opts Options) (Result, error) {
	if len(candidates) == 0 {
		return Result{}, ErrEmptyCandidateSet
	}
	if err := query.Validate(); err != nil {
		return Result{}, fmt.Errorf("query: %w", err)
	}
	if opts.TargetWidth <= 0 {
		opts.TargetWidth = DefaultTargetWidth
	}
	if opts.Resizer == nil {
		opts.Resizer = AreaResizer{}
	}

	target := DownscaleTarget(query.Width, query.Height, opts.TargetWidth)
	small, err := opts.Resizer.Resize(query, target)
	if err != nil {
		return Result{}, fmt.Errorf("query: %w", err)
	}

	result := Result{Index: -1, Target: target}
	for i, cand := range candidates {
		if err := cand.Validate(); err != nil {
			return Result{}, fmt.Errorf("candidate %d: %w", i, err)
		}
		scaled, err := opts.Resizer.Resize(cand, target)
		if err != nil {
			return Result{}, fmt.Errorf("candidate %d: %w", i, err)
		}
		score, err := Score(small, scaled, opts.UseColor)
		if err != nil {
			return Result{}, fmt.Errorf("candidate %d: %w", i, err)
		}
		result.Scanned++

		if result.Index < 0 || score < result.Score {
			result.Index = i
			result.Score = score
		}
		if result.Score < opts.EarlyExitThreshold {
			break
		}
	}

	return result, nil
}
