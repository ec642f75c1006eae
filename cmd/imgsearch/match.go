package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"

	"reverse-image-search/internal/catalog"
	"reverse-image-search/internal/config"
	"reverse-image-search/internal/image"
	"reverse-image-search/internal/search"

	"github.com/spf13/cobra"
)

// matchOutput is the --json form of a match.
type matchOutput struct {
	Query   string  `json:"query"`
	Match   string  `json:"match"`
	Index   int     `json:"index"`
	Score   float64 `json:"score"`
	Scanned int     `json:"scanned"`
	Total   int     `json:"total"`
	Skipped int     `json:"skipped"`
}

func newMatchCmd() *cobra.Command {
	var (
		queryPath string
		dir       string
		gray      bool
		threshold float64
		width     int
		jsonOut   bool
	)

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Find the closest image in a folder",
		Example: `  imgsearch match --query cat.png --dir ~/Pictures
  imgsearch match -q cat.png -d ~/Pictures --gray --threshold 0 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			opts := cfg.SearchOptions()
			if cmd.Flags().Changed("gray") {
				opts.UseColor = !gray
			}
			if cmd.Flags().Changed("threshold") {
				opts.EarlyExitThreshold = threshold
			}
			if cmd.Flags().Changed("width") {
				if width <= 0 {
					return fmt.Errorf("--width must be positive, got %d", width)
				}
				opts.TargetWidth = width
			}

			query, err := image.Load(queryPath)
			if err != nil {
				return err
			}

			logf(cmd, "Loading images from %s...", dir)
			set, err := catalog.Load(dir, cfg.Catalog.Extensions)
			if err != nil {
				return err
			}

			logf(cmd, "Searching %d images...", set.Len())
			result, err := search.FindBestMatch(query, set.Images, opts)
			if err != nil {
				return fmt.Errorf("search %s: %w", dir, err)
			}
			logf(cmd, "Lowest difference: %g", result.Score)
			logf(cmd, "Image index: %d", result.Index)

			out := matchOutput{
				Query:   queryPath,
				Match:   set.Paths[result.Index],
				Index:   result.Index,
				Score:   result.Score,
				Scanned: result.Scanned,
				Total:   set.Len(),
				Skipped: len(set.Skipped),
			}
			return printMatch(cmd.OutOrStdout(), out, jsonOut)
		},
	}

	cmd.Flags().StringVarP(&queryPath, "query", "q", "", "query image")
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "folder of candidate images")
	cmd.Flags().BoolVar(&gray, "gray", false, "compare grayscale luma instead of color")
	cmd.Flags().Float64Var(&threshold, "threshold", search.DefaultEarlyExitThreshold, "stop at the first score below this (0 scans everything)")
	cmd.Flags().IntVar(&width, "width", search.DefaultTargetWidth, "downscaled comparison width")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print the result as JSON")
	_ = cmd.MarkFlagRequired("query")
	_ = cmd.MarkFlagRequired("dir")

	return cmd
}

func printMatch(w io.Writer, out matchOutput, jsonOut bool) error {
	if jsonOut {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	_, err := fmt.Fprintf(w, "%s\tindex=%d\tscore=%.2f\n", out.Match, out.Index, out.Score)
	return err
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}

// logf logs only with --verbose.
func logf(cmd *cobra.Command, format string, args ...interface{}) {
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		log.Printf(format, args...)
	}
}
