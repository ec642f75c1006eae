package main

import (
	"fmt"
	"image/png"
	"os"

	"reverse-image-search/internal/image"
	"reverse-image-search/internal/search"
	"reverse-image-search/pkg/colorutil"

	"github.com/spf13/cobra"
)

func newPadCmd() *cobra.Command {
	var (
		in, out string
		ratio   float64
		fill    string
	)

	cmd := &cobra.Command{
		Use:   "pad",
		Short: "Pad an image with solid borders to a width/height ratio",
		RunE: func(cmd *cobra.Command, args []string) error {
			fillColor, err := colorutil.ParseHex(fill)
			if err != nil {
				return err
			}

			buf, err := image.Load(in)
			if err != nil {
				return err
			}

			padded, err := search.Pad(buf, ratio, fillColor)
			if err != nil {
				return err
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("failed to create output: %w", err)
			}
			if err := png.Encode(f, padded.ToRGBA()); err != nil {
				f.Close()
				return fmt.Errorf("failed to encode output: %w", err)
			}
			if err := f.Close(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %dx%d -> %dx%d\n", out, buf.Width, buf.Height, padded.Width, padded.Height)
			return nil
		},
	}

	cmd.Flags().StringVarP(&in, "in", "i", "", "input image")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output PNG")
	cmd.Flags().Float64Var(&ratio, "ratio", 300.0/220.0, "target width/height ratio")
	cmd.Flags().StringVar(&fill, "fill", "#D3D3D3", "border color")
	_ = cmd.MarkFlagRequired("in")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}
