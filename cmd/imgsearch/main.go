// Command imgsearch finds the image in a folder closest to a query image.
package main

import (
	"fmt"
	"log"
	"os"

	"reverse-image-search/internal/version"

	"github.com/spf13/cobra"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "imgsearch",
		Short: "Reverse image search over a folder",
		Long: `imgsearch compares a query image against every PNG or JPEG in a folder
and reports the closest one, using the mean squared error of small
downscaled copies.`,
		Version:       version.Full(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("config", "", "YAML config file")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log progress to stderr")

	rootCmd.AddCommand(
		newMatchCmd(),
		newPadCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "imgsearch %s\n", version.Full())
		},
	}
}
