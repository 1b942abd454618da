package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "raytracer",
	Short: "CPU path tracer with a BVH accelerated scene graph",
	Long: `raytracer renders built-in or YAML scenes with a tiled, multi-threaded path tracer.
Images are written as PNG or PPM, either from the command line or through the web server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// glog reads its settings from the Go flag set, already filled in by pflag
		if err := flag.CommandLine.Parse(nil); err != nil {
			return fmt.Errorf("while parsing log flags: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)
}

func main() {
	defer glog.Flush()

	if err := rootCmd.Execute(); err != nil {
		glog.Flush()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
