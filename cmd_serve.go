package main

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/df07/go-bvh-raytracer/web/server"
)

var serveConfig server.Config

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Long:  "Serve renders, scene listings and pixel inspection over HTTP until interrupted.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return server.NewServer(serveConfig).Start(ctx)
	},
}

func init() {
	flags := serveCmd.Flags()
	flags.IntVar(&serveConfig.Port, "port", 8080, "Port to listen on")
	flags.Int64Var(&serveConfig.MaxRenders, "max-renders", 2, "Renders allowed to run at once")
	flags.IntVar(&serveConfig.Workers, "workers", 0, "Workers per render (0 = number of CPUs)")
	flags.StringVar(&serveConfig.ScenesDir, "scenes-dir", "scenes", "Directory searched for YAML scenes")

	rootCmd.AddCommand(serveCmd)
}
