package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/df07/go-bvh-raytracer/pkg/scene"
)

var scenesDir string

var scenesCmd = &cobra.Command{
	Use:   "scenes",
	Short: "List built-in scenes and YAML scene files",
	Args:  cobra.NoArgs,
	RunE:  runScenes,
}

func init() {
	scenesCmd.Flags().StringVar(&scenesDir, "scenes-dir", "scenes", "Directory searched for YAML scenes")
	rootCmd.AddCommand(scenesCmd)
}

func runScenes(cmd *cobra.Command, args []string) error {
	response, err := scene.ListAllScenes(scenesDir)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, group := range response.Groups {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "%s:\n", group.Name)
		for _, info := range group.Scenes {
			fmt.Fprintf(out, "  %-20s %s", info.ID, info.DisplayName)
			if info.Description != "" {
				fmt.Fprintf(out, " - %s", info.Description)
			}
			fmt.Fprintln(out)
		}
	}
	return nil
}
