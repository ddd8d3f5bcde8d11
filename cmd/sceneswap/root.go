package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sceneswap",
	Short: "sceneswap turns tagged collision volumes into trigger volumes",
	Long: `sceneswap post-processes imported 3D scenes: nodes whose name ends with the
hint tag and whose kind is a collision volume are replaced by trigger volumes,
and the result is saved as a scene file next to the source asset.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Config file (default ~/.config/sceneswap/config.yaml)")
	rootCmd.PersistentFlags().String("tag", "", "Hint tag marking nodes for replacement (default \"_CM\")")
}
