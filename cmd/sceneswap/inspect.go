package main

import (
	"github.com/aretw0/sceneswap/internal/cli"
	"github.com/aretw0/sceneswap/pkg/registry"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <scene-file>",
	Short: "Print the scene tree and what an import would do",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		mermaid, _ := cmd.Flags().GetBool("mermaid")
		return cli.RunInspect(cli.InspectOptions{
			ScenePath:  args[0],
			ConfigPath: configPath,
			Overrides:  overrides(cmd),
			Mermaid:    mermaid,
		}, registry.Default())
	},
}

func init() {
	inspectCmd.Flags().Bool("mermaid", false, "Print the tree as a Mermaid flowchart")
	rootCmd.AddCommand(inspectCmd)
}
