package main

import (
	"github.com/aretw0/sceneswap/internal/cli"
	"github.com/spf13/cobra"
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <scene-file>",
	Short: "Replace tagged collision volumes and save the scene",
	Long: `Loads a scene dump (.tscn, .json or .yaml) produced by an asset import,
replaces every collision volume whose name ends with the hint tag by a trigger
volume, and saves the scene next to the source asset under the root's name.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		source, _ := cmd.Flags().GetString("source")
		reportPath, _ := cmd.Flags().GetString("report")
		metricsFile, _ := cmd.Flags().GetString("metrics-file")
		watch, _ := cmd.Flags().GetBool("watch")
		quiet, _ := cmd.Flags().GetBool("quiet")

		return cli.Execute(cli.ImportOptions{
			ScenePath:   args[0],
			SourcePath:  source,
			ConfigPath:  configPath,
			Overrides:   overrides(cmd),
			ReportPath:  reportPath,
			MetricsFile: metricsFile,
			Watch:       watch,
			Quiet:       quiet,
		})
	},
}

// overrides collects the config keys set explicitly on the command line.
func overrides(cmd *cobra.Command) map[string]any {
	out := make(map[string]any)
	flags := cmd.Flags()
	if flags.Changed("tag") {
		out["hint_tag"], _ = flags.GetString("tag")
	}
	if flags.Lookup("no-save") != nil && flags.Changed("no-save") {
		noSave, _ := flags.GetBool("no-save")
		out["save_as_tscn"] = !noSave
	}
	if flags.Lookup("debug") != nil && flags.Changed("debug") {
		out["debug_mode"], _ = flags.GetBool("debug")
	}
	if flags.Lookup("format") != nil && flags.Changed("format") {
		out["scene_format"], _ = flags.GetString("format")
	}
	if flags.Lookup("trigger-kind") != nil && flags.Changed("trigger-kind") {
		out["trigger_kind"], _ = flags.GetString("trigger-kind")
	}
	return out
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().Bool("no-save", false, "Transform only, do not write the scene file")
	importCmd.Flags().Bool("debug", true, "Log every replacement and the resolved save path")
	importCmd.Flags().String("format", "", "Scene file format: tscn, json or yaml (default \"tscn\")")
	importCmd.Flags().String("trigger-kind", "", "Kind given to replacement nodes (default \"Area3D\")")
	importCmd.Flags().String("source", "", "Source asset path; the scene is saved next to it (default: the scene file; required when the result would overwrite it)")
	importCmd.Flags().String("report", "", "Write the markdown import report to this file")
	importCmd.Flags().String("metrics-file", "", "Write Prometheus metrics in textfile format to this file")
	importCmd.Flags().BoolP("watch", "w", false, "Import again whenever the scene file changes")
	importCmd.Flags().BoolP("quiet", "q", false, "Print nothing but errors")
}
