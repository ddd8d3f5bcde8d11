package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/sceneswap"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of sceneswap",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("sceneswap version %s\n", strings.TrimSpace(sceneswap.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
