/*
Copyright 2024 topo-configgen contributors
*/

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nodeforge/topo-configgen/pkg/cli"
	"github.com/nodeforge/topo-configgen/pkg/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the topo-configgen build version",
	Run: func(cmd *cobra.Command, args []string) {
		info := version.Get()
		fmt.Printf("topo-configgen %s (%s, %s)\n", info.Version, info.GoVersion, info.Platform)
		if cli.RuntimeTimestamp != "" {
			fmt.Printf("started %s\n", cli.RuntimeTimestamp)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
