package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/statusmap"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of statusmap",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "statusmap version %s\n", strings.TrimSpace(statusmap.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
