package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/skylark"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of skylark",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "skylark version %s\n", strings.TrimSpace(skylark.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
