package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/gymnasion"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of gymnasion",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "gymnasion version %s\n", strings.TrimSpace(gymnasion.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
