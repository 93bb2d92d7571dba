package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/born-ml/fuser/fuser"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of fuser",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "fuser version %s\n", fuser.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
