// Copyright: This file is part of implindex, released under https://github.com/korrel8r/implindex/blob/main/LICENSE

package main

import (
	"os"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the load report: registrar state, load order and pending contributions.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		l := load()
		newPrinter(os.Stdout).Print(l.Report)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
