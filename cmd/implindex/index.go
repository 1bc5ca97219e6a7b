// Copyright: This file is part of implindex, released under https://github.com/korrel8r/implindex/blob/main/LICENSE

package main

import (
	"os"

	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index [SOURCE...]",
	Short: "Load sources and print the whole index.",
	Long: `Load sources and print the whole index.
Each SOURCE is a rustdoc output directory, an implementor script file or an http(s) URL of a script.
SOURCE arguments are loaded after sources from --source and the configuration.`,
	Run: func(cmd *cobra.Command, args []string) {
		l := load(args...)
		newPrinter(os.Stdout).Print(l.Index().Snapshot())
	},
}

func init() {
	rootCmd.AddCommand(indexCmd)
}
