// Copyright: This file is part of implindex, released under https://github.com/korrel8r/implindex/blob/main/LICENSE

package main

import (
	"os"

	"github.com/korrel8r/implindex/internal/pkg/must"
	"github.com/korrel8r/implindex/internal/pkg/text"
	"github.com/korrel8r/implindex/pkg/implementors"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list [CAPABILITY]",
	Short: "List capabilities, or the units of CAPABILITY.",
	Long: `List capabilities with the number of units and implementors for each.
With a CAPABILITY argument, list its units with the number of implementors for each.`,
	Args: cobra.RangeArgs(0, 1),
	Run: func(cmd *cobra.Command, args []string) {
		l := load()
		p := text.NewPrinter(l.Registry)
		switch len(args) {
		case 0:
			p.ListCapabilities(os.Stdout)
		case 1:
			c := implementors.Capability(args[0])
			_ = must.Must1(l.Index().Units(c))
			p.ListUnits(os.Stdout, c, l.Exclude...)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
