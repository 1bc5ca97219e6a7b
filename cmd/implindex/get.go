// Copyright: This file is part of implindex, released under https://github.com/korrel8r/implindex/blob/main/LICENSE

package main

import (
	"os"

	"github.com/korrel8r/implindex/internal/pkg/must"
	"github.com/korrel8r/implindex/pkg/implementors"
	"github.com/korrel8r/implindex/pkg/rest"
	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get CAPABILITY [UNIT]",
	Short: "Print the implementors of CAPABILITY, or only those declared by UNIT.",
	Long: `Print the implementors of CAPABILITY grouped by unit, skipping units named by --exclude.
With a UNIT argument print only the implementor list of UNIT, which may be empty.
It is an error if UNIT made no contribution to CAPABILITY.`,
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		l := load()
		c := implementors.Capability(args[0])
		p := newPrinter(os.Stdout)
		switch len(args) {
		case 1:
			entries := must.Must1(l.Index().Entries(c, l.Exclude...))
			p.Print(rest.Capability{Capability: c, Entries: entries})
		case 2:
			p.Print(must.Must1(l.Index().ImplementorsErr(c, implementors.Unit(args[1]))))
		}
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
}
