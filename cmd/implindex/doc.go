// Copyright: This file is part of implindex, released under https://github.com/korrel8r/implindex/blob/main/LICENSE

package main

import (
	"time"

	"github.com/korrel8r/implindex/internal/pkg/must"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

func init() {
	docCmd := &cobra.Command{
		Use:    "doc",
		Short:  "Generate documentation",
		Hidden: true,
	}
	rootCmd.AddCommand(docCmd)

	docCmd.AddCommand(&cobra.Command{
		Use:   "man DIR",
		Short: "Generate man pages in directory DIR",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			now := time.Now()
			header := &doc.GenManHeader{Title: rootCmd.Name(), Section: "1", Date: &now, Source: "implindex " + rootCmd.Version}
			must.Must(doc.GenManTree(rootCmd, header, args[0]))
		},
	})

	docCmd.AddCommand(&cobra.Command{
		Use:   "markdown DIR",
		Short: "Generate markdown documentation in directory DIR",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			must.Must(doc.GenMarkdownTree(rootCmd, args[0]))
		},
	})
}
