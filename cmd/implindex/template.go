// Copyright: This file is part of implindex, released under https://github.com/korrel8r/implindex/blob/main/LICENSE

package main

import (
	"io"
	"os"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/korrel8r/implindex/internal/pkg/must"
	"github.com/spf13/cobra"
)

var templateCmd = &cobra.Command{
	Use:   "template [--file FILE|--template STRING]",
	Short: `Apply a Go template to the loaded index.`,
	Long: `Apply a Go template to the loaded index.
Reads stdin by default if neither --file nor --template is provided.

The template data has fields .Report and .Exclude, and the methods .Status, .Pending and .Index.
The index has methods .Capabilities, .Summaries, .Units, .Entries and .Snapshot.
Sprig functions are available, see https://masterminds.github.io/sprig/

Example:
  {{range .Index.Summaries}}{{.Capability}}: {{.Units}}{{"\n"}}{{end}}`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if *templateString == "" { // Read from file
			switch *templateFile {
			case "", "-":
				*templateString = string(must.Must1(io.ReadAll(os.Stdin)))
			default:
				*templateString = string(must.Must1(os.ReadFile(*templateFile)))
			}
		}
		l := load()
		t := template.Must(template.New("template").Funcs(sprig.TxtFuncMap()).Parse(*templateString))
		must.Must(t.Execute(os.Stdout, l))
	},
}

var templateFile, templateString *string

func init() {
	templateFile = templateCmd.Flags().StringP("file", "f", "", "read template from file")
	templateString = templateCmd.Flags().StringP("template", "t", "", "use template string")
	rootCmd.AddCommand(templateCmd)
}
