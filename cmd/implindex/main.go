// Copyright: This file is part of implindex, released under https://github.com/korrel8r/implindex/blob/main/LICENSE

// Command implindex loads rustdoc implementor scripts into an implementor index and queries it.
package main

import (
	"fmt"
	"os"

	"github.com/korrel8r/implindex/internal/pkg/enumflag"
	"github.com/korrel8r/implindex/internal/pkg/logging"
	"github.com/korrel8r/implindex/internal/pkg/must"
	"github.com/korrel8r/implindex/pkg/build"
	"github.com/korrel8r/implindex/pkg/config"
	"github.com/korrel8r/implindex/pkg/host"
	"github.com/spf13/cobra"
)

const configEnv = "IMPLINDEX_CONFIG"

var (
	rootCmd = &cobra.Command{
		Use:   "implindex",
		Short: "Collect and query trait implementors from rustdoc output",
		Long: `Collect and query trait implementors from rustdoc output.

Each implementors/**/trait.NAME.js script in a rustdoc output directory is a contributor:
it declares, for one trait, the implementors found in each crate.
implindex loads the scripts in a controlled order around the installation of the registrar
and merges them into a global index keyed by trait path.`,
		Version: build.Version,
	}
	log = logging.Log()

	// Global Flags
	outputFlag      = enumflag.New("yaml", []string{"json", "json-pretty", "yaml"})
	orderFlag       = enumflag.New(config.OrderSource, []string{config.OrderSource, config.OrderShuffle})
	installFlag     = host.Last
	configFlag      *string
	sourceFlag      *[]string
	excludeFlag     *[]string
	seedFlag        *uint64
	concurrencyFlag *int
	verboseFlag     *int
	panicFlag       *bool
)

func init() {
	flags := rootCmd.PersistentFlags()
	panicFlag = flags.Bool("panic", false, "panic on error instead of exit code 1")
	flags.VarP(outputFlag, "output", "o", outputFlag.DocString("Output format"))
	verboseFlag = flags.IntP("verbose", "v", 0, "Verbosity for logging")
	configFlag = flags.StringP("config", "c", os.Getenv(configEnv), "Configuration file or URL")
	sourceFlag = flags.StringArrayP("source", "s", nil, "rustdoc output directory, implementor script file or URL. May be repeated.")
	excludeFlag = flags.StringSlice("exclude", nil, "Units to exclude from query results, usually the crate being documented")
	flags.Var(&installFlag, "install", "Load position of the registrar: first, last, never or the number of scripts loaded before it")
	flags.Var(orderFlag, "order", orderFlag.DocString("Script load order"))
	seedFlag = flags.Uint64("seed", 0, "Seed for --order=shuffle")
	concurrencyFlag = flags.Int("concurrency", 1, "Number of goroutines running scripts")

	cobra.OnInitialize(func() { logging.Init(*verboseFlag) }) // After flags are parsed
}

func main() {
	// Code in this package panics with an error to exit.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(os.Stderr, r)
			if *panicFlag {
				panic(r)
			}
			os.Exit(1)
		}
		os.Exit(0)
	}()
	must.Must(rootCmd.Execute())
}
