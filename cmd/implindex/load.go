// Copyright: This file is part of implindex, released under https://github.com/korrel8r/implindex/blob/main/LICENSE

package main

import (
	"context"
	"errors"

	"github.com/korrel8r/implindex/internal/pkg/logging"
	"github.com/korrel8r/implindex/internal/pkg/must"
	"github.com/korrel8r/implindex/pkg/config"
	"github.com/korrel8r/implindex/pkg/contributor"
	"github.com/korrel8r/implindex/pkg/host"
	"github.com/korrel8r/implindex/pkg/implementors"
	"github.com/korrel8r/implindex/pkg/metrics"
	"github.com/korrel8r/implindex/pkg/registry"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ctx = context.Background()

	// metricsRegistry collects registry metrics, served by the web command.
	metricsRegistry = prometheus.NewRegistry()
)

// loaded is the result of loading all sources.
type loaded struct {
	*registry.Registry
	Report  host.Report
	Exclude []implementors.Unit
}

// loadConfig merges the configuration file with flags, flags take precedence.
func loadConfig() *config.Config {
	c := &config.Config{}
	if *configFlag != "" {
		c = must.Must1(config.Load(*configFlag)).Merge()
	}
	flags := rootCmd.PersistentFlags()
	changed := func(name string) bool { return flags.Lookup(name).Changed }
	c.Sources = append(c.Sources, *sourceFlag...)
	if changed("exclude") {
		c.Exclude = *excludeFlag
	}
	if changed("install") {
		c.Install = installFlag.String()
	}
	if changed("order") {
		c.Order = orderFlag.String()
	}
	if changed("seed") {
		c.Seed = *seedFlag
	}
	if changed("concurrency") || c.Concurrency == 0 {
		c.Concurrency = *concurrencyFlag
	}
	log.V(2).Info("Configuration", "config", logging.JSON(c))
	return c
}

// load runs the scripts from configured sources and extra sources.
// Sources that fail to load are logged and skipped.
func load(sources ...string) *loaded {
	c := loadConfig()
	opts := must.Must1(c.HostOptions())
	sources = append(c.Sources, sources...)
	if len(sources) == 0 {
		must.Must(errors.New("no sources: use --source, a configuration file with sources, or source arguments"))
	}
	scripts, err := contributor.LoadAll(sources...)
	if err != nil {
		log.Error(err, "Error loading sources")
	}
	r := registry.New(registry.WithObserver(metrics.New(metricsRegistry)))
	report := must.Must1(host.Run(ctx, r, scripts, opts))
	if report.Lost() {
		log.Info("Registrar not installed, contributions were not indexed", "pending", report.Status.Pending)
	}
	l := &loaded{Registry: r, Report: report}
	for _, u := range c.Exclude {
		l.Exclude = append(l.Exclude, implementors.Unit(u))
	}
	return l
}
