// Copyright: This file is part of implindex, released under https://github.com/korrel8r/implindex/blob/main/LICENSE

// Package config loads implindex configuration files.
package config

import (
	"fmt"
	"io"
	"maps"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"slices"

	"github.com/korrel8r/implindex/internal/pkg/logging"
	"github.com/korrel8r/implindex/pkg/host"
	"sigs.k8s.io/yaml"
)

var log = logging.Log()

// Configs is a map of config files by their source file/url.
type Configs map[string]*Config

// Load loads all configurations from a file or URL.
//
// If a configuration has an Include section, also loads all referenced configurations.
// Relative paths in Include and Sources are relative to the location of file containing them.
func Load(fileOrURL string) (Configs, error) {
	configs := Configs{}
	return configs, load(fileOrURL, configs)
}

// Merge combines all configurations into one, visiting them in sorted source order.
// Lists are concatenated without duplicates, later non-empty values replace earlier ones.
func (configs Configs) Merge() *Config {
	merged := &Config{}
	for _, source := range slices.Sorted(maps.Keys(configs)) {
		c := configs[source]
		merged.Sources = appendNew(merged.Sources, c.Sources...)
		merged.Exclude = appendNew(merged.Exclude, c.Exclude...)
		merged.Include = appendNew(merged.Include, c.Include...)
		if c.Install != "" {
			merged.Install = c.Install
		}
		if c.Order != "" {
			merged.Order = c.Order
		}
		if c.Seed != 0 {
			merged.Seed = c.Seed
		}
		if c.Concurrency != 0 {
			merged.Concurrency = c.Concurrency
		}
	}
	return merged
}

// HostOptions converts the load settings to [host.Options].
func (c *Config) HostOptions() (opts host.Options, err error) {
	if opts.Install, err = host.ParseInstall(c.Install); err != nil {
		return opts, err
	}
	switch c.Order {
	case "", OrderSource:
	case OrderShuffle:
		opts.Shuffle = true
	default:
		return opts, fmt.Errorf("invalid order %q: expected %v or %v", c.Order, OrderSource, OrderShuffle)
	}
	if c.Concurrency < 0 {
		return opts, fmt.Errorf("invalid concurrency %v", c.Concurrency)
	}
	opts.Seed = c.Seed
	opts.Concurrency = c.Concurrency
	return opts, nil
}

func appendNew(list []string, values ...string) []string {
	for _, v := range values {
		if !slices.Contains(list, v) {
			list = append(list, v)
		}
	}
	return list
}

func load(source string, configs Configs) (err error) {
	if _, ok := configs[source]; ok {
		return nil // Already loaded
	}
	log.V(2).Info("Loading configuration", "config", source)
	b, err := readFileOrURL(source)
	if err != nil {
		return fmt.Errorf("%v: %w", source, err)
	}
	c := &Config{}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("%v: %w", source, err)
	}
	for i, s := range c.Sources {
		c.Sources[i] = resolve(source, s)
	}
	configs[source] = c
	for _, s := range c.Include {
		ref := resolve(source, s)
		if err := load(ref, configs); err != nil {
			return err
		}
	}
	return nil
}

func readFileOrURL(source string) ([]byte, error) {
	u, err := url.Parse(source)
	if err != nil {
		return nil, err
	}
	if u.IsAbs() {
		resp, err := http.Get(u.String())
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("%v", http.StatusText(resp.StatusCode))
		}
		return b, nil
	} else {
		return os.ReadFile(u.Path)
	}
}

func resolve(base, ref string) string {
	if filepath.IsAbs(ref) {
		return ref
	}
	if r, err := url.Parse(ref); err == nil {
		if r.IsAbs() {
			return ref
		}
		if b, err := url.Parse(base); err == nil && b.IsAbs() {
			return b.ResolveReference(r).String()
		}
	}
	return filepath.Join(filepath.Dir(base), ref)
}
