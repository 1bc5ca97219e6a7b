// Copyright: This file is part of implindex, released under https://github.com/korrel8r/implindex/blob/main/LICENSE

package config

// Config is the configuration for loading an implementor index.
// Configuration files may be JSON or YAML.
type Config struct {
	// Sources are rustdoc output directories, implementor script files or URLs.
	// Relative paths are relative to the location of the file containing them.
	Sources []string `json:"sources,omitempty"`

	// Install is the load position of the registrar: first, last, never or a script index.
	Install string `json:"install,omitempty"`

	// Order of loading scripts: source or shuffle.
	Order string `json:"order,omitempty"`

	// Seed for the shuffle order.
	Seed uint64 `json:"seed,omitempty"`

	// Concurrency is the number of goroutines used to run scripts.
	Concurrency int `json:"concurrency,omitempty"`

	// Exclude units from query results by default, usually the crate being rendered.
	Exclude []string `json:"exclude,omitempty"`

	// Include lists additional configuration files or URLs to include.
	Include []string `json:"include,omitempty"`
}

// Load orders.
const (
	OrderSource  = "source"
	OrderShuffle = "shuffle"
)
