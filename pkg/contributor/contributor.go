// Copyright: This file is part of implindex, released under https://github.com/korrel8r/implindex/blob/main/LICENSE

// package contributor loads contributor units: generated scripts that each declare the implementors
// of one capability, and submit them to the registrar.
package contributor

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/korrel8r/implindex/internal/pkg/logging"
	"github.com/korrel8r/implindex/pkg/implementors"
)

var log = logging.Log()

// Dir is the conventional directory name for generated implementors scripts.
const Dir = "implementors"

// Submitter accepts contributions, see registry.Registry.Submit.
type Submitter interface {
	Submit(implementors.Contribution)
}

// Script is a contributor unit: a fixed contribution declared by one generated file.
type Script struct {
	// Source is the file or URL the script was loaded from.
	Source       string                     `json:"source"`
	Contribution implementors.Contribution `json:"contribution"`
}

// Run submits the script's contribution. Fire and forget, there is nothing to report.
func (s *Script) Run(to Submitter) { to.Submit(s.Contribution) }

// Load loads scripts from a source, which may be:
//   - a directory: all trait.*.js scripts below it, or below its "implementors" sub-directory if there is one.
//   - a single script file.
//   - a http or https URL for a single script.
//
// The capability of a script is computed from its path relative to the implementors directory.
// Scripts are returned sorted by source.
func Load(source string) ([]*Script, error) {
	if u, err := url.Parse(source); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		s, err := loadURL(u)
		if err != nil {
			return nil, fmt.Errorf("%v: %w", source, err)
		}
		return []*Script{s}, nil
	}
	info, err := os.Stat(source)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		rel, _ := capabilityPath(filepath.ToSlash(source))
		s, err := loadFile(source, rel)
		if err != nil {
			return nil, fmt.Errorf("%v: %w", source, err)
		}
		return []*Script{s}, nil
	}
	return loadDir(source)
}

// LoadAll loads all sources, errors are collected and the loaded scripts are still returned.
func LoadAll(sources ...string) ([]*Script, error) {
	var scripts []*Script
	var errs error
	for _, source := range sources {
		s, err := Load(source)
		errs = errors.Join(errs, err)
		scripts = append(scripts, s...)
	}
	return scripts, errs
}

func loadDir(dir string) ([]*Script, error) {
	if info, err := os.Stat(filepath.Join(dir, Dir)); err == nil && info.IsDir() {
		dir = filepath.Join(dir, Dir)
	}
	log.V(2).Info("Loading scripts", "dir", dir)
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	var scripts []*Script
	err = fs.WalkDir(os.DirFS(dir), ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !implementors.IsScript(p) {
			return err
		}
		// Capability path is relative to the enclosing implementors directory if there is one.
		rel, ok := capabilityPath(path.Join(filepath.ToSlash(abs), p))
		if !ok {
			rel = p
		}
		s, err := loadFile(filepath.Join(dir, filepath.FromSlash(p)), rel)
		if err != nil {
			return fmt.Errorf("%v: %w", filepath.Join(dir, p), err)
		}
		scripts = append(scripts, s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.SortFunc(scripts, func(a, b *Script) int { return cmp.Compare(a.Source, b.Source) })
	return scripts, nil
}

func loadFile(file, rel string) (*Script, error) {
	c, err := implementors.CapabilityFromPath(rel)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return newScript(file, c, b)
}

func loadURL(u *url.URL) (*Script, error) {
	rel, _ := capabilityPath(u.Path)
	c, err := implementors.CapabilityFromPath(rel)
	if err != nil {
		return nil, err
	}
	resp, err := http.Get(u.String())
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%v", http.StatusText(resp.StatusCode))
	}
	return newScript(u.String(), c, b)
}

func newScript(source string, c implementors.Capability, data []byte) (*Script, error) {
	contribution, err := Parse(c, data)
	if err != nil {
		return nil, err
	}
	log.V(3).Info("Loaded script", "source", source, "capability", c, "units", len(contribution.Entries))
	return &Script{Source: source, Contribution: *contribution}, nil
}

// capabilityPath returns the part of a slash-separated path after the last "implementors" segment.
// If there is no such segment it returns the base name and false.
func capabilityPath(p string) (string, bool) {
	segments := strings.Split(path.Clean(p), "/")
	for i := len(segments) - 2; i >= 0; i-- {
		if segments[i] == Dir {
			return path.Join(segments[i+1:]...), true
		}
	}
	return path.Base(p), false
}
