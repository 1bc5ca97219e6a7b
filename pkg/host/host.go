// Copyright: This file is part of implindex, released under https://github.com/korrel8r/implindex/blob/main/LICENSE

// Package host simulates the environment that loads contributor scripts and the registrar.
//
// The host controls the load order: scripts can be loaded in source order or shuffled,
// and the registrar can be installed before, between or after them, or never.
// With Concurrency > 1 scripts are run by a pool of goroutines, so submissions race
// with each other and with the installation of the registrar.
package host

import (
	"context"
	"math/rand/v2"
	"slices"

	"github.com/korrel8r/implindex/internal/pkg/logging"
	"github.com/korrel8r/implindex/pkg/contributor"
	"github.com/korrel8r/implindex/pkg/registry"
	"golang.org/x/sync/errgroup"
)

var log = logging.Log()

// Options control the load order.
type Options struct {
	// Install is the position of the registrar in the load order.
	Install Install `json:"install,omitempty"`
	// Shuffle the scripts before loading, using Seed.
	Shuffle bool   `json:"shuffle,omitempty"`
	Seed    uint64 `json:"seed,omitempty"`
	// Concurrency is the number of goroutines running scripts, 0 or 1 is sequential.
	Concurrency int `json:"concurrency,omitempty"`
}

// Report describes a completed load.
type Report struct {
	// Scripts is the number of scripts started.
	Scripts int `json:"scripts"`
	// InstalledAt is the load position of the registrar, -1 if it was not installed.
	InstalledAt int `json:"installedAt"`
	// Order lists script sources in load order.
	Order []string `json:"order,omitempty"`
	// Status of the registry after loading.
	Status registry.Status `json:"status"`
}

// Lost returns true if contributions were left in the pending buffer.
// They will not appear in the index, this is not an error.
func (r Report) Lost() bool { return r.Status.Pending > 0 }

// Run loads all scripts into r in the order given by opts.
// Returns early with the context error if ctx is cancelled.
func Run(ctx context.Context, r *registry.Registry, scripts []*contributor.Script, opts Options) (Report, error) {
	order := slices.Clone(scripts)
	if opts.Shuffle {
		rnd := rand.New(rand.NewPCG(opts.Seed, opts.Seed))
		rnd.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
	}
	at := opts.Install.position(len(order))
	report := Report{InstalledAt: at}
	for _, s := range order {
		report.Order = append(report.Order, s.Source)
	}
	log.V(1).Info("Loading", "scripts", len(order), "install", opts.Install, "shuffle", opts.Shuffle, "concurrency", opts.Concurrency)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.Concurrency, 1))
	for i := 0; i <= len(order); i++ {
		if err := gctx.Err(); err != nil {
			break
		}
		if i == at {
			g.Go(func() error {
				r.Install()
				return nil
			})
		}
		if i < len(order) {
			s := order[i]
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				s.Run(r)
				return nil
			})
			report.Scripts++
		}
	}
	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	report.Status = r.Status()
	if report.Status.State != registry.Installed {
		report.InstalledAt = -1
	}
	if report.Lost() {
		log.V(1).Info("Registrar not installed, contributions left pending", "pending", report.Status.Pending)
	}
	return report, err
}
