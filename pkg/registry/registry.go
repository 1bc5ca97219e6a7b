// Copyright: This file is part of implindex, released under https://github.com/korrel8r/implindex/blob/main/LICENSE

// package registry merges implementor contributions into a global [Index].
//
// Contributor units may run before or after the registrar is installed.
// A [Registry] starts [Absent]: contributions submitted in this state are held in a pending buffer.
// [Registry.Install] drains the buffer in submission order and moves the registry to [Installed],
// after which contributions are merged as soon as they are submitted.
//
// A contribution is merged at most once per (capability, unit), and is never lost
// as long as the registrar is eventually installed.
package registry

import (
	"fmt"
	"slices"
	"sync"

	"github.com/korrel8r/implindex/internal/pkg/logging"
	"github.com/korrel8r/implindex/pkg/implementors"
)

var log = logging.Log()

// State of the registrar binding.
type State int

const (
	// Absent is the initial state, contributions are buffered.
	Absent State = iota
	// Installed is terminal, contributions are merged directly.
	Installed
)

func (s State) String() string {
	switch s {
	case Absent:
		return "absent"
	case Installed:
		return "installed"
	default:
		return "unknown"
	}
}

func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *State) UnmarshalText(b []byte) error {
	switch string(b) {
	case "absent":
		*s = Absent
	case "installed":
		*s = Installed
	default:
		return fmt.Errorf("invalid registrar state: %q", string(b))
	}
	return nil
}

// Path identifies how a contribution reached the index.
type Path string

const (
	// Direct contributions are merged on submit or register.
	Direct Path = "direct"
	// Deferred contributions are merged when the pending buffer is drained.
	Deferred Path = "deferred"
)

// Observer is notified of registry events, for example to record metrics.
// Calls are made while the registry is locked, they must not call back into the registry.
type Observer interface {
	// Merged is called after a contribution is merged.
	Merged(c implementors.Capability, path Path, overwrites int, capabilities int)
	// Buffered is called after a contribution is added to the pending buffer.
	Buffered(c implementors.Capability, pending int)
	// Installed is called once, after the pending buffer has been drained.
	Installed(drained int)
}

// Registry is the process-wide registrar.
// Create one with [New] and pass it to everything that needs to populate or query it.
// Safe for concurrent use.
type Registry struct {
	mu       sync.Mutex
	state    State
	pending  []implementors.Contribution
	index    *Index
	observer Observer
}

type Option func(*Registry)

// WithObserver sets an observer for registry events.
func WithObserver(o Observer) Option { return func(r *Registry) { r.observer = o } }

// New returns a registry in the [Absent] state with an empty index.
func New(opts ...Option) *Registry {
	r := &Registry{index: NewIndex()}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Submit is the contributor entry point, it never fails.
//
// If the registrar is installed the contribution is merged before Submit returns,
// otherwise it is appended to the pending buffer and merged by [Registry.Install].
func (r *Registry) Submit(c implementors.Contribution) {
	c = c.Clone() // Payload is fixed at submit time.
	r.mu.Lock()
	defer r.mu.Unlock()
	r.submit(c)
}

// Register is the registrar entry point.
// Registering the same unit twice leaves the index as if it was registered once.
//
// Before installation the index is not reachable: c is buffered behind earlier contributions,
// exactly like [Registry.Submit], so the drain keeps merge order.
func (r *Registry) Register(c implementors.Contribution) {
	c = c.Clone()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.submit(c)
}

// must hold r.mu
func (r *Registry) submit(c implementors.Contribution) {
	if r.state == Installed {
		r.merge(c, Direct)
		return
	}
	r.pending = append(r.pending, c)
	log.V(2).Info("Buffered contribution", "capability", c.Capability, "units", len(c.Entries), "pending", len(r.pending))
	if r.observer != nil {
		r.observer.Buffered(c.Capability, len(r.pending))
	}
}

// Install moves the registry from [Absent] to [Installed].
// Pending contributions are merged in the order they were submitted, then the buffer is cleared.
// Returns false if the registry was already installed, there is no re-installation.
func (r *Registry) Install() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == Installed {
		return false
	}
	drained := len(r.pending)
	for _, c := range r.pending {
		r.merge(c, Deferred)
	}
	r.pending = nil
	r.state = Installed
	log.V(1).Info("Registrar installed", "drained", drained, "capabilities", r.index.Len())
	if r.observer != nil {
		r.observer.Installed(drained)
	}
	return true
}

// must hold r.mu
func (r *Registry) merge(c implementors.Contribution, path Path) {
	overwrites := r.index.Merge(c)
	log.V(2).Info("Merged contribution", "capability", c.Capability, "units", len(c.Entries), "path", path, "overwrites", overwrites)
	if r.observer != nil {
		r.observer.Merged(c.Capability, path, overwrites, r.index.Len())
	}
}

// State returns the current registrar state.
func (r *Registry) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Pending returns the number of buffered contributions, always 0 once installed.
func (r *Registry) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}

// PendingContributions returns a copy of the pending buffer in submission order.
func (r *Registry) PendingContributions() []implementors.Contribution {
	r.mu.Lock()
	defer r.mu.Unlock()
	pending := slices.Clone(r.pending)
	for i := range pending {
		pending[i] = pending[i].Clone()
	}
	return pending
}

// Index returns the global index for queries.
func (r *Registry) Index() *Index { return r.index }

// Status is a point-in-time view of the registry.
type Status struct {
	State        State `json:"state"`
	Pending      int   `json:"pending"`
	Capabilities int   `json:"capabilities"`
}

func (r *Registry) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Status{State: r.state, Pending: len(r.pending), Capabilities: r.index.Len()}
}
