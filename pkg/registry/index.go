// Copyright: This file is part of implindex, released under https://github.com/korrel8r/implindex/blob/main/LICENSE

package registry

import (
	"slices"
	"sync"

	"github.com/korrel8r/implindex/pkg/implementors"
)

// Index is the global index of implementors: capability => unit => implementor descriptors.
//
// Capabilities and the units within a capability are kept in the order they were first merged.
// Capabilities are never removed. Query methods return copies, the index can't be modified through them.
// Safe for concurrent use.
type Index struct {
	mu           sync.RWMutex
	capabilities []implementors.Capability
	units        map[implementors.Capability]*unitLists
}

// unitLists holds the implementor lists for one capability.
type unitLists struct {
	order []implementors.Unit
	lists map[implementors.Unit][]implementors.Descriptor
}

func NewIndex() *Index {
	return &Index{units: map[implementors.Capability]*unitLists{}}
}

// Merge entries from a contribution into the index.
//
// An entry for a unit that is already present replaces the old list but keeps its position,
// merging identical content again has no effect.
// Returns the number of existing entries whose content was replaced.
func (x *Index) Merge(c implementors.Contribution) (overwrites int) {
	x.mu.Lock()
	defer x.mu.Unlock()
	ul := x.units[c.Capability]
	if ul == nil {
		ul = &unitLists{lists: map[implementors.Unit][]implementors.Descriptor{}}
		x.units[c.Capability] = ul
		x.capabilities = append(x.capabilities, c.Capability)
	}
	for _, e := range c.Entries {
		old, ok := ul.lists[e.Unit]
		switch {
		case !ok:
			ul.order = append(ul.order, e.Unit)
		case slices.Equal(old, e.Implementors):
			continue
		default:
			overwrites++
		}
		ul.lists[e.Unit] = e.Clone().Implementors
	}
	return overwrites
}

// Capabilities returns all capabilities in merge order.
func (x *Index) Capabilities() []implementors.Capability {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return slices.Clone(x.capabilities)
}

// Len is the number of capabilities.
func (x *Index) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.capabilities)
}

// Has returns true if any contribution for c has been merged.
func (x *Index) Has(c implementors.Capability) bool {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.units[c] != nil
}

// Units returns units with an entry for c, in merge order.
func (x *Index) Units(c implementors.Capability) ([]implementors.Unit, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	ul := x.units[c]
	if ul == nil {
		return nil, implementors.CapabilityNotFoundError{Capability: c}
	}
	return slices.Clone(ul.order), nil
}

// Implementors returns the list for (c, u).
// The boolean is false if u never contributed to c, an empty list with true means "no implementors".
func (x *Index) Implementors(c implementors.Capability, u implementors.Unit) ([]implementors.Descriptor, bool) {
	list, err := x.ImplementorsErr(c, u)
	return list, err == nil
}

// ImplementorsErr is like Implementors but returns a not-found error to say why the entry is absent.
func (x *Index) ImplementorsErr(c implementors.Capability, u implementors.Unit) ([]implementors.Descriptor, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	ul := x.units[c]
	if ul == nil {
		return nil, implementors.CapabilityNotFoundError{Capability: c}
	}
	list, ok := ul.lists[u]
	if !ok {
		return nil, implementors.UnitNotFoundError{Capability: c, Unit: u}
	}
	return implementors.Entry{Implementors: list}.Clone().Implementors, nil
}

// Entries returns the entries for c in merge order, skipping any excluded units.
//
// Excluding a unit gives the view a documentation page renders for the unit's own capability page,
// where the unit's own implementors are already shown in the page body.
func (x *Index) Entries(c implementors.Capability, exclude ...implementors.Unit) ([]implementors.Entry, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	ul := x.units[c]
	if ul == nil {
		return nil, implementors.CapabilityNotFoundError{Capability: c}
	}
	return ul.entries(exclude), nil
}

func (ul *unitLists) entries(exclude []implementors.Unit) []implementors.Entry {
	entries := make([]implementors.Entry, 0, len(ul.order))
	for _, u := range ul.order {
		if !slices.Contains(exclude, u) {
			entries = append(entries, implementors.Entry{Unit: u, Implementors: ul.lists[u]}.Clone())
		}
	}
	return entries
}

// Summary counts the units and implementors of a capability.
type Summary struct {
	Capability   implementors.Capability `json:"capability"`
	Units        int                     `json:"units"`
	Implementors int                     `json:"implementors"`
}

// Summaries returns a summary for each capability in merge order.
func (x *Index) Summaries() []Summary {
	x.mu.RLock()
	defer x.mu.RUnlock()
	summaries := make([]Summary, 0, len(x.capabilities))
	for _, c := range x.capabilities {
		ul := x.units[c]
		s := Summary{Capability: c, Units: len(ul.order)}
		for _, list := range ul.lists {
			s.Implementors += len(list)
		}
		summaries = append(summaries, s)
	}
	return summaries
}

// Snapshot returns a deep copy of the index as one contribution per capability, in merge order.
func (x *Index) Snapshot() []implementors.Contribution {
	x.mu.RLock()
	defer x.mu.RUnlock()
	snap := make([]implementors.Contribution, 0, len(x.capabilities))
	for _, c := range x.capabilities {
		snap = append(snap, implementors.Contribution{Capability: c, Entries: x.units[c].entries(nil)})
	}
	return snap
}
