// Copyright: This file is part of implindex, released under https://github.com/korrel8r/implindex/blob/main/LICENSE

// package implementors contains the data model for implementor lists contributed by documentation units.
//
// A [Capability] is a trait or interface whose implementors are documented.
// A [Unit] is a documentation unit (a crate) that may contribute implementors for a capability.
// A [Descriptor] is opaque, render-ready markup describing one implementation, it is never parsed.
//
// A [Contribution] carries the implementor lists of several units for a single capability,
// it is produced by one execution of a generated contributor script.
package implementors

import "strings"

// Separator separates the path segments of a capability name.
const Separator = "::"

// Capability is the fully qualified name of a trait, for example "core::hash::Hasher".
type Capability string

// Name is the last path segment of the capability.
func (c Capability) Name() string {
	s := string(c)
	if i := strings.LastIndex(s, Separator); i >= 0 {
		return s[i+len(Separator):]
	}
	return s
}

// Path is the capability path without the name, empty if there is none.
func (c Capability) Path() string {
	s := string(c)
	if i := strings.LastIndex(s, Separator); i >= 0 {
		return s[:i]
	}
	return ""
}

func (c Capability) String() string { return string(c) }

// Unit names a documentation unit.
type Unit string

func (u Unit) String() string { return string(u) }

// Descriptor is opaque rendering content for one implementor. Stored and returned verbatim.
type Descriptor string

// Entry is the list of implementors that one unit contributes.
// An empty list is meaningful: the unit was documented and has no implementors.
type Entry struct {
	Unit         Unit         `json:"unit"`
	Implementors []Descriptor `json:"implementors"`
}

// Clone returns a deep copy of the entry. Implementors is never nil in the copy.
func (e Entry) Clone() Entry {
	d := make([]Descriptor, len(e.Implementors))
	copy(d, e.Implementors)
	return Entry{Unit: e.Unit, Implementors: d}
}

// Contribution is the payload of a single contributor unit for a single capability.
// Entries are kept in the order they were declared.
type Contribution struct {
	Capability Capability `json:"capability"`
	Entries    []Entry    `json:"entries"`
}

// NewContribution returns an empty contribution for capability c.
func NewContribution(c Capability) *Contribution { return &Contribution{Capability: c} }

// Add appends an entry for unit u. Returns the contribution to allow chaining.
func (c *Contribution) Add(u Unit, descriptors ...Descriptor) *Contribution {
	c.Entries = append(c.Entries, Entry{Unit: u, Implementors: descriptors}.Clone())
	return c
}

// Units returns the contributing units in declaration order.
func (c Contribution) Units() []Unit {
	units := make([]Unit, 0, len(c.Entries))
	for _, e := range c.Entries {
		units = append(units, e.Unit)
	}
	return units
}

// Clone returns a deep copy, so the original payload can't be changed through the copy.
func (c Contribution) Clone() Contribution {
	entries := make([]Entry, len(c.Entries))
	for i, e := range c.Entries {
		entries[i] = e.Clone()
	}
	return Contribution{Capability: c.Capability, Entries: entries}
}
