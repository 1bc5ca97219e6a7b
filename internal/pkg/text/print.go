// Copyright: This file is part of implindex, released under https://github.com/korrel8r/implindex/blob/main/LICENSE

// package text is used to print the index as text for command line and MCP.
package text

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/korrel8r/implindex/pkg/implementors"
	"github.com/korrel8r/implindex/pkg/registry"
)

type Printer struct{ *registry.Registry }

func NewPrinter(r *registry.Registry) *Printer { return &Printer{Registry: r} }

func WriteString(print func(io.Writer)) string {
	w := &strings.Builder{}
	print(w)
	return w.String()
}

// ListCapabilities prints one line per capability with unit and implementor counts.
func (p *Printer) ListCapabilities(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer func() { _ = tw.Flush() }()
	for _, s := range p.Index().Summaries() {
		fmt.Fprintf(tw, "%v\t%v\t%v", s.Capability, s.Units, s.Implementors)
		fmt.Fprintln(tw)
	}
}

// ListUnits prints the units contributing to a capability, with their implementor counts.
func (p *Printer) ListUnits(w io.Writer, c implementors.Capability, exclude ...implementors.Unit) {
	entries, err := p.Index().Entries(c, exclude...)
	if err != nil {
		p.Error(w, err)
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer func() { _ = tw.Flush() }()
	for _, e := range entries {
		fmt.Fprintf(tw, "%v\t%v", e.Unit, len(e.Implementors))
		fmt.Fprintln(tw)
	}
}

// Entries prints each unit followed by its indented descriptors.
// A unit with no implementors is printed with no descriptor lines.
func (p *Printer) Entries(w io.Writer, c implementors.Capability, exclude ...implementors.Unit) {
	entries, err := p.Index().Entries(c, exclude...)
	if err != nil {
		p.Error(w, err)
		return
	}
	for _, e := range entries {
		fmt.Fprintf(w, "%v:\n", e.Unit)
		for _, d := range e.Implementors {
			fmt.Fprintf(w, "  %v\n", d)
		}
	}
}

// Implementors prints the descriptors of one unit, one per line.
func (p *Printer) Implementors(w io.Writer, c implementors.Capability, u implementors.Unit) {
	descriptors, err := p.Index().ImplementorsErr(c, u)
	if err != nil {
		p.Error(w, err)
		return
	}
	for _, d := range descriptors {
		fmt.Fprintln(w, d)
	}
}

func (p *Printer) Status(w io.Writer) {
	s := p.Registry.Status()
	fmt.Fprintf(w, "state: %v\npending: %v\ncapabilities: %v\n", s.State, s.Pending, s.Capabilities)
}

func (p *Printer) Error(w io.Writer, err error) {
	fmt.Fprintln(w, "Error:", err)
}
