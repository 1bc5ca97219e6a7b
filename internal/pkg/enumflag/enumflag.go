// Copyright: This file is part of implindex, released under https://github.com/korrel8r/implindex/blob/main/LICENSE

// Package enumflag is custom flag value that allows one of a list of strings.
// Implements standard flag.Value and cobra pflag.Value
package enumflag

import (
	"fmt"
	"slices"
	"strings"
)

type Value struct {
	Value   string
	Allowed []string
}

func (v *Value) String() string { return v.Value }

func (v *Value) Set(x string) error {
	if slices.Index(v.Allowed, x) < 0 {
		return fmt.Errorf("invalid value %q, expected one of: %v", x, v.Allowed)
	}
	v.Value = x
	return nil
}

func (v *Value) DocString(msg string) string {
	w := &strings.Builder{}
	if msg != "" {
		fmt.Fprintf(w, "%v: ", msg)
	}
	fmt.Fprintf(w, "One of %v", v.Allowed)
	return w.String()
}

func (v *Value) Type() string { return "string" }

// New returns a Value with initial value, allowed values are kept sorted.
// The initial value is not checked, it may be "" for an unset flag.
func New(value string, allowed []string) *Value {
	return &Value{Allowed: slices.Sorted(slices.Values(allowed)), Value: value}
}
