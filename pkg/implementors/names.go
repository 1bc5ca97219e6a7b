// Copyright: This file is part of implindex, released under https://github.com/korrel8r/implindex/blob/main/LICENSE

package implementors

import (
	"path"
	"strings"
)

const (
	traitPrefix  = "trait."
	scriptSuffix = ".js"
)

// CapabilityFromPath returns the capability for a generated script path relative to the implementors directory.
// Path segments become the capability path, the file name holds the trait name:
//
//	core/hash/trait.Hasher.js => core::hash::Hasher
//
// Both '/' and '\' are accepted as separators.
func CapabilityFromPath(rel string) (Capability, error) {
	p := path.Clean(strings.ReplaceAll(rel, `\`, "/"))
	dir, file := path.Split(p)
	name, ok := strings.CutPrefix(file, traitPrefix)
	if ok {
		name, ok = strings.CutSuffix(name, scriptSuffix)
	}
	if !ok || name == "" || strings.HasPrefix(p, "../") || path.IsAbs(p) {
		return "", InvalidPathError{Path: rel}
	}
	segments := strings.FieldsFunc(dir, func(r rune) bool { return r == '/' })
	return Capability(strings.Join(append(segments, name), Separator)), nil
}

// IsScript returns true if the base name of p looks like a trait implementors script.
func IsScript(p string) bool {
	base := path.Base(strings.ReplaceAll(p, `\`, "/"))
	return strings.HasPrefix(base, traitPrefix) && strings.HasSuffix(base, scriptSuffix) && len(base) > len(traitPrefix)+len(scriptSuffix)
}
