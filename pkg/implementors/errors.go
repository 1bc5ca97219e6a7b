// Copyright: This file is part of implindex, released under https://github.com/korrel8r/implindex/blob/main/LICENSE

package implementors

import (
	"errors"
	"fmt"
)

type CapabilityNotFoundError struct{ Capability Capability }

func (e CapabilityNotFoundError) Error() string {
	return fmt.Sprintf("capability not found: %q", e.Capability)
}

func IsCapabilityNotFoundError(err error) bool { return IsErrorType[CapabilityNotFoundError](err) }

type UnitNotFoundError struct {
	Capability Capability
	Unit       Unit
}

func (e UnitNotFoundError) Error() string {
	return fmt.Sprintf("unit %q has no entry for capability %v", e.Unit, e.Capability)
}

func IsUnitNotFoundError(err error) bool { return IsErrorType[UnitNotFoundError](err) }

// InvalidPathError is returned for artifact paths that do not name a trait script.
type InvalidPathError struct{ Path string }

func (e InvalidPathError) Error() string {
	return fmt.Sprintf("not an implementors path, expected .../trait.NAME.js: %q", e.Path)
}

func IsErrorType[T error](err error) bool {
	var target T
	return errors.As(err, &target)
}
