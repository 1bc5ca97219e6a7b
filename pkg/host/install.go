// Copyright: This file is part of implindex, released under https://github.com/korrel8r/implindex/blob/main/LICENSE

package host

import (
	"fmt"
	"strconv"
	"strings"
)

// Install is the load position of the registrar among the contributor scripts.
// Values >= 0 install before the script at that position, see also [First], [Last] and [Never].
// Implements flag.Value, pflag.Value and encoding.TextUnmarshaler.
type Install int

const (
	First Install = 0
	Last  Install = -1
	// Never leaves every contribution in the pending buffer.
	Never Install = -2
)

func ParseInstall(s string) (Install, error) {
	var i Install
	return i, i.Set(s)
}

func (i Install) String() string {
	switch i {
	case First:
		return "first"
	case Last:
		return "last"
	case Never:
		return "never"
	default:
		return strconv.Itoa(int(i))
	}
}

func (i *Install) Set(s string) error {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "first":
		*i = First
	case "last", "":
		*i = Last
	case "never":
		*i = Never
	default:
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return fmt.Errorf("invalid install position %q: expected first, last, never or a position >= 0", s)
		}
		*i = Install(n)
	}
	return nil
}

func (i Install) Type() string { return "first|last|never|N" }

func (i Install) MarshalText() ([]byte, error) { return []byte(i.String()), nil }

func (i *Install) UnmarshalText(b []byte) error { return i.Set(string(b)) }

// position returns the index of the first script loaded after the registrar, or -1 for never.
func (i Install) position(n int) int {
	switch {
	case i == Never:
		return -1
	case i == Last, int(i) > n:
		return n
	default:
		return int(i)
	}
}
