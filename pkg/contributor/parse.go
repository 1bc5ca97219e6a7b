// Copyright: This file is part of implindex, released under https://github.com/korrel8r/implindex/blob/main/LICENSE

package contributor

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/korrel8r/implindex/pkg/implementors"
)

// assignment matches a line of the form: implementors["unit"] = [ ... ];
var assignment = regexp.MustCompile(`^\s*implementors\[("(?:[^"\\]|\\.)*")\]\s*=\s*(\[.*\])\s*;?\s*$`)

// ErrNoImplementors is returned for scripts that do not declare an implementors table.
var ErrNoImplementors = errors.New("no implementors declaration")

// Parse decodes a generated implementors script into a contribution for capability c.
//
// Only the assignment lines are interpreted, the surrounding registration code is ignored.
// Descriptor strings are decoded as script string literals and otherwise kept verbatim.
func Parse(c implementors.Capability, data []byte) (*implementors.Contribution, error) {
	if !bytes.Contains(data, []byte("implementors")) {
		return nil, ErrNoImplementors
	}
	contribution := implementors.NewContribution(c)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(nil, len(data)+1) // Lines can be very long.
	for n := 1; scanner.Scan(); n++ {
		m := assignment.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}
		unit, err := unquote(m[1])
		if err != nil {
			return nil, fmt.Errorf("line %v: unit name: %w", n, err)
		}
		list, err := parseList(m[2])
		if err != nil {
			return nil, fmt.Errorf("line %v: unit %q: %w", n, unit, err)
		}
		contribution.Add(implementors.Unit(unit), list...)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return contribution, nil
}

// parseList parses a bracketed list of string literals, a trailing comma is allowed.
func parseList(s string) ([]implementors.Descriptor, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
		return nil, fmt.Errorf("expected [...]: %.40q", s)
	}
	s = s[1 : len(s)-1]
	list := []implementors.Descriptor{}
	for {
		s = strings.TrimLeft(s, " \t")
		if s == "" {
			return list, nil
		}
		end, err := literalEnd(s)
		if err != nil {
			return nil, err
		}
		str, err := unquote(s[:end])
		if err != nil {
			return nil, err
		}
		list = append(list, implementors.Descriptor(str))
		s = strings.TrimLeft(s[end:], " \t")
		if s != "" {
			if s[0] != ',' {
				return nil, fmt.Errorf("expected ',' after string: %.40q", s)
			}
			s = s[1:]
		}
	}
}

// literalEnd returns the index just past the double-quoted literal at the start of s.
func literalEnd(s string) (int, error) {
	if s[0] != '"' {
		return 0, fmt.Errorf("expected string: %.40q", s)
	}
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return i + 1, nil
		}
	}
	return 0, fmt.Errorf("unterminated string: %.40q", s)
}

// unquote decodes a double-quoted script string literal in a single left-to-right pass.
//
// Escapes are those of the script language: \\, \', \", \/, \b, \f, \n, \r, \t, \v, \0,
// \xHH, \uXXXX (surrogate pairs combined) and \u{X...}.
// Any other escaped character stands for itself.
func unquote(quoted string) (string, error) {
	if len(quoted) < 2 || quoted[0] != '"' || quoted[len(quoted)-1] != '"' {
		return "", fmt.Errorf("expected string: %.40q", quoted)
	}
	s := quoted[1 : len(quoted)-1]
	if !strings.ContainsRune(s, '\\') {
		return s, nil
	}
	var b strings.Builder
	b.Grow(len(s))
	for len(s) > 0 {
		i := strings.IndexByte(s, '\\')
		if i < 0 {
			b.WriteString(s)
			break
		}
		b.WriteString(s[:i])
		s = s[i+1:]
		if s == "" {
			return "", fmt.Errorf("unterminated escape: %.40q", quoted)
		}
		r, n, err := unescape(s)
		if err != nil {
			return "", fmt.Errorf("%w: %.40q", err, quoted)
		}
		b.WriteRune(r)
		s = s[n:]
	}
	return b.String(), nil
}

var simpleEscapes = map[byte]rune{'b': '\b', 'f': '\f', 'n': '\n', 'r': '\r', 't': '\t', 'v': '\v'}

// unescape decodes the escape sequence at the start of s, which follows a backslash.
// Returns the rune and the number of bytes consumed.
func unescape(s string) (r rune, n int, err error) {
	c := s[0]
	if e, ok := simpleEscapes[c]; ok {
		return e, 1, nil
	}
	switch c {
	case '0':
		if len(s) > 1 && s[1] >= '0' && s[1] <= '9' {
			return 0, 0, errors.New("octal escape not allowed")
		}
		return 0, 1, nil
	case 'x':
		v, err := hexValue(s[1:], 2)
		return v, 3, err
	case 'u':
		if strings.HasPrefix(s, "u{") {
			end := strings.IndexByte(s, '}')
			if end < 3 {
				return 0, 0, errors.New("invalid code point escape")
			}
			v, err := hexValue(s[2:end], end-2)
			return v, end + 1, err
		}
		v, err := hexValue(s[1:], 4)
		if err != nil {
			return 0, 0, err
		}
		if utf16.IsSurrogate(v) && strings.HasPrefix(s[5:], `\u`) {
			if low, err := hexValue(s[7:], 4); err == nil {
				if pair := utf16.DecodeRune(v, low); pair != unicode.ReplacementChar {
					return pair, 11, nil
				}
			}
		}
		return v, 5, nil
	}
	r, n = utf8.DecodeRuneInString(s)
	return r, n, nil
}

// hexValue decodes exactly n hex digits at the start of s.
func hexValue(s string, n int) (rune, error) {
	if n == 0 || len(s) < n || n > 8 {
		return 0, errors.New("invalid hex escape")
	}
	v, err := strconv.ParseUint(s[:n], 16, 32)
	if err != nil || v > unicode.MaxRune {
		return 0, errors.New("invalid hex escape")
	}
	return rune(v), nil
}
