// Copyright: This file is part of implindex, released under https://github.com/korrel8r/implindex/blob/main/LICENSE

// package test contains helpers for writing tests
package test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// SkipIfNoCommand skips a test if the cmd is not found in PATH
func SkipIfNoCommand(t *testing.T, cmd string) {
	t.Helper()
	if _, err := exec.LookPath(cmd); err != nil {
		skipf(t, "command %q not available", cmd)
	}
}

func skipf(t *testing.T, format string, args ...interface{}) {
	t.Helper()
	msg := fmt.Sprintf(format, args...)
	noSkip := os.Getenv("TEST_NO_SKIP")
	if noSkip != "" {
		t.Fatalf("TEST_NO_SKIP=%v failing: %v", noSkip, msg)
	} else {
		t.Skip(msg)
	}
}

// ListenPort returns a free ephemeral port for listening.
func ListenPort() (int, error) {
	l, err := net.Listen("tcp", ":0")
	if err != nil {
		return 0, err
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}

// ExecError extracts stderr if err is an exec.ExitError
func ExecError(err error) error {
	if ex, ok := err.(*exec.ExitError); ok {
		return fmt.Errorf("%v: %v", err, string(ex.Stderr))
	}
	return err
}

// TempDoc writes implementor scripts to a temporary rustdoc output directory and returns the directory.
// Keys of scripts are paths relative to the implementors directory, like "core/hash/trait.Hasher.js".
func TempDoc(t *testing.T, scripts map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for path, content := range scripts {
		path = filepath.Join(dir, "implementors", filepath.FromSlash(path))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

// PanicErr panics if err is not nil
func PanicErr(err error) {
	if err != nil {
		panic(err)
	}
}

// Must panics if err is not nil, else returns v.
func Must[T any](v T, err error) T { PanicErr(err); return v }

// JSONString returns the JSON marshaled string from v, or the error message if marshal fails
func JSONString(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return err.Error()
	}
	return string(b)
}

// JSONPretty returns an indented JSON string, or error message if marshal fails.
func JSONPretty(v any) string {
	w := &bytes.Buffer{}
	e := json.NewEncoder(w)
	e.SetIndent("", "  ")
	if err := e.Encode(v); err != nil {
		return err.Error()
	}
	return w.String()
}
