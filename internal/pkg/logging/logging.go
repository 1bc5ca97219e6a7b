// Copyright: This file is part of implindex, released under https://github.com/korrel8r/implindex/blob/main/LICENSE

// package logging initializes the root logger and provides some helpers.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
)

const verboseEnv = "IMPLINDEX_VERBOSE"

var root logr.Logger

// The root logger.
func Log() logr.Logger { return root }

func init() { // Set env verbosity on init, Init() can over-ride.
	root = stdr.New(log.New(os.Stderr, "implindex ", log.Ltime))
	if n, err := strconv.Atoi(os.Getenv(verboseEnv)); err == nil {
		stdr.SetVerbosity(n)
	}
}

// Init sets verbosity for the Root logger.
func Init(verbosity int) {
	if verbosity != 0 { // If not set, let env verbosity stand
		stdr.SetVerbosity(verbosity)
	}
}

// LogWriter returns a writer that logs each line written at verbosity 1.
// Used to capture output from libraries that write to an io.Writer.
func LogWriter() io.Writer { return writer{root.V(1)} }

type writer struct{ log logr.Logger }

func (w writer) Write(b []byte) (int, error) {
	for line := range strings.Lines(string(b)) {
		if line = strings.TrimSpace(line); line != "" {
			w.log.Info(line)
		}
	}
	return len(b), nil
}

// JSONString returns the JSON marshaled string from v, or the error message if marshal fails
func JSONString(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%q", err.Error())
	}
	return string(b)
}

type logJSON struct{ v any }

func (l logJSON) MarshalLog() any { return JSONString(l.v) }

// JSON wraps a value so it will be printed as JSON if logged.
func JSON(v any) logr.Marshaler { return logJSON{v: v} }

// SetVerbose changes the verbosity of the root logger at runtime.
func SetVerbose(verbosity int) { stdr.SetVerbosity(verbosity) }
