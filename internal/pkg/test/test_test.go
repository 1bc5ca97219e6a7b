// Copyright: This file is part of implindex, released under https://github.com/korrel8r/implindex/blob/main/LICENSE

package test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTempDoc(t *testing.T) {
	dir := TempDoc(t, map[string]string{
		"core/hash/trait.Hasher.js": `implementors["mio"] = [];`,
		"std/io/trait.Read.js":      `implementors["bytes"] = [];`,
	})
	b, err := os.ReadFile(filepath.Join(dir, "implementors", "core", "hash", "trait.Hasher.js"))
	require.NoError(t, err)
	assert.Equal(t, `implementors["mio"] = [];`, string(b))
	assert.FileExists(t, filepath.Join(dir, "implementors", "std", "io", "trait.Read.js"))
}

func TestJSON(t *testing.T) {
	v := map[string][]string{"mio": {}}
	assert.Equal(t, `{"mio":[]}`, JSONString(v))
	assert.Equal(t, "{\n  \"mio\": []\n}\n", JSONPretty(v))
	assert.Equal(t, "json: unsupported type: chan int", JSONString(make(chan int)))
}

func TestListenPort(t *testing.T) {
	port, err := ListenPort()
	require.NoError(t, err)
	assert.Positive(t, port)
}
