// Copyright: This file is part of implindex, released under https://github.com/korrel8r/implindex/blob/main/LICENSE

package config

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/korrel8r/implindex/pkg/host"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var config1 = &Config{
	Sources:     []string{"https://example.com/doc/implementors/core/hash/trait.Hasher.js", "testdata/more/extra"},
	Order:       "shuffle",
	Seed:        7,
	Concurrency: 4,
	Exclude:     []string{"sirpent", "bytes"},
}

func TestLoad_Include(t *testing.T) {
	configs, err := Load("testdata/config.yaml")
	require.NoError(t, err)
	assert.Equal(t, Configs{
		"testdata/config.yaml": &Config{
			Sources: []string{"../contributor/testdata/doc"},
			Install: "last",
			Exclude: []string{"sirpent"},
			Include: []string{"more/config1.yaml", "config.yaml"},
		},
		"testdata/more/config1.yaml": config1,
	}, configs)
}

func TestLoad_JSON(t *testing.T) {
	configs, err := Load("testdata/config.json")
	require.NoError(t, err)
	assert.Equal(t, &Config{Install: "never", Include: []string{"more/config1.yaml"}}, configs["testdata/config.json"])
	assert.Equal(t, config1, configs["testdata/more/config1.yaml"])
}

func TestLoad_Error(t *testing.T) {
	_, err := Load("testdata/nonesuch.yaml")
	assert.ErrorContains(t, err, "testdata/nonesuch.yaml")
}

func TestLoad_URL(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/config/main.yaml":
			_, _ = w.Write([]byte("sources: [doc]\ninclude: [other.yaml]\n"))
		case "/config/other.yaml":
			_, _ = w.Write([]byte("install: first\n"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer s.Close()
	configs, err := Load(s.URL + "/config/main.yaml")
	require.NoError(t, err)
	assert.Equal(t, []string{s.URL + "/config/doc"}, configs[s.URL+"/config/main.yaml"].Sources)
	assert.Equal(t, "first", configs[s.URL+"/config/other.yaml"].Install)

	_, err = Load(s.URL + "/config/missing.yaml")
	assert.ErrorContains(t, err, "Not Found")
}

func TestConfigs_Merge(t *testing.T) {
	configs, err := Load("testdata/config.yaml")
	require.NoError(t, err)
	got := configs.Merge()
	assert.Equal(t, &Config{
		Sources:     []string{"../contributor/testdata/doc", "https://example.com/doc/implementors/core/hash/trait.Hasher.js", "testdata/more/extra"},
		Install:     "last",
		Order:       "shuffle",
		Seed:        7,
		Concurrency: 4,
		Exclude:     []string{"sirpent", "bytes"},
		Include:     []string{"more/config1.yaml", "config.yaml"},
	}, got)
}

func TestConfig_HostOptions(t *testing.T) {
	for _, test := range []struct {
		config Config
		want   host.Options
	}{
		{Config{}, host.Options{Install: host.Last}},
		{Config{Install: "first", Order: "source"}, host.Options{Install: host.First}},
		{Config{Install: "3", Order: "shuffle", Seed: 9, Concurrency: 2}, host.Options{Install: 3, Shuffle: true, Seed: 9, Concurrency: 2}},
	} {
		t.Run(test.config.Install, func(t *testing.T) {
			got, err := test.config.HostOptions()
			require.NoError(t, err)
			assert.Equal(t, test.want, got)
		})
	}
	for _, bad := range []Config{{Install: "soon"}, {Order: "random"}, {Concurrency: -1}} {
		_, err := bad.HostOptions()
		assert.Error(t, err, "%+v", bad)
	}
}
