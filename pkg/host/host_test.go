// Copyright: This file is part of implindex, released under https://github.com/korrel8r/implindex/blob/main/LICENSE

package host

import (
	"context"
	"fmt"
	"testing"

	"github.com/korrel8r/implindex/pkg/contributor"
	"github.com/korrel8r/implindex/pkg/implementors"
	"github.com/korrel8r/implindex/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scripts(n int) (scripts []*contributor.Script) {
	for i := range n {
		c := implementors.Capability(fmt.Sprintf("cap::C%v", i%3))
		scripts = append(scripts, &contributor.Script{
			Source:       fmt.Sprintf("s%02d", i),
			Contribution: *implementors.NewContribution(c).Add(implementors.Unit(fmt.Sprintf("u%v", i)), implementors.Descriptor(fmt.Sprint(i))),
		})
	}
	return scripts
}

func count(r *registry.Registry) (n int) {
	for _, c := range r.Index().Snapshot() {
		n += len(c.Entries)
	}
	return n
}

func TestRun_InstallPositions(t *testing.T) {
	for _, test := range []struct {
		install     Install
		installedAt int
	}{
		{First, 0},
		{Last, 10},
		{Install(4), 4},
		{Install(99), 10},
	} {
		t.Run(test.install.String(), func(t *testing.T) {
			r := registry.New()
			report, err := Run(context.Background(), r, scripts(10), Options{Install: test.install})
			require.NoError(t, err)
			assert.Equal(t, test.installedAt, report.InstalledAt)
			assert.Equal(t, 10, report.Scripts)
			assert.False(t, report.Lost())
			assert.Equal(t, registry.Status{State: registry.Installed, Capabilities: 3}, report.Status)
			assert.Equal(t, 10, count(r))
		})
	}
}

func TestRun_Never(t *testing.T) {
	r := registry.New()
	report, err := Run(context.Background(), r, scripts(5), Options{Install: Never})
	require.NoError(t, err)
	assert.True(t, report.Lost())
	assert.Equal(t, -1, report.InstalledAt)
	assert.Equal(t, registry.Status{State: registry.Absent, Pending: 5}, report.Status)
	assert.Equal(t, 0, count(r))
}

func TestRun_SourceOrder(t *testing.T) {
	r := registry.New()
	report, err := Run(context.Background(), r, scripts(4), Options{Install: Install(2)})
	require.NoError(t, err)
	assert.Equal(t, []string{"s00", "s01", "s02", "s03"}, report.Order)
	// Units in a capability follow merge order: drained ones first.
	units, err := r.Index().Units("cap::C0")
	require.NoError(t, err)
	assert.Equal(t, []implementors.Unit{"u0", "u3"}, units)
}

func TestRun_ShuffleIsSeeded(t *testing.T) {
	run := func(seed uint64) []string {
		report, err := Run(context.Background(), registry.New(), scripts(10), Options{Shuffle: true, Seed: seed})
		require.NoError(t, err)
		return report.Order
	}
	assert.Equal(t, run(42), run(42))
	assert.ElementsMatch(t, run(42), run(7))
}

func TestRun_Concurrent(t *testing.T) {
	for _, install := range []Install{First, Install(50), Last} {
		t.Run(install.String(), func(t *testing.T) {
			r := registry.New()
			report, err := Run(context.Background(), r, scripts(100), Options{Install: install, Concurrency: 8, Shuffle: true, Seed: 1})
			require.NoError(t, err)
			assert.False(t, report.Lost())
			assert.Equal(t, 100, count(r))
		})
	}
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := registry.New()
	report, err := Run(ctx, r, scripts(5), Options{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, report.Scripts)
}

func TestParseInstall(t *testing.T) {
	for _, test := range []struct {
		in   string
		want Install
	}{
		{"first", First}, {"LAST", Last}, {"", Last}, {"never", Never}, {"3", Install(3)}, {"0", First},
	} {
		got, err := ParseInstall(test.in)
		assert.NoError(t, err, test.in)
		assert.Equal(t, test.want, got, test.in)
	}
	for _, bad := range []string{"-1", "later", "1.5"} {
		_, err := ParseInstall(bad)
		assert.Error(t, err, bad)
	}
	b, err := Install(7).MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "7", string(b))
}
