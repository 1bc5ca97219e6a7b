// Copyright: This file is part of implindex, released under https://github.com/korrel8r/implindex/blob/main/LICENSE

package registry

import (
	"testing"

	"github.com/korrel8r/implindex/pkg/implementors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndex_EmptyListIsMeaningful(t *testing.T) {
	x := NewIndex()
	x.Merge(*implementors.NewContribution("a::B").Add("empty"))

	list, ok := x.Implementors("a::B", "empty")
	assert.True(t, ok)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	_, ok = x.Implementors("a::B", "missing")
	assert.False(t, ok)
	_, err := x.ImplementorsErr("a::B", "missing")
	assert.True(t, implementors.IsUnitNotFoundError(err), "%v", err)
	_, err = x.ImplementorsErr("x::Y", "empty")
	assert.True(t, implementors.IsCapabilityNotFoundError(err), "%v", err)
}

func TestIndex_MergeOrder(t *testing.T) {
	x := NewIndex()
	x.Merge(*implementors.NewContribution("b::B").Add("z").Add("a"))
	x.Merge(*implementors.NewContribution("a::A").Add("m"))
	x.Merge(*implementors.NewContribution("b::B").Add("c").Add("z", "D"))

	assert.Equal(t, []implementors.Capability{"b::B", "a::A"}, x.Capabilities())
	units, err := x.Units("b::B")
	require.NoError(t, err)
	assert.Equal(t, []implementors.Unit{"z", "a", "c"}, units)
	assert.Equal(t, []Summary{
		{Capability: "b::B", Units: 3, Implementors: 1},
		{Capability: "a::A", Units: 1},
	}, x.Summaries())
}

func TestIndex_MergeOverwrites(t *testing.T) {
	x := NewIndex()
	assert.Equal(t, 0, x.Merge(*implementors.NewContribution("a::A").Add("u", "1")))
	assert.Equal(t, 0, x.Merge(*implementors.NewContribution("a::A").Add("u", "1")), "same content")
	assert.Equal(t, 1, x.Merge(*implementors.NewContribution("a::A").Add("u", "2")))
	// Duplicate unit keys inside one contribution: last one wins.
	x.Merge(*implementors.NewContribution("a::A").Add("v", "x").Add("v", "y"))
	got, _ := x.Implementors("a::A", "v")
	assert.Equal(t, []implementors.Descriptor{"y"}, got)
}

func TestIndex_EntriesExclude(t *testing.T) {
	x := NewIndex()
	x.Merge(*implementors.NewContribution("a::A").Add("self", "S").Add("other", "O").Add("third"))
	entries, err := x.Entries("a::A", "self")
	require.NoError(t, err)
	assert.Equal(t, []implementors.Entry{
		{Unit: "other", Implementors: []implementors.Descriptor{"O"}},
		{Unit: "third", Implementors: []implementors.Descriptor{}},
	}, entries)
	_, err = x.Entries("missing::M")
	assert.True(t, implementors.IsCapabilityNotFoundError(err))
}

func TestIndex_QueriesReturnCopies(t *testing.T) {
	x := NewIndex()
	x.Merge(*implementors.NewContribution("a::A").Add("u", "1"))
	got, _ := x.Implementors("a::A", "u")
	got[0] = "changed"
	snap := x.Snapshot()
	snap[0].Entries[0].Implementors[0] = "changed"
	again, _ := x.Implementors("a::A", "u")
	assert.Equal(t, []implementors.Descriptor{"1"}, again)
}

func TestState_Text(t *testing.T) {
	for _, s := range []State{Absent, Installed} {
		b, err := s.MarshalText()
		require.NoError(t, err)
		var got State
		require.NoError(t, got.UnmarshalText(b))
		assert.Equal(t, s, got)
	}
	var s State
	assert.Error(t, s.UnmarshalText([]byte("gone")))
}
