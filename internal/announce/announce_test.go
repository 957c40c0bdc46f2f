package announce

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequiresSink(t *testing.T) {
	a, err := New(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoSink))
	assert.Nil(t, a)
}

func TestNewRejectsTypedNilSink(t *testing.T) {
	var regions *Regions
	a, err := New(regions)
	require.ErrorIs(t, err, ErrNoSink)
	assert.Nil(t, a)
}

func TestRegionsStartEmpty(t *testing.T) {
	var regions Regions
	assert.Equal(t, "", regions.Text(SlotA))
	assert.Equal(t, "", regions.Text(SlotB))
	_, ok := regions.Occupied()
	assert.False(t, ok)
}

func TestAnnounceSameTextFlipsRegion(t *testing.T) {
	regions := &Regions{}
	a, err := New(regions)
	require.NoError(t, err)

	first := a.Announce("2 results")
	assert.Equal(t, "2 results", regions.Text(first))
	assert.Equal(t, "", regions.Text(first.Other()))

	second := a.Announce("2 results")
	assert.NotEqual(t, first, second, "identical announcements must use the other region")
	assert.Equal(t, "2 results", regions.Text(second))
	assert.Equal(t, "", regions.Text(first), "previous region must be cleared")
	assert.Equal(t, 2, a.Count())
	assert.Equal(t, second, a.Last())
}

func TestAnnounceNeverWritesSameRegionTwiceInARow(t *testing.T) {
	var targets []Slot
	sink := SinkFunc(func(slot Slot, text string) {
		if text != "" {
			targets = append(targets, slot)
		}
	})
	a, err := New(sink)
	require.NoError(t, err)
	for _, text := range []string{"a", "a", "b", "b", "b", "c"} {
		a.Announce(text)
	}
	require.Len(t, targets, 6)
	for i := 1; i < len(targets); i++ {
		assert.NotEqual(t, targets[i-1], targets[i], "announcement %d reused region", i)
	}
}

func TestAnnounceEmptyTextClearsBoth(t *testing.T) {
	regions := &Regions{}
	a, err := New(regions)
	require.NoError(t, err)
	a.Announce("1 result is available.")
	a.Announce("")
	_, ok := regions.Occupied()
	assert.False(t, ok)
}

func TestRegionID(t *testing.T) {
	assert.Equal(t, "autocomplete-default__status--A", RegionID("autocomplete-default", SlotA))
	assert.Equal(t, "autocomplete-default__status--B", RegionID("autocomplete-default", SlotB))
}

func TestWriterSinkSkipsClears(t *testing.T) {
	var buf bytes.Buffer
	regions := &Regions{}
	a, err := New(MultiSink{regions, NewWriterSink("w", &buf), nil})
	require.NoError(t, err)
	a.Announce("No search results")
	a.Announce("No search results")
	assert.Equal(t, "w__status--A\tNo search results\nw__status--B\tNo search results\n", buf.String())
	assert.Equal(t, "No search results", regions.Text(SlotB))
}

func TestCompose(t *testing.T) {
	cases := []struct {
		name string
		in   Status
		want string
	}{
		{"too short", Status{QueryLength: 1, MinLength: 3}, "Type in 3 or more characters for results"},
		{"no results", Status{QueryLength: 3}, "No search results"},
		{"one result", Status{QueryLength: 1, Count: 1}, "1 result is available."},
		{"many results", Status{QueryLength: 1, Count: 1234}, "1,234 results are available."},
		{"highlighted", Status{QueryLength: 3, Count: 2, Selected: "Italy", SelectedIndex: 0}, "2 results are available. Italy 1 of 2 is highlighted"},
		{"silenced", Status{QueryLength: 3, Count: 2, Silenced: true}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Compose(tc.in))
		})
	}
}

func TestComposeCustomTemplate(t *testing.T) {
	msgs := Messages{NoResults: func() string { return "nothing" }}
	assert.Equal(t, "nothing", msgs.Compose(Status{QueryLength: 2}))
	assert.Equal(t, "3 results are available.", msgs.Compose(Status{QueryLength: 2, Count: 3}))
}
