package hue

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	prev := -1.0
	for i, name := range Names {
		idx, err := Index(name)
		require.NoError(t, err)
		require.Equal(t, i, idx)
		a := Angle(idx)
		require.Equal(t, a, Angle(idx))
		require.Equal(t, float64(i)*9, a)
		require.Greater(t, a, prev)
		require.Less(t, a, 360.0)
		prev = a
	}
}

func TestEvenSpacing(t *testing.T) {
	entries := Entries()
	require.Len(t, entries, Count)
	for i := range entries {
		next := entries[(i+1)%Count]
		gap := next.Angle() - entries[i].Angle()
		if gap < 0 {
			gap += 360
		}
		require.InDelta(t, 9.0, gap, 1e-12, "between %s and %s", entries[i], next)
	}
}

func TestUnknownHue(t *testing.T) {
	for _, name := range []string{"", "5", "0R", "12.5R", "5r", "N", "5R "} {
		_, err := Index(name)
		require.ErrorIs(t, err, ErrUnknownHue, name)
		_, err = Lookup(name)
		require.ErrorIs(t, err, ErrUnknownHue, name)
	}
	e, err := Lookup("5PB")
	require.NoError(t, err)
	require.Equal(t, Entry{Name: "5PB", Index: 29}, e)
	require.Equal(t, 261.0, e.Angle())
}
