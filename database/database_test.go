package database

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/kovidgoyal/munsell/colorconv"
	"github.com/kovidgoyal/munsell/hue"
	"github.com/kovidgoyal/munsell/internal/testutil"
	"github.com/kovidgoyal/munsell/oracle"
)

var _ = fmt.Print

func build_default(t *testing.T, backend oracle.Backend, opts ...BuildOption) *Database {
	t.Helper()
	db, err := Build(context.Background(), backend, DefaultGrid(), opts...)
	require.NoError(t, err)
	return db
}

func TestDefaultGrid(t *testing.T) {
	g := DefaultGrid()
	require.Equal(t, 40*9*14, g.Size())
	require.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9}, g.Values)
	require.Equal(t, 2, g.Chromas[0])
	require.Equal(t, 28, g.Chromas[len(g.Chromas)-1])
	require.Equal(t, g.Key(), DefaultGrid().Key())
	other := DefaultGrid()
	other.Chromas = other.Chromas[:3]
	require.NotEqual(t, g.Key(), other.Key())
	require.NoError(t, g.Validate())
}

func TestBuildInvariants(t *testing.T) {
	db := build_default(t, oracle.NewAnalytic())
	require.Greater(t, db.Len(), 0)
	require.Less(t, db.Len(), DefaultGrid().Size())

	prev_hue, prev_value, prev_chroma := -1, 0.0, 0.0
	for i, r := range db.All() {
		require.Equal(t, r, db.At(i))
		require.Equal(t, r.Value, r.Cylindrical[2], r.Notation)
		idx, err := hue.Index(r.Hue)
		require.NoError(t, err)
		angle := hue.Angle(idx) * math.Pi / 180
		require.InDelta(t, r.Chroma*math.Cos(angle), r.Cylindrical[0], 1e-9, r.Notation)
		require.InDelta(t, r.Chroma*math.Sin(angle), r.Cylindrical[1], 1e-9, r.Notation)
		require.Equal(t, fmt.Sprintf("%s %g/%g", r.Hue, r.Value, r.Chroma), r.Notation)
		require.True(t, colorconv.Vec3(r.Lab).IsFinite())
		// hue major, value next, chroma last
		switch {
		case idx > prev_hue:
		case idx == prev_hue && r.Value > prev_value:
		case idx == prev_hue && r.Value == prev_value && r.Chroma > prev_chroma:
		default:
			t.Fatalf("record %d (%s) is out of order", i, r.Notation)
		}
		prev_hue, prev_value, prev_chroma = idx, r.Value, r.Chroma
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	a := build_default(t, oracle.NewAnalytic(), WithConcurrency(1))
	b := build_default(t, oracle.NewAnalytic(), WithConcurrency(7))
	if diff := cmp.Diff(a.Scatter(), b.Scatter()); diff != "" {
		t.Fatalf("parallel build differs from serial build (-serial +parallel):\n%s", diff)
	}
}

func TestBuildSkipsFailures(t *testing.T) {
	backend := testutil.FlakyForward{Backend: oracle.NewAnalytic(), Reject: []string{"5R "}, Explode: []string{"7.5R "}}
	db := build_default(t, backend)
	seen := map[string]bool{}
	for _, r := range db.All() {
		seen[r.Hue] = true
	}
	require.False(t, seen["5R"])
	require.False(t, seen["7.5R"])
	require.True(t, seen["2.5R"])
	require.True(t, seen["10RP"])

	db = build_default(t, testutil.Undefined{Backend: oracle.NewAnalytic()})
	require.Equal(t, 0, db.Len())
	_, _, err := db.Nearest(colorconv.Lab{50, 0, 0})
	require.ErrorIs(t, err, ErrEmptyDatabase)
}

func TestBuildProgressAndLogging(t *testing.T) {
	var calls, totals []int
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	db := build_default(t, oracle.NewAnalytic(), WithProgress(func(done, total int) {
		calls = append(calls, done)
		totals = append(totals, total)
	}), WithLogger(logger))
	require.Len(t, calls, hue.Count)
	require.Contains(t, calls, hue.Count)
	for _, total := range totals {
		require.Equal(t, hue.Count, total)
	}
	out := buf.String()
	require.Contains(t, out, "notation database built")
	require.Contains(t, out, fmt.Sprintf(`"records":%d`, db.Len()))
	require.Contains(t, out, `"candidates":5040`)
}

func TestBuildErrors(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Build(ctx, oracle.NewAnalytic(), DefaultGrid())
	require.ErrorIs(t, err, context.Canceled)

	g := DefaultGrid()
	g.Hues = []string{"5R", "5Q"}
	_, err = Build(context.Background(), oracle.NewAnalytic(), g)
	require.ErrorIs(t, err, hue.ErrUnknownHue)
}

func TestLookup(t *testing.T) {
	db := build_default(t, oracle.NewAnalytic())
	r, found := db.Lookup("5R 5/10")
	require.True(t, found)
	require.Equal(t, "5R", r.Hue)
	require.Equal(t, 5.0, r.Value)
	require.Equal(t, 10.0, r.Chroma)
	for _, missing := range []string{"5R 5/11", "5R 5.5/10", " 5R 5/10", "N 5/", "5R 5/60"} {
		_, found = db.Lookup(missing)
		require.False(t, found, missing)
	}
}

func TestNearest(t *testing.T) {
	db := build_default(t, oracle.NewAnalytic())
	for i, r := range db.All() {
		if i%37 != 0 {
			continue
		}
		got, d, err := db.Nearest(r.Lab)
		require.NoError(t, err)
		require.Equal(t, 0.0, d)
		require.Equal(t, r.Lab, got.Lab)
	}
	// an arbitrary color is at least as close to its match as to any other record
	probe := colorconv.Lab{63, -21, 37}
	got, d, err := db.Nearest(probe)
	require.NoError(t, err)
	for _, r := range db.All() {
		require.LessOrEqual(t, d, probe.DistanceSquared(r.Lab))
	}
	require.Equal(t, d, probe.DistanceSquared(got.Lab))
}

func TestNearestTiesGoToFirst(t *testing.T) {
	lab := colorconv.Lab{40, 10, 10}
	db := new_database(DefaultGrid(), []Record{
		{Notation: "far", Lab: colorconv.Lab{90, 0, 0}},
		{Notation: "first", Lab: lab},
		{Notation: "second", Lab: lab},
	})
	got, _, err := db.Nearest(colorconv.Lab{41, 10, 10})
	require.NoError(t, err)
	require.Equal(t, "first", got.Notation)
	// duplicate notations resolve to the first occurrence
	db = new_database(DefaultGrid(), []Record{{Notation: "x", Value: 1}, {Notation: "x", Value: 2}})
	r, _ := db.Lookup("x")
	require.Equal(t, 1.0, r.Value)
}

func TestHueBoundsAndScatter(t *testing.T) {
	db := build_default(t, oracle.NewAnalytic())
	lo, hi, found := db.HueBounds("5R")
	require.True(t, found)
	for _, r := range db.All() {
		if r.Hue != "5R" {
			continue
		}
		for i := range 3 {
			require.True(t, lo[i] <= r.Lab[i] && r.Lab[i] <= hi[i])
		}
	}
	_, _, found = db.HueBounds("N")
	require.False(t, found)

	s := db.Scatter()
	require.Len(t, s.Notations, db.Len())
	require.Len(t, s.Lab, db.Len())
	require.Len(t, s.Cylinder, db.Len())
	require.Equal(t, db.At(3).Notation, s.Notations[3])
	require.Equal(t, db.At(3).Cylindrical, s.Cylinder[3])
	require.True(t, strings.HasPrefix(db.String(), "Database{"))
}
