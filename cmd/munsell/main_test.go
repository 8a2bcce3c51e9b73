package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kettek/apng"
	"github.com/stretchr/testify/require"

	"github.com/kovidgoyal/munsell"
	"github.com/kovidgoyal/munsell/database"
	"github.com/kovidgoyal/munsell/internal/testutil"
	"github.com/kovidgoyal/munsell/oracle"
)

func run_cmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := bytes.Buffer{}
	err := run(context.Background(), munsell.New(), args, &out)
	return out.String(), err
}

func TestCommands(t *testing.T) {
	out, err := run_cmd(t, "forward", "5R 5/10")
	require.NoError(t, err)
	require.Contains(t, out, "Notation:  5R 5/10\n")
	require.Contains(t, out, "Cylinder:")

	out, err = run_cmd(t, "reverse", "50", "0", "0")
	require.NoError(t, err)
	require.Contains(t, out, "Notation:  N ")

	out, err = run_cmd(t, "hex", "50", "0", "0")
	require.NoError(t, err)
	require.Equal(t, "#767676\n", out)

	dir := t.TempDir()
	swatch := filepath.Join(dir, "swatch.png")
	_, err = run_cmd(t, "swatch", "60", "40", "20", swatch)
	require.NoError(t, err)
	data, err := os.ReadFile(swatch)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))

	compare := filepath.Join(dir, "compare.png")
	out, err = run_cmd(t, "compare", "60", "40", "20", compare)
	require.NoError(t, err)
	require.Contains(t, out, "compared with")
	f, err := os.Open(compare)
	require.NoError(t, err)
	defer f.Close()
	a, err := apng.DecodeAll(f)
	require.NoError(t, err)
	require.Len(t, a.Frames, 2)

	dump := filepath.Join(dir, "db.json")
	_, err = run_cmd(t, "dump", dump)
	require.NoError(t, err)
	data, err = os.ReadFile(dump)
	require.NoError(t, err)
	var scatter database.Scatter
	require.NoError(t, json.Unmarshal(data, &scatter))
	require.NotEmpty(t, scatter.Notations)
	require.Equal(t, len(scatter.Notations), len(scatter.Cylinder))
}

func TestForwardConvertsOnce(t *testing.T) {
	counting := &testutil.Counting{Backend: oracle.NewAnalytic()}
	c := munsell.New(munsell.WithOracle(counting))
	_, err := c.Database(context.Background())
	require.NoError(t, err)
	before := counting.Calls.Load()
	out := bytes.Buffer{}
	require.NoError(t, run(context.Background(), c, []string{"forward", "5R 5/10"}, &out))
	require.Equal(t, int64(1), counting.Calls.Load()-before)
	require.Contains(t, out.String(), "LCH:")
}

func TestVersionCommand(t *testing.T) {
	out, err := run_cmd(t, "version")
	require.NoError(t, err)
	require.Equal(t, munsell.Version.String()+"\n", out)
}

func TestCommandErrors(t *testing.T) {
	for _, args := range [][]string{{}, {"frobnicate"}, {"forward"}, {"hex", "1", "2"}, {"swatch", "1", "2", "3"}} {
		_, err := run_cmd(t, args...)
		var ue usage_error
		require.ErrorAs(t, err, &ue, strings.Join(args, " "))
	}
	_, err := run_cmd(t, "hex", "1", "x", "3")
	require.ErrorContains(t, err, `"x" is not a number`)
	_, err = run_cmd(t, "forward", "5R 5/60")
	require.ErrorIs(t, err, munsell.ErrOutOfGamut)
}
