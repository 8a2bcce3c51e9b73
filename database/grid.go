package database

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/kovidgoyal/munsell/hue"
)

var _ = fmt.Print

// Grid is the set of (hue, value, chroma) points sampled into a Database.
type Grid struct {
	Hues    []string
	Values  []int
	Chromas []int
}

// DefaultGrid is all 40 hues, values 1 to 9 and even chromas from 2 to 28.
func DefaultGrid() Grid {
	ans := Grid{Hues: slices.Clone(hue.Names[:])}
	for v := 1; v <= 9; v++ {
		ans.Values = append(ans.Values, v)
	}
	for c := 2; c <= 28; c += 2 {
		ans.Chromas = append(ans.Chromas, c)
	}
	return ans
}

// Size is the number of candidate notations in the grid.
func (g Grid) Size() int { return len(g.Hues) * len(g.Values) * len(g.Chromas) }

func join_ints(s []int) string {
	parts := make([]string, len(s))
	for i, x := range s {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, ",")
}

// Key identifies the grid for caching. Grids with equal keys sample the
// same notations in the same order.
func (g Grid) Key() string {
	return strings.Join(g.Hues, ",") + "|" + join_ints(g.Values) + "|" + join_ints(g.Chromas)
}

// Validate checks that every hue is on the hue wheel.
func (g Grid) Validate() error {
	for _, h := range g.Hues {
		if _, err := hue.Index(h); err != nil {
			return fmt.Errorf("invalid grid: %w", err)
		}
	}
	return nil
}

func (g Grid) notation(hue_name string, value, chroma int) string {
	return fmt.Sprintf("%s %d/%d", hue_name, value, chroma)
}
