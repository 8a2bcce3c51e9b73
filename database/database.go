// Package database builds and queries the Notation Database: a sample of
// the Munsell solid on a fixed (hue, value, chroma) grid, holding for every
// notation the backend could convert its CIE Lab coordinates and its
// position in the Munsell cylinder.
package database

import (
	"errors"
	"fmt"
	"iter"
	"math"
	"strings"

	"github.com/kovidgoyal/munsell/colorconv"
)

var _ = fmt.Print

var ErrEmptyDatabase = errors.New("the notation database is empty")

type Record struct {
	Notation string
	Hue      string
	Value    float64
	Chroma   float64
	Lab      colorconv.Lab
	// x = chroma*cos(angle), y = chroma*sin(angle), z = value, where angle is
	// the position of the hue on the hue wheel
	Cylindrical colorconv.Vec3
}

// Cylindrical places a color in the Munsell cylinder given its hue wheel
// angle in degrees.
func Cylindrical(angle, value, chroma float64) colorconv.Vec3 {
	s, c := math.Sincos(angle * math.Pi / 180)
	return colorconv.Vec3{chroma * c, chroma * s, value}
}

// Database is immutable once built and safe for concurrent use.
type Database struct {
	grid    Grid
	records []Record
	index   map[string]int
}

func new_database(grid Grid, records []Record) *Database {
	ans := &Database{grid: grid, records: records, index: make(map[string]int, len(records))}
	for i, r := range records {
		if _, found := ans.index[r.Notation]; !found {
			ans.index[r.Notation] = i
		}
	}
	return ans
}

func (db *Database) Grid() Grid { return db.grid }

func (db *Database) Len() int { return len(db.records) }

func (db *Database) At(i int) Record { return db.records[i] }

// All iterates over the records in build order: hue major, then value,
// then chroma.
func (db *Database) All() iter.Seq2[int, Record] {
	return func(yield func(int, Record) bool) {
		for i, r := range db.records {
			if !yield(i, r) {
				return
			}
		}
	}
}

// Lookup finds a record by exact string equality. Notations that are
// valid but not on the grid, such as odd chromas, are simply not found.
func (db *Database) Lookup(notation string) (Record, bool) {
	if i, found := db.index[notation]; found {
		return db.records[i], true
	}
	return Record{}, false
}

// Nearest returns the record whose Lab coordinates are closest to lab,
// together with the squared distance, which is the square of CIE76 ΔE.
// Since only grid points are searched the match can be off by a few ΔE
// from the true nearest Munsell color. Ties go to the record that comes
// first in build order.
func (db *Database) Nearest(lab colorconv.Lab) (Record, float64, error) {
	if len(db.records) == 0 {
		return Record{}, 0, ErrEmptyDatabase
	}
	best, best_dist := 0, lab.DistanceSquared(db.records[0].Lab)
	for i, r := range db.records[1:] {
		if d := lab.DistanceSquared(r.Lab); d < best_dist {
			best, best_dist = i+1, d
		}
	}
	return db.records[best], best_dist, nil
}

// HueBounds returns the per component minimum and maximum Lab coordinates
// of all records with the given hue.
func (db *Database) HueBounds(hue_name string) (lo, hi colorconv.Lab, found bool) {
	for _, r := range db.records {
		if r.Hue != hue_name {
			continue
		}
		if !found {
			lo, hi, found = r.Lab, r.Lab, true
			continue
		}
		for i, x := range r.Lab {
			lo[i], hi[i] = min(lo[i], x), max(hi[i], x)
		}
	}
	return
}

// Scatter is the database as point clouds in the two coordinate frames a
// presentation layer plots: CIE Lab and the Munsell cylinder.
type Scatter struct {
	Notations []string         `json:"notations"`
	Lab       []colorconv.Lab  `json:"lab"`
	Cylinder  []colorconv.Vec3 `json:"cylinder"`
}

func (db *Database) Scatter() Scatter {
	ans := Scatter{
		Notations: make([]string, len(db.records)),
		Lab:       make([]colorconv.Lab, len(db.records)),
		Cylinder:  make([]colorconv.Vec3, len(db.records)),
	}
	for i, r := range db.records {
		ans.Notations[i], ans.Lab[i], ans.Cylinder[i] = r.Notation, r.Lab, r.Cylindrical
	}
	return ans
}

func (db *Database) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Database{%d of %d notations", len(db.records), db.grid.Size())
	if len(db.records) > 0 {
		fmt.Fprintf(&b, ", %s ... %s", db.records[0].Notation, db.records[len(db.records)-1].Notation)
	}
	b.WriteString("}")
	return b.String()
}
