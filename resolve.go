package munsell

import (
	"context"
	"fmt"
	"time"

	"github.com/kovidgoyal/munsell/colorconv"
	"github.com/kovidgoyal/munsell/database"
	"github.com/kovidgoyal/munsell/oracle"
)

var _ = fmt.Print

// Resolution is the notation a Lab color resolved to. Approximate is set
// when the backend could not invert the color and the notation is the
// nearest database record instead, DistanceSquared then is the squared Lab
// distance to that record. It is zero for exact resolutions.
type Resolution struct {
	Notation        string
	Approximate     bool
	DistanceSquared float64
}

// invert asks backend for the notation of lab directly. Any failure,
// including a panic or an empty answer, counts as no answer.
func invert(backend oracle.Backend, lab colorconv.Lab) (string, bool) {
	ans, err := oracle.Call(func() (string, error) {
		return backend.XyYToMunsell(backend.XYZToXyY(backend.LabToXYZ(lab)))
	})
	return ans, err == nil && ans != ""
}

func resolve(backend oracle.Backend, lab colorconv.Lab, get_db func() (*database.Database, error)) (Resolution, error) {
	if n, ok := invert(backend, lab); ok {
		return Resolution{Notation: n}, nil
	}
	db, err := get_db()
	if err != nil {
		return Resolution{}, err
	}
	if db == nil {
		return Resolution{}, database.ErrEmptyDatabase
	}
	r, d, err := db.Nearest(lab)
	if err != nil {
		return Resolution{}, err
	}
	return Resolution{Notation: r.Notation, Approximate: true, DistanceSquared: d}, nil
}

// FromLab resolves lab to a notation. The backend's own inverse is tried
// first since it is not limited to the sampled grid. When that fails the
// record of db closest to lab by squared Lab distance, a ΔE76 proxy, is
// used, ties going to the first record. The only possible error is
// database.ErrEmptyDatabase.
func FromLab(backend oracle.Backend, lab colorconv.Lab, db *database.Database) (Resolution, error) {
	return resolve(backend, lab, func() (*database.Database, error) { return db, nil })
}

// FromLab is like the package level FromLab using the database of c. The
// database is only built when the backend cannot invert lab, in which case
// build errors are returned too.
func (c *Converter) FromLab(ctx context.Context, lab colorconv.Lab) (Resolution, error) {
	began := time.Now()
	ans, err := resolve(c.cfg.backend, lab, func() (*database.Database, error) { return c.Database(ctx) })
	c.cfg.logger.LogResolve(ctx, lab, ans, time.Since(began), err)
	return ans, err
}
