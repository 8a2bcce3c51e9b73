package munsell

import (
	"context"
	"fmt"
	"time"

	"github.com/kovidgoyal/munsell/colorconv"
	"github.com/kovidgoyal/munsell/database"
	"github.com/kovidgoyal/munsell/notation"
	"github.com/kovidgoyal/munsell/oracle"
	"github.com/kovidgoyal/munsell/preview"
)

var _ = fmt.Print

// Colorimetric is the result of converting a notation: XYZ (D65, white Y =
// 1), L*a*b* and its cylindrical LCH form.
type Colorimetric struct {
	Notation string
	XYZ      colorconv.XYZ
	Lab      colorconv.Lab
	LCH      colorconv.LCH
}

// Converter is safe for concurrent use. The notation database it needs for
// reverse conversion is built on first use and shared by all later calls.
type Converter struct {
	cfg   config
	cache *database.Cache
}

func New(opts ...Option) *Converter {
	cfg := config{grid: database.DefaultGrid()}
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.backend == nil {
		cfg.backend = oracle.NewAnalytic()
	}
	if cfg.logger == nil {
		cfg.logger = NoopLogger()
	}
	cfg.logger = cfg.logger.WithBackend(fmt.Sprintf("%T", cfg.backend))
	build_opts := []database.BuildOption{database.WithConcurrency(cfg.concurrency), database.WithLogger(cfg.logger.Logger)}
	if cfg.progress != nil {
		build_opts = append(build_opts, database.WithProgress(cfg.progress))
	}
	return &Converter{
		cfg:   cfg,
		cache: database.NewCache(cfg.backend, database.WithBuildTimeout(cfg.build_timeout), database.WithBuildOptions(build_opts...)),
	}
}

func (c *Converter) Backend() oracle.Backend { return c.cfg.backend }

func (c *Converter) Grid() database.Grid { return c.cfg.grid }

func (c *Converter) Logger() *Logger { return c.cfg.logger }

// ToColorimetric converts a notation through backend. Every failure,
// including malformed notations and backend panics, is reported as an
// *OutOfGamutError carrying the notation.
func ToColorimetric(backend oracle.Backend, spec string) (Colorimetric, error) {
	ans, err := oracle.Call(func() (ans Colorimetric, err error) {
		xyY, err := backend.MunsellToXyY(spec)
		if err != nil {
			return
		}
		ans.XYZ = backend.XyYToXYZ(xyY)
		ans.Lab = backend.XYZToLab(ans.XYZ)
		if !colorconv.Vec3(ans.Lab).IsFinite() {
			err = fmt.Errorf("%w: non-finite Lab %v", oracle.ErrConversion, ans.Lab)
		}
		return
	})
	if err != nil {
		return Colorimetric{}, &OutOfGamutError{Notation: spec, cause: err}
	}
	ans.Notation = spec
	ans.LCH = ans.Lab.LCH()
	return ans, nil
}

func (c *Converter) ToColorimetric(spec string) (Colorimetric, error) {
	ans, err := ToColorimetric(c.cfg.backend, spec)
	c.cfg.logger.LogForward(context.Background(), spec, err)
	return ans, err
}

// Database returns the notation database, building it if needed. Builds
// are shared between concurrent callers and, once successful, cached for
// the lifetime of the Converter or until Invalidate is called.
func (c *Converter) Database(ctx context.Context) (*database.Database, error) {
	if db, found := c.cache.Cached(c.cfg.grid); found {
		return db, nil
	}
	began := time.Now()
	db, err := c.cache.Get(ctx, c.cfg.grid)
	records := 0
	if db != nil {
		records = db.Len()
	}
	c.cfg.logger.LogBuild(ctx, records, time.Since(began), err)
	return db, err
}

// Invalidate drops the cached database, the next call that needs it
// rebuilds it. Only useful with a backend whose answers can change.
func (c *Converter) Invalidate() { c.cache.Invalidate() }

// Locate returns the position in the Munsell cylinder of a notation that
// is on the database grid. Notations that are off grid, such as odd
// chromas or fractional values, are not found, which is not an error.
func (c *Converter) Locate(ctx context.Context, spec string) (colorconv.Vec3, bool, error) {
	db, err := c.Database(ctx)
	if err != nil {
		return colorconv.Vec3{}, false, err
	}
	if n, perr := notation.Parse(spec); perr == nil {
		spec = n.String()
	}
	r, found := db.Lookup(spec)
	return r.Cylindrical, found, nil
}

// LabToHex is the #RRGGBB preview color of lab.
func (c *Converter) LabToHex(lab colorconv.Lab) (string, error) {
	return preview.LabToHex(c.cfg.backend, lab)
}
