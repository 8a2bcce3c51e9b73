package database

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/kovidgoyal/go-parallel"

	"github.com/kovidgoyal/munsell/colorconv"
	"github.com/kovidgoyal/munsell/hue"
	"github.com/kovidgoyal/munsell/oracle"
)

var _ = fmt.Print

type build_config struct {
	concurrency int
	progress    func(done, total int)
	logger      *slog.Logger
}

var default_build_config = build_config{
	logger: slog.New(slog.DiscardHandler),
}

// BuildOption sets an optional parameter for Build.
type BuildOption func(*build_config)

// WithConcurrency sets the number of hues sampled in parallel. Zero, the
// default, means one worker per CPU.
func WithConcurrency(n int) BuildOption {
	return func(c *build_config) {
		c.concurrency = max(0, n)
	}
}

// WithProgress registers a function called after each hue is sampled with
// the number of hues done so far. Calls are serialized but may come from
// any goroutine.
func WithProgress(f func(done, total int)) BuildOption {
	return func(c *build_config) {
		c.progress = f
	}
}

func WithLogger(l *slog.Logger) BuildOption {
	return func(c *build_config) {
		if l != nil {
			c.logger = l
		}
	}
}

type hue_sample struct {
	records []Record
	skipped int
}

// sample_hue converts every value/chroma combination of one hue. Grid
// points the backend cannot convert are expected, large parts of the grid
// lie outside the Munsell solid, and are skipped.
func sample_hue(backend oracle.Backend, grid Grid, hue_name string, angle float64) (ans hue_sample) {
	ans.records = make([]Record, 0, len(grid.Values)*len(grid.Chromas))
	for _, v := range grid.Values {
		for _, c := range grid.Chromas {
			spec := grid.notation(hue_name, v, c)
			lab, err := oracle.Call(func() (colorconv.Lab, error) {
				xyY, err := backend.MunsellToXyY(spec)
				if err != nil {
					return colorconv.Lab{}, err
				}
				return backend.XYZToLab(backend.XyYToXYZ(xyY)), nil
			})
			if err != nil || !colorconv.Vec3(lab).IsFinite() {
				ans.skipped++
				continue
			}
			ans.records = append(ans.records, Record{
				Notation: spec, Hue: hue_name, Value: float64(v), Chroma: float64(c), Lab: lab,
				Cylindrical: Cylindrical(angle, float64(v), float64(c)),
			})
		}
	}
	return
}

// Build samples grid through backend. Hues are sampled in parallel but the
// records are always in hue, value, chroma order, so repeated builds give
// identical databases. The build stops early, returning the context error,
// when ctx is done.
func Build(ctx context.Context, backend oracle.Backend, grid Grid, opts ...BuildOption) (*Database, error) {
	cfg := default_build_config
	for _, o := range opts {
		o(&cfg)
	}
	if err := grid.Validate(); err != nil {
		return nil, err
	}
	began := time.Now()
	num_hues := len(grid.Hues)
	parts := make([]hue_sample, num_hues)
	var done atomic.Int64
	var progress_lock sync.Mutex
	f := func(start, limit int) {
		for i := start; i < limit; i++ {
			if ctx.Err() != nil {
				return
			}
			name := grid.Hues[i]
			idx, _ := hue.Index(name)
			parts[i] = sample_hue(backend, grid, name, hue.Angle(idx))
			n := done.Add(1)
			if cfg.progress != nil {
				progress_lock.Lock()
				cfg.progress(int(n), num_hues)
				progress_lock.Unlock()
			}
		}
	}
	if err := parallel.Run_in_parallel_over_range(cfg.concurrency, f, 0, num_hues); err != nil {
		return nil, fmt.Errorf("failed to build the notation database: %w", err)
	}
	if err := ctx.Err(); err != nil {
		cfg.logger.WarnContext(ctx, "notation database build aborted", "hues_done", done.Load(), "hues", num_hues, "error", err)
		return nil, err
	}
	skipped, records := 0, make([]Record, 0, grid.Size())
	for _, p := range parts {
		records = append(records, p.records...)
		skipped += p.skipped
	}
	db := new_database(grid, records)
	cfg.logger.InfoContext(ctx, "notation database built",
		"records", len(records),
		"skipped", skipped,
		"candidates", grid.Size(),
		"duration", time.Since(began),
	)
	return db, nil
}
