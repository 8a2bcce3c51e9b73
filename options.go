package munsell

import (
	"fmt"
	"time"

	"github.com/kovidgoyal/munsell/database"
	"github.com/kovidgoyal/munsell/oracle"
)

var _ = fmt.Print

type config struct {
	backend       oracle.Backend
	logger        *Logger
	grid          database.Grid
	build_timeout time.Duration
	progress      func(done, total int)
	concurrency   int
}

// Option sets an optional parameter for New.
type Option func(*config)

// WithOracle sets the colorimetric backend. Defaults to oracle.NewAnalytic().
func WithOracle(b oracle.Backend) Option {
	return func(c *config) {
		c.backend = b
	}
}

// WithLogger sets the logger. Defaults to NoopLogger().
func WithLogger(l *Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithGrid sets the notations sampled into the database used by reverse
// conversion. Defaults to database.DefaultGrid().
func WithGrid(g database.Grid) Option {
	return func(c *config) {
		c.grid = g
	}
}

// WithBuildTimeout bounds the time building the database may take.
func WithBuildTimeout(d time.Duration) Option {
	return func(c *config) {
		c.build_timeout = d
	}
}

// WithProgress sets a function that is called as hues of the database are
// sampled.
func WithProgress(f func(done, total int)) Option {
	return func(c *config) {
		c.progress = f
	}
}

// WithConcurrency sets the number of goroutines used to build the
// database. Zero, the default, means one per CPU.
func WithConcurrency(n int) Option {
	return func(c *config) {
		c.concurrency = n
	}
}
