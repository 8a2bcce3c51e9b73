package database

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/kovidgoyal/munsell/oracle"
)

var _ = fmt.Print

var ErrBuildTimeout = errors.New("timed out building the notation database")

type cache_config struct {
	timeout    time.Duration
	build_opts []BuildOption
}

// CacheOption sets an optional parameter for NewCache.
type CacheOption func(*cache_config)

// WithBuildTimeout bounds the time a single build may take. A build that
// runs out of time fails with ErrBuildTimeout and is not cached, so the next
// Get starts over. Zero, the default, means no limit.
func WithBuildTimeout(d time.Duration) CacheOption {
	return func(c *cache_config) {
		c.timeout = d
	}
}

// WithBuildOptions sets the options passed to Build.
func WithBuildOptions(opts ...BuildOption) CacheOption {
	return func(c *cache_config) {
		c.build_opts = append(c.build_opts, opts...)
	}
}

// Cache owns the databases built from one backend. Each grid is built at
// most once, concurrent first requests share a single build, and a database
// becomes visible to readers only once it is complete.
type Cache struct {
	backend oracle.Backend
	cfg     cache_config
	group   singleflight.Group

	mu         sync.RWMutex
	built      map[string]*Database
	generation uint64
}

func NewCache(backend oracle.Backend, opts ...CacheOption) *Cache {
	ans := &Cache{backend: backend, built: make(map[string]*Database)}
	for _, o := range opts {
		o(&ans.cfg)
	}
	return ans
}

// Cached returns the database for grid if it has already been built.
func (c *Cache) Cached(grid Grid) (*Database, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	db, found := c.built[grid.Key()]
	return db, found
}

// Get returns the database for grid, building it on first use. Concurrent
// callers share one build, which is not tied to the context of any of
// them: a caller whose ctx is done stops waiting and gets ctx.Err(), the
// others keep waiting and the finished build is cached.
func (c *Cache) Get(ctx context.Context, grid Grid) (*Database, error) {
	if db, found := c.Cached(grid); found {
		return db, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key := grid.Key()
	ch := c.group.DoChan(key, func() (any, error) {
		if db, found := c.Cached(grid); found {
			return db, nil
		}
		c.mu.RLock()
		generation := c.generation
		c.mu.RUnlock()
		bctx := context.WithoutCancel(ctx)
		if c.cfg.timeout > 0 {
			var cancel context.CancelFunc
			bctx, cancel = context.WithTimeout(bctx, c.cfg.timeout)
			defer cancel()
		}
		db, err := Build(bctx, c.backend, grid, c.cfg.build_opts...)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				err = fmt.Errorf("%w after %s: %w", ErrBuildTimeout, c.cfg.timeout, err)
			}
			return nil, err
		}
		c.mu.Lock()
		if c.generation == generation {
			c.built[key] = db
		}
		c.mu.Unlock()
		return db, nil
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}
		return r.Val.(*Database), nil
	}
}

// Invalidate drops every cached database. Builds already running are not
// cached when they finish.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	clear(c.built)
}
