package database

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kovidgoyal/munsell/internal/testutil"
	"github.com/kovidgoyal/munsell/oracle"
)

func TestCacheBuildsOnce(t *testing.T) {
	backend := &testutil.Counting{Backend: oracle.NewAnalytic()}
	c := NewCache(backend)
	grid := DefaultGrid()
	_, found := c.Cached(grid)
	require.False(t, found)

	var wg sync.WaitGroup
	results := make([]*Database, 8)
	errs := make([]error, len(results))
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = c.Get(context.Background(), grid)
		}()
	}
	wg.Wait()
	for _, err := range errs {
		require.NoError(t, err)
	}
	for _, db := range results {
		require.Same(t, results[0], db)
	}
	require.Equal(t, int64(grid.Size()), backend.Calls.Load())

	again, err := c.Get(context.Background(), DefaultGrid())
	require.NoError(t, err)
	require.Same(t, results[0], again)
	require.Equal(t, results[0].Len(), again.Len())
	require.Equal(t, results[0].At(0), again.At(0))
	require.Equal(t, results[0].At(again.Len()-1), again.At(again.Len()-1))
	require.Equal(t, int64(grid.Size()), backend.Calls.Load())

	small := Grid{Hues: []string{"5R"}, Values: []int{5}, Chromas: []int{2, 4}}
	sdb, err := c.Get(context.Background(), small)
	require.NoError(t, err)
	require.Equal(t, 2, sdb.Len())
	require.Equal(t, int64(grid.Size()+2), backend.Calls.Load())

	c.Invalidate()
	_, found = c.Cached(grid)
	require.False(t, found)
	rebuilt, err := c.Get(context.Background(), grid)
	require.NoError(t, err)
	require.NotSame(t, results[0], rebuilt)
	require.Equal(t, results[0].Scatter(), rebuilt.Scatter())
	require.Equal(t, int64(2*grid.Size()+2), backend.Calls.Load())
}

func TestCacheTimeout(t *testing.T) {
	backend := testutil.Slow{Backend: oracle.NewAnalytic(), Delay: time.Millisecond}
	c := NewCache(backend, WithBuildTimeout(10*time.Millisecond), WithBuildOptions(WithConcurrency(1)))
	grid := Grid{Hues: []string{"5R", "5Y", "5G"}, Values: []int{3, 5, 7}, Chromas: []int{2, 4, 6, 8}}
	_, err := c.Get(context.Background(), grid)
	require.ErrorIs(t, err, ErrBuildTimeout)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	_, found := c.Cached(grid)
	require.False(t, found)

	// a caller cancelling is not a timeout
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.Get(ctx, grid)
	require.ErrorIs(t, err, context.Canceled)
	require.NotErrorIs(t, err, ErrBuildTimeout)
}

func TestCacheBuildOutlivesImpatientCaller(t *testing.T) {
	backend := &testutil.Counting{Backend: testutil.Slow{Backend: oracle.NewAnalytic(), Delay: time.Millisecond}}
	c := NewCache(backend, WithBuildOptions(WithConcurrency(1)))
	grid := Grid{Hues: []string{"5R", "5Y", "5G"}, Values: []int{3, 5, 7}, Chromas: []int{2, 4, 6, 8}}

	impatient := make(chan error, 1)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
		defer cancel()
		_, err := c.Get(ctx, grid)
		impatient <- err
	}()
	// join the build the impatient caller started
	require.Eventually(t, func() bool { return backend.Calls.Load() > 0 }, time.Second, 100*time.Microsecond)
	db, err := c.Get(context.Background(), grid)
	require.NoError(t, err)
	require.Greater(t, db.Len(), 0)
	require.ErrorIs(t, <-impatient, context.DeadlineExceeded)
	require.Equal(t, int64(grid.Size()), backend.Calls.Load())
	cached, found := c.Cached(grid)
	require.True(t, found)
	require.Same(t, db, cached)
}
