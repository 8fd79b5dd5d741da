// Copyright (c) 2026 Cosona. All rights reserved.
// Author: mai.haruki.jp@gmail.com

package reqcache_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harukimai/cosona/internal/platform/reqcache"
)

/*
TestMemoize_SingleComputation verifies that repeated calls with the same key
run the function once and share the result.
*/
func TestMemoize_SingleComputation(t *testing.T) {
	cache := reqcache.New()
	calls := 0

	for i := 0; i < 3; i++ {
		value, err := reqcache.Memoize(cache, "key", func() (string, error) {
			calls++
			return "result", nil
		})
		require.NoError(t, err)
		assert.Equal(t, "result", value)
	}

	assert.Equal(t, 1, calls)
}

/*
TestMemoize_DistinctKeys verifies that different keys do not share results.
*/
func TestMemoize_DistinctKeys(t *testing.T) {
	cache := reqcache.New()

	a, _ := reqcache.Memoize(cache, "a", func() (int, error) { return 1, nil })
	b, _ := reqcache.Memoize(cache, "b", func() (int, error) { return 2, nil })

	assert.Equal(t, 1, a)
	assert.Equal(t, 2, b)
}

/*
TestMemoize_ErrorsAreShared verifies that a failed computation is memoized
too: the error is replayed, not retried, within the same request.
*/
func TestMemoize_ErrorsAreShared(t *testing.T) {
	cache := reqcache.New()
	calls := 0
	boom := errors.New("storage down")

	for i := 0; i < 2; i++ {
		_, err := reqcache.Memoize(cache, "key", func() (int, error) {
			calls++
			return 0, boom
		})
		assert.ErrorIs(t, err, boom)
	}

	assert.Equal(t, 1, calls)
}

/*
TestMemoize_NilCache verifies the bypass path: without a cache the function
runs every time.
*/
func TestMemoize_NilCache(t *testing.T) {
	calls := 0

	for i := 0; i < 2; i++ {
		value, err := reqcache.Memoize(nil, "key", func() (int, error) {
			calls++
			return 42, nil
		})
		require.NoError(t, err)
		assert.Equal(t, 42, value)
	}

	assert.Equal(t, 2, calls)
}

/*
TestMemoize_ConcurrentCallersShareFlight verifies duplicate suppression:
concurrent callers of one key block on a single computation.
*/
func TestMemoize_ConcurrentCallersShareFlight(t *testing.T) {
	cache := reqcache.New()
	var calls atomic.Int32

	const workers = 16
	var wg sync.WaitGroup
	results := make([]int, workers)

	for i := 0; i < workers; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			value, err := reqcache.Memoize(cache, "shared", func() (int, error) {
				calls.Add(1)
				return 7, nil
			})
			assert.NoError(t, err)
			results[i] = value
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, v := range results {
		assert.Equal(t, 7, v)
	}
}

/*
TestMemoize_PanicUnblocksWaiters verifies that a panicking computation
still releases callers waiting on the same key. The panic propagates to
the first caller; later callers get an error instead of blocking forever.
*/
func TestMemoize_PanicUnblocksWaiters(t *testing.T) {
	cache := reqcache.New()

	require.Panics(t, func() {
		_, _ = reqcache.Memoize(cache, "key", func() (int, error) {
			panic("boom")
		})
	})

	done := make(chan error, 1)
	go func() {
		_, err := reqcache.Memoize(cache, "key", func() (int, error) {
			return 1, nil
		})
		done <- err
	}()

	select {
	case err := <-done:
		require.Error(t, err)
		assert.Contains(t, err.Error(), "panicked")
	case <-time.After(time.Second):
		t.Fatal("waiter on a panicked key never unblocked")
	}
}

/*
TestContextPlumbing verifies cache injection and retrieval via context.
*/
func TestContextPlumbing(t *testing.T) {
	assert.Nil(t, reqcache.FromContext(context.Background()))

	cache := reqcache.New()
	ctx := reqcache.With(context.Background(), cache)
	assert.Same(t, cache, reqcache.FromContext(ctx))
}
