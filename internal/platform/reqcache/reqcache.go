// Copyright (c) 2026 Cosona. All rights reserved.
// Author: mai.haruki.jp@gmail.com

/*
Package reqcache implements a request-scoped memoized cache for read queries.

# Scope Discipline

A [Cache] lives exactly as long as one incoming request: the middleware
injects a fresh instance into the request context, services consult it via
[Memoize], and it is garbage-collected when the request finishes. Results
therefore never leak across independent requests and are never staler than
the request that produced them.

# Duplicate Suppression

Within one request, concurrent callers of the same key share a single
in-flight computation: the first caller runs the function, later callers
block until it completes and receive the same result. This is what keeps a
composite page (e.g. the homepage fetching cosplayers + gallery + events in
parallel) from issuing duplicate storage queries.
*/
package reqcache

import (
	"context"
	"fmt"
	"sync"

	"github.com/harukimai/cosona/internal/platform/ctxkey"
)

// Cache memoizes keyed computations for the lifetime of one request.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// entry tracks one in-flight or completed computation.
type entry struct {
	done chan struct{}
	val  any
	err  error
}

// New returns an empty request cache.
func New() *Cache {
	return &Cache{entries: make(map[string]*entry)}
}

// do returns the memoized result for key, computing it with fn on first use.
// Concurrent callers with the same key block until the first computation
// completes and then share its result.
func (c *Cache) do(key string, fn func() (any, error)) (any, error) {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok {
		c.mu.Unlock()
		<-e.done
		return e.val, e.err
	}

	e := &entry{done: make(chan struct{})}
	c.entries[key] = e
	c.mu.Unlock()

	// The done channel must close even if fn panics, or every later caller
	// of the same key would block forever. Waiters observe the panic as an
	// error; the panic itself propagates to the recovery middleware.
	defer func() {
		if r := recover(); r != nil {
			e.err = fmt.Errorf("reqcache: computation for key %q panicked: %v", key, r)
			close(e.done)
			panic(r)
		}
		close(e.done)
	}()

	e.val, e.err = fn()
	return e.val, e.err
}

// Memoize runs fn through the request cache under the given key.
//
// When no cache is present (nil receiver, e.g. outside an HTTP request),
// fn runs directly: memoization is an optimization, never a requirement.
func Memoize[T any](c *Cache, key string, fn func() (T, error)) (T, error) {
	if c == nil {
		return fn()
	}

	v, err := c.do(key, func() (any, error) { return fn() })
	if v == nil {
		var zero T
		return zero, err
	}
	return v.(T), err
}

// # Context Plumbing

// With returns a new context carrying the given cache.
func With(ctx context.Context, cache *Cache) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRequestCache, cache)
}

// FromContext retrieves the request cache, or nil when outside a request.
func FromContext(ctx context.Context) *Cache {
	cache, _ := ctx.Value(ctxkey.KeyRequestCache).(*Cache)
	return cache
}
