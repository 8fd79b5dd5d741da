// Copyright (c) 2026 Cosona. All rights reserved.
// Author: mai.haruki.jp@gmail.com

package storage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/harukimai/cosona/internal/platform/constants"
	"github.com/harukimai/cosona/internal/platform/storage"
)

/*
TestResolver_EmptyPath verifies that an empty stored path resolves to a
generated placeholder, never an error or empty URL.
*/
func TestResolver_EmptyPath(t *testing.T) {
	resolver := storage.NewResolver(nil)

	url := resolver.Resolve(constants.BucketGallery, "")
	assert.Contains(t, url, constants.PlaceholderPath)
	assert.Contains(t, url, "No+Image")
}

/*
TestResolver_AbsoluteURLPassthrough verifies that externally hosted images
are returned unchanged.
*/
func TestResolver_AbsoluteURLPassthrough(t *testing.T) {
	resolver := storage.NewResolver(nil)

	external := "https://cdn.example.com/photo.jpg"
	assert.Equal(t, external, resolver.Resolve(constants.BucketGallery, external))

	insecure := "http://cdn.example.com/photo.jpg"
	assert.Equal(t, insecure, resolver.Resolve(constants.BucketGallery, insecure))
}

/*
TestResolver_UnconfiguredFallback verifies that with no object store the
resolver degrades to a placeholder carrying the path as its label.
*/
func TestResolver_UnconfiguredFallback(t *testing.T) {
	resolver := storage.NewResolver(nil)

	url := resolver.Resolve(constants.BucketProfiles, "avatar.png")
	assert.Contains(t, url, constants.PlaceholderPath)
	assert.Contains(t, url, "avatar.png")
}

/*
TestResolver_Idempotent verifies that feeding a resolved URL back through
the resolver returns it unchanged. Placeholder URLs are relative, so
without an explicit passthrough a second pass would wrap the placeholder
in another placeholder.
*/
func TestResolver_Idempotent(t *testing.T) {
	resolver := storage.NewResolver(nil)

	once := resolver.Resolve(constants.BucketGallery, "shoots/nezuko.jpg")
	twice := resolver.Resolve(constants.BucketGallery, once)
	assert.Equal(t, once, twice)
}

/*
TestResolver_Placeholder verifies placeholder URL construction and label
escaping.
*/
func TestResolver_Placeholder(t *testing.T) {
	resolver := storage.NewResolver(nil)

	url := resolver.Placeholder(200, 100, "Hello World")
	assert.Contains(t, url, "width=200")
	assert.Contains(t, url, "height=100")
	assert.Contains(t, url, "text=Hello+World")
}
