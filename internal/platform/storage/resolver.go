// Copyright (c) 2026 Cosona. All rights reserved.
// Author: mai.haruki.jp@gmail.com

package storage

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/harukimai/cosona/internal/platform/constants"
)

// Resolver turns stored image paths into servable URLs.
//
// # Resolution Rules
//
//  1. Empty path → generated placeholder URL (width/height/label).
//  2. Absolute http(s) URL → returned unchanged (externally hosted image).
//  3. Placeholder URL → returned unchanged (already resolved).
//  4. Anything else → public object-store URL for bucket+path, or, when
//     the store is unconfigured, a placeholder carrying the original path
//     as its label. The fallback is deterministic, never an exception.
type Resolver struct {
	publicBase string
}

// NewResolver builds a resolver over an optional storage client.
// A nil client produces a resolver that always falls back to placeholders.
func NewResolver(client *Client) *Resolver {
	return &Resolver{publicBase: client.PublicBaseURL()}
}

// Resolve maps a (bucket, path) pair to a servable image URL.
// Resolve is idempotent: feeding an already-resolved URL back in returns
// it unchanged.
func (r *Resolver) Resolve(bucket, path string) string {
	if strings.TrimSpace(path) == "" {
		return r.Placeholder(constants.PlaceholderWidth, constants.PlaceholderHeight, "No Image")
	}

	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}

	if strings.HasPrefix(path, constants.PlaceholderPath) {
		return path
	}

	if r.publicBase == "" {
		return r.Placeholder(constants.PlaceholderWidth, constants.PlaceholderHeight, path)
	}

	return fmt.Sprintf("%s/%s/%s", r.publicBase, bucket, path)
}

// Placeholder returns the URL of a generated placeholder image.
func (r *Resolver) Placeholder(width, height int, label string) string {
	return fmt.Sprintf("%s?width=%d&height=%d&text=%s",
		constants.PlaceholderPath, width, height, url.QueryEscape(label))
}
