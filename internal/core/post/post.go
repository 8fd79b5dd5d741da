// Copyright (c) 2026 Cosona. All rights reserved.
// Author: mai.haruki.jp@gmail.com

/*
Package post defines the blog domain of the Cosona platform.

Posts live in a draft/published lifecycle: the published_at timestamp is
set server-side on the first false→true publish transition and is never
rewritten by later republishes.
*/
package post

import (
	"time"

	"github.com/harukimai/cosona/pkg/listview"
)

// Post represents a single blog entry.
type Post struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Content       string     `json:"content"`
	Excerpt       string     `json:"excerpt,omitempty"`
	FeaturedImage string     `json:"featured_image,omitempty"` // Resolved public URL in responses
	Category      string     `json:"category,omitempty"`
	Tags          []string   `json:"tags"`
	Published     bool       `json:"published"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Patch carries a partial update; nil fields are left untouched.
type Patch struct {
	Title         *string   `json:"title,omitempty"`
	Slug          *string   `json:"slug,omitempty"`
	Content       *string   `json:"content,omitempty"`
	Excerpt       *string   `json:"excerpt,omitempty"`
	FeaturedImage *string   `json:"featured_image,omitempty"`
	Category      *string   `json:"category,omitempty"`
	Tags          *[]string `json:"tags,omitempty"`
	Published     *bool     `json:"published,omitempty"`
}

// Filter holds the parameters for a filtered blog list query.
type Filter struct {
	Category      string `json:"category,omitempty"`
	Tag           string `json:"tag,omitempty"`
	PublishedOnly bool   `json:"published_only,omitempty"`
	Sort          string `json:"sort,omitempty"` // newest (default), oldest, az, za
}

// Accessors wires the [Post] shape into the shared browse pipeline.
func Accessors() listview.Accessors[*Post] {
	return listview.Accessors[*Post]{
		SearchText: func(p *Post) []string { return []string{p.Title, p.Excerpt, p.Content} },
		Tags:       func(p *Post) []string { return p.Tags },
		CreatedAt:  func(p *Post) time.Time { return p.CreatedAt },
		Title:      func(p *Post) string { return p.Title },
		Fields: map[string]func(*Post) string{
			FieldCategory: func(p *Post) string { return p.Category },
		},
	}
}

// Field identifiers for validation and dynamic query mapping.
const (
	FieldID            = "id"
	FieldTitle         = "title"
	FieldSlug          = "slug"
	FieldContent       = "content"
	FieldExcerpt       = "excerpt"
	FieldFeaturedImage = "featured_image"
	FieldCategory      = "category"
	FieldTags          = "tags"
	FieldPublished     = "published"
	FieldPublishedAt   = "published_at"
)
