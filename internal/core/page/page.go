// Copyright (c) 2026 Cosona. All rights reserved.
// Author: mai.haruki.jp@gmail.com

// Package page manages the static CMS pages of the site (about, FAQ,
// privacy policy). Pages are addressed publicly by their unique slug.
package page

import "time"

// Page represents a single static CMS page.
type Page struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Slug            string    `json:"slug"` // Unique, URL-safe, derived from title unless overridden
	Content         string    `json:"content"`
	MetaTitle       string    `json:"meta_title,omitempty"`
	MetaDescription string    `json:"meta_description,omitempty"`
	UpdatedBy       string    `json:"updated_by,omitempty"` // Username of the last editor
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Patch carries a partial update; nil fields are left untouched.
type Patch struct {
	Title           *string `json:"title,omitempty"`
	Slug            *string `json:"slug,omitempty"`
	Content         *string `json:"content,omitempty"`
	MetaTitle       *string `json:"meta_title,omitempty"`
	MetaDescription *string `json:"meta_description,omitempty"`

	// UpdatedBy is stamped by the service from the authenticated session,
	// never taken from the request body.
	UpdatedBy string `json:"-"`
}

// Field identifiers for validation and dynamic query mapping.
const (
	FieldID              = "id"
	FieldTitle           = "title"
	FieldSlug            = "slug"
	FieldContent         = "content"
	FieldMetaTitle       = "meta_title"
	FieldMetaDescription = "meta_description"
	FieldUpdatedBy       = "updated_by"
)
