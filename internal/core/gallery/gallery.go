// Copyright (c) 2026 Cosona. All rights reserved.
// Author: mai.haruki.jp@gmail.com

/*
Package gallery defines the photo gallery domain of the Cosona platform.

A gallery item is a single published photo, optionally attributed to a
cosplayer profile. Attribution is tolerant: a dangling or missing profile
reference displays as "Unknown Cosplayer" rather than breaking the item.

Engagement happens through the likes counter, which only ever moves upward
via atomic server-side increments.
*/
package gallery

import (
	"time"

	"github.com/harukimai/cosona/pkg/listview"
)

// UnknownCosplayer is the display attribution for items whose profile
// reference is absent or dangling.
const UnknownCosplayer = "Unknown Cosplayer"

// # Core Entity

// Item represents a single gallery photo.
type Item struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	CosplayerID *string  `json:"cosplayer_id,omitempty"` // nil = unattributed
	Cosplayer   string   `json:"cosplayer"`              // Display name, defaults to [UnknownCosplayer]
	ImageURL    string   `json:"image_url"`              // Resolved public URL in responses
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags"`
	Featured    bool     `json:"featured"`

	// Likes is updated exclusively through atomic increments and is never
	// decremented by public actions.
	Likes int `json:"likes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Patch carries a partial update; nil fields are left untouched.
type Patch struct {
	Title       *string   `json:"title,omitempty"`
	CosplayerID *string   `json:"cosplayer_id,omitempty"`
	ImagePath   *string   `json:"image_path,omitempty"`
	Description *string   `json:"description,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
	Featured    *bool     `json:"featured,omitempty"`
}

// # Search & Filtering

// Filter holds the parameters for a filtered gallery list query.
type Filter struct {
	Tag         string `json:"tag,omitempty"`
	CosplayerID string `json:"cosplayer_id,omitempty"`
	Featured    *bool  `json:"featured,omitempty"`
	Sort        string `json:"sort,omitempty"` // newest, oldest, az, za, popular
}

// Accessors wires the [Item] shape into the shared browse pipeline.
// Popularity maps to the likes counter.
func Accessors() listview.Accessors[*Item] {
	return listview.Accessors[*Item]{
		SearchText: func(i *Item) []string { return []string{i.Title, i.Cosplayer, i.Description} },
		Tags:       func(i *Item) []string { return i.Tags },
		CreatedAt:  func(i *Item) time.Time { return i.CreatedAt },
		Title:      func(i *Item) string { return i.Title },
		Popularity: func(i *Item) int { return i.Likes },
		Featured:   func(i *Item) bool { return i.Featured },
		Fields: map[string]func(*Item) string{
			FieldCosplayer: func(i *Item) string { return i.Cosplayer },
		},
	}
}

// # Field Identifiers

const (
	FieldID          = "id"
	FieldTitle       = "title"
	FieldCosplayerID = "cosplayer_id"
	FieldCosplayer   = "cosplayer"
	FieldImagePath   = "image_path"
	FieldDescription = "description"
	FieldTags        = "tags"
	FieldFeatured    = "featured"
	FieldLikes       = "likes"
)
