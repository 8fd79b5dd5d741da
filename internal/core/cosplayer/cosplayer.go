// Copyright (c) 2026 Cosona. All rights reserved.
// Author: mai.haruki.jp@gmail.com

/*
Package cosplayer defines the core domain entities for the Cosona directory.

It manages the community's performer profiles including character portfolios,
social links, and the popularity metrics that drive the directory ranking.

Core Responsibility:

  - Directory: Defines profile statuses (Active, Inactive, Pending) and the
    featured flag used by curated home-page sections.
  - Discovery: Manages free-form tags matched by the browse pipeline.
  - Engagement: Tracks the monotonically increasing popularity counter fed
    by public like actions.

This package acts as the source of truth for performer-related data models.
*/
package cosplayer

import (
	"time"

	"github.com/harukimai/cosona/pkg/listview"
)

// # Domain Enums

// Status represents the visibility state of a cosplayer profile.
type Status string

const (
	// StatusActive indicates the profile is publicly listed.
	StatusActive Status = "active"

	// StatusInactive indicates the profile is hidden from the directory.
	StatusInactive Status = "inactive"

	// StatusPending indicates the profile awaits moderation approval.
	StatusPending Status = "pending"
)

// IsValid reports whether s is a recognised [Status] value.
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusPending:
		return true
	}
	return false
}

// # Core Entity

// Cosplayer is the central aggregate of the directory domain.
// It represents a single community performer profile.
type Cosplayer struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Character    string            `json:"character"` // Primary character/series portrayed
	Bio          string            `json:"bio"`
	Location     string            `json:"location,omitempty"`
	ProfileImage string            `json:"profile_image"` // Resolved public URL in responses
	Tags         []string          `json:"tags"`
	Status       Status            `json:"status"`
	Featured     bool              `json:"featured"`
	SocialLinks  map[string]string `json:"social_links,omitempty"` // Keyed by platform (e.g. "instagram", "twitter")

	// Popularity is updated exclusively through atomic increments.
	// It never decreases through public actions.
	Popularity int `json:"popularity"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Patch carries a partial update. Nil fields are left untouched so that an
// admin form never overwrites columns it did not submit.
type Patch struct {
	Name         *string            `json:"name,omitempty"`
	Character    *string            `json:"character,omitempty"`
	Bio          *string            `json:"bio,omitempty"`
	Location     *string            `json:"location,omitempty"`
	ProfileImage *string            `json:"profile_image,omitempty"`
	Tags         *[]string          `json:"tags,omitempty"`
	Status       *Status            `json:"status,omitempty"`
	Featured     *bool              `json:"featured,omitempty"`
	SocialLinks  *map[string]string `json:"social_links,omitempty"`
}

// # Search & Filtering

// Filter holds the parameters for a filtered directory list query.
type Filter struct {
	Status   Status `json:"status,omitempty"`
	Tag      string `json:"tag,omitempty"`      // Containment match against the tags array
	Featured *bool  `json:"featured,omitempty"` // nil = no featured constraint
	Sort     string `json:"sort,omitempty"`     // newest, oldest, az, za, popular
}

// Accessors wires the [Cosplayer] shape into the shared browse pipeline.
func Accessors() listview.Accessors[*Cosplayer] {
	return listview.Accessors[*Cosplayer]{
		SearchText: func(c *Cosplayer) []string { return []string{c.Name, c.Character, c.Bio} },
		Tags:       func(c *Cosplayer) []string { return c.Tags },
		CreatedAt:  func(c *Cosplayer) time.Time { return c.CreatedAt },
		Title:      func(c *Cosplayer) string { return c.Name },
		Popularity: func(c *Cosplayer) int { return c.Popularity },
		Featured:   func(c *Cosplayer) bool { return c.Featured },
		Fields: map[string]func(*Cosplayer) string{
			FieldStatus: func(c *Cosplayer) string { return string(c.Status) },
		},
	}
}

// # Field Identifiers

// Global field names for validation and dynamic query mapping.
const (
	FieldID           = "id"
	FieldName         = "name"
	FieldCharacter    = "character"
	FieldBio          = "bio"
	FieldLocation     = "location"
	FieldProfileImage = "profile_image"
	FieldTags         = "tags"
	FieldStatus       = "status"
	FieldFeatured     = "featured"
	FieldSocialLinks  = "social_links"
	FieldPopularity   = "popularity"
)
