// Copyright (c) 2026 Cosona. All rights reserved.
// Author: mai.haruki.jp@gmail.com

/*
Package event defines the events calendar domain of the Cosona platform.

Events carry a start date and an optional end date (never earlier than the
start), a categorical type used by the calendar filter bar, and the shared
tags/featured vocabulary of the other content surfaces.

Unlike the other list surfaces the natural order of the calendar is date
ascending: visitors care about what happens next.
*/
package event

import (
	"time"

	"github.com/harukimai/cosona/pkg/listview"
)

// # Domain Enums

// Type classifies an event for the calendar filter bar.
type Type string

const (
	TypeConvention  Type = "convention"
	TypeCompetition Type = "competition"
	TypeWorkshop    Type = "workshop"
	TypeFestival    Type = "festival"
)

// IsValid reports whether t is a recognised [Type] value.
func (t Type) IsValid() bool {
	switch t {
	case TypeConvention, TypeCompetition, TypeWorkshop, TypeFestival:
		return true
	}
	return false
}

// # Core Entity

// Event represents a single calendar entry.
type Event struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Location    string     `json:"location"`
	Date        time.Time  `json:"date"`
	EndDate     *time.Time `json:"end_date,omitempty"` // When present, never before Date
	Description string     `json:"description"`
	ImageURL    string     `json:"image_url"` // Resolved public URL in responses
	Tags        []string   `json:"tags"`
	Type        Type       `json:"event_type"`
	Featured    bool       `json:"featured"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Patch carries a partial update; nil fields are left untouched.
type Patch struct {
	Title       *string    `json:"title,omitempty"`
	Location    *string    `json:"location,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Description *string    `json:"description,omitempty"`
	ImagePath   *string    `json:"image_path,omitempty"`
	Tags        *[]string  `json:"tags,omitempty"`
	Type        *Type      `json:"event_type,omitempty"`
	Featured    *bool      `json:"featured,omitempty"`
}

// # Search & Filtering

// Filter holds the parameters for a filtered calendar query.
type Filter struct {
	Type     Type   `json:"event_type,omitempty"`
	Tag      string `json:"tag,omitempty"`
	Featured *bool  `json:"featured,omitempty"`
	Upcoming bool   `json:"upcoming,omitempty"` // Only events starting today or later
	Sort     string `json:"sort,omitempty"`     // date (default), newest, az, za
}

// Accessors wires the [Event] shape into the shared browse pipeline.
func Accessors() listview.Accessors[*Event] {
	return listview.Accessors[*Event]{
		SearchText: func(e *Event) []string { return []string{e.Title, e.Location, e.Description} },
		Tags:       func(e *Event) []string { return e.Tags },
		CreatedAt:  func(e *Event) time.Time { return e.CreatedAt },
		Title:      func(e *Event) string { return e.Title },
		Featured:   func(e *Event) bool { return e.Featured },
		Fields: map[string]func(*Event) string{
			FieldType: func(e *Event) string { return string(e.Type) },
		},
	}
}

// # Field Identifiers

const (
	FieldID          = "id"
	FieldTitle       = "title"
	FieldLocation    = "location"
	FieldDate        = "date"
	FieldEndDate     = "end_date"
	FieldDescription = "description"
	FieldImagePath   = "image_path"
	FieldTags        = "tags"
	FieldType        = "event_type"
	FieldFeatured    = "featured"
)
