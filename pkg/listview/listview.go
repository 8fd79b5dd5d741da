// Copyright (c) 2026 Cosona. All rights reserved.
// Author: mai.haruki.jp@gmail.com

/*
Package listview implements the shared search → filter → sort → paginate
pipeline behind every list surface of the platform (cosplayer directory,
gallery, events calendar, blog, admin tables).

# Architecture

The pipeline is a pure derivation over a raw item slice: given the same
items and the same [State], [Derive] always produces the same [Result].
There is no incremental diffing; every state change recomputes the view.

Entity-agnosticism is achieved through [Accessors] — a field-accessor map
that tells the pipeline how to read searchable text, tags, timestamps,
titles, and counters from an arbitrary item type. Each list surface supplies
its own accessors once and reuses the identical pipeline.

# Invariants

  - TotalCount always equals the number of items surviving search+filter.
  - Sorting is stable: equal keys keep their pre-sort relative order.
  - Deriving over an empty slice is valid and yields an empty page.
  - A [Controller] resets the page to 1 whenever search, a filter, or the
    sort key changes. Page state is never preserved across such changes.
*/
package listview

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/harukimai/cosona/pkg/slice"
)

// # Sort Keys

// Sort selects the single active ordering of a list view.
type Sort string

const (
	// SortNewest orders by timestamp descending.
	SortNewest Sort = "newest"
	// SortOldest orders by timestamp ascending.
	SortOldest Sort = "oldest"
	// SortAZ orders by title ascending using locale-aware comparison.
	SortAZ Sort = "az"
	// SortZA orders by title descending using locale-aware comparison.
	SortZA Sort = "za"
	// SortPopular orders by the numeric counter descending.
	SortPopular Sort = "popular"
)

// IsValid reports whether s is a recognised [Sort] value.
func (s Sort) IsValid() bool {
	switch s {
	case SortNewest, SortOldest, SortAZ, SortZA, SortPopular:
		return true
	}
	return false
}

// # Filter Pseudo-Values

const (
	// FilterAll is the no-op categorical filter value.
	FilterAll = "all"
	// FilterFeatured selects items whose featured flag is set, regardless
	// of the categorical field the filter is attached to.
	FilterFeatured = "featured"
)

// # Field Accessors

// Accessors describes how the pipeline reads fields from an item of type T.
//
// Nil accessors disable the corresponding behavior: a nil Tags accessor
// means search only inspects SearchText, a nil Popularity accessor makes
// [SortPopular] fall back to input order, and so on.
type Accessors[T any] struct {
	// SearchText returns the free-text fields matched by substring search
	// (typically name/title plus bio/description/excerpt).
	SearchText func(T) []string

	// Tags returns the item's tag set, matched by case-insensitive
	// containment during search.
	Tags func(T) []string

	// CreatedAt returns the timestamp used by newest/oldest sorting.
	CreatedAt func(T) time.Time

	// Title returns the string used by A-Z / Z-A sorting.
	Title func(T) string

	// Popularity returns the numeric counter used by popular sorting.
	Popularity func(T) int

	// Featured reports the boolean flag behind the "featured" pseudo-filter.
	Featured func(T) bool

	// Fields maps categorical filter names (e.g. "status", "type",
	// "category") to their value accessors.
	Fields map[string]func(T) string
}

// # Pipeline State

// State is the full input state of one list view derivation.
type State struct {
	// Search is the case-insensitive substring/tag search term.
	Search string

	// Filters maps categorical field names to their active values.
	// An empty or [FilterAll] value is a no-op.
	Filters map[string]string

	// SortBy is the single active sort key.
	SortBy Sort

	// Page is the 1-indexed current page.
	Page int

	// PageSize is the fixed page size of the surface.
	PageSize int
}

// Result is the derived output of one pipeline pass.
type Result[T any] struct {
	// PageItems is the slice for the current page.
	PageItems []T

	// TotalCount is the number of items surviving search and filters.
	TotalCount int

	// TotalPages is ceil(TotalCount / PageSize).
	TotalPages int

	// Page is the effective (clamped) page the items belong to.
	Page int
}

// # Derivation

// Derive runs the full search → filter → sort → paginate pipeline.
//
// It never fails: empty input, unknown filter fields, and out-of-range
// pages all degrade to an empty (but well-formed) result.
func Derive[T any](items []T, acc Accessors[T], st State) Result[T] {
	matched := applySearch(items, acc, st.Search)
	matched = applyFilters(matched, acc, st.Filters)
	sortItems(matched, acc, st.SortBy)

	pageSize := st.PageSize
	if pageSize < 1 {
		pageSize = 1
	}

	total := len(matched)
	totalPages := (total + pageSize - 1) / pageSize

	page := st.Page
	if page < 1 {
		page = 1
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Result[T]{
		PageItems:  matched[start:end],
		TotalCount: total,
		TotalPages: totalPages,
		Page:       page,
	}
}

// applySearch keeps items where any text field contains the term or any tag
// matches it, both case-insensitively. An empty term keeps everything.
func applySearch[T any](items []T, acc Accessors[T], term string) []T {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		// Copy so that sorting never mutates the caller's raw slice.
		out := make([]T, len(items))
		copy(out, items)
		return out
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		if matchesSearch(item, acc, term) {
			out = append(out, item)
		}
	}
	return out
}

func matchesSearch[T any](item T, acc Accessors[T], term string) bool {
	containsTerm := func(text string) bool {
		return strings.Contains(strings.ToLower(text), term)
	}

	if acc.SearchText != nil && slice.Contains(acc.SearchText(item), containsTerm) {
		return true
	}
	if acc.Tags != nil && slice.Contains(acc.Tags(item), containsTerm) {
		return true
	}
	return false
}

// applyFilters applies every active categorical filter conjunctively.
func applyFilters[T any](items []T, acc Accessors[T], filters map[string]string) []T {
	for field, value := range filters {
		value = strings.TrimSpace(value)
		if value == "" || strings.EqualFold(value, FilterAll) {
			continue
		}

		if strings.EqualFold(value, FilterFeatured) && acc.Featured != nil {
			items = keep(items, acc.Featured)
			continue
		}

		getter, ok := acc.Fields[field]
		if !ok {
			// Unknown filter fields are ignored rather than erroring out.
			continue
		}

		want := value
		items = keep(items, func(item T) bool {
			return strings.EqualFold(getter(item), want)
		})
	}
	return items
}

func keep[T any](items []T, pred func(T) bool) []T {
	out := items[:0]
	for _, item := range items {
		if pred(item) {
			out = append(out, item)
		}
	}
	return out
}

// sortItems sorts in place with a stable algorithm so that equal keys
// retain their original relative order.
func sortItems[T any](items []T, acc Accessors[T], key Sort) {
	switch key {
	case SortNewest:
		if acc.CreatedAt == nil {
			return
		}
		sort.SliceStable(items, func(i, j int) bool {
			return acc.CreatedAt(items[i]).After(acc.CreatedAt(items[j]))
		})
	case SortOldest:
		if acc.CreatedAt == nil {
			return
		}
		sort.SliceStable(items, func(i, j int) bool {
			return acc.CreatedAt(items[i]).Before(acc.CreatedAt(items[j]))
		})
	case SortAZ, SortZA:
		if acc.Title == nil {
			return
		}
		collator := collate.New(language.Und, collate.IgnoreCase)
		sort.SliceStable(items, func(i, j int) bool {
			cmp := collator.CompareString(acc.Title(items[i]), acc.Title(items[j]))
			if key == SortZA {
				return cmp > 0
			}
			return cmp < 0
		})
	case SortPopular:
		if acc.Popularity == nil {
			return
		}
		sort.SliceStable(items, func(i, j int) bool {
			return acc.Popularity(items[i]) > acc.Popularity(items[j])
		})
	}
}
