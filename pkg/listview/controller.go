// Copyright (c) 2026 Cosona. All rights reserved.
// Author: mai.haruki.jp@gmail.com

package listview

// Controller owns the mutable state of one list surface and enforces the
// page-reset discipline: changing the search term, any categorical filter,
// or the sort key resets the current page to 1.
//
// # Concurrency
//
// A Controller belongs to a single request/surface and is not safe for
// concurrent use.
type Controller[T any] struct {
	items     []T
	accessors Accessors[T]
	state     State
}

// NewController builds a controller with the given accessors, page size,
// and default sort key.
func NewController[T any](acc Accessors[T], pageSize int, defaultSort Sort) *Controller[T] {
	return &Controller[T]{
		accessors: acc,
		state: State{
			Filters:  make(map[string]string),
			SortBy:   defaultSort,
			Page:     1,
			PageSize: pageSize,
		},
	}
}

// SetItems replaces the raw item slice. The page resets because the old
// position is meaningless against new data.
func (c *Controller[T]) SetItems(items []T) {
	c.items = items
	c.state.Page = 1
}

// SetSearch updates the search term, resetting the page on change.
func (c *Controller[T]) SetSearch(term string) {
	if c.state.Search == term {
		return
	}
	c.state.Search = term
	c.state.Page = 1
}

// SetFilter updates one categorical filter, resetting the page on change.
func (c *Controller[T]) SetFilter(field, value string) {
	if c.state.Filters[field] == value {
		return
	}
	c.state.Filters[field] = value
	c.state.Page = 1
}

// SetSort updates the sort key, resetting the page on change.
// Unrecognised keys are ignored.
func (c *Controller[T]) SetSort(key Sort) {
	if !key.IsValid() || c.state.SortBy == key {
		return
	}
	c.state.SortBy = key
	c.state.Page = 1
}

// SetPage navigates to the given page. Values below 1 clamp to 1.
func (c *Controller[T]) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	c.state.Page = page
}

// State returns a copy of the current pipeline state.
func (c *Controller[T]) State() State {
	st := c.state
	st.Filters = make(map[string]string, len(c.state.Filters))
	for k, v := range c.state.Filters {
		st.Filters[k] = v
	}
	return st
}

// View derives the current page from the raw items and the held state.
func (c *Controller[T]) View() Result[T] {
	return Derive(c.items, c.accessors, c.state)
}
