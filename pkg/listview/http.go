// Copyright (c) 2026 Cosona. All rights reserved.
// Author: mai.haruki.jp@gmail.com

package listview

import (
	"net/url"
	"strconv"
)

// ParseState builds a pipeline [State] from URL query values.
//
// Recognised parameters: "q" (search), "sort", "page", plus one query
// parameter per categorical field name passed in. Unknown sort keys fall
// back to [SortNewest]. PageSize is left for the surface to fill in.
func ParseState(values url.Values, fields ...string) State {
	state := State{
		Search:  values.Get("q"),
		SortBy:  SortNewest,
		Page:    1,
		Filters: make(map[string]string),
	}

	if sortKey := Sort(values.Get("sort")); sortKey.IsValid() {
		state.SortBy = sortKey
	}

	if page, err := strconv.Atoi(values.Get("page")); err == nil && page > 0 {
		state.Page = page
	}

	for _, field := range fields {
		if value := values.Get(field); value != "" {
			state.Filters[field] = value
		}
	}

	return state
}
