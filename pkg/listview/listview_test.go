// Copyright (c) 2026 Cosona. All rights reserved.
// Author: mai.haruki.jp@gmail.com

package listview_test

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harukimai/cosona/pkg/listview"
)

// testItem mirrors the shape of a directory entry for pipeline testing.
type testItem struct {
	Name       string
	Bio        string
	Tags       []string
	Status     string
	Featured   bool
	Popularity int
	CreatedAt  time.Time
}

func testAccessors() listview.Accessors[testItem] {
	return listview.Accessors[testItem]{
		SearchText: func(i testItem) []string { return []string{i.Name, i.Bio} },
		Tags:       func(i testItem) []string { return i.Tags },
		CreatedAt:  func(i testItem) time.Time { return i.CreatedAt },
		Title:      func(i testItem) string { return i.Name },
		Popularity: func(i testItem) int { return i.Popularity },
		Featured:   func(i testItem) bool { return i.Featured },
		Fields: map[string]func(testItem) string{
			"status": func(i testItem) string { return i.Status },
		},
	}
}

// directoryFixture is a small cosplayer-directory-like data set. Two entries
// carry a "Demon Slayer" tag with different popularity scores.
func directoryFixture() []testItem {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return []testItem{
		{Name: "Aoi", Bio: "Kimetsu fan", Tags: []string{"Demon Slayer", "Anime"}, Status: "active", Popularity: 120, CreatedAt: base},
		{Name: "Botan", Bio: "Armor builder", Tags: []string{"Monster Hunter"}, Status: "active", Popularity: 300, CreatedAt: base.Add(1 * time.Hour)},
		{Name: "Chika", Bio: "Loves demons and swords", Tags: []string{"Demon Slayer"}, Status: "active", Popularity: 450, CreatedAt: base.Add(2 * time.Hour)},
		{Name: "Daiki", Bio: "Photographer", Tags: []string{"Original"}, Status: "pending", Popularity: 80, CreatedAt: base.Add(3 * time.Hour)},
		{Name: "Emi", Bio: "Idol groups", Tags: []string{"Love Live"}, Status: "active", Featured: true, Popularity: 500, CreatedAt: base.Add(4 * time.Hour)},
	}
}

/*
TestDerive_SearchFilterSortPaginate runs the canonical directory scenario:
searching "demon" with no categorical filter and popular sort must return
exactly the two Demon Slayer entries, highest popularity first.
*/
func TestDerive_SearchFilterSortPaginate(t *testing.T) {
	result := listview.Derive(directoryFixture(), testAccessors(), listview.State{
		Search:   "demon",
		Filters:  map[string]string{"status": listview.FilterAll},
		SortBy:   listview.SortPopular,
		Page:     1,
		PageSize: 9,
	})

	require.Len(t, result.PageItems, 2)
	assert.Equal(t, 2, result.TotalCount)
	assert.Equal(t, 1, result.TotalPages)

	// Chika (450) outranks Aoi (120). The tag match and the bio match both
	// count as hits.
	assert.Equal(t, "Chika", result.PageItems[0].Name)
	assert.Equal(t, "Aoi", result.PageItems[1].Name)
}

/*
TestDerive_CategoricalFilter checks conjunctive filtering on a field value.
*/
func TestDerive_CategoricalFilter(t *testing.T) {
	result := listview.Derive(directoryFixture(), testAccessors(), listview.State{
		Filters:  map[string]string{"status": "pending"},
		SortBy:   listview.SortNewest,
		Page:     1,
		PageSize: 9,
	})

	require.Len(t, result.PageItems, 1)
	assert.Equal(t, "Daiki", result.PageItems[0].Name)
}

/*
TestDerive_FeaturedPseudoFilter checks the "featured" pseudo-value applied
through a categorical filter slot.
*/
func TestDerive_FeaturedPseudoFilter(t *testing.T) {
	result := listview.Derive(directoryFixture(), testAccessors(), listview.State{
		Filters:  map[string]string{"status": listview.FilterFeatured},
		SortBy:   listview.SortNewest,
		Page:     1,
		PageSize: 9,
	})

	require.Len(t, result.PageItems, 1)
	assert.Equal(t, "Emi", result.PageItems[0].Name)
}

/*
TestDerive_StableSort verifies that equal sort keys keep input order.
*/
func TestDerive_StableSort(t *testing.T) {
	now := time.Now()
	items := []testItem{
		{Name: "first", Popularity: 10, CreatedAt: now},
		{Name: "second", Popularity: 10, CreatedAt: now},
		{Name: "third", Popularity: 10, CreatedAt: now},
	}

	result := listview.Derive(items, testAccessors(), listview.State{
		SortBy:   listview.SortPopular,
		Page:     1,
		PageSize: 10,
	})

	require.Len(t, result.PageItems, 3)
	assert.Equal(t, "first", result.PageItems[0].Name)
	assert.Equal(t, "second", result.PageItems[1].Name)
	assert.Equal(t, "third", result.PageItems[2].Name)
}

/*
TestDerive_Pagination checks page slicing, total counts, and out-of-range
pages degrading to an empty page.
*/
func TestDerive_Pagination(t *testing.T) {
	items := directoryFixture()

	page1 := listview.Derive(items, testAccessors(), listview.State{
		SortBy: listview.SortOldest, Page: 1, PageSize: 2,
	})
	assert.Equal(t, 5, page1.TotalCount)
	assert.Equal(t, 3, page1.TotalPages)
	require.Len(t, page1.PageItems, 2)
	assert.Equal(t, "Aoi", page1.PageItems[0].Name)

	page3 := listview.Derive(items, testAccessors(), listview.State{
		SortBy: listview.SortOldest, Page: 3, PageSize: 2,
	})
	require.Len(t, page3.PageItems, 1)
	assert.Equal(t, "Emi", page3.PageItems[0].Name)

	beyond := listview.Derive(items, testAccessors(), listview.State{
		SortBy: listview.SortOldest, Page: 99, PageSize: 2,
	})
	assert.Empty(t, beyond.PageItems)
	assert.Equal(t, 5, beyond.TotalCount)
}

/*
TestDerive_EmptyAndUnknown verifies graceful degradation: empty input and
unknown filter fields never error.
*/
func TestDerive_EmptyAndUnknown(t *testing.T) {
	empty := listview.Derive(nil, testAccessors(), listview.State{
		SortBy: listview.SortNewest, Page: 1, PageSize: 10,
	})
	assert.Empty(t, empty.PageItems)
	assert.Equal(t, 0, empty.TotalCount)

	unknown := listview.Derive(directoryFixture(), testAccessors(), listview.State{
		Filters: map[string]string{"nonexistent": "whatever"},
		SortBy:  listview.SortNewest, Page: 1, PageSize: 10,
	})
	assert.Equal(t, 5, unknown.TotalCount)
}

/*
TestController_PageReset verifies that changing search, filter, or sort
resets the page to 1, while plain navigation does not.
*/
func TestController_PageReset(t *testing.T) {
	controller := listview.NewController(testAccessors(), 2, listview.SortNewest)
	controller.SetItems(directoryFixture())

	controller.SetPage(3)
	assert.Equal(t, 3, controller.State().Page)

	controller.SetSearch("demon")
	assert.Equal(t, 1, controller.State().Page)

	controller.SetPage(2)
	controller.SetFilter("status", "active")
	assert.Equal(t, 1, controller.State().Page)

	controller.SetPage(2)
	controller.SetSort(listview.SortPopular)
	assert.Equal(t, 1, controller.State().Page)

	// Setting the identical value is a no-op and keeps the page.
	controller.SetPage(2)
	controller.SetSort(listview.SortPopular)
	assert.Equal(t, 2, controller.State().Page)
}

/*
TestParseState verifies query-string parsing into pipeline state.
*/
func TestParseState(t *testing.T) {
	values := url.Values{}
	values.Set("q", "demon")
	values.Set("sort", "popular")
	values.Set("page", "2")
	values.Set("status", "active")

	state := listview.ParseState(values, "status")

	assert.Equal(t, "demon", state.Search)
	assert.Equal(t, listview.SortPopular, state.SortBy)
	assert.Equal(t, 2, state.Page)
	assert.Equal(t, "active", state.Filters["status"])
}

/*
TestParseState_Defaults verifies fallbacks for absent or invalid parameters.
*/
func TestParseState_Defaults(t *testing.T) {
	values := url.Values{}
	values.Set("sort", "bogus")
	values.Set("page", "-4")

	state := listview.ParseState(values, "status")

	assert.Equal(t, listview.SortNewest, state.SortBy)
	assert.Equal(t, 1, state.Page)
	assert.Empty(t, state.Filters)
}
