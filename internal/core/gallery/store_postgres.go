// Copyright (c) 2026 Cosona. All rights reserved.
// Author: mai.haruki.jp@gmail.com

/*
PostgreSQL implementation of the gallery repository.

The attribution join is a LEFT JOIN against the cosplayer table with a
COALESCE fallback, so items whose profile reference dangles still read
cleanly with the "Unknown Cosplayer" display name.
*/
package gallery

import (
	"context"
	"fmt"
	"strings"

	"github.com/harukimai/cosona/internal/platform/apperr"
	"github.com/harukimai/cosona/internal/platform/database/schema"
	"github.com/harukimai/cosona/internal/platform/dberr"
	"github.com/jackc/pgx/v5/pgxpool"
)

// # PostgreSQL Repository

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed gallery store.
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

// itemProjection is the shared SELECT list including the attribution join.
func itemProjection() string {
	return fmt.Sprintf(`
		g.%s, g.%s, g.%s,
		COALESCE(c.%s, '%s') AS cosplayer,
		g.%s, g.%s, g.%s, g.%s, g.%s, g.%s, g.%s`,
		schema.GalleryItem.ID, schema.GalleryItem.Title, schema.GalleryItem.CosplayerID,
		schema.Cosplayer.Name, UnknownCosplayer,
		schema.GalleryItem.ImagePath, schema.GalleryItem.Description, schema.GalleryItem.Tags,
		schema.GalleryItem.Featured, schema.GalleryItem.Likes,
		schema.GalleryItem.CreatedAt, schema.GalleryItem.UpdatedAt,
	)
}

// itemSource is the FROM clause with the tolerant attribution join.
func itemSource() string {
	return fmt.Sprintf("%s g LEFT JOIN %s c ON g.%s = c.%s",
		schema.GalleryItem.Table, schema.Cosplayer.Table,
		schema.GalleryItem.CosplayerID, schema.Cosplayer.ID,
	)
}

func scanItem(row interface{ Scan(...any) error }, item *Item) error {
	err := row.Scan(
		&item.ID,
		&item.Title,
		&item.CosplayerID,
		&item.Cosplayer,
		&item.ImageURL,
		&item.Description,
		&item.Tags,
		&item.Featured,
		&item.Likes,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if item.Tags == nil {
		item.Tags = []string{}
	}
	return nil
}

/*
List returns a filtered, paginated slice of gallery items and the total.

Description: Uses COUNT(*) OVER() for the total, array containment for tag
filtering, and the LEFT JOIN attribution described in the package comment.
*/
func (repository *postgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Item, int, error) {

	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s
		WHERE TRUE
	`, itemProjection(), itemSource()))

	// Tag Containment Filtering
	if filter.Tag != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND $%d = ANY(g.%s)", argID, schema.GalleryItem.Tags))
		args = append(args, filter.Tag)
		argID++
	}

	// Attribution Filtering
	if filter.CosplayerID != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND g.%s = $%d", schema.GalleryItem.CosplayerID, argID))
		args = append(args, filter.CosplayerID)
		argID++
	}

	// Featured Filtering
	if filter.Featured != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND g.%s = $%d", schema.GalleryItem.Featured, argID))
		args = append(args, *filter.Featured)
		argID++
	}

	// Apply Sorting Logic
	orderBy := fmt.Sprintf("g.%s DESC", schema.GalleryItem.CreatedAt) // default: newest
	switch filter.Sort {
	case "oldest":
		orderBy = fmt.Sprintf("g.%s ASC", schema.GalleryItem.CreatedAt)
	case "az":
		orderBy = fmt.Sprintf("g.%s ASC", schema.GalleryItem.Title)
	case "za":
		orderBy = fmt.Sprintf("g.%s DESC", schema.GalleryItem.Title)
	case "popular":
		orderBy = fmt.Sprintf("g.%s DESC", schema.GalleryItem.Likes)
	}
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s, g.%s DESC", orderBy, schema.GalleryItem.ID))

	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_gallery_items")
	}
	defer rows.Close()

	items := make([]*Item, 0)
	var totalCount int

	for rows.Next() {
		item := &Item{}
		err := rows.Scan(
			&item.ID,
			&item.Title,
			&item.CosplayerID,
			&item.Cosplayer,
			&item.ImageURL,
			&item.Description,
			&item.Tags,
			&item.Featured,
			&item.Likes,
			&item.CreatedAt,
			&item.UpdatedAt,
			&totalCount,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_gallery_item")
		}
		if item.Tags == nil {
			item.Tags = []string{}
		}
		items = append(items, item)
	}

	return items, totalCount, nil
}

// FindByID retrieves a single item with its attribution.
func (repository *postgresRepository) FindByID(context context.Context, id string) (*Item, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE g.%s = $1",
		itemProjection(), itemSource(), schema.GalleryItem.ID)

	item := &Item{}
	if err := scanItem(repository.pool.QueryRow(context, query, id), item); err != nil {
		return nil, dberr.Wrap(err, "find_gallery_item_by_id")
	}
	return item, nil
}

// Create persists a new gallery item row.
func (repository *postgresRepository) Create(context context.Context, item *Item) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		schema.GalleryItem.Table,
		schema.GalleryItem.ID, schema.GalleryItem.Title, schema.GalleryItem.CosplayerID,
		schema.GalleryItem.ImagePath, schema.GalleryItem.Description,
		schema.GalleryItem.Tags, schema.GalleryItem.Featured,
	)

	_, err := repository.pool.Exec(context, query,
		item.ID,
		item.Title,
		item.CosplayerID,
		item.ImageURL,
		item.Description,
		item.Tags,
		item.Featured,
	)
	if err != nil {
		return dberr.Wrap(err, "create_gallery_item")
	}
	return nil
}

// Update applies a PATCH-style partial update; only non-nil patch fields
// reach the SET block.
func (repository *postgresRepository) Update(context context.Context, id string, patch Patch) error {

	var queryBuilder strings.Builder
	queryBuilder.WriteString(fmt.Sprintf("UPDATE %s SET %s = NOW()", schema.GalleryItem.Table, schema.GalleryItem.UpdatedAt))

	var args []any
	argID := 1

	appendSet := func(column string, value any) {
		queryBuilder.WriteString(fmt.Sprintf(", %s = $%d", column, argID))
		args = append(args, value)
		argID++
	}

	if patch.Title != nil {
		appendSet(schema.GalleryItem.Title, *patch.Title)
	}
	if patch.CosplayerID != nil {
		appendSet(schema.GalleryItem.CosplayerID, *patch.CosplayerID)
	}
	if patch.ImagePath != nil {
		appendSet(schema.GalleryItem.ImagePath, *patch.ImagePath)
	}
	if patch.Description != nil {
		appendSet(schema.GalleryItem.Description, *patch.Description)
	}
	if patch.Tags != nil {
		appendSet(schema.GalleryItem.Tags, *patch.Tags)
	}
	if patch.Featured != nil {
		appendSet(schema.GalleryItem.Featured, *patch.Featured)
	}

	queryBuilder.WriteString(fmt.Sprintf(" WHERE %s = $%d", schema.GalleryItem.ID, argID))
	args = append(args, id)

	result, err := repository.pool.Exec(context, queryBuilder.String(), args...)
	if err != nil {
		return dberr.Wrap(err, "update_gallery_item")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("gallery item")
	}
	return nil
}

// Delete removes a gallery item permanently.
func (repository *postgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", schema.GalleryItem.Table, schema.GalleryItem.ID)

	result, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_gallery_item")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("gallery item")
	}
	return nil
}

/*
IncrementLikes performs a race-safe counter update.

Description: The increment is applied by the database engine itself, never
by read-modify-write from the application, so concurrent likers each land
exactly once. Returns the post-increment value.
*/
func (repository *postgresRepository) IncrementLikes(context context.Context, id string, delta int) (int, error) {
	query := fmt.Sprintf("UPDATE %s SET %s = %s + $1 WHERE %s = $2 RETURNING %s",
		schema.GalleryItem.Table,
		schema.GalleryItem.Likes, schema.GalleryItem.Likes,
		schema.GalleryItem.ID, schema.GalleryItem.Likes,
	)

	var likes int
	if err := repository.pool.QueryRow(context, query, delta, id).Scan(&likes); err != nil {
		return 0, dberr.Wrap(err, "increment_likes")
	}
	return likes, nil
}
