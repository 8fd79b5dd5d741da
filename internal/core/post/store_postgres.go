// Copyright (c) 2026 Cosona. All rights reserved.
// Author: mai.haruki.jp@gmail.com

package post

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

// NewPostgresRepository constructs a PostgreSQL backed blog store.
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func selectColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		schema.Post.ID,
		schema.Post.Title,
		schema.Post.Slug,
		schema.Post.Content,
		schema.Post.Excerpt,
		schema.Post.FeaturedImage,
		schema.Post.Category,
		schema.Post.Tags,
		schema.Post.Published,
		schema.Post.PublishedAt,
		schema.Post.CreatedAt,
		schema.Post.UpdatedAt,
	)
}

func scanPost(row interface{ Scan(...any) error }, p *Post) error {
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Slug,
		&p.Content,
		&p.Excerpt,
		&p.FeaturedImage,
		&p.Category,
		&p.Tags,
		&p.Published,
		&p.PublishedAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return nil
}

// List returns a filtered, paginated slice of posts and the total count.
func (repository *postgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Post, int, error) {

	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s
		WHERE TRUE
	`, selectColumns(), schema.Post.Table))

	if filter.PublishedOnly {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = TRUE", schema.Post.Published))
	}

	if filter.Category != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = $%d", schema.Post.Category, argID))
		args = append(args, filter.Category)
		argID++
	}

	if filter.Tag != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND $%d = ANY(%s)", argID, schema.Post.Tags))
		args = append(args, filter.Tag)
		argID++
	}

	orderBy := fmt.Sprintf("%s DESC", schema.Post.CreatedAt)
	switch filter.Sort {
	case "oldest":
		orderBy = fmt.Sprintf("%s ASC", schema.Post.CreatedAt)
	case "az":
		orderBy = fmt.Sprintf("%s ASC", schema.Post.Title)
	case "za":
		orderBy = fmt.Sprintf("%s DESC", schema.Post.Title)
	}
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s, %s DESC", orderBy, schema.Post.ID))

	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_posts")
	}
	defer rows.Close()

	posts := make([]*Post, 0)
	var totalCount int

	for rows.Next() {
		p := &Post{}
		err := rows.Scan(
			&p.ID,
			&p.Title,
			&p.Slug,
			&p.Content,
			&p.Excerpt,
			&p.FeaturedImage,
			&p.Category,
			&p.Tags,
			&p.Published,
			&p.PublishedAt,
			&p.CreatedAt,
			&p.UpdatedAt,
			&totalCount,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_post")
		}
		if p.Tags == nil {
			p.Tags = []string{}
		}
		posts = append(posts, p)
	}

	return posts, totalCount, nil
}

// FindByID retrieves a single post by primary key.
func (repository *postgresRepository) FindByID(context context.Context, id string) (*Post, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1",
		selectColumns(), schema.Post.Table, schema.Post.ID)

	p := &Post{}
	if err := scanPost(repository.pool.QueryRow(context, query, id), p); err != nil {
		return nil, dberr.Wrap(err, "find_post_by_id")
	}
	return p, nil
}

// FindBySlug retrieves a single post by its unique SEO slug.
func (repository *postgresRepository) FindBySlug(context context.Context, slug string) (*Post, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1",
		selectColumns(), schema.Post.Table, schema.Post.Slug)

	p := &Post{}
	if err := scanPost(repository.pool.QueryRow(context, query, slug), p); err != nil {
		return nil, dberr.Wrap(err, "find_post_by_slug")
	}
	return p, nil
}

// Create persists a new post row. The published_at column is stamped by the
// database when the post is born published.
func (repository *postgresRepository) Create(context context.Context, post *Post) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, CASE WHEN $9 THEN NOW() END)
	`,
		schema.Post.Table,
		schema.Post.ID, schema.Post.Title, schema.Post.Slug, schema.Post.Content,
		schema.Post.Excerpt, schema.Post.FeaturedImage, schema.Post.Category,
		schema.Post.Tags, schema.Post.Published, schema.Post.PublishedAt,
	)

	_, err := repository.pool.Exec(context, query,
		post.ID,
		post.Title,
		post.Slug,
		post.Content,
		post.Excerpt,
		post.FeaturedImage,
		post.Category,
		post.Tags,
		post.Published,
	)
	if err != nil {
		return dberr.Wrap(err, "create_post")
	}
	return nil
}

/*
Update applies a PATCH-style partial update.

The publish transition is handled entirely inside the UPDATE: published_at
is stamped only when the stored row moves false→true, and an existing
timestamp survives later republishes.
*/
func (repository *postgresRepository) Update(context context.Context, id string, patch Patch) error {

	var queryBuilder strings.Builder
	queryBuilder.WriteString(fmt.Sprintf("UPDATE %s SET %s = NOW()", schema.Post.Table, schema.Post.UpdatedAt))

	var args []any
	argID := 1

	appendSet := func(column string, value any) {
		queryBuilder.WriteString(fmt.Sprintf(", %s = $%d", column, argID))
		args = append(args, value)
		argID++
	}

	if patch.Title != nil {
		appendSet(schema.Post.Title, *patch.Title)
	}
	if patch.Slug != nil {
		appendSet(schema.Post.Slug, *patch.Slug)
	}
	if patch.Content != nil {
		appendSet(schema.Post.Content, *patch.Content)
	}
	if patch.Excerpt != nil {
		appendSet(schema.Post.Excerpt, *patch.Excerpt)
	}
	if patch.FeaturedImage != nil {
		appendSet(schema.Post.FeaturedImage, *patch.FeaturedImage)
	}
	if patch.Category != nil {
		appendSet(schema.Post.Category, *patch.Category)
	}
	if patch.Tags != nil {
		appendSet(schema.Post.Tags, *patch.Tags)
	}
	if patch.Published != nil {
		// Stamp published_at exactly on the false→true transition. The CASE
		// reads the pre-update column values.
		queryBuilder.WriteString(fmt.Sprintf(
			", %s = CASE WHEN %s = FALSE AND $%d = TRUE THEN NOW() ELSE %s END",
			schema.Post.PublishedAt, schema.Post.Published, argID, schema.Post.PublishedAt,
		))
		args = append(args, *patch.Published)
		argID++

		appendSet(schema.Post.Published, *patch.Published)
	}

	queryBuilder.WriteString(fmt.Sprintf(" WHERE %s = $%d", schema.Post.ID, argID))
	args = append(args, id)

	result, err := repository.pool.Exec(context, queryBuilder.String(), args...)
	if err != nil {
		return dberr.Wrap(err, "update_post")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("post")
	}
	return nil
}

// Delete removes a post permanently.
func (repository *postgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", schema.Post.Table, schema.Post.ID)

	result, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_post")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("post")
	}
	return nil
}
