// Copyright (c) 2026 Cosona. All rights reserved.
// Author: mai.haruki.jp@gmail.com

package page

import (
	"context"
	"fmt"
	"strings"

	"github.com/harukimai/cosona/internal/platform/apperr"
	"github.com/harukimai/cosona/internal/platform/database/schema"
	"github.com/harukimai/cosona/internal/platform/dberr"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed page store.
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func selectColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s",
		schema.Page.ID,
		schema.Page.Title,
		schema.Page.Slug,
		schema.Page.Content,
		schema.Page.MetaTitle,
		schema.Page.MetaDescription,
		schema.Page.UpdatedBy,
		schema.Page.CreatedAt,
		schema.Page.UpdatedAt,
	)
}

func scanPage(row interface{ Scan(...any) error }, p *Page) error {
	return row.Scan(
		&p.ID,
		&p.Title,
		&p.Slug,
		&p.Content,
		&p.MetaTitle,
		&p.MetaDescription,
		&p.UpdatedBy,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
}

// List returns all pages ordered by title. The page set is small and
// curated; no pagination is applied.
func (repository *postgresRepository) List(context context.Context) ([]*Page, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY %s ASC",
		selectColumns(), schema.Page.Table, schema.Page.Title)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_pages")
	}
	defer rows.Close()

	pages := make([]*Page, 0)
	for rows.Next() {
		p := &Page{}
		if err := scanPage(rows, p); err != nil {
			return nil, dberr.Wrap(err, "scan_page")
		}
		pages = append(pages, p)
	}
	return pages, nil
}

func (repository *postgresRepository) FindByID(context context.Context, id string) (*Page, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1",
		selectColumns(), schema.Page.Table, schema.Page.ID)

	p := &Page{}
	if err := scanPage(repository.pool.QueryRow(context, query, id), p); err != nil {
		return nil, dberr.Wrap(err, "find_page_by_id")
	}
	return p, nil
}

func (repository *postgresRepository) FindBySlug(context context.Context, slug string) (*Page, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1",
		selectColumns(), schema.Page.Table, schema.Page.Slug)

	p := &Page{}
	if err := scanPage(repository.pool.QueryRow(context, query, slug), p); err != nil {
		return nil, dberr.Wrap(err, "find_page_by_slug")
	}
	return p, nil
}

// Create persists a new page. Slug uniqueness is a database constraint and
// surfaces as a conflict.
func (repository *postgresRepository) Create(context context.Context, page *Page) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		schema.Page.Table,
		schema.Page.ID, schema.Page.Title, schema.Page.Slug, schema.Page.Content,
		schema.Page.MetaTitle, schema.Page.MetaDescription, schema.Page.UpdatedBy,
	)

	_, err := repository.pool.Exec(context, query,
		page.ID,
		page.Title,
		page.Slug,
		page.Content,
		page.MetaTitle,
		page.MetaDescription,
		page.UpdatedBy,
	)
	if err != nil {
		return dberr.Wrap(err, "create_page")
	}
	return nil
}

// Update applies a PATCH-style partial update and stamps the editor.
func (repository *postgresRepository) Update(context context.Context, id string, patch Patch) error {

	var queryBuilder strings.Builder
	queryBuilder.WriteString(fmt.Sprintf("UPDATE %s SET %s = NOW()", schema.Page.Table, schema.Page.UpdatedAt))

	var args []any
	argID := 1

	appendSet := func(column string, value any) {
		queryBuilder.WriteString(fmt.Sprintf(", %s = $%d", column, argID))
		args = append(args, value)
		argID++
	}

	if patch.Title != nil {
		appendSet(schema.Page.Title, *patch.Title)
	}
	if patch.Slug != nil {
		appendSet(schema.Page.Slug, *patch.Slug)
	}
	if patch.Content != nil {
		appendSet(schema.Page.Content, *patch.Content)
	}
	if patch.MetaTitle != nil {
		appendSet(schema.Page.MetaTitle, *patch.MetaTitle)
	}
	if patch.MetaDescription != nil {
		appendSet(schema.Page.MetaDescription, *patch.MetaDescription)
	}
	if patch.UpdatedBy != "" {
		appendSet(schema.Page.UpdatedBy, patch.UpdatedBy)
	}

	queryBuilder.WriteString(fmt.Sprintf(" WHERE %s = $%d", schema.Page.ID, argID))
	args = append(args, id)

	result, err := repository.pool.Exec(context, queryBuilder.String(), args...)
	if err != nil {
		return dberr.Wrap(err, "update_page")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("page")
	}
	return nil
}

func (repository *postgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", schema.Page.Table, schema.Page.ID)

	result, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_page")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("page")
	}
	return nil
}
