// Copyright (c) 2026 Cosona. All rights reserved.
// Author: mai.haruki.jp@gmail.com

/*
PostgreSQL implementation of the cosplayer repository.

It leans on Postgres-native features to keep the directory fast:
  - Window Functions: COUNT(*) OVER() returns totals without a second query.
  - Array Operators: tag containment uses `= ANY(tags)` against text[].
  - Atomic Counters: popularity bumps run as `SET popularity = popularity + n`.
*/
package cosplayer

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

// NewPostgresRepository constructs a PostgreSQL backed cosplayer store.
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

// selectColumns is the shared projection for single and list reads.
func selectColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		schema.Cosplayer.ID,
		schema.Cosplayer.Name,
		schema.Cosplayer.Character,
		schema.Cosplayer.Bio,
		schema.Cosplayer.Location,
		schema.Cosplayer.ProfileImage,
		schema.Cosplayer.Tags,
		schema.Cosplayer.Status,
		schema.Cosplayer.Featured,
		schema.Cosplayer.SocialLinks,
		schema.Cosplayer.Popularity,
		schema.Cosplayer.CreatedAt,
		schema.Cosplayer.UpdatedAt,
	)
}

func scanCosplayer(row interface{ Scan(...any) error }, c *Cosplayer) error {
	return row.Scan(
		&c.ID,
		&c.Name,
		&c.Character,
		&c.Bio,
		&c.Location,
		&c.ProfileImage,
		&c.Tags,
		&c.Status,
		&c.Featured,
		&c.SocialLinks,
		&c.Popularity,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
}

/*
List returns a filtered, paginated slice of cosplayers and the total count.

Description: Builds the WHERE clause dynamically from the active filter
fields and uses COUNT(*) OVER() to retrieve the total record count in the
same round trip.

Parameters:
  - context: context.Context
  - filter: Filter (status, tag containment, featured flag, sort key)
  - limit: int
  - offset: int

Returns:
  - []*Cosplayer: Slice of hydrated profiles
  - int: Total count matching the filter
  - error: Database execution errors
*/
func (repository *postgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Cosplayer, int, error) {

	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s
		WHERE TRUE
	`, selectColumns(), schema.Cosplayer.Table))

	// Status Filtering
	if filter.Status != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = $%d", schema.Cosplayer.Status, argID))
		args = append(args, filter.Status)
		argID++
	}

	// Tag Containment Filtering
	if filter.Tag != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND $%d = ANY(%s)", argID, schema.Cosplayer.Tags))
		args = append(args, filter.Tag)
		argID++
	}

	// Featured Filtering
	if filter.Featured != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = $%d", schema.Cosplayer.Featured, argID))
		args = append(args, *filter.Featured)
		argID++
	}

	// Apply Sorting Logic
	orderBy := fmt.Sprintf("%s DESC", schema.Cosplayer.CreatedAt) // default: newest
	switch filter.Sort {
	case "oldest":
		orderBy = fmt.Sprintf("%s ASC", schema.Cosplayer.CreatedAt)
	case "az":
		orderBy = fmt.Sprintf("%s ASC", schema.Cosplayer.Name)
	case "za":
		orderBy = fmt.Sprintf("%s DESC", schema.Cosplayer.Name)
	case "popular":
		orderBy = fmt.Sprintf("%s DESC", schema.Cosplayer.Popularity)
	}
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s, %s DESC", orderBy, schema.Cosplayer.ID))

	// Pagination injection
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_cosplayers")
	}
	defer rows.Close()

	cosplayers := make([]*Cosplayer, 0)
	var totalCount int

	for rows.Next() {
		c := &Cosplayer{}
		err := rows.Scan(
			&c.ID,
			&c.Name,
			&c.Character,
			&c.Bio,
			&c.Location,
			&c.ProfileImage,
			&c.Tags,
			&c.Status,
			&c.Featured,
			&c.SocialLinks,
			&c.Popularity,
			&c.CreatedAt,
			&c.UpdatedAt,
			&totalCount,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_cosplayer")
		}
		if c.Tags == nil {
			c.Tags = []string{}
		}
		cosplayers = append(cosplayers, c)
	}

	return cosplayers, totalCount, nil
}

// FindByID retrieves a single profile by primary key.
// Returns apperr.NotFound when the id does not exist.
func (repository *postgresRepository) FindByID(context context.Context, id string) (*Cosplayer, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		selectColumns(), schema.Cosplayer.Table, schema.Cosplayer.ID)

	c := &Cosplayer{}
	if err := scanCosplayer(repository.pool.QueryRow(context, query, id), c); err != nil {
		return nil, dberr.Wrap(err, "find_cosplayer_by_id")
	}
	if c.Tags == nil {
		c.Tags = []string{}
	}
	return c, nil
}

// Create persists a new profile row.
func (repository *postgresRepository) Create(context context.Context, cosplayer *Cosplayer) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`,
		schema.Cosplayer.Table,
		schema.Cosplayer.ID, schema.Cosplayer.Name, schema.Cosplayer.Character, schema.Cosplayer.Bio,
		schema.Cosplayer.Location, schema.Cosplayer.ProfileImage, schema.Cosplayer.Tags,
		schema.Cosplayer.Status, schema.Cosplayer.Featured, schema.Cosplayer.SocialLinks,
	)

	_, err := repository.pool.Exec(context, query,
		cosplayer.ID,
		cosplayer.Name,
		cosplayer.Character,
		cosplayer.Bio,
		cosplayer.Location,
		cosplayer.ProfileImage,
		cosplayer.Tags,
		cosplayer.Status,
		cosplayer.Featured,
		cosplayer.SocialLinks,
	)
	if err != nil {
		return dberr.Wrap(err, "create_cosplayer")
	}
	return nil
}

/*
Update applies a PATCH-style partial update.

Description: Only non-nil fields of the patch reach the SET block, so
columns the admin form did not submit keep their stored values. Targeting
a missing row yields apperr.NotFound.
*/
func (repository *postgresRepository) Update(context context.Context, id string, patch Patch) error {

	var queryBuilder strings.Builder
	queryBuilder.WriteString(fmt.Sprintf("UPDATE %s SET %s = NOW()", schema.Cosplayer.Table, schema.Cosplayer.UpdatedAt))

	var args []any
	argID := 1

	appendSet := func(column string, value any) {
		queryBuilder.WriteString(fmt.Sprintf(", %s = $%d", column, argID))
		args = append(args, value)
		argID++
	}

	if patch.Name != nil {
		appendSet(schema.Cosplayer.Name, *patch.Name)
	}
	if patch.Character != nil {
		appendSet(schema.Cosplayer.Character, *patch.Character)
	}
	if patch.Bio != nil {
		appendSet(schema.Cosplayer.Bio, *patch.Bio)
	}
	if patch.Location != nil {
		appendSet(schema.Cosplayer.Location, *patch.Location)
	}
	if patch.ProfileImage != nil {
		appendSet(schema.Cosplayer.ProfileImage, *patch.ProfileImage)
	}
	if patch.Tags != nil {
		appendSet(schema.Cosplayer.Tags, *patch.Tags)
	}
	if patch.Status != nil {
		appendSet(schema.Cosplayer.Status, *patch.Status)
	}
	if patch.Featured != nil {
		appendSet(schema.Cosplayer.Featured, *patch.Featured)
	}
	if patch.SocialLinks != nil {
		appendSet(schema.Cosplayer.SocialLinks, *patch.SocialLinks)
	}

	queryBuilder.WriteString(fmt.Sprintf(" WHERE %s = $%d", schema.Cosplayer.ID, argID))
	args = append(args, id)

	result, err := repository.pool.Exec(context, queryBuilder.String(), args...)
	if err != nil {
		return dberr.Wrap(err, "update_cosplayer")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("cosplayer")
	}
	return nil
}

// Delete removes a profile row permanently.
func (repository *postgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", schema.Cosplayer.Table, schema.Cosplayer.ID)

	result, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_cosplayer")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("cosplayer")
	}
	return nil
}

/*
IncrementPopularity performs a race-safe counter update.

Description: The addition happens inside the database engine, so two
concurrent likers both land and the counter moves by exactly the sum of
their deltas. Returns the post-increment value.
*/
func (repository *postgresRepository) IncrementPopularity(context context.Context, id string, delta int) (int, error) {
	query := fmt.Sprintf("UPDATE %s SET %s = %s + $1 WHERE %s = $2 RETURNING %s",
		schema.Cosplayer.Table,
		schema.Cosplayer.Popularity, schema.Cosplayer.Popularity,
		schema.Cosplayer.ID, schema.Cosplayer.Popularity,
	)

	var popularity int
	if err := repository.pool.QueryRow(context, query, delta, id).Scan(&popularity); err != nil {
		return 0, dberr.Wrap(err, "increment_popularity")
	}
	return popularity, nil
}
