// Copyright (c) 2026 Cosona. All rights reserved.
// Author: mai.haruki.jp@gmail.com

package event

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

// NewPostgresRepository constructs a PostgreSQL backed event store.
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func selectColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		schema.Event.ID,
		schema.Event.Title,
		schema.Event.Location,
		schema.Event.Date,
		schema.Event.EndDate,
		schema.Event.Description,
		schema.Event.ImagePath,
		schema.Event.Tags,
		schema.Event.EventType,
		schema.Event.Featured,
		schema.Event.CreatedAt,
		schema.Event.UpdatedAt,
	)
}

func scanEvent(row interface{ Scan(...any) error }, e *Event) error {
	err := row.Scan(
		&e.ID,
		&e.Title,
		&e.Location,
		&e.Date,
		&e.EndDate,
		&e.Description,
		&e.ImageURL,
		&e.Tags,
		&e.Type,
		&e.Featured,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if e.Tags == nil {
		e.Tags = []string{}
	}
	return nil
}

// List returns a filtered, paginated slice of events and the total count.
// The default order is date ascending, the calendar's natural order.
func (repository *postgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Event, int, error) {

	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s
		WHERE TRUE
	`, selectColumns(), schema.Event.Table))

	if filter.Type != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = $%d", schema.Event.EventType, argID))
		args = append(args, filter.Type)
		argID++
	}

	if filter.Tag != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND $%d = ANY(%s)", argID, schema.Event.Tags))
		args = append(args, filter.Tag)
		argID++
	}

	if filter.Featured != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = $%d", schema.Event.Featured, argID))
		args = append(args, *filter.Featured)
		argID++
	}

	if filter.Upcoming {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s >= CURRENT_DATE", schema.Event.Date))
	}

	orderBy := fmt.Sprintf("%s ASC", schema.Event.Date) // natural calendar order
	switch filter.Sort {
	case "newest":
		orderBy = fmt.Sprintf("%s DESC", schema.Event.CreatedAt)
	case "az":
		orderBy = fmt.Sprintf("%s ASC", schema.Event.Title)
	case "za":
		orderBy = fmt.Sprintf("%s DESC", schema.Event.Title)
	}
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s, %s DESC", orderBy, schema.Event.ID))

	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_events")
	}
	defer rows.Close()

	events := make([]*Event, 0)
	var totalCount int

	for rows.Next() {
		e := &Event{}
		err := rows.Scan(
			&e.ID,
			&e.Title,
			&e.Location,
			&e.Date,
			&e.EndDate,
			&e.Description,
			&e.ImageURL,
			&e.Tags,
			&e.Type,
			&e.Featured,
			&e.CreatedAt,
			&e.UpdatedAt,
			&totalCount,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_event")
		}
		if e.Tags == nil {
			e.Tags = []string{}
		}
		events = append(events, e)
	}

	return events, totalCount, nil
}

// FindByID retrieves a single event by primary key.
func (repository *postgresRepository) FindByID(context context.Context, id string) (*Event, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1",
		selectColumns(), schema.Event.Table, schema.Event.ID)

	e := &Event{}
	if err := scanEvent(repository.pool.QueryRow(context, query, id), e); err != nil {
		return nil, dberr.Wrap(err, "find_event_by_id")
	}
	return e, nil
}

// Create persists a new event row.
func (repository *postgresRepository) Create(context context.Context, event *Event) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`,
		schema.Event.Table,
		schema.Event.ID, schema.Event.Title, schema.Event.Location,
		schema.Event.Date, schema.Event.EndDate, schema.Event.Description,
		schema.Event.ImagePath, schema.Event.Tags, schema.Event.EventType, schema.Event.Featured,
	)

	_, err := repository.pool.Exec(context, query,
		event.ID,
		event.Title,
		event.Location,
		event.Date,
		event.EndDate,
		event.Description,
		event.ImageURL,
		event.Tags,
		event.Type,
		event.Featured,
	)
	if err != nil {
		return dberr.Wrap(err, "create_event")
	}
	return nil
}

// Update applies a PATCH-style partial update.
func (repository *postgresRepository) Update(context context.Context, id string, patch Patch) error {

	var queryBuilder strings.Builder
	queryBuilder.WriteString(fmt.Sprintf("UPDATE %s SET %s = NOW()", schema.Event.Table, schema.Event.UpdatedAt))

	var args []any
	argID := 1

	appendSet := func(column string, value any) {
		queryBuilder.WriteString(fmt.Sprintf(", %s = $%d", column, argID))
		args = append(args, value)
		argID++
	}

	if patch.Title != nil {
		appendSet(schema.Event.Title, *patch.Title)
	}
	if patch.Location != nil {
		appendSet(schema.Event.Location, *patch.Location)
	}
	if patch.Date != nil {
		appendSet(schema.Event.Date, *patch.Date)
	}
	if patch.EndDate != nil {
		appendSet(schema.Event.EndDate, *patch.EndDate)
	}
	if patch.Description != nil {
		appendSet(schema.Event.Description, *patch.Description)
	}
	if patch.ImagePath != nil {
		appendSet(schema.Event.ImagePath, *patch.ImagePath)
	}
	if patch.Tags != nil {
		appendSet(schema.Event.Tags, *patch.Tags)
	}
	if patch.Type != nil {
		appendSet(schema.Event.EventType, *patch.Type)
	}
	if patch.Featured != nil {
		appendSet(schema.Event.Featured, *patch.Featured)
	}

	queryBuilder.WriteString(fmt.Sprintf(" WHERE %s = $%d", schema.Event.ID, argID))
	args = append(args, id)

	result, err := repository.pool.Exec(context, queryBuilder.String(), args...)
	if err != nil {
		return dberr.Wrap(err, "update_event")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("event")
	}
	return nil
}

// Delete removes an event permanently.
func (repository *postgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", schema.Event.Table, schema.Event.ID)

	result, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_event")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("event")
	}
	return nil
}
