// Copyright (c) 2026 Cosona. All rights reserved.
// Author: mai.haruki.jp@gmail.com

package message

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

// NewPostgresRepository constructs a PostgreSQL backed message store.
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func selectColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s",
		schema.Message.ID,
		schema.Message.Name,
		schema.Message.Email,
		schema.Message.Subject,
		schema.Message.Body,
		schema.Message.Status,
		schema.Message.CreatedAt,
	)
}

// List returns the inbox newest-first, optionally filtered by status.
func (repository *postgresRepository) List(context context.Context, status Status, limit, offset int) ([]*Message, int, error) {

	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s
		WHERE TRUE
	`, selectColumns(), schema.Message.Table))

	if status != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = $%d", schema.Message.Status, argID))
		args = append(args, status)
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s DESC", schema.Message.CreatedAt))
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_messages")
	}
	defer rows.Close()

	messages := make([]*Message, 0)
	var totalCount int

	for rows.Next() {
		m := &Message{}
		err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Body, &m.Status, &m.CreatedAt, &totalCount)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_message")
		}
		messages = append(messages, m)
	}

	return messages, totalCount, nil
}

func (repository *postgresRepository) FindByID(context context.Context, id string) (*Message, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1",
		selectColumns(), schema.Message.Table, schema.Message.ID)

	m := &Message{}
	err := repository.pool.QueryRow(context, query, id).
		Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Body, &m.Status, &m.CreatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "find_message_by_id")
	}
	return m, nil
}

func (repository *postgresRepository) Create(context context.Context, message *Message) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		schema.Message.Table,
		schema.Message.ID, schema.Message.Name, schema.Message.Email,
		schema.Message.Subject, schema.Message.Body, schema.Message.Status,
	)

	_, err := repository.pool.Exec(context, query,
		message.ID,
		message.Name,
		message.Email,
		message.Subject,
		message.Body,
		message.Status,
	)
	if err != nil {
		return dberr.Wrap(err, "create_message")
	}
	return nil
}

func (repository *postgresRepository) UpdateStatus(context context.Context, id string, status Status) error {
	query := fmt.Sprintf("UPDATE %s SET %s = $1 WHERE %s = $2",
		schema.Message.Table, schema.Message.Status, schema.Message.ID)

	result, err := repository.pool.Exec(context, query, status, id)
	if err != nil {
		return dberr.Wrap(err, "update_message_status")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("message")
	}
	return nil
}

func (repository *postgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", schema.Message.Table, schema.Message.ID)

	result, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_message")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("message")
	}
	return nil
}
