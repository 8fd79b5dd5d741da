// Copyright (c) 2026 Cosona. All rights reserved.
// Author: mai.haruki.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"strings"

	"github.com/harukimai/cosona/internal/platform/apperr"
	"github.com/harukimai/cosona/internal/platform/database/schema"
	"github.com/harukimai/cosona/internal/platform/dberr"
	"github.com/harukimai/cosona/internal/users/auth"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed account store.
func NewPostgresRepository(pool *pgxpool.Pool) AccountRepository {
	return &postgresRepository{pool: pool}
}

func selectColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		schema.UsersAccount.ID,
		schema.UsersAccount.Username,
		schema.UsersAccount.Email,
		schema.UsersAccount.PasswordHash,
		schema.UsersAccount.DisplayName,
		schema.UsersAccount.Bio,
		schema.UsersAccount.AvatarURL,
		schema.UsersAccount.Website,
		schema.UsersAccount.Role,
		schema.UsersAccount.CreatedAt,
		schema.UsersAccount.UpdatedAt,
	)
}

func scanUser(row interface{ Scan(...any) error }, u *auth.User) error {
	return row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.DisplayName,
		&u.Bio,
		&u.AvatarURL,
		&u.Website,
		&u.Role,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
}

func (repository *postgresRepository) FindByID(context context.Context, id string) (*auth.User, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1",
		selectColumns(), schema.UsersAccount.Table, schema.UsersAccount.ID)

	user := &auth.User{}
	if err := scanUser(repository.pool.QueryRow(context, query, id), user); err != nil {
		return nil, dberr.Wrap(err, "find_account_by_id")
	}
	return user, nil
}

func (repository *postgresRepository) FindByUsername(context context.Context, username string) (*auth.User, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1",
		selectColumns(), schema.UsersAccount.Table, schema.UsersAccount.Username)

	user := &auth.User{}
	if err := scanUser(repository.pool.QueryRow(context, query, username), user); err != nil {
		return nil, dberr.Wrap(err, "find_account_by_username")
	}
	return user, nil
}

// UpdateProfile applies a PATCH-style partial update to the mutable profile
// fields.
func (repository *postgresRepository) UpdateProfile(context context.Context, id string, input UpdateProfileInput) error {

	var queryBuilder strings.Builder
	queryBuilder.WriteString(fmt.Sprintf("UPDATE %s SET %s = NOW()",
		schema.UsersAccount.Table, schema.UsersAccount.UpdatedAt))

	var args []any
	argID := 1

	appendSet := func(column string, value any) {
		queryBuilder.WriteString(fmt.Sprintf(", %s = $%d", column, argID))
		args = append(args, value)
		argID++
	}

	if input.DisplayName != nil {
		appendSet(schema.UsersAccount.DisplayName, *input.DisplayName)
	}
	if input.Bio != nil {
		appendSet(schema.UsersAccount.Bio, *input.Bio)
	}
	if input.AvatarURL != nil {
		appendSet(schema.UsersAccount.AvatarURL, *input.AvatarURL)
	}
	if input.Website != nil {
		appendSet(schema.UsersAccount.Website, *input.Website)
	}

	queryBuilder.WriteString(fmt.Sprintf(" WHERE %s = $%d", schema.UsersAccount.ID, argID))
	args = append(args, id)

	result, err := repository.pool.Exec(context, queryBuilder.String(), args...)
	if err != nil {
		return dberr.Wrap(err, "update_account_profile")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}
	return nil
}
