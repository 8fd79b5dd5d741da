// Copyright (c) 2026 Cosona. All rights reserved.
// Author: mai.haruki.jp@gmail.com

package auth

import (
	"context"
	"fmt"

	"github.com/harukimai/cosona/internal/platform/apperr"
	"github.com/harukimai/cosona/internal/platform/database/schema"
	"github.com/harukimai/cosona/internal/platform/dberr"
	"github.com/jackc/pgx/v5/pgxpool"
)

// # User Repository

type postgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository constructs a PostgreSQL backed user store.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &postgresUserRepository{pool: pool}
}

func userColumns() string {
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

func scanUser(row interface{ Scan(...any) error }, u *User) error {
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

func (repository *postgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1",
		userColumns(), schema.UsersAccount.Table, schema.UsersAccount.ID)

	user := &User{}
	if err := scanUser(repository.pool.QueryRow(context, query, id), user); err != nil {
		return nil, dberr.Wrap(err, "find_user_by_id")
	}
	return user, nil
}

// FindByEmail resolves an account by email. Matching is case-insensitive
// since email addresses are not case-sensitive in practice.
func (repository *postgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE LOWER(%s) = LOWER($1)",
		userColumns(), schema.UsersAccount.Table, schema.UsersAccount.Email)

	user := &User{}
	if err := scanUser(repository.pool.QueryRow(context, query, email), user); err != nil {
		return nil, dberr.Wrap(err, "find_user_by_email")
	}
	return user, nil
}

func (repository *postgresUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1",
		userColumns(), schema.UsersAccount.Table, schema.UsersAccount.Username)

	user := &User{}
	if err := scanUser(repository.pool.QueryRow(context, query, username), user); err != nil {
		return nil, dberr.Wrap(err, "find_user_by_username")
	}
	return user, nil
}

// Create persists a new account. Username and email uniqueness are database
// constraints and surface as conflicts.
func (repository *postgresUserRepository) Create(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		schema.UsersAccount.Table,
		schema.UsersAccount.ID, schema.UsersAccount.Username, schema.UsersAccount.Email,
		schema.UsersAccount.PasswordHash, schema.UsersAccount.DisplayName, schema.UsersAccount.Bio,
		schema.UsersAccount.AvatarURL, schema.UsersAccount.Website, schema.UsersAccount.Role,
	)

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.DisplayName,
		user.Bio,
		user.AvatarURL,
		user.Website,
		user.Role,
	)
	if err != nil {
		return dberr.Wrap(err, "create_user")
	}
	return nil
}

func (repository *postgresUserRepository) UpdatePassword(context context.Context, id, passwordHash string) error {
	query := fmt.Sprintf("UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1",
		schema.UsersAccount.Table, schema.UsersAccount.PasswordHash,
		schema.UsersAccount.UpdatedAt, schema.UsersAccount.ID)

	result, err := repository.pool.Exec(context, query, id, passwordHash)
	if err != nil {
		return dberr.Wrap(err, "update_user_password")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}
	return nil
}
