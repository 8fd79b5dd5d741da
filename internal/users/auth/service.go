// Copyright (c) 2026 Cosona. All rights reserved.
// Author: mai.haruki.jp@gmail.com

package auth

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/harukimai/cosona/internal/platform/apperr"
	"github.com/harukimai/cosona/internal/platform/sec"
	"github.com/harukimai/cosona/pkg/uuidv7"
)

// dummyPasswordHash is a valid bcrypt hash of a random string. It is compared
// against when the login identity does not exist, so lookups for known and
// unknown accounts take the same time.
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// # Service Inputs / Outputs

// RegisterInput carries the fields required to create a new account.
type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	DisplayName string
}

// LoginInput carries the credentials and client metadata for a login attempt.
type LoginInput struct {
	Login     string
	Password  string
	UserAgent string
	IPAddress string
}

// SessionResult is the outcome of a successful login or refresh.
type SessionResult struct {
	User                  *User
	AccessToken           string
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
}

// TokenProvider abstracts access-token generation so the service does not
// depend on the concrete JWT implementation.
type TokenProvider interface {
	GenerateAccessToken(userID, username, role string, timeToLive time.Duration) (string, error)
}

// # Service

// Service orchestrates the authentication business logic.
type Service struct {
	users    UserRepository
	sessions SessionRepository
	tokens   TokenProvider
	logger   *slog.Logger
}

// NewService constructs a new auth [Service].
func NewService(users UserRepository, sessions SessionRepository, tokens TokenProvider, logger *slog.Logger) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		logger:   logger,
	}
}

/*
Register creates a new member account.

Description: Checks identity uniqueness, hashes the password, and persists
the account with the default member role. The unique indexes on username and
email remain the authoritative guard against races.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: The created account
  - error: apperr.Conflict on duplicate identity, validation or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {
	if _, err := service.users.FindByEmail(context, input.Email); err == nil {
		return nil, apperr.Conflict("Email already registered")
	}
	if _, err := service.users.FindByUsername(context, input.Username); err == nil {
		return nil, apperr.Conflict("Username already taken")
	}

	passwordHash, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	displayName := input.DisplayName
	if displayName == "" {
		displayName = input.Username
	}

	user := &User{
		ID:           uuidv7.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: passwordHash,
		DisplayName:  displayName,
		Role:         sec.RoleMember,
	}

	if err := service.users.Create(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_registered",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
	)
	return user, nil
}

/*
Login authenticates a user and opens a refresh session.

Description: Resolves the login identity (email or username), verifies the
password, and issues an access token plus a rotating refresh token.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *SessionResult: Tokens and the authenticated user
  - error: apperr.Unauthorized on bad credentials
*/
func (service *Service) Login(context context.Context, input LoginInput) (*SessionResult, error) {
	user, err := service.findByLogin(context, input.Login)
	if err != nil {

		// Burn a bcrypt comparison even for unknown identities.
		sec.CheckPasswordHash(input.Password, dummyPasswordHash)
		return nil, apperr.Unauthorized("Invalid credentials")
	}

	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		service.logger.Warn("login_failed",
			slog.String("user_id", user.ID),
			slog.String("ip", input.IPAddress),
		)
		return nil, apperr.Unauthorized("Invalid credentials")
	}

	result, err := service.issueSession(context, user, input.UserAgent, input.IPAddress)
	if err != nil {
		return nil, err
	}

	service.logger.Info("user_logged_in", slog.String("user_id", user.ID))
	return result, nil
}

// Logout revokes the session bound to the given refresh token. Unknown or
// already-expired tokens succeed silently.
func (service *Service) Logout(context context.Context, refreshToken string) error {
	return service.sessions.Revoke(context, sec.HashToken(refreshToken))
}

/*
RefreshSession rotates a refresh session.

Description: Validates the presented refresh token, revokes it, and issues a
new token pair. Rotation means a stolen token can be used at most once; a
replay after rotation simply fails.

Parameters:
  - context: context.Context
  - refreshToken: string (plain token from the client cookie)
  - userAgent, ipAddress: string (client metadata for the new session)

Returns:
  - *SessionResult: Fresh token pair
  - error: apperr.Unauthorized on invalid, expired, or replayed tokens
*/
func (service *Service) RefreshSession(context context.Context, refreshToken, userAgent, ipAddress string) (*SessionResult, error) {
	tokenHash := sec.HashToken(refreshToken)

	session, err := service.sessions.FindByTokenHash(context, tokenHash)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}

	user, err := service.users.FindByID(context, session.UserID)
	if err != nil {
		return nil, apperr.Unauthorized("Account no longer exists")
	}

	if err := service.sessions.Revoke(context, tokenHash); err != nil {
		return nil, err
	}

	return service.issueSession(context, user, userAgent, ipAddress)
}

/*
ChangePassword updates the password of an authenticated user.

Description: Verifies the current password before applying the new hash.
Every active session is revoked afterwards so any stolen refresh token dies
with the old password; the client must log in again.

Parameters:
  - context: context.Context
  - userID: string
  - currentPassword, newPassword: string

Returns:
  - error: apperr.Unauthorized when the current password is wrong
*/
func (service *Service) ChangePassword(context context.Context, userID, currentPassword, newPassword string) error {
	user, err := service.users.FindByID(context, userID)
	if err != nil {
		return err
	}

	if !sec.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return apperr.Unauthorized("Current password is incorrect")
	}

	passwordHash, err := sec.HashPassword(newPassword)
	if err != nil {
		return apperr.Internal(err)
	}

	if err := service.users.UpdatePassword(context, userID, passwordHash); err != nil {
		return err
	}

	if err := service.sessions.RevokeAll(context, userID); err != nil {
		return err
	}

	service.logger.Info("password_changed", slog.String("user_id", userID))
	return nil
}

// # Internals

// findByLogin resolves a flexible login identity. Anything containing '@' is
// treated as an email, everything else as a username.
func (service *Service) findByLogin(context context.Context, login string) (*User, error) {
	if strings.Contains(login, "@") {
		return service.users.FindByEmail(context, login)
	}
	return service.users.FindByUsername(context, login)
}

// issueSession mints an access token and a fresh refresh session.
func (service *Service) issueSession(context context.Context, user *User, userAgent, ipAddress string) (*SessionResult, error) {
	refreshToken, err := sec.GenerateSecureToken(RefreshTokenLength)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	expiresAt := time.Now().Add(RefreshTokenTTL)
	session := &Session{
		ID:        uuidv7.New(),
		UserID:    user.ID,
		TokenHash: sec.HashToken(refreshToken),
		UserAgent: userAgent,
		IPAddress: ipAddress,
		ExpiresAt: expiresAt,
	}

	if err := service.sessions.Create(context, session, RefreshTokenTTL); err != nil {
		return nil, err
	}

	accessToken, err := service.tokens.GenerateAccessToken(user.ID, user.Username, string(user.Role), AccessTokenTTL)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return &SessionResult{
		User:                  user,
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: expiresAt,
	}, nil
}
