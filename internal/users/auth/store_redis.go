// Copyright (c) 2026 Cosona. All rights reserved.
// Author: mai.haruki.jp@gmail.com

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/harukimai/cosona/internal/platform/apperr"
	"github.com/harukimai/cosona/internal/platform/constants"
	"github.com/redis/go-redis/v9"
)

// # Session Repository (Redis)

// redisSessionRepository stores refresh sessions in Redis.
//
// Each session lives under auth:session:<tokenHash> with a native TTL, so
// expired sessions vanish without cleanup jobs. A per-user set under
// auth:user_sessions:<userID> indexes the hashes for bulk revocation.
type redisSessionRepository struct {
	client *redis.Client
}

// NewRedisSessionRepository constructs a Redis backed session store.
func NewRedisSessionRepository(client *redis.Client) SessionRepository {
	return &redisSessionRepository{client: client}
}

func sessionKey(tokenHash string) string {
	return constants.RedisPrefixSession + tokenHash
}

func userSessionsKey(userID string) string {
	return constants.RedisPrefixUserSessions + userID
}

func (repository *redisSessionRepository) Create(context context.Context, session *Session, ttl time.Duration) error {
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return apperr.Internal(fmt.Errorf("auth: failed to encode session: %w", err))
	}

	pipe := repository.client.TxPipeline()
	pipe.Set(context, sessionKey(session.TokenHash), payload, ttl)
	pipe.SAdd(context, userSessionsKey(session.UserID), session.TokenHash)

	// The index must outlive its longest session or bulk revocation would
	// miss entries.
	pipe.Expire(context, userSessionsKey(session.UserID), ttl)

	if _, err := pipe.Exec(context); err != nil {
		return apperr.Internal(fmt.Errorf("auth: failed to store session: %w", err))
	}
	return nil
}

func (repository *redisSessionRepository) FindByTokenHash(context context.Context, tokenHash string) (*Session, error) {
	payload, err := repository.client.Get(context, sessionKey(tokenHash)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("Session")
		}
		return nil, apperr.Internal(fmt.Errorf("auth: failed to load session: %w", err))
	}

	session := &Session{}
	if err := json.Unmarshal(payload, session); err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth: failed to decode session: %w", err))
	}

	session.TokenHash = tokenHash
	return session, nil
}

// Revoke deletes a single session. Revoking an already-expired or unknown
// token is a no-op, which makes logout idempotent.
func (repository *redisSessionRepository) Revoke(context context.Context, tokenHash string) error {
	session, err := repository.FindByTokenHash(context, tokenHash)
	if err != nil {
		if apperr.As(err) != nil && apperr.As(err).Code == "NOT_FOUND" {
			return nil
		}
		return err
	}

	pipe := repository.client.TxPipeline()
	pipe.Del(context, sessionKey(tokenHash))
	pipe.SRem(context, userSessionsKey(session.UserID), tokenHash)

	if _, err := pipe.Exec(context); err != nil {
		return apperr.Internal(fmt.Errorf("auth: failed to revoke session: %w", err))
	}
	return nil
}

// RevokeAll deletes every session belonging to a user.
func (repository *redisSessionRepository) RevokeAll(context context.Context, userID string) error {
	hashes, err := repository.client.SMembers(context, userSessionsKey(userID)).Result()
	if err != nil {
		return apperr.Internal(fmt.Errorf("auth: failed to list sessions: %w", err))
	}

	keys := make([]string, 0, len(hashes)+1)
	for _, hash := range hashes {
		keys = append(keys, sessionKey(hash))
	}
	keys = append(keys, userSessionsKey(userID))

	if err := repository.client.Del(context, keys...).Err(); err != nil {
		return apperr.Internal(fmt.Errorf("auth: failed to revoke sessions: %w", err))
	}
	return nil
}
