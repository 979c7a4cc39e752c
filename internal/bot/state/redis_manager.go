package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vladimiradmaev/drink-helper/internal/logger"
	"github.com/vladimiradmaev/drink-helper/internal/services"
)

const (
	redisKeyPrefix = "drink-helper:bot:user"
	redisTimeout   = 3 * time.Second
)

// RedisManager manages user states using Redis. Every key expires TTL after
// its last write. Redis failures are logged and read as empty state.
type RedisManager struct {
	client *redis.Client
}

// NewRedisManager creates a new Redis-based state manager
func NewRedisManager(client *redis.Client) (*RedisManager, error) {
	if client == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisManager{client: client}, nil
}

func key(userID int64, kind string) string {
	return fmt.Sprintf("%s:%d:%s", redisKeyPrefix, userID, kind)
}

func (m *RedisManager) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), redisTimeout)
}

// SetUserState sets the state for a user with TTL
func (m *RedisManager) SetUserState(userID int64, state string) {
	ctx, cancel := m.ctx()
	defer cancel()
	if err := m.client.Set(ctx, key(userID, "state"), state, TTL).Err(); err != nil {
		logger.Warn("Failed to store user state", "user_id", userID, "error", err)
	}
}

// GetUserState gets the state for a user
func (m *RedisManager) GetUserState(userID int64) string {
	ctx, cancel := m.ctx()
	defer cancel()
	state, err := m.client.Get(ctx, key(userID, "state")).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Warn("Failed to read user state", "user_id", userID, "error", err)
		}
		return None
	}
	return state
}

// ClearUserState clears the state for a user
func (m *RedisManager) ClearUserState(userID int64) {
	m.del(userID, "state")
}

// SetTempData sets temporary data for a user
func (m *RedisManager) SetTempData(userID int64, field, value string) {
	ctx, cancel := m.ctx()
	defer cancel()
	k := key(userID, "temp")
	_, err := m.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, k, field, value)
		pipe.Expire(ctx, k, TTL)
		return nil
	})
	if err != nil {
		logger.Warn("Failed to store temp data", "user_id", userID, "error", err)
	}
}

// GetTempData gets temporary data for a user
func (m *RedisManager) GetTempData(userID int64, field string) (string, bool) {
	ctx, cancel := m.ctx()
	defer cancel()
	value, err := m.client.HGet(ctx, key(userID, "temp"), field).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Warn("Failed to read temp data", "user_id", userID, "error", err)
		}
		return "", false
	}
	return value, true
}

// ClearTempData clears all temporary data for a user
func (m *RedisManager) ClearTempData(userID int64) {
	m.del(userID, "temp")
}

func (m *RedisManager) AppendChatTurns(userID int64, turns ...services.Turn) {
	if len(turns) == 0 {
		return
	}

	values := make([]interface{}, 0, len(turns))
	for _, turn := range turns {
		data, err := json.Marshal(turn)
		if err != nil {
			logger.Warn("Failed to encode chat turn", "user_id", userID, "error", err)
			return
		}
		values = append(values, data)
	}

	ctx, cancel := m.ctx()
	defer cancel()
	k := key(userID, "chat")
	_, err := m.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, k, values...)
		pipe.LTrim(ctx, k, -MaxChatTurns, -1)
		pipe.Expire(ctx, k, TTL)
		return nil
	})
	if err != nil {
		logger.Warn("Failed to store chat turns", "user_id", userID, "error", err)
	}
}

// ChatHistory returns the user's chat turns, oldest first. Undecodable
// entries are skipped.
func (m *RedisManager) ChatHistory(userID int64) []services.Turn {
	ctx, cancel := m.ctx()
	defer cancel()
	raw, err := m.client.LRange(ctx, key(userID, "chat"), 0, -1).Result()
	if err != nil {
		logger.Warn("Failed to read chat history", "user_id", userID, "error", err)
		return nil
	}

	history := make([]services.Turn, 0, len(raw))
	for _, entry := range raw {
		var turn services.Turn
		if err := json.Unmarshal([]byte(entry), &turn); err != nil {
			continue
		}
		history = append(history, turn)
	}
	return history
}

func (m *RedisManager) ClearChatHistory(userID int64) {
	m.del(userID, "chat")
}

func (m *RedisManager) del(userID int64, kind string) {
	ctx, cancel := m.ctx()
	defer cancel()
	if err := m.client.Del(ctx, key(userID, kind)).Err(); err != nil {
		logger.Warn("Failed to clear user data", "user_id", userID, "kind", kind, "error", err)
	}
}
