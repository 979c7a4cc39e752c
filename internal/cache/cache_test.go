package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/vladimiradmaev/drink-helper/internal/common/clock/mocks"
	"go.uber.org/mock/gomock"
)

type weekly struct {
	TotalMl float64 `json:"totalMl"`
	Days    int     `json:"days"`
}

type RedisCacheTestSuite struct {
	suite.Suite
	mr     *miniredis.Miniredis
	client *redis.Client
	cache  *QueryCache
	ctx    context.Context
}

func (s *RedisCacheTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{Addr: s.mr.Addr()})

	store, err := NewRedisStore(&RedisConfig{RedisClient: s.client})
	s.Require().NoError(err)
	s.cache = New(Config{Store: store, TTL: 5 * time.Minute})
	s.ctx = context.Background()
}

func (s *RedisCacheTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisCacheTestSuite(t *testing.T) {
	suite.Run(t, new(RedisCacheTestSuite))
}

func (s *RedisCacheTestSuite) TestSecondReadIsServedFromCache() {
	calls := 0
	load := func(context.Context) (weekly, error) {
		calls++
		return weekly{TotalMl: 720, Days: 2}, nil
	}
	key := Key("u1", ScopeStats, "weekly", "2026-10-11")

	first, err := Fetch(s.ctx, s.cache, key, load)
	s.Require().NoError(err)
	second, err := Fetch(s.ctx, s.cache, key, load)
	s.Require().NoError(err)

	s.Equal(1, calls)
	s.Equal(first, second)
	s.True(s.mr.Exists(keyPrefix + key))
	s.Equal(5*time.Minute, s.mr.TTL(keyPrefix+key))
}

func (s *RedisCacheTestSuite) TestEntriesExpire() {
	calls := 0
	load := func(context.Context) (int, error) {
		calls++
		return calls, nil
	}
	key := Key("u1", ScopeDrinkLogs, "date", "2026-10-16")

	_, err := Fetch(s.ctx, s.cache, key, load)
	s.Require().NoError(err)

	s.mr.FastForward(6 * time.Minute)

	v, err := Fetch(s.ctx, s.cache, key, load)
	s.Require().NoError(err)
	s.Equal(2, v)
}

func (s *RedisCacheTestSuite) TestInvalidateDropsOnlyThatUserAndScope() {
	load := func(context.Context) (string, error) { return "v", nil }
	keys := []string{
		Key("u1", ScopeDrinkLogs, "date", "2026-10-16"),
		Key("u1", ScopeDrinkLogs, "range", "2026-10-01", "2026-10-31"),
		Key("u1", ScopeGoals, "active"),
		Key("u2", ScopeDrinkLogs, "date", "2026-10-16"),
	}
	for _, key := range keys {
		_, err := Fetch(s.ctx, s.cache, key, load)
		s.Require().NoError(err)
	}

	s.cache.Invalidate(s.ctx, "u1", ScopeDrinkLogs)

	s.False(s.mr.Exists(keyPrefix + keys[0]))
	s.False(s.mr.Exists(keyPrefix + keys[1]))
	s.True(s.mr.Exists(keyPrefix + keys[2]))
	s.True(s.mr.Exists(keyPrefix + keys[3]))
}

func (s *RedisCacheTestSuite) TestDeletePrefixMatchesLiterally() {
	store, err := NewRedisStore(&RedisConfig{RedisClient: s.client})
	s.Require().NoError(err)

	keys := []string{"user:a*:logs:x", "user:ab:logs:x", "user:a?[1]:logs:x", "user:a1:logs:x"}
	for _, key := range keys {
		s.Require().NoError(store.Set(s.ctx, key, []byte("v"), time.Minute))
	}

	s.Require().NoError(store.DeletePrefix(s.ctx, "user:a*:"))
	s.Require().NoError(store.DeletePrefix(s.ctx, "user:a?[1]:"))

	s.False(s.mr.Exists(keyPrefix + keys[0]))
	s.True(s.mr.Exists(keyPrefix + keys[1]))
	s.False(s.mr.Exists(keyPrefix + keys[2]))
	s.True(s.mr.Exists(keyPrefix + keys[3]))
}

func TestEscapeGlob(t *testing.T) {
	assert.Equal(t, `user:a\*b\?c\[d\]e\\f:`, escapeGlob(`user:a*b?c[d]e\f:`))
	assert.Equal(t, "user:plain:", escapeGlob("user:plain:"))
}

func (s *RedisCacheTestSuite) TestFailedLoadIsRetriedOnce() {
	calls := 0
	load := func(context.Context) (int, error) {
		calls++
		if calls == 1 {
			return 0, errors.New("connection reset")
		}
		return 42, nil
	}

	v, err := Fetch(s.ctx, s.cache, Key("u1", ScopeGoals, "active"), load)
	s.Require().NoError(err)
	s.Equal(42, v)
	s.Equal(2, calls)
}

func (s *RedisCacheTestSuite) TestPersistentFailureIsReturnedAndNotCached() {
	calls := 0
	boom := errors.New("boom")
	load := func(context.Context) (int, error) {
		calls++
		return 0, boom
	}
	key := Key("u1", ScopeGoals, "active")

	_, err := Fetch(s.ctx, s.cache, key, load)
	s.ErrorIs(err, boom)
	s.Equal(2, calls)
	s.False(s.mr.Exists(keyPrefix + key))
}

func (s *RedisCacheTestSuite) TestRedisOutageFallsBackToLoader() {
	s.mr.SetError("ERR server unavailable")

	v, err := Fetch(s.ctx, s.cache, Key("u1", ScopeUser, "me"), func(context.Context) (string, error) {
		return "fresh", nil
	})
	s.Require().NoError(err)
	s.Equal("fresh", v)
}

func TestNewRedisStoreValidation(t *testing.T) {
	_, err := NewRedisStore(nil)
	assert.Error(t, err)
	_, err = NewRedisStore(&RedisConfig{})
	assert.Error(t, err)
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockClock := mocks.NewMockClock(ctrl)
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

	gomock.InOrder(
		mockClock.EXPECT().Now().Return(now),                    // Set
		mockClock.EXPECT().Now().Return(now.Add(4*time.Minute)), // fresh Get
		mockClock.EXPECT().Now().Return(now.Add(5*time.Minute)), // expired Get
	)

	store := NewMemoryStore(mockClock)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "k", []byte("v"), 5*time.Minute))

	v, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v"), v)

	_, ok, err = store.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStoreBacksQueryCache(t *testing.T) {
	c := New(Config{Store: NewMemoryStore(nil), TTL: time.Minute})
	ctx := context.Background()

	calls := 0
	load := func(context.Context) ([]string, error) {
		calls++
		return []string{"soju", "beer"}, nil
	}
	key := Key("u1", ScopeDrinkLogs, "date", "2026-10-16")

	_, err := Fetch(ctx, c, key, load)
	require.NoError(t, err)
	got, err := Fetch(ctx, c, key, load)
	require.NoError(t, err)
	assert.Equal(t, []string{"soju", "beer"}, got)
	assert.Equal(t, 1, calls)

	c.Invalidate(ctx, "u1", ScopeDrinkLogs)
	_, err = Fetch(ctx, c, key, load)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestFetchWithoutCache(t *testing.T) {
	calls := 0
	v, err := Fetch(context.Background(), nil, "k", func(context.Context) (int, error) {
		calls++
		return 7, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 7, v)
	assert.Equal(t, 1, calls)
}
