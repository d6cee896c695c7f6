package service

import (
	"context"
	"io"
	"testing"
	"time"

	"clinical-assistant/internal/domain/entity"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestMemorySessionStore_SaveFindDelete(t *testing.T) {
	store := NewMemorySessionStore(newTestLogger())
	t.Cleanup(store.Stop)
	ctx := context.Background()

	session := &entity.Session{ID: "s1", Username: "alice", Role: entity.RolePatient, Language: entity.LanguageEnglish}
	require.NoError(t, store.Save(ctx, session, time.Hour))

	found, err := store.Find(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "alice", found.Username)

	found.Language = entity.LanguageHindi
	again, err := store.Find(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, entity.LanguageEnglish, again.Language)

	require.NoError(t, store.Delete(ctx, "s1"))
	require.NoError(t, store.Delete(ctx, "s1"))

	gone, err := store.Find(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestMemorySessionStore_Expiry(t *testing.T) {
	store := NewMemorySessionStore(newTestLogger())
	t.Cleanup(store.Stop)
	ctx := context.Background()

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(ctx, &entity.Session{ID: "s1", Username: "alice"}, time.Minute))
	require.NoError(t, store.Save(ctx, &entity.Session{ID: "s2", Username: "bob"}, time.Hour))

	now = now.Add(2 * time.Minute)

	expired, err := store.Find(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, expired)

	store.removeExpired()
	store.mu.RLock()
	assert.Len(t, store.sessions, 1)
	store.mu.RUnlock()

	live, err := store.Find(ctx, "s2")
	require.NoError(t, err)
	assert.NotNil(t, live)
}

func TestMemorySessionStore_StopIsIdempotent(t *testing.T) {
	store := NewMemorySessionStore(newTestLogger())
	store.Stop()
	store.Stop()
}

func TestSessionKey(t *testing.T) {
	assert.Equal(t, "session:abc", sessionKey("abc"))
}

func newRedisStore(t *testing.T) (*RedisSessionStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisSessionStore(client, newTestLogger()), mr
}

func TestRedisSessionStore_SaveFindDelete(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()

	session := &entity.Session{ID: "s1", Username: "drwho", Role: entity.RoleDoctor, Language: entity.LanguageHindi}
	require.NoError(t, store.Save(ctx, session, time.Hour))

	assert.True(t, mr.Exists("session:s1"))
	assert.Equal(t, time.Hour, mr.TTL("session:s1"))

	found, err := store.Find(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "drwho", found.Username)
	assert.Equal(t, entity.RoleDoctor, found.Role)
	assert.Equal(t, entity.LanguageHindi, found.Language)
	assert.False(t, found.ExpiresAt.IsZero())

	require.NoError(t, store.Delete(ctx, "s1"))
	assert.False(t, mr.Exists("session:s1"))

	found, err = store.Find(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, found)

	require.NoError(t, store.Delete(ctx, "s1"))
}

func TestRedisSessionStore_Expiry(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &entity.Session{ID: "s1", Username: "alice", Role: entity.RolePatient}, time.Minute))

	mr.FastForward(2 * time.Minute)

	found, err := store.Find(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestRedisSessionStore_CorruptRecord(t *testing.T) {
	store, mr := newRedisStore(t)
	require.NoError(t, mr.Set("session:bad", "not json"))

	found, err := store.Find(context.Background(), "bad")
	assert.Error(t, err)
	assert.Nil(t, found)
}

func TestRedisSessionStore_Unavailable(t *testing.T) {
	store, mr := newRedisStore(t)
	mr.Close()
	ctx := context.Background()

	assert.Error(t, store.Save(ctx, &entity.Session{ID: "s1"}, time.Hour))
	_, err := store.Find(ctx, "s1")
	assert.Error(t, err)
	assert.Error(t, store.Delete(ctx, "s1"))
}
