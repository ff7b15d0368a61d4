package boltdb

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"

	"github.com/iudanet/webcards/internal/client/storage"
	"github.com/iudanet/webcards/internal/models"
)

// создаём тестовое BoltDB хранилище с session bucket
func createTestStorage(t *testing.T) *Storage {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "session_test.db")

	store, err := New(context.Background(), dbPath)
	require.NoError(t, err)
	require.NotNil(t, store)

	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})

	return store
}

func testSession(expiresAt time.Time) *models.Session {
	return &models.Session{
		Credential: "bearer-token-123",
		User: models.UserProfile{
			ID:        77,
			FirstName: "Ana",
			Username:  "ana",
		},
		ExpiresAt: expiresAt,
		CardID:    "card-5",
	}
}

func TestStorage_SaveGetDeleteSession(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	// До сохранения GetSession выдает ErrSessionNotFound
	_, err := store.GetSession(ctx)
	assert.ErrorIs(t, err, storage.ErrSessionNotFound)

	expiresAt := time.Now().Add(time.Hour).UTC().Truncate(time.Millisecond)
	sess := testSession(expiresAt)

	require.NoError(t, store.SaveSession(ctx, sess))

	got, err := store.GetSession(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, sess.Credential, got.Credential)
	assert.Equal(t, sess.User, got.User)
	assert.Equal(t, sess.CardID, got.CardID)
	assert.True(t, got.ExpiresAt.Equal(expiresAt))

	// Удаляем сессию
	require.NoError(t, store.DeleteSession(ctx))

	_, err = store.GetSession(ctx)
	assert.ErrorIs(t, err, storage.ErrSessionNotFound)

	// DeleteSession идемпотентен
	require.NoError(t, store.DeleteSession(ctx))
}

func TestStorage_SaveSession_Nil(t *testing.T) {
	store := createTestStorage(t)
	assert.Error(t, store.SaveSession(context.Background(), nil))
}

func TestStorage_SaveSession_ReplacesOptionalFields(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	// Сначала сессия со сроком и карточкой
	require.NoError(t, store.SaveSession(ctx, testSession(time.Now().Add(time.Hour))))

	// Затем сессия без опциональных полей: хвосты должны исчезнуть
	replacement := &models.Session{
		Credential: "new-token",
		User:       models.UserProfile{ID: 1, FirstName: "Luis"},
	}
	require.NoError(t, store.SaveSession(ctx, replacement))

	got, err := store.GetSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, "new-token", got.Credential)
	assert.False(t, got.HasExpiry())
	assert.Empty(t, got.CardID)
}

func TestStorage_GetSession_Corrupt(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		key   []byte
		value []byte
	}{
		{
			name:  "broken user profile JSON",
			key:   keyUser,
			value: []byte("{not json"),
		},
		{
			name:  "broken expiry timestamp",
			key:   keyExpiresAt,
			value: []byte("yesterday"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := createTestStorage(t)
			require.NoError(t, store.SaveSession(ctx, testSession(time.Now().Add(time.Hour))))

			// Портим запись напрямую в bucket
			err := store.db.Update(func(tx *bbolt.Tx) error {
				return tx.Bucket(bucketSession).Put(tt.key, tt.value)
			})
			require.NoError(t, err)

			_, err = store.GetSession(ctx)
			assert.ErrorIs(t, err, storage.ErrCorruptSession)
		})
	}
}

func TestStorage_GetSession_MissingUserEntry(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)
	require.NoError(t, store.SaveSession(ctx, testSession(time.Time{})))

	err := store.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketSession).Delete(keyUser)
	})
	require.NoError(t, err)

	_, err = store.GetSession(ctx)
	assert.ErrorIs(t, err, storage.ErrCorruptSession)
}

func TestStorage_EnsureDeviceID(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	deviceID, err := store.EnsureDeviceID(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, deviceID)

	// Повторный вызов возвращает тот же ID
	again, err := store.EnsureDeviceID(ctx)
	require.NoError(t, err)
	assert.Equal(t, deviceID, again)

	// Device ID переживает удаление сессии
	require.NoError(t, store.SaveSession(ctx, testSession(time.Time{})))
	require.NoError(t, store.DeleteSession(ctx))

	afterDelete, err := store.EnsureDeviceID(ctx)
	require.NoError(t, err)
	assert.Equal(t, deviceID, afterDelete)
}
