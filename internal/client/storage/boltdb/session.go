package boltdb

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"

	"github.com/iudanet/webcards/internal/client/storage"
	"github.com/iudanet/webcards/internal/models"
)

// Session bucket keys. Each artifact field is a separate entry so that any
// of them can be read without deserializing the whole artifact. The device
// ID lives in the same bucket but is not part of the artifact and survives
// DeleteSession.
var (
	keyCredential = []byte("credential")
	keyExpiresAt  = []byte("expires_at")
	keyUser       = []byte("user")
	keyCardID     = []byte("card_id")
	keyDeviceID   = []byte("device_id")
)

// Compile-time check that Storage implements SessionStorage
var _ storage.SessionStorage = (*Storage)(nil)

// SaveSession stores the session artifact, replacing any previous one
func (s *Storage) SaveSession(ctx context.Context, session *models.Session) error {
	if session == nil {
		return fmt.Errorf("session is nil")
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSession)
		if bucket == nil {
			return fmt.Errorf("session bucket not found")
		}

		// Сериализуем профиль пользователя в JSON
		userData, err := json.Marshal(session.User)
		if err != nil {
			return fmt.Errorf("failed to marshal user profile: %w", err)
		}

		if err := bucket.Put(keyCredential, []byte(session.Credential)); err != nil {
			return fmt.Errorf("failed to save credential: %w", err)
		}
		if err := bucket.Put(keyUser, userData); err != nil {
			return fmt.Errorf("failed to save user profile: %w", err)
		}

		// Опциональные поля: отсутствующее значение удаляем, чтобы не
		// оставить хвост от предыдущей сессии
		if session.HasExpiry() {
			err = bucket.Put(keyExpiresAt, []byte(session.ExpiresAt.Format(time.RFC3339Nano)))
		} else {
			err = bucket.Delete(keyExpiresAt)
		}
		if err != nil {
			return fmt.Errorf("failed to save expiry: %w", err)
		}

		if session.CardID != "" {
			err = bucket.Put(keyCardID, []byte(session.CardID))
		} else {
			err = bucket.Delete(keyCardID)
		}
		if err != nil {
			return fmt.Errorf("failed to save card id: %w", err)
		}

		return nil
	})
}

// GetSession retrieves the stored session artifact.
// Returns storage.ErrSessionNotFound if no credential entry exists and
// storage.ErrCorruptSession if any stored entry fails to parse.
func (s *Storage) GetSession(ctx context.Context) (*models.Session, error) {
	var session *models.Session

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSession)
		if bucket == nil {
			return fmt.Errorf("session bucket not found")
		}

		// Credential — обязательная запись, без нее сессии нет
		credential := bucket.Get(keyCredential)
		if credential == nil {
			return storage.ErrSessionNotFound
		}

		userData := bucket.Get(keyUser)
		if userData == nil {
			return storage.ErrCorruptSession
		}

		var user models.UserProfile
		if err := json.Unmarshal(userData, &user); err != nil {
			return fmt.Errorf("%w: bad user profile: %w", storage.ErrCorruptSession, err)
		}

		session = &models.Session{
			Credential: string(credential),
			User:       user,
		}

		if expData := bucket.Get(keyExpiresAt); expData != nil {
			t, err := time.Parse(time.RFC3339Nano, string(expData))
			if err != nil {
				return fmt.Errorf("%w: bad expiry: %w", storage.ErrCorruptSession, err)
			}
			session.ExpiresAt = t
		}

		if cardID := bucket.Get(keyCardID); cardID != nil {
			session.CardID = string(cardID)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return session, nil
}

// DeleteSession removes the stored session artifact; idempotent.
// The device ID entry is intentionally kept.
func (s *Storage) DeleteSession(ctx context.Context) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSession)
		if bucket == nil {
			return fmt.Errorf("session bucket not found")
		}

		for _, key := range [][]byte{keyCredential, keyExpiresAt, keyUser, keyCardID} {
			if err := bucket.Delete(key); err != nil {
				return fmt.Errorf("failed to delete %s: %w", key, err)
			}
		}

		return nil
	})
}

// EnsureDeviceID returns the per-install device ID, creating it on first use
func (s *Storage) EnsureDeviceID(ctx context.Context) (string, error) {
	var deviceID string

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSession)
		if bucket == nil {
			return fmt.Errorf("session bucket not found")
		}

		if existing := bucket.Get(keyDeviceID); existing != nil {
			deviceID = string(existing)
			return nil
		}

		// Первый запуск на этом устройстве — генерируем новый ID
		deviceID = uuid.New().String()
		if err := bucket.Put(keyDeviceID, []byte(deviceID)); err != nil {
			return fmt.Errorf("failed to save device id: %w", err)
		}

		return nil
	})

	if err != nil {
		return "", err
	}

	return deviceID, nil
}
