package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iudanet/webcards/internal/client/storage"
	"github.com/iudanet/webcards/internal/models"
)

// Service implements the validity layer between business logic and the
// durable session store. It normalizes the artifact on save (deriving a
// local expiry from the credential when possible) and treats expired or
// corrupt stored data as absent, clearing it defensively.
type Service struct {
	storage storage.SessionStorage
	now     func() time.Time
}

// NewService creates a new session service over the given storage
func NewService(st storage.SessionStorage) *Service {
	return &Service{
		storage: st,
		now:     time.Now,
	}
}

// Save нормализует и сохраняет сессионный артефакт.
// Если бэкенд не сообщил срок действия, но credential — это JWT с exp claim,
// срок берется оттуда; иначе сессия остается без локального срока и ее
// валидность определяется только отзывом на стороне сервера.
func (s *Service) Save(ctx context.Context, session *models.Session) error {
	if session == nil {
		return fmt.Errorf("session is nil")
	}
	if session.Credential == "" {
		return fmt.Errorf("session credential is empty")
	}

	normalized := *session
	if !normalized.HasExpiry() {
		if exp, ok := credentialExpiry(normalized.Credential); ok {
			normalized.ExpiresAt = exp
		}
	}

	return s.storage.SaveSession(ctx, &normalized)
}

// Load возвращает сохраненный артефакт.
// Возвращает storage.ErrSessionNotFound если артефакта нет; поврежденные
// данные считаются отсутствующими и превентивно удаляются.
func (s *Service) Load(ctx context.Context) (*models.Session, error) {
	session, err := s.storage.GetSession(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrCorruptSession) {
			slog.Warn("clearing corrupt session data", "error", err)
			if clearErr := s.Clear(ctx); clearErr != nil {
				slog.Error("failed to clear corrupt session", "error", clearErr)
			}
			return nil, storage.ErrSessionNotFound
		}
		return nil, err
	}
	return session, nil
}

// IsValid reports whether a usable session exists: the artifact loads and
// either carries no expiry or expires in the future. An expired artifact is
// cleared so that a subsequent Load reports it absent.
func (s *Service) IsValid(ctx context.Context) (bool, error) {
	session, err := s.Load(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return false, nil
		}
		return false, err
	}

	if session.Expired(s.now()) {
		slog.Debug("session expired, clearing store")
		if err := s.Clear(ctx); err != nil {
			return false, fmt.Errorf("failed to clear expired session: %w", err)
		}
		return false, nil
	}

	return true, nil
}

// Clear removes the stored session artifact; idempotent
func (s *Service) Clear(ctx context.Context) error {
	return s.storage.DeleteSession(ctx)
}

// Credential returns the current session credential, or
// storage.ErrSessionNotFound when no valid session exists
func (s *Service) Credential(ctx context.Context) (string, error) {
	session, err := s.validSession(ctx)
	if err != nil {
		return "", err
	}
	return session.Credential, nil
}

// CurrentUser returns the user profile of the current valid session
func (s *Service) CurrentUser(ctx context.Context) (*models.UserProfile, error) {
	session, err := s.validSession(ctx)
	if err != nil {
		return nil, err
	}
	user := session.User
	return &user, nil
}

// CardID returns the card identifier of the current valid session
func (s *Service) CardID(ctx context.Context) (string, error) {
	session, err := s.validSession(ctx)
	if err != nil {
		return "", err
	}
	return session.CardID, nil
}

// DeviceID returns the per-install device ID, creating it on first use
func (s *Service) DeviceID(ctx context.Context) (string, error) {
	return s.storage.EnsureDeviceID(ctx)
}

// validSession загружает артефакт и проверяет срок действия;
// просроченный артефакт удаляется и считается отсутствующим
func (s *Service) validSession(ctx context.Context) (*models.Session, error) {
	session, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	if session.Expired(s.now()) {
		if err := s.Clear(ctx); err != nil {
			return nil, fmt.Errorf("failed to clear expired session: %w", err)
		}
		return nil, storage.ErrSessionNotFound
	}
	return session, nil
}

// credentialExpiry извлекает exp claim из credential, если тот является JWT.
// Подпись не проверяется: токен принадлежит бэкенду, здесь он используется
// только как подсказка для локального срока действия.
func credentialExpiry(credential string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(credential, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
