package models

import (
	"time"

	"github.com/iudanet/webcards/pkg/api"
)

// Session представляет сессионный артефакт — долговременное подтверждение
// аутентификации на устройстве.
//
// ExpiresAt опционален: нулевое время означает, что срок действия локально
// не проверяется и сессия валидна до отзыва на стороне сервера.
type Session struct {
	Credential string      `json:"credential"` // opaque bearer token сессии
	User       UserProfile `json:"user"`
	ExpiresAt  time.Time   `json:"expires_at,omitempty"`
	CardID     string      `json:"card_id,omitempty"`
}

// HasExpiry reports whether the session carries a local expiration time.
func (s *Session) HasExpiry() bool {
	return !s.ExpiresAt.IsZero()
}

// Expired reports whether the session is past its expiration at the given
// moment. Sessions without an expiry never expire locally.
func (s *Session) Expired(now time.Time) bool {
	if !s.HasExpiry() {
		return false
	}
	return !s.ExpiresAt.After(now)
}

// SessionFromAuthResponse строит сессию из современного ответа бэкенда.
// Срок действия бэкенд в этом формате не сообщает.
func SessionFromAuthResponse(resp *api.AuthResponse, cardID string) *Session {
	return &Session{
		Credential: resp.Data.Token,
		User:       UserProfileFromAPI(resp.Data.User),
		CardID:     cardID,
	}
}

// SessionFromLegacyResponse строит сессию из старого (плоского) формата ответа.
// Невалидный expiresAt игнорируется: сессия остается без локального срока.
func SessionFromLegacyResponse(resp *api.LegacyAuthResponse) *Session {
	s := &Session{
		Credential: resp.SessionToken,
		User:       UserProfileFromAPI(resp.User),
		CardID:     resp.CardID,
	}
	if t, err := time.Parse(time.RFC3339, resp.ExpiresAt); err == nil {
		s.ExpiresAt = t
	}
	return s
}
