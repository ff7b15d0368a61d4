package storage

import (
	"context"

	"github.com/iudanet/webcards/internal/models"
)

// SessionStorage defines interface for the durable session store on client.
// This is the lowest storage layer - it persists the artifact as-is and
// performs no validity checks; expiry handling lives in session.Service.
type SessionStorage interface {
	// SaveSession stores the session artifact, replacing any previous one
	SaveSession(ctx context.Context, session *models.Session) error

	// GetSession retrieves the stored session artifact.
	// Returns ErrSessionNotFound if no artifact exists and ErrCorruptSession
	// if stored entries fail to parse.
	GetSession(ctx context.Context) (*models.Session, error)

	// DeleteSession removes the stored session artifact; idempotent
	DeleteSession(ctx context.Context) error

	// EnsureDeviceID returns the per-install device ID, creating it on
	// first use. The device ID survives DeleteSession.
	EnsureDeviceID(ctx context.Context) (string, error)
}
