package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	Create(ctx context.Context, user User) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByLoginID(ctx context.Context, loginID string) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
}

// User represents a registered user. PairedWithUID is nil until the
// pairing handshake completes; it is only ever set by the accept
// transaction, which writes both sides symmetrically.
type User struct {
	ID            uuid.UUID
	Username      string
	LoginID       string
	SecretHash    []byte
	PairedWithUID *uuid.UUID
	PairedAt      *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// UserSnapshot is the externally visible view of a user record,
// delivered to watchers on every change.
type UserSnapshot struct {
	ID            uuid.UUID  `json:"id"`
	Username      string     `json:"username"`
	PairedWithUID *uuid.UUID `json:"pairedWithUid"`
	PairedAt      *time.Time `json:"pairedAt,omitempty"`
}

// Snapshot strips credential material from the user.
func (u User) Snapshot() UserSnapshot {
	return UserSnapshot{
		ID:            u.ID,
		Username:      u.Username,
		PairedWithUID: u.PairedWithUID,
		PairedAt:      u.PairedAt,
	}
}
