package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PairRequestStore defines persistence operations for pair requests.
type PairRequestStore interface {
	Create(ctx context.Context, req PairRequest) (PairRequest, error)
	GetByID(ctx context.Context, id uuid.UUID) (PairRequest, error)
	GetPendingBetween(ctx context.Context, fromUID, toUID uuid.UUID) (PairRequest, error)
	GetPendingTo(ctx context.Context, toUID uuid.UUID) ([]PairRequest, error)
	GetPendingFrom(ctx context.Context, fromUID uuid.UUID) ([]PairRequest, error)
	SetStatus(ctx context.Context, id uuid.UUID, status PairRequestStatus, respondedAt time.Time) error
	// Accept atomically pairs both users and marks the request accepted.
	// All preconditions are re-checked inside the transaction; a conflicting
	// concurrent accept aborts with no partial state applied.
	Accept(ctx context.Context, requestID, callerID uuid.UUID) (PairRequest, error)
}

// PairRequestStatus enumerates request lifecycle states.
type PairRequestStatus string

const (
	// PairRequestPending is the initial state set by the inviter.
	PairRequestPending PairRequestStatus = "pending"
	// PairRequestAccepted is set by the invitee's accept transaction.
	PairRequestAccepted PairRequestStatus = "accepted"
	// PairRequestIgnored is set by the invitee declining the invite.
	PairRequestIgnored PairRequestStatus = "ignored"
	// PairRequestCancelled is reserved for inviter withdrawal. No
	// transition produces it yet.
	PairRequestCancelled PairRequestStatus = "cancelled"
)

// PairRequest is a one-directional pairing invite. Once a request leaves
// the pending state it is never mutated again.
type PairRequest struct {
	ID          uuid.UUID         `json:"id"`
	FromUID     uuid.UUID         `json:"fromUid"`
	ToUID       uuid.UUID         `json:"toUid"`
	Status      PairRequestStatus `json:"status"`
	CreatedAt   time.Time         `json:"createdAt"`
	RespondedAt *time.Time        `json:"respondedAt,omitempty"`
}
