package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ryancham715/sav4us/internal/logger"
	"github.com/ryancham715/sav4us/internal/model"
	"github.com/ryancham715/sav4us/internal/watch"
)

// Pairing implements the invite/accept/ignore handshake between two users.
type Pairing struct {
	userStore    model.UserStore
	requestStore model.PairRequestStore
	userHub      *watch.Hub[model.UserSnapshot]
	inviteHub    *watch.Hub[[]model.PairRequest]
	logger       *logger.Logger
}

func NewPairing(
	userStore model.UserStore,
	requestStore model.PairRequestStore,
	logger *logger.Logger,
) *Pairing {
	return &Pairing{
		userStore:    userStore,
		requestStore: requestStore,
		userHub:      watch.NewHub[model.UserSnapshot](),
		inviteHub:    watch.NewHub[[]model.PairRequest](),
		logger:       logger,
	}
}

func userTopic(id uuid.UUID) string     { return "user:" + id.String() }
func incomingTopic(id uuid.UUID) string { return "invites:in:" + id.String() }
func outgoingTopic(id uuid.UUID) string { return "invites:out:" + id.String() }

// Me returns the caller's own record snapshot.
func (s *Pairing) Me(ctx context.Context, callerID uuid.UUID) (model.UserSnapshot, error) {
	user, err := s.userStore.GetByID(ctx, callerID)
	if errors.Is(err, model.ErrNotFound) {
		return model.UserSnapshot{}, model.NewErrNotAuthenticated()
	}
	if err != nil {
		return model.UserSnapshot{}, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user.Snapshot(), nil
}

// SendInvite creates a pending pair request from the caller to the user
// holding targetUsername. The existence and duplicate checks run outside
// any transaction, so two crossing invites can both pass them; the
// partial unique index on pending requests catches the exact duplicate,
// and everything else is resolved by the accept transaction.
func (s *Pairing) SendInvite(ctx context.Context, callerID uuid.UUID, targetUsername string) (model.PairRequest, error) {
	s.logger.Debug("Pairing service: sending invite",
		"caller_id", callerID,
		"target_username", targetUsername)

	target := strings.TrimSpace(targetUsername)
	if target == "" {
		return model.PairRequest{}, model.NewErrEmptyInput("partner username")
	}

	caller, err := s.userStore.GetByID(ctx, callerID)
	if errors.Is(err, model.ErrNotFound) {
		return model.PairRequest{}, model.NewErrNotAuthenticated()
	}
	if err != nil {
		return model.PairRequest{}, fmt.Errorf("failed to get caller: %w", err)
	}

	if caller.PairedWithUID != nil {
		return model.PairRequest{}, model.NewErrAlreadyPaired()
	}

	partner, err := s.userStore.GetByUsername(ctx, target)
	if errors.Is(err, model.ErrNotFound) {
		return model.PairRequest{}, model.NewErrUserNotFound(target)
	}
	if err != nil {
		return model.PairRequest{}, fmt.Errorf("failed to get user by username: %w", err)
	}

	if partner.ID == callerID {
		return model.PairRequest{}, model.NewErrSelfInvite()
	}

	if partner.PairedWithUID != nil {
		return model.PairRequest{}, model.NewErrTargetAlreadyPaired()
	}

	_, err = s.requestStore.GetPendingBetween(ctx, callerID, partner.ID)
	if err == nil {
		return model.PairRequest{}, model.NewErrDuplicateInvite()
	}
	if !errors.Is(err, model.ErrNotFound) {
		return model.PairRequest{}, fmt.Errorf("failed to check pending invite: %w", err)
	}

	req := model.PairRequest{
		ID:        uuid.New(),
		FromUID:   callerID,
		ToUID:     partner.ID,
		Status:    model.PairRequestPending,
		CreatedAt: time.Now(),
	}

	req, err = s.requestStore.Create(ctx, req)
	if errors.Is(err, model.ErrDuplicate) {
		return model.PairRequest{}, model.NewErrDuplicateInvite()
	}
	if err != nil {
		s.logger.Error("Pairing service: failed to create pair request",
			"caller_id", callerID,
			"target_id", partner.ID,
			"error", err.Error())
		return model.PairRequest{}, fmt.Errorf("failed to create pair request: %w", err)
	}

	s.logger.Info("Pairing service: invite sent",
		"request_id", req.ID,
		"from_uid", req.FromUID,
		"to_uid", req.ToUID)

	s.republishInvites(ctx, req.FromUID, req.ToUID)

	return req, nil
}

// IgnoreInvite marks a request addressed to the caller as ignored.
// Re-ignoring an already ignored request is allowed and changes nothing
// meaningful.
func (s *Pairing) IgnoreInvite(ctx context.Context, callerID, requestID uuid.UUID) error {
	req, err := s.requestStore.GetByID(ctx, requestID)
	if errors.Is(err, model.ErrNotFound) {
		return model.NewErrRequestGone()
	}
	if err != nil {
		return fmt.Errorf("failed to get pair request: %w", err)
	}

	if req.ToUID != callerID {
		return model.NewErrWrongRecipient()
	}

	if err := s.requestStore.SetStatus(ctx, requestID, model.PairRequestIgnored, time.Now()); err != nil {
		return fmt.Errorf("failed to ignore pair request: %w", err)
	}

	s.logger.Info("Pairing service: invite ignored",
		"request_id", requestID,
		"to_uid", callerID)

	s.republishInvites(ctx, req.FromUID, req.ToUID)

	return nil
}

// AcceptInvite commits the handshake atomically: both user records and
// the request change together or not at all. All preconditions are
// re-checked by the store inside its transaction.
func (s *Pairing) AcceptInvite(ctx context.Context, callerID, requestID uuid.UUID) error {
	req, err := s.requestStore.Accept(ctx, requestID, callerID)
	if err != nil {
		s.logger.Info("Pairing service: accept failed",
			"request_id", requestID,
			"caller_id", callerID,
			"error", err.Error())
		return err
	}

	s.logger.Info("Pairing service: invite accepted",
		"request_id", req.ID,
		"from_uid", req.FromUID,
		"to_uid", req.ToUID)

	s.republishInvites(ctx, req.FromUID, req.ToUID)
	s.republishUser(ctx, req.FromUID)
	s.republishUser(ctx, req.ToUID)

	return nil
}

// IncomingInvites returns the pending requests addressed to the user.
func (s *Pairing) IncomingInvites(ctx context.Context, callerID uuid.UUID) ([]model.PairRequest, error) {
	requests, err := s.requestStore.GetPendingTo(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get incoming invites: %w", err)
	}
	return requests, nil
}

// OutgoingInvite returns the caller's pending invite, or nil when none
// exists. Only one is surfaced even if older pendings linger.
func (s *Pairing) OutgoingInvite(ctx context.Context, callerID uuid.UUID) (*model.PairRequest, error) {
	requests, err := s.requestStore.GetPendingFrom(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get outgoing invites: %w", err)
	}
	if len(requests) == 0 {
		return nil, nil
	}
	return &requests[0], nil
}

// WatchUser subscribes to the caller's record. The current snapshot is
// returned alongside the live channel; cancel must be called when the
// consumer goes away.
func (s *Pairing) WatchUser(ctx context.Context, callerID uuid.UUID) (model.UserSnapshot, <-chan model.UserSnapshot, func(), error) {
	ch, cancel := s.userHub.Subscribe(userTopic(callerID))

	snap, err := s.Me(ctx, callerID)
	if err != nil {
		cancel()
		return model.UserSnapshot{}, nil, nil, err
	}

	return snap, ch, cancel, nil
}

// WatchIncoming subscribes to the caller's pending incoming invites.
func (s *Pairing) WatchIncoming(ctx context.Context, callerID uuid.UUID) ([]model.PairRequest, <-chan []model.PairRequest, func(), error) {
	ch, cancel := s.inviteHub.Subscribe(incomingTopic(callerID))

	requests, err := s.IncomingInvites(ctx, callerID)
	if err != nil {
		cancel()
		return nil, nil, nil, err
	}

	return requests, ch, cancel, nil
}

// WatchOutgoing subscribes to the caller's pending outgoing invites.
func (s *Pairing) WatchOutgoing(ctx context.Context, callerID uuid.UUID) ([]model.PairRequest, <-chan []model.PairRequest, func(), error) {
	ch, cancel := s.inviteHub.Subscribe(outgoingTopic(callerID))

	requests, err := s.requestStore.GetPendingFrom(ctx, callerID)
	if err != nil {
		cancel()
		return nil, nil, nil, fmt.Errorf("failed to get outgoing invites: %w", err)
	}

	return requests, ch, cancel, nil
}

// republishInvites pushes fresh invite sets to both handshake sides.
// Watch consumers tolerate missing updates, so failures only log.
func (s *Pairing) republishInvites(ctx context.Context, fromUID, toUID uuid.UUID) {
	if incoming, err := s.requestStore.GetPendingTo(ctx, toUID); err == nil {
		s.inviteHub.Publish(incomingTopic(toUID), incoming)
	} else {
		s.logger.Error("Pairing service: failed to republish incoming invites",
			"to_uid", toUID,
			"error", err.Error())
	}

	if outgoing, err := s.requestStore.GetPendingFrom(ctx, fromUID); err == nil {
		s.inviteHub.Publish(outgoingTopic(fromUID), outgoing)
	} else {
		s.logger.Error("Pairing service: failed to republish outgoing invites",
			"from_uid", fromUID,
			"error", err.Error())
	}
}

func (s *Pairing) republishUser(ctx context.Context, userID uuid.UUID) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		s.logger.Error("Pairing service: failed to republish user snapshot",
			"user_id", userID,
			"error", err.Error())
		return
	}
	s.userHub.Publish(userTopic(userID), user.Snapshot())
}
