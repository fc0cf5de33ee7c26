package handler

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/ryancham715/sav4us/internal/api/http/middleware"
	"github.com/ryancham715/sav4us/internal/logger"
	"github.com/ryancham715/sav4us/internal/model"
)

// PairingService defines the pairing handshake operations.
type PairingService interface {
	Me(ctx context.Context, callerID uuid.UUID) (model.UserSnapshot, error)
	SendInvite(ctx context.Context, callerID uuid.UUID, targetUsername string) (model.PairRequest, error)
	IgnoreInvite(ctx context.Context, callerID, requestID uuid.UUID) error
	AcceptInvite(ctx context.Context, callerID, requestID uuid.UUID) error
	IncomingInvites(ctx context.Context, callerID uuid.UUID) ([]model.PairRequest, error)
	OutgoingInvite(ctx context.Context, callerID uuid.UUID) (*model.PairRequest, error)
	WatchUser(ctx context.Context, callerID uuid.UUID) (model.UserSnapshot, <-chan model.UserSnapshot, func(), error)
	WatchIncoming(ctx context.Context, callerID uuid.UUID) ([]model.PairRequest, <-chan []model.PairRequest, func(), error)
	WatchOutgoing(ctx context.Context, callerID uuid.UUID) ([]model.PairRequest, <-chan []model.PairRequest, func(), error)
}

// Pairing handles HTTP endpoints for the pairing handshake.
type Pairing struct {
	service PairingService
	logger  *logger.Logger
}

// NewPairing creates a new Pairing handler.
func NewPairing(service PairingService, logger *logger.Logger) *Pairing {
	return &Pairing{
		service: service,
		logger:  logger,
	}
}

type sendInviteRequest struct {
	Username string `json:"username"`
}

// Me returns the caller's own record snapshot.
func (h *Pairing) Me(c *fiber.Ctx) error {
	callerID, ok := middleware.UserID(c)
	if !ok {
		return respondError(c, model.NewErrNotAuthenticated())
	}

	snap, err := h.service.Me(c.Context(), callerID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(snap)
}

// WatchMe streams the caller's record snapshots.
func (h *Pairing) WatchMe(c *fiber.Ctx) error {
	callerID, ok := middleware.UserID(c)
	if !ok {
		return respondError(c, model.NewErrNotAuthenticated())
	}

	snap, updates, cancel, err := h.service.WatchUser(c.Context(), callerID)
	if err != nil {
		return respondError(c, err)
	}

	return streamSnapshots(c, snap, updates, cancel)
}

// SendInvite sends a pairing invite to the named user.
func (h *Pairing) SendInvite(c *fiber.Ctx) error {
	callerID, ok := middleware.UserID(c)
	if !ok {
		return respondError(c, model.NewErrNotAuthenticated())
	}

	var req sendInviteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	invite, err := h.service.SendInvite(c.Context(), callerID, req.Username)
	if err != nil {
		h.logger.Error("Pairing handler: send invite failed",
			"caller_id", callerID,
			"error", err.Error())
		return respondError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(invite)
}

// Incoming returns the caller's pending incoming invites.
func (h *Pairing) Incoming(c *fiber.Ctx) error {
	callerID, ok := middleware.UserID(c)
	if !ok {
		return respondError(c, model.NewErrNotAuthenticated())
	}

	invites, err := h.service.IncomingInvites(c.Context(), callerID)
	if err != nil {
		return respondError(c, err)
	}

	if invites == nil {
		invites = []model.PairRequest{}
	}
	return c.JSON(invites)
}

// WatchIncoming streams the caller's pending incoming invite set.
func (h *Pairing) WatchIncoming(c *fiber.Ctx) error {
	callerID, ok := middleware.UserID(c)
	if !ok {
		return respondError(c, model.NewErrNotAuthenticated())
	}

	invites, updates, cancel, err := h.service.WatchIncoming(c.Context(), callerID)
	if err != nil {
		return respondError(c, err)
	}

	if invites == nil {
		invites = []model.PairRequest{}
	}
	return streamSnapshots(c, invites, updates, cancel)
}

// WatchOutgoing streams the caller's pending outgoing invite set.
func (h *Pairing) WatchOutgoing(c *fiber.Ctx) error {
	callerID, ok := middleware.UserID(c)
	if !ok {
		return respondError(c, model.NewErrNotAuthenticated())
	}

	invites, updates, cancel, err := h.service.WatchOutgoing(c.Context(), callerID)
	if err != nil {
		return respondError(c, err)
	}

	if invites == nil {
		invites = []model.PairRequest{}
	}
	return streamSnapshots(c, invites, updates, cancel)
}

// Outgoing returns the caller's pending outgoing invite, if any.
func (h *Pairing) Outgoing(c *fiber.Ctx) error {
	callerID, ok := middleware.UserID(c)
	if !ok {
		return respondError(c, model.NewErrNotAuthenticated())
	}

	invite, err := h.service.OutgoingInvite(c.Context(), callerID)
	if err != nil {
		return respondError(c, err)
	}

	if invite == nil {
		return c.JSON(fiber.Map{"invite": nil})
	}
	return c.JSON(fiber.Map{"invite": invite})
}

// Accept accepts an incoming invite and completes the pairing.
func (h *Pairing) Accept(c *fiber.Ctx) error {
	callerID, ok := middleware.UserID(c)
	if !ok {
		return respondError(c, model.NewErrNotAuthenticated())
	}

	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid invite id"})
	}

	if err := h.service.AcceptInvite(c.Context(), callerID, requestID); err != nil {
		h.logger.Error("Pairing handler: accept invite failed",
			"caller_id", callerID,
			"request_id", requestID,
			"error", err.Error())
		return respondError(c, err)
	}

	return c.SendStatus(http.StatusNoContent)
}

// Ignore marks an incoming invite as ignored.
func (h *Pairing) Ignore(c *fiber.Ctx) error {
	callerID, ok := middleware.UserID(c)
	if !ok {
		return respondError(c, model.NewErrNotAuthenticated())
	}

	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid invite id"})
	}

	if err := h.service.IgnoreInvite(c.Context(), callerID, requestID); err != nil {
		h.logger.Error("Pairing handler: ignore invite failed",
			"caller_id", callerID,
			"request_id", requestID,
			"error", err.Error())
		return respondError(c, err)
	}

	return c.SendStatus(http.StatusNoContent)
}
