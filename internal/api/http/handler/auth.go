package handler

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/ryancham715/sav4us/internal/logger"
	"github.com/ryancham715/sav4us/internal/model"
)

// AuthService defines user registration and login operations.
type AuthService interface {
	Register(ctx context.Context, username, secret string) (model.Session, error)
	Login(ctx context.Context, username, secret string) (model.Session, error)
	Logout(ctx context.Context, refreshToken string) error
}

// TokenService defines token refresh operations.
type TokenService interface {
	Refresh(ctx context.Context, refreshToken string) (accessToken string, newRefreshToken string, err error)
}

// Auth handles HTTP endpoints for authentication.
type Auth struct {
	authService  AuthService
	tokenService TokenService
	logger       *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, tokenService TokenService, logger *logger.Logger) *Auth {
	return &Auth{
		authService:  authService,
		tokenService: tokenService,
		logger:       logger,
	}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Secret   string `json:"secret"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Register creates a new user and returns a session.
func (h *Auth) Register(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	session, err := h.authService.Register(c.Context(), req.Username, req.Secret)
	if err != nil {
		h.logger.Error("Auth handler: registration failed",
			"username", req.Username,
			"error", err.Error())
		return respondError(c, err)
	}

	h.logger.Info("Auth handler: registration completed",
		"user_id", session.User.ID)

	return c.Status(http.StatusCreated).JSON(session)
}

// Login verifies credentials and returns a session.
func (h *Auth) Login(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	session, err := h.authService.Login(c.Context(), req.Username, req.Secret)
	if err != nil {
		h.logger.Error("Auth handler: login failed",
			"username", req.Username,
			"error", err.Error())
		return respondError(c, err)
	}

	h.logger.Info("Auth handler: login completed",
		"user_id", session.User.ID)

	return c.JSON(session)
}

// Refresh exchanges a refresh token for a new token pair.
func (h *Auth) Refresh(c *fiber.Ctx) error {
	var req refreshRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if req.RefreshToken == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "refresh token is required"})
	}

	access, refresh, err := h.tokenService.Refresh(c.Context(), req.RefreshToken)
	if err != nil {
		h.logger.Error("Auth handler: token refresh failed",
			"error", err.Error())
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"accessToken":  access,
		"refreshToken": refresh,
	})
}

// Logout revokes the presented refresh token.
func (h *Auth) Logout(c *fiber.Ctx) error {
	var req refreshRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if err := h.authService.Logout(c.Context(), req.RefreshToken); err != nil {
		h.logger.Error("Auth handler: logout failed",
			"error", err.Error())
		return respondError(c, err)
	}

	return c.SendStatus(http.StatusNoContent)
}
