package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/ryancham715/sav4us/internal/logger"
)

// userIDKey is the request-locals key carrying the authenticated user ID.
const userIDKey = "user_id"

// TokenService resolves user ID from bearer tokens.
type TokenService interface {
	GetUserID(ctx context.Context, token string) (uuid.UUID, error)
}

// Authenticate validates bearer tokens and injects the user ID into the
// request locals. Requests under the public auth prefix pass through.
type Authenticate struct {
	tokenService TokenService
	logger       *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(tokenService TokenService, logger *logger.Logger) *Authenticate {
	return &Authenticate{tokenService: tokenService, logger: logger}
}

func authSkip(path string) bool {
	return strings.HasPrefix(path, "/v1/auth/")
}

// Handle parses the Authorization header, validates the token and stores
// the user ID for downstream handlers.
func (m *Authenticate) Handle(c *fiber.Ctx) error {
	if authSkip(c.Path()) {
		return c.Next()
	}

	tokenString := strings.TrimPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
	if tokenString == "" {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "missing authorization token"})
	}

	userID, err := m.tokenService.GetUserID(c.Context(), tokenString)
	if err != nil || userID == uuid.Nil {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "invalid authorization token"})
	}

	c.Locals(userIDKey, userID)

	return c.Next()
}

// UserID retrieves the authenticated user ID stored by Handle.
func UserID(c *fiber.Ctx) (uuid.UUID, bool) {
	userID, ok := c.Locals(userIDKey).(uuid.UUID)
	return userID, ok
}
