package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ryancham715/sav4us/internal/testutil"
)

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) GetUserID(ctx context.Context, token string) (uuid.UUID, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func newAuthenticatedApp(tokenService *mockTokenService) *fiber.App {
	app := fiber.New()
	app.Use(NewAuthenticate(tokenService, testutil.MakeNoopLogger()).Handle)
	app.Get("/v1/me", func(c *fiber.Ctx) error {
		userID, ok := UserID(c)
		if !ok {
			return c.SendStatus(http.StatusInternalServerError)
		}
		return c.JSON(fiber.Map{"id": userID})
	})
	app.Post("/v1/auth/login", func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})
	return app
}

func TestAuthenticate_ValidToken(t *testing.T) {
	userID := uuid.New()

	tokenService := new(mockTokenService)
	tokenService.On("GetUserID", mock.Anything, "good-token").Return(userID, nil)

	app := newAuthenticatedApp(tokenService)

	req := httptest.NewRequest("GET", "/v1/me", nil)
	req.Header.Set("Authorization", "Bearer good-token")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthenticate_MissingToken(t *testing.T) {
	app := newAuthenticatedApp(new(mockTokenService))

	resp, err := app.Test(httptest.NewRequest("GET", "/v1/me", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	tokenService := new(mockTokenService)
	tokenService.On("GetUserID", mock.Anything, "bad-token").
		Return(uuid.Nil, errors.New("failed to parse token"))

	app := newAuthenticatedApp(tokenService)

	req := httptest.NewRequest("GET", "/v1/me", nil)
	req.Header.Set("Authorization", "Bearer bad-token")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthenticate_SkipsPublicAuthRoutes(t *testing.T) {
	// No token service expectations: the middleware must not consult it.
	app := newAuthenticatedApp(new(mockTokenService))

	resp, err := app.Test(httptest.NewRequest("POST", "/v1/auth/login", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUserID_MissingLocal(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		_, ok := UserID(c)
		assert.False(t, ok)
		return c.SendStatus(http.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	resp.Body.Close()
}
