package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/ryancham715/sav4us/internal/model"
)

// testUserID is injected into request locals in place of the
// authenticate middleware.
var testUserID = uuid.New()

func newTestApp(register func(app *fiber.App), authed bool) *fiber.App {
	app := fiber.New()
	if authed {
		app.Use(func(c *fiber.Ctx) error {
			c.Locals("user_id", testUserID)
			return c.Next()
		})
	}
	register(app)
	return app
}

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Register(ctx context.Context, username, secret string) (model.Session, error) {
	args := m.Called(ctx, username, secret)
	return args.Get(0).(model.Session), args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, username, secret string) (model.Session, error) {
	args := m.Called(ctx, username, secret)
	return args.Get(0).(model.Session), args.Error(1)
}

func (m *mockAuthService) Logout(ctx context.Context, refreshToken string) error {
	args := m.Called(ctx, refreshToken)
	return args.Error(0)
}

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	args := m.Called(ctx, refreshToken)
	return args.String(0), args.String(1), args.Error(2)
}

type mockPairingService struct {
	mock.Mock
}

func (m *mockPairingService) Me(ctx context.Context, callerID uuid.UUID) (model.UserSnapshot, error) {
	args := m.Called(ctx, callerID)
	return args.Get(0).(model.UserSnapshot), args.Error(1)
}

func (m *mockPairingService) SendInvite(ctx context.Context, callerID uuid.UUID, targetUsername string) (model.PairRequest, error) {
	args := m.Called(ctx, callerID, targetUsername)
	return args.Get(0).(model.PairRequest), args.Error(1)
}

func (m *mockPairingService) IgnoreInvite(ctx context.Context, callerID, requestID uuid.UUID) error {
	args := m.Called(ctx, callerID, requestID)
	return args.Error(0)
}

func (m *mockPairingService) AcceptInvite(ctx context.Context, callerID, requestID uuid.UUID) error {
	args := m.Called(ctx, callerID, requestID)
	return args.Error(0)
}

func (m *mockPairingService) IncomingInvites(ctx context.Context, callerID uuid.UUID) ([]model.PairRequest, error) {
	args := m.Called(ctx, callerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PairRequest), args.Error(1)
}

func (m *mockPairingService) OutgoingInvite(ctx context.Context, callerID uuid.UUID) (*model.PairRequest, error) {
	args := m.Called(ctx, callerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PairRequest), args.Error(1)
}

func (m *mockPairingService) WatchUser(ctx context.Context, callerID uuid.UUID) (model.UserSnapshot, <-chan model.UserSnapshot, func(), error) {
	args := m.Called(ctx, callerID)
	return args.Get(0).(model.UserSnapshot), nil, func() {}, args.Error(3)
}

func (m *mockPairingService) WatchIncoming(ctx context.Context, callerID uuid.UUID) ([]model.PairRequest, <-chan []model.PairRequest, func(), error) {
	args := m.Called(ctx, callerID)
	if args.Get(0) == nil {
		return nil, nil, func() {}, args.Error(3)
	}
	return args.Get(0).([]model.PairRequest), nil, func() {}, args.Error(3)
}

func (m *mockPairingService) WatchOutgoing(ctx context.Context, callerID uuid.UUID) ([]model.PairRequest, <-chan []model.PairRequest, func(), error) {
	args := m.Called(ctx, callerID)
	if args.Get(0) == nil {
		return nil, nil, func() {}, args.Error(3)
	}
	return args.Get(0).([]model.PairRequest), nil, func() {}, args.Error(3)
}

type mockProjectService struct {
	mock.Mock
}

func (m *mockProjectService) CreateProject(ctx context.Context, callerID uuid.UUID, params model.CreateProjectParams) (model.Project, error) {
	args := m.Called(ctx, callerID, params)
	return args.Get(0).(model.Project), args.Error(1)
}

func (m *mockProjectService) ListProjects(ctx context.Context, callerID uuid.UUID) ([]model.Project, error) {
	args := m.Called(ctx, callerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Project), args.Error(1)
}

func (m *mockProjectService) WatchProjects(ctx context.Context, callerID uuid.UUID) ([]model.Project, <-chan []model.Project, func(), error) {
	args := m.Called(ctx, callerID)
	if args.Get(0) == nil {
		return nil, nil, func() {}, args.Error(3)
	}
	return args.Get(0).([]model.Project), nil, func() {}, args.Error(3)
}
