package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/ryancham715/sav4us/internal/model"
)

type mockUserStore struct {
	mock.Mock
}

func (m *mockUserStore) Create(ctx context.Context, user model.User) (model.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *mockUserStore) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *mockUserStore) GetByLoginID(ctx context.Context, loginID string) (model.User, error) {
	args := m.Called(ctx, loginID)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *mockUserStore) GetByUsername(ctx context.Context, username string) (model.User, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(model.User), args.Error(1)
}

type mockPairRequestStore struct {
	mock.Mock
}

func (m *mockPairRequestStore) Create(ctx context.Context, req model.PairRequest) (model.PairRequest, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(model.PairRequest), args.Error(1)
}

func (m *mockPairRequestStore) GetByID(ctx context.Context, id uuid.UUID) (model.PairRequest, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.PairRequest), args.Error(1)
}

func (m *mockPairRequestStore) GetPendingBetween(ctx context.Context, fromUID, toUID uuid.UUID) (model.PairRequest, error) {
	args := m.Called(ctx, fromUID, toUID)
	return args.Get(0).(model.PairRequest), args.Error(1)
}

func (m *mockPairRequestStore) GetPendingTo(ctx context.Context, toUID uuid.UUID) ([]model.PairRequest, error) {
	args := m.Called(ctx, toUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PairRequest), args.Error(1)
}

func (m *mockPairRequestStore) GetPendingFrom(ctx context.Context, fromUID uuid.UUID) ([]model.PairRequest, error) {
	args := m.Called(ctx, fromUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PairRequest), args.Error(1)
}

func (m *mockPairRequestStore) SetStatus(ctx context.Context, id uuid.UUID, status model.PairRequestStatus, respondedAt time.Time) error {
	args := m.Called(ctx, id, status, respondedAt)
	return args.Error(0)
}

func (m *mockPairRequestStore) Accept(ctx context.Context, requestID, callerID uuid.UUID) (model.PairRequest, error) {
	args := m.Called(ctx, requestID, callerID)
	return args.Get(0).(model.PairRequest), args.Error(1)
}

type mockProjectStore struct {
	mock.Mock
}

func (m *mockProjectStore) Create(ctx context.Context, project model.Project) (model.Project, error) {
	args := m.Called(ctx, project)
	return args.Get(0).(model.Project), args.Error(1)
}

func (m *mockProjectStore) GetByMember(ctx context.Context, memberUID uuid.UUID) ([]model.Project, error) {
	args := m.Called(ctx, memberUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Project), args.Error(1)
}

type mockRefreshTokenStore struct {
	mock.Mock
}

func (m *mockRefreshTokenStore) Create(ctx context.Context, token model.RefreshToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *mockRefreshTokenStore) GetByJTI(ctx context.Context, jti string) (model.RefreshToken, error) {
	args := m.Called(ctx, jti)
	return args.Get(0).(model.RefreshToken), args.Error(1)
}

func (m *mockRefreshTokenStore) RevokeByJTI(ctx context.Context, jti string) error {
	args := m.Called(ctx, jti)
	return args.Error(0)
}

func (m *mockRefreshTokenStore) RevokeAllByUser(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type mockTokenManager struct {
	mock.Mock
}

func (m *mockTokenManager) GenerateAccessToken(userID uuid.UUID) (string, error) {
	args := m.Called(userID)
	return args.String(0), args.Error(1)
}

func (m *mockTokenManager) GenerateRefreshToken(userID uuid.UUID) (string, string, error) {
	args := m.Called(userID)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *mockTokenManager) ParseAccessToken(token string) (uuid.UUID, error) {
	args := m.Called(token)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *mockTokenManager) ParseRefreshToken(token string) (uuid.UUID, string, error) {
	args := m.Called(token)
	return args.Get(0).(uuid.UUID), args.String(1), args.Error(2)
}

func (m *mockTokenManager) RefreshTokenTTL() time.Duration {
	args := m.Called()
	return args.Get(0).(time.Duration)
}
