package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ryancham715/sav4us/internal/logger"
	"github.com/ryancham715/sav4us/internal/model"
	"github.com/ryancham715/sav4us/internal/username"
)

// minSecretLen is the minimum accepted secret length at registration.
const minSecretLen = 8

type Auth struct {
	userStore    model.UserStore
	tokenService *TokenService
	logger       *logger.Logger
}

func NewAuth(
	userStore model.UserStore,
	refreshTokenStore model.RefreshTokenStore,
	logger *logger.Logger,
	tokenManager model.TokenManager,
) *Auth {
	return &Auth{
		userStore:    userStore,
		tokenService: NewTokenService(tokenManager, refreshTokenStore, logger),
		logger:       logger,
	}
}

// TokenService exposes the token operations wired into this Auth instance.
func (a *Auth) TokenService() *TokenService {
	return a.tokenService
}

// Register creates a user keyed by the internal login identifier derived
// from the public username, and issues a session.
func (a *Auth) Register(ctx context.Context, rawUsername, secret string) (model.Session, error) {
	a.logger.Debug("Auth service: starting user registration",
		"username", rawUsername)

	loginID, err := username.ToLoginID(rawUsername)
	if err != nil {
		return model.Session{}, err
	}

	if len(secret) < minSecretLen {
		return model.Session{}, model.NewErrWeakSecret()
	}

	normalized := username.Normalize(rawUsername)

	existing, err := a.userStore.GetByLoginID(ctx, loginID)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		a.logger.Error("Auth service: failed to get user by login id",
			"username", normalized,
			"error", err.Error())
		return model.Session{}, fmt.Errorf("failed to get user by login id: %w", err)
	}

	if existing.ID != uuid.Nil {
		a.logger.Info("Auth service: username already taken",
			"username", normalized)
		return model.Session{}, model.NewErrUsernameTaken(normalized)
	}

	secretHash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to hash secret: %w", err)
	}

	now := time.Now()
	user := model.User{
		ID:         uuid.New(),
		Username:   normalized,
		LoginID:    loginID,
		SecretHash: secretHash,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	user, err = a.userStore.Create(ctx, user)
	if errors.Is(err, model.ErrDuplicate) {
		// Lost the race against a concurrent registration.
		return model.Session{}, model.NewErrUsernameTaken(normalized)
	}
	if err != nil {
		a.logger.Error("Auth service: failed to create user",
			"username", normalized,
			"error", err.Error())
		return model.Session{}, fmt.Errorf("failed to create user: %w", err)
	}

	access, refresh, err := a.tokenService.Issue(ctx, user.ID)
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to issue tokens: %w", err)
	}

	a.logger.Info("Auth service: user registered",
		"username", normalized,
		"user_id", user.ID)

	return model.Session{
		User:         user.Snapshot(),
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

// Login verifies the secret for the login identifier derived from the
// username and issues a session. An unknown username and a wrong secret
// are indistinguishable to the caller.
func (a *Auth) Login(ctx context.Context, rawUsername, secret string) (model.Session, error) {
	a.logger.Debug("Auth service: starting user login",
		"username", rawUsername)

	loginID, err := username.ToLoginID(rawUsername)
	if err != nil {
		return model.Session{}, model.NewErrInvalidCredentials()
	}

	user, err := a.userStore.GetByLoginID(ctx, loginID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Session{}, model.NewErrInvalidCredentials()
	}
	if err != nil {
		a.logger.Error("Auth service: failed to get user by login id",
			"username", username.Normalize(rawUsername),
			"error", err.Error())
		return model.Session{}, fmt.Errorf("failed to get user by login id: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(user.SecretHash, []byte(secret)); err != nil {
		a.logger.Info("Auth service: secret mismatch",
			"user_id", user.ID)
		return model.Session{}, model.NewErrInvalidCredentials()
	}

	access, refresh, err := a.tokenService.Issue(ctx, user.ID)
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to issue tokens: %w", err)
	}

	a.logger.Info("Auth service: user logged in",
		"user_id", user.ID)

	return model.Session{
		User:         user.Snapshot(),
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

// Logout revokes the presented refresh token. The access token simply
// ages out.
func (a *Auth) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return model.NewErrEmptyInput("refresh token")
	}
	return a.tokenService.RevokeByToken(ctx, refreshToken)
}
