package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ryancham715/sav4us/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

const userColumns = `id, username, login_id, secret_hash, paired_with_uid, paired_at, created_at, updated_at`

type UserRepository struct {
	db *Connection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	query := `INSERT INTO users (id, username, login_id, secret_hash, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING ` + userColumns

	var savedUser model.User
	err := r.db.QueryRow(ctx, query,
		user.ID, user.Username, user.LoginID, user.SecretHash,
		user.CreatedAt, user.UpdatedAt,
	).Scan(
		&savedUser.ID, &savedUser.Username, &savedUser.LoginID, &savedUser.SecretHash,
		&savedUser.PairedWithUID, &savedUser.PairedAt, &savedUser.CreatedAt, &savedUser.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.User{}, model.ErrDuplicate
		}
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return savedUser, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	return r.getBy(ctx, "id = $1", id)
}

func (r *UserRepository) GetByLoginID(ctx context.Context, loginID string) (model.User, error) {
	return r.getBy(ctx, "login_id = $1", loginID)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (model.User, error) {
	return r.getBy(ctx, "username = $1", username)
}

func (r *UserRepository) getBy(ctx context.Context, predicate string, arg any) (model.User, error) {
	var user model.User
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + predicate

	err := r.db.QueryRow(ctx, query, arg).Scan(
		&user.ID, &user.Username, &user.LoginID, &user.SecretHash,
		&user.PairedWithUID, &user.PairedAt, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
