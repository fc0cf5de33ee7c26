package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ryancham715/sav4us/internal/model"
)

var _ model.PairRequestStore = (*PairRequestRepository)(nil)

const pairRequestColumns = `id, from_uid, to_uid, status, created_at, responded_at`

// acceptAttempts bounds retries of the accept transaction on
// serialization conflicts before surfacing a single conflict error.
const acceptAttempts = 3

type PairRequestRepository struct {
	db *Connection
}

func NewPairRequestRepository(db *Connection) *PairRequestRepository {
	return &PairRequestRepository{
		db: db,
	}
}

func (r *PairRequestRepository) Create(ctx context.Context, req model.PairRequest) (model.PairRequest, error) {
	query := `INSERT INTO pair_requests (id, from_uid, to_uid, status, created_at)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING ` + pairRequestColumns

	var saved model.PairRequest
	err := r.db.QueryRow(ctx, query,
		req.ID, req.FromUID, req.ToUID, string(req.Status), req.CreatedAt,
	).Scan(
		&saved.ID, &saved.FromUID, &saved.ToUID, &saved.Status, &saved.CreatedAt, &saved.RespondedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.PairRequest{}, model.ErrDuplicate
		}
		return model.PairRequest{}, fmt.Errorf("failed to create pair request: %w", err)
	}

	return saved, nil
}

func (r *PairRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (model.PairRequest, error) {
	query := `SELECT ` + pairRequestColumns + ` FROM pair_requests WHERE id = $1`

	var req model.PairRequest
	err := r.db.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.FromUID, &req.ToUID, &req.Status, &req.CreatedAt, &req.RespondedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.PairRequest{}, model.ErrNotFound
		}
		return model.PairRequest{}, fmt.Errorf("failed to get pair request by id: %w", err)
	}

	return req, nil
}

func (r *PairRequestRepository) GetPendingBetween(ctx context.Context, fromUID, toUID uuid.UUID) (model.PairRequest, error) {
	query := `SELECT ` + pairRequestColumns + ` FROM pair_requests
			  WHERE from_uid = $1 AND to_uid = $2 AND status = 'pending'
			  LIMIT 1`

	var req model.PairRequest
	err := r.db.QueryRow(ctx, query, fromUID, toUID).Scan(
		&req.ID, &req.FromUID, &req.ToUID, &req.Status, &req.CreatedAt, &req.RespondedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.PairRequest{}, model.ErrNotFound
		}
		return model.PairRequest{}, fmt.Errorf("failed to get pending pair request: %w", err)
	}

	return req, nil
}

func (r *PairRequestRepository) GetPendingTo(ctx context.Context, toUID uuid.UUID) ([]model.PairRequest, error) {
	return r.getPendingBy(ctx, "to_uid = $1", toUID)
}

func (r *PairRequestRepository) GetPendingFrom(ctx context.Context, fromUID uuid.UUID) ([]model.PairRequest, error) {
	return r.getPendingBy(ctx, "from_uid = $1", fromUID)
}

func (r *PairRequestRepository) getPendingBy(ctx context.Context, predicate string, arg any) ([]model.PairRequest, error) {
	query := `SELECT ` + pairRequestColumns + ` FROM pair_requests
			  WHERE ` + predicate + ` AND status = 'pending'
			  ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending pair requests: %w", err)
	}
	defer rows.Close()

	var requests []model.PairRequest
	for rows.Next() {
		var req model.PairRequest
		err := rows.Scan(
			&req.ID, &req.FromUID, &req.ToUID, &req.Status, &req.CreatedAt, &req.RespondedAt,
		)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}

func (r *PairRequestRepository) SetStatus(ctx context.Context, id uuid.UUID, status model.PairRequestStatus, respondedAt time.Time) error {
	const query = `UPDATE pair_requests SET status = $2, responded_at = $3 WHERE id = $1`

	cmd, err := r.db.Exec(ctx, query, id, string(status), respondedAt)
	if err != nil {
		return fmt.Errorf("failed to set pair request status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

// Accept runs the pairing handshake commit: one serializable transaction
// over the request row and both user rows. Every precondition is
// re-checked inside the transaction; concurrent accepts conflict at
// commit and are retried up to acceptAttempts before giving up.
func (r *PairRequestRepository) Accept(ctx context.Context, requestID, callerID uuid.UUID) (model.PairRequest, error) {
	for attempt := 0; attempt < acceptAttempts; attempt++ {
		req, err := r.tryAccept(ctx, requestID, callerID)
		if err == nil {
			return req, nil
		}
		if isSerializationFailure(err) {
			continue
		}
		return model.PairRequest{}, err
	}

	return model.PairRequest{}, model.NewErrAcceptConflict()
}

func (r *PairRequestRepository) tryAccept(ctx context.Context, requestID, callerID uuid.UUID) (model.PairRequest, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return model.PairRequest{}, fmt.Errorf("failed to begin accept transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var req model.PairRequest
	err = tx.QueryRow(ctx, `SELECT `+pairRequestColumns+` FROM pair_requests WHERE id = $1`, requestID).Scan(
		&req.ID, &req.FromUID, &req.ToUID, &req.Status, &req.CreatedAt, &req.RespondedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.PairRequest{}, model.NewErrRequestGone()
	}
	if err != nil {
		return model.PairRequest{}, fmt.Errorf("failed to read pair request: %w", err)
	}

	if req.Status != model.PairRequestPending {
		return model.PairRequest{}, model.NewErrRequestNotPending()
	}
	if req.ToUID != callerID {
		return model.PairRequest{}, model.NewErrWrongRecipient()
	}

	callerPaired, err := pairedWithinTx(ctx, tx, callerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.PairRequest{}, model.NewErrNotAuthenticated()
	}
	if err != nil {
		return model.PairRequest{}, fmt.Errorf("failed to read caller: %w", err)
	}
	if callerPaired {
		return model.PairRequest{}, model.NewErrAlreadyPaired()
	}

	inviterPaired, err := pairedWithinTx(ctx, tx, req.FromUID)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.PairRequest{}, model.NewErrRequestGone()
	}
	if err != nil {
		return model.PairRequest{}, fmt.Errorf("failed to read inviter: %w", err)
	}
	if inviterPaired {
		return model.PairRequest{}, model.NewErrInviterAlreadyPaired()
	}

	now := time.Now()

	const pairUser = `UPDATE users SET paired_with_uid = $2, paired_at = $3, updated_at = $3 WHERE id = $1`
	if _, err := tx.Exec(ctx, pairUser, callerID, req.FromUID, now); err != nil {
		return model.PairRequest{}, fmt.Errorf("failed to pair caller: %w", err)
	}
	if _, err := tx.Exec(ctx, pairUser, req.FromUID, callerID, now); err != nil {
		return model.PairRequest{}, fmt.Errorf("failed to pair inviter: %w", err)
	}

	const acceptRequest = `UPDATE pair_requests SET status = $2, responded_at = $3 WHERE id = $1`
	if _, err := tx.Exec(ctx, acceptRequest, requestID, string(model.PairRequestAccepted), now); err != nil {
		return model.PairRequest{}, fmt.Errorf("failed to accept pair request: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return model.PairRequest{}, fmt.Errorf("failed to commit accept transaction: %w", err)
	}

	req.Status = model.PairRequestAccepted
	req.RespondedAt = &now
	return req, nil
}

func pairedWithinTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID) (bool, error) {
	var pairedWith *uuid.UUID
	err := tx.QueryRow(ctx, `SELECT paired_with_uid FROM users WHERE id = $1`, userID).Scan(&pairedWith)
	if err != nil {
		return false, err
	}
	return pairedWith != nil, nil
}

func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	// 40001 serialization_failure, 40P01 deadlock_detected
	return pgErr.Code == "40001" || pgErr.Code == "40P01"
}
