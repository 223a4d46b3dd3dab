// Package submissions provides the entry store: PostgreSQL-backed and
// in-memory repositories for standup submissions.
package submissions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/standup/internal/common"
	"github.com/dmitrijs2005/standup/internal/dbx"
	"github.com/dmitrijs2005/standup/internal/server/models"
)

const submissionColumns = `id, user_id, yesterday, today, blockers, created_at, updated_at`

// PostgresRepository implements Repository over a dbx.DBTX (*sqlx.DB or *sqlx.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Insert relies on the (user_id, day) unique constraint: a conflicting row
// makes the statement return no id, which is reported as ErrDuplicateDay.
func (r *PostgresRepository) Insert(ctx context.Context, s *models.Submission, dayKey string) error {
	query := `
		INSERT INTO submissions (id, user_id, yesterday, today, blockers, created_at, day, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7::date, $8)
		ON CONFLICT (user_id, day) DO NOTHING
		RETURNING id
	`
	var id string
	err := r.db.QueryRowxContext(ctx, query,
		s.ID, s.UserID, s.Yesterday, s.Today, s.Blockers, s.CreatedAt, dayKey, s.UpdatedAt).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrDuplicateDay
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) FindByUserInRange(ctx context.Context, userID string, start, end time.Time) (*models.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions
		WHERE user_id = $1 AND created_at >= $2 AND created_at < $3
		ORDER BY created_at DESC
		LIMIT 1`

	var s models.Submission
	if err := r.db.GetContext(ctx, &s, query, userID, start, end); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &s, nil
}

func (r *PostgresRepository) GetOwned(ctx context.Context, id, userID string) (*models.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE id = $1 AND user_id = $2`

	var s models.Submission
	if err := r.db.GetContext(ctx, &s, query, id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &s, nil
}

func (r *PostgresRepository) UpdateText(ctx context.Context, s *models.Submission, start, end time.Time) error {
	query := `
		UPDATE submissions
		SET yesterday = $3, today = $4, blockers = $5, updated_at = $6
		WHERE id = $1 AND user_id = $2 AND created_at >= $7 AND created_at < $8
		RETURNING created_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		s.ID, s.UserID, s.Yesterday, s.Today, s.Blockers, s.UpdatedAt, start, end).Scan(&s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string, since *time.Time) ([]*models.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE user_id = $1`
	args := []any{userID}
	if since != nil {
		query += ` AND created_at >= $2`
		args = append(args, *since)
	}
	query += ` ORDER BY created_at DESC`

	result := []*models.Submission{}
	if err := r.db.SelectContext(ctx, &result, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select submissions: %w", err)
	}
	return result, nil
}

// ListInRange joins each submission with its user. The inner join drops
// submissions whose user no longer exists.
func (r *PostgresRepository) ListInRange(ctx context.Context, start, end time.Time) ([]*models.TeamEntry, error) {
	query := `
		SELECT s.id, s.user_id, s.yesterday, s.today, s.blockers, s.created_at, s.updated_at,
			u.id AS "user.id", u.username AS "user.username", u.email AS "user.email", u.created_at AS "user.created_at"
		FROM submissions s
		JOIN users u ON u.id = s.user_id
		WHERE s.created_at >= $1 AND s.created_at < $2
		ORDER BY s.created_at ASC
	`
	result := []*models.TeamEntry{}
	if err := r.db.SelectContext(ctx, &result, query, start, end); err != nil {
		return nil, fmt.Errorf("failed to select team entries: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM submissions`); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
