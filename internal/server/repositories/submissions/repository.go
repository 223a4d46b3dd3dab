package submissions

import (
	"context"
	"time"

	"github.com/dmitrijs2005/standup/internal/server/models"
)

// Repository is the entry store. Time ranges are half-open [start, end).
type Repository interface {
	// Insert stores s unless the user already has a submission in the day
	// bucket dayKey (YYYY-MM-DD), in which case it returns common.ErrDuplicateDay.
	// The check and the write are a single atomic operation.
	Insert(ctx context.Context, s *models.Submission, dayKey string) error
	FindByUserInRange(ctx context.Context, userID string, start, end time.Time) (*models.Submission, error)
	GetOwned(ctx context.Context, id, userID string) (*models.Submission, error)
	// UpdateText rewrites the text fields of s while its created_at lies in
	// [start, end); common.ErrorNotFound means nothing matched.
	UpdateText(ctx context.Context, s *models.Submission, start, end time.Time) error
	ListByUser(ctx context.Context, userID string, since *time.Time) ([]*models.Submission, error)
	ListInRange(ctx context.Context, start, end time.Time) ([]*models.TeamEntry, error)
	DeleteAll(ctx context.Context) error
}
