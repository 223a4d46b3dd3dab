package users

import (
	"context"

	"github.com/dmitrijs2005/standup/internal/server/models"
)

// Repository is the identity directory store.
type Repository interface {
	// Create stores a new user. Duplicate names and emails are reported as
	// common.ErrDuplicateUserName and common.ErrDuplicateEmail.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUserName(ctx context.Context, userName string) (*models.User, error)
	Exists(ctx context.Context, id string) (bool, error)
	DeleteAll(ctx context.Context) error
}
