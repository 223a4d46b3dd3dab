package repomanager

import (
	"context"

	"github.com/dmitrijs2005/standup/internal/server/repositories/submissions"
	"github.com/dmitrijs2005/standup/internal/server/repositories/users"
)

// RepositoryManager hands out the storage repositories for one backend.
type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Users() users.Repository
	Submissions() submissions.Repository
	// WithinTx runs fn with a manager whose repositories share one unit of
	// work. An error returned from fn rolls the work back where the backend
	// supports it.
	WithinTx(ctx context.Context, fn func(ctx context.Context, m RepositoryManager) error) error
	Ping(ctx context.Context) error
	Close() error
}
