package repomanager

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/standup/internal/server/repositories/submissions"
	"github.com/dmitrijs2005/standup/internal/server/repositories/users"
)

// MemoryRepositoryManager keeps everything in process memory. WithinTx only
// serializes units of work against each other; it cannot roll back.
type MemoryRepositoryManager struct {
	txMu        *sync.Mutex
	users       *users.MemoryRepository
	submissions *submissions.MemoryRepository
	inTx        bool
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	u := users.NewMemoryRepository()
	return &MemoryRepositoryManager{
		txMu:        &sync.Mutex{},
		users:       u,
		submissions: submissions.NewMemoryRepository(u),
	}
}

func (m *MemoryRepositoryManager) RunMigrations(context.Context) error { return nil }

func (m *MemoryRepositoryManager) Users() users.Repository { return m.users }

func (m *MemoryRepositoryManager) Submissions() submissions.Repository { return m.submissions }

func (m *MemoryRepositoryManager) WithinTx(ctx context.Context, fn func(ctx context.Context, m RepositoryManager) error) error {
	if m.inTx {
		return fn(ctx, m)
	}
	m.txMu.Lock()
	defer m.txMu.Unlock()

	bound := *m
	bound.inTx = true
	return fn(ctx, &bound)
}

func (m *MemoryRepositoryManager) Ping(context.Context) error { return nil }

func (m *MemoryRepositoryManager) Close() error { return nil }
