package users

import (
	"context"
	"strings"
	"sync"

	"github.com/dmitrijs2005/standup/internal/common"
	"github.com/dmitrijs2005/standup/internal/server/models"
)

// MemoryRepository keeps users in process memory with the same uniqueness
// rules as the users table.
type MemoryRepository struct {
	mu      sync.RWMutex
	byID    map[string]*models.User
	byName  map[string]string
	byEmail map[string]string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:    make(map[string]*models.User),
		byName:  make(map[string]string),
		byEmail: make(map[string]string),
	}
}

func (r *MemoryRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byName[user.UserName]; ok {
		return nil, common.ErrDuplicateUserName
	}
	email := strings.ToLower(user.Email)
	if _, ok := r.byEmail[email]; ok {
		return nil, common.ErrDuplicateEmail
	}

	c := *user
	r.byID[user.ID] = &c
	r.byName[user.UserName] = user.ID
	r.byEmail[email] = user.ID
	return user, nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *u
	return &c, nil
}

func (r *MemoryRepository) GetByUserName(ctx context.Context, userName string) (*models.User, error) {
	r.mu.RLock()
	id, ok := r.byName[userName]
	r.mu.RUnlock()
	if !ok {
		return nil, common.ErrorNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *MemoryRepository) Exists(ctx context.Context, id string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byID[id]
	return ok, nil
}

func (r *MemoryRepository) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID = make(map[string]*models.User)
	r.byName = make(map[string]string)
	r.byEmail = make(map[string]string)
	return nil
}
