package submissions

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/standup/internal/common"
	"github.com/dmitrijs2005/standup/internal/server/models"
)

// UserFinder resolves a user id for the team join.
type UserFinder interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// MemoryRepository keeps submissions in process memory. The (user, day)
// index plays the role of the unique constraint; all access goes through mu.
// It is only safe for a single process.
type MemoryRepository struct {
	mu        sync.RWMutex
	byID      map[string]*models.Submission
	byUserDay map[string]string
	users     UserFinder
}

func NewMemoryRepository(users UserFinder) *MemoryRepository {
	return &MemoryRepository{
		byID:      make(map[string]*models.Submission),
		byUserDay: make(map[string]string),
		users:     users,
	}
}

func userDayKey(userID, dayKey string) string {
	return userID + "|" + dayKey
}

func (r *MemoryRepository) Insert(ctx context.Context, s *models.Submission, dayKey string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := userDayKey(s.UserID, dayKey)
	if _, taken := r.byUserDay[k]; taken {
		return common.ErrDuplicateDay
	}
	c := *s
	r.byID[s.ID] = &c
	r.byUserDay[k] = s.ID
	return nil
}

func (r *MemoryRepository) FindByUserInRange(ctx context.Context, userID string, start, end time.Time) (*models.Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var found *models.Submission
	for _, s := range r.byID {
		if s.UserID != userID || !inRange(s.CreatedAt, start, end) {
			continue
		}
		if found == nil || s.CreatedAt.After(found.CreatedAt) {
			found = s
		}
	}
	if found == nil {
		return nil, common.ErrorNotFound
	}
	c := *found
	return &c, nil
}

func (r *MemoryRepository) GetOwned(ctx context.Context, id, userID string) (*models.Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byID[id]
	if !ok || s.UserID != userID {
		return nil, common.ErrorNotFound
	}
	c := *s
	return &c, nil
}

func (r *MemoryRepository) UpdateText(ctx context.Context, s *models.Submission, start, end time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.byID[s.ID]
	if !ok || cur.UserID != s.UserID || !inRange(cur.CreatedAt, start, end) {
		return common.ErrorNotFound
	}
	cur.Yesterday = s.Yesterday
	cur.Today = s.Today
	cur.Blockers = s.Blockers
	cur.UpdatedAt = s.UpdatedAt
	s.CreatedAt = cur.CreatedAt
	return nil
}

func (r *MemoryRepository) ListByUser(ctx context.Context, userID string, since *time.Time) ([]*models.Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []*models.Submission{}
	for _, s := range r.byID {
		if s.UserID != userID {
			continue
		}
		if since != nil && s.CreatedAt.Before(*since) {
			continue
		}
		c := *s
		result = append(result, &c)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *MemoryRepository) ListInRange(ctx context.Context, start, end time.Time) ([]*models.TeamEntry, error) {
	r.mu.RLock()
	matched := make([]models.Submission, 0)
	for _, s := range r.byID {
		if inRange(s.CreatedAt, start, end) {
			matched = append(matched, *s)
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})

	result := []*models.TeamEntry{}
	for _, s := range matched {
		u, err := r.users.GetByID(ctx, s.UserID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				continue
			}
			return nil, err
		}
		result = append(result, &models.TeamEntry{Submission: s, User: *u})
	}
	return result, nil
}

func (r *MemoryRepository) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID = make(map[string]*models.Submission)
	r.byUserDay = make(map[string]string)
	return nil
}

func inRange(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}
