// Package services contains server-side business logic: the standup ledger,
// the team snapshot and the user directory.
package services

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/standup/internal/common"
	"github.com/dmitrijs2005/standup/internal/logging"
	"github.com/dmitrijs2005/standup/internal/server/cache"
	"github.com/dmitrijs2005/standup/internal/server/calendar"
	"github.com/dmitrijs2005/standup/internal/server/models"
	"github.com/dmitrijs2005/standup/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

const minTextLen = 3

const (
	msgYesterdayRequired = "What you did yesterday is required"
	msgTodayRequired     = "What you plan to do today is required"
	msgYesterdayShort    = "Yesterday's update must be at least 3 characters"
	msgTodayShort        = "Today's plan must be at least 3 characters"
	msgAlreadySubmitted  = "You already submitted a standup for today"
	msgEntryNotFound     = "Standup entry not found or you do not have permission to update it"
	msgEditWindow        = "You can only edit today's standup entry"
	msgUserNotFound      = "User not found"
)

// LedgerService owns the one-standup-per-day rule, creation, same-day edits
// and per-user history.
type LedgerService struct {
	repomanager repomanager.RepositoryManager
	calendar    *calendar.Calendar
	cache       cache.SnapshotCache
	logger      logging.Logger
	newID       func() string
}

func NewLedgerService(m repomanager.RepositoryManager, cal *calendar.Calendar, c cache.SnapshotCache, logger logging.Logger) *LedgerService {
	if c == nil {
		c = cache.NopCache{}
	}
	return &LedgerService{
		repomanager: m,
		calendar:    cal,
		cache:       c,
		logger:      logger.With("module", "ledger"),
		newID:       uuid.NewString,
	}
}

type entryText struct {
	yesterday, today, blockers string
}

// validateText trims the three fields and reports every missing or short
// field at once.
func validateText(yesterday, today, blockers string) (entryText, error) {
	t := entryText{
		yesterday: strings.TrimSpace(yesterday),
		today:     strings.TrimSpace(today),
		blockers:  strings.TrimSpace(blockers),
	}

	fields := map[string]string{}
	switch {
	case t.yesterday == "":
		fields["yesterday"] = msgYesterdayRequired
	case utf8.RuneCountInString(t.yesterday) < minTextLen:
		fields["yesterday"] = msgYesterdayShort
	}
	switch {
	case t.today == "":
		fields["today"] = msgTodayRequired
	case utf8.RuneCountInString(t.today) < minTextLen:
		fields["today"] = msgTodayShort
	}
	if len(fields) > 0 {
		return t, &common.FieldError{Kind: common.ErrValidation, Fields: fields}
	}

	if t.blockers == "" {
		t.blockers = common.DefaultBlockers
	}
	return t, nil
}

// internal logs a storage failure and hides it behind common.ErrorInternal.
func (s *LedgerService) internal(ctx context.Context, op string, err error) error {
	s.logger.Error(ctx, "storage failure", "op", op, "error", err)
	return common.ErrorInternal
}

// HasSubmissionToday returns the caller's submission for the current day, or
// nil when there is none.
func (s *LedgerService) HasSubmissionToday(ctx context.Context, userID string) (*models.Submission, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, nil
	}
	today := s.calendar.Today()
	sub, err := s.repomanager.Submissions().FindByUserInRange(ctx, userID, today.Start, today.End)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil
		}
		return nil, s.internal(ctx, "has_submission_today", err)
	}
	return sub, nil
}

// Create stores today's standup for userID. Two concurrent calls for the same
// user and day yield one success and one conflict; the store decides.
func (s *LedgerService) Create(ctx context.Context, userID, yesterday, today, blockers string) (*models.Submission, error) {
	text, err := validateText(yesterday, today, blockers)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}

	existing, err := s.HasSubmissionToday(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, common.NewFieldError(common.ErrConflict, "userId", msgAlreadySubmitted)
	}

	return s.insert(ctx, "create", userID, s.calendar.Now(), text)
}

// Import stores a standup with a caller-chosen creation time, subject to the
// same validation and the same one-per-day rule as Create.
func (s *LedgerService) Import(ctx context.Context, userID string, createdAt time.Time, yesterday, today, blockers string) (*models.Submission, error) {
	text, err := validateText(yesterday, today, blockers)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.insert(ctx, "import", userID, createdAt.In(s.calendar.Location()), text)
}

func (s *LedgerService) insert(ctx context.Context, op, userID string, at time.Time, text entryText) (*models.Submission, error) {
	sub := &models.Submission{
		ID:        s.newID(),
		UserID:    userID,
		Yesterday: text.yesterday,
		Today:     text.today,
		Blockers:  text.blockers,
		CreatedAt: at,
		UpdatedAt: at,
	}

	if err := s.repomanager.Submissions().Insert(ctx, sub, s.calendar.DayKey(at)); err != nil {
		if errors.Is(err, common.ErrDuplicateDay) {
			return nil, common.NewFieldError(common.ErrConflict, "userId", msgAlreadySubmitted)
		}
		return nil, s.internal(ctx, op, err)
	}

	s.logger.Info(ctx, "standup stored", "op", op, "id", sub.ID, "user_id", userID, "day", s.calendar.DayKey(at))
	s.invalidate(ctx)
	return sub, nil
}

// Update rewrites the text of the caller's own standup as long as it belongs
// to the current day. CreatedAt never changes.
func (s *LedgerService) Update(ctx context.Context, id, userID, yesterday, today, blockers string) (*models.Submission, error) {
	text, err := validateText(yesterday, today, blockers)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.NewFieldError(common.ErrorNotFound, "id", msgEntryNotFound)
	}

	repo := s.repomanager.Submissions()
	current, err := repo.GetOwned(ctx, id, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.NewFieldError(common.ErrorNotFound, "id", msgEntryNotFound)
		}
		return nil, s.internal(ctx, "update", err)
	}

	window := s.calendar.Today()
	if !window.Contains(current.CreatedAt) {
		return nil, common.NewFieldError(common.ErrEditWindow, "id", msgEditWindow)
	}

	current.Yesterday = text.yesterday
	current.Today = text.today
	current.Blockers = text.blockers
	current.UpdatedAt = s.calendar.Now()

	// The window is checked again by the store so that a midnight rollover
	// between the read and the write is still rejected.
	if err := repo.UpdateText(ctx, current, window.Start, window.End); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.NewFieldError(common.ErrEditWindow, "id", msgEditWindow)
		}
		return nil, s.internal(ctx, "update", err)
	}

	s.logger.Info(ctx, "standup updated", "id", id, "user_id", userID)
	s.invalidate(ctx)
	return current, nil
}

// ListForUser returns the caller's standups newest first. Unknown periods
// mean the whole history.
func (s *LedgerService) ListForUser(ctx context.Context, userID string, period models.HistoryPeriod) ([]*models.Submission, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return []*models.Submission{}, nil
	}

	var since *time.Time
	switch period {
	case models.HistoryWeek:
		start := s.calendar.LastNDays(7).Start
		since = &start
	case models.HistoryMonth:
		start := s.calendar.LastNDays(30).Start
		since = &start
	}

	list, err := s.repomanager.Submissions().ListByUser(ctx, userID, since)
	if err != nil {
		return nil, s.internal(ctx, "list_for_user", err)
	}
	if list == nil {
		list = []*models.Submission{}
	}
	return list, nil
}

func (s *LedgerService) ensureUser(ctx context.Context, userID string) error {
	if _, err := uuid.Parse(userID); err != nil {
		return common.NewFieldError(common.ErrorNotFound, "userId", msgUserNotFound)
	}
	ok, err := s.repomanager.Users().Exists(ctx, userID)
	if err != nil {
		return s.internal(ctx, "user_exists", err)
	}
	if !ok {
		return common.NewFieldError(common.ErrorNotFound, "userId", msgUserNotFound)
	}
	return nil
}

func (s *LedgerService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn(ctx, "snapshot cache invalidation failed", "error", err)
	}
}
