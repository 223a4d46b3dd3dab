package services

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/standup/internal/common"
	"github.com/dmitrijs2005/standup/internal/logging"
	"github.com/dmitrijs2005/standup/internal/server/models"
	"github.com/dmitrijs2005/standup/internal/server/repositories/repomanager"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

var (
	userNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	emailPattern    = regexp.MustCompile(`^\S+@\S+\.\S+$`)
)

// UserService is the identity directory. It only knows who exists; it does
// not authenticate anyone.
type UserService struct {
	repomanager repomanager.RepositoryManager
	clock       clockwork.Clock
	logger      logging.Logger
}

func NewUserService(m repomanager.RepositoryManager, clock clockwork.Clock, logger logging.Logger) *UserService {
	return &UserService{repomanager: m, clock: clock, logger: logger.With("module", "users")}
}

func validateUser(userName, email string) (string, string, error) {
	userName = strings.TrimSpace(userName)
	email = strings.ToLower(strings.TrimSpace(email))

	fields := map[string]string{}
	switch n := utf8.RuneCountInString(userName); {
	case n == 0:
		fields["username"] = "Username is required"
	case n < 3:
		fields["username"] = "Username must be at least 3 characters"
	case n > 30:
		fields["username"] = "Username cannot exceed 30 characters"
	case !userNamePattern.MatchString(userName):
		fields["username"] = "Username can only contain letters, numbers, underscores and hyphens"
	}
	switch {
	case email == "":
		fields["email"] = "Email is required"
	case !emailPattern.MatchString(email):
		fields["email"] = "Please provide a valid email address"
	}
	if len(fields) > 0 {
		return "", "", &common.FieldError{Kind: common.ErrValidation, Fields: fields}
	}
	return userName, email, nil
}

// Register creates a user. Taken names and emails are conflicts.
func (s *UserService) Register(ctx context.Context, userName, email string) (*models.User, error) {
	userName, email, err := validateUser(userName, email)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:        uuid.NewString(),
		UserName:  userName,
		Email:     email,
		CreatedAt: s.clock.Now().UTC(),
	}
	u, err := s.repomanager.Users().Create(ctx, user)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrDuplicateUserName):
			return nil, common.NewFieldError(common.ErrConflict, "username", "Username is already taken")
		case errors.Is(err, common.ErrDuplicateEmail):
			return nil, common.NewFieldError(common.ErrConflict, "email", "Email is already in use")
		}
		s.logger.Error(ctx, "storage failure", "op", "register", "error", err)
		return nil, common.ErrorInternal
	}

	s.logger.Info(ctx, "user registered", "user_id", u.ID, "username", u.UserName)
	return u, nil
}

// Login looks a user up by name.
func (s *UserService) Login(ctx context.Context, userName string) (*models.User, error) {
	userName = strings.TrimSpace(userName)
	if userName == "" {
		return nil, common.NewFieldError(common.ErrValidation, "username", "Username is required")
	}

	u, err := s.repomanager.Users().GetByUserName(ctx, userName)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.NewFieldError(common.ErrorNotFound, "username", "User not found with this username")
		}
		s.logger.Error(ctx, "storage failure", "op", "login", "error", err)
		return nil, common.ErrorInternal
	}
	return u, nil
}

// Exists reports whether userID names a known user. Malformed ids simply
// do not exist.
func (s *UserService) Exists(ctx context.Context, userID string) (bool, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return false, nil
	}
	ok, err := s.repomanager.Users().Exists(ctx, userID)
	if err != nil {
		s.logger.Error(ctx, "storage failure", "op", "exists", "error", err)
		return false, common.ErrorInternal
	}
	return ok, nil
}

func (s *UserService) Get(ctx context.Context, userID string) (*models.User, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, common.NewFieldError(common.ErrorNotFound, "userId", msgUserNotFound)
	}
	u, err := s.repomanager.Users().GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.NewFieldError(common.ErrorNotFound, "userId", msgUserNotFound)
		}
		s.logger.Error(ctx, "storage failure", "op", "get_user", "error", err)
		return nil, common.ErrorInternal
	}
	return u, nil
}
