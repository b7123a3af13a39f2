package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/contesthub/backend/internal/core/domain"
	"github.com/contesthub/backend/internal/core/ports"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

type UserService struct {
	repo ports.UserRepository
	log  zerolog.Logger
}

func NewUserService(repo ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, log: log}
}

// Register creates a user on first contact. A repeated registration with
// the same email is a no-op that reports the account already exists.
func (s *UserService) Register(ctx context.Context, in ports.RegisterUserInput) (*ports.RegisterResult, error) {
	existing, err := s.repo.FindByEmail(ctx, in.Email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if existing != nil {
		s.log.Debug().Str("email", in.Email).Msg("registration replay, user exists")
		return &ports.RegisterResult{AlreadyExisted: true}, nil
	}

	user := &domain.User{
		Email:     in.Email,
		Name:      in.Name,
		Image:     in.Image,
		Role:      domain.RoleUser,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("email", in.Email).Msg("user registered")
	return &ports.RegisterResult{InsertedID: created.ID}, nil
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.repo.FindByEmail(ctx, email)
}

func (s *UserService) List(ctx context.Context, page, limit int) (*ports.ListUsersResult, error) {
	page, limit = normalizePage(page, limit)

	items, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, err
	}

	return &ports.ListUsersResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

// UpdateProfile lets a user patch their own display name and image.
func (s *UserService) UpdateProfile(ctx context.Context, callerEmail, email, name, image string) (*domain.User, error) {
	if callerEmail != email {
		return nil, domain.ErrForbidden
	}
	return s.repo.UpdateProfile(ctx, email, name, image)
}

// ChangeRole validates the raw role against the closed enum before any
// write reaches the store.
func (s *UserService) ChangeRole(ctx context.Context, id, rawRole string) error {
	role, err := domain.ParseRole(rawRole)
	if err != nil {
		return err
	}

	if err := s.repo.UpdateRole(ctx, id, role); err != nil {
		return err
	}

	s.log.Info().Str("user_id", id).Str("role", string(role)).Msg("role changed")
	return nil
}

// HasRole consults the store on every call so a role change takes effect on
// the caller's very next request.
func (s *UserService) HasRole(ctx context.Context, email string, role domain.Role) (bool, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	return user.Role == role, nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
