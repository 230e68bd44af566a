package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "reviewhub/internal/errors"
	"reviewhub/internal/model"
	"reviewhub/internal/repository"
)

// UserInput carries fields for admin user creation. Role defaults to
// the plain user role when empty.
type UserInput struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Bio       string
	Role      string
}

// UserUpdate carries partial-update fields; nil means "leave unchanged".
// The self-service path never reads Role.
type UserUpdate struct {
	Username  *string
	Email     *string
	FirstName *string
	LastName  *string
	Bio       *string
	Role      *string
}

// UserService exposes identity management operations.
type UserService interface {
	List(ctx context.Context, search string) ([]model.User, error)
	Get(ctx context.Context, username string) (*model.User, error)
	Create(ctx context.Context, input UserInput) (*model.User, error)
	Update(ctx context.Context, username string, update UserUpdate) (*model.User, error)
	Delete(ctx context.Context, username string) error
	// UpdateSelf applies a partial update to the requester's own record,
	// with the role field ignored regardless of what was submitted.
	UpdateSelf(ctx context.Context, user *model.User, update UserUpdate) (*model.User, error)
}

type userService struct {
	repo repository.UserRepository
}

// NewUserService builds a UserService.
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) List(ctx context.Context, search string) ([]model.User, error) {
	return s.repo.List(ctx, search)
}

func (s *userService) Get(ctx context.Context, username string) (*model.User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) Create(ctx context.Context, input UserInput) (*model.User, error) {
	if input.Role == "" {
		input.Role = model.RoleUser
	}

	errs := apperrors.NewValidationError()
	model.ValidateUsername(input.Username, errs)
	model.ValidateEmail(input.Email, errs)
	model.ValidateRole(input.Role, errs)
	if err := errs.Err(); err != nil {
		return nil, err
	}

	user := &model.User{
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
		Role:      input.Role,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicateUser
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *userService) Update(ctx context.Context, username string, update UserUpdate) (*model.User, error) {
	user, err := s.Get(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.apply(ctx, user, update, true)
}

func (s *userService) UpdateSelf(ctx context.Context, user *model.User, update UserUpdate) (*model.User, error) {
	return s.apply(ctx, user, update, false)
}

// apply validates and persists a partial update. allowRole gates the
// admin-only role change; the self-service path passes false and the
// submitted role is dropped.
func (s *userService) apply(ctx context.Context, user *model.User, update UserUpdate, allowRole bool) (*model.User, error) {
	errs := apperrors.NewValidationError()
	if update.Username != nil {
		model.ValidateUsername(*update.Username, errs)
	}
	if update.Email != nil {
		model.ValidateEmail(*update.Email, errs)
	}
	if allowRole && update.Role != nil {
		model.ValidateRole(*update.Role, errs)
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	if update.Username != nil {
		user.Username = *update.Username
	}
	if update.Email != nil {
		user.Email = *update.Email
	}
	if update.FirstName != nil {
		user.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		user.LastName = *update.LastName
	}
	if update.Bio != nil {
		user.Bio = *update.Bio
	}
	if allowRole && update.Role != nil {
		user.Role = *update.Role
	}

	if err := s.repo.Save(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicateUser
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, username string) error {
	user, err := s.Get(ctx, username)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, user)
}
