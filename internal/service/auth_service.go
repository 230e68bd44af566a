package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"reviewhub/internal/auth"
	apperrors "reviewhub/internal/errors"
	"reviewhub/internal/mail"
	"reviewhub/internal/model"
	"reviewhub/internal/repository"
)

// AuthService handles signup, confirmation-code exchange and token
// lifecycle operations.
type AuthService interface {
	// Signup registers an identity or re-triggers code delivery for a
	// pending one. Idempotent per exact (username, email) pair: an
	// already activated identity gets a success response without a new
	// code being issued.
	Signup(ctx context.Context, username, email string) (*model.User, error)
	// ExchangeToken verifies a confirmation code and mints the access
	// credential. The code is consumed: the successful exchange advances
	// last-login, which the stored code hash is bound to.
	ExchangeToken(ctx context.Context, username, code string) (accessToken, refreshToken string, err error)
	Refresh(ctx context.Context, refreshToken string) (accessToken string, err error)
	Logout(ctx context.Context, refreshToken string) error
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
	mailer     mail.Mailer
	logger     zerolog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	userRepo repository.UserRepository,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
	mailer mail.Mailer,
	logger zerolog.Logger,
) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		tokenStore: tokenStore,
		mailer:     mailer,
		logger:     logger,
	}
}

func (s *authService) Signup(ctx context.Context, username, email string) (*model.User, error) {
	// Field validation and the existing-identity lookup are independent
	// checks; a stored-but-invalid identity does not bypass validation.
	errs := apperrors.NewValidationError()
	model.ValidateUsername(username, errs)
	model.ValidateEmail(email, errs)
	if err := errs.Err(); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByPair(ctx, username, email)
	switch {
	case err == nil:
		if user.IsActivated() {
			// Already activated: success without rotating the code.
			return user, nil
		}
		if err := s.issueAndDeliverCode(ctx, user); err != nil {
			return nil, err
		}
		return user, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = &model.User{
			Username: username,
			Email:    email,
			Role:     model.RoleUser,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// Username or email taken by a different identity.
				return nil, apperrors.ErrDuplicateUser
			}
			return nil, fmt.Errorf("create user: %w", err)
		}
		if err := s.issueAndDeliverCode(ctx, user); err != nil {
			return nil, err
		}
		return user, nil
	default:
		return nil, fmt.Errorf("look up user: %w", err)
	}
}

// issueAndDeliverCode rotates the stored code hash and dispatches the
// plaintext code by mail. Delivery runs detached: a mail failure is
// logged and never fails the signup response.
func (s *authService) issueAndDeliverCode(ctx context.Context, user *model.User) error {
	code, err := auth.GenerateConfirmationCode()
	if err != nil {
		return err
	}
	hash, err := auth.HashConfirmationCode(code, user.LastLogin)
	if err != nil {
		return err
	}
	user.ConfirmationCode = hash
	if err := s.userRepo.Save(ctx, user); err != nil {
		return fmt.Errorf("store confirmation code: %w", err)
	}

	username, address := user.Username, user.Email
	go func() {
		body := fmt.Sprintf("%s is your confirmation code for reviewhub.", code)
		if err := s.mailer.Deliver("Your reviewhub confirmation code", body, address); err != nil {
			s.logger.Error().Err(err).Str("username", username).Msg("confirmation code delivery failed")
		}
	}()
	return nil
}

func (s *authService) ExchangeToken(ctx context.Context, username, code string) (accessToken, refreshToken string, err error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", apperrors.ErrUserNotFound
		}
		return "", "", fmt.Errorf("look up user: %w", err)
	}

	if !auth.VerifyConfirmationCode(user.ConfirmationCode, code, user.LastLogin) {
		return "", "", apperrors.ErrInvalidConfirmationCode
	}

	// Advancing last-login both activates the account and invalidates
	// the just-consumed code, whose hash is bound to the previous value.
	now := time.Now()
	user.LastLogin = &now
	if err := s.userRepo.Save(ctx, user); err != nil {
		return "", "", fmt.Errorf("record login: %w", err)
	}

	accessToken, err = s.jwtService.GenerateAccessToken(user.ID, user.Username)
	if err != nil {
		return "", "", fmt.Errorf("generate access token: %w", err)
	}

	tokenID, refreshToken, err := s.jwtService.GenerateRefreshToken(user.ID, user.Username)
	if err != nil {
		return "", "", fmt.Errorf("generate refresh token: %w", err)
	}
	if err := s.tokenStore.StoreRefreshToken(ctx, tokenID, user.ID, user.Username, auth.RefreshTokenExpiry); err != nil {
		return "", "", fmt.Errorf("store refresh token: %w", err)
	}

	return accessToken, refreshToken, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (accessToken string, err error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return "", apperrors.ErrInvalidRefreshToken
	}

	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return "", apperrors.ErrInvalidRefreshToken
	}

	storedUserID, storedUsername, err := s.tokenStore.GetRefreshToken(ctx, tokenID)
	if err != nil {
		return "", apperrors.ErrInvalidRefreshToken
	}
	if storedUserID != claims.UserID || storedUsername != claims.Username {
		return "", apperrors.ErrInvalidRefreshToken
	}

	accessToken, err = s.jwtService.GenerateAccessToken(claims.UserID, claims.Username)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}
	return accessToken, nil
}

func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return apperrors.ErrInvalidRefreshToken
	}
	return s.tokenStore.DeleteRefreshToken(ctx, tokenID)
}
