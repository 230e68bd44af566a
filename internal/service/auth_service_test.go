package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"reviewhub/internal/auth"
	apperrors "reviewhub/internal/errors"
	"reviewhub/internal/model"
)

func newTestAuthService(userRepo *MockUserRepository, tokenStore *MockTokenStore, mailer *mailerStub) AuthService {
	return NewAuthService(userRepo, auth.NewJWTService("test-secret"), tokenStore, mailer, zerolog.Nop())
}

func TestAuthService_Signup(t *testing.T) {
	tests := []struct {
		name          string
		username      string
		email         string
		setupMock     func(*MockUserRepository)
		expectedError error
		wantFields    []string
		wantDelivery  bool
	}{
		{
			name:     "new identity receives a confirmation code",
			username: "alice",
			email:    "alice@example.com",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByPair", mock.Anything, "alice", "alice@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
				m.On("Save", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			wantDelivery: true,
		},
		{
			name:     "pending identity gets a fresh code",
			username: "bob",
			email:    "bob@example.com",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByPair", mock.Anything, "bob", "bob@example.com").Return(testUser("bob", "bob@example.com", "stale-hash", nil), nil)
				m.On("Save", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			wantDelivery: true,
		},
		{
			name:     "activated identity is left untouched",
			username: "carol",
			email:    "carol@example.com",
			setupMock: func(m *MockUserRepository) {
				now := time.Now()
				m.On("FindByPair", mock.Anything, "carol", "carol@example.com").Return(testUser("carol", "carol@example.com", "issued-hash", &now), nil)
			},
		},
		{
			name:     "username or email held by another identity",
			username: "dave",
			email:    "dave@example.com",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByPair", mock.Anything, "dave", "dave@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(gorm.ErrDuplicatedKey)
			},
			expectedError: apperrors.ErrDuplicateUser,
		},
		{
			name:       "all field violations are collected",
			username:   "me",
			email:      "",
			setupMock:  func(m *MockUserRepository) {},
			wantFields: []string{"username", "email"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)
			mailer := newMailerStub()
			service := newTestAuthService(mockRepo, new(MockTokenStore), mailer)

			user, err := service.Signup(context.Background(), tt.username, tt.email)

			switch {
			case tt.expectedError != nil:
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			case len(tt.wantFields) > 0:
				var validation *apperrors.ValidationError
				assert.ErrorAs(t, err, &validation)
				for _, field := range tt.wantFields {
					assert.Contains(t, validation.Fields, field)
				}
				assert.Nil(t, user)
			default:
				assert.NoError(t, err)
				assert.Equal(t, tt.username, user.Username)
				assert.NotEmpty(t, user.ConfirmationCode)
			}

			if tt.wantDelivery {
				assert.Eventually(t, func() bool {
					return len(mailer.delivered) == 1
				}, time.Second, 10*time.Millisecond)
			} else {
				assert.Empty(t, mailer.delivered)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Signup_RotatesPendingCode(t *testing.T) {
	user := testUser("erin", "erin@example.com", "previous-hash", nil)

	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByPair", mock.Anything, "erin", "erin@example.com").Return(user, nil)
	mockRepo.On("Save", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

	mailer := newMailerStub()
	service := newTestAuthService(mockRepo, new(MockTokenStore), mailer)

	got, err := service.Signup(context.Background(), "erin", "erin@example.com")
	assert.NoError(t, err)
	assert.NotEqual(t, "previous-hash", got.ConfirmationCode)
	assert.Eventually(t, func() bool { return len(mailer.delivered) == 1 }, time.Second, 10*time.Millisecond)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ExchangeToken(t *testing.T) {
	code, err := auth.GenerateConfirmationCode()
	assert.NoError(t, err)

	t.Run("valid code activates and mints tokens", func(t *testing.T) {
		hash, err := auth.HashConfirmationCode(code, nil)
		assert.NoError(t, err)
		user := testUser("alice", "alice@example.com", hash, nil)
		user.ID = 1

		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByUsername", mock.Anything, "alice").Return(user, nil)
		mockRepo.On("Save", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
		tokenStore := new(MockTokenStore)
		tokenStore.On("StoreRefreshToken", mock.Anything, mock.Anything, uint(1), "alice", auth.RefreshTokenExpiry).Return(nil)

		service := newTestAuthService(mockRepo, tokenStore, newMailerStub())
		accessToken, refreshToken, err := service.ExchangeToken(context.Background(), "alice", code)

		assert.NoError(t, err)
		assert.NotEmpty(t, accessToken)
		assert.NotEmpty(t, refreshToken)
		assert.NotNil(t, user.LastLogin)
		mockRepo.AssertExpectations(t)
		tokenStore.AssertExpectations(t)
	})

	t.Run("wrong code is rejected", func(t *testing.T) {
		hash, err := auth.HashConfirmationCode(code, nil)
		assert.NoError(t, err)
		user := testUser("alice", "alice@example.com", hash, nil)

		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByUsername", mock.Anything, "alice").Return(user, nil)

		service := newTestAuthService(mockRepo, new(MockTokenStore), newMailerStub())
		_, _, err = service.ExchangeToken(context.Background(), "alice", "not-the-code")
		assert.ErrorIs(t, err, apperrors.ErrInvalidConfirmationCode)
	})

	t.Run("consumed code is rejected after login advances", func(t *testing.T) {
		// Hash bound to the pre-login state; the user has logged in since.
		hash, err := auth.HashConfirmationCode(code, nil)
		assert.NoError(t, err)
		loggedIn := time.Now()
		user := testUser("alice", "alice@example.com", hash, &loggedIn)

		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByUsername", mock.Anything, "alice").Return(user, nil)

		service := newTestAuthService(mockRepo, new(MockTokenStore), newMailerStub())
		_, _, err = service.ExchangeToken(context.Background(), "alice", code)
		assert.ErrorIs(t, err, apperrors.ErrInvalidConfirmationCode)
	})

	t.Run("unknown username", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

		service := newTestAuthService(mockRepo, new(MockTokenStore), newMailerStub())
		_, _, err := service.ExchangeToken(context.Background(), "ghost", code)
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})
}

func TestAuthService_Refresh(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	tokenID, refreshToken, err := jwtService.GenerateRefreshToken(1, "alice")
	assert.NoError(t, err)

	t.Run("known token mints a new access token", func(t *testing.T) {
		tokenStore := new(MockTokenStore)
		tokenStore.On("GetRefreshToken", mock.Anything, tokenID).Return(uint(1), "alice", nil)

		service := NewAuthService(new(MockUserRepository), jwtService, tokenStore, newMailerStub(), zerolog.Nop())
		accessToken, err := service.Refresh(context.Background(), refreshToken)
		assert.NoError(t, err)
		assert.NotEmpty(t, accessToken)
	})

	t.Run("store mismatch is rejected", func(t *testing.T) {
		tokenStore := new(MockTokenStore)
		tokenStore.On("GetRefreshToken", mock.Anything, tokenID).Return(uint(2), "bob", nil)

		service := NewAuthService(new(MockUserRepository), jwtService, tokenStore, newMailerStub(), zerolog.Nop())
		_, err := service.Refresh(context.Background(), refreshToken)
		assert.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)
	})

	t.Run("revoked token is rejected", func(t *testing.T) {
		tokenStore := new(MockTokenStore)
		tokenStore.On("GetRefreshToken", mock.Anything, tokenID).Return(uint(0), "", errors.New("refresh token not found"))

		service := NewAuthService(new(MockUserRepository), jwtService, tokenStore, newMailerStub(), zerolog.Nop())
		_, err := service.Refresh(context.Background(), refreshToken)
		assert.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		service := NewAuthService(new(MockUserRepository), jwtService, new(MockTokenStore), newMailerStub(), zerolog.Nop())
		_, err := service.Refresh(context.Background(), "not-a-jwt")
		assert.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)
	})
}

func TestAuthService_Logout(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	tokenID, refreshToken, err := jwtService.GenerateRefreshToken(1, "alice")
	assert.NoError(t, err)

	tokenStore := new(MockTokenStore)
	tokenStore.On("DeleteRefreshToken", mock.Anything, tokenID).Return(nil)

	service := NewAuthService(new(MockUserRepository), jwtService, tokenStore, newMailerStub(), zerolog.Nop())
	assert.NoError(t, service.Logout(context.Background(), refreshToken))
	tokenStore.AssertExpectations(t)
}

func testUser(username, email, codeHash string, lastLogin *time.Time) *model.User {
	return &model.User{
		Username:         username,
		Email:            email,
		Role:             model.RoleUser,
		ConfirmationCode: codeHash,
		LastLogin:        lastLogin,
	}
}
