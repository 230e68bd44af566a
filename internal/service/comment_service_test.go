package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "reviewhub/internal/errors"
	"reviewhub/internal/model"
)

func TestCommentService_Create(t *testing.T) {
	author := &model.User{ID: 7, Username: "alice", Role: model.RoleUser}

	t.Run("successful create", func(t *testing.T) {
		mockReviewRepo := new(MockReviewRepository)
		mockReviewRepo.On("FindByTitleAndID", mock.Anything, uint(1), uint(3)).Return(&model.Review{ID: 3, TitleID: 1}, nil)
		mockCommentRepo := new(MockCommentRepository)
		mockCommentRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Comment")).Return(nil)

		service := NewCommentService(mockCommentRepo, mockReviewRepo)
		comment, err := service.Create(context.Background(), author, 1, 3, "agreed")

		assert.NoError(t, err)
		assert.Equal(t, uint(3), comment.ReviewID)
		assert.Equal(t, "alice", comment.Author.Username)
		mockCommentRepo.AssertExpectations(t)
	})

	t.Run("anonymous caller", func(t *testing.T) {
		service := NewCommentService(new(MockCommentRepository), new(MockReviewRepository))
		_, err := service.Create(context.Background(), nil, 1, 3, "agreed")
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("unknown parent review", func(t *testing.T) {
		mockReviewRepo := new(MockReviewRepository)
		mockReviewRepo.On("FindByTitleAndID", mock.Anything, uint(1), uint(404)).Return(nil, gorm.ErrRecordNotFound)

		service := NewCommentService(new(MockCommentRepository), mockReviewRepo)
		_, err := service.Create(context.Background(), author, 1, 404, "agreed")
		assert.ErrorIs(t, err, apperrors.ErrReviewNotFound)
	})

	t.Run("missing text", func(t *testing.T) {
		service := NewCommentService(new(MockCommentRepository), new(MockReviewRepository))
		_, err := service.Create(context.Background(), author, 1, 3, "")

		var validation *apperrors.ValidationError
		assert.ErrorAs(t, err, &validation)
		assert.Contains(t, validation.Fields, "text")
	})
}

func TestCommentService_Delete(t *testing.T) {
	tests := []struct {
		name          string
		requester     *model.User
		expectedError error
	}{
		{"author may delete", &model.User{ID: 7, Role: model.RoleUser}, nil},
		{"moderator may delete", &model.User{ID: 42, Role: model.RoleModerator}, nil},
		{"unrelated user may not delete", &model.User{ID: 42, Role: model.RoleUser}, apperrors.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockReviewRepo := new(MockReviewRepository)
			mockReviewRepo.On("FindByTitleAndID", mock.Anything, uint(1), uint(3)).Return(&model.Review{ID: 3, TitleID: 1}, nil)
			mockCommentRepo := new(MockCommentRepository)
			mockCommentRepo.On("FindByReviewAndID", mock.Anything, uint(3), uint(9)).
				Return(&model.Comment{ID: 9, ReviewID: 3, AuthorID: 7}, nil)
			if tt.expectedError == nil {
				mockCommentRepo.On("Delete", mock.Anything, mock.AnythingOfType("*model.Comment")).Return(nil)
			}

			service := NewCommentService(mockCommentRepo, mockReviewRepo)
			err := service.Delete(context.Background(), tt.requester, 1, 3, 9)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
			mockCommentRepo.AssertExpectations(t)
		})
	}
}
