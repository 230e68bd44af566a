package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "reviewhub/internal/errors"
	"reviewhub/internal/model"
	"reviewhub/internal/policy"
	"reviewhub/internal/repository"
)

// CommentUpdate carries partial-update fields; nil means "leave unchanged".
type CommentUpdate struct {
	Text *string
}

// CommentService exposes comment operations scoped to a review within a
// title. No uniqueness constraint applies; a review takes any number of
// comments.
type CommentService interface {
	ListByReview(ctx context.Context, titleID, reviewID uint) ([]model.Comment, error)
	Get(ctx context.Context, titleID, reviewID, commentID uint) (*model.Comment, error)
	Create(ctx context.Context, requester *model.User, titleID, reviewID uint, text string) (*model.Comment, error)
	Update(ctx context.Context, requester *model.User, titleID, reviewID, commentID uint, update CommentUpdate) (*model.Comment, error)
	Delete(ctx context.Context, requester *model.User, titleID, reviewID, commentID uint) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	reviewRepo  repository.ReviewRepository
}

// NewCommentService builds a CommentService.
func NewCommentService(commentRepo repository.CommentRepository, reviewRepo repository.ReviewRepository) CommentService {
	return &commentService{commentRepo: commentRepo, reviewRepo: reviewRepo}
}

func (s *commentService) ListByReview(ctx context.Context, titleID, reviewID uint) ([]model.Comment, error) {
	if err := s.checkReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByReview(ctx, reviewID)
}

func (s *commentService) Get(ctx context.Context, titleID, reviewID, commentID uint) (*model.Comment, error) {
	if err := s.checkReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	comment, err := s.commentRepo.FindByReviewAndID(ctx, reviewID, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCommentNotFound
		}
		return nil, fmt.Errorf("load comment: %w", err)
	}
	return comment, nil
}

func (s *commentService) Create(ctx context.Context, requester *model.User, titleID, reviewID uint, text string) (*model.Comment, error) {
	if requester == nil {
		return nil, apperrors.ErrUnauthorized
	}

	errs := apperrors.NewValidationError()
	if text == "" {
		errs.Add("text", "text is required")
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	if err := s.checkReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		ReviewID: reviewID,
		AuthorID: requester.ID,
		Text:     text,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	comment.Author = *requester
	return comment, nil
}

func (s *commentService) Update(ctx context.Context, requester *model.User, titleID, reviewID, commentID uint, update CommentUpdate) (*model.Comment, error) {
	comment, err := s.Get(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	// Authorization is scoped to the comment's author, not the parent
	// review's.
	if !policy.OwnerOrEscalated(requester, true, comment.AuthorID) {
		return nil, apperrors.ErrForbidden
	}

	if update.Text != nil {
		if *update.Text == "" {
			errs := apperrors.NewValidationError()
			errs.Add("text", "text is required")
			return nil, errs
		}
		comment.Text = *update.Text
	}
	if err := s.commentRepo.Save(ctx, comment); err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}
	return comment, nil
}

func (s *commentService) Delete(ctx context.Context, requester *model.User, titleID, reviewID, commentID uint) error {
	comment, err := s.Get(ctx, titleID, reviewID, commentID)
	if err != nil {
		return err
	}
	if !policy.OwnerOrEscalated(requester, true, comment.AuthorID) {
		return apperrors.ErrForbidden
	}
	return s.commentRepo.Delete(ctx, comment)
}

func (s *commentService) checkReview(ctx context.Context, titleID, reviewID uint) error {
	if _, err := s.reviewRepo.FindByTitleAndID(ctx, titleID, reviewID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrReviewNotFound
		}
		return fmt.Errorf("load review: %w", err)
	}
	return nil
}
