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

// ReviewUpdate carries partial-update fields; nil means "leave unchanged".
type ReviewUpdate struct {
	Text  *string
	Score *int
}

// ReviewService exposes review operations scoped to a title.
type ReviewService interface {
	ListByTitle(ctx context.Context, titleID uint) ([]model.Review, error)
	Get(ctx context.Context, titleID, reviewID uint) (*model.Review, error)
	// Create enforces the one-review-per-(title, author) invariant. The
	// existence pre-check is an optimistic fast path; the storage-level
	// unique index is the authoritative backstop under concurrency.
	Create(ctx context.Context, requester *model.User, titleID uint, text string, score int) (*model.Review, error)
	Update(ctx context.Context, requester *model.User, titleID, reviewID uint, update ReviewUpdate) (*model.Review, error)
	Delete(ctx context.Context, requester *model.User, titleID, reviewID uint) error
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	titleRepo  repository.TitleRepository
	scoreMin   int
	scoreMax   int
}

// NewReviewService builds a ReviewService with the configured inclusive
// score bounds.
func NewReviewService(reviewRepo repository.ReviewRepository, titleRepo repository.TitleRepository, scoreMin, scoreMax int) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		titleRepo:  titleRepo,
		scoreMin:   scoreMin,
		scoreMax:   scoreMax,
	}
}

func (s *reviewService) ListByTitle(ctx context.Context, titleID uint) ([]model.Review, error) {
	if err := s.checkTitle(ctx, titleID); err != nil {
		return nil, err
	}
	return s.reviewRepo.ListByTitle(ctx, titleID)
}

func (s *reviewService) Get(ctx context.Context, titleID, reviewID uint) (*model.Review, error) {
	review, err := s.reviewRepo.FindByTitleAndID(ctx, titleID, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrReviewNotFound
		}
		return nil, fmt.Errorf("load review: %w", err)
	}
	return review, nil
}

func (s *reviewService) Create(ctx context.Context, requester *model.User, titleID uint, text string, score int) (*model.Review, error) {
	if requester == nil {
		return nil, apperrors.ErrUnauthorized
	}

	errs := apperrors.NewValidationError()
	model.ValidateScore(score, s.scoreMin, s.scoreMax, errs)
	if text == "" {
		errs.Add("text", "text is required")
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	if err := s.checkTitle(ctx, titleID); err != nil {
		return nil, err
	}

	// Optimistic fast path; the unique index decides concurrent races.
	exists, err := s.reviewRepo.ExistsByTitleAndAuthor(ctx, titleID, requester.ID)
	if err != nil {
		return nil, fmt.Errorf("check existing review: %w", err)
	}
	if exists {
		return nil, apperrors.ErrDuplicateReview
	}

	review := &model.Review{
		TitleID:  titleID,
		AuthorID: requester.ID,
		Text:     text,
		Score:    score,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicateReview
		}
		return nil, fmt.Errorf("create review: %w", err)
	}
	review.Author = *requester
	return review, nil
}

func (s *reviewService) Update(ctx context.Context, requester *model.User, titleID, reviewID uint, update ReviewUpdate) (*model.Review, error) {
	review, err := s.Get(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	if !policy.OwnerOrEscalated(requester, true, review.AuthorID) {
		return nil, apperrors.ErrForbidden
	}

	errs := apperrors.NewValidationError()
	if update.Score != nil {
		model.ValidateScore(*update.Score, s.scoreMin, s.scoreMax, errs)
	}
	if update.Text != nil && *update.Text == "" {
		errs.Add("text", "text is required")
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	if update.Text != nil {
		review.Text = *update.Text
	}
	if update.Score != nil {
		review.Score = *update.Score
	}
	if err := s.reviewRepo.Save(ctx, review); err != nil {
		return nil, fmt.Errorf("update review: %w", err)
	}
	return review, nil
}

func (s *reviewService) Delete(ctx context.Context, requester *model.User, titleID, reviewID uint) error {
	review, err := s.Get(ctx, titleID, reviewID)
	if err != nil {
		return err
	}
	if !policy.OwnerOrEscalated(requester, true, review.AuthorID) {
		return apperrors.ErrForbidden
	}
	return s.reviewRepo.Delete(ctx, review)
}

func (s *reviewService) checkTitle(ctx context.Context, titleID uint) error {
	if _, err := s.titleRepo.FindByID(ctx, titleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrTitleNotFound
		}
		return fmt.Errorf("load title: %w", err)
	}
	return nil
}
