package repository

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"reviewhub/internal/model"
)

// ReviewRepository defines review persistence and score aggregation.
// Create relies on the (title_id, author_id) unique index: a concurrent
// duplicate insert fails with gorm.ErrDuplicatedKey, which callers
// translate to a conflict.
type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	Save(ctx context.Context, review *model.Review) error
	Delete(ctx context.Context, review *model.Review) error
	FindByTitleAndID(ctx context.Context, titleID, id uint) (*model.Review, error)
	ListByTitle(ctx context.Context, titleID uint) ([]model.Review, error)
	ExistsByTitleAndAuthor(ctx context.Context, titleID, authorID uint) (bool, error)
	AverageScore(ctx context.Context, titleID uint) (*float64, error)
	AverageScores(ctx context.Context, titleIDs []uint) (map[uint]float64, error)
}

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository builds a GORM-backed repository.
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *reviewRepository) Save(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Save(review).Error
}

func (r *reviewRepository) Delete(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Delete(review).Error
}

func (r *reviewRepository) FindByTitleAndID(ctx context.Context, titleID, id uint) (*model.Review, error) {
	var review model.Review
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Where("title_id = ? AND id = ?", titleID, id).
		First(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) ListByTitle(ctx context.Context, titleID uint) ([]model.Review, error) {
	var reviews []model.Review
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Where("title_id = ?", titleID).
		Order("id").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) ExistsByTitleAndAuthor(ctx context.Context, titleID, authorID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Review{}).
		Where("title_id = ? AND author_id = ?", titleID, authorID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// AverageScore computes the mean score of a title's reviews at read
// time; nil when the title has no reviews. Never persisted.
func (r *reviewRepository) AverageScore(ctx context.Context, titleID uint) (*float64, error) {
	var avg sql.NullFloat64
	if err := r.db.WithContext(ctx).Model(&model.Review{}).
		Where("title_id = ?", titleID).
		Select("AVG(score)").
		Scan(&avg).Error; err != nil {
		return nil, err
	}
	if !avg.Valid {
		return nil, nil
	}
	return &avg.Float64, nil
}

// AverageScores batches AverageScore for title listings; titles with no
// reviews are absent from the result map.
func (r *reviewRepository) AverageScores(ctx context.Context, titleIDs []uint) (map[uint]float64, error) {
	ratings := make(map[uint]float64, len(titleIDs))
	if len(titleIDs) == 0 {
		return ratings, nil
	}

	type row struct {
		TitleID uint
		Avg     float64
	}
	var rows []row
	if err := r.db.WithContext(ctx).Model(&model.Review{}).
		Where("title_id IN ?", titleIDs).
		Select("title_id, AVG(score) AS avg").
		Group("title_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, rw := range rows {
		ratings[rw.TitleID] = rw.Avg
	}
	return ratings, nil
}
