package repository

import (
	"context"

	"gorm.io/gorm"

	"reviewhub/internal/model"
)

// CategoryRepository is the list/create/destroy surface for the
// slug-keyed category vocabulary, plus the slug lookup the title writes
// use to validate references.
type CategoryRepository interface {
	List(ctx context.Context, search string) ([]model.Category, error)
	Create(ctx context.Context, category *model.Category) error
	DeleteBySlug(ctx context.Context, slug string) (int64, error)
	FindBySlug(ctx context.Context, slug string) (*model.Category, error)
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository builds a GORM-backed repository.
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) List(ctx context.Context, search string) ([]model.Category, error) {
	var categories []model.Category
	q := r.db.WithContext(ctx)
	if search != "" {
		q = q.Where("name LIKE ?", "%"+search+"%")
	}
	if err := q.Order("slug").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) Create(ctx context.Context, category *model.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

// DeleteBySlug removes a category; dependent titles keep their rows with
// a nulled category link.
func (r *categoryRepository) DeleteBySlug(ctx context.Context, slug string) (int64, error) {
	res := r.db.WithContext(ctx).Where("slug = ?", slug).Delete(&model.Category{})
	return res.RowsAffected, res.Error
}

func (r *categoryRepository) FindBySlug(ctx context.Context, slug string) (*model.Category, error) {
	var category model.Category
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}
