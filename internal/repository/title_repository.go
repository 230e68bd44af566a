package repository

import (
	"context"

	"gorm.io/gorm"

	"reviewhub/internal/model"
)

// TitleFilter narrows title listings. Zero values mean "no filter";
// Year is exact match, Name is a substring match.
type TitleFilter struct {
	CategorySlug string
	GenreSlug    string
	Name         string
	Year         *int
}

// TitleRepository defines title persistence operations.
type TitleRepository interface {
	Create(ctx context.Context, title *model.Title) error
	Save(ctx context.Context, title *model.Title) error
	Delete(ctx context.Context, title *model.Title) error
	FindByID(ctx context.Context, id uint) (*model.Title, error)
	List(ctx context.Context, filter TitleFilter) ([]model.Title, error)
	ReplaceGenres(ctx context.Context, title *model.Title, genres []model.Genre) error
}

type titleRepository struct {
	db *gorm.DB
}

// NewTitleRepository builds a GORM-backed repository.
func NewTitleRepository(db *gorm.DB) TitleRepository {
	return &titleRepository{db: db}
}

func (r *titleRepository) Create(ctx context.Context, title *model.Title) error {
	return r.db.WithContext(ctx).Create(title).Error
}

func (r *titleRepository) Save(ctx context.Context, title *model.Title) error {
	return r.db.WithContext(ctx).Save(title).Error
}

func (r *titleRepository) Delete(ctx context.Context, title *model.Title) error {
	return r.db.WithContext(ctx).Delete(title).Error
}

// FindByID loads a title with its category and genres embedded.
func (r *titleRepository) FindByID(ctx context.Context, id uint) (*model.Title, error) {
	var title model.Title
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Genres").
		First(&title, id).Error; err != nil {
		return nil, err
	}
	return &title, nil
}

func (r *titleRepository) List(ctx context.Context, filter TitleFilter) ([]model.Title, error) {
	q := r.db.WithContext(ctx).Model(&model.Title{}).
		Preload("Category").
		Preload("Genres")

	if filter.CategorySlug != "" {
		q = q.Joins("JOIN categories ON categories.id = titles.category_id").
			Where("categories.slug = ?", filter.CategorySlug)
	}
	if filter.GenreSlug != "" {
		q = q.Joins("JOIN genre_titles ON genre_titles.title_id = titles.id").
			Joins("JOIN genres ON genres.id = genre_titles.genre_id").
			Where("genres.slug = ?", filter.GenreSlug)
	}
	if filter.Name != "" {
		q = q.Where("titles.name LIKE ?", "%"+filter.Name+"%")
	}
	if filter.Year != nil {
		q = q.Where("titles.year = ?", *filter.Year)
	}

	var titles []model.Title
	if err := q.Order("titles.id").Find(&titles).Error; err != nil {
		return nil, err
	}
	return titles, nil
}

// ReplaceGenres swaps the full genre set of a title.
func (r *titleRepository) ReplaceGenres(ctx context.Context, title *model.Title, genres []model.Genre) error {
	return r.db.WithContext(ctx).Model(title).Association("Genres").Replace(genres)
}
