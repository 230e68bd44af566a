package repository

import (
	"context"

	"gorm.io/gorm"

	"reviewhub/internal/model"
)

// GenreRepository mirrors CategoryRepository for the genre vocabulary.
type GenreRepository interface {
	List(ctx context.Context, search string) ([]model.Genre, error)
	Create(ctx context.Context, genre *model.Genre) error
	DeleteBySlug(ctx context.Context, slug string) (int64, error)
	FindBySlug(ctx context.Context, slug string) (*model.Genre, error)
	FindBySlugs(ctx context.Context, slugs []string) ([]model.Genre, error)
}

type genreRepository struct {
	db *gorm.DB
}

// NewGenreRepository builds a GORM-backed repository.
func NewGenreRepository(db *gorm.DB) GenreRepository {
	return &genreRepository{db: db}
}

func (r *genreRepository) List(ctx context.Context, search string) ([]model.Genre, error) {
	var genres []model.Genre
	q := r.db.WithContext(ctx)
	if search != "" {
		q = q.Where("name LIKE ?", "%"+search+"%")
	}
	if err := q.Order("slug").Find(&genres).Error; err != nil {
		return nil, err
	}
	return genres, nil
}

func (r *genreRepository) Create(ctx context.Context, genre *model.Genre) error {
	return r.db.WithContext(ctx).Create(genre).Error
}

// DeleteBySlug removes a genre together with its join rows; titles
// themselves stay intact.
func (r *genreRepository) DeleteBySlug(ctx context.Context, slug string) (int64, error) {
	var genre model.Genre
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&genre).Error
	if err == gorm.ErrRecordNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	// Join rows go with the genre; titles stay.
	if err := r.db.WithContext(ctx).Exec("DELETE FROM genre_titles WHERE genre_id = ?", genre.ID).Error; err != nil {
		return 0, err
	}
	if err := r.db.WithContext(ctx).Delete(&genre).Error; err != nil {
		return 0, err
	}
	return 1, nil
}

func (r *genreRepository) FindBySlug(ctx context.Context, slug string) (*model.Genre, error) {
	var genre model.Genre
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&genre).Error; err != nil {
		return nil, err
	}
	return &genre, nil
}

func (r *genreRepository) FindBySlugs(ctx context.Context, slugs []string) ([]model.Genre, error) {
	var genres []model.Genre
	if len(slugs) == 0 {
		return genres, nil
	}
	if err := r.db.WithContext(ctx).Where("slug IN ?", slugs).Find(&genres).Error; err != nil {
		return nil, err
	}
	return genres, nil
}
