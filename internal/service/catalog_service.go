package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"gorm.io/gorm"

	apperrors "reviewhub/internal/errors"
	"reviewhub/internal/model"
	"reviewhub/internal/repository"
)

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// CatalogService manages the category and genre vocabularies. Both are
// slug-keyed and expose the same list/create/destroy surface.
type CatalogService interface {
	ListCategories(ctx context.Context, search string) ([]model.Category, error)
	CreateCategory(ctx context.Context, name, slug string) (*model.Category, error)
	DeleteCategory(ctx context.Context, slug string) error

	ListGenres(ctx context.Context, search string) ([]model.Genre, error)
	CreateGenre(ctx context.Context, name, slug string) (*model.Genre, error)
	DeleteGenre(ctx context.Context, slug string) error
}

type catalogService struct {
	categoryRepo repository.CategoryRepository
	genreRepo    repository.GenreRepository
}

// NewCatalogService builds a CatalogService.
func NewCatalogService(categoryRepo repository.CategoryRepository, genreRepo repository.GenreRepository) CatalogService {
	return &catalogService{categoryRepo: categoryRepo, genreRepo: genreRepo}
}

// validateTerm collects the name/slug rules shared by both vocabularies.
func validateTerm(name, slug string) error {
	errs := apperrors.NewValidationError()
	if name == "" {
		errs.Add("name", "name is required")
	} else if len(name) > 256 {
		errs.Add("name", "name must be at most 256 characters")
	}
	if slug == "" {
		errs.Add("slug", "slug is required")
	} else {
		if len(slug) > 50 {
			errs.Add("slug", "slug must be at most 50 characters")
		}
		if !slugPattern.MatchString(slug) {
			errs.Add("slug", "slug may only contain letters, digits, hyphens and underscores")
		}
	}
	return errs.Err()
}

func (s *catalogService) ListCategories(ctx context.Context, search string) ([]model.Category, error) {
	return s.categoryRepo.List(ctx, search)
}

func (s *catalogService) CreateCategory(ctx context.Context, name, slug string) (*model.Category, error) {
	if err := validateTerm(name, slug); err != nil {
		return nil, err
	}
	category := &model.Category{Name: name, Slug: slug}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: %q", apperrors.ErrDuplicateSlug, slug)
		}
		return nil, fmt.Errorf("create category: %w", err)
	}
	return category, nil
}

func (s *catalogService) DeleteCategory(ctx context.Context, slug string) error {
	affected, err := s.categoryRepo.DeleteBySlug(ctx, slug)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %q", apperrors.ErrCategoryNotFound, slug)
	}
	return nil
}

func (s *catalogService) ListGenres(ctx context.Context, search string) ([]model.Genre, error) {
	return s.genreRepo.List(ctx, search)
}

func (s *catalogService) CreateGenre(ctx context.Context, name, slug string) (*model.Genre, error) {
	if err := validateTerm(name, slug); err != nil {
		return nil, err
	}
	genre := &model.Genre{Name: name, Slug: slug}
	if err := s.genreRepo.Create(ctx, genre); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: %q", apperrors.ErrDuplicateSlug, slug)
		}
		return nil, fmt.Errorf("create genre: %w", err)
	}
	return genre, nil
}

func (s *catalogService) DeleteGenre(ctx context.Context, slug string) error {
	affected, err := s.genreRepo.DeleteBySlug(ctx, slug)
	if err != nil {
		return fmt.Errorf("delete genre: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %q", apperrors.ErrGenreNotFound, slug)
	}
	return nil
}
