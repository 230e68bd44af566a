package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "reviewhub/internal/errors"
	"reviewhub/internal/model"
	"reviewhub/internal/repository"
)

// TitleInput carries fields for title creation. CategorySlug and
// GenreSlugs are references; each must resolve to an existing entity.
type TitleInput struct {
	Name         string
	Year         int
	Description  string
	CategorySlug *string
	GenreSlugs   []string
}

// TitleUpdate carries partial-update fields; nil means "leave unchanged".
// An empty CategorySlug clears the category link.
type TitleUpdate struct {
	Name         *string
	Year         *int
	Description  *string
	CategorySlug *string
	GenreSlugs   *[]string
}

// RatedTitle is the read shape of a title: the record with its mean
// review score, nil when unreviewed. The rating is computed per read
// and never stored.
type RatedTitle struct {
	Title  model.Title
	Rating *float64
}

// TitleService exposes catalog title operations.
type TitleService interface {
	List(ctx context.Context, filter repository.TitleFilter) ([]RatedTitle, error)
	Get(ctx context.Context, id uint) (*RatedTitle, error)
	Create(ctx context.Context, input TitleInput) (*RatedTitle, error)
	Update(ctx context.Context, id uint, update TitleUpdate) (*RatedTitle, error)
	Delete(ctx context.Context, id uint) error
}

type titleService struct {
	titleRepo    repository.TitleRepository
	categoryRepo repository.CategoryRepository
	genreRepo    repository.GenreRepository
	reviewRepo   repository.ReviewRepository
}

// NewTitleService builds a TitleService.
func NewTitleService(
	titleRepo repository.TitleRepository,
	categoryRepo repository.CategoryRepository,
	genreRepo repository.GenreRepository,
	reviewRepo repository.ReviewRepository,
) TitleService {
	return &titleService{
		titleRepo:    titleRepo,
		categoryRepo: categoryRepo,
		genreRepo:    genreRepo,
		reviewRepo:   reviewRepo,
	}
}

func (s *titleService) List(ctx context.Context, filter repository.TitleFilter) ([]RatedTitle, error) {
	titles, err := s.titleRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list titles: %w", err)
	}

	ids := make([]uint, len(titles))
	for i, t := range titles {
		ids[i] = t.ID
	}
	ratings, err := s.reviewRepo.AverageScores(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("aggregate ratings: %w", err)
	}

	rated := make([]RatedTitle, len(titles))
	for i, t := range titles {
		rated[i] = RatedTitle{Title: t}
		if avg, ok := ratings[t.ID]; ok {
			rated[i].Rating = &avg
		}
	}
	return rated, nil
}

func (s *titleService) Get(ctx context.Context, id uint) (*RatedTitle, error) {
	title, err := s.titleRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTitleNotFound
		}
		return nil, fmt.Errorf("load title: %w", err)
	}
	rating, err := s.reviewRepo.AverageScore(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("aggregate rating: %w", err)
	}
	return &RatedTitle{Title: *title, Rating: rating}, nil
}

func (s *titleService) Create(ctx context.Context, input TitleInput) (*RatedTitle, error) {
	errs := apperrors.NewValidationError()
	model.ValidateTitleName(input.Name, errs)
	model.ValidateYear(input.Year, errs)
	if err := errs.Err(); err != nil {
		return nil, err
	}

	title := &model.Title{
		Name:        input.Name,
		Year:        input.Year,
		Description: input.Description,
	}

	if input.CategorySlug != nil && *input.CategorySlug != "" {
		category, err := s.resolveCategory(ctx, *input.CategorySlug)
		if err != nil {
			return nil, err
		}
		title.CategoryID = &category.ID
		title.Category = category
	}

	genres, err := s.resolveGenres(ctx, input.GenreSlugs)
	if err != nil {
		return nil, err
	}
	title.Genres = genres

	if err := s.titleRepo.Create(ctx, title); err != nil {
		return nil, fmt.Errorf("create title: %w", err)
	}
	return s.Get(ctx, title.ID)
}

func (s *titleService) Update(ctx context.Context, id uint, update TitleUpdate) (*RatedTitle, error) {
	title, err := s.titleRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTitleNotFound
		}
		return nil, fmt.Errorf("load title: %w", err)
	}

	errs := apperrors.NewValidationError()
	if update.Name != nil {
		model.ValidateTitleName(*update.Name, errs)
	}
	if update.Year != nil {
		model.ValidateYear(*update.Year, errs)
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	if update.Name != nil {
		title.Name = *update.Name
	}
	if update.Year != nil {
		title.Year = *update.Year
	}
	if update.Description != nil {
		title.Description = *update.Description
	}
	if update.CategorySlug != nil {
		if *update.CategorySlug == "" {
			title.CategoryID = nil
			title.Category = nil
		} else {
			category, err := s.resolveCategory(ctx, *update.CategorySlug)
			if err != nil {
				return nil, err
			}
			title.CategoryID = &category.ID
			title.Category = category
		}
	}

	if update.GenreSlugs != nil {
		genres, err := s.resolveGenres(ctx, *update.GenreSlugs)
		if err != nil {
			return nil, err
		}
		if err := s.titleRepo.ReplaceGenres(ctx, title, genres); err != nil {
			return nil, fmt.Errorf("replace genres: %w", err)
		}
	}

	if err := s.titleRepo.Save(ctx, title); err != nil {
		return nil, fmt.Errorf("update title: %w", err)
	}
	return s.Get(ctx, title.ID)
}

func (s *titleService) Delete(ctx context.Context, id uint) error {
	title, err := s.titleRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrTitleNotFound
		}
		return fmt.Errorf("load title: %w", err)
	}
	return s.titleRepo.Delete(ctx, title)
}

func (s *titleService) resolveCategory(ctx context.Context, slug string) (*model.Category, error) {
	category, err := s.categoryRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %q", apperrors.ErrCategoryNotFound, slug)
		}
		return nil, fmt.Errorf("resolve category: %w", err)
	}
	return category, nil
}

// resolveGenres resolves every requested slug, failing with NotFound
// naming the first slug that does not exist.
func (s *titleService) resolveGenres(ctx context.Context, slugs []string) ([]model.Genre, error) {
	genres, err := s.genreRepo.FindBySlugs(ctx, slugs)
	if err != nil {
		return nil, fmt.Errorf("resolve genres: %w", err)
	}
	found := make(map[string]bool, len(genres))
	for _, g := range genres {
		found[g.Slug] = true
	}
	for _, slug := range slugs {
		if !found[slug] {
			return nil, fmt.Errorf("%w: %q", apperrors.ErrGenreNotFound, slug)
		}
	}
	return genres, nil
}
