package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"reviewhub/internal/config"
	"reviewhub/internal/db"
	"reviewhub/internal/model"
	"reviewhub/internal/repository"
	"reviewhub/internal/service"
)

// One-shot catalog loader: populates categories, genres and titles from
// CSV files at deploy time.
//
// Expected files (header row required):
//
//	categories.csv  name,slug
//	genres.csv      name,slug
//	titles.csv      name,year,category,genres,description
//
// The titles "genres" column is a semicolon-separated slug list.
func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	dir := flag.String("dir", "data", "directory containing the CSV files")
	flag.Parse()

	cfg := config.Load()
	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("database init")
	}
	if err := gormDB.AutoMigrate(
		&model.Category{},
		&model.Genre{},
		&model.Title{},
	); err != nil {
		logger.Fatal().Err(err).Msg("auto-migrate")
	}

	ctx := context.Background()
	categoryRepo := repository.NewCategoryRepository(gormDB)
	genreRepo := repository.NewGenreRepository(gormDB)
	titleRepo := repository.NewTitleRepository(gormDB)
	reviewRepo := repository.NewReviewRepository(gormDB)
	titleService := service.NewTitleService(titleRepo, categoryRepo, genreRepo, reviewRepo)

	if rows, err := readCSV(filepath.Join(*dir, "categories.csv")); err != nil {
		logger.Warn().Err(err).Msg("skipping categories")
	} else {
		created, skipped := 0, 0
		for _, row := range rows {
			if len(row) < 2 {
				skipped++
				continue
			}
			err := categoryRepo.Create(ctx, &model.Category{Name: row[0], Slug: row[1]})
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				skipped++
				continue
			}
			if err != nil {
				logger.Fatal().Err(err).Str("slug", row[1]).Msg("create category")
			}
			created++
		}
		logger.Info().Int("created", created).Int("skipped", skipped).Msg("categories seeded")
	}

	if rows, err := readCSV(filepath.Join(*dir, "genres.csv")); err != nil {
		logger.Warn().Err(err).Msg("skipping genres")
	} else {
		created, skipped := 0, 0
		for _, row := range rows {
			if len(row) < 2 {
				skipped++
				continue
			}
			err := genreRepo.Create(ctx, &model.Genre{Name: row[0], Slug: row[1]})
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				skipped++
				continue
			}
			if err != nil {
				logger.Fatal().Err(err).Str("slug", row[1]).Msg("create genre")
			}
			created++
		}
		logger.Info().Int("created", created).Int("skipped", skipped).Msg("genres seeded")
	}

	if rows, err := readCSV(filepath.Join(*dir, "titles.csv")); err != nil {
		logger.Warn().Err(err).Msg("skipping titles")
	} else {
		created, skipped := 0, 0
		for _, row := range rows {
			input, err := titleInput(row)
			if err != nil {
				logger.Warn().Err(err).Strs("row", row).Msg("skipping title row")
				skipped++
				continue
			}
			if _, err := titleService.Create(ctx, input); err != nil {
				logger.Warn().Err(err).Str("name", input.Name).Msg("skipping title")
				skipped++
				continue
			}
			created++
		}
		logger.Info().Int("created", created).Int("skipped", skipped).Msg("titles seeded")
	}
}

func titleInput(row []string) (service.TitleInput, error) {
	if len(row) < 4 {
		return service.TitleInput{}, fmt.Errorf("expected at least 4 columns, got %d", len(row))
	}
	year, err := strconv.Atoi(row[1])
	if err != nil {
		return service.TitleInput{}, fmt.Errorf("invalid year %q", row[1])
	}
	input := service.TitleInput{Name: row[0], Year: year}
	if row[2] != "" {
		category := row[2]
		input.CategorySlug = &category
	}
	if row[3] != "" {
		input.GenreSlugs = strings.Split(row[3], ";")
	}
	if len(row) > 4 {
		input.Description = row[4]
	}
	return input, nil
}

// readCSV returns all data rows of a CSV file, header excluded.
func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	if _, err := r.Read(); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, err
	}

	var rows [][]string
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}
