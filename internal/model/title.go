package model

import (
	"fmt"
	"time"

	apperrors "reviewhub/internal/errors"
)

// Title is a cataloged work. Deleting its category nulls the link;
// deleting a genre removes only the join rows. The (genre, title) pair
// is unique by construction: the join table keys on both columns.
type Title struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:256;not null;index"`
	Year        int       `json:"year" gorm:"not null"`
	Description string    `json:"description" gorm:"type:text"`
	CategoryID  *uint     `json:"-"`
	Category    *Category `json:"category,omitempty" gorm:"constraint:OnDelete:SET NULL"`
	Genres      []Genre   `json:"genres" gorm:"many2many:genre_titles;constraint:OnDelete:CASCADE"`
}

// ValidateTitleName records every violated name rule on errs.
func ValidateTitleName(name string, errs *apperrors.ValidationError) {
	if name == "" {
		errs.Add("name", "name is required")
		return
	}
	if len(name) > 256 {
		errs.Add("name", "name must be at most 256 characters")
	}
}

// ValidateYear records a violation when year lies in the future.
func ValidateYear(year int, errs *apperrors.ValidationError) {
	if current := time.Now().Year(); year > current {
		errs.Add("year", fmt.Sprintf("year cannot be later than %d", current))
	}
}
