package model

import (
	"fmt"
	"time"

	apperrors "reviewhub/internal/errors"
)

// Review is an authored score on a title. The composite unique index is
// the authoritative enforcement of the one-review-per-(title, author)
// invariant; application-level existence checks are an optimistic fast
// path only, concurrent inserts are decided by this index.
type Review struct {
	ID       uint      `json:"id" gorm:"primaryKey"`
	TitleID  uint      `json:"title_id" gorm:"not null;uniqueIndex:uniq_review_title_author"`
	AuthorID uint      `json:"-" gorm:"not null;uniqueIndex:uniq_review_title_author"`
	Title    Title     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Author   User      `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Text     string    `json:"text" gorm:"type:text;not null"`
	Score    int       `json:"score" gorm:"not null"`
	PubDate  time.Time `json:"pub_date" gorm:"autoUpdateTime"`
}

// ValidateScore records which bound (if any) the score violates.
func ValidateScore(score, min, max int, errs *apperrors.ValidationError) {
	if score < min {
		errs.Add("score", fmt.Sprintf("score must be at least %d", min))
	}
	if score > max {
		errs.Add("score", fmt.Sprintf("score must be at most %d", max))
	}
}
