package model

import "time"

// Comment is an authored remark on a review. No uniqueness constraint;
// a review can carry any number of comments.
type Comment struct {
	ID       uint      `json:"id" gorm:"primaryKey"`
	ReviewID uint      `json:"review_id" gorm:"not null;index"`
	AuthorID uint      `json:"-" gorm:"not null"`
	Review   Review    `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Author   User      `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Text     string    `json:"text" gorm:"type:text;not null"`
	PubDate  time.Time `json:"pub_date" gorm:"autoUpdateTime"`
}
