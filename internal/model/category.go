package model

// Category classifies a title (film, book, music, ...). Public lookups
// are by slug; the numeric id never appears in the API key space.
type Category struct {
	ID   uint   `json:"-" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:256;not null"`
	Slug string `json:"slug" gorm:"uniqueIndex;size:50;not null"`
}
