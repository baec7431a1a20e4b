package models

import "time"

// Note is a user-authored study artifact. Keywords, image URLs and the
// review history have no lifecycle of their own, so they live on the note
// row as JSON-serialized columns rather than join tables.
type Note struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	UserID   uint   `gorm:"not null;index" json:"userId"`
	User     User   `gorm:"foreignKey:UserID" json:"-"`
	Title    string `gorm:"not null;size:200" json:"title"`
	Category string `gorm:"not null;size:100" json:"category"`
	IsPublic bool   `gorm:"default:false" json:"isPublic"`

	Keywords    []string `gorm:"serializer:json" json:"keywords"` // intended cap of 5, unenforced
	Description string   `gorm:"type:text" json:"description"`
	ImageURLs   []string `gorm:"serializer:json" json:"imageUrls"`
	PdfURL      *string  `gorm:"type:text" json:"pdfUrl"`

	// Content holds the AI-generated summary; nil until the AI gateway
	// responds.
	Content *string `gorm:"type:text" json:"content"`

	ReviewHistory    []time.Time `gorm:"serializer:json" json:"reviewHistory"`
	CreatedAt        time.Time   `json:"createdAt"`
	UpdatedAt        time.Time   `json:"updatedAt"`
	LastReviewedDate *time.Time  `json:"lastReviewedDate"`

	// UserName mirrors the owning user's name in responses.
	UserName string `gorm:"-" json:"userName"`
}
