package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Article is the portal-side source content a video is produced from.
// The pipeline snapshots its fields at intake; it never reads back.
type Article struct {
	ID         string    `json:"id" gorm:"type:uuid;primarykey"`
	Title      string    `json:"title" gorm:"not null"`
	Slug       string    `json:"slug" gorm:"uniqueIndex;not null"`
	Content    string    `json:"content" gorm:"type:text"`
	Excerpt    string    `json:"excerpt" gorm:"type:text"`
	CategoryID *string   `json:"category_id" gorm:"type:uuid"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (a *Article) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
