package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VideoModel struct {
	ID           string         `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID      string         `gorm:"type:uuid;not null;index" json:"owner_id"`
	Title        string         `gorm:"type:varchar(255);not null;index" json:"title"`
	Description  string         `gorm:"type:text" json:"description"`
	MediaURL     string         `gorm:"type:varchar(500);not null" json:"media_url"`
	ThumbnailURL string         `gorm:"type:varchar(500)" json:"thumbnail_url"`
	FileName     string         `gorm:"type:varchar(255);not null" json:"file_name"`
	ContentType  string         `gorm:"type:varchar(100)" json:"content_type"`
	SizeBytes    int64          `gorm:"default:0" json:"size_bytes"`
	Views        int            `gorm:"default:0" json:"views"`
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (VideoModel) TableName() string {
	return "videos"
}

func (v *VideoModel) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	return nil
}
