package models

import (
	"time"

	"gorm.io/gorm"
)

type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaFile  MediaKind = "file"
)

// Media is one uploaded asset, stored on Cloudinary and referenced by URL
// from news covers, event covers and document attachments.
type Media struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	PublicID   string         `json:"public_id" gorm:"unique"`
	URL        string         `json:"url"`
	FileName   string         `json:"file_name"`
	MimeType   string         `json:"mime_type"`
	Kind       MediaKind      `json:"kind"`
	Size       int64          `json:"size"`
	Title      string         `json:"title"`
	AltText    string         `json:"alt_text"`
	UploaderID uint           `json:"uploader_id"`
	Uploader   User           `json:"uploader,omitempty" gorm:"foreignKey:UploaderID"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
