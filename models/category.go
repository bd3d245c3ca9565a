package models

import (
	"time"

	"gorm.io/gorm"
)

type CategoryKind string

const (
	CategoryNews     CategoryKind = "news"
	CategoryEvent    CategoryKind = "event"
	CategoryDocument CategoryKind = "document"
)

type Category struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Slug         string         `json:"slug" gorm:"unique"`
	NameVi       string         `json:"name_vi"`
	NameEn       string         `json:"name_en"`
	Kind         CategoryKind   `json:"kind"`
	DisplayOrder int            `json:"display_order"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
