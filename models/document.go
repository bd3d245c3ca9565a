package models

import (
	"time"

	"gorm.io/gorm"
)

// Document is a legal or guidance document published by the zone authority
// (decisions, circulars, investment guides).
type Document struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Number      string         `json:"number" gorm:"unique"`
	TitleVi     string         `json:"title_vi"`
	TitleEn     string         `json:"title_en"`
	IssuingBody string         `json:"issuing_body"`
	IssuedAt    time.Time      `json:"issued_at"`
	CategoryID  uint           `json:"category_id"`
	Category    Category       `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	FileURL     string         `json:"file_url"`
	IsEffective bool           `json:"is_effective" gorm:"default:true"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
