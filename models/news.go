package models

import (
	"time"

	"gorm.io/gorm"
)

type ContentStatus string

const (
	StatusDraft     ContentStatus = "draft"
	StatusPublished ContentStatus = "published"
	StatusArchived  ContentStatus = "archived"
)

// News is a bilingual news article. Vietnamese content is the source of
// truth; English fields may be empty while a translation is pending.
type News struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	Slug       string         `json:"slug" gorm:"unique"`
	TitleVi    string         `json:"title_vi"`
	TitleEn    string         `json:"title_en"`
	SummaryVi  string         `json:"summary_vi"`
	SummaryEn  string         `json:"summary_en"`
	BodyVi     string         `json:"body_vi"`
	BodyEn     string         `json:"body_en"`
	CoverURL   string         `json:"cover_url"`
	CategoryID uint           `json:"category_id"`
	Category   Category       `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	AuthorID   uint           `json:"author_id"`
	Author     User           `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Status     ContentStatus  `json:"status" gorm:"default:draft"`
	PublishAt  *time.Time     `json:"publish_at,omitempty"`
	ViewCount  int64          `json:"view_count"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// LocalizedNews is the public-facing shape of an article for one language.
type LocalizedNews struct {
	ID        uint       `json:"id"`
	Slug      string     `json:"slug"`
	Title     string     `json:"title"`
	Summary   string     `json:"summary"`
	Body      string     `json:"body,omitempty"`
	CoverURL  string     `json:"cover_url"`
	Category  string     `json:"category"`
	PublishAt *time.Time `json:"publish_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// Localize projects the article into one language, falling back to
// Vietnamese when the English translation is missing.
func (n *News) Localize(lang string, withBody bool) LocalizedNews {
	out := LocalizedNews{
		ID:        n.ID,
		Slug:      n.Slug,
		Title:     n.TitleVi,
		Summary:   n.SummaryVi,
		CoverURL:  n.CoverURL,
		Category:  n.Category.NameVi,
		PublishAt: n.PublishAt,
		CreatedAt: n.CreatedAt,
	}
	if withBody {
		out.Body = n.BodyVi
	}
	if lang == "en" {
		if n.TitleEn != "" {
			out.Title = n.TitleEn
		}
		if n.SummaryEn != "" {
			out.Summary = n.SummaryEn
		}
		if n.Category.NameEn != "" {
			out.Category = n.Category.NameEn
		}
		if withBody && n.BodyEn != "" {
			out.Body = n.BodyEn
		}
	}
	return out
}
