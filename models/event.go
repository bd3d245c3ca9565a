package models

import (
	"time"

	"gorm.io/gorm"
)

// Event is a bilingual event announcement (investment conferences, career
// fairs, zone ceremonies).
type Event struct {
	ID                   uint           `json:"id" gorm:"primaryKey"`
	Slug                 string         `json:"slug" gorm:"unique"`
	TitleVi              string         `json:"title_vi"`
	TitleEn              string         `json:"title_en"`
	SummaryVi            string         `json:"summary_vi"`
	SummaryEn            string         `json:"summary_en"`
	BodyVi               string         `json:"body_vi"`
	BodyEn               string         `json:"body_en"`
	VenueVi              string         `json:"venue_vi"`
	VenueEn              string         `json:"venue_en"`
	CoverURL             string         `json:"cover_url"`
	CategoryID           uint           `json:"category_id"`
	Category             Category       `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	AuthorID             uint           `json:"author_id"`
	StartTime            time.Time      `json:"start_time"`
	EndTime              time.Time      `json:"end_time"`
	RegistrationDeadline *time.Time     `json:"registration_deadline,omitempty"`
	Status               ContentStatus  `json:"status" gorm:"default:draft"`
	PublishAt            *time.Time     `json:"publish_at,omitempty"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
	DeletedAt            gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

type LocalizedEvent struct {
	ID                   uint       `json:"id"`
	Slug                 string     `json:"slug"`
	Title                string     `json:"title"`
	Summary              string     `json:"summary"`
	Body                 string     `json:"body,omitempty"`
	Venue                string     `json:"venue"`
	CoverURL             string     `json:"cover_url"`
	StartTime            time.Time  `json:"start_time"`
	EndTime              time.Time  `json:"end_time"`
	RegistrationDeadline *time.Time `json:"registration_deadline,omitempty"`
}

func (e *Event) Localize(lang string, withBody bool) LocalizedEvent {
	out := LocalizedEvent{
		ID:                   e.ID,
		Slug:                 e.Slug,
		Title:                e.TitleVi,
		Summary:              e.SummaryVi,
		Venue:                e.VenueVi,
		CoverURL:             e.CoverURL,
		StartTime:            e.StartTime,
		EndTime:              e.EndTime,
		RegistrationDeadline: e.RegistrationDeadline,
	}
	if withBody {
		out.Body = e.BodyVi
	}
	if lang == "en" {
		if e.TitleEn != "" {
			out.Title = e.TitleEn
		}
		if e.SummaryEn != "" {
			out.Summary = e.SummaryEn
		}
		if e.VenueEn != "" {
			out.Venue = e.VenueEn
		}
		if withBody && e.BodyEn != "" {
			out.Body = e.BodyEn
		}
	}
	return out
}
