package models

import "time"

// Setting is one site configuration entry (site name, contact address,
// social links, footer text).
type Setting struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Key       string    `json:"key" gorm:"unique"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
