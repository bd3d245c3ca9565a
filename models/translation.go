package models

import "time"

// Translation is one interface string of the public portal, keyed as
// "namespace.key" (e.g. "nav.investment_guide").
type Translation struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Namespace string    `json:"namespace" gorm:"index"`
	Key       string    `json:"key" gorm:"unique"`
	Vi        string    `json:"vi"`
	En        string    `json:"en"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
