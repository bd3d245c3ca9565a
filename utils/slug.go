package utils

import (
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// MakeSlug builds a URL slug from a (typically Vietnamese) title.
func MakeSlug(title string) string {
	return slug.Make(title)
}

// UniqueSlug appends a short random suffix, used when the plain slug is
// already taken.
func UniqueSlug(title string) string {
	return slug.Make(title) + "-" + uuid.NewString()[:8]
}
