package models

import "time"

// Mapping associates a slug with the URL it redirects to and its
// usage counters.
type Mapping struct {
	Slug           string     `json:"slug"`
	TargetURL      string     `json:"target_url"`
	Clicks         int64      `json:"clicks"`
	CreatedAt      time.Time  `json:"created_at"`
	LastAccessedAt *time.Time `json:"last_accessed_at,omitempty"`
}
