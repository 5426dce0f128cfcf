package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"slugline/internal/app/models"
)

// Mapping not found
var ErrNotFound = errors.New("mapping not found")

// Slug already taken by another mapping
type ErrSlugTaken struct {
	Slug string
}

func NewErrSlugTaken(slug string) *ErrSlugTaken {
	return &ErrSlugTaken{Slug: slug}
}

func (err *ErrSlugTaken) Error() string {
	return fmt.Sprintf("slug %q is already taken", err.Slug)
}

// Storage for slug mappings
type Storage interface {
	// FindBySlug returns the mapping for slug or ErrNotFound.
	FindBySlug(ctx context.Context, slug string) (models.Mapping, error)
	// Save persists a new mapping. Returns *ErrSlugTaken if the slug
	// is already in use.
	Save(ctx context.Context, mapping models.Mapping) error
	// TrackAccess increments the click counter and sets the last access
	// time for slug. Returns ErrNotFound if no such mapping exists.
	TrackAccess(ctx context.Context, slug string, at time.Time) error
	Close()
}
