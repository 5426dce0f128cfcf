package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"slugline/internal/app/models"
	"slugline/internal/app/storage"
)

const (
	// Length of a generated slug
	SlugLen = 8
	// Length of the suffix appended to a colliding custom slug
	SuffixLen = 4

	maxAllocateAttempts = 10
)

var (
	ErrURLRequired   = errors.New("URL is required")
	ErrInvalidURL    = errors.New("Invalid URL format")
	ErrSlugExhausted = errors.New("Failed to generate unique slug")
)

// SlugAllocator maps target URLs to unique slugs
type SlugAllocator interface {
	Allocate(ctx context.Context, targetURL, customSlug string) (models.Mapping, error)
}

type slugAllocator struct {
	randGen RandStringGenerator
	store   storage.Storage
}

func NewSlugAllocator(randGen RandStringGenerator, store storage.Storage) SlugAllocator {
	return slugAllocator{
		randGen: randGen,
		store:   store,
	}
}

// Allocate validates targetURL, resolves a unique slug and persists the
// mapping. The candidate slug is customSlug when given, otherwise a random
// one. On collision a custom slug is retried with a random suffix, a
// generated slug is replaced with a fresh one. The store is the final
// arbiter of uniqueness: an insert conflict counts as a collision too.
func (service slugAllocator) Allocate(ctx context.Context, targetURL, customSlug string) (models.Mapping, error) {
	if err := validateTargetURL(targetURL); err != nil {
		return models.Mapping{}, err
	}

	slug := customSlug
	if slug == "" {
		var err error
		slug, err = service.randGen.Call(SlugLen)
		if err != nil {
			return models.Mapping{}, fmt.Errorf("failed to generate slug: %w", err)
		}
	}

	for attempts := 0; attempts < maxAllocateAttempts; attempts++ {
		_, err := service.store.FindBySlug(ctx, slug)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return models.Mapping{}, err
		}

		if errors.Is(err, storage.ErrNotFound) {
			mapping := models.Mapping{Slug: slug, TargetURL: targetURL}
			err = service.store.Save(ctx, mapping)
			if err == nil {
				return mapping, nil
			}

			var takenErr *storage.ErrSlugTaken
			if !errors.As(err, &takenErr) {
				return models.Mapping{}, err
			}
		}

		slug, err = service.nextCandidate(customSlug)
		if err != nil {
			return models.Mapping{}, err
		}
	}

	return models.Mapping{}, ErrSlugExhausted
}

func (service slugAllocator) nextCandidate(customSlug string) (string, error) {
	if customSlug != "" {
		suffix, err := service.randGen.Call(SuffixLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate slug suffix: %w", err)
		}

		return customSlug + "-" + suffix, nil
	}

	slug, err := service.randGen.Call(SlugLen)
	if err != nil {
		return "", fmt.Errorf("failed to generate slug: %w", err)
	}

	return slug, nil
}

func validateTargetURL(targetURL string) error {
	if targetURL == "" {
		return ErrURLRequired
	}

	parsed, err := url.Parse(targetURL)
	if err != nil || !parsed.IsAbs() || (parsed.Host == "" && parsed.Opaque == "") {
		return ErrInvalidURL
	}

	return nil
}
