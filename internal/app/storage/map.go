package storage

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"slugline/internal/app/logger"
	"slugline/internal/app/models"
)

// Inmemory storage
type MapStorage struct {
	mu       sync.RWMutex
	fs       *FileStorage
	mappings map[string]models.Mapping
}

// New inmemory storage
func NewMapStorage(fs *FileStorage) *MapStorage {
	return &MapStorage{
		mappings: make(map[string]models.Mapping),
		fs:       fs,
	}
}

// Find mapping by slug
func (ms *MapStorage) FindBySlug(ctx context.Context, slug string) (models.Mapping, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	m, ok := ms.mappings[slug]
	if !ok {
		return models.Mapping{}, ErrNotFound
	}

	return m, nil
}

// Save mapping
func (ms *MapStorage) Save(ctx context.Context, mapping models.Mapping) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if _, ok := ms.mappings[mapping.Slug]; ok {
		return NewErrSlugTaken(mapping.Slug)
	}

	if mapping.CreatedAt.IsZero() {
		mapping.CreatedAt = time.Now()
	}
	ms.mappings[mapping.Slug] = mapping

	return nil
}

// Increment click counter and set last access time
func (ms *MapStorage) TrackAccess(ctx context.Context, slug string, at time.Time) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	m, ok := ms.mappings[slug]
	if !ok {
		return ErrNotFound
	}

	m.Clicks++
	m.LastAccessedAt = &at
	ms.mappings[slug] = m

	return nil
}

func (ms *MapStorage) Close() {}

// Dump inmemory storage to file
func (ms *MapStorage) Dump() error {
	if ms.fs != nil {
		return ms.fs.Dump(ms)
	}

	return nil
}

// Restore inmemory storage from file
func (ms *MapStorage) Restore(mappings []models.Mapping) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	for _, m := range mappings {
		if _, ok := ms.mappings[m.Slug]; ok {
			logger.Log.Info("failed to restore", zap.String("slug", m.Slug))
			continue
		}
		ms.mappings[m.Slug] = m
	}
}

func (ms *MapStorage) snapshot() []models.Mapping {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	result := make([]models.Mapping, 0, len(ms.mappings))
	for _, m := range ms.mappings {
		result = append(result, m)
	}

	return result
}
