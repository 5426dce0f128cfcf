package storage_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slugline/internal/app/models"
	"slugline/internal/app/storage"
)

func TestMapStorageSaveAndFind(t *testing.T) {
	ctx := context.Background()
	ms := storage.NewMapStorage(nil)

	mapping := models.Mapping{Slug: "abc12345", TargetURL: "http://example.com"}
	require.NoError(t, ms.Save(ctx, mapping))

	found, err := ms.FindBySlug(ctx, "abc12345")
	require.NoError(t, err)
	assert.Equal(t, "http://example.com", found.TargetURL)
	assert.False(t, found.CreatedAt.IsZero())
	assert.Nil(t, found.LastAccessedAt)

	_, err = ms.FindBySlug(ctx, "missing1")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	var takenErr *storage.ErrSlugTaken
	err = ms.Save(ctx, models.Mapping{Slug: "abc12345", TargetURL: "http://other.com"})
	require.ErrorAs(t, err, &takenErr)
	assert.Equal(t, "abc12345", takenErr.Slug)

	// target URL must not change on conflicting save
	found, err = ms.FindBySlug(ctx, "abc12345")
	require.NoError(t, err)
	assert.Equal(t, "http://example.com", found.TargetURL)
}

func TestMapStorageTrackAccess(t *testing.T) {
	ctx := context.Background()
	ms := storage.NewMapStorage(nil)
	require.NoError(t, ms.Save(ctx, models.Mapping{Slug: "abc12345", TargetURL: "http://example.com"}))

	at := time.Now()
	require.NoError(t, ms.TrackAccess(ctx, "abc12345", at))
	require.NoError(t, ms.TrackAccess(ctx, "abc12345", at.Add(time.Second)))

	found, err := ms.FindBySlug(ctx, "abc12345")
	require.NoError(t, err)
	assert.Equal(t, int64(2), found.Clicks)
	require.NotNil(t, found.LastAccessedAt)
	assert.Equal(t, at.Add(time.Second), *found.LastAccessedAt)

	assert.ErrorIs(t, ms.TrackAccess(ctx, "missing1", at), storage.ErrNotFound)
}

func TestMapStorageConcurrentSave(t *testing.T) {
	ctx := context.Background()
	ms := storage.NewMapStorage(nil)

	const workers = 16
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- ms.Save(ctx, models.Mapping{Slug: "mylink", TargetURL: "http://example.com"})
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		var takenErr *storage.ErrSlugTaken
		assert.ErrorAs(t, err, &takenErr)
	}
	assert.Equal(t, 1, succeeded)
}

func TestFileStorageRoundTrip(t *testing.T) {
	ctx := context.Background()
	filePath := filepath.Join(t.TempDir(), "mappings.jsonl")
	fs := storage.NewFileStorage(filePath)

	ms := storage.NewMapStorage(fs)
	require.NoError(t, ms.Save(ctx, models.Mapping{Slug: "abc12345", TargetURL: "http://example.com"}))
	require.NoError(t, ms.Save(ctx, models.Mapping{Slug: "mylink", TargetURL: "http://other.com"}))
	require.NoError(t, ms.TrackAccess(ctx, "mylink", time.Now()))
	require.NoError(t, ms.Dump())

	snapshot, err := fs.Snapshot()
	require.NoError(t, err)
	require.Len(t, snapshot, 2)

	restored := storage.NewMapStorage(fs)
	restored.Restore(snapshot)
	found, err := restored.FindBySlug(ctx, "mylink")
	require.NoError(t, err)
	assert.Equal(t, "http://other.com", found.TargetURL)
	assert.Equal(t, int64(1), found.Clicks)
	assert.NotNil(t, found.LastAccessedAt)
}
