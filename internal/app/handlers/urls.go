package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"slugline/internal/app/logger"
	"slugline/internal/app/services"
	"slugline/internal/app/storage"
)

const trackAccessTimeout = 5 * time.Second

// Redirect to the target URL
func (h Handlers) Redirect(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	mapping, err := h.store.FindBySlug(r.Context(), slug)
	if errors.Is(err, storage.ErrNotFound) {
		renderJSON(w, http.StatusNotFound, errorResponse{Error: "Short URL not found"})
		return
	}
	if err != nil {
		logger.Log.Error("failed to resolve slug", zap.String("slug", slug), zap.Error(err))
		renderJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal server error"})
		return
	}

	// Best-effort click accounting: the redirect does not wait for it and
	// its failure never reaches the caller.
	go h.trackAccess(slug)

	http.RedirectHandler(mapping.TargetURL, http.StatusTemporaryRedirect).
		ServeHTTP(w, r)
}

func (h Handlers) trackAccess(slug string) {
	ctx, cancel := context.WithTimeout(context.Background(), trackAccessTimeout)
	defer cancel()

	if err := h.store.TrackAccess(ctx, slug, time.Now()); err != nil {
		logger.Log.Info("failed to track access",
			zap.String("slug", slug),
			zap.Error(err),
		)
	}
}

// Create short URL
func (h Handlers) CreateShortURL(allocator services.SlugAllocator) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var requestBody struct {
			URL  string `json:"url"`
			Slug string `json:"slug"`
		}
		if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
			h.renderCreateError(w, err)
			return
		}

		mapping, err := allocator.Allocate(r.Context(), requestBody.URL, requestBody.Slug)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrURLRequired), errors.Is(err, services.ErrInvalidURL):
				renderJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			case errors.Is(err, services.ErrSlugExhausted):
				renderJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
			default:
				logger.Log.Error("failed to create short URL", zap.Error(err))
				h.renderCreateError(w, err)
			}
			return
		}

		renderJSON(w, http.StatusOK, map[string]string{
			"slug":      mapping.Slug,
			"shortUrl":  h.shortURLBase(r) + "/" + mapping.Slug,
			"targetUrl": mapping.TargetURL,
		})
	}
}

// Unexpected allocation failures keep the client-facing error generic;
// outside production the response carries the cause and a stack trace.
func (h Handlers) renderCreateError(w http.ResponseWriter, err error) {
	response := errorResponse{
		Error:   "Internal server error",
		Message: err.Error(),
	}
	if !h.config.Production() {
		response.Details = string(debug.Stack())
	}

	renderJSON(w, http.StatusInternalServerError, response)
}

// Get short URL usage stats
func (h Handlers) GetStats(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	mapping, err := h.store.FindBySlug(r.Context(), slug)
	if errors.Is(err, storage.ErrNotFound) {
		renderJSON(w, http.StatusNotFound, errorResponse{Error: "Short URL not found"})
		return
	}
	if err != nil {
		logger.Log.Error("failed to fetch stats", zap.String("slug", slug), zap.Error(err))
		renderJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal server error"})
		return
	}

	response := map[string]interface{}{
		"slug":      mapping.Slug,
		"targetUrl": mapping.TargetURL,
		"clicks":    mapping.Clicks,
		"createdAt": mapping.CreatedAt,
	}
	if mapping.LastAccessedAt != nil {
		response["lastAccessedAt"] = *mapping.LastAccessedAt
	}
	renderJSON(w, http.StatusOK, response)
}
