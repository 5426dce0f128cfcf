package handlers_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slugline/internal/app/handlers"
	"slugline/internal/app/middlewares"
	"slugline/internal/app/models"
	"slugline/internal/app/storage"
	"slugline/internal/app/storage/mocks"
)

func TestRedirectHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	storageMock := mocks.NewMockStorage(ctrl)
	tracked := make(chan string, 1)
	gomock.InOrder(
		storageMock.EXPECT().
			FindBySlug(gomock.Any(), "abc12345").
			Return(models.Mapping{Slug: "abc12345", TargetURL: "http://example.com"}, nil),
		storageMock.EXPECT().
			FindBySlug(gomock.Any(), "missing1").
			Return(models.Mapping{}, storage.ErrNotFound),
		storageMock.EXPECT().
			FindBySlug(gomock.Any(), "broken12").
			Return(models.Mapping{}, errors.New("connection refused")),
	)
	storageMock.EXPECT().
		TrackAccess(gomock.Any(), "abc12345", gomock.Any()).
		Do(func(_ context.Context, slug string, _ time.Time) { tracked <- slug }).
		Return(nil)

	handler := handlers.NewHandlers(defaultConfig, storageMock)
	router := chi.NewRouter()
	router.Use(
		middlewares.ResponseLogger,
		middlewares.RequestLogger,
		middlewares.GzipCompress,
		middleware.AllowContentEncoding("gzip"),
	)
	router.Get("/{slug}", handler.Redirect)
	testServer := httptest.NewServer(router)
	defer testServer.Close()

	testCases := []struct {
		name     string
		path     string
		location string
		waitHit  bool
		want     want
	}{
		{
			name:     "responses with temporary redirect status",
			path:     "/abc12345",
			location: "http://example.com",
			waitHit:  true,
			want: want{
				code:        http.StatusTemporaryRedirect,
				response:    "<a href=\"http://example.com\">Temporary Redirect</a>.\n\n",
				contentType: "text/html; charset=utf-8",
			},
		},
		{
			name: "responses with not found if slug is unknown",
			path: "/missing1",
			want: want{
				code:        http.StatusNotFound,
				response:    toJSON(t, map[string]string{"error": "Short URL not found"}) + "\n",
				contentType: "application/json",
			},
		},
		{
			name: "responses with internal server error if store fails",
			path: "/broken12",
			want: want{
				code:        http.StatusInternalServerError,
				response:    toJSON(t, map[string]string{"error": "Internal server error"}) + "\n",
				contentType: "application/json",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			request, err := http.NewRequest(http.MethodGet, testServer.URL+tc.path, nil)
			require.NoError(t, err)
			request.Header.Set("Accept-Encoding", "identity")

			transport := http.Transport{}
			response, err := transport.RoundTrip(request)
			require.NoError(t, err)
			resBody, err := io.ReadAll(response.Body)
			defer func() {
				err = response.Body.Close()
				require.NoError(t, err)
			}()

			assert.Equal(t, tc.want.code, response.StatusCode)
			assert.NoError(t, err)
			assert.Equal(t, tc.want.response, string(resBody))
			assert.Equal(t, tc.want.contentType, response.Header.Get("Content-Type"))
			if tc.location != "" {
				assert.Equal(t, tc.location, response.Header.Get("Location"))
			}
			if tc.waitHit {
				select {
				case slug := <-tracked:
					assert.Equal(t, "abc12345", slug)
				case <-time.After(time.Second):
					t.Fatal("access was not tracked")
				}
			}
		})
	}
}
