package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/jackc/pgx/v5"

	"slugline/internal/app/configs"
	"slugline/internal/app/storage"
)

type Handlers struct {
	config configs.Config
	store  storage.Storage
}

func NewHandlers(
	config configs.Config,
	store storage.Storage) Handlers {

	return Handlers{
		config: config,
		store:  store,
	}
}

func (h Handlers) PingDB(w http.ResponseWriter, r *http.Request) {
	conn, err := pgx.Connect(context.Background(), h.config.DatabaseDSN)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(err.Error()))
		return
	}

	defer conn.Close(context.Background())
	w.WriteHeader(http.StatusOK)
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Details string `json:"details,omitempty"`
}

func renderJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// shortURLBase returns the origin short URLs are built from: the configured
// base address when set, the request origin otherwise.
func (h Handlers) shortURLBase(r *http.Request) string {
	if h.config.BaseURL != "" {
		return h.config.BaseURL
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	return scheme + "://" + r.Host
}
