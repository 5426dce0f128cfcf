package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"

	"slugline/internal/app/configs"
	"slugline/internal/app/handlers"
	"slugline/internal/app/logger"
	"slugline/internal/app/middlewares"
	"slugline/internal/app/services"
	"slugline/internal/app/storage"
)

var (
	buildVersion string = "N/A"
	buildDate    string = "N/A"
	buildCommit  string = "N/A"
)

func main() {
	config := configs.Parse()
	if err := logger.Initialize(config.LogLevel); err != nil {
		panic(err)
	}
	showBuildInfo()

	store := configureStorage(config)
	allocator := services.NewSlugAllocator(services.StdRandStringGenerator{}, store)
	startHTTPServer(config, store, allocator)
}

func startHTTPServer(
	config configs.Config,
	store storage.Storage,
	allocator services.SlugAllocator) {

	server := http.Server{
		Handler: configureRouter(store, config, allocator),
		Addr:    config.ServerAddress,
	}
	exit := make(chan os.Signal, 1)
	signal.Notify(exit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go onExit(exit, &server, store)

	var serveErr error
	if config.UseHTTPS() {
		manager := &autocert.Manager{
			Prompt: autocert.AcceptTOS,
		}
		server.TLSConfig = manager.TLSConfig()
		serveErr = server.ListenAndServeTLS("", "")
	} else {
		serveErr = server.ListenAndServe()
	}

	if serveErr != nil && serveErr != http.ErrServerClosed {
		panic(serveErr)
	}
}

func onExit(exit <-chan os.Signal, server *http.Server, s storage.Storage) {
	<-exit
	switch s := s.(type) {
	case *storage.MapStorage:
		err := s.Dump()
		if err != nil {
			logger.Log.Info("on exit error", zap.String("err", err.Error()))
		}
	case *storage.DBStorage:
		s.Close()
	}

	if err := server.Shutdown(context.TODO()); err != nil {
		logger.Log.Info("failed to shutdown", zap.Error(err))
	}
}

func configureRouter(
	store storage.Storage,
	config configs.Config,
	allocator services.SlugAllocator) chi.Router {

	router := chi.NewRouter()
	handlers := handlers.NewHandlers(config, store)
	router.Use(
		middlewares.ResponseLogger,
		middlewares.RequestLogger,
		middlewares.GzipCompress,
		middleware.AllowContentEncoding("gzip"),
	)
	router.Get("/ping", handlers.PingDB)
	router.Get("/{slug}", handlers.Redirect)
	router.Group(func(router chi.Router) {
		router.Use(middleware.AllowContentType("application/json", "application/x-gzip"))
		router.Post("/api/shorten", handlers.CreateShortURL(allocator))
	})
	router.Get("/api/urls/{slug}/stats", handlers.GetStats)

	return router
}

func configureStorage(config configs.Config) storage.Storage {
	var store storage.Storage
	if config.UseDBStorage() {
		var err error
		store, err = storage.NewDBStorage(config.DatabaseDSN)
		if err != nil {
			panic(err)
		}
	} else if config.UseFileStorage() {
		fs := storage.NewFileStorage(config.FileStoragePath)
		ms := storage.NewMapStorage(fs)
		mappings, err := fs.Snapshot()
		if err != nil {
			panic(err)
		}
		ms.Restore(mappings)
		dumper := services.NewStorageDumper(ms, 5*time.Second)
		dumper.Start()
		store = ms
	} else {
		store = storage.NewMapStorage(nil)
	}

	return store
}

func showBuildInfo() {
	logger.Log.Info("build info", zap.String("build version", buildVersion))
	logger.Log.Info("build info", zap.String("build date", buildDate))
	logger.Log.Info("build info", zap.String("build commit", buildCommit))
}
