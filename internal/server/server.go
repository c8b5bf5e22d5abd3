package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"

	"github.com/skinvault/skinvault/internal/config"
	"github.com/skinvault/skinvault/internal/export"
	"github.com/skinvault/skinvault/internal/filestorage"
	"github.com/skinvault/skinvault/internal/manifest"
	"github.com/skinvault/skinvault/internal/scanner"
	"github.com/skinvault/skinvault/internal/telemetry"
	"github.com/skinvault/skinvault/internal/usecase"
)

// Service is the domain surface the handlers talk to.
type Service interface {
	// Health returns a map of health status information.
	Health() map[string]string

	GetManifest(context.Context) manifest.Manifest
	RefreshManifest(context.Context) (manifest.Manifest, error)
	StreamManifestEvents(context.Context) (<-chan manifest.Event, func())

	UploadSkin(context.Context, usecase.UploadSkinOption) (string, error)
	UploadModel(context.Context, usecase.UploadModelOption) (string, error)
	UploadSpecial(context.Context, usecase.UploadSpecialOption) (string, error)
	SavePreview(context.Context, usecase.SavePreviewOption) (string, error)
	DeleteAsset(context.Context, string) error

	GetFile(context.Context, string) ([]byte, error)
	ExportAssets(context.Context, string) (string, error)
}

type Server struct {
	port int

	server    Service
	validator *validator.Validate
	logger    *slog.Logger
}

// App bundles the HTTP server with the telemetry shutdown hook.
type App struct {
	srv               *http.Server
	shutdownTelemetry func(context.Context) error
}

func NewApp() (*App, error) {
	logger := newLogger()

	shutdownTelemetry, err := telemetry.Init(context.Background(), "skinvault")
	if err != nil {
		return nil, fmt.Errorf("init telemetry: %w", err)
	}

	root := getenv(config.ENV_KEY_ASSET_ROOT, config.DEFAULT_ASSET_ROOT)
	storage, err := filestorage.NewLocalStorage(root)
	if err != nil {
		return nil, err
	}
	for _, dir := range []string{scanner.PreviewDir, scanner.DefaultModelDir} {
		if err := storage.EnsureDir(dir); err != nil {
			return nil, err
		}
	}

	manifestPath := os.Getenv(config.ENV_KEY_MANIFEST_PATH)
	if manifestPath == "" {
		manifestPath = filepath.Join(storage.Root(), "manifest.json")
	}

	sc := scanner.New(storage.Root())
	store := manifest.NewStore(
		manifestPath,
		sc,
		getenv(config.ENV_KEY_PREVIEW_BASE_URL, config.DEFAULT_PREVIEW_BASE_URL),
	)
	if _, err := store.Load(); err != nil {
		logger.Warn("manifest load failed, starting from default", slog.String("err", err.Error()))
	}

	exporter := export.NewGitExporter(
		storage.Root(),
		getenv(config.ENV_KEY_EXPORT_REMOTE, config.DEFAULT_EXPORT_REMOTE),
		getenv(config.ENV_KEY_EXPORT_BRANCH, config.DEFAULT_EXPORT_BRANCH),
	)

	sv := usecase.New(storage, store, exporter)

	port, _ := strconv.Atoi(getenv(config.ENV_KEY_PORT, strconv.Itoa(config.DEFAULT_PORT)))
	s := &Server{
		port:      port,
		server:    sv,
		validator: validator.New(),
		logger:    logger,
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	return &App{srv: srv, shutdownTelemetry: shutdownTelemetry}, nil
}

func (a *App) Addr() string { return a.srv.Addr }

func (a *App) ListenAndServe() error { return a.srv.ListenAndServe() }

func (a *App) Shutdown(ctx context.Context) error {
	if err := a.srv.Shutdown(ctx); err != nil {
		return err
	}
	return a.shutdownTelemetry(ctx)
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	switch os.Getenv(config.ENV_KEY_LOG_LEVEL) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	}
	jsonHandler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})
	return slog.New(telemetry.NewTraceHandler(jsonHandler))
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
