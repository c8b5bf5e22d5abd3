package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	_ "github.com/joho/godotenv/autoload"

	"github.com/skinvault/skinvault/internal/config"
	"github.com/skinvault/skinvault/internal/filestorage"
	"github.com/skinvault/skinvault/internal/manifest"
	"github.com/skinvault/skinvault/internal/scanner"
	"github.com/skinvault/skinvault/internal/telemetry"
)

// The watcher keeps the manifest in sync when files land in the asset tree
// outside the API, e.g. artists copying textures over SMB. Events are
// debounced so a burst of copies triggers one regeneration.
const debounce = 500 * time.Millisecond

func main() {
	level := slog.LevelInfo
	if lvl := os.Getenv(config.ENV_KEY_LOG_LEVEL); lvl == "DEBUG" {
		level = slog.LevelDebug
	}
	jsonHandler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})
	logger := slog.New(telemetry.NewTraceHandler(jsonHandler))

	if err := run(logger); err != nil {
		logger.Error("watcher failed", slog.String("err", err.Error()))
		os.Exit(1)
	}
	logger.Info("Watcher exited properly")
}

func run(logger *slog.Logger) error {
	root := os.Getenv(config.ENV_KEY_ASSET_ROOT)
	if root == "" {
		root = config.DEFAULT_ASSET_ROOT
	}
	storage, err := filestorage.NewLocalStorage(root)
	if err != nil {
		return err
	}
	for _, dir := range []string{scanner.PreviewDir, scanner.DefaultModelDir} {
		if err := storage.EnsureDir(dir); err != nil {
			return err
		}
	}

	manifestPath := os.Getenv(config.ENV_KEY_MANIFEST_PATH)
	if manifestPath == "" {
		manifestPath = filepath.Join(storage.Root(), "manifest.json")
	}
	previewBaseURL := os.Getenv(config.ENV_KEY_PREVIEW_BASE_URL)
	if previewBaseURL == "" {
		previewBaseURL = config.DEFAULT_PREVIEW_BASE_URL
	}

	store := manifest.NewStore(manifestPath, scanner.New(storage.Root()), previewBaseURL)
	if _, err := store.Load(); err != nil {
		logger.Warn("manifest load failed, starting from default", slog.String("err", err.Error()))
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	for _, cat := range scanner.Categories() {
		dir := filepath.Join(storage.Root(), filepath.FromSlash(cat.Dir))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
		if err := watcher.Add(dir); err != nil {
			return err
		}
	}
	logger.Info("Watching asset tree", slog.String("root", storage.Root()))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	var (
		timer   = time.NewTimer(debounce)
		pending = false
	)
	timer.Stop()

	for {
		select {
		case <-quit:
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			logger.Debug("asset tree changed",
				slog.String("op", event.Op.String()),
				slog.String("file", event.Name),
			)
			pending = true
			timer.Reset(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", slog.String("err", err.Error()))

		case <-timer.C:
			if !pending {
				continue
			}
			pending = false
			m, err := store.Regenerate(context.Background())
			if err != nil {
				logger.Error("regeneration failed", slog.String("err", err.Error()))
				continue
			}
			logger.Info("manifest regenerated",
				slog.Int("assets", len(m.Assets)),
				slog.Time("updated", m.Updated),
			)
		}
	}
}

// relevant filters the event stream down to create/write/remove/rename of
// allowlisted asset files. Dotfiles and editor temp files are ignored.
func relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) &&
		!event.Has(fsnotify.Rename) {
		return false
	}
	base := filepath.Base(event.Name)
	if len(base) == 0 || base[0] == '.' || base[0] == '~' {
		return false
	}
	return scanner.HasExt(base, scanner.ImageExts) || scanner.HasExt(base, scanner.ModelExts)
}
