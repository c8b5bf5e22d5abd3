package usecase

import (
	"context"
	"os"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/skinvault/skinvault/internal/manifest"
)

// Storage is the sandboxed file tree every mutation goes through.
type Storage interface {
	Root() string
	Resolve(rel string) (string, error)
	WriteFile(ctx context.Context, rel string, data []byte) error
	ReadFile(ctx context.Context, rel string) ([]byte, error)
	Remove(ctx context.Context, rel string) error
	Stat(rel string) (os.FileInfo, error)
	EnsureDir(rel string) error
}

// ManifestStore owns the persisted manifest document.
type ManifestStore interface {
	Current() manifest.Manifest
	Regenerate(ctx context.Context) (manifest.Manifest, error)
	Refresh(ctx context.Context) (manifest.Manifest, error)
	Subscribe() (<-chan manifest.Event, func())
}

// Exporter runs the external version-control export command.
type Exporter interface {
	Export(ctx context.Context, message string) (string, error)
}

func New(storage Storage, store ManifestStore, exporter Exporter) *Usecase {
	return &Usecase{
		storage:  storage,
		store:    store,
		exporter: exporter,
		tracer:   otel.Tracer("skinvault/usecase"),
	}
}

type Usecase struct {
	storage  Storage
	store    ManifestStore
	exporter Exporter

	// mu serializes every mutate-filesystem → regenerate → persist
	// sequence so concurrent uploads and deletes cannot interleave into
	// a lost manifest update.
	mu sync.Mutex

	tracer trace.Tracer
}
