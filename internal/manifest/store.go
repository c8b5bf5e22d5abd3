package manifest

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"github.com/skinvault/skinvault/internal/scanner"
)

// TreeScanner produces the asset list for one manifest generation.
type TreeScanner interface {
	Scan(ctx context.Context, cats []scanner.Category) ([]scanner.Asset, error)
}

// Store owns the manifest value and the file it is persisted to. Nothing
// else in the process touches either.
type Store struct {
	path           string
	scan           TreeScanner
	cats           []scanner.Category
	defaultBaseURL string

	mu      sync.Mutex
	current Manifest

	group singleflight.Group

	subMu sync.Mutex
	subs  map[chan Event]struct{}

	tracer trace.Tracer
}

func NewStore(path string, sc TreeScanner, defaultBaseURL string) *Store {
	return &Store{
		path:           path,
		scan:           sc,
		cats:           scanner.Categories(),
		defaultBaseURL: defaultBaseURL,
		subs:           make(map[chan Event]struct{}),
		tracer:         otel.Tracer("skinvault/manifest"),
	}
}

// Load reads the persisted manifest into memory. An absent or undecodable
// file yields the default manifest instead of an error; the returned error
// reports the decode failure for logging only.
func (s *Store) Load() (Manifest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		s.current = defaultManifest()
		if os.IsNotExist(err) {
			return s.current, nil
		}
		return s.current, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		s.current = defaultManifest()
		return s.current, fmt.Errorf("decode manifest: %w", err)
	}
	s.current = m
	return m, nil
}

func (s *Store) Current() Manifest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Regenerate re-scans every configured category, replaces the asset list
// wholesale, stamps a fresh timestamp and persists. A previously set
// previewBaseUrl is preserved; the default is filled in only when empty.
// Scan and persist run inside one critical section: the last persisted
// manifest always reflects the newest scan, never a stale one overtaken by
// a concurrent mutation. A persist failure propagates to the caller with no
// rollback of whatever filesystem mutation triggered the regeneration.
func (s *Store) Regenerate(ctx context.Context) (Manifest, error) {
	ctx, span := s.tracer.Start(ctx, "manifest.regenerate")
	defer span.End()

	s.mu.Lock()
	assets, err := s.scan.Scan(ctx, s.cats)
	if err != nil {
		s.mu.Unlock()
		return Manifest{}, err
	}
	span.SetAttributes(attribute.Int("assets", len(assets)))

	baseURL := s.current.PreviewBaseURL
	if baseURL == "" {
		baseURL = s.defaultBaseURL
	}
	m := Manifest{
		Version:        Version,
		Updated:        time.Now().UTC(),
		PreviewBaseURL: baseURL,
		Assets:         assets,
	}
	if err := s.persistLocked(m); err != nil {
		s.mu.Unlock()
		return Manifest{}, err
	}
	s.current = m
	s.mu.Unlock()

	s.publish(Event{
		ID:         uuid.NewString(),
		Type:       EventManifestUpdated,
		Updated:    m.Updated,
		AssetCount: len(m.Assets),
	})
	return m, nil
}

// Refresh coalesces concurrent manual regeneration requests into one scan.
func (s *Store) Refresh(ctx context.Context) (Manifest, error) {
	v, err, _ := s.group.Do("refresh", func() (any, error) {
		return s.Regenerate(ctx)
	})
	if err != nil {
		return Manifest{}, err
	}
	return v.(Manifest), nil
}

// persistLocked overwrites the manifest file in full via a temp file in the
// same directory followed by a rename, so a crash mid-write never leaves a
// truncated manifest behind.
func (s *Store) persistLocked(m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	tmp := filepath.Join(filepath.Dir(s.path), ".manifest-"+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace manifest: %w", err)
	}
	return nil
}

// Subscribe registers an event channel. Slow subscribers miss events rather
// than blocking regeneration.
func (s *Store) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 8)
	s.subMu.Lock()
	s.subs[ch] = struct{}{}
	s.subMu.Unlock()

	cancel := func() {
		s.subMu.Lock()
		if _, ok := s.subs[ch]; ok {
			delete(s.subs, ch)
			close(ch)
		}
		s.subMu.Unlock()
	}
	return ch, cancel
}

func (s *Store) publish(ev Event) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

func defaultManifest() Manifest {
	return Manifest{
		Version: Version,
		Updated: time.Now().UTC(),
		Assets:  []scanner.Asset{},
	}
}
