package usecase

import (
	"context"

	"github.com/skinvault/skinvault/internal/manifest"
)

func (u *Usecase) GetManifest(_ context.Context) manifest.Manifest {
	return u.store.Current()
}

// RefreshManifest regenerates on demand. The store serializes the
// scan-and-persist against every other regeneration and coalesces
// concurrent refresh requests into a single scan.
func (u *Usecase) RefreshManifest(ctx context.Context) (manifest.Manifest, error) {
	return u.store.Refresh(ctx)
}

func (u *Usecase) StreamManifestEvents(_ context.Context) (<-chan manifest.Event, func()) {
	return u.store.Subscribe()
}
