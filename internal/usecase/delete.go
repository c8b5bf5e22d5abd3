package usecase

import (
	"context"
	"os"
	"path"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/skinvault/skinvault/internal/scanner"
)

// DeleteAsset removes a primary asset file plus its derived companions and
// preview, then regenerates the manifest. Companion and preview deletions
// that find nothing are no-ops. The cascade is not transactional: a failure
// deleting the primary after companions are gone leaves the tree for the
// next regeneration to reconcile.
func (u *Usecase) DeleteAsset(ctx context.Context, rel string) error {
	ctx, span := u.tracer.Start(ctx, "usecase.delete_asset")
	defer span.End()

	rel = path.Clean(strings.ReplaceAll(rel, "\\", "/"))
	span.SetAttributes(attribute.String("file", rel))

	// Sandbox check first, before any existence probe.
	if _, err := u.storage.Resolve(rel); err != nil {
		return err
	}
	if _, err := u.storage.Stat(rel); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return err
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	dir := path.Dir(rel)
	base := scanner.BaseName(rel)

	if scanner.HasExt(rel, scanner.ModelExts) {
		for _, ext := range scanner.ImageExts {
			u.removeIfPresent(ctx, path.Join(dir, scanner.TextureName(base, ext)))
		}
	}
	if name, ok := previewNameFor(rel, base); ok {
		u.removeIfPresent(ctx, path.Join(scanner.PreviewDir, name))
	}
	if err := u.storage.Remove(ctx, rel); err != nil {
		return err
	}
	_, err := u.store.Regenerate(ctx)
	return err
}

// previewNameFor derives the expected preview filename from the primary
// file's position in the tree: model folders, then the special folder, then
// skin folders. First match wins.
func previewNameFor(rel, base string) (string, bool) {
	for _, w := range scanner.Weapons() {
		if under(rel, scanner.ModelDir(w)) {
			return scanner.PreviewName(scanner.TypeModel, w, base), true
		}
	}
	if under(rel, scanner.SpecialDir) {
		return scanner.PreviewName(scanner.TypeSpecial, "", base), true
	}
	for _, w := range scanner.Weapons() {
		if under(rel, scanner.SkinDir(w)) {
			return scanner.PreviewName(scanner.TypeSkin, w, base), true
		}
	}
	return "", false
}

func under(rel, dir string) bool {
	return strings.HasPrefix(rel, dir+"/")
}

// removeIfPresent deletes a companion file, treating absence as a no-op.
// The primary delete decides the outcome of the cascade.
func (u *Usecase) removeIfPresent(ctx context.Context, rel string) {
	_ = u.storage.Remove(ctx, rel)
}
