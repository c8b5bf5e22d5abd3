package usecase

import "context"

// ExportAssets runs the version-control export under the mutation lock so
// the tree cannot change mid-commit. Output and errors pass through
// verbatim.
func (u *Usecase) ExportAssets(ctx context.Context, message string) (string, error) {
	ctx, span := u.tracer.Start(ctx, "usecase.export_assets")
	defer span.End()

	if message == "" {
		message = "Update game assets"
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	return u.exporter.Export(ctx, message)
}
