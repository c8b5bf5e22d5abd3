package usecase

import (
	"context"
	"os"
)

// GetFile serves any sandbox-relative path read-only. Traversal outside the
// root is rejected before touching the filesystem.
func (u *Usecase) GetFile(ctx context.Context, rel string) ([]byte, error) {
	data, err := u.storage.ReadFile(ctx, rel)
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}
