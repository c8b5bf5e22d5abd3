package scanner

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Scanner walks the configured category folders under a sandbox root and
// produces the Assets currently present. It performs reads only.
type Scanner struct {
	root string
}

func New(root string) *Scanner {
	return &Scanner{root: root}
}

// Scan lists every category folder, filters entries by the category's
// extension allowlist and resolves companion files. Missing folders
// contribute nothing. Output order is not a contract; duplicate ids past
// the first occurrence are skipped so ids stay unique per generation.
func (s *Scanner) Scan(ctx context.Context, cats []Category) ([]Asset, error) {
	var (
		mu     sync.Mutex
		assets []Asset
	)

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, cat := range cats {
		g.Go(func() error {
			found, err := s.scanCategory(cat)
			if err != nil {
				return err
			}
			mu.Lock()
			assets = append(assets, found...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(assets))
	unique := assets[:0]
	for _, a := range assets {
		if seen[a.ID] {
			continue
		}
		seen[a.ID] = true
		unique = append(unique, a)
	}
	return unique, nil
}

func (s *Scanner) scanCategory(cat Category) ([]Asset, error) {
	dir := filepath.Join(s.root, filepath.FromSlash(cat.Dir))
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", cat.Key, err)
	}

	var assets []Asset
	for _, entry := range entries {
		if entry.IsDir() || !HasExt(entry.Name(), cat.Exts) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}

		base := BaseName(entry.Name())
		a := Asset{
			ID:          AssetID(cat.Type, cat.Weapon, base),
			Type:        cat.Type,
			Weapon:      cat.Weapon,
			Name:        base,
			Description: describe(cat.Type, cat.Weapon, base),
			File:        path.Join(cat.Dir, entry.Name()),
			Size:        info.Size(),
		}
		if cat.Type == TypeModel {
			a.Texture = s.findTexture(cat.Dir, base)
		}
		a.Preview = s.findPreview(cat, base, a.File)
		assets = append(assets, a)
	}
	return assets, nil
}

// findTexture resolves the model's companion texture by naming convention.
// The first allowlisted image extension present on disk wins.
func (s *Scanner) findTexture(dir, base string) string {
	for _, ext := range ImageExts {
		rel := path.Join(dir, TextureName(base, ext))
		if s.exists(rel) {
			return rel
		}
	}
	return ""
}

// findPreview resolves the preview in precedence order: the dedicated
// preview in PreviewDir, then a legacy same-folder image sharing the base
// name (models only), then the primary file itself for skins and specials.
func (s *Scanner) findPreview(cat Category, base, file string) string {
	dedicated := path.Join(PreviewDir, PreviewName(cat.Type, cat.Weapon, base))
	if s.exists(dedicated) {
		return dedicated
	}
	if cat.Type == TypeModel {
		for _, ext := range ImageExts {
			rel := path.Join(cat.Dir, base+ext)
			if s.exists(rel) {
				return rel
			}
		}
		return ""
	}
	return file
}

func (s *Scanner) exists(rel string) bool {
	_, err := os.Stat(filepath.Join(s.root, filepath.FromSlash(rel)))
	return err == nil
}
