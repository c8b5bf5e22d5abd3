package usecase

import (
	"context"
	"path"
	"slices"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/skinvault/skinvault/internal/scanner"
)

type UploadSkinOption struct {
	Weapon   string
	Filename string
	Data     []byte
	Preview  []byte
}

// UploadSkin writes a skin texture into the weapon's skin folder, writes
// the optional preview under the derived name and regenerates the manifest.
// Validation happens before any write. Returns the stored relative path.
func (u *Usecase) UploadSkin(ctx context.Context, opt UploadSkinOption) (string, error) {
	ctx, span := u.tracer.Start(ctx, "usecase.upload_skin")
	defer span.End()

	if !scanner.IsWeapon(opt.Weapon) {
		return "", validationf("unknown weapon %q for skin upload", opt.Weapon)
	}
	filename := sanitizeFilename(opt.Filename)
	if filename == "" || len(opt.Data) == 0 {
		return "", validationf("skin upload requires a texture file")
	}
	if !scanner.HasExt(filename, scanner.ImageExts) {
		return "", validationf("skin file %q is not an allowed image type", filename)
	}

	weapon := scanner.Weapon(opt.Weapon)
	rel := path.Join(scanner.SkinDir(weapon), filename)
	span.SetAttributes(attribute.String("file", rel))

	u.mu.Lock()
	defer u.mu.Unlock()

	if err := u.storage.WriteFile(ctx, rel, opt.Data); err != nil {
		return "", err
	}
	if len(opt.Preview) > 0 {
		name := scanner.PreviewName(scanner.TypeSkin, weapon, scanner.BaseName(filename))
		if err := u.storage.WriteFile(ctx, path.Join(scanner.PreviewDir, name), opt.Preview); err != nil {
			return "", err
		}
	}
	if _, err := u.store.Regenerate(ctx); err != nil {
		return "", err
	}
	return rel, nil
}

type UploadModelOption struct {
	Weapon          string
	Filename        string
	Data            []byte
	TextureFilename string
	Texture         []byte
	Preview         []byte
}

// UploadModel writes a model file into the weapon's model folder. An
// optional texture lands alongside it as <base>_tex.<ext>; an optional
// preview lands under the derived model-preview name.
func (u *Usecase) UploadModel(ctx context.Context, opt UploadModelOption) (string, error) {
	ctx, span := u.tracer.Start(ctx, "usecase.upload_model")
	defer span.End()

	if !scanner.IsWeapon(opt.Weapon) {
		return "", validationf("unknown weapon %q for model upload", opt.Weapon)
	}
	filename := sanitizeFilename(opt.Filename)
	if filename == "" || len(opt.Data) == 0 {
		return "", validationf("model upload requires a model file")
	}
	if !scanner.HasExt(filename, scanner.ModelExts) {
		return "", validationf("model file %q is not an allowed model type", filename)
	}
	var texExt string
	if len(opt.Texture) > 0 {
		texExt = strings.ToLower(path.Ext(sanitizeFilename(opt.TextureFilename)))
		if texExt == "" {
			texExt = ".png"
		}
		if !slices.Contains(scanner.ImageExts, texExt) {
			return "", validationf("texture file %q is not an allowed image type", opt.TextureFilename)
		}
	}

	weapon := scanner.Weapon(opt.Weapon)
	dir := scanner.ModelDir(weapon)
	base := scanner.BaseName(filename)
	rel := path.Join(dir, filename)
	span.SetAttributes(attribute.String("file", rel))

	u.mu.Lock()
	defer u.mu.Unlock()

	if err := u.storage.WriteFile(ctx, rel, opt.Data); err != nil {
		return "", err
	}
	if len(opt.Texture) > 0 {
		tex := path.Join(dir, scanner.TextureName(base, texExt))
		if err := u.storage.WriteFile(ctx, tex, opt.Texture); err != nil {
			return "", err
		}
	}
	if len(opt.Preview) > 0 {
		name := scanner.PreviewName(scanner.TypeModel, weapon, base)
		if err := u.storage.WriteFile(ctx, path.Join(scanner.PreviewDir, name), opt.Preview); err != nil {
			return "", err
		}
	}
	if _, err := u.store.Regenerate(ctx); err != nil {
		return "", err
	}
	return rel, nil
}

type UploadSpecialOption struct {
	Filename string
	Data     []byte
	Preview  []byte
}

// UploadSpecial writes an image into the special folder. No weapon concept.
func (u *Usecase) UploadSpecial(ctx context.Context, opt UploadSpecialOption) (string, error) {
	ctx, span := u.tracer.Start(ctx, "usecase.upload_special")
	defer span.End()

	filename := sanitizeFilename(opt.Filename)
	if filename == "" || len(opt.Data) == 0 {
		return "", validationf("special upload requires an image file")
	}
	if !scanner.HasExt(filename, scanner.ImageExts) {
		return "", validationf("special file %q is not an allowed image type", filename)
	}

	rel := path.Join(scanner.SpecialDir, filename)
	span.SetAttributes(attribute.String("file", rel))

	u.mu.Lock()
	defer u.mu.Unlock()

	if err := u.storage.WriteFile(ctx, rel, opt.Data); err != nil {
		return "", err
	}
	if len(opt.Preview) > 0 {
		name := scanner.PreviewName(scanner.TypeSpecial, "", scanner.BaseName(filename))
		if err := u.storage.WriteFile(ctx, path.Join(scanner.PreviewDir, name), opt.Preview); err != nil {
			return "", err
		}
	}
	if _, err := u.store.Regenerate(ctx); err != nil {
		return "", err
	}
	return rel, nil
}

type SavePreviewOption struct {
	Type    string
	Name    string
	Weapon  string
	Preview []byte
}

// SavePreview backfills or replaces a preview without touching the primary
// asset. Skin and model previews need the weapon to derive the name.
func (u *Usecase) SavePreview(ctx context.Context, opt SavePreviewOption) (string, error) {
	ctx, span := u.tracer.Start(ctx, "usecase.save_preview")
	defer span.End()

	if !scanner.IsAssetType(opt.Type) {
		return "", validationf("unknown asset type %q for preview", opt.Type)
	}
	if opt.Name == "" || len(opt.Preview) == 0 {
		return "", validationf("preview save requires a name and a preview image")
	}

	t := scanner.AssetType(opt.Type)
	var weapon scanner.Weapon
	if t != scanner.TypeSpecial {
		if !scanner.IsWeapon(opt.Weapon) {
			return "", validationf("unknown weapon %q for %s preview", opt.Weapon, opt.Type)
		}
		weapon = scanner.Weapon(opt.Weapon)
	}

	rel := path.Join(scanner.PreviewDir, scanner.PreviewName(t, weapon, scanner.BaseName(opt.Name)))
	span.SetAttributes(attribute.String("file", rel))

	u.mu.Lock()
	defer u.mu.Unlock()

	if err := u.storage.WriteFile(ctx, rel, opt.Preview); err != nil {
		return "", err
	}
	if _, err := u.store.Regenerate(ctx); err != nil {
		return "", err
	}
	return rel, nil
}

// sanitizeFilename strips any directory component a client smuggled into
// the multipart filename.
func sanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	base := path.Base(name)
	if base == "." || base == "/" {
		return ""
	}
	return base
}
