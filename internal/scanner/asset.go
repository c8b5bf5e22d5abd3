package scanner

import (
	"path"
	"strings"
)

type AssetType string

const (
	TypeSkin    AssetType = "skin"
	TypeModel   AssetType = "model"
	TypeSpecial AssetType = "special"
)

func IsAssetType(s string) bool {
	switch AssetType(s) {
	case TypeSkin, TypeModel, TypeSpecial:
		return true
	}
	return false
}

type Weapon string

const (
	WeaponAR      Weapon = "ar"
	WeaponAWP     Weapon = "awp"
	WeaponShotgun Weapon = "shotgun"
	WeaponSMG     Weapon = "smg"
)

func Weapons() []Weapon {
	return []Weapon{WeaponAR, WeaponAWP, WeaponShotgun, WeaponSMG}
}

func IsWeapon(s string) bool {
	switch Weapon(s) {
	case WeaponAR, WeaponAWP, WeaponShotgun, WeaponSMG:
		return true
	}
	return false
}

// Asset is one discovered or uploaded item. Companion files (texture,
// preview) are linked purely by filename convention; nothing beyond the
// names below is persisted about the relationship.
type Asset struct {
	ID          string    `json:"id"`
	Type        AssetType `json:"type"`
	Weapon      Weapon    `json:"weapon,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	File        string    `json:"file"`
	Texture     string    `json:"texture,omitempty"`
	Preview     string    `json:"preview,omitempty"`
	Size        int64     `json:"size"`
	Required    bool      `json:"required"`
}

// Category maps one scan key to a folder under the sandbox root.
type Category struct {
	Key    string
	Type   AssetType
	Weapon Weapon // empty for special
	Dir    string
	Exts   []string
}

const (
	PreviewDir      = "Previews"
	SpecialDir      = "Special"
	DefaultModelDir = "DefaultModels"
)

// ImageExts is the image extension allowlist. Order matters: companion
// texture lookup takes the first extension that exists on disk.
var ImageExts = []string{".png", ".jpg", ".jpeg", ".webp", ".gif"}

var ModelExts = []string{".glb", ".gltf"}

var weaponDirs = map[Weapon]string{
	WeaponAR:      "AR",
	WeaponAWP:     "AWP",
	WeaponShotgun: "Shotgun",
	WeaponSMG:     "SMG",
}

func SkinDir(w Weapon) string { return path.Join("Skins", weaponDirs[w]) }

func ModelDir(w Weapon) string { return path.Join("Models", weaponDirs[w]) }

// Categories returns the fixed scan table: one skin and one model category
// per weapon, plus the special folder.
func Categories() []Category {
	cats := make([]Category, 0, len(weaponDirs)*2+1)
	for _, w := range Weapons() {
		cats = append(cats, Category{
			Key:    "skin-" + string(w),
			Type:   TypeSkin,
			Weapon: w,
			Dir:    SkinDir(w),
			Exts:   ImageExts,
		})
	}
	for _, w := range Weapons() {
		cats = append(cats, Category{
			Key:    "model-" + string(w),
			Type:   TypeModel,
			Weapon: w,
			Dir:    ModelDir(w),
			Exts:   ModelExts,
		})
	}
	cats = append(cats, Category{
		Key:  "special",
		Type: TypeSpecial,
		Dir:  SpecialDir,
		Exts: ImageExts,
	})
	return cats
}

// AssetID derives the manifest id: <type>-[<weapon>-]<lowercased name>.
func AssetID(t AssetType, w Weapon, name string) string {
	if w == "" {
		return string(t) + "-" + strings.ToLower(name)
	}
	return string(t) + "-" + string(w) + "-" + strings.ToLower(name)
}

// PreviewName derives the dedicated preview filename inside PreviewDir.
func PreviewName(t AssetType, w Weapon, name string) string {
	return AssetID(t, w, name) + ".webp"
}

// TextureName derives the companion texture filename for a model base name.
func TextureName(modelBase, ext string) string {
	return modelBase + "_tex" + ext
}

// BaseName strips the directory and extension from a filename.
func BaseName(filename string) string {
	base := path.Base(filename)
	return strings.TrimSuffix(base, path.Ext(base))
}

// HasExt reports whether the filename carries one of the given extensions,
// compared case-insensitively.
func HasExt(filename string, exts []string) bool {
	ext := strings.ToLower(path.Ext(filename))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

func describe(t AssetType, w Weapon, name string) string {
	switch t {
	case TypeSkin:
		return name + " (" + strings.ToUpper(string(w)) + " skin)"
	case TypeModel:
		return name + " (" + strings.ToUpper(string(w)) + " model)"
	default:
		return name + " (special)"
	}
}
