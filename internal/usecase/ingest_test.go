package usecase

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/skinvault/skinvault/internal/filestorage"
	"github.com/skinvault/skinvault/internal/manifest"
	"github.com/skinvault/skinvault/internal/scanner"
)

type stubExporter struct {
	calls    int
	lastMsg  string
	exportFn func(context.Context, string) (string, error)
}

func (s *stubExporter) Export(ctx context.Context, msg string) (string, error) {
	s.calls++
	s.lastMsg = msg
	if s.exportFn != nil {
		return s.exportFn(ctx, msg)
	}
	return "ok", nil
}

func newTestUsecase(t *testing.T) (*Usecase, *filestorage.LocalStorage, *stubExporter) {
	t.Helper()
	storage, err := filestorage.NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	store := manifest.NewStore(
		filepath.Join(storage.Root(), "manifest.json"),
		scanner.New(storage.Root()),
		"/files/Previews",
	)
	if _, err := store.Load(); err != nil {
		t.Fatal(err)
	}
	exporter := &stubExporter{}
	return New(storage, store, exporter), storage, exporter
}

func mustNotExist(t *testing.T, storage *filestorage.LocalStorage, rel string) {
	t.Helper()
	if _, err := storage.Stat(rel); !os.IsNotExist(err) {
		t.Fatalf("%s exists (or Stat failed oddly: %v), want absent", rel, err)
	}
}

func mustExist(t *testing.T, storage *filestorage.LocalStorage, rel string) {
	t.Helper()
	if _, err := storage.Stat(rel); err != nil {
		t.Fatalf("%s missing: %v", rel, err)
	}
}

func TestUploadSkinWritesFileAndPreview(t *testing.T) {
	u, storage, _ := newTestUsecase(t)

	rel, err := u.UploadSkin(context.Background(), UploadSkinOption{
		Weapon:   "ar",
		Filename: "Dragon.png",
		Data:     []byte("texture-bytes"),
		Preview:  []byte("preview-bytes"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if rel != "Skins/AR/Dragon.png" {
		t.Fatalf("rel = %q", rel)
	}
	mustExist(t, storage, "Skins/AR/Dragon.png")
	mustExist(t, storage, "Previews/skin-ar-dragon.webp")

	m := u.GetManifest(context.Background())
	if len(m.Assets) != 1 || m.Assets[0].ID != "skin-ar-dragon" {
		t.Fatalf("manifest after upload = %+v", m.Assets)
	}
	if m.Assets[0].Preview != "Previews/skin-ar-dragon.webp" {
		t.Fatalf("preview = %q", m.Assets[0].Preview)
	}
}

func TestUploadSkinRejectsUnknownWeaponBeforeAnyWrite(t *testing.T) {
	u, storage, _ := newTestUsecase(t)

	_, err := u.UploadSkin(context.Background(), UploadSkinOption{
		Weapon:   "rifle",
		Filename: "Dragon.png",
		Data:     []byte("x"),
	})
	var ve ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	mustNotExist(t, storage, "Skins/AR/Dragon.png")
	if m := u.GetManifest(context.Background()); len(m.Assets) != 0 {
		t.Fatalf("manifest mutated on validation failure: %+v", m.Assets)
	}
}

func TestUploadSkinRequiresFile(t *testing.T) {
	u, _, _ := newTestUsecase(t)
	_, err := u.UploadSkin(context.Background(), UploadSkinOption{Weapon: "ar"})
	var ve ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

func TestUploadSkinSanitizesFilename(t *testing.T) {
	u, storage, _ := newTestUsecase(t)

	rel, err := u.UploadSkin(context.Background(), UploadSkinOption{
		Weapon:   "smg",
		Filename: "../../evil.png",
		Data:     []byte("x"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if rel != "Skins/SMG/evil.png" {
		t.Fatalf("rel = %q", rel)
	}
	mustExist(t, storage, "Skins/SMG/evil.png")
}

func TestUploadModelWritesTextureAndPreview(t *testing.T) {
	u, storage, _ := newTestUsecase(t)

	rel, err := u.UploadModel(context.Background(), UploadModelOption{
		Weapon:          "awp",
		Filename:        "Scoped.glb",
		Data:            []byte("model"),
		TextureFilename: "skin.jpg",
		Texture:         []byte("texture"),
		Preview:         []byte("preview"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if rel != "Models/AWP/Scoped.glb" {
		t.Fatalf("rel = %q", rel)
	}
	mustExist(t, storage, "Models/AWP/Scoped.glb")
	mustExist(t, storage, "Models/AWP/Scoped_tex.jpg")
	mustExist(t, storage, "Previews/model-awp-scoped.webp")

	m := u.GetManifest(context.Background())
	if len(m.Assets) != 1 {
		t.Fatalf("assets = %+v", m.Assets)
	}
	a := m.Assets[0]
	if a.Texture != "Models/AWP/Scoped_tex.jpg" {
		t.Fatalf("texture = %q", a.Texture)
	}
	if a.Preview != "Previews/model-awp-scoped.webp" {
		t.Fatalf("preview = %q", a.Preview)
	}
}

func TestUploadModelRejectsNonImageTexture(t *testing.T) {
	u, storage, _ := newTestUsecase(t)

	_, err := u.UploadModel(context.Background(), UploadModelOption{
		Weapon:          "ar",
		Filename:        "Foo.glb",
		Data:            []byte("model"),
		TextureFilename: "notes.txt",
		Texture:         []byte("not an image"),
	})
	var ve ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	mustNotExist(t, storage, "Models/AR/Foo.glb")
	mustNotExist(t, storage, "Models/AR/Foo_tex.txt")
}

func TestUploadModelRejectsNonModelFile(t *testing.T) {
	u, _, _ := newTestUsecase(t)
	_, err := u.UploadModel(context.Background(), UploadModelOption{
		Weapon:   "ar",
		Filename: "notamodel.png",
		Data:     []byte("x"),
	})
	var ve ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

func TestUploadSpecial(t *testing.T) {
	u, storage, _ := newTestUsecase(t)

	rel, err := u.UploadSpecial(context.Background(), UploadSpecialOption{
		Filename: "Crate.png",
		Data:     []byte("x"),
		Preview:  []byte("p"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if rel != "Special/Crate.png" {
		t.Fatalf("rel = %q", rel)
	}
	mustExist(t, storage, "Previews/special-crate.webp")

	m := u.GetManifest(context.Background())
	if len(m.Assets) != 1 || m.Assets[0].Weapon != "" {
		t.Fatalf("assets = %+v", m.Assets)
	}
}

func TestSavePreviewBackfillsWithoutTouchingPrimary(t *testing.T) {
	u, storage, _ := newTestUsecase(t)

	if _, err := u.UploadSkin(context.Background(), UploadSkinOption{
		Weapon:   "ar",
		Filename: "Dragon.png",
		Data:     []byte("original"),
	}); err != nil {
		t.Fatal(err)
	}

	rel, err := u.SavePreview(context.Background(), SavePreviewOption{
		Type:    "skin",
		Name:    "Dragon",
		Weapon:  "ar",
		Preview: []byte("new-preview"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if rel != "Previews/skin-ar-dragon.webp" {
		t.Fatalf("rel = %q", rel)
	}

	data, err := storage.ReadFile(context.Background(), "Skins/AR/Dragon.png")
	if err != nil || string(data) != "original" {
		t.Fatalf("primary file touched: %q %v", data, err)
	}
	m := u.GetManifest(context.Background())
	if m.Assets[0].Preview != "Previews/skin-ar-dragon.webp" {
		t.Fatalf("preview = %q", m.Assets[0].Preview)
	}
}

func TestSavePreviewValidation(t *testing.T) {
	u, _, _ := newTestUsecase(t)
	ctx := context.Background()

	cases := []SavePreviewOption{
		{Type: "sticker", Name: "X", Preview: []byte("p")},             // unknown type
		{Type: "skin", Name: "X", Preview: []byte("p")},                // missing weapon
		{Type: "model", Name: "X", Weapon: "bow", Preview: []byte("p")}, // unknown weapon
		{Type: "special", Name: "", Preview: []byte("p")},              // missing name
		{Type: "special", Name: "X"},                                   // missing preview
	}
	for i, opt := range cases {
		_, err := u.SavePreview(ctx, opt)
		var ve ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("case %d: err = %v, want ValidationError", i, err)
		}
	}
}

func TestExportAssetsPassesThrough(t *testing.T) {
	u, _, exporter := newTestUsecase(t)

	out, err := u.ExportAssets(context.Background(), "publish batch 7")
	if err != nil || out != "ok" {
		t.Fatalf("ExportAssets = %q, %v", out, err)
	}
	if exporter.calls != 1 || exporter.lastMsg != "publish batch 7" {
		t.Fatalf("exporter saw %d calls, msg %q", exporter.calls, exporter.lastMsg)
	}

	exporter.exportFn = func(context.Context, string) (string, error) {
		return "remote rejected", errors.New("git push: exit status 1")
	}
	out, err = u.ExportAssets(context.Background(), "")
	if err == nil {
		t.Fatal("want pass-through failure")
	}
	if out != "remote rejected" {
		t.Fatalf("output = %q", out)
	}
	if exporter.lastMsg == "" {
		t.Fatal("empty message should get a default")
	}
}
