package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/skinvault/skinvault/internal/filestorage"
)

func TestDeleteModelCascade(t *testing.T) {
	u, storage, _ := newTestUsecase(t)
	ctx := context.Background()

	if _, err := u.UploadModel(ctx, UploadModelOption{
		Weapon:          "ar",
		Filename:        "Foo.glb",
		Data:            []byte("model"),
		TextureFilename: "t.png",
		Texture:         []byte("texture"),
		Preview:         []byte("preview"),
	}); err != nil {
		t.Fatal(err)
	}
	mustExist(t, storage, "Models/AR/Foo.glb")
	mustExist(t, storage, "Models/AR/Foo_tex.png")
	mustExist(t, storage, "Previews/model-ar-foo.webp")

	if err := u.DeleteAsset(ctx, "Models/AR/Foo.glb"); err != nil {
		t.Fatal(err)
	}

	mustNotExist(t, storage, "Models/AR/Foo.glb")
	mustNotExist(t, storage, "Models/AR/Foo_tex.png")
	mustNotExist(t, storage, "Previews/model-ar-foo.webp")

	m := u.GetManifest(ctx)
	for _, a := range m.Assets {
		if a.File == "Models/AR/Foo.glb" {
			t.Fatalf("manifest still references deleted model: %+v", a)
		}
	}
}

func TestDeleteSkinRemovesDedicatedPreview(t *testing.T) {
	u, storage, _ := newTestUsecase(t)
	ctx := context.Background()

	if _, err := u.UploadSkin(ctx, UploadSkinOption{
		Weapon:   "awp",
		Filename: "Loud.png",
		Data:     []byte("x"),
		Preview:  []byte("p"),
	}); err != nil {
		t.Fatal(err)
	}

	if err := u.DeleteAsset(ctx, "Skins/AWP/Loud.png"); err != nil {
		t.Fatal(err)
	}
	mustNotExist(t, storage, "Skins/AWP/Loud.png")
	mustNotExist(t, storage, "Previews/skin-awp-loud.webp")
}

func TestDeleteMissingCompanionsAreNoOps(t *testing.T) {
	u, storage, _ := newTestUsecase(t)
	ctx := context.Background()

	if _, err := u.UploadModel(ctx, UploadModelOption{
		Weapon:   "smg",
		Filename: "Bare.glb",
		Data:     []byte("m"),
	}); err != nil {
		t.Fatal(err)
	}

	if err := u.DeleteAsset(ctx, "Models/SMG/Bare.glb"); err != nil {
		t.Fatal(err)
	}
	mustNotExist(t, storage, "Models/SMG/Bare.glb")
}

func TestDeleteRejectsTraversal(t *testing.T) {
	u, _, _ := newTestUsecase(t)

	err := u.DeleteAsset(context.Background(), "../../etc/passwd")
	if !errors.Is(err, filestorage.ErrPathEscapesRoot) {
		t.Fatalf("err = %v, want ErrPathEscapesRoot", err)
	}
}

func TestDeleteMissingFile(t *testing.T) {
	u, _, _ := newTestUsecase(t)

	err := u.DeleteAsset(context.Background(), "Skins/AR/Ghost.png")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteSpecialPreviewByPosition(t *testing.T) {
	u, storage, _ := newTestUsecase(t)
	ctx := context.Background()

	if _, err := u.UploadSpecial(ctx, UploadSpecialOption{
		Filename: "Crate.png",
		Data:     []byte("x"),
		Preview:  []byte("p"),
	}); err != nil {
		t.Fatal(err)
	}

	if err := u.DeleteAsset(ctx, "Special/Crate.png"); err != nil {
		t.Fatal(err)
	}
	mustNotExist(t, storage, "Special/Crate.png")
	mustNotExist(t, storage, "Previews/special-crate.webp")
}

func TestGetFile(t *testing.T) {
	u, storage, _ := newTestUsecase(t)
	ctx := context.Background()

	if err := storage.WriteFile(ctx, "Special/S.png", []byte("bytes")); err != nil {
		t.Fatal(err)
	}

	data, err := u.GetFile(ctx, "Special/S.png")
	if err != nil || string(data) != "bytes" {
		t.Fatalf("GetFile = %q, %v", data, err)
	}

	if _, err := u.GetFile(ctx, "Special/Missing.png"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if _, err := u.GetFile(ctx, "../outside"); !errors.Is(err, filestorage.ErrPathEscapesRoot) {
		t.Fatalf("err = %v, want ErrPathEscapesRoot", err)
	}
}
