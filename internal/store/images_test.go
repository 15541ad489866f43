package store

import (
	"context"
	"testing"

	"github.com/erazemk/garderoba/internal/db"
)

func TestSetAndGetGarmentImage(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	imageData := []byte("fake image data")
	if err := SetGarmentImage(ctx, database, "tag-1", imageData, "image/jpeg"); err != nil {
		t.Fatalf("SetGarmentImage: %v", err)
	}

	data, mime, err := GetGarmentImage(ctx, database, "tag-1")
	if err != nil {
		t.Fatalf("GetGarmentImage: %v", err)
	}
	if string(data) != "fake image data" {
		t.Errorf("expected image data, got %q", string(data))
	}
	if mime != "image/jpeg" {
		t.Errorf("expected mime 'image/jpeg', got %q", mime)
	}

	// Overwrite replaces the stored photo.
	if err := SetGarmentImage(ctx, database, "tag-1", []byte("newer"), "image/png"); err != nil {
		t.Fatalf("second SetGarmentImage: %v", err)
	}
	data, mime, _ = GetGarmentImage(ctx, database, "tag-1")
	if string(data) != "newer" || mime != "image/png" {
		t.Errorf("expected replaced photo, got %q (%s)", string(data), mime)
	}
}

func TestGetGarmentImageMissing(t *testing.T) {
	database := db.NewTestDB(t)

	data, mime, err := GetGarmentImage(context.Background(), database, "nope")
	if err != nil {
		t.Fatalf("GetGarmentImage: %v", err)
	}
	if data != nil || mime != "" {
		t.Errorf("expected nil data for missing photo, got %q (%s)", string(data), mime)
	}
}

func TestDeleteGarmentImage(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	SetGarmentImage(ctx, database, "tag-1", []byte("data"), "image/jpeg")
	if err := DeleteGarmentImage(ctx, database, "tag-1"); err != nil {
		t.Fatalf("DeleteGarmentImage: %v", err)
	}

	data, _, _ := GetGarmentImage(ctx, database, "tag-1")
	if data != nil {
		t.Error("expected photo gone after delete")
	}
}
