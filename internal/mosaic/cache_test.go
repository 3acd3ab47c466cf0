package mosaic

import (
	"context"
	"image/color"
	"path/filepath"
	"testing"
)

func tileFixtureDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeSolidPNG(t, filepath.Join(dir, "r.png"), 16, 16, color.NRGBA{255, 0, 0, 255})
	writeSolidPNG(t, filepath.Join(dir, "g.png"), 16, 16, color.NRGBA{0, 255, 0, 255})
	writeSolidPNG(t, filepath.Join(dir, "b.png"), 16, 16, color.NRGBA{0, 0, 255, 255})
	return dir
}

func TestCacheReusesLibrarySnapshot(t *testing.T) {
	dir := tileFixtureDir(t)
	cache := NewLibraryCache()

	lib1, err := cache.Get(context.Background(), dir, 8)
	if err != nil {
		t.Fatalf("First Get failed: %v", err)
	}
	lib2, err := cache.Get(context.Background(), dir, 8)
	if err != nil {
		t.Fatalf("Second Get failed: %v", err)
	}

	if lib1 != lib2 {
		t.Error("Identical keys must return the same library snapshot")
	}
	if cache.Builds() != 1 {
		t.Errorf("Expected exactly 1 build, got %d", cache.Builds())
	}
}

func TestCacheRebuildsOnKeyChange(t *testing.T) {
	dir := tileFixtureDir(t)
	cache := NewLibraryCache()

	lib1, err := cache.Get(context.Background(), dir, 8)
	if err != nil {
		t.Fatal(err)
	}
	lib2, err := cache.Get(context.Background(), dir, 16)
	if err != nil {
		t.Fatal(err)
	}

	if lib1 == lib2 {
		t.Error("A changed tile size must build a new library")
	}
	if cache.Builds() != 2 {
		t.Errorf("Expected 2 builds, got %d", cache.Builds())
	}

	// The replaced snapshot stays fully usable for readers that hold it
	if len(lib1.Tiles) != 3 || lib1.Index.Len() != 3 {
		t.Error("Old snapshot must remain intact after replacement")
	}
	if got := lib1.Index.Nearest([3]float64{250, 5, 5}, 1); len(got) != 1 {
		t.Error("Old snapshot's index must still answer queries")
	}
}

func TestCacheKeepsSlotOnFailedBuild(t *testing.T) {
	dir := tileFixtureDir(t)
	cache := NewLibraryCache()

	if _, err := cache.Get(context.Background(), dir, 8); err != nil {
		t.Fatal(err)
	}

	if _, err := cache.Get(context.Background(), t.TempDir(), 8); err == nil {
		t.Fatal("Expected an error for an empty tile directory")
	}

	// The failed build must not have poisoned the cache
	if _, err := cache.Get(context.Background(), dir, 8); err != nil {
		t.Fatalf("Cached library should still be served: %v", err)
	}
	if cache.Builds() != 1 {
		t.Errorf("Expected the original single build, got %d", cache.Builds())
	}
}
