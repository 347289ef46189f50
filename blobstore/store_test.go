package blobstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func testStore(t *testing.T, store Store) {
	ctx := context.Background()

	if _, err := store.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get missing: got %v, want ErrNotFound", err)
	}

	if err := store.Put(ctx, "a/one.bin", []byte("one")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := store.Put(ctx, "a/two.bin", []byte("two")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := store.Put(ctx, "b/three.bin", []byte("three")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	data, err := store.Get(ctx, "a/one.bin")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(data) != "one" {
		t.Errorf("Get: got %q, want %q", data, "one")
	}

	// Put replaces.
	if err := store.Put(ctx, "a/one.bin", []byte("uno")); err != nil {
		t.Fatalf("Put replace failed: %v", err)
	}
	data, _ = store.Get(ctx, "a/one.bin")
	if string(data) != "uno" {
		t.Errorf("Get after replace: got %q, want %q", data, "uno")
	}

	names, err := store.List(ctx, "a/")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	want := []string{"a/one.bin", "a/two.bin"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("List: got %v, want %v", names, want)
	}

	if err := store.Delete(ctx, "a/one.bin"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Get(ctx, "a/one.bin"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get deleted: got %v, want ErrNotFound", err)
	}

	// Deleting a missing blob is not an error.
	if err := store.Delete(ctx, "a/one.bin"); err != nil {
		t.Errorf("Delete missing: %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemoryStore())
}

func TestLocalStore(t *testing.T) {
	testStore(t, NewLocalStore(t.TempDir()))
}

func TestMemoryStoreCopiesData(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	data := []byte("payload")
	if err := store.Put(ctx, "x", data); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	data[0] = '?'

	got, err := store.Get(ctx, "x")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != "payload" {
		t.Errorf("stored data mutated: got %q", got)
	}
}

func TestLocalStorePutLeavesNoTempFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := NewLocalStore(dir)

	if err := store.Put(ctx, "snap.bin", []byte("data")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "snap.bin" {
		t.Errorf("unexpected directory contents: %v", entries)
	}

	if _, err := os.Stat(filepath.Join(dir, "snap.bin")); err != nil {
		t.Errorf("final file missing: %v", err)
	}
}

func TestLocalStoreListEmptyRoot(t *testing.T) {
	store := NewLocalStore(filepath.Join(t.TempDir(), "does-not-exist"))

	names, err := store.List(context.Background(), "")
	if err != nil {
		t.Fatalf("List on missing root: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("List on missing root: got %v", names)
	}
}
