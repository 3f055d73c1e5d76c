package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/targetjit/inventory-backend/internal/storage"
)

type fakeStore struct {
	objects []storage.ObjectInfo
	fetched map[string]string
}

func (f *fakeStore) ListObjects(_ context.Context, prefix string) ([]storage.ObjectInfo, error) {
	return f.objects, nil
}

func (f *fakeStore) DownloadObject(_ context.Context, key, destPath string) error {
	if f.fetched == nil {
		f.fetched = make(map[string]string)
	}
	f.fetched[key] = destPath
	return nil
}

func (f *fakeStore) UploadObject(context.Context, string, []byte) error { return nil }

func TestFetchArchived(t *testing.T) {
	store := &fakeStore{objects: []storage.ObjectInfo{
		{Key: "imports/abc/stock.csv", Size: 64},
		{Key: "imports/def/more.csv", Size: 32},
	}}

	dir := t.TempDir()
	if err := fetchArchived(context.Background(), store, "imports/", dir); err != nil {
		t.Fatalf("fetchArchived() error = %v", err)
	}

	if len(store.fetched) != 2 {
		t.Fatalf("fetched %d objects, want 2", len(store.fetched))
	}
	// archived files land in the data dir under their base name
	if got := store.fetched["imports/abc/stock.csv"]; got != filepath.Join(dir, "stock.csv") {
		t.Errorf("dest = %q", got)
	}
}

func TestFetchArchivedEmpty(t *testing.T) {
	if err := fetchArchived(context.Background(), &fakeStore{}, "imports/", t.TempDir()); err == nil {
		t.Fatal("expected an error when nothing is archived")
	}
}
