package storage_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Tiliavir/field-time-tracker/internal/storage"
)

type doc struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestFileStoreGetNotExist(t *testing.T) {
	fs := storage.NewFileStore(t.TempDir())
	_, err := fs.Get(context.Background(), "teams")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Get on missing file: err = %v, want ErrNotFound", err)
	}
}

func TestSaveJSONAndLoadJSON(t *testing.T) {
	ctx := context.Background()
	fs := storage.NewFileStore(filepath.Join(t.TempDir(), "nested"))

	if err := storage.SaveJSON(ctx, fs, "teams", doc{Name: "Hornets", Count: 3}); err != nil {
		t.Fatalf("SaveJSON: %v", err)
	}

	var loaded doc
	if err := storage.LoadJSON(ctx, fs, "teams", &loaded); err != nil {
		t.Fatalf("LoadJSON after save: %v", err)
	}
	if loaded.Name != "Hornets" || loaded.Count != 3 {
		t.Errorf("LoadJSON = %+v", loaded)
	}

	// No temp file left behind.
	if _, err := os.Stat(filepath.Join(fs.Dir, "teams.json.tmp")); !os.IsNotExist(err) {
		t.Error("temp file should have been renamed away")
	}
}

func TestLoadJSONCorruptIsBackedUp(t *testing.T) {
	base := t.TempDir()
	fs := storage.NewFileStore(base)

	path := filepath.Join(base, "teams.json")
	if err := os.WriteFile(path, []byte("{bad json"), 0o600); err != nil {
		t.Fatal(err)
	}

	var v doc
	if err := storage.LoadJSON(context.Background(), fs, "teams", &v); err == nil {
		t.Fatal("expected error for corrupt JSON, got nil")
	}

	if _, err := os.Stat(path + ".corrupt"); os.IsNotExist(err) {
		t.Error("expected backup file to exist after corrupt JSON")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt file should have been moved away")
	}
}

func TestFileStoreDelete(t *testing.T) {
	ctx := context.Background()
	fs := storage.NewFileStore(t.TempDir())

	if err := fs.Put(ctx, "clock_state", []byte(`{}`)); err != nil {
		t.Fatal(err)
	}
	if err := fs.Delete(ctx, "clock_state"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := fs.Get(ctx, "clock_state"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Get after Delete: err = %v, want ErrNotFound", err)
	}
	if err := fs.Delete(ctx, "clock_state"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
}

func TestFileStoreRejectsPathKeys(t *testing.T) {
	fs := storage.NewFileStore(t.TempDir())
	if err := fs.Put(context.Background(), "../escape", []byte("x")); err == nil {
		t.Error("expected error for key with path separators")
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	m := storage.NewMemoryStore()

	if err := storage.SaveJSON(ctx, m, "preferences", doc{Name: "x"}); err != nil {
		t.Fatal(err)
	}
	var v doc
	if err := storage.LoadJSON(ctx, m, "preferences", &v); err != nil || v.Name != "x" {
		t.Fatalf("LoadJSON = %+v, %v", v, err)
	}

	m.FailWrites = errors.New("quota exceeded")
	if err := m.Put(ctx, "teams", []byte("{}")); err == nil {
		t.Error("expected FailWrites error")
	}
	if m.Keys() != 1 {
		t.Errorf("Keys = %d, want 1", m.Keys())
	}
}

func TestRedisStore(t *testing.T) {
	url := os.Getenv("FTT_TEST_REDIS_URL")
	if url == "" {
		t.Skip("FTT_TEST_REDIS_URL not set")
	}
	ctx := context.Background()
	rs, err := storage.NewRedisStore(ctx, url, "ftt-test:")
	if err != nil {
		t.Fatalf("NewRedisStore: %v", err)
	}
	defer rs.Close()

	if err := storage.SaveJSON(ctx, rs, "teams", doc{Name: "Hornets"}); err != nil {
		t.Fatalf("SaveJSON: %v", err)
	}
	var v doc
	if err := storage.LoadJSON(ctx, rs, "teams", &v); err != nil || v.Name != "Hornets" {
		t.Fatalf("LoadJSON = %+v, %v", v, err)
	}
	if err := rs.Delete(ctx, "teams"); err != nil {
		t.Fatal(err)
	}
	if _, err := rs.Get(ctx, "teams"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Get after Delete: err = %v, want ErrNotFound", err)
	}
}
