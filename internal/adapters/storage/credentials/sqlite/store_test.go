package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestStore_SetGetDelete_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "walks", "credentials.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if _, ok, err := s.Get(ctx, "token"); err != nil || ok {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}
	if err := s.Set(ctx, "token", "abc"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set(ctx, "token", "def"); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	_ = s.Close()

	// reabrir: tiene que persistir
	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	v, ok, err := s.Get(ctx, "token")
	if err != nil || !ok || v != "def" {
		t.Fatalf("expected def after reopen, got %q ok=%v err=%v", v, ok, err)
	}

	if err := s.Delete(ctx, "token"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, "token"); err != nil {
		t.Fatalf("Delete should be idempotent: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "token"); ok {
		t.Fatalf("expected key deleted")
	}
}

func TestOpen_FilePermissions(t *testing.T) {
	ctx := context.Background()

	// directorio ya existente y abierto, como uno elegido con WALKS_DATA_DIR
	dir := filepath.Join(t.TempDir(), "shared")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.Chmod(dir, 0o755); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	path := filepath.Join(dir, "credentials.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()
	if err := s.Set(ctx, "token", "secret-bearer"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	assertPerm(t, dir, 0o700)
	for _, f := range []string{path, path + "-wal", path + "-shm"} {
		if _, err := os.Stat(f); os.IsNotExist(err) {
			continue
		}
		assertPerm(t, f, 0o600)
	}
}

func TestOpen_TightensLeftoverSidecars(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "credentials.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	_ = s.Set(context.Background(), "token", "abc")
	_ = s.Close()

	// archivo aflojado por fuera entre ejecuciones
	if err := os.Chmod(path, 0o644); err != nil {
		t.Fatalf("chmod: %v", err)
	}

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	assertPerm(t, path, 0o600)
}

func TestOpen_PathWithURIChars(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "a?b#c", "credentials.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.Set(ctx, "token", "abc"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	_ = s.Close()

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected db at the literal path: %v", err)
	}

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	if v, ok, _ := s.Get(ctx, "token"); !ok || v != "abc" {
		t.Fatalf("expected token after reopen, got %q ok=%v", v, ok)
	}
}

func assertPerm(t *testing.T, path string, want os.FileMode) {
	t.Helper()
	fi, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat %s: %v", path, err)
	}
	if perm := fi.Mode().Perm(); perm != want {
		t.Fatalf("%s: expected %o, got %o", filepath.Base(path), want, perm)
	}
}

func TestOpen_EmptyPath(t *testing.T) {
	if _, err := Open("  "); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
