package local

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/flexfs/flexfs"
)

func TestBackendOpenWriteReadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	b := New()
	path := filepath.Join(dir, "a.txt")

	f, err := b.Open(path, flexfs.WrOnly|flexfs.Create|flexfs.Trunc, 0o644, nil)
	if err != nil {
		t.Fatalf("Open(write): %v", err)
	}
	if _, err := f.Write([]byte("hello")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err = b.Open(path, flexfs.RdOnly, 0, nil)
	if err != nil {
		t.Fatalf("Open(read): %v", err)
	}
	buf := make([]byte, 5)
	n, err := f.Read(buf)
	if err != nil && err.Error() != "EOF" {
		t.Fatalf("Read: %v", err)
	}
	if n != 5 || string(buf) != "hello" {
		t.Fatalf("Read = %q, want hello", buf[:n])
	}
	f.Close()
}

func TestBackendLsAndGetDirEntry(t *testing.T) {
	dir := t.TempDir()
	b := New()

	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}

	entries, err := b.Ls(dir, nil)
	if err != nil {
		t.Fatalf("Ls: %v", err)
	}
	names := map[string]flexfs.Attributes{}
	for _, e := range entries {
		names[e.Name] = e.Attr
	}
	if _, ok := names["a.txt"]; !ok {
		t.Fatal("a.txt missing from listing")
	}
	sub, ok := names["sub"]
	if !ok || !sub.IsDir() {
		t.Fatalf("sub not listed as a directory: %+v", sub)
	}

	entry, err := b.GetDirEntry(filepath.Join(dir, "a.txt"))
	if err != nil {
		t.Fatalf("GetDirEntry: %v", err)
	}
	if entry.Name != "a.txt" || !entry.Attr.IsRegular() {
		t.Fatalf("GetDirEntry = %+v", entry)
	}
}

func TestBackendExistsAndTryStat(t *testing.T) {
	dir := t.TempDir()
	b := New()
	path := filepath.Join(dir, "a.txt")

	exists, err := b.Exists(path, nil)
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if exists {
		t.Fatal("Exists should be false before creation")
	}
	attr, err := b.TryStat(path, nil)
	if err != nil {
		t.Fatalf("TryStat: %v", err)
	}
	if attr != nil {
		t.Fatal("TryStat should return nil before creation")
	}

	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	exists, err = b.Exists(path, nil)
	if err != nil || !exists {
		t.Fatalf("Exists = %v, %v; want true, nil", exists, err)
	}
	attr, err = b.TryStat(path, nil)
	if err != nil || attr == nil {
		t.Fatalf("TryStat = %v, %v; want non-nil, nil", attr, err)
	}
}

func TestBackendMkdirParents(t *testing.T) {
	dir := t.TempDir()
	b := New()
	target := filepath.Join(dir, "a", "b", "c")

	if err := b.Mkdir(target, true, nil); err != nil {
		t.Fatalf("Mkdir(parents=true): %v", err)
	}
	attr, err := b.Stat(target, nil)
	if err != nil || !attr.IsDir() {
		t.Fatalf("Stat(target) = %+v, %v", attr, err)
	}

	if err := b.Mkdir(filepath.Join(dir, "x", "y"), false, nil); err == nil {
		t.Fatal("Mkdir(parents=false) with missing parent should fail")
	}
}

func TestBackendRename(t *testing.T) {
	dir := t.TempDir()
	b := New()
	src := filepath.Join(dir, "a.txt")
	dst := filepath.Join(dir, "b.txt")

	if err := os.WriteFile(src, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := b.Rename(src, dst, nil); err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if exists, _ := b.Exists(src, nil); exists {
		t.Fatal("source still exists after rename")
	}
	if exists, _ := b.Exists(dst, nil); !exists {
		t.Fatal("destination missing after rename")
	}
}

func TestBackendCreateWatcher(t *testing.T) {
	dir := t.TempDir()
	b := New()

	w, err := b.CreateWatcher(dir, nil)
	if err != nil {
		t.Fatalf("CreateWatcher: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "new.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	added, err := w.Watch(nil)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	found := false
	for _, e := range added {
		if e.Name == "new.txt" {
			found = true
		}
	}
	if !found {
		t.Fatalf("new.txt not reported by watcher, got %+v", added)
	}
}
