package sftp

import (
	"os"
	"testing"
	"time"

	gosftp "github.com/pkg/sftp"
)

// fakeFileInfo is a minimal os.FileInfo whose Sys() can be pointed at a
// *gosftp.FileStat, the way pkg/sftp's own os.FileInfo implementations do.
type fakeFileInfo struct {
	name    string
	size    int64
	mode    os.FileMode
	modTime time.Time
	sys     interface{}
}

func (f fakeFileInfo) Name() string       { return f.name }
func (f fakeFileInfo) Size() int64        { return f.size }
func (f fakeFileInfo) Mode() os.FileMode  { return f.mode }
func (f fakeFileInfo) ModTime() time.Time { return f.modTime }
func (f fakeFileInfo) IsDir() bool        { return f.mode.IsDir() }
func (f fakeFileInfo) Sys() interface{}   { return f.sys }

func TestDecodeAttributesWithFileStat(t *testing.T) {
	fi := fakeFileInfo{
		name: "report.csv",
		size: 4096,
		mode: 0o644,
		sys: &gosftp.FileStat{
			UID:   1000,
			GID:   1000,
			Mtime: 1700000000,
			Atime: 1700000100,
		},
	}

	attr := decodeAttributes(fi)

	if attr.Size == nil || *attr.Size != 4096 {
		t.Fatalf("expected size 4096, got %v", attr.Size)
	}
	if attr.UID == nil || *attr.UID != 1000 {
		t.Fatalf("expected uid 1000, got %v", attr.UID)
	}
	if attr.GID == nil || *attr.GID != 1000 {
		t.Fatalf("expected gid 1000, got %v", attr.GID)
	}
	if attr.Owner == nil || *attr.Owner != "1000" {
		t.Fatalf("expected owner fallback \"1000\", got %v", attr.Owner)
	}
	if attr.MTime == nil || !attr.MTime.Equal(time.Unix(1700000000, 0)) {
		t.Fatalf("unexpected mtime: %v", attr.MTime)
	}
	if attr.ATime == nil || !attr.ATime.Equal(time.Unix(1700000100, 0)) {
		t.Fatalf("unexpected atime: %v", attr.ATime)
	}
	if !attr.IsRegular() {
		t.Fatalf("expected regular file type bits")
	}
}

func TestDecodeAttributesDirectoryTypeBits(t *testing.T) {
	fi := fakeFileInfo{
		name: "dir",
		mode: os.ModeDir | 0o755,
		sys:  &gosftp.FileStat{},
	}
	attr := decodeAttributes(fi)
	if !attr.IsDir() {
		t.Fatalf("expected directory type bits")
	}
}

func TestDecodeAttributesSymlinkTypeBits(t *testing.T) {
	fi := fakeFileInfo{
		name: "link",
		mode: os.ModeSymlink | 0o777,
		sys:  &gosftp.FileStat{},
	}
	attr := decodeAttributes(fi)
	if !attr.IsLink() {
		t.Fatalf("expected symlink type bits")
	}
}

func TestDecodeAttributesFallsBackWithoutFileStat(t *testing.T) {
	mod := time.Unix(1600000000, 0)
	fi := fakeFileInfo{
		name:    "plain",
		mode:    0o600,
		modTime: mod,
		sys:     nil, // no *gosftp.FileStat available
	}
	attr := decodeAttributes(fi)
	if attr.UID != nil || attr.GID != nil {
		t.Fatalf("expected no uid/gid without FileStat, got uid=%v gid=%v", attr.UID, attr.GID)
	}
	if attr.MTime == nil || !attr.MTime.Equal(mod) {
		t.Fatalf("expected mtime fallback to fi.ModTime(), got %v", attr.MTime)
	}
}

func TestDecodeAttributesZeroUIDGIDOmitted(t *testing.T) {
	fi := fakeFileInfo{
		name: "root-owned-or-unknown",
		mode: 0o644,
		sys:  &gosftp.FileStat{UID: 0, GID: 0, Mtime: 1700000000},
	}
	attr := decodeAttributes(fi)
	if attr.UID != nil || attr.GID != nil {
		t.Fatalf("expected uid/gid to stay nil when both are zero, got uid=%v gid=%v", attr.UID, attr.GID)
	}
}
