package flexfs

import (
	"bytes"
	"path"
	"sort"
	"strings"
	"time"
)

// memAccess is an in-memory Access used across this package's tests. It is
// not a production backend: Ls returns entries in sorted-name order and
// Mkdir/Open are implemented just far enough to exercise resolve/operations/
// watcher semantics.
type memAccess struct {
	files map[string][]byte
	dirs  map[string]bool
	mtime map[string]time.Time
	mode  map[string]uint32
}

func newMemAccess() *memAccess {
	return &memAccess{
		files: map[string][]byte{},
		dirs:  map[string]bool{"/": true},
		mtime: map[string]time.Time{},
		mode:  map[string]uint32{},
	}
}

func (m *memAccess) IsRemote() bool { return false }

func (m *memAccess) putFile(p string, data []byte, mtime time.Time) {
	m.files[p] = data
	m.mtime[p] = mtime
	m.mode[p] = modeIFREG | modeIRUSR | modeIWUSR
	m.ensureParents(p)
}

func (m *memAccess) putDir(p string) {
	m.dirs[p] = true
	m.ensureParents(p)
}

func (m *memAccess) ensureParents(p string) {
	dir := path.Dir(p)
	for dir != "." && dir != "/" && !m.dirs[dir] {
		m.dirs[dir] = true
		dir = path.Dir(dir)
	}
	m.dirs["/"] = true
}

func (m *memAccess) Ls(dir string, cancel *CancelToken) ([]DirEntry, error) {
	if err := CheckCancelled(cancel); err != nil {
		return nil, err
	}
	if !m.dirs[dir] {
		return nil, NewError(KindNotFound, "").WithPath(dir)
	}
	prefix := strings.TrimSuffix(dir, "/") + "/"
	seen := map[string]bool{}
	var names []string
	for p := range m.files {
		if rest, ok := childOf(p, prefix); ok {
			if !seen[rest] {
				seen[rest] = true
				names = append(names, rest)
			}
		}
	}
	for p := range m.dirs {
		if p == dir {
			continue
		}
		if rest, ok := childOf(p, prefix); ok {
			if !seen[rest] {
				seen[rest] = true
				names = append(names, rest)
			}
		}
	}
	sort.Strings(names)

	entries := make([]DirEntry, 0, len(names))
	for _, name := range names {
		full := prefix + name
		attr, err := m.Lstat(full, nil)
		if err != nil {
			return nil, err
		}
		entries = append(entries, DirEntry{Name: name, Attr: attr})
	}
	return entries, nil
}

func childOf(p, prefix string) (string, bool) {
	if !strings.HasPrefix(p, prefix) {
		return "", false
	}
	rest := p[len(prefix):]
	if rest == "" || strings.Contains(rest, "/") {
		return "", false
	}
	return rest, true
}

func (m *memAccess) Exists(p string, cancel *CancelToken) (bool, error) {
	if err := CheckCancelled(cancel); err != nil {
		return false, err
	}
	_, isFile := m.files[p]
	return isFile || m.dirs[p], nil
}

func (m *memAccess) TryStat(p string, cancel *CancelToken) (*Attributes, error) {
	// A trailing separator names the same entry, as on a real filesystem.
	if len(p) > 1 {
		p = strings.TrimSuffix(p, "/")
	}
	ok, err := m.Exists(p, cancel)
	if err != nil || !ok {
		return nil, err
	}
	a, err := m.Stat(p, cancel)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (m *memAccess) Stat(p string, cancel *CancelToken) (Attributes, error) {
	if err := CheckCancelled(cancel); err != nil {
		return Attributes{}, err
	}
	if m.dirs[p] {
		var a Attributes
		a.SetMode(modeIFDIR | modeIRUSR | modeIWUSR | modeIXUSR)
		return a, nil
	}
	data, ok := m.files[p]
	if !ok {
		return Attributes{}, NewError(KindNotFound, "").WithPath(p)
	}
	var a Attributes
	a.SetMode(m.mode[p])
	size := uint64(len(data))
	a.Size = &size
	if mt, ok := m.mtime[p]; ok {
		a.MTime = &mt
	}
	return a, nil
}

func (m *memAccess) Lstat(p string, cancel *CancelToken) (Attributes, error) {
	return m.Stat(p, cancel)
}

func (m *memAccess) Remove(p string, cancel *CancelToken) error {
	if err := CheckCancelled(cancel); err != nil {
		return err
	}
	if _, ok := m.files[p]; ok {
		delete(m.files, p)
		return nil
	}
	if m.dirs[p] {
		delete(m.dirs, p)
		return nil
	}
	return NewError(KindNotFound, "").WithPath(p)
}

func (m *memAccess) Mkdir(p string, parents bool, cancel *CancelToken) error {
	if err := CheckCancelled(cancel); err != nil {
		return err
	}
	if m.dirs[p] {
		if parents {
			return nil
		}
		return NewError(KindAlreadyExists, "").WithPath(p)
	}
	parent := path.Dir(p)
	if !parents && parent != "." && parent != "/" && !m.dirs[parent] {
		return NewError(KindNotFound, "").WithPath(parent)
	}
	m.putDir(p)
	return nil
}

func (m *memAccess) Rename(oldpath, newpath string, cancel *CancelToken) error {
	if err := CheckCancelled(cancel); err != nil {
		return err
	}
	if data, ok := m.files[oldpath]; ok {
		m.files[newpath] = data
		m.mtime[newpath] = m.mtime[oldpath]
		m.mode[newpath] = m.mode[oldpath]
		delete(m.files, oldpath)
		m.ensureParents(newpath)
		return nil
	}
	if m.dirs[oldpath] {
		m.dirs[newpath] = true
		delete(m.dirs, oldpath)
		return nil
	}
	return NewError(KindNotFound, "").WithPath(oldpath)
}

func (m *memAccess) Open(p string, flags OpenFlag, mode uint32, cancel *CancelToken) (File, error) {
	if err := CheckCancelled(cancel); err != nil {
		return nil, err
	}
	if flags&Create != 0 {
		if _, ok := m.files[p]; !ok {
			m.files[p] = nil
			m.mode[p] = mode
			m.mtime[p] = time.Time{}
			m.ensureParents(p)
		}
	}
	if flags&Trunc != 0 {
		m.files[p] = nil
	}
	data, ok := m.files[p]
	if !ok {
		return nil, NewError(KindNotFound, "").WithPath(p)
	}
	return &memFile{m: m, path: p, buf: bytes.NewBuffer(append([]byte(nil), data...)), write: flags&(WrOnly|RdWr) != 0}, nil
}

func (m *memAccess) CreateWatcher(dir string, cancel *CancelToken) (Watcher, error) {
	return NewPollingWatcher(m, dir, time.Millisecond, cancel)
}

var _ Access = (*memAccess)(nil)

type memFile struct {
	m     *memAccess
	path  string
	buf   *bytes.Buffer
	write bool
	read  bool
}

func (f *memFile) Read(p []byte) (int, error) {
	return f.buf.Read(p)
}

func (f *memFile) Write(p []byte) (int, error) {
	return f.buf.Write(p)
}

func (f *memFile) Close() error {
	if f.write {
		f.m.files[f.path] = append([]byte(nil), f.buf.Bytes()...)
	}
	return nil
}
