// Package sourcetree implements the runtime's read-only, process-wide
// virtual filesystem of script assets (C1).
//
// The tree wraps an arbitrary io/fs.FS -- an embed.FS in production, an
// os.DirFS during local development, or an fstest.MapFS in tests. It is
// committed at most once per process: the first call to Commit wins, mirroring
// the original implementation's OnceLock<Dir<'static>>.
package sourcetree

import (
	"errors"
	"io/fs"
	"path"
	"strings"
	"sync"
)

// Tree is a thin, read-only wrapper over an fs.FS.
type Tree struct {
	fsys fs.FS
}

// New wraps fsys as a Tree. Paths are looked up relative to fsys's root.
func New(fsys fs.FS) *Tree {
	return &Tree{fsys: fsys}
}

// GetFile returns the UTF-8 bytes stored at path, if any.
func (t *Tree) GetFile(p string) ([]byte, bool) {
	if t == nil {
		return nil, false
	}
	p = strings.TrimPrefix(p, "/")
	data, err := fs.ReadFile(t.fsys, p)
	if err != nil {
		return nil, false
	}
	return data, true
}

// IsDir reports whether path names a directory in the tree.
func (t *Tree) IsDir(p string) bool {
	if t == nil {
		return false
	}
	p = strings.TrimPrefix(p, "/")
	if p == "" {
		p = "."
	}
	info, err := fs.Stat(t.fsys, p)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// ListFiles returns the base names of files directly inside dir (no
// recursion), sorted by fs.ReadDir's natural ordering. A missing dir yields
// an empty list and a nil error.
func (t *Tree) ListFiles(dir string) ([]string, error) {
	if t == nil {
		return nil, nil
	}
	dir = strings.TrimPrefix(dir, "/")
	if dir == "" {
		dir = "."
	}
	entries, err := fs.ReadDir(t.fsys, dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// Stem returns the file name without its trailing extension, e.g.
// "items.jsx" -> "items".
func Stem(name string) string {
	base := path.Base(name)
	ext := path.Ext(base)
	return strings.TrimSuffix(base, ext)
}

var (
	mu       sync.Mutex
	once     sync.Once
	global   *Tree
	didBuild bool
)

// Commit installs fsys as the process-wide Source Tree. Idempotent: the
// first call wins, every subsequent call is a no-op, matching the "committed
// at most once" invariant of C1.
func Commit(fsys fs.FS) {
	if fsys == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	once.Do(func() {
		global = New(fsys)
		didBuild = true
	})
}

// Global returns the process-wide Source Tree, or nil if none was ever
// committed.
func Global() *Tree {
	mu.Lock()
	defer mu.Unlock()
	if !didBuild {
		return nil
	}
	return global
}

// ResetForTest clears the committed global tree. It exists solely so test
// suites in this and other packages can exercise Commit's idempotence and
// start each test case from a clean process-wide state; production code
// must never call it.
func ResetForTest() {
	mu.Lock()
	defer mu.Unlock()
	once = sync.Once{}
	global = nil
	didBuild = false
}
