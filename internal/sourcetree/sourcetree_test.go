package sourcetree

import (
	"testing"
	"testing/fstest"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"index.js":         {Data: []byte("1;")},
		"sum.js":           {Data: []byte("args.a + args.b;")},
		"pages/items.jsx":  {Data: []byte("export default () => null;")},
		"pages/about.jsx":  {Data: []byte("export default () => null;")},
		"pages/readme.txt": {Data: []byte("not a page")},
		"lib/index.js":     {Data: []byte("42;")},
	}
}

func TestGetFile(t *testing.T) {
	tree := New(testFS())

	data, ok := tree.GetFile("sum.js")
	if !ok {
		t.Fatal("GetFile(sum.js) ok = false, want true")
	}
	if string(data) != "args.a + args.b;" {
		t.Errorf("GetFile(sum.js) = %q, want %q", data, "args.a + args.b;")
	}

	if _, ok := tree.GetFile("missing.js"); ok {
		t.Error("GetFile(missing.js) ok = true, want false")
	}
}

func TestGetFileStripsLeadingSlash(t *testing.T) {
	tree := New(testFS())

	data, ok := tree.GetFile("/sum.js")
	if !ok || string(data) != "args.a + args.b;" {
		t.Errorf("GetFile(/sum.js) = (%q, %v), want (%q, true)", data, ok, "args.a + args.b;")
	}
}

func TestIsDir(t *testing.T) {
	tree := New(testFS())

	if !tree.IsDir("pages") {
		t.Error("IsDir(pages) = false, want true")
	}
	if tree.IsDir("sum.js") {
		t.Error("IsDir(sum.js) = true, want false")
	}
	if tree.IsDir("nonexistent") {
		t.Error("IsDir(nonexistent) = true, want false")
	}
}

func TestListFilesExcludesSubdirsAndIsDirs(t *testing.T) {
	fsys := testFS()
	fsys["pages/partials/header.jsx"] = &fstest.MapFile{Data: []byte("export default () => null;")}
	tree := New(fsys)

	names, err := tree.ListFiles("pages")
	if err != nil {
		t.Fatalf("ListFiles() error = %v", err)
	}

	want := map[string]bool{"items.jsx": true, "about.jsx": true, "readme.txt": true}
	if len(names) != len(want) {
		t.Fatalf("ListFiles(pages) = %v, want %d entries", names, len(want))
	}
	for _, n := range names {
		if !want[n] {
			t.Errorf("ListFiles(pages) contained unexpected entry %q", n)
		}
	}
}

func TestListFilesMissingDirReturnsEmpty(t *testing.T) {
	tree := New(testFS())

	names, err := tree.ListFiles("nonexistent")
	if err != nil {
		t.Fatalf("ListFiles(nonexistent) error = %v, want nil", err)
	}
	if len(names) != 0 {
		t.Errorf("ListFiles(nonexistent) = %v, want empty", names)
	}
}

func TestStem(t *testing.T) {
	tests := []struct{ name, want string }{
		{"items.jsx", "items"},
		{"pages/items.jsx", "items"},
		{"readme", "readme"},
		{"archive.tar.gz", "archive.tar"},
	}
	for _, tt := range tests {
		if got := Stem(tt.name); got != tt.want {
			t.Errorf("Stem(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestNilTreeIsInert(t *testing.T) {
	var tree *Tree

	if _, ok := tree.GetFile("anything"); ok {
		t.Error("GetFile on a nil Tree returned ok=true")
	}
	if tree.IsDir("anything") {
		t.Error("IsDir on a nil Tree returned true")
	}
	if names, err := tree.ListFiles("anything"); err != nil || len(names) != 0 {
		t.Errorf("ListFiles on a nil Tree = (%v, %v), want (nil, nil)", names, err)
	}
}

func TestCommitIsIdempotent(t *testing.T) {
	ResetForTest()
	defer ResetForTest()

	first := testFS()
	second := fstest.MapFS{"other.js": {Data: []byte("2;")}}

	Commit(first)
	Commit(second)

	tree := Global()
	if _, ok := tree.GetFile("sum.js"); !ok {
		t.Error("Commit() did not keep the first committed tree")
	}
	if _, ok := tree.GetFile("other.js"); ok {
		t.Error("Commit() replaced the first committed tree with a later one")
	}
}

func TestGlobalBeforeCommitIsNil(t *testing.T) {
	ResetForTest()
	defer ResetForTest()

	if Global() != nil {
		t.Error("Global() before any Commit() should be nil")
	}
}
