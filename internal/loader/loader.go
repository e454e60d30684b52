// Package loader implements the Module Loader (C4): it maps a canonical
// module name to plain-JS text, consulting the Source Tree (C1) and
// invoking the Transpiler (C2) by extension.
package loader

import (
	"unicode/utf8"

	"github.com/borolgs/js-runtime/internal/jsxruntime"
	"github.com/borolgs/js-runtime/internal/rterr"
	"github.com/borolgs/js-runtime/internal/sourcetree"
	"github.com/borolgs/js-runtime/internal/transpile"
)

// Load resolves a canonical module name to plain-JS text.
//
// The synthetic jsxruntime.Specifier always resolves, even with a nil tree.
// Otherwise the name is looked up in tree; a directory entry falls back to
// "<dir>/index.js". Anything ending in .jsx, .tsx, or .ts is run through
// the Transpiler first.
func Load(tree *sourcetree.Tree, name string) (string, error) {
	if name == jsxruntime.Specifier {
		return jsxruntime.Source(), nil
	}

	path := name
	if tree.IsDir(path) {
		path = path + "/index.js"
	}

	data, ok := tree.GetFile(path)
	if !ok {
		return "", rterr.New(rterr.Execution, "module "+name+" not found")
	}
	if !utf8.Valid(data) {
		return "", rterr.New(rterr.Execution, "module "+name+" is not valid UTF-8")
	}
	source := string(data)

	if kind, needsTranspile := transpile.KindFromExtension(name); needsTranspile {
		return transpile.Transpile(source, kind)
	}

	return source, nil
}
