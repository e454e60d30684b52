// Package jsxruntime embeds the built-in source for the synthetic
// jsx-runtime module that the Module Loader (C4) serves regardless of
// whether a Source Tree has been committed.
package jsxruntime

import _ "embed"

// ImportSource is passed to esbuild as JSXImportSource. esbuild always
// appends "/jsx-runtime" to this value when emitting the automatic-runtime
// import (mirroring how "preact" becomes "preact/jsx-runtime"), so the
// resulting import specifier is always ImportSource + "/jsx-runtime" --
// that full path, not ImportSource alone, is what the Module Loader must
// special-case.
const ImportSource = "runtime-jsx"

// Specifier is the synthetic module name the Module Loader special-cases:
// the import specifier esbuild actually emits for ImportSource.
const Specifier = ImportSource + "/jsx-runtime"

//go:embed jsx-runtime.js
var source string

// Source returns the jsx-runtime module's plain-JS text.
func Source() string {
	return source
}
