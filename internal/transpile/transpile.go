// Package transpile implements the Transpiler (C2): a pure function mapping
// source text plus a media kind to plain-JS text, via esbuild.
package transpile

import (
	"strings"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/borolgs/js-runtime/internal/jsxruntime"
	"github.com/borolgs/js-runtime/internal/rterr"
)

// Kind selects the esbuild loader used to strip/transform the source.
type Kind int

const (
	KindTypeScript Kind = iota
	KindJSX
	KindTSX
)

func (k Kind) loader() api.Loader {
	switch k {
	case KindJSX:
		return api.LoaderJSX
	case KindTSX:
		return api.LoaderTSX
	default:
		return api.LoaderTS
	}
}

// KindFromExtension maps a module name's extension to a Kind, and reports
// whether the name needs transpilation at all.
func KindFromExtension(name string) (kind Kind, needsTranspile bool) {
	switch {
	case strings.HasSuffix(name, ".tsx"):
		return KindTSX, true
	case strings.HasSuffix(name, ".jsx"):
		return KindJSX, true
	case strings.HasSuffix(name, ".ts"):
		return KindTypeScript, true
	default:
		return 0, false
	}
}

// Transpile strips TypeScript-only syntax and/or rewrites JSX into calls of
// the automatic-runtime "jsx" factory imported from the synthetic jsx-runtime
// module (see jsxruntime.ImportSource/Specifier for why the import source
// and the resulting import path differ). Source order and side effects are
// preserved; no source map is emitted, so plain JS comes back unchanged
// apart from trailing whitespace.
func Transpile(text string, kind Kind) (string, error) {
	result := api.Transform(text, api.TransformOptions{
		Loader:          kind.loader(),
		Target:          api.ESNext,
		Format:          api.FormatDefault,
		JSX:             api.JSXAutomatic,
		JSXImportSource: jsxruntime.ImportSource,
		Sourcemap:       api.SourceMapNone,
	})

	if len(result.Errors) > 0 {
		var msgs []string
		for _, m := range result.Errors {
			msgs = append(msgs, m.Text)
		}
		return "", rterr.New(rterr.Transpile, strings.Join(msgs, "; "))
	}

	return string(result.Code), nil
}
