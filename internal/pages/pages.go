// Package pages implements the Page Bundle Builder (C7): it discovers JSX
// page templates in the Source Tree, imports them into a page registry
// global, and precompiles a thin invoker per page.
package pages

import (
	"fmt"
	"strings"

	"github.com/dop251/goja"

	"github.com/borolgs/js-runtime/internal/interp"
	"github.com/borolgs/js-runtime/internal/jsxruntime"
	"github.com/borolgs/js-runtime/internal/sourcetree"
)

const bundleEntry = "/__page_bundle__.js"

// Build runs once per worker, after context init and before the worker
// takes requests. It returns a table of page name -> compiled invoker,
// ready to be merged into the worker's function table.
func Build(ctx *interp.Context, tree *sourcetree.Tree, pagesDir string) (map[string]*goja.Program, error) {
	// Runs the jsx-runtime module on its own, even when no .jsx pages exist
	// in tree. This defines no global jsx factory: the single page bundle
	// below links its own copy of the jsx-runtime module, which is where
	// the pages get the factory from.
	if err := ctx.RunModule(jsxruntime.Specifier); err != nil {
		return nil, err
	}

	invokers := map[string]*goja.Program{}
	if tree == nil {
		return invokers, nil
	}

	files, err := tree.ListFiles(pagesDir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, f := range files {
		if strings.HasSuffix(f, ".jsx") {
			names = append(names, sourcetree.Stem(f))
		}
	}
	if len(names) == 0 {
		return invokers, nil
	}

	// Page stems come from file names, which may not be valid JS identifiers
	// (e.g. "my-page.jsx"); import each under a synthetic index-based local
	// name instead, and key the registry object with the quoted stem, which
	// accepts any string.
	var bundle strings.Builder
	for i, name := range names {
		fmt.Fprintf(&bundle, "import __page%d from %q;\n", i, pagesDir+"/"+name+".jsx")
	}
	bundle.WriteString("globalThis.__pages = {")
	for i, name := range names {
		if i > 0 {
			bundle.WriteString(", ")
		}
		fmt.Fprintf(&bundle, "%q: __page%d", name, i)
	}
	bundle.WriteString("};\n")

	if err := ctx.RunModuleSource(bundleEntry, bundle.String()); err != nil {
		return nil, err
	}

	for _, name := range names {
		invoker := fmt.Sprintf("globalThis.__pages[%q](args);", name)
		prog, err := ctx.Compile(invoker, name)
		if err != nil {
			return nil, err
		}
		invokers[name] = prog
	}

	return invokers, nil
}
