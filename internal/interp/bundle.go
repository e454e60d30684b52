package interp

import (
	"strings"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/borolgs/js-runtime/internal/loader"
	"github.com/borolgs/js-runtime/internal/resolve"
	"github.com/borolgs/js-runtime/internal/rterr"
	"github.com/borolgs/js-runtime/internal/sourcetree"
)

// vfsNamespace tags every module resolved through the Source Tree, as
// opposed to esbuild's own default (file-less) namespace.
const vfsNamespace = "runtime-vfs"

// bundleModule follows name's static import graph -- resolving every
// specifier with resolve.Normalize and loading every file with loader.Load,
// which already applies the Transpiler by extension -- and links the
// result into one self-contained IIFE program text via esbuild. This lets
// the Interpreter Context run an entire module graph with a single
// goja.RunProgram call, without depending on goja's native ES module
// support.
func bundleModule(tree *sourcetree.Tree, name string, overrides map[string]string) (string, error) {
	plugin := api.Plugin{
		Name: "runtime-vfs",
		Setup: func(build api.PluginBuild) {
			build.OnResolve(api.OnResolveOptions{Filter: ".*"},
				func(args api.OnResolveArgs) (api.OnResolveResult, error) {
					canonical := args.Path
					if args.Kind != api.ResolveEntryPoint {
						base := args.Importer
						if base == "" {
							base = name
						}
						canonical = resolve.Normalize(base, args.Path)
					}
					return api.OnResolveResult{Path: canonical, Namespace: vfsNamespace}, nil
				})

			build.OnLoad(api.OnLoadOptions{Filter: ".*", Namespace: vfsNamespace},
				func(args api.OnLoadArgs) (api.OnLoadResult, error) {
					if text, ok := overrides[args.Path]; ok {
						return api.OnLoadResult{Contents: &text, Loader: api.LoaderJS}, nil
					}
					text, err := loader.Load(tree, args.Path)
					if err != nil {
						return api.OnLoadResult{}, err
					}
					return api.OnLoadResult{Contents: &text, Loader: api.LoaderJS}, nil
				})
		},
	}

	result := api.Build(api.BuildOptions{
		EntryPoints: []string{name},
		Bundle:      true,
		Format:      api.FormatIIFE,
		GlobalName:  "__module",
		Plugins:     []api.Plugin{plugin},
		Write:       false,
	})

	if len(result.Errors) > 0 {
		var msgs []string
		for _, m := range result.Errors {
			msgs = append(msgs, m.Text)
		}
		return "", rterr.New(rterr.Execution, strings.Join(msgs, "; "))
	}
	if len(result.OutputFiles) == 0 {
		return "", rterr.New(rterr.Execution, "bundling "+name+" produced no output")
	}

	return string(result.OutputFiles[0].Contents), nil
}
