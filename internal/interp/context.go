// Package interp implements the Interpreter Context (C6): a wrapper over a
// single goja.Runtime instance that holds globals, the console sink, and
// compiles/evaluates both plain source text and bundled module graphs.
package interp

import (
	"github.com/dop251/goja"

	"github.com/borolgs/js-runtime/internal/consolesink"
	"github.com/borolgs/js-runtime/internal/rterr"
	"github.com/borolgs/js-runtime/internal/sourcetree"
)

// Context wraps one goja.Runtime. A Context belongs to exactly one Worker
// goroutine and is never shared.
type Context struct {
	vm   *goja.Runtime
	tree *sourcetree.Tree
}

// New constructs a Context whose module graph is resolved against tree.
// tree may be nil -- only the synthetic jsxruntime.Specifier module
// resolves in that case.
func New(tree *sourcetree.Tree) *Context {
	return &Context{vm: goja.New(), tree: tree}
}

// SetGlobal binds name to value in the context's global scope.
func (c *Context) SetGlobal(name string, value any) error {
	if err := c.vm.Set(name, value); err != nil {
		return rterr.Wrap(rterr.Serialisation, "set global "+name, err)
	}
	return nil
}

// InstallConsole replaces the context's active console object with one
// backed by sink. Call this once per evaluation with a fresh sink.
func (c *Context) InstallConsole(sink *consolesink.Sink) error {
	obj := c.vm.NewObject()
	bind := func(level string) {
		_ = obj.Set(level, func(call goja.FunctionCall) goja.Value {
			args := make([]string, len(call.Arguments))
			for i, a := range call.Arguments {
				args[i] = stringify(a)
			}
			sink.Log(level, args)
			return goja.Undefined()
		})
	}
	bind("log")
	bind("info")
	bind("warn")
	bind("error")

	if err := c.vm.Set("console", obj); err != nil {
		return rterr.Wrap(rterr.ContextInit, "install console", err)
	}
	return nil
}

// Compile parses src under the given name into a reusable, engine-opaque
// handle. The handle is only valid for this Context's goja.Runtime.
func (c *Context) Compile(src, name string) (*goja.Program, error) {
	prog, err := goja.Compile(name, src, false)
	if err != nil {
		return nil, rterr.Wrap(rterr.Parse, "compile "+name, err)
	}
	return prog, nil
}

// Eval runs src as a plain script and stringifies its result.
func (c *Context) Eval(src string) (string, error) {
	v, err := c.vm.RunString(src)
	if err != nil {
		return "", rterr.Wrap(rterr.Execution, "evaluation failed", err)
	}
	return stringify(v), nil
}

// EvalCompiled runs a previously compiled handle and stringifies its
// result.
func (c *Context) EvalCompiled(p *goja.Program) (string, error) {
	v, err := c.vm.RunProgram(p)
	if err != nil {
		return "", rterr.Wrap(rterr.Execution, "evaluation failed", err)
	}
	return stringify(v), nil
}

// RunModule bundles name's static import graph (see bundle.go) and runs it
// as a single program, for its side effects on globalThis.
func (c *Context) RunModule(name string) error {
	return c.runModule(name, nil)
}

// RunModuleSource behaves like RunModule, but source supplies the entry
// module's own text directly rather than looking it up in the Source
// Tree -- used by the Page Bundle Builder to run its synthesized,
// in-memory bundle module.
func (c *Context) RunModuleSource(name, source string) error {
	return c.runModule(name, map[string]string{name: source})
}

func (c *Context) runModule(name string, overrides map[string]string) error {
	bundled, err := bundleModule(c.tree, name, overrides)
	if err != nil {
		return err
	}
	prog, err := c.Compile(bundled, name)
	if err != nil {
		return err
	}
	if _, err := c.vm.RunProgram(prog); err != nil {
		return rterr.Wrap(rterr.Execution, "run module "+name, err)
	}
	return nil
}

// stringify performs the engine's native ToString coercion -- the same
// coercion String(value) triggers in script -- including undefined ->
// "undefined".
func stringify(v goja.Value) string {
	if v == nil {
		return "undefined"
	}
	return v.String()
}
