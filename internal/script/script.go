// Package script implements the Script Request/Response data model and
// Script Preparation (C10): resolving a request into the (args,
// source-or-compiled) pair the Interpreter Context evaluates.
package script

import (
	"fmt"

	"github.com/dop251/goja"

	"github.com/borolgs/js-runtime/internal/rterr"
)

// Request is the tagged Script Request variant: Inline, Named, or Page.
type Request interface {
	isRequest()
}

// Inline is ad-hoc code supplied in the request itself.
type Inline struct {
	Args any
	Code string
}

// Named invokes a precompiled callable by key.
type Named struct {
	Args any
	Name string
}

// Page renders a registered page template by name.
type Page struct {
	Args any
	Name string
}

func (Inline) isRequest() {}
func (Named) isRequest()  {}
func (Page) isRequest()   {}

// Response is the Script Response: the stringified result of the last
// expression plus the concatenated console output.
type Response struct {
	Output        string `json:"output"`
	ConsoleOutput string `json:"console_output"`
}

// Prepared is the (args, source-or-compiled) pair a Worker hands to the
// Interpreter Context. Exactly one of Source or Compiled is set.
type Prepared struct {
	Args     any
	Source   string
	Compiled *goja.Program
}

// Prepare resolves req against the worker's compiled function table.
func Prepare(req Request, functions map[string]*goja.Program) (Prepared, error) {
	switch r := req.(type) {
	case Inline:
		return Prepared{Args: r.Args, Source: r.Code}, nil

	case Named:
		prog, ok := functions[r.Name]
		if !ok {
			return Prepared{}, rterr.New(rterr.FunctionNotFound, "function "+r.Name+" not found")
		}
		return Prepared{Args: r.Args, Compiled: prog}, nil

	case Page:
		if prog, ok := functions[r.Name]; ok {
			return Prepared{Args: r.Args, Compiled: prog}, nil
		}
		// No compiled invoker made it into the table (page discovery
		// failed or the page was never built); fall back to a runtime
		// lookup so the worker stays responsive. The registry itself may be
		// unset when no page bundle ever ran.
		src := fmt.Sprintf(
			`globalThis.__pages && globalThis.__pages[%q] ? globalThis.__pages[%q](args) : 'Page "%s" not found'`,
			r.Name, r.Name, r.Name,
		)
		return Prepared{Args: r.Args, Source: src}, nil

	default:
		return Prepared{}, rterr.New(rterr.Unexpected, "unknown script request type")
	}
}
