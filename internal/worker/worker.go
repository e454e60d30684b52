// Package worker implements the Worker (C8): it owns one Interpreter
// Context, bootstraps the compiled function table and page registry, and
// runs the receive-evaluate-reply loop.
package worker

import (
	"fmt"

	"github.com/dop251/goja"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/borolgs/js-runtime/internal/consolesink"
	"github.com/borolgs/js-runtime/internal/interp"
	"github.com/borolgs/js-runtime/internal/pages"
	"github.com/borolgs/js-runtime/internal/queue"
	"github.com/borolgs/js-runtime/internal/rterr"
	"github.com/borolgs/js-runtime/internal/script"
	"github.com/borolgs/js-runtime/internal/sourcetree"
	"github.com/borolgs/js-runtime/internal/transpile"
)

// Message is one request routed through the shared queue, carrying its own
// one-shot reply channel.
type Message struct {
	Req   script.Request
	Reply chan Reply
}

// Reply is a Worker's answer to one Message.
type Reply struct {
	Resp script.Response
	Err  error
}

// Worker owns exactly one Interpreter Context and the compiled function
// table built from it during bootstrap.
type Worker struct {
	id        uuid.UUID
	ctx       *interp.Context
	functions map[string]*goja.Program
	logger    *logrus.Logger
}

// New builds an Interpreter Context, compiles every entry of
// functionSources (transpiling .ts/.tsx names first), runs the Page Bundle
// Builder, and returns a ready-to-run Worker. Failures compiling
// functionSources are fatal, matching the Worker bootstrap's step 4; page
// bundle failures are logged and non-fatal (step 5).
func New(tree *sourcetree.Tree, functionSources map[string]string, pagesDir string, logger *logrus.Logger) (*Worker, error) {
	ctx := interp.New(tree)

	if err := ctx.SetGlobal("ctx", map[string]any{"name": "script"}); err != nil {
		return nil, rterr.Wrap(rterr.ContextInit, "set ctx global", err)
	}

	functions := make(map[string]*goja.Program, len(functionSources))
	for name, source := range functionSources {
		src := source
		if kind, needsTranspile := transpile.KindFromExtension(name); needsTranspile {
			out, err := transpile.Transpile(src, kind)
			if err != nil {
				return nil, rterr.Wrap(rterr.Transpile, "function "+name, err)
			}
			src = out
		}
		prog, err := ctx.Compile(src, name)
		if err != nil {
			return nil, rterr.Wrap(rterr.ContextInit, "compile function "+name, err)
		}
		functions[name] = prog
	}

	pageInvokers, err := pages.Build(ctx, tree, pagesDir)
	if err != nil {
		logger.WithError(err).Warn("page bundle builder failed; pages will render as not-found")
	} else {
		for name, prog := range pageInvokers {
			functions[name] = prog
		}
	}

	return &Worker{id: uuid.New(), ctx: ctx, functions: functions, logger: logger}, nil
}

// Run drains q until it is closed, evaluating each request in receipt
// order. A panic during evaluation is recovered here and terminates only
// this Worker -- the runtime degrades by one worker's capacity, matching
// §5's panic-isolation guarantee. The in-flight message's reply channel
// always gets a terminal reply before Run returns, even on panic, so its
// caller never blocks forever on a reply that will never arrive.
func (w *Worker) Run(q *queue.Queue[Message]) {
	var current *Message
	defer func() {
		if r := recover(); r != nil {
			w.logger.WithFields(logrus.Fields{
				"worker_id": w.id,
				"panic":     r,
			}).Error("worker panicked; this worker's capacity is now gone")

			if current != nil {
				err := rterr.New(rterr.Unexpected, fmt.Sprintf("worker panicked: %v", r))
				select {
				case current.Reply <- Reply{Err: err}:
				default:
				}
			}
		}
	}()

	for {
		msg, ok := q.Recv()
		if !ok {
			return
		}
		current = &msg
		resp, err := w.handle(msg.Req)
		current = nil
		select {
		case msg.Reply <- Reply{Resp: resp, Err: err}:
		default:
			// caller dropped its reply channel; best-effort delivery only.
		}
	}
}

func (w *Worker) handle(req script.Request) (script.Response, error) {
	requestID := uuid.New()
	log := w.logger.WithFields(logrus.Fields{"worker_id": w.id, "request_id": requestID})

	prepared, err := script.Prepare(req, w.functions)
	if err != nil {
		log.WithError(err).Debug("script preparation failed")
		return script.Response{}, err
	}

	if err := w.ctx.SetGlobal("args", prepared.Args); err != nil {
		return script.Response{}, err
	}

	sink := consolesink.New(w.logger)
	if err := w.ctx.InstallConsole(sink); err != nil {
		return script.Response{}, err
	}

	var output string
	if prepared.Compiled != nil {
		output, err = w.ctx.EvalCompiled(prepared.Compiled)
	} else {
		output, err = w.ctx.Eval(prepared.Source)
	}
	if err != nil {
		log.WithError(err).Debug("evaluation failed")
		return script.Response{}, err
	}

	return script.Response{Output: output, ConsoleOutput: sink.String()}, nil
}
