// Package runtime is the Runtime Front-End (C9): the public handle a host
// process constructs once, which owns the request queue and converts
// caller futures into worker messages and back.
package runtime

import (
	"io/fs"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/borolgs/js-runtime/html"
	"github.com/borolgs/js-runtime/internal/future"
	"github.com/borolgs/js-runtime/internal/queue"
	"github.com/borolgs/js-runtime/internal/rterr"
	"github.com/borolgs/js-runtime/internal/script"
	"github.com/borolgs/js-runtime/internal/sourcetree"
	"github.com/borolgs/js-runtime/internal/worker"
)

// Request, Response and the three request variants are re-exported from
// internal/script so callers outside this module's internal tree can
// construct them without reaching into an internal package themselves.
type (
	Request  = script.Request
	Inline   = script.Inline
	Named    = script.Named
	Page     = script.Page
	Response = script.Response
)

// DefaultWorkers matches the original implementation's RuntimeConfig
// default.
const DefaultWorkers = 5

// DefaultPagesDir is the Source Tree directory scanned for *.jsx pages
// when Config.PagesDir is empty.
const DefaultPagesDir = "pages"

// Config configures a Runtime at construction time.
type Config struct {
	// Workers is the number of worker goroutines to spawn. Defaults to
	// DefaultWorkers when <= 0.
	Workers int
	// Functions maps a callable name to its source text. Names ending in
	// .ts/.tsx are transpiled before compiling.
	Functions map[string]string
	// SourceTree is committed as the process-wide Source Tree (C1) the
	// first time any Runtime commits one. May be nil.
	SourceTree fs.FS
	// PagesDir is the Source Tree directory scanned for page templates.
	// Defaults to DefaultPagesDir when empty.
	PagesDir string
	// Logger receives all ambient logging. Defaults to logrus's standard
	// logger.
	Logger *logrus.Logger
}

// Runtime is the public handle. It is safe for concurrent use by multiple
// goroutines.
type Runtime struct {
	q      *queue.Queue[worker.Message]
	logger *logrus.Logger

	mu     sync.Mutex
	closed bool
}

// New constructs a Runtime and eagerly spawns cfg.Workers worker
// goroutines. Worker bootstrap happens inside each goroutine, not here --
// a worker whose bootstrap fails logs the error and exits without ever
// entering its receive loop, degrading capacity by one rather than failing
// New itself (matching the original implementation, where worker threads
// are spawned before their own initialisation runs).
func New(cfg Config) (*Runtime, error) {
	workers := cfg.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	pagesDir := cfg.PagesDir
	if pagesDir == "" {
		pagesDir = DefaultPagesDir
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	if cfg.SourceTree != nil {
		sourcetree.Commit(cfg.SourceTree)
	}
	tree := sourcetree.Global()

	q := queue.New[worker.Message]()
	rt := &Runtime{q: q, logger: logger}

	for i := 0; i < workers; i++ {
		functionsCopy := make(map[string]string, len(cfg.Functions))
		for name, source := range cfg.Functions {
			functionsCopy[name] = source
		}

		go func() {
			w, err := worker.New(tree, functionsCopy, pagesDir, logger)
			if err != nil {
				logger.WithError(err).Error("worker bootstrap failed; worker will not start")
				return
			}
			w.Run(q)
		}()
	}

	return rt, nil
}

// Execute sends req to any idle worker and returns a future that resolves
// once that worker replies.
func (rt *Runtime) Execute(req script.Request) *future.Future[script.Response] {
	return future.New(func() (script.Response, error) {
		reply := make(chan worker.Reply, 1)
		if ok := rt.q.Send(worker.Message{Req: req, Reply: reply}); !ok {
			return script.Response{}, rterr.New(rterr.Channel, "runtime is closed")
		}

		r, ok := <-reply
		if !ok {
			return script.Response{}, rterr.New(rterr.Channel, "worker reply channel closed")
		}
		return r.Resp, r.Err
	})
}

// Render is a convenience wrapper around Execute(script.Page{...}) that
// wraps the response body as HTML.
func (rt *Runtime) Render(args any, page string) *future.Future[html.Response] {
	return future.New(func() (html.Response, error) {
		resp, err := rt.Execute(script.Page{Args: args, Name: page}).Get()
		if err != nil {
			return html.Response{}, err
		}
		return html.Response{Body: resp.Output}, nil
	})
}

// Close closes the request queue. Idempotent. Requests already enqueued
// are still drained by their assigned worker; requests submitted after
// Close returns get an immediate Channel error instead of being silently
// dropped.
func (rt *Runtime) Close() {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	if rt.closed {
		return
	}
	rt.closed = true
	rt.q.Close()
}
