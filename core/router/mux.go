package router

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"
	"slices"
	"strings"
	"sync"

	"github.com/Arokeji/Nailted-Back/core/handler"
)

var validMethods = map[string]struct{}{
	http.MethodGet:     {},
	http.MethodHead:    {},
	http.MethodPost:    {},
	http.MethodPut:     {},
	http.MethodPatch:   {},
	http.MethodDelete:  {},
	http.MethodConnect: {},
	http.MethodOptions: {},
	http.MethodTrace:   {},
}

// shared holds the state common to a root router and all its sub-routers.
type shared[C handler.Context] struct {
	serveMux     *http.ServeMux
	errorHandler handler.ErrorHandler[C]
	newContext   func(http.ResponseWriter, *http.Request, map[string]string) C
	logger       *slog.Logger

	mu     sync.RWMutex
	routes []Route
}

// mux is the Router implementation. Sub-routers share the root's ServeMux
// and carry their own prefix and middleware stack.
type mux[C handler.Context] struct {
	*shared[C]
	prefix      string
	middlewares []handler.Middleware[C]
}

func newMux[C handler.Context](opts ...Option[C]) *mux[C] {
	m := &mux[C]{
		shared: &shared[C]{
			serveMux:     http.NewServeMux(),
			errorHandler: defaultErrorHandler[C],
			logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		},
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.newContext == nil {
		var zero C
		if _, ok := any(zero).(*Context); !ok {
			panic(ErrNoContextFactory)
		}
		m.newContext = func(w http.ResponseWriter, r *http.Request, params map[string]string) C {
			return any(NewContext(w, r, params)).(C)
		}
	}

	// Unmatched requests still go through the typed error handler.
	m.serveMux.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := newResponseWriter(w)
		m.errorHandler(m.newContext(ww, r, nil), ErrNotFound)
	}))

	return m
}

// ServeHTTP implements http.Handler.
func (m *mux[C]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.serveMux.ServeHTTP(w, r)
}

func (m *mux[C]) Get(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodGet, pattern, h)
}

func (m *mux[C]) Post(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodPost, pattern, h)
}

func (m *mux[C]) Put(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodPut, pattern, h)
}

func (m *mux[C]) Patch(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodPatch, pattern, h)
}

func (m *mux[C]) Delete(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodDelete, pattern, h)
}

func (m *mux[C]) Handle(pattern string, h handler.HandlerFunc[C]) {
	m.handle("", pattern, h)
}

func (m *mux[C]) Method(pattern string, h handler.HandlerFunc[C], methods ...string) {
	for _, method := range methods {
		m.handle(strings.ToUpper(method), pattern, h)
	}
}

func (m *mux[C]) Use(middlewares ...handler.Middleware[C]) {
	m.middlewares = append(m.middlewares, middlewares...)
}

func (m *mux[C]) With(middlewares ...handler.Middleware[C]) Router[C] {
	return m.child("", middlewares)
}

func (m *mux[C]) Group(fn func(r Router[C])) Router[C] {
	sub := m.child("", nil)
	if fn != nil {
		fn(sub)
	}
	return sub
}

func (m *mux[C]) Route(pattern string, fn func(r Router[C])) Router[C] {
	if !strings.HasPrefix(pattern, "/") {
		panic(fmt.Errorf("%w: %q", ErrInvalidPattern, pattern))
	}
	sub := m.child(strings.TrimSuffix(pattern, "/"), nil)
	if fn != nil {
		fn(sub)
	}
	return sub
}

func (m *mux[C]) Routes() []Route {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.routes)
}

func (m *mux[C]) child(prefix string, extra []handler.Middleware[C]) *mux[C] {
	mws := make([]handler.Middleware[C], 0, len(m.middlewares)+len(extra))
	mws = append(mws, m.middlewares...)
	mws = append(mws, extra...)
	return &mux[C]{
		shared:      m.shared,
		prefix:      m.prefix + prefix,
		middlewares: mws,
	}
}

func (m *mux[C]) handle(method, pattern string, h handler.HandlerFunc[C]) {
	if h == nil {
		panic(ErrNilHandler)
	}
	if method != "" {
		if _, ok := validMethods[method]; !ok {
			panic(fmt.Errorf("%w: %q", ErrInvalidMethod, method))
		}
	}

	full := m.prefix + pattern
	if full == "" {
		full = "/"
	}
	if !strings.HasPrefix(full, "/") {
		panic(fmt.Errorf("%w: %q", ErrInvalidPattern, full))
	}

	names := paramNames(full)
	endpoint := handler.Chain(h, m.middlewares...)

	key := full
	if method != "" {
		key = method + " " + full
	}
	m.serveMux.Handle(key, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.serve(w, r, names, endpoint)
	}))

	m.mu.Lock()
	m.routes = append(m.routes, Route{Method: method, Pattern: full})
	m.mu.Unlock()
}

func (m *mux[C]) serve(w http.ResponseWriter, r *http.Request, names []string, endpoint handler.HandlerFunc[C]) {
	ww := newResponseWriter(w)

	var params map[string]string
	if len(names) > 0 {
		params = make(map[string]string, len(names))
		for _, name := range names {
			params[name] = r.PathValue(name)
		}
	}

	ctx := m.newContext(ww, r, params)

	defer func() {
		if p := recover(); p != nil {
			perr := &panicError{value: p, stack: debug.Stack()}
			if ww.Written() {
				m.logger.Error("panic after response written",
					slog.Any("value", perr.value),
					slog.String("stack", string(perr.stack)),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Int("status", ww.Status()),
				)
				return
			}
			m.errorHandler(ctx, perr)
		}
	}()

	resp := endpoint(ctx)
	if resp == nil {
		m.errorHandler(ctx, ErrNilResponse)
		return
	}

	if err := resp(ww, ctx.Request()); err != nil {
		if ww.Written() {
			m.logger.Error("response error after write",
				slog.Any("error", err),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			)
			return
		}
		m.errorHandler(ctx, err)
	}
}

// paramNames extracts wildcard names from a ServeMux pattern.
func paramNames(pattern string) []string {
	var names []string
	for {
		start := strings.IndexByte(pattern, '{')
		if start < 0 {
			return names
		}
		end := strings.IndexByte(pattern[start:], '}')
		if end < 0 {
			return names
		}
		name := strings.TrimSuffix(pattern[start+1:start+end], "...")
		if name != "" && name != "$" {
			names = append(names, name)
		}
		pattern = pattern[start+end+1:]
	}
}
