// Package module wires the opportunity pipeline into the API using modkit
package module

import (
	"net/http"

	modkit "dealflow/internal/modkit"
	"dealflow/internal/modkit/httpkit"
	"dealflow/internal/modkit/scope"
	str "dealflow/internal/platform/strings"
	oppshttp "dealflow/internal/services/api/opportunities/http"
	oppdom "dealflow/internal/services/opportunities/domain"
)

// Ports required by the API opportunities module
type Ports struct {
	Writer oppdom.WriterPort
	Reader oppdom.ReaderPort
}

// Module implements the API opportunities module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws      []func(http.Handler) http.Handler
	ports    Ports
	register func(httpkit.Router)

	subrouter func(httpkit.Router) httpkit.Router
}

// New constructs the API opportunities module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("api.opportunities"),
		modkit.WithPrefix("/opportunities"),
	}, opts...)...)

	ports, ok := b.Ports.(Ports)
	if !ok || ports.Writer == nil || ports.Reader == nil {
		panic("api opportunities module: expected WithPorts(module.Ports) with Writer and Reader")
	}

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       append([]func(http.Handler) http.Handler{actorScope}, b.Mw...),
		subrouter: b.Subrouter,
		ports:     ports,
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		oppshttp.Register(r, oppshttp.Ports{Writer: m.ports.Writer, Reader: m.ports.Reader})
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

// actorScope threads the calling operator into the request scope so status
// and deal mutations can attribute their audit events
func actorScope(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if who := r.Header.Get("X-Actor"); who != "" {
			r = r.WithContext(scope.With(r.Context(), map[string]string{"actor": who}))
		}
		next.ServeHTTP(w, r)
	})
}
