// Package module implements the match module
package module

import (
	"net/http"

	"dealflow/internal/modkit"
	"dealflow/internal/modkit/httpkit"
	"dealflow/internal/services/match/domain"
	"dealflow/internal/services/match/service"
)

// Ports exposed by the match module
type Ports struct {
	Runner domain.RunnerPort
}

// Module implements modkit.Module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new match module
func New(deps modkit.Deps, overrides Options, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("match"),
	}, opts...)...)

	// Basic guardrails against incorrect wiring
	ports, ok := b.Ports.(domain.Ports)
	if !ok {
		panic("match module: expected WithPorts(match/domain.Ports)")
	}
	if ports.Directory == nil || ports.Opportunities == nil {
		panic("match module: Ports missing Directory or Opportunities")
	}

	// Merge config + overrides
	cfg := FromConfig(deps.Cfg)
	if overrides.Workers != 0 {
		cfg.Workers = overrides.Workers
	}

	runner := service.New(
		ports.Directory,
		ports.Opportunities,
		service.Config{Workers: cfg.Workers},
	)

	m := &Module{deps: deps}
	m.ports = Ports{Runner: runner}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "match" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix satisfies modkit.Module
func (m *Module) Prefix() string { return "" }

// Middlewares satisfies modkit.Module
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return nil }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(_ httpkit.Router) {}
