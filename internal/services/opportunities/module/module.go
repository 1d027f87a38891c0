// Package module implements the opportunities pipeline module
package module

import (
	"dealflow/internal/modkit"
	"dealflow/internal/modkit/httpkit"
	"dealflow/internal/modkit/repokit"
	"dealflow/internal/services/opportunities/domain"
	"dealflow/internal/services/opportunities/repo"
	"dealflow/internal/services/opportunities/service"
)

// Ports exposed by the opportunities module
type Ports struct {
	Writer domain.WriterPort
	Reader domain.ReaderPort
}

// Module implements the opportunities pipeline module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new opportunities module
func New(deps modkit.Deps) *Module {
	opts := FromConfig(deps.Cfg)

	binder := repo.NewPG()
	svc := service.New(repokit.TxRunner(deps.PG), binder, service.Config{
		HardLimit: opts.HardLimit,
	})

	m := &Module{deps: deps}
	m.ports = Ports{
		Writer: svc,
		Reader: svc,
	}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "opportunities" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix satisfies modkit.Module
func (m *Module) Prefix() string { return "" }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {}
