// Package module implements the directory read module
package module

import (
	"dealflow/internal/modkit"
	"dealflow/internal/modkit/httpkit"
	"dealflow/internal/modkit/repokit"
	"dealflow/internal/services/orgs/domain"
	"dealflow/internal/services/orgs/repo"
	"dealflow/internal/services/orgs/service"
)

// Ports exposed by the orgs module
type Ports struct {
	Reader domain.ReaderPort
}

// Module implements the orgs directory module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new orgs module
func New(deps modkit.Deps) *Module {
	binder := repo.NewPG()
	svc := service.New(repokit.TxRunner(deps.PG), binder)

	m := &Module{deps: deps}
	m.ports = Ports{Reader: svc}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "orgs" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix satisfies modkit.Module
func (m *Module) Prefix() string { return "" }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {}
