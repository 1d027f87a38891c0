// Package api provides the HTTP API for the application
package api

import (
	"dealflow/internal/platform/config"
	"dealflow/internal/platform/logger"
	phttp "dealflow/internal/platform/net/http"
	"dealflow/internal/platform/store"

	"dealflow/internal/modkit"
	"dealflow/internal/modkit/httpkit"
	"dealflow/internal/modkit/module"
	"dealflow/internal/modkit/swaggerkit"

	apimatch "dealflow/internal/services/api/match/module"
	metamod "dealflow/internal/services/api/meta/module"
	apiopps "dealflow/internal/services/api/opportunities/module"

	matchdom "dealflow/internal/services/match/domain"
	matchmod "dealflow/internal/services/match/module"
	oppsmod "dealflow/internal/services/opportunities/module"
	orgsmod "dealflow/internal/services/orgs/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
	}

	// Worker-side modules first so their ports can be injected downstream
	orgs := orgsmod.New(deps)
	opps := oppsmod.New(deps)

	orgPorts := module.MustPortsOf[orgsmod.Ports](orgs)
	oppPorts := module.MustPortsOf[oppsmod.Ports](opps)

	match := matchmod.New(deps, matchmod.Options{}, modkit.WithPorts(matchdom.Ports{
		Directory:     orgPorts.Reader,
		Opportunities: oppPorts.Writer,
	}))
	matchPorts := module.MustPortsOf[matchmod.Ports](match)

	// API modules that expose the worker ports over HTTP
	apiMatch := apimatch.New(deps, modkit.WithPorts(apimatch.Ports{
		Runner: matchPorts.Runner,
	}))
	apiOpps := apiopps.New(deps, modkit.WithPorts(apiopps.Ports{
		Writer: oppPorts.Writer,
		Reader: oppPorts.Reader,
	}))

	mods := []module.Module{
		metamod.New(deps),
		orgs,  // registered so cross-module lookups can reach the directory
		opps,  // registered so cross-module lookups can reach the pipeline
		match, // registered so workers can reach the runner
		apiMatch,
		apiOpps,
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
}
