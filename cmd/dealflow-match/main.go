package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strconv"

	"dealflow/internal/modkit"
	"dealflow/internal/modkit/module"
	"dealflow/internal/platform/config"
	"dealflow/internal/platform/logger"
	"dealflow/internal/platform/store"

	matchdom "dealflow/internal/services/match/domain"
	matchmod "dealflow/internal/services/match/module"

	oppsmod "dealflow/internal/services/opportunities/module"
	orgsmod "dealflow/internal/services/orgs/module"
)

func mustSetEnv(k, v string) {
	if v != "" {
		_ = os.Setenv(k, v)
	}
}

func main() {
	root := config.New()
	pgCfg := root.Prefix("SERVICE_PGSQL_")
	l := logger.Get()

	st, err := store.Open(context.Background(), store.Config{
		PG: store.PGConfig{
			Enabled:     true,
			URL:         pgCfg.MustString("DBURL"),
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", true),
		},
	}, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	var (
		kind     = flag.String("kind", "", "anchor kind: fundraiser, provider, or partner")
		anchor   = flag.Int64("anchor", 0, "anchor entity id")
		all      = flag.Bool("all", false, "regenerate for every anchor of -kind")
		topK     = flag.Int("top-k", 20, "max opportunities to persist")
		minScore = flag.Float64("min-score", 0, "threshold below which candidates are dropped")
		workers  = flag.Int("workers", 4, "scoring concurrency (>=1)")
	)
	flag.Parse()

	if *all == (*anchor > 0) {
		log.Fatal("set exactly one of -all or -anchor")
	}

	// Pass CLI flags into CORE_MATCH_* so the module can read its own config
	mustSetEnv("CORE_MATCH_WORKERS", strconv.Itoa(*workers))

	deps := modkit.Deps{
		Cfg: root,
		PG:  st.PG,
		Log: *l,
	}

	// Build dependency modules first
	orgs := orgsmod.New(deps)
	opps := oppsmod.New(deps)

	// Build match module with ports injected from deps modules
	mm := matchmod.New(
		deps,
		matchmod.Options{Workers: *workers},
		modkit.WithPorts(matchdom.Ports{
			Directory:     module.MustPortsOf[orgsmod.Ports](orgs).Reader,
			Opportunities: module.MustPortsOf[oppsmod.Ports](opps).Writer,
		}),
	)

	// Register ports
	module.Register(orgs.Name(), orgs.Ports())
	module.Register(opps.Name(), opps.Ports())
	module.Register(mm.Name(), mm.Ports())

	// Kick the runner
	runner := mm.Ports().(matchmod.Ports).Runner
	in := matchdom.Input{AnchorID: *anchor, TopK: *topK, MinScore: *minScore}

	if *all {
		// every anchor of the kind; per-anchor failures are counted, not fatal
		batch, err := runner.GenerateAll(context.Background(), matchdom.AnchorKind(*kind), in)
		if err != nil {
			l.Fatal().Err(err).Msg("batch failed")
		}
		l.Info().
			Int("anchors", batch.Anchors).
			Int("created", batch.Created).
			Int("failed", batch.Failed).
			Msg("batch complete")
		return
	}

	var res matchdom.Result
	switch *kind {
	case "fundraiser":
		res, err = runner.GenerateForFundraiser(context.Background(), in)
	case "provider":
		res, err = runner.GenerateForProvider(context.Background(), in)
	case "partner":
		res, err = runner.GenerateForPartner(context.Background(), in)
	default:
		log.Fatalf("bad -kind %q: want fundraiser, provider, or partner", *kind)
	}
	if err != nil {
		l.Fatal().Err(err).Msg("match failed")
	}
	l.Info().Int("created", res.Created).Msg("match complete")
}
