// Package cli wires the resolution engine behind a set of cobra commands.
package cli

import (
	"fmt"

	"shopfeed/internal/config"
	"shopfeed/internal/extract"
	"shopfeed/internal/feedspec"
	"shopfeed/internal/feedspec/seed"
	"shopfeed/internal/logger"
	"shopfeed/internal/reprocess"
	"shopfeed/internal/resolve"
	"shopfeed/internal/store"
	"shopfeed/internal/transform"
	"shopfeed/internal/validate"
)

// engine bundles the wired components a command works with.
type engine struct {
	cfg          config.Config
	log          logger.Logger
	store        *store.Store
	registry     *feedspec.Registry
	orchestrator *reprocess.Orchestrator
}

// newEngine builds the full stack: specification registry (cross-checked
// against the path grammar and the transform catalog), store, resolver,
// validator and orchestrator.
func newEngine() (*engine, error) {
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	registry, err := feedspec.NewRegistry(seed.GenerateFeedAttributes())
	if err != nil {
		return nil, fmt.Errorf("failed to load attribute specifications: %w", err)
	}

	transforms := transform.NewRegistry()
	if err := registry.Check(extract.Checker{}, transforms); err != nil {
		return nil, fmt.Errorf("attribute specifications are inconsistent: %w", err)
	}

	st, err := store.NewStore(cfg.ConnectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	resolver := resolve.New(transforms, log)
	validator := validate.New(registry)
	orch := reprocess.New(st, registry, resolver, validator, log, cfg.Reprocess)

	return &engine{
		cfg:          cfg,
		log:          log,
		store:        st,
		registry:     registry,
		orchestrator: orch,
	}, nil
}

// newEngineWithoutStore wires everything except the database, for commands
// that only inspect the attribute specifications.
func newEngineWithoutStore() (*engine, error) {
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	registry, err := feedspec.NewRegistry(seed.GenerateFeedAttributes())
	if err != nil {
		return nil, fmt.Errorf("failed to load attribute specifications: %w", err)
	}
	if err := registry.Check(extract.Checker{}, transform.NewRegistry()); err != nil {
		return nil, fmt.Errorf("attribute specifications are inconsistent: %w", err)
	}

	return &engine{cfg: cfg, log: log, registry: registry}, nil
}

func (e *engine) close() {
	if err := e.store.Close(); err != nil {
		e.log.Warnw("failed to close store", "error", err)
	}
}
