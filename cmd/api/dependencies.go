package main

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/FACorreiaa/statement-extractor/internal/statement/handler"
	"github.com/FACorreiaa/statement-extractor/internal/statement/header"
	"github.com/FACorreiaa/statement-extractor/internal/statement/registry"
	"github.com/FACorreiaa/statement-extractor/internal/statement/service"
	"github.com/FACorreiaa/statement-extractor/pkg/archive"
	"github.com/FACorreiaa/statement-extractor/pkg/config"
)

// Dependencies holds all application dependencies
type Dependencies struct {
	Config   *config.Config
	Logger   *slog.Logger
	Registry *prometheus.Registry

	Service *service.Service
	Handler *handler.Handler
}

// buildDependencies wires the extraction stack from configuration.
func buildDependencies(cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	policy, err := service.ParsePolicy(cfg.Extractor.ResponsePolicy)
	if err != nil {
		return nil, err
	}

	opts := []service.Option{service.WithPolicy(policy)}

	if cfg.Extractor.SynonymsPath != "" {
		synonyms, err := header.LoadSynonyms(cfg.Extractor.SynonymsPath)
		if err != nil {
			return nil, fmt.Errorf("load synonyms: %w", err)
		}
		opts = append(opts, service.WithSynonyms(synonyms))
	}

	if cfg.Extractor.RegistryPath != "" {
		regCfg, err := registry.LoadConfig(cfg.Extractor.RegistryPath)
		if err != nil {
			return nil, err
		}
		banks, err := regCfg.Build(logger)
		if err != nil {
			return nil, err
		}
		opts = append(opts, service.WithRegistry(banks))
	} else {
		opts = append(opts, service.WithRegistry(
			registry.DefaultRegistry(cfg.Extractor.Marker, logger)))
	}

	deps := &Dependencies{Config: cfg, Logger: logger}

	if cfg.Observability.MetricsEnabled {
		deps.Registry = prometheus.NewRegistry()
		deps.Registry.MustRegister(collectors.NewGoCollector())
		opts = append(opts, service.WithMetrics(service.NewMetrics(deps.Registry)))
	}

	deps.Service = service.New(logger, opts...)
	deps.Handler = handler.New(logger, deps.Service)

	if cfg.Extractor.ArchiveDir != "" {
		store, err := archive.NewLocal(cfg.Extractor.ArchiveDir)
		if err != nil {
			return nil, err
		}
		deps.Handler.WithArchive(store)
	}
	return deps, nil
}
