// Interlink - Content Directory Relevance and Entity Linking Engine
// Copyright 2026 C. Palmer (cpalmer418)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cpalmer418/interlink

// Package main is the entry point for the Interlink server.
//
// Interlink powers the relevance and entity-linking layer of a content
// directory site: related-content selection, automatic entity linking in
// editorial markdown, internal-link suggestions and per-page entity graphs.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: layered settings from defaults, config file and
//     environment variables (Koanf v2)
//  2. Catalog store: BadgerDB-backed content catalog, optionally seeded
//     from a JSON file at startup
//  3. Entity dictionary: canonical entity registry built from published
//     products plus the static entity list
//  4. Engine: relevance selector, auto-linker, suggestion analyzer and
//     graph assembler behind one facade
//  5. HTTP server: Chi-routed REST API with Prometheus metrics
//
// All long-running services run under a suture supervisor tree.
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins): environment variables, config file (config.yaml),
// built-in defaults. Key variables:
//
//   - SITE_BASE_URL: canonical site origin (required in production)
//   - HTTP_PORT: listen port (default: 8710)
//   - STORE_PATH: BadgerDB directory (default: /data/interlink)
//   - STORE_SEED_FILE: JSON catalog to load at startup
//   - DICTIONARY_STATIC_ENTITIES: comma-separated well known entity names
//
// # Signal Handling
//
// The server shuts down gracefully on SIGINT and SIGTERM: the HTTP server
// drains active connections, then the catalog store closes.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cpalmer418/interlink/internal/api"
	"github.com/cpalmer418/interlink/internal/authors"
	"github.com/cpalmer418/interlink/internal/config"
	"github.com/cpalmer418/interlink/internal/engine"
	"github.com/cpalmer418/interlink/internal/entity"
	"github.com/cpalmer418/interlink/internal/graph"
	"github.com/cpalmer418/interlink/internal/logging"
	"github.com/cpalmer418/interlink/internal/models"
	"github.com/cpalmer418/interlink/internal/relevance"
	"github.com/cpalmer418/interlink/internal/store"
	"github.com/cpalmer418/interlink/internal/supervisor"
	"github.com/cpalmer418/interlink/internal/supervisor/services"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("site", cfg.Site.BaseURL).
		Str("environment", cfg.Server.Environment).
		Msg("Starting Interlink")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Catalog store
	storePath := cfg.Store.Path
	if cfg.Store.InMemory {
		storePath = ""
	}
	catalog, err := store.Open(store.Config{Path: storePath})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open catalog store")
	}
	defer func() {
		if err := catalog.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing catalog store")
		}
	}()

	if cfg.Store.SeedFile != "" {
		if _, err := catalog.SeedFromFile(ctx, cfg.Store.SeedFile); err != nil {
			logging.Fatal().Err(err).Str("path", cfg.Store.SeedFile).Msg("Failed to seed catalog")
		}
	}

	// Entity dictionary over the published product catalog
	dict := entity.NewDictionary(catalog, entity.DictionaryConfig{
		StaticEntities:  cfg.Dictionary.StaticEntities,
		RebuildInterval: cfg.Dictionary.RebuildInterval,
	})

	// Relevance subsystem
	scorer := relevance.NewScorer(relevance.ScorerConfig{
		TagWeight:             cfg.Engine.TagWeight,
		CategoryExactWeight:   cfg.Engine.CategoryExactWeight,
		CategoryPartialWeight: cfg.Engine.CategoryPartialWeight,
		MinTagLength:          cfg.Engine.MinTagLength,
	})
	selector := relevance.NewSelector(scorer, relevance.SelectorConfig{
		RelevanceFloor: cfg.Engine.RelevanceFloor,
		MaxResults:     cfg.Engine.MaxResults,
	})

	// Linking subsystem
	linker := entity.NewLinker(entity.LinkerConfig{
		MaxPerEntity: cfg.Linker.MaxPerEntity,
	})
	suggester := entity.NewSuggester(entity.SuggesterConfig{
		MaxSuggestions: cfg.Linker.MaxSuggestions,
		TitleWeight:    cfg.Linker.TitleWeight,
		TagWeight:      cfg.Linker.TagWeight,
	})

	// Graph assembler and author directory
	assembler := graph.NewAssembler(graph.AssemblerConfig{
		SiteName: cfg.Site.Name,
		BaseURL:  cfg.Site.BaseURL,
		LogoURL:  cfg.Site.LogoURL,
	})
	directory := authors.NewDirectory(authorProfiles(cfg), cfg.Authors.DefaultName)

	eng, err := engine.New(engine.Config{CacheTTL: cfg.Engine.CacheTTL},
		catalog, directory, selector, dict, linker, suggester, assembler)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to build engine")
	}

	// HTTP surface
	mw := api.NewChiMiddleware(&api.ChiMiddlewareConfig{
		CORSAllowedOrigins:   cfg.Security.CORSOrigins,
		CORSAllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		CORSAllowedHeaders:   []string{"Content-Type", "X-Request-ID"},
		CORSAllowCredentials: false,
		CORSMaxAge:           86400,
		RateLimitRequests:    cfg.Security.RateLimitReqs,
		RateLimitWindow:      cfg.Security.RateLimitWindow,
		RateLimitDisabled:    cfg.Security.RateLimitDisabled,
	})
	router := api.NewRouter(api.NewHandler(eng), mw)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  2 * cfg.Server.Timeout,
	}

	// Supervisor tree
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to build supervisor tree")
	}

	if !cfg.Store.InMemory {
		tree.AddStorageService(services.NewStoreGCService(catalog, cfg.Store.GCInterval))
		logging.Info().Dur("interval", cfg.Store.GCInterval).Msg("Store GC service added")
	}
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	// Signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Drain the error channel until the supervisor finishes.
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}

// authorProfiles converts configured profiles into the directory's model.
func authorProfiles(cfg *config.Config) []models.AuthorProfile {
	profiles := make([]models.AuthorProfile, 0, len(cfg.Authors.Profiles))
	for _, p := range cfg.Authors.Profiles {
		profiles = append(profiles, models.AuthorProfile{
			Name:   p.Name,
			URL:    p.URL,
			Bio:    p.Bio,
			Topics: p.Topics,
		})
	}
	return profiles
}
