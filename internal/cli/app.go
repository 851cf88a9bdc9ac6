// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-hybridsign.
//
// go-hybridsign is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

package cli

import (
	"fmt"

	"github.com/jeremyhahn/go-hybridsign/internal/config"
	"github.com/jeremyhahn/go-hybridsign/pkg/encoding"
	"github.com/jeremyhahn/go-hybridsign/pkg/keystore"
	"github.com/jeremyhahn/go-hybridsign/pkg/lifecycle"
	"github.com/jeremyhahn/go-hybridsign/pkg/logging"
	"github.com/jeremyhahn/go-hybridsign/pkg/metrics"
	"github.com/jeremyhahn/go-hybridsign/pkg/signing"
	"github.com/jeremyhahn/go-hybridsign/pkg/storage"
	"github.com/jeremyhahn/go-hybridsign/pkg/storage/file"
	"github.com/jeremyhahn/go-hybridsign/pkg/storage/memory"
	"github.com/jeremyhahn/go-hybridsign/pkg/suite"
)

// App wires the core components together for one CLI invocation. The core
// carries no ambient global state; everything hangs off this explicitly
// constructed instance.
type App struct {
	Config       *config.Config
	Logger       *logging.Logger
	Registry     *suite.Registry
	Store        *keystore.KeyStore
	Engine       *signing.Engine
	Gateway      *encoding.Gateway
	Orchestrator *lifecycle.Orchestrator

	backend storage.Backend
}

// newApp builds an App from the resolved configuration.
func newApp(cfg *config.Config, verbose bool) (*App, error) {
	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	logger := logging.NewLogger(level)
	metrics.SetEnabled(cfg.Metrics.Enabled)

	registry, err := suite.DefaultRegistry()
	if err != nil {
		return nil, fmt.Errorf("suite registry: %w", err)
	}

	var backend storage.Backend
	switch cfg.Storage.Backend {
	case "", "memory":
		backend = memory.New()
	case "file":
		backend, err = file.New(cfg.Storage.Path)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	store := keystore.New(registry,
		keystore.WithLogger(logger),
		keystore.WithStorage(backend),
	)
	if err := store.Load(); err != nil {
		return nil, err
	}

	engine := signing.NewEngine(store, registry, signing.WithLogger(logger))

	return &App{
		Config:       cfg,
		Logger:       logger,
		Registry:     registry,
		Store:        store,
		Engine:       engine,
		Gateway:      encoding.NewGateway(store),
		Orchestrator: lifecycle.New(store, engine, registry, lifecycle.WithLogger(logger)),
		backend:      backend,
	}, nil
}

// Close releases resources held by the app.
func (a *App) Close() error {
	if a.backend != nil {
		return a.backend.Close()
	}
	return nil
}
