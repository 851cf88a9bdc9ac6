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

// Package lifecycle coordinates multi-step key workflows on top of the key
// store and signing engine: rotation, hybrid (multi-suite) signing, and
// per-agent profile aggregation.
package lifecycle

import (
	"fmt"
	"sort"

	"github.com/jeremyhahn/go-hybridsign/pkg/keystore"
	"github.com/jeremyhahn/go-hybridsign/pkg/logging"
	"github.com/jeremyhahn/go-hybridsign/pkg/metrics"
	"github.com/jeremyhahn/go-hybridsign/pkg/signing"
	"github.com/jeremyhahn/go-hybridsign/pkg/suite"
)

// Orchestrator sequences key lifecycle workflows. It holds no state of its
// own; all state lives in the key store.
type Orchestrator struct {
	store    *keystore.KeyStore
	engine   *signing.Engine
	registry *suite.Registry
	logger   *logging.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the logger used by the orchestrator.
func WithLogger(logger *logging.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// New creates an Orchestrator over the given key store, engine, and registry.
func New(store *keystore.KeyStore, engine *signing.Engine, registry *suite.Registry, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		store:    store,
		engine:   engine,
		registry: registry,
		logger:   logging.DefaultLogger(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Rotate creates a replacement key of the same suite for each of the agent's
// currently active sign-capable keys and returns the new records in creation
// order. Predecessors stay active: retiring them is a separate, explicit
// Deactivate call by the caller. Verification-only records (imported public
// keys of other parties) are not rotated; there is no private material to
// replace.
func (o *Orchestrator) Rotate(agentID string) ([]*keystore.KeyRecord, error) {
	active := o.store.ListKeysForAgent(agentID, true)

	replacements := make([]*keystore.KeyRecord, 0, len(active))
	for _, rec := range active {
		if !rec.HasUsage(keystore.UsageSign) {
			continue
		}
		replacement, err := o.store.CreateKey(agentID, rec.SuiteID)
		if err != nil {
			metrics.RecordOperation(metrics.OpRotate, rec.SuiteID, err)
			return nil, fmt.Errorf("rotate agent %s: suite %s: %w", agentID, rec.SuiteID, err)
		}
		metrics.RecordOperation(metrics.OpRotate, rec.SuiteID, nil)
		replacements = append(replacements, replacement)
	}

	o.logger.Info("rotated keys", "agent_id", agentID, "created", len(replacements))
	return replacements, nil
}

// HybridSign signs the same message with each listed key, in order, and
// returns the signatures in the same order. Signing is sequential and
// all-or-nothing: the first failure aborts the call, annotated with the
// failing key's index, and no partial result is returned. A consumer relying
// on dual-algorithm assurance must never accept a result where one
// algorithm's signature silently failed.
func (o *Orchestrator) HybridSign(keyIDs []string, message []byte) ([][]byte, error) {
	if len(keyIDs) == 0 {
		return nil, ErrNoKeys
	}

	signatures := make([][]byte, 0, len(keyIDs))
	for i, keyID := range keyIDs {
		sig, err := o.engine.Sign(keyID, message)
		if err != nil {
			metrics.RecordOperation(metrics.OpHybridSign, "", err)
			return nil, fmt.Errorf("hybrid sign: key %d (%s): %w", i, keyID, err)
		}
		signatures = append(signatures, sig)
	}

	metrics.RecordOperation(metrics.OpHybridSign, "", nil)
	return signatures, nil
}

// Profile is the aggregate status of an agent's active keys.
type Profile struct {
	// AgentID is the agent the profile describes.
	AgentID string `json:"agent_id"`

	// ActiveCount is the number of active key records.
	ActiveCount int `json:"active_count"`

	// Categories is the sorted set of security categories present among the
	// agent's active keys.
	Categories []suite.Category `json:"categories"`
}

// HybridReady returns true if the agent holds active keys in both the
// classical and post-quantum categories.
func (p *Profile) HybridReady() bool {
	classical, postQuantum := false, false
	for _, c := range p.Categories {
		switch c {
		case suite.CategoryClassical:
			classical = true
		case suite.CategoryPostQuantum:
			postQuantum = true
		}
	}
	return classical && postQuantum
}

// Profile aggregates the agent's active keys: how many there are and which
// security categories they span. Pure read; no state is modified.
func (o *Orchestrator) Profile(agentID string) (*Profile, error) {
	active := o.store.ListKeysForAgent(agentID, true)

	seen := make(map[suite.Category]bool)
	for _, rec := range active {
		desc, err := o.registry.Describe(rec.SuiteID)
		if err != nil {
			return nil, fmt.Errorf("profile agent %s: record %s: %w", agentID, rec.ID, err)
		}
		seen[desc.Category] = true
	}

	categories := make([]suite.Category, 0, len(seen))
	for c := range seen {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i] < categories[j]
	})

	return &Profile{
		AgentID:     agentID,
		ActiveCount: len(active),
		Categories:  categories,
	}, nil
}
