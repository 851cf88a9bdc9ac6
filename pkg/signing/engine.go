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

// Package signing implements the signing engine: signature production and
// verification against key records, delegating the cryptography to the
// record's bound suite.
package signing

import (
	"fmt"
	"time"

	"github.com/jeremyhahn/go-hybridsign/pkg/keystore"
	"github.com/jeremyhahn/go-hybridsign/pkg/logging"
	"github.com/jeremyhahn/go-hybridsign/pkg/metrics"
	"github.com/jeremyhahn/go-hybridsign/pkg/suite"
)

// Engine signs and verifies messages with keys held in a KeyStore.
// Messages are opaque bytes; any digesting happens inside the bound suite.
type Engine struct {
	store    *keystore.KeyStore
	registry *suite.Registry
	logger   *logging.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used by the engine.
func WithLogger(logger *logging.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// NewEngine creates an Engine over the given key store and suite registry.
func NewEngine(store *keystore.KeyStore, registry *suite.Registry, opts ...Option) *Engine {
	e := &Engine{
		store:    store,
		registry: registry,
		logger:   logging.DefaultLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Sign produces a signature over message with the key identified by keyID.
//
// Signing requires an active record holding a private handle:
// keystore.ErrKeyNotFound, ErrVerifyOnlyKey, and ErrInactiveKey are returned
// otherwise. The signature length is checked against the suite descriptor;
// a mismatch is ErrCorruptSuiteOutput.
func (e *Engine) Sign(keyID string, message []byte) ([]byte, error) {
	rec, err := e.store.GetKey(keyID)
	if err != nil {
		metrics.RecordOperation(metrics.OpSign, "", err)
		return nil, err
	}

	start := time.Now()
	sig, err := e.sign(rec, message)
	metrics.RecordOperation(metrics.OpSign, rec.SuiteID, err)
	metrics.ObserveDuration(metrics.OpSign, rec.SuiteID, start)
	return sig, err
}

func (e *Engine) sign(rec *keystore.KeyRecord, message []byte) ([]byte, error) {
	if !rec.HasPrivate() {
		return nil, fmt.Errorf("%w: %s", ErrVerifyOnlyKey, rec.ID)
	}
	if !rec.IsActive() {
		return nil, fmt.Errorf("%w: %s", ErrInactiveKey, rec.ID)
	}

	s, err := e.registry.Resolve(rec.SuiteID)
	if err != nil {
		// A stored record always references a registered suite; reaching
		// this means the registry and store disagree.
		return nil, fmt.Errorf("%w: record %s references %s: %v",
			ErrCorruptSuiteOutput, rec.ID, rec.SuiteID, err)
	}
	desc := s.Descriptor()

	sig, err := s.Sign(rec.Handle(), message)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSigningFailed, err)
	}
	if len(sig) != desc.SignatureSize {
		return nil, fmt.Errorf("%w: suite %s produced %d signature bytes, want %d",
			ErrCorruptSuiteOutput, rec.SuiteID, len(sig), desc.SignatureSize)
	}

	e.logger.Debug("signed message", "key_id", rec.ID, "suite", rec.SuiteID, "message_len", len(message))
	return sig, nil
}

// Verify reports whether signature is valid for message under the key
// identified by keyID. Verification is permitted against inactive and
// verification-only records.
//
// Returns keystore.ErrKeyNotFound for an unknown key and
// ErrMalformedSignature when the signature length does not match the suite's
// fixed size. A legitimately mismatched signature returns (false, nil).
func (e *Engine) Verify(keyID string, message, signature []byte) (bool, error) {
	rec, err := e.store.GetKey(keyID)
	if err != nil {
		metrics.RecordOperation(metrics.OpVerify, "", err)
		return false, err
	}

	start := time.Now()
	ok, err := e.verify(rec, message, signature)
	metrics.RecordOperation(metrics.OpVerify, rec.SuiteID, err)
	metrics.ObserveDuration(metrics.OpVerify, rec.SuiteID, start)
	return ok, err
}

func (e *Engine) verify(rec *keystore.KeyRecord, message, signature []byte) (bool, error) {
	s, err := e.registry.Resolve(rec.SuiteID)
	if err != nil {
		return false, fmt.Errorf("%w: record %s references %s: %v",
			ErrCorruptSuiteOutput, rec.ID, rec.SuiteID, err)
	}
	desc := s.Descriptor()

	if len(signature) != desc.SignatureSize {
		return false, fmt.Errorf("%w: got %d bytes, suite %s expects %d",
			ErrMalformedSignature, len(signature), rec.SuiteID, desc.SignatureSize)
	}

	return s.Verify(rec.PublicKey, message, signature)
}
