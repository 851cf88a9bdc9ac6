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

// Package keystore owns the set of key records for all agents: creation,
// lookup, listing, deactivation, and import of verification-only public keys.
//
// The record set is the single shared mutable resource in the core. Reads
// take a shared lock; mutations take the exclusive lock only for the map
// insert or status flip itself. Key generation, which can be slow for
// lattice suites, always runs before the exclusive section is entered.
package keystore

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jeremyhahn/go-hybridsign/pkg/logging"
	"github.com/jeremyhahn/go-hybridsign/pkg/metrics"
	"github.com/jeremyhahn/go-hybridsign/pkg/storage"
	"github.com/jeremyhahn/go-hybridsign/pkg/suite"
)

// recordPrefix namespaces key records within a storage backend.
const recordPrefix = "keys/"

// KeyStore manages key records for all agents. It is safe for concurrent use.
type KeyStore struct {
	registry *suite.Registry
	logger   *logging.Logger
	persist  storage.Backend

	mu      sync.RWMutex
	records map[string]*KeyRecord
	seq     uint64
}

// Option configures a KeyStore.
type Option func(*KeyStore)

// WithLogger sets the logger used by the key store.
func WithLogger(logger *logging.Logger) Option {
	return func(ks *KeyStore) {
		ks.logger = logger
	}
}

// WithStorage sets a storage backend for persisting the public half of key
// records. Private handles are process-scoped and never written to storage;
// records reloaded from a backend come back verification-only.
func WithStorage(backend storage.Backend) Option {
	return func(ks *KeyStore) {
		ks.persist = backend
	}
}

// New creates a KeyStore bound to the given suite registry.
func New(registry *suite.Registry, opts ...Option) *KeyStore {
	ks := &KeyStore{
		registry: registry,
		logger:   logging.DefaultLogger(),
		records:  make(map[string]*KeyRecord),
	}
	for _, opt := range opts {
		opt(ks)
	}
	return ks
}

// CreateKey generates a key pair for the given suite and stores a new active
// record owned by agentID with usage {"sign","verify"}.
//
// Returns ErrUnsupportedSuite if the registry does not know suiteID and
// ErrKeyGenerationFailed if the suite primitive errors. Generation failures
// are propagated, never retried.
func (ks *KeyStore) CreateKey(agentID, suiteID string) (*KeyRecord, error) {
	start := time.Now()
	rec, err := ks.createKey(agentID, suiteID)
	metrics.RecordOperation(metrics.OpGenerate, suiteID, err)
	metrics.ObserveDuration(metrics.OpGenerate, suiteID, start)
	return rec, err
}

func (ks *KeyStore) createKey(agentID, suiteID string) (*KeyRecord, error) {
	if agentID == "" {
		return nil, ErrAgentRequired
	}
	s, err := ks.registry.Resolve(suiteID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSuite, suiteID)
	}
	desc := s.Descriptor()

	// Key generation runs outside the lock; ML-DSA generation must not block
	// concurrent readers.
	pub, private, err := s.GenerateKeyPair()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyGenerationFailed, err)
	}
	if len(pub) != desc.PublicKeySize {
		return nil, fmt.Errorf("%w: suite %s produced %d public key bytes, want %d",
			ErrKeyGenerationFailed, suiteID, len(pub), desc.PublicKeySize)
	}

	rec := &KeyRecord{
		ID:        uuid.NewString(),
		AgentID:   agentID,
		SuiteID:   suiteID,
		Usage:     []Usage{UsageSign, UsageVerify},
		Status:    StatusActive,
		PublicKey: pub,
		CreatedAt: time.Now().UTC(),
		private:   private,
	}

	ks.mu.Lock()
	ks.seq++
	rec.Sequence = ks.seq
	ks.mu.Unlock()

	if err := ks.persistRecord(rec); err != nil {
		return nil, err
	}

	ks.mu.Lock()
	ks.records[rec.ID] = rec
	ks.mu.Unlock()

	metrics.IncActiveKeys(suiteID)
	ks.logger.Debug("created key", "key_id", rec.ID, "agent_id", agentID, "suite", suiteID)
	return rec.clone(), nil
}

// GetKey returns a copy of the record identified by keyID.
// Returns ErrKeyNotFound if no such record exists.
func (ks *KeyStore) GetKey(keyID string) (*KeyRecord, error) {
	ks.mu.RLock()
	defer ks.mu.RUnlock()

	rec, ok := ks.records[keyID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, keyID)
	}
	return rec.clone(), nil
}

// GetPublicKey returns a copy of the public key bytes for keyID.
// Returns ErrKeyNotFound if no such record exists.
func (ks *KeyStore) GetPublicKey(keyID string) ([]byte, error) {
	ks.mu.RLock()
	defer ks.mu.RUnlock()

	rec, ok := ks.records[keyID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, keyID)
	}
	out := make([]byte, len(rec.PublicKey))
	copy(out, rec.PublicKey)
	return out, nil
}

// ListKeysForAgent returns copies of the agent's key records in creation
// order. With activeOnly, inactive records are filtered out.
func (ks *KeyStore) ListKeysForAgent(agentID string, activeOnly bool) []*KeyRecord {
	ks.mu.RLock()
	var out []*KeyRecord
	for _, rec := range ks.records {
		if rec.AgentID != agentID {
			continue
		}
		if activeOnly && !rec.IsActive() {
			continue
		}
		out = append(out, rec.clone())
	}
	ks.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].Sequence < out[j].Sequence
	})
	return out
}

// Deactivate flips the record's status to inactive. The operation is
// idempotent: deactivating an already inactive key is a no-op.
// Returns ErrKeyNotFound if no such record exists. Historically issued
// signatures remain verifiable against a deactivated key's public material.
//
// The backend write happens before the in-memory flip: a failed persist
// leaves the record active everywhere, so the caller can retry and a store
// reloaded from the backend never disagrees with this one.
func (ks *KeyStore) Deactivate(keyID string) error {
	ks.mu.RLock()
	rec, ok := ks.records[keyID]
	if !ok {
		ks.mu.RUnlock()
		err := fmt.Errorf("%w: %s", ErrKeyNotFound, keyID)
		metrics.RecordOperation(metrics.OpDeactivate, "", err)
		return err
	}
	if rec.Status == StatusInactive {
		ks.mu.RUnlock()
		metrics.RecordOperation(metrics.OpDeactivate, rec.SuiteID, nil)
		return nil
	}
	snapshot := rec.clone()
	ks.mu.RUnlock()

	snapshot.Status = StatusInactive
	if err := ks.persistRecord(snapshot); err != nil {
		metrics.RecordOperation(metrics.OpDeactivate, snapshot.SuiteID, err)
		return err
	}

	ks.mu.Lock()
	rec, ok = ks.records[keyID]
	flipped := ok && rec.Status == StatusActive
	if flipped {
		rec.Status = StatusInactive
	}
	ks.mu.Unlock()

	if flipped {
		metrics.DecActiveKeys(snapshot.SuiteID)
	}
	metrics.RecordOperation(metrics.OpDeactivate, snapshot.SuiteID, nil)
	ks.logger.Debug("deactivated key", "key_id", keyID, "suite", snapshot.SuiteID)
	return nil
}

// ImportPublicKey validates publicKey against the suite's expected length and
// stores a new active verification-only record (no private handle, usage
// {"verify"}) owned by agentID. Returns the new record's key identifier.
//
// Returns ErrUnsupportedSuite for an unregistered suite and ErrMalformedKey
// on a length mismatch; no record is created in either case.
func (ks *KeyStore) ImportPublicKey(agentID string, publicKey []byte, suiteID string) (string, error) {
	keyID, err := ks.importPublicKey(agentID, publicKey, suiteID)
	metrics.RecordOperation(metrics.OpImport, suiteID, err)
	return keyID, err
}

func (ks *KeyStore) importPublicKey(agentID string, publicKey []byte, suiteID string) (string, error) {
	if agentID == "" {
		return "", ErrAgentRequired
	}
	desc, err := ks.registry.Describe(suiteID)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedSuite, suiteID)
	}
	if len(publicKey) != desc.PublicKeySize {
		return "", fmt.Errorf("%w: got %d bytes, suite %s expects %d",
			ErrMalformedKey, len(publicKey), suiteID, desc.PublicKeySize)
	}

	pub := make([]byte, len(publicKey))
	copy(pub, publicKey)

	rec := &KeyRecord{
		ID:        uuid.NewString(),
		AgentID:   agentID,
		SuiteID:   suiteID,
		Usage:     []Usage{UsageVerify},
		Status:    StatusActive,
		PublicKey: pub,
		CreatedAt: time.Now().UTC(),
	}

	ks.mu.Lock()
	ks.seq++
	rec.Sequence = ks.seq
	ks.mu.Unlock()

	if err := ks.persistRecord(rec); err != nil {
		return "", err
	}

	ks.mu.Lock()
	ks.records[rec.ID] = rec
	ks.mu.Unlock()

	metrics.IncActiveKeys(suiteID)
	ks.logger.Debug("imported public key", "key_id", rec.ID, "agent_id", agentID, "suite", suiteID)
	return rec.ID, nil
}

// Load restores key records from the storage backend. Reloaded records carry
// only public material, so they come back verification-only regardless of
// their original usage. Load is a no-op without a configured backend.
func (ks *KeyStore) Load() error {
	if ks.persist == nil {
		return nil
	}

	keys, err := ks.persist.List(recordPrefix)
	if err != nil {
		return fmt.Errorf("%w: list: %v", ErrPersistence, err)
	}

	loaded := make(map[string]*KeyRecord, len(keys))
	var maxSeq uint64
	for _, key := range keys {
		data, err := ks.persist.Get(key)
		if err != nil {
			return fmt.Errorf("%w: get %s: %v", ErrPersistence, key, err)
		}
		var rec KeyRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			return fmt.Errorf("%w: decode %s: %v", ErrPersistence, key, err)
		}
		// A record without its private handle can only verify.
		rec.Usage = []Usage{UsageVerify}
		loaded[rec.ID] = &rec
		if rec.Sequence > maxSeq {
			maxSeq = rec.Sequence
		}
	}

	ks.mu.Lock()
	adopted := make([]*KeyRecord, 0, len(loaded))
	for id, rec := range loaded {
		if _, exists := ks.records[id]; !exists {
			ks.records[id] = rec
			adopted = append(adopted, rec)
		}
	}
	if maxSeq > ks.seq {
		ks.seq = maxSeq
	}
	ks.mu.Unlock()

	for _, rec := range adopted {
		if rec.IsActive() {
			metrics.IncActiveKeys(rec.SuiteID)
		}
	}

	ks.logger.Info("loaded key records", "count", len(adopted))
	return nil
}

// persistRecord writes the public half of a record to the storage backend.
func (ks *KeyStore) persistRecord(rec *KeyRecord) error {
	if ks.persist == nil {
		return nil
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrPersistence, rec.ID, err)
	}
	if err := ks.persist.Put(recordPrefix+rec.ID, data); err != nil {
		if errors.Is(err, storage.ErrClosed) {
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		return fmt.Errorf("%w: put %s: %v", ErrPersistence, rec.ID, err)
	}
	return nil
}
