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

package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeremyhahn/go-hybridsign/pkg/keystore"
	"github.com/jeremyhahn/go-hybridsign/pkg/signing"
	"github.com/jeremyhahn/go-hybridsign/pkg/suite"
)

func newTestOrchestrator(t *testing.T) (*Orchestrator, *keystore.KeyStore, *signing.Engine) {
	t.Helper()
	registry, err := suite.DefaultRegistry()
	require.NoError(t, err)
	store := keystore.New(registry)
	engine := signing.NewEngine(store, registry)
	return New(store, engine, registry), store, engine
}

func TestRotate(t *testing.T) {
	orch, store, engine := newTestOrchestrator(t)

	first, err := store.CreateKey("agent-1", suite.Secp256k1)
	require.NoError(t, err)
	second, err := store.CreateKey("agent-1", suite.LatticeLevel2)
	require.NoError(t, err)

	message := []byte("pre-rotation")
	oldSig, err := engine.Sign(first.ID, message)
	require.NoError(t, err)

	replacements, err := orch.Rotate("agent-1")
	require.NoError(t, err)
	require.Len(t, replacements, 2)
	assert.Equal(t, suite.Secp256k1, replacements[0].SuiteID)
	assert.Equal(t, suite.LatticeLevel2, replacements[1].SuiteID)
	assert.NotEqual(t, first.ID, replacements[0].ID)
	assert.NotEqual(t, second.ID, replacements[1].ID)

	// Rotation is additive: predecessors stay active.
	active := store.ListKeysForAgent("agent-1", true)
	assert.Len(t, active, 4)

	// Pre-rotation signatures still verify against the predecessor.
	valid, err := engine.Verify(first.ID, message, oldSig)
	require.NoError(t, err)
	assert.True(t, valid)

	// Successors can sign immediately.
	_, err = engine.Sign(replacements[0].ID, message)
	require.NoError(t, err)
}

func TestRotateSkipsInactiveKeys(t *testing.T) {
	orch, store, _ := newTestOrchestrator(t)

	retired, err := store.CreateKey("agent-1", suite.Ed25519)
	require.NoError(t, err)
	require.NoError(t, store.Deactivate(retired.ID))

	current, err := store.CreateKey("agent-1", suite.LatticeLevel5)
	require.NoError(t, err)

	replacements, err := orch.Rotate("agent-1")
	require.NoError(t, err)
	require.Len(t, replacements, 1)
	assert.Equal(t, current.SuiteID, replacements[0].SuiteID)
}

func TestRotateSkipsVerifyOnlyKeys(t *testing.T) {
	orch, store, _ := newTestOrchestrator(t)

	source, err := store.CreateKey("agent-remote", suite.Ed25519)
	require.NoError(t, err)
	_, err = store.ImportPublicKey("agent-1", source.PublicKey, suite.Ed25519)
	require.NoError(t, err)

	// There is no private material to replace for an imported key.
	replacements, err := orch.Rotate("agent-1")
	require.NoError(t, err)
	assert.Empty(t, replacements)
}

func TestRotateNoKeys(t *testing.T) {
	orch, _, _ := newTestOrchestrator(t)

	replacements, err := orch.Rotate("agent-unknown")
	require.NoError(t, err)
	assert.Empty(t, replacements)
}

func TestHybridSign(t *testing.T) {
	orch, store, engine := newTestOrchestrator(t)
	message := []byte("dual-algorithm commitment")

	classical, err := store.CreateKey("agent-1", suite.Ed25519)
	require.NoError(t, err)
	lattice, err := store.CreateKey("agent-1", suite.LatticeLevel3)
	require.NoError(t, err)

	sigs, err := orch.HybridSign([]string{classical.ID, lattice.ID}, message)
	require.NoError(t, err)
	require.Len(t, sigs, 2)

	// Order matches the key list order: 64-byte Ed25519 first, then ML-DSA-65.
	assert.Len(t, sigs[0], 64)
	assert.Len(t, sigs[1], 3309)

	for i, keyID := range []string{classical.ID, lattice.ID} {
		valid, err := engine.Verify(keyID, message, sigs[i])
		require.NoError(t, err)
		assert.True(t, valid)
	}
}

func TestHybridSignEmptyKeyList(t *testing.T) {
	orch, _, _ := newTestOrchestrator(t)

	_, err := orch.HybridSign(nil, []byte("msg"))
	require.ErrorIs(t, err, ErrNoKeys)
}

func TestHybridSignAllOrNothing(t *testing.T) {
	orch, store, _ := newTestOrchestrator(t)

	good, err := store.CreateKey("agent-1", suite.Ed25519)
	require.NoError(t, err)
	bad, err := store.CreateKey("agent-1", suite.LatticeLevel2)
	require.NoError(t, err)
	require.NoError(t, store.Deactivate(bad.ID))

	sigs, err := orch.HybridSign([]string{good.ID, bad.ID}, []byte("msg"))
	require.ErrorIs(t, err, signing.ErrInactiveKey)
	assert.Nil(t, sigs)

	// Same with the failing key first.
	sigs, err = orch.HybridSign([]string{bad.ID, good.ID}, []byte("msg"))
	require.Error(t, err)
	assert.Nil(t, sigs)

	// And with an unknown key in the middle.
	sigs, err = orch.HybridSign([]string{good.ID, "missing", good.ID}, []byte("msg"))
	require.ErrorIs(t, err, keystore.ErrKeyNotFound)
	assert.Nil(t, sigs)
}

func TestProfile(t *testing.T) {
	orch, store, _ := newTestOrchestrator(t)

	profile, err := orch.Profile("agent-1")
	require.NoError(t, err)
	assert.Equal(t, "agent-1", profile.AgentID)
	assert.Zero(t, profile.ActiveCount)
	assert.Empty(t, profile.Categories)
	assert.False(t, profile.HybridReady())

	_, err = store.CreateKey("agent-1", suite.Secp256k1)
	require.NoError(t, err)

	profile, err = orch.Profile("agent-1")
	require.NoError(t, err)
	assert.Equal(t, 1, profile.ActiveCount)
	assert.Equal(t, []suite.Category{suite.CategoryClassical}, profile.Categories)
	assert.False(t, profile.HybridReady())

	_, err = store.CreateKey("agent-1", suite.LatticeLevel5)
	require.NoError(t, err)

	profile, err = orch.Profile("agent-1")
	require.NoError(t, err)
	assert.Equal(t, 2, profile.ActiveCount)
	assert.Equal(t, []suite.Category{suite.CategoryClassical, suite.CategoryPostQuantum}, profile.Categories)
	assert.True(t, profile.HybridReady())
}

func TestProfileIgnoresInactiveKeys(t *testing.T) {
	orch, store, _ := newTestOrchestrator(t)

	classical, err := store.CreateKey("agent-1", suite.Ed25519)
	require.NoError(t, err)
	_, err = store.CreateKey("agent-1", suite.LatticeLevel2)
	require.NoError(t, err)

	require.NoError(t, store.Deactivate(classical.ID))

	profile, err := orch.Profile("agent-1")
	require.NoError(t, err)
	assert.Equal(t, 1, profile.ActiveCount)
	assert.Equal(t, []suite.Category{suite.CategoryPostQuantum}, profile.Categories)
	assert.False(t, profile.HybridReady())
}
