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

package encoding

import (
	"github.com/jeremyhahn/go-hybridsign/pkg/keystore"
)

// Gateway is the import/export surface over a key store. Export delegates to
// KeyStore.GetPublicKey and import to KeyStore.ImportPublicKey; the gateway
// itself only translates formats.
type Gateway struct {
	store *keystore.KeyStore
}

// NewGateway creates a Gateway over the given key store.
func NewGateway(store *keystore.KeyStore) *Gateway {
	return &Gateway{store: store}
}

// ExportPublicKey returns the raw public key bytes for keyID.
func (g *Gateway) ExportPublicKey(keyID string) ([]byte, error) {
	return g.store.GetPublicKey(keyID)
}

// ExportPublicKeyHex returns the hex encoding of the public key for keyID.
func (g *Gateway) ExportPublicKeyHex(keyID string) (string, error) {
	raw, err := g.store.GetPublicKey(keyID)
	if err != nil {
		return "", err
	}
	return EncodeHex(raw), nil
}

// ExportBundle returns the JSON public key bundle for keyID.
func (g *Gateway) ExportBundle(keyID string) ([]byte, error) {
	rec, err := g.store.GetKey(keyID)
	if err != nil {
		return nil, err
	}
	return EncodeBundle(rec.SuiteID, rec.PublicKey)
}

// ImportPublicKey creates a verification-only record for agentID from raw
// public key bytes. Returns the new key identifier.
func (g *Gateway) ImportPublicKey(agentID string, publicKey []byte, suiteID string) (string, error) {
	return g.store.ImportPublicKey(agentID, publicKey, suiteID)
}

// ImportPublicKeyHex creates a verification-only record from a hex-encoded
// public key. Returns the new key identifier.
func (g *Gateway) ImportPublicKeyHex(agentID, publicKeyHex, suiteID string) (string, error) {
	raw, err := DecodeHex(publicKeyHex)
	if err != nil {
		return "", err
	}
	return g.store.ImportPublicKey(agentID, raw, suiteID)
}

// ImportBundle creates a verification-only record from a JSON public key
// bundle. Returns the new key identifier.
func (g *Gateway) ImportBundle(agentID string, bundle []byte) (string, error) {
	suiteID, publicKey, err := DecodeBundle(bundle)
	if err != nil {
		return "", err
	}
	return g.store.ImportPublicKey(agentID, publicKey, suiteID)
}
