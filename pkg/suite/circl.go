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

package suite

import (
	"fmt"

	"github.com/cloudflare/circl/sign"
	"github.com/cloudflare/circl/sign/ed25519"
	"github.com/cloudflare/circl/sign/mldsa/mldsa44"
	"github.com/cloudflare/circl/sign/mldsa/mldsa65"
	"github.com/cloudflare/circl/sign/mldsa/mldsa87"
)

// circlSuite adapts a circl sign.Scheme to the Suite interface. The ML-DSA
// parameter sets and Ed25519 all go through this adapter; sizes come from the
// scheme itself so the descriptor can never disagree with the primitive.
type circlSuite struct {
	desc   Descriptor
	scheme sign.Scheme
}

// circlPrivateKey is the opaque handle for circl-backed suites.
type circlPrivateKey struct {
	suiteID string
	key     sign.PrivateKey
}

// SuiteID returns the identifier of the suite that produced the handle.
func (k *circlPrivateKey) SuiteID() string {
	return k.suiteID
}

func newCirclSuite(id string, category Category, scheme sign.Scheme) *circlSuite {
	return &circlSuite{
		desc: Descriptor{
			ID:            id,
			Category:      category,
			PublicKeySize: scheme.PublicKeySize(),
			SignatureSize: scheme.SignatureSize(),
		},
		scheme: scheme,
	}
}

// NewEd25519 returns the classical Ed25519 suite (32-byte public keys,
// 64-byte signatures).
func NewEd25519() Suite {
	return newCirclSuite(Ed25519, CategoryClassical, ed25519.Scheme())
}

// NewMLDSA44 returns the ML-DSA-44 lattice suite (security category 2).
func NewMLDSA44() Suite {
	return newCirclSuite(LatticeLevel2, CategoryPostQuantum, mldsa44.Scheme())
}

// NewMLDSA65 returns the ML-DSA-65 lattice suite (security category 3).
func NewMLDSA65() Suite {
	return newCirclSuite(LatticeLevel3, CategoryPostQuantum, mldsa65.Scheme())
}

// NewMLDSA87 returns the ML-DSA-87 lattice suite (security category 5).
func NewMLDSA87() Suite {
	return newCirclSuite(LatticeLevel5, CategoryPostQuantum, mldsa87.Scheme())
}

// Descriptor returns the suite's immutable descriptor.
func (s *circlSuite) Descriptor() Descriptor {
	return s.desc
}

// GenerateKeyPair generates a fresh key pair for this suite.
func (s *circlSuite) GenerateKeyPair() ([]byte, PrivateKey, error) {
	pub, priv, err := s.scheme.GenerateKey()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %v", ErrKeyGeneration, s.desc.ID, err)
	}
	pubBytes, err := pub.MarshalBinary()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %v", ErrKeyGeneration, s.desc.ID, err)
	}
	return pubBytes, &circlPrivateKey{suiteID: s.desc.ID, key: priv}, nil
}

// Sign produces a signature over message using the private handle.
func (s *circlSuite) Sign(private PrivateKey, message []byte) ([]byte, error) {
	handle, ok := private.(*circlPrivateKey)
	if !ok || handle.suiteID != s.desc.ID {
		return nil, fmt.Errorf("%w: want %s", ErrInvalidPrivateKey, s.desc.ID)
	}
	return s.scheme.Sign(handle.key, message, nil), nil
}

// Verify reports whether signature is valid for message under publicKey.
func (s *circlSuite) Verify(publicKey, message, signature []byte) (bool, error) {
	pub, err := s.scheme.UnmarshalBinaryPublicKey(publicKey)
	if err != nil {
		return false, fmt.Errorf("%w: %s: %v", ErrMalformedPublicKey, s.desc.ID, err)
	}
	if len(signature) != s.desc.SignatureSize {
		return false, nil
	}
	return s.scheme.Verify(pub, message, signature, nil), nil
}
