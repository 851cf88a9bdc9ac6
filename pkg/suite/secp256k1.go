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
	"crypto/sha256"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

const (
	// secp256k1PublicKeySize is the compressed SEC1 public key length.
	secp256k1PublicKeySize = 33

	// secp256k1SignatureSize is the fixed-width r||s signature length.
	secp256k1SignatureSize = 64
)

// secp256k1Suite implements ECDSA over secp256k1. Messages are digested with
// SHA-256 before signing; signatures use the fixed-width 64-byte r||s
// encoding rather than DER so the suite has a single signature length.
type secp256k1Suite struct {
	desc Descriptor
}

// secp256k1PrivateKey is the opaque handle for the secp256k1 suite.
type secp256k1PrivateKey struct {
	key *secp256k1.PrivateKey
}

// SuiteID returns the identifier of the suite that produced the handle.
func (k *secp256k1PrivateKey) SuiteID() string {
	return Secp256k1
}

// NewSecp256k1 returns the classical secp256k1 ECDSA suite (33-byte
// compressed public keys, 64-byte signatures).
func NewSecp256k1() Suite {
	return &secp256k1Suite{
		desc: Descriptor{
			ID:            Secp256k1,
			Category:      CategoryClassical,
			PublicKeySize: secp256k1PublicKeySize,
			SignatureSize: secp256k1SignatureSize,
		},
	}
}

// Descriptor returns the suite's immutable descriptor.
func (s *secp256k1Suite) Descriptor() Descriptor {
	return s.desc
}

// GenerateKeyPair generates a fresh secp256k1 key pair.
func (s *secp256k1Suite) GenerateKeyPair() ([]byte, PrivateKey, error) {
	priv, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %v", ErrKeyGeneration, s.desc.ID, err)
	}
	pub := priv.PubKey().SerializeCompressed()
	return pub, &secp256k1PrivateKey{key: priv}, nil
}

// Sign digests message with SHA-256 and produces a 64-byte r||s signature.
func (s *secp256k1Suite) Sign(private PrivateKey, message []byte) ([]byte, error) {
	handle, ok := private.(*secp256k1PrivateKey)
	if !ok || handle.key == nil {
		return nil, fmt.Errorf("%w: want %s", ErrInvalidPrivateKey, s.desc.ID)
	}

	digest := sha256.Sum256(message)
	sig := ecdsa.Sign(handle.key, digest[:])

	out := make([]byte, secp256k1SignatureSize)
	r := sig.R()
	sv := sig.S()
	rBytes := r.Bytes()
	sBytes := sv.Bytes()
	copy(out[:32], rBytes[:])
	copy(out[32:], sBytes[:])
	return out, nil
}

// Verify reports whether signature is a valid r||s signature over
// SHA-256(message) under the compressed public key.
func (s *secp256k1Suite) Verify(publicKey, message, signature []byte) (bool, error) {
	pub, err := secp256k1.ParsePubKey(publicKey)
	if err != nil {
		return false, fmt.Errorf("%w: %s: %v", ErrMalformedPublicKey, s.desc.ID, err)
	}
	if len(signature) != secp256k1SignatureSize {
		return false, nil
	}

	var r, sv secp256k1.ModNScalar
	if overflow := r.SetByteSlice(signature[:32]); overflow {
		return false, nil
	}
	if overflow := sv.SetByteSlice(signature[32:]); overflow {
		return false, nil
	}
	if r.IsZero() || sv.IsZero() {
		return false, nil
	}

	digest := sha256.Sum256(message)
	return ecdsa.NewSignature(&r, &sv).Verify(digest[:], pub), nil
}
