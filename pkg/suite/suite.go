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

// Package suite defines signature suites and the process-wide suite registry.
// A suite binds a signature algorithm and parameter set (classical elliptic
// curve or post-quantum lattice) behind a single capability interface so the
// key store and signing engine never dispatch on algorithm strings at
// request time.
package suite

import "strings"

// Suite identifier constants. Identifiers are stable strings and part of the
// public contract; they appear in key records, export bundles, and the CLI.
const (
	// Secp256k1 is ECDSA over the secp256k1 curve with SHA-256 digests.
	Secp256k1 = "classical-secp256k1"

	// Ed25519 is the Ed25519 signature scheme.
	Ed25519 = "classical-ed25519"

	// LatticeLevel2 is ML-DSA-44 (NIST FIPS 204, security category 2).
	LatticeLevel2 = "lattice-level-2"

	// LatticeLevel3 is ML-DSA-65 (NIST FIPS 204, security category 3).
	LatticeLevel3 = "lattice-level-3"

	// LatticeLevel5 is ML-DSA-87 (NIST FIPS 204, security category 5).
	LatticeLevel5 = "lattice-level-5"
)

// Category classifies a suite's security family.
type Category string

const (
	// CategoryClassical identifies elliptic-curve signature suites.
	CategoryClassical Category = "classical"

	// CategoryPostQuantum identifies lattice-based signature suites.
	CategoryPostQuantum Category = "post-quantum"
)

// String returns the string representation of the category.
func (c Category) String() string {
	return string(c)
}

// IsValid returns true if the category is recognized.
func (c Category) IsValid() bool {
	switch c {
	case CategoryClassical, CategoryPostQuantum:
		return true
	default:
		return false
	}
}

// ParseCategory converts a string to a Category.
// Returns an empty Category if the string is not recognized.
func ParseCategory(s string) Category {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "classical":
		return CategoryClassical
	case "post-quantum", "postquantum", "pq":
		return CategoryPostQuantum
	default:
		return Category("")
	}
}

// Descriptor describes a signature suite's identity and fixed sizes.
// Descriptors are immutable; they are defined when the suite is constructed
// and never change afterwards.
type Descriptor struct {
	// ID is the stable suite identifier (e.g. "classical-secp256k1").
	ID string `json:"id"`

	// Category is the suite's security family.
	Category Category `json:"category"`

	// PublicKeySize is the exact public key length in bytes.
	PublicKeySize int `json:"public_key_size"`

	// SignatureSize is the exact signature length in bytes.
	SignatureSize int `json:"signature_size"`
}

// PrivateKey is an opaque handle to suite-private signing material.
//
// Handles are exclusively owned by the key store and are only usable by the
// suite that produced them. Concrete implementations are unexported and carry
// no marshaling methods, so a handle can never cross a serialization boundary.
type PrivateKey interface {
	// SuiteID returns the identifier of the suite that produced the handle.
	SuiteID() string
}

// Suite is the capability set every registered signature suite provides:
// key pair generation, signing, verification, and static size metadata.
//
// Implementations must be safe for concurrent use. Sign and Verify treat the
// message as opaque bytes; any digesting is internal to the suite.
type Suite interface {
	// Descriptor returns the suite's immutable descriptor.
	Descriptor() Descriptor

	// GenerateKeyPair generates a fresh key pair, returning the public key
	// bytes (exactly Descriptor().PublicKeySize long) and an opaque private
	// handle bound to this suite.
	GenerateKeyPair() ([]byte, PrivateKey, error)

	// Sign produces a signature over message using the private handle.
	// Returns ErrInvalidPrivateKey if the handle was not produced by this
	// suite. The signature is exactly Descriptor().SignatureSize bytes.
	Sign(private PrivateKey, message []byte) ([]byte, error)

	// Verify reports whether signature is valid for message under publicKey.
	// A signature that simply does not match returns (false, nil); an error
	// is reserved for structural problems such as an unparseable public key.
	Verify(publicKey, message, signature []byte) (bool, error)
}
