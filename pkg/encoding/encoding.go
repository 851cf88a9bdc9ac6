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

// Package encoding converts public key material between its raw byte form
// and portable encodings (hex, structured JSON bundle) for cross-party key
// exchange. Every encoding round-trips exactly: Decode(Encode(x)) == x.
// Only public material is ever encoded; private handles cannot reach this
// package.
package encoding

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/sha3"
)

// EncodeHex returns the lowercase hex encoding of raw bytes.
func EncodeHex(raw []byte) string {
	return hex.EncodeToString(raw)
}

// DecodeHex decodes a hex string produced by EncodeHex.
// Returns ErrInvalidHex if the string is not valid hexadecimal.
func DecodeHex(s string) ([]byte, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHex, err)
	}
	return raw, nil
}

// Fingerprint returns the SHA3-256 digest of a public key. Bundles carry it
// so a corrupted or truncated key is caught before import.
func Fingerprint(publicKey []byte) []byte {
	sum := sha3.Sum256(publicKey)
	return sum[:]
}

// PublicKeyBundle is the structured portable form of a public key: the suite
// it belongs to, the key bytes in hex, and a SHA3-256 fingerprint.
type PublicKeyBundle struct {
	SuiteID     string `json:"suite_id"`
	PublicKey   string `json:"public_key"`
	Fingerprint string `json:"fingerprint"`
}

// EncodeBundle serializes a public key and its suite identifier as a JSON
// bundle.
func EncodeBundle(suiteID string, publicKey []byte) ([]byte, error) {
	bundle := PublicKeyBundle{
		SuiteID:     suiteID,
		PublicKey:   EncodeHex(publicKey),
		Fingerprint: EncodeHex(Fingerprint(publicKey)),
	}
	data, err := json.Marshal(&bundle)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBundle, err)
	}
	return data, nil
}

// DecodeBundle parses a JSON bundle and returns the suite identifier and raw
// public key bytes. Returns ErrInvalidBundle on structural problems and
// ErrFingerprintMismatch when the fingerprint does not match the key bytes.
func DecodeBundle(data []byte) (string, []byte, error) {
	var bundle PublicKeyBundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrInvalidBundle, err)
	}
	if bundle.SuiteID == "" {
		return "", nil, fmt.Errorf("%w: missing suite_id", ErrInvalidBundle)
	}
	publicKey, err := DecodeHex(bundle.PublicKey)
	if err != nil {
		return "", nil, fmt.Errorf("%w: public_key: %v", ErrInvalidBundle, err)
	}
	fingerprint, err := DecodeHex(bundle.Fingerprint)
	if err != nil {
		return "", nil, fmt.Errorf("%w: fingerprint: %v", ErrInvalidBundle, err)
	}
	if EncodeHex(fingerprint) != EncodeHex(Fingerprint(publicKey)) {
		return "", nil, ErrFingerprintMismatch
	}
	return bundle.SuiteID, publicKey, nil
}
