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

import "errors"

var (
	// ErrInvalidHex indicates a string is not valid hexadecimal.
	ErrInvalidHex = errors.New("encoding: invalid hex")

	// ErrInvalidBundle indicates a public key bundle could not be decoded.
	ErrInvalidBundle = errors.New("encoding: invalid public key bundle")

	// ErrFingerprintMismatch indicates a bundle's fingerprint does not match
	// its public key bytes.
	ErrFingerprintMismatch = errors.New("encoding: fingerprint mismatch")
)
