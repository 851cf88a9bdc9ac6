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

import "errors"

var (
	// ErrUnknownSuite indicates the requested suite is not registered.
	ErrUnknownSuite = errors.New("suite: unknown suite")

	// ErrDuplicateSuite indicates two suites were registered under the same identifier.
	ErrDuplicateSuite = errors.New("suite: duplicate suite identifier")

	// ErrInvalidPrivateKey indicates a private handle was passed to a suite
	// other than the one that produced it, or the handle is nil.
	ErrInvalidPrivateKey = errors.New("suite: invalid private key handle")

	// ErrMalformedPublicKey indicates the public key bytes could not be parsed.
	ErrMalformedPublicKey = errors.New("suite: malformed public key")

	// ErrKeyGeneration indicates the underlying primitive failed to produce a key pair.
	ErrKeyGeneration = errors.New("suite: key generation failed")
)
