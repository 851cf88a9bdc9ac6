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

package keystore

import "errors"

var (
	// ErrUnsupportedSuite indicates the suite is not registered in the registry.
	ErrUnsupportedSuite = errors.New("keystore: unsupported suite")

	// ErrKeyNotFound indicates the requested key record was not found.
	ErrKeyNotFound = errors.New("keystore: key not found")

	// ErrKeyGenerationFailed indicates the suite primitive failed to produce
	// a key pair. Generation failures are surfaced immediately and never
	// retried; a malfunctioning primitive risks correlated failures.
	ErrKeyGenerationFailed = errors.New("keystore: key generation failed")

	// ErrMalformedKey indicates imported public key bytes do not match the
	// suite's expected public key length.
	ErrMalformedKey = errors.New("keystore: malformed public key")

	// ErrAgentRequired indicates an empty agent identifier was provided.
	ErrAgentRequired = errors.New("keystore: agent identifier required")

	// ErrPersistence indicates the storage backend rejected a record write.
	ErrPersistence = errors.New("keystore: persistence failed")
)
