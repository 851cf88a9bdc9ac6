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

// Package storage provides the key-value abstraction the key store persists
// public key records through. Only public material ever reaches a storage
// backend; private handles are process-scoped and never serialized.
package storage

// Backend is a key-value store for serialized public key records.
// All implementations must be safe for concurrent use.
type Backend interface {
	// Get retrieves the value for the given key.
	// Returns ErrNotFound if the key does not exist.
	Get(key string) ([]byte, error)

	// Put stores the value for the given key, overwriting any existing value.
	Put(key string, value []byte) error

	// Delete removes the key and its value.
	// Returns ErrNotFound if the key does not exist.
	Delete(key string) error

	// List returns all keys with the given prefix in lexical order.
	// An empty prefix returns every key.
	List(prefix string) ([]string, error)

	// Exists reports whether the key is present.
	Exists(key string) (bool, error)

	// Close releases resources held by the backend. After Close, all other
	// operations return ErrClosed.
	Close() error
}
