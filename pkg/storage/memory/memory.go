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

// Package memory provides an in-memory storage.Backend. Values are
// defensively copied in both directions so callers can never alias the
// backend's internal state.
package memory

import (
	"sort"
	"strings"
	"sync"

	"github.com/jeremyhahn/go-hybridsign/pkg/storage"
)

// Memory is an in-memory implementation of storage.Backend.
type Memory struct {
	mu     sync.RWMutex
	values map[string][]byte
	closed bool
}

// New creates an empty in-memory backend.
func New() *Memory {
	return &Memory{
		values: make(map[string][]byte),
	}
}

// Get retrieves a copy of the value for the given key.
func (m *Memory) Get(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, storage.ErrClosed
	}
	value, ok := m.values[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Put stores a copy of value under key.
func (m *Memory) Put(key string, value []byte) error {
	if key == "" {
		return storage.ErrInvalidKey
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return storage.ErrClosed
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	m.values[key] = stored
	return nil
}

// Delete removes key from the backend.
func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return storage.ErrClosed
	}
	if _, ok := m.values[key]; !ok {
		return storage.ErrNotFound
	}
	delete(m.values, key)
	return nil
}

// List returns all keys with the given prefix in lexical order.
func (m *Memory) List(prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, storage.ErrClosed
	}
	keys := make([]string, 0, len(m.values))
	for key := range m.values {
		if prefix == "" || strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Exists reports whether key is present.
func (m *Memory) Exists(key string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return false, storage.ErrClosed
	}
	_, ok := m.values[key]
	return ok, nil
}

// Close marks the backend closed and releases its contents.
// Close is idempotent.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.values = nil
	return nil
}
