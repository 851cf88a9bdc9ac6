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

import "fmt"

// Registry maps suite identifiers to their implementations. All registration
// happens in NewRegistry; the registry is immutable afterwards, so lookups
// require no synchronization and all suite-dependent size invariants are
// fixed before the first request.
type Registry struct {
	suites map[string]Suite
	order  []string
}

// NewRegistry creates a registry containing exactly the given suites.
// Returns ErrDuplicateSuite if two suites share an identifier.
func NewRegistry(suites ...Suite) (*Registry, error) {
	r := &Registry{
		suites: make(map[string]Suite, len(suites)),
		order:  make([]string, 0, len(suites)),
	}
	for _, s := range suites {
		id := s.Descriptor().ID
		if _, exists := r.suites[id]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSuite, id)
		}
		r.suites[id] = s
		r.order = append(r.order, id)
	}
	return r, nil
}

// DefaultRegistry returns a registry with every suite this build supports:
// secp256k1, Ed25519, and the three ML-DSA parameter sets.
func DefaultRegistry() (*Registry, error) {
	return NewRegistry(
		NewSecp256k1(),
		NewEd25519(),
		NewMLDSA44(),
		NewMLDSA65(),
		NewMLDSA87(),
	)
}

// Resolve returns the suite registered under id.
// Returns ErrUnknownSuite if no such suite exists.
func (r *Registry) Resolve(id string) (Suite, error) {
	s, ok := r.suites[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSuite, id)
	}
	return s, nil
}

// Describe returns the descriptor for the suite registered under id.
// Returns ErrUnknownSuite if no such suite exists.
func (r *Registry) Describe(id string) (Descriptor, error) {
	s, err := r.Resolve(id)
	if err != nil {
		return Descriptor{}, err
	}
	return s.Descriptor(), nil
}

// Supports returns true if a suite is registered under id.
func (r *Registry) Supports(id string) bool {
	_, ok := r.suites[id]
	return ok
}

// Suites returns the descriptors of all registered suites in registration order.
func (r *Registry) Suites() []Descriptor {
	descriptors := make([]Descriptor, 0, len(r.order))
	for _, id := range r.order {
		descriptors = append(descriptors, r.suites[id].Descriptor())
	}
	return descriptors
}
