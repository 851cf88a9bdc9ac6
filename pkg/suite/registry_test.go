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
	"errors"
	"testing"
)

func TestDefaultRegistry(t *testing.T) {
	registry, err := DefaultRegistry()
	if err != nil {
		t.Fatalf("DefaultRegistry() error = %v", err)
	}

	want := []string{Secp256k1, Ed25519, LatticeLevel2, LatticeLevel3, LatticeLevel5}
	descriptors := registry.Suites()
	if len(descriptors) != len(want) {
		t.Fatalf("Suites() returned %d suites, want %d", len(descriptors), len(want))
	}
	for i, id := range want {
		if descriptors[i].ID != id {
			t.Errorf("Suites()[%d].ID = %s, want %s", i, descriptors[i].ID, id)
		}
		if !registry.Supports(id) {
			t.Errorf("Supports(%s) = false, want true", id)
		}
	}
}

func TestRegistryResolveUnknown(t *testing.T) {
	registry, err := DefaultRegistry()
	if err != nil {
		t.Fatalf("DefaultRegistry() error = %v", err)
	}

	if _, err := registry.Resolve("classical-p256"); !errors.Is(err, ErrUnknownSuite) {
		t.Errorf("Resolve(unknown) error = %v, want ErrUnknownSuite", err)
	}
	if _, err := registry.Describe("lattice-level-1"); !errors.Is(err, ErrUnknownSuite) {
		t.Errorf("Describe(unknown) error = %v, want ErrUnknownSuite", err)
	}
	if registry.Supports("") {
		t.Error("Supports(\"\") = true, want false")
	}
}

func TestNewRegistryDuplicate(t *testing.T) {
	_, err := NewRegistry(NewEd25519(), NewEd25519())
	if !errors.Is(err, ErrDuplicateSuite) {
		t.Errorf("NewRegistry(dup) error = %v, want ErrDuplicateSuite", err)
	}
}

func TestDescriptorSizes(t *testing.T) {
	registry, err := DefaultRegistry()
	if err != nil {
		t.Fatalf("DefaultRegistry() error = %v", err)
	}

	tests := []struct {
		id       string
		category Category
		pubSize  int
		sigSize  int
	}{
		{Secp256k1, CategoryClassical, 33, 64},
		{Ed25519, CategoryClassical, 32, 64},
		{LatticeLevel2, CategoryPostQuantum, 1312, 2420},
		{LatticeLevel3, CategoryPostQuantum, 1952, 3309},
		{LatticeLevel5, CategoryPostQuantum, 2592, 4627},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			desc, err := registry.Describe(tt.id)
			if err != nil {
				t.Fatalf("Describe(%s) error = %v", tt.id, err)
			}
			if desc.Category != tt.category {
				t.Errorf("Category = %s, want %s", desc.Category, tt.category)
			}
			if desc.PublicKeySize != tt.pubSize {
				t.Errorf("PublicKeySize = %d, want %d", desc.PublicKeySize, tt.pubSize)
			}
			if desc.SignatureSize != tt.sigSize {
				t.Errorf("SignatureSize = %d, want %d", desc.SignatureSize, tt.sigSize)
			}
		})
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input string
		want  Category
	}{
		{"classical", CategoryClassical},
		{"Classical", CategoryClassical},
		{"post-quantum", CategoryPostQuantum},
		{"postquantum", CategoryPostQuantum},
		{"pq", CategoryPostQuantum},
		{" pq ", CategoryPostQuantum},
		{"quantum", Category("")},
		{"", Category("")},
	}
	for _, tt := range tests {
		if got := ParseCategory(tt.input); got != tt.want {
			t.Errorf("ParseCategory(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}

	if !CategoryClassical.IsValid() || !CategoryPostQuantum.IsValid() {
		t.Error("built-in categories should be valid")
	}
	if Category("quantum").IsValid() {
		t.Error("Category(\"quantum\").IsValid() = true, want false")
	}
}
