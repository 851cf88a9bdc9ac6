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

import (
	"time"

	"github.com/jeremyhahn/go-hybridsign/pkg/suite"
)

// Status is the lifecycle state of a key record.
type Status string

const (
	// StatusActive marks a key usable for signing (if it holds a private handle).
	StatusActive Status = "active"

	// StatusInactive marks a retired key. Verification remains permitted so
	// historically issued signatures stay checkable.
	StatusInactive Status = "inactive"
)

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// Usage tags what a key record may be used for.
type Usage string

const (
	// UsageSign permits signing with the record's private handle.
	UsageSign Usage = "sign"

	// UsageVerify permits verification against the record's public key.
	UsageVerify Usage = "verify"
)

// KeyRecord is a stored cryptographic identity binding an agent, a suite,
// and key material. The public key length and suite identifier are always
// consistent with the bound suite's descriptor; after creation only Status
// ever changes.
type KeyRecord struct {
	// ID is the opaque unique key identifier assigned at creation.
	ID string `json:"id"`

	// AgentID is the owning agent's identifier.
	AgentID string `json:"agent_id"`

	// SuiteID is the identifier of the bound signature suite.
	SuiteID string `json:"suite_id"`

	// Usage tags the permitted operations ("sign", "verify").
	Usage []Usage `json:"usage"`

	// Status is "active" or "inactive".
	Status Status `json:"status"`

	// PublicKey is the raw public key, exactly the suite's public key length.
	PublicKey []byte `json:"public_key"`

	// CreatedAt is the creation timestamp (UTC).
	CreatedAt time.Time `json:"created_at"`

	// Sequence orders records by creation within this store.
	Sequence uint64 `json:"sequence"`

	// private is the opaque signing handle. It is nil for verification-only
	// records and is deliberately excluded from every serialized form.
	private suite.PrivateKey
}

// IsActive returns true if the record's status is active.
func (r *KeyRecord) IsActive() bool {
	return r.Status == StatusActive
}

// HasPrivate returns true if the record holds a private signing handle.
// Imported (verification-only) records and records reloaded from persistent
// storage do not.
func (r *KeyRecord) HasPrivate() bool {
	return r.private != nil
}

// HasUsage returns true if the record carries the given usage tag.
func (r *KeyRecord) HasUsage(u Usage) bool {
	for _, tag := range r.Usage {
		if tag == u {
			return true
		}
	}
	return false
}

// Handle returns the record's opaque private handle, or nil for
// verification-only records. The handle is only usable by the suite that
// produced it and cannot be serialized.
func (r *KeyRecord) Handle() suite.PrivateKey {
	return r.private
}

// clone returns a copy of the record safe to hand to callers. The private
// handle is shared (it is immutable and opaque); byte and slice fields are
// copied.
func (r *KeyRecord) clone() *KeyRecord {
	out := *r
	out.PublicKey = make([]byte, len(r.PublicKey))
	copy(out.PublicKey, r.PublicKey)
	out.Usage = make([]Usage, len(r.Usage))
	copy(out.Usage, r.Usage)
	return &out
}
