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

package signing

import "errors"

var (
	// ErrVerifyOnlyKey indicates a signing attempt with a record that holds
	// no private handle (imported or reloaded public keys).
	ErrVerifyOnlyKey = errors.New("signing: key is verification-only")

	// ErrInactiveKey indicates a signing attempt with a deactivated key.
	// Verification against inactive keys remains permitted.
	ErrInactiveKey = errors.New("signing: key is inactive")

	// ErrMalformedSignature indicates the signature length does not match
	// the suite's fixed signature size.
	ErrMalformedSignature = errors.New("signing: malformed signature")

	// ErrCorruptSuiteOutput indicates a suite produced a signature of the
	// wrong length. This is an internal consistency failure, never tolerated
	// silently.
	ErrCorruptSuiteOutput = errors.New("signing: corrupt suite output")

	// ErrSigningFailed indicates the suite primitive failed to sign.
	ErrSigningFailed = errors.New("signing: signing failed")
)
