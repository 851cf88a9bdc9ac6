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

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeremyhahn/go-hybridsign/pkg/suite"
)

func TestHexRoundTrip(t *testing.T) {
	raw := []byte{0x00, 0x01, 0xAB, 0xFF}
	encoded := EncodeHex(raw)
	assert.Equal(t, "0001abff", encoded)

	decoded, err := DecodeHex(encoded)
	require.NoError(t, err)
	assert.Equal(t, raw, decoded)
}

func TestDecodeHexInvalid(t *testing.T) {
	_, err := DecodeHex("not hex")
	require.ErrorIs(t, err, ErrInvalidHex)

	_, err = DecodeHex("abc")
	require.ErrorIs(t, err, ErrInvalidHex)
}

func TestBundleRoundTrip(t *testing.T) {
	publicKey := []byte("thirty-two bytes of public key!!")

	data, err := EncodeBundle(suite.Ed25519, publicKey)
	require.NoError(t, err)

	suiteID, decoded, err := DecodeBundle(data)
	require.NoError(t, err)
	assert.Equal(t, suite.Ed25519, suiteID)
	assert.Equal(t, publicKey, decoded)
}

func TestDecodeBundleFingerprintMismatch(t *testing.T) {
	data, err := EncodeBundle(suite.Ed25519, []byte("thirty-two bytes of public key!!"))
	require.NoError(t, err)

	var bundle PublicKeyBundle
	require.NoError(t, json.Unmarshal(data, &bundle))
	bundle.PublicKey = EncodeHex([]byte("thirty-two bytes of other key!!!"))
	tampered, err := json.Marshal(&bundle)
	require.NoError(t, err)

	_, _, err = DecodeBundle(tampered)
	require.ErrorIs(t, err, ErrFingerprintMismatch)
}

func TestDecodeBundleInvalid(t *testing.T) {
	_, _, err := DecodeBundle([]byte("not json"))
	require.ErrorIs(t, err, ErrInvalidBundle)

	_, _, err = DecodeBundle([]byte(`{"public_key":"ab","fingerprint":"cd"}`))
	require.ErrorIs(t, err, ErrInvalidBundle)

	_, _, err = DecodeBundle([]byte(`{"suite_id":"classical-ed25519","public_key":"zz","fingerprint":"cd"}`))
	require.ErrorIs(t, err, ErrInvalidBundle)
}

func TestFingerprintDeterministic(t *testing.T) {
	key := []byte("some key material")
	assert.Equal(t, Fingerprint(key), Fingerprint(key))
	assert.NotEqual(t, Fingerprint(key), Fingerprint([]byte("other key material")))
	assert.Len(t, Fingerprint(key), 32)
}
