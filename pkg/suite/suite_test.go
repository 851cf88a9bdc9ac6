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

// allSuites returns one instance of every supported suite.
func allSuites() []Suite {
	return []Suite{
		NewSecp256k1(),
		NewEd25519(),
		NewMLDSA44(),
		NewMLDSA65(),
		NewMLDSA87(),
	}
}

func TestSignVerifyRoundTrip(t *testing.T) {
	message := []byte("Hello, quantum-safe world!")

	for _, s := range allSuites() {
		desc := s.Descriptor()
		t.Run(desc.ID, func(t *testing.T) {
			pub, priv, err := s.GenerateKeyPair()
			if err != nil {
				t.Fatalf("GenerateKeyPair() error = %v", err)
			}
			if len(pub) != desc.PublicKeySize {
				t.Fatalf("public key is %d bytes, want %d", len(pub), desc.PublicKeySize)
			}
			if priv.SuiteID() != desc.ID {
				t.Fatalf("handle SuiteID = %s, want %s", priv.SuiteID(), desc.ID)
			}

			sig, err := s.Sign(priv, message)
			if err != nil {
				t.Fatalf("Sign() error = %v", err)
			}
			if len(sig) != desc.SignatureSize {
				t.Fatalf("signature is %d bytes, want %d", len(sig), desc.SignatureSize)
			}

			valid, err := s.Verify(pub, message, sig)
			if err != nil {
				t.Fatalf("Verify() error = %v", err)
			}
			if !valid {
				t.Fatal("Verify() = false for a fresh signature")
			}
		})
	}
}

func TestVerifyRejectsTamperedSignature(t *testing.T) {
	message := []byte("tamper detection")

	for _, s := range allSuites() {
		desc := s.Descriptor()
		t.Run(desc.ID, func(t *testing.T) {
			pub, priv, err := s.GenerateKeyPair()
			if err != nil {
				t.Fatalf("GenerateKeyPair() error = %v", err)
			}
			sig, err := s.Sign(priv, message)
			if err != nil {
				t.Fatalf("Sign() error = %v", err)
			}

			// Flip one bit in the signature.
			tampered := make([]byte, len(sig))
			copy(tampered, sig)
			tampered[len(tampered)/2] ^= 0x01

			valid, err := s.Verify(pub, message, tampered)
			if err != nil {
				t.Fatalf("Verify(tampered) error = %v", err)
			}
			if valid {
				t.Fatal("Verify(tampered) = true, want false")
			}

			// And a tampered message.
			valid, err = s.Verify(pub, []byte("tamper detectioN"), sig)
			if err != nil {
				t.Fatalf("Verify(other message) error = %v", err)
			}
			if valid {
				t.Fatal("Verify(other message) = true, want false")
			}
		})
	}
}

func TestVerifyWrongLengthSignature(t *testing.T) {
	for _, s := range allSuites() {
		desc := s.Descriptor()
		t.Run(desc.ID, func(t *testing.T) {
			pub, _, err := s.GenerateKeyPair()
			if err != nil {
				t.Fatalf("GenerateKeyPair() error = %v", err)
			}
			valid, err := s.Verify(pub, []byte("msg"), make([]byte, desc.SignatureSize-1))
			if err != nil {
				t.Fatalf("Verify(short sig) error = %v", err)
			}
			if valid {
				t.Fatal("Verify(short sig) = true, want false")
			}
		})
	}
}

func TestVerifyMalformedPublicKey(t *testing.T) {
	for _, s := range allSuites() {
		desc := s.Descriptor()
		t.Run(desc.ID, func(t *testing.T) {
			_, err := s.Verify([]byte{0x01, 0x02}, []byte("msg"), make([]byte, desc.SignatureSize))
			if !errors.Is(err, ErrMalformedPublicKey) {
				t.Errorf("Verify(bad pub) error = %v, want ErrMalformedPublicKey", err)
			}
		})
	}
}

func TestSignRejectsForeignHandle(t *testing.T) {
	ed := NewEd25519()
	ec := NewSecp256k1()

	_, edPriv, err := ed.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair() error = %v", err)
	}

	// A handle minted by Ed25519 must be refused by secp256k1 and vice versa.
	if _, err := ec.Sign(edPriv, []byte("msg")); !errors.Is(err, ErrInvalidPrivateKey) {
		t.Errorf("secp256k1.Sign(ed25519 handle) error = %v, want ErrInvalidPrivateKey", err)
	}

	_, ecPriv, err := ec.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair() error = %v", err)
	}
	if _, err := ed.Sign(ecPriv, []byte("msg")); !errors.Is(err, ErrInvalidPrivateKey) {
		t.Errorf("ed25519.Sign(secp256k1 handle) error = %v, want ErrInvalidPrivateKey", err)
	}
}

func TestCrossSuiteHandlesWithinCirclFamily(t *testing.T) {
	level2 := NewMLDSA44()
	level3 := NewMLDSA65()

	_, priv, err := level2.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair() error = %v", err)
	}
	if _, err := level3.Sign(priv, []byte("msg")); !errors.Is(err, ErrInvalidPrivateKey) {
		t.Errorf("mldsa65.Sign(mldsa44 handle) error = %v, want ErrInvalidPrivateKey", err)
	}
}

func TestKeyPairsAreUnique(t *testing.T) {
	s := NewEd25519()
	pub1, _, err := s.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair() error = %v", err)
	}
	pub2, _, err := s.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair() error = %v", err)
	}
	if string(pub1) == string(pub2) {
		t.Fatal("two generated key pairs share the same public key")
	}
}
