// Package cryptox implements the symmetric primitives shared by the key
// vault and the sealed store layer: AES-GCM envelopes over byte slices,
// argon2id wrap-key derivation, and labelled subkey derivation.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/shoaib/notekeeper/internal/common"
	"golang.org/x/crypto/argon2"
)

// NonceSize is the AES-GCM nonce length used by Seal/Open envelopes.
const NonceSize = 12

// ErrMalformedEnvelope is returned by Open when the input is too short to
// contain a nonce.
var ErrMalformedEnvelope = errors.New("malformed envelope")

// Seal encrypts plaintext with AES-GCM under key and returns a single
// self-contained envelope of the form nonce||ciphertext. A fresh random
// nonce is generated for every call.
//
// The key must be 16, 24, or 32 bytes (AES-128/192/256).
func Seal(plaintext, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce := common.GenerateRandByteArray(NonceSize)

	out := make([]byte, 0, NonceSize+len(plaintext)+aesgcm.Overhead())
	out = append(out, nonce...)
	return aesgcm.Seal(out, nonce, plaintext, nil), nil
}

// Open decrypts an envelope produced by Seal. Authentication failure (wrong
// key or tampered data) surfaces as the underlying cipher error.
func Open(envelope, key []byte) ([]byte, error) {
	if len(envelope) < NonceSize {
		return nil, ErrMalformedEnvelope
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	plaintext, err := aesgcm.Open(nil, envelope[:NonceSize], envelope[NonceSize:], nil)
	if err != nil {
		return nil, fmt.Errorf("open envelope: %w", err)
	}
	return plaintext, nil
}

// DeriveWrapKey derives the 32-byte key used to wrap the store key at rest
// from a random seed and salt. Parameters follow the argon2id recommended
// defaults for interactive use.
func DeriveWrapKey(seed, salt []byte) []byte {
	return argon2.IDKey(seed, salt, 1, 64*1024, 4, 32)
}

// DeriveSubkey derives a purpose-specific 32-byte key from base key material
// and a label. Distinct labels yield independent keys, so a single vault key
// can safely back multiple consumers (store sealing, token signing).
func DeriveSubkey(key []byte, label string) []byte {
	h := sha256.New()
	h.Write([]byte(label))
	h.Write([]byte{0})
	h.Write(key)
	return h.Sum(nil)
}
