// Package cryptox wraps the primitives used to protect the on-disk user record:
// Argon2id key derivation and AES-GCM sealing of JSON payloads.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"errors"

	"golang.org/x/crypto/argon2"
)

// KeySize is the length of keys returned by DeriveKey (AES-256).
const KeySize = 32

// ErrCiphertextTooShort is returned by Open when the input cannot even hold a nonce.
var ErrCiphertextTooShort = errors.New("ciphertext too short")

// DeriveKey stretches secret with salt into a KeySize-byte key using Argon2id.
// The parameters are fixed: changing them makes existing records unreadable.
func DeriveKey(secret []byte, salt []byte) []byte {
	return argon2.IDKey(secret, salt, 1, 64*1024, 4, KeySize)
}

// SealJSON serializes v to JSON and encrypts it with AES-GCM under key.
// A fresh random nonce is generated and prepended to the returned ciphertext.
//
// The key must be 16, 24 or 32 bytes long.
func SealJSON(v any, key []byte) ([]byte, error) {
	plaintext, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, aesgcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}

	return aesgcm.Seal(nonce, nonce, plaintext, nil), nil
}

// OpenJSON reverses SealJSON: it splits off the nonce, decrypts with key and
// unmarshals the plaintext into v.
func OpenJSON(sealed []byte, key []byte, v any) error {
	aesgcm, err := newGCM(key)
	if err != nil {
		return err
	}

	ns := aesgcm.NonceSize()
	if len(sealed) < ns {
		return ErrCiphertextTooShort
	}

	plaintext, err := aesgcm.Open(nil, sealed[:ns], sealed[ns:], nil)
	if err != nil {
		return err
	}

	return json.Unmarshal(plaintext, v)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
