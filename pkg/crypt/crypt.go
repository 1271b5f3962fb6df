// Package crypt wraps request payloads before they leave the gateway. The
// backend expects every mutating call to carry an opaque encrypted body in
// place of plaintext JSON; responses come back as plain JSON and are never
// decrypted here outside of tests.
package crypt

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

var ErrCiphertextTooShort = errors.New("ciphertext too short")

// Argon2id parameters for key derivation from the configured secret.
const (
	argonTime    uint32 = 3
	argonMemory  uint32 = 64 * 1024
	argonThreads uint8  = 1
	keyLen       uint32 = chacha20poly1305.KeySize
)

// Sealer turns JSON-serializable values into opaque encrypted strings.
type Sealer struct {
	key []byte
}

// NewSealer derives the sealing key from the configured secret and salt.
// The same secret/salt pair always yields the same key.
func NewSealer(secret, salt string) *Sealer {
	return &Sealer{key: argon2.IDKey([]byte(secret), []byte(salt), argonTime, argonMemory, argonThreads, keyLen)}
}

// EncryptJSON marshals v and seals it with XChaCha20-Poly1305 under a random
// nonce. The input value is only read, never mutated.
func (s *Sealer) EncryptJSON(v any) (string, error) {
	plain, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return s.seal(plain)
}

// EncryptString seals a single scalar, used for identifier query parameters on
// GET-style mutations.
func (s *Sealer) EncryptString(value string) (string, error) {
	return s.seal([]byte(value))
}

func (s *Sealer) seal(plain []byte) (string, error) {
	aead, err := chacha20poly1305.NewX(s.key)
	if err != nil {
		return "", err
	}
	nonce := make([]byte, chacha20poly1305.NonceSizeX)
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	out := make([]byte, 0, len(nonce)+len(plain)+aead.Overhead())
	out = append(out, nonce...)
	out = append(out, aead.Seal(nil, nonce, plain, nil)...)
	return base64.StdEncoding.EncodeToString(out), nil
}

// Open reverses EncryptJSON/EncryptString. The gateway itself never decrypts;
// this exists so tests and backend-side tooling can verify sealed payloads.
func (s *Sealer) Open(encoded string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, err
	}
	if len(raw) < chacha20poly1305.NonceSizeX {
		return nil, ErrCiphertextTooShort
	}
	aead, err := chacha20poly1305.NewX(s.key)
	if err != nil {
		return nil, err
	}
	nonce := raw[:chacha20poly1305.NonceSizeX]
	ct := raw[chacha20poly1305.NonceSizeX:]
	return aead.Open(nil, nonce, ct, nil)
}
