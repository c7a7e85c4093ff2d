package password

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
)

// Hasher turns a password into a storable one-way encoding and verifies
// candidates against it.
type Hasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) (bool, error)
}

// Scheme names accepted by NewHasher.
const (
	SchemeSHA256   = "sha256"
	SchemeArgon2ID = "argon2id"
)

// NewHasher returns the hasher registered under name.
func NewHasher(name string) (Hasher, error) {
	switch name {
	case "", SchemeSHA256:
		return SHA256Hasher{}, nil
	case SchemeArgon2ID:
		return NewArgon2Hasher(DefaultArgon2Config())
	}
	return nil, fmt.Errorf("unknown password hash scheme %q", name)
}

// Hash returns the lowercase hex SHA-256 digest of password. Same input,
// same output; the digest is always 64 characters.
func Hash(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// SHA256Hasher is the unsalted, deterministic scheme. Stores written by
// older versions of the tool use it.
type SHA256Hasher struct{}

func (SHA256Hasher) Hash(password string) (string, error) {
	return Hash(password), nil
}

func (SHA256Hasher) Verify(password, encoded string) (bool, error) {
	candidate := Hash(password)
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(encoded)) == 1, nil
}
