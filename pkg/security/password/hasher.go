// Package password implements the password hashers and the random password
// generator used by the account service.
package password

import (
	"crypto/hmac"
	"crypto/md5"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// LegacyKey is the shared HMAC key existing account rows were hashed with.
const LegacyKey = "P@ssw0rd"

// Hasher names accepted by New.
const (
	KindHMAC   = "hmac"
	KindBcrypt = "bcrypt"
)

// HMACHasher produces lowercase hex HMAC-MD5 digests under a single shared key.
// It is deterministic and unsalted; it exists to keep stored digests valid.
type HMACHasher struct {
	key []byte
}

func NewHMACHasher(key string) *HMACHasher {
	if key == "" {
		key = LegacyKey
	}
	return &HMACHasher{key: []byte(key)}
}

func (h *HMACHasher) Hash(plain string) (string, error) {
	mac := hmac.New(md5.New, h.key)
	if _, err := mac.Write([]byte(plain)); err != nil {
		return "", fmt.Errorf("hmac write: %w", err)
	}
	return hex.EncodeToString(mac.Sum(nil)), nil
}

func (h *HMACHasher) Verify(plain, digest string) bool {
	computed, err := h.Hash(plain)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(computed), []byte(digest)) == 1
}

// BcryptHasher stores salted bcrypt hashes. Its output cannot verify
// passwords hashed by HMACHasher and vice versa.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(b), nil
}

func (h *BcryptHasher) Verify(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}

// ErrUnknownHasher is returned by New for an unsupported kind.
var ErrUnknownHasher = errors.New("unknown password hasher")

// Hasher is satisfied by HMACHasher and BcryptHasher.
type Hasher interface {
	Hash(plain string) (string, error)
	Verify(plain, digest string) bool
}

// New builds the hasher named by kind. key is only used by KindHMAC.
func New(kind, key string) (Hasher, error) {
	switch kind {
	case "", KindHMAC:
		return NewHMACHasher(key), nil
	case KindBcrypt:
		return NewBcryptHasher(bcrypt.DefaultCost), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownHasher, kind)
	}
}
