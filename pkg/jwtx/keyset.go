package jwtx

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"sync"
)

// MinSecretLength is the shortest HS256 secret accepted (256 bits).
const MinSecretLength = 32

var (
	ErrNoKey      = errors.New("jwtx: key not found")
	ErrWeakSecret = errors.New("jwtx: secret shorter than 32 bytes")
)

// KeyRing holds the HS256 secrets. Exactly one secret signs new tokens; the
// previous ones are only used to verify tokens issued before a rotation, so
// a secret change does not log everyone out.
type KeyRing struct {
	mu     sync.RWMutex
	active string
	keys   map[string][]byte
	order  []string // oldest first
}

// NewKeyRing builds a ring whose active secret is active. Previous secrets are
// accepted for verification only.
func NewKeyRing(active []byte, previous ...[]byte) (*KeyRing, error) {
	k := &KeyRing{keys: make(map[string][]byte)}
	for _, p := range previous {
		if _, err := k.add(p); err != nil {
			return nil, err
		}
	}
	if err := k.Rotate(active); err != nil {
		return nil, err
	}
	return k, nil
}

// KeyID derives the "kid" header for a secret: a short, non-reversible tag so
// the secret itself never leaves the process.
func KeyID(secret []byte) string {
	sum := sha256.Sum256(secret)
	return base64.RawURLEncoding.EncodeToString(sum[:8])
}

// Rotate makes secret the signing key. The previously active secret stays in
// the ring for verification.
func (k *KeyRing) Rotate(secret []byte) error {
	kid, err := k.add(secret)
	if err != nil {
		return err
	}

	k.mu.Lock()
	k.active = kid
	k.mu.Unlock()
	return nil
}

// Active returns the signing secret and its kid.
func (k *KeyRing) Active() (string, []byte, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	secret, ok := k.keys[k.active]
	if !ok {
		return "", nil, ErrNoKey
	}
	return k.active, secret, nil
}

// Get returns the secret for kid.
func (k *KeyRing) Get(kid string) ([]byte, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	if secret, ok := k.keys[kid]; ok {
		return secret, nil
	}
	return nil, ErrNoKey
}

// KIDs lists the key ids, oldest first.
func (k *KeyRing) KIDs() []string {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return append([]string(nil), k.order...)
}

// IsReady reports whether a signing secret is loaded.
func (k *KeyRing) IsReady() bool {
	_, _, err := k.Active()
	return err == nil
}

func (k *KeyRing) add(secret []byte) (string, error) {
	if len(secret) < MinSecretLength {
		return "", ErrWeakSecret
	}

	kid := KeyID(secret)

	k.mu.Lock()
	defer k.mu.Unlock()
	if _, ok := k.keys[kid]; !ok {
		k.keys[kid] = append([]byte(nil), secret...)
		k.order = append(k.order, kid)
	}
	return kid, nil
}
