// pkg/crypto/keys.go
package crypto

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
	"io"
	"sync"
)

// Sizes of raw Ed25519 material as exchanged with callers.
const (
	PublicKeySize  = ed25519.PublicKeySize
	PrivateKeySize = ed25519.SeedSize
	SignatureSize  = ed25519.SignatureSize
)

// KeyPair is an opaque handle over one Ed25519 private/public key pair.
//
// The zero value is not usable; obtain a KeyPair from GenerateKeyPair or
// NewKeyPairFromPrivateKey. Key material never changes after creation.
// Release wipes it, after which every method reports ErrInvalidHandle.
// A nil *KeyPair behaves like a released one.
type KeyPair struct {
	mu      sync.RWMutex
	private ed25519.PrivateKey
	public  ed25519.PublicKey
}

// GenerateKeyPair creates a new Ed25519 key pair from crypto/rand.
func GenerateKeyPair() (*KeyPair, error) {
	return GenerateKeyPairFrom(rand.Reader)
}

// GenerateKeyPairFrom creates a new Ed25519 key pair reading its 32 byte
// seed from random, as ed25519.GenerateKey does. Either a complete KeyPair
// or an error wrapping ErrGenerate is returned, never both.
func GenerateKeyPairFrom(random io.Reader) (kp *KeyPair, err error) {
	if random == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrGenerate)
	}

	defer func() {
		if r := recover(); r != nil {
			kp, err = nil, fmt.Errorf("%w: %v", ErrGenerate, r)
		}
	}()

	seed := make([]byte, PrivateKeySize)
	defer Wipe(seed)

	if _, err := io.ReadFull(random, seed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerate, err)
	}

	return NewKeyPairFromPrivateKey(seed)
}

// NewKeyPairFromPrivateKey wraps an existing 32 byte private seed in a
// KeyPair. The seed is copied; the caller may wipe its buffer afterwards.
func NewKeyPairFromPrivateKey(seed []byte) (*KeyPair, error) {
	if len(seed) != PrivateKeySize {
		return nil, fmt.Errorf("%w: got %d bytes", ErrPrivateKeySize, len(seed))
	}

	privateKey := ed25519.NewKeyFromSeed(seed)

	return &KeyPair{
		private: privateKey,
		public:  privateKey.Public().(ed25519.PublicKey),
	}, nil
}

// PublicKeyFromPrivate returns the public key belonging to a 32 byte
// private seed.
func PublicKeyFromPrivate(seed []byte) ([]byte, error) {
	kp, err := NewKeyPairFromPrivateKey(seed)
	if err != nil {
		return nil, err
	}
	defer kp.Release()

	return kp.PublicKey()
}

// Release wipes the private key and invalidates the handle. It is safe to
// call on a nil KeyPair and more than once.
func (kp *KeyPair) Release() {
	if kp == nil {
		return
	}

	kp.mu.Lock()
	defer kp.mu.Unlock()

	Wipe(kp.private)
	kp.private = nil
	kp.public = nil
}

// Close releases the key pair so it can be used with defer and io.Closer.
func (kp *KeyPair) Close() error {
	kp.Release()
	return nil
}

// Released reports whether the handle can no longer be used.
func (kp *KeyPair) Released() bool {
	if kp == nil {
		return true
	}

	kp.mu.RLock()
	defer kp.mu.RUnlock()

	return kp.private == nil
}

// ExportKeys copies the raw public key and private seed into the supplied
// buffers. Neither buffer is touched when an error is returned.
func (kp *KeyPair) ExportKeys(publicOut, privateOut []byte) error {
	if kp == nil {
		return ErrInvalidHandle
	}

	kp.mu.RLock()
	defer kp.mu.RUnlock()

	if kp.private == nil {
		return ErrInvalidHandle
	}
	if len(publicOut) < PublicKeySize || len(privateOut) < PrivateKeySize {
		return ErrShortBuffer
	}

	copy(publicOut, kp.public)
	copy(privateOut, kp.private[:PrivateKeySize])

	return nil
}

// PublicKey returns a copy of the public key.
func (kp *KeyPair) PublicKey() ([]byte, error) {
	if kp == nil {
		return nil, ErrInvalidHandle
	}

	kp.mu.RLock()
	defer kp.mu.RUnlock()

	if kp.public == nil {
		return nil, ErrInvalidHandle
	}

	out := make([]byte, PublicKeySize)
	copy(out, kp.public)

	return out, nil
}

// Sign creates a signature for the given message using the private key
func (kp *KeyPair) Sign(message []byte) ([]byte, error) {
	signature := make([]byte, SignatureSize)
	if err := kp.SignInto(message, signature); err != nil {
		return nil, err
	}

	return signature, nil
}

// SignInto signs the whole message with pure Ed25519 and writes the 64 byte
// signature to signatureOut. Signing is deterministic: the same key and
// message always produce the same bytes.
func (kp *KeyPair) SignInto(message, signatureOut []byte) error {
	if kp == nil {
		return ErrInvalidHandle
	}
	if len(signatureOut) < SignatureSize {
		return ErrShortBuffer
	}

	kp.mu.RLock()
	defer kp.mu.RUnlock()

	if kp.private == nil {
		return ErrInvalidHandle
	}

	// A zero Options selects Ed25519 without prehash or context.
	signature, err := kp.private.Sign(nil, message, &ed25519.Options{})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSign, err)
	}

	copy(signatureOut, signature)

	return nil
}

// Fingerprint returns the short fingerprint of the public key, or an empty
// string for a released handle.
func (kp *KeyPair) Fingerprint() string {
	publicKey, err := kp.PublicKey()
	if err != nil {
		return ""
	}

	return Fingerprint(publicKey)
}
