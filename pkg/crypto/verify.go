package crypto

import (
	"crypto/ed25519"
	"fmt"

	"filippo.io/edwards25519"
)

// Verdict is the outcome of a signature check.
type Verdict int

const (
	// VerdictError means validity could not be determined, for example
	// because the public key is not a point on the curve.
	VerdictError Verdict = iota
	// VerdictInvalid means the signature does not match the message.
	VerdictInvalid
	// VerdictValid means the signature matches the message and key.
	VerdictValid
)

var verdictNames = map[Verdict]string{
	VerdictError:   "error",
	VerdictInvalid: "invalid",
	VerdictValid:   "valid",
}

func (v Verdict) String() string {
	if name, ok := verdictNames[v]; ok {
		return name
	}

	return fmt.Sprintf("Verdict(%d)", int(v))
}

// Code maps the verdict onto the integer convention used across the C
// boundary: 1 valid, 0 invalid, -1 error.
func (v Verdict) Code() int {
	switch v {
	case VerdictValid:
		return 1
	case VerdictInvalid:
		return 0
	default:
		return -1
	}
}

// Verify checks signature over message under publicKey.
//
// A non-nil error is returned only together with VerdictError. A mismatch
// between a well formed key and signature is VerdictInvalid with a nil
// error, so callers can tell a forged signature from unusable input.
func Verify(publicKey, message, signature []byte) (Verdict, error) {
	if len(publicKey) != PublicKeySize {
		return VerdictError, fmt.Errorf("%w: got %d bytes", ErrPublicKeySize, len(publicKey))
	}
	if len(signature) != SignatureSize {
		return VerdictError, fmt.Errorf("%w: got %d bytes", ErrSignatureSize, len(signature))
	}

	if _, err := new(edwards25519.Point).SetBytes(publicKey); err != nil {
		return VerdictError, fmt.Errorf("%w: %v", ErrMalformedPublicKey, err)
	}

	if !ed25519.Verify(ed25519.PublicKey(publicKey), message, signature) {
		return VerdictInvalid, nil
	}

	return VerdictValid, nil
}
