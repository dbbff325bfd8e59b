package crypto

import "errors"

var (
	ErrInvalidHandle      = errors.New("invalid or released key pair")
	ErrShortBuffer        = errors.New("output buffer too small")
	ErrGenerate           = errors.New("key generation failed")
	ErrSign               = errors.New("signing failed")
	ErrPublicKeySize      = errors.New("invalid public key size")
	ErrPrivateKeySize     = errors.New("invalid private key size")
	ErrSignatureSize      = errors.New("invalid signature size")
	ErrMalformedPublicKey = errors.New("public key is not a valid curve point")
)
