// Package ffi is the C shaped surface of the key service.
//
// Key pairs are addressed by integer handles owned by the caller, a nil
// slice stands for a NULL pointer and results are plain integers, so the
// functions map one to one onto the exports of cmd/libedkey. No function
// panics or retains a caller buffer after it returns.
package ffi

import (
	"github.com/sirupsen/logrus"

	"github.com/busybox42/edkey/internal/store"
	"github.com/busybox42/edkey/pkg/crypto"
)

const (
	PublicKeySize  = crypto.PublicKeySize
	PrivateKeySize = crypto.PrivateKeySize
	SignatureSize  = crypto.SignatureSize
)

// Handle identifies a key pair across the boundary. NullHandle is never
// issued.
type Handle uint64

const NullHandle Handle = 0

// Status codes returned by ExportKeys and Sign.
const (
	Failure = 0
	Success = 1
)

// Verification results returned by Verify.
const (
	VerifyValid   = 1
	VerifyInvalid = 0
	VerifyError   = -1
)

var (
	handles = store.NewHandles()

	log logrus.FieldLogger = logrus.StandardLogger()
)

// SetLogger replaces the logger used for boundary diagnostics. It must be
// called before the first handle is generated.
func SetLogger(l logrus.FieldLogger) {
	if l == nil {
		l = logrus.StandardLogger()
	}
	log = l
}

// Live returns the number of handles that have not been released.
func Live() int {
	return handles.Len()
}

// Generate creates a fresh key pair and returns its handle, or NullHandle
// when the provider fails.
func Generate() Handle {
	kp, err := crypto.GenerateKeyPair()
	if err != nil {
		log.WithError(err).WithField("op", "generate").Warn("Key generation failed")
		return NullHandle
	}

	return register(kp, "generate")
}

// Import wraps a 32 byte private seed in a new handle, or returns
// NullHandle for a nil or wrongly sized seed.
func Import(seed []byte) Handle {
	if seed == nil {
		log.WithField("op", "import").Debug("NULL seed")
		return NullHandle
	}

	kp, err := crypto.NewKeyPairFromPrivateKey(seed)
	if err != nil {
		log.WithError(err).WithField("op", "import").Debug("Import rejected")
		return NullHandle
	}

	return register(kp, "import")
}

func register(kp *crypto.KeyPair, op string) Handle {
	h := Handle(handles.Store(kp))
	log.WithFields(logrus.Fields{
		"op":          op,
		"handle":      uint64(h),
		"fingerprint": kp.Fingerprint(),
	}).Debug("Key pair registered")

	return h
}

// Release frees the key pair behind h. NullHandle, unknown handles and
// repeated releases are no-ops.
func Release(h Handle) {
	if h == NullHandle {
		return
	}

	kp, err := handles.Delete(uint64(h))
	if err != nil {
		log.WithField("op", "release").WithField("handle", uint64(h)).Debug("Release of unknown handle ignored")
		return
	}

	kp.Release()
	log.WithField("op", "release").WithField("handle", uint64(h)).Debug("Key pair released")
}

// ExportKeys copies the raw public key and private seed of h into the
// buffers. On failure both buffers are left untouched and Failure is
// returned.
func ExportKeys(h Handle, publicOut, privateOut []byte) int {
	if publicOut == nil || privateOut == nil {
		log.WithField("op", "export").Debug("NULL output buffer")
		return Failure
	}

	kp, ok := lookup(h, "export")
	if !ok {
		return Failure
	}

	if err := kp.ExportKeys(publicOut, privateOut); err != nil {
		log.WithError(err).WithField("op", "export").WithField("handle", uint64(h)).Debug("Export failed")
		return Failure
	}

	return Success
}

// Sign writes the signature of message under h into signatureOut. A nil
// message is a NULL pointer and fails; an empty non-nil message is signed.
func Sign(h Handle, message, signatureOut []byte) int {
	if message == nil || signatureOut == nil {
		log.WithField("op", "sign").Debug("NULL message or output buffer")
		return Failure
	}

	kp, ok := lookup(h, "sign")
	if !ok {
		return Failure
	}

	if err := kp.SignInto(message, signatureOut); err != nil {
		log.WithError(err).WithField("op", "sign").WithField("handle", uint64(h)).Debug("Sign failed")
		return Failure
	}

	return Success
}

// Verify checks signature over message under publicKey and returns
// VerifyValid, VerifyInvalid or VerifyError. It needs no handle.
func Verify(publicKey, message, signature []byte) int {
	if publicKey == nil || message == nil || signature == nil {
		log.WithField("op", "verify").Debug("NULL input")
		return VerifyError
	}

	verdict, err := crypto.Verify(publicKey, message, signature)
	if err != nil {
		log.WithError(err).WithField("op", "verify").Debug("Verification could not be evaluated")
	}

	return verdict.Code()
}

func lookup(h Handle, op string) (*crypto.KeyPair, bool) {
	kp, err := handles.Retrieve(uint64(h))
	if err != nil {
		log.WithError(err).WithField("op", op).WithField("handle", uint64(h)).Debug("Invalid handle")
		return nil, false
	}

	return kp, true
}
