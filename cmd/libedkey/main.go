// Command libedkey exposes the key service as a C shared library.
//
//	go build -buildmode=c-shared -o libedkey.so ./cmd/libedkey
//
// The generated libedkey.h declares the exports below together with the
// size constants from the preamble. Handles are uint64_t values owned by
// the caller; 0 is the null handle.
package main

/*
#include <stddef.h>
#include <stdint.h>

#define EDKEY_PUBLIC_KEY_SIZE 32
#define EDKEY_PRIVATE_KEY_SIZE 32
#define EDKEY_SIGNATURE_SIZE 64
*/
import "C"

import (
	"os"
	"unsafe"

	"github.com/sirupsen/logrus"

	"github.com/busybox42/edkey/internal/config"
	"github.com/busybox42/edkey/pkg/ffi"
)

func init() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.WarnLevel)

	cfg, err := config.Load(os.Getenv("EDKEY_CONFIG"))
	if err != nil {
		log.Warnf("Ignoring configuration: %v", err)
	} else if level, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
		log.SetLevel(level)
	}

	ffi.SetLogger(log)
}

// view borrows n bytes at p for the duration of a call. A NULL pointer
// becomes a nil slice so pkg/ffi can reject it.
func view(p *C.uint8_t, n C.size_t) []byte {
	if p == nil {
		return nil
	}
	if n == 0 {
		return []byte{}
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(p)), int(n))
}

//export edkey_generate
func edkey_generate() C.uint64_t {
	return C.uint64_t(ffi.Generate())
}

//export edkey_import
func edkey_import(privateKey *C.uint8_t) C.uint64_t {
	return C.uint64_t(ffi.Import(view(privateKey, ffi.PrivateKeySize)))
}

//export edkey_release
func edkey_release(handle C.uint64_t) {
	ffi.Release(ffi.Handle(handle))
}

//export edkey_export_keys
func edkey_export_keys(handle C.uint64_t, publicKeyOut *C.uint8_t, privateKeyOut *C.uint8_t) C.int {
	return C.int(ffi.ExportKeys(
		ffi.Handle(handle),
		view(publicKeyOut, ffi.PublicKeySize),
		view(privateKeyOut, ffi.PrivateKeySize),
	))
}

//export edkey_sign
func edkey_sign(handle C.uint64_t, message *C.uint8_t, messageLen C.size_t, signatureOut *C.uint8_t) C.int {
	return C.int(ffi.Sign(
		ffi.Handle(handle),
		view(message, messageLen),
		view(signatureOut, ffi.SignatureSize),
	))
}

//export edkey_verify
func edkey_verify(publicKey *C.uint8_t, message *C.uint8_t, messageLen C.size_t, signature *C.uint8_t) C.int {
	return C.int(ffi.Verify(
		view(publicKey, ffi.PublicKeySize),
		view(message, messageLen),
		view(signature, ffi.SignatureSize),
	))
}

func main() {}
