// Package crypto is the Ed25519 key service.
//
// Contents
//
//   - Key pair handles: GenerateKeyPair, NewKeyPairFromPrivateKey and the
//     KeyPair methods ExportKeys, Sign, SignInto, PublicKey and Release
//   - Stateless verification with a three way result (Verify, Verdict)
//   - Fingerprints for display and logging (Fingerprint)
//
// # Notes
//
// Private seeds are 32 bytes (RFC 8032), not the 64 byte expanded form
// used by crypto/ed25519. Distinct KeyPair values may be used from many
// goroutines at once; a single KeyPair tolerates concurrent Sign calls and
// a racing Release reports ErrInvalidHandle instead of faulting.
package crypto
