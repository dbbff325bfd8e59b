// Package commands defines the edkey CLI.
//
// Commands
//
//   - generate     Create a key pair and print or emit its private seed
//   - public       Print the public key for a private seed
//   - sign         Sign a message
//   - verify       Verify a signature (exit 0 valid, 1 invalid, 2 error)
//   - fingerprint  Print the short fingerprint of a public key
//
// # Implementation
//
// Keys and signatures are printed in the configured encoding when stdout is
// a terminal and written as raw bytes otherwise, so they can be piped into
// another invocation. Commands that take a private seed read it from the
// argument or, when the argument is omitted, as raw bytes from stdin.
// Nothing is written to disk.
package commands
