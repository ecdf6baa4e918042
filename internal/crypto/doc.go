// Package crypto seals record secrets with a passphrase before they are sent
// to the server.
//
// Contents
//
//   - Seal / Open: scrypt-derived key, ChaCha20-Poly1305, versioned JSON
//     envelope, base64 so the result fits a JSON string field
//   - IsSealed: cheap check used by the CLI to decide whether to Open
//   - Wipe: best-effort zeroing of derived keys
//
// # Notes
//
// The salt doubles as associated data, so swapping envelopes between
// records does not go unnoticed. A wrong passphrase and a tampered envelope
// both yield ErrWrongPassphrase.
package crypto
