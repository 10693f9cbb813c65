// Package goToken issues, verifies, and optionally encrypts compact security
// tokens carrying identity claims (subject, issuer, audience, roles,
// permissions, validity window).
//
// The package is built around a uniform repository contract (issue, verify,
// extract claims) that is polymorphic over algorithm family and key shape.
// [SecretRepository] covers the HMAC family over shared secrets,
// [KeypairRepository] covers RSA, ECDSA, and EdDSA over asymmetric keypairs,
// and [NestedRepository] composes an asymmetric signature with a JWE envelope
// (sign-then-encrypt, decrypt-then-verify).
//
// # Architecture boundaries
//
// goToken is the public surface. It exposes the repositories, [Builder],
// [Claims], [ClaimsBuilder], [Realm], and the error taxonomy. Compact
// serialization lives under internal/ and is never exported; callers treat a
// token as an opaque string produced and consumed only through a repository.
//
// # What this package must NOT do
//
//   - Perform key management, rotation, or revocation. Keys are caller-owned
//     and passed per call.
//   - Distinguish "signature bad" from "expired" in caller-visible errors.
//     Both surface as [ErrAuthentication].
//   - Retry. Verification failures and malformed tokens are definitional,
//     not transient.
//
// # Concurrency contract
//
// Repositories hold only configuration fixed at build time. Issue, Verify,
// and Claims are safe for concurrent use from multiple goroutines on the
// same repository instance; the clock is sampled once per call.
package goToken
