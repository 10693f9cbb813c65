package goToken

import (
	"crypto"
	"fmt"
)

// Keypair is the asymmetric key material consumed by [KeypairRepository] and
// [NestedRepository]. Private is required for issuing, Public for verifying;
// a verification-only deployment may leave Private nil.
//
// The concrete types must match the algorithm family: *rsa.PrivateKey /
// *rsa.PublicKey for RS and PS, *ecdsa.PrivateKey / *ecdsa.PublicKey for ES,
// ed25519.PrivateKey / ed25519.PublicKey for EdDSA.
type Keypair struct {
	Public  crypto.PublicKey
	Private crypto.PrivateKey
}

// KeypairRepository issues and verifies tokens signed with the asymmetric
// families (RSA, RSA-PSS, ECDSA, EdDSA). Construct it through
// [Builder.KeypairRepository]; instances are immutable and safe for
// concurrent use.
type KeypairRepository struct {
	core repositoryCore
}

// Issue describes the issue operation and its observable behavior.
//
// Issue may return an error when input validation, dependency calls, or security checks fail.
// Issue does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (r *KeypairRepository) Issue(key Keypair, claims Claims, algorithm string) (string, error) {
	if key.Private == nil {
		r.core.count(MetricIssueFailure)
		return "", fmt.Errorf("%w: issuing requires a private key", ErrIssuance)
	}
	return r.core.issue(key.Private, claims, algorithm, ShapeAsymmetric)
}

// Verify describes the verify operation and its observable behavior.
//
// Verify may return an error when input validation, dependency calls, or security checks fail.
// Verify does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (r *KeypairRepository) Verify(key Keypair, token string, checkExpiry bool) (bool, error) {
	if key.Public == nil {
		r.core.count(MetricVerifyFailure)
		return false, fmt.Errorf("%w: verification requires a public key", ErrAuthentication)
	}
	return r.core.verify(key.Public, token, ShapeAsymmetric, checkExpiry)
}

// Claims returns the claim set of a signature-valid token. Expiry is never
// checked here; use Verify with checkExpiry for time-window enforcement.
func (r *KeypairRepository) Claims(key Keypair, token string) (Claims, error) {
	if key.Public == nil {
		r.core.count(MetricClaimsFailure)
		return Claims{}, fmt.Errorf("%w: verification requires a public key", ErrAuthentication)
	}
	return r.core.extract(key.Public, token, ShapeAsymmetric)
}

// Refresh re-issues the claims of a signature-valid token with a fresh
// validity window and token ID. The input may already be expired.
func (r *KeypairRepository) Refresh(key Keypair, token string, algorithm string, periodSeconds int64) (string, error) {
	if key.Public == nil || key.Private == nil {
		r.core.count(MetricRefreshFailure)
		return "", fmt.Errorf("%w: refresh requires both halves of the keypair", ErrIssuance)
	}
	return r.core.refresh(key.Public, key.Private, token, algorithm, periodSeconds, ShapeAsymmetric)
}

// Bind fixes the keypair and expiry policy, producing a [TokenValidator]
// for the realm bridge.
func (r *KeypairRepository) Bind(key Keypair, checkExpiry bool) TokenValidator {
	return boundKeypair{repo: r, key: key, checkExpiry: checkExpiry}
}

type boundKeypair struct {
	repo        *KeypairRepository
	key         Keypair
	checkExpiry bool
}

func (b boundKeypair) ValidateToken(token string) (bool, error) {
	return b.repo.Verify(b.key, token, b.checkExpiry)
}

func (b boundKeypair) TokenClaims(token string) (Claims, error) {
	return b.repo.Claims(b.key, token)
}
