package goToken

// SecretRepository issues and verifies tokens signed with the HMAC family
// (HS256, HS384, HS512) over a caller-supplied shared secret. Construct it
// through [Builder.SecretRepository]; instances are immutable and safe for
// concurrent use.
type SecretRepository struct {
	core repositoryCore
}

// Issue describes the issue operation and its observable behavior.
//
// Issue may return an error when input validation, dependency calls, or security checks fail.
// Issue does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (r *SecretRepository) Issue(secret []byte, claims Claims, algorithm string) (string, error) {
	return r.core.issue(secret, claims, algorithm, ShapeShared)
}

// Verify describes the verify operation and its observable behavior.
//
// Verify may return an error when input validation, dependency calls, or security checks fail.
// Verify does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (r *SecretRepository) Verify(secret []byte, token string, checkExpiry bool) (bool, error) {
	return r.core.verify(secret, token, ShapeShared, checkExpiry)
}

// Claims returns the claim set of a signature-valid token. Expiry is never
// checked here; use Verify with checkExpiry for time-window enforcement.
func (r *SecretRepository) Claims(secret []byte, token string) (Claims, error) {
	return r.core.extract(secret, token, ShapeShared)
}

// Refresh re-issues the claims of a signature-valid token with a fresh
// validity window and token ID. The input may already be expired.
func (r *SecretRepository) Refresh(secret []byte, token string, algorithm string, periodSeconds int64) (string, error) {
	return r.core.refresh(secret, secret, token, algorithm, periodSeconds, ShapeShared)
}

// Bind fixes the secret and expiry policy, producing a [TokenValidator] for
// the realm bridge.
func (r *SecretRepository) Bind(secret []byte, checkExpiry bool) TokenValidator {
	return boundSecret{repo: r, secret: secret, checkExpiry: checkExpiry}
}

type boundSecret struct {
	repo        *SecretRepository
	secret      []byte
	checkExpiry bool
}

func (b boundSecret) ValidateToken(token string) (bool, error) {
	return b.repo.Verify(b.secret, token, b.checkExpiry)
}

func (b boundSecret) TokenClaims(token string) (Claims, error) {
	return b.repo.Claims(b.secret, token)
}
