package goToken

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"
)

// Raw signature primitives (notably the asymmetric ones) assert cryptographic
// validity only. The window failure deliberately reuses one error for both
// bounds so callers cannot tell "expired" from "not yet valid".
var errOutsideValidityWindow = errors.New("token outside validity window")

// ExpiryCheckedVerifier decorates a raw signing method so that verification
// succeeds only when the cryptographic check and the claim time window both
// pass. It implements [jwt.SigningMethod] and is substitutable anywhere the
// raw method is accepted; Alg and Sign delegate unchanged.
//
// An absent notBefore or expiration bound is unconstrained: the corresponding
// comparison is skipped, never treated as automatic success or failure.
type ExpiryCheckedVerifier struct {
	raw    jwt.SigningMethod
	claims Claims
	clock  clockwork.Clock
	skew   time.Duration
}

// NewExpiryCheckedVerifier describes the newexpirycheckedverifier operation and its observable behavior.
//
// NewExpiryCheckedVerifier does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewExpiryCheckedVerifier(raw jwt.SigningMethod, claims Claims, clock clockwork.Clock, skew time.Duration) *ExpiryCheckedVerifier {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if skew < 0 {
		skew = 0
	}
	return &ExpiryCheckedVerifier{raw: raw, claims: claims, clock: clock, skew: skew}
}

// Alg describes the alg operation and its observable behavior.
func (v *ExpiryCheckedVerifier) Alg() string {
	return v.raw.Alg()
}

// Sign describes the sign operation and its observable behavior.
func (v *ExpiryCheckedVerifier) Sign(signingInput string, key any) ([]byte, error) {
	return v.raw.Sign(signingInput, key)
}

// Verify runs the raw cryptographic check first, then requires
// notBefore-skew <= now < expiration+skew against a single clock sample.
func (v *ExpiryCheckedVerifier) Verify(signingInput string, signature []byte, key any) error {
	if err := v.raw.Verify(signingInput, signature, key); err != nil {
		return err
	}
	now := v.clock.Now()
	if nbf := v.claims.NotBefore; nbf != nil && now.Before(nbf.Add(-v.skew)) {
		return errOutsideValidityWindow
	}
	if exp := v.claims.Expiration; exp != nil && !now.Before(exp.Add(v.skew)) {
		return errOutsideValidityWindow
	}
	return nil
}
