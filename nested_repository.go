package goToken

import (
	"fmt"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwe"
)

// Direct symmetric encryption with 128-bit AES-GCM, the fixed
// content-encryption scheme of the envelope.
const nestedEncryptionKeySize = 16

// NestedRepository composes an asymmetric signature with a JWE envelope.
// Issue signs the claim set with the signing keypair, then encrypts the
// signed compact token as the payload of a five-segment JWE compact
// serialization (dir + A128GCM) under the encryption key.
//
// Verification runs the inverse in a fixed order: decrypt first, then verify
// the inner signature. A token that fails to decrypt never reaches signature
// checking, and a successful decryption is never accepted without it.
// Construct through [Builder.NestedRepository]; instances are immutable and
// safe for concurrent use.
type NestedRepository struct {
	core repositoryCore
}

// Issue describes the issue operation and its observable behavior.
//
// Issue may return an error when input validation, dependency calls, or security checks fail.
// Issue does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (r *NestedRepository) Issue(signing Keypair, encryptionKey []byte, claims Claims, algorithm string) (string, error) {
	if signing.Private == nil {
		r.core.count(MetricIssueFailure)
		return "", fmt.Errorf("%w: issuing requires a signing private key", ErrIssuance)
	}
	if len(encryptionKey) != nestedEncryptionKeySize {
		r.core.count(MetricIssueFailure)
		return "", fmt.Errorf("%w: %w: direct A128GCM encryption requires a %d-byte key, got %d",
			ErrIssuance, ErrKeyLength, nestedEncryptionKeySize, len(encryptionKey))
	}

	inner, err := r.core.issue(signing.Private, claims, algorithm, ShapeAsymmetric)
	if err != nil {
		return "", err
	}

	outer, err := jwe.Encrypt([]byte(inner),
		jwe.WithKey(jwa.DIRECT, encryptionKey),
		jwe.WithContentEncryption(jwa.A128GCM),
	)
	if err != nil {
		r.core.count(MetricIssueFailure)
		return "", fmt.Errorf("%w: encrypt token: %v", ErrIssuance, err)
	}
	return string(outer), nil
}

// Verify describes the verify operation and its observable behavior.
//
// Verify may return an error when input validation, dependency calls, or security checks fail.
// Verify does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (r *NestedRepository) Verify(signing Keypair, encryptionKey []byte, token string, checkExpiry bool) (bool, error) {
	if signing.Public == nil {
		r.core.count(MetricVerifyFailure)
		return false, fmt.Errorf("%w: verification requires a signing public key", ErrAuthentication)
	}
	inner, err := r.decrypt(encryptionKey, token)
	if err != nil {
		r.core.count(MetricVerifyFailure)
		return false, err
	}
	return r.core.verify(signing.Public, inner, ShapeAsymmetric, checkExpiry)
}

// Claims returns the claim set of a token that decrypts and whose inner
// signature verifies. Expiry is never checked here.
func (r *NestedRepository) Claims(signing Keypair, encryptionKey []byte, token string) (Claims, error) {
	if signing.Public == nil {
		r.core.count(MetricClaimsFailure)
		return Claims{}, fmt.Errorf("%w: verification requires a signing public key", ErrAuthentication)
	}
	inner, err := r.decrypt(encryptionKey, token)
	if err != nil {
		r.core.count(MetricClaimsFailure)
		return Claims{}, err
	}
	return r.core.extract(signing.Public, inner, ShapeAsymmetric)
}

// decrypt recovers the inner signed token. Structural problems with the
// envelope surface as ErrInvalidToken; a failed decryption or
// authentication-tag check surfaces as ErrAuthentication.
func (r *NestedRepository) decrypt(encryptionKey []byte, token string) (string, error) {
	if _, err := jwe.Parse([]byte(token)); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	inner, err := jwe.Decrypt([]byte(token), jwe.WithKey(jwa.DIRECT, encryptionKey))
	if err != nil {
		r.core.count(MetricDecryptFailure)
		return "", fmt.Errorf("%w: %v", ErrAuthentication, err)
	}
	return string(inner), nil
}

// Bind fixes both keys and the expiry policy, producing a [TokenValidator]
// for the realm bridge.
func (r *NestedRepository) Bind(signing Keypair, encryptionKey []byte, checkExpiry bool) TokenValidator {
	return boundNested{repo: r, signing: signing, encryptionKey: encryptionKey, checkExpiry: checkExpiry}
}

type boundNested struct {
	repo          *NestedRepository
	signing       Keypair
	encryptionKey []byte
	checkExpiry   bool
}

func (b boundNested) ValidateToken(token string) (bool, error) {
	return b.repo.Verify(b.signing, b.encryptionKey, token, b.checkExpiry)
}

func (b boundNested) TokenClaims(token string) (Claims, error) {
	return b.repo.Claims(b.signing, b.encryptionKey, token)
}
