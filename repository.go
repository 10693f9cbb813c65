package goToken

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"

	"github.com/MrEthical07/goToken/internal/jose"
)

// Repository is the uniform issue / verify / extract-claims contract shared
// by the single-layer repositories, polymorphic over the key material K.
//
// Verify and Claims perform signature verification identically: claim
// extraction is never permitted on a token whose signature has not been
// checked, even though the contract separates the two for caller convenience.
type Repository[K any] interface {
	Issue(key K, claims Claims, algorithm string) (string, error)
	Verify(key K, token string, checkExpiry bool) (bool, error)
	Claims(key K, token string) (Claims, error)
	Refresh(key K, token string, algorithm string, periodSeconds int64) (string, error)
}

var (
	_ Repository[[]byte]  = (*SecretRepository)(nil)
	_ Repository[Keypair] = (*KeypairRepository)(nil)
)

// repositoryCore carries the configuration shared by every repository
// variant and implements the compact sign/verify pipeline. All fields are
// set once at build time and never mutated afterwards.
type repositoryCore struct {
	config  RepositoryConfig
	clock   clockwork.Clock
	metrics *Metrics
}

func (c *repositoryCore) count(id MetricID) {
	c.metrics.record(id)
}

// issue serializes, optionally compresses, and signs a claim set. The
// algorithm/key-shape check runs before any cryptographic work.
func (c *repositoryCore) issue(signKey any, claims Claims, algorithm string, shape KeyShape) (string, error) {
	alg, err := ResolveAlgorithm(algorithm)
	if err != nil {
		c.count(MetricIssueFailure)
		return "", err
	}
	if err := alg.requireShape(shape); err != nil {
		c.count(MetricIssueFailure)
		return "", err
	}
	if err := claims.validate(); err != nil {
		c.count(MetricIssueFailure)
		return "", fmt.Errorf("%w: %v", ErrIssuance, err)
	}

	payload, err := json.Marshal(claims)
	if err != nil {
		c.count(MetricIssueFailure)
		return "", fmt.Errorf("%w: serialize claims: %v", ErrIssuance, err)
	}

	header := jose.Header{Algorithm: alg.Name, Type: "JWT"}
	codec, err := codecFor(c.config.Compression)
	if err != nil {
		c.count(MetricIssueFailure)
		return "", fmt.Errorf("%w: %v", ErrIssuance, err)
	}
	if codec != nil {
		compressed, err := codec.Compress(payload)
		if err != nil {
			c.count(MetricIssueFailure)
			return "", fmt.Errorf("%w: compress payload: %v", ErrIssuance, err)
		}
		payload = compressed
		header.Compression = codec.Name()
	}

	token, err := jose.Serialize(header, payload, alg.method, signKey)
	if err != nil {
		c.count(MetricIssueFailure)
		return "", fmt.Errorf("%w: %v", ErrIssuance, err)
	}
	c.count(MetricIssueSuccess)
	return token, nil
}

// parse decodes a compact token up to, but not including, signature
// verification. Claims leaving the repository always pass through verify or
// extract first.
func (c *repositoryCore) parse(token string, shape KeyShape) (*jose.Parsed, Algorithm, Claims, error) {
	parsed, err := jose.Parse(token)
	if err != nil {
		return nil, Algorithm{}, Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	alg, err := ResolveAlgorithm(parsed.Header.Algorithm)
	if err != nil {
		return nil, Algorithm{}, Claims{}, err
	}
	if err := alg.requireShape(shape); err != nil {
		return nil, Algorithm{}, Claims{}, err
	}

	payload := parsed.Payload
	if zip := parsed.Header.Compression; zip != "" {
		codec, err := c.config.resolver().Resolve(zip)
		if err != nil {
			return nil, Algorithm{}, Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
		}
		payload, err = codec.Decompress(payload)
		if err != nil {
			return nil, Algorithm{}, Claims{}, fmt.Errorf("%w: decompress payload: %v", ErrInvalidToken, err)
		}
	}

	var claims Claims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, Algorithm{}, Claims{}, fmt.Errorf("%w: parse claims: %v", ErrInvalidToken, err)
	}
	return parsed, alg, claims, nil
}

// verify checks the signature and, when requested, the time window. The
// window check and the cryptographic check share one caller-visible error
// kind: no oracle distinguishes which one failed.
func (c *repositoryCore) verify(verifyKey any, token string, shape KeyShape, checkExpiry bool) (bool, error) {
	parsed, alg, claims, err := c.parse(token, shape)
	if err != nil {
		c.count(MetricVerifyFailure)
		return false, err
	}

	method := alg.method
	if checkExpiry {
		method = NewExpiryCheckedVerifier(alg.method, claims, c.clock, c.config.skew())
	}
	if err := method.Verify(parsed.SigningInput, parsed.Signature, verifyKey); err != nil {
		c.count(MetricVerifyFailure)
		return false, fmt.Errorf("%w: %v", ErrAuthentication, err)
	}
	c.count(MetricVerifySuccess)
	return true, nil
}

// extract returns the claim set of a token whose signature verifies. Expiry
// is deliberately not checked here.
func (c *repositoryCore) extract(verifyKey any, token string, shape KeyShape) (Claims, error) {
	parsed, alg, claims, err := c.parse(token, shape)
	if err != nil {
		c.count(MetricClaimsFailure)
		return Claims{}, err
	}
	if err := alg.method.Verify(parsed.SigningInput, parsed.Signature, verifyKey); err != nil {
		c.count(MetricClaimsFailure)
		return Claims{}, fmt.Errorf("%w: %v", ErrAuthentication, err)
	}
	c.count(MetricClaimsSuccess)
	return claims, nil
}

// refresh re-issues the claim set of a signature-valid token with a fresh
// issuedAt, a fresh validity window, and a newly generated token ID. The
// input token may already be expired; callers gate refresh eligibility.
func (c *repositoryCore) refresh(verifyKey, signKey any, token, algorithm string, periodSeconds int64, shape KeyShape) (string, error) {
	claims, err := c.extract(verifyKey, token, shape)
	if err != nil {
		c.count(MetricRefreshFailure)
		return "", err
	}

	now := c.clock.Now()
	claims.IssuedAt = now
	claims.NotBefore = nil
	claims.Expiration = nil
	if periodSeconds >= 0 {
		notBefore := now
		expiration := now.Add(time.Duration(periodSeconds) * time.Second)
		claims.NotBefore = &notBefore
		claims.Expiration = &expiration
	}
	id, err := UUIDGenerator{}.GenerateID()
	if err != nil {
		c.count(MetricRefreshFailure)
		return "", fmt.Errorf("%w: generate token id: %v", ErrIssuance, err)
	}
	claims.TokenID = id

	refreshed, err := c.issue(signKey, claims, algorithm, shape)
	if err != nil {
		c.count(MetricRefreshFailure)
		return "", err
	}
	c.count(MetricRefreshSuccess)
	return refreshed, nil
}

// ensure the decorator stays substitutable for raw methods.
var _ jwt.SigningMethod = (*ExpiryCheckedVerifier)(nil)
