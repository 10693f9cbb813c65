package goToken

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// ClaimsInput defines a public type used by goToken APIs.
//
// ClaimsInput instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type ClaimsInput struct {
	ID          string
	Subject     string
	Issuer      string
	Audience    []string
	Roles       string
	Permissions string

	// PeriodSeconds controls the validity window. A non-negative value sets
	// notBefore to now and expiration to now+period. A negative value leaves
	// both bounds unset: the token never expires by time policy and
	// verification reduces to signature-only validity.
	PeriodSeconds int64

	Extra map[string]any
}

// IDGenerator supplies token IDs when the caller leaves ClaimsInput.ID blank.
type IDGenerator interface {
	GenerateID() (string, error)
}

// UUIDGenerator is an [IDGenerator] producing random UUID token IDs.
type UUIDGenerator struct{}

// GenerateID describes the generateid operation and its observable behavior.
func (UUIDGenerator) GenerateID() (string, error) {
	return uuid.NewString(), nil
}

// ClaimsBuilder assembles a [Claims] value from caller-supplied fields plus
// computed timestamps. The clock is sampled exactly once per Build call, so a
// single claim set observes a single consistent "now". Safe for concurrent
// use with disjoint inputs.
type ClaimsBuilder struct {
	clock clockwork.Clock
	idGen IDGenerator
}

// ClaimsBuilderOption defines a public type used by goToken APIs.
type ClaimsBuilderOption func(*ClaimsBuilder)

// WithBuilderClock overrides the clock used to stamp issuedAt and the
// validity window. Intended for tests.
func WithBuilderClock(clock clockwork.Clock) ClaimsBuilderOption {
	return func(b *ClaimsBuilder) {
		b.clock = clock
	}
}

// WithIDGenerator fills TokenID from the given generator whenever the caller
// leaves ClaimsInput.ID blank. Without it a blank ID is omitted entirely.
func WithIDGenerator(gen IDGenerator) ClaimsBuilderOption {
	return func(b *ClaimsBuilder) {
		b.idGen = gen
	}
}

// NewClaimsBuilder describes the newclaimsbuilder operation and its observable behavior.
//
// NewClaimsBuilder does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewClaimsBuilder(opts ...ClaimsBuilderOption) *ClaimsBuilder {
	b := &ClaimsBuilder{
		clock: clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build describes the build operation and its observable behavior.
//
// Build may return an error when input validation, dependency calls, or security checks fail.
// Build does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *ClaimsBuilder) Build(input ClaimsInput) (Claims, error) {
	if strings.TrimSpace(input.Subject) == "" {
		return Claims{}, fmt.Errorf("%w: subject is required", ErrIssuance)
	}

	now := b.clock.Now()
	claims := Claims{
		Subject:     input.Subject,
		IssuedAt:    now,
		Roles:       input.Roles,
		Permissions: input.Permissions,
	}

	id := strings.TrimSpace(input.ID)
	if id == "" && b.idGen != nil {
		generated, err := b.idGen.GenerateID()
		if err != nil {
			return Claims{}, fmt.Errorf("%w: generate token id: %v", ErrIssuance, err)
		}
		id = generated
	}
	claims.TokenID = id

	if issuer := strings.TrimSpace(input.Issuer); issuer != "" {
		claims.Issuer = issuer
	}
	for _, audience := range input.Audience {
		if strings.TrimSpace(audience) == "" {
			continue
		}
		claims.Audience = append(claims.Audience, audience)
	}

	if input.PeriodSeconds >= 0 {
		notBefore := now
		expiration := now.Add(time.Duration(input.PeriodSeconds) * time.Second)
		claims.NotBefore = &notBefore
		claims.Expiration = &expiration
	}

	if len(input.Extra) > 0 {
		claims.Extra = make(map[string]any, len(input.Extra))
		for k, v := range input.Extra {
			claims.Extra[k] = v
		}
	}

	return claims, nil
}
