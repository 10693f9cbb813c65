package goToken

import (
	"errors"
	"fmt"

	"github.com/jonboulle/clockwork"
)

// Builder defines a public type used by goToken APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config  RepositoryConfig
	clock   clockwork.Clock
	metrics *Metrics

	built bool
}

// New describes the new operation and its observable behavior.
//
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New() *Builder {
	return &Builder{
		config: defaultRepositoryConfig(),
	}
}

// WithConfig describes the withconfig operation and its observable behavior.
//
// WithConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithConfig(cfg RepositoryConfig) *Builder {
	b.config = cfg
	return b
}

// WithClock describes the withclock operation and its observable behavior.
//
// WithClock does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithClock(clock clockwork.Clock) *Builder {
	b.clock = clock
	return b
}

// WithClockSkew describes the withclockskew operation and its observable behavior.
//
// WithClockSkew does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithClockSkew(seconds int64) *Builder {
	b.config.AllowedClockSkewSeconds = seconds
	return b
}

// WithCompression describes the withcompression operation and its observable behavior.
//
// WithCompression does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithCompression(strategy CompressionStrategy) *Builder {
	b.config.Compression = strategy
	return b
}

// WithCodecResolver describes the withcodecresolver operation and its observable behavior.
//
// WithCodecResolver does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithCodecResolver(resolver CodecResolver) *Builder {
	b.config.Resolver = resolver
	return b
}

// WithMetrics describes the withmetrics operation and its observable behavior.
//
// WithMetrics does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithMetrics(metrics *Metrics) *Builder {
	b.metrics = metrics
	return b
}

func (b *Builder) buildCore() (repositoryCore, error) {
	if b.built {
		return repositoryCore{}, errors.New("builder already used")
	}
	if err := b.config.validate(); err != nil {
		return repositoryCore{}, fmt.Errorf("invalid repository configuration: %w", err)
	}
	b.built = true

	clock := b.clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return repositoryCore{
		config:  b.config,
		clock:   clock,
		metrics: b.metrics,
	}, nil
}

// SecretRepository describes the secretrepository operation and its observable behavior.
//
// SecretRepository may return an error when input validation, dependency calls, or security checks fail.
// SecretRepository does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) SecretRepository() (*SecretRepository, error) {
	core, err := b.buildCore()
	if err != nil {
		return nil, err
	}
	return &SecretRepository{core: core}, nil
}

// KeypairRepository describes the keypairrepository operation and its observable behavior.
//
// KeypairRepository may return an error when input validation, dependency calls, or security checks fail.
// KeypairRepository does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) KeypairRepository() (*KeypairRepository, error) {
	core, err := b.buildCore()
	if err != nil {
		return nil, err
	}
	return &KeypairRepository{core: core}, nil
}

// NestedRepository describes the nestedrepository operation and its observable behavior.
//
// NestedRepository may return an error when input validation, dependency calls, or security checks fail.
// NestedRepository does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) NestedRepository() (*NestedRepository, error) {
	core, err := b.buildCore()
	if err != nil {
		return nil, err
	}
	return &NestedRepository{core: core}, nil
}
