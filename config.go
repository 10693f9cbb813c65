package goToken

import (
	"fmt"
	"time"
)

// RepositoryConfig defines a public type used by goToken APIs.
//
// RepositoryConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type RepositoryConfig struct {
	// AllowedClockSkewSeconds widens both time-window comparisons
	// symmetrically. Values <= 0 disable skew tolerance.
	AllowedClockSkewSeconds int64

	// Compression is the payload transform applied when issuing.
	// Defaults to [CompressionDeflate].
	Compression CompressionStrategy

	// Resolver maps the zip header of incoming tokens to a codec. When nil,
	// the built-in resolver (DEF, GZIP) is used.
	Resolver CodecResolver
}

func defaultRepositoryConfig() RepositoryConfig {
	return RepositoryConfig{
		Compression: CompressionDeflate,
	}
}

func (c RepositoryConfig) validate() error {
	if c.Compression >= compressionStrategyCount {
		return fmt.Errorf("unknown compression strategy %d", c.Compression)
	}
	return nil
}

func (c RepositoryConfig) skew() time.Duration {
	if c.AllowedClockSkewSeconds <= 0 {
		return 0
	}
	return time.Duration(c.AllowedClockSkewSeconds) * time.Second
}

func (c RepositoryConfig) resolver() CodecResolver {
	if c.Resolver != nil {
		return c.Resolver
	}
	return builtinResolver{}
}
