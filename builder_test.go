package goToken

import (
	"testing"

	"github.com/jonboulle/clockwork"
)

func TestBuilderSingleUse(t *testing.T) {
	b := New()
	if _, err := b.SecretRepository(); err != nil {
		t.Fatalf("first build: %v", err)
	}
	if _, err := b.SecretRepository(); err == nil {
		t.Fatal("expected second build from the same builder to fail")
	}
	if _, err := b.KeypairRepository(); err == nil {
		t.Fatal("expected keypair build from a used builder to fail")
	}
}

func TestBuilderRejectsUnknownCompression(t *testing.T) {
	if _, err := New().WithCompression(CompressionStrategy(42)).SecretRepository(); err == nil {
		t.Fatal("expected unknown compression strategy to be rejected")
	}
}

func TestBuilderDefaults(t *testing.T) {
	repo, err := New().SecretRepository()
	if err != nil {
		t.Fatalf("build with defaults: %v", err)
	}
	if repo.core.config.Compression != CompressionDeflate {
		t.Fatalf("default compression = %v, want deflate", repo.core.config.Compression)
	}
	if repo.core.clock == nil {
		t.Fatal("expected a real clock to be installed by default")
	}
	if repo.core.config.skew() != 0 {
		t.Fatalf("default skew = %v, want 0", repo.core.config.skew())
	}
}

func TestBuilderWithConfig(t *testing.T) {
	cfg := RepositoryConfig{
		AllowedClockSkewSeconds: 15,
		Compression:             CompressionGzip,
	}
	repo, err := New().WithConfig(cfg).WithClock(clockwork.NewFakeClockAt(testNow)).SecretRepository()
	if err != nil {
		t.Fatalf("build with config: %v", err)
	}
	if repo.core.config.Compression != CompressionGzip {
		t.Fatalf("compression = %v, want gzip", repo.core.config.Compression)
	}
	if repo.core.config.AllowedClockSkewSeconds != 15 {
		t.Fatalf("skew seconds = %d, want 15", repo.core.config.AllowedClockSkewSeconds)
	}
}

func TestNegativeSkewDisablesTolerance(t *testing.T) {
	cfg := RepositoryConfig{AllowedClockSkewSeconds: -10, Compression: CompressionNone}
	if cfg.skew() != 0 {
		t.Fatalf("negative skew = %v, want 0", cfg.skew())
	}
}
