// Command gotoken-loadtest measures issue and verify throughput of the
// secret repository under concurrency.
//
// Run:
//
//	go run ./cmd/gotoken-loadtest -concurrency 256 -ops 200000
package main

import (
	"crypto/rand"
	"flag"
	"fmt"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	goToken "github.com/MrEthical07/goToken"
)

func main() {
	var (
		concurrency = flag.Int("concurrency", 256, "number of concurrent workers")
		ops         = flag.Int("ops", 200000, "operations per phase (issue + verify)")
		algorithm   = flag.String("alg", "HS256", "signing algorithm (HS256, HS384, HS512)")
		compression = flag.String("zip", "deflate", "payload compression (deflate, none, gzip)")
	)
	flag.Parse()

	if *concurrency <= 0 || *ops <= 0 {
		fmt.Fprintln(os.Stderr, "concurrency and ops must be > 0")
		os.Exit(2)
	}

	var strategy goToken.CompressionStrategy
	switch *compression {
	case "deflate":
		strategy = goToken.CompressionDeflate
	case "none":
		strategy = goToken.CompressionNone
	case "gzip":
		strategy = goToken.CompressionGzip
	default:
		fmt.Fprintf(os.Stderr, "unknown compression %q\n", *compression)
		os.Exit(2)
	}

	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		fmt.Fprintf(os.Stderr, "generate secret: %v\n", err)
		os.Exit(1)
	}

	metrics := goToken.NewMetrics()
	repo, err := goToken.New().
		WithCompression(strategy).
		WithMetrics(metrics).
		SecretRepository()
	if err != nil {
		fmt.Fprintf(os.Stderr, "build repository: %v\n", err)
		os.Exit(1)
	}

	builder := goToken.NewClaimsBuilder(goToken.WithIDGenerator(goToken.UUIDGenerator{}))

	fmt.Printf("issuing %d tokens with %s (%s)...\n", *ops, *algorithm, *compression)
	tokens := make([]string, *ops)
	issueLatencies := runPhase(*concurrency, *ops, func(i int) error {
		claims, err := builder.Build(goToken.ClaimsInput{
			Subject:       fmt.Sprintf("user-%d", i),
			Issuer:        "loadtest",
			Roles:         "user",
			Permissions:   "read,write",
			PeriodSeconds: 3600,
		})
		if err != nil {
			return err
		}
		token, err := repo.Issue(secret, claims, *algorithm)
		if err != nil {
			return err
		}
		tokens[i] = token
		return nil
	})
	report("issue", issueLatencies)

	fmt.Printf("verifying %d tokens...\n", *ops)
	verifyLatencies := runPhase(*concurrency, *ops, func(i int) error {
		ok, err := repo.Verify(secret, tokens[i], true)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("token %d did not verify", i)
		}
		return nil
	})
	report("verify", verifyLatencies)

	snapshot := metrics.Snapshot()
	fmt.Printf("counters: issue ok=%d fail=%d, verify ok=%d fail=%d\n",
		snapshot.Counters[goToken.MetricIssueSuccess],
		snapshot.Counters[goToken.MetricIssueFailure],
		snapshot.Counters[goToken.MetricVerifySuccess],
		snapshot.Counters[goToken.MetricVerifyFailure],
	)
}

func runPhase(concurrency, ops int, op func(i int) error) []time.Duration {
	latencies := make([]time.Duration, ops)
	var next atomic.Int64
	var failures atomic.Int64

	var wg sync.WaitGroup
	start := time.Now()
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				i := int(next.Add(1)) - 1
				if i >= ops {
					return
				}
				opStart := time.Now()
				if err := op(i); err != nil {
					failures.Add(1)
				}
				latencies[i] = time.Since(opStart)
			}
		}()
	}
	wg.Wait()
	elapsed := time.Since(start)

	fmt.Printf("  %d ops in %v (%.0f ops/sec), %d failures\n",
		ops, elapsed.Round(time.Millisecond), float64(ops)/elapsed.Seconds(), failures.Load())
	return latencies
}

func report(phase string, latencies []time.Duration) {
	sorted := make([]time.Duration, len(latencies))
	copy(sorted, latencies)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	pct := func(p float64) time.Duration {
		idx := int(p * float64(len(sorted)-1))
		return sorted[idx]
	}
	fmt.Printf("  %s latency: p50=%v p95=%v p99=%v max=%v\n",
		phase, pct(0.50), pct(0.95), pct(0.99), sorted[len(sorted)-1])
}
