package prometheus

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	goToken "github.com/MrEthical07/goToken"
)

type fakeSource struct {
	snapshot goToken.MetricsSnapshot
}

func (f fakeSource) Snapshot() goToken.MetricsSnapshot { return f.snapshot }

func TestRenderEmptyWhenMetricsDisabled(t *testing.T) {
	exp := NewPrometheusExporterFromSource(fakeSource{
		snapshot: goToken.MetricsSnapshot{
			Counters: map[goToken.MetricID]uint64{},
		},
	})

	if got := exp.Render(); got != "" {
		t.Fatalf("expected empty output for disabled metrics, got:\n%s", got)
	}
}

func TestRenderIncludesCounters(t *testing.T) {
	exp := NewPrometheusExporterFromSource(fakeSource{
		snapshot: goToken.MetricsSnapshot{
			Counters: map[goToken.MetricID]uint64{
				goToken.MetricIssueSuccess:   7,
				goToken.MetricVerifyFailure:  2,
				goToken.MetricDecryptFailure: 1,
			},
		},
	})

	out := exp.Render()
	if !strings.Contains(out, "gotoken_issue_success_total 7") {
		t.Fatalf("expected issue_success counter in output, got:\n%s", out)
	}
	if !strings.Contains(out, "gotoken_verify_failure_total 2") {
		t.Fatalf("expected verify_failure counter in output, got:\n%s", out)
	}
	if !strings.Contains(out, "gotoken_decrypt_failure_total 1") {
		t.Fatalf("expected decrypt_failure counter in output, got:\n%s", out)
	}
	if !strings.Contains(out, "# TYPE gotoken_issue_success_total counter") {
		t.Fatalf("expected TYPE line in output, got:\n%s", out)
	}
}

func TestRenderFromLiveMetrics(t *testing.T) {
	metrics := goToken.NewMetrics()
	exp := NewPrometheusExporter(metrics)

	out := exp.Render()
	if !strings.Contains(out, "gotoken_issue_success_total 0") {
		t.Fatalf("expected zeroed counter in output, got:\n%s", out)
	}
}

func TestHandlerWritesPrometheusContentType(t *testing.T) {
	exp := NewPrometheusExporterFromSource(fakeSource{
		snapshot: goToken.MetricsSnapshot{
			Counters: map[goToken.MetricID]uint64{goToken.MetricIssueSuccess: 1},
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	exp.Handler().ServeHTTP(rec, req)

	if got := rec.Header().Get("Content-Type"); !strings.Contains(got, "text/plain") {
		t.Fatalf("expected prometheus content type, got %q", got)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func BenchmarkRender(b *testing.B) {
	exp := NewPrometheusExporterFromSource(fakeSource{
		snapshot: goToken.MetricsSnapshot{
			Counters: map[goToken.MetricID]uint64{
				goToken.MetricIssueSuccess:   1000,
				goToken.MetricIssueFailure:   40,
				goToken.MetricVerifySuccess:  800,
				goToken.MetricVerifyFailure:  10,
				goToken.MetricClaimsSuccess:  800,
				goToken.MetricClaimsFailure:  20,
				goToken.MetricRefreshSuccess: 50,
			},
		},
	})

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = exp.Render()
	}
}
