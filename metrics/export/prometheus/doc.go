// Package prometheus renders goToken metrics for Prometheus scraping.
//
// [NewPrometheusExporter] accepts a [goToken.Metrics] and exposes an
// [http.Handler] that renders all goToken counters in Prometheus text
// exposition format. Counter names are prefixed gotoken_*_total.
//
// # What this package must NOT do
//
//   - Register metrics in a global Prometheus registry; callers mount the Handler.
//   - Mutate repository state.
package prometheus
