// Package slo tracks the API's service level objectives. The SLO gauges are
// derived from the HTTP request metrics already collected by the process.
package slo

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// SLO targets.
const (
	// AvailabilitySLO is the target share of non-5xx responses, in percent.
	AvailabilitySLO = 99.9

	// LatencyP95SLO is the p95 latency target in seconds.
	LatencyP95SLO = 0.200

	// LatencyP99SLO is the p99 latency target in seconds.
	LatencyP99SLO = 0.500

	// ErrorRateSLO is the maximum 5xx ratio.
	ErrorRateSLO = 0.001
)

// Source metric names.
const (
	requestsMetric = "http_requests_total"
	durationMetric = "http_request_duration_seconds"
)

var (
	SLOAvailability = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "slo_availability_ratio",
		Help: "Availability ratio (0-1) since process start, target: 0.999",
	})
	SLOLatencyP95 = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "slo_latency_p95_seconds",
		Help: "Estimated p95 request latency in seconds, target: 0.200",
	})
	SLOLatencyP99 = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "slo_latency_p99_seconds",
		Help: "Estimated p99 request latency in seconds, target: 0.500",
	})
	SLOErrorRate = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "slo_error_rate_ratio",
		Help: "5xx ratio (0-1) since process start, target: 0.001",
	})
)

// Snapshot is one evaluation of the SLO indicators.
type Snapshot struct {
	Requests     float64
	ServerErrors float64
	Availability float64
	ErrorRate    float64
	LatencyP95   float64
	LatencyP99   float64
}

// Met reports whether every indicator is within target.
func (s Snapshot) Met() bool {
	return s.Availability*100 >= AvailabilitySLO &&
		s.ErrorRate <= ErrorRateSLO &&
		s.LatencyP95 <= LatencyP95SLO &&
		s.LatencyP99 <= LatencyP99SLO
}

// Refresh gathers the current metrics, recomputes the snapshot and publishes it.
func Refresh(g prometheus.Gatherer) (Snapshot, error) {
	families, err := g.Gather()
	if err != nil {
		return Snapshot{}, fmt.Errorf("gather metrics: %w", err)
	}
	snap := Compute(families)
	Publish(snap)
	return snap, nil
}

// Publish sets the SLO gauges from snap.
func Publish(snap Snapshot) {
	SLOAvailability.Set(snap.Availability)
	SLOErrorRate.Set(snap.ErrorRate)
	SLOLatencyP95.Set(snap.LatencyP95)
	SLOLatencyP99.Set(snap.LatencyP99)
}

// Compute derives a snapshot from gathered metric families.
// With no traffic the service counts as fully available.
func Compute(families []*dto.MetricFamily) Snapshot {
	snap := Snapshot{Availability: 1}
	var buckets []*dto.Bucket
	var observed uint64

	for _, mf := range families {
		switch mf.GetName() {
		case requestsMetric:
			for _, m := range mf.GetMetric() {
				v := m.GetCounter().GetValue()
				snap.Requests += v
				if strings.HasPrefix(label(m, "status"), "5") {
					snap.ServerErrors += v
				}
			}
		case durationMetric:
			for _, m := range mf.GetMetric() {
				h := m.GetHistogram()
				observed += h.GetSampleCount()
				buckets = append(buckets, h.GetBucket()...)
			}
		}
	}

	if snap.Requests > 0 {
		snap.ErrorRate = snap.ServerErrors / snap.Requests
		snap.Availability = 1 - snap.ErrorRate
	}
	merged := mergeBuckets(buckets)
	snap.LatencyP95 = quantile(0.95, merged, observed)
	snap.LatencyP99 = quantile(0.99, merged, observed)
	return snap
}

func label(m *dto.Metric, name string) string {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}

type bucket struct {
	upper float64
	count uint64
}

// mergeBuckets sums cumulative counts of identical upper bounds across series.
func mergeBuckets(in []*dto.Bucket) []bucket {
	sums := make(map[float64]uint64)
	for _, b := range in {
		sums[b.GetUpperBound()] += b.GetCumulativeCount()
	}
	out := make([]bucket, 0, len(sums))
	for upper, count := range sums {
		out = append(out, bucket{upper: upper, count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].upper < out[j].upper })
	return out
}

// quantile interpolates linearly inside the bucket holding rank q*total,
// like PromQL histogram_quantile. Observations above the last finite bound
// report that bound.
func quantile(q float64, buckets []bucket, total uint64) float64 {
	if total == 0 || len(buckets) == 0 {
		return 0
	}
	rank := q * float64(total)
	lower, prevCount := 0.0, uint64(0)
	for _, b := range buckets {
		if math.IsInf(b.upper, 1) {
			break
		}
		if float64(b.count) >= rank {
			inBucket := float64(b.count - prevCount)
			if inBucket == 0 {
				return b.upper
			}
			return lower + (b.upper-lower)*(rank-float64(prevCount))/inBucket
		}
		lower, prevCount = b.upper, b.count
	}
	return lower
}
