package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	recommendationsGenerated = newCounter("recommendations_generated_total", "Total recommendations generated")
	entitlementLookupFailed  = newCounter("entitlement_lookup_failed_total", "Previews locked after a failed entitlement lookup")
	premiumUnlocks           = newCounter("premium_unlocks_total", "Total premium unlocks granted")
	rateLimited              = newCounterVec("rate_limited_total", "Requests rejected by the rate limiter", "group")

	resolveDuration = newHistogram(
		"recommendation_resolve_duration_ms",
		"Resolver duration in milliseconds",
		[]float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	)
)

// IncRecommendationsGenerated increments the generated counter.
func IncRecommendationsGenerated() { recommendationsGenerated.inc() }

// IncEntitlementLookupFailed counts previews served locked because the
// entitlement lookup failed.
func IncEntitlementLookupFailed() { entitlementLookupFailed.inc() }

// IncPremiumUnlocks increments the unlock counter.
func IncPremiumUnlocks() { premiumUnlocks.inc() }

// IncRateLimited counts a rejected request for a rate limit group.
func IncRateLimited(group string) { rateLimited.inc(group) }

// ObserveResolveDurationMs records a resolver run in milliseconds.
func ObserveResolveDurationMs(value float64) {
	resolveDuration.Observe(max(value, 0))
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders every metric in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	recommendationsGenerated.write(&buf)
	entitlementLookupFailed.write(&buf)
	premiumUnlocks.write(&buf)
	rateLimited.write(&buf)
	resolveDuration.write(&buf)
	return buf.String()
}

type counter struct {
	name, help string
	value      atomic.Uint64
}

func newCounter(name, help string) *counter {
	return &counter{name: name, help: help}
}

func (c *counter) inc() { c.value.Add(1) }

func (c *counter) write(buf *bytes.Buffer) {
	writeHeader(buf, c.name, c.help, "counter")
	fmt.Fprintf(buf, "%s %d\n", c.name, c.value.Load())
}

type counterVec struct {
	name, help, label string

	mu     sync.Mutex
	values map[string]uint64
}

func newCounterVec(name, help, label string) *counterVec {
	return &counterVec{name: name, help: help, label: label, values: make(map[string]uint64)}
}

func (v *counterVec) inc(labelValue string) {
	v.mu.Lock()
	v.values[labelValue]++
	v.mu.Unlock()
}

func (v *counterVec) write(buf *bytes.Buffer) {
	v.mu.Lock()
	keys := make([]string, 0, len(v.values))
	for k := range v.values {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	values := make([]uint64, len(keys))
	for i, k := range keys {
		values[i] = v.values[k]
	}
	v.mu.Unlock()

	writeHeader(buf, v.name, v.help, "counter")
	for i, k := range keys {
		fmt.Fprintf(buf, "%s{%s=%q} %d\n", v.name, v.label, k, values[i])
	}
}

// histogram stores per-bucket counts; write turns them cumulative.
type histogram struct {
	name, help string
	bounds     []float64

	mu     sync.Mutex
	counts []uint64
	sum    float64
	count  uint64
}

func newHistogram(name, help string, bounds []float64) *histogram {
	return &histogram{
		name:   name,
		help:   help,
		bounds: bounds,
		counts: make([]uint64, len(bounds)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.bounds {
		if value <= bound {
			h.counts[i]++
			return
		}
	}
}

func (h *histogram) write(buf *bytes.Buffer) {
	h.mu.Lock()
	counts := slices.Clone(h.counts)
	sum, count := h.sum, h.count
	h.mu.Unlock()

	writeHeader(buf, h.name, h.help, "histogram")
	var cumulative uint64
	for i, bound := range h.bounds {
		cumulative += counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", h.name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", h.name, count)
	fmt.Fprintf(buf, "%s_sum %s\n", h.name, formatFloat(sum))
	fmt.Fprintf(buf, "%s_count %d\n", h.name, count)
}

func writeHeader(buf *bytes.Buffer, name, help, kind string) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s %s\n", name, kind)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
