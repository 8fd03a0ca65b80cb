package upstream

import (
	"strconv"
	"time"

	"github.com/zeromicro/go-zero/core/metric"
)

const namespace = "cryptoassist"

var (
	requestDuration = metric.NewHistogramVec(&metric.HistogramVecOpts{
		Namespace: namespace,
		Subsystem: "upstream",
		Name:      "request_duration_ms",
		Help:      "provider request duration in milliseconds",
		Labels:    []string{"provider", "endpoint"},
		Buckets:   []float64{25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
	})
	requestTotal = metric.NewCounterVec(&metric.CounterVecOpts{
		Namespace: namespace,
		Subsystem: "upstream",
		Name:      "request_total",
		Help:      "provider requests by status code",
		Labels:    []string{"provider", "endpoint", "code"},
	})
)

// observe records one provider round trip. code 0 means the request never
// produced an HTTP response.
func observe(provider, endpoint string, code int, start time.Time) {
	requestDuration.Observe(time.Since(start).Milliseconds(), provider, endpoint)
	label := "error"
	if code > 0 {
		label = strconv.Itoa(code)
	}
	requestTotal.Inc(provider, endpoint, label)
}
