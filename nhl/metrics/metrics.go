// Package metrics records NHL API request outcomes as Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/s0up4200/nhlapi/nhl"
)

const namespace = "nhlapi"

// Collector implements nhl.Observer.
type Collector struct {
	requests *prometheus.CounterVec
	statuses *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

var _ nhl.Observer = (*Collector)(nil)

// NewCollector creates a Collector and registers it with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "NHL API requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		statuses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "responses_total",
			Help:      "NHL API responses by endpoint and HTTP status code.",
		}, []string{"endpoint", "status_code"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "NHL API request latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
	}

	reg.MustRegister(c.requests, c.statuses, c.latency)

	return c
}

// ObserveRequest implements nhl.Observer. A zero status code means no
// response was received and is not counted as a response.
func (c *Collector) ObserveRequest(endpoint nhl.Endpoint, outcome nhl.Outcome, statusCode int, elapsed time.Duration) {
	label := endpoint.String()
	c.requests.WithLabelValues(label, string(outcome)).Inc()
	if statusCode != 0 {
		c.statuses.WithLabelValues(label, strconv.Itoa(statusCode)).Inc()
	}
	c.latency.WithLabelValues(label).Observe(elapsed.Seconds())
}

// Handler returns an HTTP handler that serves the gathered metrics.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Summary is the per-outcome request count of one endpoint.
type Summary struct {
	Endpoint string
	Outcome  string
	Count    int
}

// Summarize reads the request counter back from gatherer.
func Summarize(gatherer prometheus.Gatherer) ([]Summary, error) {
	families, err := gatherer.Gather()
	if err != nil {
		return nil, err
	}

	var out []Summary
	for _, mf := range families {
		if mf.GetName() != namespace+"_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			s := Summary{Count: int(m.GetCounter().GetValue())}
			for _, lp := range m.GetLabel() {
				switch lp.GetName() {
				case "endpoint":
					s.Endpoint = lp.GetValue()
				case "outcome":
					s.Outcome = lp.GetValue()
				}
			}
			out = append(out, s)
		}
	}
	return out, nil
}
