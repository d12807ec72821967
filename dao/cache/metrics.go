package cache

import "github.com/prometheus/client_golang/prometheus"

const (
	outcomeHit    = "hit"
	outcomeMiss   = "miss"
	outcomeBypass = "bypass"
	outcomeError  = "error"
)

var requestsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "forum_cache_requests_total",
		Help: "Read-through cache lookups by outcome",
	},
	[]string{"outcome"},
)

func init() {
	prometheus.MustRegister(requestsTotal)
}
