package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sunside/sunside-backend-go/internal/models"
)

// Collector holds the service's Prometheus metrics on a private
// registry
type Collector struct {
	reg *prometheus.Registry

	AnalysesTotal    prometheus.Counter
	NightOnlyTrips   prometheus.Counter
	AnalysisDuration prometheus.Histogram
	DaylightRatio    prometheus.Histogram

	RoutingFetches prometheus.Counter
	RoutingErrors  prometheus.Counter
}

// NewCollector creates and registers the metric set
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		AnalysesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sunside_analyses_total",
			Help: "Total trip exposure analyses computed.",
		}),
		NightOnlyTrips: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sunside_night_only_trips_total",
			Help: "Analyses whose sampled points were all at night.",
		}),
		AnalysisDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "sunside_analysis_duration_seconds",
			Help:    "Wall time of one trip analysis, route fetch included.",
			Buckets: prometheus.DefBuckets,
		}),
		DaylightRatio: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "sunside_daylight_point_ratio",
			Help:    "Fraction of sampled points in daylight per analysis.",
			Buckets: prometheus.LinearBuckets(0, 0.1, 11),
		}),
		RoutingFetches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sunside_routing_fetches_total",
			Help: "Successful OSRM route fetches.",
		}),
		RoutingErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sunside_routing_errors_total",
			Help: "Failed OSRM route fetches.",
		}),
	}

	reg.MustRegister(
		c.AnalysesTotal,
		c.NightOnlyTrips,
		c.AnalysisDuration,
		c.DaylightRatio,
		c.RoutingFetches,
		c.RoutingErrors,
	)
	return c
}

// ObserveAnalysis records one completed analysis
func (c *Collector) ObserveAnalysis(elapsed time.Duration, summary models.TripSummary) {
	c.AnalysesTotal.Inc()
	c.AnalysisDuration.Observe(elapsed.Seconds())

	points := summary.DaylightPoints + summary.NightPoints
	if points > 0 {
		c.DaylightRatio.Observe(float64(summary.DaylightPoints) / float64(points))
	}
	if !summary.HasDaylight {
		c.NightOnlyTrips.Inc()
	}
}

// Handler exposes the registry for scraping
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{})
}
