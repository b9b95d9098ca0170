package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobscout_errors_total",
			Help: "Total number of occurred errors.",
		},
		[]string{"type"},
	)
	FetchedListingsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobscout_listings_fetched_total",
			Help: "Total number of listings fetched per source.",
		},
		[]string{"source"},
	)
	DroppedListingsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobscout_listings_dropped_total",
			Help: "Total number of listings dropped before scoring.",
		},
		[]string{"reason"},
	)
	ScoredListingsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "jobscout_listings_scored_total",
			Help: "Total number of listings scored.",
		},
	)
	ManualApplicationsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "jobscout_manual_applications_total",
			Help: "Total number of listings queued for manual application.",
		},
	)
	PipelineDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "jobscout_pipeline_run_duration_seconds",
			Help:    "Duration of each pipeline run in seconds.",
			Buckets: []float64{1, 5, 15, 60, 300, 900},
		},
	)
)

func StartMetricsServer(addr string) {

	prometheus.MustRegister(ErrorsCounter)
	prometheus.MustRegister(FetchedListingsCounter)
	prometheus.MustRegister(DroppedListingsCounter)
	prometheus.MustRegister(ScoredListingsCounter)
	prometheus.MustRegister(ManualApplicationsCounter)
	prometheus.MustRegister(PipelineDuration)

	http.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Fatal(http.ListenAndServe(addr, nil))
	}()
}
