package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"compressor/models"
)

var (
	batchUnitsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "compressor_batch_units_total",
			Help: "Number of work units discovered for the current batch",
		},
	)

	outcomesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "compressor_outcomes_total",
			Help: "Finished work units by outcome kind",
		},
		[]string{"kind"}, // skipped, completed, cancelled, failed
	)

	sourceBytesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "compressor_source_bytes_total",
			Help: "Bytes of source video consumed by completed transcodes",
		},
	)

	outputBytesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "compressor_output_bytes_total",
			Help: "Bytes of transcoded output produced by completed transcodes",
		},
	)

	activeWorkers = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "compressor_active_workers",
			Help: "Number of transcodes currently running",
		},
	)
)

func init() {
	prometheus.MustRegister(batchUnitsTotal)
	prometheus.MustRegister(outcomesTotal)
	prometheus.MustRegister(sourceBytesTotal)
	prometheus.MustRegister(outputBytesTotal)
	prometheus.MustRegister(activeWorkers)
}

// StartMetricsServer starts the Prometheus metrics HTTP server
func StartMetricsServer(port int, logger *zap.Logger) {
	// Create a new HTTP mux for metrics to avoid conflicts
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	addr := fmt.Sprintf(":%d", port)
	logger.Info("Starting metrics server", zap.String("addr", addr))

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.Error("Metrics server error", zap.Error(err))
		}
	}()
}

// SetBatchSize records how many units the current batch holds
func SetBatchSize(n int) {
	batchUnitsTotal.Set(float64(n))
}

// RecordOutcome counts a finished unit and its byte totals
func RecordOutcome(o models.Outcome) {
	outcomesTotal.WithLabelValues(string(o.Kind)).Inc()
	if o.Kind == models.OutcomeCompleted {
		sourceBytesTotal.Add(float64(o.SourceBytes))
		outputBytesTotal.Add(float64(o.OutputBytes))
	}
}

// WorkerStarted marks one more transcode as running
func WorkerStarted() {
	activeWorkers.Inc()
}

// WorkerDone marks one transcode as finished
func WorkerDone() {
	activeWorkers.Dec()
}
