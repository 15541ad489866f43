// Package metrics exposes Prometheus counters for the scan pipeline.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/erazemk/garderoba/internal/wardrobe"
)

var (
	scansTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "garderoba_scans_total",
		Help: "Inbound NFC scans by outcome.",
	}, []string{"outcome"})

	transitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "garderoba_transitions_total",
		Help: "Accepted garment transitions by target state.",
	}, []string{"to_state"})
)

// RecordScan counts one processed scan, plus the transition target when
// the scan was accepted.
func RecordScan(res wardrobe.ScanResult) {
	scansTotal.WithLabelValues(string(res.Outcome)).Inc()
	if res.Outcome == wardrobe.ScanAccepted {
		transitionsTotal.WithLabelValues(string(res.ToState)).Inc()
	}
}

// Handler serves the Prometheus exposition endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
