package pg

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	operationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "corkboard_storage_operations_total",
			Help: "Total number of storage operations by operation and outcome",
		},
		[]string{"op", "outcome"},
	)

	txRetriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "corkboard_storage_tx_retries_total",
			Help: "Number of board transactions rerun after serialization failures",
		},
	)
)

func observeOp(op string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	operationsTotal.WithLabelValues(op, outcome).Inc()
}
