package store

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultOK       = "ok"
	resultRejected = "rejected"
	resultFailed   = "failed"
)

// mutationsTotal counts store mutations by operation and outcome: rejected
// means the operation refused the input, failed means the backend write did.
var mutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "skillswap_store_mutations_total",
		Help: "Total number of state store mutations",
	},
	[]string{"op", "result"},
)
