package logger

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Drop reasons used in the records-dropped counter.
const (
	dropSuppressed     = "suppressed"
	dropRateLimited    = "rate_limited"
	dropBufferOverflow = "buffer_overflow"
)

var (
	recordsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "logpipe_records_total",
		Help: "Number of records emitted into a logger pipeline.",
	}, []string{"logger"})

	recordsDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "logpipe_records_dropped_total",
		Help: "Number of records dropped before reaching the sink.",
	}, []string{"logger", "reason"})
)
