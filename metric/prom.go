package metric

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CodecOpCnt = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "geohash_op_cnt",
		Help: "geohash codec operation counter",
	}, []string{"op", "api"})

	CodecErrorCnt = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "geohash_error_cnt",
		Help: "geohash codec failures by error kind",
	}, []string{"op", "kind"})

	// unit is us
	CodecLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "geohash_op_latency",
		Help:    "geohash request latency including argument parsing",
		Buckets: prometheus.ExponentialBuckets(1, 2, 14),
	}, []string{"op"})

	BatchSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "geohash_batch_size",
		Help:    "points in one batch encode request",
		Buckets: prometheus.ExponentialBuckets(1, 2, 12),
	})

	EventCnt = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "event_cnt",
		Help: "the important event counter for internal event",
	}, []string{"event_name"})
)
