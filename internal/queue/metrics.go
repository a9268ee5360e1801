package queue

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	queuedActions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "seatcounter_queue_actions_total",
		Help: "Actions captured while the store was unreachable.",
	}, []string{"kind"})

	flushedActions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "seatcounter_queue_flushed_actions_total",
		Help: "Queued actions successfully replayed against the store.",
	}, []string{"kind"})

	droppedActions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "seatcounter_queue_dropped_actions_total",
		Help: "Queued actions discarded because they could no longer apply.",
	})
)
