package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var checkoutsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "seatcounter_checkouts_total",
	Help: "Completed checkouts by billing mode.",
}, []string{"mode"})
