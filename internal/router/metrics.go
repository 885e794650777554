package router

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	messagesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "walletclaw",
		Subsystem: "router",
		Name:      "messages_total",
		Help:      "Inbound messages accepted, by kind.",
	}, []string{"kind"})

	droppedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "walletclaw",
		Subsystem: "router",
		Name:      "dropped_total",
		Help:      "Inbound messages dropped because the inbox was full.",
	})

	sendFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "walletclaw",
		Subsystem: "router",
		Name:      "send_failures_total",
		Help:      "Outbound replies that could not be delivered.",
	})
)
