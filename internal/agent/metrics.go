package agent

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	exchangesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "walletclaw",
		Subsystem: "agent",
		Name:      "exchanges_total",
		Help:      "Completed exchanges by outcome.",
	}, []string{"outcome"})

	modelCallsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "walletclaw",
		Subsystem: "agent",
		Name:      "model_calls_total",
		Help:      "Model completion calls issued.",
	})

	toolCallsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "walletclaw",
		Subsystem: "agent",
		Name:      "tool_calls_total",
		Help:      "Tool invocations executed.",
	})

	compressionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "walletclaw",
		Subsystem: "agent",
		Name:      "compressions_total",
		Help:      "Conversation histories compressed or reset over budget.",
	})

	tokensReportedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "walletclaw",
		Subsystem: "agent",
		Name:      "tokens_reported_total",
		Help:      "Token usage reported by the model API.",
	})

	exchangeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "walletclaw",
		Subsystem: "agent",
		Name:      "exchange_duration_seconds",
		Help:      "Wall-clock duration of one exchange.",
		Buckets:   prometheus.ExponentialBuckets(0.1, 2, 10),
	})
)
