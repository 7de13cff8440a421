// Package metrics exposes service counters on the Prometheus registry.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ChatRequests = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "assistant_chat_requests_total",
			Help: "Total chat stream requests accepted.",
		},
	)

	GuardrailBlocks = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "assistant_guardrail_blocks_total",
			Help: "Requests answered by the medical advice guardrail without an upstream call.",
		},
	)

	ToolCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_tool_calls_total",
			Help: "Tool executions by tool name and outcome.",
		},
		[]string{"tool", "outcome"},
	)

	UpstreamErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "assistant_upstream_errors_total",
			Help: "Upstream completion requests that failed.",
		},
	)

	StreamCancels = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "assistant_stream_cancels_total",
			Help: "Streams abandoned by the client before completion.",
		},
	)
)

func init() {
	prometheus.MustRegister(ChatRequests)
	prometheus.MustRegister(GuardrailBlocks)
	prometheus.MustRegister(ToolCalls)
	prometheus.MustRegister(UpstreamErrors)
	prometheus.MustRegister(StreamCancels)
}

// ToolOutcome labels a tool execution for the ToolCalls counter.
func ToolOutcome(ok bool) string {
	if ok {
		return "ok"
	}
	return "failure"
}

// Handler serves the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
