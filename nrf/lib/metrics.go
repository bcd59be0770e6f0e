package lib

import (
	"context"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	toolCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nrf_mcp_tool_calls_total",
			Help: "Total number of MCP tool calls by tool name and status",
		},
		[]string{"tool_name", "status"},
	)

	toolDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "nrf_mcp_tool_duration_seconds",
			Help: "Duration of MCP tool calls in seconds",
			// Builds run for minutes, so the default buckets are too short.
			Buckets: []float64{.1, .5, 1, 5, 15, 30, 60, 120, 300},
		},
		[]string{"tool_name"},
	)

	activeToolCalls = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "nrf_mcp_tool_active_calls",
			Help: "Number of currently active MCP tool calls",
		},
		[]string{"tool_name"},
	)
)

// InstrumentToolHandler wraps a tool handler with call, duration and
// in-flight metrics.
func InstrumentToolHandler(toolName string, handler server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		activeToolCalls.WithLabelValues(toolName).Inc()
		defer activeToolCalls.WithLabelValues(toolName).Dec()

		result, err := handler(ctx, request)

		status := "success"
		if err != nil || (result != nil && result.IsError) {
			status = "error"
		}
		toolDuration.WithLabelValues(toolName).Observe(time.Since(start).Seconds())
		toolCallsTotal.WithLabelValues(toolName, status).Inc()

		return result, err
	}
}

// ServeMetrics exposes /metrics and /health on addr. Blocks; run it in its
// own goroutine.
func ServeMetrics(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	return http.ListenAndServe(addr, mux)
}
