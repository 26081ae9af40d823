package handler

import (
	"fmt"
	"net/http"

	"github.com/exlog/exercisetracker/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "exlog_users_registered_total %d\n", snap.UsersRegistered)
	writeMetric(w, "exlog_user_not_found_total %d\n", snap.UserNotFound)

	writeMetric(w, "exlog_exercises_logged_total %d\n", snap.ExercisesLogged)
	writeMetric(w, "exlog_exercises_rejected_total{reason=\"date\"} %d\n", snap.ExercisesRejectedDate)
	writeMetric(w, "exlog_exercises_rejected_total{reason=\"duration\"} %d\n", snap.ExercisesRejectedDuration)

	writeMetric(w, "exlog_log_queries_total %d\n", snap.LogQueries)
	writeMetric(w, "exlog_log_query_entries_total %d\n", snap.LogQueryEntriesTotal)
	writeMetric(w, "exlog_log_query_duration_seconds_count %d\n", snap.LogQueries)
	writeMetric(w, "exlog_log_query_duration_seconds_sum %.6f\n", float64(snap.LogQueryDurationTotalNs)/1e9)

	writeMetric(w, "exlog_rate_limited_total %d\n", snap.RateLimited)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
