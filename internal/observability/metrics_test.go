package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_RecordAndExpose(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	m.RecordHTTPRequest(http.MethodGet, "/tasks", http.StatusOK, 10*time.Millisecond)
	m.RecordAuth("login", "invalid_credentials")
	m.RecordTaskCreated()

	if got := testutil.ToFloat64(m.AuthOutcomesTotal.WithLabelValues("login", "invalid_credentials")); got != 1 {
		t.Fatalf("auth outcomes = %v", got)
	}
	if got := testutil.ToFloat64(m.TasksCreatedTotal); got != 1 {
		t.Fatalf("tasks created = %v", got)
	}

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(rec.Body.String(), "taskassign_http_requests_total") {
		t.Fatalf("exposition missing http counter:\n%s", rec.Body.String())
	}
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	m.RecordHTTPRequest(http.MethodGet, "/", 200, time.Second)
	m.RecordAuth("login", "ok")
	m.RecordTaskCreated()
	m.RecordGRPC("/x", "OK")
}
