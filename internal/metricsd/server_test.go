package metricsd

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer() (*Store, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	store := NewStore(testThresholds())
	return store, NewRouter(store)
}

func postMetrics(t *testing.T, router *gin.Engine, process, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/metrics", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if process != "" {
		req.Header.Set("X-Process-Name", process)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestPostMetricsContract(t *testing.T) {
	_, router := newTestServer()

	w := postMetrics(t, router, "backend", `{"cpu":{"total_usage":42.5}}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.NotEmpty(t, resp["message"])
	assert.NotEmpty(t, resp["timestamp"])
}

func TestPostMetricsInvalidJSON(t *testing.T) {
	_, router := newTestServer()

	w := postMetrics(t, router, "backend", `{cpu:`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["success"])
}

func TestPostMetricsUnknownProcess(t *testing.T) {
	store, router := newTestServer()

	w := postMetrics(t, router, "", `{}`)
	require.Equal(t, http.StatusOK, w.Code)

	status := store.Status()
	assert.Contains(t, status.Processes, "unknown")
}

func TestStatusEndpoint(t *testing.T) {
	_, router := newTestServer()
	postMetrics(t, router, "backend", `{"memory":{"usage_percent":95}}`)

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var snapshot StatusSnapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snapshot))
	assert.Contains(t, snapshot.Processes, "backend")
	require.Len(t, snapshot.Alerts, 1)
	assert.Equal(t, "HIGH_MEMORY", snapshot.Alerts[0].Type)
}

func TestAlertsEndpointSeverityFilter(t *testing.T) {
	_, router := newTestServer()
	postMetrics(t, router, "backend", `{"cpu":{"total_usage":99}}`)
	postMetrics(t, router, "backend", `{"database":{"status":"down","error":"timeout"}}`)

	req := httptest.NewRequest(http.MethodGet, "/alerts?severity=critical", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var alerts []Alert
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &alerts))
	require.Len(t, alerts, 1)
	assert.Equal(t, "DATABASE_DOWN", alerts[0].Type)
}

func TestHistoryEndpoint(t *testing.T) {
	_, router := newTestServer()
	postMetrics(t, router, "backend", `{"disk":{"usage_percent":40}}`)

	req := httptest.NewRequest(http.MethodGet, "/history?hours=2", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var history History
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &history))
	require.Len(t, history.Disk, 1)
	assert.Equal(t, 40.0, history.Disk[0].Value)
}

func TestHealthEndpoint(t *testing.T) {
	_, router := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
	assert.Equal(t, "2.0", resp["version"])
}

func TestUnknownRoute(t *testing.T) {
	_, router := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
