package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-catalog/internal/shared/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(handlers...)
	return r
}

func TestRequestID_GeneratesWhenMissing(t *testing.T) {
	r := newRouter(RequestID())
	var seen string
	r.GET("/ping", func(c *gin.Context) {
		seen = c.GetString(RequestIDKey)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	require.NotEmpty(t, seen)
	assert.Equal(t, seen, w.Header().Get(RequestIDHeader))
}

func TestRequestID_PropagatesIncoming(t *testing.T) {
	r := newRouter(RequestID())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))
}

func TestRecovery_ReturnsEnvelope(t *testing.T) {
	r := newRouter(RequestID(), Logger(), Recovery("recovery-test"))
	r.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var body response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	require.NotNil(t, body.Error)
	assert.Equal(t, "INTERNAL_ERROR", body.Error.Code)
	assert.Equal(t, "Internal server error", body.Error.Message)
	assert.Equal(t, float64(1), counterValue(t, httpPanicsTotal.WithLabelValues("recovery-test")))
}

// counterValue reads the current value of a single counter series.
func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	m := &dto.Metric{}
	require.NoError(t, c.Write(m))
	return m.GetCounter().GetValue()
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	m := &dto.Metric{}
	require.NoError(t, g.Write(m))
	return m.GetGauge().GetValue()
}

func TestMetrics_CountsByRouteTemplate(t *testing.T) {
	r := newRouter(Metrics("metrics-test"))
	r.GET("/books/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/books/1", "/books/2"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, w.Code)
	}

	got := counterValue(t, httpRequestsTotal.WithLabelValues("metrics-test", http.MethodGet, "/books/:id", "200"))
	assert.Equal(t, float64(2), got)
	assert.Equal(t, float64(0), gaugeValue(t, httpRequestsInFlight.WithLabelValues("metrics-test")))
}

func TestMetrics_UnknownRoute(t *testing.T) {
	r := newRouter(Metrics("metrics-test-404"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))

	got := counterValue(t, httpRequestsTotal.WithLabelValues("metrics-test-404", http.MethodGet, "unknown", "404"))
	assert.Equal(t, float64(1), got)
}

func TestMetrics_CountsRecoveredPanicAs500(t *testing.T) {
	r := newRouter(Metrics("metrics-test-panic"), Recovery("metrics-test-panic"))
	r.GET("/books/:id", func(c *gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/books/1", nil))
	require.Equal(t, http.StatusInternalServerError, w.Code)

	got := counterValue(t, httpRequestsTotal.WithLabelValues("metrics-test-panic", http.MethodGet, "/books/:id", "500"))
	assert.Equal(t, float64(1), got)
	assert.Equal(t, float64(1), counterValue(t, httpPanicsTotal.WithLabelValues("metrics-test-panic")))
	assert.Equal(t, float64(0), gaugeValue(t, httpRequestsInFlight.WithLabelValues("metrics-test-panic")))
}
