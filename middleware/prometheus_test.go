package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPrometheusMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(PrometheusMiddleware("/healthz"))
	r.GET("/photos/:id", func(c *gin.Context) { c.String(http.StatusOK, "jpeg bytes") })
	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })

	ok := httpRequestsTotal.WithLabelValues(http.MethodGet, "/photos/:id", "200")
	unmatched := httpRequestsTotal.WithLabelValues(http.MethodGet, unmatchedRoute, "404")
	health := httpRequestsTotal.WithLabelValues(http.MethodGet, "/healthz", "200")
	beforeOK, beforeUnmatched, beforeHealth := testutil.ToFloat64(ok), testutil.ToFloat64(unmatched), testutil.ToFloat64(health)

	for _, path := range []string{"/photos/a", "/photos/b", "/wp-login.php", "/healthz"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, beforeOK+2, testutil.ToFloat64(ok))
	assert.Equal(t, beforeUnmatched+1, testutil.ToFloat64(unmatched))
	assert.Equal(t, beforeHealth, testutil.ToFloat64(health))
	assert.Equal(t, float64(0), testutil.ToFloat64(httpInFlight))
}
