package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/epeers/tracker/internal/metrics"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequestID_Generated(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	var seen string
	router.GET("/x", func(c *gin.Context) {
		seen = GetRequestID(c)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, w.Header().Get(RequestIDHeader))
	assert.Len(t, seen, 36)
}

func TestRequestID_Propagated(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestCacheControl(t *testing.T) {
	router := gin.New()
	router.Use(CacheControl(60))
	router.GET("/ok", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{}) })
	router.GET("/fail", func(c *gin.Context) {
		NoStore(c)
		c.JSON(http.StatusBadGateway, gin.H{})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, "public, max-age=60, s-maxage=60", w.Header().Get("Cache-Control"))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}

func TestMetrics(t *testing.T) {
	reg := metrics.NewRegistry()
	router := gin.New()
	router.Use(Metrics(reg), RequestLogger())
	router.GET("/items/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/items/1", "/items/2", "/missing"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(reg.HTTPRequests.WithLabelValues("/items/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(reg.HTTPRequests.WithLabelValues("unmatched", "404")))
}
