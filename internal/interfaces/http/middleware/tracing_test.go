package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// setupTestTracer returns a provider that records finished spans.
func setupTestTracer(t *testing.T) (*sdktrace.TracerProvider, *tracetest.SpanRecorder) {
	t.Helper()

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() {
		_ = tp.Shutdown(t.Context())
	})
	return tp, sr
}

func spanAttrs(span sdktrace.ReadOnlySpan) map[attribute.Key]attribute.Value {
	out := map[attribute.Key]attribute.Value{}
	for _, kv := range span.Attributes() {
		out[kv.Key] = kv.Value
	}
	return out
}

func tracedRouter(tp *sdktrace.TracerProvider, tenantID, userID string) *gin.Engine {
	cfg := DefaultTracingConfig()
	cfg.TracerProvider = tp

	router := gin.New()
	router.Use(RequestID(), TracingWithConfig(cfg), SpanErrorMarker())
	router.Use(func(c *gin.Context) {
		if tenantID != "" {
			c.Set(TenantIDKey, tenantID)
		}
		if userID != "" {
			c.Set(JWTUserIDKey, userID)
		}
		c.Next()
	})
	router.Use(SpanAttributes())
	router.GET("/customers/:id", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.GET("/missing", func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})
	router.GET("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestTracingWithConfig(t *testing.T) {
	t.Run("disabled passes through", func(t *testing.T) {
		router := gin.New()
		router.Use(TracingWithConfig(TracingConfig{Enabled: false}))
		router.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("span named by route with request attributes", func(t *testing.T) {
		tp, sr := setupTestTracer(t)
		tenantID, userID := uuid.NewString(), uuid.NewString()

		req := httptest.NewRequest(http.MethodGet, "/customers/42", nil)
		req.Header.Set(RequestIDHeader, "req-trace-1")
		tracedRouter(tp, tenantID, userID).ServeHTTP(httptest.NewRecorder(), req)

		spans := sr.Ended()
		require.Len(t, spans, 1)
		assert.Equal(t, "GET /customers/:id", spans[0].Name())
		attrs := spanAttrs(spans[0])
		assert.Equal(t, "req-trace-1", attrs["request_id"].AsString())
		assert.Equal(t, tenantID, attrs["tenant_id"].AsString())
		assert.Equal(t, userID, attrs["user_id"].AsString())
		assert.NotEqual(t, codes.Error, spans[0].Status().Code)
	})

	t.Run("client errors mark the span", func(t *testing.T) {
		tp, sr := setupTestTracer(t)

		tracedRouter(tp, "", "").ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

		spans := sr.Ended()
		require.Len(t, spans, 1)
		assert.Equal(t, codes.Error, spans[0].Status().Code)
		assert.Equal(t, "Not Found", spans[0].Status().Description)
	})

	t.Run("health is not traced", func(t *testing.T) {
		tp, sr := setupTestTracer(t)

		tracedRouter(tp, "", "").ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Empty(t, sr.Ended())
	})
}
