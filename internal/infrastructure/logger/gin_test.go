package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setRequestID stands in for the request-id middleware.
func setRequestID(id string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("request_id", id)
		c.Next()
	}
}

func TestGinMiddleware_AccessLine(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	log := zap.New(core)

	router := gin.New()
	router.Use(setRequestID("req-1"), GinMiddleware(log))
	router.GET("/api/v1/platforms", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest("GET", "/api/v1/platforms?full=1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zap.InfoLevel, entry.Level)
	assert.Equal(t, "request completed", entry.Message)

	fields := entry.ContextMap()
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/api/v1/platforms", fields["path"])
	assert.Equal(t, int64(http.StatusOK), fields["status"])
	assert.Equal(t, "full=1", fields["query"])
}

func TestGinMiddleware_DraftRouteCarriesDraftID(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	log := zap.New(core)

	var handlerSawDraftID string
	router := gin.New()
	router.Use(setRequestID("req-2"), GinMiddleware(log))
	router.GET("/drafts/:id", func(c *gin.Context) {
		// The request-scoped logger and ids flow through the context.
		handlerSawDraftID = GetDraftID(c.Request.Context())
		FromContext(c.Request.Context()).Info("draft loaded")
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/drafts/d-123", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "d-123", handlerSawDraftID)
	require.Equal(t, 2, logs.Len())

	pipeline := logs.All()[0]
	assert.Equal(t, "draft loaded", pipeline.Message)
	assert.Equal(t, "d-123", pipeline.ContextMap()["draft_id"])
	assert.Equal(t, "req-2", pipeline.ContextMap()["request_id"])

	access := logs.All()[1]
	assert.Equal(t, "d-123", access.ContextMap()["draft_id"])
}

func TestGinMiddleware_Levels(t *testing.T) {
	cases := []struct {
		status int
		want   string
	}{
		{http.StatusOK, "info"},
		{http.StatusNotFound, "warn"},
		{http.StatusBadGateway, "error"},
	}

	for _, tc := range cases {
		core, logs := observer.New(zap.DebugLevel)
		log := zap.New(core)

		router := gin.New()
		router.Use(GinMiddleware(log))
		router.GET("/x", func(c *gin.Context) { c.Status(tc.status) })

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/x", nil))

		require.Equal(t, 1, logs.Len(), "status %d", tc.status)
		assert.Equal(t, tc.want, logs.All()[0].Level.String(), "status %d", tc.status)
	}
}

func TestRecovery(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	log := zap.New(core)

	router := gin.New()
	router.Use(setRequestID("req-9"), Recovery(log))
	router.GET("/boom", func(c *gin.Context) {
		panic("broken pipeline")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
	assert.Contains(t, w.Body.String(), "ERR_INTERNAL")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "panic recovered", entry.Message)
	assert.Equal(t, "req-9", entry.ContextMap()["request_id"])
	assert.Equal(t, "broken pipeline", entry.ContextMap()["panic"])
}
