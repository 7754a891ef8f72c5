package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/breakbetter-backend/internal/platform/ctxutil"
)

func TestAttachTraceContextPropagatesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AttachTraceContext())
	var seen *ctxutil.TraceData
	r.GET("/", func(c *gin.Context) {
		seen = ctxutil.GetTraceData(c.Request.Context())
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(headerRequestID, "req-123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if seen == nil || seen.RequestID != "req-123" || seen.TraceID == "" {
		t.Fatalf("trace data: got %+v", seen)
	}
	if rec.Header().Get(headerRequestID) != "req-123" {
		t.Fatalf("response request id: got %q", rec.Header().Get(headerRequestID))
	}
	if rec.Header().Get(headerTraceID) != seen.TraceID {
		t.Fatalf("response trace id mismatch")
	}
}
