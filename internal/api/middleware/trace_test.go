package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/dayplan-api/internal/api/shared"
	"github.com/phrazzld/dayplan-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
)

func TestTraceMiddleware(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	var traceID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID = shared.GetTraceID(r.Context())
		logger.FromContext(r.Context()).Info("inside handler")
		w.WriteHeader(http.StatusNoContent)
	})

	t.Run("generates trace id", func(t *testing.T) {
		buf.Reset()
		rec := httptest.NewRecorder()
		TraceMiddleware(base)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/days", nil))

		assert.Len(t, traceID, shared.TraceIDLength*2)
		assert.Equal(t, traceID, rec.Header().Get(shared.TraceIDHeader))
		assert.Contains(t, buf.String(), `"msg":"inside handler","trace_id":"`+traceID+`"`)
	})

	t.Run("keeps caller trace id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/days", nil)
		req.Header.Set(shared.TraceIDHeader, "upstream-7")
		rec := httptest.NewRecorder()
		TraceMiddleware(base)(next).ServeHTTP(rec, req)

		assert.Equal(t, "upstream-7", traceID)
		assert.Equal(t, "upstream-7", rec.Header().Get(shared.TraceIDHeader))
	})
}
