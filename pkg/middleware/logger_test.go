package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerRecordsRequestAndTraceIDs(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	traceID := trace.TraceID{0x01, 0x02, 0x03}
	spanCtx := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: trace.SpanID{0x01}})

	handler := chimw.RequestID(Logger(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte("taken"))
	})))

	req := httptest.NewRequest(http.MethodPost, "/api/bookings?x=1", nil)
	req = req.WithContext(trace.ContextWithSpanContext(req.Context(), spanCtx))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	fields := entry.ContextMap()

	assert.Equal(t, zapcore.WarnLevel, entry.Level)
	assert.Equal(t, "/api/bookings", fields["path"])
	assert.Equal(t, int64(http.StatusConflict), fields["status"])
	assert.Equal(t, int64(5), fields["bytes"])
	assert.Equal(t, traceID.String(), fields["trace_id"])
	assert.NotEmpty(t, fields["request_id"])
}

func TestRecoverReturnsInternalError(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	handler := Recover(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"status":false,"message":"Internal server error"}`, rec.Body.String())
	assert.Equal(t, 1, logs.FilterMessage("PANIC recovered").Len())
}

func TestCORSPreflight(t *testing.T) {
	handler := CORS([]string{"https://hotel.example"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/bookings", nil)
	req.Header.Set("Origin", "https://hotel.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, "https://hotel.example", rec.Header().Get("Access-Control-Allow-Origin"))
}
