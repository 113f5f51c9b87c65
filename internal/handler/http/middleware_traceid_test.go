package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-bulk-notes/internal/config"
)

func TestWithTraceID_GeneratesWhenAbsent(t *testing.T) {
	h := newTestHandler(t, &mockNoteSvc{}, config.Bulk{})

	req := httptest.NewRequest(http.MethodGet, "/api/version/", nil)
	rec := serve(t, h, req)

	traceID := rec.Header().Get(traceIDHeader)
	require.NotEmpty(t, traceID)

	_, err := uuid.Parse(traceID)
	assert.NoError(t, err, "generated trace id should be a valid UUID")
}

func TestWithTraceID_PropagatesIncoming(t *testing.T) {
	h := newTestHandler(t, &mockNoteSvc{}, config.Bulk{})

	req := httptest.NewRequest(http.MethodGet, "/api/version/", nil)
	req.Header.Set(traceIDHeader, "incoming-trace-id")
	rec := serve(t, h, req)

	assert.Equal(t, "incoming-trace-id", rec.Header().Get(traceIDHeader))
}
