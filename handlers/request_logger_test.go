package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/ltp-analytics/dashboard/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestsAreLoggedThroughZap(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	saved := logger.Log
	logger.Log = zap.New(core).Sugar()
	t.Cleanup(func() { logger.Log = saved })

	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/api/ping")
	require.NoError(t, err)
	resp.Body.Close()

	// the access log entry is written after the response is sent
	require.Eventually(t, func() bool {
		return logs.FilterMessage("Handler: request").Len() == 1
	}, time.Second, 5*time.Millisecond)
	entries := logs.FilterMessage("Handler: request").All()
	fields := entries[0].ContextMap()
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/api/ping", fields["path"])
	assert.EqualValues(t, http.StatusOK, fields["status"])
	assert.NotEmpty(t, fields["request_id"])
}

func TestServerErrorsAreLoggedAtErrorLevel(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	saved := logger.Log
	logger.Log = zap.New(core).Sugar()
	t.Cleanup(func() { logger.Log = saved })

	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/api/ltp-hub") // no stored register
	require.NoError(t, err)
	resp.Body.Close()

	// the access log entry is written after the response is sent
	require.Eventually(t, func() bool {
		return logs.FilterMessage("Handler: request").Len() == 1
	}, time.Second, 5*time.Millisecond)
	entries := logs.FilterMessage("Handler: request").All()
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
}
