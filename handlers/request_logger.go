// handlers/request_logger.go
package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/ltp-analytics/dashboard/logger"
)

// zapLogFormatter writes chi access log entries through logger.Log.
type zapLogFormatter struct{}

func (zapLogFormatter) NewLogEntry(r *http.Request) middleware.LogEntry {
	return &zapLogEntry{
		method:    r.Method,
		path:      r.URL.Path,
		requestID: middleware.GetReqID(r.Context()),
		remote:    r.RemoteAddr,
	}
}

type zapLogEntry struct {
	method    string
	path      string
	requestID string
	remote    string
}

func (e *zapLogEntry) Write(status, bytes int, _ http.Header, elapsed time.Duration, _ interface{}) {
	log := logger.Log.Infow
	if status >= http.StatusInternalServerError {
		log = logger.Log.Errorw
	}
	log("Handler: request",
		"method", e.method,
		"path", e.path,
		"status", status,
		"bytes", bytes,
		"elapsed", elapsed,
		"request_id", e.requestID,
		"remote", e.remote,
	)
}

func (e *zapLogEntry) Panic(v interface{}, stack []byte) {
	logger.Log.Errorw("Handler: panic serving request",
		"method", e.method,
		"path", e.path,
		"request_id", e.requestID,
		"panic", v,
		"stack", string(stack),
	)
}
