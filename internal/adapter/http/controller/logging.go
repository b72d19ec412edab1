package controller

import (
	"net/http"
	"time"

	"github.com/api-sage/accounts-payable/internal/logger"
)

func logRequest(r *http.Request, payload any) {
	fields := logger.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
		"query":  r.URL.RawQuery,
	}
	if payload != nil {
		fields["payload"] = payload
	}

	logger.Info("http request", fields)
}

func logResponse(r *http.Request, status int, start time.Time) {
	logger.Info("http response", logger.Fields{
		"method":     r.Method,
		"path":       r.URL.Path,
		"status":     status,
		"durationMs": time.Since(start).Milliseconds(),
	})
}

func logError(r *http.Request, err error, extra logger.Fields) {
	fields := logger.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
		"query":  r.URL.RawQuery,
	}
	for k, v := range extra {
		fields[k] = v
	}

	logger.Error("http handler error", err, fields)
}
