package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Makepad-fr/tada/internal/logfields"
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// LoggingTransport stamps every request with a request id and logs the
// exchange at debug level.
type LoggingTransport struct {
	next   http.RoundTripper
	logger *slog.Logger
}

// NewLoggingTransport wraps next (nil means http.DefaultTransport).
func NewLoggingTransport(next http.RoundTripper, logger *slog.Logger) *LoggingTransport {
	if next == nil {
		next = http.DefaultTransport
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingTransport{next: next, logger: logger}
}

func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not mutate the caller's request.
	req = req.Clone(req.Context())
	id := req.Header.Get(RequestIDHeader)
	if id == "" {
		id = uuid.NewString()
		req.Header.Set(RequestIDHeader, id)
	}

	start := time.Now()
	resp, err := t.next.RoundTrip(req)
	elapsed := float64(time.Since(start).Microseconds()) / 1000

	attrs := []any{
		logfields.RequestID(id),
		logfields.Method(req.Method),
		logfields.Path(req.URL.Path),
		logfields.DurationMS(elapsed),
	}
	if err != nil {
		t.logger.Debug("http exchange failed", append(attrs, logfields.Error(err))...)
		return nil, err
	}
	t.logger.Debug("http exchange", append(attrs, logfields.Status(resp.StatusCode))...)
	return resp, nil
}
