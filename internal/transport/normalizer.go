// Package transport turns raw HTTP exchanges into result.Result values.
// It is the only place where status codes and transport errors are
// translated into the failure taxonomy.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"
	"unicode/utf8"

	"github.com/Makepad-fr/tada/internal/logfields"
	"github.com/Makepad-fr/tada/internal/metrics"
	"github.com/Makepad-fr/tada/internal/result"
)

const (
	maxBodySize    = 4 << 20
	maxDetailBytes = 200
)

// Call performs one HTTP exchange. It must honour ctx.
type Call func(ctx context.Context) (*http.Response, error)

// Normalizer carries the observability hooks shared by every call.
type Normalizer struct {
	recorder metrics.Recorder
	logger   *slog.Logger
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(n *Normalizer) {
		if r != nil {
			n.recorder = r
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(n *Normalizer) {
		if l != nil {
			n.logger = l
		}
	}
}

// NewNormalizer creates a Normalizer with a no-op recorder and the default logger.
func NewNormalizer(opts ...Option) *Normalizer {
	n := &Normalizer{
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Execute runs call and decodes a 2xx body into T. A 2xx with an empty or
// null body is a KindEmptyBody failure.
func Execute[T any](ctx context.Context, n *Normalizer, op string, call Call) result.Result[T] {
	return observe(n, op, func() result.Result[T] { return run[T](ctx, call, true) })
}

// ExecuteEmpty runs call and treats any 2xx as success without reading a value.
func ExecuteEmpty(ctx context.Context, n *Normalizer, op string, call Call) result.Result[result.Unit] {
	return observe(n, op, func() result.Result[result.Unit] { return run[result.Unit](ctx, call, false) })
}

func observe[T any](n *Normalizer, op string, fn func() result.Result[T]) result.Result[T] {
	if n == nil {
		n = NewNormalizer()
	}
	start := time.Now()
	res := fn()
	elapsed := time.Since(start)

	outcome := outcomeOf(res)
	n.recorder.ObserveCall(op, outcome, elapsed)
	if res.IsFailure() {
		n.logger.Debug("remote call failed",
			logfields.Operation(op),
			logfields.Outcome(outcome),
			logfields.Status(res.Failure().Code),
			logfields.Error(res.Failure()))
	}
	return res
}

func run[T any](ctx context.Context, call Call, decode bool) result.Result[T] {
	resp, err := call(ctx)
	if err != nil {
		return fromCallError[T](ctx, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		if ctx.Err() != nil {
			return result.Canceled[T](ctx.Err())
		}
		return result.Fail[T](result.ConnectionError(fmt.Sprintf("read response body: %v", err)))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return result.Fail[T](Classify(resp.StatusCode, body))
	}

	var value T
	if !decode {
		return result.Success(value)
	}
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return result.Fail[T](result.EmptyBody())
	}
	if err := json.Unmarshal(trimmed, &value); err != nil {
		return result.Fail[T](result.Unknown(fmt.Sprintf("decode response: %v", err)))
	}
	return result.Success(value)
}

// Classify maps a non-2xx status and its error body to a Failure.
func Classify(status int, body []byte) *result.Failure {
	details := errorDetails(body)
	switch {
	case status == http.StatusUnauthorized:
		return result.Unauthorized()
	case status == http.StatusForbidden:
		return result.Forbidden()
	case status == http.StatusNotFound:
		return result.NotFound()
	case status == http.StatusUnprocessableEntity:
		return result.Validation(details)
	case status == http.StatusTooManyRequests:
		return result.TooManyRequests()
	case status >= 500 && status <= 599:
		return result.ServerError(status, details)
	default:
		return result.NetworkError(status, details)
	}
}

func fromCallError[T any](ctx context.Context, err error) result.Result[T] {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return result.Canceled[T](ctxErr)
	}
	if errors.Is(err, context.Canceled) {
		return result.Canceled[T](err)
	}
	var urlErr *url.Error
	var netErr net.Error
	if errors.As(err, &urlErr) || errors.As(err, &netErr) {
		return result.Fail[T](result.ConnectionError(err.Error()))
	}
	return result.Fail[T](result.Unknown(err.Error()))
}

func errorDetails(body []byte) string {
	s := string(bytes.TrimSpace(body))
	if len(s) <= maxDetailBytes {
		return s
	}
	cut := maxDetailBytes
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

func outcomeOf[T any](r result.Result[T]) string {
	switch {
	case r.IsSuccess():
		return metrics.OutcomeSuccess
	case r.IsCanceled():
		return metrics.OutcomeCanceled
	default:
		return r.Failure().Kind.String()
	}
}
