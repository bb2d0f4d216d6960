package core

import (
	"context"
	"net/http"
	"time"

	glog "github.com/goliatone/go-logger/glog"
)

// TransportRequest is a single outbound protocol request handed to a
// TransportAdapter. Headers already include the signed Authorization header.
type TransportRequest struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    []byte
	Timeout time.Duration
}

type TransportResponse struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
	Metadata   map[string]any
}

// TransportAdapter sends one request and returns one response. The core
// imposes no retry policy; cancellation and timeouts are the adapter's
// contract via ctx.
type TransportAdapter interface {
	Do(ctx context.Context, req TransportRequest) (TransportResponse, error)
}

// HTTPDoer matches *http.Client for callers that want to supply their own
// transport stack.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Noncer provides random nonce strings, one per signed request.
type Noncer interface {
	Nonce() string
}

// Clock provides the current time. Used in place of calling time.Now()
// directly so signatures are reproducible in tests.
type Clock interface {
	Now() time.Time
}

type Logger = glog.Logger

type LoggerProvider = glog.LoggerProvider

type FieldsLogger = glog.FieldsLogger

type MetricsRecorder interface {
	IncCounter(ctx context.Context, name string, value int64, tags map[string]string)
	ObserveHistogram(ctx context.Context, name string, value float64, tags map[string]string)
}
