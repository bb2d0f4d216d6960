package transport

import (
	"context"
	"fmt"

	"github.com/guoxy2016/authlib/core"
)

// StubAdapter replays canned responses in order. It exists for flow tests
// that exercise the state machine without a live provider.
type StubAdapter struct {
	Responses []core.TransportResponse
	Errs      []error
	Requests  []core.TransportRequest
	calls     int
}

func (a *StubAdapter) Do(_ context.Context, req core.TransportRequest) (core.TransportResponse, error) {
	if a == nil {
		return core.TransportResponse{}, fmt.Errorf("transport: stub adapter is nil")
	}
	a.Requests = append(a.Requests, req)
	index := a.calls
	a.calls++
	if index < len(a.Errs) && a.Errs[index] != nil {
		return core.TransportResponse{}, a.Errs[index]
	}
	if index >= len(a.Responses) {
		return core.TransportResponse{}, fmt.Errorf("transport: stub adapter has no response for call %d", index+1)
	}
	return a.Responses[index], nil
}

var _ core.TransportAdapter = (*StubAdapter)(nil)
