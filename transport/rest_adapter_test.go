package transport

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/guoxy2016/authlib/core"
)

func TestRESTAdapterDo(t *testing.T) {
	var seen *http.Request
	var seenBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Clone(context.Background())
		seenBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/x-www-form-urlencoded")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("oauth_token=tok1&oauth_token_secret=sec1"))
	}))
	defer server.Close()

	adapter := NewRESTAdapter(server.Client())
	adapter.DefaultHeaders["User-Agent"] = "authlib-test"

	res, err := adapter.Do(context.Background(), core.TransportRequest{
		Method:  "post",
		URL:     server.URL + "/request_token",
		Headers: map[string]string{"Authorization": `OAuth oauth_consumer_key="ck"`},
		Body:    []byte("a=1"),
	})
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	if string(res.Body) != "oauth_token=tok1&oauth_token_secret=sec1" {
		t.Fatalf("unexpected body %q", res.Body)
	}
	if res.Headers["Content-Type"] != "application/x-www-form-urlencoded" {
		t.Fatalf("expected flattened response headers, got %v", res.Headers)
	}
	if _, ok := res.Metadata["duration_ms"]; !ok {
		t.Fatalf("expected duration metadata, got %v", res.Metadata)
	}

	if seen.Method != http.MethodPost {
		t.Fatalf("lowercase method must normalize to POST, got %q", seen.Method)
	}
	if seen.URL.Path != "/request_token" {
		t.Fatalf("unexpected path %q", seen.URL.Path)
	}
	if got := seen.Header.Get("Authorization"); !strings.HasPrefix(got, "OAuth ") {
		t.Fatalf("expected Authorization header forwarded, got %q", got)
	}
	if seen.Header.Get("User-Agent") != "authlib-test" {
		t.Fatalf("expected default header applied, got %q", seen.Header.Get("User-Agent"))
	}
	if string(seenBody) != "a=1" {
		t.Fatalf("expected request body forwarded, got %q", seenBody)
	}
}

func TestRESTAdapterNon2xxPassesThrough(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte("nope"))
	}))
	defer server.Close()

	adapter := NewRESTAdapter(server.Client())
	res, err := adapter.Do(context.Background(), core.TransportRequest{Method: http.MethodGet, URL: server.URL})
	if err != nil {
		t.Fatalf("adapter must not treat status codes as errors: %v", err)
	}
	if res.StatusCode != http.StatusUnauthorized || string(res.Body) != "nope" {
		t.Fatalf("expected 401/nope, got %d/%q", res.StatusCode, res.Body)
	}
}

func TestRESTAdapterInvalidURL(t *testing.T) {
	adapter := NewRESTAdapter(http.DefaultClient)
	if _, err := adapter.Do(context.Background(), core.TransportRequest{URL: "://bad"}); err == nil {
		t.Fatalf("expected error for invalid url")
	}
	if _, err := adapter.Do(context.Background(), core.TransportRequest{}); err == nil {
		t.Fatalf("expected error for empty url")
	}
}

func TestRESTAdapterBodyLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(strings.Repeat("x", 64)))
	}))
	defer server.Close()

	adapter := NewRESTAdapter(server.Client())
	adapter.MaxResponseBodyBytes = 16
	if _, err := adapter.Do(context.Background(), core.TransportRequest{URL: server.URL}); err == nil {
		t.Fatalf("expected error for oversized response body")
	}
}

func TestStubAdapterReplay(t *testing.T) {
	stub := &StubAdapter{
		Responses: []core.TransportResponse{
			{StatusCode: 200, Body: []byte("first")},
			{StatusCode: 201, Body: []byte("second")},
		},
	}
	res, err := stub.Do(context.Background(), core.TransportRequest{Method: http.MethodGet, URL: "https://x"})
	if err != nil || string(res.Body) != "first" {
		t.Fatalf("expected first canned response, got %q err %v", res.Body, err)
	}
	res, err = stub.Do(context.Background(), core.TransportRequest{Method: http.MethodGet, URL: "https://x"})
	if err != nil || string(res.Body) != "second" {
		t.Fatalf("expected second canned response, got %q err %v", res.Body, err)
	}
	if _, err := stub.Do(context.Background(), core.TransportRequest{}); err == nil {
		t.Fatalf("expected error once canned responses run out")
	}
	if len(stub.Requests) != 3 {
		t.Fatalf("expected all requests recorded, got %d", len(stub.Requests))
	}
}
