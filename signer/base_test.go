package signer

import (
	"io"
	"net/http"
	"strings"
	"testing"
)

func TestBaseURI(t *testing.T) {
	cases := []struct {
		url      string
		expected string
	}{
		{"http://example.com/path", "http://example.com/path"},
		{"HTTP://EXAMPLE.COM/path", "http://example.com/path"},
		{"http://example.com:80/path", "http://example.com/path"},
		{"https://example.com:443/path", "https://example.com/path"},
		{"https://example.com:8080/path", "https://example.com:8080/path"},
		{"http://example.com/path?query=1", "http://example.com/path"},
		{"http://example.com/path#fragment", "http://example.com/path"},
		{"https://example.com", "https://example.com"},
	}
	for _, tc := range cases {
		req, err := http.NewRequest(http.MethodGet, tc.url, nil)
		if err != nil {
			t.Fatalf("new request %q: %v", tc.url, err)
		}
		if got := BaseURI(req); got != tc.expected {
			t.Fatalf("base uri %q: expected %q, got %q", tc.url, tc.expected, got)
		}
	}
}

func TestCollectParameters(t *testing.T) {
	body := strings.NewReader("c=3&b=2&multi=x&multi=y")
	req, err := http.NewRequest(http.MethodPost, "http://example.com/request?a=1&a=0", body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=utf-8")

	oauthParams := map[string]string{
		"oauth_nonce": "n",
		"realm":       "Photos",
	}
	pairs, err := CollectParameters(req, oauthParams)
	if err != nil {
		t.Fatalf("collect parameters: %v", err)
	}

	counts := map[string]int{}
	for _, pair := range pairs {
		counts[pair.Key]++
		if pair.Key == "realm" {
			t.Fatalf("realm must not enter the parameter set")
		}
	}
	if counts["a"] != 2 {
		t.Fatalf("expected both query values for a, got %d", counts["a"])
	}
	if counts["multi"] != 2 {
		t.Fatalf("expected both body values for multi, got %d", counts["multi"])
	}
	if counts["oauth_nonce"] != 1 || counts["b"] != 1 || counts["c"] != 1 {
		t.Fatalf("unexpected parameter counts: %v", counts)
	}

	restored, err := io.ReadAll(req.Body)
	if err != nil {
		t.Fatalf("read restored body: %v", err)
	}
	if string(restored) != "c=3&b=2&multi=x&multi=y" {
		t.Fatalf("body was not restored, got %q", restored)
	}
}

func TestCollectParametersSkipsNonFormBody(t *testing.T) {
	req, err := http.NewRequest(http.MethodPost, "http://example.com/request", strings.NewReader(`{"a":1}`))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	pairs, err := CollectParameters(req, map[string]string{"oauth_nonce": "n"})
	if err != nil {
		t.Fatalf("collect parameters: %v", err)
	}
	if len(pairs) != 1 || pairs[0].Key != "oauth_nonce" {
		t.Fatalf("expected only protocol params, got %v", pairs)
	}
}

func TestSignatureBase(t *testing.T) {
	body := strings.NewReader("c=3&b=2")
	req, err := http.NewRequest(http.MethodPost, "http://example.com/request?a=1", body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	oauthParams := map[string]string{
		"oauth_consumer_key":     "ck",
		"oauth_nonce":            "abc",
		"oauth_signature_method": "HMAC-SHA1",
		"oauth_timestamp":        "1000",
		"oauth_version":          "1.0",
	}
	pairs, err := CollectParameters(req, oauthParams)
	if err != nil {
		t.Fatalf("collect parameters: %v", err)
	}

	expected := "POST&http%3A%2F%2Fexample.com%2Frequest&" +
		"a%3D1%26b%3D2%26c%3D3" +
		"%26oauth_consumer_key%3Dck" +
		"%26oauth_nonce%3Dabc" +
		"%26oauth_signature_method%3DHMAC-SHA1" +
		"%26oauth_timestamp%3D1000" +
		"%26oauth_version%3D1.0"
	if got := SignatureBase(req, pairs); got != expected {
		t.Fatalf("expected base string\n%s\ngot\n%s", expected, got)
	}
}
