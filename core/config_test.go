package core

import "testing"

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ConsumerKey = "ck"
	cfg.ConsumerSecret = "cs"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}

	missing := cfg
	missing.ConsumerKey = "   "
	if err := missing.Validate(); err == nil {
		t.Fatalf("expected error for blank consumer key")
	}

	badMethod := cfg
	badMethod.SignatureMethod = "HMAC-SHA256"
	if err := badMethod.Validate(); err == nil {
		t.Fatalf("expected error for unsupported signature method")
	}

	badTransmission := cfg
	badTransmission.Transmission = "cookie"
	if err := badTransmission.Validate(); err == nil {
		t.Fatalf("expected error for invalid transmission")
	}
}

func TestResolvedTransmission(t *testing.T) {
	tests := []struct {
		input string
		want  Transmission
	}{
		{"", TransmissionHeader},
		{"header", TransmissionHeader},
		{"  Query ", TransmissionQuery},
		{"BODY", TransmissionBody},
	}
	for _, tc := range tests {
		cfg := Config{Transmission: tc.input}
		if got := cfg.ResolvedTransmission(); got != tc.want {
			t.Fatalf("ResolvedTransmission(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestProviderEndpointTrims(t *testing.T) {
	cfg := Config{Endpoint: EndpointConfig{
		RequestTokenURL: " https://p/request_token ",
		AuthorizeURL:    "https://p/authorize",
		AccessTokenURL:  "https://p/access_token",
	}}
	endpoint := cfg.ProviderEndpoint()
	if endpoint.RequestTokenURL != "https://p/request_token" {
		t.Fatalf("expected trimmed url, got %q", endpoint.RequestTokenURL)
	}
	if err := endpoint.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}
