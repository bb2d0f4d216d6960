package signer

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/guoxy2016/authlib/core"
)

const (
	authorizationHeader = "Authorization"
	authorizationPrefix = "OAuth " // trailing space is intentional
)

// RequestSignerConfig configures a RequestSigner. Method overrides the
// SignatureMethod dispatch when the caller already holds parsed key material.
type RequestSignerConfig struct {
	Credentials     core.Credentials
	SignatureMethod core.SignatureMethod
	Method          Method
	Realm           string
	Transmission    core.Transmission
	Noncer          core.Noncer
	Clock           core.Clock
}

// RequestSigner assembles the OAuth protocol parameters for a request,
// computes the signature, and injects the result as an Authorization header
// or as request parameters. It holds no per-request state and never mutates
// tokens.
type RequestSigner struct {
	credentials  core.Credentials
	method       Method
	realm        string
	transmission core.Transmission
	source       Source
}

func NewRequestSigner(cfg RequestSignerConfig) (*RequestSigner, error) {
	if err := cfg.Credentials.Validate(); err != nil {
		return nil, err
	}
	method := cfg.Method
	if method == nil {
		resolved, err := ForMethod(cfg.SignatureMethod, cfg.Credentials)
		if err != nil {
			return nil, err
		}
		method = resolved
	}
	transmission := cfg.Transmission
	if transmission == "" {
		transmission = core.TransmissionHeader
	}
	return &RequestSigner{
		credentials:  cfg.Credentials,
		method:       method,
		realm:        strings.TrimSpace(cfg.Realm),
		transmission: transmission,
		source:       Source{Noncer: cfg.Noncer, Clock: cfg.Clock},
	}, nil
}

// SignRequestToken signs the temporary-credential request (RFC 5849 2.1)
// with oauth_callback and no token.
func (s *RequestSigner) SignRequestToken(req *http.Request, callbackURL string) error {
	callback := strings.TrimSpace(callbackURL)
	if callback == "" {
		callback = core.OutOfBand
	}
	return s.sign(req, core.Token{}, map[string]string{core.ParamCallback: callback})
}

// SignAccessToken signs the token-credential request (RFC 5849 2.3) with the
// temporary credential and the verifier.
func (s *RequestSigner) SignAccessToken(req *http.Request, temporary core.Token, verifier string) error {
	return s.sign(req, temporary, map[string]string{core.ParamVerifier: strings.TrimSpace(verifier)})
}

// SignResource signs a protected-resource request (RFC 5849 3.1) with an
// access token.
func (s *RequestSigner) SignResource(req *http.Request, access core.Token) error {
	return s.sign(req, access, nil)
}

func (s *RequestSigner) sign(req *http.Request, token core.Token, extra map[string]string) error {
	if s == nil || s.method == nil {
		return fmt.Errorf("signer: request signer is not configured")
	}
	if req == nil || req.URL == nil {
		return fmt.Errorf("signer: http request is required")
	}

	oauthParams := map[string]string{
		core.ParamConsumerKey:     s.credentials.ConsumerKey,
		core.ParamSignatureMethod: s.method.Name(),
		core.ParamTimestamp:       strconv.FormatInt(s.source.Epoch(), 10),
		core.ParamNonce:           s.source.Nonce(),
		core.ParamVersion:         core.OAuthVersion1,
	}
	if strings.TrimSpace(token.ID) != "" {
		oauthParams[core.ParamToken] = token.ID
	}
	for key, value := range extra {
		if strings.TrimSpace(value) != "" {
			oauthParams[key] = value
		}
	}

	pairs, err := CollectParameters(req, oauthParams)
	if err != nil {
		return err
	}
	signature, err := s.method.Sign(token.Secret, SignatureBase(req, pairs))
	if err != nil {
		return err
	}
	oauthParams[core.ParamSignature] = signature

	switch s.transmission {
	case core.TransmissionQuery:
		return emitQuery(req, oauthParams)
	case core.TransmissionBody:
		return emitBody(req, oauthParams)
	default:
		// The realm rides in the header only; it never enters the base
		// string (RFC 5849 3.4.1.3.1).
		if s.realm != "" {
			oauthParams[core.ParamRealm] = s.realm
		}
		req.Header.Set(authorizationHeader, AuthorizationHeaderValue(oauthParams))
		return nil
	}
}

// AuthorizationHeaderValue formats protocol parameters per RFC 5849 3.5.1:
// percent encoded, sorted by key, double-quoted, comma-space separated, with
// the "OAuth " prefix. The map should include oauth_signature.
func AuthorizationHeaderValue(oauthParams map[string]string) string {
	pairs := make([]Pair, 0, len(oauthParams))
	for key, value := range oauthParams {
		pairs = append(pairs, Pair{Key: key, Value: value})
	}
	sorted := SortPairs(EncodePairs(pairs))
	parts := make([]string, 0, len(sorted))
	for _, pair := range sorted {
		parts = append(parts, fmt.Sprintf("%s=%q", pair.Key, pair.Value))
	}
	return authorizationPrefix + strings.Join(parts, ", ")
}

func emitQuery(req *http.Request, oauthParams map[string]string) error {
	query := req.URL.Query()
	for key, value := range oauthParams {
		if key == core.ParamRealm {
			continue
		}
		query.Set(key, value)
	}
	req.URL.RawQuery = query.Encode()
	return nil
}

func emitBody(req *http.Request, oauthParams map[string]string) error {
	values := url.Values{}
	if req.Body != nil {
		if !isFormContentType(req.Header.Get("Content-Type")) {
			return fmt.Errorf("signer: body transmission requires %s content", formContentType)
		}
		raw, err := io.ReadAll(req.Body)
		if err != nil {
			return err
		}
		parsed, err := url.ParseQuery(string(raw))
		if err != nil {
			return err
		}
		values = parsed
	}
	for key, value := range oauthParams {
		if key == core.ParamRealm {
			continue
		}
		values.Set(key, value)
	}
	encoded := values.Encode()
	req.Body = io.NopCloser(bytes.NewReader([]byte(encoded)))
	req.ContentLength = int64(len(encoded))
	req.Header.Set("Content-Type", formContentType)
	return nil
}
