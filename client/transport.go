package client

import (
	"fmt"
	"net/http"

	"github.com/guoxy2016/authlib/core"
	"github.com/guoxy2016/authlib/signer"
)

// A TokenSource supplies the access token used to sign outgoing requests.
type TokenSource interface {
	Token() (core.Token, error)
}

type staticTokenSource struct {
	token core.Token
}

func (s staticTokenSource) Token() (core.Token, error) {
	if s.token.IsZero() {
		return core.Token{}, fmt.Errorf("client: token is empty")
	}
	return s.token, nil
}

// StaticTokenSource returns a TokenSource that always yields the same token.
// Appropriate for OAuth1 access tokens, which do not expire.
func StaticTokenSource(token core.Token) TokenSource {
	return staticTokenSource{token: token.Clone()}
}

// Transport is an http.RoundTripper that signs each request with an OAuth1
// Authorization header before delegating to the base transport. It composes
// with an *http.Client rather than extending one.
type Transport struct {
	// Base is used to execute the signed request. Defaults to
	// http.DefaultTransport.
	Base http.RoundTripper

	Source TokenSource
	Signer *signer.RequestSigner
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t == nil || t.Signer == nil {
		return nil, fmt.Errorf("client: transport signer is nil")
	}
	if t.Source == nil {
		return nil, fmt.Errorf("client: transport token source is nil")
	}
	token, err := t.Source.Token()
	if err != nil {
		return nil, err
	}
	// RoundTrippers must not modify the caller's request.
	signed := cloneRequest(req)
	if err := t.Signer.SignResource(signed, token); err != nil {
		return nil, err
	}
	return t.base().RoundTrip(signed)
}

func (t *Transport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}

func cloneRequest(req *http.Request) *http.Request {
	cloned := new(http.Request)
	*cloned = *req
	cloned.Header = make(http.Header, len(req.Header))
	for key, values := range req.Header {
		cloned.Header[key] = append([]string(nil), values...)
	}
	if req.URL != nil {
		urlCopy := *req.URL
		cloned.URL = &urlCopy
	}
	return cloned
}

// AuthorizedTransport returns a Transport bound to the client's stored
// access token, for composing an authorized *http.Client. It fails until the
// client reaches HasAccessToken.
func (c *Client) AuthorizedTransport(base http.RoundTripper) (*Transport, error) {
	if c == nil {
		return nil, fmt.Errorf("client: client is nil")
	}
	if c.state != core.StateHasAccessToken {
		return nil, core.ErrNotAuthorized(c.state)
	}
	return &Transport{
		Base:   base,
		Source: StaticTokenSource(c.token),
		Signer: c.signer,
	}, nil
}

var _ http.RoundTripper = (*Transport)(nil)
