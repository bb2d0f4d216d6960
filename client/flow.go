package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/guoxy2016/authlib/core"
)

const (
	stepFetchRequestToken = "fetch_request_token"
	stepAuthorizationURL  = "authorization_url"
	stepParseCallback     = "parse_callback"
	stepFetchAccessToken  = "fetch_access_token"
	stepAuthorizedRequest = "authorized_request"
)

// FetchRequestToken obtains a temporary credential (RFC 5849 2.1) by POSTing
// a signed request to requestTokenURL (the configured endpoint when empty).
// The callback defaults to the configured callback URL, then to "oob". On
// success the stored token is replaced and the client enters
// HasTemporaryCredential.
func (c *Client) FetchRequestToken(ctx context.Context, requestTokenURL, callbackURL string) (core.Token, error) {
	startedAt := time.Now()
	token, err := c.fetchRequestToken(ctx, requestTokenURL, callbackURL)
	c.observe(ctx, startedAt, stepFetchRequestToken, err, map[string]any{
		"client_state": string(c.State()),
	})
	return token, err
}

func (c *Client) fetchRequestToken(ctx context.Context, requestTokenURL, callbackURL string) (core.Token, error) {
	if c == nil {
		return core.Token{}, fmt.Errorf("client: client is nil")
	}
	endpoint := c.resolveURL(requestTokenURL, c.config.Endpoint.RequestTokenURL)
	if endpoint == "" {
		return core.Token{}, core.MapError(fmt.Errorf("client: request token url is required"))
	}
	callback := strings.TrimSpace(callbackURL)
	if callback == "" {
		callback = strings.TrimSpace(c.config.CallbackURL)
	}

	req, err := http.NewRequest(http.MethodPost, endpoint, nil)
	if err != nil {
		return core.Token{}, core.MapError(err)
	}
	if err := c.signer.SignRequestToken(req, callback); err != nil {
		return core.Token{}, core.MapError(err)
	}

	body, err := c.send(ctx, stepFetchRequestToken, req)
	if err != nil {
		return core.Token{}, err
	}
	token, err := parseTokenBody(stepFetchRequestToken, body)
	if err != nil {
		return core.Token{}, err
	}
	if err := c.checkCallbackConfirmed(token); err != nil {
		return core.Token{}, err
	}

	c.token = token
	c.verifier = ""
	c.state = core.StateHasTemporaryCredential
	return token.Clone(), nil
}

// AuthorizationURL appends oauth_token to the authorization endpoint
// (RFC 5849 2.2). No network call and no state mutation. The token argument
// takes precedence over the stored temporary credential.
func (c *Client) AuthorizationURL(authorizeURL, tokenID string) (string, error) {
	if c == nil {
		return "", fmt.Errorf("client: client is nil")
	}
	endpoint := c.resolveURL(authorizeURL, c.config.Endpoint.AuthorizeURL)
	if endpoint == "" {
		return "", core.MapError(fmt.Errorf("client: authorize url is required"))
	}
	identifier := strings.TrimSpace(tokenID)
	if identifier == "" {
		identifier = strings.TrimSpace(c.token.ID)
	}
	if identifier == "" {
		return "", core.ErrNoTokenAvailable(stepAuthorizationURL)
	}

	parsed, err := url.Parse(endpoint)
	if err != nil {
		return "", core.MapError(err)
	}
	values := parsed.Query()
	values.Set(core.ParamToken, identifier)
	parsed.RawQuery = values.Encode()
	return parsed.String(), nil
}

// ParseAuthorizationCallback extracts oauth_token and oauth_verifier from an
// authorization redirect URL. The verifier is retained for the access-token
// exchange; an explicit verifier argument there still wins.
func (c *Client) ParseAuthorizationCallback(redirectURL string) (core.CallbackResult, error) {
	if c == nil {
		return core.CallbackResult{}, fmt.Errorf("client: client is nil")
	}
	parsed, err := url.Parse(strings.TrimSpace(redirectURL))
	if err != nil {
		return core.CallbackResult{}, core.MapError(err)
	}
	values := parsed.Query()
	token := strings.TrimSpace(values.Get(core.ParamToken))
	verifier := strings.TrimSpace(values.Get(core.ParamVerifier))

	missing := []string{}
	if token == "" {
		missing = append(missing, core.ParamToken)
	}
	if verifier == "" {
		missing = append(missing, core.ParamVerifier)
	}
	if len(missing) > 0 {
		return core.CallbackResult{}, core.ErrMalformedCallback(missing...)
	}

	c.verifier = verifier
	return core.CallbackResult{Token: token, Verifier: verifier}, nil
}

// FetchAccessToken exchanges the stored temporary credential and verifier
// for an access token (RFC 5849 2.3). The verifier argument takes precedence
// over one captured by ParseAuthorizationCallback. On success the stored
// token is replaced wholesale and the client enters HasAccessToken; fields
// beyond oauth_token/oauth_token_secret are preserved in Extra.
func (c *Client) FetchAccessToken(ctx context.Context, accessTokenURL, verifier string) (core.Token, error) {
	startedAt := time.Now()
	token, err := c.fetchAccessToken(ctx, accessTokenURL, verifier)
	c.observe(ctx, startedAt, stepFetchAccessToken, err, map[string]any{
		"client_state": string(c.State()),
	})
	return token, err
}

func (c *Client) fetchAccessToken(ctx context.Context, accessTokenURL, verifier string) (core.Token, error) {
	if c == nil {
		return core.Token{}, fmt.Errorf("client: client is nil")
	}
	endpoint := c.resolveURL(accessTokenURL, c.config.Endpoint.AccessTokenURL)
	if endpoint == "" {
		return core.Token{}, core.MapError(fmt.Errorf("client: access token url is required"))
	}
	if c.token.IsZero() {
		return core.Token{}, core.ErrNoTokenAvailable(stepFetchAccessToken)
	}
	resolved := strings.TrimSpace(verifier)
	if resolved == "" {
		resolved = c.verifier
	}
	if resolved == "" {
		return core.Token{}, core.ErrMissingVerifier()
	}

	req, err := http.NewRequest(http.MethodPost, endpoint, nil)
	if err != nil {
		return core.Token{}, core.MapError(err)
	}
	if err := c.signer.SignAccessToken(req, c.token, resolved); err != nil {
		return core.Token{}, core.MapError(err)
	}

	body, err := c.send(ctx, stepFetchAccessToken, req)
	if err != nil {
		return core.Token{}, err
	}
	token, err := parseTokenBody(stepFetchAccessToken, body)
	if err != nil {
		return core.Token{}, err
	}

	c.token = token
	c.verifier = ""
	c.state = core.StateHasAccessToken
	return token.Clone(), nil
}

// Sign signs a protected-resource request with the stored access token
// (RFC 5849 3.1). Calling before HasAccessToken fails; use SignWithToken for
// the explicit override path.
func (c *Client) Sign(req *http.Request) error {
	if c == nil {
		return fmt.Errorf("client: client is nil")
	}
	if c.state != core.StateHasAccessToken {
		return core.ErrNotAuthorized(c.state)
	}
	if err := c.signer.SignResource(req, c.token); err != nil {
		return core.MapError(err)
	}
	return nil
}

// SignWithToken signs a request with a caller-supplied token regardless of
// client state. This is the documented override for callers that knowingly
// sign with a temporary credential or a token held elsewhere.
func (c *Client) SignWithToken(req *http.Request, token core.Token) error {
	if c == nil {
		return fmt.Errorf("client: client is nil")
	}
	if err := c.signer.SignResource(req, token); err != nil {
		return core.MapError(err)
	}
	return nil
}

// send executes one signed token-exchange request. No retries: transport
// failures and non-2xx statuses surface directly to the caller.
func (c *Client) send(ctx context.Context, step string, req *http.Request) ([]byte, error) {
	transportReq, err := buildTransportRequest(req)
	if err != nil {
		return nil, core.MapError(err)
	}
	res, err := c.transport.Do(ctx, transportReq)
	if err != nil {
		return nil, core.MapError(err)
	}
	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return nil, core.ErrTokenExchangeFailed(step, res.StatusCode, res.Body)
	}
	return res.Body, nil
}

func (c *Client) checkCallbackConfirmed(token core.Token) error {
	confirmed, present := token.Extra[core.ParamCallbackConfirmed]
	if c.config.RequireCallbackConfirmed {
		if !present || !strings.EqualFold(strings.TrimSpace(confirmed), "true") {
			return core.ErrCallbackNotConfirmed(stepFetchRequestToken)
		}
		return nil
	}
	// Some providers omit the field entirely; only an explicit refusal is
	// treated as fatal by default.
	if present && strings.EqualFold(strings.TrimSpace(confirmed), "false") {
		return core.ErrCallbackNotConfirmed(stepFetchRequestToken)
	}
	return nil
}

func buildTransportRequest(req *http.Request) (core.TransportRequest, error) {
	headers := make(map[string]string, len(req.Header))
	for key, values := range req.Header {
		if len(values) == 0 {
			continue
		}
		headers[key] = values[0]
	}
	var body []byte
	if req.Body != nil {
		raw, err := io.ReadAll(req.Body)
		if err != nil {
			return core.TransportRequest{}, err
		}
		body = raw
	}
	return core.TransportRequest{
		Method:  req.Method,
		URL:     req.URL.String(),
		Headers: headers,
		Body:    body,
	}, nil
}

// parseTokenBody decodes an application/x-www-form-urlencoded token
// response. oauth_token and oauth_token_secret are required; every other
// field is preserved verbatim in Extra.
func parseTokenBody(step string, body []byte) (core.Token, error) {
	values, err := url.ParseQuery(strings.TrimSpace(string(body)))
	if err != nil {
		return core.Token{}, core.ErrMissingTemporaryCredential(step, core.ParamToken, core.ParamTokenSecret)
	}
	identifier := values.Get(core.ParamToken)
	secret := values.Get(core.ParamTokenSecret)

	missing := []string{}
	if strings.TrimSpace(identifier) == "" {
		missing = append(missing, core.ParamToken)
	}
	if secret == "" {
		missing = append(missing, core.ParamTokenSecret)
	}
	if len(missing) > 0 {
		return core.Token{}, core.ErrMissingTemporaryCredential(step, missing...)
	}

	token := core.NewToken(identifier, secret)
	for key, items := range values {
		if key == core.ParamToken || key == core.ParamTokenSecret {
			continue
		}
		if len(items) > 0 {
			token.Extra[key] = items[0]
		}
	}
	return token, nil
}
