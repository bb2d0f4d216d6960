package signer

import (
	"bytes"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/guoxy2016/authlib/core"
)

const formContentType = "application/x-www-form-urlencoded"

// CollectParameters gathers request parameters from the URL query, the form
// body (only when the content type is application/x-www-form-urlencoded),
// and the OAuth protocol parameters, per RFC 5849 3.4.1.3. The protocol
// parameter set must exclude oauth_signature; the realm parameter is dropped
// here because it never participates in the base string (RFC 5849
// 3.4.1.3.1). A consumed body is restored on the request.
func CollectParameters(req *http.Request, oauthParams map[string]string) ([]Pair, error) {
	pairs := []Pair{}
	for key, values := range req.URL.Query() {
		for _, value := range values {
			pairs = append(pairs, Pair{Key: key, Value: value})
		}
	}
	if req.Body != nil && isFormContentType(req.Header.Get("Content-Type")) {
		raw, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}
		values, err := url.ParseQuery(string(raw))
		if err != nil {
			return nil, err
		}
		for key, items := range values {
			for _, item := range items {
				pairs = append(pairs, Pair{Key: key, Value: item})
			}
		}
		req.Body = io.NopCloser(bytes.NewReader(raw))
	}
	for key, value := range oauthParams {
		if key == core.ParamRealm {
			continue
		}
		pairs = append(pairs, Pair{Key: key, Value: value})
	}
	return pairs, nil
}

func isFormContentType(value string) bool {
	if strings.TrimSpace(value) == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(value)
	if err != nil {
		return strings.HasPrefix(strings.ToLower(strings.TrimSpace(value)), formContentType)
	}
	return mediaType == formContentType
}

// BaseURI returns the base string URI of a request according to RFC 5849
// 3.4.1.2: lowercased scheme and host, default ports dropped, path without
// query or fragment.
func BaseURI(req *http.Request) string {
	scheme := strings.ToLower(req.URL.Scheme)
	host := strings.ToLower(req.URL.Host)
	if hostPort := strings.Split(host, ":"); len(hostPort) == 2 {
		if (scheme == "http" && hostPort[1] == "80") || (scheme == "https" && hostPort[1] == "443") {
			host = hostPort[0]
		}
	}
	path := req.URL.EscapedPath()
	return scheme + "://" + host + path
}

// SignatureBase combines the uppercase request method, the percent-encoded
// base URI, and the percent-encoded normalized parameter string into the
// RFC 5849 3.4.1.1 signature base string.
func SignatureBase(req *http.Request, pairs []Pair) string {
	method := strings.ToUpper(req.Method)
	parts := []string{method, PercentEncode(BaseURI(req)), PercentEncode(NormalizedParameterString(pairs))}
	return strings.Join(parts, "&")
}
