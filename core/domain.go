package core

import (
	"fmt"
	"strings"
)

// Credentials is an OAuth1 consumer's (client's) identifier and shared
// secret. Credentials are supplied once at configuration time and treated as
// immutable for the lifetime of a client.
type Credentials struct {
	ConsumerKey    string
	ConsumerSecret string
}

func NewCredentials(consumerKey, consumerSecret string) Credentials {
	return Credentials{
		ConsumerKey:    strings.TrimSpace(consumerKey),
		ConsumerSecret: consumerSecret,
	}
}

func (c Credentials) Validate() error {
	if strings.TrimSpace(c.ConsumerKey) == "" {
		return fmt.Errorf("core: consumer key is required")
	}
	return nil
}

// Token is a temporary credential (step 1) or an access token (step 3).
// Extra preserves provider-specific response fields such as screen_name or
// user_id verbatim.
type Token struct {
	ID     string
	Secret string
	Extra  map[string]string
}

func NewToken(id, secret string) Token {
	return Token{
		ID:     strings.TrimSpace(id),
		Secret: secret,
		Extra:  map[string]string{},
	}
}

func (t Token) IsZero() bool {
	return strings.TrimSpace(t.ID) == "" && t.Secret == ""
}

// Clone returns a copy with its own Extra map so callers can hold a Token
// across a wholesale replacement inside the client.
func (t Token) Clone() Token {
	copied := t
	copied.Extra = make(map[string]string, len(t.Extra))
	for key, value := range t.Extra {
		copied.Extra[key] = value
	}
	return copied
}

// SignatureMethod selects one of the three signature computations defined by
// RFC 5849. The set is closed by the protocol; anything else is rejected with
// AUTHLIB_UNSUPPORTED_SIGNATURE_METHOD.
type SignatureMethod string

const (
	SignatureHMACSHA1  SignatureMethod = "HMAC-SHA1"
	SignaturePlaintext SignatureMethod = "PLAINTEXT"
	SignatureRSASHA1   SignatureMethod = "RSA-SHA1"
)

func ParseSignatureMethod(value string) (SignatureMethod, error) {
	normalized := SignatureMethod(strings.ToUpper(strings.TrimSpace(value)))
	switch normalized {
	case "":
		return SignatureHMACSHA1, nil
	case SignatureHMACSHA1, SignaturePlaintext, SignatureRSASHA1:
		return normalized, nil
	default:
		return "", ErrUnsupportedSignatureMethod(value)
	}
}

// ClientState is the position of a client in the three-legged flow.
type ClientState string

const (
	StateUnauthenticated        ClientState = "unauthenticated"
	StateHasTemporaryCredential ClientState = "has_temporary_credential"
	StateHasAccessToken         ClientState = "has_access_token"
)

// CallbackResult carries the oauth_token and oauth_verifier parsed from an
// authorization redirect. It is transient: consumed immediately by the
// access-token exchange.
type CallbackResult struct {
	Token    string
	Verifier string
}

// Endpoint groups an OAuth1 provider's three protocol URLs.
type Endpoint struct {
	RequestTokenURL string
	AuthorizeURL    string
	AccessTokenURL  string
}

func (e Endpoint) Validate() error {
	if strings.TrimSpace(e.RequestTokenURL) == "" {
		return fmt.Errorf("core: request token url is required")
	}
	if strings.TrimSpace(e.AccessTokenURL) == "" {
		return fmt.Errorf("core: access token url is required")
	}
	return nil
}

// OAuth1 protocol parameter names per RFC 5849.
const (
	ParamConsumerKey       = "oauth_consumer_key"
	ParamNonce             = "oauth_nonce"
	ParamSignature         = "oauth_signature"
	ParamSignatureMethod   = "oauth_signature_method"
	ParamTimestamp         = "oauth_timestamp"
	ParamToken             = "oauth_token"
	ParamTokenSecret       = "oauth_token_secret"
	ParamVersion           = "oauth_version"
	ParamCallback          = "oauth_callback"
	ParamCallbackConfirmed = "oauth_callback_confirmed"
	ParamVerifier          = "oauth_verifier"
	ParamRealm             = "realm"

	OAuthVersion1 = "1.0"

	// OutOfBand is the oauth_callback value for flows without a redirect
	// endpoint.
	OutOfBand = "oob"
)
