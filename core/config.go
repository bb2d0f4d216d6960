package core

import (
	"fmt"
	"strings"
)

// Transmission selects where the signed protocol parameters are emitted.
type Transmission string

const (
	TransmissionHeader Transmission = "header"
	TransmissionQuery  Transmission = "query"
	TransmissionBody   Transmission = "body"
)

type EndpointConfig struct {
	RequestTokenURL string `koanf:"request_token_url" mapstructure:"request_token_url"`
	AuthorizeURL    string `koanf:"authorize_url" mapstructure:"authorize_url"`
	AccessTokenURL  string `koanf:"access_token_url" mapstructure:"access_token_url"`
}

type Config struct {
	ConsumerKey     string         `koanf:"consumer_key" mapstructure:"consumer_key"`
	ConsumerSecret  string         `koanf:"consumer_secret" mapstructure:"consumer_secret"`
	SignatureMethod string         `koanf:"signature_method" mapstructure:"signature_method"`
	CallbackURL     string         `koanf:"callback_url" mapstructure:"callback_url"`
	Realm           string         `koanf:"realm" mapstructure:"realm"`
	Transmission    string         `koanf:"transmission" mapstructure:"transmission"`
	Endpoint        EndpointConfig `koanf:"endpoint" mapstructure:"endpoint"`

	// RequireCallbackConfirmed hardens temporary-credential responses: the
	// server must answer oauth_callback_confirmed=true. When false only an
	// explicit "false" is rejected, since some providers omit the field.
	RequireCallbackConfirmed bool `koanf:"require_callback_confirmed" mapstructure:"require_callback_confirmed"`
}

func DefaultConfig() Config {
	return Config{
		SignatureMethod: string(SignatureHMACSHA1),
		Transmission:    string(TransmissionHeader),
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.ConsumerKey) == "" {
		return fmt.Errorf("core: consumer_key is required")
	}
	if _, err := ParseSignatureMethod(c.SignatureMethod); err != nil {
		return err
	}
	switch Transmission(strings.ToLower(strings.TrimSpace(c.Transmission))) {
	case "", TransmissionHeader, TransmissionQuery, TransmissionBody:
	default:
		return fmt.Errorf("core: transmission %q is invalid", c.Transmission)
	}
	return nil
}

func (c Config) Credentials() Credentials {
	return NewCredentials(c.ConsumerKey, c.ConsumerSecret)
}

func (c Config) ProviderEndpoint() Endpoint {
	return Endpoint{
		RequestTokenURL: strings.TrimSpace(c.Endpoint.RequestTokenURL),
		AuthorizeURL:    strings.TrimSpace(c.Endpoint.AuthorizeURL),
		AccessTokenURL:  strings.TrimSpace(c.Endpoint.AccessTokenURL),
	}
}

func (c Config) ResolvedTransmission() Transmission {
	normalized := Transmission(strings.ToLower(strings.TrimSpace(c.Transmission)))
	if normalized == "" {
		return TransmissionHeader
	}
	return normalized
}
