// Package authlib implements an OAuth 1.0a consumer: request signing per
// RFC 5849 and the three-legged temporary-credential flow. The root package
// re-exports the public surface of core, signer, and client so most callers
// need a single import.
package authlib

import (
	"github.com/guoxy2016/authlib/client"
	"github.com/guoxy2016/authlib/core"
	"github.com/guoxy2016/authlib/signer"
)

type Config = core.Config

type EndpointConfig = core.EndpointConfig

type Endpoint = core.Endpoint

type Credentials = core.Credentials

type Token = core.Token

type CallbackResult = core.CallbackResult

type SignatureMethod = core.SignatureMethod

type ClientState = core.ClientState

type Transmission = core.Transmission

type TransportAdapter = core.TransportAdapter

type TransportRequest = core.TransportRequest

type TransportResponse = core.TransportResponse

type Client = client.Client

type Option = client.Option

type Transport = client.Transport

type TokenSource = client.TokenSource

type RequestSigner = signer.RequestSigner

const (
	SignatureHMACSHA1  = core.SignatureHMACSHA1
	SignaturePlaintext = core.SignaturePlaintext
	SignatureRSASHA1   = core.SignatureRSASHA1

	StateUnauthenticated        = core.StateUnauthenticated
	StateHasTemporaryCredential = core.StateHasTemporaryCredential
	StateHasAccessToken         = core.StateHasAccessToken

	TransmissionHeader = core.TransmissionHeader
	TransmissionQuery  = core.TransmissionQuery
	TransmissionBody   = core.TransmissionBody

	OutOfBand = core.OutOfBand
)

var (
	WithLogger                  = client.WithLogger
	WithLoggerProvider          = client.WithLoggerProvider
	WithMetricsRecorder         = client.WithMetricsRecorder
	WithTransportAdapter        = client.WithTransportAdapter
	WithConfigProvider          = client.WithConfigProvider
	WithOptionsResolver         = client.WithOptionsResolver
	WithNoncer                  = client.WithNoncer
	WithClock                   = client.WithClock
	WithSignatureMethodOverride = client.WithSignatureMethodOverride
	WithTemporaryCredential     = client.WithTemporaryCredential
	WithAccessToken             = client.WithAccessToken
)

func DefaultConfig() Config {
	return core.DefaultConfig()
}

func NewClient(cfg Config, opts ...Option) (*Client, error) {
	return client.NewClient(cfg, opts...)
}

func NewToken(id, secret string) Token {
	return core.NewToken(id, secret)
}

func StaticTokenSource(token Token) TokenSource {
	return client.StaticTokenSource(token)
}

// ParseSignatureMethod normalizes a signature method name, defaulting the
// empty string to HMAC-SHA1.
func ParseSignatureMethod(value string) (SignatureMethod, error) {
	return core.ParseSignatureMethod(value)
}
