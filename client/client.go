package client

import (
	"context"
	"strings"

	glog "github.com/goliatone/go-logger/glog"
	"github.com/google/uuid"

	"github.com/guoxy2016/authlib/core"
	"github.com/guoxy2016/authlib/signer"
	"github.com/guoxy2016/authlib/transport"
)

// Client is the three-legged flow controller. It holds the consumer
// credentials and the current token, signs the protocol requests, and parses
// provider responses back into token state.
type Client struct {
	config    core.Config
	signer    *signer.RequestSigner
	transport core.TransportAdapter
	logger    core.Logger
	metrics   core.MetricsRecorder
	flowID    string

	state    core.ClientState
	token    core.Token
	verifier string
}

type clientBuilder struct {
	logger          core.Logger
	loggerProvider  core.LoggerProvider
	metricsRecorder core.MetricsRecorder
	transport       core.TransportAdapter
	configProvider  core.ConfigProvider
	optionsResolver core.OptionsResolver
	noncer          core.Noncer
	clock           core.Clock
	method          signer.Method
	restoreToken    *core.Token
	restoreState    core.ClientState
}

type Option func(*clientBuilder)

func WithLogger(logger core.Logger) Option {
	return func(b *clientBuilder) {
		b.logger = logger
	}
}

func WithLoggerProvider(provider core.LoggerProvider) Option {
	return func(b *clientBuilder) {
		b.loggerProvider = provider
	}
}

func WithMetricsRecorder(recorder core.MetricsRecorder) Option {
	return func(b *clientBuilder) {
		b.metricsRecorder = recorder
	}
}

func WithTransportAdapter(adapter core.TransportAdapter) Option {
	return func(b *clientBuilder) {
		b.transport = adapter
	}
}

func WithConfigProvider(provider core.ConfigProvider) Option {
	return func(b *clientBuilder) {
		b.configProvider = provider
	}
}

func WithOptionsResolver(resolver core.OptionsResolver) Option {
	return func(b *clientBuilder) {
		b.optionsResolver = resolver
	}
}

func WithNoncer(noncer core.Noncer) Option {
	return func(b *clientBuilder) {
		b.noncer = noncer
	}
}

func WithClock(clock core.Clock) Option {
	return func(b *clientBuilder) {
		b.clock = clock
	}
}

// WithSignatureMethodOverride installs a prebuilt signature method, for
// callers that hold already-parsed RSA key material.
func WithSignatureMethodOverride(method signer.Method) Option {
	return func(b *clientBuilder) {
		b.method = method
	}
}

// WithTemporaryCredential restores a previously obtained temporary
// credential, re-entering the flow before the access-token exchange.
func WithTemporaryCredential(token core.Token) Option {
	return func(b *clientBuilder) {
		restored := token.Clone()
		b.restoreToken = &restored
		b.restoreState = core.StateHasTemporaryCredential
	}
}

// WithAccessToken restores a previously obtained access token, re-entering
// the flow ready to sign protected-resource requests without any network
// call.
func WithAccessToken(token core.Token) Option {
	return func(b *clientBuilder) {
		restored := token.Clone()
		b.restoreToken = &restored
		b.restoreState = core.StateHasAccessToken
	}
}

// NewClient builds a Client from the runtime config merged over loaded and
// default configuration layers.
func NewClient(cfg core.Config, opts ...Option) (*Client, error) {
	builder := clientBuilder{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&builder)
	}

	provider, logger := glog.Resolve("authlib", builder.loggerProvider, builder.logger)
	logger = glog.Ensure(logger)
	if provider != nil {
		if named := provider.GetLogger("authlib"); named != nil {
			logger = glog.Ensure(named)
		}
	}

	if builder.configProvider == nil {
		builder.configProvider = core.NewCfgxConfigProvider(nil)
	}
	if builder.optionsResolver == nil {
		builder.optionsResolver = core.GoOptionsResolver{}
	}
	if builder.metricsRecorder == nil {
		builder.metricsRecorder = core.NopMetricsRecorder{}
	}
	if builder.transport == nil {
		builder.transport = transport.NewRESTAdapter(nil)
	}

	defaults := core.DefaultConfig()
	loaded, err := builder.configProvider.Load(context.Background(), defaults)
	if err != nil {
		return nil, core.MapError(err)
	}
	finalConfig, err := builder.optionsResolver.Resolve(defaults, loaded, cfg)
	if err != nil {
		return nil, core.MapError(err)
	}

	method, err := core.ParseSignatureMethod(finalConfig.SignatureMethod)
	if err != nil {
		return nil, core.MapError(err)
	}
	requestSigner, err := signer.NewRequestSigner(signer.RequestSignerConfig{
		Credentials:     finalConfig.Credentials(),
		SignatureMethod: method,
		Method:          builder.method,
		Realm:           finalConfig.Realm,
		Transmission:    finalConfig.ResolvedTransmission(),
		Noncer:          builder.noncer,
		Clock:           builder.clock,
	})
	if err != nil {
		return nil, core.MapError(err)
	}

	c := &Client{
		config:    finalConfig,
		signer:    requestSigner,
		transport: builder.transport,
		logger:    logger,
		metrics:   builder.metricsRecorder,
		flowID:    uuid.NewString(),
		state:     core.StateUnauthenticated,
	}
	if builder.restoreToken != nil {
		c.token = *builder.restoreToken
		c.state = builder.restoreState
	}
	return c, nil
}

// State returns the client's position in the three-legged flow.
func (c *Client) State() core.ClientState {
	if c == nil {
		return core.StateUnauthenticated
	}
	return c.state
}

// Token returns a copy of the current token. Callers own persistence of the
// returned value across process boundaries.
func (c *Client) Token() core.Token {
	if c == nil {
		return core.Token{}
	}
	return c.token.Clone()
}

// SetTemporaryCredential injects a temporary credential obtained out of
// band, entering the HasTemporaryCredential state.
func (c *Client) SetTemporaryCredential(token core.Token) {
	c.token = token.Clone()
	c.verifier = ""
	c.state = core.StateHasTemporaryCredential
}

// SetAccessToken injects an access token obtained out of band, entering the
// HasAccessToken state.
func (c *Client) SetAccessToken(token core.Token) {
	c.token = token.Clone()
	c.verifier = ""
	c.state = core.StateHasAccessToken
}

func (c *Client) resolveURL(explicit, configured string) string {
	if url := strings.TrimSpace(explicit); url != "" {
		return url
	}
	return strings.TrimSpace(configured)
}
