package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-config/cfgx"
	opts "github.com/goliatone/go-options"
)

type ConfigProvider interface {
	Load(ctx context.Context, defaults Config) (Config, error)
}

type RawConfigLoader interface {
	LoadRaw(ctx context.Context) (map[string]any, error)
}

type OptionsResolver interface {
	Resolve(defaults Config, loaded Config, runtime Config) (Config, error)
}

type staticRawConfigLoader struct {
	Values map[string]any
}

func (l staticRawConfigLoader) LoadRaw(context.Context) (map[string]any, error) {
	if len(l.Values) == 0 {
		return map[string]any{}, nil
	}
	out := make(map[string]any, len(l.Values))
	for key, value := range l.Values {
		out[key] = value
	}
	return out, nil
}

type CfgxConfigProvider struct {
	Loader RawConfigLoader
}

func NewCfgxConfigProvider(loader RawConfigLoader) *CfgxConfigProvider {
	return &CfgxConfigProvider{Loader: loader}
}

func (p *CfgxConfigProvider) Load(ctx context.Context, defaults Config) (Config, error) {
	if p == nil {
		return defaults, nil
	}
	loader := p.Loader
	if loader == nil {
		loader = staticRawConfigLoader{}
	}
	raw, err := loader.LoadRaw(ctx)
	if err != nil {
		return Config{}, err
	}
	// Validation waits until the runtime layer has merged in; loaded
	// configuration alone may legitimately omit the consumer key.
	cfg, err := cfgx.Build[Config](raw, cfgx.WithDefaults(defaults))
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

type GoOptionsResolver struct{}

func (GoOptionsResolver) Resolve(defaults Config, loaded Config, runtime Config) (Config, error) {
	defaultLayer := configToLayerMap(defaults, true)
	loadedLayer := configToLayerMap(loaded, false)
	runtimeLayer := configToLayerMap(runtime, false)

	stack, err := opts.NewStack(
		opts.NewLayer(
			opts.NewScope("defaults", 0),
			defaultLayer,
			opts.WithSnapshotID[map[string]any]("defaults"),
		),
		opts.NewLayer(
			opts.NewScope("config", 10),
			loadedLayer,
			opts.WithSnapshotID[map[string]any]("config"),
		),
		opts.NewLayer(
			opts.NewScope("runtime", 20),
			runtimeLayer,
			opts.WithSnapshotID[map[string]any]("runtime"),
		),
	)
	if err != nil {
		return Config{}, fmt.Errorf("core: options stack build failed: %w", err)
	}
	merged, err := stack.Merge()
	if err != nil {
		return Config{}, fmt.Errorf("core: options merge failed: %w", err)
	}
	resolved, err := cfgx.Build[Config](merged.Value,
		cfgx.WithDefaults(defaults),
		cfgx.WithValidator[Config]((*Config).Validate),
	)
	if err != nil {
		return Config{}, err
	}
	return resolved, nil
}

func configToLayerMap(cfg Config, includeZero bool) map[string]any {
	layer := map[string]any{}
	if includeZero || strings.TrimSpace(cfg.ConsumerKey) != "" {
		layer["consumer_key"] = cfg.ConsumerKey
	}
	if includeZero || cfg.ConsumerSecret != "" {
		layer["consumer_secret"] = cfg.ConsumerSecret
	}
	if includeZero || strings.TrimSpace(cfg.SignatureMethod) != "" {
		layer["signature_method"] = cfg.SignatureMethod
	}
	if includeZero || strings.TrimSpace(cfg.CallbackURL) != "" {
		layer["callback_url"] = cfg.CallbackURL
	}
	if includeZero || strings.TrimSpace(cfg.Realm) != "" {
		layer["realm"] = cfg.Realm
	}
	if includeZero || strings.TrimSpace(cfg.Transmission) != "" {
		layer["transmission"] = cfg.Transmission
	}
	if includeZero || cfg.RequireCallbackConfirmed {
		layer["require_callback_confirmed"] = cfg.RequireCallbackConfirmed
	}

	endpoint := map[string]any{}
	if includeZero || strings.TrimSpace(cfg.Endpoint.RequestTokenURL) != "" {
		endpoint["request_token_url"] = cfg.Endpoint.RequestTokenURL
	}
	if includeZero || strings.TrimSpace(cfg.Endpoint.AuthorizeURL) != "" {
		endpoint["authorize_url"] = cfg.Endpoint.AuthorizeURL
	}
	if includeZero || strings.TrimSpace(cfg.Endpoint.AccessTokenURL) != "" {
		endpoint["access_token_url"] = cfg.Endpoint.AccessTokenURL
	}
	if len(endpoint) > 0 {
		layer["endpoint"] = endpoint
	}
	return layer
}
