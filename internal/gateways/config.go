package gateways

import (
	"net/url"
	"strings"

	"mpesa-gateway/internal/models"
	"mpesa-gateway/internal/shared/configs"
)

const (
	defaultEnvironment   = "sandbox"
	defaultOAuthEndpoint = "/oauth/v1/generate?grant_type=client_credentials"
)

// Overrides replace configured values for a single call. Empty fields are ignored.
type Overrides struct {
	Environment    string
	BaseURL        string
	ConsumerKey    string
	ConsumerSecret string
	OAuthEndpoint  string
	Endpoint       string
}

// callConfig is the effective configuration of one call.
type callConfig struct {
	environment    string
	baseURL        string
	consumerKey    string
	consumerSecret string
	oauthEndpoint  string
	endpoint       string
}

// resolveCallConfig layers overrides over the environment's profile over the shared settings.
func resolveCallConfig(cfg configs.MpesaConfig, op models.Operation, overrides *Overrides) callConfig {
	if overrides == nil {
		overrides = &Overrides{}
	}

	environment := strings.ToLower(firstNonEmpty(overrides.Environment, cfg.Environment, defaultEnvironment))
	key := op.EndpointKey()

	resolved := callConfig{
		environment:   environment,
		oauthEndpoint: firstNonEmpty(overrides.OAuthEndpoint, cfg.OAuthEndpoint, defaultOAuthEndpoint),
	}

	if configs.IsProduction(environment) {
		profile := cfg.Production
		resolved.baseURL = firstNonEmpty(overrides.BaseURL, profile.BaseURL)
		resolved.consumerKey = firstNonEmpty(overrides.ConsumerKey, profile.ConsumerKey)
		resolved.consumerSecret = firstNonEmpty(overrides.ConsumerSecret, profile.ConsumerSecret)
		resolved.endpoint = firstNonEmpty(overrides.Endpoint, profile.Endpoints.Get(key), cfg.Endpoints.Get(key))
		return resolved
	}

	profile := cfg.Sandbox
	resolved.baseURL = firstNonEmpty(overrides.BaseURL, profile.BaseURL, cfg.BaseURL)
	resolved.consumerKey = firstNonEmpty(overrides.ConsumerKey, profile.ConsumerKey, cfg.ConsumerKey)
	resolved.consumerSecret = firstNonEmpty(overrides.ConsumerSecret, profile.ConsumerSecret, cfg.ConsumerSecret)
	resolved.endpoint = firstNonEmpty(overrides.Endpoint, profile.Endpoints.Get(key), cfg.Endpoints.Get(key))
	return resolved
}

// resolveURL returns endpoint unchanged when it is absolute, otherwise resolves it against baseURL.
func resolveURL(baseURL, endpoint string, op models.Operation) (string, error) {
	if endpoint == "" {
		return "", errEndpointNotConfigured(op)
	}

	ref, err := url.Parse(endpoint)
	if err != nil {
		return "", errInvalidEndpoint(op, err)
	}
	if ref.Scheme != "" && ref.Host != "" {
		return ref.String(), nil
	}

	if baseURL == "" {
		return "", errBaseURLNotConfigured()
	}
	base, err := url.Parse(baseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return "", errInvalidBaseURL(err)
	}
	return base.ResolveReference(ref).String(), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
