package registry

import (
	"fmt"
	"strings"

	"marketfetch/internal/provider"
	"marketfetch/internal/provider/alphavantage"
	"marketfetch/internal/provider/yahoo"
)

// HTTPClient is the transport shared by every built provider.
type HTTPClient interface {
	alphavantage.HTTPClient
	yahoo.HTTPClient
}

// Registry builds provider backends over one shared HTTP client.
type Registry struct {
	httpClient HTTPClient
	endpoints  map[provider.ID]string
}

// Option configures a Registry.
type Option func(*Registry)

// WithEndpoint overrides the base address of one provider, e.g. for a proxy
// or a test server. An empty url keeps the default.
func WithEndpoint(id provider.ID, url string) Option {
	return func(r *Registry) {
		if url = strings.TrimSpace(url); url != "" {
			r.endpoints[id] = url
		}
	}
}

func New(httpClient HTTPClient, opts ...Option) *Registry {
	r := &Registry{httpClient: httpClient, endpoints: map[provider.ID]string{}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Endpoint returns the override for id or its fixed default.
func (r *Registry) Endpoint(id provider.ID) (string, error) {
	def, err := provider.ResolveEndpoint(id)
	if err != nil {
		return "", err
	}
	if u, ok := r.endpoints[id]; ok {
		return u, nil
	}
	return def, nil
}

// Build returns the backend for id authenticated with credential.
func (r *Registry) Build(id provider.ID, credential string) (provider.Provider, error) {
	endpoint, err := r.Endpoint(id)
	if err != nil {
		return nil, err
	}
	switch id {
	case provider.AlphaVantage:
		if strings.TrimSpace(credential) == "" {
			return nil, fmt.Errorf("%s: %w", id.DisplayName(), provider.ErrMissingCredential)
		}
		client, err := alphavantage.NewClient(credential,
			alphavantage.WithBaseURL(endpoint),
			alphavantage.WithHTTPClient(r.httpClient),
		)
		if err != nil {
			return nil, err
		}
		return alphavantage.NewAdapter(client), nil

	case provider.YahooFinance:
		client := yahoo.NewClient(
			yahoo.WithBaseURL(endpoint),
			yahoo.WithHTTPClient(r.httpClient),
		)
		return yahoo.NewAdapter(client), nil
	}
	return nil, &provider.UnsupportedProviderError{Name: string(id)}
}
