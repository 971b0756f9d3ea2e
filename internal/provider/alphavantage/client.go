package alphavantage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// ErrSymbolNotFound is returned when the API answers with an empty document
// for the requested symbol.
var ErrSymbolNotFound = errors.New("symbol not found")

// maxBodySize caps how much of a response is read. TIME_SERIES_DAILY with
// outputsize=full is the largest payload, a few MB for old listings.
const maxBodySize = 32 << 20

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=alphavantage_test -destination=mock_http_client_test.go -source=client.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// APIError is a failure reported by Alpha Vantage, either as an HTTP status or
// as an in-band error document on a 200 response.
type APIError struct {
	StatusCode int
	// Kind is the document key that carried the error ("Error Message",
	// "Note", "Information") or empty for HTTP status failures.
	Kind    string
	Message string
}

func (e *APIError) Error() string {
	if e.Kind != "" {
		return fmt.Sprintf("alpha vantage %s: %s", strings.ToLower(e.Kind), e.Message)
	}
	return fmt.Sprintf("alpha vantage status %d: %s", e.StatusCode, e.Message)
}

// RateLimited reports whether the API refused the call for quota reasons.
func (e *APIError) RateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.Kind == "Note" || e.Kind == "Information"
}

// Client is a client for the Alpha Vantage query API.
type Client struct {
	// baseURL is the query endpoint.
	baseURL string
	// httpClient performs the requests.
	httpClient HTTPClient
	// header contains additional headers to be sent with each request.
	header http.Header
	// query carries the API key.
	query url.Values
}

// ClientOption is a configuration option for the Alpha Vantage client.
type ClientOption func(*Client)

// WithBaseURL sets the query endpoint.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets the HTTP client for the API.
func WithHTTPClient(httpClient HTTPClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithHeader sets additional headers to be sent with each request.
func WithHeader(header http.Header) ClientOption {
	return func(c *Client) {
		for key, values := range header {
			for _, value := range values {
				c.header.Add(key, value)
			}
		}
	}
}

// NewClient creates a new Alpha Vantage client authenticated with key.
func NewClient(key string, options ...ClientOption) (*Client, error) {
	if strings.TrimSpace(key) == "" {
		return nil, errors.New("alpha vantage: api key is required")
	}
	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: http.DefaultClient,
		header:     http.Header{},
		query:      url.Values{},
	}
	// https://www.alphavantage.co/documentation/
	c.query.Set("apikey", key)
	for _, option := range options {
		option(c)
	}
	return c, nil
}

const defaultBaseURL = "https://www.alphavantage.co/query"

// get calls one API function and returns the raw JSON document after checking
// it for transport and in-band errors.
func (c *Client) get(ctx context.Context, function string, params url.Values) ([]byte, error) {
	query := url.Values{}
	for k, vs := range c.query {
		query[k] = append([]string(nil), vs...)
	}
	query.Set("function", function)
	for k, vs := range params {
		for _, v := range vs {
			query.Add(k, v)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header = c.header.Clone()

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("performing request: %w", err)
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
		break

	case http.StatusForbidden, http.StatusUnauthorized:
		return nil, &APIError{StatusCode: res.StatusCode, Message: "unauthorized"}

	case http.StatusTooManyRequests:
		return nil, &APIError{StatusCode: res.StatusCode, Message: "rate limited"}

	default:
		b, _ := io.ReadAll(io.LimitReader(res.Body, 2<<10))
		return nil, &APIError{StatusCode: res.StatusCode, Message: strings.TrimSpace(string(b))}
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("reading %s response: %w", function, err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("decoding %s response: %w", function, err)
	}
	for _, kind := range []string{"Error Message", "Note", "Information"} {
		raw, ok := doc[kind]
		if !ok {
			continue
		}
		var msg string
		if err := json.Unmarshal(raw, &msg); err != nil {
			msg = string(raw)
		}
		return nil, &APIError{StatusCode: res.StatusCode, Kind: kind, Message: msg}
	}
	return body, nil
}
