package yahoo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrSymbolNotFound is returned for symbols the chart API does not know.
var ErrSymbolNotFound = errors.New("symbol not found")

const defaultBaseURL = "https://query1.finance.yahoo.com"

// maxBodySize caps how much of a chart response is decoded.
const maxBodySize = 16 << 20

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=yahoo_test -destination=mock_http_client_test.go -source=client.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// APIError is a non-2xx answer from the chart API.
type APIError struct {
	StatusCode  int
	Code        string
	Description string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("yahoo chart status %d: %s: %s", e.StatusCode, e.Code, e.Description)
	}
	return fmt.Sprintf("yahoo chart status %d", e.StatusCode)
}

// Client is a client for the keyless Yahoo Finance chart API.
type Client struct {
	baseURL    string
	httpClient HTTPClient
	header     http.Header
}

// ClientOption is a configuration option for the chart client.
type ClientOption func(*Client)

// WithBaseURL sets the base URL for the API.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
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

func NewClient(options ...ClientOption) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: http.DefaultClient,
		header:     http.Header{},
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// ChartParams selects the window and granularity of a chart request.
// Range takes precedence over Period1/Period2 when set.
type ChartParams struct {
	Range    string
	Interval string
	Period1  time.Time
	Period2  time.Time
	// Events is passed through, e.g. "div".
	Events string
}

func (p ChartParams) values() url.Values {
	q := url.Values{}
	if p.Range != "" {
		q.Set("range", p.Range)
	} else {
		q.Set("period1", strconv.FormatInt(p.Period1.Unix(), 10))
		q.Set("period2", strconv.FormatInt(p.Period2.Unix(), 10))
	}
	interval := p.Interval
	if interval == "" {
		interval = "1d"
	}
	q.Set("interval", interval)
	if p.Events != "" {
		q.Set("events", p.Events)
	}
	return q
}

// Meta is the per-symbol header of a chart.
type Meta struct {
	Currency             string   `json:"currency"`
	Symbol               string   `json:"symbol"`
	ExchangeName         string   `json:"exchangeName"`
	RegularMarketPrice   *float64 `json:"regularMarketPrice"`
	ChartPreviousClose   *float64 `json:"chartPreviousClose"`
	RegularMarketVolume  *int64   `json:"regularMarketVolume"`
	RegularMarketTime    int64    `json:"regularMarketTime"`
	GMTOffset            int64    `json:"gmtoffset"`
	ExchangeTimezoneName string   `json:"exchangeTimezoneName"`
}

// DividendEvent is one entry of events.dividends.
type DividendEvent struct {
	Amount float64 `json:"amount"`
	Date   int64   `json:"date"`
}

// Indicators hold the OHLCV arrays aligned with Chart.Timestamps.
// Entries are nil for sessions without trades.
type Indicators struct {
	Open   []*float64 `json:"open"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Close  []*float64 `json:"close"`
	Volume []*int64   `json:"volume"`
}

// Chart is a single chart result.
type Chart struct {
	Meta       Meta
	Timestamps []int64
	Quote      Indicators
	Dividends  map[string]DividendEvent
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta      Meta    `json:"meta"`
			Timestamp []int64 `json:"timestamp"`
			Events    struct {
				Dividends map[string]DividendEvent `json:"dividends"`
			} `json:"events"`
			Indicators struct {
				Quote []Indicators `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// GetChart retrieves the chart for symbol.
func (c *Client) GetChart(ctx context.Context, symbol string, p ChartParams) (*Chart, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?%s", c.baseURL, url.PathEscape(symbol), p.values().Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header = c.header.Clone()

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("performing request: %w", err)
	}
	defer res.Body.Close()

	var body chartResponse
	decodeErr := json.NewDecoder(io.LimitReader(res.Body, maxBodySize)).Decode(&body)

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: res.StatusCode}
		if decodeErr == nil && body.Chart.Error != nil {
			apiErr.Code = body.Chart.Error.Code
			apiErr.Description = body.Chart.Error.Description
		}
		if res.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%s: %w: %w", symbol, ErrSymbolNotFound, apiErr)
		}
		return nil, apiErr
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decoding chart response: %w", decodeErr)
	}
	if body.Chart.Error != nil {
		return nil, &APIError{StatusCode: res.StatusCode, Code: body.Chart.Error.Code, Description: body.Chart.Error.Description}
	}
	if len(body.Chart.Result) == 0 {
		return nil, fmt.Errorf("%s: %w", symbol, ErrSymbolNotFound)
	}

	r := body.Chart.Result[0]
	chart := &Chart{
		Meta:       r.Meta,
		Timestamps: r.Timestamp,
		Dividends:  r.Events.Dividends,
	}
	if len(r.Indicators.Quote) > 0 {
		chart.Quote = r.Indicators.Quote[0]
	}
	return chart, nil
}
