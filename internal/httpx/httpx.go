package httpx

import (
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// DefaultUserAgent is sent when a request carries none. The Yahoo chart API
// rejects requests without one.
const DefaultUserAgent = "marketfetch/1.0"

// Client is a small wrapper around http.Client with sane defaults.
// It satisfies the HTTPClient interface of every provider client.
type Client struct {
	HTTP      *http.Client
	UserAgent string
	Headers   map[string]string
	Logger    *zap.Logger
}

func New(timeout time.Duration, logger *zap.Logger) *Client {
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: 3 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
		MaxIdleConns:          20,
		MaxIdleConnsPerHost:   10,
		ForceAttemptHTTP2:     true,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   3 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: 10 * time.Second,
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		HTTP:      &http.Client{Timeout: timeout, Transport: transport},
		UserAgent: DefaultUserAgent,
		Logger:    logger,
	}
}

// Do sends req after filling in the default User-Agent and headers.
// Query strings are left out of the log line since they may carry API keys.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if c.UserAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	for k, v := range c.Headers {
		if req.Header.Get(k) == "" {
			req.Header.Set(k, v)
		}
	}
	start := time.Now()
	res, err := c.HTTP.Do(req)
	fields := []zap.Field{
		zap.String("method", req.Method),
		zap.String("host", req.URL.Host),
		zap.String("path", req.URL.Path),
		zap.Duration("elapsed", time.Since(start)),
	}
	if err != nil {
		c.Logger.Debug("http request failed", append(fields, zap.Error(err))...)
		return nil, err
	}
	c.Logger.Debug("http request", append(fields, zap.Int("status", res.StatusCode))...)
	return res, nil
}
