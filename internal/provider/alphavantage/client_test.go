package alphavantage_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"marketfetch/internal/provider/alphavantage"
)

// jsonResponse builds a response whose body is v encoded as JSON.
func jsonResponse(t *testing.T, status int, v any) *http.Response {
	t.Helper()
	buffer := &bytes.Buffer{}
	require.NoError(t, json.NewEncoder(buffer).Encode(v))
	return &http.Response{StatusCode: status, Body: io.NopCloser(buffer)}
}

func TestNewClient(t *testing.T) {
	t.Parallel()

	// Assert: a valid key should return a client.
	client, err := alphavantage.NewClient("test")
	require.NoErrorf(t, err, "unexpected error: %v", err)
	require.NotNilf(t, client, "unexpected nil client")

	// Assert: an empty key is rejected.
	client, err = alphavantage.NewClient("  ")
	require.Error(t, err)
	require.Nil(t, client)
}

func TestWithBaseURL(t *testing.T) {
	t.Parallel()

	// Arrange: create a mock controller
	ctrl := gomock.NewController(t)

	// Arrange: create a mock http client
	httpClient := NewMockHTTPClient(ctrl)

	// Arrange: define a base url
	baseURL := "http://localhost:8080/query"

	// Assert: stub the Do method
	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Truef(t, strings.HasPrefix(req.URL.String(), baseURL), "expected url to start with base url, received: %s", req.URL.String())
			return jsonResponse(t, http.StatusOK, map[string]any{"bestMatches": []any{}}), nil
		}).
		Times(1)

	// Arrange: create a new client.
	client, err := alphavantage.NewClient("test", alphavantage.WithHTTPClient(httpClient), alphavantage.WithBaseURL(baseURL))
	require.NoError(t, err)

	// Act: call SearchSymbol with the overridden base URL.
	_, err = client.SearchSymbol(t.Context(), "IBM")
	require.NoError(t, err)
}

func TestWithHeader(t *testing.T) {
	t.Parallel()

	// Arrange: create a mock controller
	ctrl := gomock.NewController(t)

	// Arrange: create a mock http client
	httpClient := NewMockHTTPClient(ctrl)

	// Assert: stub the Do method to check the header
	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Equal(t, "bar", req.Header.Get("foo"))
			return jsonResponse(t, http.StatusOK, map[string]any{"bestMatches": []any{}}), nil
		}).
		Times(1)

	// Arrange: create a new client with a custom header.
	client, err := alphavantage.NewClient("test", alphavantage.WithHTTPClient(httpClient), alphavantage.WithHeader(http.Header{
		"foo": []string{"bar"},
	}))
	require.NoError(t, err)

	// Act: call SearchSymbol with the custom header.
	_, err = client.SearchSymbol(t.Context(), "IBM")
	require.NoError(t, err)
}

func TestGet_ErrCreatingRequest(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)

	// Assert: no request leaves the client.
	httpClient.EXPECT().Do(gomock.Any()).Times(0)

	client, err := alphavantage.NewClient("k", alphavantage.WithHTTPClient(httpClient), alphavantage.WithBaseURL(string([]rune{0x7f})))
	require.NoError(t, err)

	quote, err := client.GetGlobalQuote(t.Context(), "IBM")
	require.Error(t, err)
	require.Nil(t, quote)
}

func TestGet_ErrPerformingRequest(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)
	httpClient.EXPECT().
		Do(gomock.Any()).
		Return(nil, errors.New("connection reset")).
		Times(1)

	client, err := alphavantage.NewClient("k", alphavantage.WithHTTPClient(httpClient))
	require.NoError(t, err)

	quote, err := client.GetGlobalQuote(t.Context(), "IBM")
	require.ErrorContains(t, err, "connection reset")
	require.Nil(t, quote)
}

func TestGet_StatusCodes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		status      int
		rateLimited bool
	}{
		{http.StatusForbidden, false},
		{http.StatusUnauthorized, false},
		{http.StatusTooManyRequests, true},
		{http.StatusInternalServerError, false},
	}
	for _, tc := range cases {
		ctrl := gomock.NewController(t)
		httpClient := NewMockHTTPClient(ctrl)
		httpClient.EXPECT().
			Do(gomock.Any()).
			DoAndReturn(func(req *http.Request) (*http.Response, error) {
				return &http.Response{StatusCode: tc.status, Body: io.NopCloser(strings.NewReader("oops"))}, nil
			}).
			Times(1)

		client, err := alphavantage.NewClient("k", alphavantage.WithHTTPClient(httpClient))
		require.NoError(t, err)

		_, err = client.GetGlobalQuote(t.Context(), "IBM")
		var apiErr *alphavantage.APIError
		require.ErrorAsf(t, err, &apiErr, "status %d", tc.status)
		require.Equal(t, tc.status, apiErr.StatusCode)
		require.Equal(t, tc.rateLimited, apiErr.RateLimited())
	}
}

func TestGet_InBandErrors(t *testing.T) {
	t.Parallel()

	cases := map[string]bool{
		"Error Message": false,
		"Note":          true,
		"Information":   true,
	}
	for kind, rateLimited := range cases {
		ctrl := gomock.NewController(t)
		httpClient := NewMockHTTPClient(ctrl)
		httpClient.EXPECT().
			Do(gomock.Any()).
			Return(jsonResponse(t, http.StatusOK, map[string]any{kind: "something went wrong"}), nil).
			Times(1)

		client, err := alphavantage.NewClient("k", alphavantage.WithHTTPClient(httpClient))
		require.NoError(t, err)

		_, err = client.GetOverview(t.Context(), "IBM")
		var apiErr *alphavantage.APIError
		require.ErrorAsf(t, err, &apiErr, "kind %s", kind)
		require.Equal(t, kind, apiErr.Kind)
		require.Equal(t, "something went wrong", apiErr.Message)
		require.Equal(t, rateLimited, apiErr.RateLimited())
	}
}

func TestGet_ErrDecodingResponse(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)
	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(strings.NewReader("invalid json"))}, nil
		}).
		Times(1)

	client, err := alphavantage.NewClient("k", alphavantage.WithHTTPClient(httpClient))
	require.NoError(t, err)

	series, err := client.GetDailySeries(t.Context(), "IBM", alphavantage.OutputSizeCompact)
	require.ErrorContains(t, err, "decoding TIME_SERIES_DAILY")
	require.Nil(t, series)
}
