package provider

import (
	"context"
	"strings"
	"time"
)

// ID identifies a supported market data source.
type ID string

const (
	// AlphaVantage is the key-based REST API.
	AlphaVantage ID = "alphavantage"
	// YahooFinance is the keyless chart API.
	YahooFinance ID = "yahoo"
)

// Supported lists every provider the session can switch to, in display order.
func Supported() []ID { return []ID{AlphaVantage, YahooFinance} }

// RequiresCredential reports whether the provider needs an API key.
func (id ID) RequiresCredential() bool { return id == AlphaVantage }

func (id ID) String() string { return string(id) }

// DisplayName is the human name of the provider.
func (id ID) DisplayName() string {
	switch id {
	case AlphaVantage:
		return "Alpha Vantage"
	case YahooFinance:
		return "Yahoo Finance"
	}
	return string(id)
}

var aliases = map[string]ID{
	"alphavantage":  AlphaVantage,
	"alpha vantage": AlphaVantage,
	"alpha_vantage": AlphaVantage,
	"av":            AlphaVantage,
	"yahoo":         YahooFinance,
	"yahoo finance": YahooFinance,
	"yahoofinance":  YahooFinance,
	"yahoo_finance": YahooFinance,
}

// Parse maps a provider name or alias (case-insensitive) to its ID.
func Parse(name string) (ID, error) {
	if id, ok := aliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return id, nil
	}
	return "", &UnsupportedProviderError{Name: name}
}

var endpoints = map[ID]string{
	AlphaVantage: "https://www.alphavantage.co/query",
	YahooFinance: "https://query1.finance.yahoo.com",
}

// ResolveEndpoint returns the fixed base address of a supported provider.
func ResolveEndpoint(id ID) (string, error) {
	if u, ok := endpoints[id]; ok {
		return u, nil
	}
	return "", &UnsupportedProviderError{Name: string(id)}
}

// Operation is a kind of fetch a provider may or may not support.
type Operation string

const (
	OpPrice        Operation = "price"
	OpHistorical   Operation = "historical"
	OpDividends    Operation = "dividends"
	OpFundamentals Operation = "fundamentals"
	OpValidate     Operation = "validate"
	OpSentiment    Operation = "sentiment"
)

var capabilities = map[ID]map[Operation]bool{
	AlphaVantage: {
		OpPrice: true, OpHistorical: true, OpDividends: true,
		OpFundamentals: true, OpValidate: true, OpSentiment: true,
	},
	YahooFinance: {
		OpPrice: true, OpHistorical: true, OpDividends: true,
		OpValidate: true, OpSentiment: true,
	},
}

// Supports reports whether id can serve op.
func Supports(id ID, op Operation) bool { return capabilities[id][op] }

// Quote is the current price of a symbol.
// Prices stay strings to avoid float rounding.
type Quote struct {
	Symbol        string    `json:"symbol"`
	Price         string    `json:"price"`
	PreviousClose string    `json:"previous_close,omitempty"`
	Volume        string    `json:"volume,omitempty"`
	Currency      string    `json:"currency"`
	Source        string    `json:"source"`
	ReceivedAt    time.Time `json:"received_at"`
}

// Bar is one daily OHLCV row.
type Bar struct {
	Date   string `json:"date"`
	Open   string `json:"open"`
	High   string `json:"high"`
	Low    string `json:"low"`
	Close  string `json:"close"`
	Volume int64  `json:"volume"`
}

// History holds daily bars in ascending date order.
type History struct {
	Symbol string `json:"symbol"`
	Source string `json:"source"`
	Bars   []Bar  `json:"bars"`
}

// Dividend is a single payout.
type Dividend struct {
	Date   string `json:"date"`
	Amount string `json:"amount"`
}

// Dividends holds a payout history in ascending date order.
type Dividends struct {
	Symbol string     `json:"symbol"`
	Source string     `json:"source"`
	Items  []Dividend `json:"items"`
}

// Fundamentals is a company overview.
type Fundamentals struct {
	Symbol        string `json:"symbol"`
	Name          string `json:"name"`
	Exchange      string `json:"exchange,omitempty"`
	Currency      string `json:"currency,omitempty"`
	Sector        string `json:"sector,omitempty"`
	Industry      string `json:"industry,omitempty"`
	MarketCap     string `json:"market_cap,omitempty"`
	PERatio       string `json:"pe_ratio,omitempty"`
	EPS           string `json:"eps,omitempty"`
	DividendYield string `json:"dividend_yield,omitempty"`
	High52Week    string `json:"high_52_week,omitempty"`
	Low52Week     string `json:"low_52_week,omitempty"`
}

// Sentiment splits news/social tone into shares summing to 1.
type Sentiment struct {
	Symbol   string  `json:"symbol"`
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"`
	Neutral  float64 `json:"neutral"`
	Source   string  `json:"source"`
}

// DateRange is an inclusive range of calendar days in UTC.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether the YYYY-MM-DD date falls inside the range.
func (r DateRange) Contains(day string) bool {
	t, err := time.Parse(time.DateOnly, day)
	if err != nil {
		return false
	}
	return !t.Before(r.Start) && !t.After(r.End)
}

// Provider is implemented by every market data backend.
//
//go:generate mockgen -package=fetcher_test -destination=../fetcher/mock_provider_test.go -source=provider.go
type Provider interface {
	ID() ID
	Quote(ctx context.Context, symbol string) (Quote, error)
	History(ctx context.Context, symbol string, r DateRange) (History, error)
	Dividends(ctx context.Context, symbol string) (Dividends, error)
	// Validate reports whether the provider knows the symbol.
	Validate(ctx context.Context, symbol string) (bool, error)
}

// FundamentalsProvider is implemented by backends that serve company overviews.
type FundamentalsProvider interface {
	Provider
	Fundamentals(ctx context.Context, symbol string) (Fundamentals, error)
}
