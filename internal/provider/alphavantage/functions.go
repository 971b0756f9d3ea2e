package alphavantage

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"
)

// OutputSize selects how much history TIME_SERIES_DAILY returns.
type OutputSize string

const (
	// OutputSizeCompact returns the latest 100 data points.
	OutputSizeCompact OutputSize = "compact"
	// OutputSizeFull returns the full 20+ year history.
	OutputSizeFull OutputSize = "full"

	compactWindow = 100 * 24 * time.Hour
)

// OutputSizeFor picks compact when start lies within the compact window of now.
func OutputSizeFor(start, now time.Time) OutputSize {
	if now.Sub(start) <= compactWindow {
		return OutputSizeCompact
	}
	return OutputSizeFull
}

// GlobalQuote is the GLOBAL_QUOTE payload.
type GlobalQuote struct {
	Symbol           string `json:"01. symbol"`
	Open             string `json:"02. open"`
	High             string `json:"03. high"`
	Low              string `json:"04. low"`
	Price            string `json:"05. price"`
	Volume           string `json:"06. volume"`
	LatestTradingDay string `json:"07. latest trading day"`
	PreviousClose    string `json:"08. previous close"`
	Change           string `json:"09. change"`
	ChangePercent    string `json:"10. change percent"`
}

// GetGlobalQuote retrieves the latest price for symbol.
func (c *Client) GetGlobalQuote(ctx context.Context, symbol string) (*GlobalQuote, error) {
	body, err := c.get(ctx, "GLOBAL_QUOTE", url.Values{"symbol": {symbol}})
	if err != nil {
		return nil, err
	}
	var doc struct {
		Quote GlobalQuote `json:"Global Quote"`
	}
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("decoding GLOBAL_QUOTE: %w", err)
	}
	// An unknown symbol yields {"Global Quote": {}}.
	if doc.Quote.Symbol == "" {
		return nil, fmt.Errorf("%s: %w", symbol, ErrSymbolNotFound)
	}
	return &doc.Quote, nil
}

// DailyPrice is one day of TIME_SERIES_DAILY.
type DailyPrice struct {
	Open   string `json:"1. open"`
	High   string `json:"2. high"`
	Low    string `json:"3. low"`
	Close  string `json:"4. close"`
	Volume string `json:"5. volume"`
}

// DailySeries holds daily prices keyed by YYYY-MM-DD.
type DailySeries struct {
	Symbol string
	Prices map[string]DailyPrice
}

// GetDailySeries retrieves the daily time series for symbol.
func (c *Client) GetDailySeries(ctx context.Context, symbol string, size OutputSize) (*DailySeries, error) {
	body, err := c.get(ctx, "TIME_SERIES_DAILY", url.Values{
		"symbol":     {symbol},
		"outputsize": {string(size)},
	})
	if err != nil {
		return nil, err
	}
	var doc struct {
		Meta struct {
			Symbol string `json:"2. Symbol"`
		} `json:"Meta Data"`
		Series map[string]DailyPrice `json:"Time Series (Daily)"`
	}
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("decoding TIME_SERIES_DAILY: %w", err)
	}
	if len(doc.Series) == 0 {
		return nil, fmt.Errorf("%s: %w", symbol, ErrSymbolNotFound)
	}
	sym := doc.Meta.Symbol
	if sym == "" {
		sym = symbol
	}
	return &DailySeries{Symbol: sym, Prices: doc.Series}, nil
}

// DividendEntry is one row of the DIVIDENDS payload.
type DividendEntry struct {
	ExDividendDate  string `json:"ex_dividend_date"`
	DeclarationDate string `json:"declaration_date"`
	RecordDate      string `json:"record_date"`
	PaymentDate     string `json:"payment_date"`
	Amount          string `json:"amount"`
}

// GetDividends retrieves the dividend history of symbol. A symbol that never
// paid out yields an empty slice.
func (c *Client) GetDividends(ctx context.Context, symbol string) ([]DividendEntry, error) {
	body, err := c.get(ctx, "DIVIDENDS", url.Values{"symbol": {symbol}})
	if err != nil {
		return nil, err
	}
	var doc struct {
		Data []DividendEntry `json:"data"`
	}
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("decoding DIVIDENDS: %w", err)
	}
	if doc.Data == nil {
		return []DividendEntry{}, nil
	}
	return doc.Data, nil
}

// Overview is the OVERVIEW payload, trimmed to the fields we surface.
type Overview struct {
	Symbol               string `json:"Symbol"`
	Name                 string `json:"Name"`
	Exchange             string `json:"Exchange"`
	Currency             string `json:"Currency"`
	Sector               string `json:"Sector"`
	Industry             string `json:"Industry"`
	MarketCapitalization string `json:"MarketCapitalization"`
	PERatio              string `json:"PERatio"`
	EPS                  string `json:"EPS"`
	DividendYield        string `json:"DividendYield"`
	High52Week           string `json:"52WeekHigh"`
	Low52Week            string `json:"52WeekLow"`
}

// GetOverview retrieves company fundamentals for symbol.
func (c *Client) GetOverview(ctx context.Context, symbol string) (*Overview, error) {
	body, err := c.get(ctx, "OVERVIEW", url.Values{"symbol": {symbol}})
	if err != nil {
		return nil, err
	}
	var ov Overview
	if err := json.Unmarshal(body, &ov); err != nil {
		return nil, fmt.Errorf("decoding OVERVIEW: %w", err)
	}
	if ov.Symbol == "" {
		return nil, fmt.Errorf("%s: %w", symbol, ErrSymbolNotFound)
	}
	return &ov, nil
}

// Match is one SYMBOL_SEARCH result.
type Match struct {
	Symbol     string `json:"1. symbol"`
	Name       string `json:"2. name"`
	Type       string `json:"3. type"`
	Region     string `json:"4. region"`
	Currency   string `json:"8. currency"`
	MatchScore string `json:"9. matchScore"`
}

// SearchSymbol returns the best matches for keywords.
func (c *Client) SearchSymbol(ctx context.Context, keywords string) ([]Match, error) {
	body, err := c.get(ctx, "SYMBOL_SEARCH", url.Values{"keywords": {keywords}})
	if err != nil {
		return nil, err
	}
	var doc struct {
		BestMatches []Match `json:"bestMatches"`
	}
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("decoding SYMBOL_SEARCH: %w", err)
	}
	return doc.BestMatches, nil
}
