package alphavantage

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"marketfetch/internal/provider"
)

// currency is implied: GLOBAL_QUOTE and TIME_SERIES_DAILY carry none.
const currency = "USD"

// Adapter exposes a Client as a provider.Provider.
type Adapter struct {
	client *Client
}

var _ provider.FundamentalsProvider = (*Adapter)(nil)

func NewAdapter(client *Client) *Adapter {
	return &Adapter{client: client}
}

func (a *Adapter) ID() provider.ID { return provider.AlphaVantage }

func (a *Adapter) Quote(ctx context.Context, symbol string) (provider.Quote, error) {
	gq, err := a.client.GetGlobalQuote(ctx, symbol)
	if err != nil {
		return provider.Quote{}, err
	}
	return provider.Quote{
		Symbol:        gq.Symbol,
		Price:         gq.Price,
		PreviousClose: gq.PreviousClose,
		Volume:        gq.Volume,
		Currency:      currency,
		Source:        string(provider.AlphaVantage),
		ReceivedAt:    time.Now().UTC(),
	}, nil
}

func (a *Adapter) History(ctx context.Context, symbol string, r provider.DateRange) (provider.History, error) {
	series, err := a.client.GetDailySeries(ctx, symbol, OutputSizeFor(r.Start, time.Now()))
	if err != nil {
		return provider.History{}, err
	}

	dates := make([]string, 0, len(series.Prices))
	for d := range series.Prices {
		if r.Contains(d) {
			dates = append(dates, d)
		}
	}
	sort.Strings(dates)

	bars := make([]provider.Bar, 0, len(dates))
	for _, d := range dates {
		p := series.Prices[d]
		vol, err := strconv.ParseInt(strings.TrimSpace(p.Volume), 10, 64)
		if err != nil {
			return provider.History{}, fmt.Errorf("parsing volume for %s: %w", d, err)
		}
		bars = append(bars, provider.Bar{
			Date:   d,
			Open:   p.Open,
			High:   p.High,
			Low:    p.Low,
			Close:  p.Close,
			Volume: vol,
		})
	}
	return provider.History{Symbol: series.Symbol, Source: string(provider.AlphaVantage), Bars: bars}, nil
}

func (a *Adapter) Dividends(ctx context.Context, symbol string) (provider.Dividends, error) {
	entries, err := a.client.GetDividends(ctx, symbol)
	if err != nil {
		return provider.Dividends{}, err
	}
	items := make([]provider.Dividend, 0, len(entries))
	for _, e := range entries {
		if e.ExDividendDate == "" || e.ExDividendDate == "None" {
			continue
		}
		items = append(items, provider.Dividend{Date: e.ExDividendDate, Amount: e.Amount})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Date < items[j].Date })
	return provider.Dividends{Symbol: symbol, Source: string(provider.AlphaVantage), Items: items}, nil
}

func (a *Adapter) Fundamentals(ctx context.Context, symbol string) (provider.Fundamentals, error) {
	ov, err := a.client.GetOverview(ctx, symbol)
	if err != nil {
		return provider.Fundamentals{}, err
	}
	return provider.Fundamentals{
		Symbol:        ov.Symbol,
		Name:          ov.Name,
		Exchange:      ov.Exchange,
		Currency:      ov.Currency,
		Sector:        ov.Sector,
		Industry:      ov.Industry,
		MarketCap:     ov.MarketCapitalization,
		PERatio:       ov.PERatio,
		EPS:           ov.EPS,
		DividendYield: ov.DividendYield,
		High52Week:    ov.High52Week,
		Low52Week:     ov.Low52Week,
	}, nil
}

// Validate searches for symbol and accepts an exact, case-insensitive match.
func (a *Adapter) Validate(ctx context.Context, symbol string) (bool, error) {
	matches, err := a.client.SearchSymbol(ctx, symbol)
	if err != nil {
		return false, err
	}
	for _, m := range matches {
		if strings.EqualFold(m.Symbol, symbol) {
			return true, nil
		}
	}
	return false, nil
}
