package yahoo

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"marketfetch/internal/provider"
)

// Adapter exposes a chart Client as a provider.Provider.
type Adapter struct {
	client *Client
}

var _ provider.Provider = (*Adapter)(nil)

func NewAdapter(client *Client) *Adapter { return &Adapter{client: client} }

func (a *Adapter) ID() provider.ID { return provider.YahooFinance }

func (a *Adapter) Quote(ctx context.Context, symbol string) (provider.Quote, error) {
	chart, err := a.client.GetChart(ctx, symbol, ChartParams{Range: "1d", Interval: "1d"})
	if err != nil {
		return provider.Quote{}, err
	}
	m := chart.Meta
	if m.RegularMarketPrice == nil {
		return provider.Quote{}, fmt.Errorf("%s: no market price: %w", symbol, ErrSymbolNotFound)
	}
	q := provider.Quote{
		Symbol:     m.Symbol,
		Price:      formatFloat(*m.RegularMarketPrice),
		Currency:   m.Currency,
		Source:     string(provider.YahooFinance),
		ReceivedAt: time.Now().UTC(),
	}
	if q.Symbol == "" {
		q.Symbol = symbol
	}
	if m.ChartPreviousClose != nil {
		q.PreviousClose = formatFloat(*m.ChartPreviousClose)
	}
	if m.RegularMarketVolume != nil {
		q.Volume = strconv.FormatInt(*m.RegularMarketVolume, 10)
	}
	if m.RegularMarketTime > 0 {
		q.ReceivedAt = time.Unix(m.RegularMarketTime, 0).UTC()
	}
	return q, nil
}

func (a *Adapter) History(ctx context.Context, symbol string, r provider.DateRange) (provider.History, error) {
	chart, err := a.client.GetChart(ctx, symbol, ChartParams{
		Interval: "1d",
		Period1:  r.Start,
		// period2 is exclusive.
		Period2: r.End.AddDate(0, 0, 1),
	})
	if err != nil {
		return provider.History{}, err
	}

	q := chart.Quote
	bars := make([]provider.Bar, 0, len(chart.Timestamps))
	for i, ts := range chart.Timestamps {
		closeP := at(q.Close, i)
		if closeP == nil {
			continue
		}
		day := localDate(ts, chart.Meta.GMTOffset)
		if !r.Contains(day) {
			continue
		}
		bar := provider.Bar{
			Date:  day,
			Open:  formatPtr(at(q.Open, i)),
			High:  formatPtr(at(q.High, i)),
			Low:   formatPtr(at(q.Low, i)),
			Close: formatFloat(*closeP),
		}
		if v := at(q.Volume, i); v != nil {
			bar.Volume = *v
		}
		bars = append(bars, bar)
	}
	sort.SliceStable(bars, func(i, j int) bool { return bars[i].Date < bars[j].Date })
	return provider.History{Symbol: symbolOr(chart.Meta.Symbol, symbol), Source: string(provider.YahooFinance), Bars: bars}, nil
}

func (a *Adapter) Dividends(ctx context.Context, symbol string) (provider.Dividends, error) {
	chart, err := a.client.GetChart(ctx, symbol, ChartParams{Range: "max", Interval: "1mo", Events: "div"})
	if err != nil {
		return provider.Dividends{}, err
	}
	items := make([]provider.Dividend, 0, len(chart.Dividends))
	for _, ev := range chart.Dividends {
		items = append(items, provider.Dividend{
			Date:   localDate(ev.Date, chart.Meta.GMTOffset),
			Amount: formatFloat(ev.Amount),
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Date < items[j].Date })
	return provider.Dividends{Symbol: symbolOr(chart.Meta.Symbol, symbol), Source: string(provider.YahooFinance), Items: items}, nil
}

// Validate reports false for symbols the chart API answers with 404.
func (a *Adapter) Validate(ctx context.Context, symbol string) (bool, error) {
	_, err := a.client.GetChart(ctx, symbol, ChartParams{Range: "1d", Interval: "1d"})
	if errors.Is(err, ErrSymbolNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func at[T any](s []*T, i int) *T {
	if i < len(s) {
		return s[i]
	}
	return nil
}

// localDate renders a unix timestamp as the exchange-local calendar day.
func localDate(ts, gmtOffset int64) string {
	return time.Unix(ts+gmtOffset, 0).UTC().Format(time.DateOnly)
}

func symbolOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func formatPtr(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}

func formatFloat(v float64) string {
	// Preserve precision without trailing zeros
	s := strconv.FormatFloat(v, 'f', -1, 64)
	switch strings.ToLower(s) {
	case "inf", "+inf", "-inf", "nan":
		return ""
	}
	return s
}
