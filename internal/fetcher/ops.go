package fetcher

import (
	"context"
	"time"

	"go.uber.org/zap"

	"marketfetch/internal/provider"
)

// begin checks that the active provider supports op, then counts the call.
// A switch that lands while the call is being counted, typically during a
// pause, resets the counter, so the call is counted again against the new
// provider before it is sent.
func (s *Session) begin(ctx context.Context, op provider.Operation) (provider.ID, provider.Provider, error) {
	if err := ctx.Err(); err != nil {
		return "", nil, err
	}
	id, _, gen := s.snapshot()
	for {
		if !provider.Supports(id, op) {
			return "", nil, &provider.UnsupportedOperationError{Provider: id, Operation: op}
		}
		if err := s.RecordCall(ctx); err != nil {
			return "", nil, err
		}
		cur, backend, curGen := s.snapshot()
		if curGen == gen {
			return cur, backend, nil
		}
		id, gen = cur, curGen
	}
}

// fetch runs call against the active backend and turns a backend failure into
// an empty Result.
func fetch[T any](ctx context.Context, s *Session, op provider.Operation, symbol string,
	call func(context.Context, provider.Provider) (T, error)) (Result[T], error) {
	id, backend, err := s.begin(ctx, op)
	if err != nil {
		return Result[T]{}, err
	}
	start := time.Now()
	v, err := call(ctx, backend)
	if err != nil {
		s.logger.Warn("fetch failed",
			zap.String("provider", string(id)),
			zap.String("op", string(op)),
			zap.String("symbol", symbol),
			elapsed(start),
			zap.Error(err))
		return failed[T](&provider.TransportError{Provider: id, Operation: op, Err: err}), nil
	}
	s.logger.Debug("fetched",
		zap.String("provider", string(id)),
		zap.String("op", string(op)),
		zap.String("symbol", symbol),
		elapsed(start))
	return ok(v), nil
}

// Price returns the latest quote for ticker.
func (s *Session) Price(ctx context.Context, ticker string) (Result[provider.Quote], error) {
	sym, err := normalizeTicker(ticker)
	if err != nil {
		return Result[provider.Quote]{}, err
	}
	return fetch(ctx, s, provider.OpPrice, sym, func(ctx context.Context, p provider.Provider) (provider.Quote, error) {
		return p.Quote(ctx, sym)
	})
}

// Historical returns daily bars for ticker between start and end inclusive,
// both formatted YYYY-MM-DD.
func (s *Session) Historical(ctx context.Context, ticker, start, end string) (Result[provider.History], error) {
	in, err := checkRange(ticker, start, end)
	if err != nil {
		return Result[provider.History]{}, err
	}
	// Already validated by checkRange.
	from, _ := time.Parse(time.DateOnly, in.Start)
	to, _ := time.Parse(time.DateOnly, in.End)
	r := provider.DateRange{Start: from, End: to}

	return fetch(ctx, s, provider.OpHistorical, in.Ticker, func(ctx context.Context, p provider.Provider) (provider.History, error) {
		return p.History(ctx, in.Ticker, r)
	})
}

// Dividends returns the dividend history for ticker.
func (s *Session) Dividends(ctx context.Context, ticker string) (Result[provider.Dividends], error) {
	sym, err := normalizeTicker(ticker)
	if err != nil {
		return Result[provider.Dividends]{}, err
	}
	return fetch(ctx, s, provider.OpDividends, sym, func(ctx context.Context, p provider.Provider) (provider.Dividends, error) {
		return p.Dividends(ctx, sym)
	})
}

// Fundamentals returns the company overview for ticker. Only providers in the
// capability table serve it; others fail with UnsupportedOperationError.
func (s *Session) Fundamentals(ctx context.Context, ticker string) (Result[provider.Fundamentals], error) {
	sym, err := normalizeTicker(ticker)
	if err != nil {
		return Result[provider.Fundamentals]{}, err
	}
	return fetch(ctx, s, provider.OpFundamentals, sym, func(ctx context.Context, p provider.Provider) (provider.Fundamentals, error) {
		fp, ok := p.(provider.FundamentalsProvider)
		if !ok {
			return provider.Fundamentals{}, &provider.UnsupportedOperationError{Provider: p.ID(), Operation: provider.OpFundamentals}
		}
		return fp.Fundamentals(ctx, sym)
	})
}

// ValidateTicker reports whether the active provider knows ticker. A
// malformed ticker is reported as false without contacting the provider.
func (s *Session) ValidateTicker(ctx context.Context, ticker string) (Result[bool], error) {
	sym, err := normalizeTicker(ticker)
	if err != nil {
		s.logger.Debug("rejecting malformed ticker", zap.String("ticker", ticker), zap.Error(err))
		return ok(false), nil
	}
	return fetch(ctx, s, provider.OpValidate, sym, func(ctx context.Context, p provider.Provider) (bool, error) {
		return p.Validate(ctx, sym)
	})
}

// StockData fetches one kind of record for ticker: price, fundamentals or
// dividends.
func (s *Session) StockData(ctx context.Context, ticker string, kind provider.Operation) (Result[any], error) {
	switch kind {
	case provider.OpPrice:
		r, err := s.Price(ctx, ticker)
		return erase(r), err
	case provider.OpFundamentals:
		r, err := s.Fundamentals(ctx, ticker)
		return erase(r), err
	case provider.OpDividends:
		r, err := s.Dividends(ctx, ticker)
		return erase(r), err
	default:
		return Result[any]{}, &provider.UnsupportedOperationError{Provider: s.Provider(), Operation: kind}
	}
}

func erase[T any](r Result[T]) Result[any] {
	return Result[any]{Value: r.Value, Err: r.Err}
}

// StubSentiment returns a neutral placeholder. No data source is consulted.
func (s *Session) StubSentiment(ticker string) (provider.Sentiment, error) {
	sym, err := normalizeTicker(ticker)
	if err != nil {
		return provider.Sentiment{}, err
	}
	return provider.Sentiment{Symbol: sym, Neutral: 1, Source: "stub"}, nil
}
