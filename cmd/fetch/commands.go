package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"marketfetch/internal/provider"
)

func (c *cli) priceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "price <ticker>...",
		Short: "Latest quote for one or more tickers",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, t := range args {
				r, err := c.app.Session.Price(cmd.Context(), t)
				if err != nil {
					return err
				}
				if err := emit(cmd, c, t, provider.OpPrice, r); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func (c *cli) historyCmd() *cobra.Command {
	var start, end string
	cmd := &cobra.Command{
		Use:   "history <ticker>",
		Short: "Daily bars between --start and --end (YYYY-MM-DD, inclusive)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := c.app.Session.Historical(cmd.Context(), args[0], start, end)
			if err != nil {
				return err
			}
			return emit(cmd, c, args[0], provider.OpHistorical, r)
		},
	}
	now := time.Now().UTC()
	cmd.Flags().StringVar(&start, "start", now.AddDate(0, -1, 0).Format(time.DateOnly), "first day")
	cmd.Flags().StringVar(&end, "end", now.Format(time.DateOnly), "last day")
	return cmd
}

func (c *cli) dividendsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dividends <ticker>",
		Short: "Dividend history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := c.app.Session.Dividends(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return emit(cmd, c, args[0], provider.OpDividends, r)
		},
	}
}

func (c *cli) fundamentalsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fundamentals <ticker>",
		Short: "Company overview (Alpha Vantage only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := c.app.Session.Fundamentals(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return emit(cmd, c, args[0], provider.OpFundamentals, r)
		},
	}
}

func (c *cli) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <ticker>",
		Short: "Check that the provider knows a ticker",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := c.app.Session.ValidateTicker(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return c.print(cmd.OutOrStdout(), r.Value, r.Err)
		},
	}
}

func (c *cli) sentimentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sentiment <ticker>",
		Short: "Placeholder sentiment (no data source)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.app.Session.StubSentiment(args[0])
			if err != nil {
				return err
			}
			return c.print(cmd.OutOrStdout(), s, nil)
		},
	}
}

func (c *cli) demoCmd() *cobra.Command {
	var ticker string
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Walk through every operation once, then switch to Yahoo Finance",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s := c.app.Session
			w := cmd.OutOrStdout()

			fmt.Fprintln(w, "Fetching stock data...")
			price, err := s.StockData(ctx, ticker, provider.OpPrice)
			if err != nil {
				return err
			}
			if err := c.print(w, price.Value, price.Err); err != nil {
				return err
			}

			fmt.Fprintln(w, "\nFetching historical prices...")
			hist, err := s.Historical(ctx, ticker, "2023-01-01", "2023-12-31")
			if err != nil {
				return err
			}
			if err := c.print(w, hist.Value, hist.Err); err != nil {
				return err
			}

			fmt.Fprintln(w, "\nFetching dividend data...")
			divs, err := s.Dividends(ctx, ticker)
			if err != nil {
				return err
			}
			if err := c.print(w, divs.Value, divs.Err); err != nil {
				return err
			}

			fmt.Fprintln(w, "\nValidating ticker...")
			valid, err := s.ValidateTicker(ctx, ticker)
			if err != nil {
				return err
			}
			if err := c.print(w, valid.Value, valid.Err); err != nil {
				return err
			}

			fmt.Fprintf(w, "\nRecording a call (%d of %d before a pause)...\n", s.CallCount()+1, s.CallThreshold())
			if err := s.RecordCall(ctx); err != nil {
				return err
			}

			fmt.Fprintln(w, "\nSwitching provider to Yahoo Finance...")
			if err := s.SwitchProvider(string(provider.YahooFinance), ""); err != nil {
				return err
			}
			fmt.Fprintf(w, "Switched to provider: %s\n", s.Provider().DisplayName())

			fmt.Fprintln(w, "\nFetching sentiment data...")
			sent, err := s.StubSentiment(ticker)
			if err != nil {
				return err
			}
			return c.print(w, sent, nil)
		},
	}
	cmd.Flags().StringVar(&ticker, "ticker", "AAPL", "ticker to walk through")
	return cmd
}
