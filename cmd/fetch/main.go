package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"marketfetch/internal/app"
	"marketfetch/internal/config"
	"marketfetch/internal/fetcher"
	"marketfetch/internal/logging"
	"marketfetch/internal/provider"
	"marketfetch/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// cli holds what every subcommand needs once the root has run.
type cli struct {
	configPath string
	provider   string
	apiKey     string
	store      bool

	cfg    config.Config
	logger *zap.Logger
	app    *app.App
	// appOpts is set by tests.
	appOpts []app.Option
}

func newRootCmd(opts ...app.Option) *cobra.Command {
	c := &cli{appOpts: opts}
	root := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch market data from Alpha Vantage or Yahoo Finance",
		Long: `Fetch quotes, daily history, dividends and company fundamentals for a
ticker from one provider at a time.

Every outbound call is counted. After the configured number of calls
(5 by default) the next call waits out a pause (60s by default).`,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if c.app != nil {
				return c.app.Close()
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&c.configPath, "config", getenv("CONFIG_FILE", ""), "path to config.json or config.yaml (optional)")
	root.PersistentFlags().StringVar(&c.provider, "provider", "", "provider to use: alphavantage or yahoo")
	root.PersistentFlags().StringVar(&c.apiKey, "api-key", "", "Alpha Vantage API key (overrides ALPHA_VANTAGE_API_KEY)")
	root.PersistentFlags().BoolVar(&c.store, "store", false, "also write each result to the configured database")

	root.AddCommand(
		c.priceCmd(),
		c.historyCmd(),
		c.dividendsCmd(),
		c.fundamentalsCmd(),
		c.validateCmd(),
		c.sentimentCmd(),
		c.demoCmd(),
	)
	return root
}

func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if c.provider != "" {
		cfg.Provider = c.provider
	}
	if c.apiKey != "" {
		cfg.AlphaVantage.APIKey = c.apiKey
	}
	if c.store && cfg.Database.URL == "" {
		return fmt.Errorf("--store needs DATABASE_URL or database.url")
	}
	if !c.store {
		cfg.Database.URL = ""
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	if cfg.CredentialFor(provider.AlphaVantage) != "" {
		logger.Info("Alpha Vantage API key loaded")
	} else {
		logger.Warn("Alpha Vantage API key not found; set ALPHA_VANTAGE_API_KEY or add it to .env")
	}

	a, err := app.New(cmd.Context(), cfg, logger, c.appOpts...)
	if err != nil {
		return err
	}
	c.cfg, c.logger, c.app = cfg, logger, a
	return nil
}

// output is what every subcommand prints. A failed fetch prints the empty
// record alongside the error.
type output struct {
	Provider provider.ID `json:"provider"`
	Value    any         `json:"value"`
	Error    string      `json:"error,omitempty"`
}

func (c *cli) print(w io.Writer, v any, fetchErr error) error {
	out := output{Provider: c.app.Session.Provider(), Value: v}
	if fetchErr != nil {
		out.Error = fetchErr.Error()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(out)
}

// emit prints r and, with --store, saves a successful value.
func emit[T any](cmd *cobra.Command, c *cli, symbol string, kind provider.Operation, r fetcher.Result[T]) error {
	if err := c.print(cmd.OutOrStdout(), r.Value, r.Err); err != nil {
		return err
	}
	if !c.store || r.Err != nil {
		return nil
	}
	rec := store.NewRecord(symbol, string(kind), "", r.Value)
	if err := c.app.Session.StoreToDatabase(cmd.Context(), c.app.Table, rec); err != nil {
		return err
	}
	c.logger.Info("stored", zap.String("symbol", symbol), zap.String("kind", string(kind)), zap.String("id", rec.ID.String()))
	return nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
