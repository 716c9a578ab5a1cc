package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/selivandex/news-sentiment/internal/adapters/config"
	"github.com/selivandex/news-sentiment/internal/adapters/news"
	"github.com/selivandex/news-sentiment/internal/api"
	"github.com/selivandex/news-sentiment/internal/pipeline"
	"github.com/selivandex/news-sentiment/pkg/logger"
	"github.com/selivandex/news-sentiment/pkg/models"
)

const shutdownTimeout = 25 * time.Second

func main() {
	// Setup signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "digest",
		Short:         "News sentiment digest for stocks and crypto",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(serveCmd())
	root.AddCommand(queryCmd())
	return root
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve GET /api/news over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func queryCmd() *cobra.Command {
	var priceChange string

	cmd := &cobra.Command{
		Use:   "query ASSET",
		Short: "Print a one-shot digest for ASSET as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd.Context(), args[0], priceChange)
		},
	}

	cmd.Flags().StringVar(&priceChange, "price-change", "", "recent price change, enables the correlation note")
	return cmd
}

func runServe(ctx context.Context) error {
	cfg, err := initConfig()
	if err != nil {
		return err
	}
	defer logger.Sync()

	adapters, orchestrator, err := initPipeline(cfg)
	if err != nil {
		return err
	}

	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	server := api.NewServer(cfg.Server, orchestrator, adapterNames(adapters))

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	server.SetReady(true)
	logger.Info("news digest service ready",
		zap.String("addr", cfg.Server.Addr),
		zap.Int("sources", len(adapters)),
	)

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	}

	logger.Info("shutdown signal received, starting graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := server.Stop(shutdownCtx); err != nil {
		logger.Error("http server stop error", zap.Error(err))
		return err
	}

	logger.Info("shutdown complete")
	return nil
}

func runQuery(ctx context.Context, asset, priceChange string) error {
	cfg, err := initConfig()
	if err != nil {
		return err
	}
	defer logger.Sync()

	q, err := models.NewQuery(asset)
	if err != nil {
		return err
	}
	req := pipeline.Request{Query: q}

	if priceChange != "" {
		change, err := decimal.NewFromString(priceChange)
		if err != nil {
			return fmt.Errorf("invalid price change %q: %w", priceChange, err)
		}
		req.PriceChange = &change
	}

	_, orchestrator, err := initPipeline(cfg)
	if err != nil {
		return err
	}

	result, err := orchestrator.Run(ctx, req)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// initConfig loads configuration and initializes logger
func initConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.File); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return cfg, nil
}

// initPipeline builds adapters in registration order and the orchestrator over them
func initPipeline(cfg *config.Config) ([]news.Adapter, *pipeline.Orchestrator, error) {
	adapters := news.NewAdapters(cfg, nil)

	orchestrator, err := pipeline.NewFromConfig(cfg, adapters)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build pipeline: %w", err)
	}

	logger.Info("news sources registered",
		zap.Strings("sources", adapterNames(adapters)),
		zap.Duration("adapter_timeout", cfg.News.AdapterTimeout),
		zap.Int("limit", cfg.News.ResultLimit),
	)

	return adapters, orchestrator, nil
}

func adapterNames(adapters []news.Adapter) []string {
	names := make([]string, len(adapters))
	for i, a := range adapters {
		names[i] = a.Name()
	}
	return names
}
