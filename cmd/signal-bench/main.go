package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/signal-bench/internal/backtest"
	"github.com/yourusername/signal-bench/internal/config"
	"github.com/yourusername/signal-bench/internal/database"
	"github.com/yourusername/signal-bench/internal/logger"
	"github.com/yourusername/signal-bench/internal/metrics"
	"github.com/yourusername/signal-bench/internal/models"
	"github.com/yourusername/signal-bench/internal/repository"
	"github.com/yourusername/signal-bench/internal/series"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile string
	appLogger  *logrus.Logger
	cfg        *config.Config
	db         *database.DB
	resultRepo repository.BacktestResultRepository
	dispatcher *backtest.Dispatcher
)

var (
	priceFiles   []string
	signalFiles  []string
	strategyName string
	workersFlag  int
	timeoutFlag  int
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")

	runCmd.Flags().StringVar(&strategyName, "name", "", "Strategy name for the run")
	runCmd.Flags().StringSliceVar(&priceFiles, "prices", nil, "Path to price CSV file")
	runCmd.Flags().StringSliceVar(&signalFiles, "signals", nil, "Path to signal CSV file")
	_ = runCmd.MarkFlagRequired("prices")
	_ = runCmd.MarkFlagRequired("signals")

	batchCmd.Flags().StringVar(&strategyName, "name", "", "Base strategy name for the batch")
	batchCmd.Flags().StringSliceVar(&priceFiles, "prices", nil, "Price CSV files, one per backtest")
	batchCmd.Flags().StringSliceVar(&signalFiles, "signals", nil, "Signal CSV files, paired with --prices by position")
	batchCmd.Flags().IntVar(&workersFlag, "workers", 0, "Worker count override")
	batchCmd.Flags().IntVar(&timeoutFlag, "timeout", 0, "Per-backtest timeout override in seconds")
	_ = batchCmd.MarkFlagRequired("prices")
	_ = batchCmd.MarkFlagRequired("signals")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(versionCmd)
}

var rootCmd = &cobra.Command{
	Use:   "signal-bench",
	Short: "Evaluate trading signals against historical prices",
	Long:  `Runs long-only backtests of precomputed trading signals over historical price series and reports performance metrics.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			return nil
		}
		if err := loadConfig(); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := setupDependencies(cmd.Context()); err != nil {
			return fmt.Errorf("failed to setup dependencies: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if db != nil {
			db.Close()
		}
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a single backtest",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(priceFiles) != 1 || len(signalFiles) != 1 {
			return fmt.Errorf("run expects exactly one --prices and one --signals file")
		}

		req, err := buildRequest(strategyNameOrDefault(priceFiles[0]), priceFiles[0], signalFiles[0])
		if err != nil {
			return err
		}

		result := dispatcher.RunBacktest(req)
		fmt.Print(backtest.GenerateConsoleReport(result))

		if err := persistResult(cmd.Context(), result); err != nil {
			appLogger.WithError(err).Warn("Failed to persist backtest result")
		}
		if result.Failed() {
			return fmt.Errorf("backtest failed: %s", result.Error)
		}
		return nil
	},
}

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Run multiple backtests in parallel",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(priceFiles) == 0 || len(priceFiles) != len(signalFiles) {
			return fmt.Errorf("batch expects the same number of --prices and --signals files")
		}

		requests := make([]models.BacktestRequest, 0, len(priceFiles))
		for i := range priceFiles {
			name := fmt.Sprintf("%s-%d", strategyNameOrDefault(priceFiles[i]), i+1)
			req, err := buildRequest(name, priceFiles[i], signalFiles[i])
			if err != nil {
				return err
			}
			requests = append(requests, req)
		}

		workers := cfg.Runner.WorkerCount
		if workersFlag > 0 {
			workers = workersFlag
		}
		timeout := cfg.TaskTimeout()
		if timeoutFlag > 0 {
			timeout = time.Duration(timeoutFlag) * time.Second
		}

		runner := backtest.NewRunner(dispatcher, workers, timeout, appLogger)
		results := runner.RunBatch(cmd.Context(), requests)

		for _, result := range results {
			fmt.Print(backtest.GenerateConsoleReport(result))
			if err := persistResult(cmd.Context(), result); err != nil {
				appLogger.WithError(err).Warn("Failed to persist backtest result")
			}
		}
		fmt.Print(backtest.GenerateBatchSummary(runner.Stats()))
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("signal-bench %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
	},
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func loadConfig() error {
	var err error
	cfg, err = config.LoadWithDefaults(configFile)
	if err != nil {
		return err
	}
	return config.Validate(cfg)
}

func setupDependencies(ctx context.Context) error {
	appLogger = logger.NewLogger(cfg.App.LogLevel)

	var resultCache *backtest.ResultCache
	if cfg.Cache.Enabled {
		resultCache = backtest.NewResultCache(cfg.CacheTTL())
	}

	caps := backtest.DetectCapabilities(cfg.Backtest.OrderDrivenEnabled, cfg.Backtest.VectorizedEnabled)
	dispatcher = backtest.NewDispatcher(caps, resultCache, appLogger)

	if cfg.Database.Enabled {
		var err error
		db, err = database.NewDB(ctx, &cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		resultRepo = repository.NewPostgresBacktestResultRepository(db)
	}

	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		startMetricsServer()
	}

	appLogger.WithFields(logrus.Fields{
		"backend":     dispatcher.SelectedBackend(),
		"environment": cfg.App.Environment,
	}).Info("signal-bench initialized")

	return nil
}

func buildRequest(name, pricePath, signalPath string) (models.BacktestRequest, error) {
	prices, err := series.LoadPrices(pricePath)
	if err != nil {
		return models.BacktestRequest{}, fmt.Errorf("loading %s: %w", pricePath, err)
	}
	signals, err := series.LoadSignals(signalPath)
	if err != nil {
		return models.BacktestRequest{}, fmt.Errorf("loading %s: %w", signalPath, err)
	}

	req := models.NewBacktestRequest(name, prices, signals)
	req.InitialCapital = cfg.Backtest.InitialCapital
	req.Cost = models.CostModel{
		CommissionRate: cfg.Backtest.CommissionRate,
		SlippageRate:   cfg.Backtest.SlippageRate,
	}
	req.AnnualizationPeriods = cfg.Backtest.AnnualizationPeriods
	return req, nil
}

func persistResult(ctx context.Context, result *models.BacktestResult) error {
	if resultRepo == nil {
		return nil
	}
	return resultRepo.SaveResult(ctx, result)
}

func strategyNameOrDefault(pricePath string) string {
	if strategyName != "" {
		return strategyName
	}
	base := filepath.Base(pricePath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func startMetricsServer() {
	mux := http.NewServeMux()
	mux.Handle(cfg.Metrics.Path, metrics.Handler())

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Metrics.Port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.WithError(err).Error("Metrics server stopped")
		}
	}()
}
