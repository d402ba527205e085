// Package main provides the NRFI predictor command line interface.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/radgator13/mlb-nrfi-predictor/internal/config"
	"github.com/radgator13/mlb-nrfi-predictor/internal/health"
	"github.com/radgator13/mlb-nrfi-predictor/internal/logger"
	"github.com/radgator13/mlb-nrfi-predictor/internal/metrics"
	"github.com/radgator13/mlb-nrfi-predictor/internal/models"
	"github.com/radgator13/mlb-nrfi-predictor/internal/pipeline"
	"github.com/radgator13/mlb-nrfi-predictor/internal/scheduler"
	"github.com/radgator13/mlb-nrfi-predictor/internal/statsapi"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile string
	gameDate   string
	watchMode  bool
	appLogger  *logrus.Logger
	cfg        *config.Config
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.Flags().StringVarP(&gameDate, "date", "d", "", "Game date (YYYY-MM-DD), defaults to today")
	rootCmd.Flags().BoolVarP(&watchMode, "watch", "w", false, "Run the daily scheduler and ops server instead of a single pass")
}

var rootCmd = &cobra.Command{
	Use:   "nrfi",
	Short: "Predict no-run-first-inning outcomes for a day's MLB schedule",
	Long: `Fetches the MLB schedule for a date, scores both probable pitchers and both
teams' hitters for every game with announced starters, and prints the games
ranked by the probability that neither team scores in the first inning.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := config.Validate(cfg); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		appLogger = logger.NewLogger(cfg.App.LogLevel)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		metrics.InitRegistry()

		client := newStatsClient()
		defer client.Close()

		predictor := pipeline.NewPredictor(client, appLogger)

		if watchMode {
			return runWatch(client, predictor)
		}

		date, err := resolveDate()
		if err != nil {
			return err
		}
		return runOnce(cmd.Context(), predictor, client, date)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

// newStatsClient wires the rate-limited HTTP client, response cache and
// stats API client from configuration
func newStatsClient() *statsapi.Client {
	httpCfg := statsapi.DefaultHTTPClientConfig()
	httpCfg.Timeout = time.Duration(cfg.StatsAPI.TimeoutSeconds) * time.Second
	httpCfg.RateLimit = cfg.StatsAPI.RateLimit
	httpCfg.MaxRetries = cfg.StatsAPI.MaxRetries
	httpCfg.CircuitBreakerMax = cfg.StatsAPI.CircuitBreakerMax

	httpClient := statsapi.NewRateLimitedHTTPClient(httpCfg, appLogger)
	cache := statsapi.NewResponseCache(time.Duration(cfg.StatsAPI.CacheTTLMinutes)*time.Minute, cfg.StatsAPI.CacheMaxSize)

	return statsapi.NewClient(httpClient, cfg.StatsAPI.BaseURL, cache, appLogger)
}

// resolveDate parses the --date flag, defaulting to today
func resolveDate() (time.Time, error) {
	if gameDate == "" {
		return time.Now(), nil
	}
	date, err := time.Parse("2006-01-02", gameDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", gameDate, err)
	}
	return date, nil
}

// runOnce executes a single prediction pass and renders the table
func runOnce(ctx context.Context, predictor *pipeline.Predictor, client *statsapi.Client, date time.Time) error {
	fmt.Printf("Analyzing matchups for %s...\n", date.Format("2006-01-02"))

	records, err := predictor.Run(ctx, date, renderProgress)
	fmt.Println()
	if err != nil {
		if errors.Is(err, pipeline.ErrNoGames) {
			fmt.Println("No games found.")
			return nil
		}
		return err
	}

	renderTable(records)

	hits, misses, ratio := client.CacheStats()
	appLogger.WithFields(logrus.Fields{
		"cache_hits":   hits,
		"cache_misses": misses,
		"cache_ratio":  fmt.Sprintf("%.2f", ratio),
	}).Debug("Response cache statistics")

	return nil
}

// renderProgress draws a single-line progress indicator
func renderProgress(completed, total int) {
	fraction := float64(completed) / float64(total)
	fmt.Printf("\rProcessing games: %d/%d (%.0f%%)", completed, total, fraction*100)
}

// renderTable prints the prediction records, already sorted by probability
func renderTable(records []models.PredictionRecord) {
	if len(records) == 0 {
		fmt.Println("No games with announced probable pitchers.")
		return
	}

	fmt.Printf("%-36s %8s %8s %8s %8s %8s  %s\n",
		"Matchup", "Away P", "Home P", "Away H", "Home H", "NRFI %", "Prediction")
	for _, r := range records {
		fmt.Printf("%-36s %8.2f %8.2f %8.2f %8.2f %8.2f  %s\n",
			r.Matchup,
			r.AwayPitcherScore,
			r.HomePitcherScore,
			r.AwayHitterScore,
			r.HomeHitterScore,
			r.NRFIProbability,
			r.Prediction)
	}
}

// runWatch starts the ops server and the daily cron schedule, blocking until
// SIGINT/SIGTERM
func runWatch(client *statsapi.Client, predictor *pipeline.Predictor) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var opsServer *health.Server
	if cfg.Ops.Enabled {
		opsServer = health.NewServer(health.Config{
			ServiceName: cfg.App.Name,
			Version:     Version,
			Commit:      GitCommit,
			Port:        cfg.Ops.Port,
			Logger:      appLogger,
			Upstream:    client,
		})
		if err := opsServer.Start(ctx); err != nil {
			return fmt.Errorf("failed to start ops server: %w", err)
		}
	}

	sched := scheduler.NewScheduler(func(ctx context.Context, date time.Time) error {
		records, err := predictor.Run(ctx, date, nil)
		if err != nil {
			if errors.Is(err, pipeline.ErrNoGames) {
				appLogger.WithField("date", date.Format("2006-01-02")).Info("No games scheduled")
				return nil
			}
			return err
		}
		renderTable(records)
		return nil
	}, appLogger)

	if err := sched.ScheduleDailyRun(cfg.Scheduler.CronExpression); err != nil {
		return fmt.Errorf("failed to schedule daily run: %w", err)
	}
	if err := sched.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	if opsServer != nil {
		opsServer.SetReady(true)
	}

	appLogger.WithField("next_run", sched.GetNextRun().Format(time.RFC3339)).Info("Watch mode running")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	appLogger.Info("Shutting down")
	return sched.Stop()
}
